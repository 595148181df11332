package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"petfectly_server/services"
	"petfectly_server/utils"

	"github.com/gorilla/mux"
)

// PetController exposes the pet collection
type PetController struct {
	Pets *services.PetService
}

// NewPetController initializes the controller
func NewPetController(pets *services.PetService) *PetController {
	return &PetController{Pets: pets}
}

// GetPets returns every pet that has not been liked
func (c *PetController) GetPets(w http.ResponseWriter, r *http.Request) {
	pets, err := c.Pets.ListUnliked(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch pets")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, pets)
}

// UpdateProfile lets the owner edit bio, distance, tags and photos of a pet
func (c *PetController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	var update services.ProfileUpdate
	if err := utils.DecodeJSON(r, &update); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pet, err := c.Pets.UpdateProfile(r.Context(), ownerID, mux.Vars(r)["id"], update)
	switch {
	case errors.Is(err, services.ErrPetNotFound):
		utils.WriteError(w, http.StatusNotFound, "Pet not found")
		return
	case errors.Is(err, services.ErrNotPetOwner):
		utils.WriteError(w, http.StatusForbidden, "Forbidden")
		return
	case errors.Is(err, services.ErrInvalidInput):
		utils.WriteError(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), services.ErrInvalidInput.Error()+": "))
		return
	case err != nil:
		log.Printf("❌ Update pet profile error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update pet")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, pet)
}

// UpdateLike sets or clears the liked flag of a pet
func (c *PetController) UpdateLike(w http.ResponseWriter, r *http.Request) {
	petID := mux.Vars(r)["id"]

	var request struct {
		Liked *bool `json:"liked"`
	}
	if err := utils.DecodeJSON(r, &request); err != nil || request.Liked == nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pet, err := c.Pets.UpdateLiked(r.Context(), petID, *request.Liked)
	if errors.Is(err, services.ErrPetNotFound) {
		utils.WriteError(w, http.StatusNotFound, "Pet not found")
		return
	}
	if err != nil {
		log.Printf("❌ Patch pet error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update pet")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, pet)
}

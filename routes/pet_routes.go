package routes

import (
	"petfectly_server/auth"
	"petfectly_server/controllers"
	"petfectly_server/services"

	"github.com/gorilla/mux"
)

// RegisterPetRoutes sets up routes for the pet collection under /api/pets
func RegisterPetRoutes(r *mux.Router, pets *services.PetService, tokens *auth.Issuer) {
	controller := controllers.NewPetController(pets)

	petRouter := r.PathPrefix("/api/pets").Subrouter()
	petRouter.Use(auth.RequireAuth(tokens))
	petRouter.HandleFunc("", controller.GetPets).Methods("GET")
	petRouter.HandleFunc("/{id}", controller.UpdateProfile).Methods("PATCH")
	petRouter.HandleFunc("/{id}/like", controller.UpdateLike).Methods("PATCH")
}

package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"petfectly_server/auth"
	"petfectly_server/models"
	"petfectly_server/services"
	"petfectly_server/utils"
)

// AuthController handles registration, login and session checks
type AuthController struct {
	Users  *services.UserService
	Tokens *auth.Issuer
}

// NewAuthController initializes the controller
func NewAuthController(users *services.UserService, tokens *auth.Issuer) *AuthController {
	return &AuthController{Users: users, Tokens: tokens}
}

type authResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
	Pet     *models.Pet  `json:"pet,omitempty"`
	Token   string       `json:"token"`
}

// Register creates an account plus the owner's pet
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, pet, err := c.Users.Register(r.Context(), input)
	switch {
	case errors.Is(err, services.ErrUserExists):
		utils.WriteError(w, http.StatusBadRequest, "User already exists")
		return
	case errors.Is(err, services.ErrInvalidInput):
		utils.WriteError(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), services.ErrInvalidInput.Error()+": "))
		return
	case err != nil:
		log.Printf("❌ Registration error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	token, err := c.Tokens.Issue(user.UserID, user.Email)
	if err != nil {
		log.Printf("❌ Token error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, authResponse{Success: true, User: user, Pet: pet, Token: token})
}

// Login checks credentials and returns a token
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := utils.DecodeJSON(r, &request); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := c.Users.Authenticate(r.Context(), request.Email, request.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		utils.WriteError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if err != nil {
		log.Printf("❌ Login error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	token, err := c.Tokens.Issue(user.UserID, user.Email)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, authResponse{Success: true, User: user, Token: token})
}

// Check reports whether the request carries a valid token
func (c *AuthController) Check(w http.ResponseWriter, r *http.Request) {
	claims, err := c.Tokens.FromRequest(r)
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"isAuthenticated": false})
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"isAuthenticated": true,
		"user":            map[string]string{"id": claims.UserID, "email": claims.Email},
	})
}

// ListUsers returns every account without password hashes
func (c *AuthController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.Users.ListUsers(r.Context())
	if err != nil {
		log.Printf("❌ Get users error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"success": true, "users": users})
}

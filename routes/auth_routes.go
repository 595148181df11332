package routes

import (
	"petfectly_server/auth"
	"petfectly_server/controllers"
	"petfectly_server/services"

	"github.com/gorilla/mux"
)

// RegisterAuthRoutes sets up account routes under /api
func RegisterAuthRoutes(r *mux.Router, users *services.UserService, tokens *auth.Issuer) {
	controller := controllers.NewAuthController(users, tokens)

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/register", controller.Register).Methods("POST")
	apiRouter.HandleFunc("/login", controller.Login).Methods("POST")
	apiRouter.HandleFunc("/auth/check", controller.Check).Methods("GET")

	protected := apiRouter.PathPrefix("/users").Subrouter()
	protected.Use(auth.RequireAuth(tokens))
	protected.HandleFunc("", controller.ListUsers).Methods("GET")
}

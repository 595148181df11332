package routes

import (
	"petfectly_server/auth"
	"petfectly_server/controllers"
	"petfectly_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for match listing
func RegisterMatchRoutes(r *mux.Router, matches *services.MatchService, tokens *auth.Issuer) {
	controller := controllers.NewMatchController(matches)

	matchRouter := r.PathPrefix("/api/matches").Subrouter()
	matchRouter.Use(auth.RequireAuth(tokens))
	matchRouter.HandleFunc("", controller.GetMatches).Methods("GET")
}

package routes

import (
	"petfectly_server/auth"
	"petfectly_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterDiscoveryRoutes sets up swipe session routes under /api/discover
func RegisterDiscoveryRoutes(r *mux.Router, sessions controllers.DiscoverySessions, tokens *auth.Issuer) {
	controller := controllers.NewDiscoveryController(sessions)

	discoverRouter := r.PathPrefix("/api/discover/sessions").Subrouter()
	discoverRouter.Use(auth.RequireAuth(tokens))

	discoverRouter.HandleFunc("", controller.StartSession).Methods("POST")
	discoverRouter.HandleFunc("/{sessionId}", controller.GetSession).Methods("GET")
	discoverRouter.HandleFunc("/{sessionId}", controller.EndSession).Methods("DELETE")
	discoverRouter.HandleFunc("/{sessionId}/like", controller.Like).Methods("POST")
	discoverRouter.HandleFunc("/{sessionId}/dislike", controller.Dislike).Methods("POST")
	discoverRouter.HandleFunc("/{sessionId}/swipe", controller.Swipe).Methods("POST")
	discoverRouter.HandleFunc("/{sessionId}/images/next", controller.NextImage).Methods("POST")
	discoverRouter.HandleFunc("/{sessionId}/images/prev", controller.PrevImage).Methods("POST")
	discoverRouter.HandleFunc("/{sessionId}/match/dismiss", controller.DismissMatch).Methods("POST")
	discoverRouter.HandleFunc("/{sessionId}/reload", controller.Reload).Methods("POST")
}

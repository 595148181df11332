package routes

import (
	"petfectly_server/auth"
	"petfectly_server/controllers"
	"petfectly_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up routes for chat-related operations under /api/chat
func RegisterChatRoutes(
	r *mux.Router,
	chatService *services.ChatService,
	matchService *services.MatchService,
	broadcaster controllers.MessageBroadcaster,
	tokens *auth.Issuer,
) {
	controller := controllers.NewChatController(chatService, matchService, broadcaster)

	chatRouter := r.PathPrefix("/api/chat").Subrouter()
	chatRouter.Use(auth.RequireAuth(tokens))
	chatRouter.HandleFunc("/message", controller.SendMessage).Methods("POST")
	chatRouter.HandleFunc("/messages", controller.GetMessages).Methods("GET")
}

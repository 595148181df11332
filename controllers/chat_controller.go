package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"petfectly_server/models"
	"petfectly_server/services"
	"petfectly_server/utils"
)

// MessageBroadcaster pushes stored messages to connected clients
type MessageBroadcaster interface {
	BroadcastMessage(msg models.Message)
}

// MatchLookup resolves a match id
type MatchLookup interface {
	GetMatch(ctx context.Context, matchID string) (*models.Match, error)
}

// ChatController handles messages exchanged inside a match
type ChatController struct {
	Chat        *services.ChatService
	Matches     MatchLookup
	Broadcaster MessageBroadcaster
}

// NewChatController initializes the controller; broadcaster may be nil
func NewChatController(chat *services.ChatService, matches MatchLookup, broadcaster MessageBroadcaster) *ChatController {
	return &ChatController{Chat: chat, Matches: matches, Broadcaster: broadcaster}
}

// SendMessage stores a message and pushes it to the match room
func (c *ChatController) SendMessage(w http.ResponseWriter, r *http.Request) {
	senderID, ok := callerID(w, r)
	if !ok {
		return
	}

	var request struct {
		MatchID string `json:"matchId"`
		Content string `json:"content"`
	}
	if err := utils.DecodeJSON(r, &request); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !c.authorize(w, r, request.MatchID, senderID) {
		return
	}

	message, err := c.Chat.SendMessage(r.Context(), request.MatchID, senderID, request.Content)
	if errors.Is(err, services.ErrInvalidInput) {
		utils.WriteError(w, http.StatusBadRequest, "matchId and content are required")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	if c.Broadcaster != nil {
		c.Broadcaster.BroadcastMessage(*message)
	}
	utils.WriteJSONResponse(w, http.StatusCreated, message)
}

// GetMessages returns the latest messages of a match
func (c *ChatController) GetMessages(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := callerID(w, r)
	if !ok {
		return
	}

	matchID := r.URL.Query().Get("matchId")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.WriteError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}
	if !c.authorize(w, r, matchID, viewerID) {
		return
	}

	messages, err := c.Chat.GetMessagesByMatchID(r.Context(), matchID, limit)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, messages)
}

// authorize checks that the match exists and belongs to userID
func (c *ChatController) authorize(w http.ResponseWriter, r *http.Request, matchID, userID string) bool {
	if matchID == "" {
		utils.WriteError(w, http.StatusBadRequest, "matchId is required")
		return false
	}
	match, err := c.Matches.GetMatch(r.Context(), matchID)
	if errors.Is(err, services.ErrMatchNotFound) || (err == nil && !services.IsParticipant(match, userID)) {
		utils.WriteError(w, http.StatusNotFound, "Match not found")
		return false
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load match")
		return false
	}
	return true
}

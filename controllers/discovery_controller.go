package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"petfectly_server/discovery"
	"petfectly_server/services"
	"petfectly_server/utils"

	"github.com/gorilla/mux"
)

// DiscoverySessions is the part of the discovery service the controller drives
type DiscoverySessions interface {
	Start(ctx context.Context, viewerID string) (discovery.Snapshot, error)
	Session(viewerID, sessionID string) (*discovery.Session, error)
	Reload(ctx context.Context, viewerID, sessionID string) (discovery.Snapshot, error)
	End(viewerID, sessionID string) error
}

// DiscoveryController exposes swipe sessions over HTTP. Actions return 202 with
// the snapshot taken right after the action; delayed outcomes arrive over the socket.
type DiscoveryController struct {
	Sessions DiscoverySessions
}

// NewDiscoveryController initializes the controller
func NewDiscoveryController(sessions DiscoverySessions) *DiscoveryController {
	return &DiscoveryController{Sessions: sessions}
}

// StartSession opens a session for the caller
func (c *DiscoveryController) StartSession(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := callerID(w, r)
	if !ok {
		return
	}
	snap, err := c.Sessions.Start(r.Context(), viewerID)
	if err != nil {
		log.Printf("❌ Failed to start discovery for %s: %v", viewerID, err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to start discovery")
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, snap)
}

// GetSession returns the current snapshot
func (c *DiscoveryController) GetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := c.lookup(w, r)
	if !ok {
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, session.Snapshot())
}

// EndSession closes the session
func (c *DiscoveryController) EndSession(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := callerID(w, r)
	if !ok {
		return
	}
	if err := c.Sessions.End(viewerID, mux.Vars(r)["sessionId"]); err != nil {
		writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *DiscoveryController) Like(w http.ResponseWriter, r *http.Request) {
	c.act(w, r, (*discovery.Session).Like)
}

func (c *DiscoveryController) Dislike(w http.ResponseWriter, r *http.Request) {
	c.act(w, r, (*discovery.Session).Dislike)
}

func (c *DiscoveryController) NextImage(w http.ResponseWriter, r *http.Request) {
	c.act(w, r, (*discovery.Session).NextImage)
}

func (c *DiscoveryController) PrevImage(w http.ResponseWriter, r *http.Request) {
	c.act(w, r, (*discovery.Session).PrevImage)
}

func (c *DiscoveryController) DismissMatch(w http.ResponseWriter, r *http.Request) {
	c.act(w, r, (*discovery.Session).DismissMatch)
}

// Swipe classifies a gesture given as start and end x coordinates
func (c *DiscoveryController) Swipe(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Start *float64 `json:"start"`
		End   *float64 `json:"end"`
	}
	if err := utils.DecodeJSON(r, &request); err != nil || request.Start == nil || request.End == nil {
		utils.WriteError(w, http.StatusBadRequest, "start and end are required")
		return
	}

	session, ok := c.lookup(w, r)
	if !ok {
		return
	}
	direction := session.Swipe(*request.Start, *request.End)
	utils.WriteJSONResponse(w, http.StatusAccepted, map[string]interface{}{
		"direction": direction,
		"state":     session.Snapshot(),
	})
}

// Reload replaces the session's candidates with a fresh feed
func (c *DiscoveryController) Reload(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := callerID(w, r)
	if !ok {
		return
	}
	snap, err := c.Sessions.Reload(r.Context(), viewerID, mux.Vars(r)["sessionId"])
	if err != nil {
		writeSessionError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusAccepted, snap)
}

func (c *DiscoveryController) act(w http.ResponseWriter, r *http.Request, action func(*discovery.Session)) {
	session, ok := c.lookup(w, r)
	if !ok {
		return
	}
	action(session)
	utils.WriteJSONResponse(w, http.StatusAccepted, session.Snapshot())
}

func (c *DiscoveryController) lookup(w http.ResponseWriter, r *http.Request) (*discovery.Session, bool) {
	viewerID, ok := callerID(w, r)
	if !ok {
		return nil, false
	}
	session, err := c.Sessions.Session(viewerID, mux.Vars(r)["sessionId"])
	if err != nil {
		writeSessionError(w, err)
		return nil, false
	}
	return session, true
}

func writeSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrSessionNotFound) {
		utils.WriteError(w, http.StatusNotFound, "Session not found")
		return
	}
	log.Printf("❌ Discovery error: %v", err)
	utils.WriteError(w, http.StatusInternalServerError, "Discovery request failed")
}

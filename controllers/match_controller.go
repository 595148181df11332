package controllers

import (
	"net/http"

	"petfectly_server/services"
	"petfectly_server/utils"
)

// MatchController serves the caller's match list
type MatchController struct {
	Matches *services.MatchService
}

// NewMatchController initializes the controller
func NewMatchController(matches *services.MatchService) *MatchController {
	return &MatchController{Matches: matches}
}

// GetMatches returns every match of the caller, newest first
func (c *MatchController) GetMatches(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := callerID(w, r)
	if !ok {
		return
	}
	matches, err := c.Matches.GetMatches(r.Context(), viewerID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch matches")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, matches)
}

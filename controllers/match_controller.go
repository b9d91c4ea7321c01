package controllers

import (
	"net/http"

	"kindler_server/services"
	"kindler_server/utils"

	"github.com/gorilla/mux"
)

// MatchController handles HTTP requests for match reads
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

// HandleGetMatches - list the caller's matches, newest first
func (c *MatchController) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	requesterID := utils.RequesterID(r)
	if requesterID == "" {
		utils.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "MISSING_USER", "message": "X-User-ID header is required"})
		return
	}

	page, limit := utils.ParsePagination(r)

	result, err := c.MatchService.GetMatches(r.Context(), requesterID, page, limit)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

// HandleGetMatchByID - fetch one match the caller participates in
func (c *MatchController) HandleGetMatchByID(w http.ResponseWriter, r *http.Request) {
	requesterID := utils.RequesterID(r)
	if requesterID == "" {
		utils.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "MISSING_USER", "message": "X-User-ID header is required"})
		return
	}

	matchID := mux.Vars(r)["matchId"]

	detail, err := c.MatchService.GetMatchByID(r.Context(), requesterID, matchID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, detail)
}

package controllers

import (
	"net/http"

	"kindler_server/services"
	"kindler_server/utils"
)

// DiscoveryController handles the candidate feed endpoint
type DiscoveryController struct {
	DiscoveryService *services.DiscoveryService
}

// NewDiscoveryController creates a new DiscoveryController instance
func NewDiscoveryController(discoveryService *services.DiscoveryService) *DiscoveryController {
	return &DiscoveryController{DiscoveryService: discoveryService}
}

// HandleGetDiscovery - fetch a page of swipeable candidates
func (c *DiscoveryController) HandleGetDiscovery(w http.ResponseWriter, r *http.Request) {
	requesterID := utils.RequesterID(r)
	if requesterID == "" {
		utils.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "MISSING_USER", "message": "X-User-ID header is required"})
		return
	}

	page, limit := utils.ParsePagination(r)

	result, err := c.DiscoveryService.GetCandidates(r.Context(), requesterID, page, limit)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

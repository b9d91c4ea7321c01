package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"kindler_server/services"
	"kindler_server/utils"
)

// SwipeController handles HTTP requests for swipe actions
type SwipeController struct {
	SwipeService *services.SwipeService
}

// NewSwipeController creates a new SwipeController instance
func NewSwipeController(swipeService *services.SwipeService) *SwipeController {
	return &SwipeController{SwipeService: swipeService}
}

// HandleSwipe - record a LIKE or PASS on another user
func (c *SwipeController) HandleSwipe(w http.ResponseWriter, r *http.Request) {
	requesterID := utils.RequesterID(r)
	if requesterID == "" {
		utils.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "MISSING_USER", "message": "X-User-ID header is required"})
		return
	}

	var request struct {
		TargetUserID string `json:"targetUserId"`
		Action       string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.TargetUserID == "" {
		utils.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "INVALID_BODY", "message": "targetUserId and action are required"})
		return
	}

	log.Printf("👆 %s swiped %s on %s", requesterID, request.Action, request.TargetUserID)

	result, err := c.SwipeService.Swipe(r.Context(), requesterID, request.TargetUserID, request.Action)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, result)
}

package controllers

import (
	"net/http"

	"kindler_server/services"
	"kindler_server/utils"
)

// NotificationController handles notification read-back
type NotificationController struct {
	NotificationService *services.NotificationService
}

// NewNotificationController creates a new NotificationController instance
func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// HandleGetNotifications - fetch the caller's notifications
func (c *NotificationController) HandleGetNotifications(w http.ResponseWriter, r *http.Request) {
	requesterID := utils.RequesterID(r)
	if requesterID == "" {
		utils.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "MISSING_USER", "message": "X-User-ID header is required"})
		return
	}

	notifications, err := c.NotificationService.GetNotifications(r.Context(), requesterID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": notifications})
}

package controllers

import (
	"encoding/json"
	"net/http"

	"talkalot_server/services"
)

// NotificationController handles HTTP requests for the notification log
type NotificationController struct {
	NotificationService *services.NotificationService
}

// NewNotificationController creates a new NotificationController instance
func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// HandleList returns the newest notifications for a user
func (nc *NotificationController) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userID")
	if userID == "" {
		http.Error(w, "userID is required", http.StatusBadRequest)
		return
	}

	notifs, err := nc.NotificationService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifs)
}

// HandleMarkSeen marks all of a user's notifications as seen
func (nc *NotificationController) HandleMarkSeen(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"userID"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := nc.NotificationService.MarkAllSeen(r.Context(), request.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

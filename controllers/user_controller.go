package controllers

import (
	"encoding/json"
	"net/http"

	"talkalot_server/services"
)

// UserController handles HTTP requests for identity and presence
type UserController struct {
	UserService *services.UserService
}

// NewUserController creates a new UserController instance
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{UserService: userService}
}

// HandleRegister creates a new anonymous attendee
func (uc *UserController) HandleRegister(w http.ResponseWriter, r *http.Request) {
	user, err := uc.UserService.Register(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"userID": user.UserID})
}

// HandleJoinFair marks the user present at the event
func (uc *UserController) HandleJoinFair(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"userID"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := uc.UserService.JoinFair(r.Context(), request.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "success", "insideFair": true})
}

// HandleLeaveFair marks the user absent
func (uc *UserController) HandleLeaveFair(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"userID"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := uc.UserService.LeaveFair(r.Context(), request.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "success", "insideFair": false})
}

// HandleStatus reports presence and unread count, refreshing the session
func (uc *UserController) HandleStatus(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userID")
	if userID == "" {
		http.Error(w, "userID is required", http.StatusBadRequest)
		return
	}

	status, err := uc.UserService.Status(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// HandleUpdateInterests replaces the user's interest tags
func (uc *UserController) HandleUpdateInterests(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID            string   `json:"userID"`
		InterestTags      []string `json:"interestTags"`
		FreeTextInterests string   `json:"freeTextInterests"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	err := uc.UserService.UpdateInterests(r.Context(), request.UserID, request.InterestTags, request.FreeTextInterests)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

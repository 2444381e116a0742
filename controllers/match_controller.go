package controllers

import (
	"encoding/json"
	"net/http"

	"talkalot_server/services"

	"github.com/gorilla/mux"
)

// MatchController handles HTTP requests for matches and the confirmation
// handshake
type MatchController struct {
	MatchService     *services.MatchService
	HandshakeService *services.HandshakeService
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matchService *services.MatchService, handshakeService *services.HandshakeService) *MatchController {
	return &MatchController{MatchService: matchService, HandshakeService: handshakeService}
}

// HandleListMatches lists the caller's matches, newest first
func (mc *MatchController) HandleListMatches(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userID")
	if userID == "" {
		http.Error(w, "userID is required", http.StatusBadRequest)
		return
	}

	matches, err := mc.MatchService.ListMatches(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// HandleConfirm records one party's opt-in on a match
func (mc *MatchController) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]
	var request struct {
		UserID string `json:"userID"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	result, err := mc.HandshakeService.Confirm(r.Context(), matchID, request.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleGetStatus reports the handshake state for one party
func (mc *MatchController) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]
	userID := r.URL.Query().Get("userID")
	if userID == "" {
		http.Error(w, "userID is required", http.StatusBadRequest)
		return
	}

	status, err := mc.HandshakeService.GetStatus(r.Context(), matchID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

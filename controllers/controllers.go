package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"talkalot_server/repositories"
	"talkalot_server/services"
)

// WelcomeHandler greets callers on the root route
func WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "Welcome to Talkalot")
}

// HealthCheckHandler reports service health
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

// writeJSON sends a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeServiceError maps service-layer errors onto HTTP status codes
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, repositories.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, services.ErrSelfLike):
		http.Error(w, "Cannot like your own post", http.StatusBadRequest)
	case errors.Is(err, repositories.ErrConflict):
		http.Error(w, "Conflict", http.StatusConflict)
	case errors.Is(err, repositories.ErrUnavailable):
		http.Error(w, "Storage unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

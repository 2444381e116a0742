package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"talkalot_server/repositories"
	"talkalot_server/services"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheckHandler(t *testing.T) {
	recorder := httptest.NewRecorder()
	HealthCheckHandler(recorder, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, recorder.Body.String())
}

func TestWriteServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", repositories.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", repositories.ErrNotFound), http.StatusNotFound},
		{"forbidden", repositories.ErrForbidden, http.StatusForbidden},
		{"self like", services.ErrSelfLike, http.StatusBadRequest},
		{"conflict", repositories.ErrConflict, http.StatusConflict},
		{"unavailable", repositories.ErrUnavailable, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			writeServiceError(recorder, tt.err)
			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}

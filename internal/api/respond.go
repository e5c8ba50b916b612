package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/oral0005/backend-posylka/internal/apperr"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// respondError maps the failure taxonomy onto HTTP statuses. Anything
// outside the taxonomy is an internal error and is logged, not leaked.
func respondError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperr.ErrInvalidState):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrUpstream):
		status = http.StatusBadGateway
	default:
		slog.Error("internal error", "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	respondJSON(w, status, map[string]string{"error": err.Error()})
}

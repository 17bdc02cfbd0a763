package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/courtside/sports-league-backend-go/league"
)

// envelope is the JSON response shape shared by every endpoint.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{
		Success: true,
		Data:    data,
		Message: message,
	}); err != nil {
		slog.Error("failed to encode response : " + err.Error())
	}
}

func respondFailure(w http.ResponseWriter, status int, message string, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{
		Success: false,
		Message: message,
		Error:   detail,
	}); err != nil {
		slog.Error("failed to encode error response : " + err.Error())
	}
}

// respondError maps the service error taxonomy onto HTTP statuses. The
// store-level detail never reaches the client, only the taxonomy text.
func respondError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, league.ErrValidation):
		respondFailure(w, http.StatusBadRequest, "Validation error", err.Error())
	case errors.Is(err, league.ErrNotFound):
		respondFailure(w, http.StatusNotFound, message, err.Error())
	case errors.Is(err, league.ErrConflict):
		respondFailure(w, http.StatusConflict, message, err.Error())
	case errors.Is(err, league.ErrReferential):
		respondFailure(w, http.StatusBadRequest, message, err.Error())
	case errors.Is(err, league.ErrUnavailable):
		respondFailure(w, http.StatusServiceUnavailable, message, err.Error())
	default:
		respondFailure(w, http.StatusInternalServerError, message, err.Error())
	}
}

package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/courtside/sports-league-backend-go/league"
)

func queryLimit(r *http.Request, fallback int) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return fallback
	}
	limit, err := strconv.Atoi(v)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}

func (s *server) listEvents(w http.ResponseWriter, r *http.Request) {
	gameID, err := queryID(r, "game_id")
	if err != nil {
		respondError(w, "Invalid game_id filter", err)
		return
	}
	teamID, err := queryID(r, "team_id")
	if err != nil {
		respondError(w, "Invalid team_id filter", err)
		return
	}
	events, err := s.queries.Events(r.Context(), gameID, teamID, queryLimit(r, 50))
	if err != nil {
		respondError(w, "Failed to fetch score events", err)
		return
	}
	respondJSON(w, http.StatusOK, events, "")
}

func (s *server) recentEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.queries.RecentEvents(r.Context(), queryLimit(r, 20))
	if err != nil {
		respondError(w, "Failed to fetch recent events", err)
		return
	}
	respondJSON(w, http.StatusOK, events, "")
}

func (s *server) createEvent(w http.ResponseWriter, r *http.Request) {
	var in league.RecordScoreInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondFailure(w, http.StatusBadRequest, "Validation error", "malformed request body")
		return
	}
	id, err := s.scores.Record(r.Context(), in)
	if err != nil {
		respondError(w, "Failed to create score event", err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]uint{"id": id}, "Score event created successfully")
}

func (s *server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, "Invalid event id", err)
		return
	}
	if err := s.scores.Delete(r.Context(), id); err != nil {
		respondError(w, "Failed to delete score event", err)
		return
	}
	respondJSON(w, http.StatusOK, nil, "Score event deleted successfully")
}

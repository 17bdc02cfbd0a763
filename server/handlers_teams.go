package server

import (
	"encoding/json"
	"net/http"

	"github.com/courtside/sports-league-backend-go/league"
)

func (s *server) listTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.queries.Teams(r.Context())
	if err != nil {
		respondError(w, "Failed to fetch teams", err)
		return
	}
	respondJSON(w, http.StatusOK, teams, "")
}

func (s *server) getTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, "Invalid team id", err)
		return
	}
	team, err := s.queries.TeamByID(r.Context(), id)
	if err != nil {
		respondError(w, "Team not found", err)
		return
	}
	respondJSON(w, http.StatusOK, team, "")
}

func (s *server) getTeamStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, "Invalid team id", err)
		return
	}
	stats, err := s.queries.TeamStats(r.Context(), id)
	if err != nil {
		respondError(w, "Failed to fetch team statistics", err)
		return
	}
	respondJSON(w, http.StatusOK, stats, "")
}

func (s *server) createTeam(w http.ResponseWriter, r *http.Request) {
	var in league.TeamInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondFailure(w, http.StatusBadRequest, "Validation error", "malformed request body")
		return
	}
	id, err := s.teams.CreateTeam(r.Context(), in)
	if err != nil {
		respondError(w, "Failed to create team", err)
		return
	}
	team, err := s.queries.TeamByID(r.Context(), id)
	if err != nil {
		respondError(w, "Failed to fetch created team", err)
		return
	}
	respondJSON(w, http.StatusCreated, team, "Team created successfully")
}

func (s *server) updateTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, "Invalid team id", err)
		return
	}
	var in league.TeamInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondFailure(w, http.StatusBadRequest, "Validation error", "malformed request body")
		return
	}
	if err := s.teams.UpdateTeam(r.Context(), id, in); err != nil {
		respondError(w, "Failed to update team", err)
		return
	}
	team, err := s.queries.TeamByID(r.Context(), id)
	if err != nil {
		respondError(w, "Failed to fetch updated team", err)
		return
	}
	respondJSON(w, http.StatusOK, team, "Team updated successfully")
}

func (s *server) deleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, "Invalid team id", err)
		return
	}
	if err := s.teams.DeleteTeam(r.Context(), id); err != nil {
		respondError(w, "Failed to delete team", err)
		return
	}
	respondJSON(w, http.StatusOK, nil, "Team deleted successfully")
}

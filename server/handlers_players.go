package server

import (
	"encoding/json"
	"net/http"

	"github.com/courtside/sports-league-backend-go/league"
)

func (s *server) listPlayers(w http.ResponseWriter, r *http.Request) {
	teamID, err := queryID(r, "team_id")
	if err != nil {
		respondError(w, "Invalid team_id filter", err)
		return
	}
	players, err := s.queries.Players(r.Context(), teamID)
	if err != nil {
		respondError(w, "Failed to fetch players", err)
		return
	}
	respondJSON(w, http.StatusOK, players, "")
}

func (s *server) getPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, "Invalid player id", err)
		return
	}
	player, err := s.queries.PlayerByID(r.Context(), id)
	if err != nil {
		respondError(w, "Player not found", err)
		return
	}
	respondJSON(w, http.StatusOK, player, "")
}

func (s *server) getPlayerStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, "Invalid player id", err)
		return
	}
	gameID, err := queryID(r, "game_id")
	if err != nil {
		respondError(w, "Invalid game_id filter", err)
		return
	}
	stats, err := s.queries.PlayerStats(r.Context(), id, gameID)
	if err != nil {
		respondError(w, "Failed to fetch player statistics", err)
		return
	}
	respondJSON(w, http.StatusOK, stats, "")
}

func (s *server) createPlayer(w http.ResponseWriter, r *http.Request) {
	var in league.PlayerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondFailure(w, http.StatusBadRequest, "Validation error", "malformed request body")
		return
	}
	id, err := s.teams.CreatePlayer(r.Context(), in)
	if err != nil {
		respondError(w, "Failed to create player", err)
		return
	}
	player, err := s.queries.PlayerByID(r.Context(), id)
	if err != nil {
		respondError(w, "Failed to fetch created player", err)
		return
	}
	respondJSON(w, http.StatusCreated, player, "Player created successfully")
}

func (s *server) updatePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, "Invalid player id", err)
		return
	}
	var in league.PlayerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondFailure(w, http.StatusBadRequest, "Validation error", "malformed request body")
		return
	}
	if err := s.teams.UpdatePlayer(r.Context(), id, in); err != nil {
		respondError(w, "Failed to update player", err)
		return
	}
	player, err := s.queries.PlayerByID(r.Context(), id)
	if err != nil {
		respondError(w, "Failed to fetch updated player", err)
		return
	}
	respondJSON(w, http.StatusOK, player, "Player updated successfully")
}

func (s *server) updatePlayerStat(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathID(r, "id")
	if err != nil {
		respondError(w, "Invalid player id", err)
		return
	}
	gameID, err := pathID(r, "gameId")
	if err != nil {
		respondError(w, "Invalid game id", err)
		return
	}
	var in league.PlayerStatInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondFailure(w, http.StatusBadRequest, "Validation error", "malformed request body")
		return
	}
	if err := s.teams.SetPlayerStat(r.Context(), gameID, playerID, in); err != nil {
		respondError(w, "Failed to update player statistics", err)
		return
	}
	respondJSON(w, http.StatusOK, nil, "Player statistics updated successfully")
}

func (s *server) deletePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, "Invalid player id", err)
		return
	}
	if err := s.teams.DeletePlayer(r.Context(), id); err != nil {
		respondError(w, "Failed to delete player", err)
		return
	}
	respondJSON(w, http.StatusOK, nil, "Player deleted successfully")
}

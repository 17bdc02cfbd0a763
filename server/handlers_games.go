package server

import (
	"encoding/json"
	"net/http"

	"github.com/courtside/sports-league-backend-go/league"
	"github.com/courtside/sports-league-backend-go/model"
)

func (s *server) listGames(w http.ResponseWriter, r *http.Request) {
	var status *model.GameStatus
	if v := r.URL.Query().Get("status"); v != "" {
		st, err := model.GameStatusFromString(v)
		if err != nil {
			respondFailure(w, http.StatusBadRequest, "Validation error", err.Error())
			return
		}
		status = &st
	}
	var sport *model.Sport
	if v := r.URL.Query().Get("sport"); v != "" {
		sp, err := model.SportFromString(v)
		if err != nil {
			respondFailure(w, http.StatusBadRequest, "Validation error", err.Error())
			return
		}
		sport = &sp
	}
	games, err := s.queries.Games(r.Context(), status, sport)
	if err != nil {
		respondError(w, "Failed to fetch games", err)
		return
	}
	respondJSON(w, http.StatusOK, games, "")
}

func (s *server) listGamesByStatus(status model.GameStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games, err := s.queries.Games(r.Context(), &status, nil)
		if err != nil {
			respondError(w, "Failed to fetch games", err)
			return
		}
		respondJSON(w, http.StatusOK, games, "")
	}
}

func (s *server) getGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, "Invalid game id", err)
		return
	}
	game, err := s.queries.GameByID(r.Context(), id)
	if err != nil {
		respondError(w, "Game not found", err)
		return
	}
	respondJSON(w, http.StatusOK, game, "")
}

func (s *server) getGameInfo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, "Invalid game id", err)
		return
	}
	info, err := s.queries.GameInfo(r.Context(), id)
	if err != nil {
		respondError(w, "Game not found", err)
		return
	}
	respondJSON(w, http.StatusOK, info, "")
}

func (s *server) createGame(w http.ResponseWriter, r *http.Request) {
	var in league.CreateGameInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondFailure(w, http.StatusBadRequest, "Validation error", "malformed request body")
		return
	}
	id, err := s.games.Create(r.Context(), in)
	if err != nil {
		respondError(w, "Failed to create game", err)
		return
	}
	game, err := s.queries.GameByID(r.Context(), id)
	if err != nil {
		respondError(w, "Failed to fetch created game", err)
		return
	}
	respondJSON(w, http.StatusCreated, game, "Game created successfully")
}

func (s *server) updateGameScore(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, "Invalid game id", err)
		return
	}
	var in league.UpdateScoreInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondFailure(w, http.StatusBadRequest, "Validation error", "malformed request body")
		return
	}
	if err := s.games.UpdateScore(r.Context(), id, in); err != nil {
		respondError(w, "Failed to update game score", err)
		return
	}
	game, err := s.queries.GameByID(r.Context(), id)
	if err != nil {
		respondError(w, "Failed to fetch updated game", err)
		return
	}
	respondJSON(w, http.StatusOK, game, "Game score updated successfully")
}

func (s *server) updateGameStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, "Invalid game id", err)
		return
	}
	var body struct {
		Status model.GameStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondFailure(w, http.StatusBadRequest, "Validation error", "malformed request body")
		return
	}
	if err := s.games.UpdateStatus(r.Context(), id, body.Status); err != nil {
		respondError(w, "Failed to update game status", err)
		return
	}
	game, err := s.queries.GameByID(r.Context(), id)
	if err != nil {
		respondError(w, "Failed to fetch updated game", err)
		return
	}
	respondJSON(w, http.StatusOK, game, "Game status updated successfully")
}

func (s *server) deleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, "Invalid game id", err)
		return
	}
	if err := s.games.Delete(r.Context(), id); err != nil {
		respondError(w, "Failed to delete game", err)
		return
	}
	respondJSON(w, http.StatusOK, nil, "Game deleted successfully")
}

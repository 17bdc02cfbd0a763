package server

import "net/http"

func (s *server) handleDocs(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"teams": map[string]string{
			"GET /api/teams":           "Get all teams",
			"GET /api/teams/:id":       "Get team by ID",
			"GET /api/teams/:id/stats": "Get team statistics",
			"POST /api/teams":          "Create new team",
			"PUT /api/teams/:id":       "Update team",
			"DELETE /api/teams/:id":    "Delete team",
		},
		"players": map[string]string{
			"GET /api/players":                   "Get all players",
			"GET /api/players/:id":               "Get player by ID",
			"GET /api/players/:id/stats":         "Get player statistics",
			"POST /api/players":                  "Create new player",
			"PUT /api/players/:id":               "Update player",
			"PUT /api/players/:id/stats/:gameId": "Update player stats",
			"DELETE /api/players/:id":            "Delete player",
		},
		"games": map[string]string{
			"GET /api/games":            "Get all games (with filters)",
			"GET /api/games/live":       "Get live games",
			"GET /api/games/upcoming":   "Get upcoming games",
			"GET /api/games/finished":   "Get finished games",
			"GET /api/games/:id":        "Get game by ID",
			"GET /api/games/:id/info":   "Get detailed game info",
			"POST /api/games":           "Create new game",
			"PUT /api/games/:id/score":  "Update game score",
			"PUT /api/games/:id/status": "Update game status",
			"DELETE /api/games/:id":     "Delete game",
		},
		"events": map[string]string{
			"GET /api/events":        "Get score events (with filters)",
			"GET /api/events/recent": "Get recent events",
			"POST /api/events":       "Create score event",
			"DELETE /api/events/:id": "Delete score event",
		},
		"websocket": map[string]string{
			"/ws": "WebSocket endpoint for live updates",
		},
	}, "Sports League API v1.0.0")
}

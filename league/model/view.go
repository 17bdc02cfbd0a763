package model

import (
	"time"

	sharedmodel "github.com/courtside/sports-league-backend-go/model"
)

// Read-side projections, joined for display: names instead of ids,
// aggregated counts, nested game detail.

type TeamSummary struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	LeaderID    *uint   `json:"leader_id"`
	LeaderName  *string `json:"leader_name"`
	PlayerCount int     `json:"player_count"`
}

type TeamDetail struct {
	ID         uint                 `json:"id"`
	Name       string               `json:"name"`
	LeaderID   *uint                `json:"leader_id"`
	LeaderName *string              `json:"leader_name"`
	Players    []sharedmodel.Player `json:"players"`
}

// TeamRecord aggregates a team's finished games.
type TeamRecord struct {
	GamesPlayed int `json:"games_played"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	Draws       int `json:"draws"`
}

type PlayerView struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	LastUpdated time.Time `json:"last_updated"`
	TeamID      *uint     `json:"team_id"`
	TeamName    *string   `json:"team_name"`
}

type PlayerStatView struct {
	GameID        uint              `json:"game_id"`
	PlayerID      uint              `json:"player_id"`
	TeamID        uint              `json:"team_id"`
	Points        int               `json:"points"`
	Runs          int               `json:"runs"`
	Balls         int               `json:"balls"`
	Wickets       int               `json:"wickets"`
	LastUpdated   time.Time         `json:"last_updated"`
	Sport         sharedmodel.Sport `json:"sport"`
	ScheduledTime time.Time         `json:"scheduled_time"`
	Team1Name     string            `json:"team1_name"`
	Team2Name     string            `json:"team2_name"`
}

type GameSummary struct {
	ID            uint                   `json:"id"`
	Sport         sharedmodel.Sport      `json:"sport"`
	Status        sharedmodel.GameStatus `json:"status"`
	ScheduledTime time.Time              `json:"scheduled_time"`
	Team1Score    int                    `json:"team1_score"`
	Team2Score    int                    `json:"team2_score"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	Team1Name     string                 `json:"team1_name"`
	Team2Name     string                 `json:"team2_name"`
}

// CricketData is the cricket arm of the sport-tagged game detail,
// present on a game view only when the game's sport is CRICKET.
type CricketData struct {
	Team1Deaths        int                      `json:"team1_deaths"`
	Team2Deaths        int                      `json:"team2_deaths"`
	BattingSide        *sharedmodel.BattingSide `json:"batting_side"`
	CurrentBatsmanID   *uint                    `json:"current_batsman_id"`
	CurrentBowlerID    *uint                    `json:"current_bowler_id"`
	CurrentBatsmanName *string                  `json:"current_batsman_name"`
	CurrentBowlerName  *string                  `json:"current_bowler_name"`
}

type GameView struct {
	GameSummary
	Team1ID     uint         `json:"team1_id"`
	Team2ID     uint         `json:"team2_id"`
	CricketData *CricketData `json:"cricket_data,omitempty"`
}

type GameStatView struct {
	GameID      uint      `json:"game_id"`
	PlayerID    uint      `json:"player_id"`
	TeamID      uint      `json:"team_id"`
	Points      int       `json:"points"`
	Runs        int       `json:"runs"`
	Balls       int       `json:"balls"`
	Wickets     int       `json:"wickets"`
	LastUpdated time.Time `json:"last_updated"`
	PlayerName  string    `json:"player_name"`
	TeamName    string    `json:"team_name"`
}

type EventView struct {
	ID          uint                     `json:"id"`
	GameID      uint                     `json:"game_id"`
	TeamID      uint                     `json:"team_id"`
	PlayerID    *uint                    `json:"player_id"`
	Sport       sharedmodel.Sport        `json:"sport"`
	Points      int                      `json:"points"`
	Runs        int                      `json:"runs"`
	Wicket      bool                     `json:"wicket"`
	BattingSide *sharedmodel.BattingSide `json:"batting_side,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	PlayerName  *string                  `json:"player_name"`
	TeamName    string                   `json:"team_name"`
	GameSport   sharedmodel.Sport        `json:"game_sport"`
	Team1Name   *string                  `json:"team1_name,omitempty"`
	Team2Name   *string                  `json:"team2_name,omitempty"`
}

type GameInfo struct {
	GameView
	PlayerStats []GameStatView `json:"player_stats"`
	ScoreEvents []EventView    `json:"score_events"`
}

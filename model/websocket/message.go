package modelwebsocket

import (
	"errors"
	"time"

	"github.com/courtside/sports-league-backend-go/model"
)

type Action string

const (
	JoinGame  Action = "join_game"
	LeaveGame Action = "leave_game"
)

var ClientActions = []Action{
	JoinGame,
	LeaveGame,
}

const (
	Connected  Action = "connected"
	ScoreEvent Action = "score_event"
	GameUpdate Action = "game_update"
)

var ServerActions = []Action{
	Connected,
	ScoreEvent,
	GameUpdate,
}

func ActionFromString(a string) (Action, error) {
	switch a {
	case string(JoinGame):
		return JoinGame, nil
	case string(LeaveGame):
		return LeaveGame, nil
	case string(Connected):
		return Connected, nil
	case string(ScoreEvent):
		return ScoreEvent, nil
	case string(GameUpdate):
		return GameUpdate, nil
	}
	return "", errors.New("unsupported action name")
}

func (a Action) String() string {
	switch a {
	case JoinGame, LeaveGame, Connected, ScoreEvent, GameUpdate:
		return string(a)
	}
	return "unknown"
}

type Message struct {
	Action  Action `json:"action"`
	Content string `json:"content,omitempty"`
}

// Kind discriminates the payloads carried in a server message content.
type Kind string

const (
	KindScoreEvent   Kind = "score_event"
	KindScoreUpdate  Kind = "score_update"
	KindStatusUpdate Kind = "status_update"
)

type ConnectedPayload struct {
	ClientID  string    `json:"client_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// JoinGamePayload is the content of join_game and leave_game client
// messages.
type JoinGamePayload struct {
	GameID uint `json:"game_id"`
}

type ScoreEventPayload struct {
	Kind        Kind               `json:"kind"`
	EventID     uint               `json:"event_id"`
	GameID      uint               `json:"game_id"`
	TeamID      uint               `json:"team_id"`
	PlayerID    *uint              `json:"player_id,omitempty"`
	Sport       model.Sport        `json:"sport"`
	Points      int                `json:"points"`
	Runs        int                `json:"runs"`
	Wicket      bool               `json:"wicket"`
	BattingSide *model.BattingSide `json:"batting_side,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
}

type GameUpdatePayload struct {
	Kind       Kind             `json:"kind"`
	GameID     uint             `json:"game_id"`
	Sport      model.Sport      `json:"sport"`
	Team1Score int              `json:"team1_score"`
	Team2Score int              `json:"team2_score"`
	Status     model.GameStatus `json:"status"`
	Team1Name  string           `json:"team1_name"`
	Team2Name  string           `json:"team2_name"`
	Timestamp  time.Time        `json:"timestamp"`
}

package league

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/courtside/sports-league-backend-go/internal"
	"github.com/courtside/sports-league-backend-go/model"
	modelwebsocket "github.com/courtside/sports-league-backend-go/model/websocket"
)

// RecordScoreInput is a single scoring action to append to a game.
type RecordScoreInput struct {
	GameID      uint               `json:"game_id"`
	TeamID      uint               `json:"team_id"`
	PlayerID    *uint              `json:"player_id"`
	Sport       model.Sport        `json:"sport"`
	Points      int                `json:"points"`
	Runs        int                `json:"runs"`
	Wicket      bool               `json:"wicket"`
	BattingSide *model.BattingSide `json:"batting_side"`
}

func (in RecordScoreInput) Validate() error {
	if in.GameID == 0 {
		return validationErr("game_id is required")
	}
	if in.TeamID == 0 {
		return validationErr("team_id is required")
	}
	if !in.Sport.Valid() {
		return validationErr("invalid sport %q", in.Sport)
	}
	if in.Points < 0 {
		return validationErr("points must not be negative")
	}
	if in.Runs < 0 {
		return validationErr("runs must not be negative")
	}
	if in.BattingSide != nil && !in.BattingSide.Valid() {
		return validationErr("invalid batting side %q", *in.BattingSide)
	}
	return nil
}

// ScoreService records and deletes score events. Recording atomically
// appends the event, bumps the game's running score and accumulates the
// scoring player's statistics, then notifies live subscribers.
type ScoreService interface {
	Record(ctx context.Context, in RecordScoreInput) (uint, error)
	Delete(ctx context.Context, id uint) error
}

type scoreService struct {
	d internal.Dependencies
	b Broadcaster
}

var _ ScoreService = (*scoreService)(nil)

func NewScoreService(d internal.Dependencies, b Broadcaster) ScoreService {
	return &scoreService{d: d, b: b}
}

func (s *scoreService) Record(ctx context.Context, in RecordScoreInput) (uint, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	event := model.ScoreEvent{
		GameID:      in.GameID,
		TeamID:      in.TeamID,
		PlayerID:    in.PlayerID,
		Sport:       in.Sport,
		Points:      in.Points,
		Runs:        in.Runs,
		Wicket:      in.Wicket,
		BattingSide: in.BattingSide,
	}
	err := s.d.Database(ctx).Transaction(func(tx *gorm.DB) error {
		var game model.Game
		if err := tx.First(&game, in.GameID).Error; err != nil {
			return err
		}

		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		if in.Points > 0 {
			var column string
			switch in.TeamID {
			case game.Team1ID:
				column = "team1_score"
			case game.Team2ID:
				column = "team2_score"
			default:
				// The event is still recorded, only the running score is
				// left untouched.
				slog.Warn(fmt.Sprintf("[Record] - team %d is not a side of game %d, skipping score increment", in.TeamID, in.GameID))
			}
			if column != "" {
				if err := tx.Model(&model.Game{}).Where("id = ?", in.GameID).
					Update(column, gorm.Expr(column+" + ?", in.Points)).Error; err != nil {
					return err
				}
			}
		}

		if in.PlayerID != nil {
			wicket := 0
			if in.Wicket {
				wicket = 1
			}
			// Zero affected rows means the player is not on a roster for
			// this game, which is not an error here.
			if err := tx.Model(&model.PlayerStat{}).
				Where("game_id = ? AND player_id = ?", in.GameID, *in.PlayerID).
				Updates(map[string]interface{}{
					"points":       gorm.Expr("points + ?", in.Points),
					"runs":         gorm.Expr("runs + ?", in.Runs),
					"wickets":      gorm.Expr("wickets + ?", wicket),
					"last_updated": time.Now(),
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, classify(err)
	}

	s.publishScoreEvent(event)
	return event.ID, nil
}

// publishScoreEvent notifies live subscribers after the commit. Failures
// are swallowed, the recording already succeeded.
func (s *scoreService) publishScoreEvent(event model.ScoreEvent) {
	payload, err := json.Marshal(modelwebsocket.ScoreEventPayload{
		Kind:        modelwebsocket.KindScoreEvent,
		EventID:     event.ID,
		GameID:      event.GameID,
		TeamID:      event.TeamID,
		PlayerID:    event.PlayerID,
		Sport:       event.Sport,
		Points:      event.Points,
		Runs:        event.Runs,
		Wicket:      event.Wicket,
		BattingSide: event.BattingSide,
		Timestamp:   time.Now().UTC(),
	})
	if err != nil {
		slog.Error(fmt.Sprintf("failed to marshal score event payload : %s", err.Error()))
		return
	}
	s.b.PublishGame(event.GameID, modelwebsocket.Message{
		Action:  modelwebsocket.ScoreEvent,
		Content: string(payload),
	})
}

func (s *scoreService) Delete(ctx context.Context, id uint) error {
	res := s.d.Database(ctx).Delete(&model.ScoreEvent{}, id)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

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

type CreateGameInput struct {
	Sport         model.Sport      `json:"sport"`
	Status        model.GameStatus `json:"status"`
	ScheduledTime time.Time        `json:"scheduled_time"`
	Team1ID       uint             `json:"team1_id"`
	Team2ID       uint             `json:"team2_id"`
	Team1Score    int              `json:"team1_score"`
	Team2Score    int              `json:"team2_score"`

	// Cricket specific fields, ignored for other sports.
	Team1Deaths      int                `json:"team1_deaths"`
	Team2Deaths      int                `json:"team2_deaths"`
	BattingSide      *model.BattingSide `json:"batting_side"`
	CurrentBatsmanID *uint              `json:"current_batsman_id"`
	CurrentBowlerID  *uint              `json:"current_bowler_id"`
}

func (in CreateGameInput) Validate() error {
	if !in.Sport.Valid() {
		return validationErr("invalid sport %q", in.Sport)
	}
	if in.Status != "" && !in.Status.Valid() {
		return validationErr("invalid status %q", in.Status)
	}
	if in.ScheduledTime.IsZero() {
		return validationErr("scheduled_time is required")
	}
	if in.Team1ID == 0 || in.Team2ID == 0 {
		return validationErr("team1_id and team2_id are required")
	}
	if in.Team1Score < 0 || in.Team2Score < 0 {
		return validationErr("scores must not be negative")
	}
	if in.Team1Deaths < 0 || in.Team2Deaths < 0 {
		return validationErr("deaths must not be negative")
	}
	if in.BattingSide != nil && !in.BattingSide.Valid() {
		return validationErr("invalid batting side %q", *in.BattingSide)
	}
	return nil
}

type UpdateScoreInput struct {
	Team1Score int              `json:"team1_score"`
	Team2Score int              `json:"team2_score"`
	Status     model.GameStatus `json:"status"`
}

func (in UpdateScoreInput) Validate() error {
	if in.Team1Score < 0 || in.Team2Score < 0 {
		return validationErr("scores must not be negative")
	}
	if in.Status != "" && !in.Status.Valid() {
		return validationErr("invalid status %q", in.Status)
	}
	return nil
}

// GameService owns the game lifecycle: creation with the sport subtype
// row and zeroed per-player stats, direct score/status overwrites and
// deletion.
type GameService interface {
	Create(ctx context.Context, in CreateGameInput) (uint, error)
	UpdateScore(ctx context.Context, id uint, in UpdateScoreInput) error
	UpdateStatus(ctx context.Context, id uint, status model.GameStatus) error
	Delete(ctx context.Context, id uint) error
}

type gameService struct {
	d internal.Dependencies
	b Broadcaster
}

var _ GameService = (*gameService)(nil)

func NewGameService(d internal.Dependencies, b Broadcaster) GameService {
	return &gameService{d: d, b: b}
}

func (s *gameService) Create(ctx context.Context, in CreateGameInput) (uint, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	status := in.Status
	if status == "" {
		status = model.Scheduled
	}

	game := model.Game{
		Sport:         in.Sport,
		Status:        status,
		ScheduledTime: in.ScheduledTime,
		Team1ID:       in.Team1ID,
		Team2ID:       in.Team2ID,
		Team1Score:    in.Team1Score,
		Team2Score:    in.Team2Score,
	}
	err := s.d.Database(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&game).Error; err != nil {
			return err
		}

		detail := model.GameDetail{
			GameID: game.ID,
			Sport:  in.Sport,
		}
		if in.Sport == model.Cricket {
			side := model.Team1Batting
			if in.BattingSide != nil {
				side = *in.BattingSide
			}
			detail.Team1Deaths = in.Team1Deaths
			detail.Team2Deaths = in.Team2Deaths
			detail.BattingSide = &side
			detail.CurrentBatsmanID = in.CurrentBatsmanID
			detail.CurrentBowlerID = in.CurrentBowlerID
		}
		if err := tx.Create(&detail).Error; err != nil {
			return err
		}

		var players []model.Player
		if err := tx.Find(&players, "team_id IN ?", []uint{in.Team1ID, in.Team2ID}).Error; err != nil {
			return err
		}
		stats := make([]model.PlayerStat, 0, len(players))
		for _, p := range players {
			stats = append(stats, model.PlayerStat{
				GameID:      game.ID,
				PlayerID:    p.ID,
				TeamID:      *p.TeamID,
				LastUpdated: time.Now(),
			})
		}
		if len(stats) > 0 {
			if err := tx.Create(&stats).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, classify(err)
	}

	slog.Info(fmt.Sprintf("[Create] - game %d created for teams %d and %d", game.ID, in.Team1ID, in.Team2ID))
	return game.ID, nil
}

func (s *gameService) UpdateScore(ctx context.Context, id uint, in UpdateScoreInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	status := in.Status
	if status == "" {
		status = model.Live
	}

	res := s.d.Database(ctx).Model(&model.Game{}).Where("id = ?", id).Updates(map[string]interface{}{
		"team1_score": in.Team1Score,
		"team2_score": in.Team2Score,
		"status":      status,
	})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	s.publishGameUpdate(ctx, id, modelwebsocket.KindScoreUpdate)
	return nil
}

func (s *gameService) UpdateStatus(ctx context.Context, id uint, status model.GameStatus) error {
	// Any status is reachable from any status, transitions are not
	// restricted to the forward order.
	if !status.Valid() {
		return validationErr("invalid status %q", status)
	}
	res := s.d.Database(ctx).Model(&model.Game{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	s.publishGameUpdate(ctx, id, modelwebsocket.KindStatusUpdate)
	return nil
}

func (s *gameService) Delete(ctx context.Context, id uint) error {
	err := s.d.Database(ctx).Transaction(func(tx *gorm.DB) error {
		var game model.Game
		if err := tx.First(&game, id).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", id).Delete(&model.ScoreEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", id).Delete(&model.PlayerStat{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", id).Delete(&model.GameDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&game).Error
	})
	if err != nil {
		return classify(err)
	}
	slog.Info(fmt.Sprintf("[Delete] - game %d deleted with its stats and events", id))
	return nil
}

// publishGameUpdate notifies live subscribers after the commit,
// best-effort.
func (s *gameService) publishGameUpdate(ctx context.Context, id uint, kind modelwebsocket.Kind) {
	var row struct {
		ID         uint
		Sport      model.Sport
		Status     model.GameStatus
		Team1Score int
		Team2Score int
		Team1Name  string
		Team2Name  string
	}
	err := s.d.Database(ctx).Model(&model.Game{}).
		Select("games.id, games.sport, games.status, games.team1_score, games.team2_score, t1.name AS team1_name, t2.name AS team2_name").
		Joins("JOIN teams t1 ON games.team1_id = t1.id").
		Joins("JOIN teams t2 ON games.team2_id = t2.id").
		Where("games.id = ?", id).
		Scan(&row).Error
	if err != nil {
		slog.Warn(fmt.Sprintf("failed to load game %d for broadcast : %s", id, err.Error()))
		return
	}

	payload, err := json.Marshal(modelwebsocket.GameUpdatePayload{
		Kind:       kind,
		GameID:     row.ID,
		Sport:      row.Sport,
		Team1Score: row.Team1Score,
		Team2Score: row.Team2Score,
		Status:     row.Status,
		Team1Name:  row.Team1Name,
		Team2Name:  row.Team2Name,
		Timestamp:  time.Now().UTC(),
	})
	if err != nil {
		slog.Error(fmt.Sprintf("failed to marshal game update payload : %s", err.Error()))
		return
	}
	s.b.PublishGame(id, modelwebsocket.Message{
		Action:  modelwebsocket.GameUpdate,
		Content: string(payload),
	})
}

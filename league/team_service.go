package league

import (
	"context"
	"time"

	"github.com/courtside/sports-league-backend-go/internal"
	"github.com/courtside/sports-league-backend-go/model"
)

type TeamInput struct {
	Name     string `json:"name"`
	LeaderID *uint  `json:"leader_id"`
}

func (in TeamInput) Validate() error {
	if in.Name == "" {
		return validationErr("name is required")
	}
	return nil
}

type PlayerInput struct {
	Name   string `json:"name"`
	TeamID *uint  `json:"team_id"`
}

func (in PlayerInput) Validate() error {
	if in.Name == "" {
		return validationErr("name is required")
	}
	return nil
}

// PlayerStatInput is a direct overwrite of one stat row, distinct from
// the incremental event-driven path.
type PlayerStatInput struct {
	Points  int `json:"points"`
	Runs    int `json:"runs"`
	Balls   int `json:"balls"`
	Wickets int `json:"wickets"`
}

func (in PlayerStatInput) Validate() error {
	if in.Points < 0 || in.Runs < 0 || in.Balls < 0 || in.Wickets < 0 {
		return validationErr("stat counters must not be negative")
	}
	return nil
}

// TeamService covers team and player CRUD, glue over the store with no
// broadcast side effects.
type TeamService interface {
	CreateTeam(ctx context.Context, in TeamInput) (uint, error)
	UpdateTeam(ctx context.Context, id uint, in TeamInput) error
	DeleteTeam(ctx context.Context, id uint) error

	CreatePlayer(ctx context.Context, in PlayerInput) (uint, error)
	UpdatePlayer(ctx context.Context, id uint, in PlayerInput) error
	DeletePlayer(ctx context.Context, id uint) error

	SetPlayerStat(ctx context.Context, gameID, playerID uint, in PlayerStatInput) error
}

type teamService struct {
	d internal.Dependencies
}

var _ TeamService = (*teamService)(nil)

func NewTeamService(d internal.Dependencies) TeamService {
	return &teamService{d: d}
}

func (s *teamService) CreateTeam(ctx context.Context, in TeamInput) (uint, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	team := model.Team{Name: in.Name, LeaderID: in.LeaderID}
	if err := s.d.Database(ctx).Create(&team).Error; err != nil {
		return 0, classify(err)
	}
	return team.ID, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id uint, in TeamInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	res := s.d.Database(ctx).Model(&model.Team{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":      in.Name,
		"leader_id": in.LeaderID,
	})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id uint) error {
	res := s.d.Database(ctx).Delete(&model.Team{}, id)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *teamService) CreatePlayer(ctx context.Context, in PlayerInput) (uint, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	player := model.Player{Name: in.Name, TeamID: in.TeamID}
	if err := s.d.Database(ctx).Create(&player).Error; err != nil {
		return 0, classify(err)
	}
	return player.ID, nil
}

func (s *teamService) UpdatePlayer(ctx context.Context, id uint, in PlayerInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	res := s.d.Database(ctx).Model(&model.Player{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":    in.Name,
		"team_id": in.TeamID,
	})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *teamService) DeletePlayer(ctx context.Context, id uint) error {
	res := s.d.Database(ctx).Delete(&model.Player{}, id)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *teamService) SetPlayerStat(ctx context.Context, gameID, playerID uint, in PlayerStatInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	res := s.d.Database(ctx).Model(&model.PlayerStat{}).
		Where("game_id = ? AND player_id = ?", gameID, playerID).
		Updates(map[string]interface{}{
			"points":       in.Points,
			"runs":         in.Runs,
			"balls":        in.Balls,
			"wickets":      in.Wickets,
			"last_updated": time.Now(),
		})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

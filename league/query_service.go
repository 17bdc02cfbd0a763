package league

import (
	"context"
	"time"

	"github.com/courtside/sports-league-backend-go/internal"
	viewmodel "github.com/courtside/sports-league-backend-go/league/model"
	"github.com/courtside/sports-league-backend-go/model"
)

// QueryService is the read side: joined projections for display, no
// side effects.
type QueryService interface {
	Teams(ctx context.Context) ([]viewmodel.TeamSummary, error)
	TeamByID(ctx context.Context, id uint) (*viewmodel.TeamDetail, error)
	TeamStats(ctx context.Context, id uint) (*viewmodel.TeamRecord, error)

	Players(ctx context.Context, teamID *uint) ([]viewmodel.PlayerView, error)
	PlayerByID(ctx context.Context, id uint) (*viewmodel.PlayerView, error)
	PlayerStats(ctx context.Context, playerID uint, gameID *uint) ([]viewmodel.PlayerStatView, error)

	Games(ctx context.Context, status *model.GameStatus, sport *model.Sport) ([]viewmodel.GameSummary, error)
	GameByID(ctx context.Context, id uint) (*viewmodel.GameView, error)
	GameInfo(ctx context.Context, id uint) (*viewmodel.GameInfo, error)

	Events(ctx context.Context, gameID, teamID *uint, limit int) ([]viewmodel.EventView, error)
	RecentEvents(ctx context.Context, limit int) ([]viewmodel.EventView, error)
}

type queryService struct {
	d internal.Dependencies
}

var _ QueryService = (*queryService)(nil)

func NewQueryService(d internal.Dependencies) QueryService {
	return &queryService{d: d}
}

func (s *queryService) Teams(ctx context.Context) ([]viewmodel.TeamSummary, error) {
	teams := make([]viewmodel.TeamSummary, 0)
	err := s.d.Database(ctx).Model(&model.Team{}).
		Select("teams.id, teams.name, teams.leader_id, leader.name AS leader_name, COUNT(members.id) AS player_count").
		Joins("LEFT JOIN players leader ON teams.leader_id = leader.id").
		Joins("LEFT JOIN players members ON members.team_id = teams.id").
		Group("teams.id, teams.name, teams.leader_id, leader.name").
		Order("teams.name").
		Scan(&teams).Error
	if err != nil {
		return nil, classify(err)
	}
	return teams, nil
}

func (s *queryService) TeamByID(ctx context.Context, id uint) (*viewmodel.TeamDetail, error) {
	var team viewmodel.TeamDetail
	err := s.d.Database(ctx).Model(&model.Team{}).
		Select("teams.id, teams.name, teams.leader_id, leader.name AS leader_name").
		Joins("LEFT JOIN players leader ON teams.leader_id = leader.id").
		Where("teams.id = ?", id).
		Take(&team).Error
	if err != nil {
		return nil, classify(err)
	}
	team.Players = make([]model.Player, 0)
	err = s.d.Database(ctx).
		Order("name").
		Find(&team.Players, "team_id = ?", id).Error
	if err != nil {
		return nil, classify(err)
	}
	return &team, nil
}

func (s *queryService) TeamStats(ctx context.Context, id uint) (*viewmodel.TeamRecord, error) {
	if err := s.d.Database(ctx).First(&model.Team{}, id).Error; err != nil {
		return nil, classify(err)
	}
	var record viewmodel.TeamRecord
	err := s.d.Database(ctx).Raw(`
		SELECT
			COUNT(DISTINCT g.id) AS games_played,
			COALESCE(SUM(CASE WHEN g.status = 'FINISHED' AND
				((g.team1_id = @id AND g.team1_score > g.team2_score) OR
				 (g.team2_id = @id AND g.team2_score > g.team1_score))
				THEN 1 ELSE 0 END), 0) AS wins,
			COALESCE(SUM(CASE WHEN g.status = 'FINISHED' AND
				((g.team1_id = @id AND g.team1_score < g.team2_score) OR
				 (g.team2_id = @id AND g.team2_score < g.team1_score))
				THEN 1 ELSE 0 END), 0) AS losses,
			COALESCE(SUM(CASE WHEN g.status = 'FINISHED' AND g.team1_score = g.team2_score
				THEN 1 ELSE 0 END), 0) AS draws
		FROM games g
		WHERE g.team1_id = @id OR g.team2_id = @id`,
		map[string]interface{}{"id": id}).
		Scan(&record).Error
	if err != nil {
		return nil, classify(err)
	}
	return &record, nil
}

func (s *queryService) Players(ctx context.Context, teamID *uint) ([]viewmodel.PlayerView, error) {
	players := make([]viewmodel.PlayerView, 0)
	q := s.d.Database(ctx).Model(&model.Player{}).
		Select("players.id, players.name, players.last_updated, players.team_id, teams.name AS team_name").
		Joins("LEFT JOIN teams ON players.team_id = teams.id").
		Order("players.name")
	if teamID != nil {
		q = q.Where("players.team_id = ?", *teamID)
	}
	if err := q.Scan(&players).Error; err != nil {
		return nil, classify(err)
	}
	return players, nil
}

func (s *queryService) PlayerByID(ctx context.Context, id uint) (*viewmodel.PlayerView, error) {
	var player viewmodel.PlayerView
	err := s.d.Database(ctx).Model(&model.Player{}).
		Select("players.id, players.name, players.last_updated, players.team_id, teams.name AS team_name").
		Joins("LEFT JOIN teams ON players.team_id = teams.id").
		Where("players.id = ?", id).
		Take(&player).Error
	if err != nil {
		return nil, classify(err)
	}
	return &player, nil
}

func (s *queryService) PlayerStats(ctx context.Context, playerID uint, gameID *uint) ([]viewmodel.PlayerStatView, error) {
	stats := make([]viewmodel.PlayerStatView, 0)
	q := s.d.Database(ctx).Model(&model.PlayerStat{}).
		Select("player_stats.*, g.sport, g.scheduled_time, t1.name AS team1_name, t2.name AS team2_name").
		Joins("JOIN games g ON player_stats.game_id = g.id").
		Joins("JOIN teams t1 ON g.team1_id = t1.id").
		Joins("JOIN teams t2 ON g.team2_id = t2.id").
		Where("player_stats.player_id = ?", playerID).
		Order("g.scheduled_time DESC")
	if gameID != nil {
		q = q.Where("player_stats.game_id = ?", *gameID)
	}
	if err := q.Scan(&stats).Error; err != nil {
		return nil, classify(err)
	}
	return stats, nil
}

func (s *queryService) Games(ctx context.Context, status *model.GameStatus, sport *model.Sport) ([]viewmodel.GameSummary, error) {
	games := make([]viewmodel.GameSummary, 0)
	q := s.d.Database(ctx).Model(&model.Game{}).
		Select("games.id, games.sport, games.status, games.scheduled_time, games.team1_score, games.team2_score, games.created_at, games.updated_at, t1.name AS team1_name, t2.name AS team2_name").
		Joins("JOIN teams t1 ON games.team1_id = t1.id").
		Joins("JOIN teams t2 ON games.team2_id = t2.id").
		Order("games.scheduled_time DESC")
	if status != nil {
		q = q.Where("games.status = ?", *status)
	}
	if sport != nil {
		q = q.Where("games.sport = ?", *sport)
	}
	if err := q.Scan(&games).Error; err != nil {
		return nil, classify(err)
	}
	return games, nil
}

type gameRow struct {
	ID            uint
	Sport         model.Sport
	Status        model.GameStatus
	ScheduledTime time.Time
	Team1ID       uint
	Team2ID       uint
	Team1Score    int
	Team2Score    int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Team1Name     string
	Team2Name     string
}

func (r gameRow) view() *viewmodel.GameView {
	return &viewmodel.GameView{
		GameSummary: viewmodel.GameSummary{
			ID:            r.ID,
			Sport:         r.Sport,
			Status:        r.Status,
			ScheduledTime: r.ScheduledTime,
			Team1Score:    r.Team1Score,
			Team2Score:    r.Team2Score,
			CreatedAt:     r.CreatedAt,
			UpdatedAt:     r.UpdatedAt,
			Team1Name:     r.Team1Name,
			Team2Name:     r.Team2Name,
		},
		Team1ID: r.Team1ID,
		Team2ID: r.Team2ID,
	}
}

func (s *queryService) GameByID(ctx context.Context, id uint) (*viewmodel.GameView, error) {
	var row gameRow
	err := s.d.Database(ctx).Model(&model.Game{}).
		Select("games.*, t1.name AS team1_name, t2.name AS team2_name").
		Joins("JOIN teams t1 ON games.team1_id = t1.id").
		Joins("JOIN teams t2 ON games.team2_id = t2.id").
		Where("games.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, classify(err)
	}
	game := row.view()

	if row.Sport == model.Cricket {
		var cricket viewmodel.CricketData
		err = s.d.Database(ctx).Model(&model.GameDetail{}).
			Select("game_details.team1_deaths, game_details.team2_deaths, game_details.batting_side, game_details.current_batsman_id, game_details.current_bowler_id, p1.name AS current_batsman_name, p2.name AS current_bowler_name").
			Joins("LEFT JOIN players p1 ON game_details.current_batsman_id = p1.id").
			Joins("LEFT JOIN players p2 ON game_details.current_bowler_id = p2.id").
			Where("game_details.game_id = ?", id).
			Take(&cricket).Error
		if err == nil {
			game.CricketData = &cricket
		} else if !isNotFound(err) {
			return nil, classify(err)
		}
	}
	return game, nil
}

func isNotFound(err error) bool {
	return classify(err) == ErrNotFound
}

func (s *queryService) GameInfo(ctx context.Context, id uint) (*viewmodel.GameInfo, error) {
	game, err := s.GameByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := viewmodel.GameInfo{GameView: *game}

	info.PlayerStats = make([]viewmodel.GameStatView, 0)
	err = s.d.Database(ctx).Model(&model.PlayerStat{}).
		Select("player_stats.*, p.name AS player_name, t.name AS team_name").
		Joins("JOIN players p ON player_stats.player_id = p.id").
		Joins("JOIN teams t ON player_stats.team_id = t.id").
		Where("player_stats.game_id = ?", id).
		Order("t.name, p.name").
		Scan(&info.PlayerStats).Error
	if err != nil {
		return nil, classify(err)
	}

	info.ScoreEvents = make([]viewmodel.EventView, 0)
	err = s.d.Database(ctx).Model(&model.ScoreEvent{}).
		Select("score_events.*, p.name AS player_name, t.name AS team_name, g.sport AS game_sport").
		Joins("JOIN teams t ON score_events.team_id = t.id").
		Joins("JOIN games g ON score_events.game_id = g.id").
		Joins("LEFT JOIN players p ON score_events.player_id = p.id").
		Where("score_events.game_id = ?", id).
		Order("score_events.created_at DESC").
		Limit(50).
		Scan(&info.ScoreEvents).Error
	if err != nil {
		return nil, classify(err)
	}
	return &info, nil
}

func (s *queryService) Events(ctx context.Context, gameID, teamID *uint, limit int) ([]viewmodel.EventView, error) {
	if limit <= 0 {
		limit = 50
	}
	events := make([]viewmodel.EventView, 0)
	q := s.d.Database(ctx).Model(&model.ScoreEvent{}).
		Select("score_events.*, p.name AS player_name, t.name AS team_name, g.sport AS game_sport").
		Joins("JOIN teams t ON score_events.team_id = t.id").
		Joins("JOIN games g ON score_events.game_id = g.id").
		Joins("LEFT JOIN players p ON score_events.player_id = p.id").
		Order("score_events.created_at DESC").
		Limit(limit)
	if gameID != nil {
		q = q.Where("score_events.game_id = ?", *gameID)
	}
	if teamID != nil {
		q = q.Where("score_events.team_id = ?", *teamID)
	}
	if err := q.Scan(&events).Error; err != nil {
		return nil, classify(err)
	}
	return events, nil
}

func (s *queryService) RecentEvents(ctx context.Context, limit int) ([]viewmodel.EventView, error) {
	if limit <= 0 {
		limit = 20
	}
	events := make([]viewmodel.EventView, 0)
	err := s.d.Database(ctx).Model(&model.ScoreEvent{}).
		Select("score_events.*, p.name AS player_name, t.name AS team_name, g.sport AS game_sport, t1.name AS team1_name, t2.name AS team2_name").
		Joins("JOIN teams t ON score_events.team_id = t.id").
		Joins("JOIN games g ON score_events.game_id = g.id").
		Joins("JOIN teams t1 ON g.team1_id = t1.id").
		Joins("JOIN teams t2 ON g.team2_id = t2.id").
		Joins("LEFT JOIN players p ON score_events.player_id = p.id").
		Order("score_events.created_at DESC").
		Limit(limit).
		Scan(&events).Error
	if err != nil {
		return nil, classify(err)
	}
	return events, nil
}

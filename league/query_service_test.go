package league

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedmodel "github.com/courtside/sports-league-backend-go/model"
)

func TestQueryTeams(t *testing.T) {
	deps, b := setupTest(t)
	f := seedFootballGame(t, deps, b)
	teams := NewTeamService(deps)
	queries := NewQueryService(deps)
	ctx := context.Background()

	require.NoError(t, teams.UpdateTeam(ctx, f.TeamA.ID, TeamInput{Name: "Team A", LeaderID: &f.Alice.ID}))

	summaries, err := queries.Teams(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Team A", summaries[0].Name)
	require.NotNil(t, summaries[0].LeaderName)
	assert.Equal(t, "Alice", *summaries[0].LeaderName)
	assert.Equal(t, 1, summaries[0].PlayerCount)
	assert.Nil(t, summaries[1].LeaderName)

	detail, err := queries.TeamByID(ctx, f.TeamA.ID)
	require.NoError(t, err)
	require.Len(t, detail.Players, 1)
	assert.Equal(t, "Alice", detail.Players[0].Name)

	_, err = queries.TeamByID(ctx, 4242)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQueryTeamStats(t *testing.T) {
	deps, b := setupTest(t)
	f := seedFootballGame(t, deps, b)
	games := NewGameService(deps, b)
	queries := NewQueryService(deps)
	ctx := context.Background()

	// Finish the seeded game as a win for team A, then add a loss and a
	// game still in progress.
	require.NoError(t, games.UpdateScore(ctx, f.GameID, UpdateScoreInput{
		Team1Score: 3, Team2Score: 1, Status: sharedmodel.Finished,
	}))
	_, err := games.Create(ctx, CreateGameInput{
		Sport:         sharedmodel.Football,
		Status:        sharedmodel.Finished,
		ScheduledTime: time.Now(),
		Team1ID:       f.TeamB.ID,
		Team2ID:       f.TeamA.ID,
		Team1Score:    2,
	})
	require.NoError(t, err)
	_, err = games.Create(ctx, CreateGameInput{
		Sport:         sharedmodel.Basketball,
		Status:        sharedmodel.Live,
		ScheduledTime: time.Now(),
		Team1ID:       f.TeamA.ID,
		Team2ID:       f.TeamB.ID,
	})
	require.NoError(t, err)

	record, err := queries.TeamStats(ctx, f.TeamA.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, record.GamesPlayed)
	assert.Equal(t, 1, record.Wins)
	assert.Equal(t, 1, record.Losses)
	assert.Equal(t, 0, record.Draws)

	_, err = queries.TeamStats(ctx, 4242)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQueryPlayers(t *testing.T) {
	deps, b := setupTest(t)
	f := seedFootballGame(t, deps, b)
	queries := NewQueryService(deps)
	ctx := context.Background()

	all, err := queries.Players(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alice", all[0].Name)
	require.NotNil(t, all[0].TeamName)
	assert.Equal(t, "Team A", *all[0].TeamName)

	onlyB, err := queries.Players(ctx, &f.TeamB.ID)
	require.NoError(t, err)
	require.Len(t, onlyB, 1)
	assert.Equal(t, "Bob", onlyB[0].Name)

	player, err := queries.PlayerByID(ctx, f.Alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", player.Name)

	_, err = queries.PlayerByID(ctx, 4242)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQueryPlayerStats(t *testing.T) {
	deps, b := setupTest(t)
	f := seedFootballGame(t, deps, b)
	scores := NewScoreService(deps, b)
	queries := NewQueryService(deps)
	ctx := context.Background()

	_, err := scores.Record(ctx, RecordScoreInput{
		GameID:   f.GameID,
		TeamID:   f.TeamA.ID,
		PlayerID: &f.Alice.ID,
		Sport:    sharedmodel.Football,
		Points:   7,
	})
	require.NoError(t, err)

	stats, err := queries.PlayerStats(ctx, f.Alice.ID, nil)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 7, stats[0].Points)
	assert.Equal(t, "Team A", stats[0].Team1Name)
	assert.Equal(t, "Team B", stats[0].Team2Name)

	stats, err = queries.PlayerStats(ctx, f.Alice.ID, &f.GameID)
	require.NoError(t, err)
	assert.Len(t, stats, 1)
}

func TestQueryGames(t *testing.T) {
	deps, b := setupTest(t)
	f := seedFootballGame(t, deps, b)
	games := NewGameService(deps, b)
	queries := NewQueryService(deps)
	ctx := context.Background()

	_, err := games.Create(ctx, CreateGameInput{
		Sport:         sharedmodel.Basketball,
		Status:        sharedmodel.Live,
		ScheduledTime: time.Now(),
		Team1ID:       f.TeamB.ID,
		Team2ID:       f.TeamA.ID,
	})
	require.NoError(t, err)

	all, err := queries.Games(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	live := sharedmodel.Live
	liveOnly, err := queries.Games(ctx, &live, nil)
	require.NoError(t, err)
	require.Len(t, liveOnly, 1)
	assert.Equal(t, sharedmodel.Basketball, liveOnly[0].Sport)
	assert.Equal(t, "Team B", liveOnly[0].Team1Name)

	football := sharedmodel.Football
	footballOnly, err := queries.Games(ctx, nil, &football)
	require.NoError(t, err)
	assert.Len(t, footballOnly, 1)
}

func TestQueryGameByID(t *testing.T) {
	deps, b := setupTest(t)
	f := seedFootballGame(t, deps, b)
	games := NewGameService(deps, b)
	queries := NewQueryService(deps)
	ctx := context.Background()

	game, err := queries.GameByID(ctx, f.GameID)
	require.NoError(t, err)
	assert.Equal(t, f.TeamA.ID, game.Team1ID)
	assert.Equal(t, "Team A", game.Team1Name)
	assert.Nil(t, game.CricketData)

	side := sharedmodel.Team2Batting
	cricketID, err := games.Create(ctx, CreateGameInput{
		Sport:            sharedmodel.Cricket,
		ScheduledTime:    time.Now(),
		Team1ID:          f.TeamA.ID,
		Team2ID:          f.TeamB.ID,
		Team1Deaths:      3,
		BattingSide:      &side,
		CurrentBatsmanID: &f.Bob.ID,
	})
	require.NoError(t, err)

	cricket, err := queries.GameByID(ctx, cricketID)
	require.NoError(t, err)
	require.NotNil(t, cricket.CricketData)
	assert.Equal(t, 3, cricket.CricketData.Team1Deaths)
	require.NotNil(t, cricket.CricketData.BattingSide)
	assert.Equal(t, sharedmodel.Team2Batting, *cricket.CricketData.BattingSide)
	require.NotNil(t, cricket.CricketData.CurrentBatsmanName)
	assert.Equal(t, "Bob", *cricket.CricketData.CurrentBatsmanName)

	_, err = queries.GameByID(ctx, 4242)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQueryGameInfo(t *testing.T) {
	deps, b := setupTest(t)
	f := seedFootballGame(t, deps, b)
	scores := NewScoreService(deps, b)
	queries := NewQueryService(deps)
	ctx := context.Background()

	_, err := scores.Record(ctx, RecordScoreInput{
		GameID:   f.GameID,
		TeamID:   f.TeamA.ID,
		PlayerID: &f.Alice.ID,
		Sport:    sharedmodel.Football,
		Points:   3,
	})
	require.NoError(t, err)

	info, err := queries.GameInfo(ctx, f.GameID)
	require.NoError(t, err)
	assert.Equal(t, f.GameID, info.ID)
	require.Len(t, info.PlayerStats, 2)
	// Ordered by team name then player name.
	assert.Equal(t, "Alice", info.PlayerStats[0].PlayerName)
	assert.Equal(t, 3, info.PlayerStats[0].Points)
	assert.Equal(t, "Bob", info.PlayerStats[1].PlayerName)
	require.Len(t, info.ScoreEvents, 1)
	assert.Equal(t, "Team A", info.ScoreEvents[0].TeamName)
	require.NotNil(t, info.ScoreEvents[0].PlayerName)
	assert.Equal(t, "Alice", *info.ScoreEvents[0].PlayerName)
}

func TestQueryEvents(t *testing.T) {
	deps, b := setupTest(t)
	f := seedFootballGame(t, deps, b)
	scores := NewScoreService(deps, b)
	queries := NewQueryService(deps)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := scores.Record(ctx, RecordScoreInput{
			GameID: f.GameID,
			TeamID: f.TeamA.ID,
			Sport:  sharedmodel.Football,
			Points: 1,
		})
		require.NoError(t, err)
	}
	_, err := scores.Record(ctx, RecordScoreInput{
		GameID: f.GameID,
		TeamID: f.TeamB.ID,
		Sport:  sharedmodel.Football,
		Points: 2,
	})
	require.NoError(t, err)

	all, err := queries.Events(ctx, nil, nil, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	byTeam, err := queries.Events(ctx, nil, &f.TeamB.ID, 0)
	require.NoError(t, err)
	require.Len(t, byTeam, 1)
	assert.Equal(t, 2, byTeam[0].Points)
	assert.Equal(t, "Team B", byTeam[0].TeamName)

	limited, err := queries.Events(ctx, &f.GameID, nil, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	recent, err := queries.RecentEvents(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	require.NotNil(t, recent[0].Team1Name)
	assert.Equal(t, "Team A", *recent[0].Team1Name)
	assert.Equal(t, sharedmodel.Football, recent[0].GameSport)
}

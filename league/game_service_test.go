package league

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedmodel "github.com/courtside/sports-league-backend-go/model"
	modelwebsocket "github.com/courtside/sports-league-backend-go/model/websocket"
)

func TestCreateGameSeedsRosterStats(t *testing.T) {
	deps, b := setupTest(t)
	f := seedFootballGame(t, deps, b)

	var detail sharedmodel.GameDetail
	require.NoError(t, deps.db.First(&detail, "game_id = ?", f.GameID).Error)
	assert.Equal(t, sharedmodel.Football, detail.Sport)
	assert.Nil(t, detail.BattingSide)

	var stats []sharedmodel.PlayerStat
	require.NoError(t, deps.db.Find(&stats, "game_id = ?", f.GameID).Error)
	require.Len(t, stats, 2)
	for _, stat := range stats {
		assert.Zero(t, stat.Points)
		assert.Zero(t, stat.Runs)
		assert.Zero(t, stat.Wickets)
	}

	var game sharedmodel.Game
	require.NoError(t, deps.db.First(&game, f.GameID).Error)
	assert.Equal(t, sharedmodel.Scheduled, game.Status)
}

func TestCreateCricketGameDefaults(t *testing.T) {
	deps, b := setupTest(t)
	f := seedFootballGame(t, deps, b)
	games := NewGameService(deps, b)

	gameID, err := games.Create(context.Background(), CreateGameInput{
		Sport:         sharedmodel.Cricket,
		ScheduledTime: time.Now().Add(time.Hour),
		Team1ID:       f.TeamA.ID,
		Team2ID:       f.TeamB.ID,
		Team1Deaths:   2,
	})
	require.NoError(t, err)

	var detail sharedmodel.GameDetail
	require.NoError(t, deps.db.First(&detail, "game_id = ?", gameID).Error)
	assert.Equal(t, sharedmodel.Cricket, detail.Sport)
	require.NotNil(t, detail.BattingSide)
	assert.Equal(t, sharedmodel.Team1Batting, *detail.BattingSide)
	assert.Equal(t, 2, detail.Team1Deaths)
	assert.Equal(t, 0, detail.Team2Deaths)
}

func TestCreateGameRejectsInvalidInput(t *testing.T) {
	deps, b := setupTest(t)
	f := seedFootballGame(t, deps, b)
	games := NewGameService(deps, b)
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateGameInput
	}{
		{
			name: "invalid sport",
			in:   CreateGameInput{Sport: "CURLING", ScheduledTime: time.Now(), Team1ID: f.TeamA.ID, Team2ID: f.TeamB.ID},
		},
		{
			name: "missing scheduled time",
			in:   CreateGameInput{Sport: sharedmodel.Football, Team1ID: f.TeamA.ID, Team2ID: f.TeamB.ID},
		},
		{
			name: "missing team",
			in:   CreateGameInput{Sport: sharedmodel.Football, ScheduledTime: time.Now(), Team1ID: f.TeamA.ID},
		},
		{
			name: "negative score",
			in:   CreateGameInput{Sport: sharedmodel.Football, ScheduledTime: time.Now(), Team1ID: f.TeamA.ID, Team2ID: f.TeamB.ID, Team1Score: -1},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := games.Create(ctx, tc.in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUpdateScoreOverwritesAndBroadcasts(t *testing.T) {
	deps, b := setupTest(t)
	f := seedFootballGame(t, deps, b)
	games := NewGameService(deps, b)
	ctx := context.Background()

	require.NoError(t, games.UpdateScore(ctx, f.GameID, UpdateScoreInput{
		Team1Score: 21,
		Team2Score: 14,
	}))

	var game sharedmodel.Game
	require.NoError(t, deps.db.First(&game, f.GameID).Error)
	assert.Equal(t, 21, game.Team1Score)
	assert.Equal(t, 14, game.Team2Score)
	// A score push without an explicit status moves the game live.
	assert.Equal(t, sharedmodel.Live, game.Status)

	msgs := b.published()
	require.Len(t, msgs, 1)
	assert.Equal(t, modelwebsocket.GameUpdate, msgs[0].Message.Action)
	var payload modelwebsocket.GameUpdatePayload
	decodePayload(t, msgs[0].Message, &payload)
	assert.Equal(t, modelwebsocket.KindScoreUpdate, payload.Kind)
	assert.Equal(t, 21, payload.Team1Score)
	assert.Equal(t, "Team A", payload.Team1Name)
	assert.Equal(t, "Team B", payload.Team2Name)

	assert.ErrorIs(t, games.UpdateScore(ctx, 4242, UpdateScoreInput{}), ErrNotFound)
}

func TestUpdateStatusBroadcasts(t *testing.T) {
	deps, b := setupTest(t)
	f := seedFootballGame(t, deps, b)
	games := NewGameService(deps, b)
	ctx := context.Background()

	require.NoError(t, games.UpdateStatus(ctx, f.GameID, sharedmodel.Finished))
	var game sharedmodel.Game
	require.NoError(t, deps.db.First(&game, f.GameID).Error)
	assert.Equal(t, sharedmodel.Finished, game.Status)

	msgs := b.published()
	require.Len(t, msgs, 1)
	var payload modelwebsocket.GameUpdatePayload
	decodePayload(t, msgs[0].Message, &payload)
	assert.Equal(t, modelwebsocket.KindStatusUpdate, payload.Kind)
	assert.Equal(t, sharedmodel.Finished, payload.Status)

	// Transitions are unrestricted, a finished game can go back live.
	require.NoError(t, games.UpdateStatus(ctx, f.GameID, sharedmodel.Live))

	assert.ErrorIs(t, games.UpdateStatus(ctx, f.GameID, "PAUSED"), ErrValidation)
	assert.ErrorIs(t, games.UpdateStatus(ctx, 4242, sharedmodel.Live), ErrNotFound)
}

func TestDeleteGameRemovesDependents(t *testing.T) {
	deps, b := setupTest(t)
	f := seedFootballGame(t, deps, b)
	games := NewGameService(deps, b)
	scores := NewScoreService(deps, b)
	ctx := context.Background()

	_, err := scores.Record(ctx, RecordScoreInput{
		GameID:   f.GameID,
		TeamID:   f.TeamA.ID,
		PlayerID: &f.Alice.ID,
		Sport:    sharedmodel.Football,
		Points:   3,
	})
	require.NoError(t, err)

	require.NoError(t, games.Delete(ctx, f.GameID))

	for _, m := range []interface{}{
		&sharedmodel.Game{}, &sharedmodel.GameDetail{},
		&sharedmodel.PlayerStat{}, &sharedmodel.ScoreEvent{},
	} {
		var count int64
		deps.db.Model(m).Count(&count)
		assert.Equal(t, int64(0), count)
	}

	// The teams and players survive the game.
	var teams int64
	deps.db.Model(&sharedmodel.Team{}).Count(&teams)
	assert.Equal(t, int64(2), teams)

	assert.ErrorIs(t, games.Delete(ctx, f.GameID), ErrNotFound)
}

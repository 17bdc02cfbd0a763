package league

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/courtside/sports-league-backend-go/internal"
	sharedmodel "github.com/courtside/sports-league-backend-go/model"
	modelwebsocket "github.com/courtside/sports-league-backend-go/model/websocket"
)

type MockDependencies struct {
	db *gorm.DB
}

func (m *MockDependencies) Database(ctx context.Context) *gorm.DB {
	return m.db.WithContext(ctx)
}

func (m *MockDependencies) Cron() *cron.Cron {
	return cron.New()
}

type published struct {
	Topic   string
	GameID  uint
	Message modelwebsocket.Message
}

// recordingBroadcaster captures publishes instead of fanning them out.
type recordingBroadcaster struct {
	mu   sync.Mutex
	msgs []published
}

func (b *recordingBroadcaster) Publish(topic string, m modelwebsocket.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, published{Topic: topic, Message: m})
}

func (b *recordingBroadcaster) PublishGame(gameID uint, m modelwebsocket.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, published{GameID: gameID, Message: m})
}

func (b *recordingBroadcaster) published() []published {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]published, len(b.msgs))
	copy(out, b.msgs)
	return out
}

func setupTest(t *testing.T) (*MockDependencies, *recordingBroadcaster) {
	internal.LoadConfig("../.env.test")

	// A DSN per test keeps the in-memory databases isolated.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&sharedmodel.Team{},
		&sharedmodel.Player{},
		&sharedmodel.Game{},
		&sharedmodel.GameDetail{},
		&sharedmodel.PlayerStat{},
		&sharedmodel.ScoreEvent{},
	)
	require.NoError(t, err)

	return &MockDependencies{db: db}, &recordingBroadcaster{}
}

type fixture struct {
	TeamA  sharedmodel.Team
	TeamB  sharedmodel.Team
	Alice  sharedmodel.Player
	Bob    sharedmodel.Player
	GameID uint
}

// seedFootballGame creates Team A (Alice) vs Team B (Bob) with a
// scheduled football game through the lifecycle service.
func seedFootballGame(t *testing.T, deps *MockDependencies, b Broadcaster) fixture {
	ctx := context.Background()
	f := fixture{
		TeamA: sharedmodel.Team{Name: "Team A"},
		TeamB: sharedmodel.Team{Name: "Team B"},
	}
	require.NoError(t, deps.db.Create(&f.TeamA).Error)
	require.NoError(t, deps.db.Create(&f.TeamB).Error)

	f.Alice = sharedmodel.Player{Name: "Alice", TeamID: &f.TeamA.ID}
	f.Bob = sharedmodel.Player{Name: "Bob", TeamID: &f.TeamB.ID}
	require.NoError(t, deps.db.Create(&f.Alice).Error)
	require.NoError(t, deps.db.Create(&f.Bob).Error)

	games := NewGameService(deps, b)
	gameID, err := games.Create(ctx, CreateGameInput{
		Sport:         sharedmodel.Football,
		ScheduledTime: time.Now().Add(time.Hour),
		Team1ID:       f.TeamA.ID,
		Team2ID:       f.TeamB.ID,
	})
	require.NoError(t, err)
	f.GameID = gameID
	return f
}

func decodePayload(t *testing.T, m modelwebsocket.Message, dst interface{}) {
	require.NoError(t, json.Unmarshal([]byte(m.Content), dst))
}

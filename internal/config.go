package internal

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type server struct {
	Port string
}

type database struct {
	Driver         string
	DSN            string
	MaxOpenConns   int
	AcquireTimeout time.Duration
}

type rateLimits struct {
	GeneralWindow time.Duration
	GeneralMax    int
	CreateWindow  time.Duration
	CreateMax     int
	EventsWindow  time.Duration
	EventsMax     int
}

type broadcast struct {
	SendBuffer int
}

type config struct {
	Server     server
	Database   database
	RateLimits rateLimits
	Broadcast  broadcast
}

var (
	mu sync.RWMutex
	c  *config
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		slog.Warn(fmt.Sprintf("failed to find value for %s, using fallback value %d", key, fallback))
		return fallback
	}
	return v
}

func newDatabase() database {
	return database{
		Driver:         envOr("DB_DRIVER", "sqlite"),
		DSN:            envOr("DB_DSN", "league.db"),
		MaxOpenConns:   envIntOr("DB_MAX_OPEN_CONNS", 10),
		AcquireTimeout: time.Duration(envIntOr("DB_ACQUIRE_TIMEOUT_MS", 5000)) * time.Millisecond,
	}
}

func newRateLimits() rateLimits {
	return rateLimits{
		GeneralWindow: 15 * time.Minute,
		GeneralMax:    envIntOr("RATE_LIMIT_GENERAL_MAX", 100),
		CreateWindow:  15 * time.Minute,
		CreateMax:     envIntOr("RATE_LIMIT_CREATE_MAX", 10),
		EventsWindow:  time.Minute,
		EventsMax:     envIntOr("RATE_LIMIT_EVENTS_MAX", 30),
	}
}

// LoadConfig reads the optional env file at path and rebuilds the config
// singleton. A missing file is not fatal, the process environment wins.
func LoadConfig(path string) {
	if err := godotenv.Load(path); err != nil {
		slog.Warn(fmt.Sprintf("no env file loaded from %s : %s", path, err))
	}

	mu.Lock()
	defer mu.Unlock()
	c = &config{
		Server: server{
			Port: envOr("PORT", "8080"),
		},
		Database:   newDatabase(),
		RateLimits: newRateLimits(),
		Broadcast: broadcast{
			SendBuffer: envIntOr("WS_SEND_BUFFER", 32),
		},
	}
	slog.Info(fmt.Sprintf("'Config' initialized %v", c))
}

func Config() *config {
	mu.RLock()
	if c != nil {
		defer mu.RUnlock()
		return c
	}
	mu.RUnlock()
	LoadConfig(".env")
	mu.RLock()
	defer mu.RUnlock()
	return c
}

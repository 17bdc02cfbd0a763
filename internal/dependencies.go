package internal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/courtside/sports-league-backend-go/model"
	"github.com/robfig/cron/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type dependencies struct {
	db *gorm.DB
	c  *cron.Cron
}

type Dependencies interface {
	Database(ctx context.Context) *gorm.DB
	Cron() *cron.Cron
}

func NewDependencies(ctx context.Context) (Dependencies, error) {
	slog.Info("creating dependencies")
	cfg := Config()
	slog.Info("initializing database connection")
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Bounded pool, slot acquisition fails through the request context
	// deadline instead of blocking forever.
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxOpenConns)

	slog.Info("executing database auto migration")
	err = db.AutoMigrate(&model.Team{},
		&model.Player{},
		&model.Game{},
		&model.GameDetail{},
		&model.PlayerStat{},
		&model.ScoreEvent{},
	)
	if err != nil {
		return nil, err
	}

	c := cron.New()

	return &dependencies{
		db: db,
		c:  c,
	}, nil
}

func (d *dependencies) Database(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx)
}

func (d *dependencies) Cron() *cron.Cron {
	return d.c
}

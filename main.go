package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/courtside/sports-league-backend-go/internal"
	"github.com/courtside/sports-league-backend-go/league"
	"github.com/courtside/sports-league-backend-go/server"
)

func die(d interface{}) {
	slog.Error("%v", d)
	panic(d)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	internal.LoadConfig(".env")
	deps, err := internal.NewDependencies(ctx)
	if err != nil {
		die(err)
	}

	hub := league.NewHub(internal.Config().Broadcast.SendBuffer)
	scores := league.NewScoreService(deps, hub)
	games := league.NewGameService(deps, hub)
	teams := league.NewTeamService(deps)
	queries := league.NewQueryService(deps)

	s, err := server.NewServer(deps, hub, scores, games, teams, queries)
	if err != nil {
		die(err)
	}

	if _, err := deps.Cron().AddFunc("0,30 * * * *", s.PruneRateLimiters); err != nil {
		die(err)
	}
	deps.Cron().Start()
	defer deps.Cron().Stop()

	sErr := s.Start(ctx)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)

	select {
	case <-c:
		cancel()
		return
	case err = <-sErr:
		if err != nil {
			slog.Error(err.Error())
		}
		slog.Info("exiting service")
		return
	case <-ctx.Done():
		slog.Info("main context has been closed")
		return
	}
}

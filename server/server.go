package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/courtside/sports-league-backend-go/internal"
	"github.com/courtside/sports-league-backend-go/league"
	"github.com/courtside/sports-league-backend-go/model"
	modelwebsocket "github.com/courtside/sports-league-backend-go/model/websocket"
)

type server struct {
	srv *http.Server
	up  *websocket.Upgrader
	d   internal.Dependencies
	hub *league.Hub

	scores  league.ScoreService
	games   league.GameService
	teams   league.TeamService
	queries league.QueryService

	generalLimiter *rateLimiter
	createLimiter  *rateLimiter
	eventsLimiter  *rateLimiter
}

func NewServer(d internal.Dependencies, hub *league.Hub, scores league.ScoreService, games league.GameService, teams league.TeamService, queries league.QueryService) (*server, error) {
	cfg := internal.Config()
	return &server{
		up: &websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Accepting all requests
			},
		},
		d:       d,
		hub:     hub,
		scores:  scores,
		games:   games,
		teams:   teams,
		queries: queries,

		generalLimiter: newRateLimiter(cfg.RateLimits.GeneralWindow, cfg.RateLimits.GeneralMax),
		createLimiter:  newRateLimiter(cfg.RateLimits.CreateWindow, cfg.RateLimits.CreateMax),
		eventsLimiter:  newRateLimiter(cfg.RateLimits.EventsWindow, cfg.RateLimits.EventsMax),
	}, nil
}

func pathID(r *http.Request, key string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[key], 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", league.ErrValidation, key)
	}
	return uint(id), nil
}

func queryID(r *http.Request, key string) (*uint, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(v, 10, 32)
	if err != nil || id == 0 {
		return nil, fmt.Errorf("%w: %s must be a positive integer", league.ErrValidation, key)
	}
	u := uint(id)
	return &u, nil
}

func (s *server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.up.Upgrade(w, r, nil)
	if err != nil {
		slog.Error(err.Error())
		return
	}
	client := s.hub.HandleWebsocketConnection(conn)
	defer s.hub.RemoveClient(client)

	for {
		mt, m, err := conn.ReadMessage()
		if err != nil || mt == websocket.CloseMessage {
			slog.Info(fmt.Sprintf("closing websocket connection err : %s", err))
			break
		}
		var wm modelwebsocket.Message
		if err := json.Unmarshal(m, &wm); err != nil {
			slog.Warn(fmt.Sprintf("unable to unmarshal the received message : %v", err))
			continue
		}
		if s.hub.HandleWebsocketMessage(&wm, client) {
			continue
		}
		slog.Warn("no handlers processed the websocket message")
	}
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.d.Database(r.Context()).Exec("SELECT 1").Error; err != nil {
		slog.Error("health check failed : " + err.Error())
		respondFailure(w, http.StatusServiceUnavailable, "Database connection failed", "")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"version":   "1.0.0",
	}, "Sports League API is running")
}

// withTimeout bounds every store interaction of a request, pool-slot
// starvation surfaces as store-unavailable instead of blocking forever.
func withTimeout(d time.Duration) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func limited(rl *rateLimiter, h http.HandlerFunc) http.Handler {
	return rl.middleware(h)
}

// Handler assembles the full route table.
func (s *server) Handler() http.Handler {
	cfg := internal.Config()
	router := mux.NewRouter()

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/ws", s.handleWebsocket)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(telemetry)
	api.Use(s.generalLimiter.middleware)
	api.Use(withTimeout(cfg.Database.AcquireTimeout))

	api.HandleFunc("", s.handleDocs).Methods(http.MethodGet)

	api.HandleFunc("/teams", s.listTeams).Methods(http.MethodGet)
	api.HandleFunc("/teams/{id}", s.getTeam).Methods(http.MethodGet)
	api.HandleFunc("/teams/{id}/stats", s.getTeamStats).Methods(http.MethodGet)
	api.Handle("/teams", limited(s.createLimiter, s.createTeam)).Methods(http.MethodPost)
	api.HandleFunc("/teams/{id}", s.updateTeam).Methods(http.MethodPut)
	api.HandleFunc("/teams/{id}", s.deleteTeam).Methods(http.MethodDelete)

	api.HandleFunc("/players", s.listPlayers).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", s.getPlayer).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}/stats", s.getPlayerStats).Methods(http.MethodGet)
	api.Handle("/players", limited(s.createLimiter, s.createPlayer)).Methods(http.MethodPost)
	api.HandleFunc("/players/{id}", s.updatePlayer).Methods(http.MethodPut)
	api.HandleFunc("/players/{id}/stats/{gameId}", s.updatePlayerStat).Methods(http.MethodPut)
	api.HandleFunc("/players/{id}", s.deletePlayer).Methods(http.MethodDelete)

	api.HandleFunc("/games", s.listGames).Methods(http.MethodGet)
	api.HandleFunc("/games/live", s.listGamesByStatus(model.Live)).Methods(http.MethodGet)
	api.HandleFunc("/games/upcoming", s.listGamesByStatus(model.Scheduled)).Methods(http.MethodGet)
	api.HandleFunc("/games/finished", s.listGamesByStatus(model.Finished)).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", s.getGame).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/info", s.getGameInfo).Methods(http.MethodGet)
	api.Handle("/games", limited(s.createLimiter, s.createGame)).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/score", s.updateGameScore).Methods(http.MethodPut)
	api.HandleFunc("/games/{id}/status", s.updateGameStatus).Methods(http.MethodPut)
	api.HandleFunc("/games/{id}", s.deleteGame).Methods(http.MethodDelete)

	api.Handle("/events", limited(s.eventsLimiter, s.listEvents)).Methods(http.MethodGet)
	api.Handle("/events/recent", limited(s.eventsLimiter, s.recentEvents)).Methods(http.MethodGet)
	api.Handle("/events", limited(s.eventsLimiter, s.createEvent)).Methods(http.MethodPost)
	api.Handle("/events/{id}", limited(s.eventsLimiter, s.deleteEvent)).Methods(http.MethodDelete)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondFailure(w, http.StatusNotFound, fmt.Sprintf("Route %s not found", r.URL.Path), "")
	})

	return handlers.CombinedLoggingHandler(logWriter{},
		handlers.CORS(handlers.AllowedOrigins([]string{"*"}),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
			handlers.AllowedHeaders([]string{"Content-Type"}))(router))
}

// logWriter routes the access log through slog.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	slog.Info(string(p))
	return len(p), nil
}

// PruneRateLimiters drops idle per-IP buckets, wired to the cron
// schedule from main.
func (s *server) PruneRateLimiters() {
	maxIdle := internal.Config().RateLimits.GeneralWindow
	s.generalLimiter.prune(maxIdle)
	s.createLimiter.prune(maxIdle)
	s.eventsLimiter.prune(maxIdle)
}

func (s *server) GetHTTPServer() (*http.Server, error) {
	if s.srv == nil {
		return nil, errors.New("http server is not started yet")
	}
	return s.srv, nil
}

func (s *server) Start(ctx context.Context) chan error {
	serverAddr := "0.0.0.0:" + internal.Config().Server.Port
	slog.Info("starting server on " + serverAddr)
	slog.Info("handling websocket on path : '/ws'")
	srv := &http.Server{
		Handler: s.Handler(),
		Addr:    serverAddr,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	s.srv = srv

	errCh := make(chan error)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed : " + err.Error())
		}
		s.hub.Close()
	}()

	return errCh
}

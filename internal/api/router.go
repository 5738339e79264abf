package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riverqueue/river"
	"github.com/rinkline/server/internal/api/handlers"
	"github.com/rinkline/server/internal/api/middleware"
	"github.com/rinkline/server/internal/config"
	"github.com/rinkline/server/internal/domain/games"
	"github.com/rinkline/server/internal/domain/schedule"
	"github.com/rinkline/server/internal/domain/tournaments"
	"github.com/rinkline/server/internal/email"
	"github.com/rinkline/server/internal/jobs"
	"github.com/rinkline/server/internal/metrics"
	"github.com/rinkline/server/internal/storage/postgres"
	"github.com/rs/zerolog"
)

// Router bundles the HTTP handler with the background job client so the
// server command can manage both lifecycles.
type Router struct {
	Handler     http.Handler
	RiverClient *river.Client[pgx.Tx]
}

func NewRouter(cfg config.Config, logger zerolog.Logger, pool *pgxpool.Pool) (*Router, error) {
	repo, err := postgres.NewRepository(pool)
	if err != nil {
		return nil, fmt.Errorf("repository init failed: %w", err)
	}

	riskCfg := schedule.Config{
		CloseStartThreshold: cfg.Schedule.CloseStartThreshold,
		AssumedGameDuration: cfg.Schedule.AssumedGameDuration,
		TravelTimeThreshold: cfg.Schedule.TravelTimeThreshold,
	}

	gamesService := games.NewService(repo.Games(), riskCfg)
	tournamentsService := tournaments.NewService(repo.Tournaments(), logger)

	emailService, err := email.NewService(cfg.Email, logger)
	if err != nil {
		return nil, fmt.Errorf("email service init failed: %w", err)
	}

	var riverClient *river.Client[pgx.Tx]
	if cfg.Jobs.Enabled {
		workers, err := jobs.NewWorkers(jobs.WorkerDeps{
			Config:      cfg,
			Games:       gamesService,
			Tournaments: tournamentsService,
			Email:       emailService,
			Logger:      logger,
		})
		if err != nil {
			return nil, fmt.Errorf("job workers init failed: %w", err)
		}
		riverClient, err = jobs.NewClient(cfg.Jobs, pool, workers, slog.Default(), jobs.NewPeriodicJobs())
		if err != nil {
			return nil, fmt.Errorf("river client init failed: %w", err)
		}
	}

	gamesHandler := handlers.NewGamesHandler(gamesService, cfg.Environment)
	scheduleHandler := handlers.NewScheduleHandler(gamesService, cfg.Environment)
	tournamentsHandler := handlers.NewTournamentsHandler(tournamentsService, cfg.Environment)
	healthChecker := handlers.NewHealthChecker(pool, riverClient)

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz())
	mux.Handle("/health", healthChecker.Health())
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.Handle("/api/v1/games", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(gamesHandler.List),
		http.MethodPost: http.HandlerFunc(gamesHandler.Create),
	}))
	mux.Handle("/api/v1/games/validate-time", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(scheduleHandler.ValidateTime),
	}))
	mux.Handle("/api/v1/games/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(gamesHandler.Get),
		http.MethodPut:    http.HandlerFunc(gamesHandler.Update),
		http.MethodDelete: http.HandlerFunc(gamesHandler.Delete),
	}))
	mux.Handle("/api/v1/teams/{id}/schedule/risks", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(scheduleHandler.TeamRisks),
	}))
	mux.Handle("/api/v1/tournaments", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(tournamentsHandler.List),
	}))
	mux.Handle("/api/v1/tournaments/{id}", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(tournamentsHandler.Get),
	}))

	var handler http.Handler = mux
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RateLimit(cfg.RateLimit)(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)

	return &Router{Handler: handler, RiverClient: riverClient}, nil
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}

// Package app wires configuration into the running services. Both binaries
// (the HTTP listener and the one-shot updater) build their dependency graph
// here so they cannot drift apart.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/status-bot/internal/client"
	"github.com/pkordes/status-bot/internal/clock"
	"github.com/pkordes/status-bot/internal/config"
	"github.com/pkordes/status-bot/internal/handler"
	"github.com/pkordes/status-bot/internal/integration"
	"github.com/pkordes/status-bot/internal/middleware"
	"github.com/pkordes/status-bot/internal/repo"
	"github.com/pkordes/status-bot/internal/service"
	"github.com/pkordes/status-bot/migrations"
)

// maxBodyBytes bounds ad-hoc request bodies.
const maxBodyBytes = 64 << 10

// App is the wired application.
type App struct {
	Registry     *integration.Registry
	AdHoc        *service.AdHocService
	History      *service.HistoryService
	Integrations []string

	cfg    config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool
	sqlDB  *sql.DB
}

// New builds every collaborator from cfg. clk may be nil to use the system
// clock in cfg.Location. When cfg.DatabaseURL is set, history is stored in
// Postgres and pending migrations are applied; otherwise it is kept in memory.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, clk clock.Clock) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if clk == nil {
		clk = clock.NewSystemClock(cfg.Location)
	}

	rules, err := repo.LoadStatusRules(cfg.TravelStatusesFile)
	if err != nil {
		return nil, fmt.Errorf("app.New: %w", err)
	}
	ruleSet, err := service.NewRuleSet(rules, cfg.Employer)
	if err != nil {
		return nil, fmt.Errorf("app.New: %w", err)
	}
	cities, err := repo.LoadCityEmojis(cfg.CityEmojisFile)
	if err != nil {
		return nil, fmt.Errorf("app.New: %w", err)
	}

	a := &App{cfg: cfg, logger: logger, Integrations: cfg.EnabledIntegrations}

	history := repo.NewMemoryStatusUpdateRepo()
	if cfg.DatabaseURL != "" {
		if history, err = a.openHistory(ctx); err != nil {
			return nil, fmt.Errorf("app.New: %w", err)
		}
	}

	slack := client.NewSlackClient(cfg.SlackAPIURL, cfg.SlackAPIKey, cfg.HTTPTimeout)
	trips := client.NewTripItClient(cfg.TripItAPIURL, cfg.TripItAPIKey, cfg.HTTPTimeout)

	engine := service.NewEngine(slack, ruleSet, cities, service.DefaultStatus{
		Text:  cfg.DefaultStatus,
		Emoji: cfg.DefaultStatusEmoji,
	}, clk)
	publisher := service.NewPublisher(slack, history)

	a.Registry, err = integration.NewRegistry(logger,
		integration.NewTripIt(trips, engine, publisher),
		integration.NewDefault(engine, publisher),
	)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("app.New: %w", err)
	}
	// Unknown ENABLED_INTEGRATIONS entries are a configuration error.
	if _, err := a.Registry.Resolve(a.Integrations); err != nil {
		a.Close()
		return nil, fmt.Errorf("app.New: ENABLED_INTEGRATIONS: %w", err)
	}

	a.AdHoc = service.NewAdHocService(slack, publisher, clk)
	a.History = service.NewHistoryService(history)

	logger.Info("application wired",
		"integrations", a.Integrations,
		"rules", ruleSet.Len(),
		"cities", len(cities),
		"history", historyBackend(cfg),
	)
	return a, nil
}

// openHistory connects to Postgres, applies migrations, and returns the repo.
func (a *App) openHistory(ctx context.Context) (repo.StatusUpdateRepo, error) {
	// pgxpool.New does not open connections immediately; the ping does.
	pool, err := pgxpool.New(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("create database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	a.pool = pool
	a.sqlDB = stdlib.OpenDBFromPool(pool)
	n, err := migrations.Up(ctx, a.sqlDB)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.logger.Info("database ready", "migrations_applied", n)

	return repo.NewStatusUpdateRepo(pool), nil
}

// Update runs the enabled integrations once.
func (a *App) Update(ctx context.Context, force bool) ([]integration.Result, error) {
	return a.Registry.RunAll(ctx, a.Integrations, integration.Options{Force: force})
}

// Router returns the HTTP listener with its middleware stack.
//
// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer →
// CORS → rate limit → API key → body limit.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(a.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(a.cfg.CORSOrigins))
	r.Use(middleware.NewRateLimiter(a.cfg.RateLimitRPS, a.cfg.RateLimitBurst).Middleware)
	r.Use(middleware.NewAPIKeyHandler(a.cfg.ListenerAPIKey, "/healthz"))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	srv := handler.NewServer(a.AdHoc, a.Registry, a.History, a.Integrations)
	r.Mount("/", srv.Routes())
	return r
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.sqlDB != nil {
		_ = a.sqlDB.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

func historyBackend(cfg config.Config) string {
	if cfg.DatabaseURL != "" {
		return "postgres"
	}
	return "memory"
}

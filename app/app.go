// Package app wires configuration, storage, the event bus and the modules into one process.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	appeventbus "github.com/Black-And-White-Club/scorebook/app/eventbus"
	"github.com/Black-And-White-Club/scorebook/app/modules/league"
	"github.com/Black-And-White-Club/scorebook/app/modules/tournament"
	"github.com/Black-And-White-Club/scorebook/config"
	"github.com/Black-And-White-Club/scorebook/db/bundb"
	"github.com/Black-And-White-Club/scorebook/pkg/eventbus"
	"github.com/Black-And-White-Club/scorebook/pkg/httpapi"
	"github.com/Black-And-White-Club/scorebook/pkg/jwt"
	"github.com/Black-And-White-Club/scorebook/pkg/observability"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

const appType = "scorebook"

// App owns every long-lived resource of the server process.
type App struct {
	Config           *config.Config
	Observability    observability.Observability
	DB               *bun.DB
	EventBus         eventbus.EventBus
	Router           *message.Router
	HTTPRouter       chi.Router
	LeagueModule     *league.Module
	TournamentModule *tournament.Module

	wg sync.WaitGroup
}

// NewApp builds the application. Nothing is started until Run.
func NewApp(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	logger := obs.Provider.Logger
	app := &App{Config: cfg, Observability: obs}

	db, err := bundb.Open(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, err
	}
	app.DB = db

	if cfg.NATS.URL == "" {
		logger.WarnContext(ctx, "NATS_URL not set, running the event bus in memory")
		app.EventBus = appeventbus.NewMemoryEventBus(logger)
	} else {
		bus, err := appeventbus.NewEventBus(ctx, cfg.NATS.URL, logger, appType)
		if err != nil {
			_ = app.DB.Close()
			return nil, err
		}
		app.EventBus = bus
	}
	if err := appeventbus.InitializeStreams(ctx, app.EventBus, logger); err != nil {
		app.closeInfra()
		return nil, err
	}

	router, err := NewMessageRouter(logger, obs)
	if err != nil {
		app.closeInfra()
		return nil, err
	}
	app.Router = router

	app.HTTPRouter = httpapi.NewRouter(httpapi.Options{
		AllowedOrigins:    cfg.HTTP.AllowedOrigins,
		RequestsPerSecond: cfg.HTTP.RequestsPerSecond,
		Burst:             cfg.HTTP.Burst,
		Gatherer:          obs.Registry.Prometheus,
		TracerProvider:    obs.Provider.TracerProvider,
	})
	if cfg.JWT.Secret == "" {
		logger.WarnContext(ctx, "JWT_SECRET not set, mutating HTTP routes will reject every request")
	}
	authorize := httpapi.RequireOrganizer(jwt.NewService(cfg.JWT.Secret, cfg.JWT.DefaultTTL))

	app.LeagueModule, err = league.NewLeagueModule(ctx, cfg, obs, app.EventBus, app.Router, ctx, app.DB, app.HTTPRouter, authorize)
	if err != nil {
		app.closeInfra()
		return nil, fmt.Errorf("failed to initialize league module: %w", err)
	}

	app.TournamentModule, err = tournament.NewTournamentModule(ctx, cfg, obs, app.EventBus, app.Router, ctx, app.DB, app.LeagueModule.LeagueService, app.HTTPRouter, authorize)
	if err != nil {
		app.closeInfra()
		return nil, fmt.Errorf("failed to initialize tournament module: %w", err)
	}

	return app, nil
}

// NewMessageRouter returns the shared watermill router with the middleware every handler
// runs behind and Prometheus handler metrics.
func NewMessageRouter(logger *slog.Logger, obs observability.Observability) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 30 * time.Second}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create message router: %w", err)
	}

	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 100 * time.Millisecond,
			Logger:          watermill.NewSlogLogger(logger),
		}.Middleware,
	)

	if obs.Registry.Prometheus != nil {
		builder := metrics.NewPrometheusMetricsBuilder(obs.Registry.Prometheus, "scorebook", "events")
		builder.AddPrometheusRouterMetrics(router)
	}
	return router, nil
}

// Run starts the modules, the message router and the HTTP server, and blocks until ctx is
// cancelled or the HTTP server fails.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Provider.Logger

	a.wg.Add(2)
	go a.LeagueModule.Run(ctx, &a.wg)
	go a.TournamentModule.Run(ctx, &a.wg)

	routerErr := make(chan error, 1)
	go func() {
		routerErr <- a.Router.Run(ctx)
	}()

	select {
	case <-a.Router.Running():
		logger.InfoContext(ctx, "Message router running")
	case err := <-routerErr:
		return fmt.Errorf("message router stopped during startup: %w", err)
	}

	return httpapi.Serve(ctx, a.Config.HTTP.Address, a.HTTPRouter, logger)
}

// Close stops the modules, then releases the bus, the database and the tracer.
func (a *App) Close() error {
	logger := a.Observability.Provider.Logger
	var errs []error

	if a.TournamentModule != nil {
		if err := a.TournamentModule.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.LeagueModule != nil {
		if err := a.LeagueModule.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		logger.Warn("Timed out waiting for module goroutines")
	}

	a.closeInfra()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Observability.Provider.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("observability shutdown: %w", err))
	}

	logger.Info("Application shut down")
	return errors.Join(errs...)
}

func (a *App) closeInfra() {
	logger := a.Observability.Provider.Logger
	if a.Router != nil {
		if err := a.Router.Close(); err != nil {
			logger.Error("Error closing message router", "error", err)
		}
	}
	if a.EventBus != nil {
		if err := a.EventBus.Close(); err != nil {
			logger.Error("Error closing event bus", "error", err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			logger.Error("Error closing database", "error", err)
		}
	}
}

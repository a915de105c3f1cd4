package league

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	leagueservice "github.com/Black-And-White-Club/scorebook/app/modules/league/application"
	leaguehandlers "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/handlers"
	leagueapi "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/httpapi"
	leaguequeue "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/queue"
	leaguedb "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/repositories"
	leaguerouter "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/router"
	"github.com/Black-And-White-Club/scorebook/config"
	"github.com/Black-And-White-Club/scorebook/pkg/eventbus"
	"github.com/Black-And-White-Club/scorebook/pkg/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the league module.
type Module struct {
	LeagueService leagueservice.Service
	LeagueRouter  *leaguerouter.LeagueRouter
	QueueService  *leaguequeue.Service
	cancelFunc    context.CancelFunc
	observability observability.Observability
}

// NewLeagueModule creates and initializes a new league module. httpRouter may be nil, in
// which case no HTTP routes are mounted.
func NewLeagueModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	eventBus eventbus.EventBus,
	router *message.Router,
	routerCtx context.Context,
	db *bun.DB,
	httpRouter chi.Router,
	authorize func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "league.NewLeagueModule initializing")

	// 1. Initialize Repository
	repo := leaguedb.NewRepository(db)

	// 2. Initialize Service
	service := leagueservice.NewLeagueService(repo, logger, obs.Registry.LeagueMetrics, tracer, db, eventBus)

	// 3. Initialize Handlers
	handlers := leaguehandlers.NewLeagueHandlers(service, logger, tracer)

	// 4. Initialize Router
	leagueRouter := leaguerouter.NewLeagueRouter(
		logger,
		router,
		eventBus,
		eventBus,
		obs.Registry.LeagueMetrics,
		tracer,
	)

	// 5. Configure the router with handlers
	if err := leagueRouter.Configure(routerCtx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure league router: %w", err)
	}

	// 6. Register HTTP routes
	if httpRouter != nil {
		leagueapi.NewAPI(service, logger).Register(httpRouter, authorize)
	}

	// 7. Week rollover scheduler
	var queue *leaguequeue.Service
	if cfg.League.WeekRolloverInterval > 0 {
		var err error
		queue, err = leaguequeue.NewService(ctx, cfg.Postgres.DSN, service, cfg.League.WeekRolloverInterval, logger, obs.Registry.QueueMetrics)
		if err != nil {
			return nil, fmt.Errorf("failed to create league queue service: %w", err)
		}
	}

	return &Module{
		LeagueService: service,
		LeagueRouter:  leagueRouter,
		QueueService:  queue,
		observability: obs,
	}, nil
}

// Run starts the league module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting league module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if m.QueueService != nil {
		if err := m.QueueService.Start(ctx); err != nil {
			logger.ErrorContext(ctx, "Failed to start league queue service", "error", err)
		}
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "League module goroutine stopped")
}

// Close shuts down the league module.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping league module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.QueueService != nil {
		if err := m.QueueService.Stop(context.Background()); err != nil {
			logger.Error("Error stopping league queue service", "error", err)
		}
	}

	if m.LeagueRouter != nil {
		if err := m.LeagueRouter.Close(); err != nil {
			logger.Error("Error closing LeagueRouter from module", "error", err)
			return fmt.Errorf("error closing LeagueRouter: %w", err)
		}
	}

	logger.Info("League module stopped")
	return nil
}

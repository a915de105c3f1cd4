package tournament

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	tournamentservice "github.com/Black-And-White-Club/scorebook/app/modules/tournament/application"
	tournamenthandlers "github.com/Black-And-White-Club/scorebook/app/modules/tournament/infrastructure/handlers"
	tournamentapi "github.com/Black-And-White-Club/scorebook/app/modules/tournament/infrastructure/httpapi"
	tournamentdb "github.com/Black-And-White-Club/scorebook/app/modules/tournament/infrastructure/repositories"
	tournamentrouter "github.com/Black-And-White-Club/scorebook/app/modules/tournament/infrastructure/router"
	"github.com/Black-And-White-Club/scorebook/config"
	"github.com/Black-And-White-Club/scorebook/pkg/eventbus"
	"github.com/Black-And-White-Club/scorebook/pkg/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the tournament module.
type Module struct {
	TournamentService tournamentservice.Service
	TournamentRouter  *tournamentrouter.TournamentRouter
	cancelFunc        context.CancelFunc
	observability     observability.Observability
}

// NewTournamentModule creates the tournament module. Seeds and season state are read
// through leagues, normally the league module's service.
func NewTournamentModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	eventBus eventbus.EventBus,
	router *message.Router,
	routerCtx context.Context,
	db *bun.DB,
	leagues tournamentservice.LeagueReader,
	httpRouter chi.Router,
	authorize func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "tournament.NewTournamentModule initializing")

	repo := tournamentdb.NewRepository(db)
	service := tournamentservice.NewTournamentService(repo, leagues, logger, obs.Registry.TournamentMetrics, tracer, db, eventBus)

	handlers := tournamenthandlers.NewTournamentHandlers(service, logger, tracer, tournamenthandlers.AutoTournament{
		Enabled:  cfg.League.AutoTournament,
		MaxSeeds: cfg.League.MaxSeeds,
	})

	tournamentRouter := tournamentrouter.NewTournamentRouter(
		logger,
		router,
		eventBus,
		eventBus,
		obs.Registry.TournamentMetrics,
		tracer,
	)
	if err := tournamentRouter.Configure(routerCtx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure tournament router: %w", err)
	}

	if httpRouter != nil {
		tournamentapi.NewAPI(service, logger).Register(httpRouter, authorize)
	}

	return &Module{
		TournamentService: service,
		TournamentRouter:  tournamentRouter,
		observability:     obs,
	}, nil
}

// Run starts the tournament module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting tournament module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Tournament module goroutine stopped")
}

// Close shuts down the tournament module.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping tournament module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.TournamentRouter != nil {
		if err := m.TournamentRouter.Close(); err != nil {
			logger.Error("Error closing TournamentRouter from module", "error", err)
			return fmt.Errorf("error closing TournamentRouter: %w", err)
		}
	}

	logger.Info("Tournament module stopped")
	return nil
}

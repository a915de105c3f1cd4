package tournamentrouter

import (
	"context"
	"log/slog"

	tournamenthandlers "github.com/Black-And-White-Club/scorebook/app/modules/tournament/infrastructure/handlers"
	leagueevents "github.com/Black-And-White-Club/scorebook/pkg/events/league"
	tournamentevents "github.com/Black-And-White-Club/scorebook/pkg/events/tournament"
	"github.com/Black-And-White-Club/scorebook/pkg/handlerwrapper"
	"github.com/Black-And-White-Club/scorebook/pkg/observability/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// TournamentRouter handles Watermill handler registration for tournament events.
type TournamentRouter struct {
	logger     *slog.Logger
	router     *message.Router
	subscriber message.Subscriber
	publisher  message.Publisher
	metrics    metrics.OperationMetrics
	tracer     trace.Tracer
}

// NewTournamentRouter creates a new TournamentRouter.
func NewTournamentRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
) *TournamentRouter {
	return &TournamentRouter{
		logger:     logger,
		router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		metrics:    metrics,
		tracer:     tracer,
	}
}

// Configure sets up the router with handlers.
func (r *TournamentRouter) Configure(_ context.Context, handlers tournamenthandlers.Handlers) error {
	r.logger.Info("Registering tournament module handlers",
		slog.String("game_record_subject", tournamentevents.GameRecordRequestedV1),
		slog.String("season_completed_subject", leagueevents.SeasonCompletedV1),
	)

	r.register(tournamentevents.GameRecordRequestedV1, handlerwrapper.WrapTransformingTyped(
		"tournament."+tournamentevents.GameRecordRequestedV1, r.logger, r.tracer, r.metrics, handlers.HandleGameRecordRequested))
	r.register(leagueevents.SeasonCompletedV1, handlerwrapper.WrapTransformingTyped(
		"tournament."+leagueevents.SeasonCompletedV1, r.logger, r.tracer, r.metrics, handlers.HandleSeasonCompleted))

	r.logger.Info("Tournament module handlers registered successfully")
	return nil
}

func (r *TournamentRouter) register(topic string, handler message.HandlerFunc) {
	r.router.AddHandler("tournament."+topic, topic, r.subscriber, "", r.publisher, handler)
}

// Close shuts down the router.
func (r *TournamentRouter) Close() error {
	return r.router.Close()
}

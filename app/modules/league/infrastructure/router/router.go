package leaguerouter

import (
	"context"
	"log/slog"

	leaguehandlers "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/handlers"
	leagueevents "github.com/Black-And-White-Club/scorebook/pkg/events/league"
	"github.com/Black-And-White-Club/scorebook/pkg/handlerwrapper"
	"github.com/Black-And-White-Club/scorebook/pkg/observability/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// LeagueRouter handles Watermill handler registration for league events.
type LeagueRouter struct {
	logger     *slog.Logger
	router     *message.Router
	subscriber message.Subscriber
	publisher  message.Publisher
	metrics    metrics.OperationMetrics
	tracer     trace.Tracer
}

// NewLeagueRouter creates a new LeagueRouter.
func NewLeagueRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
) *LeagueRouter {
	return &LeagueRouter{
		logger:     logger,
		router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		metrics:    metrics,
		tracer:     tracer,
	}
}

// Configure sets up the router with handlers.
func (r *LeagueRouter) Configure(_ context.Context, handlers leaguehandlers.Handlers) error {
	r.registerHandlers(handlers)
	return nil
}

// handlerDeps bundles dependencies for handler registration.
type handlerDeps struct {
	router     *message.Router
	subscriber message.Subscriber
	publisher  message.Publisher
	logger     *slog.Logger
	tracer     trace.Tracer
	metrics    metrics.OperationMetrics
}

func (r *LeagueRouter) registerHandlers(handlers leaguehandlers.Handlers) {
	deps := handlerDeps{
		router:     r.router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
		metrics:    r.metrics,
	}

	r.logger.Info("Registering league module handlers",
		slog.String("match_record_subject", leagueevents.MatchRecordRequestedV1),
		slog.String("standings_subject", leagueevents.StandingsRequestedV1),
	)

	registerHandler(deps, leagueevents.MatchRecordRequestedV1, handlers.HandleMatchRecordRequested)
	registerHandler(deps, leagueevents.StandingsRequestedV1, handlers.HandleStandingsRequested)

	r.logger.Info("League module handlers registered successfully")
}

// registerHandler is a generic function for type-safe Watermill handler registration.
// Outgoing messages carry their topic in metadata, so the publish topic is left empty.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "league." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.subscriber,
		"",
		deps.publisher,
		handlerwrapper.WrapTransformingTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			deps.metrics,
			handler,
		),
	)
}

// Close shuts down the router.
func (r *LeagueRouter) Close() error {
	return r.router.Close()
}

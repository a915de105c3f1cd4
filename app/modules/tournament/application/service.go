package tournamentservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	leaguedomain "github.com/Black-And-White-Club/scorebook/app/modules/league/domain"
	tournamentdb "github.com/Black-And-White-Club/scorebook/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/scorebook/pkg/eventbus"
	"github.com/Black-And-White-Club/scorebook/pkg/handlerwrapper"
	"github.com/Black-And-White-Club/scorebook/pkg/observability/attr"
	"github.com/Black-And-White-Club/scorebook/pkg/observability/metrics"
	"github.com/Black-And-White-Club/scorebook/pkg/results"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "TournamentService"

// LeagueReader is the slice of the league module a bracket is seeded from.
type LeagueReader interface {
	GetSeason(ctx context.Context, seasonID uuid.UUID) (leaguedomain.Season, error)
	GetStandings(ctx context.Context, leagueID uuid.UUID, seasonID *uuid.UUID) ([]leaguedomain.LeaderboardEntry, error)
}

// TournamentService implements the Service interface.
type TournamentService struct {
	repo      tournamentdb.Repository
	leagues   LeagueReader
	logger    *slog.Logger
	metrics   metrics.OperationMetrics
	tracer    trace.Tracer
	db        *bun.DB
	publisher message.Publisher
}

// NewTournamentService creates a new TournamentService.
func NewTournamentService(
	repo tournamentdb.Repository,
	leagues LeagueReader,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	publisher message.Publisher,
) *TournamentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TournamentService{
		repo:      repo,
		leagues:   leagues,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
		publisher: publisher,
	}
}

type outboundEvent struct {
	topic    string
	leagueID uuid.UUID
	payload  any
}

func (s *TournamentService) publish(ctx context.Context, events ...outboundEvent) {
	if s.publisher == nil {
		return
	}
	for _, ev := range events {
		msg, err := handlerwrapper.NewMessage(ctx, handlerwrapper.Result{
			Topic:    ev.topic,
			Payload:  ev.payload,
			Metadata: map[string]string{"league_id": ev.leagueID.String()},
		})
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to build event", attr.ExtractCorrelationID(ctx), attr.String("topic", ev.topic), attr.Error(err))
			continue
		}
		if err := s.publisher.Publish(ev.topic, msg); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish event", attr.ExtractCorrelationID(ctx), attr.String("topic", ev.topic), attr.Error(err))
			continue
		}
		if err := eventbus.PublishWithLeagueScope(s.publisher, ev.topic, ev.leagueID.String(), msg.Copy()); err != nil {
			s.logger.WarnContext(ctx, "Failed to publish league-scoped event", attr.ExtractCorrelationID(ctx), attr.String("topic", ev.topic), attr.Error(err))
		}
	}
}

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any](
	s *TournamentService,
	ctx context.Context,
	operationName string,
	identifier string,
	op func(ctx context.Context) (results.OperationResult[S, error], error),
) (result results.OperationResult[S, error], err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}
	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			result = results.OperationResult[S, error]{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}
	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}
	return result, nil
}

func runInTx[S any](
	s *TournamentService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, error], error),
) (results.OperationResult[S, error], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, error]
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})
	return result, err
}

func run[S any](
	s *TournamentService,
	ctx context.Context,
	operationName string,
	identifier string,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, error], error),
) (S, error) {
	result, err := withTelemetry(s, ctx, operationName, identifier, func(ctx context.Context) (results.OperationResult[S, error], error) {
		return runInTx(s, ctx, fn)
	})
	return results.Unwrap(result, err)
}

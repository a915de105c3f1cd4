// Package leaguequeue runs the scheduled week rollover on River.
package leaguequeue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/scorebook/pkg/observability/attr"
	"github.com/Black-And-White-Club/scorebook/pkg/observability/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
)

const serviceName = "river"

// Service owns the River client and the pgx pool it runs on.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics metrics.OperationMetrics
}

// NewService connects River to Postgres and registers the week rollover to run every
// interval. Migrations for River's tables are applied by "scorebook migrate".
func NewService(ctx context.Context, dsn string, seasons SeasonAdvancer, interval time.Duration, logger *slog.Logger, m metrics.OperationMetrics) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	m.RecordOperationAttempt(ctx, "initialize_service", serviceName)

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		m.RecordOperationFailure(ctx, "initialize_service", serviceName)
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		m.RecordOperationFailure(ctx, "initialize_service", serviceName)
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		ctxLogger.Error("Failed to ping database for River", attr.Error(err))
		m.RecordOperationFailure(ctx, "initialize_service", serviceName)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewWeekRolloverWorker(seasons, ctxLogger))
	river.AddWorker(workers, NewWeekAdvanceWorker(seasons, ctxLogger))

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Logger: ctxLogger,
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 5},
			queueName:          {MaxWorkers: 10},
		},
		PeriodicJobs: []*river.PeriodicJob{RolloverSchedule(interval)},
		Workers:      workers,
	})
	if err != nil {
		pool.Close()
		m.RecordOperationFailure(ctx, "initialize_service", serviceName)
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	m.RecordOperationSuccess(ctx, "initialize_service", serviceName)
	m.RecordOperationDuration(ctx, "initialize_service", serviceName, time.Since(start))
	ctxLogger.Info("League queue service initialized", attr.String("rollover_interval", interval.String()))

	return &Service{client: client, pool: pool, logger: ctxLogger, metrics: m}, nil
}

// RolloverSchedule enqueues a WeekRolloverJob every interval.
func RolloverSchedule(interval time.Duration) *river.PeriodicJob {
	return river.NewPeriodicJob(
		river.PeriodicInterval(interval),
		func() (river.JobArgs, *river.InsertOpts) {
			return WeekRolloverJob{}, &river.InsertOpts{Queue: queueName}
		},
		&river.PeriodicJobOpts{RunOnStart: false},
	)
}

// Start starts fetching jobs.
func (s *Service) Start(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "start_service", serviceName)
	if err := s.client.Start(ctx); err != nil {
		s.metrics.RecordOperationFailure(ctx, "start_service", serviceName)
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.metrics.RecordOperationSuccess(ctx, "start_service", serviceName)
	s.logger.Info("League queue service started")
	return nil
}

// Stop waits for running jobs, then closes the pool.
func (s *Service) Stop(ctx context.Context) error {
	defer s.pool.Close()
	if err := s.client.Stop(ctx); err != nil {
		s.logger.Error("Failed to stop River client", attr.Error(err))
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.logger.Info("League queue service stopped")
	return nil
}

// TriggerRollover enqueues an immediate rollover, used by the CLI and operators.
func (s *Service) TriggerRollover(ctx context.Context) error {
	if _, err := s.client.Insert(ctx, WeekRolloverJob{}, &river.InsertOpts{Queue: queueName}); err != nil {
		return fmt.Errorf("failed to enqueue rollover: %w", err)
	}
	return nil
}

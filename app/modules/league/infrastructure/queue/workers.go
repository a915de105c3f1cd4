package leaguequeue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	leaguedomain "github.com/Black-And-White-Club/scorebook/app/modules/league/domain"
	"github.com/Black-And-White-Club/scorebook/pkg/observability/attr"
	"github.com/Black-And-White-Club/scorebook/pkg/results"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

// SeasonAdvancer is the slice of the league service the workers drive.
type SeasonAdvancer interface {
	ListActiveSeasons(ctx context.Context) ([]leaguedomain.Season, error)
	// AdvanceWeekFrom compares the current week with fromWeek under the season lock.
	AdvanceWeekFrom(ctx context.Context, seasonID uuid.UUID, fromWeek int) (leaguedomain.Season, error)
}

// JobInserter is satisfied by *river.Client.
type JobInserter interface {
	Insert(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (*rivertype.JobInsertResult, error)
}

// WeekRolloverWorker enqueues a WeekAdvanceJob for every active season.
type WeekRolloverWorker struct {
	river.WorkerDefaults[WeekRolloverJob]
	seasons SeasonAdvancer
	logger  *slog.Logger
	// inserter resolves the client that runs the job; tests replace it.
	inserter func(ctx context.Context) (JobInserter, error)
}

func NewWeekRolloverWorker(seasons SeasonAdvancer, logger *slog.Logger) *WeekRolloverWorker {
	return &WeekRolloverWorker{
		seasons: seasons,
		logger:  logger,
		inserter: func(ctx context.Context) (JobInserter, error) {
			return river.ClientFromContextSafely[pgx.Tx](ctx)
		},
	}
}

func (w *WeekRolloverWorker) Work(ctx context.Context, job *river.Job[WeekRolloverJob]) error {
	seasons, err := w.seasons.ListActiveSeasons(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active seasons: %w", err)
	}
	client, err := w.inserter(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve river client: %w", err)
	}

	for _, season := range seasons {
		args := WeekAdvanceJob{SeasonID: season.ID, FromWeek: season.CurrentWeek}
		if _, err := client.Insert(ctx, args, &river.InsertOpts{
			Queue:      queueName,
			UniqueOpts: river.UniqueOpts{ByArgs: true},
		}); err != nil {
			return fmt.Errorf("failed to enqueue week advance for season %s: %w", season.ID, err)
		}
	}

	w.logger.InfoContext(ctx, "Week rollover enqueued",
		attr.Int("seasons", len(seasons)),
		slog.Int64("job_id", job.ID),
	)
	return nil
}

// WeekAdvanceWorker advances a single season by one week.
type WeekAdvanceWorker struct {
	river.WorkerDefaults[WeekAdvanceJob]
	seasons SeasonAdvancer
	logger  *slog.Logger
}

func NewWeekAdvanceWorker(seasons SeasonAdvancer, logger *slog.Logger) *WeekAdvanceWorker {
	return &WeekAdvanceWorker{seasons: seasons, logger: logger}
}

func (w *WeekAdvanceWorker) Work(ctx context.Context, job *river.Job[WeekAdvanceJob]) error {
	args := job.Args
	logger := w.logger.With(
		attr.String("season_id", args.SeasonID.String()),
		attr.Int("from_week", args.FromWeek),
	)

	next, err := w.seasons.AdvanceWeekFrom(ctx, args.SeasonID, args.FromWeek)
	switch {
	case errors.Is(err, leaguedomain.ErrWeekAlreadyAdvanced), errors.Is(err, leaguedomain.ErrSeasonCompleted):
		logger.InfoContext(ctx, "Week advance already applied", attr.Error(err))
		return nil
	case results.IsFailure(err):
		logger.WarnContext(ctx, "Week advance rejected", attr.Error(err))
		return nil
	case err != nil:
		return fmt.Errorf("failed to advance week: %w", err)
	}

	logger.InfoContext(ctx, "Season week advanced",
		attr.Int("current_week", next.CurrentWeek),
		attr.String("status", string(next.Status)),
	)
	return nil
}

package leaguequeue

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	leaguedomain "github.com/Black-And-White-Club/scorebook/app/modules/league/domain"
	"github.com/Black-And-White-Club/scorebook/pkg/results"
	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type FakeSeasons struct {
	trace   []string
	seasons map[uuid.UUID]leaguedomain.Season

	ListErr    error
	AdvanceErr error
}

func newFakeSeasons(seasons ...leaguedomain.Season) *FakeSeasons {
	f := &FakeSeasons{seasons: make(map[uuid.UUID]leaguedomain.Season)}
	for _, s := range seasons {
		f.seasons[s.ID] = s
	}
	return f
}

func (f *FakeSeasons) ListActiveSeasons(ctx context.Context) ([]leaguedomain.Season, error) {
	f.trace = append(f.trace, "ListActiveSeasons")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	var out []leaguedomain.Season
	for _, s := range f.seasons {
		if s.Status == leaguedomain.SeasonStatusActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *FakeSeasons) AdvanceWeekFrom(ctx context.Context, seasonID uuid.UUID, fromWeek int) (leaguedomain.Season, error) {
	f.trace = append(f.trace, "AdvanceWeekFrom")
	if f.AdvanceErr != nil {
		return leaguedomain.Season{}, f.AdvanceErr
	}
	season, ok := f.seasons[seasonID]
	if !ok {
		return leaguedomain.Season{}, &results.FailureError{Err: errors.New("season not found")}
	}
	next, err := leaguedomain.AdvanceWeekFrom(season, fromWeek)
	if err != nil {
		return leaguedomain.Season{}, &results.FailureError{Err: err}
	}
	f.seasons[seasonID] = next
	return next, nil
}

type recordingInserter struct {
	jobs []river.JobArgs
	err  error
}

func (r *recordingInserter) Insert(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (*rivertype.JobInsertResult, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.jobs = append(r.jobs, args)
	return &rivertype.JobInsertResult{Job: &rivertype.JobRow{ID: int64(len(r.jobs))}}, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func activeSeason(week, weeks int) leaguedomain.Season {
	return leaguedomain.Season{
		ID:            uuid.New(),
		LeagueID:      uuid.New(),
		Name:          "Spring",
		StartDate:     time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		WeeksDuration: weeks,
		CurrentWeek:   week,
		Status:        leaguedomain.SeasonStatusActive,
	}
}

func TestWeekRolloverWorker(t *testing.T) {
	first := activeSeason(2, 8)
	second := activeSeason(5, 6)
	done := activeSeason(4, 4)
	done.Status = leaguedomain.SeasonStatusCompleted

	seasons := newFakeSeasons(first, second, done)
	inserter := &recordingInserter{}
	w := NewWeekRolloverWorker(seasons, discard())
	w.inserter = func(context.Context) (JobInserter, error) { return inserter, nil }

	require.NoError(t, w.Work(context.Background(), &river.Job[WeekRolloverJob]{JobRow: &rivertype.JobRow{ID: 1}}))

	assert.ElementsMatch(t, []river.JobArgs{
		WeekAdvanceJob{SeasonID: first.ID, FromWeek: 2},
		WeekAdvanceJob{SeasonID: second.ID, FromWeek: 5},
	}, inserter.jobs)
}

func TestWeekRolloverWorkerErrors(t *testing.T) {
	t.Run("listing fails", func(t *testing.T) {
		seasons := newFakeSeasons()
		seasons.ListErr = errors.New("connection refused")
		w := NewWeekRolloverWorker(seasons, discard())
		w.inserter = func(context.Context) (JobInserter, error) { return &recordingInserter{}, nil }

		err := w.Work(context.Background(), &river.Job[WeekRolloverJob]{JobRow: &rivertype.JobRow{ID: 1}})
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("insert fails", func(t *testing.T) {
		seasons := newFakeSeasons(activeSeason(1, 4))
		w := NewWeekRolloverWorker(seasons, discard())
		w.inserter = func(context.Context) (JobInserter, error) { return &recordingInserter{err: errors.New("queue full")}, nil }

		err := w.Work(context.Background(), &river.Job[WeekRolloverJob]{JobRow: &rivertype.JobRow{ID: 1}})
		assert.ErrorContains(t, err, "queue full")
	})
}

func TestWeekAdvanceWorker(t *testing.T) {
	tests := []struct {
		name       string
		season     leaguedomain.Season
		fromWeek   func(leaguedomain.Season) int
		advanceErr error
		wantTrace  []string
		wantWeek   int
		wantStatus leaguedomain.SeasonStatus
		wantErr    bool
	}{
		{
			name:       "advances",
			season:     activeSeason(3, 8),
			fromWeek:   func(s leaguedomain.Season) int { return 3 },
			wantTrace:  []string{"AdvanceWeekFrom"},
			wantWeek:   4,
			wantStatus: leaguedomain.SeasonStatusActive,
		},
		{
			name:       "final week completes the season",
			season:     activeSeason(4, 4),
			fromWeek:   func(s leaguedomain.Season) int { return 4 },
			wantTrace:  []string{"AdvanceWeekFrom"},
			wantWeek:   4,
			wantStatus: leaguedomain.SeasonStatusCompleted,
		},
		{
			name:       "duplicate delivery is a no-op",
			season:     activeSeason(5, 8),
			fromWeek:   func(s leaguedomain.Season) int { return 4 },
			wantTrace:  []string{"AdvanceWeekFrom"},
			wantWeek:   5,
			wantStatus: leaguedomain.SeasonStatusActive,
		},
		{
			name:       "completed season is left alone",
			season:     func() leaguedomain.Season { s := activeSeason(4, 4); s.Status = leaguedomain.SeasonStatusCompleted; return s }(),
			fromWeek:   func(s leaguedomain.Season) int { return 4 },
			wantTrace:  []string{"AdvanceWeekFrom"},
			wantWeek:   4,
			wantStatus: leaguedomain.SeasonStatusCompleted,
		},
		{
			name:       "storage error retries",
			season:     activeSeason(2, 8),
			fromWeek:   func(s leaguedomain.Season) int { return 2 },
			advanceErr: errors.New("deadlock detected"),
			wantTrace:  []string{"AdvanceWeekFrom"},
			wantWeek:   2,
			wantStatus: leaguedomain.SeasonStatusActive,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seasons := newFakeSeasons(tt.season)
			seasons.AdvanceErr = tt.advanceErr
			w := NewWeekAdvanceWorker(seasons, discard())

			err := w.Work(context.Background(), &river.Job[WeekAdvanceJob]{
				JobRow: &rivertype.JobRow{ID: 7},
				Args:   WeekAdvanceJob{SeasonID: tt.season.ID, FromWeek: tt.fromWeek(tt.season)},
			})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantTrace, seasons.trace)
			got := seasons.seasons[tt.season.ID]
			assert.Equal(t, tt.wantWeek, got.CurrentWeek)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestWeekAdvanceWorkerUnknownSeason(t *testing.T) {
	seasons := newFakeSeasons()
	w := NewWeekAdvanceWorker(seasons, discard())
	err := w.Work(context.Background(), &river.Job[WeekAdvanceJob]{
		JobRow: &rivertype.JobRow{ID: 9},
		Args:   WeekAdvanceJob{SeasonID: uuid.New(), FromWeek: 1},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"AdvanceWeekFrom"}, seasons.trace)
}

func TestWeekAdvanceWorkerAfterManualAdvance(t *testing.T) {
	season := activeSeason(3, 8)
	seasons := newFakeSeasons(season)
	w := NewWeekAdvanceWorker(seasons, discard())

	// The rollover enqueued week 3, then an organizer advanced by hand before the job ran.
	manual, err := seasons.AdvanceWeekFrom(context.Background(), season.ID, 3)
	require.NoError(t, err)
	require.Equal(t, 4, manual.CurrentWeek)

	err = w.Work(context.Background(), &river.Job[WeekAdvanceJob]{
		JobRow: &rivertype.JobRow{ID: 11},
		Args:   WeekAdvanceJob{SeasonID: season.ID, FromWeek: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, seasons.seasons[season.ID].CurrentWeek)
}

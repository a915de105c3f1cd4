package leagueservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	leaguedomain "github.com/Black-And-White-Club/scorebook/app/modules/league/domain"
	leaguedb "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/repositories"
	leagueevents "github.com/Black-And-White-Club/scorebook/pkg/events/league"
	"github.com/Black-And-White-Club/scorebook/pkg/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// StartSeason opens a new season at week 1.
func (s *LeagueService) StartSeason(ctx context.Context, leagueID uuid.UUID, name string, startDate time.Time, weeks int) (leaguedomain.Season, error) {
	season, err := run(s, ctx, "StartSeason", leagueID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[leaguedomain.Season, error], error) {
		return s.startSeasonLogic(ctx, db, leagueID, name, startDate, weeks)
	})
	if err != nil {
		return leaguedomain.Season{}, err
	}

	s.publish(ctx, outboundEvent{
		topic:    leagueevents.SeasonStartedV1,
		leagueID: leagueID,
		payload: &leagueevents.SeasonStartedPayloadV1{
			LeagueID:      leagueID,
			SeasonID:      season.ID,
			Name:          season.Name,
			StartDate:     season.StartDate,
			WeeksDuration: season.WeeksDuration,
		},
	})
	return season, nil
}

func (s *LeagueService) startSeasonLogic(ctx context.Context, db bun.IDB, leagueID uuid.UUID, name string, startDate time.Time, weeks int) (results.OperationResult[leaguedomain.Season, error], error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return results.FailureResult[leaguedomain.Season, error](ErrEmptyName), nil
	}
	if err := s.repo.AcquireLock(ctx, db, lockKeyLeague(leagueID)); err != nil {
		return results.OperationResult[leaguedomain.Season, error]{}, err
	}

	league, err := s.loadLeague(ctx, db, leagueID)
	if err != nil {
		return asResult[leaguedomain.Season](err)
	}

	active, err := s.repo.GetActiveSeason(ctx, db, leagueID)
	switch {
	case err == nil:
		return results.FailureResult[leaguedomain.Season, error](fmt.Errorf("%w: %s", ErrActiveSeasonExists, active.Name)), nil
	case !errors.Is(err, leaguedb.ErrNoActiveSeason):
		return results.OperationResult[leaguedomain.Season, error]{}, fmt.Errorf("failed to check active season: %w", err)
	}

	if startDate.IsZero() {
		startDate = time.Now().UTC()
	}
	startDate = time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)

	season, err := leaguedomain.NewSeason(league, name, startDate, weeks)
	if err != nil {
		return results.FailureResult[leaguedomain.Season, error](err), nil
	}
	season.ID = uuid.New()

	if err := s.repo.CreateSeason(ctx, db, leaguedb.SeasonFromDomain(season)); err != nil {
		return results.OperationResult[leaguedomain.Season, error]{}, fmt.Errorf("failed to create season: %w", err)
	}
	return results.SuccessResult[leaguedomain.Season, error](season), nil
}

// GetSeason returns one season snapshot.
func (s *LeagueService) GetSeason(ctx context.Context, seasonID uuid.UUID) (leaguedomain.Season, error) {
	return run(s, ctx, "GetSeason", seasonID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[leaguedomain.Season, error], error) {
		season, err := s.loadSeason(ctx, db, seasonID)
		if err != nil {
			return asResult[leaguedomain.Season](err)
		}
		return results.SuccessResult[leaguedomain.Season, error](season), nil
	})
}

// ListActiveSeasons returns every season still accepting weeks, across leagues.
func (s *LeagueService) ListActiveSeasons(ctx context.Context) ([]leaguedomain.Season, error) {
	return run(s, ctx, "ListActiveSeasons", "", func(ctx context.Context, db bun.IDB) (results.OperationResult[[]leaguedomain.Season, error], error) {
		rows, err := s.repo.ListActiveSeasons(ctx, db)
		if err != nil {
			return results.OperationResult[[]leaguedomain.Season, error]{}, fmt.Errorf("failed to list active seasons: %w", err)
		}
		seasons := make([]leaguedomain.Season, 0, len(rows))
		for i := range rows {
			seasons = append(seasons, rows[i].ToDomain())
		}
		return results.SuccessResult[[]leaguedomain.Season, error](seasons), nil
	})
}

// AdvanceWeek moves the season to its next week, completing it after the final week.
func (s *LeagueService) AdvanceWeek(ctx context.Context, seasonID uuid.UUID) (leaguedomain.Season, error) {
	return s.advanceWeek(ctx, "AdvanceWeek", seasonID, leaguedomain.AdvanceWeek)
}

// AdvanceWeekFrom is AdvanceWeek for scheduled jobs: it fails with
// leaguedomain.ErrWeekAlreadyAdvanced unless the season is still at fromWeek when the
// season lock is held.
func (s *LeagueService) AdvanceWeekFrom(ctx context.Context, seasonID uuid.UUID, fromWeek int) (leaguedomain.Season, error) {
	return s.advanceWeek(ctx, "AdvanceWeekFrom", seasonID, func(season leaguedomain.Season) (leaguedomain.Season, error) {
		return leaguedomain.AdvanceWeekFrom(season, fromWeek)
	})
}

func (s *LeagueService) advanceWeek(ctx context.Context, operation string, seasonID uuid.UUID, next func(leaguedomain.Season) (leaguedomain.Season, error)) (leaguedomain.Season, error) {
	season, err := run(s, ctx, operation, seasonID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[leaguedomain.Season, error], error) {
		return s.transitionSeason(ctx, db, seasonID, next)
	})
	if err != nil {
		return leaguedomain.Season{}, err
	}

	if season.Status == leaguedomain.SeasonStatusCompleted {
		s.publish(ctx, seasonCompletedEvent(season))
		return season, nil
	}
	s.publish(ctx, outboundEvent{
		topic:    leagueevents.WeekAdvancedV1,
		leagueID: season.LeagueID,
		payload: &leagueevents.WeekAdvancedPayloadV1{
			LeagueID:    season.LeagueID,
			SeasonID:    season.ID,
			CurrentWeek: season.CurrentWeek,
		},
	})
	return season, nil
}

// EndSeason marks the season completed at its current week.
func (s *LeagueService) EndSeason(ctx context.Context, seasonID uuid.UUID) (leaguedomain.Season, error) {
	season, err := run(s, ctx, "EndSeason", seasonID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[leaguedomain.Season, error], error) {
		return s.transitionSeason(ctx, db, seasonID, leaguedomain.CompleteSeason)
	})
	if err != nil {
		return leaguedomain.Season{}, err
	}
	s.publish(ctx, seasonCompletedEvent(season))
	return season, nil
}

// transitionSeason applies a domain transition to the locked season row.
func (s *LeagueService) transitionSeason(ctx context.Context, db bun.IDB, seasonID uuid.UUID, next func(leaguedomain.Season) (leaguedomain.Season, error)) (results.OperationResult[leaguedomain.Season, error], error) {
	if err := s.repo.AcquireLock(ctx, db, lockKeySeason(seasonID)); err != nil {
		return results.OperationResult[leaguedomain.Season, error]{}, err
	}
	season, err := s.loadSeason(ctx, db, seasonID)
	if err != nil {
		return asResult[leaguedomain.Season](err)
	}

	updated, err := next(season)
	if err != nil {
		return results.FailureResult[leaguedomain.Season, error](err), nil
	}
	if err := s.repo.UpdateSeason(ctx, db, leaguedb.SeasonFromDomain(updated)); err != nil {
		return results.OperationResult[leaguedomain.Season, error]{}, fmt.Errorf("failed to update season: %w", err)
	}
	return results.SuccessResult[leaguedomain.Season, error](updated), nil
}

func seasonCompletedEvent(season leaguedomain.Season) outboundEvent {
	return outboundEvent{
		topic:    leagueevents.SeasonCompletedV1,
		leagueID: season.LeagueID,
		payload: &leagueevents.SeasonCompletedPayloadV1{
			LeagueID: season.LeagueID,
			SeasonID: season.ID,
		},
	}
}

// RecordAttendance replaces the attendance set for one week of the season.
func (s *LeagueService) RecordAttendance(ctx context.Context, seasonID uuid.UUID, week int, playerIDs []uuid.UUID) error {
	season, err := run(s, ctx, "RecordAttendance", seasonID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[leaguedomain.Season, error], error) {
		return s.recordAttendanceLogic(ctx, db, seasonID, week, playerIDs)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, outboundEvent{
		topic:    leagueevents.AttendanceRecordedV1,
		leagueID: season.LeagueID,
		payload: &leagueevents.AttendanceRecordedPayloadV1{
			LeagueID:  season.LeagueID,
			SeasonID:  seasonID,
			Week:      week,
			PlayerIDs: dedupe(playerIDs),
		},
	})
	return nil
}

func (s *LeagueService) recordAttendanceLogic(ctx context.Context, db bun.IDB, seasonID uuid.UUID, week int, playerIDs []uuid.UUID) (results.OperationResult[leaguedomain.Season, error], error) {
	if err := s.repo.AcquireLock(ctx, db, lockKeySeason(seasonID)); err != nil {
		return results.OperationResult[leaguedomain.Season, error]{}, err
	}
	season, err := s.loadSeason(ctx, db, seasonID)
	if err != nil {
		return asResult[leaguedomain.Season](err)
	}
	if err := season.CheckOpenWeek(week); err != nil {
		return results.FailureResult[leaguedomain.Season, error](err), nil
	}

	roster, err := s.loadRoster(ctx, db, season.LeagueID)
	if err != nil {
		return results.OperationResult[leaguedomain.Season, error]{}, err
	}
	ids := dedupe(playerIDs)
	if err := checkRegistered(roster, ids); err != nil {
		return results.FailureResult[leaguedomain.Season, error](err), nil
	}

	if err := s.repo.ReplaceAttendance(ctx, db, seasonID, week, ids); err != nil {
		return results.OperationResult[leaguedomain.Season, error]{}, fmt.Errorf("failed to record attendance: %w", err)
	}
	return results.SuccessResult[leaguedomain.Season, error](season), nil
}

func checkRegistered(roster []leaguedomain.Player, ids []uuid.UUID) error {
	known := make(map[uuid.UUID]struct{}, len(roster))
	for _, p := range roster {
		known[p.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: %s", leaguedomain.ErrPlayerNotRegistered, id)
		}
	}
	return nil
}

// dedupe drops repeated ids, keeping first-seen order.
func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

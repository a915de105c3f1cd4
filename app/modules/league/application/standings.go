package leagueservice

import (
	"context"

	leaguedomain "github.com/Black-And-White-Club/scorebook/app/modules/league/domain"
	leaguedb "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/repositories"
	"github.com/Black-And-White-Club/scorebook/pkg/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// GetStandings computes the leaderboard from the roster and completed matches.
func (s *LeagueService) GetStandings(ctx context.Context, leagueID uuid.UUID, seasonID *uuid.UUID) ([]leaguedomain.LeaderboardEntry, error) {
	return run(s, ctx, "GetStandings", leagueID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[[]leaguedomain.LeaderboardEntry, error], error) {
		return s.standingsLogic(ctx, db, leagueID, seasonID)
	})
}

func (s *LeagueService) standingsLogic(ctx context.Context, db bun.IDB, leagueID uuid.UUID, seasonID *uuid.UUID) (results.OperationResult[[]leaguedomain.LeaderboardEntry, error], error) {
	if _, err := s.loadLeague(ctx, db, leagueID); err != nil {
		return asResult[[]leaguedomain.LeaderboardEntry](err)
	}
	if seasonID != nil {
		season, err := s.loadSeason(ctx, db, *seasonID)
		if err != nil {
			return asResult[[]leaguedomain.LeaderboardEntry](err)
		}
		if season.LeagueID != leagueID {
			return results.FailureResult[[]leaguedomain.LeaderboardEntry, error](ErrSeasonMismatch), nil
		}
	}

	roster, err := s.loadRoster(ctx, db, leagueID)
	if err != nil {
		return results.OperationResult[[]leaguedomain.LeaderboardEntry, error]{}, err
	}
	matches, err := s.loadMatches(ctx, db, leaguedb.MatchFilter{
		LeagueID: leagueID,
		SeasonID: seasonID,
		Status:   string(leaguedomain.MatchStatusCompleted),
	})
	if err != nil {
		return results.OperationResult[[]leaguedomain.LeaderboardEntry, error]{}, err
	}

	return results.SuccessResult[[]leaguedomain.LeaderboardEntry, error](leaguedomain.ComputeStandings(roster, matches)), nil
}

// GetScheduledMatches lists the current week's round-robin pairings not yet played.
func (s *LeagueService) GetScheduledMatches(ctx context.Context, seasonID uuid.UUID, attendeeIDs []uuid.UUID) ([]leaguedomain.Pairing, error) {
	return run(s, ctx, "GetScheduledMatches", seasonID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[[]leaguedomain.Pairing, error], error) {
		return s.scheduleLogic(ctx, db, seasonID, attendeeIDs, leaguedomain.ScheduledMatches)
	})
}

// GetMakeupMatches lists the obligations attendees owe for weeks they missed.
func (s *LeagueService) GetMakeupMatches(ctx context.Context, seasonID uuid.UUID, attendeeIDs []uuid.UUID) ([]leaguedomain.Pairing, error) {
	return run(s, ctx, "GetMakeupMatches", seasonID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[[]leaguedomain.Pairing, error], error) {
		return s.scheduleLogic(ctx, db, seasonID, attendeeIDs, leaguedomain.MakeupMatches)
	})
}

func (s *LeagueService) scheduleLogic(ctx context.Context, db bun.IDB, seasonID uuid.UUID, attendeeIDs []uuid.UUID, engine func(leaguedomain.ScheduleInput) []leaguedomain.Pairing) (results.OperationResult[[]leaguedomain.Pairing, error], error) {
	in, err := s.loadScheduleInput(ctx, db, seasonID, attendeeIDs)
	if err != nil {
		return asResult[[]leaguedomain.Pairing](err)
	}
	// Open-format leagues and thin weeks yield an empty list, not an error.
	return results.SuccessResult[[]leaguedomain.Pairing, error](engine(in)), nil
}

func (s *LeagueService) loadScheduleInput(ctx context.Context, db bun.IDB, seasonID uuid.UUID, attendeeIDs []uuid.UUID) (leaguedomain.ScheduleInput, error) {
	season, err := s.loadSeason(ctx, db, seasonID)
	if err != nil {
		return leaguedomain.ScheduleInput{}, err
	}
	league, err := s.loadLeague(ctx, db, season.LeagueID)
	if err != nil {
		return leaguedomain.ScheduleInput{}, err
	}
	roster, err := s.loadRoster(ctx, db, season.LeagueID)
	if err != nil {
		return leaguedomain.ScheduleInput{}, err
	}
	attendance, err := s.repo.GetAttendance(ctx, db, seasonID)
	if err != nil {
		return leaguedomain.ScheduleInput{}, err
	}
	matches, err := s.loadMatches(ctx, db, leaguedb.MatchFilter{LeagueID: season.LeagueID, SeasonID: &seasonID})
	if err != nil {
		return leaguedomain.ScheduleInput{}, err
	}

	present := attendeeIDs
	if present == nil {
		present = attendance[season.CurrentWeek]
	}
	return leaguedomain.ScheduleInput{
		League:     league,
		Season:     season,
		Roster:     roster,
		Present:    present,
		Attendance: attendance,
		Matches:    matches,
	}, nil
}

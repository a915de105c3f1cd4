package leagueservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	leaguedomain "github.com/Black-And-White-Club/scorebook/app/modules/league/domain"
	leaguedb "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/repositories"
	leagueevents "github.com/Black-And-White-Club/scorebook/pkg/events/league"
	"github.com/Black-And-White-Club/scorebook/pkg/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RecordMatch appends a match to the league history.
func (s *LeagueService) RecordMatch(ctx context.Context, cmd RecordMatchCommand) (leaguedomain.Match, error) {
	match, err := run(s, ctx, "RecordMatch", cmd.LeagueID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[leaguedomain.Match, error], error) {
		return s.recordMatchLogic(ctx, db, cmd)
	})
	if err != nil {
		return leaguedomain.Match{}, err
	}

	s.publish(ctx, outboundEvent{
		topic:    leagueevents.MatchRecordedV1,
		leagueID: match.LeagueID,
		payload:  matchRecordedPayload(match),
	})
	return match, nil
}

func (s *LeagueService) recordMatchLogic(ctx context.Context, db bun.IDB, cmd RecordMatchCommand) (results.OperationResult[leaguedomain.Match, error], error) {
	fail := func(err error) (results.OperationResult[leaguedomain.Match, error], error) {
		return results.FailureResult[leaguedomain.Match, error](err), nil
	}

	lockKey := lockKeyLeague(cmd.LeagueID)
	if cmd.SeasonID != nil {
		lockKey = lockKeySeason(*cmd.SeasonID)
	}
	if err := s.repo.AcquireLock(ctx, db, lockKey); err != nil {
		return results.OperationResult[leaguedomain.Match, error]{}, err
	}

	if _, err := s.loadLeague(ctx, db, cmd.LeagueID); err != nil {
		return asResult[leaguedomain.Match](err)
	}

	match := leaguedomain.Match{
		ID:       uuid.New(),
		LeagueID: cmd.LeagueID,
		IsMakeup: cmd.IsMakeup,
		Status:   leaguedomain.MatchStatusInProgress,
		PlayedAt: time.Now().UTC(),
	}
	for _, id := range cmd.PlayerIDs {
		match.Participants = append(match.Participants, leaguedomain.Participant{PlayerID: id})
	}
	if err := leaguedomain.ValidateMatch(match); err != nil {
		return fail(err)
	}

	roster, err := s.loadRoster(ctx, db, cmd.LeagueID)
	if err != nil {
		return results.OperationResult[leaguedomain.Match, error]{}, err
	}
	if err := checkRegistered(roster, cmd.PlayerIDs); err != nil {
		return fail(err)
	}

	switch {
	case cmd.SeasonID != nil:
		season, err := s.loadSeason(ctx, db, *cmd.SeasonID)
		if err != nil {
			return asResult[leaguedomain.Match](err)
		}
		if season.LeagueID != cmd.LeagueID {
			return fail(ErrSeasonMismatch)
		}
		week := season.CurrentWeek
		if cmd.Week != nil {
			week = *cmd.Week
		}
		if err := season.CheckOpenWeek(week); err != nil {
			return fail(err)
		}
		if cmd.IsMakeup && cmd.Week == nil {
			return fail(ErrMakeupWithoutSeason)
		}
		match.SeasonID = &season.ID
		match.Week = &week
	case cmd.IsMakeup || cmd.Week != nil:
		return fail(ErrMakeupWithoutSeason)
	}

	if cmd.Completed {
		if err := markWinners(&match, cmd.WinnerIDs); err != nil {
			return fail(err)
		}
		match.Status = leaguedomain.MatchStatusCompleted
	}

	if err := s.repo.InsertMatch(ctx, db, leaguedb.MatchFromDomain(match)); err != nil {
		return results.OperationResult[leaguedomain.Match, error]{}, fmt.Errorf("failed to insert match: %w", err)
	}
	return results.SuccessResult[leaguedomain.Match, error](match), nil
}

// GetMatch returns one match.
func (s *LeagueService) GetMatch(ctx context.Context, matchID uuid.UUID) (leaguedomain.Match, error) {
	return run(s, ctx, "GetMatch", matchID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[leaguedomain.Match, error], error) {
		match, err := s.loadMatch(ctx, db, matchID)
		if err != nil {
			return asResult[leaguedomain.Match](err)
		}
		return results.SuccessResult[leaguedomain.Match, error](match), nil
	})
}

// CompleteMatch records the winners of an in-progress match. Completed matches are immutable.
func (s *LeagueService) CompleteMatch(ctx context.Context, matchID uuid.UUID, winnerIDs []uuid.UUID) (leaguedomain.Match, error) {
	match, err := run(s, ctx, "CompleteMatch", matchID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[leaguedomain.Match, error], error) {
		return s.completeMatchLogic(ctx, db, matchID, winnerIDs)
	})
	if err != nil {
		return leaguedomain.Match{}, err
	}

	s.publish(ctx, outboundEvent{
		topic:    leagueevents.MatchCompletedV1,
		leagueID: match.LeagueID,
		payload: &leagueevents.MatchCompletedPayloadV1{
			LeagueID:  match.LeagueID,
			MatchID:   match.ID,
			WinnerIDs: winnersOf(match),
		},
	})
	return match, nil
}

func (s *LeagueService) completeMatchLogic(ctx context.Context, db bun.IDB, matchID uuid.UUID, winnerIDs []uuid.UUID) (results.OperationResult[leaguedomain.Match, error], error) {
	match, err := s.loadMatch(ctx, db, matchID)
	if err != nil {
		return asResult[leaguedomain.Match](err)
	}

	lockKey := lockKeyLeague(match.LeagueID)
	if match.SeasonID != nil {
		lockKey = lockKeySeason(*match.SeasonID)
	}
	if err := s.repo.AcquireLock(ctx, db, lockKey); err != nil {
		return results.OperationResult[leaguedomain.Match, error]{}, err
	}
	// Re-read under the lock so a concurrent completion is seen.
	if match, err = s.loadMatch(ctx, db, matchID); err != nil {
		return asResult[leaguedomain.Match](err)
	}

	if match.Status == leaguedomain.MatchStatusCompleted {
		return results.FailureResult[leaguedomain.Match, error](ErrMatchAlreadyCompleted), nil
	}
	if match.SeasonID != nil {
		season, err := s.loadSeason(ctx, db, *match.SeasonID)
		if err != nil {
			return asResult[leaguedomain.Match](err)
		}
		if season.Status == leaguedomain.SeasonStatusCompleted {
			return results.FailureResult[leaguedomain.Match, error](leaguedomain.ErrSeasonCompleted), nil
		}
	}
	if err := markWinners(&match, winnerIDs); err != nil {
		return results.FailureResult[leaguedomain.Match, error](err), nil
	}
	match.Status = leaguedomain.MatchStatusCompleted

	if err := s.repo.UpdateMatchResult(ctx, db, leaguedb.MatchFromDomain(match)); err != nil {
		return results.OperationResult[leaguedomain.Match, error]{}, fmt.Errorf("failed to update match: %w", err)
	}
	return results.SuccessResult[leaguedomain.Match, error](match), nil
}

// DeleteMatch removes a match. Standings and schedules are derived, so the next read
// reflects the deletion.
func (s *LeagueService) DeleteMatch(ctx context.Context, matchID uuid.UUID) error {
	match, err := run(s, ctx, "DeleteMatch", matchID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[leaguedomain.Match, error], error) {
		match, err := s.loadMatch(ctx, db, matchID)
		if err != nil {
			return asResult[leaguedomain.Match](err)
		}
		if err := s.repo.DeleteMatch(ctx, db, matchID); err != nil {
			if errors.Is(err, leaguedb.ErrNotFound) {
				return asResult[leaguedomain.Match](fmt.Errorf("match %s: %w", matchID, err))
			}
			return results.OperationResult[leaguedomain.Match, error]{}, fmt.Errorf("failed to delete match: %w", err)
		}
		return results.SuccessResult[leaguedomain.Match, error](match), nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, outboundEvent{
		topic:    leagueevents.MatchDeletedV1,
		leagueID: match.LeagueID,
		payload: &leagueevents.MatchDeletedPayloadV1{
			LeagueID: match.LeagueID,
			MatchID:  match.ID,
		},
	})
	return nil
}

func (s *LeagueService) loadMatch(ctx context.Context, db bun.IDB, matchID uuid.UUID) (leaguedomain.Match, error) {
	row, err := s.repo.GetMatch(ctx, db, matchID)
	if err != nil {
		if errors.Is(err, leaguedb.ErrNotFound) {
			return leaguedomain.Match{}, fmt.Errorf("match %s: %w", matchID, leaguedb.ErrNotFound)
		}
		return leaguedomain.Match{}, fmt.Errorf("failed to get match: %w", err)
	}
	return row.ToDomain(), nil
}

// markWinners sets the winner flags. Every winner must be a participant and at least one
// winner is required.
func markWinners(m *leaguedomain.Match, winnerIDs []uuid.UUID) error {
	if len(winnerIDs) == 0 {
		return ErrNoWinner
	}
	winners := make(map[uuid.UUID]struct{}, len(winnerIDs))
	for _, id := range winnerIDs {
		if !m.Includes(id) {
			return fmt.Errorf("%w: %s", leaguedomain.ErrInvalidWinner, id)
		}
		winners[id] = struct{}{}
	}
	for i := range m.Participants {
		_, won := winners[m.Participants[i].PlayerID]
		m.Participants[i].Winner = won
	}
	return nil
}

func winnersOf(m leaguedomain.Match) []uuid.UUID {
	var out []uuid.UUID
	for _, p := range m.Participants {
		if p.Winner {
			out = append(out, p.PlayerID)
		}
	}
	return out
}

func matchRecordedPayload(m leaguedomain.Match) *leagueevents.MatchRecordedPayloadV1 {
	payload := &leagueevents.MatchRecordedPayloadV1{
		LeagueID: m.LeagueID,
		MatchID:  m.ID,
		SeasonID: m.SeasonID,
		Week:     m.Week,
		IsMakeup: m.IsMakeup,
		Status:   string(m.Status),
	}
	for _, p := range m.Participants {
		payload.Participants = append(payload.Participants, leagueevents.MatchParticipantV1{
			PlayerID: p.PlayerID,
			IsWinner: p.Winner,
		})
	}
	return payload
}

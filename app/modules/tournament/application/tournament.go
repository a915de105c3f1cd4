package tournamentservice

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	leaguedomain "github.com/Black-And-White-Club/scorebook/app/modules/league/domain"
	leaguedb "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/repositories"
	tournamentdomain "github.com/Black-And-White-Club/scorebook/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/scorebook/app/modules/tournament/infrastructure/repositories"
	tournamentevents "github.com/Black-And-White-Club/scorebook/pkg/events/tournament"
	"github.com/Black-And-White-Club/scorebook/pkg/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CreateTournament seeds and persists a bracket for a completed season.
func (s *TournamentService) CreateTournament(ctx context.Context, seasonID uuid.UUID, name string, maxSeeds int) (tournamentdomain.Bracket, error) {
	bracket, err := run(s, ctx, "CreateTournament", seasonID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[tournamentdomain.Bracket, error], error) {
		return s.createTournamentLogic(ctx, db, seasonID, name, maxSeeds)
	})
	if err != nil {
		return tournamentdomain.Bracket{}, err
	}

	t := bracket.Tournament
	s.publish(ctx, outboundEvent{
		topic:    tournamentevents.TournamentCreatedV1,
		leagueID: t.LeagueID,
		payload: &tournamentevents.TournamentCreatedPayloadV1{
			TournamentID: t.ID,
			LeagueID:     t.LeagueID,
			SeasonID:     t.SeasonID,
			Name:         t.Name,
			Seeds:        SeedList(bracket),
		},
	})
	return bracket, nil
}

func (s *TournamentService) createTournamentLogic(ctx context.Context, db bun.IDB, seasonID uuid.UUID, name string, maxSeeds int) (results.OperationResult[tournamentdomain.Bracket, error], error) {
	season, err := s.leagues.GetSeason(ctx, seasonID)
	if err != nil {
		return asResult[tournamentdomain.Bracket](err)
	}
	if season.Status != leaguedomain.SeasonStatusCompleted {
		return results.FailureResult[tournamentdomain.Bracket, error](fmt.Errorf("%w: %s", ErrSeasonNotCompleted, season.Name)), nil
	}

	_, err = s.repo.GetTournamentBySeason(ctx, db, seasonID)
	switch {
	case err == nil:
		return results.FailureResult[tournamentdomain.Bracket, error](ErrTournamentExists), nil
	case !errors.Is(err, tournamentdb.ErrNotFound):
		return results.OperationResult[tournamentdomain.Bracket, error]{}, fmt.Errorf("failed to check existing tournament: %w", err)
	}

	standings, err := s.leagues.GetStandings(ctx, season.LeagueID, &season.ID)
	if err != nil {
		return asResult[tournamentdomain.Bracket](err)
	}
	seeds := make([]uuid.UUID, 0, len(standings))
	for _, e := range standings {
		seeds = append(seeds, e.PlayerID)
	}
	if maxSeeds > 0 && len(seeds) > maxSeeds {
		seeds = seeds[:maxSeeds]
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = season.Name + " Playoffs"
	}
	bracket, err := tournamentdomain.BuildBracket(tournamentdomain.Tournament{
		ID:        uuid.New(),
		LeagueID:  season.LeagueID,
		SeasonID:  season.ID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}, seeds)
	if err != nil {
		return results.FailureResult[tournamentdomain.Bracket, error](err), nil
	}

	rows := make([]tournamentdb.TournamentMatch, 0, len(bracket.Matches))
	for _, m := range bracket.Matches {
		rows = append(rows, *tournamentdb.MatchFromDomain(m))
	}
	if err := s.repo.CreateBracket(ctx, db, tournamentdb.TournamentFromDomain(bracket.Tournament), rows); err != nil {
		return results.OperationResult[tournamentdomain.Bracket, error]{}, fmt.Errorf("failed to create bracket: %w", err)
	}
	return results.SuccessResult[tournamentdomain.Bracket, error](bracket), nil
}

// RecordGame applies one game result under the tournament row lock.
func (s *TournamentService) RecordGame(ctx context.Context, matchID, winnerID uuid.UUID) (GameRecorded, error) {
	recorded, err := run(s, ctx, "RecordGame", matchID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[GameRecorded, error], error) {
		return s.recordGameLogic(ctx, db, matchID, winnerID)
	})
	if err != nil {
		return GameRecorded{}, err
	}

	t := recorded.Bracket.Tournament
	m := recorded.Outcome.Match
	var events []outboundEvent
	if recorded.Outcome.SeriesCompleted && m.WinnerID != nil {
		events = append(events, outboundEvent{
			topic:    tournamentevents.SeriesCompletedV1,
			leagueID: t.LeagueID,
			payload: &tournamentevents.SeriesCompletedPayloadV1{
				TournamentID: t.ID,
				MatchID:      m.ID,
				Round:        m.Round,
				MatchNumber:  m.MatchNumber,
				WinnerID:     *m.WinnerID,
				PlayerAWins:  m.PlayerAWins,
				PlayerBWins:  m.PlayerBWins,
			},
		})
	}
	if recorded.Outcome.TournamentCompleted && t.ChampionID != nil {
		events = append(events, outboundEvent{
			topic:    tournamentevents.TournamentCompletedV1,
			leagueID: t.LeagueID,
			payload: &tournamentevents.TournamentCompletedPayloadV1{
				TournamentID: t.ID,
				LeagueID:     t.LeagueID,
				ChampionID:   *t.ChampionID,
			},
		})
	}
	s.publish(ctx, events...)
	return recorded, nil
}

func (s *TournamentService) recordGameLogic(ctx context.Context, db bun.IDB, matchID, winnerID uuid.UUID) (results.OperationResult[GameRecorded, error], error) {
	row, err := s.repo.GetMatch(ctx, db, matchID)
	if err != nil {
		if errors.Is(err, tournamentdb.ErrNotFound) {
			return results.FailureResult[GameRecorded, error](fmt.Errorf("%w: %s", tournamentdomain.ErrMatchNotFound, matchID)), nil
		}
		return results.OperationResult[GameRecorded, error]{}, fmt.Errorf("failed to get bracket match: %w", err)
	}

	t, err := s.repo.GetTournamentForUpdate(ctx, db, row.TournamentID)
	if err != nil {
		return asResult[GameRecorded](err)
	}
	before, err := s.loadBracket(ctx, db, t)
	if err != nil {
		return results.OperationResult[GameRecorded, error]{}, err
	}

	after, outcome, err := tournamentdomain.RecordGame(before, matchID, winnerID)
	if err != nil {
		return results.FailureResult[GameRecorded, error](err), nil
	}

	updated := make([]tournamentdb.TournamentMatch, 0, len(outcome.Updated))
	for _, m := range outcome.Updated {
		updated = append(updated, *tournamentdb.MatchFromDomain(m))
	}
	if err := s.repo.UpdateMatches(ctx, db, updated); err != nil {
		return results.OperationResult[GameRecorded, error]{}, fmt.Errorf("failed to update bracket: %w", err)
	}
	if after.Tournament.Status != before.Tournament.Status {
		if err := s.repo.UpdateTournament(ctx, db, tournamentdb.TournamentFromDomain(after.Tournament)); err != nil {
			return results.OperationResult[GameRecorded, error]{}, fmt.Errorf("failed to update tournament: %w", err)
		}
	}
	return results.SuccessResult[GameRecorded, error](GameRecorded{Bracket: after, Outcome: outcome}), nil
}

// SeasonLeague returns the league that owns seasonID.
func (s *TournamentService) SeasonLeague(ctx context.Context, seasonID uuid.UUID) (uuid.UUID, error) {
	season, err := s.leagues.GetSeason(ctx, seasonID)
	if err != nil {
		return uuid.Nil, err
	}
	return season.LeagueID, nil
}

// MatchLeague returns the league of the tournament that holds matchID.
func (s *TournamentService) MatchLeague(ctx context.Context, matchID uuid.UUID) (uuid.UUID, error) {
	return run(s, ctx, "MatchLeague", matchID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[uuid.UUID, error], error) {
		row, err := s.repo.GetMatch(ctx, db, matchID)
		if err != nil {
			if errors.Is(err, tournamentdb.ErrNotFound) {
				return results.FailureResult[uuid.UUID, error](fmt.Errorf("%w: %s", tournamentdomain.ErrMatchNotFound, matchID)), nil
			}
			return results.OperationResult[uuid.UUID, error]{}, fmt.Errorf("failed to get bracket match: %w", err)
		}
		t, err := s.repo.GetTournament(ctx, db, row.TournamentID)
		if err != nil {
			return asResult[uuid.UUID](err)
		}
		return results.SuccessResult[uuid.UUID, error](t.LeagueID), nil
	})
}

// GetBracket returns the tournament with every slot.
func (s *TournamentService) GetBracket(ctx context.Context, tournamentID uuid.UUID) (tournamentdomain.Bracket, error) {
	return run(s, ctx, "GetBracket", tournamentID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[tournamentdomain.Bracket, error], error) {
		t, err := s.repo.GetTournament(ctx, db, tournamentID)
		if err != nil {
			return asResult[tournamentdomain.Bracket](err)
		}
		bracket, err := s.loadBracket(ctx, db, t)
		if err != nil {
			return results.OperationResult[tournamentdomain.Bracket, error]{}, err
		}
		return results.SuccessResult[tournamentdomain.Bracket, error](bracket), nil
	})
}

// ListTournaments returns the league's tournaments, newest first.
func (s *TournamentService) ListTournaments(ctx context.Context, leagueID uuid.UUID) ([]tournamentdomain.Tournament, error) {
	return run(s, ctx, "ListTournaments", leagueID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[[]tournamentdomain.Tournament, error], error) {
		rows, err := s.repo.ListTournaments(ctx, db, leagueID)
		if err != nil {
			return results.OperationResult[[]tournamentdomain.Tournament, error]{}, fmt.Errorf("failed to list tournaments: %w", err)
		}
		out := make([]tournamentdomain.Tournament, 0, len(rows))
		for i := range rows {
			out = append(out, rows[i].ToDomain())
		}
		return results.SuccessResult[[]tournamentdomain.Tournament, error](out), nil
	})
}

func (s *TournamentService) loadBracket(ctx context.Context, db bun.IDB, t *tournamentdb.Tournament) (tournamentdomain.Bracket, error) {
	rows, err := s.repo.ListMatches(ctx, db, t.ID)
	if err != nil {
		return tournamentdomain.Bracket{}, fmt.Errorf("failed to list bracket matches: %w", err)
	}
	bracket := tournamentdomain.Bracket{
		Tournament: t.ToDomain(),
		Matches:    make([]tournamentdomain.BracketMatch, 0, len(rows)),
	}
	for i := range rows {
		bracket.Matches = append(bracket.Matches, rows[i].ToDomain())
	}
	return bracket, nil
}

// SeedList recovers the seed order, best first, from the bracket's opening round.
func SeedList(b tournamentdomain.Bracket) []uuid.UUID {
	type seeded struct {
		seed int
		id   uuid.UUID
	}
	var all []seeded
	for _, m := range b.Round(b.Rounds()) {
		if m.PlayerA != nil && m.SeedA > 0 {
			all = append(all, seeded{m.SeedA, *m.PlayerA})
		}
		if m.PlayerB != nil && m.SeedB > 0 {
			all = append(all, seeded{m.SeedB, *m.PlayerB})
		}
	}
	slices.SortFunc(all, func(a, b seeded) int { return a.seed - b.seed })

	out := make([]uuid.UUID, 0, len(all))
	for _, s := range all {
		out = append(out, s.id)
	}
	return out
}

// asResult reports missing records, ours or the league module's, as domain failures.
func asResult[S any](err error) (results.OperationResult[S, error], error) {
	if errors.Is(err, tournamentdb.ErrNotFound) || errors.Is(err, leaguedb.ErrNotFound) {
		return results.FailureResult[S, error](err), nil
	}
	return results.OperationResult[S, error]{}, err
}

package leagueservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	leaguedomain "github.com/Black-And-White-Club/scorebook/app/modules/league/domain"
	leaguedb "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/repositories"
	leagueevents "github.com/Black-And-White-Club/scorebook/pkg/events/league"
	"github.com/Black-And-White-Club/scorebook/pkg/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CreateLeague registers a new league.
func (s *LeagueService) CreateLeague(ctx context.Context, name string, gameType leaguedomain.GameType, format leaguedomain.Format) (leaguedomain.League, error) {
	league, err := run(s, ctx, "CreateLeague", name, func(ctx context.Context, db bun.IDB) (results.OperationResult[leaguedomain.League, error], error) {
		return s.createLeagueLogic(ctx, db, name, gameType, format)
	})
	if err != nil {
		return leaguedomain.League{}, err
	}

	s.publish(ctx, outboundEvent{
		topic:    leagueevents.LeagueCreatedV1,
		leagueID: league.ID,
		payload: &leagueevents.LeagueCreatedPayloadV1{
			LeagueID: league.ID,
			Name:     league.Name,
			GameType: string(league.GameType),
			Format:   string(league.Format),
		},
	})
	return league, nil
}

func (s *LeagueService) createLeagueLogic(ctx context.Context, db bun.IDB, name string, gameType leaguedomain.GameType, format leaguedomain.Format) (results.OperationResult[leaguedomain.League, error], error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return results.FailureResult[leaguedomain.League, error](ErrEmptyName), nil
	case !gameType.Valid():
		return results.FailureResult[leaguedomain.League, error](fmt.Errorf("%w: %q", leaguedomain.ErrInvalidGameType, gameType)), nil
	case !format.Valid():
		return results.FailureResult[leaguedomain.League, error](fmt.Errorf("%w: %q", leaguedomain.ErrInvalidFormat, format)), nil
	}

	row := &leaguedb.League{
		ID:       uuid.New(),
		Name:     name,
		GameType: string(gameType),
		Format:   string(format),
	}
	if err := s.repo.CreateLeague(ctx, db, row); err != nil {
		return results.OperationResult[leaguedomain.League, error]{}, fmt.Errorf("failed to create league: %w", err)
	}
	return results.SuccessResult[leaguedomain.League, error](row.ToDomain()), nil
}

// GetLeague returns one league.
func (s *LeagueService) GetLeague(ctx context.Context, leagueID uuid.UUID) (leaguedomain.League, error) {
	return run(s, ctx, "GetLeague", leagueID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[leaguedomain.League, error], error) {
		league, err := s.loadLeague(ctx, db, leagueID)
		if err != nil {
			return asResult[leaguedomain.League](err)
		}
		return results.SuccessResult[leaguedomain.League, error](league), nil
	})
}

// RegisterPlayer adds a player to the league roster.
func (s *LeagueService) RegisterPlayer(ctx context.Context, leagueID uuid.UUID, givenName, surname string) (leaguedomain.Player, error) {
	player, err := run(s, ctx, "RegisterPlayer", leagueID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[leaguedomain.Player, error], error) {
		return s.registerPlayerLogic(ctx, db, leagueID, givenName, surname)
	})
	if err != nil {
		return leaguedomain.Player{}, err
	}

	s.publish(ctx, outboundEvent{
		topic:    leagueevents.PlayerRegisteredV1,
		leagueID: leagueID,
		payload: &leagueevents.PlayerRegisteredPayloadV1{
			LeagueID:    leagueID,
			PlayerID:    player.ID,
			DisplayName: player.DisplayName(),
		},
	})
	return player, nil
}

func (s *LeagueService) registerPlayerLogic(ctx context.Context, db bun.IDB, leagueID uuid.UUID, givenName, surname string) (results.OperationResult[leaguedomain.Player, error], error) {
	givenName, surname = strings.TrimSpace(givenName), strings.TrimSpace(surname)
	if givenName == "" && surname == "" {
		return results.FailureResult[leaguedomain.Player, error](ErrEmptyName), nil
	}
	if _, err := s.loadLeague(ctx, db, leagueID); err != nil {
		return asResult[leaguedomain.Player](err)
	}

	row := &leaguedb.Player{
		ID:        uuid.New(),
		LeagueID:  leagueID,
		GivenName: givenName,
		Surname:   surname,
	}
	if err := s.repo.AddPlayer(ctx, db, row); err != nil {
		return results.OperationResult[leaguedomain.Player, error]{}, fmt.Errorf("failed to add player: %w", err)
	}
	return results.SuccessResult[leaguedomain.Player, error](row.ToDomain()), nil
}

// ListRoster returns the league's players in name order.
func (s *LeagueService) ListRoster(ctx context.Context, leagueID uuid.UUID) ([]leaguedomain.Player, error) {
	return run(s, ctx, "ListRoster", leagueID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[[]leaguedomain.Player, error], error) {
		if _, err := s.loadLeague(ctx, db, leagueID); err != nil {
			return asResult[[]leaguedomain.Player](err)
		}
		roster, err := s.loadRoster(ctx, db, leagueID)
		if err != nil {
			return results.OperationResult[[]leaguedomain.Player, error]{}, err
		}
		return results.SuccessResult[[]leaguedomain.Player, error](roster), nil
	})
}

// loadLeague wraps leaguedb.ErrNotFound for a missing league.
func (s *LeagueService) loadLeague(ctx context.Context, db bun.IDB, leagueID uuid.UUID) (leaguedomain.League, error) {
	row, err := s.repo.GetLeague(ctx, db, leagueID)
	if err != nil {
		if errors.Is(err, leaguedb.ErrNotFound) {
			return leaguedomain.League{}, fmt.Errorf("league %s: %w", leagueID, leaguedb.ErrNotFound)
		}
		return leaguedomain.League{}, fmt.Errorf("failed to get league: %w", err)
	}
	return row.ToDomain(), nil
}

func (s *LeagueService) loadSeason(ctx context.Context, db bun.IDB, seasonID uuid.UUID) (leaguedomain.Season, error) {
	row, err := s.repo.GetSeason(ctx, db, seasonID)
	if err != nil {
		if errors.Is(err, leaguedb.ErrNotFound) {
			return leaguedomain.Season{}, fmt.Errorf("season %s: %w", seasonID, leaguedb.ErrNotFound)
		}
		return leaguedomain.Season{}, fmt.Errorf("failed to get season: %w", err)
	}
	return row.ToDomain(), nil
}

func (s *LeagueService) loadRoster(ctx context.Context, db bun.IDB, leagueID uuid.UUID) ([]leaguedomain.Player, error) {
	rows, err := s.repo.ListPlayers(ctx, db, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	roster := make([]leaguedomain.Player, 0, len(rows))
	for i := range rows {
		roster = append(roster, rows[i].ToDomain())
	}
	return roster, nil
}

func (s *LeagueService) loadMatches(ctx context.Context, db bun.IDB, filter leaguedb.MatchFilter) ([]leaguedomain.Match, error) {
	rows, err := s.repo.ListMatches(ctx, db, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	matches := make([]leaguedomain.Match, 0, len(rows))
	for i := range rows {
		matches = append(matches, rows[i].ToDomain())
	}
	return matches, nil
}

// asResult reports missing records as domain failures and everything else as an
// infrastructure error.
func asResult[S any](err error) (results.OperationResult[S, error], error) {
	if errors.Is(err, leaguedb.ErrNotFound) {
		return results.FailureResult[S, error](err), nil
	}
	return results.OperationResult[S, error]{}, err
}

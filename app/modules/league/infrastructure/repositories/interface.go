package leaguedb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MatchFilter narrows ListMatches. A nil SeasonID means every season of the league,
// and an empty Status means any status.
type MatchFilter struct {
	LeagueID uuid.UUID
	SeasonID *uuid.UUID
	Status   string
}

// Repository defines the contract for league persistence.
type Repository interface {
	CreateLeague(ctx context.Context, db bun.IDB, league *League) error
	GetLeague(ctx context.Context, db bun.IDB, leagueID uuid.UUID) (*League, error)

	// AddPlayer registers a player on the league roster.
	AddPlayer(ctx context.Context, db bun.IDB, player *Player) error
	// ListPlayers returns the roster ordered by surname, given name.
	ListPlayers(ctx context.Context, db bun.IDB, leagueID uuid.UUID) ([]Player, error)

	CreateSeason(ctx context.Context, db bun.IDB, season *Season) error
	GetSeason(ctx context.Context, db bun.IDB, seasonID uuid.UUID) (*Season, error)
	// GetActiveSeason returns ErrNoActiveSeason when the league has none.
	GetActiveSeason(ctx context.Context, db bun.IDB, leagueID uuid.UUID) (*Season, error)
	ListActiveSeasons(ctx context.Context, db bun.IDB) ([]Season, error)
	UpdateSeason(ctx context.Context, db bun.IDB, season *Season) error

	// ReplaceAttendance swaps the recorded set for (season, week) with playerIDs.
	ReplaceAttendance(ctx context.Context, db bun.IDB, seasonID uuid.UUID, week int, playerIDs []uuid.UUID) error
	// GetAttendance returns every recorded week of a season keyed by week number.
	GetAttendance(ctx context.Context, db bun.IDB, seasonID uuid.UUID) (map[int][]uuid.UUID, error)

	InsertMatch(ctx context.Context, db bun.IDB, match *Match) error
	GetMatch(ctx context.Context, db bun.IDB, matchID uuid.UUID) (*Match, error)
	// UpdateMatchResult persists status and winner flags of an existing match.
	UpdateMatchResult(ctx context.Context, db bun.IDB, match *Match) error
	DeleteMatch(ctx context.Context, db bun.IDB, matchID uuid.UUID) error
	ListMatches(ctx context.Context, db bun.IDB, filter MatchFilter) ([]Match, error)

	// AcquireLock takes a transaction-scoped advisory lock on key.
	// Must be called within a transaction.
	AcquireLock(ctx context.Context, db bun.IDB, key string) error
}

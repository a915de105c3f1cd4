package tournamentdb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	// ErrNotFound indicates the requested tournament or slot does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoRowsAffected indicates an UPDATE matched no rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)

// Repository defines the contract for bracket persistence.
type Repository interface {
	// CreateBracket inserts a tournament and all of its slots.
	CreateBracket(ctx context.Context, db bun.IDB, tournament *Tournament, matches []TournamentMatch) error

	GetTournament(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) (*Tournament, error)
	// GetTournamentForUpdate locks the tournament row until the transaction ends.
	GetTournamentForUpdate(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) (*Tournament, error)
	// GetTournamentBySeason returns ErrNotFound when the season has no tournament yet.
	GetTournamentBySeason(ctx context.Context, db bun.IDB, seasonID uuid.UUID) (*Tournament, error)
	ListTournaments(ctx context.Context, db bun.IDB, leagueID uuid.UUID) ([]Tournament, error)
	UpdateTournament(ctx context.Context, db bun.IDB, tournament *Tournament) error

	// ListMatches returns every slot of a tournament, earliest round first.
	ListMatches(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]TournamentMatch, error)
	GetMatch(ctx context.Context, db bun.IDB, matchID uuid.UUID) (*TournamentMatch, error)
	// UpdateMatches persists slot state: players, seeds, tallies, winner and status.
	UpdateMatches(ctx context.Context, db bun.IDB, matches []TournamentMatch) error
}

package leaguedb

import "errors"

// Sentinel errors for the repository layer. Services map these onto domain errors.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoActiveSeason indicates the league has no active season.
	ErrNoActiveSeason = errors.New("no active season found")

	// ErrNoRowsAffected indicates an UPDATE/DELETE matched no rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)

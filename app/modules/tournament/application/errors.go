package tournamentservice

import "errors"

var (
	ErrSeasonNotCompleted = errors.New("season is still active")
	ErrTournamentExists   = errors.New("season already has a tournament")
)

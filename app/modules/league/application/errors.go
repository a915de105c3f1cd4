package leagueservice

import "errors"

var (
	ErrActiveSeasonExists    = errors.New("league already has an active season")
	ErrMatchAlreadyCompleted = errors.New("match is already completed")
	ErrSeasonMismatch        = errors.New("season does not belong to the league")
	ErrMakeupWithoutSeason   = errors.New("makeup matches must name a season and week")
	ErrNoWinner              = errors.New("a completed match needs at least one winner")
	ErrEmptyName             = errors.New("name must not be empty")
)

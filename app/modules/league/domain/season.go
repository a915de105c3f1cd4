package leaguedomain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrSeasonCompleted     = errors.New("season already completed")
	ErrWeekAlreadyAdvanced = errors.New("season has already moved past that week")
	ErrInvalidWeeks        = errors.New("weeks duration must be at least 1")
	ErrWeekOutOfRange      = errors.New("week is outside the season's played weeks")
	ErrTooFewParticipants  = errors.New("a match needs at least two distinct players")
	ErrInvalidWinner       = errors.New("winner is not a participant of the match")
	ErrInvalidGameType     = errors.New("unknown game type")
	ErrInvalidFormat       = errors.New("unknown league format")
	ErrPlayerNotRegistered = errors.New("player is not registered in the league")
)

// NewSeason builds the first snapshot of a season starting at week 1.
func NewSeason(league League, name string, start time.Time, weeks int) (Season, error) {
	if weeks < 1 {
		return Season{}, ErrInvalidWeeks
	}
	return Season{
		LeagueID:      league.ID,
		Name:          name,
		StartDate:     start,
		WeeksDuration: weeks,
		CurrentWeek:   1,
		Status:        SeasonStatusActive,
	}, nil
}

// AdvanceWeek returns the next snapshot of s. Advancing from the final week completes the
// season instead of moving past WeeksDuration; CurrentWeek never decreases.
func AdvanceWeek(s Season) (Season, error) {
	if s.Status == SeasonStatusCompleted {
		return s, ErrSeasonCompleted
	}
	next := s
	if s.CurrentWeek >= s.WeeksDuration {
		next.Status = SeasonStatusCompleted
		return next, nil
	}
	next.CurrentWeek++
	return next, nil
}

// AdvanceWeekFrom advances s only while it is still at week from. A scheduled advance
// that lost a race with a manual one is rejected rather than skipping a week.
func AdvanceWeekFrom(s Season, from int) (Season, error) {
	if s.Status == SeasonStatusActive && s.CurrentWeek != from {
		return s, fmt.Errorf("%w: at week %d, expected %d", ErrWeekAlreadyAdvanced, s.CurrentWeek, from)
	}
	return AdvanceWeek(s)
}

// CompleteSeason returns s marked completed at its current week.
func CompleteSeason(s Season) (Season, error) {
	if s.Status == SeasonStatusCompleted {
		return s, ErrSeasonCompleted
	}
	next := s
	next.Status = SeasonStatusCompleted
	return next, nil
}

// WeekStart returns the calendar date week w begins on.
func (s Season) WeekStart(w int) time.Time {
	return s.StartDate.AddDate(0, 0, 7*(w-1))
}

// CheckOpenWeek validates that attendance or match results may be recorded for week w.
// A completed season is closed: its final standings seed the playoffs.
func (s Season) CheckOpenWeek(w int) error {
	if s.Status == SeasonStatusCompleted {
		return ErrSeasonCompleted
	}
	if w < 1 || w > s.CurrentWeek {
		return fmt.Errorf("%w: week %d, current week %d", ErrWeekOutOfRange, w, s.CurrentWeek)
	}
	return nil
}

// ValidateMatch checks that a match has at least two participants and no player twice.
func ValidateMatch(m Match) error {
	seen := make(map[string]struct{}, len(m.Participants))
	for _, p := range m.Participants {
		seen[p.PlayerID.String()] = struct{}{}
	}
	if len(seen) < 2 || len(seen) != len(m.Participants) {
		return ErrTooFewParticipants
	}
	return nil
}

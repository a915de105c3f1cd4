package tournamentdomain

import (
	"time"

	"github.com/google/uuid"
)

// SeriesFormat is the number of games a bracket match is played over.
type SeriesFormat string

const (
	BestOfThree SeriesFormat = "best_of_3"
	BestOfFive  SeriesFormat = "best_of_5"
)

// Threshold is the number of game wins that clinches the series.
func (f SeriesFormat) Threshold() int {
	if f == BestOfFive {
		return 3
	}
	return 2
}

// FormatForRound returns best-of-5 for the finals (round 1) and best-of-3 otherwise.
func FormatForRound(round int) SeriesFormat {
	if round == 1 {
		return BestOfFive
	}
	return BestOfThree
}

type TournamentStatus string

const (
	TournamentStatusActive    TournamentStatus = "active"
	TournamentStatusCompleted TournamentStatus = "completed"
)

type MatchStatus string

const (
	MatchStatusPending    MatchStatus = "pending"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
)

// Tournament is the summary row of a single-elimination bracket.
type Tournament struct {
	ID         uuid.UUID
	LeagueID   uuid.UUID
	SeasonID   uuid.UUID
	Name       string
	Status     TournamentStatus
	ChampionID *uuid.UUID
	CreatedAt  time.Time
}

// BracketMatch is one slot of the bracket. Round 1 is the finals; higher rounds are earlier.
// A completed match without a WinnerID is a dead slot: both of its feeders were empty.
type BracketMatch struct {
	ID           uuid.UUID
	TournamentID uuid.UUID
	Round        int
	MatchNumber  int
	PlayerA      *uuid.UUID
	PlayerB      *uuid.UUID
	SeedA        int
	SeedB        int
	PlayerAWins  int
	PlayerBWins  int
	SeriesFormat SeriesFormat
	NextMatchID  *uuid.UUID
	WinnerID     *uuid.UUID
	Status       MatchStatus
}

// Ready reports whether both slots are filled and the series is still open.
func (m BracketMatch) Ready() bool {
	return m.PlayerA != nil && m.PlayerB != nil && m.Status != MatchStatusCompleted
}

// IsBye reports whether the match was resolved without a game being played.
func (m BracketMatch) IsBye() bool {
	return m.Status == MatchStatusCompleted && m.PlayerAWins == 0 && m.PlayerBWins == 0
}

// Bracket is an immutable snapshot of a tournament and all of its slots.
type Bracket struct {
	Tournament Tournament
	Matches    []BracketMatch
}

// Rounds returns the number of rounds, counting the finals.
func (b Bracket) Rounds() int {
	rounds := 0
	for _, m := range b.Matches {
		rounds = max(rounds, m.Round)
	}
	return rounds
}

// Match returns the slot at (round, number).
func (b Bracket) Match(round, number int) (BracketMatch, bool) {
	for _, m := range b.Matches {
		if m.Round == round && m.MatchNumber == number {
			return m, true
		}
	}
	return BracketMatch{}, false
}

// Round returns the slots of one round ordered by match number.
func (b Bracket) Round(round int) []BracketMatch {
	var out []BracketMatch
	for _, m := range b.Matches {
		if m.Round == round {
			out = append(out, m)
		}
	}
	return out
}

func (b Bracket) clone() Bracket {
	out := Bracket{Tournament: b.Tournament, Matches: make([]BracketMatch, len(b.Matches))}
	copy(out.Matches, b.Matches)
	return out
}

// GameOutcome describes what one recorded game changed.
type GameOutcome struct {
	Match               BracketMatch
	SeriesCompleted     bool
	TournamentCompleted bool
	// Updated lists every slot whose state changed, including slots filled by advancement.
	Updated []BracketMatch
}

package leaguedomain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GameType is the kind of game a league records results for.
type GameType string

const (
	GameTypePool     GameType = "pool"
	GameTypeDarts    GameType = "darts"
	GameTypeDominoes GameType = "dominoes"
	GameTypeUno      GameType = "uno"
	GameTypeCustom   GameType = "custom"
)

// Valid reports whether g is a known game type.
func (g GameType) Valid() bool {
	switch g {
	case GameTypePool, GameTypeDarts, GameTypeDominoes, GameTypeUno, GameTypeCustom:
		return true
	}
	return false
}

// Format is the scheduling format of a league.
type Format string

const (
	FormatRoundRobin Format = "round_robin"
	FormatOpen       Format = "open"
)

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	return f == FormatRoundRobin || f == FormatOpen
}

// SeasonStatus is the lifecycle state of a season.
type SeasonStatus string

const (
	SeasonStatusActive    SeasonStatus = "active"
	SeasonStatusCompleted SeasonStatus = "completed"
)

// MatchStatus is the lifecycle state of a recorded match.
type MatchStatus string

const (
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
)

// Player is an opaque identity on a league roster.
type Player struct {
	ID        uuid.UUID
	GivenName string
	Surname   string
}

// DisplayName returns "Given Surname", trimmed when either part is empty.
func (p Player) DisplayName() string {
	return strings.TrimSpace(p.GivenName + " " + p.Surname)
}

// League groups seasons of one game type.
type League struct {
	ID       uuid.UUID
	Name     string
	GameType GameType
	Format   Format
}

// Season is a snapshot of a league season. The engine never mutates it in place;
// AdvanceWeek and CompleteSeason return the next snapshot.
type Season struct {
	ID            uuid.UUID
	LeagueID      uuid.UUID
	Name          string
	StartDate     time.Time
	WeeksDuration int
	CurrentWeek   int
	Status        SeasonStatus
}

// Participant is one side of a match.
type Participant struct {
	PlayerID uuid.UUID
	Winner   bool
}

// Match is a contest between two or more players.
type Match struct {
	ID           uuid.UUID
	LeagueID     uuid.UUID
	SeasonID     *uuid.UUID
	Week         *int
	IsMakeup     bool
	Status       MatchStatus
	Participants []Participant
	PlayedAt     time.Time
}

// Decided reports whether at least one participant is marked as the winner.
func (m Match) Decided() bool {
	for _, p := range m.Participants {
		if p.Winner {
			return true
		}
	}
	return false
}

// Includes reports whether playerID took part in the match.
func (m Match) Includes(playerID uuid.UUID) bool {
	for _, p := range m.Participants {
		if p.PlayerID == playerID {
			return true
		}
	}
	return false
}

// Won reports whether playerID is marked as a winner of the match.
func (m Match) Won(playerID uuid.UUID) bool {
	for _, p := range m.Participants {
		if p.PlayerID == playerID {
			return p.Winner
		}
	}
	return false
}

// InWeek reports whether the match was recorded for the given season week.
func (m Match) InWeek(seasonID uuid.UUID, week int) bool {
	return m.SeasonID != nil && *m.SeasonID == seasonID && m.Week != nil && *m.Week == week
}

// WeekAttendance is the set of players marked present for one season week.
type WeekAttendance struct {
	SeasonID  uuid.UUID
	Week      int
	PlayerIDs []uuid.UUID
}

// LeaderboardEntry is a derived standings row.
type LeaderboardEntry struct {
	PlayerID      uuid.UUID
	GivenName     string
	Surname       string
	Wins          int
	Losses        int
	GamesPlayed   int
	WinPercentage float64
	Rank          int
}

// Pairing is a round-robin pairing that is still owed.
type Pairing struct {
	PlayerID     uuid.UUID
	OpponentID   uuid.UUID
	PlayerName   string
	OpponentName string
	Week         int
	IsMakeup     bool
}

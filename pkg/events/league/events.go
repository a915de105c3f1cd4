// Package leagueevents defines the league topics and their JSON payloads.
package leagueevents

import (
	"time"

	"github.com/google/uuid"
)

// Outgoing facts, published after the owning transaction commits.
const (
	LeagueCreatedV1      = "league.created.v1"
	PlayerRegisteredV1   = "league.player.registered.v1"
	SeasonStartedV1      = "league.season.started.v1"
	WeekAdvancedV1       = "league.week.advanced.v1"
	SeasonCompletedV1    = "league.season.completed.v1"
	AttendanceRecordedV1 = "league.attendance.recorded.v1"
	MatchRecordedV1      = "league.match.recorded.v1"
	MatchCompletedV1     = "league.match.completed.v1"
	MatchDeletedV1       = "league.match.deleted.v1"
	StandingsRetrievedV1 = "league.standings.retrieved.v1"
	MatchRecordFailedV1  = "league.match.record.failed.v1"
	StandingsFailedV1    = "league.standings.failed.v1"
	WeekAdvanceFailedV1  = "league.week.advance.failed.v1"
)

// Requests accepted on the bus.
const (
	MatchRecordRequestedV1 = "league.match.record.requested.v1"
	StandingsRequestedV1   = "league.standings.requested.v1"
)

// Streams returns the JetStream stream names that carry league subjects.
func Streams() []string {
	return []string{"league"}
}

type LeagueCreatedPayloadV1 struct {
	LeagueID uuid.UUID `json:"league_id"`
	Name     string    `json:"name"`
	GameType string    `json:"game_type"`
	Format   string    `json:"format"`
}

type PlayerRegisteredPayloadV1 struct {
	LeagueID    uuid.UUID `json:"league_id"`
	PlayerID    uuid.UUID `json:"player_id"`
	DisplayName string    `json:"display_name"`
}

type SeasonStartedPayloadV1 struct {
	LeagueID      uuid.UUID `json:"league_id"`
	SeasonID      uuid.UUID `json:"season_id"`
	Name          string    `json:"name"`
	StartDate     time.Time `json:"start_date"`
	WeeksDuration int       `json:"weeks_duration"`
}

type WeekAdvancedPayloadV1 struct {
	LeagueID    uuid.UUID `json:"league_id"`
	SeasonID    uuid.UUID `json:"season_id"`
	CurrentWeek int       `json:"current_week"`
}

type SeasonCompletedPayloadV1 struct {
	LeagueID uuid.UUID `json:"league_id"`
	SeasonID uuid.UUID `json:"season_id"`
}

type AttendanceRecordedPayloadV1 struct {
	LeagueID  uuid.UUID   `json:"league_id"`
	SeasonID  uuid.UUID   `json:"season_id"`
	Week      int         `json:"week"`
	PlayerIDs []uuid.UUID `json:"player_ids"`
}

type MatchParticipantV1 struct {
	PlayerID uuid.UUID `json:"player_id"`
	IsWinner bool      `json:"is_winner"`
}

type MatchRecordedPayloadV1 struct {
	LeagueID     uuid.UUID            `json:"league_id"`
	MatchID      uuid.UUID            `json:"match_id"`
	SeasonID     *uuid.UUID           `json:"season_id,omitempty"`
	Week         *int                 `json:"week,omitempty"`
	IsMakeup     bool                 `json:"is_makeup"`
	Status       string               `json:"status"`
	Participants []MatchParticipantV1 `json:"participants"`
}

type MatchCompletedPayloadV1 struct {
	LeagueID  uuid.UUID   `json:"league_id"`
	MatchID   uuid.UUID   `json:"match_id"`
	WinnerIDs []uuid.UUID `json:"winner_ids"`
}

type MatchDeletedPayloadV1 struct {
	LeagueID uuid.UUID `json:"league_id"`
	MatchID  uuid.UUID `json:"match_id"`
}

// MatchRecordRequestedPayloadV1 asks the league module to record a match.
type MatchRecordRequestedPayloadV1 struct {
	LeagueID     uuid.UUID            `json:"league_id"`
	SeasonID     *uuid.UUID           `json:"season_id,omitempty"`
	Week         *int                 `json:"week,omitempty"`
	IsMakeup     bool                 `json:"is_makeup"`
	Completed    bool                 `json:"completed"`
	Participants []MatchParticipantV1 `json:"participants"`
}

type MatchRecordFailedPayloadV1 struct {
	LeagueID uuid.UUID `json:"league_id"`
	Reason   string    `json:"reason"`
}

type StandingsRequestedPayloadV1 struct {
	LeagueID uuid.UUID  `json:"league_id"`
	SeasonID *uuid.UUID `json:"season_id,omitempty"`
}

type StandingEntryV1 struct {
	Rank          int       `json:"rank"`
	PlayerID      uuid.UUID `json:"player_id"`
	PlayerName    string    `json:"player_name"`
	Wins          int       `json:"wins"`
	Losses        int       `json:"losses"`
	MatchesPlayed int       `json:"matches_played"`
	WinPercentage float64   `json:"win_percentage"`
}

type StandingsRetrievedPayloadV1 struct {
	LeagueID  uuid.UUID         `json:"league_id"`
	SeasonID  *uuid.UUID        `json:"season_id,omitempty"`
	Standings []StandingEntryV1 `json:"standings"`
}

type StandingsFailedPayloadV1 struct {
	LeagueID uuid.UUID `json:"league_id"`
	Reason   string    `json:"reason"`
}

type WeekAdvanceFailedPayloadV1 struct {
	SeasonID uuid.UUID `json:"season_id"`
	Reason   string    `json:"reason"`
}

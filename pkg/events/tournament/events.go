// Package tournamentevents defines the tournament topics and their JSON payloads.
package tournamentevents

import (
	"github.com/google/uuid"
)

const (
	TournamentCreatedV1      = "tournament.created.v1"
	TournamentCreateFailedV1 = "tournament.create.failed.v1"
	SeriesCompletedV1        = "tournament.series.completed.v1"
	TournamentCompletedV1    = "tournament.completed.v1"
	GameRecordFailedV1       = "tournament.game.record.failed.v1"

	GameRecordRequestedV1 = "tournament.game.record.requested.v1"
)

// Streams returns the JetStream stream names that carry tournament subjects.
func Streams() []string {
	return []string{"tournament"}
}

type TournamentCreatedPayloadV1 struct {
	TournamentID uuid.UUID   `json:"tournament_id"`
	LeagueID     uuid.UUID   `json:"league_id"`
	SeasonID     uuid.UUID   `json:"season_id"`
	Name         string      `json:"name"`
	Seeds        []uuid.UUID `json:"seeds"`
}

type TournamentCreateFailedPayloadV1 struct {
	SeasonID uuid.UUID `json:"season_id"`
	Reason   string    `json:"reason"`
}

type SeriesCompletedPayloadV1 struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	MatchID      uuid.UUID `json:"match_id"`
	Round        int       `json:"round"`
	MatchNumber  int       `json:"match_number"`
	WinnerID     uuid.UUID `json:"winner_id"`
	PlayerAWins  int       `json:"player_a_wins"`
	PlayerBWins  int       `json:"player_b_wins"`
}

type TournamentCompletedPayloadV1 struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	LeagueID     uuid.UUID `json:"league_id"`
	ChampionID   uuid.UUID `json:"champion_id"`
}

// GameRecordRequestedPayloadV1 reports one game of a bracket series.
type GameRecordRequestedPayloadV1 struct {
	MatchID  uuid.UUID `json:"match_id"`
	WinnerID uuid.UUID `json:"winner_id"`
}

type GameRecordFailedPayloadV1 struct {
	MatchID uuid.UUID `json:"match_id"`
	Reason  string    `json:"reason"`
}

package tournamentapi

import (
	"time"

	tournamentdomain "github.com/Black-And-White-Club/scorebook/app/modules/tournament/domain"
	"github.com/google/uuid"
)

type tournamentResponse struct {
	ID         uuid.UUID  `json:"id"`
	LeagueID   uuid.UUID  `json:"league_id"`
	SeasonID   uuid.UUID  `json:"season_id"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	ChampionID *uuid.UUID `json:"champion_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type matchResponse struct {
	ID           uuid.UUID  `json:"id"`
	Round        int        `json:"round"`
	MatchNumber  int        `json:"match_number"`
	PlayerA      *uuid.UUID `json:"player_a,omitempty"`
	PlayerB      *uuid.UUID `json:"player_b,omitempty"`
	SeedA        int        `json:"seed_a,omitempty"`
	SeedB        int        `json:"seed_b,omitempty"`
	PlayerAWins  int        `json:"player_a_wins"`
	PlayerBWins  int        `json:"player_b_wins"`
	SeriesFormat string     `json:"series_format"`
	NextMatchID  *uuid.UUID `json:"next_match_id,omitempty"`
	WinnerID     *uuid.UUID `json:"winner_id,omitempty"`
	Status       string     `json:"status"`
	Bye          bool       `json:"bye"`
}

// roundResponse groups slots by round, earliest round first.
type roundResponse struct {
	Round   int             `json:"round"`
	Matches []matchResponse `json:"matches"`
}

type bracketResponse struct {
	Tournament tournamentResponse `json:"tournament"`
	Rounds     []roundResponse    `json:"rounds"`
}

func toTournamentResponse(t tournamentdomain.Tournament) tournamentResponse {
	return tournamentResponse{
		ID:         t.ID,
		LeagueID:   t.LeagueID,
		SeasonID:   t.SeasonID,
		Name:       t.Name,
		Status:     string(t.Status),
		ChampionID: t.ChampionID,
		CreatedAt:  t.CreatedAt,
	}
}

func toMatchResponse(m tournamentdomain.BracketMatch) matchResponse {
	return matchResponse{
		ID:           m.ID,
		Round:        m.Round,
		MatchNumber:  m.MatchNumber,
		PlayerA:      m.PlayerA,
		PlayerB:      m.PlayerB,
		SeedA:        m.SeedA,
		SeedB:        m.SeedB,
		PlayerAWins:  m.PlayerAWins,
		PlayerBWins:  m.PlayerBWins,
		SeriesFormat: string(m.SeriesFormat),
		NextMatchID:  m.NextMatchID,
		WinnerID:     m.WinnerID,
		Status:       string(m.Status),
		Bye:          m.IsBye(),
	}
}

func toBracketResponse(b tournamentdomain.Bracket) bracketResponse {
	out := bracketResponse{Tournament: toTournamentResponse(b.Tournament)}
	for round := b.Rounds(); round >= 1; round-- {
		slots := b.Round(round)
		rr := roundResponse{Round: round, Matches: make([]matchResponse, 0, len(slots))}
		for _, m := range slots {
			rr.Matches = append(rr.Matches, toMatchResponse(m))
		}
		out.Rounds = append(out.Rounds, rr)
	}
	return out
}

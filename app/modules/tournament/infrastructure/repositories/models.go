package tournamentdb

import (
	"time"

	tournamentdomain "github.com/Black-And-White-Club/scorebook/app/modules/tournament/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Tournament is the summary row of a bracket.
type Tournament struct {
	bun.BaseModel `bun:"table:tournaments,alias:t"`

	ID         uuid.UUID  `bun:"id,pk,type:uuid"`
	LeagueID   uuid.UUID  `bun:"league_id,notnull,type:uuid"`
	SeasonID   uuid.UUID  `bun:"season_id,notnull,type:uuid"`
	Name       string     `bun:"name,notnull"`
	Status     string     `bun:"status,notnull,type:varchar(20)"`
	ChampionID *uuid.UUID `bun:"champion_id,type:uuid"`
	CreatedAt  time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt  time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// TournamentMatch is one bracket slot.
type TournamentMatch struct {
	bun.BaseModel `bun:"table:tournament_matches,alias:tm"`

	ID           uuid.UUID  `bun:"id,pk,type:uuid"`
	TournamentID uuid.UUID  `bun:"tournament_id,notnull,type:uuid"`
	Round        int        `bun:"round,notnull"`
	MatchNumber  int        `bun:"match_number,notnull"`
	PlayerAID    *uuid.UUID `bun:"player_a_id,type:uuid"`
	PlayerBID    *uuid.UUID `bun:"player_b_id,type:uuid"`
	SeedA        int        `bun:"seed_a,notnull,default:0"`
	SeedB        int        `bun:"seed_b,notnull,default:0"`
	PlayerAWins  int        `bun:"player_a_wins,notnull,default:0"`
	PlayerBWins  int        `bun:"player_b_wins,notnull,default:0"`
	SeriesFormat string     `bun:"series_format,notnull,type:varchar(20)"`
	NextMatchID  *uuid.UUID `bun:"next_match_id,type:uuid"`
	WinnerID     *uuid.UUID `bun:"winner_id,type:uuid"`
	Status       string     `bun:"status,notnull,type:varchar(20)"`
	UpdatedAt    time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (t *Tournament) ToDomain() tournamentdomain.Tournament {
	return tournamentdomain.Tournament{
		ID:         t.ID,
		LeagueID:   t.LeagueID,
		SeasonID:   t.SeasonID,
		Name:       t.Name,
		Status:     tournamentdomain.TournamentStatus(t.Status),
		ChampionID: t.ChampionID,
		CreatedAt:  t.CreatedAt,
	}
}

// TournamentFromDomain copies a tournament summary into a row.
func TournamentFromDomain(t tournamentdomain.Tournament) *Tournament {
	return &Tournament{
		ID:         t.ID,
		LeagueID:   t.LeagueID,
		SeasonID:   t.SeasonID,
		Name:       t.Name,
		Status:     string(t.Status),
		ChampionID: t.ChampionID,
		CreatedAt:  t.CreatedAt,
	}
}

func (m *TournamentMatch) ToDomain() tournamentdomain.BracketMatch {
	return tournamentdomain.BracketMatch{
		ID:           m.ID,
		TournamentID: m.TournamentID,
		Round:        m.Round,
		MatchNumber:  m.MatchNumber,
		PlayerA:      m.PlayerAID,
		PlayerB:      m.PlayerBID,
		SeedA:        m.SeedA,
		SeedB:        m.SeedB,
		PlayerAWins:  m.PlayerAWins,
		PlayerBWins:  m.PlayerBWins,
		SeriesFormat: tournamentdomain.SeriesFormat(m.SeriesFormat),
		NextMatchID:  m.NextMatchID,
		WinnerID:     m.WinnerID,
		Status:       tournamentdomain.MatchStatus(m.Status),
	}
}

// MatchFromDomain copies a bracket slot into a row.
func MatchFromDomain(m tournamentdomain.BracketMatch) *TournamentMatch {
	return &TournamentMatch{
		ID:           m.ID,
		TournamentID: m.TournamentID,
		Round:        m.Round,
		MatchNumber:  m.MatchNumber,
		PlayerAID:    m.PlayerA,
		PlayerBID:    m.PlayerB,
		SeedA:        m.SeedA,
		SeedB:        m.SeedB,
		PlayerAWins:  m.PlayerAWins,
		PlayerBWins:  m.PlayerBWins,
		SeriesFormat: string(m.SeriesFormat),
		NextMatchID:  m.NextMatchID,
		WinnerID:     m.WinnerID,
		Status:       string(m.Status),
	}
}

package leaguedb

import (
	"time"

	leaguedomain "github.com/Black-And-White-Club/scorebook/app/modules/league/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// League is a named competition for one game type.
type League struct {
	bun.BaseModel `bun:"table:leagues,alias:l"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	Name      string    `bun:"name,notnull"`
	GameType  string    `bun:"game_type,notnull,type:varchar(20)"`
	Format    string    `bun:"format,notnull,type:varchar(20)"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// Player is a roster entry of a league.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	LeagueID  uuid.UUID `bun:"league_id,notnull,type:uuid"`
	GivenName string    `bun:"given_name,notnull"`
	Surname   string    `bun:"surname,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// Season tracks the week counter of a league season.
type Season struct {
	bun.BaseModel `bun:"table:seasons,alias:s"`

	ID            uuid.UUID `bun:"id,pk,type:uuid"`
	LeagueID      uuid.UUID `bun:"league_id,notnull,type:uuid"`
	Name          string    `bun:"name,notnull"`
	StartDate     time.Time `bun:"start_date,notnull"`
	WeeksDuration int       `bun:"weeks_duration,notnull"`
	CurrentWeek   int       `bun:"current_week,notnull,default:1"`
	Status        string    `bun:"status,notnull,type:varchar(20)"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Match is a recorded contest. Participants are stored in match_participants.
type Match struct {
	bun.BaseModel `bun:"table:matches,alias:m"`

	ID           uuid.UUID           `bun:"id,pk,type:uuid"`
	LeagueID     uuid.UUID           `bun:"league_id,notnull,type:uuid"`
	SeasonID     *uuid.UUID          `bun:"season_id,type:uuid"`
	Week         *int                `bun:"week"`
	IsMakeup     bool                `bun:"is_makeup,notnull,default:false"`
	Status       string              `bun:"status,notnull,type:varchar(20)"`
	PlayedAt     time.Time           `bun:"played_at,nullzero,notnull,default:current_timestamp"`
	Participants []*MatchParticipant `bun:"rel:has-many,join:id=match_id"`
}

// MatchParticipant is one side of a match.
type MatchParticipant struct {
	bun.BaseModel `bun:"table:match_participants,alias:mp"`

	MatchID  uuid.UUID `bun:"match_id,pk,type:uuid"`
	PlayerID uuid.UUID `bun:"player_id,pk,type:uuid"`
	Winner   bool      `bun:"winner,notnull,default:false"`
}

// WeekAttendance marks one player present for a season week.
type WeekAttendance struct {
	bun.BaseModel `bun:"table:week_attendance,alias:wa"`

	SeasonID   uuid.UUID `bun:"season_id,pk,type:uuid"`
	Week       int       `bun:"week,pk"`
	PlayerID   uuid.UUID `bun:"player_id,pk,type:uuid"`
	RecordedAt time.Time `bun:"recorded_at,nullzero,notnull,default:current_timestamp"`
}

func (l *League) ToDomain() leaguedomain.League {
	return leaguedomain.League{
		ID:       l.ID,
		Name:     l.Name,
		GameType: leaguedomain.GameType(l.GameType),
		Format:   leaguedomain.Format(l.Format),
	}
}

func (p *Player) ToDomain() leaguedomain.Player {
	return leaguedomain.Player{ID: p.ID, GivenName: p.GivenName, Surname: p.Surname}
}

func (s *Season) ToDomain() leaguedomain.Season {
	return leaguedomain.Season{
		ID:            s.ID,
		LeagueID:      s.LeagueID,
		Name:          s.Name,
		StartDate:     s.StartDate,
		WeeksDuration: s.WeeksDuration,
		CurrentWeek:   s.CurrentWeek,
		Status:        leaguedomain.SeasonStatus(s.Status),
	}
}

// SeasonFromDomain copies a season snapshot into a row.
func SeasonFromDomain(s leaguedomain.Season) *Season {
	return &Season{
		ID:            s.ID,
		LeagueID:      s.LeagueID,
		Name:          s.Name,
		StartDate:     s.StartDate,
		WeeksDuration: s.WeeksDuration,
		CurrentWeek:   s.CurrentWeek,
		Status:        string(s.Status),
	}
}

func (m *Match) ToDomain() leaguedomain.Match {
	out := leaguedomain.Match{
		ID:           m.ID,
		LeagueID:     m.LeagueID,
		SeasonID:     m.SeasonID,
		Week:         m.Week,
		IsMakeup:     m.IsMakeup,
		Status:       leaguedomain.MatchStatus(m.Status),
		PlayedAt:     m.PlayedAt,
		Participants: make([]leaguedomain.Participant, 0, len(m.Participants)),
	}
	for _, p := range m.Participants {
		out.Participants = append(out.Participants, leaguedomain.Participant{PlayerID: p.PlayerID, Winner: p.Winner})
	}
	return out
}

// MatchFromDomain copies a match and its participants into rows.
func MatchFromDomain(m leaguedomain.Match) *Match {
	row := &Match{
		ID:       m.ID,
		LeagueID: m.LeagueID,
		SeasonID: m.SeasonID,
		Week:     m.Week,
		IsMakeup: m.IsMakeup,
		Status:   string(m.Status),
		PlayedAt: m.PlayedAt,
	}
	for _, p := range m.Participants {
		row.Participants = append(row.Participants, &MatchParticipant{MatchID: m.ID, PlayerID: p.PlayerID, Winner: p.Winner})
	}
	return row
}

package leagueservice

import (
	"context"
	"io"
	"time"

	leaguedomain "github.com/Black-And-White-Club/scorebook/app/modules/league/domain"
	"github.com/google/uuid"
)

// Service defines the contract for league operations.
type Service interface {
	// --- LEAGUE & ROSTER ---

	CreateLeague(ctx context.Context, name string, gameType leaguedomain.GameType, format leaguedomain.Format) (leaguedomain.League, error)
	GetLeague(ctx context.Context, leagueID uuid.UUID) (leaguedomain.League, error)
	RegisterPlayer(ctx context.Context, leagueID uuid.UUID, givenName, surname string) (leaguedomain.Player, error)
	ListRoster(ctx context.Context, leagueID uuid.UUID) ([]leaguedomain.Player, error)

	// --- SEASONS ---

	// StartSeason fails with ErrActiveSeasonExists while the league has an active season.
	StartSeason(ctx context.Context, leagueID uuid.UUID, name string, startDate time.Time, weeks int) (leaguedomain.Season, error)
	GetSeason(ctx context.Context, seasonID uuid.UUID) (leaguedomain.Season, error)
	ListActiveSeasons(ctx context.Context) ([]leaguedomain.Season, error)
	AdvanceWeek(ctx context.Context, seasonID uuid.UUID) (leaguedomain.Season, error)
	EndSeason(ctx context.Context, seasonID uuid.UUID) (leaguedomain.Season, error)
	// RecordAttendance replaces the attendance set of one week.
	RecordAttendance(ctx context.Context, seasonID uuid.UUID, week int, playerIDs []uuid.UUID) error

	// --- MATCHES ---

	RecordMatch(ctx context.Context, cmd RecordMatchCommand) (leaguedomain.Match, error)
	GetMatch(ctx context.Context, matchID uuid.UUID) (leaguedomain.Match, error)
	CompleteMatch(ctx context.Context, matchID uuid.UUID, winnerIDs []uuid.UUID) (leaguedomain.Match, error)
	DeleteMatch(ctx context.Context, matchID uuid.UUID) error

	// --- READS ---

	// GetStandings ranks the roster on completed matches, of one season when seasonID is set.
	GetStandings(ctx context.Context, leagueID uuid.UUID, seasonID *uuid.UUID) ([]leaguedomain.LeaderboardEntry, error)
	// GetScheduledMatches lists this week's outstanding pairings. A nil attendee list falls
	// back to the attendance recorded for the current week.
	GetScheduledMatches(ctx context.Context, seasonID uuid.UUID, attendeeIDs []uuid.UUID) ([]leaguedomain.Pairing, error)
	GetMakeupMatches(ctx context.Context, seasonID uuid.UUID, attendeeIDs []uuid.UUID) ([]leaguedomain.Pairing, error)

	// --- REPORTS ---

	StandingsChart(ctx context.Context, leagueID uuid.UUID, seasonID *uuid.UUID) ([]byte, error)
	ExportStandings(ctx context.Context, leagueID uuid.UUID, seasonID *uuid.UUID, w io.Writer) error
}

var _ Service = (*LeagueService)(nil)

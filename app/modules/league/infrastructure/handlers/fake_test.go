package leaguehandlers

import (
	"context"
	"io"
	"time"

	leagueservice "github.com/Black-And-White-Club/scorebook/app/modules/league/application"
	leaguedomain "github.com/Black-And-White-Club/scorebook/app/modules/league/domain"
	"github.com/google/uuid"
)

// FakeLeagueService stubs the operations the handlers call; the rest return zero values.
type FakeLeagueService struct {
	RecordMatchFunc  func(ctx context.Context, cmd leagueservice.RecordMatchCommand) (leaguedomain.Match, error)
	GetStandingsFunc func(ctx context.Context, leagueID uuid.UUID, seasonID *uuid.UUID) ([]leaguedomain.LeaderboardEntry, error)
}

func NewFakeLeagueService() *FakeLeagueService {
	return &FakeLeagueService{}
}

func (f *FakeLeagueService) RecordMatch(ctx context.Context, cmd leagueservice.RecordMatchCommand) (leaguedomain.Match, error) {
	if f.RecordMatchFunc != nil {
		return f.RecordMatchFunc(ctx, cmd)
	}
	return leaguedomain.Match{}, nil
}

func (f *FakeLeagueService) GetStandings(ctx context.Context, leagueID uuid.UUID, seasonID *uuid.UUID) ([]leaguedomain.LeaderboardEntry, error) {
	if f.GetStandingsFunc != nil {
		return f.GetStandingsFunc(ctx, leagueID, seasonID)
	}
	return nil, nil
}

func (f *FakeLeagueService) CreateLeague(ctx context.Context, name string, gameType leaguedomain.GameType, format leaguedomain.Format) (leaguedomain.League, error) {
	return leaguedomain.League{}, nil
}

func (f *FakeLeagueService) GetLeague(ctx context.Context, leagueID uuid.UUID) (leaguedomain.League, error) {
	return leaguedomain.League{}, nil
}

func (f *FakeLeagueService) RegisterPlayer(ctx context.Context, leagueID uuid.UUID, givenName, surname string) (leaguedomain.Player, error) {
	return leaguedomain.Player{}, nil
}

func (f *FakeLeagueService) ListRoster(ctx context.Context, leagueID uuid.UUID) ([]leaguedomain.Player, error) {
	return nil, nil
}

func (f *FakeLeagueService) StartSeason(ctx context.Context, leagueID uuid.UUID, name string, startDate time.Time, weeks int) (leaguedomain.Season, error) {
	return leaguedomain.Season{}, nil
}

func (f *FakeLeagueService) GetSeason(ctx context.Context, seasonID uuid.UUID) (leaguedomain.Season, error) {
	return leaguedomain.Season{}, nil
}

func (f *FakeLeagueService) ListActiveSeasons(ctx context.Context) ([]leaguedomain.Season, error) {
	return nil, nil
}

func (f *FakeLeagueService) AdvanceWeek(ctx context.Context, seasonID uuid.UUID) (leaguedomain.Season, error) {
	return leaguedomain.Season{}, nil
}

func (f *FakeLeagueService) EndSeason(ctx context.Context, seasonID uuid.UUID) (leaguedomain.Season, error) {
	return leaguedomain.Season{}, nil
}

func (f *FakeLeagueService) RecordAttendance(ctx context.Context, seasonID uuid.UUID, week int, playerIDs []uuid.UUID) error {
	return nil
}

func (f *FakeLeagueService) CompleteMatch(ctx context.Context, matchID uuid.UUID, winnerIDs []uuid.UUID) (leaguedomain.Match, error) {
	return leaguedomain.Match{}, nil
}

func (f *FakeLeagueService) GetMatch(ctx context.Context, matchID uuid.UUID) (leaguedomain.Match, error) {
	return leaguedomain.Match{}, nil
}

func (f *FakeLeagueService) DeleteMatch(ctx context.Context, matchID uuid.UUID) error {
	return nil
}

func (f *FakeLeagueService) GetScheduledMatches(ctx context.Context, seasonID uuid.UUID, attendeeIDs []uuid.UUID) ([]leaguedomain.Pairing, error) {
	return nil, nil
}

func (f *FakeLeagueService) GetMakeupMatches(ctx context.Context, seasonID uuid.UUID, attendeeIDs []uuid.UUID) ([]leaguedomain.Pairing, error) {
	return nil, nil
}

func (f *FakeLeagueService) StandingsChart(ctx context.Context, leagueID uuid.UUID, seasonID *uuid.UUID) ([]byte, error) {
	return nil, nil
}

func (f *FakeLeagueService) ExportStandings(ctx context.Context, leagueID uuid.UUID, seasonID *uuid.UUID, w io.Writer) error {
	return nil
}

var _ leagueservice.Service = (*FakeLeagueService)(nil)

package leagueapi

import (
	"context"
	"io"
	"time"

	leagueservice "github.com/Black-And-White-Club/scorebook/app/modules/league/application"
	leaguedomain "github.com/Black-And-White-Club/scorebook/app/modules/league/domain"
	"github.com/google/uuid"
)

// FakeLeagueService records which operations the API called.
type FakeLeagueService struct {
	trace []string

	CreateLeagueFunc        func(ctx context.Context, name string, gameType leaguedomain.GameType, format leaguedomain.Format) (leaguedomain.League, error)
	StartSeasonFunc         func(ctx context.Context, leagueID uuid.UUID, name string, startDate time.Time, weeks int) (leaguedomain.Season, error)
	GetSeasonFunc           func(ctx context.Context, seasonID uuid.UUID) (leaguedomain.Season, error)
	GetMatchFunc            func(ctx context.Context, matchID uuid.UUID) (leaguedomain.Match, error)
	RecordAttendanceFunc    func(ctx context.Context, seasonID uuid.UUID, week int, playerIDs []uuid.UUID) error
	RecordMatchFunc         func(ctx context.Context, cmd leagueservice.RecordMatchCommand) (leaguedomain.Match, error)
	CompleteMatchFunc       func(ctx context.Context, matchID uuid.UUID, winnerIDs []uuid.UUID) (leaguedomain.Match, error)
	GetStandingsFunc        func(ctx context.Context, leagueID uuid.UUID, seasonID *uuid.UUID) ([]leaguedomain.LeaderboardEntry, error)
	GetScheduledMatchesFunc func(ctx context.Context, seasonID uuid.UUID, attendeeIDs []uuid.UUID) ([]leaguedomain.Pairing, error)
	ExportStandingsFunc     func(ctx context.Context, leagueID uuid.UUID, seasonID *uuid.UUID, w io.Writer) error
}

func NewFakeLeagueService() *FakeLeagueService {
	return &FakeLeagueService{}
}

func (f *FakeLeagueService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeLeagueService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeLeagueService) CreateLeague(ctx context.Context, name string, gameType leaguedomain.GameType, format leaguedomain.Format) (leaguedomain.League, error) {
	f.record("CreateLeague")
	if f.CreateLeagueFunc != nil {
		return f.CreateLeagueFunc(ctx, name, gameType, format)
	}
	return leaguedomain.League{}, nil
}

func (f *FakeLeagueService) GetLeague(ctx context.Context, leagueID uuid.UUID) (leaguedomain.League, error) {
	f.record("GetLeague")
	return leaguedomain.League{ID: leagueID}, nil
}

func (f *FakeLeagueService) RegisterPlayer(ctx context.Context, leagueID uuid.UUID, givenName, surname string) (leaguedomain.Player, error) {
	f.record("RegisterPlayer")
	return leaguedomain.Player{ID: uuid.New(), GivenName: givenName, Surname: surname}, nil
}

func (f *FakeLeagueService) ListRoster(ctx context.Context, leagueID uuid.UUID) ([]leaguedomain.Player, error) {
	f.record("ListRoster")
	return nil, nil
}

func (f *FakeLeagueService) StartSeason(ctx context.Context, leagueID uuid.UUID, name string, startDate time.Time, weeks int) (leaguedomain.Season, error) {
	f.record("StartSeason")
	if f.StartSeasonFunc != nil {
		return f.StartSeasonFunc(ctx, leagueID, name, startDate, weeks)
	}
	return leaguedomain.Season{}, nil
}

func (f *FakeLeagueService) GetSeason(ctx context.Context, seasonID uuid.UUID) (leaguedomain.Season, error) {
	f.record("GetSeason")
	if f.GetSeasonFunc != nil {
		return f.GetSeasonFunc(ctx, seasonID)
	}
	return leaguedomain.Season{ID: seasonID}, nil
}

func (f *FakeLeagueService) ListActiveSeasons(ctx context.Context) ([]leaguedomain.Season, error) {
	f.record("ListActiveSeasons")
	return nil, nil
}

func (f *FakeLeagueService) AdvanceWeek(ctx context.Context, seasonID uuid.UUID) (leaguedomain.Season, error) {
	f.record("AdvanceWeek")
	return leaguedomain.Season{ID: seasonID}, nil
}

func (f *FakeLeagueService) EndSeason(ctx context.Context, seasonID uuid.UUID) (leaguedomain.Season, error) {
	f.record("EndSeason")
	return leaguedomain.Season{ID: seasonID, Status: leaguedomain.SeasonStatusCompleted}, nil
}

func (f *FakeLeagueService) RecordAttendance(ctx context.Context, seasonID uuid.UUID, week int, playerIDs []uuid.UUID) error {
	f.record("RecordAttendance")
	if f.RecordAttendanceFunc != nil {
		return f.RecordAttendanceFunc(ctx, seasonID, week, playerIDs)
	}
	return nil
}

func (f *FakeLeagueService) RecordMatch(ctx context.Context, cmd leagueservice.RecordMatchCommand) (leaguedomain.Match, error) {
	f.record("RecordMatch")
	if f.RecordMatchFunc != nil {
		return f.RecordMatchFunc(ctx, cmd)
	}
	return leaguedomain.Match{}, nil
}

func (f *FakeLeagueService) GetMatch(ctx context.Context, matchID uuid.UUID) (leaguedomain.Match, error) {
	f.record("GetMatch")
	if f.GetMatchFunc != nil {
		return f.GetMatchFunc(ctx, matchID)
	}
	return leaguedomain.Match{ID: matchID}, nil
}

func (f *FakeLeagueService) CompleteMatch(ctx context.Context, matchID uuid.UUID, winnerIDs []uuid.UUID) (leaguedomain.Match, error) {
	f.record("CompleteMatch")
	if f.CompleteMatchFunc != nil {
		return f.CompleteMatchFunc(ctx, matchID, winnerIDs)
	}
	return leaguedomain.Match{ID: matchID}, nil
}

func (f *FakeLeagueService) DeleteMatch(ctx context.Context, matchID uuid.UUID) error {
	f.record("DeleteMatch")
	return nil
}

func (f *FakeLeagueService) GetStandings(ctx context.Context, leagueID uuid.UUID, seasonID *uuid.UUID) ([]leaguedomain.LeaderboardEntry, error) {
	f.record("GetStandings")
	if f.GetStandingsFunc != nil {
		return f.GetStandingsFunc(ctx, leagueID, seasonID)
	}
	return nil, nil
}

func (f *FakeLeagueService) GetScheduledMatches(ctx context.Context, seasonID uuid.UUID, attendeeIDs []uuid.UUID) ([]leaguedomain.Pairing, error) {
	f.record("GetScheduledMatches")
	if f.GetScheduledMatchesFunc != nil {
		return f.GetScheduledMatchesFunc(ctx, seasonID, attendeeIDs)
	}
	return nil, nil
}

func (f *FakeLeagueService) GetMakeupMatches(ctx context.Context, seasonID uuid.UUID, attendeeIDs []uuid.UUID) ([]leaguedomain.Pairing, error) {
	f.record("GetMakeupMatches")
	return nil, nil
}

func (f *FakeLeagueService) StandingsChart(ctx context.Context, leagueID uuid.UUID, seasonID *uuid.UUID) ([]byte, error) {
	f.record("StandingsChart")
	return []byte("\x89PNG"), nil
}

func (f *FakeLeagueService) ExportStandings(ctx context.Context, leagueID uuid.UUID, seasonID *uuid.UUID, w io.Writer) error {
	f.record("ExportStandings")
	if f.ExportStandingsFunc != nil {
		return f.ExportStandingsFunc(ctx, leagueID, seasonID, w)
	}
	return nil
}

var _ leagueservice.Service = (*FakeLeagueService)(nil)

package tournamentservice

import (
	"context"
	"sync"

	leaguedomain "github.com/Black-And-White-Club/scorebook/app/modules/league/domain"
	tournamentdb "github.com/Black-And-White-Club/scorebook/app/modules/tournament/infrastructure/repositories"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Tournament Repo
// ------------------------

type FakeTournamentRepo struct {
	trace []string

	CreateBracketFunc          func(ctx context.Context, db bun.IDB, tournament *tournamentdb.Tournament, matches []tournamentdb.TournamentMatch) error
	GetTournamentFunc          func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) (*tournamentdb.Tournament, error)
	GetTournamentForUpdateFunc func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) (*tournamentdb.Tournament, error)
	GetTournamentBySeasonFunc  func(ctx context.Context, db bun.IDB, seasonID uuid.UUID) (*tournamentdb.Tournament, error)
	ListTournamentsFunc        func(ctx context.Context, db bun.IDB, leagueID uuid.UUID) ([]tournamentdb.Tournament, error)
	UpdateTournamentFunc       func(ctx context.Context, db bun.IDB, tournament *tournamentdb.Tournament) error
	ListMatchesFunc            func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]tournamentdb.TournamentMatch, error)
	GetMatchFunc               func(ctx context.Context, db bun.IDB, matchID uuid.UUID) (*tournamentdb.TournamentMatch, error)
	UpdateMatchesFunc          func(ctx context.Context, db bun.IDB, matches []tournamentdb.TournamentMatch) error
}

func NewFakeTournamentRepo() *FakeTournamentRepo {
	return &FakeTournamentRepo{trace: []string{}}
}

func (f *FakeTournamentRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeTournamentRepo) CreateBracket(ctx context.Context, db bun.IDB, tournament *tournamentdb.Tournament, matches []tournamentdb.TournamentMatch) error {
	f.record("CreateBracket")
	if f.CreateBracketFunc != nil {
		return f.CreateBracketFunc(ctx, db, tournament, matches)
	}
	return nil
}

func (f *FakeTournamentRepo) GetTournament(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) (*tournamentdb.Tournament, error) {
	f.record("GetTournament")
	if f.GetTournamentFunc != nil {
		return f.GetTournamentFunc(ctx, db, tournamentID)
	}
	return nil, tournamentdb.ErrNotFound
}

func (f *FakeTournamentRepo) GetTournamentForUpdate(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) (*tournamentdb.Tournament, error) {
	f.record("GetTournamentForUpdate")
	if f.GetTournamentForUpdateFunc != nil {
		return f.GetTournamentForUpdateFunc(ctx, db, tournamentID)
	}
	return nil, tournamentdb.ErrNotFound
}

func (f *FakeTournamentRepo) GetTournamentBySeason(ctx context.Context, db bun.IDB, seasonID uuid.UUID) (*tournamentdb.Tournament, error) {
	f.record("GetTournamentBySeason")
	if f.GetTournamentBySeasonFunc != nil {
		return f.GetTournamentBySeasonFunc(ctx, db, seasonID)
	}
	return nil, tournamentdb.ErrNotFound
}

func (f *FakeTournamentRepo) ListTournaments(ctx context.Context, db bun.IDB, leagueID uuid.UUID) ([]tournamentdb.Tournament, error) {
	f.record("ListTournaments")
	if f.ListTournamentsFunc != nil {
		return f.ListTournamentsFunc(ctx, db, leagueID)
	}
	return nil, nil
}

func (f *FakeTournamentRepo) UpdateTournament(ctx context.Context, db bun.IDB, tournament *tournamentdb.Tournament) error {
	f.record("UpdateTournament")
	if f.UpdateTournamentFunc != nil {
		return f.UpdateTournamentFunc(ctx, db, tournament)
	}
	return nil
}

func (f *FakeTournamentRepo) ListMatches(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]tournamentdb.TournamentMatch, error) {
	f.record("ListMatches")
	if f.ListMatchesFunc != nil {
		return f.ListMatchesFunc(ctx, db, tournamentID)
	}
	return nil, nil
}

func (f *FakeTournamentRepo) GetMatch(ctx context.Context, db bun.IDB, matchID uuid.UUID) (*tournamentdb.TournamentMatch, error) {
	f.record("GetMatch")
	if f.GetMatchFunc != nil {
		return f.GetMatchFunc(ctx, db, matchID)
	}
	return nil, tournamentdb.ErrNotFound
}

func (f *FakeTournamentRepo) UpdateMatches(ctx context.Context, db bun.IDB, matches []tournamentdb.TournamentMatch) error {
	f.record("UpdateMatches")
	if f.UpdateMatchesFunc != nil {
		return f.UpdateMatchesFunc(ctx, db, matches)
	}
	return nil
}

func (f *FakeTournamentRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ tournamentdb.Repository = (*FakeTournamentRepo)(nil)

// ------------------------
// Fake League Reader
// ------------------------

type FakeLeagueReader struct {
	GetSeasonFunc    func(ctx context.Context, seasonID uuid.UUID) (leaguedomain.Season, error)
	GetStandingsFunc func(ctx context.Context, leagueID uuid.UUID, seasonID *uuid.UUID) ([]leaguedomain.LeaderboardEntry, error)
}

func (f *FakeLeagueReader) GetSeason(ctx context.Context, seasonID uuid.UUID) (leaguedomain.Season, error) {
	if f.GetSeasonFunc != nil {
		return f.GetSeasonFunc(ctx, seasonID)
	}
	return leaguedomain.Season{}, nil
}

func (f *FakeLeagueReader) GetStandings(ctx context.Context, leagueID uuid.UUID, seasonID *uuid.UUID) ([]leaguedomain.LeaderboardEntry, error) {
	if f.GetStandingsFunc != nil {
		return f.GetStandingsFunc(ctx, leagueID, seasonID)
	}
	return nil, nil
}

var _ LeagueReader = (*FakeLeagueReader)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type FakePublisher struct {
	mu        sync.Mutex
	published map[string][]*message.Message
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{published: map[string][]*message.Message{}}
}

func (p *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published[topic] = append(p.published[topic], messages...)
	return nil
}

func (p *FakePublisher) Close() error { return nil }

func (p *FakePublisher) Messages(topic string) []*message.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*message.Message(nil), p.published[topic]...)
}

package leagueservice

import (
	"context"
	"sync"

	leaguedb "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/repositories"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake League Repo
// ------------------------

type FakeLeagueRepo struct {
	trace []string

	CreateLeagueFunc      func(ctx context.Context, db bun.IDB, league *leaguedb.League) error
	GetLeagueFunc         func(ctx context.Context, db bun.IDB, leagueID uuid.UUID) (*leaguedb.League, error)
	AddPlayerFunc         func(ctx context.Context, db bun.IDB, player *leaguedb.Player) error
	ListPlayersFunc       func(ctx context.Context, db bun.IDB, leagueID uuid.UUID) ([]leaguedb.Player, error)
	CreateSeasonFunc      func(ctx context.Context, db bun.IDB, season *leaguedb.Season) error
	GetSeasonFunc         func(ctx context.Context, db bun.IDB, seasonID uuid.UUID) (*leaguedb.Season, error)
	GetActiveSeasonFunc   func(ctx context.Context, db bun.IDB, leagueID uuid.UUID) (*leaguedb.Season, error)
	ListActiveSeasonsFunc func(ctx context.Context, db bun.IDB) ([]leaguedb.Season, error)
	UpdateSeasonFunc      func(ctx context.Context, db bun.IDB, season *leaguedb.Season) error
	ReplaceAttendanceFunc func(ctx context.Context, db bun.IDB, seasonID uuid.UUID, week int, playerIDs []uuid.UUID) error
	GetAttendanceFunc     func(ctx context.Context, db bun.IDB, seasonID uuid.UUID) (map[int][]uuid.UUID, error)
	InsertMatchFunc       func(ctx context.Context, db bun.IDB, match *leaguedb.Match) error
	GetMatchFunc          func(ctx context.Context, db bun.IDB, matchID uuid.UUID) (*leaguedb.Match, error)
	UpdateMatchResultFunc func(ctx context.Context, db bun.IDB, match *leaguedb.Match) error
	DeleteMatchFunc       func(ctx context.Context, db bun.IDB, matchID uuid.UUID) error
	ListMatchesFunc       func(ctx context.Context, db bun.IDB, filter leaguedb.MatchFilter) ([]leaguedb.Match, error)
	AcquireLockFunc       func(ctx context.Context, db bun.IDB, key string) error
}

func NewFakeLeagueRepo() *FakeLeagueRepo {
	return &FakeLeagueRepo{
		trace: []string{},
	}
}

func (f *FakeLeagueRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeLeagueRepo) CreateLeague(ctx context.Context, db bun.IDB, league *leaguedb.League) error {
	f.record("CreateLeague")
	if f.CreateLeagueFunc != nil {
		return f.CreateLeagueFunc(ctx, db, league)
	}
	return nil
}

func (f *FakeLeagueRepo) GetLeague(ctx context.Context, db bun.IDB, leagueID uuid.UUID) (*leaguedb.League, error) {
	f.record("GetLeague")
	if f.GetLeagueFunc != nil {
		return f.GetLeagueFunc(ctx, db, leagueID)
	}
	return nil, leaguedb.ErrNotFound
}

func (f *FakeLeagueRepo) AddPlayer(ctx context.Context, db bun.IDB, player *leaguedb.Player) error {
	f.record("AddPlayer")
	if f.AddPlayerFunc != nil {
		return f.AddPlayerFunc(ctx, db, player)
	}
	return nil
}

func (f *FakeLeagueRepo) ListPlayers(ctx context.Context, db bun.IDB, leagueID uuid.UUID) ([]leaguedb.Player, error) {
	f.record("ListPlayers")
	if f.ListPlayersFunc != nil {
		return f.ListPlayersFunc(ctx, db, leagueID)
	}
	return nil, nil
}

func (f *FakeLeagueRepo) CreateSeason(ctx context.Context, db bun.IDB, season *leaguedb.Season) error {
	f.record("CreateSeason")
	if f.CreateSeasonFunc != nil {
		return f.CreateSeasonFunc(ctx, db, season)
	}
	return nil
}

func (f *FakeLeagueRepo) GetSeason(ctx context.Context, db bun.IDB, seasonID uuid.UUID) (*leaguedb.Season, error) {
	f.record("GetSeason")
	if f.GetSeasonFunc != nil {
		return f.GetSeasonFunc(ctx, db, seasonID)
	}
	return nil, leaguedb.ErrNotFound
}

func (f *FakeLeagueRepo) GetActiveSeason(ctx context.Context, db bun.IDB, leagueID uuid.UUID) (*leaguedb.Season, error) {
	f.record("GetActiveSeason")
	if f.GetActiveSeasonFunc != nil {
		return f.GetActiveSeasonFunc(ctx, db, leagueID)
	}
	return nil, leaguedb.ErrNoActiveSeason
}

func (f *FakeLeagueRepo) ListActiveSeasons(ctx context.Context, db bun.IDB) ([]leaguedb.Season, error) {
	f.record("ListActiveSeasons")
	if f.ListActiveSeasonsFunc != nil {
		return f.ListActiveSeasonsFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeLeagueRepo) UpdateSeason(ctx context.Context, db bun.IDB, season *leaguedb.Season) error {
	f.record("UpdateSeason")
	if f.UpdateSeasonFunc != nil {
		return f.UpdateSeasonFunc(ctx, db, season)
	}
	return nil
}

func (f *FakeLeagueRepo) ReplaceAttendance(ctx context.Context, db bun.IDB, seasonID uuid.UUID, week int, playerIDs []uuid.UUID) error {
	f.record("ReplaceAttendance")
	if f.ReplaceAttendanceFunc != nil {
		return f.ReplaceAttendanceFunc(ctx, db, seasonID, week, playerIDs)
	}
	return nil
}

func (f *FakeLeagueRepo) GetAttendance(ctx context.Context, db bun.IDB, seasonID uuid.UUID) (map[int][]uuid.UUID, error) {
	f.record("GetAttendance")
	if f.GetAttendanceFunc != nil {
		return f.GetAttendanceFunc(ctx, db, seasonID)
	}
	return map[int][]uuid.UUID{}, nil
}

func (f *FakeLeagueRepo) InsertMatch(ctx context.Context, db bun.IDB, match *leaguedb.Match) error {
	f.record("InsertMatch")
	if f.InsertMatchFunc != nil {
		return f.InsertMatchFunc(ctx, db, match)
	}
	return nil
}

func (f *FakeLeagueRepo) GetMatch(ctx context.Context, db bun.IDB, matchID uuid.UUID) (*leaguedb.Match, error) {
	f.record("GetMatch")
	if f.GetMatchFunc != nil {
		return f.GetMatchFunc(ctx, db, matchID)
	}
	return nil, leaguedb.ErrNotFound
}

func (f *FakeLeagueRepo) UpdateMatchResult(ctx context.Context, db bun.IDB, match *leaguedb.Match) error {
	f.record("UpdateMatchResult")
	if f.UpdateMatchResultFunc != nil {
		return f.UpdateMatchResultFunc(ctx, db, match)
	}
	return nil
}

func (f *FakeLeagueRepo) DeleteMatch(ctx context.Context, db bun.IDB, matchID uuid.UUID) error {
	f.record("DeleteMatch")
	if f.DeleteMatchFunc != nil {
		return f.DeleteMatchFunc(ctx, db, matchID)
	}
	return nil
}

func (f *FakeLeagueRepo) ListMatches(ctx context.Context, db bun.IDB, filter leaguedb.MatchFilter) ([]leaguedb.Match, error) {
	f.record("ListMatches")
	if f.ListMatchesFunc != nil {
		return f.ListMatchesFunc(ctx, db, filter)
	}
	return nil, nil
}

func (f *FakeLeagueRepo) AcquireLock(ctx context.Context, db bun.IDB, key string) error {
	f.record("AcquireLock")
	if f.AcquireLockFunc != nil {
		return f.AcquireLockFunc(ctx, db, key)
	}
	return nil
}

// --- Accessors for assertions ---

func (f *FakeLeagueRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ leaguedb.Repository = (*FakeLeagueRepo)(nil)

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

var _ message.Publisher = (*FakePublisher)(nil)

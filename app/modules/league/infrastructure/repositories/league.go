package leaguedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new league repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) CreateLeague(ctx context.Context, db bun.IDB, league *League) error {
	db = r.resolveDB(db)
	if league.ID == uuid.Nil {
		league.ID = uuid.New()
	}
	if _, err := db.NewInsert().Model(league).Exec(ctx); err != nil {
		return fmt.Errorf("league.CreateLeague: %w", err)
	}
	return nil
}

func (r *Impl) GetLeague(ctx context.Context, db bun.IDB, leagueID uuid.UUID) (*League, error) {
	db = r.resolveDB(db)
	league := new(League)
	err := db.NewSelect().
		Model(league).
		Where("id = ?", leagueID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("league.GetLeague: %w", err)
	}
	return league, nil
}

func (r *Impl) AddPlayer(ctx context.Context, db bun.IDB, player *Player) error {
	db = r.resolveDB(db)
	if player.ID == uuid.Nil {
		player.ID = uuid.New()
	}
	if _, err := db.NewInsert().Model(player).Exec(ctx); err != nil {
		return fmt.Errorf("league.AddPlayer: %w", err)
	}
	return nil
}

func (r *Impl) ListPlayers(ctx context.Context, db bun.IDB, leagueID uuid.UUID) ([]Player, error) {
	db = r.resolveDB(db)
	var players []Player
	err := db.NewSelect().
		Model(&players).
		Where("league_id = ?", leagueID).
		Order("surname ASC", "given_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("league.ListPlayers: %w", err)
	}
	return players, nil
}

func (r *Impl) CreateSeason(ctx context.Context, db bun.IDB, season *Season) error {
	db = r.resolveDB(db)
	if season.ID == uuid.Nil {
		season.ID = uuid.New()
	}
	if _, err := db.NewInsert().Model(season).Exec(ctx); err != nil {
		return fmt.Errorf("league.CreateSeason: %w", err)
	}
	return nil
}

func (r *Impl) GetSeason(ctx context.Context, db bun.IDB, seasonID uuid.UUID) (*Season, error) {
	db = r.resolveDB(db)
	season := new(Season)
	err := db.NewSelect().
		Model(season).
		Where("id = ?", seasonID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("league.GetSeason: %w", err)
	}
	return season, nil
}

func (r *Impl) GetActiveSeason(ctx context.Context, db bun.IDB, leagueID uuid.UUID) (*Season, error) {
	db = r.resolveDB(db)
	season := new(Season)
	err := db.NewSelect().
		Model(season).
		Where("league_id = ?", leagueID).
		Where("status = ?", "active").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoActiveSeason
		}
		return nil, fmt.Errorf("league.GetActiveSeason: %w", err)
	}
	return season, nil
}

func (r *Impl) ListActiveSeasons(ctx context.Context, db bun.IDB) ([]Season, error) {
	db = r.resolveDB(db)
	var seasons []Season
	err := db.NewSelect().
		Model(&seasons).
		Where("status = ?", "active").
		Order("start_date ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("league.ListActiveSeasons: %w", err)
	}
	return seasons, nil
}

func (r *Impl) UpdateSeason(ctx context.Context, db bun.IDB, season *Season) error {
	db = r.resolveDB(db)
	season.UpdatedAt = time.Now().UTC()
	result, err := db.NewUpdate().
		Model(season).
		Column("current_week", "status", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("league.UpdateSeason: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *Impl) ReplaceAttendance(ctx context.Context, db bun.IDB, seasonID uuid.UUID, week int, playerIDs []uuid.UUID) error {
	db = r.resolveDB(db)
	_, err := db.NewDelete().
		Model((*WeekAttendance)(nil)).
		Where("season_id = ?", seasonID).
		Where("week = ?", week).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("league.ReplaceAttendance: delete: %w", err)
	}
	if len(playerIDs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows := make([]WeekAttendance, 0, len(playerIDs))
	for _, id := range playerIDs {
		rows = append(rows, WeekAttendance{SeasonID: seasonID, Week: week, PlayerID: id, RecordedAt: now})
	}
	_, err = db.NewInsert().
		Model(&rows).
		On("CONFLICT (season_id, week, player_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("league.ReplaceAttendance: insert: %w", err)
	}
	return nil
}

func (r *Impl) GetAttendance(ctx context.Context, db bun.IDB, seasonID uuid.UUID) (map[int][]uuid.UUID, error) {
	db = r.resolveDB(db)
	var rows []WeekAttendance
	err := db.NewSelect().
		Model(&rows).
		Where("season_id = ?", seasonID).
		Order("week ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("league.GetAttendance: %w", err)
	}
	out := make(map[int][]uuid.UUID)
	for _, row := range rows {
		out[row.Week] = append(out[row.Week], row.PlayerID)
	}
	return out, nil
}

func (r *Impl) InsertMatch(ctx context.Context, db bun.IDB, match *Match) error {
	db = r.resolveDB(db)
	if match.ID == uuid.Nil {
		match.ID = uuid.New()
	}
	if match.PlayedAt.IsZero() {
		match.PlayedAt = time.Now().UTC()
	}
	if _, err := db.NewInsert().Model(match).Exec(ctx); err != nil {
		return fmt.Errorf("league.InsertMatch: %w", err)
	}
	if len(match.Participants) == 0 {
		return nil
	}
	for _, p := range match.Participants {
		p.MatchID = match.ID
	}
	if _, err := db.NewInsert().Model(&match.Participants).Exec(ctx); err != nil {
		return fmt.Errorf("league.InsertMatch: participants: %w", err)
	}
	return nil
}

func (r *Impl) GetMatch(ctx context.Context, db bun.IDB, matchID uuid.UUID) (*Match, error) {
	db = r.resolveDB(db)
	match := new(Match)
	err := db.NewSelect().
		Model(match).
		Relation("Participants").
		Where("m.id = ?", matchID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("league.GetMatch: %w", err)
	}
	return match, nil
}

func (r *Impl) UpdateMatchResult(ctx context.Context, db bun.IDB, match *Match) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model(match).
		Column("status").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("league.UpdateMatchResult: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNoRowsAffected
	}

	for _, p := range match.Participants {
		_, err := db.NewUpdate().
			Model(p).
			Column("winner").
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("league.UpdateMatchResult: participant %s: %w", p.PlayerID, err)
		}
	}
	return nil
}

func (r *Impl) DeleteMatch(ctx context.Context, db bun.IDB, matchID uuid.UUID) error {
	db = r.resolveDB(db)
	if _, err := db.NewDelete().
		Model((*MatchParticipant)(nil)).
		Where("match_id = ?", matchID).
		Exec(ctx); err != nil {
		return fmt.Errorf("league.DeleteMatch: participants: %w", err)
	}
	result, err := db.NewDelete().
		Model((*Match)(nil)).
		Where("id = ?", matchID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("league.DeleteMatch: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) ListMatches(ctx context.Context, db bun.IDB, filter MatchFilter) ([]Match, error) {
	db = r.resolveDB(db)
	var matches []Match
	q := db.NewSelect().
		Model(&matches).
		Relation("Participants").
		Where("m.league_id = ?", filter.LeagueID)
	if filter.SeasonID != nil {
		q = q.Where("m.season_id = ?", *filter.SeasonID)
	}
	if filter.Status != "" {
		q = q.Where("m.status = ?", filter.Status)
	}
	if err := q.Order("m.played_at ASC", "m.id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("league.ListMatches: %w", err)
	}
	return matches, nil
}

func (r *Impl) AcquireLock(ctx context.Context, db bun.IDB, key string) error {
	db = r.resolveDB(db)
	// hashtext() gives a stable int4 from the key string
	if _, err := db.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", key).Exec(ctx); err != nil {
		return fmt.Errorf("league.AcquireLock: %w", err)
	}
	return nil
}

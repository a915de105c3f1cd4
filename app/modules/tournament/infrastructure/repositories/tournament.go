package tournamentdb

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

// NewRepository creates a new tournament repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) CreateBracket(ctx context.Context, db bun.IDB, tournament *Tournament, matches []TournamentMatch) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(tournament).Exec(ctx); err != nil {
		return fmt.Errorf("tournament.CreateBracket: %w", err)
	}
	if len(matches) == 0 {
		return nil
	}
	if _, err := db.NewInsert().Model(&matches).Exec(ctx); err != nil {
		return fmt.Errorf("tournament.CreateBracket: matches: %w", err)
	}
	return nil
}

func (r *Impl) GetTournament(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) (*Tournament, error) {
	return r.getTournament(ctx, r.resolveDB(db), tournamentID, false)
}

func (r *Impl) GetTournamentForUpdate(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) (*Tournament, error) {
	return r.getTournament(ctx, r.resolveDB(db), tournamentID, true)
}

func (r *Impl) getTournament(ctx context.Context, db bun.IDB, tournamentID uuid.UUID, lock bool) (*Tournament, error) {
	t := new(Tournament)
	q := db.NewSelect().
		Model(t).
		Where("id = ?", tournamentID)
	if lock {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("tournament.GetTournament: %w", err)
	}
	return t, nil
}

func (r *Impl) GetTournamentBySeason(ctx context.Context, db bun.IDB, seasonID uuid.UUID) (*Tournament, error) {
	db = r.resolveDB(db)
	t := new(Tournament)
	err := db.NewSelect().
		Model(t).
		Where("season_id = ?", seasonID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("tournament.GetTournamentBySeason: %w", err)
	}
	return t, nil
}

func (r *Impl) ListTournaments(ctx context.Context, db bun.IDB, leagueID uuid.UUID) ([]Tournament, error) {
	db = r.resolveDB(db)
	var out []Tournament
	err := db.NewSelect().
		Model(&out).
		Where("league_id = ?", leagueID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("tournament.ListTournaments: %w", err)
	}
	return out, nil
}

func (r *Impl) UpdateTournament(ctx context.Context, db bun.IDB, tournament *Tournament) error {
	db = r.resolveDB(db)
	tournament.UpdatedAt = time.Now().UTC()
	result, err := db.NewUpdate().
		Model(tournament).
		Column("status", "champion_id", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("tournament.UpdateTournament: %w", err)
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

func (r *Impl) ListMatches(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]TournamentMatch, error) {
	db = r.resolveDB(db)
	var out []TournamentMatch
	err := db.NewSelect().
		Model(&out).
		Where("tournament_id = ?", tournamentID).
		Order("round DESC", "match_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("tournament.ListMatches: %w", err)
	}
	return out, nil
}

func (r *Impl) GetMatch(ctx context.Context, db bun.IDB, matchID uuid.UUID) (*TournamentMatch, error) {
	db = r.resolveDB(db)
	m := new(TournamentMatch)
	err := db.NewSelect().
		Model(m).
		Where("id = ?", matchID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("tournament.GetMatch: %w", err)
	}
	return m, nil
}

func (r *Impl) UpdateMatches(ctx context.Context, db bun.IDB, matches []TournamentMatch) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	for i := range matches {
		m := &matches[i]
		m.UpdatedAt = now
		result, err := db.NewUpdate().
			Model(m).
			Column("player_a_id", "player_b_id", "seed_a", "seed_b",
				"player_a_wins", "player_b_wins", "winner_id", "status", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("tournament.UpdateMatches: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("tournament.UpdateMatches: match %s: %w", m.ID, ErrNoRowsAffected)
		}
	}
	return nil
}

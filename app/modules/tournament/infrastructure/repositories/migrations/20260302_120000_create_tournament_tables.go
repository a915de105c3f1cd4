package tournamentmigrations

import (
	"context"
	"fmt"

	tournamentdb "github.com/Black-And-White-Club/scorebook/app/modules/tournament/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating tournaments and tournament_matches tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewCreateTable().Model((*tournamentdb.Tournament)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create tournaments table: %w", err)
			}
			if _, err := tx.NewCreateTable().Model((*tournamentdb.TournamentMatch)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create tournament_matches table: %w", err)
			}

			// next_match_id points into the same bracket, which is inserted in one statement.
			if _, err := tx.ExecContext(ctx, `
				ALTER TABLE tournament_matches
					ADD CONSTRAINT fk_tournament_matches_tournament
						FOREIGN KEY (tournament_id) REFERENCES tournaments(id) ON DELETE CASCADE,
					ADD CONSTRAINT fk_tournament_matches_next
						FOREIGN KEY (next_match_id) REFERENCES tournament_matches(id)
						DEFERRABLE INITIALLY DEFERRED;
				CREATE UNIQUE INDEX IF NOT EXISTS idx_tournament_matches_slot
					ON tournament_matches (tournament_id, round, match_number);
				CREATE UNIQUE INDEX IF NOT EXISTS idx_tournaments_season ON tournaments (season_id);
				CREATE INDEX IF NOT EXISTS idx_tournaments_league ON tournaments (league_id);
			`); err != nil {
				return fmt.Errorf("failed to add tournament constraints: %w", err)
			}

			fmt.Println("Tournament tables created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping tournament tables...")

		if _, err := db.NewDropTable().Model((*tournamentdb.TournamentMatch)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*tournamentdb.Tournament)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Tournament tables dropped successfully!")
		return nil
	})
}

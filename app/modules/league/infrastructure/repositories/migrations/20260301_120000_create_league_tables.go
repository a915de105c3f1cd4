package leaguemigrations

import (
	"context"
	"fmt"

	leaguedb "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating league tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			models := []any{
				(*leaguedb.League)(nil),
				(*leaguedb.Player)(nil),
				(*leaguedb.Season)(nil),
				(*leaguedb.Match)(nil),
				(*leaguedb.MatchParticipant)(nil),
				(*leaguedb.WeekAttendance)(nil),
			}
			for _, model := range models {
				if _, err := tx.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
					return fmt.Errorf("failed to create table for %T: %w", model, err)
				}
			}

			if _, err := tx.ExecContext(ctx, `
				ALTER TABLE players
					ADD CONSTRAINT fk_players_league FOREIGN KEY (league_id) REFERENCES leagues(id) ON DELETE CASCADE;
				ALTER TABLE seasons
					ADD CONSTRAINT fk_seasons_league FOREIGN KEY (league_id) REFERENCES leagues(id) ON DELETE CASCADE;
				ALTER TABLE matches
					ADD CONSTRAINT fk_matches_league FOREIGN KEY (league_id) REFERENCES leagues(id) ON DELETE CASCADE,
					ADD CONSTRAINT fk_matches_season FOREIGN KEY (season_id) REFERENCES seasons(id) ON DELETE SET NULL;
				ALTER TABLE match_participants
					ADD CONSTRAINT fk_match_participants_match FOREIGN KEY (match_id) REFERENCES matches(id) ON DELETE CASCADE,
					ADD CONSTRAINT fk_match_participants_player FOREIGN KEY (player_id) REFERENCES players(id);
				ALTER TABLE week_attendance
					ADD CONSTRAINT fk_week_attendance_season FOREIGN KEY (season_id) REFERENCES seasons(id) ON DELETE CASCADE,
					ADD CONSTRAINT fk_week_attendance_player FOREIGN KEY (player_id) REFERENCES players(id);
			`); err != nil {
				return fmt.Errorf("failed to add league foreign keys: %w", err)
			}

			// One active season per league.
			if _, err := tx.ExecContext(ctx, `
				CREATE UNIQUE INDEX IF NOT EXISTS idx_seasons_one_active
					ON seasons (league_id) WHERE status = 'active';
				CREATE INDEX IF NOT EXISTS idx_players_league_id ON players (league_id);
				CREATE INDEX IF NOT EXISTS idx_matches_league_season ON matches (league_id, season_id);
				CREATE INDEX IF NOT EXISTS idx_matches_season_week ON matches (season_id, week);
				CREATE INDEX IF NOT EXISTS idx_match_participants_player ON match_participants (player_id);
			`); err != nil {
				return fmt.Errorf("failed to create league indexes: %w", err)
			}

			fmt.Println("League tables created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping league tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			models := []any{
				(*leaguedb.WeekAttendance)(nil),
				(*leaguedb.MatchParticipant)(nil),
				(*leaguedb.Match)(nil),
				(*leaguedb.Season)(nil),
				(*leaguedb.Player)(nil),
				(*leaguedb.League)(nil),
			}
			for _, model := range models {
				if _, err := tx.NewDropTable().Model(model).IfExists().Cascade().Exec(ctx); err != nil {
					return fmt.Errorf("failed to drop table for %T: %w", model, err)
				}
			}
			fmt.Println("League tables dropped successfully!")
			return nil
		})
	})
}

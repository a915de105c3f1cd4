//go:build integration

package testutils

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// appTables lists every application table, children first.
var appTables = []string{
	"tournament_matches",
	"tournaments",
	"week_attendance",
	"match_participants",
	"matches",
	"seasons",
	"players",
	"leagues",
}

// CleanupDatabase truncates the application tables and the River job table.
func CleanupDatabase(ctx context.Context, db *bun.DB) error {
	for _, table := range appTables {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return CleanupRiverJobs(ctx, db)
}

// CleanupRiverJobs deletes all jobs from the River queue.
func CleanupRiverJobs(ctx context.Context, db *bun.DB) error {
	_, err := db.ExecContext(ctx, "DELETE FROM river_job")
	return err
}

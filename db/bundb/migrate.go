package bundb

import (
	"context"
	"fmt"

	leaguemigrations "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/repositories/migrations"
	tournamentmigrations "github.com/Black-And-White-Club/scorebook/app/modules/tournament/infrastructure/repositories/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// ModuleMigrator pairs a module name with its migrator. Each module keeps its own
// migrations table.
type ModuleMigrator struct {
	Name     string
	Migrator *migrate.Migrator
}

// Migrators lists the module migrators in the order they are applied.
func Migrators(db *bun.DB) []ModuleMigrator {
	return []ModuleMigrator{
		{
			Name: "league",
			Migrator: migrate.NewMigrator(db, leaguemigrations.Migrations,
				migrate.WithTableName("league_migrations"),
				migrate.WithLocksTableName("league_migration_locks"),
			),
		},
		{
			Name: "tournament",
			Migrator: migrate.NewMigrator(db, tournamentmigrations.Migrations,
				migrate.WithTableName("tournament_migrations"),
				migrate.WithLocksTableName("tournament_migration_locks"),
			),
		},
	}
}

// FindMigrator returns the migrator of one module.
func FindMigrator(migrators []ModuleMigrator, name string) (*migrate.Migrator, error) {
	for _, m := range migrators {
		if m.Name == name {
			return m.Migrator, nil
		}
	}
	return nil, fmt.Errorf("invalid module name: %s", name)
}

// MigrateModule creates the module's migration tables when missing and applies pending
// migrations under the module's lock.
func MigrateModule(ctx context.Context, m ModuleMigrator) (*migrate.MigrationGroup, error) {
	if err := m.Migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to init %s migrations: %w", m.Name, err)
	}
	if err := m.Migrator.Lock(ctx); err != nil {
		return nil, fmt.Errorf("failed to lock %s migrations: %w", m.Name, err)
	}
	group, err := m.Migrator.Migrate(ctx)
	unlockErr := m.Migrator.Unlock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run %s migrations: %w", m.Name, err)
	}
	if unlockErr != nil {
		return nil, fmt.Errorf("failed to unlock %s migrations: %w", m.Name, unlockErr)
	}
	return group, nil
}

// MigrateAll applies every module's migrations, then River's.
func MigrateAll(ctx context.Context, db *bun.DB, dsn string) error {
	for _, m := range Migrators(db) {
		if _, err := MigrateModule(ctx, m); err != nil {
			return err
		}
	}
	_, err := MigrateRiver(ctx, dsn)
	return err
}

// MigrateRiver applies the job queue schema and returns the versions it ran.
func MigrateRiver(ctx context.Context, dsn string) ([]int, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool for River migrations: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create River migrator: %w", err)
	}
	res, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{})
	if err != nil {
		return nil, fmt.Errorf("failed to run River migrations: %w", err)
	}

	versions := make([]int, 0, len(res.Versions))
	for _, v := range res.Versions {
		versions = append(versions, v.Version)
	}
	return versions, nil
}

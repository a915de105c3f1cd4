package main

import (
	"fmt"
	"strings"

	"github.com/Black-And-White-Club/scorebook/db/bundb"
	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"
)

func migrateCommand() *cli.Command {
	var (
		db        *bun.DB
		dsn       string
		migrators []bundb.ModuleMigrator
	)

	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Before: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			dsn = cfg.Postgres.DSN
			db = bundb.NewDB(dsn)
			migrators = bundb.Migrators(db)
			return nil
		},
		After: func(c *cli.Context) error {
			if db != nil {
				return db.Close()
			}
			return nil
		},
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					for _, m := range migrators {
						fmt.Fprintf(c.App.Writer, "Initializing migrations for module: %s\n", m.Name)
						if err := m.Migrator.Init(c.Context); err != nil {
							return err
						}
					}
					return nil
				},
			},
			{
				Name:  "up",
				Usage: "apply module and job queue migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "skip-river", Usage: "leave the job queue schema untouched"},
				},
				Action: func(c *cli.Context) error {
					for _, m := range migrators {
						fmt.Fprintf(c.App.Writer, "Running migrations for module: %s\n", m.Name)
						group, err := bundb.MigrateModule(c.Context, m)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Fprintf(c.App.Writer, "No new migrations to run for module: %s\n", m.Name)
						} else {
							fmt.Fprintf(c.App.Writer, "Migrated module: %s to %s\n", m.Name, group)
						}
					}
					if c.Bool("skip-river") {
						return nil
					}

					versions, err := bundb.MigrateRiver(c.Context, dsn)
					if err != nil {
						return err
					}
					if len(versions) == 0 {
						fmt.Fprintln(c.App.Writer, "No new migrations to run for module: river")
					}
					for _, v := range versions {
						fmt.Fprintf(c.App.Writer, "Migrated module: river to version %d\n", v)
					}
					return nil
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group of each module",
				Action: func(c *cli.Context) error {
					for i := len(migrators) - 1; i >= 0; i-- {
						m := migrators[i]
						fmt.Fprintf(c.App.Writer, "Rolling back migrations for module: %s\n", m.Name)
						group, err := m.Migrator.Rollback(c.Context)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Fprintf(c.App.Writer, "No groups to roll back for module: %s\n", m.Name)
						} else {
							fmt.Fprintf(c.App.Writer, "Rolled back module: %s to %s\n", m.Name, group)
						}
					}
					return nil
				},
			},
			{
				Name:      "create",
				Usage:     "create a Go migration for a module",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					migrator, err := bundb.FindMigrator(migrators, c.Args().First())
					if err != nil {
						return err
					}
					name := strings.Join(c.Args().Tail(), "_")
					if name == "" {
						return fmt.Errorf("migration name is required")
					}
					mf, err := migrator.CreateGoMigration(c.Context, name)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Created migration for module %s: %s (%s)\n", c.Args().First(), mf.Name, mf.Path)
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					for _, m := range migrators {
						ms, err := m.Migrator.MigrationsWithStatus(c.Context)
						if err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "Migrations for module: %s\n", m.Name)
						fmt.Fprintf(c.App.Writer, "  Applied: %s\n", ms.Applied())
						fmt.Fprintf(c.App.Writer, "  Unapplied: %s\n", ms.Unapplied())
					}
					return nil
				},
			},
		},
	}
}

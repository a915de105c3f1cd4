package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Black-And-White-Club/scorebook/app"
	"github.com/Black-And-White-Club/scorebook/config"
	"github.com/Black-And-White-Club/scorebook/pkg/observability"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:    "scorebook",
		Usage:   "league standings, weekly schedules and playoff brackets",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the YAML config file",
				EnvVars: []string{"SCOREBOOK_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			seasonCommand(),
			standingsCommand(),
			tokenCommand(),
		},
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API, event handlers and background jobs",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			obs, err := observability.Init(ctx, config.ToObsConfig(cfg, version))
			if err != nil {
				return fmt.Errorf("failed to initialize observability: %w", err)
			}
			logger := obs.Provider.Logger

			application, err := app.NewApp(ctx, cfg, obs)
			if err != nil {
				_ = obs.Provider.Shutdown(context.Background())
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			runErr := application.Run(ctx)
			if runErr != nil {
				logger.Error("Application stopped with error", "error", runErr)
			}

			done := make(chan struct{})
			go func() {
				if err := application.Close(); err != nil {
					logger.Error("Error during shutdown", "error", err)
				}
				close(done)
			}()
			select {
			case <-done:
				logger.Info("Shutdown complete")
			case <-time.After(30 * time.Second):
				logger.Warn("Shutdown timed out")
			}
			return runErr
		},
	}
}

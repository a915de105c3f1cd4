package main

import (
	"fmt"
	"log/slog"
	"os"

	appeventbus "github.com/Black-And-White-Club/scorebook/app/eventbus"
	leagueservice "github.com/Black-And-White-Club/scorebook/app/modules/league/application"
	leaguedb "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/repositories"
	"github.com/Black-And-White-Club/scorebook/config"
	"github.com/Black-And-White-Club/scorebook/db/bundb"
	"github.com/Black-And-White-Club/scorebook/pkg/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

// cliSession is a league service bound to the configured database. Events are published to
// NATS when it is configured so running servers see changes made from the command line.
type cliSession struct {
	cfg     *config.Config
	logger  *slog.Logger
	service *leagueservice.LeagueService
	close   func()
}

func openSession(c *cli.Context) (*cliSession, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	ctx := c.Context
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	obs := observability.NewNoop()

	db, err := bundb.Open(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, err
	}

	var publisher message.Publisher
	closers := []func(){func() { _ = db.Close() }}
	if cfg.NATS.URL != "" {
		bus, err := appeventbus.NewEventBus(ctx, cfg.NATS.URL, logger, "scorebook-cli")
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		publisher = bus
		closers = append(closers, func() { _ = bus.Close() })
	}

	service := leagueservice.NewLeagueService(
		leaguedb.NewRepository(db),
		logger,
		obs.Registry.LeagueMetrics,
		obs.Registry.Tracer,
		db,
		publisher,
	)

	return &cliSession{
		cfg:     cfg,
		logger:  logger,
		service: service,
		close: func() {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		},
	}, nil
}

func withSession(action func(c *cli.Context, s *cliSession) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		s, err := openSession(c)
		if err != nil {
			return err
		}
		defer s.close()
		return action(c, s)
	}
}

func uuidFlag(c *cli.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.String(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("--%s: %w", name, err)
	}
	return id, nil
}

func optionalUUIDFlag(c *cli.Context, name string) (*uuid.UUID, error) {
	if !c.IsSet(name) {
		return nil, nil
	}
	id, err := uuidFlag(c, name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

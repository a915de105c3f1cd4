//go:build integration

package testutils

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"

	appeventbus "github.com/Black-And-White-Club/scorebook/app/eventbus"
	"github.com/Black-And-White-Club/scorebook/config"
	"github.com/Black-And-White-Club/scorebook/db/bundb"
	"github.com/Black-And-White-Club/scorebook/integration_tests/containers"
	"github.com/Black-And-White-Club/scorebook/pkg/eventbus"
)

// TestEnvironment holds the containers and connections shared by one integration package.
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	NatsContainer testcontainers.Container
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Config        *config.Config
	Logger        *slog.Logger
}

// NewTestEnvironment starts Postgres and NATS, applies every migration and provisions the
// event streams.
func NewTestEnvironment(t *testing.T) (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())
	env := &TestEnvironment{
		Ctx:           ctx,
		CancelContext: cancel,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	pgContainer, pgConnStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup postgres container: %w", err)
	}
	env.PgContainer = pgContainer

	natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to setup nats container: %w", err)
	}
	env.NatsContainer = natsContainer

	env.Config = &config.Config{
		Postgres: config.PostgresConfig{DSN: pgConnStr},
		NATS:     config.NATSConfig{URL: natsURL},
	}

	db, err := bundb.Open(ctx, pgConnStr)
	if err != nil {
		env.Cleanup()
		return nil, err
	}
	env.DB = db

	if err := bundb.MigrateAll(ctx, db, pgConnStr); err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	bus, err := appeventbus.NewEventBus(ctx, natsURL, env.Logger, "scorebook-test")
	if err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to create EventBus: %w", err)
	}
	env.EventBus = bus
	if err := appeventbus.InitializeStreams(ctx, bus, env.Logger); err != nil {
		env.Cleanup()
		return nil, err
	}

	return env, nil
}

// Reset empties every application table and the job queue.
func (env *TestEnvironment) Reset(ctx context.Context) error {
	return CleanupDatabase(ctx, env.DB)
}

// Cleanup tears down all resources created for testing.
func (env *TestEnvironment) Cleanup() {
	if env.CancelContext != nil {
		env.CancelContext()
	}
	if env.EventBus != nil {
		if err := env.EventBus.Close(); err != nil {
			log.Printf("Error closing EventBus: %v", err)
		}
	}
	if env.DB != nil {
		_ = env.DB.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if env.NatsContainer != nil {
		if err := env.NatsContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating NATS container: %v", err)
		}
	}
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating Postgres container: %v", err)
		}
	}
}

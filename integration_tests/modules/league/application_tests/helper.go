//go:build integration

package leagueintegrationtests

import (
	"context"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	leagueservice "github.com/Black-And-White-Club/scorebook/app/modules/league/application"
	leaguedb "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/repositories"
	"github.com/Black-And-White-Club/scorebook/integration_tests/testutils"
	"github.com/Black-And-White-Club/scorebook/pkg/observability/metrics"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	testEnv     *testutils.TestEnvironment
	testEnvOnce sync.Once
	testEnvErr  error
)

type TestDeps struct {
	Ctx     context.Context
	Env     *testutils.TestEnvironment
	BunDB   *bun.DB
	Service *leagueservice.LeagueService
	Data    *testutils.TestDataGenerator
}

func GetTestEnv(t *testing.T) *testutils.TestEnvironment {
	testEnvOnce.Do(func() {
		log.Println("Initializing league test environment...")
		testEnv, testEnvErr = testutils.NewTestEnvironment(t)
	})
	require.NoError(t, testEnvErr, "league test environment initialization failed")
	return testEnv
}

func SetupTestLeagueService(t *testing.T) TestDeps {
	t.Helper()
	env := GetTestEnv(t)

	resetCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, env.Reset(resetCtx))

	service := leagueservice.NewLeagueService(
		leaguedb.NewRepository(env.DB),
		env.Logger,
		metrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test_league_service"),
		env.DB,
		env.EventBus,
	)

	return TestDeps{
		Ctx:     env.Ctx,
		Env:     env,
		BunDB:   env.DB,
		Service: service,
		Data:    testutils.NewTestDataGenerator(42),
	}
}

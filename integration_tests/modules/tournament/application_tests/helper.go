//go:build integration

package tournamentintegrationtests

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	leagueservice "github.com/Black-And-White-Club/scorebook/app/modules/league/application"
	leaguedb "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/repositories"
	tournamentservice "github.com/Black-And-White-Club/scorebook/app/modules/tournament/application"
	tournamentdb "github.com/Black-And-White-Club/scorebook/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/scorebook/integration_tests/testutils"
	"github.com/Black-And-White-Club/scorebook/pkg/observability/metrics"
)

var (
	testEnv     *testutils.TestEnvironment
	testEnvOnce sync.Once
	testEnvErr  error
)

type TestDeps struct {
	Ctx         context.Context
	Env         *testutils.TestEnvironment
	Leagues     *leagueservice.LeagueService
	Tournaments *tournamentservice.TournamentService
	Data        *testutils.TestDataGenerator
}

func GetTestEnv(t *testing.T) *testutils.TestEnvironment {
	testEnvOnce.Do(func() {
		testEnv, testEnvErr = testutils.NewTestEnvironment(t)
	})
	require.NoError(t, testEnvErr, "tournament test environment initialization failed")
	return testEnv
}

func SetupTestTournamentService(t *testing.T) TestDeps {
	t.Helper()
	env := GetTestEnv(t)

	resetCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, env.Reset(resetCtx))

	tracer := noop.NewTracerProvider().Tracer("test_tournament_service")
	leagues := leagueservice.NewLeagueService(leaguedb.NewRepository(env.DB), env.Logger, metrics.NewNoop(), tracer, env.DB, nil)
	tournaments := tournamentservice.NewTournamentService(
		tournamentdb.NewRepository(env.DB),
		leagues,
		env.Logger,
		metrics.NewNoop(),
		tracer,
		env.DB,
		env.EventBus,
	)

	return TestDeps{
		Ctx:         env.Ctx,
		Env:         env,
		Leagues:     leagues,
		Tournaments: tournaments,
		Data:        testutils.NewTestDataGenerator(7),
	}
}

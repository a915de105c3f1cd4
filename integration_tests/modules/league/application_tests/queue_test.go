//go:build integration

package leagueintegrationtests

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	leaguequeue "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/queue"
	"github.com/Black-And-White-Club/scorebook/pkg/observability/metrics"
)

func TestWeekRolloverQueue_Integration(t *testing.T) {
	deps := SetupTestLeagueService(t)
	ctx := deps.Ctx
	svc := deps.Service

	first := deps.Data.Season(t, ctx, svc, deps.Data.League(t, ctx, svc), 6)
	second := deps.Data.Season(t, ctx, svc, deps.Data.League(t, ctx, svc), 6)

	queue, err := leaguequeue.NewService(ctx, deps.Env.Config.Postgres.DSN, svc, time.Hour, deps.Env.Logger, metrics.NewNoop())
	require.NoError(t, err)
	require.NoError(t, queue.Start(ctx))
	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue.Stop(stopCtx)
	})

	require.NoError(t, queue.TriggerRollover(ctx))

	for _, seasonID := range []uuid.UUID{first.ID, second.ID} {
		assert.Eventually(t, func() bool {
			s, err := svc.GetSeason(ctx, seasonID)
			return err == nil && s.CurrentWeek == 2
		}, 20*time.Second, 200*time.Millisecond, "season %s was not advanced", seasonID)
	}

	// Each rollover moves a season exactly one week.
	require.NoError(t, queue.TriggerRollover(ctx))
	assert.Eventually(t, func() bool {
		s, err := svc.GetSeason(ctx, first.ID)
		return err == nil && s.CurrentWeek == 3
	}, 20*time.Second, 200*time.Millisecond)
	time.Sleep(time.Second)
	s, err := svc.GetSeason(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, s.CurrentWeek)
}

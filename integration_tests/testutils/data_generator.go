//go:build integration

package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"

	leagueservice "github.com/Black-And-White-Club/scorebook/app/modules/league/application"
	leaguedomain "github.com/Black-And-White-Club/scorebook/app/modules/league/domain"
)

// TestDataGenerator creates leagues, rosters and seasons through the league service.
type TestDataGenerator struct {
	faker *gofakeit.Faker
}

// NewTestDataGenerator returns a generator; a seed makes names reproducible.
func NewTestDataGenerator(seed ...uint64) *TestDataGenerator {
	s := uint64(time.Now().UnixNano())
	if len(seed) > 0 {
		s = seed[0]
	}
	return &TestDataGenerator{faker: gofakeit.New(s)}
}

// League creates a round-robin pool league.
func (g *TestDataGenerator) League(t *testing.T, ctx context.Context, svc leagueservice.Service) leaguedomain.League {
	t.Helper()
	league, err := svc.CreateLeague(ctx, g.faker.Company()+" League", leaguedomain.GameTypePool, leaguedomain.FormatRoundRobin)
	require.NoError(t, err)
	return league
}

// Roster registers n players with generated names.
func (g *TestDataGenerator) Roster(t *testing.T, ctx context.Context, svc leagueservice.Service, league leaguedomain.League, n int) []leaguedomain.Player {
	t.Helper()
	players := make([]leaguedomain.Player, 0, n)
	for range n {
		p, err := svc.RegisterPlayer(ctx, league.ID, g.faker.FirstName(), g.faker.LastName())
		require.NoError(t, err)
		players = append(players, p)
	}
	return players
}

// Season starts a season that began this week.
func (g *TestDataGenerator) Season(t *testing.T, ctx context.Context, svc leagueservice.Service, league leaguedomain.League, weeks int) leaguedomain.Season {
	t.Helper()
	season, err := svc.StartSeason(ctx, league.ID, g.faker.Color()+" Season", time.Now().UTC().Truncate(24*time.Hour), weeks)
	require.NoError(t, err)
	return season
}

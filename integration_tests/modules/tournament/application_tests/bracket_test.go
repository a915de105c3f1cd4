//go:build integration

package tournamentintegrationtests

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	leagueservice "github.com/Black-And-White-Club/scorebook/app/modules/league/application"
	leaguedomain "github.com/Black-And-White-Club/scorebook/app/modules/league/domain"
	tournamentservice "github.com/Black-And-White-Club/scorebook/app/modules/tournament/application"
	tournamentdomain "github.com/Black-And-White-Club/scorebook/app/modules/tournament/domain"
)

func readyMatch(t *testing.T, b tournamentdomain.Bracket, round int) tournamentdomain.BracketMatch {
	t.Helper()
	for _, m := range b.Round(round) {
		if m.Ready() {
			return m
		}
	}
	t.Fatalf("no ready match in round %d", round)
	return tournamentdomain.BracketMatch{}
}

func TestPlayoffBracket_Integration(t *testing.T) {
	deps := SetupTestTournamentService(t)
	ctx := deps.Ctx
	leagues := deps.Leagues

	league := deps.Data.League(t, ctx, leagues)
	players := deps.Data.Roster(t, ctx, leagues, league, 3)
	season := deps.Data.Season(t, ctx, leagues, league, 4)

	win := func(winner, loser leaguedomain.Player) {
		_, err := leagues.RecordMatch(ctx, leagueservice.RecordMatchCommand{
			LeagueID:  league.ID,
			SeasonID:  &season.ID,
			Completed: true,
			PlayerIDs: []uuid.UUID{winner.ID, loser.ID},
			WinnerIDs: []uuid.UUID{winner.ID},
		})
		require.NoError(t, err)
	}
	top, second, third := players[0], players[1], players[2]
	win(top, second)
	win(top, third)
	win(second, third)

	t.Run("active season cannot seed a bracket", func(t *testing.T) {
		_, err := deps.Tournaments.CreateTournament(ctx, season.ID, "", 0)
		assert.True(t, errors.Is(err, tournamentservice.ErrSeasonNotCompleted))
	})

	_, err := leagues.EndSeason(ctx, season.ID)
	require.NoError(t, err)

	bracket, err := deps.Tournaments.CreateTournament(ctx, season.ID, "", 0)
	require.NoError(t, err)
	assert.Equal(t, season.Name+" Playoffs", bracket.Tournament.Name)
	assert.Equal(t, 2, bracket.Rounds())

	t.Run("one tournament per season", func(t *testing.T) {
		_, err := deps.Tournaments.CreateTournament(ctx, season.ID, "Again", 0)
		assert.True(t, errors.Is(err, tournamentservice.ErrTournamentExists))
	})

	// The top seed has a bye straight into the final.
	final, ok := bracket.Match(1, 0)
	require.True(t, ok)
	require.NotNil(t, final.PlayerA)
	assert.Equal(t, top.ID, *final.PlayerA)
	assert.Nil(t, final.PlayerB)
	assert.Equal(t, tournamentdomain.BestOfFive, final.SeriesFormat)

	semi := readyMatch(t, bracket, 2)
	assert.Equal(t, tournamentdomain.BestOfThree, semi.SeriesFormat)
	assert.ElementsMatch(t, []uuid.UUID{second.ID, third.ID}, []uuid.UUID{*semi.PlayerA, *semi.PlayerB})

	got, err := deps.Tournaments.RecordGame(ctx, semi.ID, second.ID)
	require.NoError(t, err)
	assert.False(t, got.Outcome.SeriesCompleted)

	got, err = deps.Tournaments.RecordGame(ctx, semi.ID, second.ID)
	require.NoError(t, err)
	assert.True(t, got.Outcome.SeriesCompleted)
	assert.False(t, got.Outcome.TournamentCompleted)

	t.Run("decided series rejects more games", func(t *testing.T) {
		_, err := deps.Tournaments.RecordGame(ctx, semi.ID, third.ID)
		assert.True(t, errors.Is(err, tournamentdomain.ErrMatchCompleted))
	})

	persisted, err := deps.Tournaments.GetBracket(ctx, bracket.Tournament.ID)
	require.NoError(t, err)
	final = readyMatch(t, persisted, 1)
	assert.ElementsMatch(t, []uuid.UUID{top.ID, second.ID}, []uuid.UUID{*final.PlayerA, *final.PlayerB})

	for i := range 3 {
		got, err = deps.Tournaments.RecordGame(ctx, final.ID, top.ID)
		require.NoError(t, err)
		assert.Equal(t, i == 2, got.Outcome.TournamentCompleted)
	}

	require.NotNil(t, got.Bracket.Tournament.ChampionID)
	assert.Equal(t, top.ID, *got.Bracket.Tournament.ChampionID)
	assert.Equal(t, tournamentdomain.TournamentStatusCompleted, got.Bracket.Tournament.Status)

	list, err := deps.Tournaments.ListTournaments(ctx, league.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, tournamentdomain.TournamentStatusCompleted, list[0].Status)
	require.NotNil(t, list[0].ChampionID)
	assert.Equal(t, top.ID, *list[0].ChampionID)
}

func TestMaxSeedsTruncatesField_Integration(t *testing.T) {
	deps := SetupTestTournamentService(t)
	ctx := deps.Ctx

	league := deps.Data.League(t, ctx, deps.Leagues)
	deps.Data.Roster(t, ctx, deps.Leagues, league, 6)
	season := deps.Data.Season(t, ctx, deps.Leagues, league, 2)
	_, err := deps.Leagues.EndSeason(ctx, season.ID)
	require.NoError(t, err)

	bracket, err := deps.Tournaments.CreateTournament(ctx, season.ID, "Top Four", 4)
	require.NoError(t, err)
	assert.Equal(t, "Top Four", bracket.Tournament.Name)
	assert.Equal(t, 2, bracket.Rounds())
	assert.Len(t, bracket.Round(2), 2)
	for _, m := range bracket.Round(2) {
		assert.True(t, m.Ready(), "four seeds fill every first-round slot")
	}
}

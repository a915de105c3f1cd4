package leaguedomain

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundRobin() League {
	return League{ID: uuid.New(), Name: "Tuesday Pool", GameType: GameTypePool, Format: FormatRoundRobin}
}

func seasonAt(week int) Season {
	return Season{ID: testSeasonID, WeeksDuration: 10, CurrentWeek: week, Status: SeasonStatusActive}
}

func TestScheduledMatches(t *testing.T) {
	adams := newPlayer("Ann", "Adams")
	baker := newPlayer("Ben", "Baker")
	clark := newPlayer("Cal", "Clark")
	roster := []Player{clark, baker, adams}

	tests := []struct {
		name    string
		league  League
		present []uuid.UUID
		matches []Match
		want    []Pairing
	}{
		{
			name:    "non round robin league has nothing to schedule",
			league:  League{Format: FormatOpen},
			present: ids(adams, baker, clark),
			want:    []Pairing{},
		},
		{
			name:    "single attendee has nothing to schedule",
			league:  roundRobin(),
			present: ids(adams),
			want:    []Pairing{},
		},
		{
			name:    "pairs follow name order",
			league:  roundRobin(),
			present: ids(clark, adams, baker),
			want: []Pairing{
				{PlayerID: adams.ID, OpponentID: baker.ID, PlayerName: "Ann Adams", OpponentName: "Ben Baker", Week: 2},
				{PlayerID: adams.ID, OpponentID: clark.ID, PlayerName: "Ann Adams", OpponentName: "Cal Clark", Week: 2},
				{PlayerID: baker.ID, OpponentID: clark.ID, PlayerName: "Ben Baker", OpponentName: "Cal Clark", Week: 2},
			},
		},
		{
			name:    "recorded pair is no longer due in either order",
			league:  roundRobin(),
			present: ids(adams, baker, clark),
			matches: []Match{inWeek(win(clark, adams), 2)},
			want: []Pairing{
				{PlayerID: adams.ID, OpponentID: baker.ID, PlayerName: "Ann Adams", OpponentName: "Ben Baker", Week: 2},
				{PlayerID: baker.ID, OpponentID: clark.ID, PlayerName: "Ben Baker", OpponentName: "Cal Clark", Week: 2},
			},
		},
		{
			name:    "matches from another week do not count",
			league:  roundRobin(),
			present: ids(adams, baker),
			matches: []Match{inWeek(win(adams, baker), 1)},
			want: []Pairing{
				{PlayerID: adams.ID, OpponentID: baker.ID, PlayerName: "Ann Adams", OpponentName: "Ben Baker", Week: 2},
			},
		},
		{
			name:    "pending match still satisfies the pairing",
			league:  roundRobin(),
			present: ids(adams, baker),
			matches: func() []Match {
				m := inWeek(win(adams, baker), 2)
				m.Status = MatchStatusInProgress
				m.Participants[0].Winner = false
				return []Match{m}
			}(),
			want: []Pairing{},
		},
	}

	t.Run("lowercase surnames sort with their letter", func(t *testing.T) {
		devries := newPlayer("Dirk", "de Vries")
		got := ScheduledMatches(ScheduleInput{
			League:  roundRobin(),
			Season:  seasonAt(2),
			Roster:  []Player{clark, devries, adams},
			Present: ids(clark, devries, adams),
		})
		want := []Pairing{
			{PlayerID: adams.ID, OpponentID: clark.ID, PlayerName: "Ann Adams", OpponentName: "Cal Clark", Week: 2},
			{PlayerID: adams.ID, OpponentID: devries.ID, PlayerName: "Ann Adams", OpponentName: "Dirk de Vries", Week: 2},
			{PlayerID: clark.ID, OpponentID: devries.ID, PlayerName: "Cal Clark", OpponentName: "Dirk de Vries", Week: 2},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ScheduledMatches mismatch (-want +got):\n%s", diff)
		}
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScheduledMatches(ScheduleInput{
				League:  tt.league,
				Season:  seasonAt(2),
				Roster:  roster,
				Present: tt.present,
				Matches: tt.matches,
			})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ScheduledMatches mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScheduledMatchesCompleteness(t *testing.T) {
	faker := gofakeit.New(7)
	league := roundRobin()

	for n := 2; n <= 9; n++ {
		roster := make([]Player, n)
		for i := range roster {
			roster[i] = Player{ID: uuid.New(), GivenName: faker.FirstName(), Surname: faker.LastName()}
		}
		in := ScheduleInput{League: league, Season: seasonAt(1), Roster: roster, Present: ids(roster...)}

		due := ScheduledMatches(in)
		require.Len(t, due, n*(n-1)/2, "n=%d", n)

		seen := make(map[pairKey]bool)
		for _, p := range due {
			key := makePairKey(p.Week, p.PlayerID, p.OpponentID)
			assert.False(t, seen[key], "pair listed twice")
			seen[key] = true
		}

		first := due[faker.Number(0, len(due)-1)]
		in.Matches = []Match{inWeek(Match{
			Status:       MatchStatusCompleted,
			Participants: []Participant{{PlayerID: first.OpponentID, Winner: true}, {PlayerID: first.PlayerID}},
		}, 1)}

		after := ScheduledMatches(in)
		assert.Len(t, after, n*(n-1)/2-1, "n=%d", n)
		for _, p := range after {
			assert.NotEqual(t, makePairKey(1, first.PlayerID, first.OpponentID), makePairKey(p.Week, p.PlayerID, p.OpponentID))
		}
	}
}

func TestMakeupMatches(t *testing.T) {
	pat := newPlayer("Pat", "Price")
	quinn := newPlayer("Quinn", "Quade")
	rae := newPlayer("Rae", "Reed")
	roster := []Player{pat, quinn, rae}

	t.Run("absent week produces one obligation per present player", func(t *testing.T) {
		in := ScheduleInput{
			League:  roundRobin(),
			Season:  seasonAt(3),
			Roster:  roster,
			Present: ids(pat, quinn),
			Attendance: map[int][]uuid.UUID{
				1: ids(pat, quinn),
				2: ids(quinn),
			},
		}

		got := MakeupMatches(in)
		want := []Pairing{
			{PlayerID: pat.ID, OpponentID: quinn.ID, PlayerName: "Pat Price", OpponentName: "Quinn Quade", Week: 2, IsMakeup: true},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("MakeupMatches mismatch (-want +got):\n%s", diff)
		}

		makeup := inWeek(win(quinn, pat), 2)
		makeup.IsMakeup = true
		in.Matches = []Match{makeup}
		assert.Empty(t, MakeupMatches(in))
	})

	t.Run("each missed week is its own obligation", func(t *testing.T) {
		in := ScheduleInput{
			League:  roundRobin(),
			Season:  seasonAt(4),
			Roster:  roster,
			Present: ids(pat, quinn, rae),
			Attendance: map[int][]uuid.UUID{
				1: ids(quinn, rae),
				2: ids(quinn),
				3: ids(pat, quinn, rae),
			},
		}

		got := MakeupMatches(in)
		want := []Pairing{
			{PlayerID: pat.ID, OpponentID: quinn.ID, PlayerName: "Pat Price", OpponentName: "Quinn Quade", Week: 1, IsMakeup: true},
			{PlayerID: pat.ID, OpponentID: rae.ID, PlayerName: "Pat Price", OpponentName: "Rae Reed", Week: 1, IsMakeup: true},
			{PlayerID: pat.ID, OpponentID: quinn.ID, PlayerName: "Pat Price", OpponentName: "Quinn Quade", Week: 2, IsMakeup: true},
			{PlayerID: rae.ID, OpponentID: quinn.ID, PlayerName: "Rae Reed", OpponentName: "Quinn Quade", Week: 2, IsMakeup: true},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("MakeupMatches mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("players absent from the current week owe nothing yet", func(t *testing.T) {
		in := ScheduleInput{
			League:     roundRobin(),
			Season:     seasonAt(2),
			Roster:     roster,
			Present:    ids(quinn, rae),
			Attendance: map[int][]uuid.UUID{1: ids(quinn, rae)},
		}
		assert.Empty(t, MakeupMatches(in))
	})

	t.Run("open format yields nothing", func(t *testing.T) {
		in := ScheduleInput{
			League:     League{Format: FormatOpen},
			Season:     seasonAt(3),
			Roster:     roster,
			Present:    ids(pat, quinn),
			Attendance: map[int][]uuid.UUID{2: ids(quinn)},
		}
		assert.Empty(t, MakeupMatches(in))
	})
}

func TestScheduleAfterDeletion(t *testing.T) {
	adams := newPlayer("Ann", "Adams")
	baker := newPlayer("Ben", "Baker")
	in := ScheduleInput{
		League:  roundRobin(),
		Season:  seasonAt(1),
		Roster:  []Player{adams, baker},
		Present: ids(adams, baker),
		Matches: []Match{inWeek(win(adams, baker), 1)},
	}
	require.Empty(t, ScheduledMatches(in))

	in.Matches = nil
	assert.Len(t, ScheduledMatches(in), 1)
}

package leaguedomain

import (
	"github.com/google/uuid"
)

var testSeasonID = uuid.MustParse("6f1f5d2e-9d43-4c36-9a39-2d1c1c0e5a10")

func newPlayer(given, surname string) Player {
	return Player{
		ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte(given+" "+surname)),
		GivenName: given,
		Surname:   surname,
	}
}

// win builds a completed, decided match where winner beat loser.
func win(winner, loser Player) Match {
	return Match{
		ID:     uuid.New(),
		Status: MatchStatusCompleted,
		Participants: []Participant{
			{PlayerID: winner.ID, Winner: true},
			{PlayerID: loser.ID},
		},
	}
}

// inWeek tags m with the shared test season and week w.
func inWeek(m Match, w int) Match {
	season := testSeasonID
	m.SeasonID = &season
	m.Week = &w
	return m
}

func ids(players ...Player) []uuid.UUID {
	out := make([]uuid.UUID, len(players))
	for i, p := range players {
		out[i] = p.ID
	}
	return out
}

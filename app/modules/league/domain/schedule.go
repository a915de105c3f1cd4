package leaguedomain

import (
	"slices"

	"github.com/google/uuid"
)

// ScheduleInput is everything the round-robin scheduler reads for one season.
type ScheduleInput struct {
	League  League
	Season  Season
	Roster  []Player
	Present []uuid.UUID
	// Attendance holds the recorded sets for earlier weeks, keyed by week number.
	Attendance map[int][]uuid.UUID
	Matches    []Match
}

// ScheduledMatches returns the pairings among this week's attendees that have no match
// recorded for the season's current week yet. Pairs follow name order: the player listed
// first always sorts before the opponent.
func ScheduledMatches(in ScheduleInput) []Pairing {
	attendees := in.attendees()
	if in.League.Format != FormatRoundRobin || len(attendees) < 2 {
		return []Pairing{}
	}

	played := newPairIndex(in.Matches, in.Season.ID)
	week := in.Season.CurrentWeek

	due := make([]Pairing, 0, len(attendees)*(len(attendees)-1)/2)
	for i := 0; i < len(attendees); i++ {
		for j := i + 1; j < len(attendees); j++ {
			a, b := attendees[i], attendees[j]
			if played.has(week, a.ID, b.ID) {
				continue
			}
			due = append(due, newPairing(a, b, week, false))
		}
	}
	return due
}

// MakeupMatches returns obligations owed by this week's attendees for every earlier week
// they missed: one pairing against each player who was present that week, unless a match
// for that exact week already exists between them. Obligations are listed by week, then
// by the absent player's name, then by opponent name.
func MakeupMatches(in ScheduleInput) []Pairing {
	attendees := in.attendees()
	if in.League.Format != FormatRoundRobin || len(attendees) < 2 {
		return []Pairing{}
	}

	roster := make(map[uuid.UUID]Player, len(in.Roster))
	for _, p := range in.Roster {
		roster[p.ID] = p
	}
	played := newPairIndex(in.Matches, in.Season.ID)

	var owed []Pairing
	for week := 1; week < in.Season.CurrentWeek; week++ {
		present := make(map[uuid.UUID]struct{}, len(in.Attendance[week]))
		for _, id := range in.Attendance[week] {
			present[id] = struct{}{}
		}
		opponents := sortedPlayers(in.Attendance[week], roster)

		for _, p := range attendees {
			if _, attended := present[p.ID]; attended {
				continue
			}
			for _, q := range opponents {
				if q.ID == p.ID || played.has(week, p.ID, q.ID) {
					continue
				}
				owed = append(owed, newPairing(p, q, week, true))
			}
		}
	}
	if owed == nil {
		return []Pairing{}
	}
	return owed
}

// attendees resolves this week's selected ids against the roster in name order.
// Ids missing from the roster are dropped.
func (in ScheduleInput) attendees() []Player {
	roster := make(map[uuid.UUID]Player, len(in.Roster))
	for _, p := range in.Roster {
		roster[p.ID] = p
	}
	return sortedPlayers(in.Present, roster)
}

func sortedPlayers(ids []uuid.UUID, roster map[uuid.UUID]Player) []Player {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]Player, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := roster[id]; ok {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, compareNames)
	return out
}

func newPairing(p, q Player, week int, makeup bool) Pairing {
	return Pairing{
		PlayerID:     p.ID,
		OpponentID:   q.ID,
		PlayerName:   p.DisplayName(),
		OpponentName: q.DisplayName(),
		Week:         week,
		IsMakeup:     makeup,
	}
}

// pairKey is an unordered player pair in one week.
type pairKey struct {
	week int
	lo   uuid.UUID
	hi   uuid.UUID
}

func makePairKey(week int, a, b uuid.UUID) pairKey {
	if a.String() > b.String() {
		a, b = b, a
	}
	return pairKey{week: week, lo: a, hi: b}
}

// pairIndex records which pairs already met in which week of a season. Pending and
// completed matches both count; a match with more than two players covers every pair in it.
type pairIndex map[pairKey]struct{}

func newPairIndex(matches []Match, seasonID uuid.UUID) pairIndex {
	idx := make(pairIndex)
	for _, m := range matches {
		if m.SeasonID == nil || *m.SeasonID != seasonID || m.Week == nil {
			continue
		}
		for i := 0; i < len(m.Participants); i++ {
			for j := i + 1; j < len(m.Participants); j++ {
				a, b := m.Participants[i].PlayerID, m.Participants[j].PlayerID
				if a == b {
					continue
				}
				idx[makePairKey(*m.Week, a, b)] = struct{}{}
			}
		}
	}
	return idx
}

func (idx pairIndex) has(week int, a, b uuid.UUID) bool {
	_, ok := idx[makePairKey(week, a, b)]
	return ok
}

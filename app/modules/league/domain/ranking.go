package leaguedomain

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// standingRow carries the tallies used while ranking.
type standingRow struct {
	player Player
	wins   int
	losses int
}

// headToHead is a win ratio against the other members of a tie group.
type headToHead struct {
	wins  int
	games int
}

// compare orders ratios descending without floating point: a/b vs c/d via cross-multiplication.
// A player with no games against the group has ratio 0.
func (h headToHead) compare(o headToHead) int {
	left := h.wins * max(o.games, 1)
	right := o.wins * max(h.games, 1)
	if h.games == 0 {
		left = 0
	}
	if o.games == 0 {
		right = 0
	}
	return cmp.Compare(right, left)
}

// ComputeStandings ranks every eligible player from the given matches.
//
// Only completed matches count. A player wins a match when marked as a winner and loses
// it when the match was decided in someone else's favour; undecided matches count for
// neither side. Players are ordered by wins, ties are broken by the head-to-head win ratio
// among the tied players only, and remaining ties fall through to surname then given name.
// Rank is shared by everyone with the same win count and skips by group size.
func ComputeStandings(players []Player, matches []Match) []LeaderboardEntry {
	if len(players) == 0 {
		return []LeaderboardEntry{}
	}

	rows := make([]*standingRow, 0, len(players))
	index := make(map[uuid.UUID]*standingRow, len(players))
	for _, p := range players {
		if _, dup := index[p.ID]; dup {
			continue
		}
		row := &standingRow{player: p}
		rows = append(rows, row)
		index[p.ID] = row
	}

	completed := completedMatches(matches)
	for _, m := range completed {
		if !m.Decided() {
			continue
		}
		for _, part := range m.Participants {
			row, ok := index[part.PlayerID]
			if !ok {
				continue
			}
			if part.Winner {
				row.wins++
			} else {
				row.losses++
			}
		}
	}

	slices.SortStableFunc(rows, func(a, b *standingRow) int {
		if c := cmp.Compare(b.wins, a.wins); c != 0 {
			return c
		}
		return compareNames(a.player, b.player)
	})

	entries := make([]LeaderboardEntry, 0, len(rows))
	for start := 0; start < len(rows); {
		end := start + 1
		for end < len(rows) && rows[end].wins == rows[start].wins {
			end++
		}
		group := rows[start:end]
		if len(group) > 1 {
			breakTie(group, completed)
		}

		rank := start + 1
		for _, row := range group {
			entries = append(entries, newEntry(row, rank))
		}
		start = end
	}

	return entries
}

// breakTie reorders a tie group in place by head-to-head ratio among its own members.
func breakTie(group []*standingRow, matches []Match) {
	members := make(map[uuid.UUID]struct{}, len(group))
	for _, row := range group {
		members[row.player.ID] = struct{}{}
	}

	ratios := make(map[uuid.UUID]headToHead, len(group))
	for _, row := range group {
		ratios[row.player.ID] = headToHeadRecord(row.player.ID, members, matches)
	}

	slices.SortStableFunc(group, func(a, b *standingRow) int {
		if c := ratios[a.player.ID].compare(ratios[b.player.ID]); c != 0 {
			return c
		}
		return compareNames(a.player, b.player)
	})
}

// headToHeadRecord sums decided games between playerID and every other group member.
func headToHeadRecord(playerID uuid.UUID, members map[uuid.UUID]struct{}, matches []Match) headToHead {
	var rec headToHead
	for _, m := range matches {
		if !m.Decided() || !m.Includes(playerID) {
			continue
		}
		won := m.Won(playerID)
		for _, part := range m.Participants {
			if part.PlayerID == playerID {
				continue
			}
			if _, ok := members[part.PlayerID]; !ok {
				continue
			}
			rec.games++
			if won {
				rec.wins++
			}
		}
	}
	return rec
}

func completedMatches(matches []Match) []Match {
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.Status == MatchStatusCompleted {
			out = append(out, m)
		}
	}
	return out
}

func newEntry(row *standingRow, rank int) LeaderboardEntry {
	played := row.wins + row.losses
	return LeaderboardEntry{
		PlayerID:      row.player.ID,
		GivenName:     row.player.GivenName,
		Surname:       row.player.Surname,
		Wins:          row.wins,
		Losses:        row.losses,
		GamesPlayed:   played,
		WinPercentage: WinPercentage(row.wins, played),
		Rank:          rank,
	}
}

// WinPercentage returns 100*wins/played rounded half-up to one decimal place, or 0 when
// nothing was played.
func WinPercentage(wins, played int) float64 {
	if played <= 0 {
		return 0
	}
	return math.Floor(float64(wins)*1000/float64(played)+0.5) / 10
}

// compareNames orders players by surname, then given name, ignoring case, with the raw
// spelling and then id breaking any remaining tie for a total order.
func compareNames(a, b Player) int {
	if c := cmp.Compare(strings.ToLower(a.Surname), strings.ToLower(b.Surname)); c != 0 {
		return c
	}
	if c := cmp.Compare(strings.ToLower(a.GivenName), strings.ToLower(b.GivenName)); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Surname, b.Surname); c != 0 {
		return c
	}
	if c := cmp.Compare(a.GivenName, b.GivenName); c != 0 {
		return c
	}
	return cmp.Compare(a.ID.String(), b.ID.String())
}

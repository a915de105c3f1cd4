package tournamentdomain

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/google/uuid"
)

var (
	ErrNotEnoughPlayers    = errors.New("a tournament needs at least two seeded players")
	ErrDuplicateSeed       = errors.New("player seeded more than once")
	ErrMatchNotFound       = errors.New("bracket match not found")
	ErrMatchCompleted      = errors.New("bracket match series already decided")
	ErrMatchNotReady       = errors.New("bracket match is still waiting for a player")
	ErrPlayerNotInMatch    = errors.New("player is not part of this bracket match")
	ErrTournamentCompleted = errors.New("tournament already completed")
)

// BracketSize returns the smallest power of two that is at least n.
func BracketSize(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// SeedOrder returns the standard placement of seeds 1..size in first-round order, pairing
// each seed with its complement so the top seeds can only meet late.
// size must be a power of two; SeedOrder(8) is [1 8 4 5 2 7 3 6].
func SeedOrder(size int) []int {
	if size <= 1 {
		return []int{1}
	}
	if size == 2 {
		return []int{1, 2}
	}
	half := SeedOrder(size / 2)
	out := make([]int, 0, size)
	for _, s := range half {
		out = append(out, s, size+1-s)
	}
	return out
}

// BuildBracket seeds players (best first) into a new single-elimination bracket for t.
// Byes are resolved before the bracket is returned, so the caller persists it as-is.
func BuildBracket(t Tournament, seeds []uuid.UUID) (Bracket, error) {
	if len(seeds) < 2 {
		return Bracket{}, ErrNotEnoughPlayers
	}
	seen := make(map[uuid.UUID]struct{}, len(seeds))
	for _, id := range seeds {
		if _, dup := seen[id]; dup {
			return Bracket{}, fmt.Errorf("%w: %s", ErrDuplicateSeed, id)
		}
		seen[id] = struct{}{}
	}

	size := BracketSize(len(seeds))
	rounds := bits.TrailingZeros(uint(size))

	// ids[r][m] is the id of match m in round r, allocated up front so every match can
	// point at the one it feeds.
	ids := make([][]uuid.UUID, rounds+1)
	for r := 1; r <= rounds; r++ {
		ids[r] = make([]uuid.UUID, 1<<(r-1))
		for m := range ids[r] {
			ids[r][m] = uuid.New()
		}
	}

	t.Status = TournamentStatusActive
	t.ChampionID = nil
	b := Bracket{Tournament: t, Matches: make([]BracketMatch, 0, size-1)}

	order := SeedOrder(size)
	for r := rounds; r >= 1; r-- {
		for m := range ids[r] {
			match := BracketMatch{
				ID:           ids[r][m],
				TournamentID: t.ID,
				Round:        r,
				MatchNumber:  m,
				SeriesFormat: FormatForRound(r),
				Status:       MatchStatusPending,
			}
			if r > 1 {
				next := ids[r-1][m/2]
				match.NextMatchID = &next
			}
			if r == rounds {
				match.SeedA, match.PlayerA = seedSlot(order[2*m], seeds)
				match.SeedB, match.PlayerB = seedSlot(order[2*m+1], seeds)
			}
			b.Matches = append(b.Matches, match)
		}
	}

	first := make([]int, 0, size/2)
	for i, m := range b.Matches {
		if m.Round == rounds {
			first = append(first, i)
		}
	}
	newCascade(&b).run(first)

	return b, nil
}

// seedSlot maps a seed position to its player; positions past the field are empty.
func seedSlot(seed int, seeds []uuid.UUID) (int, *uuid.UUID) {
	if seed > len(seeds) {
		return 0, nil
	}
	id := seeds[seed-1]
	return seed, &id
}

// RecordGame credits one game of a series to winnerID and returns the next bracket snapshot.
// Reaching the series threshold completes the match and advances the winner; completing the
// finals crowns the champion. b itself is never modified.
func RecordGame(b Bracket, matchID, winnerID uuid.UUID) (Bracket, GameOutcome, error) {
	if b.Tournament.Status == TournamentStatusCompleted {
		return b, GameOutcome{}, ErrTournamentCompleted
	}

	next := b.clone()
	c := newCascade(&next)

	i, ok := c.byID[matchID]
	if !ok {
		return b, GameOutcome{}, ErrMatchNotFound
	}
	m := &next.Matches[i]
	switch {
	case m.Status == MatchStatusCompleted:
		return b, GameOutcome{}, ErrMatchCompleted
	case m.PlayerA == nil || m.PlayerB == nil:
		return b, GameOutcome{}, ErrMatchNotReady
	case *m.PlayerA == winnerID:
		m.PlayerAWins++
	case *m.PlayerB == winnerID:
		m.PlayerBWins++
	default:
		return b, GameOutcome{}, ErrPlayerNotInMatch
	}

	m.Status = MatchStatusInProgress
	c.touch(i)

	threshold := m.SeriesFormat.Threshold()
	if m.PlayerAWins >= threshold || m.PlayerBWins >= threshold {
		c.complete(i, &winnerID)
		c.run(nil)
	}

	outcome := GameOutcome{
		Match:               next.Matches[i],
		SeriesCompleted:     next.Matches[i].Status == MatchStatusCompleted,
		TournamentCompleted: next.Tournament.Status == TournamentStatusCompleted,
		Updated:             c.updated(),
	}
	return next, outcome, nil
}

// cascade resolves byes and advances winners with an explicit work list.
type cascade struct {
	b       *Bracket
	byID    map[uuid.UUID]int
	byPos   map[[2]int]int
	queue   []int
	changed map[int]struct{}
	order   []int
}

func newCascade(b *Bracket) *cascade {
	c := &cascade{
		b:       b,
		byID:    make(map[uuid.UUID]int, len(b.Matches)),
		byPos:   make(map[[2]int]int, len(b.Matches)),
		changed: make(map[int]struct{}),
	}
	for i, m := range b.Matches {
		c.byID[m.ID] = i
		c.byPos[[2]int{m.Round, m.MatchNumber}] = i
	}
	return c
}

// run settles the given matches and everything downstream of them.
func (c *cascade) run(start []int) {
	c.queue = append(c.queue, start...)
	for len(c.queue) > 0 {
		i := c.queue[0]
		c.queue = c.queue[1:]
		c.settle(i)
	}
}

// settle completes a pending match once nothing more can arrive in it: a lone player takes
// a bye, and a match with no players left is dead.
func (c *cascade) settle(i int) {
	m := c.b.Matches[i]
	if m.Status != MatchStatusPending {
		return
	}
	if !c.feedersDone(m) {
		return
	}
	switch {
	case m.PlayerA != nil && m.PlayerB != nil:
		return
	case m.PlayerA != nil:
		c.complete(i, m.PlayerA)
	case m.PlayerB != nil:
		c.complete(i, m.PlayerB)
	default:
		c.complete(i, nil)
	}
}

// feedersDone reports whether every match feeding m is terminal. First-round matches have
// no feeders.
func (c *cascade) feedersDone(m BracketMatch) bool {
	for _, n := range []int{2 * m.MatchNumber, 2*m.MatchNumber + 1} {
		j, ok := c.byPos[[2]int{m.Round + 1, n}]
		if !ok {
			continue
		}
		if c.b.Matches[j].Status != MatchStatusCompleted {
			return false
		}
	}
	return true
}

// complete marks match i decided and pushes its winner, if any, into the next match.
func (c *cascade) complete(i int, winner *uuid.UUID) {
	m := &c.b.Matches[i]
	m.Status = MatchStatusCompleted
	if winner != nil {
		w := *winner
		m.WinnerID = &w
	}
	c.touch(i)

	if m.NextMatchID == nil {
		if m.WinnerID != nil {
			champion := *m.WinnerID
			c.b.Tournament.ChampionID = &champion
			c.b.Tournament.Status = TournamentStatusCompleted
		}
		return
	}

	j, ok := c.byID[*m.NextMatchID]
	if !ok {
		return
	}
	if m.WinnerID != nil {
		next := &c.b.Matches[j]
		w := *m.WinnerID
		if next.PlayerA == nil {
			next.PlayerA = &w
			next.SeedA = c.seedOf(m, w)
		} else {
			next.PlayerB = &w
			next.SeedB = c.seedOf(m, w)
		}
		c.touch(j)
	}
	c.queue = append(c.queue, j)
}

func (c *cascade) seedOf(m *BracketMatch, player uuid.UUID) int {
	if m.PlayerA != nil && *m.PlayerA == player {
		return m.SeedA
	}
	return m.SeedB
}

func (c *cascade) touch(i int) {
	if _, ok := c.changed[i]; ok {
		return
	}
	c.changed[i] = struct{}{}
	c.order = append(c.order, i)
}

func (c *cascade) updated() []BracketMatch {
	out := make([]BracketMatch, 0, len(c.order))
	for _, i := range c.order {
		out = append(out, c.b.Matches[i])
	}
	return out
}

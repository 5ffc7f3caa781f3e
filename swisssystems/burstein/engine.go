/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package burstein

import (
	"fmt"
	"io"
	"sort"

	"github.com/mikeb26/boylstonchessclub-pairings/swisssystems"
	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

// engine pairs one round. Players are addressed by local index: their
// position in the pairing ranking of the active players, best first.
type engine struct {
	t       *tournament.Tournament
	diag    io.Writer
	ranking *swisssystems.Ranking

	players []tournament.PlayerIndex
	score   []tournament.Points
	prefs   []tournament.ColorPreference
	legal   [][]bool
	repeat  [][]bool

	feasible map[string]bool
}

func newEngine(t *tournament.Tournament, diag io.Writer, allowRepeats bool) *engine {
	e := &engine{
		t:        t,
		diag:     diag,
		ranking:  swisssystems.NewPairingRanking(t),
		feasible: make(map[string]bool),
	}
	e.players = e.ranking.Ranked(t, (*tournament.Player).IsActive)

	n := len(e.players)
	e.score = make([]tournament.Points, n)
	e.prefs = make([]tournament.ColorPreference, n)
	abs := make([]tournament.Color, n)
	for i, idx := range e.players {
		e.score[i] = e.ranking.Score(idx)
		e.prefs[i] = t.Player(idx).ColorPreference()
		if e.prefs[i].Strength == tournament.StrengthAbsolute {
			abs[i] = e.prefs[i].Color
		}
	}

	relaxColors := t.RelaxFinalRoundColors && t.IsFinalRound()
	e.legal = make([][]bool, n)
	e.repeat = make([][]bool, n)
	for i := range e.legal {
		e.legal[i] = make([]bool, n)
		e.repeat[i] = make([]bool, n)
	}
	for i := 0; i < n; i++ {
		pi := t.Player(e.players[i])
		for j := i + 1; j < n; j++ {
			rep := pi.HasPlayed(e.players[j])
			ok := !t.IsForbidden(e.players[i], e.players[j]) &&
				(allowRepeats || !rep) &&
				(relaxColors || swisssystems.ColorPreferencesAreCompatible(abs[i], abs[j]))
			e.legal[i][j], e.legal[j][i] = ok, ok
			e.repeat[i][j], e.repeat[j][i] = rep, rep
		}
	}
	if relaxColors {
		fmt.Fprintf(diag, "relaxation: absolute color preferences waived for the final round\n")
	}

	return e
}

func (e *engine) run() (*swisssystems.Matching, error) {
	m := &swisssystems.Matching{Bye: tournament.NoPlayer}
	n := len(e.players)
	fmt.Fprintf(e.diag, "round %d: pairing %d active players\n",
		e.t.PlayedRounds+1, n)
	if n == 0 {
		return m, nil
	}

	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}
	if n%2 != 0 {
		bye, ok := e.chooseBye(remaining)
		if !ok {
			return nil, &swisssystems.NoValidPairingError{
				Reason: "no player can take the bye and leave a pairable field"}
		}
		m.Bye = e.players[bye]
		remaining = append(remaining[:bye:bye], remaining[bye+1:]...)
		fmt.Fprintf(e.diag, "bye: %d\n", m.Bye.PairingNumber())
	} else if !e.hasPerfectMatching(remaining) {
		return nil, &swisssystems.NoValidPairingError{
			Reason: fmt.Sprintf("%d active players admit no complete pairing", n)}
	}

	groups := e.scoreGroups(remaining)
	var floaters []int
	for gi, g := range groups {
		var lower []int
		for _, lg := range groups[gi+1:] {
			lower = append(lower, lg...)
		}
		fmt.Fprintf(e.diag, "score group %v: %d players, %d floated in\n",
			e.score[g[0]], len(g), len(floaters))

		res, ok := newBracket(e, floaters, g, lower).search()
		if !ok {
			return nil, &swisssystems.NoValidPairingError{
				Reason: fmt.Sprintf("score group %v cannot be paired", e.score[g[0]])}
		}
		fmt.Fprintf(e.diag, "  %d pairs, %d floaters down, penalty %v\n",
			len(res.pairs), len(res.floaters), res.penalty)
		for _, pair := range res.pairs {
			m.Pairings = append(m.Pairings, allocateColors(e.t, e.ranking,
				e.players[pair[0]], e.players[pair[1]]))
			if e.repeat[pair[0]][pair[1]] {
				fmt.Fprintf(e.diag, "  rematch %d-%d\n",
					e.players[pair[0]].PairingNumber(),
					e.players[pair[1]].PairingNumber())
			}
		}
		floaters = res.floaters
	}
	swisssystems.SortResults(m.Pairings, e.t)

	return m, nil
}

// scoreGroups splits the ranked players into runs of equal pairing score.
func (e *engine) scoreGroups(players []int) [][]int {
	var groups [][]int
	for _, p := range players {
		last := len(groups) - 1
		if last >= 0 && e.score[groups[last][0]] == e.score[p] {
			groups[last] = append(groups[last], p)
			continue
		}
		groups = append(groups, []int{p})
	}

	return groups
}

// chooseBye picks the position in players that receives the pairing bye:
// fewest byes so far, then lowest score, then lowest ranking, skipping any
// candidate whose absence leaves the rest unpairable.
func (e *engine) chooseBye(players []int) (int, bool) {
	byes := make([]int, len(e.players))
	for _, p := range players {
		byes[p] = e.t.Player(e.players[p]).ByeCount()
	}
	order := append([]int(nil), players...)
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if byes[a] != byes[b] {
			return byes[a] < byes[b]
		}
		if e.score[a] != e.score[b] {
			return e.score[a] < e.score[b]
		}
		return a > b
	})

	rest := make([]int, 0, len(players)-1)
	for _, cand := range order {
		rest = rest[:0]
		for _, p := range players {
			if p != cand {
				rest = append(rest, p)
			}
		}
		if e.hasPerfectMatching(rest) {
			for pos, p := range players {
				if p == cand {
					return pos, true
				}
			}
		}
	}

	return 0, false
}

// colorViolation reports whether seating a and b leaves one of them without
// their due color.
func (e *engine) colorViolation(a, b int) bool {
	return e.prefs[a].Color != tournament.ColorNone &&
		e.prefs[a].Color == e.prefs[b].Color
}

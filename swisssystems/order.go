/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swisssystems

import (
	"sort"

	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

// Ranking is the total order used for score groups, board order and
// standings: score descending, then Sonneborn-Berger, then Buchholz, then
// pairing number ascending. The tie-break values are computed once.
type Ranking struct {
	score []tournament.Points
	sb    []tournament.Points
	bh    []tournament.Points
}

// NewStandingsRanking ranks players by their actual score.
func NewStandingsRanking(t *tournament.Tournament) *Ranking {
	return newRanking(t, t.Score)
}

// NewPairingRanking ranks players by their score for the round about to be
// paired, accelerations included.
func NewPairingRanking(t *tournament.Tournament) *Ranking {
	return newRanking(t, t.PairingScore)
}

func newRanking(t *tournament.Tournament,
	score func(tournament.PlayerIndex) tournament.Points) *Ranking {

	n := len(t.Players)
	r := &Ranking{
		score: make([]tournament.Points, n),
		sb:    make([]tournament.Points, n),
		bh:    make([]tournament.Points, n),
	}
	for i := 0; i < n; i++ {
		idx := tournament.PlayerIndex(i)
		r.score[i] = score(idx)
		r.sb[i] = t.SonnebornBerger(idx)
		r.bh[i] = t.Buchholz(idx)
	}

	return r
}

func (r *Ranking) Score(idx tournament.PlayerIndex) tournament.Points {
	return r.score[idx]
}

func (r *Ranking) SonnebornBerger(idx tournament.PlayerIndex) tournament.Points {
	return r.sb[idx]
}

func (r *Ranking) Buchholz(idx tournament.PlayerIndex) tournament.Points {
	return r.bh[idx]
}

// Less reports whether a ranks strictly ahead of b.
func (r *Ranking) Less(a, b tournament.PlayerIndex) bool {
	if r.score[a] != r.score[b] {
		return r.score[a] > r.score[b]
	}
	if r.sb[a] != r.sb[b] {
		return r.sb[a] > r.sb[b]
	}
	if r.bh[a] != r.bh[b] {
		return r.bh[a] > r.bh[b]
	}
	return a < b
}

// Sort orders idxs best first.
func (r *Ranking) Sort(idxs []tournament.PlayerIndex) {
	sort.Slice(idxs, func(i, j int) bool {
		return r.Less(idxs[i], idxs[j])
	})
}

// Ranked returns the players accepted by keep, best first. A nil keep
// accepts everyone.
func (r *Ranking) Ranked(t *tournament.Tournament,
	keep func(*tournament.Player) bool) []tournament.PlayerIndex {

	idxs := make([]tournament.PlayerIndex, 0, len(t.Players))
	for i := range t.Players {
		if keep == nil || keep(&t.Players[i]) {
			idxs = append(idxs, t.Players[i].ID)
		}
	}
	r.Sort(idxs)

	return idxs
}

// SortPlayers orders players for standings and checklists.
func SortPlayers(players []*tournament.Player, t *tournament.Tournament) {
	r := NewStandingsRanking(t)
	sort.Slice(players, func(i, j int) bool {
		return r.Less(players[i].ID, players[j].ID)
	})
}

// pairingSorter implements sort.Interface for board order: combined
// pairing score descending, then the better ranked player of each board.
type pairingSorter struct {
	pairings []Pairing
	ranking  *Ranking
	position []int
}

func (s pairingSorter) Len() int { return len(s.pairings) }

func (s pairingSorter) Swap(i, j int) {
	s.pairings[i], s.pairings[j] = s.pairings[j], s.pairings[i]
}

func (s pairingSorter) combined(p Pairing) tournament.Points {
	return s.ranking.Score(p.White) + s.ranking.Score(p.Black)
}

func (s pairingSorter) best(p Pairing) int {
	return min(s.position[p.White], s.position[p.Black])
}

func (s pairingSorter) Less(i, j int) bool {
	a, b := s.pairings[i], s.pairings[j]
	if ca, cb := s.combined(a), s.combined(b); ca != cb {
		return ca > cb
	}
	return s.best(a) < s.best(b)
}

// SortResults puts pairings in board order. Board 1 is the first element.
func SortResults(pairings []Pairing, t *tournament.Tournament) {
	r := NewPairingRanking(t)
	order := r.Ranked(t, nil)
	position := make([]int, len(t.Players))
	for pos, idx := range order {
		position[idx] = pos
	}
	sort.Sort(pairingSorter{pairings: pairings, ranking: r, position: position})
}

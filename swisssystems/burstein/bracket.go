/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package burstein

import (
	"fmt"

	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

// penalty components, compared lexicographically. Among equal penalties the
// first solution found in search order wins.
const (
	penRepeats = iota
	penDoubleFloats
	penFloats
	penColors
	penNonCanonical
	numPenalties
)

type penalty [numPenalties]int

func (p penalty) less(q penalty) bool {
	for i := range p {
		if p[i] != q[i] {
			return p[i] < q[i]
		}
	}
	return false
}

func (p penalty) add(q penalty) penalty {
	for i := range p {
		p[i] += q[i]
	}
	return p
}

func (p penalty) sub(q penalty) penalty {
	for i := range p {
		p[i] -= q[i]
	}
	return p
}

func (p penalty) String() string {
	return fmt.Sprintf("repeats=%d doubleFloats=%d floats=%d colors=%d order=%d",
		p[penRepeats], p[penDoubleFloats], p[penFloats], p[penColors],
		p[penNonCanonical])
}

const (
	unassigned = -2
	floated    = -1
)

type bracketResult struct {
	pairs    [][2]int
	floaters []int
	penalty  penalty
}

// bracket is the search state for one score group plus the players floated
// into it. Positions index members; the first half of the bracket is S1.
type bracket struct {
	e        *engine
	members  []int
	incoming int
	half     int
	lower    []int
	last     bool

	partner []int
	cur     penalty
	floor   penalty

	best *bracketResult
	done bool
}

func newBracket(e *engine, incoming, residents, lower []int) *bracket {
	members := make([]int, 0, len(incoming)+len(residents))
	members = append(members, incoming...)
	members = append(members, residents...)
	b := &bracket{
		e:        e,
		members:  members,
		incoming: len(incoming),
		half:     len(members) / 2,
		lower:    lower,
		last:     len(lower) == 0,
		partner:  make([]int, len(members)),
	}
	for i := range b.partner {
		b.partner[i] = unassigned
	}

	return b
}

// frame is one level of the depth-first search: the decision for player.
type frame struct {
	player  int
	cands   []int
	next    int
	applied int
	cost    penalty
}

// search runs a branch and bound over every way to pair or float the
// bracket members and returns the least penalized outcome whose floaters
// can still be paired with the lower groups. The search is exponential in
// the worst case. A large bracket whose floor is out of reach may take
// seconds where most finish in milliseconds.
func (b *bracket) search() (*bracketResult, bool) {
	floor, ok := b.lowerBound()
	if !ok {
		return nil, false
	}
	b.floor = floor

	var stack []*frame
	push := func() {
		first := b.firstUnassigned()
		if first < 0 {
			b.leaf()
			return
		}
		stack = append(stack, &frame{player: first, cands: b.candidates(first),
			applied: unassigned})
	}

	push()
	for len(stack) > 0 && !b.done {
		f := stack[len(stack)-1]
		if f.applied != unassigned {
			b.undo(f)
		}
		if f.next >= len(f.cands) {
			stack = stack[:len(stack)-1]
			continue
		}
		c := f.cands[f.next]
		f.next++
		cost, ok := b.cost(f.player, c)
		if !ok {
			continue
		}
		b.apply(f, c, cost)
		lb, ok := b.lowerBound()
		if !ok || (b.best != nil && !b.cur.add(lb).less(b.best.penalty)) {
			continue
		}
		push()
	}

	return b.best, b.best != nil
}

func (b *bracket) firstUnassigned() int {
	for i, p := range b.partner {
		if p == unassigned {
			return i
		}
	}
	return -1
}

// candidates lists the options for pos in search order: S1 players try S2
// ascending then the rest of S1 ascending, S2 players try the later S2
// players, and floating comes last.
func (b *bracket) candidates(pos int) []int {
	var cands []int
	if pos < b.half {
		for j := b.half; j < len(b.members); j++ {
			if b.partner[j] == unassigned {
				cands = append(cands, j)
			}
		}
		for j := pos + 1; j < b.half; j++ {
			if b.partner[j] == unassigned {
				cands = append(cands, j)
			}
		}
	} else {
		for j := pos + 1; j < len(b.members); j++ {
			if b.partner[j] == unassigned {
				cands = append(cands, j)
			}
		}
	}

	return append(cands, floated)
}

func (b *bracket) cost(pos, c int) (penalty, bool) {
	var p penalty
	if c == floated {
		if b.last {
			return p, false
		}
		p[penFloats] = 1
		if pos < b.incoming {
			p[penDoubleFloats] = 1
		}
		return p, true
	}

	x, y := b.members[pos], b.members[c]
	if !b.e.legal[x][y] {
		return p, false
	}
	if b.e.repeat[x][y] {
		p[penRepeats] = 1
	}
	if b.e.colorViolation(x, y) {
		p[penColors] = 1
	}
	if (pos < b.half) == (c < b.half) {
		p[penNonCanonical] = 1
	}

	return p, true
}

func (b *bracket) apply(f *frame, c int, cost penalty) {
	f.applied = c
	f.cost = cost
	b.partner[f.player] = c
	if c != floated {
		b.partner[c] = f.player
	}
	b.cur = b.cur.add(cost)
}

func (b *bracket) undo(f *frame) {
	b.partner[f.player] = unassigned
	if f.applied != floated {
		b.partner[f.applied] = unassigned
	}
	b.cur = b.cur.sub(f.cost)
	f.applied = unassigned
}

// lowerBound is an optimistic estimate of the penalty still to come for the
// unassigned members. It reports false when no completion is possible.
func (b *bracket) lowerBound() (penalty, bool) {
	var lb penalty
	var open []int
	for i, p := range b.partner {
		if p == unassigned {
			open = append(open, i)
		}
	}

	var white, black, none int
	pairable := 0
	for _, i := range open {
		hasPartner := false
		for _, j := range open {
			if i != j && b.e.legal[b.members[i]][b.members[j]] {
				hasPartner = true
				break
			}
		}
		if !hasPartner {
			if b.last {
				return lb, false
			}
			lb[penFloats]++
			if i < b.incoming {
				lb[penDoubleFloats]++
			}
			continue
		}
		pairable++
		switch b.e.prefs[b.members[i]].Color {
		case tournament.ColorWhite:
			white++
		case tournament.ColorBlack:
			black++
		default:
			none++
		}
	}

	odd := pairable % 2
	if odd != 0 {
		if b.last {
			return lb, false
		}
		lb[penFloats]++
	}
	excess := white - black
	if excess < 0 {
		excess = -excess
	}
	excess -= none + odd
	if excess > 0 {
		lb[penColors] = excess / 2
	}

	return lb, true
}

// leaf evaluates a complete assignment of the bracket.
func (b *bracket) leaf() {
	var floaters []int
	for i, p := range b.partner {
		if p == floated {
			floaters = append(floaters, b.members[i])
		}
	}
	if b.best != nil && !b.cur.less(b.best.penalty) {
		return
	}

	rest := make([]int, 0, len(floaters)+len(b.lower))
	rest = append(rest, floaters...)
	rest = append(rest, b.lower...)
	if !b.e.hasPerfectMatching(rest) {
		return
	}

	res := &bracketResult{floaters: floaters, penalty: b.cur}
	for i, p := range b.partner {
		if p > i {
			res.pairs = append(res.pairs, [2]int{b.members[i], b.members[p]})
		}
	}
	b.best = res
	if !b.floor.less(b.cur) {
		b.done = true
	}
}

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"encoding/json"
	"fmt"
	"io"
)

// Tournament aggregates all players, their histories and the rule
// configuration the pairing engine consults.
type Tournament struct {
	Name           string      `json:"name"`
	Players        []Player    `json:"players"`
	PlayedRounds   int         `json:"playedRounds"`
	ExpectedRounds int         `json:"expectedRounds"`
	PointSystem    PointSystem `json:"pointSystem"`
	// InitialColor is given to the higher ranked of two players without any
	// color history when that player's pairing number is odd.
	InitialColor   Color            `json:"initialColor"`
	ForbiddenPairs [][2]PlayerIndex `json:"forbiddenPairs,omitempty"`
	// AllowRepeatPairings permits rematches, but only once every legal
	// alternative has been exhausted.
	AllowRepeatPairings bool `json:"allowRepeatPairings,omitempty"`
	// RelaxFinalRoundColors lets two players with the same absolute color
	// preference meet in the final round.
	RelaxFinalRoundColors bool `json:"relaxFinalRoundColors,omitempty"`
}

// New builds an empty tournament with the default point system.
func New(name string, expectedRounds int) *Tournament {
	return &Tournament{
		Name:           name,
		ExpectedRounds: expectedRounds,
		PointSystem:    DefaultPointSystem(),
		InitialColor:   ColorWhite,
	}
}

// AddPlayer appends a player and returns its index. Players must be added
// in pairing number order.
func (t *Tournament) AddPlayer(name string, rating int) PlayerIndex {
	idx := PlayerIndex(len(t.Players))
	p := Player{ID: idx, Name: name, Rating: rating}
	// late entries receive zero-point byes for the rounds they missed
	for r := 0; r < t.PlayedRounds; r++ {
		p.Matches = append(p.Matches, Match{Opponent: NoPlayer, Result: ResultZeroBye})
	}
	t.Players = append(t.Players, p)

	return idx
}

// Player returns the player for idx and panics on an invalid index; a bad
// index is a programming error, never a recoverable condition.
func (t *Tournament) Player(idx PlayerIndex) *Player {
	if idx < 0 || int(idx) >= len(t.Players) {
		panic(fmt.Sprintf("tournament: player index %d out of range [0,%d)", idx,
			len(t.Players)))
	}
	return &t.Players[idx]
}

// Score is the player's actual score after the completed rounds.
func (t *Tournament) Score(idx PlayerIndex) Points {
	var total Points
	for _, m := range t.Player(idx).Matches {
		total += t.PointSystem.PointsFor(m.Result)
	}

	return total
}

// Acceleration returns the virtual points assigned for the given 0-based round.
func (t *Tournament) Acceleration(idx PlayerIndex, round int) Points {
	acc := t.Player(idx).Accelerations
	if round < 0 || round >= len(acc) {
		return 0
	}
	return acc[round]
}

// PairingScore is the score used to build score groups for the next round:
// the actual score plus that round's acceleration.
func (t *Tournament) PairingScore(idx PlayerIndex) Points {
	return t.Score(idx) + t.Acceleration(idx, t.PlayedRounds)
}

// Buchholz sums the scores of every opponent met over the board or by forfeit.
func (t *Tournament) Buchholz(idx PlayerIndex) Points {
	var total Points
	for _, m := range t.Player(idx).Matches {
		if m.Opponent != NoPlayer {
			total += t.Score(m.Opponent)
		}
	}

	return total
}

// SonnebornBerger returns twice the Sonneborn-Berger score (full opponent
// score for a win, half for a draw) so draws stay integral.
func (t *Tournament) SonnebornBerger(idx PlayerIndex) Points {
	var total Points
	for _, m := range t.Player(idx).Matches {
		if m.Opponent == NoPlayer {
			continue
		}
		switch m.Result {
		case ResultWin, ResultForfeitWin:
			total += 2 * t.Score(m.Opponent)
		case ResultDraw:
			total += t.Score(m.Opponent)
		}
	}

	return total
}

// IsForbidden reports whether the two players were declared unpairable.
func (t *Tournament) IsForbidden(a, b PlayerIndex) bool {
	for _, fp := range t.ForbiddenPairs {
		if (fp[0] == a && fp[1] == b) || (fp[0] == b && fp[1] == a) {
			return true
		}
	}

	return false
}

// IsFinalRound reports whether the round about to be paired is the last one.
func (t *Tournament) IsFinalRound() bool {
	return t.ExpectedRounds > 0 && t.PlayedRounds+1 >= t.ExpectedRounds
}

// Validate checks the structural invariants the pairing engine relies on.
func (t *Tournament) Validate() error {
	for i := range t.Players {
		p := &t.Players[i]
		if p.ID != PlayerIndex(i) {
			return fmt.Errorf("player %q has id %d at position %d", p.Name, p.ID, i)
		}
		if len(p.Matches) != t.PlayedRounds {
			return fmt.Errorf("player %d has %d results; expected %d", p.ID.PairingNumber(),
				len(p.Matches), t.PlayedRounds)
		}
		for r, m := range p.Matches {
			if m.Opponent == NoPlayer {
				if !m.Result.IsBye() {
					return fmt.Errorf("player %d round %d: result %v without opponent",
						p.ID.PairingNumber(), r+1, m.Result.Code())
				}
				continue
			}
			if m.Opponent < 0 || int(m.Opponent) >= len(t.Players) || m.Opponent == p.ID {
				return fmt.Errorf("player %d round %d: invalid opponent %d",
					p.ID.PairingNumber(), r+1, m.Opponent)
			}
			opp := t.Players[m.Opponent].Matches
			if len(opp) <= r || opp[r].Opponent != p.ID {
				return fmt.Errorf("player %d round %d: opponent %d does not list them",
					p.ID.PairingNumber(), r+1, m.Opponent.PairingNumber())
			}
			if m.Result.GameWasPlayed() && m.Color != opp[r].Color.Invert() {
				return fmt.Errorf("player %d round %d: colors do not alternate with opponent %d",
					p.ID.PairingNumber(), r+1, m.Opponent.PairingNumber())
			}
		}
	}
	for _, fp := range t.ForbiddenPairs {
		for _, idx := range fp {
			if idx < 0 || int(idx) >= len(t.Players) {
				return fmt.Errorf("forbidden pair references unknown player %d", idx)
			}
		}
	}

	return nil
}

// Clone deep copies the tournament so callers can hand ownership of the copy
// to the pairing engine while keeping their own.
func (t *Tournament) Clone() *Tournament {
	c := *t
	c.Players = make([]Player, len(t.Players))
	for i, p := range t.Players {
		p.Matches = append([]Match(nil), p.Matches...)
		p.Accelerations = append([]Points(nil), p.Accelerations...)
		c.Players[i] = p
	}
	c.ForbiddenPairs = append([][2]PlayerIndex(nil), t.ForbiddenPairs...)

	return &c
}

// Game is one board of a completed round.
type Game struct {
	White       PlayerIndex
	Black       PlayerIndex
	WhiteResult Result
}

// RecordRound appends one round of results. Players in byes receive the
// given bye result; anyone else not seated is recorded as a zero-point bye.
func (t *Tournament) RecordRound(games []Game, byes map[PlayerIndex]Result) error {
	round := make([]*Match, len(t.Players))
	set := func(idx PlayerIndex, m Match) error {
		if idx < 0 || int(idx) >= len(t.Players) {
			return fmt.Errorf("unknown player %d", idx)
		}
		if round[idx] != nil {
			return fmt.Errorf("player %d appears twice in round %d",
				idx.PairingNumber(), t.PlayedRounds+1)
		}
		round[idx] = &m
		return nil
	}
	for _, g := range games {
		if g.WhiteResult.IsBye() {
			return fmt.Errorf("game %d-%d: bye result %v", g.White.PairingNumber(),
				g.Black.PairingNumber(), g.WhiteResult.Code())
		}
		if err := set(g.White, Match{Opponent: g.Black, Color: ColorWhite,
			Result: g.WhiteResult}); err != nil {
			return err
		}
		if err := set(g.Black, Match{Opponent: g.White, Color: ColorBlack,
			Result: g.WhiteResult.Opposite()}); err != nil {
			return err
		}
	}
	for idx, r := range byes {
		if !r.IsBye() {
			return fmt.Errorf("player %d: %v is not a bye result", idx.PairingNumber(),
				r.Code())
		}
		if err := set(idx, Match{Opponent: NoPlayer, Result: r}); err != nil {
			return err
		}
	}
	for i := range t.Players {
		m := Match{Opponent: NoPlayer, Result: ResultZeroBye}
		if round[i] != nil {
			m = *round[i]
		}
		t.Players[i].Matches = append(t.Players[i].Matches, m)
		t.Players[i].RequestedBye = false
	}
	t.PlayedRounds++

	return nil
}

// Decode reads a JSON tournament and validates it.
func Decode(r io.Reader) (*Tournament, error) {
	t := &Tournament{}
	if err := json.NewDecoder(r).Decode(t); err != nil {
		return nil, fmt.Errorf("unable to parse tournament: %w", err)
	}
	if t.PointSystem == (PointSystem{}) {
		t.PointSystem = DefaultPointSystem()
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tournament %q: %w", t.Name, err)
	}

	return t, nil
}

// Encode writes the tournament as indented JSON.
func (t *Tournament) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("unable to encode tournament %q: %w", t.Name, err)
	}

	return nil
}

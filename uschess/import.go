/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

// ToTournament converts a section cross table into a tournament whose
// pairing numbers follow the cross table order, ready for pairing the next
// round. expectedRounds may be 0 when unknown.
func (xt *CrossTable) ToTournament(name string,
	expectedRounds int) (*tournament.Tournament, error) {

	entries := append([]CrossTableEntry(nil), xt.Entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PairNum < entries[j].PairNum
	})
	byPairNum := lo.Associate(entries, func(e CrossTableEntry) (int, tournament.PlayerIndex) {
		return e.PairNum, tournament.NoPlayer
	})
	if len(byPairNum) != len(entries) {
		return nil, fmt.Errorf("section %v: duplicate pairing numbers", xt.SectionName)
	}

	t := tournament.New(name, expectedRounds)
	for _, e := range entries {
		byPairNum[e.PairNum] = t.AddPlayer(e.PlayerName, e.RatingPre)
	}

	for i, e := range entries {
		p := &t.Players[i]
		for r := 0; r < xt.NumRounds; r++ {
			m := tournament.Match{Opponent: tournament.NoPlayer,
				Result: tournament.ResultZeroBye}
			if r < len(e.Results) {
				m = convertRoundResult(e.Results[r], byPairNum)
			}
			p.Matches = append(p.Matches, m)
		}
	}
	t.PlayedRounds = xt.NumRounds
	unpairOneSided(t)

	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("section %v: %w", xt.SectionName, err)
	}

	return t, nil
}

func convertRoundResult(res RoundResult,
	byPairNum map[int]tournament.PlayerIndex) tournament.Match {

	opp, ok := byPairNum[res.OpponentPairNum]
	if !ok {
		opp = tournament.NoPlayer
	}
	m := tournament.Match{Opponent: opp, Color: res.Color}

	switch res.Outcome {
	case OutcomeWin:
		m.Result = tournament.ResultWin
	case OutcomeLoss:
		m.Result = tournament.ResultLoss
	case OutcomeDraw:
		m.Result = tournament.ResultDraw
	case OutcomeForfeitWin:
		m.Result = tournament.ResultForfeitWin
		m.Color = tournament.ColorNone
	case OutcomeForfeitLoss:
		m.Result = tournament.ResultForfeitLoss
		m.Color = tournament.ColorNone
	case OutcomeFullBye:
		return tournament.Match{Opponent: tournament.NoPlayer,
			Result: tournament.ResultPairingBye}
	case OutcomeHalfBye:
		return tournament.Match{Opponent: tournament.NoPlayer,
			Result: tournament.ResultHalfBye}
	default:
		return tournament.Match{Opponent: tournament.NoPlayer,
			Result: tournament.ResultZeroBye}
	}

	return m
}

// unpairOneSided turns entries whose opponent does not list them back (or
// that lack an opponent) into byes worth the same points.
func unpairOneSided(t *tournament.Tournament) {
	for i := range t.Players {
		p := &t.Players[i]
		for r := range p.Matches {
			m := &p.Matches[r]
			if m.Opponent == tournament.NoPlayer {
				if !m.Result.IsBye() {
					*m = byeFor(m.Result)
				}
				continue
			}
			back := t.Players[m.Opponent].Matches[r]
			if back.Opponent != p.ID ||
				(m.Result.GameWasPlayed() && back.Color != m.Color.Invert()) {
				*m = byeFor(m.Result)
			}
		}
	}
}

func byeFor(r tournament.Result) tournament.Match {
	switch r {
	case tournament.ResultWin, tournament.ResultForfeitWin:
		r = tournament.ResultPairingBye
	case tournament.ResultDraw:
		r = tournament.ResultHalfBye
	default:
		r = tournament.ResultZeroBye
	}
	return tournament.Match{Opponent: tournament.NoPlayer, Result: r}
}

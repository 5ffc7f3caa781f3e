/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package burstein

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mikeb26/boylstonchessclub-pairings/swisssystems"
	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

func withColors(p *tournament.Player, colors ...tournament.Color) {
	for _, c := range colors {
		p.Matches = append(p.Matches, tournament.Match{
			Opponent: tournament.NoPlayer,
			Color:    c,
			Result:   tournament.ResultDraw,
		})
	}
}

func TestAllocateColors(t *testing.T) {
	W, B := tournament.ColorWhite, tournament.ColorBlack
	cases := []struct {
		name      string
		a, b      []tournament.Color
		wantWhite tournament.PlayerIndex
	}{
		{"neither has history", nil, nil, 0},
		{"only one preference", []tournament.Color{W}, nil, 1},
		{"opposite preferences", []tournament.Color{W}, []tournament.Color{B}, 1},
		{"stronger preference wins", []tournament.Color{W, W}, []tournament.Color{W}, 1},
		{"larger imbalance wins", []tournament.Color{W, W}, []tournament.Color{B, W, W}, 1},
		{"first color difference", []tournament.Color{W, B, W},
			[]tournament.Color{W, W, B, B, W}, 1},
		{"identical histories favor rank", []tournament.Color{B, W},
			[]tournament.Color{B, W}, 1},
		{"identical histories favor rank, reversed",
			[]tournament.Color{W, B}, []tournament.Color{W, B}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tourney := newTourney(2)
			withColors(&tourney.Players[0], c.a...)
			withColors(&tourney.Players[1], c.b...)
			r := swisssystems.NewPairingRanking(tourney)

			got := allocateColors(tourney, r, 0, 1)
			assert.Equal(t, c.wantWhite, got.White)
			assert.Equal(t, got, allocateColors(tourney, r, 1, 0), "argument order")
		})
	}
}

func TestAllocateColorsInitialColorByPairingNumber(t *testing.T) {
	tourney := newTourney(4)
	r := swisssystems.NewPairingRanking(tourney)

	// 2 outranks 4 and has an even pairing number
	assert.Equal(t, pair(3, 1), allocateColors(tourney, r, 1, 3))
	assert.Equal(t, pair(2, 3), allocateColors(tourney, r, 3, 2))
}

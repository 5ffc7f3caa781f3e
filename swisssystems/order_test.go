/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swisssystems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

// sixPlayers returns a tournament after one round: 1-4 1-0, 2-5 ½-½,
// 6-3 0-1 (6 has white).
func sixPlayers(t *testing.T) *tournament.Tournament {
	t.Helper()
	tourney := tournament.New("order", 5)
	for i := 0; i < 6; i++ {
		tourney.AddPlayer(string(rune('A'+i)), 2200-100*i)
	}
	require.NoError(t, tourney.RecordRound([]tournament.Game{
		{White: 0, Black: 3, WhiteResult: tournament.ResultWin},
		{White: 1, Black: 4, WhiteResult: tournament.ResultDraw},
		{White: 5, Black: 2, WhiteResult: tournament.ResultLoss},
	}, nil))

	return tourney
}

func TestRankingIsStrictWeakOrder(t *testing.T) {
	tourney := sixPlayers(t)
	r := NewStandingsRanking(tourney)
	n := len(tourney.Players)
	for a := 0; a < n; a++ {
		ia := tournament.PlayerIndex(a)
		assert.False(t, r.Less(ia, ia), "irreflexive")
		for b := 0; b < n; b++ {
			ib := tournament.PlayerIndex(b)
			if a != b {
				assert.NotEqual(t, r.Less(ia, ib), r.Less(ib, ia), "total on distinct players")
			}
			for c := 0; c < n; c++ {
				ic := tournament.PlayerIndex(c)
				if r.Less(ia, ib) && r.Less(ib, ic) {
					assert.True(t, r.Less(ia, ic), "transitive")
				}
			}
		}
	}
}

func TestRankingOrder(t *testing.T) {
	tourney := sixPlayers(t)
	order := NewStandingsRanking(tourney).Ranked(tourney, nil)
	// winners first (pairing number breaks the SB/Buchholz tie at 0), then
	// draws, then losses
	assert.Equal(t, []tournament.PlayerIndex{0, 2, 1, 4, 3, 5}, order)

	tourney.Players[1].Withdrawn = true
	active := NewStandingsRanking(tourney).Ranked(tourney, (*tournament.Player).IsActive)
	assert.NotContains(t, active, tournament.PlayerIndex(1))
}

func TestSortPlayersIsIdempotent(t *testing.T) {
	tourney := sixPlayers(t)
	players := []*tournament.Player{&tourney.Players[5], &tourney.Players[1],
		&tourney.Players[2], &tourney.Players[0], &tourney.Players[4], &tourney.Players[3]}
	SortPlayers(players, tourney)
	first := append([]*tournament.Player(nil), players...)
	SortPlayers(players, tourney)
	assert.Equal(t, first, players)
	assert.Equal(t, tournament.PlayerIndex(0), players[0].ID)
}

func TestSortResults(t *testing.T) {
	tourney := sixPlayers(t)
	pairings := []Pairing{
		{White: 3, Black: 5}, // 0 + 0
		{White: 4, Black: 1}, // 0.5 + 0.5
		{White: 2, Black: 0}, // 1 + 1
	}
	SortResults(pairings, tourney)
	assert.Equal(t, []Pairing{{White: 2, Black: 0}, {White: 4, Black: 1},
		{White: 3, Black: 5}}, pairings)

	again := append([]Pairing(nil), pairings...)
	SortResults(again, tourney)
	assert.Equal(t, pairings, again, "sorting sorted results changes nothing")
}

func TestSortResultsTieUsesBestRank(t *testing.T) {
	tourney := tournament.New("ties", 3)
	for i := 0; i < 4; i++ {
		tourney.AddPlayer("P", 0)
	}
	pairings := []Pairing{{White: 3, Black: 1}, {White: 2, Black: 0}}
	SortResults(pairings, tourney)
	assert.Equal(t, tournament.PlayerIndex(0), pairings[0].Black)
}

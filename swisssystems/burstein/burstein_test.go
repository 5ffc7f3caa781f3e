/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package burstein

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikeb26/boylstonchessclub-pairings/swisssystems"
	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

func newTourney(n int) *tournament.Tournament {
	t := tournament.New("test", 5)
	for i := 0; i < n; i++ {
		t.AddPlayer(fmt.Sprintf("P%d", i+1), 2000-10*i)
	}
	return t
}

func pair(white, black tournament.PlayerIndex) swisssystems.Pairing {
	return swisssystems.Pairing{White: white, Black: black}
}

func TestRegistered(t *testing.T) {
	for _, s := range []swisssystems.SwissSystem{swisssystems.Burstein,
		swisssystems.BursteinBaku} {
		info, err := swisssystems.GetInfo(s)
		require.NoError(t, err, s.String())
		assert.NotNil(t, info)
	}
}

func TestFirstRoundSingleGroup(t *testing.T) {
	tourney := newTourney(4)
	m, err := computeMatching(tourney, nil)
	require.NoError(t, err)

	// top half meets bottom half; 1 takes the initial color, 2 the other
	assert.Equal(t, []swisssystems.Pairing{pair(0, 2), pair(3, 1)}, m.Pairings)
	assert.Equal(t, tournament.NoPlayer, m.Bye)
}

func TestInitialColorBlack(t *testing.T) {
	tourney := newTourney(4)
	tourney.InitialColor = tournament.ColorBlack
	m, err := computeMatching(tourney, nil)
	require.NoError(t, err)
	assert.Equal(t, []swisssystems.Pairing{pair(2, 0), pair(1, 3)}, m.Pairings)
}

// Scores [3,3,1,1] pair 1-2 and 3-4 since each score group is paired
// within itself before anyone floats. Pairing across groups as 1-3 and 2-4
// would float both leaders for no gain.
func TestScoreGroupsPairInternally(t *testing.T) {
	tourney := newTourney(4)
	for i, acc := range []tournament.Points{20, 20, 0, 0} {
		tourney.Players[i].Accelerations = []tournament.Points{acc}
	}
	m, err := computeMatching(tourney, nil)
	require.NoError(t, err)
	assert.Equal(t, []swisssystems.Pairing{pair(0, 1), pair(2, 3)}, m.Pairings)
}

func TestOddFieldByeGoesToLowestRanked(t *testing.T) {
	tourney := newTourney(3)
	m, err := computeMatching(tourney, nil)
	require.NoError(t, err)
	assert.Equal(t, tournament.PlayerIndex(2), m.Bye)
	assert.Equal(t, []swisssystems.Pairing{pair(0, 1)}, m.Pairings)
}

func TestByeSkipsPreviousRecipient(t *testing.T) {
	tourney := newTourney(3)
	require.NoError(t, tourney.RecordRound([]tournament.Game{
		{White: 0, Black: 1, WhiteResult: tournament.ResultDraw},
	}, map[tournament.PlayerIndex]tournament.Result{2: tournament.ResultPairingBye}))

	m, err := computeMatching(tourney, nil)
	require.NoError(t, err)
	assert.Equal(t, tournament.PlayerIndex(1), m.Bye)
	assert.Equal(t, []swisssystems.Pairing{pair(2, 0)}, m.Pairings)
}

func TestByeLeavesPairableField(t *testing.T) {
	tourney := newTourney(3)
	// without 3 the field is just the forbidden pair 1-2
	tourney.ForbiddenPairs = [][2]tournament.PlayerIndex{{0, 1}}
	m, err := computeMatching(tourney, nil)
	require.NoError(t, err)
	assert.Equal(t, tournament.PlayerIndex(1), m.Bye)
	assert.Equal(t, []swisssystems.Pairing{pair(0, 2)}, m.Pairings)
}

func TestInactivePlayersAreNotPaired(t *testing.T) {
	tourney := newTourney(5)
	tourney.Players[4].RequestedBye = true
	tourney.Players[3].Withdrawn = true
	m, err := computeMatching(tourney, nil)
	require.NoError(t, err)
	assert.Equal(t, tournament.PlayerIndex(2), m.Bye)
	assert.Equal(t, []swisssystems.Pairing{pair(0, 1)}, m.Pairings)
	assert.Equal(t, tournament.ResultHalfBye, m.Byes(tourney)[4])
}

func TestEmptyField(t *testing.T) {
	m, err := computeMatching(newTourney(0), nil)
	require.NoError(t, err)
	assert.Empty(t, m.Pairings)
	assert.Equal(t, tournament.NoPlayer, m.Bye)
}

func TestForbiddenPairFloatsDown(t *testing.T) {
	tourney := newTourney(4)
	for i, acc := range []tournament.Points{10, 10, 0, 0} {
		tourney.Players[i].Accelerations = []tournament.Points{acc}
	}
	tourney.ForbiddenPairs = [][2]tournament.PlayerIndex{{0, 1}}

	var diag bytes.Buffer
	m, err := computeMatching(tourney, &diag)
	require.NoError(t, err)
	assert.Equal(t, []swisssystems.Pairing{pair(0, 2), pair(3, 1)}, m.Pairings)
	assert.Contains(t, diag.String(), "score group 0.0: 2 players, 2 floated in")
}

func TestPlayedOpponentsFloatDown(t *testing.T) {
	tourney := newTourney(4)
	require.NoError(t, tourney.RecordRound([]tournament.Game{
		{White: 0, Black: 1, WhiteResult: tournament.ResultWin},
		{White: 2, Black: 3, WhiteResult: tournament.ResultDraw},
	}, nil))

	m, err := computeMatching(tourney, nil)
	require.NoError(t, err)
	// 1 floats to the draw group and takes 4, who is due white; 3 floats on
	assert.Equal(t, []swisssystems.Pairing{pair(3, 0), pair(1, 2)}, m.Pairings)
}

// drawnRound records a round in which every game is drawn.
func drawnRound(t *testing.T, tourney *tournament.Tournament,
	games ...[2]tournament.PlayerIndex) {

	t.Helper()
	round := make([]tournament.Game, len(games))
	for i, g := range games {
		round[i] = tournament.Game{White: g[0], Black: g[1],
			WhiteResult: tournament.ResultDraw}
	}
	require.NoError(t, tourney.RecordRound(round, nil))
}

func TestResidentFloatsBeforeFloaterFloatsAgain(t *testing.T) {
	tourney := newTourney(6)
	drawnRound(t, tourney, [2]tournament.PlayerIndex{0, 2},
		[2]tournament.PlayerIndex{1, 4}, [2]tournament.PlayerIndex{3, 5})
	// 1 floats alone into {2,3}. 1 already met 3 and shares a due black
	// with 2, while 2 and 3 could meet cleanly if 1 floated on.
	for i, acc := range []tournament.Points{20, 10, 10, 0, 0, 0} {
		tourney.Players[i].Accelerations = []tournament.Points{0, acc}
	}

	var diag bytes.Buffer
	m, err := computeMatching(tourney, &diag)
	require.NoError(t, err)
	assert.Equal(t, []swisssystems.Pairing{pair(1, 0), pair(2, 5), pair(4, 3)},
		m.Pairings)
	assert.Contains(t, diag.String(), "score group 1.5: 2 players, 1 floated in\n"+
		"  1 pairs, 1 floaters down, "+
		"penalty repeats=0 doubleFloats=0 floats=1 colors=1 order=0\n")
}

func TestColorsOutrankCanonicalOrder(t *testing.T) {
	tourney := newTourney(4)
	drawnRound(t, tourney, [2]tournament.PlayerIndex{0, 2},
		[2]tournament.PlayerIndex{3, 1})
	// S1 is {1,2}. Its unplayed S2 pairings 1-4 and 2-3 both clash on
	// color; 1-2 and 3-4 do not.

	var diag bytes.Buffer
	m, err := computeMatching(tourney, &diag)
	require.NoError(t, err)
	assert.Equal(t, []swisssystems.Pairing{pair(1, 0), pair(2, 3)}, m.Pairings)
	assert.Contains(t, diag.String(), "  2 pairs, 0 floaters down, "+
		"penalty repeats=0 doubleFloats=0 floats=0 colors=0 order=2\n")
}

func TestNoRematchWithoutRelaxation(t *testing.T) {
	tourney := newTourney(2)
	require.NoError(t, tourney.RecordRound([]tournament.Game{
		{White: 0, Black: 1, WhiteResult: tournament.ResultDraw},
	}, nil))

	_, err := computeMatching(tourney, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, swisssystems.ErrNoValidPairing)
	assert.NotErrorIs(t, err, swisssystems.ErrUnapplicableFeature)
	var nvp *swisssystems.NoValidPairingError
	assert.True(t, errors.As(err, &nvp))
}

func TestRematchAsLastResort(t *testing.T) {
	tourney := newTourney(2)
	require.NoError(t, tourney.RecordRound([]tournament.Game{
		{White: 0, Black: 1, WhiteResult: tournament.ResultDraw},
	}, nil))
	tourney.AllowRepeatPairings = true

	var diag bytes.Buffer
	m, err := computeMatching(tourney, &diag)
	require.NoError(t, err)
	assert.Equal(t, []swisssystems.Pairing{pair(1, 0)}, m.Pairings)
	assert.Contains(t, diag.String(), "repeat pairings allowed")
	assert.Contains(t, diag.String(), "relaxation: repeat pairing 2-1")
}

func TestForfeitAllowsRepairing(t *testing.T) {
	tourney := newTourney(2)
	require.NoError(t, tourney.RecordRound([]tournament.Game{
		{White: 0, Black: 1, WhiteResult: tournament.ResultForfeitWin},
	}, nil))

	m, err := computeMatching(tourney, nil)
	require.NoError(t, err)
	assert.Len(t, m.Pairings, 1)
}

// absoluteClash returns four players where 1 and 3 are due black and 2 and
// 4 are due white, all absolutely, and the only unplayed pairs are 1-3 and
// 2-4.
func absoluteClash(t *testing.T, rounds int) *tournament.Tournament {
	t.Helper()
	tourney := tournament.New("clash", rounds)
	for i := 0; i < 4; i++ {
		tourney.AddPlayer(fmt.Sprintf("P%d", i+1), 0)
	}
	require.NoError(t, tourney.RecordRound([]tournament.Game{
		{White: 0, Black: 1, WhiteResult: tournament.ResultDraw},
		{White: 2, Black: 3, WhiteResult: tournament.ResultDraw},
	}, nil))
	require.NoError(t, tourney.RecordRound([]tournament.Game{
		{White: 0, Black: 3, WhiteResult: tournament.ResultDraw},
		{White: 2, Black: 1, WhiteResult: tournament.ResultDraw},
	}, nil))

	return tourney
}

func TestAbsoluteColorClashIsIllegal(t *testing.T) {
	tourney := absoluteClash(t, 5)
	tourney.RelaxFinalRoundColors = true

	_, err := computeMatching(tourney, nil)
	assert.ErrorIs(t, err, swisssystems.ErrNoValidPairing)
}

func TestFinalRoundColorRelaxation(t *testing.T) {
	tourney := absoluteClash(t, 3)
	tourney.RelaxFinalRoundColors = true

	var diag bytes.Buffer
	m, err := computeMatching(tourney, &diag)
	require.NoError(t, err)
	// the better ranked player of each clash keeps the due color
	assert.Equal(t, []swisssystems.Pairing{pair(2, 0), pair(1, 3)}, m.Pairings)
	assert.Contains(t, diag.String(), "absolute color preferences waived")
}

func TestUnsupportedAcceleration(t *testing.T) {
	info, err := swisssystems.GetInfo(swisssystems.Burstein)
	require.NoError(t, err)

	err = info.UpdateAccelerations(newTourney(4))
	assert.ErrorIs(t, err, swisssystems.ErrUnapplicableFeature)
	assert.NotErrorIs(t, err, swisssystems.ErrNoValidPairing)
}

func TestBakuAcceleration(t *testing.T) {
	info, err := swisssystems.GetInfo(swisssystems.BursteinBaku)
	require.NoError(t, err)

	tourney := tournament.New("baku", 9)
	for i := 0; i < 10; i++ {
		tourney.AddPlayer(fmt.Sprintf("P%d", i+1), 0)
	}

	// 9 rounds: 5 accelerated, the first 3 at a full point
	want := []tournament.Points{10, 10, 10, 5, 5, 0, 0, 0, 0}
	for round, bonus := range want {
		tourney.PlayedRounds = round
		require.NoError(t, info.UpdateAccelerations(tourney))
		for i := range tourney.Players {
			got := tourney.Acceleration(tournament.PlayerIndex(i), round)
			if i < 6 {
				assert.Equal(t, bonus, got, "round %d player %d", round+1, i+1)
			} else {
				assert.Zero(t, got, "round %d player %d", round+1, i+1)
			}
		}
	}

	tourney.ExpectedRounds = 0
	assert.Error(t, info.UpdateAccelerations(tourney))
}

func TestBakuGroupsPairSeparately(t *testing.T) {
	tourney := tournament.New("baku", 5)
	for i := 0; i < 8; i++ {
		tourney.AddPlayer(fmt.Sprintf("P%d", i+1), 0)
	}
	require.NoError(t, updateBakuAccelerations(tourney))

	m, err := computeMatching(tourney, nil)
	require.NoError(t, err)
	assert.Equal(t, []swisssystems.Pairing{pair(0, 2), pair(3, 1),
		pair(4, 6), pair(7, 5)}, m.Pairings)
}

func TestSimulatedTournament(t *testing.T) {
	const players, rounds = 13, 6
	rng := rand.New(rand.NewSource(7))
	tourney := newTourney(players)
	tourney.ExpectedRounds = rounds
	tourney.RelaxFinalRoundColors = true
	outcomes := []tournament.Result{tournament.ResultWin, tournament.ResultDraw,
		tournament.ResultLoss}

	for r := 0; r < rounds; r++ {
		m, err := computeMatching(tourney, nil)
		require.NoError(t, err, "round %d", r+1)

		seen := make(map[tournament.PlayerIndex]int)
		for _, p := range m.Pairings {
			seen[p.White]++
			seen[p.Black]++
			assert.False(t, tourney.Player(p.White).HasPlayed(p.Black),
				"round %d rematch %d-%d", r+1, p.White, p.Black)
		}
		require.NotEqual(t, tournament.NoPlayer, m.Bye)
		seen[m.Bye]++
		assert.Len(t, seen, players)
		for idx, n := range seen {
			assert.Equal(t, 1, n, "round %d player %d", r+1, idx)
		}

		results := make([]tournament.Result, len(m.Pairings))
		for i := range results {
			results[i] = outcomes[rng.Intn(len(outcomes))]
		}
		games, err := m.Games(results)
		require.NoError(t, err)
		require.NoError(t, tourney.RecordRound(games, m.Byes(tourney)))
	}

	for i := range tourney.Players {
		assert.LessOrEqual(t, tourney.Players[i].ByeCount(), 1)
	}
}

// BenchmarkLargeField pairs seven rounds of a 200 player field with random
// results. Most rounds pair well under a second, but the search can run for
// several seconds on an unlucky round, so keep pairing_timeout generous.
func BenchmarkLargeField(b *testing.B) {
	const players, rounds = 200, 7
	outcomes := []tournament.Result{tournament.ResultWin, tournament.ResultDraw,
		tournament.ResultLoss}

	for i := 0; i < b.N; i++ {
		rng := rand.New(rand.NewSource(6))
		tourney := tournament.New("bench", rounds)
		for p := 0; p < players; p++ {
			tourney.AddPlayer(fmt.Sprintf("P%d", p+1), 2400-5*p)
		}
		for r := 0; r < rounds; r++ {
			m, err := computeMatching(tourney, nil)
			if err != nil {
				b.Fatalf("round %d: %v", r+1, err)
			}
			results := make([]tournament.Result, len(m.Pairings))
			for j := range results {
				results[j] = outcomes[rng.Intn(len(outcomes))]
			}
			games, err := m.Games(results)
			if err != nil {
				b.Fatal(err)
			}
			if err := tourney.RecordRound(games, m.Byes(tourney)); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func TestChecklist(t *testing.T) {
	tourney := newTourney(2)
	require.NoError(t, tourney.RecordRound([]tournament.Game{
		{White: 0, Black: 1, WhiteResult: tournament.ResultWin},
	}, nil))

	info, err := swisssystems.GetInfo(swisssystems.Burstein)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, info.PrintChecklist(&buf, tourney))

	out := buf.String()
	assert.Contains(t, out, "test: checklist after round 1")
	assert.Contains(t, out, "No  Name  Rtg   Pts  Acc  SB    BH   Pref  Byes  Rounds")
	assert.Contains(t, out, "12w")
	assert.Contains(t, out, "01b")
}

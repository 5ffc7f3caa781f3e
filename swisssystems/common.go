/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package swisssystems holds what every Swiss pairing system shares: the
// pairing result types, the two failure kinds, the color preference model,
// the result ordering and the registry of implemented systems.
package swisssystems

import (
	"errors"
	"fmt"

	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

var (
	// ErrNoValidPairing matches every *NoValidPairingError via errors.Is.
	ErrNoValidPairing = errors.New("no valid pairing exists")
	// ErrUnapplicableFeature matches every *UnapplicableFeatureError.
	ErrUnapplicableFeature = errors.New("feature not supported by the selected Swiss system")
)

// NoValidPairingError reports that the search exhausted every legal option
// for the current set of active players.
type NoValidPairingError struct {
	Reason string
}

func (e *NoValidPairingError) Error() string {
	if e.Reason == "" {
		return ErrNoValidPairing.Error()
	}
	return fmt.Sprintf("%v: %v", ErrNoValidPairing, e.Reason)
}

func (e *NoValidPairingError) Is(target error) bool {
	return target == ErrNoValidPairing
}

// UnapplicableFeatureError reports that the caller asked a system for a
// capability it does not define. It is a configuration error and is never
// produced by the pairing search itself.
type UnapplicableFeatureError struct {
	Feature string
}

func (e *UnapplicableFeatureError) Error() string {
	return fmt.Sprintf("the selected Swiss system does not support %v", e.Feature)
}

func (e *UnapplicableFeatureError) Is(target error) bool {
	return target == ErrUnapplicableFeature
}

// Pairing seats two distinct players at one board.
type Pairing struct {
	White tournament.PlayerIndex
	Black tournament.PlayerIndex
}

// NewPairing builds a pairing from an unordered pair and the color player0
// receives.
func NewPairing(player0, player1 tournament.PlayerIndex,
	player0Color tournament.Color) Pairing {

	if player0Color == tournament.ColorWhite {
		return Pairing{White: player0, Black: player1}
	}
	return Pairing{White: player1, Black: player0}
}

// Matching is the complete result for one round: disjoint pairings ordered
// by board plus at most one bye.
type Matching struct {
	Pairings []Pairing
	// Bye is tournament.NoPlayer when every active player is seated.
	Bye tournament.PlayerIndex
}

// Games converts the matching into the board list tournament.RecordRound
// expects, using results keyed by board (0-based).
func (m *Matching) Games(results []tournament.Result) ([]tournament.Game, error) {
	if len(results) != len(m.Pairings) {
		return nil, fmt.Errorf("have %d results for %d boards", len(results),
			len(m.Pairings))
	}
	games := make([]tournament.Game, len(m.Pairings))
	for i, p := range m.Pairings {
		games[i] = tournament.Game{White: p.White, Black: p.Black,
			WhiteResult: results[i]}
	}

	return games, nil
}

// Byes returns the bye map tournament.RecordRound expects: the pairing bye
// plus a half point for every active player who requested a bye.
func (m *Matching) Byes(t *tournament.Tournament) map[tournament.PlayerIndex]tournament.Result {
	byes := make(map[tournament.PlayerIndex]tournament.Result)
	if m.Bye != tournament.NoPlayer {
		byes[m.Bye] = tournament.ResultPairingBye
	}
	for i := range t.Players {
		p := &t.Players[i]
		if !p.Withdrawn && p.RequestedBye {
			byes[p.ID] = tournament.ResultHalfBye
		}
	}

	return byes
}

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package burstein implements the Burstein Swiss system. Importing it
// registers swisssystems.Burstein and swisssystems.BursteinBaku.
package burstein

import (
	"errors"
	"fmt"
	"io"

	"github.com/mikeb26/boylstonchessclub-pairings/swisssystems"
	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

func init() {
	swisssystems.Register(swisssystems.Burstein, info{})
	swisssystems.Register(swisssystems.BursteinBaku, bakuInfo{})
}

// info is plain Burstein, which defines no default acceleration system.
type info struct {
	swisssystems.NoAccelerations
}

func (info) ComputeMatching(t *tournament.Tournament,
	diag io.Writer) (*swisssystems.Matching, error) {

	return computeMatching(t, diag)
}

func (info) PrintChecklist(w io.Writer, t *tournament.Tournament) error {
	return printChecklist(w, t)
}

// bakuInfo is Burstein paired with Baku acceleration.
type bakuInfo struct{}

func (bakuInfo) ComputeMatching(t *tournament.Tournament,
	diag io.Writer) (*swisssystems.Matching, error) {

	return computeMatching(t, diag)
}

func (bakuInfo) UpdateAccelerations(t *tournament.Tournament) error {
	return updateBakuAccelerations(t)
}

func (bakuInfo) PrintChecklist(w io.Writer, t *tournament.Tournament) error {
	return printChecklist(w, t)
}

// computeMatching pairs the next round. When no pairing exists and the
// tournament permits rematches as a last resort, it searches once more with
// rematches legal but penalized ahead of every other criterion, and reports
// each rematch on diag.
func computeMatching(t *tournament.Tournament,
	diag io.Writer) (*swisssystems.Matching, error) {

	if diag == nil {
		diag = io.Discard
	}

	m, err := newEngine(t, diag, false).run()
	if err == nil || !t.AllowRepeatPairings ||
		!errors.Is(err, swisssystems.ErrNoValidPairing) {
		return m, err
	}

	fmt.Fprintf(diag, "%v\nrelaxing: repeat pairings allowed as a last resort\n", err)
	m, err = newEngine(t, diag, true).run()
	if err != nil {
		return nil, err
	}
	for _, p := range m.Pairings {
		if t.Player(p.White).HasPlayed(p.Black) {
			fmt.Fprintf(diag, "relaxation: repeat pairing %d-%d\n",
				p.White.PairingNumber(), p.Black.PairingNumber())
		}
	}

	return m, nil
}

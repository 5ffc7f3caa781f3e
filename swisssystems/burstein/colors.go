/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package burstein

import (
	"github.com/mikeb26/boylstonchessclub-pairings/swisssystems"
	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

// allocateColors decides who takes white in a pairing of a and b.
func allocateColors(t *tournament.Tournament, r *swisssystems.Ranking,
	a, b tournament.PlayerIndex) swisssystems.Pairing {

	pa, pb := t.Player(a), t.Player(b)
	prefA, prefB := pa.ColorPreference(), pb.ColorPreference()

	higher, lower := a, b
	if r.Less(b, a) {
		higher, lower = b, a
	}

	switch {
	case prefA.Color == tournament.ColorNone && prefB.Color == tournament.ColorNone:
		c := t.InitialColor
		if c == tournament.ColorNone {
			c = tournament.ColorWhite
		}
		if higher.PairingNumber()%2 == 0 {
			c = c.Invert()
		}
		return swisssystems.NewPairing(higher, lower, c)
	case prefB.Color == tournament.ColorNone:
		return swisssystems.NewPairing(a, b, prefA.Color)
	case prefA.Color == tournament.ColorNone:
		return swisssystems.NewPairing(b, a, prefB.Color)
	case prefA.Color != prefB.Color:
		return swisssystems.NewPairing(a, b, prefA.Color)
	}

	// same due color
	due := prefA.Color
	if prefA.Strength != prefB.Strength {
		if prefA.Strength > prefB.Strength {
			return swisssystems.NewPairing(a, b, due)
		}
		return swisssystems.NewPairing(b, a, due)
	}
	imbA, imbB := abs(pa.ColorImbalance()), abs(pb.ColorImbalance())
	if imbA != imbB {
		if imbA > imbB {
			return swisssystems.NewPairing(a, b, due)
		}
		return swisssystems.NewPairing(b, a, due)
	}
	if colorA, _ := swisssystems.FindFirstColorDifference(pa, pb); colorA != tournament.ColorNone {
		return swisssystems.NewPairing(a, b, colorA.Invert())
	}

	return swisssystems.NewPairing(higher, lower, due)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package burstein

import (
	"fmt"

	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

// updateBakuAccelerations assigns the Baku virtual points for the round
// about to be paired. Group A is the top 2*ceil(n/4) players by pairing
// number. They receive a win's worth of points during the first half of the
// accelerated rounds and a draw's worth during the second half; the
// accelerated rounds are the first half of the tournament.
func updateBakuAccelerations(t *tournament.Tournament) error {
	if t.ExpectedRounds <= 0 {
		return fmt.Errorf("baku acceleration needs the expected number of rounds")
	}

	round := t.PlayedRounds
	accelerated := (t.ExpectedRounds + 1) / 2
	fullPoint := (accelerated + 1) / 2

	var bonus tournament.Points
	switch {
	case round < fullPoint:
		bonus = t.PointSystem.Win
	case round < accelerated:
		bonus = t.PointSystem.Draw
	}

	entrants := 0
	for i := range t.Players {
		if !t.Players[i].Withdrawn {
			entrants++
		}
	}
	groupA := 2 * ((entrants + 3) / 4)

	seen := 0
	for i := range t.Players {
		p := &t.Players[i]
		var acc tournament.Points
		if !p.Withdrawn {
			if seen < groupA {
				acc = bonus
			}
			seen++
		}
		for len(p.Accelerations) <= round {
			p.Accelerations = append(p.Accelerations, 0)
		}
		p.Accelerations[round] = acc
	}

	return nil
}

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swisssystems

import (
	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

// ColorPreferencesAreCompatible checks whether two players can meet under the
// normal (pre-final round) color restrictions shared by all Swiss systems.
func ColorPreferencesAreCompatible(preference0, preference1 tournament.Color) bool {
	return preference0 != preference1 ||
		preference0 == tournament.ColorNone ||
		preference1 == tournament.ColorNone
}

// FindFirstColorDifference walks both players' played-game colors from the
// most recent game backwards and returns the colors at the first position
// where they differ. When either history runs out first it returns
// ColorNone for both.
func FindFirstColorDifference(player0,
	player1 *tournament.Player) (tournament.Color, tournament.Color) {

	colors0 := player0.PlayedColors()
	colors1 := player1.PlayedColors()
	for i, j := len(colors0)-1, len(colors1)-1; i >= 0 && j >= 0; i, j = i-1, j-1 {
		if colors0[i] != colors1[j] {
			return colors0[i], colors1[j]
		}
	}

	return tournament.ColorNone, tournament.ColorNone
}

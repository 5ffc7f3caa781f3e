/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/mikeb26/boylstonchessclub-pairings/internal"
	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

func playerCell(t *tournament.Tournament, idx tournament.PlayerIndex) string {
	p := t.Player(idx)
	rating := "unr."
	if p.Rating != 0 {
		rating = strconv.Itoa(p.Rating)
	}

	return fmt.Sprintf("%s(%v %v)", p.Name, rating,
		internal.ScoreToString(t.Score(idx).Float()))
}

// BuildPairingsOutput formats predicted pairings into grouped, aligned
// tables. Board numbers run on across sections.
func BuildPairingsOutput(preds []SectionPrediction) string {
	var sb strings.Builder

	sb.WriteString("* Please note that pairings are tentative and subject to change before the start of the round.\n\n")
	if len(preds) == 0 {
		sb.WriteString("No entries to pair\n")
		return sb.String()
	}
	sb.WriteString("Predicted round 1 pairings:\n\n")

	board := 1
	for _, pred := range preds {
		t := pred.Tournament
		type row struct{ board, white, black string }
		var rows []row
		for _, p := range pred.Matching.Pairings {
			rows = append(rows, row{board: fmt.Sprintf("%d.", board),
				white: playerCell(t, p.White), black: playerCell(t, p.Black)})
			board++
		}
		byes := pred.Matching.Byes(t)
		byeIdxs := lo.Keys(byes)
		slices.Sort(byeIdxs)
		for _, idx := range byeIdxs {
			bl := "BYE(½)"
			if byes[idx] == tournament.ResultPairingBye {
				bl = "BYE(1)"
			}
			rows = append(rows, row{board: "n/a", white: playerCell(t, idx), black: bl})
		}

		maxB, maxW, maxBl := len("Board"), len("White"), len("Black")
		for _, r := range rows {
			maxB = max(maxB, len(r.board))
			maxW = max(maxW, len(r.white))
			maxBl = max(maxBl, len(r.black))
		}

		writeSectionHeader(&sb, pred.Section, len(preds))
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxB, "Board", maxW,
			"White", maxBl, "Black"))
		for _, r := range rows {
			sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxB, r.board,
				maxW, r.white, maxBl, r.black))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swisssystems

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

// PrintChecklist writes an aligned table with one row per player, in the
// order given. rowFn must return exactly one value per header.
func PrintChecklist(w io.Writer, headers []string,
	rowFn func(*tournament.Player) []string, t *tournament.Tournament,
	players []*tournament.Player) error {

	rows := make([][]string, 0, len(players))
	for _, p := range players {
		row := rowFn(p)
		if len(row) != len(headers) {
			return fmt.Errorf("checklist row for player %d has %d columns; expected %d",
				p.ID.PairingNumber(), len(row), len(headers))
		}
		rows = append(rows, row)
	}

	if t.Name != "" {
		fmt.Fprintf(w, "%s: checklist after round %d\n\n", t.Name, t.PlayedRounds)
	}

	return WriteTable(w, headers, rows)
}

// WriteTable writes rows under headers with every column padded to its
// widest cell and two spaces between columns.
func WriteTable(w io.Writer, headers []string, rows [][]string) error {
	widths := make([]int, len(headers))
	for _, row := range append([][]string{headers}, rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	var sb strings.Builder
	writeRow(&sb, headers, widths)
	for _, row := range rows {
		writeRow(&sb, row, widths)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeRow(sb *strings.Builder, cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString("  ")
		}
		if i == len(cells)-1 {
			sb.WriteString(cell)
			break
		}
		sb.WriteString(cell)
		sb.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
	}
	sb.WriteString("\n")
}

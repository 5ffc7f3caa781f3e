/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package burstein

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mikeb26/boylstonchessclub-pairings/swisssystems"
	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

var checklistHeaders = []string{"No", "Name", "Rtg", "Pts", "Acc", "SB", "BH",
	"Pref", "Byes", "Rounds"}

func printChecklist(w io.Writer, t *tournament.Tournament) error {
	players := make([]*tournament.Player, 0, len(t.Players))
	for i := range t.Players {
		players = append(players, &t.Players[i])
	}
	swisssystems.SortPlayers(players, t)

	return swisssystems.PrintChecklist(w, checklistHeaders,
		func(p *tournament.Player) []string {
			return checklistRow(t, p)
		}, t, players)
}

func checklistRow(t *tournament.Tournament, p *tournament.Player) []string {
	pref := p.ColorPreference().Short()
	if p.Withdrawn {
		pref = "wd"
	}

	return []string{
		strconv.Itoa(p.ID.PairingNumber()),
		p.Name,
		strconv.Itoa(p.Rating),
		t.Score(p.ID).String(),
		t.Acceleration(p.ID, t.PlayedRounds).String(),
		fmt.Sprintf("%.2f", t.SonnebornBerger(p.ID).Float()/2),
		t.Buchholz(p.ID).String(),
		pref,
		strconv.Itoa(p.ByeCount()),
		history(p),
	}
}

// history renders one cell per round, e.g. "+5w" for a win with white
// against pairing number 5, or "U" for a pairing bye.
func history(p *tournament.Player) string {
	cells := make([]string, 0, len(p.Matches))
	for _, m := range p.Matches {
		if m.Opponent == tournament.NoPlayer {
			cells = append(cells, m.Result.Code())
			continue
		}
		cells = append(cells, fmt.Sprintf("%v%d%v", m.Result.Code(),
			m.Opponent.PairingNumber(), m.Color.Letter()))
	}

	return strings.Join(cells, " ")
}

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mikeb26/boylstonchessclub-pairings/swisssystems"
	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

func playerLabel(t *tournament.Tournament, idx tournament.PlayerIndex) string {
	p := t.Player(idx)
	return fmt.Sprintf("%d %s (%v)", idx.PairingNumber(), p.Name, t.Score(idx))
}

func printPairings(w io.Writer, t *tournament.Tournament,
	m *swisssystems.Matching) error {

	fmt.Fprintf(w, "%s: round %d pairings\n\n", t.Name, t.PlayedRounds+1)

	var rows [][]string
	for i, p := range m.Pairings {
		rows = append(rows, []string{strconv.Itoa(i + 1), playerLabel(t, p.White),
			playerLabel(t, p.Black)})
	}
	for i := range t.Players {
		idx := t.Players[i].ID
		switch {
		case idx == m.Bye:
			rows = append(rows, []string{"-", playerLabel(t, idx), "BYE"})
		case t.Players[i].Withdrawn:
		case t.Players[i].RequestedBye:
			rows = append(rows, []string{"-", playerLabel(t, idx), "requested bye"})
		}
	}

	return swisssystems.WriteTable(w, []string{"Board", "White", "Black"}, rows)
}

func printStandings(w io.Writer, t *tournament.Tournament) error {
	fmt.Fprintf(w, "%s: standings after round %d\n\n", t.Name, t.PlayedRounds)

	r := swisssystems.NewStandingsRanking(t)
	var rows [][]string
	for place, idx := range r.Ranked(t, nil) {
		p := t.Player(idx)
		name := p.Name
		if p.Withdrawn {
			name += " (wd)"
		}
		rows = append(rows, []string{strconv.Itoa(place + 1),
			strconv.Itoa(idx.PairingNumber()), name, strconv.Itoa(p.Rating),
			r.Score(idx).String(), r.Buchholz(idx).String(),
			fmt.Sprintf("%.2f", r.SonnebornBerger(idx).Float()/2)})
	}

	return swisssystems.WriteTable(w, []string{"Place", "No", "Name", "Rtg", "Pts", "BH", "SB"},
		rows)
}

// parseResults reads one result code per board, e.g. "1,=,0,+".
func parseResults(s string) ([]tournament.Result, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var results []tournament.Result
	for _, code := range strings.Split(s, ",") {
		r, err := tournament.ParseResult(strings.TrimSpace(code))
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	return results, nil
}

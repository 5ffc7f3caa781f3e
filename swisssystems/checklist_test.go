/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swisssystems

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

func TestPrintChecklist(t *testing.T) {
	tourney := sixPlayers(t)
	players := make([]*tournament.Player, 0, len(tourney.Players))
	for i := range tourney.Players {
		players = append(players, &tourney.Players[i])
	}
	SortPlayers(players, tourney)

	var buf bytes.Buffer
	err := PrintChecklist(&buf, []string{"No", "Name", "Pts"},
		func(p *tournament.Player) []string {
			return []string{strconv.Itoa(p.ID.PairingNumber()), p.Name,
				tourney.Score(p.ID).String()}
		}, tourney, players)
	require.NoError(t, err)

	want := "order: checklist after round 1\n\n" +
		"No  Name  Pts\n" +
		"1   A     1.0\n" +
		"3   C     1.0\n" +
		"2   B     0.5\n" +
		"5   E     0.5\n" +
		"4   D     0.0\n" +
		"6   F     0.0\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintChecklistRejectsShortRows(t *testing.T) {
	tourney := sixPlayers(t)
	var buf bytes.Buffer
	err := PrintChecklist(&buf, []string{"a", "b"},
		func(*tournament.Player) []string { return []string{"x"} },
		tourney, []*tournament.Player{&tourney.Players[0]})
	assert.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestWriteTable(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteTable(&sb, []string{"No", "Name"},
		[][]string{{"1", "Anna"}, {"10", "Zoë"}}))
	assert.Equal(t, "No  Name\n1   Anna\n10  Zoë\n", sb.String())
}

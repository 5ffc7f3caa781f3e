/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEntriesPrefersAPI(t *testing.T) {
	client := newTestClient(t)
	detail, src, err := client.GetEntries(context.Background(), 1312)
	require.NoError(t, err)

	assert.Equal(t, SourceAPI, src)
	assert.Len(t, detail.Entries, 7)
}

func TestGetEntriesFallsBackToWebsite(t *testing.T) {
	client := newTestClient(t)
	detail, src, err := client.GetEntries(context.Background(), 1400)
	require.NoError(t, err)

	assert.Equal(t, SourceWebsite, src)
	assert.Equal(t, "Tuesday Night Swiss", detail.Title)
	require.Len(t, detail.Entries, 2)
	assert.Equal(t, "Andrew Hoy", displayName(detail.Entries[0]))
	assert.Equal(t, 12846607, detail.Entries[0].UscfID)
	assert.Equal(t, "Open", detail.Entries[0].SectionName)
	assert.Equal(t, 1950, strRatingToInt(detail.Entries[1].PrimaryRating))
	assert.Equal(t, 12345678, detail.Entries[1].UscfID)
	assert.True(t, byeRequested(detail.Entries[1].ByeRequests, 1))
}

func TestGetEntriesFailsWhenBothSourcesFail(t *testing.T) {
	client := newTestClient(t)
	_, _, err := client.GetEntries(context.Background(), 9999)
	assert.Error(t, err)
}

func TestParseEntriesWithoutHeader(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<table id="members"><tbody>
<tr><td>1</td><td>Cy Castle</td><td>2010</td><td>42</td></tr></tbody></table>`))
	require.NoError(t, err)

	entries := parseEntries(doc)
	require.Len(t, entries, 1)
	assert.Equal(t, Entry{FirstName: "Cy", LastName: "Castle", UscfID: 42,
		PrimaryRating: "2010"}, entries[0])
}

func TestBuildEntriesOutput(t *testing.T) {
	client := newTestClient(t)
	detail, err := client.GetEventDetail(context.Background(), 1312)
	require.NoError(t, err)

	out := BuildEntriesOutput(detail.Entries)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "Open Section", lines[0])
	assert.Equal(t, []string{"Player", "Rating", "USCF", "memid"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"Andrew", "Hoy", "2205", "12846607"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"Cy", "Castle", "2010", "0"}, strings.Fields(lines[3]))
	assert.Contains(t, out, "U1800 Section\n")
	assert.Regexp(t, `Flo Fox\s+unrated`, out)
	assert.Less(t, strings.Index(out, "Open Section"), strings.Index(out, "U1800 Section"))
}

/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEventDetail(t *testing.T) {
	client := newTestClient(t)
	detail, err := client.GetEventDetail(context.Background(), 1312)
	require.NoError(t, err)

	assert.Equal(t, 1312, detail.EventID)
	assert.Equal(t, "Big Money Swiss", detail.Title)
	assert.False(t, detail.StartDate.IsZero())
	assert.True(t, detail.EndDate.IsZero())
	assert.Equal(t, 5, detail.ExpectedRounds())

	require.Len(t, detail.Entries, 7)
	andrew := detail.Entries[0]
	assert.Equal(t, "Hoy", andrew.LastName)
	assert.Equal(t, 12846607, andrew.UscfID)
	assert.Equal(t, 2025, andrew.RegistrationDate.Year())

	_, err = client.GetEventDetail(context.Background(), 1400)
	assert.ErrorContains(t, err, "503")
}

func TestExpectedRounds(t *testing.T) {
	cases := []struct {
		detail EventDetail
		want   int
	}{
		{EventDetail{EventFormat: "5-Round Swiss"}, 5},
		{EventDetail{EventFormat: "Swiss", RoundTimes: "4 rounds: 7pm weekly"}, 4},
		{EventDetail{Title: "Tuesday Night 3 Rd Swiss"}, 3},
		{EventDetail{Title: "Tuesday Night Swiss"}, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.detail.ExpectedRounds(), "%+v", c.detail)
	}
}

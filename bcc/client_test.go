/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

const eventJSON = `{
  "eventId": 1312,
  "title": "Big Money Swiss",
  "startDate": "2025-06-07T10:00:00",
  "endDate": "",
  "eventFormat": "5-Round Swiss",
  "sections": ["Open", "U1800"],
  "entries": [
    {"firstName": "Andrew", "lastName": "Hoy", "uscfId": 12846607, "sectionName": "Open",
     "primaryRating": "2205", "registrationDate": "2025-05-30T12:00:00"},
    {"firstName": "Bea", "lastName": "Bishop", "uscfId": 1, "sectionName": "Open",
     "primaryRating": "1950/20", "byeRequests": "round 1"},
    {"firstName": "Cy", "lastName": "Castle", "sectionName": "Open", "primaryRating": "2010"},
    {"firstName": "Di", "lastName": "Dunn", "sectionName": "Open", "primaryRating": "1800"},
    {"firstName": "Ed", "lastName": "Eng", "sectionName": "U1800", "primaryRating": "1700"},
    {"firstName": "Flo", "lastName": "Fox", "sectionName": "U1800", "primaryRating": ""},
    {"firstName": "Gus", "lastName": "Grey", "sectionName": "U1800", "primaryRating": "1650"}
  ]
}`

const entriesHTML = `<html><body><h1>Tuesday Night Swiss</h1>
<table id="members">
<thead><tr><th>#</th><th>Name</th><th>Rating</th><th>USCF ID</th><th>Section</th><th>Byes</th></tr></thead>
<tbody>
<tr><td>1</td><td>andrew  hoy</td><td>2205</td><td>12846607</td><td>Open</td><td></td></tr>
<tr><td>2</td><td>Bea Bishop</td><td>1950/20</td>
  <td><a href="https://www.uschess.org/msa/MbrDtlMain.php?12345678">view</a></td><td>Open</td><td>1</td></tr>
<tr><td>bad row</td></tr>
</tbody></table></body></html>`

// newTestClient serves event 1312 from the API and event 1400 only from the
// website.
func newTestClient(t *testing.T) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/event/1312", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, eventJSON)
	})
	mux.HandleFunc("/api/event/1400", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	})
	mux.HandleFunc("/tournament/entries/1400", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, entriesHTML)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &Client{
		apiBaseURL: srv.URL + "/api",
		webBaseURL: srv.URL,
		httpClient: srv.Client(),
		logger:     zap.NewNop(),
	}
}

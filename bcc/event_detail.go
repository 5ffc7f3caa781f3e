/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/mikeb26/boylstonchessclub-pairings/internal"
)

// EventDetail is the event record vended by <api>/event/<eventId>.
type EventDetail struct {
	EventID        int       `json:"eventId"`
	Title          string    `json:"title"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	DateDisplay    string    `json:"dateDisplay"`
	Sections       []string  `json:"sections"`
	SectionDisplay string    `json:"sectionDisplay"`
	EventFormat    string    `json:"eventFormat"`
	TimeControl    string    `json:"timeControl"`
	RoundTimes     string    `json:"roundTimes"`
	NumEntries     int       `json:"numEntries"`
	Entries        []Entry   `json:"entries"`
}

// Entry is a single registration for an event.
type Entry struct {
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	UscfID           int       `json:"uscfId"`
	ChessTitle       string    `json:"chessTitle"`
	SectionName      string    `json:"sectionName"`
	RegistrationDate time.Time `json:"registrationDate"`
	ByeRequests      string    `json:"byeRequests"`
	PrimaryRating    string    `json:"primaryRating"`
	SecondaryRating  string    `json:"secondaryRating"`
}

// GetEventDetail fetches the event record, including its registered
// entries, from the club API.
func (client *Client) GetEventDetail(ctx context.Context,
	eventID int64) (*EventDetail, error) {

	url := fmt.Sprintf("%v/event/%d", client.apiBaseURL, eventID)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch bcc event detail (new): %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch bcc event detail (do): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to fetch bcc event detail (http): %v",
			resp.StatusCode)
	}

	var detail EventDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("unable to parse bcc event detail: %w", err)
	}

	return &detail, nil
}

var roundCountRe = regexp.MustCompile(`(?i)\b(\d+)[\s-]*(?:round|rd|rnd)s?\b`)

// ExpectedRounds guesses the number of rounds from the format and round
// time descriptions, e.g. "5-Round Swiss". It returns 0 when neither says.
func (ed *EventDetail) ExpectedRounds() int {
	for _, s := range []string{ed.EventFormat, ed.RoundTimes, ed.Title} {
		if m := roundCountRe.FindStringSubmatch(s); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				return n
			}
		}
	}

	return 0
}

func (ed *EventDetail) UnmarshalJSON(data []byte) error {
	type Alias EventDetail
	aux := &struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
		*Alias
	}{
		Alias: (*Alias)(ed),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("EventDetail unmarshal: %w", err)
	}
	var err error
	if ed.StartDate, err = internal.ParseDateOrZero(aux.StartDate); err != nil {
		return fmt.Errorf("parsing EventDetail.StartDate: %w", err)
	}
	if ed.EndDate, err = internal.ParseDateOrZero(aux.EndDate); err != nil {
		return fmt.Errorf("parsing EventDetail.EndDate: %w", err)
	}

	return nil
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	type Alias Entry
	aux := &struct {
		RegistrationDate string `json:"registrationDate"`
		*Alias
	}{
		Alias: (*Alias)(e),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("Entry unmarshal: %w", err)
	}
	var err error
	if e.RegistrationDate, err = internal.ParseDateOrZero(aux.RegistrationDate); err != nil {
		return fmt.Errorf("parsing Entry.RegistrationDate: %w", err)
	}

	return nil
}

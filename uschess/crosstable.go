/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/boylstonchessclub-pairings/internal"
	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

type MemID int

// Outcome is one player's result for a round as the ratings API reports it.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeWin
	OutcomeLoss
	OutcomeDraw
	OutcomeFullBye
	OutcomeHalfBye
	OutcomeForfeitWin
	OutcomeForfeitLoss
	OutcomeUnplayed
)

var outcomeNames = map[string]Outcome{
	"Win":           OutcomeWin,
	"Loss":          OutcomeLoss,
	"Draw":          OutcomeDraw,
	"ByeFull":       OutcomeFullBye,
	"ByeHalf":       OutcomeHalfBye,
	"WinForfeit":    OutcomeForfeitWin,
	"WinByForfeit":  OutcomeForfeitWin,
	"LossForfeit":   OutcomeForfeitLoss,
	"LossByForfeit": OutcomeForfeitLoss,
	"Unplayed":      OutcomeUnplayed,
	"Unpaired":      OutcomeUnplayed,
}

// RoundResult is one round of a cross table row. OpponentPairNum is 0 when
// the round had no opponent.
type RoundResult struct {
	OpponentPairNum int
	Outcome         Outcome
	Color           tournament.Color
}

// CrossTableEntry is one player's row. Ratings are 0 for unrated players.
type CrossTableEntry struct {
	PairNum    int
	PlayerName string
	PlayerID   MemID
	RatingPre  int
	RatingPost int
	Score      float64
	Results    []RoundResult
}

type RatingType int

const (
	RatingTypeRegular RatingType = iota
	RatingTypeQuick
	RatingTypeBlitz
)

// CrossTable is one section of a rated event.
type CrossTable struct {
	SectionName string
	NumRounds   int
	RType       RatingType
	Entries     []CrossTableEntry
}

// RatedEvent is an event together with the cross tables of its sections,
// in section number order.
type RatedEvent struct {
	Event       Event
	CrossTables []*CrossTable
}

type apiRatedEventResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Sections  []struct {
		Number int    `json:"number"`
		Name   string `json:"name"`
	} `json:"sections"`
}

type apiStandingsResponse struct {
	Items []apiStandingItem `json:"items"`
}

type apiStandingItem struct {
	Ordinal       int               `json:"ordinal"`
	MemberID      string            `json:"memberId"`
	FirstName     string            `json:"firstName"`
	LastName      string            `json:"lastName"`
	Score         float64           `json:"score"`
	RoundOutcomes []apiRoundOutcome `json:"roundOutcomes"`
	Ratings       []apiRatingChange `json:"ratings"`
}

type apiRoundOutcome struct {
	Outcome         string `json:"outcome"`
	Color           string `json:"color"`
	OpponentOrdinal int    `json:"opponentOrdinal"`
}

type apiRatingChange struct {
	PreRating    int    `json:"preRating"`
	PostRating   int    `json:"postRating"`
	RatingSystem string `json:"ratingSystem"`
}

// FetchCrossTables retrieves an event with the cross tables of all of its
// sections. Sections are fetched concurrently; a section that cannot be
// fetched is logged and skipped.
func (client *Client) FetchCrossTables(ctx context.Context,
	id EventID) (*RatedEvent, error) {

	var eventData apiRatedEventResponse
	// these are rarely (if ever) updated so 1 month cache is fine for our use case
	err := client.getJSON(ctx, client.httpClient30day,
		fmt.Sprintf("%v/rated-events/%v", client.baseURL, id), "event", &eventData)
	if err != nil {
		return nil, err
	}

	sections := eventData.Sections
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].Number < sections[j].Number
	})
	crossTables := make([]*CrossTable, len(sections))
	g, gctx := errgroup.WithContext(ctx)
	for i, section := range sections {
		g.Go(func() error {
			var standings apiStandingsResponse
			err := client.getJSON(gctx, client.httpClient30day,
				fmt.Sprintf("%v/rated-events/%v/sections/%d/standings", client.baseURL,
					id, section.Number), "standings", &standings)
			if err != nil {
				client.logger.Warn("failed to fetch section",
					zap.Int("event", int(id)), zap.Int("section", section.Number),
					zap.Error(err))
				return nil
			}
			crossTables[i] = client.newCrossTable(section.Name, standings.Items)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	endDate, err := internal.ParseDateOrZero(eventData.EndDate)
	if err != nil {
		client.logger.Warn("unable to parse event end date",
			zap.String("endDate", eventData.EndDate), zap.Error(err))
	}

	return &RatedEvent{
		Event: Event{ID: id, Name: eventData.Name, EndDate: endDate},
		CrossTables: lo.Filter(crossTables, func(xt *CrossTable, _ int) bool {
			return xt != nil
		}),
	}, nil
}

func (client *Client) getJSON(ctx context.Context, httpClient *http.Client,
	url string, what string, out any) error {

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("unable to create %v request: %w", what, err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("unable to fetch %v: %w", what, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected %v status %d: %s", what, resp.StatusCode,
			string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse %v JSON: %w", what, err)
	}

	return nil
}

func (client *Client) newCrossTable(sectionName string,
	items []apiStandingItem) *CrossTable {

	xt := &CrossTable{SectionName: "Section " + sectionName}
	if len(items) > 0 {
		// dual-rated sections are reported as regular
		xt.RType = sectionRatingType(items[0].Ratings)
	}

	for _, item := range items {
		memberID, err := strconv.Atoi(item.MemberID)
		if err != nil {
			client.logger.Warn("failed to convert member ID",
				zap.String("memberId", item.MemberID), zap.Error(err))
		}
		entry := CrossTableEntry{
			PairNum:    item.Ordinal,
			PlayerName: internal.NormalizeName(item.FirstName + " " + item.LastName),
			PlayerID:   MemID(memberID),
			Score:      item.Score,
			Results: lo.Map(item.RoundOutcomes, func(o apiRoundOutcome, _ int) RoundResult {
				color, _ := tournament.ParseColor(o.Color)
				return RoundResult{
					OpponentPairNum: o.OpponentOrdinal,
					Outcome:         outcomeNames[o.Outcome],
					Color:           color,
				}
			}),
		}
		if rating, ok := lo.Find(item.Ratings, func(r apiRatingChange) bool {
			return ratingSystemType(r.RatingSystem) == xt.RType
		}); ok {
			entry.RatingPre = rating.PreRating
			entry.RatingPost = rating.PostRating
		}
		xt.NumRounds = max(xt.NumRounds, len(entry.Results))
		xt.Entries = append(xt.Entries, entry)
	}

	return xt
}

func ratingSystemType(system string) RatingType {
	switch strings.ToUpper(system) {
	case "B":
		return RatingTypeBlitz
	case "Q":
		return RatingTypeQuick
	default:
		return RatingTypeRegular
	}
}

func sectionRatingType(ratings []apiRatingChange) RatingType {
	if len(ratings) == 0 || lo.ContainsBy(ratings, func(r apiRatingChange) bool {
		return r.RatingSystem == "R" || r.RatingSystem == "D"
	}) {
		return RatingTypeRegular
	}
	return ratingSystemType(ratings[0].RatingSystem)
}

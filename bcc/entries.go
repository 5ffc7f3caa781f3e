/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GetEntries returns the event with its registered entries. The API and the
// public entries page are fetched concurrently; the API wins whenever it
// answers with at least one entry.
func (client *Client) GetEntries(ctx context.Context,
	eventID int64) (*EventDetail, Source, error) {

	var viaAPI, viaWeb *EventDetail
	var apiErr, webErr error

	var g errgroup.Group
	g.Go(func() error {
		viaAPI, apiErr = client.GetEventDetail(ctx, eventID)
		return nil
	})
	g.Go(func() error {
		viaWeb, webErr = client.getEntriesViaWeb(ctx, eventID)
		return nil
	})
	_ = g.Wait()

	if apiErr == nil && len(viaAPI.Entries) > 0 {
		return viaAPI, SourceAPI, nil
	}
	if apiErr != nil {
		client.logger.Warn("bcc api unavailable; using website entries",
			zap.Int64("event", eventID), zap.Error(apiErr))
	}
	if webErr != nil {
		if apiErr != nil {
			return nil, SourceAPI, apiErr
		}
		return viaAPI, SourceAPI, nil
	}
	if viaAPI != nil {
		// keep the API's event metadata
		viaAPI.Entries = viaWeb.Entries
		viaAPI.NumEntries = len(viaWeb.Entries)
		return viaAPI, SourceWebsite, nil
	}

	return viaWeb, SourceWebsite, nil
}

func (client *Client) getEntriesViaWeb(ctx context.Context,
	eventID int64) (*EventDetail, error) {

	url := fmt.Sprintf("%v/tournament/entries/%d", client.webBaseURL, eventID)
	doc, err := client.fetchDoc(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch entries page: %w", err)
	}

	detail := &EventDetail{
		EventID: int(eventID),
		Title:   strings.TrimSpace(doc.Find("h1").First().Text()),
		Entries: parseEntries(doc),
	}
	detail.NumEntries = len(detail.Entries)

	return detail, nil
}

var uscfLinkRe = regexp.MustCompile(`MbrDtlMain\.php\?(\d{6,8})`)

// memberColumns maps lower-cased header names of the members table to their
// column. Pages without a header use the number, name, rating, id layout.
func memberColumns(doc *goquery.Document) map[string]int {
	heads := doc.Find("table#members thead th")
	if heads.Length() == 0 {
		return map[string]int{"name": 1, "rating": 2, "uscf id": 3}
	}
	cols := make(map[string]int)
	heads.Each(func(i int, s *goquery.Selection) {
		cols[strings.ToLower(strings.TrimSpace(s.Text()))] = i
	})

	return cols
}

// parseEntries reads the public members table.
func parseEntries(doc *goquery.Document) []Entry {
	cols := memberColumns(doc)
	var entries []Entry
	doc.Find("table#members tbody tr").Each(func(_ int, s *goquery.Selection) {
		cells := s.Find("td")
		cell := func(col string) *goquery.Selection {
			i, ok := cols[col]
			if !ok || i >= cells.Length() {
				return nil
			}
			return cells.Eq(i)
		}
		text := func(col string) string {
			if c := cell(col); c != nil {
				return strings.TrimSpace(c.Text())
			}
			return ""
		}

		name := strings.Fields(text("name"))
		if len(name) == 0 || cell("rating") == nil {
			return
		}
		e := Entry{
			FirstName:     name[0],
			LastName:      strings.Join(name[1:], " "),
			PrimaryRating: text("rating"),
			SectionName:   text("section"),
			ByeRequests:   text("byes"),
		}
		e.UscfID, _ = strconv.Atoi(text("uscf id"))
		if c := cell("uscf id"); e.UscfID == 0 && c != nil {
			if m := uscfLinkRe.FindStringSubmatch(c.Find("a").AttrOr("href", "")); m != nil {
				e.UscfID, _ = strconv.Atoi(m[1])
			}
		}
		entries = append(entries, e)
	})

	return entries
}

// entriesBySection groups entries by section and returns the section names
// in display order.
func entriesBySection(entries []Entry) (map[string][]Entry, []string) {
	bySection := lo.GroupBy(entries, func(e Entry) string {
		return e.SectionName
	})
	names := lo.Keys(bySection)
	slices.SortFunc(names, CompareSections)

	return bySection, names
}

// BuildEntriesOutput formats entries into grouped, aligned string output
func BuildEntriesOutput(entries []Entry) string {
	bySection, sectionNames := entriesBySection(entries)
	var sb strings.Builder

	for _, sec := range sectionNames {
		type row struct {
			player, rating   string
			memid, ratingInt int
		}
		rows := lo.Map(bySection[sec], func(e Entry, _ int) row {
			r := row{player: displayName(e), rating: "unrated", memid: e.UscfID,
				ratingInt: strRatingToInt(e.PrimaryRating)}
			if r.ratingInt != 0 {
				r.rating = strconv.Itoa(r.ratingInt)
			}
			return r
		})
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].ratingInt > rows[j].ratingInt
		})

		maxP, maxR, maxM := len("Player"), len("Rating"), len("USCF memid")
		for _, r := range rows {
			maxP = max(maxP, len(r.player))
			maxR = max(maxR, len(r.rating))
			maxM = max(maxM, len(strconv.Itoa(r.memid)))
		}

		writeSectionHeader(&sb, sec, len(sectionNames))
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxP, "Player", maxR,
			"Rating", maxM, "USCF memid"))
		for _, r := range rows {
			sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*v\n", maxP, r.player,
				maxR, r.rating, maxM, r.memid))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeSectionHeader(sb *strings.Builder, sec string, numSections int) {
	if numSections <= 1 {
		return
	}
	if sec == "" {
		sec = "UNNAMED"
	}
	sb.WriteString(fmt.Sprintf("%s Section\n", sec))
}

/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"cmp"
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mikeb26/boylstonchessclub-pairings/internal"
)

type Source int

const (
	SourceAPI Source = iota
	SourceWebsite
)

func (s Source) String() string {
	switch s {
	case SourceAPI:
		return "api"
	case SourceWebsite:
		return "website"
	default:
		return "?"
	}
}

// displayName joins an entry's name parts the way the club site shows them.
func displayName(e Entry) string {
	return internal.NormalizeName(strings.TrimSpace(e.FirstName + " " + e.LastName))
}

// strRatingToInt accepts "1500", "559/24" (rating/games) or garbage, which
// counts as unrated.
func strRatingToInt(rating string) int {
	r := 0
	if rating != "" {
		if idx := strings.Index(rating, "/"); idx != -1 {
			rating = rating[:idx]
		}
		if v, err := strconv.Atoi(strings.TrimSpace(rating)); err == nil {
			r = v
		}
	}

	return r
}

var (
	numOnlyRe   = regexp.MustCompile(`^\d+$`)
	roundListRe = regexp.MustCompile(`(?i)\b(?:round|rnd|rounds|rnds)\b[\s:]*((?:\d+(?:\s*[,&;/]\s*\d+)*))`)
	digitsRe    = regexp.MustCompile(`\d+`)
)

// byeRequested reports whether a free-form bye request such as "1",
// "round 1,5" or "rnds 1&4" names the given round.
func byeRequested(req string, round int) bool {
	s := strings.TrimSpace(req)
	if s == "" {
		return false
	}
	if numOnlyRe.MatchString(s) {
		n, err := strconv.Atoi(s)
		return err == nil && n == round
	}
	if m := roundListRe.FindStringSubmatch(strings.ToLower(s)); m != nil {
		for _, d := range digitsRe.FindAllString(m[1], -1) {
			if n, err := strconv.Atoi(d); err == nil && n == round {
				return true
			}
		}
	}

	return false
}

// sectionTier places Open and Championship sections first, then rating
// limited U<n> sections, then everything else.
func sectionTier(name string) (tier int, limit int) {
	switch {
	case strings.EqualFold(name, "Open"):
		return 0, 0
	case strings.EqualFold(name, "Championship"):
		return 1, 0
	}
	if rest, ok := strings.CutPrefix(strings.ToUpper(name), "U"); ok {
		if n, err := strconv.Atoi(rest); err == nil {
			return 2, n
		}
	}

	return 3, 0
}

// CompareSections orders section names for display: Open, Championship,
// U-sections from the highest limit down, then the rest alphabetically.
func CompareSections(a, b string) int {
	ta, la := sectionTier(a)
	tb, lb := sectionTier(b)
	if ta != tb {
		return cmp.Compare(ta, tb)
	}
	if la != lb {
		return cmp.Compare(lb, la)
	}

	return strings.Compare(a, b)
}

// fetchDoc gets the HTML document at the given URL using the configured User-Agent.
func (client *Client) fetchDoc(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/boylstonchessclub-pairings/swisssystems"
	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

// SectionPrediction is the predicted first round of one section.
type SectionPrediction struct {
	Section    string
	Tournament *tournament.Tournament
	Matching   *swisssystems.Matching
}

type PredictOptions struct {
	System         swisssystems.SwissSystem
	ExpectedRounds int
	// Timeout bounds each section's pairing search; zero means no limit.
	Timeout time.Duration
	// Configure, when set, adjusts each section tournament before pairing.
	Configure func(*tournament.Tournament)
}

// SectionTournament builds the round-1 tournament of one section. Players
// are numbered by rating, highest first; entries asking for a round 1 bye
// are marked as requested byes.
func SectionTournament(section string, entries []Entry,
	expectedRounds int) *tournament.Tournament {

	sorted := append([]Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := strRatingToInt(sorted[i].PrimaryRating),
			strRatingToInt(sorted[j].PrimaryRating)
		if ri != rj {
			return ri > rj
		}
		return displayName(sorted[i]) < displayName(sorted[j])
	})

	name := section
	if name == "" {
		name = "UNNAMED"
	}
	t := tournament.New(name, expectedRounds)
	for _, e := range sorted {
		idx := t.AddPlayer(displayName(e), strRatingToInt(e.PrimaryRating))
		t.Player(idx).RequestedBye = byeRequested(e.ByeRequests, 1)
	}

	return t
}

// PredictRound1 pairs the first round of every section concurrently.
// Results come back in section display order.
func PredictRound1(ctx context.Context, entries []Entry,
	opts PredictOptions) ([]SectionPrediction, error) {

	info, err := swisssystems.GetInfo(opts.System)
	if err != nil {
		return nil, err
	}

	bySection, names := entriesBySection(entries)
	preds := make([]SectionPrediction, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, sec := range names {
		g.Go(func() error {
			t := SectionTournament(sec, bySection[sec], opts.ExpectedRounds)
			if opts.Configure != nil {
				opts.Configure(t)
			}
			if err := swisssystems.UpdateAccelerationsIfSupported(info, t); err != nil {
				return fmt.Errorf("section %v: %w", t.Name, err)
			}

			pctx := gctx
			if opts.Timeout > 0 {
				var cancel context.CancelFunc
				pctx, cancel = context.WithTimeout(gctx, opts.Timeout)
				defer cancel()
			}
			m, err := swisssystems.ComputeMatchingContext(pctx, info, t, nil)
			if err != nil {
				return fmt.Errorf("section %v: %w", t.Name, err)
			}
			preds[i] = SectionPrediction{Section: sec, Tournament: t, Matching: m}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return preds, nil
}

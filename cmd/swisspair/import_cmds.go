/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/mikeb26/boylstonchessclub-pairings/bcc"
	"github.com/mikeb26/boylstonchessclub-pairings/internal"
	"github.com/mikeb26/boylstonchessclub-pairings/swisssystems"
	"github.com/mikeb26/boylstonchessclub-pairings/uschess"
)

func (e *env) importUSCFCommand() *cli.Command {
	return &cli.Command{
		Name:      "import-uscf",
		Usage:     "import a rated USCF section as a tournament ready for its next round",
		ArgsUsage: "EVENT_ID",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "section", Value: 1, Usage: "1-based section number"},
			&cli.StringFlag{Name: "name", Usage: "stored tournament name (default: EVENT_ID-SECTION)"},
			&cli.IntFlag{Name: "rounds", Usage: "expected number of rounds"},
		},
		Action: func(c *cli.Context) error {
			eventID, err := strconv.Atoi(c.Args().First())
			if err != nil {
				return fmt.Errorf("import-uscf: invalid event id %q", c.Args().First())
			}
			client := uschess.NewClient(c.Context, e.logger, e.cfg.HTTPCache.Bucket)
			event, err := client.FetchCrossTables(c.Context, uschess.EventID(eventID))
			if err != nil {
				return err
			}
			sec := c.Int("section")
			if sec < 1 || sec > len(event.CrossTables) {
				return fmt.Errorf("import-uscf: event %d has %d sections", eventID,
					len(event.CrossTables))
			}
			xt := event.CrossTables[sec-1]

			name := c.String("name")
			if name == "" {
				name = fmt.Sprintf("%d-%d", eventID, sec)
			}
			t, err := xt.ToTournament(event.Event.Name+" "+xt.SectionName, c.Int("rounds"))
			if err != nil {
				return err
			}
			// imported histories keep the USCF scoring
			ps := t.PointSystem
			e.cfg.Apply(t)
			t.PointSystem = ps
			if err := e.store.Save(c.Context, name, t); err != nil {
				return err
			}
			e.logger.Info("imported uscf section", zap.Int("event", eventID),
				zap.String("section", xt.SectionName), zap.Int("players", len(t.Players)))
			fmt.Fprintf(c.App.Writer, "imported %v as %v: %d players after %d rounds\n",
				t.Name, name, len(t.Players), t.PlayedRounds)
			return nil
		},
	}
}

func (e *env) uscfEventsCommand() *cli.Command {
	return &cli.Command{
		Name:  "uscf-events",
		Usage: "list an affiliate's rated events",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "affiliate", Value: internal.BccUSCFAffiliateID,
				Usage: "USCF affiliate id"},
			&cli.IntFlag{Name: "limit", Value: 20, Usage: "maximum events to list"},
		},
		Action: func(c *cli.Context) error {
			client := uschess.NewClient(c.Context, e.logger, e.cfg.HTTPCache.Bucket)
			events, err := client.GetAffiliateEvents(c.Context, c.String("affiliate"),
				c.Int("limit"))
			if err != nil {
				return err
			}

			var rows [][]string
			for _, ev := range events {
				rows = append(rows, []string{ev.EndDate.Format("2006-01-02"),
					strconv.Itoa(int(ev.ID)), ev.Name})
			}
			return swisssystems.WriteTable(c.App.Writer, []string{"Date", "Event", "Name"}, rows)
		},
	}
}

// seedCacheCommand warms the HTTP cache with the crosstables of an
// affiliate's recent events so later imports are served from the cache.
func (e *env) seedCacheCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed-cache",
		Usage: "fetch an affiliate's recent crosstables into the HTTP cache",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "affiliate", Value: internal.BccUSCFAffiliateID,
				Usage: "USCF affiliate id"},
			&cli.IntFlag{Name: "limit", Value: 20, Usage: "maximum events to fetch"},
			&cli.DurationFlag{Name: "delay", Value: 2 * time.Second,
				Usage: "pause between fetches to avoid pegging the ratings API"},
		},
		Action: func(c *cli.Context) error {
			client := uschess.NewClient(c.Context, e.logger, e.cfg.HTTPCache.Bucket)
			events, err := client.GetAffiliateEvents(c.Context, c.String("affiliate"),
				c.Int("limit"))
			if err != nil {
				return err
			}

			for i, ev := range events {
				if i > 0 {
					select {
					case <-time.After(c.Duration("delay")):
					case <-c.Context.Done():
						return c.Context.Err()
					}
				}
				if _, err := client.FetchCrossTables(c.Context, ev.ID); err != nil {
					// best effort
					e.logger.Warn("seed failed", zap.Int("event", int(ev.ID)), zap.Error(err))
					continue
				}
				fmt.Fprintf(c.App.Writer, "seeded ev:%v\n", ev.Name)
			}
			return nil
		},
	}
}

func (e *env) predictBCCCommand() *cli.Command {
	return &cli.Command{
		Name:      "predict-bcc",
		Usage:     "predict round 1 pairings for a Boylston Chess Club event",
		ArgsUsage: "EVENT_ID",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "rounds",
				Usage: "expected number of rounds (default: read from the event)"},
			&cli.BoolFlag{Name: "entries", Usage: "print the entry list too"},
			&cli.BoolFlag{Name: "save",
				Usage: "store each section as tournament bcc-EVENT_ID-SECTION"},
		},
		Action: func(c *cli.Context) error {
			eventID, err := strconv.ParseInt(c.Args().First(), 10, 64)
			if err != nil {
				return fmt.Errorf("predict-bcc: invalid event id %q", c.Args().First())
			}
			client := bcc.NewClient(c.Context, e.logger, e.cfg.HTTPCache.Bucket,
				e.cfg.HTTPCache.TTL)
			detail, src, err := client.GetEntries(c.Context, eventID)
			if err != nil {
				return err
			}
			e.logger.Debug("bcc entries", zap.Int64("event", eventID),
				zap.Stringer("source", src), zap.Int("entries", len(detail.Entries)))

			rounds := c.Int("rounds")
			if rounds == 0 {
				rounds = detail.ExpectedRounds()
			}
			preds, err := bcc.PredictRound1(c.Context, detail.Entries, bcc.PredictOptions{
				System:         e.cfg.SwissSystem(),
				ExpectedRounds: rounds,
				Timeout:        e.cfg.PairingTimeout,
				Configure:      e.cfg.Apply,
			})
			if err != nil {
				return err
			}

			if detail.Title != "" {
				fmt.Fprintf(c.App.Writer, "%v\n\n", detail.Title)
			}
			if c.Bool("entries") {
				fmt.Fprint(c.App.Writer, bcc.BuildEntriesOutput(detail.Entries))
			}
			fmt.Fprint(c.App.Writer, bcc.BuildPairingsOutput(preds))

			if !c.Bool("save") {
				return nil
			}
			for _, p := range preds {
				name := strings.NewReplacer("/", "-", `\`, "-", " ", "_").Replace(
					fmt.Sprintf("bcc-%d-%v", eventID, p.Tournament.Name))
				if err := e.store.Save(c.Context, name, p.Tournament); err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "saved %v\n", name)
			}
			return nil
		},
	}
}

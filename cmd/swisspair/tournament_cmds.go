/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/mikeb26/boylstonchessclub-pairings/store"
	"github.com/mikeb26/boylstonchessclub-pairings/swisssystems"
	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

func (e *env) newCommand() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "create an empty tournament",
		ArgsUsage: "NAME",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "rounds", Usage: "number of rounds", Required: true},
		},
		Action: func(c *cli.Context) error {
			name := c.Args().First()
			if name == "" {
				return fmt.Errorf("new: missing tournament name")
			}
			_, err := e.store.Load(c.Context, name)
			switch {
			case err == nil:
				return fmt.Errorf("new: tournament %q already exists", name)
			case !errors.Is(err, store.ErrNotFound):
				return err
			}

			t := tournament.New(name, c.Int("rounds"))
			e.cfg.Apply(t)
			if err := e.store.Save(c.Context, name, t); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "created %v (%d rounds)\n", name, t.ExpectedRounds)
			return nil
		},
	}
}

func (e *env) addPlayerCommand() *cli.Command {
	return &cli.Command{
		Name:      "add-player",
		Usage:     "add a player; add players strongest first",
		ArgsUsage: "TOURNAMENT PLAYER_NAME",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "rating", Usage: "player rating, 0 when unrated"},
		},
		Action: func(c *cli.Context) error {
			name, t, err := e.tournamentArg(c)
			if err != nil {
				return err
			}
			playerName := c.Args().Get(1)
			if playerName == "" {
				return fmt.Errorf("add-player: missing player name")
			}
			idx := t.AddPlayer(playerName, c.Int("rating"))
			if t.PlayedRounds > 0 {
				e.logger.Info("late entry receives zero-point byes",
					zap.String("player", playerName), zap.Int("rounds", t.PlayedRounds))
			}
			if err := e.store.Save(c.Context, name, t); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "added #%d %v\n", idx.PairingNumber(), playerName)
			return nil
		},
	}
}

// playerFlagCommand builds a command that flips one per-player flag.
func (e *env) playerFlagCommand(name, usage string,
	set func(p *tournament.Player)) *cli.Command {

	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "TOURNAMENT PAIRING_NUMBER",
		Action: func(c *cli.Context) error {
			tname, t, err := e.tournamentArg(c)
			if err != nil {
				return err
			}
			idx, err := playerArg(c, t, 1)
			if err != nil {
				return err
			}
			set(t.Player(idx))
			if err := e.store.Save(c.Context, tname, t); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "%v: %v\n", name, playerLabel(t, idx))
			return nil
		},
	}
}

func (e *env) withdrawCommand() *cli.Command {
	return e.playerFlagCommand("withdraw", "withdraw a player from all later rounds",
		func(p *tournament.Player) { p.Withdrawn = true })
}

func (e *env) requestByeCommand() *cli.Command {
	return e.playerFlagCommand("request-bye", "give a player a half-point bye next round",
		func(p *tournament.Player) { p.RequestedBye = true })
}

func (e *env) pairCommand() *cli.Command {
	return &cli.Command{
		Name:      "pair",
		Usage:     "pair the next round",
		ArgsUsage: "TOURNAMENT",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"},
				Usage: "write the pairing search diagnostics to stderr"},
			&cli.BoolFlag{Name: "commit",
				Usage: "record the round using --results"},
			&cli.StringFlag{Name: "results",
				Usage: "comma separated white results per board: 1 = 0 + -"},
		},
		Action: func(c *cli.Context) error {
			name, t, err := e.tournamentArg(c)
			if err != nil {
				return err
			}
			info, err := e.info()
			if err != nil {
				return err
			}
			results, err := parseResults(c.String("results"))
			if err != nil {
				return err
			}
			if c.Bool("commit") && results == nil {
				return fmt.Errorf("pair: --commit needs --results")
			}

			if err := swisssystems.UpdateAccelerationsIfSupported(info, t); err != nil {
				return err
			}
			var diag io.Writer
			if c.Bool("verbose") {
				diag = c.App.ErrWriter
			}
			ctx, cancel := context.WithTimeout(c.Context, e.cfg.PairingTimeout)
			defer cancel()
			m, err := swisssystems.ComputeMatchingContext(ctx, info, t, diag)
			if err != nil {
				return fmt.Errorf("round %d: %w", t.PlayedRounds+1, err)
			}
			e.logger.Debug("paired", zap.String("tournament", name),
				zap.Int("round", t.PlayedRounds+1), zap.Int("boards", len(m.Pairings)))
			if err := printPairings(c.App.Writer, t, m); err != nil {
				return err
			}
			if !c.Bool("commit") {
				return nil
			}

			games, err := m.Games(results)
			if err != nil {
				return err
			}
			if err := t.RecordRound(games, m.Byes(t)); err != nil {
				return err
			}
			if err := e.store.Save(c.Context, name, t); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "\nrecorded round %d\n", t.PlayedRounds)
			return nil
		},
	}
}

func (e *env) accelerateCommand() *cli.Command {
	return &cli.Command{
		Name:      "accelerate",
		Usage:     "assign the system's default accelerations for the next round",
		ArgsUsage: "TOURNAMENT",
		Action: func(c *cli.Context) error {
			name, t, err := e.tournamentArg(c)
			if err != nil {
				return err
			}
			info, err := e.info()
			if err != nil {
				return err
			}
			if err := info.UpdateAccelerations(t); err != nil {
				return fmt.Errorf("accelerate %v: %w", e.cfg.SwissSystem(), err)
			}
			if err := e.store.Save(c.Context, name, t); err != nil {
				return err
			}

			var rows [][]string
			for i := range t.Players {
				idx := t.Players[i].ID
				rows = append(rows, []string{playerLabel(t, idx),
					t.Acceleration(idx, t.PlayedRounds).String()})
			}
			return swisssystems.WriteTable(c.App.Writer, []string{"Player", "Acc"}, rows)
		},
	}
}

func (e *env) checklistCommand() *cli.Command {
	return &cli.Command{
		Name:      "checklist",
		Usage:     "print the system's checklist",
		ArgsUsage: "TOURNAMENT",
		Action: func(c *cli.Context) error {
			_, t, err := e.tournamentArg(c)
			if err != nil {
				return err
			}
			info, err := e.info()
			if err != nil {
				return err
			}
			return info.PrintChecklist(c.App.Writer, t)
		},
	}
}

func (e *env) standingsCommand() *cli.Command {
	return &cli.Command{
		Name:      "standings",
		Usage:     "print standings with tie-breaks",
		ArgsUsage: "TOURNAMENT",
		Action: func(c *cli.Context) error {
			_, t, err := e.tournamentArg(c)
			if err != nil {
				return err
			}
			return printStandings(c.App.Writer, t)
		},
	}
}

func (e *env) listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list stored tournaments",
		Action: func(c *cli.Context) error {
			names, err := e.store.List(c.Context)
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(c.App.Writer, n)
			}
			return nil
		},
	}
}

func (e *env) deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "delete a stored tournament",
		ArgsUsage: "TOURNAMENT",
		Action: func(c *cli.Context) error {
			name := c.Args().First()
			if name == "" {
				return fmt.Errorf("delete: missing tournament name")
			}
			if err := e.store.Delete(c.Context, name); err != nil {
				return err
			}
			e.logger.Info("deleted tournament", zap.String("name", name))
			fmt.Fprintf(c.App.Writer, "deleted %v\n", name)
			return nil
		},
	}
}

// systemList names the registered Swiss systems, comma separated.
func systemList() string {
	names := make([]string, 0, 2)
	for _, s := range swisssystems.Systems() {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}

func systemsCommand() *cli.Command {
	return &cli.Command{
		Name:  "systems",
		Usage: "list the available Swiss systems",
		Action: func(c *cli.Context) error {
			for _, s := range swisssystems.Systems() {
				fmt.Fprintln(c.App.Writer, s)
			}
			return nil
		},
	}
}

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/mikeb26/boylstonchessclub-pairings/internal/config"
	"github.com/mikeb26/boylstonchessclub-pairings/internal/logging"
	"github.com/mikeb26/boylstonchessclub-pairings/store"
	"github.com/mikeb26/boylstonchessclub-pairings/swisssystems"
	_ "github.com/mikeb26/boylstonchessclub-pairings/swisssystems/burstein"
	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "swisspair: %v\n", err)
		os.Exit(1)
	}
}

// env is what every command needs once the global flags are parsed.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	store  store.Store
}

func newApp(out, errOut io.Writer) *cli.App {
	e := &env{}

	return &cli.App{
		Name:      "swisspair",
		Usage:     "pair Swiss system chess tournaments",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "swisspair.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"SWISSPAIR_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "system",
				Usage: fmt.Sprintf("override the configured Swiss system (%v)",
					systemList()),
			},
		},
		Before: e.setup,
		After: func(*cli.Context) error {
			if e.logger != nil {
				_ = e.logger.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			e.newCommand(),
			e.addPlayerCommand(),
			e.withdrawCommand(),
			e.requestByeCommand(),
			e.pairCommand(),
			e.accelerateCommand(),
			e.checklistCommand(),
			e.standingsCommand(),
			e.listCommand(),
			e.deleteCommand(),
			systemsCommand(),
			e.importUSCFCommand(),
			e.uscfEventsCommand(),
			e.seedCacheCommand(),
			e.predictBCCCommand(),
		},
	}
}

func (e *env) setup(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if s := c.String("system"); s != "" {
		cfg.System = s
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	e.cfg = cfg

	e.logger, err = logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	e.store, err = store.New(c.Context, cfg.Storage, e.logger)
	if err != nil {
		return err
	}
	e.logger.Debug("configured", zap.String("system", cfg.System),
		zap.String("storageDir", cfg.Storage.Dir),
		zap.String("storageBucket", cfg.Storage.Bucket))

	return nil
}

func (e *env) info() (swisssystems.Info, error) {
	return swisssystems.GetInfo(e.cfg.SwissSystem())
}

// tournamentArg loads the tournament named by the first argument.
func (e *env) tournamentArg(c *cli.Context) (string, *tournament.Tournament, error) {
	name := c.Args().First()
	if name == "" {
		return "", nil, fmt.Errorf("%v: missing tournament name", c.Command.Name)
	}
	t, err := e.store.Load(c.Context, name)
	if err != nil {
		return "", nil, err
	}

	return name, t, nil
}

// playerArg resolves the pairing number in argument i.
func playerArg(c *cli.Context, t *tournament.Tournament,
	i int) (tournament.PlayerIndex, error) {

	n, err := strconv.Atoi(c.Args().Get(i))
	if err != nil || n < 1 || n > len(t.Players) {
		return tournament.NoPlayer, fmt.Errorf("%v: invalid pairing number %q",
			c.Command.Name, c.Args().Get(i))
	}

	return tournament.PlayerIndex(n - 1), nil
}

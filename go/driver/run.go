// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/Fantom-foundation/Boltzmann/go/config"
	cliUtils "github.com/Fantom-foundation/Boltzmann/go/driver/cli"
	"github.com/Fantom-foundation/Boltzmann/go/export"
	"github.com/Fantom-foundation/Boltzmann/go/model"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slices"
)

var RunCmd = cliUtils.AddCommonFlags(cli.Command{
	Action: doRun,
	Name:   "run",
	Usage:  "Runs a simulation and exports its inequality metrics",
	Flags: append(slices.Clone(cliUtils.SimulationFlags),
		cliUtils.OutDirFlag,
		cliUtils.DatabaseFlag,
		cliUtils.RunIdFlag,
	),
})

func doRun(context *cli.Context) error {
	cfg, err := cliUtils.FetchConfig(context)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Context, os.Interrupt)
	defer stop()

	fmt.Printf("Simulating %d agents on a %dx%d grid for %d ticks on the %s ledger with seed %d ...\n",
		cfg.Agents, cfg.Width, cfg.Height, cfg.Ticks, cfg.Ledger, cfg.Seed)

	m, err := simulate(ctx, cfg, printProgress)
	if m == nil {
		return err
	}

	// The history up to the last completed tick is exported even if the
	// run was aborted.
	return errors.Join(
		err,
		printSummary(os.Stdout, m),
		exportHistory(ctx, cfg, m, exportTarget{
			dir:   cliUtils.OutDirFlag.Fetch(context),
			db:    cliUtils.DatabaseFlag.Fetch(context),
			runId: cliUtils.RunIdFlag.Fetch(context),
		}),
	)
}

type exportTarget struct {
	dir   string
	db    string
	runId string
}

// exportHistory writes the model's history to the CSV directory and the
// SQLite database of the target. Empty locations are skipped. The export
// is not affected by a cancellation of the given context.
func exportHistory(ctx context.Context, cfg config.Config, m *model.Model, target exportTarget) error {
	ctx = context.WithoutCancel(ctx)
	history := m.History()
	if target.dir != "" {
		if err := export.WriteCSVFiles(target.dir, history); err != nil {
			return fmt.Errorf("failed to write CSV files: %w", err)
		}
		fmt.Printf("Metrics written to %s\n", target.dir)
	}

	if target.db == "" {
		return nil
	}
	store, err := export.OpenSQLite(target.db)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	run := export.Run{
		ID:     target.runId,
		Seed:   cfg.Seed,
		Agents: cfg.Agents,
		Width:  cfg.Width,
		Height: cfg.Height,
		Ledger: strings.ToLower(cfg.Ledger),
	}
	if run.ID == "" {
		run.ID = fmt.Sprintf("%s-%d", run.Ledger, run.Seed)
	}
	err = store.SaveHistory(ctx, run, history)
	if err == nil {
		fmt.Printf("History stored as run %s in %s\n", run.ID, target.db)
	}
	return errors.Join(err, store.Close())
}

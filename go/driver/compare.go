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
	"fmt"
	"os"
	"os/signal"

	"github.com/Fantom-foundation/Boltzmann/go/config"
	cliUtils "github.com/Fantom-foundation/Boltzmann/go/driver/cli"
	"github.com/Fantom-foundation/Boltzmann/go/metrics"
	"github.com/Fantom-foundation/Boltzmann/go/model"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slices"
)

var CompareCmd = cliUtils.AddCommonFlags(cli.Command{
	Action:    doCompare,
	Name:      "compare",
	Usage:     "Runs the same simulation on two ledgers and reports the first diverging tick",
	ArgsUsage: "<ledger> <ledger>",
	Flags:     slices.Clone(cliUtils.SimulationFlags),
})

func doCompare(context *cli.Context) error {
	if context.Args().Len() != 2 {
		return fmt.Errorf("expected two ledger names, got %d", context.Args().Len())
	}
	cfg, err := cliUtils.FetchConfig(context)
	if err != nil {
		return err
	}
	ledgers := [2]string{context.Args().Get(0), context.Args().Get(1)}

	ctx, stop := signal.NotifyContext(context.Context, os.Interrupt)
	defer stop()

	fmt.Printf("Comparing %s and %s over %d ticks with seed %d ...\n", ledgers[0], ledgers[1], cfg.Ticks, cfg.Seed)
	diff, err := compareLedgers(ctx, cfg, ledgers)
	if err != nil {
		return err
	}
	if diff == nil {
		fmt.Printf("Both ledgers produced identical histories\n")
		return nil
	}
	return diff
}

// divergence describes the first difference between two simulation runs.
type divergence struct {
	Tick   int
	Reason string
}

func (d *divergence) Error() string {
	return fmt.Sprintf("histories diverge at tick %d: %s", d.Tick, d.Reason)
}

// compareLedgers runs equally seeded models on both ledgers in lockstep and
// compares their records after every tick. It returns nil if the histories
// agree on all configured ticks.
func compareLedgers(ctx context.Context, cfg config.Config, ledgers [2]string) (*divergence, error) {
	var models [2]*model.Model
	for i, name := range ledgers {
		current := cfg
		current.Ledger = name
		if err := current.Validate(); err != nil {
			return nil, err
		}
		m, err := newModel(current)
		if err != nil {
			return nil, fmt.Errorf("failed to set up %s: %w", name, err)
		}
		models[i] = m
	}

	for tick := 0; ; tick++ {
		a, _ := models[0].History().Last()
		b, _ := models[1].History().Last()
		if reason := diffRecords(a, b); reason != "" {
			return &divergence{Tick: tick, Reason: reason}, nil
		}
		if tick == cfg.Ticks {
			return nil, nil
		}
		for i, m := range models {
			if err := m.Run(ctx, 1); err != nil {
				return nil, fmt.Errorf("%s: %w", ledgers[i], err)
			}
		}
	}
}

// diffRecords describes the first difference between two records, or
// returns an empty string if they are equal.
func diffRecords(a, b metrics.Record) string {
	if a.Tick != b.Tick {
		return fmt.Sprintf("tick %d vs %d", a.Tick, b.Tick)
	}
	if len(a.Wealth) != len(b.Wealth) {
		return fmt.Sprintf("%d vs %d agents", len(a.Wealth), len(b.Wealth))
	}
	for i := range a.Wealth {
		x, y := a.Wealth[i], b.Wealth[i]
		if x.ID != y.ID {
			return fmt.Sprintf("agent %d vs %d at position %d", x.ID, y.ID, i)
		}
		if x.Balance != y.Balance {
			return fmt.Sprintf("balance of agent %d is %v vs %v", x.ID, x.Balance, y.Balance)
		}
	}
	if a.Gini != b.Gini {
		return fmt.Sprintf("gini %v vs %v", a.Gini, b.Gini)
	}
	return ""
}

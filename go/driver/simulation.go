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
	"io"
	"strings"
	"time"

	"github.com/Fantom-foundation/Boltzmann/go/config"
	"github.com/Fantom-foundation/Boltzmann/go/ledger"
	"github.com/Fantom-foundation/Boltzmann/go/ledger/evm"
	"github.com/Fantom-foundation/Boltzmann/go/model"
	"github.com/dsnet/golib/unitconv"
	"pgregory.net/rand"
)

// progressInterval is the minimum time between two progress reports.
const progressInterval = 15 * time.Second

// progressFunc is informed about the number of completed ticks and the
// current processing rate in ticks per second.
type progressFunc func(elapsed time.Duration, rate float64, tick int)

// newLedger creates the ledger named in the configuration. The EVM ledger
// receives the configured gas limit.
func newLedger(cfg config.Config) (ledger.Ledger, error) {
	if strings.EqualFold(cfg.Ledger, "evm") {
		evmConfig := evm.DefaultConfig
		evmConfig.GasLimit = cfg.GasLimit
		return ledger.NewLedger(cfg.Ledger, evmConfig)
	}
	return ledger.NewLedger(cfg.Ledger)
}

// newModel sets up a funded model on a fresh ledger. The model's random
// source is seeded with the configured seed.
func newModel(cfg config.Config) (*model.Model, error) {
	l, err := newLedger(cfg)
	if err != nil {
		return nil, err
	}
	return model.New(cfg.Model(), l, rand.New(cfg.Seed))
}

// simulate runs the configured number of ticks on a new model. If a tick
// fails or the context is cancelled, the model is returned together with
// the error so that the history collected so far can still be exported.
func simulate(ctx context.Context, cfg config.Config, progress progressFunc) (*model.Model, error) {
	m, err := newModel(cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	lastReport, lastTick := start, 0
	for i := 0; i < cfg.Ticks; i++ {
		if err := m.Run(ctx, 1); err != nil {
			return m, err
		}
		if progress == nil {
			continue
		}
		if now := time.Now(); now.Sub(lastReport) >= progressInterval {
			rate := float64(m.Steps()-lastTick) / now.Sub(lastReport).Seconds()
			progress(now.Sub(start), rate, m.Steps())
			lastReport, lastTick = now, m.Steps()
		}
	}
	return m, nil
}

func printProgress(elapsed time.Duration, rate float64, tick int) {
	fmt.Printf(
		"[t=%4d:%02d] - Processing ~%s ticks per second, completed %d\n",
		int(elapsed.Seconds())/60, int(elapsed.Seconds())%60,
		unitconv.FormatPrefix(rate, unitconv.SI, 0), tick,
	)
}

// printSummary reports the final inequality, the number of agents without
// tokens and, if available, the ledger's execution statistics.
func printSummary(out io.Writer, m *model.Model) error {
	if last, found := m.History().Last(); found {
		fmt.Fprintf(out, "Completed %d ticks, final Gini coefficient %.4f\n", m.Steps(), last.Gini)
	}

	broke := 0
	for _, agent := range m.Agents() {
		isBroke, err := agent.Broke()
		if err != nil {
			return err
		}
		if isBroke {
			broke++
		}
	}
	fmt.Fprintf(out, "Agents without tokens: %d of %d\n", broke, len(m.Agents()))

	if profiling, ok := m.Ledger().(ledger.ProfilingLedger); ok {
		stats := profiling.Stats()
		fmt.Fprintf(out, "Ledger: %d transactions, %d queries, %d reverted, %s gas used\n",
			stats.Transactions, stats.Queries, stats.Reverted,
			unitconv.FormatPrefix(float64(stats.GasUsed), unitconv.SI, 1),
		)
	}
	return nil
}

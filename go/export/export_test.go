// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Fantom-foundation/Boltzmann/go/ledger"
	"github.com/Fantom-foundation/Boltzmann/go/metrics"
	"github.com/sebdah/goldie/v2"
)

// sampleHistory covers two agents over three ticks with exactly
// representable Gini coefficients 0, 0.5 and 0.25.
func sampleHistory(t *testing.T) *metrics.History {
	t.Helper()
	c := metrics.NewCollector()
	ticks := [][]metrics.AgentWealth{
		{{ID: 0, Wealth: 1, Balance: ledger.Tokens(1)}, {ID: 1, Wealth: 1, Balance: ledger.Tokens(1)}},
		{{ID: 1, Wealth: 0}, {ID: 0, Wealth: 2, Balance: ledger.Tokens(2)}},
		{{ID: 0, Wealth: 1.5, Balance: ledger.NewAmount(1_500_000_000_000_000_000)}, {ID: 1, Wealth: 0.5, Balance: ledger.NewAmount(500_000_000_000_000_000)}},
	}
	for tick, wealth := range ticks {
		if _, err := c.Collect(tick, wealth); err != nil {
			t.Fatalf("failed to collect tick %d: %v", tick, err)
		}
	}
	return c.History()
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestWriteGiniCSV(t *testing.T) {
	var buffer bytes.Buffer
	if err := WriteGiniCSV(&buffer, sampleHistory(t)); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	newGoldie(t).Assert(t, "gini", buffer.Bytes())
}

func TestWriteWealthCSV(t *testing.T) {
	var buffer bytes.Buffer
	if err := WriteWealthCSV(&buffer, sampleHistory(t)); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	newGoldie(t).Assert(t, "wealth", buffer.Bytes())
}

func TestWriteCSVFiles_CreatesBothTables(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if err := WriteCSVFiles(dir, sampleHistory(t)); err != nil {
		t.Fatalf("failed to write files: %v", err)
	}
	for name, golden := range map[string]string{GiniFileName: "gini", WealthFileName: "wealth"} {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("failed to read %s: %v", name, err)
		}
		newGoldie(t).Assert(t, golden, content)
	}
}

func TestWriteCSV_EmptyHistoryHasHeaderOnly(t *testing.T) {
	var buffer bytes.Buffer
	if err := WriteGiniCSV(&buffer, &metrics.History{}); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	if want, got := "tick,gini\n", buffer.String(); want != got {
		t.Errorf("unexpected output, wanted %q, got %q", want, got)
	}
}

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "history.sqlite"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return store
}

func TestStore_HistoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	history := sampleHistory(t)
	run := Run{ID: "run-1", Seed: 1<<63 + 5, Agents: 2, Width: 3, Height: 4, Ledger: "evm"}

	if err := store.SaveHistory(ctx, run, history); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	restoredRun, err := store.Run(ctx, run.ID)
	if err != nil {
		t.Fatalf("failed to load run: %v", err)
	}
	if run != restoredRun {
		t.Errorf("unexpected run, wanted %+v, got %+v", run, restoredRun)
	}

	series, err := store.GiniSeries(ctx, run.ID)
	if err != nil {
		t.Fatalf("failed to load series: %v", err)
	}
	if want := history.GiniSeries(); !reflect.DeepEqual(want, series) {
		t.Errorf("unexpected series, wanted %v, got %v", want, series)
	}

	table, err := store.WealthTable(ctx, run.ID)
	if err != nil {
		t.Fatalf("failed to load table: %v", err)
	}
	if want := history.WealthTable(); !reflect.DeepEqual(want, table) {
		t.Errorf("unexpected table, wanted %v, got %v", want, table)
	}
}

func TestStore_SavingAgainReplacesRun(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	run := Run{ID: "again", Agents: 2, Width: 1, Height: 1, Ledger: "memory"}
	if err := store.SaveHistory(ctx, run, sampleHistory(t)); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := store.SaveHistory(ctx, run, &metrics.History{}); err != nil {
		t.Fatalf("failed to save again: %v", err)
	}
	series, err := store.GiniSeries(ctx, run.ID)
	if err != nil {
		t.Fatalf("failed to load series: %v", err)
	}
	if len(series) != 0 {
		t.Errorf("stale rows survived: %v", series)
	}
}

func TestStore_RejectsInvalidInput(t *testing.T) {
	if _, err := OpenSQLite(""); err == nil {
		t.Errorf("expected empty path to be rejected")
	}
	store := openStore(t)
	if err := store.SaveHistory(context.Background(), Run{}, &metrics.History{}); err == nil {
		t.Errorf("expected empty run id to be rejected")
	}
	if _, err := store.Run(context.Background(), "unknown"); err == nil {
		t.Errorf("expected unknown run to be reported")
	}
}

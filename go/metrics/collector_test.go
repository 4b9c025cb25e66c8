// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/Fantom-foundation/Boltzmann/go/ledger"
)

func TestCollector_RecordsAreOrderedByAgent(t *testing.T) {
	c := NewCollector()
	record, err := c.Collect(0, []AgentWealth{
		{ID: 2, Wealth: 1, Balance: ledger.Tokens(1)},
		{ID: 0, Wealth: 3, Balance: ledger.Tokens(3)},
		{ID: 1, Wealth: 0},
	})
	if err != nil {
		t.Fatalf("failed to collect: %v", err)
	}
	for i, w := range record.Wealth {
		if w.ID != i {
			t.Errorf("unexpected agent at index %d: %d", i, w.ID)
		}
	}
	if record.Gini <= 0 {
		t.Errorf("unequal wealth should have positive Gini, got %v", record.Gini)
	}
}

func TestCollector_TablesFollowTickOrder(t *testing.T) {
	c := NewCollector()
	for tick := 0; tick < 3; tick++ {
		_, err := c.Collect(tick, []AgentWealth{
			{ID: 1, Wealth: float64(tick), Balance: ledger.NewAmount(uint64(tick))},
			{ID: 0, Wealth: 1, Balance: ledger.NewAmount(1)},
		})
		if err != nil {
			t.Fatalf("failed to collect tick %d: %v", tick, err)
		}
	}
	h := c.History()
	if want, got := 3, h.Len(); want != got {
		t.Fatalf("unexpected history length, wanted %d, got %d", want, got)
	}

	series := h.GiniSeries()
	want := []GiniRow{{0, 0.5}, {1, 0}, {2, 1.0 / 6}}
	if len(want) != len(series) {
		t.Fatalf("unexpected series, wanted %v, got %v", want, series)
	}
	for i := range want {
		if want[i].Tick != series[i].Tick || math.Abs(want[i].Gini-series[i].Gini) > epsilon {
			t.Errorf("unexpected row %d, wanted %v, got %v", i, want[i], series[i])
		}
	}

	table := h.WealthTable()
	if want, got := 6, len(table); want != got {
		t.Fatalf("unexpected table size, wanted %d, got %d", want, got)
	}
	for i, row := range table {
		if row.Tick != i/2 || row.AgentID != i%2 {
			t.Errorf("unexpected row order at %d: %+v", i, row)
		}
	}
	if last, found := h.Last(); !found || last.Tick != 2 {
		t.Errorf("unexpected last record: %+v", last)
	}
}

func TestCollector_UndefinedGiniIsNotRecorded(t *testing.T) {
	c := NewCollector()
	_, err := c.Collect(0, []AgentWealth{{ID: 0}, {ID: 1}})
	if !errors.Is(err, ErrUndefinedMetric) {
		t.Errorf("unexpected error, wanted %v, got %v", ErrUndefinedMetric, err)
	}
	if c.History().Len() != 0 {
		t.Errorf("failed collection must not be recorded")
	}
}

func TestCollector_TicksMustIncrease(t *testing.T) {
	c := NewCollector()
	wealth := []AgentWealth{{ID: 0, Wealth: 1}}
	if _, err := c.Collect(1, wealth); err != nil {
		t.Fatalf("failed to collect: %v", err)
	}
	for _, tick := range []int{0, 1} {
		if _, err := c.Collect(tick, wealth); err == nil {
			t.Errorf("expected tick %d to be rejected after tick 1", tick)
		}
	}
}

func TestHistory_RecordsReturnsCopy(t *testing.T) {
	c := NewCollector()
	if _, err := c.Collect(0, []AgentWealth{{ID: 0, Wealth: 1}}); err != nil {
		t.Fatalf("failed to collect: %v", err)
	}
	records := c.History().Records()
	records[0].Tick = 42
	if got := c.History().Records()[0].Tick; got != 0 {
		t.Errorf("history was modified through copy, tick is %d", got)
	}
	var empty History
	if _, found := empty.Last(); found {
		t.Errorf("empty history must not have a last record")
	}
}

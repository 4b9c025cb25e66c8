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
	"fmt"

	"github.com/Fantom-foundation/Boltzmann/go/ledger"
	"golang.org/x/exp/slices"
)

// AgentWealth is the wealth of a single agent at the time of a snapshot.
type AgentWealth struct {
	ID      int
	Wealth  float64       // display scale, i.e. tokens
	Balance ledger.Amount // base units
}

// Record is the snapshot of a single tick.
type Record struct {
	Tick   int
	Gini   float64
	Wealth []AgentWealth // ordered by agent ID
}

// GiniRow is a row of the model-level table with columns tick,gini.
type GiniRow struct {
	Tick int
	Gini float64
}

// WealthRow is a row of the agent-level table with columns
// tick,agent_id,wealth,balance.
type WealthRow struct {
	Tick    int
	AgentID int
	Wealth  float64
	Balance ledger.Amount
}

var (
	GiniColumns   = []string{"tick", "gini"}
	WealthColumns = []string{"tick", "agent_id", "wealth", "balance"}
)

// History is an append-only sequence of records with strictly increasing
// ticks.
type History struct {
	records []Record
}

func (h *History) Len() int {
	return len(h.records)
}

// Records returns a copy of all records in tick order.
func (h *History) Records() []Record {
	return slices.Clone(h.records)
}

// Last returns the most recent record, if any.
func (h *History) Last() (Record, bool) {
	if len(h.records) == 0 {
		return Record{}, false
	}
	return h.records[len(h.records)-1], true
}

// GiniSeries lists the Gini coefficient of every tick in ascending order.
func (h *History) GiniSeries() []GiniRow {
	res := make([]GiniRow, 0, len(h.records))
	for _, record := range h.records {
		res = append(res, GiniRow{Tick: record.Tick, Gini: record.Gini})
	}
	return res
}

// WealthTable lists the wealth of every agent in every tick, ordered by tick
// and agent ID.
func (h *History) WealthTable() []WealthRow {
	size := 0
	for _, record := range h.records {
		size += len(record.Wealth)
	}
	res := make([]WealthRow, 0, size)
	for _, record := range h.records {
		for _, w := range record.Wealth {
			res = append(res, WealthRow{
				Tick:    record.Tick,
				AgentID: w.ID,
				Wealth:  w.Wealth,
				Balance: w.Balance,
			})
		}
	}
	return res
}

func (h *History) append(record Record) error {
	if last, found := h.Last(); found && record.Tick <= last.Tick {
		return fmt.Errorf("tick %d recorded after tick %d", record.Tick, last.Tick)
	}
	h.records = append(h.records, record)
	return nil
}

// Collector computes the per-tick metrics and appends them to its history.
type Collector struct {
	history History
}

func NewCollector() *Collector {
	return &Collector{}
}

// Collect records the wealth of all agents for the given tick. Ticks must be
// strictly increasing. If the Gini coefficient is undefined, nothing is
// recorded and the error is returned.
func (c *Collector) Collect(tick int, wealth []AgentWealth) (Record, error) {
	values := make([]float64, len(wealth))
	for i, w := range wealth {
		values[i] = w.Wealth
	}
	gini, err := Gini(values)
	if err != nil {
		return Record{}, fmt.Errorf("failed to compute Gini coefficient of tick %d: %w", tick, err)
	}
	sorted := slices.Clone(wealth)
	slices.SortFunc(sorted, func(a, b AgentWealth) int {
		return a.ID - b.ID
	})
	record := Record{Tick: tick, Gini: gini, Wealth: sorted}
	if err := c.history.append(record); err != nil {
		return Record{}, err
	}
	return record, nil
}

// History returns the records collected so far.
func (c *Collector) History() *History {
	return &c.history
}

// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package export persists the metrics history of a simulation run as CSV
// files or in a SQLite database.
package export

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Fantom-foundation/Boltzmann/go/metrics"
)

const (
	GiniFileName   = "gini.csv"
	WealthFileName = "wealth.csv"
)

// WriteGiniCSV writes the model-level table with columns tick,gini.
func WriteGiniCSV(w io.Writer, history *metrics.History) error {
	out := csv.NewWriter(w)
	if err := out.Write(metrics.GiniColumns); err != nil {
		return err
	}
	for _, row := range history.GiniSeries() {
		if err := out.Write([]string{
			strconv.Itoa(row.Tick),
			formatFloat(row.Gini),
		}); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

// WriteWealthCSV writes the agent-level table with columns
// tick,agent_id,wealth,balance. Balances are decimal base units.
func WriteWealthCSV(w io.Writer, history *metrics.History) error {
	out := csv.NewWriter(w)
	if err := out.Write(metrics.WealthColumns); err != nil {
		return err
	}
	for _, row := range history.WealthTable() {
		if err := out.Write([]string{
			strconv.Itoa(row.Tick),
			strconv.Itoa(row.AgentID),
			formatFloat(row.Wealth),
			row.Balance.String(),
		}); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

// WriteCSVFiles writes both tables into the given directory, creating it if
// needed.
func WriteCSVFiles(dir string, history *metrics.History) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return errors.Join(
		writeFile(filepath.Join(dir, GiniFileName), history, WriteGiniCSV),
		writeFile(filepath.Join(dir, WealthFileName), history, WriteWealthCSV),
	)
}

func writeFile(path string, history *metrics.History, write func(io.Writer, *metrics.History) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	return errors.Join(write(file, history), file.Close())
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

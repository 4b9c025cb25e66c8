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
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Fantom-foundation/Boltzmann/go/ledger"
	"github.com/Fantom-foundation/Boltzmann/go/metrics"
	_ "modernc.org/sqlite"
)

// Run describes a simulation run stored alongside its history.
type Run struct {
	ID     string
	Seed   uint64
	Agents int
	Width  int
	Height int
	Ledger string
}

// Store keeps the histories of simulation runs in a SQLite database.
type Store struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at the given path.
func OpenSQLite(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			agents INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			ledger TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS gini (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			gini REAL NOT NULL,
			PRIMARY KEY (run_id, tick)
		);`,
		`CREATE TABLE IF NOT EXISTS wealth (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			agent_id INTEGER NOT NULL,
			wealth REAL NOT NULL,
			balance TEXT NOT NULL,
			PRIMARY KEY (run_id, tick, agent_id)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// SaveHistory stores the run and all its records in a single transaction.
// A run with the same ID is replaced.
func (s *Store) SaveHistory(ctx context.Context, run Run, history *metrics.History) (err error) {
	if run.ID == "" {
		return fmt.Errorf("empty run id")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, run.ID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, seed, agents, width, height, ledger) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, int64(run.Seed), run.Agents, run.Width, run.Height, run.Ledger,
	); err != nil {
		return err
	}

	giniStmt, err := tx.PrepareContext(ctx, `INSERT INTO gini (run_id, tick, gini) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer giniStmt.Close()
	for _, row := range history.GiniSeries() {
		if _, err = giniStmt.ExecContext(ctx, run.ID, row.Tick, row.Gini); err != nil {
			return err
		}
	}

	wealthStmt, err := tx.PrepareContext(ctx, `INSERT INTO wealth (run_id, tick, agent_id, wealth, balance) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer wealthStmt.Close()
	for _, row := range history.WealthTable() {
		if _, err = wealthStmt.ExecContext(ctx, run.ID, row.Tick, row.AgentID, row.Wealth, row.Balance.String()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Run returns the description of a stored run.
func (s *Store) Run(ctx context.Context, id string) (Run, error) {
	run := Run{ID: id}
	var seed int64
	err := s.db.QueryRowContext(ctx,
		`SELECT seed, agents, width, height, ledger FROM runs WHERE id = ?`, id,
	).Scan(&seed, &run.Agents, &run.Width, &run.Height, &run.Ledger)
	if err != nil {
		return Run{}, err
	}
	run.Seed = uint64(seed)
	return run, nil
}

// GiniSeries loads the Gini coefficients of a run in tick order.
func (s *Store) GiniSeries(ctx context.Context, runID string) ([]metrics.GiniRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT tick, gini FROM gini WHERE run_id = ? ORDER BY tick`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []metrics.GiniRow
	for rows.Next() {
		var row metrics.GiniRow
		if err := rows.Scan(&row.Tick, &row.Gini); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

// WealthTable loads the agent-level table of a run ordered by tick and agent.
func (s *Store) WealthTable(ctx context.Context, runID string) ([]metrics.WealthRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tick, agent_id, wealth, balance FROM wealth WHERE run_id = ? ORDER BY tick, agent_id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []metrics.WealthRow
	for rows.Next() {
		var row metrics.WealthRow
		var balance string
		if err := rows.Scan(&row.Tick, &row.AgentID, &row.Wealth, &balance); err != nil {
			return nil, err
		}
		if row.Balance, err = ledger.ParseAmount(balance); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}

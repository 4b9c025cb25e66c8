// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package cliUtils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Fantom-foundation/Boltzmann/go/config"
	_ "github.com/Fantom-foundation/Boltzmann/go/ledger/memory"
	"github.com/urfave/cli/v2"
)

// fetchConfig runs a minimal application with the simulation flags and
// returns the configuration seen by its action.
func fetchConfig(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()
	var res config.Config
	var fetchErr error
	app := &cli.App{
		Name:  "test",
		Flags: SimulationFlags,
		Action: func(context *cli.Context) error {
			res, fetchErr = FetchConfig(context)
			return nil
		},
	}
	if err := app.Run(append([]string{"test"}, args...)); err != nil {
		t.Fatalf("failed to run application: %v", err)
	}
	return res, fetchErr
}

func TestFetchConfig_FlagsOverrideDefaults(t *testing.T) {
	got, err := fetchConfig(t,
		"--ledger", "memory",
		"--agents", "7",
		"--width", "4",
		"--height", "5",
		"--ticks", "9",
		"--seed", "11",
		"--torus=false",
		"--gas-limit", "30000",
		"--check-invariants",
	)
	if err != nil {
		t.Fatalf("failed to fetch configuration: %v", err)
	}
	want := config.Default()
	want.Ledger = "memory"
	want.Agents = 7
	want.Width = 4
	want.Height = 5
	want.Ticks = 9
	want.Seed = 11
	want.Torus = false
	want.GasLimit = 30000
	want.CheckInvariants = true
	if want != got {
		t.Errorf("unexpected configuration, wanted %+v, got %+v", want, got)
	}
}

func TestFetchConfig_FlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ledger: memory\nagents: 3\nticks: 2\n"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	got, err := fetchConfig(t, "--config", path, "--ticks", "4")
	if err != nil {
		t.Fatalf("failed to fetch configuration: %v", err)
	}
	if got.Agents != 3 || got.Ticks != 4 || got.Ledger != "memory" {
		t.Errorf("unexpected configuration %+v", got)
	}
}

func TestFetchConfig_UnsetFlagsKeepFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ledger: memory\ntorus: false\nseed: 5\n"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	got, err := fetchConfig(t, "-c", path)
	if err != nil {
		t.Fatalf("failed to fetch configuration: %v", err)
	}
	if got.Torus || got.Seed != 5 {
		t.Errorf("unexpected configuration %+v", got)
	}
}

func TestFetchConfig_InvalidOverridesAreRejected(t *testing.T) {
	tests := map[string][]string{
		"no agents":      {"--ledger", "memory", "--agents", "0"},
		"unknown ledger": {"--ledger", "abacus"},
		"low gas limit":  {"--ledger", "memory", "--gas-limit", "10"},
		"missing file":   {"--config", filepath.Join(t.TempDir(), "missing.yaml")},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := fetchConfig(t, args...); err == nil {
				t.Errorf("expected configuration to be rejected")
			}
		})
	}
}

func TestAddCommonFlags_WritesCpuProfile(t *testing.T) {
	called := false
	command := AddCommonFlags(cli.Command{
		Name: "work",
		Action: func(*cli.Context) error {
			called = true
			return nil
		},
	})
	app := &cli.App{Name: "test", Commands: []*cli.Command{&command}}

	path := filepath.Join(t.TempDir(), "cpu.prof")
	if err := app.Run([]string{"test", "work", "--cpuprofile", path, "--verbosity", "1"}); err != nil {
		t.Fatalf("failed to run command: %v", err)
	}
	if !called {
		t.Errorf("wrapped action was not called")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("profile was not written: %v", err)
	}
}

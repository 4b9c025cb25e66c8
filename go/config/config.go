// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package config loads simulation setups from YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Fantom-foundation/Boltzmann/go/ledger"
	"github.com/Fantom-foundation/Boltzmann/go/model"
	"github.com/Fantom-foundation/Boltzmann/go/space"
	"gopkg.in/yaml.v3"
)

// Config is the file representation of a simulation run.
type Config struct {
	Agents          int            `yaml:"agents" validate:"min=1"`
	Width           int            `yaml:"width" validate:"min=1"`
	Height          int            `yaml:"height" validate:"min=1"`
	Torus           bool           `yaml:"torus"`
	InitialBalance  ledger.Amount  `yaml:"initial_balance" validate:"positive_amount"`
	TransferUnit    ledger.Amount  `yaml:"transfer_unit" validate:"positive_amount"`
	Seed            uint64         `yaml:"seed"`
	Ticks           int            `yaml:"ticks" validate:"min=0"`
	Ledger          string         `yaml:"ledger" validate:"required,registered_ledger"`
	CheckInvariants bool           `yaml:"check_invariants"`
	GasLimit        uint64         `yaml:"gas_limit" validate:"min=21000"`
	Admin           ledger.Address `yaml:"admin"`
	Minter          ledger.Address `yaml:"minter"`
}

// Default returns the configuration used for absent file entries.
func Default() Config {
	defaults := model.DefaultConfig()
	return Config{
		Agents:         defaults.NumAgents,
		Width:          defaults.Width,
		Height:         defaults.Height,
		Torus:          defaults.Boundary == space.Wrap,
		InitialBalance: defaults.InitialBalance,
		TransferUnit:   defaults.TransferUnit,
		Ticks:          100,
		Ledger:         "evm",
		GasLimit:       10_000_000,
		Admin:          defaults.Admin,
		Minter:         defaults.Minter,
	}
}

// Load reads a configuration file. Entries missing in the file keep their
// default values; unknown entries are rejected. The result is validated.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	config, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Decode parses a YAML document on top of the defaults and validates it.
func Decode(reader io.Reader) (Config, error) {
	config := Default()
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Encode writes the configuration as a YAML document.
func (c Config) Encode(writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return err
	}
	return encoder.Close()
}

// Validate checks the configuration's field constraints and its consistency
// as a model setup.
func (c Config) Validate() error {
	if err := NewValidator().Validate(c); err != nil {
		return err
	}
	return c.Model().Validate()
}

// Model converts the file representation into a model configuration.
func (c Config) Model() model.Config {
	boundary := space.Clip
	if c.Torus {
		boundary = space.Wrap
	}
	return model.Config{
		NumAgents:       c.Agents,
		Width:           c.Width,
		Height:          c.Height,
		Boundary:        boundary,
		InitialBalance:  c.InitialBalance,
		TransferUnit:    c.TransferUnit,
		Admin:           c.Admin,
		Minter:          c.Minter,
		CheckInvariants: c.CheckInvariants,
	}
}

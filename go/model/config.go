// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package model

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/Boltzmann/go/ledger"
	"github.com/Fantom-foundation/Boltzmann/go/space"
)

var (
	// DefaultAdmin deploys the stablecoin and grants the minter role.
	DefaultAdmin = ledger.MustParseAddress("0x0c7ccc4f1f495a1c2fe661ae4b6ae83309cd06b2")
	// DefaultMinter funds the agents' wallets.
	DefaultMinter = ledger.MustParseAddress("0xa47d88347e06922641b1fdc9ad527a221787b95a")
)

// Config defines the parameters of a simulation.
type Config struct {
	NumAgents int
	Width     int
	Height    int
	Boundary  space.Boundary
	// InitialBalance is minted to every agent's wallet.
	InitialBalance ledger.Amount
	// TransferUnit is the maximum amount an agent gives away per step.
	TransferUnit    ledger.Amount
	Admin           ledger.Address
	Minter          ledger.Address
	CheckInvariants bool
}

// DefaultConfig returns the setup of the classic Boltzmann wealth model:
// 100 agents on a 10x10 torus, each starting with and giving one token.
func DefaultConfig() Config {
	return Config{
		NumAgents:      100,
		Width:          10,
		Height:         10,
		Boundary:       space.Wrap,
		InitialBalance: ledger.Tokens(1),
		TransferUnit:   ledger.Tokens(1),
		Admin:          DefaultAdmin,
		Minter:         DefaultMinter,
	}
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	var errs []error
	if c.NumAgents <= 0 {
		errs = append(errs, fmt.Errorf("number of agents must be positive, got %d", c.NumAgents))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid dimensions must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Boundary != space.Wrap && c.Boundary != space.Clip {
		errs = append(errs, fmt.Errorf("unknown boundary %v", c.Boundary))
	}
	if c.InitialBalance.IsZero() {
		errs = append(errs, fmt.Errorf("initial balance must be positive"))
	}
	if c.TransferUnit.IsZero() {
		errs = append(errs, fmt.Errorf("transfer unit must be positive"))
	}
	if c.Admin == c.Minter {
		errs = append(errs, fmt.Errorf("admin and minter must differ"))
	}
	if c.NumAgents > 0 {
		if _, overflow := c.InitialBalance.MulUint64(uint64(c.NumAgents)); overflow {
			errs = append(errs, fmt.Errorf("total supply of %d agents with %v each overflows", c.NumAgents, c.InitialBalance))
		}
	}
	return errors.Join(errs...)
}

// ExpectedSupply is the total supply after all agents have been funded.
func (c Config) ExpectedSupply() ledger.Amount {
	res, _ := c.InitialBalance.MulUint64(uint64(c.NumAgents))
	return res
}

// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package memory provides a reference implementation of the ledger in plain
// Go. It follows the same rules as the stablecoin contract and reports the
// same revert reasons, but does not meter gas.
package memory

import (
	"fmt"

	"github.com/Fantom-foundation/Boltzmann/go/ledger"
)

func init() {
	ledger.MustRegisterLedgerFactory("memory", func(config any) (ledger.Ledger, error) {
		if config != nil {
			return nil, fmt.Errorf("memory ledger does not support configuration, got %T", config)
		}
		return NewLedger(), nil
	})
}

// Ledger keeps all balances in a map.
type Ledger struct {
	deployed bool
	admin    ledger.Address
	minters  map[ledger.Address]bool
	balances map[ledger.Address]ledger.Amount
	supply   ledger.Amount
	stats    ledger.Stats
}

var (
	_ ledger.ProfilingLedger  = (*Ledger)(nil)
	_ ledger.StorageInspector = (*Ledger)(nil)
)

func NewLedger() *Ledger {
	return &Ledger{
		minters:  map[ledger.Address]bool{},
		balances: map[ledger.Address]ledger.Amount{},
	}
}

func (l *Ledger) Deploy(admin ledger.Address) error {
	if l.deployed {
		return ledger.ErrAlreadyDeployed
	}
	l.deployed = true
	l.admin = admin
	l.stats.Transactions++
	return nil
}

func (l *Ledger) AddMinter(minter ledger.Address, caller ledger.Address) error {
	if err := l.begin(); err != nil {
		return err
	}
	if caller != l.admin {
		return l.deny("addMinter", caller, ledger.ReasonNotAdmin)
	}
	l.minters[minter] = true
	return nil
}

func (l *Ledger) Mint(to ledger.Address, amount ledger.Amount, caller ledger.Address) error {
	if err := l.begin(); err != nil {
		return err
	}
	if !l.minters[caller] {
		return l.deny("mint", caller, ledger.ReasonNotMinter)
	}
	supply, overflow := l.supply.Add(amount)
	if overflow {
		return l.fail("mint")
	}
	l.supply = supply
	// the balance can not overflow as long as the supply does not
	l.balances[to], _ = l.balances[to].Add(amount)
	return nil
}

func (l *Ledger) Transfer(to ledger.Address, amount ledger.Amount, caller ledger.Address) (bool, error) {
	if err := l.begin(); err != nil {
		return false, err
	}
	remaining, underflow := l.balances[caller].Sub(amount)
	if underflow {
		return false, l.fail("transfer")
	}
	l.balances[caller] = remaining
	l.balances[to], _ = l.balances[to].Add(amount)
	return true, nil
}

func (l *Ledger) Burn(amount ledger.Amount, caller ledger.Address) error {
	if err := l.begin(); err != nil {
		return err
	}
	remaining, underflow := l.balances[caller].Sub(amount)
	if underflow {
		return l.fail("burn")
	}
	l.balances[caller] = remaining
	l.supply, _ = l.supply.Sub(amount)
	return nil
}

func (l *Ledger) BalanceOf(owner ledger.Address) (ledger.Amount, error) {
	if !l.deployed {
		return ledger.Amount{}, ledger.ErrNotDeployed
	}
	l.stats.Queries++
	return l.balances[owner], nil
}

func (l *Ledger) TotalSupply() (ledger.Amount, error) {
	if !l.deployed {
		return ledger.Amount{}, ledger.ErrNotDeployed
	}
	l.stats.Queries++
	return l.supply, nil
}

// StoredBalanceOf is equivalent to BalanceOf since this ledger has no view
// functions distinct from its storage.
func (l *Ledger) StoredBalanceOf(owner ledger.Address) (ledger.Amount, error) {
	if !l.deployed {
		return ledger.Amount{}, ledger.ErrNotDeployed
	}
	return l.balances[owner], nil
}

func (l *Ledger) StoredTotalSupply() (ledger.Amount, error) {
	if !l.deployed {
		return ledger.Amount{}, ledger.ErrNotDeployed
	}
	return l.supply, nil
}

func (l *Ledger) Stats() ledger.Stats {
	return l.stats
}

func (l *Ledger) begin() error {
	if !l.deployed {
		return ledger.ErrNotDeployed
	}
	l.stats.Transactions++
	return nil
}

func (l *Ledger) deny(method string, caller ledger.Address, reason string) error {
	l.stats.Reverted++
	return &ledger.AuthorizationError{Method: method, Caller: caller, Reason: reason}
}

func (l *Ledger) fail(method string) error {
	l.stats.Reverted++
	return &ledger.ExecutionError{Method: method, Reason: ledger.ReasonArithmetic}
}

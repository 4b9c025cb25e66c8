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
	"fmt"

	"github.com/Fantom-foundation/Boltzmann/go/ledger"
	"github.com/Fantom-foundation/Boltzmann/go/space"
)

// Agent is a participant of the simulation. It owns a wallet on the ledger
// and occupies a single cell of the model's grid. Balances are never cached;
// every query goes to the ledger.
type Agent struct {
	id     int
	wallet ledger.Address
	pos    space.Pos
	model  *Model
}

func (a *Agent) ID() int {
	return a.id
}

func (a *Agent) Wallet() ledger.Address {
	return a.wallet
}

func (a *Agent) Pos() space.Pos {
	return a.pos
}

// SetPos is called by the grid whenever the agent is placed or moved.
func (a *Agent) SetPos(pos space.Pos) {
	a.pos = pos
}

func (a *Agent) String() string {
	return fmt.Sprintf("agent %d", a.id)
}

// Balance returns the agent's current balance in base units.
func (a *Agent) Balance() (ledger.Amount, error) {
	return a.model.ledger.BalanceOf(a.wallet)
}

// Wealth returns the agent's current balance in tokens. It is intended for
// reporting only.
func (a *Agent) Wealth() (float64, error) {
	balance, err := a.Balance()
	if err != nil {
		return 0, err
	}
	return balance.Display(), nil
}

// Broke reports whether the agent has nothing left to give.
func (a *Agent) Broke() (bool, error) {
	balance, err := a.Balance()
	if err != nil {
		return false, err
	}
	return balance.IsZero(), nil
}

// Step moves the agent to a random neighbouring cell and then gives up to
// one transfer unit to a random agent sharing the new cell.
func (a *Agent) Step() error {
	if err := a.move(); err != nil {
		return err
	}
	balance, err := a.Balance()
	if err != nil {
		return fmt.Errorf("%v failed to get balance: %w", a, err)
	}
	if balance.IsZero() {
		return nil
	}
	return a.give(ledger.Min(balance, a.model.config.TransferUnit))
}

func (a *Agent) move() error {
	steps := a.model.grid.Neighborhood(a.pos, false)
	if len(steps) == 0 {
		return nil
	}
	target := steps[a.model.rnd.Intn(len(steps))]
	if err := a.model.grid.Move(a, target); err != nil {
		return fmt.Errorf("%v failed to move to %v: %w", a, target, err)
	}
	return nil
}

func (a *Agent) give(amount ledger.Amount) error {
	cellmates := a.model.grid.Occupants(a.pos)
	others := cellmates[:0]
	for _, cur := range cellmates {
		if cur != a {
			others = append(others, cur)
		}
	}
	if len(others) == 0 {
		return nil
	}
	other := others[a.model.rnd.Intn(len(others))]
	ok, err := a.model.ledger.Transfer(other.wallet, amount, a.wallet)
	if err == nil && !ok {
		err = &ledger.ExecutionError{Method: "transfer", Reason: ledger.ReasonTransferFail}
	}
	if err != nil {
		a.model.log.Error("Transfer failed", "from", a.id, "to", other.id, "amount", amount, "err", err)
		return fmt.Errorf("%v failed to give %v to %v: %w", a, amount, other, err)
	}
	return nil
}

// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ledger

//go:generate mockgen -source ledger.go -destination ledger_mock.go -package ledger

// Ledger is the value-transfer service backing the wealth of simulated
// agents. It models an ERC20-style stablecoin with a single admin and a set
// of minters. All operations are synchronous and deterministic; a Ledger is
// not required to be safe for concurrent use.
//
// Operations failing due to a missing role return an *AuthorizationError,
// all other failures of the underlying token logic are reported as
// *ExecutionError. To obtain a Ledger instance, client code should use
// NewLedger() provided by the registry file in this package.
type Ledger interface {
	// Deploy installs the token with the given admin. It must be called
	// exactly once before any other operation.
	Deploy(admin Address) error

	// AddMinter grants the minter role. Only the admin may call it.
	AddMinter(minter Address, caller Address) error

	// Mint creates new tokens for the given wallet, increasing the supply.
	// Only registered minters may call it.
	Mint(to Address, amount Amount, caller Address) error

	// Transfer moves tokens from the caller to the given wallet. The
	// resulting flag is the success value reported by the token.
	Transfer(to Address, amount Amount, caller Address) (bool, error)

	// Burn destroys tokens of the caller, decreasing the supply.
	Burn(amount Amount, caller Address) error

	// BalanceOf returns the current balance of the given wallet.
	BalanceOf(owner Address) (Amount, error)

	// TotalSupply returns the sum of all balances.
	TotalSupply() (Amount, error)
}

// StorageInspector is an optional extension of the Ledger interface for
// implementations able to read balances directly from their backing storage,
// bypassing the token's own view functions. It is used to audit that both
// views agree.
type StorageInspector interface {
	StoredBalanceOf(owner Address) (Amount, error)
	StoredTotalSupply() (Amount, error)
}

// ProfilingLedger is an optional extension to the Ledger interface above
// which may be implemented by ledgers collecting statistical data on their
// executions.
type ProfilingLedger interface {
	Ledger

	// Stats returns the statistics collected since the ledger was created.
	Stats() Stats
}

// Stats summarizes the work performed by a ledger.
type Stats struct {
	Transactions uint64 // number of state-changing operations
	Queries      uint64 // number of read-only operations
	Reverted     uint64 // number of operations rejected by the token logic
	GasUsed      uint64 // accumulated gas of all operations, 0 if not metered
}

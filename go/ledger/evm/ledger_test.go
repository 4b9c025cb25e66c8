// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package evm

import (
	"errors"
	"testing"

	"github.com/Fantom-foundation/Boltzmann/go/ledger"
)

var (
	admin  = ledger.Address{0xAD}
	minter = ledger.Address{0x11}
	alice  = ledger.Address{0xA1}
	bob    = ledger.Address{0xB0}
)

func newDeployedLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := NewLedger(DefaultConfig)
	if err != nil {
		t.Fatalf("failed to create ledger: %v", err)
	}
	if err := l.Deploy(admin); err != nil {
		t.Fatalf("failed to deploy: %v", err)
	}
	if err := l.AddMinter(minter, admin); err != nil {
		t.Fatalf("failed to add minter: %v", err)
	}
	return l
}

func wantBalance(t *testing.T, l *Ledger, owner ledger.Address, want ledger.Amount) {
	t.Helper()
	got, err := l.BalanceOf(owner)
	if err != nil {
		t.Fatalf("failed to get balance: %v", err)
	}
	if want != got {
		t.Errorf("unexpected balance of %v, wanted %v, got %v", owner, want, got)
	}
}

func TestLedger_IsRegistered(t *testing.T) {
	l, err := ledger.NewLedger("EVM")
	if err != nil {
		t.Fatalf("failed to create ledger from registry: %v", err)
	}
	if _, ok := l.(*Ledger); !ok {
		t.Errorf("unexpected ledger type %T", l)
	}
	if _, err := ledger.NewLedger("evm", "not a config"); err == nil {
		t.Errorf("expected invalid configuration to be rejected")
	}
}

func TestLedger_RejectsZeroGasLimit(t *testing.T) {
	if _, err := NewLedger(Config{}); err == nil {
		t.Errorf("expected zero gas limit to be rejected")
	}
}

func TestLedger_OperationsBeforeDeployFail(t *testing.T) {
	l, err := NewLedger(DefaultConfig)
	if err != nil {
		t.Fatalf("failed to create ledger: %v", err)
	}
	if _, err := l.BalanceOf(alice); !errors.Is(err, ledger.ErrNotDeployed) {
		t.Errorf("unexpected error, wanted %v, got %v", ledger.ErrNotDeployed, err)
	}
	if err := l.Mint(alice, ledger.NewAmount(1), minter); !errors.Is(err, ledger.ErrNotDeployed) {
		t.Errorf("unexpected error, wanted %v, got %v", ledger.ErrNotDeployed, err)
	}
	if _, err := l.StoredTotalSupply(); !errors.Is(err, ledger.ErrNotDeployed) {
		t.Errorf("unexpected error, wanted %v, got %v", ledger.ErrNotDeployed, err)
	}
}

func TestLedger_DeployTwiceFails(t *testing.T) {
	l := newDeployedLedger(t)
	if err := l.Deploy(admin); !errors.Is(err, ledger.ErrAlreadyDeployed) {
		t.Errorf("unexpected error, wanted %v, got %v", ledger.ErrAlreadyDeployed, err)
	}
	if _, err := l.Address(); err != nil {
		t.Errorf("deployed ledger has no address: %v", err)
	}
}

func TestLedger_FreshDeploymentHasNoSupply(t *testing.T) {
	l := newDeployedLedger(t)
	supply, err := l.TotalSupply()
	if err != nil {
		t.Fatalf("failed to get supply: %v", err)
	}
	if !supply.IsZero() {
		t.Errorf("unexpected supply, wanted 0, got %v", supply)
	}
	wantBalance(t, l, alice, ledger.Amount{})
}

func TestLedger_OnlyAdminCanAddMinters(t *testing.T) {
	l := newDeployedLedger(t)
	err := l.AddMinter(alice, bob)
	var authErr *ledger.AuthorizationError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected authorization error, got %v", err)
	}
	if want, got := ledger.ReasonNotAdmin, authErr.Reason; want != got {
		t.Errorf("unexpected reason, wanted %q, got %q", want, got)
	}
	if want, got := bob, authErr.Caller; want != got {
		t.Errorf("unexpected caller, wanted %v, got %v", want, got)
	}
}

func TestLedger_OnlyMintersCanMint(t *testing.T) {
	l := newDeployedLedger(t)
	for _, caller := range []ledger.Address{admin, alice} {
		err := l.Mint(alice, ledger.Tokens(1), caller)
		var authErr *ledger.AuthorizationError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected authorization error for %v, got %v", caller, err)
		}
		if want, got := ledger.ReasonNotMinter, authErr.Reason; want != got {
			t.Errorf("unexpected reason, wanted %q, got %q", want, got)
		}
	}
	wantBalance(t, l, alice, ledger.Amount{})
}

func TestLedger_MintIncreasesBalanceAndSupply(t *testing.T) {
	l := newDeployedLedger(t)
	if err := l.Mint(alice, ledger.Tokens(2), minter); err != nil {
		t.Fatalf("failed to mint: %v", err)
	}
	if err := l.Mint(bob, ledger.Tokens(3), minter); err != nil {
		t.Fatalf("failed to mint: %v", err)
	}
	wantBalance(t, l, alice, ledger.Tokens(2))
	wantBalance(t, l, bob, ledger.Tokens(3))

	supply, err := l.TotalSupply()
	if err != nil {
		t.Fatalf("failed to get supply: %v", err)
	}
	if want, got := ledger.Tokens(5), supply; want != got {
		t.Errorf("unexpected supply, wanted %v, got %v", want, got)
	}
}

func TestLedger_TransferMovesTokens(t *testing.T) {
	l := newDeployedLedger(t)
	if err := l.Mint(alice, ledger.NewAmount(100), minter); err != nil {
		t.Fatalf("failed to mint: %v", err)
	}
	ok, err := l.Transfer(bob, ledger.NewAmount(30), alice)
	if err != nil || !ok {
		t.Fatalf("transfer failed: %t, %v", ok, err)
	}
	wantBalance(t, l, alice, ledger.NewAmount(70))
	wantBalance(t, l, bob, ledger.NewAmount(30))
}

func TestLedger_TransferToSelfKeepsBalance(t *testing.T) {
	l := newDeployedLedger(t)
	if err := l.Mint(alice, ledger.NewAmount(10), minter); err != nil {
		t.Fatalf("failed to mint: %v", err)
	}
	ok, err := l.Transfer(alice, ledger.NewAmount(10), alice)
	if err != nil || !ok {
		t.Fatalf("transfer failed: %t, %v", ok, err)
	}
	wantBalance(t, l, alice, ledger.NewAmount(10))
}

func TestLedger_TransferExceedingBalanceFails(t *testing.T) {
	l := newDeployedLedger(t)
	if err := l.Mint(alice, ledger.NewAmount(10), minter); err != nil {
		t.Fatalf("failed to mint: %v", err)
	}
	_, err := l.Transfer(bob, ledger.NewAmount(11), alice)
	var execErr *ledger.ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected execution error, got %v", err)
	}
	if want, got := ledger.ReasonArithmetic, execErr.Reason; want != got {
		t.Errorf("unexpected reason, wanted %q, got %q", want, got)
	}
	wantBalance(t, l, alice, ledger.NewAmount(10))
	wantBalance(t, l, bob, ledger.Amount{})
}

func TestLedger_BurnReducesSupply(t *testing.T) {
	l := newDeployedLedger(t)
	if err := l.Mint(alice, ledger.NewAmount(10), minter); err != nil {
		t.Fatalf("failed to mint: %v", err)
	}
	if err := l.Burn(ledger.NewAmount(4), alice); err != nil {
		t.Fatalf("failed to burn: %v", err)
	}
	wantBalance(t, l, alice, ledger.NewAmount(6))
	supply, err := l.TotalSupply()
	if err != nil {
		t.Fatalf("failed to get supply: %v", err)
	}
	if want, got := ledger.NewAmount(6), supply; want != got {
		t.Errorf("unexpected supply, wanted %v, got %v", want, got)
	}
	if err := l.Burn(ledger.NewAmount(7), alice); err == nil {
		t.Errorf("expected burning more than the balance to fail")
	}
}

func TestLedger_StorageAgreesWithViewFunctions(t *testing.T) {
	l := newDeployedLedger(t)
	if err := l.Mint(alice, ledger.Tokens(1), minter); err != nil {
		t.Fatalf("failed to mint: %v", err)
	}
	if _, err := l.Transfer(bob, ledger.NewAmount(12345), alice); err != nil {
		t.Fatalf("failed to transfer: %v", err)
	}
	for _, owner := range []ledger.Address{alice, bob, minter} {
		viewed, err := l.BalanceOf(owner)
		if err != nil {
			t.Fatalf("failed to get balance: %v", err)
		}
		// read twice to cover the cached slot
		for i := 0; i < 2; i++ {
			stored, err := l.StoredBalanceOf(owner)
			if err != nil {
				t.Fatalf("failed to read storage: %v", err)
			}
			if viewed != stored {
				t.Errorf("storage disagrees for %v, wanted %v, got %v", owner, viewed, stored)
			}
		}
	}
	supply, _ := l.TotalSupply()
	stored, err := l.StoredTotalSupply()
	if err != nil || supply != stored {
		t.Errorf("stored supply disagrees, wanted %v, got %v (%v)", supply, stored, err)
	}
}

func TestLedger_StatsCountOperations(t *testing.T) {
	l := newDeployedLedger(t)
	if err := l.Mint(alice, ledger.NewAmount(1), alice); err == nil {
		t.Fatalf("expected mint to fail")
	}
	if _, err := l.BalanceOf(alice); err != nil {
		t.Fatalf("failed to get balance: %v", err)
	}
	stats := l.Stats()
	// deploy, addMinter, mint
	if want, got := uint64(3), stats.Transactions; want != got {
		t.Errorf("unexpected number of transactions, wanted %d, got %d", want, got)
	}
	if want, got := uint64(1), stats.Queries; want != got {
		t.Errorf("unexpected number of queries, wanted %d, got %d", want, got)
	}
	if want, got := uint64(1), stats.Reverted; want != got {
		t.Errorf("unexpected number of reverts, wanted %d, got %d", want, got)
	}
	if stats.GasUsed == 0 {
		t.Errorf("gas usage not recorded")
	}
}

func TestLedger_ExhaustedGasIsAnExecutionError(t *testing.T) {
	config := DefaultConfig
	l, err := NewLedger(config)
	if err != nil {
		t.Fatalf("failed to create ledger: %v", err)
	}
	if err := l.Deploy(admin); err != nil {
		t.Fatalf("failed to deploy: %v", err)
	}
	l.config.GasLimit = 100
	err = l.AddMinter(minter, admin)
	var execErr *ledger.ExecutionError
	if !errors.As(err, &execErr) {
		t.Errorf("expected execution error, got %v", err)
	}
}

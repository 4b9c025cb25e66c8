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

import "fmt"

const (
	// ErrNotDeployed is reported when the ledger is used before Deploy.
	ErrNotDeployed = ConstError("stablecoin not deployed")
	// ErrAlreadyDeployed is reported on a second call to Deploy.
	ErrAlreadyDeployed = ConstError("stablecoin already deployed")
)

// Revert reasons reported by the stablecoin. Implementations of the Ledger
// interface use the same reasons so results can be compared across them.
const (
	ReasonNotMinter    = "Not a minter"
	ReasonNotAdmin     = "Not the Admin!"
	ReasonArithmetic   = "arithmetic underflow or overflow"
	ReasonTransferFail = "transfer reported failure"
)

// ConstError is a error type that can be used to define immutable
// error constants.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}

// AuthorizationError is reported when the caller of a privileged operation
// lacks the required role (admin for AddMinter, minter for Mint).
type AuthorizationError struct {
	Method string
	Caller Address
	Reason string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s by %v not authorized: %s", e.Method, e.Caller, e.Reason)
}

// ExecutionError is reported for any other failure of a ledger operation,
// e.g. insufficient balances, arithmetic overflows or exhausted gas.
type ExecutionError struct {
	Method string
	Reason string
	Err    error
}

func (e *ExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Method, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Method, e.Reason)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

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

import (
	"errors"
	"strings"
	"testing"
)

func TestConstError_CanBeUsedAsSentinel(t *testing.T) {
	err := error(ErrNotDeployed)
	if !errors.Is(err, ErrNotDeployed) {
		t.Errorf("constant error not recognized")
	}
	if errors.Is(err, ErrAlreadyDeployed) {
		t.Errorf("different constant errors must not match")
	}
}

func TestAuthorizationError_DescribesCallerAndReason(t *testing.T) {
	err := error(&AuthorizationError{Method: "mint", Caller: Address{1}, Reason: "Not a minter"})
	msg := err.Error()
	for _, part := range []string{"mint", Address{1}.String(), "Not a minter"} {
		if !strings.Contains(msg, part) {
			t.Errorf("error message %q does not contain %q", msg, part)
		}
	}
	var authErr *AuthorizationError
	if !errors.As(err, &authErr) {
		t.Errorf("failed to recover authorization error")
	}
}

func TestExecutionError_UnwrapsCause(t *testing.T) {
	cause := ConstError("boom")
	err := error(&ExecutionError{Method: "transfer", Reason: "reverted", Err: cause})
	if !errors.Is(err, cause) {
		t.Errorf("cause not reachable through execution error")
	}
	if want, got := "transfer failed: reverted: boom", err.Error(); want != got {
		t.Errorf("unexpected message, wanted %q, got %q", want, got)
	}
	plain := &ExecutionError{Method: "burn", Reason: "insufficient balance"}
	if want, got := "burn failed: insufficient balance", plain.Error(); want != got {
		t.Errorf("unexpected message, wanted %q, got %q", want, got)
	}
}

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
	"github.com/Fantom-foundation/Boltzmann/go/ledger"
	"pgregory.net/rand"
)

// RandomAddress draws a uniformly distributed address.
func RandomAddress(rnd *rand.Rand) ledger.Address {
	address := ledger.Address{}
	rnd.Read(address[:]) // never returns an error
	return address
}

// newWallets draws n distinct addresses, none of them listed in reserved.
func newWallets(rnd *rand.Rand, n int, reserved ...ledger.Address) []ledger.Address {
	used := make(map[ledger.Address]struct{}, n+len(reserved))
	for _, address := range reserved {
		used[address] = struct{}{}
	}
	used[ledger.Address{}] = struct{}{}
	res := make([]ledger.Address, 0, n)
	for len(res) < n {
		address := RandomAddress(rnd)
		if _, found := used[address]; found {
			continue
		}
		used[address] = struct{}{}
		res = append(res, address)
	}
	return res
}

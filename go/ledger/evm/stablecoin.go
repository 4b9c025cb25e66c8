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
	_ "embed"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Fantom-foundation/Boltzmann/go/ledger"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// The AcmeStableCoin contract is a Solmate ERC20 token extended by an admin
// managing a set of minters. Only minters may create new tokens; burning is
// open to every holder for its own balance.

//go:embed AcmeStableCoin.abi
var stableCoinAbiJson string

//go:embed AcmeStableCoin.bin
var stableCoinBinHex string

var (
	stableCoinAbi  abi.ABI
	stableCoinCode []byte
)

// Storage layout of the contract as assigned by the compiler.
const (
	totalSupplySlot = 2
	balanceOfSlot   = 3
)

const panicSelector = "4e487b71" // Panic(uint256)

func init() {
	var err error
	stableCoinAbi, err = abi.JSON(strings.NewReader(stableCoinAbiJson))
	if err != nil {
		panic(fmt.Sprintf("failed to parse stablecoin ABI: %v", err))
	}
	stableCoinCode, err = hex.DecodeString(strings.TrimSpace(stableCoinBinHex))
	if err != nil {
		panic(fmt.Sprintf("failed to decode stablecoin code: %v", err))
	}
	for _, name := range []string{"addMinter", "mint", "transfer", "burn", "balanceOf", "totalSupply"} {
		if _, found := stableCoinAbi.Methods[name]; !found {
			panic(fmt.Sprintf("stablecoin ABI lacks method %s", name))
		}
	}
}

// pack encodes a call to the given contract method.
func pack(method string, args ...any) ([]byte, error) {
	return stableCoinAbi.Pack(method, args...)
}

// unpackSingle decodes the single return value of the given method.
func unpackSingle(method string, output []byte) (any, error) {
	values, err := stableCoinAbi.Unpack(method, output)
	if err != nil {
		return nil, err
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("unexpected number of results for %s: %d", method, len(values))
	}
	return values[0], nil
}

// revertReason extracts a human readable reason from the output of a
// reverted call. Error(string) payloads yield their message, Panic(uint256)
// payloads are mapped to the compiler's panic descriptions.
func revertReason(output []byte) string {
	if len(output) >= 4 && hex.EncodeToString(output[:4]) == panicSelector {
		code := new(common.Hash)
		copy(code[:], output[4:])
		return panicReason(code.Big().Uint64())
	}
	if reason, err := abi.UnpackRevert(output); err == nil {
		return reason
	}
	return "execution reverted"
}

func panicReason(code uint64) string {
	switch code {
	case 0x01:
		return "assertion failed"
	case 0x11:
		return ledger.ReasonArithmetic
	case 0x12:
		return "division or modulo by zero"
	case 0x32:
		return "array index out of bounds"
	}
	return fmt.Sprintf("panic 0x%x", code)
}

// balanceSlotOf computes the storage key of the balance of the given owner,
// following the compiler's layout for mappings: keccak256(key . slot).
func balanceSlotOf(owner ledger.Address) common.Hash {
	var data [64]byte
	copy(data[12:32], owner[:])
	data[63] = balanceOfSlot
	res := common.Hash{}
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(data[:])
	hasher.Sum(res[0:0])
	return res
}

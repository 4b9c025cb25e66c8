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
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// Address identifies a wallet or a contract on the ledger.
type Address [20]byte

// Amount is an unsigned 256-bit token quantity expressed in base units.
type Amount [32]byte

// Decimals is the number of decimal places of the stablecoin. A balance of
// 10^Decimals base units is displayed as one token.
const Decimals = 18

// tokenScale is 10^Decimals, the number of base units of one token.
var tokenScale = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil))

func (a Address) String() string {
	return fmt.Sprintf("0x%x", a[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(data []byte) error {
	return textToBytes(a[:], data)
}

// ParseAddress parses a 0x-prefixed hex string of exactly 20 bytes.
func ParseAddress(s string) (Address, error) {
	var res Address
	err := res.UnmarshalText([]byte(s))
	return res, err
}

// MustParseAddress is like ParseAddress but panics on invalid inputs. It is
// intended for constants.
func MustParseAddress(s string) Address {
	res, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return res
}

// NewAmount creates a new Amount from up to 4 uint64 arguments. The
// arguments are given in the order from most significant to least significant
// by padding leading zeros as needed. No argument results in zero.
func NewAmount(args ...uint64) (result Amount) {
	if len(args) > 4 {
		panic("Too many arguments")
	}
	offset := 4 - len(args)
	for i := 0; i < len(args); i++ {
		start := (offset * 8) + i*8
		binary.BigEndian.PutUint64(result[start:start+8], args[i])
	}
	return
}

// Tokens returns the amount of base units representing n whole tokens.
func Tokens(n uint64) Amount {
	scale := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(Decimals))
	return AmountFromUint256(scale.Mul(scale, uint256.NewInt(n)))
}

// AmountFromUint256 converts a *uint256.Int to an Amount. A nil input
// results in zero.
func AmountFromUint256(value *uint256.Int) Amount {
	if value == nil {
		return Amount{}
	}
	return value.Bytes32()
}

// AmountFromBig converts a big integer into an Amount. Negative values and
// values exceeding 256 bits are rejected.
func AmountFromBig(value *big.Int) (Amount, error) {
	if value == nil {
		return Amount{}, nil
	}
	res, overflow := uint256.FromBig(value)
	if overflow || value.Sign() < 0 {
		return Amount{}, fmt.Errorf("value %v is not representable as an amount", value)
	}
	return AmountFromUint256(res), nil
}

// ParseAmount parses a decimal or a 0x-prefixed hexadecimal amount.
func ParseAmount(s string) (Amount, error) {
	var res Amount
	err := res.UnmarshalText([]byte(s))
	return res, err
}

func (a Amount) ToUint256() *uint256.Int {
	return new(uint256.Int).SetBytes(a[:])
}

func (a Amount) ToBig() *big.Int {
	return new(big.Int).SetBytes(a[:])
}

func (a Amount) IsZero() bool {
	return a == Amount{}
}

func (a Amount) Cmp(o Amount) int {
	return a.ToUint256().Cmp(o.ToUint256())
}

// Add returns a+b and reports whether the sum overflowed.
func (a Amount) Add(b Amount) (Amount, bool) {
	res, overflow := new(uint256.Int).AddOverflow(a.ToUint256(), b.ToUint256())
	return AmountFromUint256(res), overflow
}

// Sub returns a-b and reports whether the difference underflowed.
func (a Amount) Sub(b Amount) (Amount, bool) {
	res, underflow := new(uint256.Int).SubOverflow(a.ToUint256(), b.ToUint256())
	return AmountFromUint256(res), underflow
}

// MulUint64 returns a*n and reports whether the product overflowed.
func (a Amount) MulUint64(n uint64) (Amount, bool) {
	res, overflow := new(uint256.Int).MulOverflow(a.ToUint256(), uint256.NewInt(n))
	return AmountFromUint256(res), overflow
}

// Min returns the smaller of the two amounts.
func Min(a, b Amount) Amount {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Display converts the amount into a display-scale token count by dividing
// it by 10^Decimals. The result is for reporting only; it is subject to
// floating-point rounding and must not drive any ledger decisions.
func (a Amount) Display() float64 {
	res, _ := new(big.Float).Quo(new(big.Float).SetInt(a.ToBig()), tokenScale).Float64()
	return res
}

func (a Amount) String() string {
	return a.ToUint256().Dec()
}

// MarshalText encodes the amount as a decimal number.
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText accepts decimal numbers and 0x-prefixed hex numbers.
func (a *Amount) UnmarshalText(data []byte) error {
	s := strings.ReplaceAll(strings.TrimSpace(string(data)), "_", "")
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		value, ok := new(big.Int).SetString(s[2:], 16)
		if !ok {
			return fmt.Errorf("invalid amount %q: not a hex number", string(data))
		}
		res, err := AmountFromBig(value)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", string(data), err)
		}
		*a = res
		return nil
	}
	res, err := uint256.FromDecimal(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", string(data), err)
	}
	*a = AmountFromUint256(res)
	return nil
}

func textToBytes(trg []byte, data []byte) error {
	s := string(data)
	if !strings.HasPrefix(s, "0x") {
		return fmt.Errorf("invalid format, does not start with 0x: %v", s)
	}
	data, err := hex.DecodeString(s[2:])
	if err != nil {
		return err
	}
	if want, got := len(trg), len(data); want != got {
		return fmt.Errorf("invalid format, wanted %d bytes, got %d", want, got)
	}
	copy(trg, data)
	return nil
}

// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package metrics computes inequality statistics over the wealth of agents and
// records them in an append-only history.
package metrics

import (
	"errors"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

var (
	// ErrUndefinedMetric is reported for inputs without any wealth, for which
	// the Gini coefficient is not defined.
	ErrUndefinedMetric = errors.New("metric undefined for empty or zero wealth")
	// ErrNegativeWealth is reported if any input value is negative.
	ErrNegativeWealth = errors.New("negative wealth")
)

// Number covers all value types accepted by Gini.
type Number interface {
	constraints.Integer | constraints.Float
}

// Gini computes the Gini coefficient of the given values:
//
//	B = sum(x[i] * (N-i)) / (N * sum(x))   for x sorted ascending, i = 0..N-1
//	G = 1 + 1/N - 2B
//
// The result is 0 for perfect equality and 1-1/N if a single value holds
// everything. For an empty input or a zero total, 0 is returned together with
// ErrUndefinedMetric. The input is not modified.
func Gini[T Number](values []T) (float64, error) {
	n := len(values)
	if n == 0 {
		return 0, ErrUndefinedMetric
	}
	sorted := make([]float64, n)
	for i, x := range values {
		if x < 0 {
			return 0, ErrNegativeWealth
		}
		sorted[i] = float64(x)
	}
	slices.Sort(sorted)

	var sum, weighted float64
	for i, x := range sorted {
		sum += x
		weighted += x * float64(n-i)
	}
	if sum == 0 {
		return 0, ErrUndefinedMetric
	}
	size := float64(n)
	b := weighted / (size * sum)
	return 1 + 1/size - 2*b, nil
}

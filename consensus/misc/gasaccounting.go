// Copyright 2021 The go-ethereum Authors
// (original work)
// Copyright 2024 The Erigon Authors
// (modifications)
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

// Package misc holds the small protocol-accounting helpers that don't
// belong to any one state-transition stage. This file used to implement
// EIP-4844 blob-gas accounting (CalcExcessBlobGas, FakeExponential); that
// forked chain's blob-gas market doesn't exist in this spec, so the
// overflow-checked uint256 accumulation idiom is kept and redirected at
// the one gas sum this spec does require: a block's total intrinsic gas
// against GASLIMIT (spec invariant 5).
package misc

import (
	"github.com/holiman/uint256"
)

// SumIntrinsicGas accumulates a list of per-group intrinsic gas totals,
// reporting overflow rather than wrapping silently.
func SumIntrinsicGas(perGroup []uint64) (total uint64, overflow bool) {
	sum := new(uint256.Int)
	for _, g := range perGroup {
		var ov bool
		sum, ov = sum.AddOverflow(sum, uint256.NewInt(g))
		if ov {
			return 0, true
		}
	}
	if !sum.IsUint64() {
		return 0, true
	}
	return sum.Uint64(), false
}

// CheckGasLimit reports whether the summed intrinsic gas of a block's
// groups is strictly below limit, per spec invariant 5
// (sum(s.intrinsic_gas) < GASLIMIT).
func CheckGasLimit(perGroup []uint64, limit uint64) (ok bool, total uint64, overflow bool) {
	total, overflow = SumIntrinsicGas(perGroup)
	if overflow {
		return false, 0, true
	}
	return total < limit, total, false
}

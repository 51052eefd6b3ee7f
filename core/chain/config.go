// Copyright 2024 The Erigon Authors
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

package chain

import "github.com/erigontech/shardstate/core/types"

// Config bundles the chain-wide parameters ApplyBlock reads, in place
// of the original source's scattered module-level globals
// (BLOCKHASHES, STATEROOTS, GASLIMIT, ...). The well-known addresses
// themselves stay as core/types constants since every package that
// touches state needs them; Config only carries the handful of values
// a deployment might plausibly want to override.
type Config struct {
	// GasLimit mirrors types.GasLimit, the bound block construction
	// enforces on a block's total intrinsic gas (spec invariant 5).
	// Block construction reads the types constant, not this field.
	GasLimit uint64
	// MaxShards is the shard universe width.
	MaxShards int
	// NoGasOverride is the sentinel override_gas value meaning "do not
	// cap deployment/execution gas beyond the transaction's own
	// exec_gas", matching the original source's override_gas=2**255
	// default (a value no real transaction's gas field will reach).
	NoGasOverride uint64
}

// DefaultConfig returns the Config used for ordinary block application.
func DefaultConfig() Config {
	return Config{
		GasLimit:      types.GasLimit,
		MaxShards:     types.MaxShards,
		NoGasOverride: ^uint64(0),
	}
}

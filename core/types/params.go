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

package types

// Protocol constants. These are "configurable, but fixed per chain" per
// spec section 6; a single chain flavor is wired as package-level
// constants rather than threaded through every constructor, matching how
// the original source reads them from a single config module.
const (
	// ShardIDBytes is the width of the shard-identifying prefix of an
	// Address.
	ShardIDBytes = 2
	// AddrBaseBytes is the width of the base (non-shard) portion of an
	// Address.
	AddrBaseBytes = 20
	// AddrBytes is the total width of an Address.
	AddrBytes = ShardIDBytes + AddrBaseBytes
	// MaxShards is the total shard universe. Must be a power of two.
	MaxShards = 1024
	// GasLimit is the per-block intrinsic-gas budget (spec invariant 5:
	// sum(s.intrinsic_gas) < GasLimit).
	GasLimit = 10_000_000
)

// UnhashMagicBytes prefixes content-addressed code blobs in the KV
// store: UNHASH_MAGIC_BYTES ‖ hash(code) → code.
var UnhashMagicBytes = []byte{0xfe, 0xed}

// Well-known address bases (spec section 3). Each is sharded on demand
// via Shardify/MatchShard; the constants below only fix the base bytes.
var (
	BlockNumberBase    = baseAddress(0x01)
	BlockHashesBase    = baseAddress(0x02)
	StateRootsBase     = baseAddress(0x03)
	ProposerBase       = baseAddress(0x04)
	RNGSeedsBase       = baseAddress(0x05)
	CasperBase         = baseAddress(0x06)
	ExecutionStateBase = baseAddress(0x07)
	LogBase            = baseAddress(0x08)
	EtherBase          = baseAddress(0x09)
)

func baseAddress(tag byte) Address {
	var a Address
	a[AddrBytes-1] = tag
	return a
}

// Per-account storage keys within the EXECUTION_STATE system contract.
var (
	GasRemainingKey = encodeSlot(0)
	TxIndexKey      = encodeSlot(1)
	TxGasKey        = encodeSlot(2)
)

func encodeSlot(n uint64) []byte {
	var b [32]byte
	putUint64(b[24:], n)
	return b[:]
}

func putUint64(dst []byte, n uint64) {
	for i := 7; i >= 0; i-- {
		dst[i] = byte(n)
		n >>= 8
	}
}

// NullSender is the distinguished zero-valued sender used for synthetic
// deployment messages.
var NullSender Address

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

import (
	"encoding/binary"
	"encoding/hex"
)

// Address is a fixed-width address: the first ShardIDBytes encode the
// shard identifier, the remaining AddrBaseBytes are the base address.
type Address [AddrBytes]byte

// BytesToAddress left-pads or truncates b to fit an Address.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddrBytes {
		b = b[len(b)-AddrBytes:]
	}
	copy(a[AddrBytes-len(b):], b)
	return a
}

func (a Address) Bytes() []byte { return a[:] }

func (a Address) String() string { return "0x" + hex.EncodeToString(a[:]) }

// GetShard returns the shard identifier encoded in a's prefix.
func GetShard(a Address) int {
	return int(binary.BigEndian.Uint16(a[:ShardIDBytes]))
}

// Shardify returns an address in the given shard carrying base's base
// bytes.
func Shardify(base Address, shard int) Address {
	var out Address
	binary.BigEndian.PutUint16(out[:ShardIDBytes], uint16(shard))
	copy(out[ShardIDBytes:], base[ShardIDBytes:])
	return out
}

// MatchShard returns an address carrying base's base bytes but a's
// shard.
func MatchShard(base, a Address) Address {
	var out Address
	copy(out[:ShardIDBytes], a[:ShardIDBytes])
	copy(out[ShardIDBytes:], base[ShardIDBytes:])
	return out
}

// EncodeInt32 canonicalizes an integer key or value to a fixed-width
// 32-byte big-endian string, the storage-key/value convention spec
// section 4.1 requires ("Integer keys/values are canonicalized to
// fixed-width big-endian 32-byte strings").
func EncodeInt32(n uint64) []byte {
	var b [32]byte
	binary.BigEndian.PutUint64(b[24:], n)
	return b[:]
}

// DecodeBigEndianUint interprets b as a big-endian unsigned integer,
// treating a nil/empty slice as zero.
func DecodeBigEndianUint(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

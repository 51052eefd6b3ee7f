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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShardifyThenGetShardRoundTrips(t *testing.T) {
	base := EtherBase
	a := Shardify(base, 42)
	assert.Equal(t, 42, GetShard(a))
}

func TestMatchShardKeepsBaseSwapsShard(t *testing.T) {
	sharded := Shardify(BlockNumberBase, 7)
	matched := MatchShard(EtherBase, sharded)
	assert.Equal(t, 7, GetShard(matched))
	assert.Equal(t, EtherBase.Bytes()[ShardIDBytes:], matched.Bytes()[ShardIDBytes:])
}

func TestEncodeInt32IsFixedWidth(t *testing.T) {
	assert.Len(t, EncodeInt32(0), 32)
	assert.Len(t, EncodeInt32(1<<40), 32)
}

func TestDecodeBigEndianUintRoundTrip(t *testing.T) {
	assert.Equal(t, uint64(1234), DecodeBigEndianUint(EncodeInt32(1234)))
	assert.Equal(t, uint64(0), DecodeBigEndianUint(nil))
}

func TestBytesToAddressTruncatesAndPads(t *testing.T) {
	short := BytesToAddress([]byte{1, 2, 3})
	assert.Equal(t, byte(1), short.Bytes()[AddrBytes-3])

	long := make([]byte, AddrBytes+10)
	for i := range long {
		long[i] = byte(i)
	}
	truncated := BytesToAddress(long)
	assert.Equal(t, long[len(long)-AddrBytes:], truncated.Bytes())
}

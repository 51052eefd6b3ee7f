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
	"github.com/pkg/errors"

	shardmath "github.com/erigontech/shardstate/erigon-lib/common/math"
)

// ShardRange is a validated, binary-tree-aligned contiguous range of the
// shard universe [0, MaxShards). Summaries and blocks are built from
// these rather than from raw ints so the tree-alignment invariant can
// only be constructed correctly, never merely hoped for.
type ShardRange struct {
	Left  int
	Right int
}

// NewShardRange validates and returns the range [left, right).
func NewShardRange(left, right int) (ShardRange, error) {
	if left < 0 || right > MaxShards || left >= right {
		return ShardRange{}, errors.Errorf("shard range [%d, %d) out of bounds [0, %d)", left, right, MaxShards)
	}
	width := right - left
	if !shardmath.IsPowerOfTwo(width) {
		return ShardRange{}, errors.Errorf("shard range [%d, %d) has non-power-of-two width %d", left, right, width)
	}
	if left%width != 0 {
		return ShardRange{}, errors.Errorf("shard range [%d, %d) is not binary-tree aligned", left, right)
	}
	return ShardRange{Left: left, Right: right}, nil
}

// Contains reports whether shard lies within the range.
func (r ShardRange) Contains(shard int) bool {
	return r.Left <= shard && shard < r.Right
}

// Encloses reports whether inner is a sub-range of r.
func (r ShardRange) Encloses(inner ShardRange) bool {
	return r.Left <= inner.Left && inner.Right <= r.Right
}

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
	"github.com/stretchr/testify/require"
)

func TestNewShardRangeAcceptsTreeAlignedRanges(t *testing.T) {
	r, err := NewShardRange(12, 14)
	require.NoError(t, err)
	assert.True(t, r.Contains(12))
	assert.True(t, r.Contains(13))
	assert.False(t, r.Contains(14))
}

func TestNewShardRangeRejectsNonPowerOfTwoWidth(t *testing.T) {
	_, err := NewShardRange(0, 3)
	assert.Error(t, err)
}

func TestNewShardRangeRejectsMisalignedBounds(t *testing.T) {
	// Width 2 starting at 13 is not tree-aligned (13 % 2 != 0).
	_, err := NewShardRange(13, 15)
	assert.Error(t, err)
}

func TestNewShardRangeRejectsOutOfUniverseBounds(t *testing.T) {
	_, err := NewShardRange(0, MaxShards+1)
	assert.Error(t, err)
}

func TestEnclosesRequiresSubsetBounds(t *testing.T) {
	outer, err := NewShardRange(0, 16)
	require.NoError(t, err)
	inner, err := NewShardRange(4, 8)
	require.NoError(t, err)
	assert.True(t, outer.Encloses(inner))
	assert.False(t, inner.Encloses(outer))
}

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

package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUint64Decimal(t *testing.T) {
	v, ok := ParseUint64("123")
	assert.True(t, ok)
	assert.Equal(t, uint64(123), v)
}

func TestParseUint64Hex(t *testing.T) {
	v, ok := ParseUint64("0xff")
	assert.True(t, ok)
	assert.Equal(t, uint64(255), v)
}

func TestParseUint64EmptyIsZero(t *testing.T) {
	v, ok := ParseUint64("")
	assert.True(t, ok)
	assert.Equal(t, uint64(0), v)
}

func TestParseUint64Invalid(t *testing.T) {
	_, ok := ParseUint64("not-a-number")
	assert.False(t, ok)
}

func TestSafeMulOverflow(t *testing.T) {
	_, overflow := SafeMul(math.MaxUint64, 2)
	assert.True(t, overflow)

	v, overflow := SafeMul(3, 4)
	assert.False(t, overflow)
	assert.Equal(t, uint64(12), v)
}

func TestSafeAddOverflow(t *testing.T) {
	_, overflow := SafeAdd(math.MaxUint64, 1)
	assert.True(t, overflow)

	v, overflow := SafeAdd(3, 4)
	assert.False(t, overflow)
	assert.Equal(t, uint64(7), v)
}

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, 3, CeilDiv(7, 3))
	assert.Equal(t, 2, CeilDiv(6, 3))
	assert.Equal(t, 0, CeilDiv(7, 0))
}

func TestIsPowerOfTwo(t *testing.T) {
	assert.True(t, IsPowerOfTwo(1))
	assert.True(t, IsPowerOfTwo(1024))
	assert.False(t, IsPowerOfTwo(0))
	assert.False(t, IsPowerOfTwo(3))
}

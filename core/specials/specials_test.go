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

package specials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/shardstate/core/types"
	"github.com/erigontech/shardstate/core/vm"
)

func TestRegisterLookupRoundTrip(t *testing.T) {
	r := NewRegistry()
	addr := types.BytesToAddress([]byte("built-in"))
	called := false
	r.Register(addr, func(ext *vm.Ext, msg vm.Message) (vm.Status, uint64, []byte) {
		called = true
		return vm.StatusSuccess, msg.Gas, nil
	})

	fn, ok := r.Lookup(addr)
	require.True(t, ok)
	_, _, _ = fn(&vm.Ext{}, vm.Message{Gas: 10})
	assert.True(t, called)
}

func TestLookupMissingAddressNotFound(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Lookup(types.BytesToAddress([]byte("nothing here")))
	assert.False(t, ok)
}

func TestDefaultRegistryCasperGetterReadsValidatorCount(t *testing.T) {
	r := DefaultRegistry()
	fn, ok := r.Lookup(types.CasperBase)
	require.True(t, ok)

	store := map[string][]byte{
		string(types.EncodeInt32(0)): []byte{0x00, 0x00, 0x00, 0x2a},
	}
	ext := &vm.Ext{
		GetStorage: func(addr types.Address, key []byte) []byte { return store[string(key)] },
	}

	status, gasLeft, data := fn(ext, vm.Message{Gas: 100})
	assert.Equal(t, vm.StatusSuccess, status)
	assert.Equal(t, uint64(100), gasLeft)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x2a}, data)
}

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

// Package specials holds the registry of built-in addresses apply_msg
// dispatches to instead of running the VM (spec section 4.5, step 5).
package specials

import (
	"encoding/binary"

	"github.com/erigontech/shardstate/core/types"
	"github.com/erigontech/shardstate/core/vm"
)

// Func is a built-in callable bound to a specific address.
type Func func(ext *vm.Ext, msg vm.Message) (vm.Status, uint64, []byte)

// Registry maps the integer value of a recipient address's low 8 bytes
// to its special function.
type Registry struct {
	entries map[uint64]Func
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[uint64]Func)}
}

// Register binds fn to the integer value of addr.
func (r *Registry) Register(addr types.Address, fn Func) {
	r.entries[addressKey(addr)] = fn
}

// Lookup returns the special bound to addr, if any.
func (r *Registry) Lookup(addr types.Address) (Func, bool) {
	fn, ok := r.entries[addressKey(addr)]
	return fn, ok
}

func addressKey(addr types.Address) uint64 {
	// Addresses are wider than 8 bytes; the low 8 bytes are enough to
	// key a small, hand-registered map of built-ins. The shard prefix is
	// not part of that span, so the same base address in any shard
	// resolves to the same special.
	b := addr.Bytes()
	return binary.BigEndian.Uint64(b[len(b)-8:])
}

// DefaultRegistry returns the registry SPEC_FULL.md seeds: a read-only
// getter at the CASPER base address reporting the validator count
// (slot 0), matching the original source's note that CASPER exists
// "for Casper signature verifications" without implementing an actual
// signature scheme (out of scope, spec section 1).
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(types.CasperBase, func(ext *vm.Ext, msg vm.Message) (vm.Status, uint64, []byte) {
		count := ext.GetStorage(types.CasperBase, types.EncodeInt32(0))
		return vm.StatusSuccess, msg.Gas, count
	})
	return r
}

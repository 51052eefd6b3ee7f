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

// Package vm defines the boundary between the state-transition core and
// the virtual machine: the Message/CallData wire shapes, the Ext façade
// a VM reads and writes state through, and the VM interface itself. The
// bytecode interpreter is an external collaborator per spec section 1 —
// this package only ever holds the seam it plugs into.
package vm

import "github.com/erigontech/shardstate/core/types"

// Status is the tagged return code apply_msg and VM execution use
// instead of Go errors, per spec section 9 ("Tagged status vs.
// exceptions"): the caller must always unwind the snapshot before
// returning, which a bare error return makes easy to forget.
type Status int

const (
	// StatusRevert means the message reverted; no gas is returned.
	StatusRevert Status = 0
	// StatusSoftFail means a pre-check failed (e.g. insufficient
	// balance); no gas is consumed.
	StatusSoftFail Status = 1
	// StatusSuccess and above mean the message completed; specific VMs
	// may use higher values for richer success signaling.
	StatusSuccess Status = 2
)

// Ext is the read/write façade passed to VM execution. Its fields are
// function values rather than methods so two independent façades ---
// one backed by live state, one the inert "empty" façade used for pure
// calls --- can share the same type without an interface indirection,
// mirroring the original source's VMExt/_EmptyVMExt classes which
// simply assigned closures as instance attributes.
type Ext struct {
	GetStorage  func(addr types.Address, key []byte) []byte
	SetStorage  func(addr types.Address, key []byte, value []byte)
	LogStorage  func(addr types.Address) map[string][]byte
	Unhash      func(hash []byte) []byte
	PutHashData func(blob []byte) []byte // returns the hash it was stored under
	Msg         func(msg Message, code []byte) (Status, uint64, []byte)
	StaticMsg   func(msg Message, code []byte) (Status, uint64, []byte)

	// IsEmpty marks the distinguished empty façade used for pure
	// validation calls (e.g. signature checks); apply_msg's pure-call
	// cache only applies when this is true.
	IsEmpty bool
}

// VM executes code against a message through a façade.
type VM interface {
	Execute(ext *Ext, msg Message, code []byte) (Status, uint64, []byte)
}

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

import (
	"github.com/erigontech/shardstate/core/crypto"
	"github.com/erigontech/shardstate/core/vm"
)

// TransitionMemo is the process-wide determinism check keyed by
// (pre-root, block hash): replaying the same block against the same
// pre-state must always reach the same post-root. Grounded on the
// original source's transition_cache_map, a plain module-level dict
// asserted against on every call to block_state_transition.
type TransitionMemo struct {
	entries map[string]crypto.Hash
}

// NewTransitionMemo returns an empty memo.
func NewTransitionMemo() *TransitionMemo {
	return &TransitionMemo{entries: make(map[string]crypto.Hash)}
}

// Check records post under key the first time it is seen, or panics
// (fatalInvariant) if a later call disagrees — determinism violations
// are never recoverable, since they mean two replays of the same input
// produced different state.
func (m *TransitionMemo) Check(key string, post crypto.Hash) {
	if prior, ok := m.entries[key]; ok {
		if prior != post {
			fatalInvariant("non-deterministic state transition: pre+block key %x produced %x, then %x", key, prior, post)
		}
		return
	}
	m.entries[key] = post
}

// pureCallResult is one memoized apply_msg outcome.
type pureCallResult struct {
	status vm.Status
	gas    uint64
	data   []byte
}

// PureCallMemo caches apply_msg results for the empty, state-free
// façade used for pure validation calls (e.g. signature checks),
// grounded on the original source's eve_cache. The cache key folds in
// every input apply_msg's result depends on: sender, recipient, value,
// call data and code.
type PureCallMemo struct {
	entries map[string]pureCallResult
}

// NewPureCallMemo returns an empty memo.
func NewPureCallMemo() *PureCallMemo {
	return &PureCallMemo{entries: make(map[string]pureCallResult)}
}

func (m *PureCallMemo) get(key string) (pureCallResult, bool) {
	r, ok := m.entries[key]
	return r, ok
}

func (m *PureCallMemo) put(key string, status vm.Status, gas uint64, data []byte) {
	m.entries[key] = pureCallResult{status: status, gas: gas, data: data}
}

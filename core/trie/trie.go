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

// Package trie implements the Merkle key/value trie adapter the state
// core builds accounts and storage on. Per spec section 1 the trie
// library is formally an external collaborator; no pack dependency
// ships a standalone Merkle-Patricia trie we can import without pulling
// in an entire chain client (see DESIGN.md), so this is a minimal,
// from-scratch, content-addressed trie: every node is the canonical RLP
// encoding of its sorted key/value pairs, addressed by its own Keccak256
// hash. It satisfies the interface spec section 6 requires
// (root hash, Get, Update, ToDict) without claiming to be a production
// Merkle-Patricia implementation.
package trie

import (
	"fmt"
	"sort"

	"github.com/erigontech/shardstate/core/crypto"
	"github.com/erigontech/shardstate/core/kv"
	"github.com/erigontech/shardstate/core/rlp"
)

// BlankRoot is the root hash of the empty trie.
var BlankRoot = crypto.Keccak256Hash(rlp.EncodeList())

// Trie is a single Merkle key/value trie over a content-addressed store.
type Trie struct {
	db      kv.Store
	root    crypto.Hash
	entries map[string][]byte
	loaded  bool
}

// New returns a Trie backed by db, positioned at the empty root.
func New(db kv.Store) *Trie {
	return &Trie{db: db, root: BlankRoot}
}

// RootHash returns the trie's current root hash.
func (t *Trie) RootHash() crypto.Hash { return t.root }

// SetRootHash repositions the trie at an already-committed root,
// discarding any cached entries so the next access reloads from db.
func (t *Trie) SetRootHash(h crypto.Hash) {
	t.root = h
	t.loaded = false
	t.entries = nil
}

func (t *Trie) load() error {
	if t.loaded {
		return nil
	}
	if t.root == BlankRoot {
		t.entries = make(map[string][]byte)
		t.loaded = true
		return nil
	}
	raw, ok := t.db.Get(t.root.Bytes())
	if !ok {
		return fmt.Errorf("trie: missing node for root %x", t.root)
	}
	node, _, err := rlp.Decode(raw)
	if err != nil {
		return fmt.Errorf("trie: corrupt node for root %x: %w", t.root, err)
	}
	entries := make(map[string][]byte, len(node.Items()))
	for _, pair := range node.Items() {
		items := pair.Items()
		if len(items) != 2 {
			return fmt.Errorf("trie: malformed pair in node %x", t.root)
		}
		entries[string(items[0].Bytes())] = items[1].Bytes()
	}
	t.entries = entries
	t.loaded = true
	return nil
}

// Get returns the value stored at key, or nil if absent.
func (t *Trie) Get(key []byte) []byte {
	if err := t.load(); err != nil {
		panic(err)
	}
	v, ok := t.entries[string(key)]
	if !ok {
		return nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out
}

// Update sets key to value, recomputes the root hash and persists the new
// node. An empty value removes the key from the trie entirely (matching
// the source's habit of treating the zero value as "absent").
func (t *Trie) Update(key []byte, value []byte) {
	if err := t.load(); err != nil {
		panic(err)
	}
	if len(value) == 0 {
		delete(t.entries, string(key))
	} else {
		cp := make([]byte, len(value))
		copy(cp, value)
		t.entries[string(key)] = cp
	}
	t.recompute()
}

func (t *Trie) recompute() {
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]rlp.Value, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, rlp.List(rlp.String([]byte(k)), rlp.String(t.entries[k])))
	}
	node := rlp.EncodeList(pairs...)
	root := crypto.Keccak256Hash(node)
	t.db.Put(root.Bytes(), node)
	t.root = root
}

// ToDict materializes every key/value pair currently reachable from the
// trie's root, for diagnostics (State.ToDict/AccountToDict).
func (t *Trie) ToDict() map[string][]byte {
	if err := t.load(); err != nil {
		panic(err)
	}
	out := make(map[string][]byte, len(t.entries))
	for k, v := range t.entries {
		cp := make([]byte, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

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

// Package state implements the journaled, two-level (accounts →
// storage) Merkle-trie state described in spec section 4.1. Mutations
// are buffered in a write-back cache; snapshot/revert wind the journal
// back; commit folds the cache into the account and storage tries and
// is implicit whenever Root is read.
package state

import (
	"bytes"

	"github.com/erigontech/shardstate/core/crypto"
	"github.com/erigontech/shardstate/core/kv"
	"github.com/erigontech/shardstate/core/trie"
	"github.com/erigontech/shardstate/core/types"
)

// State is a journaled two-level trie: one account trie whose leaves
// are per-account storage-trie roots.
type State struct {
	accounts *trie.Trie
	db       kv.Store
	codes    *CodeStore

	journal  []journalEntry
	cache    map[types.Address]map[string][]byte
	modified map[types.Address]map[string]bool
}

// New returns a State rooted at root, backed by db.
func New(root crypto.Hash, db kv.Store) *State {
	accounts := trie.New(db)
	accounts.SetRootHash(root)
	return &State{
		accounts: accounts,
		db:       db,
		codes:    NewCodeStore(db),
		cache:    make(map[types.Address]map[string][]byte),
		modified: make(map[types.Address]map[string]bool),
	}
}

// NewEmpty returns a State over a fresh in-memory store at the blank
// root, the starting point for an empty-chain bootstrap.
func NewEmpty() *State {
	return New(trie.BlankRoot, kv.NewMemoryStore())
}

func (s *State) ensureCache(addr types.Address) map[string][]byte {
	m, ok := s.cache[addr]
	if !ok {
		m = make(map[string][]byte)
		s.cache[addr] = m
	}
	return m
}

// storageTrieFor returns the (possibly empty) storage trie for addr as
// currently committed in the account trie. Pending, uncommitted cache
// entries are not reflected here — callers consult the cache first.
func (s *State) storageTrieFor(addr types.Address) *trie.Trie {
	t := trie.New(s.db)
	if root := s.accounts.Get(addr.Bytes()); len(root) > 0 {
		t.SetRootHash(crypto.BytesToHash(root))
	}
	return t
}

// GetStorage returns the current value at (addr, key): the write
// cache first, then the account's committed storage trie, else an
// empty value. The result is memoized into the cache.
func (s *State) GetStorage(addr types.Address, key []byte) []byte {
	c := s.ensureCache(addr)
	if v, ok := c[string(key)]; ok {
		return v
	}
	v := s.storageTrieFor(addr).Get(key)
	c[string(key)] = v
	return v
}

// SetStorage records (addr, key, prior) on the journal, updates the
// cache, and marks (addr, key) modified.
func (s *State) SetStorage(addr types.Address, key []byte, value []byte) {
	prior := s.GetStorage(addr, key)
	s.journal = append(s.journal, storageChange{addr: addr, key: string(key), prior: prior})
	s.ensureCache(addr)[string(key)] = value
	mm, ok := s.modified[addr]
	if !ok {
		mm = make(map[string]bool)
		s.modified[addr] = mm
	}
	mm[string(key)] = true
}

// Snapshot returns a token identifying the current journal length.
func (s *State) Snapshot() int { return len(s.journal) }

// Revert pops journal entries until the journal's length equals token.
func (s *State) Revert(token int) {
	for len(s.journal) > token {
		last := s.journal[len(s.journal)-1]
		s.journal = s.journal[:len(s.journal)-1]
		last.revert(s)
	}
}

// Commit folds every modified key whose cached value differs from the
// trie's into the account's storage trie, writes the new sub-root back
// into the account trie, pushes a commit marker, and clears the cache.
// Idempotent when no modifications are pending.
func (s *State) Commit() {
	if len(s.cache) == 0 && len(s.modified) == 0 {
		return
	}
	priorRoot := s.accounts.RootHash()
	priorCache := s.cache
	priorModified := s.modified

	for addr, sub := range s.cache {
		modifiedKeys := s.modified[addr]
		if len(modifiedKeys) == 0 {
			continue
		}
		st := s.storageTrieFor(addr)
		changed := false
		for key := range modifiedKeys {
			value := sub[key]
			if !bytes.Equal(st.Get([]byte(key)), value) {
				st.Update([]byte(key), value)
				changed = true
			}
		}
		if changed {
			s.accounts.Update(addr.Bytes(), st.RootHash().Bytes())
		}
	}

	s.journal = append(s.journal, commitMarker{
		priorRoot:     priorRoot,
		priorCache:    priorCache,
		priorModified: priorModified,
	})
	s.cache = make(map[types.Address]map[string][]byte)
	s.modified = make(map[types.Address]map[string]bool)
}

// Root forces a Commit and returns the canonical account-trie root
// hash. Idempotent: calling it twice with no intervening mutation
// yields the same hash and leaves cache/modified empty.
func (s *State) Root() crypto.Hash {
	s.Commit()
	return s.accounts.RootHash()
}

// Clone commits this state and returns a new State whose backing store
// overlays this one's: mutations on the clone never escape.
func (s *State) Clone() *State {
	root := s.Root()
	overlay := kv.NewOverlayStore(s.db)
	return New(root, overlay)
}

// GetCode returns the code stored for addr, or nil if none.
func (s *State) GetCode(addr types.Address) []byte {
	hash := s.GetStorage(addr, nil)
	if len(hash) == 0 {
		return nil
	}
	code, _ := s.codes.Get(hash)
	return code
}

// PutCode stores code content-addressed and records its hash at addr's
// empty-key slot.
func (s *State) PutCode(addr types.Address, code []byte) {
	hash := s.codes.Put(code)
	s.SetStorage(addr, nil, hash)
}

// HasCode reports whether addr already has a stored code hash.
func (s *State) HasCode(addr types.Address) bool {
	return len(s.GetStorage(addr, nil)) > 0
}

// Unhash returns the blob stored under hash in the KV store, used by
// the VM façade's unhash closure.
func (s *State) Unhash(hash []byte) []byte {
	blob, _ := s.codes.Get(hash)
	return blob
}

// PutHashData stores blob content-addressed and returns its hash, used
// by the VM façade's puthashdata closure.
func (s *State) PutHashData(blob []byte) []byte {
	return s.codes.Put(blob)
}

// AccountToDict materializes one account's storage, folding committed
// trie contents with any uncommitted cache entries.
func (s *State) AccountToDict(addr types.Address) map[string][]byte {
	dict := s.storageTrieFor(addr).ToDict()
	if sub, ok := s.cache[addr]; ok {
		for k, v := range sub {
			if len(v) > 0 {
				dict[k] = v
			} else {
				delete(dict, k)
			}
		}
	}
	return dict
}

// ToDict materializes the entire state: every account's storage,
// folding in uncommitted cache entries for accounts not yet flushed to
// the account trie.
func (s *State) ToDict() map[string]map[string][]byte {
	out := make(map[string]map[string][]byte)
	for addrKey := range s.accounts.ToDict() {
		addr := types.BytesToAddress([]byte(addrKey))
		out[addr.String()] = s.AccountToDict(addr)
	}
	for addr := range s.cache {
		if _, ok := out[addr.String()]; !ok {
			dict := s.AccountToDict(addr)
			if len(dict) > 0 {
				out[addr.String()] = dict
			}
		}
	}
	return out
}

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

package state

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/erigontech/shardstate/core/crypto"
	"github.com/erigontech/shardstate/core/kv"
	"github.com/erigontech/shardstate/core/types"
)

// codeCacheSize bounds the in-memory decoded-code LRU fronting the KV
// store, the way light-eth's StateDB keeps a codeSizeCache.
const codeCacheSize = 4096

// CodeStore fronts content-addressed code blobs
// (UNHASH_MAGIC_BYTES ‖ hash(code) → code) with an LRU of decoded code,
// so repeated GetCode calls for the same hash within a block don't
// re-hit the KV store.
type CodeStore struct {
	db    kv.Store
	cache *lru.Cache[string, []byte]
}

// NewCodeStore returns a CodeStore backed by db.
func NewCodeStore(db kv.Store) *CodeStore {
	c, _ := lru.New[string, []byte](codeCacheSize)
	return &CodeStore{db: db, cache: c}
}

func codeKey(hash []byte) []byte {
	key := make([]byte, 0, len(types.UnhashMagicBytes)+len(hash))
	key = append(key, types.UnhashMagicBytes...)
	key = append(key, hash...)
	return key
}

// Get returns the blob stored under hash, if any.
func (cs *CodeStore) Get(hash []byte) ([]byte, bool) {
	if len(hash) == 0 {
		return nil, false
	}
	if v, ok := cs.cache.Get(string(hash)); ok {
		return v, true
	}
	raw, ok := cs.db.Get(codeKey(hash))
	if ok {
		cs.cache.Add(string(hash), raw)
	}
	return raw, ok
}

// Put stores blob content-addressed by its Keccak256 hash and returns
// that hash.
func (cs *CodeStore) Put(blob []byte) []byte {
	hash := crypto.Keccak256(blob)
	cs.db.Put(codeKey(hash), blob)
	cs.cache.Add(string(hash), blob)
	return hash
}

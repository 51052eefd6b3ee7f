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

package main

import (
	"github.com/erigontech/shardstate/core/crypto"
	"github.com/erigontech/shardstate/core/kv"
	"github.com/erigontech/shardstate/core/trie"
)

// rootStoreKey is a reserved key outside the trie's own key space (trie
// nodes are addressed by their hash, account leaves by a fixed-width
// Address) used to remember the chain's current root hash across CLI
// invocations, since the datadir's snapshot file has no other notion of
// "which root is current."
var rootStoreKey = []byte("shardstate:root")

func readRoot(store kv.Store) crypto.Hash {
	if b, ok := store.Get(rootStoreKey); ok {
		return crypto.BytesToHash(b)
	}
	return trie.BlankRoot
}

func writeRoot(store kv.Store, root crypto.Hash) {
	store.Put(rootStoreKey, root.Bytes())
}

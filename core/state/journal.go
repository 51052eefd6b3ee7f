// Copyright 2016 The go-ethereum Authors
// (original work, journal entry shape)
// Copyright 2024 The Erigon Authors
// (modifications)
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
	"github.com/erigontech/shardstate/core/crypto"
	"github.com/erigontech/shardstate/core/types"
)

// journalEntry is the sum type backing State's journal: a point update
// to one (address, key) cell, or a commit marker recording the trie
// root and cache/modified sets as they stood immediately before a
// commit folded them into the trie (spec section 9, "Journal
// representation").
type journalEntry interface {
	revert(s *State)
}

// storageChange undoes a single set_storage call by restoring the prior
// cached value.
type storageChange struct {
	addr  types.Address
	key   string
	prior []byte
}

func (c storageChange) revert(s *State) {
	s.cache[c.addr][c.key] = c.prior
}

// commitMarker undoes a commit by restoring the trie root that was
// current immediately before the commit, and swapping back the
// cache/modified sets the commit had just cleared.
type commitMarker struct {
	priorRoot     crypto.Hash
	priorCache    map[types.Address]map[string][]byte
	priorModified map[types.Address]map[string]bool
}

func (m commitMarker) revert(s *State) {
	s.accounts.SetRootHash(m.priorRoot)
	s.cache = m.priorCache
	s.modified = m.priorModified
}

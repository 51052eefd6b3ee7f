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

package kv

import (
	"encoding/gob"
	"os"

	"github.com/pkg/errors"
)

// LoadMemoryStore reads a MemoryStore previously written by SaveMemoryStore.
// A missing file is not an error — it just means an empty datadir, the
// starting point for a fresh chain.
func LoadMemoryStore(path string) (*MemoryStore, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return NewMemoryStore(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening datadir snapshot %s", path)
	}
	defer f.Close()

	data := make(map[string][]byte)
	if err := gob.NewDecoder(f).Decode(&data); err != nil {
		return nil, errors.Wrapf(err, "decoding datadir snapshot %s", path)
	}
	return &MemoryStore{data: data}, nil
}

// SaveMemoryStore writes m's contents to path, overwriting any existing
// file. This is the cmd/shardstate CLI's only persistence mechanism;
// core/state and core/chain never call it directly.
func SaveMemoryStore(path string, m *MemoryStore) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating datadir snapshot %s", path)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(m.data); err != nil {
		return errors.Wrapf(err, "encoding datadir snapshot %s", path)
	}
	return nil
}

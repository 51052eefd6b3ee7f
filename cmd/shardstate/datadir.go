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
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"

	"github.com/erigontech/shardstate/core/kv"
)

const snapshotFileName = "state.gob"
const lockFileName = "LOCK"

// datadir is an open handle on a CLI datadir: a flock guarding it
// against a second concurrent shardstate process, and the in-memory
// store loaded from (and, on close, flushed back to) its snapshot file.
// Mirrors erigon's own datadir-locking convention, scaled down to a
// single flat file instead of an MDBX environment.
type datadir struct {
	path  string
	lock  *flock.Flock
	store *kv.MemoryStore
}

func openDatadir(path string) (*datadir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating datadir %s", path)
	}

	lock := flock.New(filepath.Join(path, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, errors.Wrapf(err, "locking datadir %s", path)
	}
	if !locked {
		return nil, errors.Errorf("datadir %s is locked by another shardstate process", path)
	}

	store, err := kv.LoadMemoryStore(filepath.Join(path, snapshotFileName))
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	return &datadir{path: path, lock: lock, store: store}, nil
}

// Close flushes the store back to the snapshot file and releases the lock.
func (d *datadir) Close() error {
	defer d.lock.Unlock()
	return kv.SaveMemoryStore(filepath.Join(d.path, snapshotFileName), d.store)
}

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

package types

import "github.com/erigontech/shardstate/core/rlp"

// Header is the canonical block header: number, transaction root
// (hash of the summaries list), proposer address, and an opaque
// signature blob. Signature verification is an external collaborator
// (spec section 1); Header only carries Sig, it never checks it.
type Header struct {
	Number   uint64
	TxRoot   []byte
	Proposer Address
	Sig      []byte
}

func (h Header) rlpValue() rlp.Value {
	return rlp.List(
		rlp.String(EncodeInt32(h.Number)),
		rlp.String(h.TxRoot),
		rlp.String(h.Proposer.Bytes()),
		rlp.String(h.Sig),
	)
}

// Hash returns the canonical hash of the header.
func (h Header) Hash() []byte {
	return keccak(rlp.EncodeToBytes(h.rlpValue()))
}

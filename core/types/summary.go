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

// GroupSummary is the metadata for one transaction group: its gas
// budget, the shard range it is scoped to, and the hash of its
// transaction list. IntrinsicGas is derived at Block construction time
// from the sum of its transactions' IntrinsicGas fields.
type GroupSummary struct {
	GasLimit        uint64
	LeftBound       int
	RightBound      int
	TransactionHash []byte
	IntrinsicGas    uint64
}

func (s GroupSummary) rlpValue() rlp.Value {
	return rlp.List(
		rlp.String(EncodeInt32(s.GasLimit)),
		rlp.String(EncodeInt32(uint64(s.LeftBound))),
		rlp.String(EncodeInt32(uint64(s.RightBound))),
		rlp.String(s.TransactionHash),
	)
}

// HashSummaries computes the canonical hash of an ordered list of
// summaries; this is BlockHeader.txroot.
func HashSummaries(summaries []GroupSummary) []byte {
	items := make([]rlp.Value, len(summaries))
	for i, s := range summaries {
		items[i] = s.rlpValue()
	}
	return keccak(rlp.EncodeList(items...))
}

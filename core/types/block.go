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

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/erigontech/shardstate/consensus/misc"
	shardmath "github.com/erigontech/shardstate/erigon-lib/common/math"
)

// Block is header + summaries + transaction groups, immutable once
// constructed. Spec section 9 notes that the original source's
// Block.add_transaction had an unclear receiver and post-construction
// mutation semantics; SPEC_FULL.md resolves that ambiguity by making
// Block immutable — there is no exported mutator.
type Block struct {
	Header            Header
	Summaries         []GroupSummary
	TransactionGroups [][]Transaction
}

// NewAutoPackBlock wraps transactions into a single summary covering the
// whole shard universe with the default gas limit (spec section 4.2,
// "auto-pack" mode).
func NewAutoPackBlock(number uint64, transactions []Transaction, proposer Address, sig []byte) (*Block, error) {
	for _, tx := range transactions {
		if _, err := NewShardRange(tx.LeftBound, tx.RightBound); err != nil {
			return nil, errors.Wrap(err, "auto-pack")
		}
	}
	var intrinsicTotal uint64
	for _, tx := range transactions {
		var overflow bool
		intrinsicTotal, overflow = shardmath.SafeAdd(intrinsicTotal, tx.IntrinsicGas)
		if overflow {
			return nil, errors.Errorf("auto-pack: total intrinsic gas overflowed summing transaction for %s", tx.Addr)
		}
	}
	if intrinsicTotal >= GasLimit {
		return nil, errors.Errorf("auto-pack: intrinsic gas %d >= GASLIMIT %d", intrinsicTotal, GasLimit)
	}
	summary := GroupSummary{
		GasLimit:        GasLimit,
		LeftBound:       0,
		RightBound:      MaxShards,
		TransactionHash: HashTransactionGroup(transactions),
		IntrinsicGas:    intrinsicTotal,
	}
	header := Header{
		Number:   number,
		TxRoot:   HashSummaries([]GroupSummary{summary}),
		Proposer: proposer,
		Sig:      sig,
	}
	return &Block{
		Header:            header,
		Summaries:         []GroupSummary{summary},
		TransactionGroups: [][]Transaction{transactions},
	}, nil
}

// NewBlock validates an explicitly constructed header/summaries/groups
// triple against invariants 1-6 of spec section 3.
func NewBlock(header Header, summaries []GroupSummary, groups [][]Transaction) (*Block, error) {
	if len(summaries) != len(groups) {
		return nil, errors.Errorf("summaries/groups length mismatch: %d vs %d", len(summaries), len(groups))
	}

	computed := make([]GroupSummary, len(summaries))
	prevRight := 0
	perGroupIntrinsic := make([]uint64, len(summaries))
	for i, s := range summaries {
		g := groups[i]

		// Invariant 1: transaction hash matches.
		if !bytes.Equal(s.TransactionHash, HashTransactionGroup(g)) {
			return nil, errors.Errorf("summary %d: transaction_hash mismatch", i)
		}

		// Invariant 2: binary-tree alignment, enforced by ShardRange's
		// validated constructor.
		summaryRange, err := NewShardRange(s.LeftBound, s.RightBound)
		if err != nil {
			return nil, errors.Wrapf(err, "summary %d", i)
		}

		// Invariant 3: disjoint, sorted, within global bounds.
		if !(0 <= prevRight && prevRight <= s.LeftBound) {
			return nil, errors.Errorf("summary %d: bounds [%d, %d) violate disjoint/sorted invariant (prevRight=%d)", i, s.LeftBound, s.RightBound, prevRight)
		}

		// Invariant 4: every transaction's bounds are a subset of the
		// summary's.
		var intrinsicSum uint64
		for j, tx := range g {
			if !summaryRange.Encloses(ShardRange{Left: tx.LeftBound, Right: tx.RightBound}) {
				return nil, errors.Errorf("summary %d tx %d: bounds [%d, %d) not enclosed by summary bounds [%d, %d)", i, j, tx.LeftBound, tx.RightBound, s.LeftBound, s.RightBound)
			}
			var overflow bool
			intrinsicSum, overflow = shardmath.SafeAdd(intrinsicSum, tx.IntrinsicGas)
			if overflow {
				return nil, errors.Errorf("summary %d: intrinsic gas overflowed summing transaction %d", i, j)
			}
		}

		perGroupIntrinsic[i] = intrinsicSum
		computed[i] = GroupSummary{
			GasLimit:        s.GasLimit,
			LeftBound:       s.LeftBound,
			RightBound:      s.RightBound,
			TransactionHash: s.TransactionHash,
			IntrinsicGas:    intrinsicSum,
		}
		prevRight = s.RightBound
	}

	// Invariant 5: total intrinsic gas below GASLIMIT.
	ok, _, overflow := misc.CheckGasLimit(perGroupIntrinsic, GasLimit)
	if overflow {
		return nil, errors.New("total intrinsic gas overflowed")
	}
	if !ok {
		return nil, errors.New("total intrinsic gas >= GASLIMIT")
	}

	// Invariant 6: header.txroot matches hash(serialize(summaries)).
	if !bytes.Equal(header.TxRoot, HashSummaries(computed)) {
		return nil, errors.New("header.txroot does not match hash of summaries")
	}

	return &Block{
		Header:            header,
		Summaries:         computed,
		TransactionGroups: groups,
	}, nil
}

// Hash returns the block's header hash.
func (b *Block) Hash() []byte { return b.Header.Hash() }

// Number returns the block's declared number.
func (b *Block) Number() uint64 { return b.Header.Number }

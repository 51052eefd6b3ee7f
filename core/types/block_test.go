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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTx(t *testing.T, left, right int) Transaction {
	tx, err := NewTransaction(BytesToAddress([]byte("recipient")), nil, []byte("data"), 100, 50, 10, left, right)
	require.NoError(t, err)
	return tx
}

func TestNewAutoPackBlockBuildsGlobalSummary(t *testing.T) {
	tx := sampleTx(t, 0, MaxShards)
	block, err := NewAutoPackBlock(1, []Transaction{tx}, EtherBase, nil)
	require.NoError(t, err)
	require.Len(t, block.Summaries, 1)
	assert.Equal(t, 0, block.Summaries[0].LeftBound)
	assert.Equal(t, MaxShards, block.Summaries[0].RightBound)
	assert.Equal(t, tx.IntrinsicGas, block.Summaries[0].IntrinsicGas)
	assert.Equal(t, uint64(1), block.Number())
}

func TestNewAutoPackBlockRejectsMisalignedTx(t *testing.T) {
	tx := sampleTx(t, 1, 3)
	_, err := NewAutoPackBlock(1, []Transaction{tx}, EtherBase, nil)
	assert.Error(t, err)
}

func TestNewBlockRoundTripsThroughAutoPack(t *testing.T) {
	tx := sampleTx(t, 0, MaxShards)
	autoPacked, err := NewAutoPackBlock(1, []Transaction{tx}, EtherBase, nil)
	require.NoError(t, err)

	rebuilt, err := NewBlock(autoPacked.Header, autoPacked.Summaries, autoPacked.TransactionGroups)
	require.NoError(t, err)
	assert.Equal(t, autoPacked.Hash(), rebuilt.Hash())
}

func TestNewBlockRejectsTransactionHashMismatch(t *testing.T) {
	tx := sampleTx(t, 0, MaxShards)
	autoPacked, err := NewAutoPackBlock(1, []Transaction{tx}, EtherBase, nil)
	require.NoError(t, err)

	badGroups := [][]Transaction{{sampleTx(t, 0, MaxShards), sampleTx(t, 0, MaxShards)}}
	_, err = NewBlock(autoPacked.Header, autoPacked.Summaries, badGroups)
	assert.Error(t, err)
}

func TestNewBlockRejectsOverlappingSummaries(t *testing.T) {
	s1 := GroupSummary{GasLimit: GasLimit, LeftBound: 0, RightBound: 8, TransactionHash: HashTransactionGroup(nil)}
	s2 := GroupSummary{GasLimit: GasLimit, LeftBound: 4, RightBound: 12, TransactionHash: HashTransactionGroup(nil)}
	header := Header{Number: 1, TxRoot: HashSummaries([]GroupSummary{s1, s2}), Proposer: EtherBase}
	_, err := NewBlock(header, []GroupSummary{s1, s2}, [][]Transaction{nil, nil})
	assert.Error(t, err)
}

func TestNewBlockRejectsTxNotEnclosedBySummary(t *testing.T) {
	tx := sampleTx(t, 0, 4) // outside the summary's [4, 8) range
	group := []Transaction{tx}
	summary := GroupSummary{GasLimit: GasLimit, LeftBound: 4, RightBound: 8, TransactionHash: HashTransactionGroup(group)}
	header := Header{Number: 1, TxRoot: HashSummaries([]GroupSummary{summary}), Proposer: EtherBase}
	_, err := NewBlock(header, []GroupSummary{summary}, [][]Transaction{group})
	assert.Error(t, err)
}

func TestNewBlockRejectsBadTxRoot(t *testing.T) {
	group := []Transaction{sampleTx(t, 0, MaxShards)}
	summary := GroupSummary{GasLimit: GasLimit, LeftBound: 0, RightBound: MaxShards, TransactionHash: HashTransactionGroup(group)}
	header := Header{Number: 1, TxRoot: []byte("wrong"), Proposer: EtherBase}
	_, err := NewBlock(header, []GroupSummary{summary}, [][]Transaction{group})
	assert.Error(t, err)
}

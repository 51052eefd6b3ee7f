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

package chain

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/shardstate/core/crypto"
	"github.com/erigontech/shardstate/core/specials"
	"github.com/erigontech/shardstate/core/state"
	"github.com/erigontech/shardstate/core/types"
	"github.com/erigontech/shardstate/core/vm"
	"github.com/erigontech/shardstate/core/vm/testvm"
)

func newHarness() (*state.State, *specials.Registry, *testvm.VM, *PureCallMemo) {
	return state.NewEmpty(), specials.DefaultRegistry(), testvm.New(), NewPureCallMemo()
}

func fund(s *state.State, addr types.Address, amount uint64) {
	ether := types.MatchShard(types.EtherBase, addr)
	s.SetStorage(ether, addr.Bytes(), uint256.NewInt(amount).Bytes())
}

func balanceOf(s *state.State, addr types.Address) uint64 {
	ether := types.MatchShard(types.EtherBase, addr)
	return new(uint256.Int).SetBytes(s.GetStorage(ether, addr.Bytes())).Uint64()
}

func TestApplyMessageTransfersValueOnSuccess(t *testing.T) {
	s, reg, machine, memo := newHarness()
	sender := types.BytesToAddress([]byte("sender"))
	recipient := types.BytesToAddress([]byte("recipient"))
	fund(s, sender, 100)

	ext := newExt(s, reg, machine, memo)
	msg := vm.NewMessage(sender, recipient, uint256.NewInt(40), 100, vm.CallData{}, 0, types.MaxShards)

	status, _, _ := ApplyMessage(ext, s, reg, machine, memo, msg, []byte{testvm.OpStop})
	assert.Equal(t, vm.StatusSuccess, status)
	assert.Equal(t, uint64(60), balanceOf(s, sender))
	assert.Equal(t, uint64(40), balanceOf(s, recipient))
}

func TestApplyMessageInsufficientBalanceSoftFails(t *testing.T) {
	s, reg, machine, memo := newHarness()
	sender := types.BytesToAddress([]byte("sender"))
	recipient := types.BytesToAddress([]byte("recipient"))
	fund(s, sender, 10)

	ext := newExt(s, reg, machine, memo)
	msg := vm.NewMessage(sender, recipient, uint256.NewInt(40), 100, vm.CallData{}, 0, types.MaxShards)

	status, gasLeft, _ := ApplyMessage(ext, s, reg, machine, memo, msg, []byte{testvm.OpStop})
	assert.Equal(t, vm.StatusSoftFail, status)
	assert.Equal(t, uint64(100), gasLeft)
	assert.Equal(t, uint64(10), balanceOf(s, sender))
}

func TestApplyMessageRevertRollsBackStorageWrites(t *testing.T) {
	s, reg, machine, memo := newHarness()
	sender := types.BytesToAddress([]byte("sender"))
	recipient := types.BytesToAddress([]byte("recipient"))
	fund(s, sender, 100)

	ext := newExt(s, reg, machine, memo)
	msg := vm.NewMessage(sender, recipient, uint256.NewInt(40), 100, vm.CallData{}, 0, types.MaxShards)

	code := []byte{testvm.OpSStore, 1, 'k', 1, 'v', testvm.OpRevert}
	status, gasLeft, _ := ApplyMessage(ext, s, reg, machine, memo, msg, code)
	assert.Equal(t, vm.StatusRevert, status)
	assert.Zero(t, gasLeft)
	assert.Equal(t, uint64(100), balanceOf(s, sender))
	assert.Empty(t, s.GetStorage(recipient, []byte("k")))
}

func TestApplyMessagePureCallIsMemoized(t *testing.T) {
	s, reg, machine, memo := newHarness()
	sender := types.BytesToAddress([]byte("sender"))
	recipient := types.BytesToAddress([]byte("recipient"))

	ext := emptyExt(reg, machine, memo)
	msg := vm.NewMessage(sender, recipient, uint256.NewInt(0), 50, vm.CallData{}, 0, types.MaxShards)
	code := []byte{testvm.OpPush, 0x00, 0x01, 'x', testvm.OpStop}

	status1, gas1, data1 := ApplyMessage(ext, s, reg, machine, memo, msg, code)
	require.Equal(t, vm.StatusSuccess, status1)
	require.Len(t, memo.entries, 1)

	status2, gas2, data2 := ApplyMessage(ext, s, reg, machine, memo, msg, code)
	assert.Equal(t, status1, status2)
	assert.Equal(t, gas1, gas2)
	assert.Equal(t, data1, data2)
}

func TestApplyTransactionSkipsWhenGasExceedsRemaining(t *testing.T) {
	s, reg, machine, memo := newHarness()
	tx, err := types.NewTransaction(types.BytesToAddress([]byte("target")), nil, nil, 100, 100, 10, 0, types.MaxShards)
	require.NoError(t, err)

	exstate := types.Shardify(types.ExecutionStateBase, 0)
	s.SetStorage(exstate, types.GasRemainingKey, types.EncodeInt32(10))

	data := ApplyTransaction(s, DefaultConfig(), reg, machine, memo, Hooks{}, tx, 0, types.MaxShards, DefaultConfig().NoGasOverride)
	assert.Nil(t, data)

	logAddr := types.Shardify(types.LogBase, 0)
	assert.NotEmpty(t, s.GetStorage(logAddr, types.EncodeInt32(0)))
}

func TestApplyTransactionSkipsWhenOutOfShardRange(t *testing.T) {
	s, reg, machine, memo := newHarness()
	tx, err := types.NewTransaction(types.BytesToAddress([]byte("target")), nil, nil, 100, 10, 10, 0, types.MaxShards)
	require.NoError(t, err)

	exstate := types.Shardify(types.ExecutionStateBase, 512)
	s.SetStorage(exstate, types.GasRemainingKey, types.EncodeInt32(1000))

	data := ApplyTransaction(s, DefaultConfig(), reg, machine, memo, Hooks{}, tx, 512, 1024, DefaultConfig().NoGasOverride)
	assert.Nil(t, data)
}

func TestApplyTransactionDeploysAndExecutes(t *testing.T) {
	s, reg, machine, memo := newHarness()
	addr := types.BytesToAddress([]byte("contract"))
	deployCode := []byte{testvm.OpReturn, 0x00, 0x01, testvm.OpStop}
	tx, err := types.NewTransaction(addr, deployCode, nil, 1000, 1000, 10, 0, types.MaxShards)
	require.NoError(t, err)

	exstate := types.Shardify(types.ExecutionStateBase, 0)
	s.SetStorage(exstate, types.GasRemainingKey, types.EncodeInt32(10000))

	var outcomes []TxOutcome
	hooks := Hooks{OnTransaction: func(o TxOutcome) { outcomes = append(outcomes, o) }}

	ApplyTransaction(s, DefaultConfig(), reg, machine, memo, hooks, tx, 0, types.MaxShards, DefaultConfig().NoGasOverride)

	require.True(t, s.HasCode(addr))
	assert.Equal(t, []byte{testvm.OpStop}, s.GetCode(addr))
	require.Len(t, outcomes, 1)
	assert.Equal(t, TxStatusSucceeded, outcomes[0].Status)
}

func TestApplyTransactionDeployRevertLeavesNoCode(t *testing.T) {
	s, reg, machine, memo := newHarness()
	addr := types.BytesToAddress([]byte("contract"))
	deployCode := []byte{testvm.OpRevert}
	tx, err := types.NewTransaction(addr, deployCode, nil, 1000, 1000, 10, 0, types.MaxShards)
	require.NoError(t, err)

	exstate := types.Shardify(types.ExecutionStateBase, 0)
	s.SetStorage(exstate, types.GasRemainingKey, types.EncodeInt32(10000))

	var outcomes []TxOutcome
	hooks := Hooks{OnTransaction: func(o TxOutcome) { outcomes = append(outcomes, o) }}

	data := ApplyTransaction(s, DefaultConfig(), reg, machine, memo, hooks, tx, 0, types.MaxShards, DefaultConfig().NoGasOverride)
	assert.Nil(t, data)
	assert.False(t, s.HasCode(addr))
	require.Len(t, outcomes, 1)
	assert.Equal(t, TxStatusReverted, outcomes[0].Status)
}

func TestApplyBlockBootstrapsEmptyChain(t *testing.T) {
	s, reg, machine, _ := newHarness()
	txMemo := NewTransitionMemo()
	callMemo := NewPureCallMemo()

	ApplyBlock(s, DefaultConfig(), reg, machine, txMemo, callMemo, Hooks{}, nil)

	blockNumber := types.DecodeBigEndianUint(s.GetStorage(types.BlockNumberBase, types.EncodeInt32(0)))
	assert.Equal(t, uint64(1), blockNumber)
}

func TestApplyBlockRejectsWrongDeclaredNumber(t *testing.T) {
	s, reg, machine, _ := newHarness()
	txMemo := NewTransitionMemo()
	callMemo := NewPureCallMemo()

	tx, err := types.NewTransaction(types.BytesToAddress([]byte("target")), nil, nil, 100, 0, 0, 0, types.MaxShards)
	require.NoError(t, err)
	block, err := types.NewAutoPackBlock(5, []types.Transaction{tx}, types.EtherBase, nil)
	require.NoError(t, err)

	assert.Panics(t, func() {
		ApplyBlock(s, DefaultConfig(), reg, machine, txMemo, callMemo, Hooks{}, block)
	})
}

func TestApplyBlockRunsAutoPackedTransactionGroup(t *testing.T) {
	s, reg, machine, _ := newHarness()
	txMemo := NewTransitionMemo()
	callMemo := NewPureCallMemo()

	tx, err := types.NewTransaction(types.BytesToAddress([]byte("target")), nil, nil, 100, 0, 0, 0, types.MaxShards)
	require.NoError(t, err)
	block, err := types.NewAutoPackBlock(0, []types.Transaction{tx}, types.EtherBase, nil)
	require.NoError(t, err)

	ApplyBlock(s, DefaultConfig(), reg, machine, txMemo, callMemo, Hooks{}, block)

	logAddr := types.Shardify(types.LogBase, 0)
	assert.NotEmpty(t, s.GetStorage(logAddr, types.EncodeInt32(0)))
	assert.Equal(t, uint64(1), types.DecodeBigEndianUint(s.GetStorage(types.BlockNumberBase, types.EncodeInt32(0))))
}

func TestTransitionMemoRejectsNonDeterministicReplay(t *testing.T) {
	memo := NewTransitionMemo()
	root1 := crypto.Hash{}
	root2 := crypto.Hash{0x01}
	memo.Check("same-key", root1)
	assert.Panics(t, func() { memo.Check("same-key", root2) })
}

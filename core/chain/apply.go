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

// Package chain wires core/state, core/types, core/vm and core/specials
// together into the three driver functions spec section 4 describes:
// ApplyMessage (apply_msg), ApplyTransaction (tx_state_transition) and
// ApplyBlock (block_state_transition).
package chain

import (
	"github.com/holiman/uint256"

	"github.com/erigontech/shardstate/core/crypto"
	"github.com/erigontech/shardstate/core/rlp"
	"github.com/erigontech/shardstate/core/specials"
	"github.com/erigontech/shardstate/core/state"
	"github.com/erigontech/shardstate/core/types"
	"github.com/erigontech/shardstate/core/vm"
	"github.com/erigontech/shardstate/internal/logging"
)

var twoTo64 = new(uint256.Int).Lsh(uint256.NewInt(1), 64)

// emptyState backs the distinguished empty façade used for pure,
// state-free validation calls (spec section 4.5's "static_msg"),
// mirroring the original source's singleton EmptyVMExt/_EmptyVMExt.
var emptyState = state.NewEmpty()

// newExt builds the live read/write façade a VM or special executes
// against, wiring Msg/StaticMsg back into ApplyMessage the way the
// original source's VMExt assigns apply_msg-calling closures as
// instance attributes. Built fresh per call so its closures capture
// this call's state, registry, VM and memo.
func newExt(s *state.State, reg *specials.Registry, machine vm.VM, memo *PureCallMemo) *vm.Ext {
	ext := &vm.Ext{
		GetStorage:  s.GetStorage,
		SetStorage:  s.SetStorage,
		LogStorage:  s.AccountToDict,
		Unhash:      s.Unhash,
		PutHashData: s.PutHashData,
	}
	ext.Msg = func(msg vm.Message, code []byte) (vm.Status, uint64, []byte) {
		return ApplyMessage(ext, s, reg, machine, memo, msg, code)
	}
	staticExt := emptyExt(reg, machine, memo)
	ext.StaticMsg = func(msg vm.Message, code []byte) (vm.Status, uint64, []byte) {
		return ApplyMessage(staticExt, emptyState, reg, machine, memo, msg, code)
	}
	return ext
}

// emptyExt builds the inert façade every static_msg call dispatches
// through: reads always miss, writes are no-ops, and IsEmpty gates the
// pure-call memo on ApplyMessage's cache_key lookup.
func emptyExt(reg *specials.Registry, machine vm.VM, memo *PureCallMemo) *vm.Ext {
	ext := &vm.Ext{
		GetStorage:  func(types.Address, []byte) []byte { return nil },
		SetStorage:  func(types.Address, []byte, []byte) {},
		LogStorage:  func(types.Address) map[string][]byte { return nil },
		Unhash:      func([]byte) []byte { return nil },
		PutHashData: func([]byte) []byte { return nil },
		IsEmpty:     true,
	}
	ext.Msg = func(msg vm.Message, code []byte) (vm.Status, uint64, []byte) {
		return ApplyMessage(ext, emptyState, reg, machine, memo, msg, code)
	}
	ext.StaticMsg = ext.Msg
	return ext
}

func pureCallKey(msg vm.Message, code []byte) string {
	var key []byte
	key = append(key, msg.Sender.Bytes()...)
	key = append(key, msg.To.Bytes()...)
	key = append(key, msg.Value.Bytes()...)
	key = append(key, msg.Data.ExtractAll()...)
	key = append(key, code...)
	return string(key)
}

// ApplyMessage is apply_msg: it transfers value (if any), dispatches to
// a special or the VM, and reverts the snapshot taken before dispatch
// if the result is StatusRevert. Pure calls through the empty façade
// are memoized by PureCallMemo, mirroring the original source's
// eve_cache.
func ApplyMessage(ext *vm.Ext, s *state.State, reg *specials.Registry, machine vm.VM, memo *PureCallMemo, msg vm.Message, code []byte) (vm.Status, uint64, []byte) {
	key := pureCallKey(msg, code)
	if ext.IsEmpty {
		if cached, ok := memo.get(key); ok {
			return cached.status, cached.gas, cached.data
		}
	}

	senderEther := types.MatchShard(types.EtherBase, msg.Sender)
	recipientEther := types.MatchShard(types.EtherBase, msg.To)

	snapshot := s.Snapshot()

	if msg.TransfersValue {
		senderBalance := new(uint256.Int).SetBytes(ext.GetStorage(senderEther, msg.Sender.Bytes()))
		if senderBalance.Cmp(msg.Value) < 0 {
			return vm.StatusSoftFail, msg.Gas, nil
		}
		if !msg.Value.IsZero() {
			newSenderBalance := new(uint256.Int).Sub(senderBalance, msg.Value)
			ext.SetStorage(senderEther, msg.Sender.Bytes(), trimLeadingZeros(newSenderBalance.Bytes()))

			recipientBalance := new(uint256.Int).SetBytes(ext.GetStorage(recipientEther, msg.To.Bytes()))
			newRecipientBalance := new(uint256.Int).Add(recipientBalance, msg.Value)
			ext.SetStorage(recipientEther, msg.To.Bytes(), trimLeadingZeros(newRecipientBalance.Bytes()))
		}
	}

	var status vm.Status
	var gasRemaining uint64
	var data []byte
	if fn, ok := reg.Lookup(msg.To); ok {
		status, gasRemaining, data = fn(ext, msg)
	} else {
		status, gasRemaining, data = machine.Execute(ext, msg, code)
	}

	if status == vm.StatusRevert {
		s.Revert(snapshot)
		gasRemaining = 0
	}

	if ext.IsEmpty {
		memo.put(key, status, gasRemaining, data)
	}
	return status, gasRemaining, data
}

// trimLeadingZeros drops uint256.Bytes()'s already-minimal encoding
// through unchanged; it exists only so a zero balance stores as an
// empty slice rather than a single 0x00 byte, the same "falsy empty
// string" convention get_storage/set_storage use throughout.
func trimLeadingZeros(b []byte) []byte {
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	return b
}

func statusLogEntry(status TxStatus) rlp.Value {
	if status == TxStatusSkipped {
		return rlp.String(nil)
	}
	return rlp.String([]byte{byte(status)})
}

// prependLogStatus decodes the RLP list stored at a transaction's log
// slot and prepends a new leading status entry, the Go equivalent of
// the original source's rlp.insert(logs, 0, encode_int(...)).
func prependLogStatus(raw []byte, status TxStatus) []byte {
	items := []rlp.Value{statusLogEntry(status)}
	if v, _, err := rlp.Decode(raw); err == nil && v.IsList() {
		items = append(items, v.Items()...)
	}
	return rlp.EncodeList(items...)
}

// ApplyTransaction is tx_state_transition: it checks tx.ExecGas against
// the group's remaining gas and charges the exec gas the call used
// (intrinsic gas is charged by ApplyBlock), optionally deploys tx.Code
// when the recipient has no code yet, then executes tx.Data against the
// (possibly just-deployed)
// code. Returns the main call's return data, or nil for a no-op.
func ApplyTransaction(s *state.State, cfg Config, reg *specials.Registry, machine vm.VM, memo *PureCallMemo, hooks Hooks, tx types.Transaction, leftBound, rightBound int, overrideGas uint64) []byte {
	exstate := types.Shardify(types.ExecutionStateBase, leftBound)
	logAddr := types.Shardify(types.LogBase, leftBound)

	txIndex := types.DecodeBigEndianUint(s.GetStorage(exstate, types.TxIndexKey))
	gasRemaining := types.DecodeBigEndianUint(s.GetStorage(exstate, types.GasRemainingKey))

	skip := func(reason string) []byte {
		s.SetStorage(logAddr, types.EncodeInt32(txIndex), rlp.EncodeList(statusLogEntry(TxStatusSkipped)))
		s.SetStorage(exstate, types.TxIndexKey, types.EncodeInt32(txIndex+1))
		hooks.notify(TxOutcome{Index: int(txIndex), Address: tx.Addr, Status: TxStatusSkipped})
		logging.L().Infow("transaction skipped", "index", txIndex, "addr", tx.Addr.String(), "reason", reason)
		return nil
	}

	if gasRemaining < tx.ExecGas {
		return skip("insufficient gas remaining")
	}
	if shard := types.GetShard(tx.Addr); shard < leftBound || shard >= rightBound {
		return skip("out of shard range")
	}

	s.SetStorage(exstate, types.TxGasKey, types.EncodeInt32(tx.Gas))
	ext := newExt(s, reg, machine, memo)
	s.SetStorage(logAddr, types.EncodeInt32(txIndex), rlp.EncodeList())

	var executionStartGas uint64
	if tx.IsDeployment() && !s.HasCode(tx.Addr) {
		deployGas := tx.ExecGas
		if overrideGas < deployGas {
			deployGas = overrideGas
		}
		logging.L().Infow("deploying code", "index", txIndex, "addr", tx.Addr.String(), "codeLen", len(tx.Code), "gas", deployGas)
		deployMsg := vm.NewMessage(types.NullSender, tx.Addr, uint256.NewInt(0), deployGas, vm.NewCallData(nil, 0, 0), leftBound, rightBound)
		status, gasAfterDeploy, data := ApplyMessage(ext, s, reg, machine, memo, deployMsg, tx.Code)
		if status == vm.StatusRevert {
			s.SetStorage(logAddr, types.EncodeInt32(txIndex), rlp.EncodeList(statusLogEntry(TxStatusReverted)))
			s.SetStorage(exstate, types.TxIndexKey, types.EncodeInt32(txIndex+1))
			hooks.notify(TxOutcome{Index: int(txIndex), Address: tx.Addr, Status: TxStatusReverted})
			return nil
		}
		s.PutCode(tx.Addr, data)
		executionStartGas = gasAfterDeploy
	} else {
		executionStartGas = tx.ExecGas
		if overrideGas < executionStartGas {
			executionStartGas = overrideGas
		}
	}

	code := s.GetCode(tx.Addr)
	callData := vm.NewCallData(tx.Data, 0, len(tx.Data))
	mainMsg := vm.NewMessage(types.NullSender, tx.Addr, uint256.NewInt(0), executionStartGas, callData, leftBound, rightBound)

	status, msgGasRemained, data := ApplyMessage(ext, s, reg, machine, memo, mainMsg, code)
	if msgGasRemained > executionStartGas {
		fatalInvariant("tx %d: message returned %d gas remaining, more than the %d it started with", txIndex, msgGasRemained, executionStartGas)
	}

	s.SetStorage(exstate, types.GasRemainingKey, types.EncodeInt32(gasRemaining-tx.ExecGas+msgGasRemained))

	finalStatus := TxStatusSucceeded
	if status == vm.StatusRevert {
		finalStatus = TxStatusReverted
	}
	logs := s.GetStorage(logAddr, types.EncodeInt32(txIndex))
	s.SetStorage(logAddr, types.EncodeInt32(txIndex), prependLogStatus(logs, finalStatus))
	s.SetStorage(exstate, types.TxIndexKey, types.EncodeInt32(txIndex+1))

	hooks.notify(TxOutcome{Index: int(txIndex), Address: tx.Addr, Status: finalStatus, GasUsed: tx.ExecGas - msgGasRemained})
	return data
}

// ApplyBlock is block_state_transition: it stamps the prior state root
// and proposer into storage, applies every transaction group in order,
// records the block hash and advances the block number, mixes a new
// RNG seed, and asserts the transition was deterministic via txMemo.
// block may be nil, matching the original source's support for
// "processing no block" (only the bookkeeping steps run).
func ApplyBlock(s *state.State, cfg Config, reg *specials.Registry, machine vm.VM, txMemo *TransitionMemo, callMemo *PureCallMemo, hooks Hooks, block *types.Block) {
	pre := s.Root()

	blockNumber := types.DecodeBigEndianUint(s.GetStorage(types.BlockNumberBase, types.EncodeInt32(0)))

	var proposer types.Address
	var blockHash []byte
	if block != nil {
		proposer = block.Header.Proposer
		blockHash = block.Hash()
	} else {
		blockHash = make([]byte, crypto.HashLength)
	}

	if blockNumber > 0 {
		s.SetStorage(types.StateRootsBase, types.EncodeInt32(blockNumber-1), s.Root().Bytes())
	}
	s.SetStorage(types.ProposerBase, types.EncodeInt32(0), proposer.Bytes())

	var totalTxCount int
	var totalGasUsed uint64
	if block != nil {
		if block.Number() != blockNumber {
			fatalInvariant("block declares number %d, expected %d", block.Number(), blockNumber)
		}
		for i, summary := range block.Summaries {
			group := block.TransactionGroups[i]
			exstate := types.Shardify(types.ExecutionStateBase, summary.LeftBound)
			logAddr := types.Shardify(types.LogBase, summary.LeftBound)

			groupGas := summary.GasLimit - summary.IntrinsicGas
			s.SetStorage(exstate, types.TxIndexKey, types.EncodeInt32(0))
			s.SetStorage(exstate, types.GasRemainingKey, types.EncodeInt32(groupGas))

			for _, tx := range group {
				ApplyTransaction(s, cfg, reg, machine, callMemo, hooks, tx, summary.LeftBound, summary.RightBound, cfg.NoGasOverride)
			}

			txCount := types.DecodeBigEndianUint(s.GetStorage(exstate, types.TxIndexKey))
			if int(txCount) != len(group) {
				fatalInvariant("group %d: txindex %d does not match group length %d", i, txCount, len(group))
			}
			for j := range group {
				if len(s.GetStorage(logAddr, types.EncodeInt32(uint64(j)))) == 0 {
					fatalInvariant("group %d: transaction %d left no log entry", i, j)
				}
			}

			remainingGas := types.DecodeBigEndianUint(s.GetStorage(exstate, types.GasRemainingKey))
			totalTxCount += len(group)
			totalGasUsed += groupGas - remainingGas
		}
	}

	s.SetStorage(types.BlockHashesBase, types.EncodeInt32(blockNumber), blockHash)
	s.SetStorage(types.BlockNumberBase, types.EncodeInt32(0), types.EncodeInt32(blockNumber+1))

	var prevSeed []byte
	if blockNumber > 0 {
		prevSeed = s.GetStorage(types.RNGSeedsBase, types.EncodeInt32(blockNumber-1))
	} else {
		prevSeed = make([]byte, crypto.HashLength)
	}
	newSeed := new(uint256.Int).SetBytes(crypto.Keccak256(prevSeed, proposer.Bytes()))
	validatorCount := new(uint256.Int).SetBytes(s.GetStorage(types.CasperBase, types.EncodeInt32(0)))
	low64 := new(uint256.Int).Mod(newSeed, twoTo64)
	newSeed.Sub(newSeed, low64)
	newSeed.Add(newSeed, validatorCount)
	seedBytes := newSeed.Bytes32()
	s.SetStorage(types.RNGSeedsBase, types.EncodeInt32(blockNumber), seedBytes[:])

	checkKey := string(pre.Bytes()) + string(blockHash)
	txMemo.Check(checkKey, s.Root())

	logging.L().Infow("applied block", "number", blockNumber, "txCount", totalTxCount, "gasUsed", totalGasUsed)
}

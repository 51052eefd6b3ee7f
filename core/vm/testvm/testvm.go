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

// Package testvm is the bytecode interpreter core/chain's tests and the
// cmd/shardstate apply-block and replay subcommands exercise core/vm.VM
// against. A full
// EVM-compatible interpreter is explicitly out of scope (spec section
// 1: "the actual EVM/bytecode execution semantics are NOT part of this
// module"); this is a minimal stack machine with just enough opcodes
// to deploy code, read/write storage, issue sub-calls and return data,
// shaped after the interpreter loop in go-ethereum-family VMs such as
// godx's core/vm.EVM.Run.
package testvm

import (
	"encoding/binary"

	"github.com/holiman/uint256"

	"github.com/erigontech/shardstate/core/types"
	"github.com/erigontech/shardstate/core/vm"
)

// Opcodes. Each instruction is one opcode byte followed by a fixed,
// opcode-specific operand encoding; there is no variable-length operand
// stack, only a running return-data register and a tiny gas meter.
const (
	OpStop    byte = 0x00 // halt, success, no return data
	OpReturn  byte = 0x01 // RETURN <2-byte len> <data>: halt, success, return data
	OpRevert  byte = 0x02 // REVERT: halt, reverted
	OpSStore  byte = 0x03 // SSTORE <1-byte klen><key> <1-byte vlen><val>
	OpSLoad   byte = 0x04 // SLOAD <1-byte klen><key>: loads into the return-data register
	OpCall    byte = 0x05 // CALL <22-byte addr> <8-byte gas> <2-byte datalen><data>: sub-message call
	OpPush    byte = 0x06 // PUSH <2-byte len><data>: sets the return-data register literally
)

// gasPerStep is the flat per-instruction cost this interpreter charges;
// there is no opcode-specific pricing table since the spec this module
// implements treats gas accounting as the state-transition core's
// concern (core/chain, consensus/misc), not the VM's.
const gasPerStep = 1

// VM is the stateless testvm.VM implementation of core/vm.VM.
type VM struct{}

// New returns a VM.
func New() *VM { return &VM{} }

// Execute interprets code against msg through ext, consuming gas per
// instruction and halting on Stop/Return/Revert or gas exhaustion.
func (m *VM) Execute(ext *vm.Ext, msg vm.Message, code []byte) (vm.Status, uint64, []byte) {
	gasLeft := msg.Gas
	var retData []byte
	pc := 0

	for pc < len(code) {
		if gasLeft < gasPerStep {
			return vm.StatusRevert, 0, nil
		}
		gasLeft -= gasPerStep

		op := code[pc]
		pc++
		switch op {
		case OpStop:
			return vm.StatusSuccess, gasLeft, nil

		case OpReturn:
			if pc+2 > len(code) {
				return vm.StatusRevert, 0, nil
			}
			n := int(binary.BigEndian.Uint16(code[pc : pc+2]))
			pc += 2
			if pc+n > len(code) {
				return vm.StatusRevert, 0, nil
			}
			return vm.StatusSuccess, gasLeft, code[pc : pc+n]

		case OpRevert:
			return vm.StatusRevert, 0, nil

		case OpSStore:
			key, rest, ok := readBlock(code[pc:])
			if !ok {
				return vm.StatusRevert, 0, nil
			}
			pc += rest
			val, rest2, ok := readBlock(code[pc:])
			if !ok {
				return vm.StatusRevert, 0, nil
			}
			pc += rest2
			ext.SetStorage(msg.To, key, val)

		case OpSLoad:
			key, rest, ok := readBlock(code[pc:])
			if !ok {
				return vm.StatusRevert, 0, nil
			}
			pc += rest
			retData = ext.GetStorage(msg.To, key)

		case OpPush:
			if pc+2 > len(code) {
				return vm.StatusRevert, 0, nil
			}
			n := int(binary.BigEndian.Uint16(code[pc : pc+2]))
			pc += 2
			if pc+n > len(code) {
				return vm.StatusRevert, 0, nil
			}
			retData = code[pc : pc+n]
			pc += n

		case OpCall:
			if pc+types.AddrBytes+8+2 > len(code) {
				return vm.StatusRevert, 0, nil
			}
			to := types.BytesToAddress(code[pc : pc+types.AddrBytes])
			pc += types.AddrBytes
			subGas := binary.BigEndian.Uint64(code[pc : pc+8])
			pc += 8
			n := int(binary.BigEndian.Uint16(code[pc : pc+2]))
			pc += 2
			if pc+n > len(code) || subGas > gasLeft {
				return vm.StatusRevert, 0, nil
			}
			data := code[pc : pc+n]
			pc += n
			subMsg := vm.NewMessage(msg.To, to, uint256.NewInt(0), subGas, vm.NewCallData(data, 0, len(data)), msg.LeftBound, msg.RightBound)
			var subCode []byte
			if hash := ext.GetStorage(to, nil); len(hash) > 0 {
				subCode = ext.Unhash(hash)
			}
			status, subGasRemaining, subData := ext.Msg(subMsg, subCode)
			gasLeft = gasLeft - subGas + subGasRemaining
			retData = subData
			if status == vm.StatusRevert {
				return vm.StatusRevert, 0, nil
			}

		default:
			return vm.StatusRevert, 0, nil
		}
	}

	return vm.StatusSuccess, gasLeft, retData
}

// readBlock reads a <1-byte length><bytes> block from b, returning the
// block, the number of bytes consumed, and whether the read was valid.
func readBlock(b []byte) ([]byte, int, bool) {
	if len(b) < 1 {
		return nil, 0, false
	}
	n := int(b[0])
	if len(b) < 1+n {
		return nil, 0, false
	}
	return b[1 : 1+n], 1 + n, true
}

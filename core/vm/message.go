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

package vm

import (
	"github.com/holiman/uint256"

	"github.com/erigontech/shardstate/core/types"
)

// CallData is a message's call payload, exposed as an offset/length view
// over an underlying byte string the way the VM interface's CallData
// does, so a VM can read a sub-range without copying the whole payload.
type CallData struct {
	bytes  []byte
	offset int
	length int
}

// NewCallData wraps b as a CallData covering [offset, offset+length).
func NewCallData(b []byte, offset, length int) CallData {
	return CallData{bytes: b, offset: offset, length: length}
}

// ExtractAll returns the full payload this CallData views.
func (c CallData) ExtractAll() []byte {
	end := c.offset + c.length
	if end > len(c.bytes) {
		end = len(c.bytes)
	}
	if c.offset > end {
		return nil
	}
	return c.bytes[c.offset:end]
}

// Message is a single call into apply_msg: value transfer plus either a
// special dispatch or a VM invocation.
type Message struct {
	Sender         types.Address
	To             types.Address
	Value          *uint256.Int
	Gas            uint64
	Data           CallData
	TransfersValue bool
	LeftBound      int
	RightBound     int
}

// NewMessage builds a Message with TransfersValue defaulted to true,
// the common case for VM-issued CALL-style messages.
func NewMessage(sender, to types.Address, value *uint256.Int, gas uint64, data CallData, leftBound, rightBound int) Message {
	if value == nil {
		value = uint256.NewInt(0)
	}
	return Message{
		Sender:         sender,
		To:             to,
		Value:          value,
		Gas:            gas,
		Data:           data,
		TransfersValue: true,
		LeftBound:      leftBound,
		RightBound:     rightBound,
	}
}

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
	"github.com/pkg/errors"

	"github.com/erigontech/shardstate/core/rlp"
)

// Transaction is opaque to the state-transition core except for the
// fields it reads (spec section 3). Signature, nonce and every other
// field a real transaction format needs are out of scope per spec
// section 1 (signature verification is an external collaborator).
type Transaction struct {
	Addr         Address
	Code         []byte // optional deployment bytecode
	Data         []byte // call payload
	Gas          uint64
	ExecGas      uint64
	IntrinsicGas uint64
	LeftBound    int
	RightBound   int
}

// NewTransaction validates the bound ordering a Transaction must satisfy
// on its own (full range-within-summary containment is checked at Block
// construction, invariant 4).
func NewTransaction(addr Address, code, data []byte, gas, execGas, intrinsicGas uint64, leftBound, rightBound int) (Transaction, error) {
	if leftBound < 0 || leftBound >= rightBound || rightBound > MaxShards {
		return Transaction{}, errors.Errorf("transaction bounds [%d, %d) invalid", leftBound, rightBound)
	}
	return Transaction{
		Addr:         addr,
		Code:         code,
		Data:         data,
		Gas:          gas,
		ExecGas:      execGas,
		IntrinsicGas: intrinsicGas,
		LeftBound:    leftBound,
		RightBound:   rightBound,
	}, nil
}

// IsDeployment reports whether tx carries deployment bytecode.
func (tx Transaction) IsDeployment() bool {
	return len(tx.Code) > 0
}

// rlpValue serializes tx the way the original RLP.Serializable did:
// field order matters for the hash to be reproducible.
func (tx Transaction) rlpValue() rlp.Value {
	return rlp.List(
		rlp.String(tx.Addr.Bytes()),
		rlp.String(tx.Code),
		rlp.String(tx.Data),
		rlp.String(EncodeInt32(tx.Gas)),
		rlp.String(EncodeInt32(tx.ExecGas)),
		rlp.String(EncodeInt32(tx.IntrinsicGas)),
		rlp.String(EncodeInt32(uint64(tx.LeftBound))),
		rlp.String(EncodeInt32(uint64(tx.RightBound))),
	)
}

// HashTransactionGroup computes the canonical hash of an ordered list of
// transactions, used both to populate GroupSummary.TransactionHash and
// to verify it at Block construction (spec invariant 1).
func HashTransactionGroup(group []Transaction) []byte {
	items := make([]rlp.Value, len(group))
	for i, tx := range group {
		items[i] = tx.rlpValue()
	}
	return keccak(rlp.EncodeList(items...))
}

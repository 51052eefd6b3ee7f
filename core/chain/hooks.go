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

import "github.com/erigontech/shardstate/core/types"

// TxStatus mirrors the three values a transaction's log entry can
// carry: 0 (skipped — no gas or out of range), 1 (executed and
// reverted), 2 (executed and succeeded).
type TxStatus int

const (
	TxStatusSkipped  TxStatus = 0
	TxStatusReverted TxStatus = 1
	TxStatusSucceeded TxStatus = 2
)

// TxOutcome summarizes one applied transaction for a Hooks listener.
type TxOutcome struct {
	Index   int
	Address types.Address
	Status  TxStatus
	GasUsed uint64
}

// Hooks carries optional observer callbacks threaded through
// ApplyBlock/ApplyTransaction, the Go shape of the original source's
// listeners=[] parameter (a list of objects notified as the transition
// runs, never otherwise specified in the distillation this module was
// built from).
type Hooks struct {
	OnTransaction func(TxOutcome)
}

func (h Hooks) notify(o TxOutcome) {
	if h.OnTransaction != nil {
		h.OnTransaction(o)
	}
}

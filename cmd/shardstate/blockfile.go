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

package main

import (
	"encoding/hex"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/erigontech/shardstate/core/types"
)

// txFile is the on-disk JSON shape of one transaction in an apply-block
// input file; binary fields are hex-encoded the way JSON-RPC-adjacent
// Ethereum tooling conventionally does.
type txFile struct {
	Addr         string `json:"addr"`
	Code         string `json:"code,omitempty"`
	Data         string `json:"data,omitempty"`
	Gas          uint64 `json:"gas"`
	ExecGas      uint64 `json:"execGas"`
	IntrinsicGas uint64 `json:"intrinsicGas"`
	LeftBound    int    `json:"leftBound"`
	RightBound   int    `json:"rightBound"`
}

// blockFile is the on-disk JSON shape apply-block/replay read: an
// auto-pack block (spec section 4.2) described by its number, proposer,
// signature and flat transaction list.
type blockFile struct {
	Number   uint64    `json:"number"`
	Proposer string    `json:"proposer"`
	Sig      string    `json:"sig,omitempty"`
	Txs      []txFile  `json:"transactions"`
}

func decodeHex(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(s)
}

// loadBlockFile reads and auto-packs the block described at path, the
// way a single-proposer devnet would construct one before signing it.
func loadBlockFile(path string, maxCodeBytes uint64) (*types.Block, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading block file %s", path)
	}
	var bf blockFile
	if err := json.Unmarshal(raw, &bf); err != nil {
		return nil, errors.Wrapf(err, "parsing block file %s", path)
	}

	proposerBytes, err := decodeHex(bf.Proposer)
	if err != nil {
		return nil, errors.Wrap(err, "decoding proposer")
	}
	sig, err := decodeHex(bf.Sig)
	if err != nil {
		return nil, errors.Wrap(err, "decoding sig")
	}

	txs := make([]types.Transaction, len(bf.Txs))
	for i, t := range bf.Txs {
		addrBytes, err := decodeHex(t.Addr)
		if err != nil {
			return nil, errors.Wrapf(err, "tx %d: decoding addr", i)
		}
		code, err := decodeHex(t.Code)
		if err != nil {
			return nil, errors.Wrapf(err, "tx %d: decoding code", i)
		}
		if maxCodeBytes > 0 && uint64(len(code)) > maxCodeBytes {
			return nil, errors.Errorf("tx %d: deployment code %d bytes exceeds --max-code-size %d", i, len(code), maxCodeBytes)
		}
		data, err := decodeHex(t.Data)
		if err != nil {
			return nil, errors.Wrapf(err, "tx %d: decoding data", i)
		}
		tx, err := types.NewTransaction(types.BytesToAddress(addrBytes), code, data, t.Gas, t.ExecGas, t.IntrinsicGas, t.LeftBound, t.RightBound)
		if err != nil {
			return nil, errors.Wrapf(err, "tx %d", i)
		}
		txs[i] = tx
	}

	return types.NewAutoPackBlock(bf.Number, txs, types.BytesToAddress(proposerBytes), sig)
}

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

// Package rlp implements the canonical recursive-length-prefix encoding
// used to hash headers, group summaries and transaction groups. It is a
// minimal, from-scratch implementation of the scheme described in spec
// section 6: byte strings and lists only, no further structure.
package rlp

import (
	"encoding/binary"
	"errors"
)

// Value is either a byte string (String) or an ordered list of Values
// (List), the two constructors of the canonical wire format.
type Value struct {
	str  []byte
	list []Value
	isList bool
}

// String wraps a byte string as a leaf Value.
func String(b []byte) Value { return Value{str: b} }

// List wraps an ordered sequence of Values as a list Value.
func List(items ...Value) Value { return Value{list: items, isList: true} }

// EncodeToBytes serializes v using the canonical encoding.
func EncodeToBytes(v Value) []byte {
	var out []byte
	return appendEncoded(out, v)
}

// EncodeList is a convenience wrapper for List(items...) followed by
// EncodeToBytes, mirroring the common "hash(serialize(list))" calls
// throughout the state-transition core.
func EncodeList(items ...Value) []byte {
	return EncodeToBytes(List(items...))
}

func appendEncoded(out []byte, v Value) []byte {
	if v.isList {
		var body []byte
		for _, item := range v.list {
			body = appendEncoded(body, item)
		}
		return append(out, appendHeader(nil, 0xc0, body)...)
	}
	return append(out, appendHeader(nil, 0x80, v.str)...)
}

// appendHeader writes the length-prefix header for a string (base 0x80)
// or list (base 0xc0) payload, followed by the payload itself.
//
// Single bytes below 0x80 are self-encoding strings, matching the
// convention the trie/RLP family uses to keep small integers compact.
func appendHeader(out []byte, base byte, body []byte) []byte {
	if base == 0x80 && len(body) == 1 && body[0] < 0x80 {
		return append(out, body[0])
	}
	n := len(body)
	if n < 56 {
		out = append(out, base+byte(n))
	} else {
		lenBytes := uintToMinimalBytes(uint64(n))
		out = append(out, base+55+byte(len(lenBytes)))
		out = append(out, lenBytes...)
	}
	return append(out, body...)
}

func uintToMinimalBytes(n uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], n)
	i := 0
	for i < 7 && buf[i] == 0 {
		i++
	}
	return buf[i:]
}

// ErrMalformed is returned by Decode when the input is not well-formed
// canonical RLP.
var ErrMalformed = errors.New("rlp: malformed input")

// Decode parses the canonical encoding produced by EncodeToBytes. It is
// used by core/trie to load a stored node and by core/chain to prepend a
// status entry to a transaction's stored log list.
func Decode(data []byte) (Value, []byte, error) {
	if len(data) == 0 {
		return Value{}, nil, ErrMalformed
	}
	b0 := data[0]
	switch {
	case b0 < 0x80:
		return String([]byte{b0}), data[1:], nil
	case b0 < 0xb8:
		n := int(b0 - 0x80)
		if len(data) < 1+n {
			return Value{}, nil, ErrMalformed
		}
		return String(data[1 : 1+n]), data[1+n:], nil
	case b0 < 0xc0:
		lenOfLen := int(b0 - 0xb7)
		n, rest, err := readBigLen(data[1:], lenOfLen)
		if err != nil {
			return Value{}, nil, err
		}
		if len(rest) < n {
			return Value{}, nil, ErrMalformed
		}
		return String(rest[:n]), rest[n:], nil
	case b0 < 0xf8:
		n := int(b0 - 0xc0)
		if len(data) < 1+n {
			return Value{}, nil, ErrMalformed
		}
		items, err := decodeItems(data[1 : 1+n])
		if err != nil {
			return Value{}, nil, err
		}
		return List(items...), data[1+n:], nil
	default:
		lenOfLen := int(b0 - 0xf7)
		n, rest, err := readBigLen(data[1:], lenOfLen)
		if err != nil {
			return Value{}, nil, err
		}
		if len(rest) < n {
			return Value{}, nil, ErrMalformed
		}
		items, err := decodeItems(rest[:n])
		if err != nil {
			return Value{}, nil, err
		}
		return List(items...), rest[n:], nil
	}
}

func readBigLen(data []byte, lenOfLen int) (int, []byte, error) {
	if len(data) < lenOfLen {
		return 0, nil, ErrMalformed
	}
	var buf [8]byte
	copy(buf[8-lenOfLen:], data[:lenOfLen])
	return int(binary.BigEndian.Uint64(buf[:])), data[lenOfLen:], nil
}

func decodeItems(data []byte) ([]Value, error) {
	var items []Value
	for len(data) > 0 {
		v, rest, err := Decode(data)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		data = rest
	}
	return items, nil
}

// IsList reports whether v was constructed with List.
func (v Value) IsList() bool { return v.isList }

// Bytes returns the leaf payload of a non-list Value.
func (v Value) Bytes() []byte { return v.str }

// Items returns the child Values of a list Value.
func (v Value) Items() []Value { return v.list }

// Copyright (C) 2020 The Dolhouse Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package binary

import (
	eb "encoding/binary"

	"github.com/SpaceCats64/Dolhouse/fault"
)

// Endian selects the byte order a Reader or Writer uses for multi-byte
// values. It is fixed at construction.
type Endian int

const (
	// LittleEndian stores the least significant byte first.
	LittleEndian Endian = iota
	// BigEndian stores the most significant byte first.
	BigEndian
)

const (
	// ErrFieldOverflow is returned when a value does not fit the fixed
	// field it is being written into. Nothing is written when it is
	// returned.
	ErrFieldOverflow = fault.Const("binary: value too long for fixed-size field")
	// ErrAnchorUnset is returned by LoadOffset for an index no offset
	// was saved at.
	ErrAnchorUnset = fault.Const("binary: no offset saved at index")
	// ErrUnmappableRune is returned when a rune has no single-byte form
	// in the configured text encoding. Nothing is written when it is
	// returned.
	ErrUnmappableRune = fault.Const("binary: rune not representable in text encoding")
)

// str32Size is the byte width of the fixed string fields handled by
// ReadStr32 and WriteStr32.
const str32Size = 32

func byteOrder(endian Endian) eb.ByteOrder {
	switch endian {
	case LittleEndian:
		return eb.LittleEndian
	case BigEndian:
		return eb.BigEndian
	default:
		return eb.LittleEndian
	}
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

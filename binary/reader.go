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
	"io"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"

	"github.com/SpaceCats64/Dolhouse/f16"
)

// Reader decodes typed values from a seekable byte stream, advancing a
// cursor as it goes.
//
// Every operation transfers exactly the bytes it names and surfaces any
// failure immediately. A read reaching past the end of the stream
// reports io.EOF when nothing was read and io.ErrUnexpectedEOF when a
// value was torn; values are never truncated or zero-filled.
type Reader struct {
	rs        io.ReadSeeker
	tmp       [8]byte
	byteOrder eb.ByteOrder
	cm        *charmap.Charmap
	anchors   map[int]int64
}

// NewReader creates a Reader over rs with the given byte order, using
// the default ISO 8859-1 text encoding.
func NewReader(rs io.ReadSeeker, endian Endian) *Reader {
	return NewReaderEncoding(rs, endian, nil)
}

// NewReaderEncoding creates a Reader over rs with the given byte order
// and single-byte text encoding. A nil encoding selects ISO 8859-1.
// Construction performs no I/O; the caller keeps ownership of rs.
func NewReaderEncoding(rs io.ReadSeeker, endian Endian, cm *charmap.Charmap) *Reader {
	if cm == nil {
		cm = charmap.ISO8859_1
	}
	return &Reader{rs: rs, byteOrder: byteOrder(endian), cm: cm}
}

// ReadU8 reads one unsigned byte.
func (r *Reader) ReadU8() (uint8, error) {
	if _, err := io.ReadFull(r.rs, r.tmp[:1]); err != nil {
		return 0, err
	}
	return r.tmp[0], nil
}

// ReadS8 reads one signed byte.
func (r *Reader) ReadS8() (int8, error) {
	v, err := r.ReadU8()
	return int8(v), err
}

// ReadU16 reads an unsigned 16 bit value in the configured byte order.
func (r *Reader) ReadU16() (uint16, error) {
	if _, err := io.ReadFull(r.rs, r.tmp[:2]); err != nil {
		return 0, err
	}
	return r.byteOrder.Uint16(r.tmp[:]), nil
}

// ReadS16 reads a signed 16 bit value in the configured byte order.
func (r *Reader) ReadS16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

// ReadU32 reads an unsigned 32 bit value in the configured byte order.
func (r *Reader) ReadU32() (uint32, error) {
	if _, err := io.ReadFull(r.rs, r.tmp[:4]); err != nil {
		return 0, err
	}
	return r.byteOrder.Uint32(r.tmp[:]), nil
}

// ReadS32 reads a signed 32 bit value in the configured byte order.
func (r *Reader) ReadS32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

// ReadU64 reads an unsigned 64 bit value in the configured byte order.
func (r *Reader) ReadU64() (uint64, error) {
	if _, err := io.ReadFull(r.rs, r.tmp[:8]); err != nil {
		return 0, err
	}
	return r.byteOrder.Uint64(r.tmp[:]), nil
}

// ReadS64 reads a signed 64 bit value in the configured byte order.
func (r *Reader) ReadS64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

// ReadF16 reads the raw bits of a 16 bit float. No half-precision
// arithmetic is performed; the f16 package converts when the numeric
// value is needed.
func (r *Reader) ReadF16() (f16.Number, error) {
	v, err := r.ReadU16()
	return f16.Number(v), err
}

// ReadF32 reads a 32 bit float in the configured byte order.
func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	return math.Float32frombits(v), err
}

// ReadF64 reads a 64 bit float in the configured byte order.
func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	return math.Float64frombits(v), err
}

// Data fills p with the next len(p) bytes.
func (r *Reader) Data(p []byte) error {
	_, err := io.ReadFull(r.rs, p)
	return err
}

// ReadChar reads one byte and decodes it through the configured text
// encoding.
func (r *Reader) ReadChar() (rune, error) {
	b, err := r.ReadU8()
	if err != nil {
		return 0, err
	}
	return r.cm.DecodeByte(b), nil
}

// ReadChars reads exactly count bytes, decoding one character per byte.
func (r *Reader) ReadChars(count int) ([]rune, error) {
	buf := make([]byte, count)
	if err := r.Data(buf); err != nil {
		return nil, err
	}
	chars := make([]rune, count)
	for i, b := range buf {
		chars[i] = r.cm.DecodeByte(b)
	}
	return chars, nil
}

// ReadStr reads characters up to a zero byte. The terminator is not
// consumed; the cursor is left sitting on it. WriteStr, by contrast,
// emits the terminator.
func (r *Reader) ReadStr() (string, error) {
	s := []rune{}
	for {
		b, err := r.ReadU8()
		if err != nil {
			return "", errors.Wrap(err, "scanning for string terminator")
		}
		if b == 0 {
			if err := r.Sail(-1); err != nil {
				return "", err
			}
			return string(s), nil
		}
		s = append(s, r.cm.DecodeByte(b))
	}
}

// ReadStrN reads exactly count bytes as characters, embedded zero bytes
// included.
func (r *Reader) ReadStrN(count int) (string, error) {
	chars, err := r.ReadChars(count)
	if err != nil {
		return "", err
	}
	return string(chars), nil
}

// ReadStr32 reads a fixed 32 byte string field: characters up to a zero
// byte, after which the cursor skips the remainder of the field. The
// cursor always lands exactly 32 bytes past the field start.
func (r *Reader) ReadStr32() (string, error) {
	s := []rune{}
	n := 0
	for n < str32Size {
		b, err := r.ReadU8()
		if err != nil {
			return "", errors.Wrap(err, "reading 32 byte string field")
		}
		n++
		if b == 0 {
			break
		}
		s = append(s, r.cm.DecodeByte(b))
	}
	if n < str32Size {
		if err := r.Sail(int64(str32Size - n)); err != nil {
			return "", err
		}
	}
	return string(s), nil
}

// SkipPadding16 seeks forward to the next 16 byte boundary. At a
// boundary it does nothing.
func (r *Reader) SkipPadding16() error {
	return r.skipPadding(16)
}

// SkipPadding32 seeks forward to the next 32 byte boundary. At a
// boundary it does nothing.
func (r *Reader) SkipPadding32() error {
	return r.skipPadding(32)
}

func (r *Reader) skipPadding(align int64) error {
	pos, err := r.Position()
	if err != nil {
		return err
	}
	if rem := pos % align; rem != 0 {
		return r.Sail(align - rem)
	}
	return nil
}

// Position reports the absolute cursor position without moving it.
func (r *Reader) Position() (int64, error) {
	return r.rs.Seek(0, io.SeekCurrent)
}

// Goto moves the cursor to an absolute offset from the stream start.
// Target validity is the backing stream's business; its errors pass
// through untranslated.
func (r *Reader) Goto(offset int64) error {
	_, err := r.rs.Seek(offset, io.SeekStart)
	return err
}

// Sail moves the cursor by a signed offset relative to its current
// position.
func (r *Reader) Sail(offset int64) error {
	_, err := r.rs.Seek(offset, io.SeekCurrent)
	return err
}

// Back moves the cursor to a signed offset relative to the end of the
// stream.
func (r *Reader) Back(offset int64) error {
	_, err := r.rs.Seek(offset, io.SeekEnd)
	return err
}

// SaveOffset stores the current cursor position at index, growing the
// anchor table as needed.
func (r *Reader) SaveOffset(index int) error {
	pos, err := r.Position()
	if err != nil {
		return err
	}
	if r.anchors == nil {
		r.anchors = map[int]int64{}
	}
	r.anchors[index] = pos
	return nil
}

// LoadOffset moves the cursor to the position saved at index, failing
// with ErrAnchorUnset if nothing was saved there.
func (r *Reader) LoadOffset(index int) error {
	pos, ok := r.anchors[index]
	if !ok {
		return errors.Wrapf(ErrAnchorUnset, "loading offset %d", index)
	}
	return r.Goto(pos)
}

// Stream returns the backing stream for the cases the Reader does not
// cover. Seeking it moves the shared cursor.
func (r *Reader) Stream() io.ReadSeeker {
	return r.rs
}

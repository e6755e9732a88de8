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

// Writer encodes typed values onto a seekable byte stream, advancing a
// cursor as it goes.
//
// Every operation transfers exactly the bytes it names and surfaces any
// failure immediately. Operations that fail before the stream is
// touched leave it unchanged.
type Writer struct {
	ws            io.WriteSeeker
	tmp           [8]byte
	byteOrder     eb.ByteOrder
	cm            *charmap.Charmap
	anchors       map[int]int64
	legacyStrings bool
}

// NewWriter creates a Writer over ws with the given byte order, using
// the default ISO 8859-1 text encoding.
func NewWriter(ws io.WriteSeeker, endian Endian) *Writer {
	return NewWriterEncoding(ws, endian, nil)
}

// NewWriterEncoding creates a Writer over ws with the given byte order
// and single-byte text encoding. A nil encoding selects ISO 8859-1.
// Construction performs no I/O; the caller keeps ownership of ws.
func NewWriterEncoding(ws io.WriteSeeker, endian Endian, cm *charmap.Charmap) *Writer {
	if cm == nil {
		cm = charmap.ISO8859_1
	}
	return &Writer{ws: ws, byteOrder: byteOrder(endian), cm: cm}
}

// SetLegacyStrings switches the reversed string encoding produced by
// old generations of the format's tooling on or off. When on, WriteStr
// and WriteStr32 emit the encoded characters in reverse order;
// terminators and field padding are not reversed, and reads never
// reverse. Off by default.
func (w *Writer) SetLegacyStrings(on bool) {
	w.legacyStrings = on
}

func (w *Writer) write(p []byte) error {
	n, err := w.ws.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}

// WriteU8 writes one unsigned byte.
func (w *Writer) WriteU8(v uint8) error {
	w.tmp[0] = v
	return w.write(w.tmp[:1])
}

// WriteS8 writes one signed byte.
func (w *Writer) WriteS8(v int8) error {
	return w.WriteU8(uint8(v))
}

// WriteU16 writes an unsigned 16 bit value in the configured byte order.
func (w *Writer) WriteU16(v uint16) error {
	w.byteOrder.PutUint16(w.tmp[:], v)
	return w.write(w.tmp[:2])
}

// WriteS16 writes a signed 16 bit value in the configured byte order.
func (w *Writer) WriteS16(v int16) error {
	return w.WriteU16(uint16(v))
}

// WriteU32 writes an unsigned 32 bit value in the configured byte order.
func (w *Writer) WriteU32(v uint32) error {
	w.byteOrder.PutUint32(w.tmp[:], v)
	return w.write(w.tmp[:4])
}

// WriteS32 writes a signed 32 bit value in the configured byte order.
func (w *Writer) WriteS32(v int32) error {
	return w.WriteU32(uint32(v))
}

// WriteU64 writes an unsigned 64 bit value in the configured byte order.
func (w *Writer) WriteU64(v uint64) error {
	w.byteOrder.PutUint64(w.tmp[:], v)
	return w.write(w.tmp[:8])
}

// WriteS64 writes a signed 64 bit value in the configured byte order.
func (w *Writer) WriteS64(v int64) error {
	return w.WriteU64(uint64(v))
}

// WriteF16 writes the raw bits of a 16 bit float.
func (w *Writer) WriteF16(v f16.Number) error {
	return w.WriteU16(uint16(v))
}

// WriteF32 writes a 32 bit float in the configured byte order.
func (w *Writer) WriteF32(v float32) error {
	return w.WriteU32(math.Float32bits(v))
}

// WriteF64 writes a 64 bit float in the configured byte order.
func (w *Writer) WriteF64(v float64) error {
	return w.WriteU64(math.Float64bits(v))
}

// Data writes p as-is.
func (w *Writer) Data(p []byte) error {
	return w.write(p)
}

// encode converts s through the configured text encoding, one byte per
// character. An unmappable character fails the whole conversion before
// anything is written.
func (w *Writer) encode(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, c := range s {
		b, ok := w.cm.EncodeRune(c)
		if !ok {
			return nil, errors.Wrapf(ErrUnmappableRune, "%q", c)
		}
		out = append(out, b)
	}
	return out, nil
}

// WriteChar encodes one character and writes its byte.
func (w *Writer) WriteChar(c rune) error {
	b, ok := w.cm.EncodeRune(c)
	if !ok {
		return errors.Wrapf(ErrUnmappableRune, "%q", c)
	}
	return w.WriteU8(b)
}

// WriteChars encodes each character and writes the bytes. The whole
// slice is encoded before anything is written.
func (w *Writer) WriteChars(chars []rune) error {
	out := make([]byte, 0, len(chars))
	for _, c := range chars {
		b, ok := w.cm.EncodeRune(c)
		if !ok {
			return errors.Wrapf(ErrUnmappableRune, "%q", c)
		}
		out = append(out, b)
	}
	return w.write(out)
}

// WriteStr writes the encoded characters of s followed by one zero
// byte. ReadStr does not consume that terminator; the asymmetry is
// deliberate.
func (w *Writer) WriteStr(s string) error {
	out, err := w.encode(s)
	if err != nil {
		return err
	}
	if w.legacyStrings {
		reverse(out)
	}
	if err := w.write(out); err != nil {
		return err
	}
	return w.WriteU8(0)
}

// WriteStr32 writes s into a fixed 32 byte field, zero-filling the
// remainder. A string that encodes to more than 32 bytes fails with
// ErrFieldOverflow before anything is written.
func (w *Writer) WriteStr32(s string) error {
	out, err := w.encode(s)
	if err != nil {
		return err
	}
	if len(out) > str32Size {
		return errors.Wrapf(ErrFieldOverflow, "%d byte string in a %d byte field", len(out), str32Size)
	}
	if w.legacyStrings {
		reverse(out)
	}
	var field [str32Size]byte
	copy(field[:], out)
	return w.write(field[:])
}

// WritePadding writes count fill bytes. A count of zero or less writes
// nothing.
func (w *Writer) WritePadding(count int, fill byte) error {
	if count <= 0 {
		return nil
	}
	pad := make([]byte, count)
	if fill != 0 {
		for i := range pad {
			pad[i] = fill
		}
	}
	return w.write(pad)
}

// WritePadding16 pads with fill bytes to the next 16 byte boundary. At
// a boundary it writes nothing.
func (w *Writer) WritePadding16(fill byte) error {
	return w.writeAlignment(16, fill)
}

// WritePadding32 pads with fill bytes to the next 32 byte boundary. At
// a boundary it writes nothing.
func (w *Writer) WritePadding32(fill byte) error {
	return w.writeAlignment(32, fill)
}

func (w *Writer) writeAlignment(align int64, fill byte) error {
	pos, err := w.Position()
	if err != nil {
		return err
	}
	if rem := pos % align; rem != 0 {
		return w.WritePadding(int(align-rem), fill)
	}
	return nil
}

// Position reports the absolute cursor position without moving it.
func (w *Writer) Position() (int64, error) {
	return w.ws.Seek(0, io.SeekCurrent)
}

// Goto moves the cursor to an absolute offset from the stream start.
// Target validity is the backing stream's business; its errors pass
// through untranslated.
func (w *Writer) Goto(offset int64) error {
	_, err := w.ws.Seek(offset, io.SeekStart)
	return err
}

// Sail moves the cursor by a signed offset relative to its current
// position.
func (w *Writer) Sail(offset int64) error {
	_, err := w.ws.Seek(offset, io.SeekCurrent)
	return err
}

// Back moves the cursor to a signed offset relative to the end of the
// stream.
func (w *Writer) Back(offset int64) error {
	_, err := w.ws.Seek(offset, io.SeekEnd)
	return err
}

// SaveOffset stores the current cursor position at index, growing the
// anchor table as needed.
func (w *Writer) SaveOffset(index int) error {
	pos, err := w.Position()
	if err != nil {
		return err
	}
	if w.anchors == nil {
		w.anchors = map[int]int64{}
	}
	w.anchors[index] = pos
	return nil
}

// LoadOffset moves the cursor to the position saved at index, failing
// with ErrAnchorUnset if nothing was saved there.
func (w *Writer) LoadOffset(index int) error {
	pos, ok := w.anchors[index]
	if !ok {
		return errors.Wrapf(ErrAnchorUnset, "loading offset %d", index)
	}
	return w.Goto(pos)
}

// Stream returns the backing stream for the cases the Writer does not
// cover. Seeking it moves the shared cursor.
func (w *Writer) Stream() io.WriteSeeker {
	return w.ws
}

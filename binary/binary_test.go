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

package binary_test

import (
	"math"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"github.com/SpaceCats64/Dolhouse/assert"
	"github.com/SpaceCats64/Dolhouse/binary"
	"github.com/SpaceCats64/Dolhouse/f16"
	"github.com/SpaceCats64/Dolhouse/stream"
)

func TestRoundTrip(t *testing.T) {
	assert := assert.To(t)
	for _, test := range []struct {
		name   string
		endian binary.Endian
	}{
		{"big endian", binary.BigEndian},
		{"little endian", binary.LittleEndian},
	} {
		buf := stream.NewBuffer(nil)
		w := binary.NewWriter(buf, test.endian)
		check := func(op string, err error) {
			assert.For("%s %s", test.name, op).ThatError(err).Succeeded()
		}

		check("U8", w.WriteU8(math.MaxUint8))
		check("S8", w.WriteS8(math.MinInt8))
		check("U16", w.WriteU16(math.MaxUint16))
		check("S16", w.WriteS16(math.MinInt16))
		check("U32", w.WriteU32(math.MaxUint32))
		check("S32", w.WriteS32(math.MinInt32))
		check("U64", w.WriteU64(math.MaxUint64))
		check("S64", w.WriteS64(math.MinInt64))
		check("F16", w.WriteF16(f16.From(0.333251953125)))
		check("F32", w.WriteF32(math.MaxFloat32))
		check("F64", w.WriteF64(math.SmallestNonzeroFloat64))
		check("Str", w.WriteStr("Dolhouse"))
		check("padding", w.WritePadding16(0xcc))
		check("Str32", w.WriteStr32("boot.dol"))
		check("tail", w.WriteU8(0x5a))

		// The reader shares the stream, so rewind it first.
		r := binary.NewReader(buf, test.endian)
		check("rewind", r.Goto(0))

		u8, err := r.ReadU8()
		check("read U8", err)
		assert.For("%s U8", test.name).That(u8).Equals(uint8(math.MaxUint8))
		s8, err := r.ReadS8()
		check("read S8", err)
		assert.For("%s S8", test.name).That(s8).Equals(int8(math.MinInt8))
		u16, err := r.ReadU16()
		check("read U16", err)
		assert.For("%s U16", test.name).That(u16).Equals(uint16(math.MaxUint16))
		s16, err := r.ReadS16()
		check("read S16", err)
		assert.For("%s S16", test.name).That(s16).Equals(int16(math.MinInt16))
		u32, err := r.ReadU32()
		check("read U32", err)
		assert.For("%s U32", test.name).That(u32).Equals(uint32(math.MaxUint32))
		s32, err := r.ReadS32()
		check("read S32", err)
		assert.For("%s S32", test.name).That(s32).Equals(int32(math.MinInt32))
		u64, err := r.ReadU64()
		check("read U64", err)
		assert.For("%s U64", test.name).That(u64).Equals(uint64(math.MaxUint64))
		s64, err := r.ReadS64()
		check("read S64", err)
		assert.For("%s S64", test.name).That(s64).Equals(int64(math.MinInt64))
		h, err := r.ReadF16()
		check("read F16", err)
		assert.For("%s F16", test.name).That(h.Float32()).Equals(float32(0.333251953125))
		f32, err := r.ReadF32()
		check("read F32", err)
		assert.For("%s F32", test.name).That(f32).Equals(float32(math.MaxFloat32))
		f64, err := r.ReadF64()
		check("read F64", err)
		assert.For("%s F64", test.name).That(f64).Equals(math.SmallestNonzeroFloat64)

		s, err := r.ReadStr()
		check("read Str", err)
		assert.For("%s Str", test.name).ThatString(s).Equals("Dolhouse")
		check("skip terminator", r.Sail(1))
		check("skip padding", r.SkipPadding16())

		s, err = r.ReadStr32()
		check("read Str32", err)
		assert.For("%s Str32", test.name).ThatString(s).Equals("boot.dol")

		tail, err := r.ReadU8()
		check("read tail", err)
		assert.For("%s tail", test.name).That(tail).Equals(uint8(0x5a))

		pos, err := r.Position()
		check("end position", err)
		assert.For("%s consumed", test.name).That(pos).Equals(int64(buf.Len()))
	}
}

func TestLegacyStringsRoundTrip(t *testing.T) {
	assert := assert.To(t)
	buf := stream.NewBuffer(nil)
	w := binary.NewWriter(buf, binary.BigEndian)
	w.SetLegacyStrings(true)
	assert.For("write").ThatError(w.WriteStr32("ABC")).Succeeded()

	// Reads never reverse; the reader sees the stored order.
	r := binary.NewReader(buf, binary.BigEndian)
	assert.For("rewind").ThatError(r.Goto(0)).Succeeded()
	s, err := r.ReadStr32()
	assert.For("read").ThatError(err).Succeeded()
	assert.For("stored order").ThatString(s).Equals("CBA")
}

func TestTextEncodings(t *testing.T) {
	assert := assert.To(t)

	// The euro sign is 0x80 in Windows-1252.
	buf := stream.NewBuffer(nil)
	w := binary.NewWriterEncoding(buf, binary.BigEndian, charmap.Windows1252)
	assert.For("write euro").ThatError(w.WriteStr("€1.50")).Succeeded()
	assert.For("encoded").ThatSlice(buf.Bytes()).Equals([]byte{0x80, '1', '.', '5', '0', 0x00})

	r := binary.NewReaderEncoding(buf, binary.BigEndian, charmap.Windows1252)
	assert.For("rewind").ThatError(r.Goto(0)).Succeeded()
	s, err := r.ReadStr()
	assert.For("read euro").ThatError(err).Succeeded()
	assert.For("decoded").ThatString(s).Equals("€1.50")

	// The same byte decodes differently under the default encoding.
	d := binary.NewReader(stream.NewBuffer([]byte{0x80}), binary.BigEndian)
	c, err := d.ReadChar()
	assert.For("default read").ThatError(err).Succeeded()
	assert.For("default decoded").That(c).Equals('')
}

func TestSharedStream(t *testing.T) {
	assert := assert.To(t)
	buf := stream.NewBuffer(nil)
	w := binary.NewWriter(buf, binary.BigEndian)
	r := binary.NewReader(buf, binary.BigEndian)

	// Reader and writer wrap one stream, so they share one cursor.
	assert.For("write").ThatError(w.WriteU16(0xbeef)).Succeeded()
	assert.For("rewind").ThatError(r.Goto(0)).Succeeded()
	v, err := r.ReadU16()
	assert.For("read").ThatError(err).Succeeded()
	assert.For("value").That(v).Equals(uint16(0xbeef))

	// The read moved the writer's cursor too.
	pos, err := w.Position()
	assert.For("position").ThatError(err).Succeeded()
	assert.For("shared cursor").That(pos).Equals(int64(2))
}

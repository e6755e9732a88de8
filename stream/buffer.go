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

// Package stream provides the seekable byte stream backings the binary
// codec runs over: a growable in-memory buffer, a memory-mapped file
// and a seek-aware buffered adapter for slow streams.
package stream

import (
	"io"

	"github.com/SpaceCats64/Dolhouse/fault"
)

// ErrNegativeSeek is returned by Seek when the resolved position would
// be before the start of the stream.
const ErrNegativeSeek = fault.Const("stream: seek to a negative position")

const errInvalidWhence = fault.Const("stream: invalid seek whence")

func seekPosition(cur, end, offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = cur + offset
	case io.SeekEnd:
		pos = end + offset
	default:
		return 0, errInvalidWhence
	}
	if pos < 0 {
		return 0, ErrNegativeSeek
	}
	return pos, nil
}

// Buffer is a growable in-memory byte stream.
// Writes extend the buffer as needed, and writing after a seek past the
// end zero-fills the gap, the way a local file would.
type Buffer struct {
	data []byte
	pos  int64
}

// NewBuffer returns a Buffer over data with the cursor at the start.
// A nil slice gives an empty stream.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Read fills p from the cursor, returning io.EOF at or past the end.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.pos >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.pos:])
	b.pos += int64(n)
	return n, nil
}

// Write copies p at the cursor, growing the buffer if it runs past the
// end.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if end := b.pos + int64(len(p)); end > int64(len(b.data)) {
		b.data = append(b.data, make([]byte, end-int64(len(b.data)))...)
	}
	n := copy(b.data[b.pos:], p)
	b.pos += int64(n)
	return n, nil
}

// Seek moves the cursor. Seeking past the end is allowed and does not
// grow the buffer until something is written there.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	pos, err := seekPosition(b.pos, int64(len(b.data)), offset, whence)
	if err != nil {
		return 0, err
	}
	b.pos = pos
	return pos, nil
}

// Bytes returns the buffer contents. The slice is aliased, not copied.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the current length of the buffer in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

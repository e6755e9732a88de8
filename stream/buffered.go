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

package stream

import (
	"bufio"
	"io"
)

const defaultBufferSize = 4096

// BufferedReader wraps a seekable stream in a bufio.Reader while keeping
// Seek working. Forward seeks that land inside the buffered window are
// served by discarding buffered bytes; any other seek repositions the
// underlying stream and drops the buffer. It exists so per-read syscall
// overhead stays out of the codec.
type BufferedReader struct {
	rs  io.ReadSeeker
	br  *bufio.Reader
	pos int64
}

// NewBufferedReader returns a BufferedReader over rs with the given
// buffer size. A size of zero or less picks a default. The stream's
// current position becomes the reader's starting position.
func NewBufferedReader(rs io.ReadSeeker, size int) (*BufferedReader, error) {
	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = defaultBufferSize
	}
	return &BufferedReader{rs: rs, br: bufio.NewReaderSize(rs, size), pos: pos}, nil
}

// Read fills p from the buffer, refilling from the underlying stream as
// needed.
func (b *BufferedReader) Read(p []byte) (int, error) {
	n, err := b.br.Read(p)
	b.pos += int64(n)
	return n, err
}

// Seek moves the logical read position.
func (b *BufferedReader) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart, io.SeekCurrent:
		pos := offset
		if whence == io.SeekCurrent {
			pos = b.pos + offset
		}
		if pos < 0 {
			return 0, ErrNegativeSeek
		}
		if d := pos - b.pos; d >= 0 && d <= int64(b.br.Buffered()) {
			if _, err := b.br.Discard(int(d)); err != nil {
				return 0, err
			}
			b.pos = pos
			return pos, nil
		}
		if _, err := b.rs.Seek(pos, io.SeekStart); err != nil {
			return 0, err
		}
		b.br.Reset(b.rs)
		b.pos = pos
		return pos, nil
	case io.SeekEnd:
		pos, err := b.rs.Seek(offset, io.SeekEnd)
		if err != nil {
			return 0, err
		}
		b.br.Reset(b.rs)
		b.pos = pos
		return pos, nil
	default:
		return 0, errInvalidWhence
	}
}

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
	"io"
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"

	"github.com/SpaceCats64/Dolhouse/fault"
)

// MapFile is a fixed-size seekable stream over a memory-mapped file.
// Reads and writes patch the mapping in place; the file cannot grow
// through it. It is the backing of choice for rewriting offsets inside
// an existing file.
type MapFile struct {
	f    *os.File
	data mmap.MMap
	pos  int64
}

// OpenMapFile opens the file at path read-write and maps its whole
// content. The file must not be empty.
func OpenMapFile(path string) (*MapFile, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "mapping %s", path)
	}
	return &MapFile{f: f, data: data}, nil
}

// Read fills p from the cursor, returning io.EOF at or past the end of
// the mapping.
func (m *MapFile) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.pos:])
	m.pos += int64(n)
	return n, nil
}

// Write copies p into the mapping at the cursor. A write reaching past
// the end of the mapping writes what fits and fails with
// io.ErrShortWrite.
func (m *MapFile) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if m.pos >= int64(len(m.data)) {
		return 0, io.ErrShortWrite
	}
	n := copy(m.data[m.pos:], p)
	m.pos += int64(n)
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// Seek moves the cursor within the mapping.
func (m *MapFile) Seek(offset int64, whence int) (int64, error) {
	pos, err := seekPosition(m.pos, int64(len(m.data)), offset, whence)
	if err != nil {
		return 0, err
	}
	m.pos = pos
	return pos, nil
}

// Flush commits the mapped bytes back to the file.
func (m *MapFile) Flush() error {
	return m.data.Flush()
}

// Close flushes and unmaps the file, then closes the handle. All steps
// run; the first failure is reported.
func (m *MapFile) Close() error {
	e := fault.One{}
	e.Collect(m.data.Flush())
	e.Collect(m.data.Unmap())
	e.Collect(m.f.Close())
	return e.First()
}

// Bytes returns the mapped contents. The slice is aliased, not copied,
// and is only valid until Close.
func (m *MapFile) Bytes() []byte {
	return []byte(m.data)
}

// Len returns the size of the mapping in bytes.
func (m *MapFile) Len() int {
	return len(m.data)
}

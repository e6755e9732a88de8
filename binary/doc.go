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

// Package binary implements encoding and decoding of primitive data
// types to and from a seekable binary stream. Reader and Writer form a
// symmetrical pair: each maintains a cursor over the stream, moves it
// by exactly the bytes an operation transfers, and exposes the same
// positioning operations for hopping around offset-linked file layouts.
//
// Byte order and text encoding are fixed when a Reader or Writer is
// constructed and apply to every operation. Multi-byte values are
// assembled per width in the configured order; text is one byte per
// character through a single-byte character map, ISO 8859-1 unless
// another is given. For performance reasons, each data type has a
// separate method for encoding and decoding rather than a single pair
// of methods boxing values in an interface{}.
//
// The package transfers bytes and nothing else. It does not buffer,
// retry, or interpret what it moves; callers that want fewer seeks or
// reads wrap the stream, for example with a stream.BufferedReader.
// 16 bit floats cross the stream as raw bits of type f16.Number and
// only convert when asked.
package binary

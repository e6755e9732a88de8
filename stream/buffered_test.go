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

package stream_test

import (
	"io"
	"testing"

	"github.com/SpaceCats64/Dolhouse/assert"
	"github.com/SpaceCats64/Dolhouse/stream"
)

func TestBufferedReader(t *testing.T) {
	assert := assert.To(t)
	raw := make([]byte, 300)
	for i := range raw {
		raw[i] = byte(i)
	}
	br, err := stream.NewBufferedReader(stream.NewBuffer(raw), 16)
	assert.For("new").ThatError(err).Succeeded()

	got := make([]byte, 4)
	_, err = io.ReadFull(br, got)
	assert.For("head err").ThatError(err).Succeeded()
	assert.For("head").ThatSlice(got).Equals(raw[:4])

	// forward hop inside the buffered window
	pos, err := br.Seek(2, io.SeekCurrent)
	assert.For("hop err").ThatError(err).Succeeded()
	assert.For("hop pos").That(pos).Equals(int64(6))
	_, err = io.ReadFull(br, got)
	assert.For("after hop err").ThatError(err).Succeeded()
	assert.For("after hop").ThatSlice(got).Equals(raw[6:10])

	// long jump forces a reposition
	pos, err = br.Seek(200, io.SeekStart)
	assert.For("jump err").ThatError(err).Succeeded()
	assert.For("jump pos").That(pos).Equals(int64(200))
	_, err = io.ReadFull(br, got)
	assert.For("after jump err").ThatError(err).Succeeded()
	assert.For("after jump").ThatSlice(got).Equals(raw[200:204])

	// from the end
	pos, err = br.Seek(-4, io.SeekEnd)
	assert.For("end err").ThatError(err).Succeeded()
	assert.For("end pos").That(pos).Equals(int64(296))
	_, err = io.ReadFull(br, got)
	assert.For("tail err").ThatError(err).Succeeded()
	assert.For("tail").ThatSlice(got).Equals(raw[296:])

	// backwards
	pos, err = br.Seek(-8, io.SeekCurrent)
	assert.For("back err").ThatError(err).Succeeded()
	assert.For("back pos").That(pos).Equals(int64(292))
	_, err = io.ReadFull(br, got)
	assert.For("back read err").ThatError(err).Succeeded()
	assert.For("back read").ThatSlice(got).Equals(raw[292:296])

	_, err = br.Seek(0, io.SeekEnd)
	assert.For("to end").ThatError(err).Succeeded()
	_, err = io.ReadFull(br, got)
	assert.For("eof").ThatError(err).Equals(io.EOF)

	_, err = br.Seek(-400, io.SeekCurrent)
	assert.For("negative").ThatError(err).Equals(stream.ErrNegativeSeek)
}

// Copyright 2019 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compression

import "io"

// fakeReader is just enough of an io.ReadCloser with a Reset method to
// confirm the Reader interface's shape is usable by an implementer.
type fakeReader struct {
	data []byte
	pos  int
}

func (f *fakeReader) Read(p []byte) (int, error) {
	if f.pos >= len(f.data) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.pos:])
	f.pos += n
	return n, nil
}

func (f *fakeReader) Close() error { return nil }

func (f *fakeReader) Reset(r io.Reader, dictionary []byte) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.data, f.pos = data, 0
	return nil
}

var _ Reader = (*fakeReader)(nil)

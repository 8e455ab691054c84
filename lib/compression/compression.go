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

// ----------------

// Package compression provides common types shared by this module's
// decoder packages.
package compression

import (
	"io"
)

// Reader is an io.ReadCloser with a Reset method, letting a caller re-use
// one Reader across many streams instead of allocating a new one per
// stream. Its Reset method has the same signature as the standard library's
// zlib.Resetter.
//
// There is no Writer counterpart here: this module only decodes.
type Reader interface {
	io.ReadCloser

	// Reset discards any state and re-reads r as a fresh stream. dictionary
	// is the preset dictionary to assume was used when the stream was
	// encoded; a decoder that cannot honor a non-nil dictionary must
	// return an error rather than silently ignore it.
	Reset(r io.Reader, dictionary []byte) error
}

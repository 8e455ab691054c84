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

// Package latin1 converts a string into the byte sequence a caller would
// get by taking each rune's low 8 bits, the same mapping JavaScript's
// String.charCodeAt(i) & 0xff gives a binary string packed one byte per
// character. It exists only so callers that received compressed data as
// such a string (rather than already as bytes) have somewhere to convert
// it; it is not part of the zlib or DEFLATE decoding state machine.
package latin1

// FromString returns a byte sequence where each byte is the low 8 bits of
// the corresponding rune (logical character) in s.
func FromString(s string) []byte {
	runes := []rune(s)
	b := make([]byte, len(runes))
	for i, r := range runes {
		b[i] = byte(r & 0xff)
	}
	return b
}

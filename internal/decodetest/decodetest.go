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

// Package decodetest provides shared fixture construction and exhaustive
// corruption sweeps for lib/deflate and lib/zlib's tests.
package decodetest

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"testing"
)

// ZlibFixture compresses data into a valid zlib stream using the standard
// library's encoder. Tests use this to build known-good input for a
// from-scratch decoder to check itself against; the core decoder under test
// never uses compress/zlib or compress/flate itself.
func ZlibFixture(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("ZlibFixture: Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("ZlibFixture: Close: %v", err)
	}
	return buf.Bytes()
}

// DeflateFixture compresses data into a raw DEFLATE stream (no zlib
// wrapper) using the standard library's encoder.
func DeflateFixture(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		t.Fatalf("DeflateFixture: NewWriter: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("DeflateFixture: Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("DeflateFixture: Close: %v", err)
	}
	return buf.Bytes()
}

// BitFlipSweep flips each bit of valid in turn, calls decode on the mutated
// copy, and fails the test unless either: decode returned one of
// acceptableErrs, or decode returned a nil error and output byte-for-byte
// identical to want (a flipped padding or otherwise-unused bit can leave
// behavior unchanged). It never accepts a nil error paired with output that
// differs from want — that would be exactly the "silent corruption"
// property 5 rules out.
func BitFlipSweep(t *testing.T, valid []byte, want []byte, acceptableErrs []error, decode func([]byte) ([]byte, error)) {
	t.Helper()
	for byteIdx := range valid {
		for bit := uint(0); bit < 8; bit++ {
			mutated := append([]byte(nil), valid...)
			mutated[byteIdx] ^= 1 << bit

			got, err := decode(mutated)
			if err == nil {
				if !bytes.Equal(got, want) {
					t.Errorf("byte %d bit %d: no error but output changed", byteIdx, bit)
				}
				continue
			}
			ok := false
			for _, want := range acceptableErrs {
				if err == want {
					ok = true
					break
				}
			}
			if !ok {
				t.Errorf("byte %d bit %d: unexpected error: %v", byteIdx, bit, err)
			}
		}
	}
}

// TruncationSweep calls decode on every proper prefix of valid and fails
// the test unless every one of them returns wantErr.
func TruncationSweep(t *testing.T, valid []byte, wantErr error, decode func([]byte) ([]byte, error)) {
	t.Helper()
	for n := 0; n < len(valid); n++ {
		if _, err := decode(valid[:n]); err != wantErr {
			t.Errorf("prefix len %d: got err %v, want %v", n, err, wantErr)
		}
	}
}

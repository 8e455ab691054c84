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

package deflate

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"errors"
	"hash/adler32"
	"math/rand"
	"testing"

	"github.com/acthp/goflate/internal/decodetest"
)

func decodeAll(t *testing.T, raw []byte, opts Options) ([]byte, error) {
	t.Helper()
	return NewDecoder(raw, opts).Inflate()
}

func TestRoundTrip(t *testing.T) {
	tests := map[string][]byte{
		"empty":         {},
		"one-byte":      {0x42},
		"short-literal": []byte("Hello, World!"),
		"repetitive":    bytes.Repeat([]byte("abcabcabcabc"), 2000),
		"all-same-byte": bytes.Repeat([]byte{0x61}, 100000),
	}

	rng := rand.New(rand.NewSource(1))
	randomBytes := make([]byte, 100000)
	rng.Read(randomBytes)
	tests["random"] = randomBytes

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			raw := decodetest.DeflateFixture(t, want)
			got, err := decodeAll(t, raw, Options{})
			if err != nil {
				t.Fatalf("Inflate: %v", err)
			}
			if !bytes.Equal(got, want) {
				t.Fatalf("got %d bytes, want %d bytes (mismatch)", len(got), len(want))
			}
		})
	}
}

func TestModeEquivalence(t *testing.T) {
	want := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 5000)
	raw := decodetest.DeflateFixture(t, want)

	adaptive, err := decodeAll(t, raw, Options{Mode: Adaptive})
	if err != nil {
		t.Fatalf("Adaptive Inflate: %v", err)
	}
	// A small block size forces the windowed sink to wrap its working
	// buffer many times over the course of one decode.
	windowed, err := decodeAll(t, raw, Options{Mode: Windowed, BlockSize: 4096})
	if err != nil {
		t.Fatalf("Windowed Inflate: %v", err)
	}

	if !bytes.Equal(adaptive, want) {
		t.Fatalf("adaptive mode: mismatch")
	}
	if !bytes.Equal(windowed, want) {
		t.Fatalf("windowed mode: mismatch")
	}
	if !bytes.Equal(adaptive, windowed) {
		t.Fatalf("adaptive and windowed modes disagree")
	}
}

func TestTruncation(t *testing.T) {
	want := []byte("a stream that will be truncated at every possible prefix length")
	raw := decodetest.DeflateFixture(t, want)

	decodetest.TruncationSweep(t, raw, ErrTruncatedInput, func(prefix []byte) ([]byte, error) {
		return decodeAll(t, prefix, Options{})
	})
}

func TestInvalidBlockType(t *testing.T) {
	// bFinal=1 (bit 0), btype=3 (bits 1-2 both set): byte 0b0000_0111.
	_, err := decodeAll(t, []byte{0x07}, Options{})
	if err != ErrInvalidBlockType {
		t.Fatalf("got %v, want ErrInvalidBlockType", err)
	}
}

func TestStoredBlockInvalidLength(t *testing.T) {
	// bFinal=1, btype=0 (stored): byte 0b0000_0001 = 0x01, then LEN=5,
	// NLEN deliberately wrong (should be ^5 = 0xFFFA).
	raw := []byte{0x01, 0x05, 0x00, 0x00, 0x00, 'h', 'e', 'l', 'l', 'o'}
	_, err := decodeAll(t, raw, Options{})
	if err != ErrInvalidStoredLength {
		t.Fatalf("got %v, want ErrInvalidStoredLength", err)
	}
}

func TestStoredBlockRoundTrip(t *testing.T) {
	// bFinal=1, btype=0: 0x01, LEN=5 little-endian, NLEN=^LEN, then "Hello".
	raw := []byte{0x01, 0x05, 0x00, 0xfa, 0xff, 'H', 'e', 'l', 'l', 'o'}
	got, err := decodeAll(t, raw, Options{})
	if err != nil {
		t.Fatalf("Inflate: %v", err)
	}
	if string(got) != "Hello" {
		t.Fatalf("got %q, want %q", got, "Hello")
	}
}

// TestStoredLengthBitFlipSweep corrupts only the LEN/NLEN fields of a
// stored block: flipping the block-header bits instead would change which
// block type the rest of the stream is parsed as, an ambiguity that
// belongs to a dedicated test rather than a generic sweep, and flipping
// payload bytes is intentionally not covered here since a raw stored
// block carries no per-block checksum to catch that — lib/zlib's
// Adler-32 trailer is what catches corrupted payload bytes.
func TestStoredLengthBitFlipSweep(t *testing.T) {
	valid := []byte{0x01, 0x05, 0x00, 0xfa, 0xff, 'H', 'e', 'l', 'l', 'o'}
	lenFields := append([]byte(nil), valid[1:5]...)

	decodetest.BitFlipSweep(t, lenFields, []byte("Hello"), []error{
		ErrInvalidStoredLength,
		ErrTruncatedInput,
	}, func(b []byte) ([]byte, error) {
		mutated := append(append([]byte{valid[0]}, b...), valid[5:]...)
		return decodeAll(t, mutated, Options{})
	})
}

// TestHuffmanBodyBitFlipSweep exercises the Huffman-coded block body itself
// (HLIT/HDIST/HCLEN header, code-length alphabet, literal/length and
// distance codes, and the extra-bits fields) — the part TestStoredLengthBitFlipSweep
// deliberately excludes. The fixture mixes repeated phrases (so flate emits
// length/distance back-references) with pseudo-random filler (so the
// literal alphabet is varied enough to need a dynamic Huffman table rather
// than a fixed one), giving a flipped bit many different fields to land in.
//
// Raw DEFLATE carries no checksum: a flipped bit inside a literal's code can
// turn it into a different, equally valid literal. So the fixture is a zlib
// stream, and the sweep covers its DEFLATE payload plus Adler-32 trailer,
// checking the trailer against the decoded bytes the way lib/zlib does with
// Verify set.
func TestHuffmanBodyBitFlipSweep(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	phrases := [][]byte{
		[]byte("the quick brown fox jumps over the lazy dog"),
		[]byte("pack my box with five dozen liquor jugs"),
	}
	var want bytes.Buffer
	for i := 0; i < 40; i++ {
		want.Write(phrases[i%len(phrases)])
		filler := make([]byte, 5)
		rng.Read(filler)
		want.Write(filler)
	}

	errChecksumMismatch := errors.New("Adler-32 checksum mismatch")
	stream := decodetest.ZlibFixture(t, want.Bytes())
	decodetest.BitFlipSweep(t, stream[2:], want.Bytes(), []error{
		ErrInvalidHuffmanCode,
		ErrInvalidDistance,
		ErrInvalidBlockType,
		ErrInvalidStoredLength,
		ErrTruncatedInput,
		errChecksumMismatch,
	}, func(b []byte) ([]byte, error) {
		d := NewDecoder(b, Options{})
		out, err := d.Inflate()
		if err != nil {
			return nil, err
		}
		trailer, err := d.ReadTrailer(4)
		if err != nil {
			return nil, err
		}
		if binary.BigEndian.Uint32(trailer) != adler32.Checksum(out) {
			return nil, errChecksumMismatch
		}
		return out, nil
	})
}

func BenchmarkInflate(b *testing.B) {
	want := bytes.Repeat([]byte("benchmark payload, somewhat compressible text. "), 10000)
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		b.Fatalf("NewWriter: %v", err)
	}
	if _, err := w.Write(want); err != nil {
		b.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		b.Fatalf("Close: %v", err)
	}
	raw := buf.Bytes()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewDecoder(raw, Options{}).Inflate(); err != nil {
			b.Fatal(err)
		}
	}
}

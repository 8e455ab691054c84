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

// Package zlib decodes zlib-wrapped (RFC 1950) DEFLATE data: a two-byte
// CMF/FLG header, a raw DEFLATE stream (decoded by the sibling lib/deflate
// package), and a trailing four-byte big-endian Adler-32 checksum.
//
// It does not support the FDICT preset-dictionary header field, gzip or raw
// framings, encoding, or incremental decoding across input chunks.
package zlib

import (
	"errors"
	"hash/adler32"
	"io"
	"io/ioutil"

	"github.com/acthp/goflate/lib/compression"
	"github.com/acthp/goflate/lib/deflate"
)

var (
	// ErrUnsupportedMethod is returned when CMF's low nibble is not 8
	// (DEFLATE), the only compression method RFC 1950 defines.
	ErrUnsupportedMethod = errors.New("zlib: unsupported compression method")

	// ErrInvalidHeaderCheck is returned when the CMF/FLG header fails its
	// mod-31 check.
	ErrInvalidHeaderCheck = errors.New("zlib: invalid header check")

	// ErrPresetDictionaryUnsupported is returned when FLG's FDICT bit is
	// set: this decoder has no way to supply the preset dictionary.
	ErrPresetDictionaryUnsupported = errors.New("zlib: preset dictionaries are not supported")

	// ErrChecksumMismatch is returned (only when Options.Verify is true)
	// when the trailing Adler-32 does not match the decoded bytes.
	ErrChecksumMismatch = errors.New("zlib: Adler-32 checksum mismatch")
)

// Options configures Decode. NewReader and Reset take no Options: they
// decode with the defaults and Verify set.
type Options struct {
	// BlockSize is forwarded to deflate.Options.BlockSize.
	BlockSize int

	// Mode is forwarded to deflate.Options.Mode.
	Mode deflate.Mode

	// Resize is forwarded to deflate.Options.Resize.
	Resize bool

	// Verify, when true, checks the trailing Adler-32 checksum and returns
	// ErrChecksumMismatch on failure.
	Verify bool
}

// Decode validates input as a zlib stream, decompresses its DEFLATE
// payload, and — if opts.Verify is set — checks the trailing Adler-32.
//
// On any error, partial output is discarded.
func Decode(input []byte, opts Options) ([]byte, error) {
	if len(input) < 2 {
		return nil, deflate.ErrTruncatedInput
	}
	cmf, flg := input[0], input[1]

	if cmf&0x0f != 8 {
		return nil, ErrUnsupportedMethod
	}
	if (uint(cmf)<<8|uint(flg))%31 != 0 {
		return nil, ErrInvalidHeaderCheck
	}
	if flg&0x20 != 0 {
		return nil, ErrPresetDictionaryUnsupported
	}

	d := deflate.NewDecoder(input[2:], deflate.Options{
		BlockSize: opts.BlockSize,
		Mode:      opts.Mode,
		Resize:    opts.Resize,
	})
	out, err := d.Inflate()
	if err != nil {
		return nil, err
	}

	if opts.Verify {
		// Reading the trailer through the same Decoder (rather than
		// slicing input by byte count) is what makes a genuinely
		// truncated trailer — as opposed to one that is merely absent
		// because Verify is off — surface as ErrTruncatedInput: the
		// decoder's own bit position, not an offset we'd have to
		// recompute, tells us where the compressed data actually ended.
		trailer, err := d.ReadTrailer(4)
		if err != nil {
			return nil, err
		}
		want := uint32(trailer[0])<<24 | uint32(trailer[1])<<16 | uint32(trailer[2])<<8 | uint32(trailer[3])
		if got := adler32.Checksum(out); got != want {
			return nil, ErrChecksumMismatch
		}
	}

	return out, nil
}

// reader serves decoded bytes from a one-shot, fully-buffered Decode call.
// It supplements the byte-slice-only core API with the io.Reader
// convenience shape an embedding program is likely to want, while keeping
// the underlying decode itself non-incremental: NewReader reads all of r
// before decoding anything, the same way JoshVarga/blast's NewReader does.
type reader struct {
	data []byte
	pos  int
}

// NewReader reads all of r, decodes it as a zlib stream with the trailing
// checksum verified, and returns an io.ReadCloser serving the result.
func NewReader(r io.Reader) (io.ReadCloser, error) {
	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	out, err := Decode(raw, Options{Verify: true})
	if err != nil {
		return nil, err
	}
	return &reader{data: out}, nil
}

func (r *reader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func (r *reader) Close() error { return nil }

// Reset discards r's current decoded data and replaces it by decoding src
// from scratch, letting a caller reuse one reader across many zlib streams
// instead of allocating a new one each time. dictionary must be nil: this
// decoder has no way to honor a non-nil preset dictionary.
func (r *reader) Reset(src io.Reader, dictionary []byte) error {
	if dictionary != nil {
		return ErrPresetDictionaryUnsupported
	}
	raw, err := ioutil.ReadAll(src)
	if err != nil {
		return err
	}
	out, err := Decode(raw, Options{Verify: true})
	if err != nil {
		return err
	}
	r.data = out
	r.pos = 0
	return nil
}

var _ compression.Reader = (*reader)(nil)

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

// Package deflate decodes raw DEFLATE (RFC 1951) compressed data.
//
// It decodes a complete, in-memory DEFLATE stream in one call: there is no
// support for incremental (push) decoding across multiple input chunks, and
// no support for encoding. Callers that have a zlib-wrapped (RFC 1950)
// stream should use the sibling package lib/zlib instead, which validates
// the header and trailer and calls into this package for the block loop.
package deflate

import (
	"errors"
)

var (
	// ErrInvalidBlockType is returned when a block header's BTYPE field is 3,
	// the one value RFC 1951 reserves and never assigns.
	ErrInvalidBlockType = errors.New("deflate: invalid block type")

	// ErrInvalidStoredLength is returned when a stored block's LEN and NLEN
	// fields are not each other's ones' complement.
	ErrInvalidStoredLength = errors.New("deflate: invalid stored block length")

	// ErrTruncatedInput is returned when the bit reader or a stored-block
	// copy runs out of input before a decode step completes.
	ErrTruncatedInput = errors.New("deflate: truncated input")

	// ErrInvalidHuffmanCode is returned when a decoded bit pattern does not
	// match any code in the current Huffman table.
	ErrInvalidHuffmanCode = errors.New("deflate: invalid Huffman code")

	// ErrInvalidDistance is returned when a back-reference's distance
	// exceeds the number of bytes produced so far.
	ErrInvalidDistance = errors.New("deflate: invalid distance, too far back")
)

// Mode selects the OutputBuffer growth strategy (§4.7 of the design notes).
type Mode int

const (
	// Adaptive grows a single contiguous buffer on demand, doubling (or
	// estimating from the remaining input) as needed. It never needs to
	// concatenate chunks, but it may over-allocate.
	Adaptive Mode = iota

	// Windowed keeps a fixed-size working buffer — 32KiB of window plus one
	// block's worth of headroom — and snapshots completed chunks as it
	// wraps. It bounds peak working memory at the cost of a final
	// concatenation.
	Windowed
)

// defaultBlockSize is the chunk size used by Windowed mode, and the initial
// growth hint for Adaptive mode, when Options.BlockSize is zero.
const defaultBlockSize = 32768

// windowSize is the maximum DEFLATE back-reference distance (the sliding
// window size mandated by RFC 1951).
const windowSize = 32768

// maxMatchLen is the longest possible length/distance match (base 258, the
// largest length code's base value with zero extra bits beyond it).
const maxMatchLen = 258

// Options configures a Decoder.
type Options struct {
	// BlockSize is the Windowed-mode chunk size, and the Adaptive-mode
	// initial growth hint. Zero means defaultBlockSize (32768).
	BlockSize int

	// Mode selects the OutputBuffer growth strategy. The zero value is
	// Adaptive.
	Mode Mode

	// Resize, when true and Mode is Adaptive, makes Inflate allocate an
	// exactly-sized result slice instead of returning a slice that aliases
	// the (possibly larger) working buffer.
	Resize bool
}

// Decoder holds the state of a single DEFLATE decode. It is not safe for
// concurrent use, and is discarded after Inflate (and, where a trailer
// follows the compressed data, ReadTrailer) returns.
type Decoder struct {
	br bitReader

	sink   outputSink
	bFinal bool
}

// NewDecoder returns a Decoder that reads raw DEFLATE data from input.
//
// The returned Decoder is single-use: call Inflate once to run the block
// loop to completion.
func NewDecoder(input []byte, opts Options) *Decoder {
	blockSize := opts.BlockSize
	if blockSize <= 0 {
		blockSize = defaultBlockSize
	}

	d := &Decoder{
		br: bitReader{input: input},
	}
	switch opts.Mode {
	case Windowed:
		d.sink = newWindowedSink(blockSize)
	default:
		d.sink = newAdaptiveSink(input, blockSize, opts.Resize)
	}
	return d
}

// Inflate runs the DEFLATE block loop to completion and returns the
// decompressed bytes, or the first error encountered. On error, partial
// output is discarded: the caller gets a nil slice.
func (d *Decoder) Inflate() ([]byte, error) {
	for !d.bFinal {
		if err := d.decodeBlock(); err != nil {
			return nil, err
		}
	}
	return d.sink.finalize(), nil
}

// ReadTrailer aligns to the next byte boundary and reads n more bytes
// directly from the input, bypassing the DEFLATE bit stream. A caller that
// wraps a trailer after the compressed payload — as lib/zlib does with its
// Adler-32 checksum — calls this after Inflate returns, to read exactly the
// bytes RFC 1950 says immediately follow the compressed data. It fails with
// ErrTruncatedInput if fewer than n bytes remain.
func (d *Decoder) ReadTrailer(n int) ([]byte, error) {
	return d.br.readAlignedBytes(n)
}

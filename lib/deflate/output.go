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

// outputSink is the OutputBuffer capability the block loop and the LZ77
// expander write through. There are two implementations, adaptiveSink and
// windowedSink (§4.7), chosen once at Decoder construction so the hot
// literal/back-reference loop in expandBlock dispatches through a single
// interface value rather than switching on mode itself.
type outputSink interface {
	// totalWritten returns the number of bytes produced so far, across the
	// whole decode. The LZ77 expander checks a back-reference's distance
	// against this before asking the sink to resolve it.
	totalWritten() int

	// writeLiteral appends a single decoded literal byte.
	writeLiteral(b byte) error

	// writeBackref copies length bytes from distance bytes back in the
	// already-produced output, byte by byte, to the current write
	// position. The byte-by-byte order is required: overlapping copies
	// (distance < length) must repeat already-copied bytes, not the
	// pre-overlap source.
	writeBackref(distance, length int) error

	// writeRaw appends a stored block's raw bytes verbatim.
	writeRaw(p []byte) error

	// beginHuffmanBlock is called once per fixed or dynamic Huffman block,
	// before its symbols are decoded. consumedInput is the bit reader's
	// current input offset; minLen is the current literal/length table's
	// shortest code length. adaptiveSink uses both to estimate how much
	// more output is likely; windowedSink ignores them.
	beginHuffmanBlock(consumedInput int, minLen uint)

	// finalize returns the complete decoded output. It is called exactly
	// once, after the block loop has consumed the final block.
	finalize() []byte
}

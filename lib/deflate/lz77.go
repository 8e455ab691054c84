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

// The base values and extra-bit counts for the length (257..285) and
// distance (0..29) alphabets, exactly as RFC 1951 §3.2.5 mandates. Symbols
// 286 and 287 are reserved and never legitimately appear in a stream. The
// fixed litlen table (and a dynamic one with HLIT of 287 or 288) does assign
// them codes, so expandBlock bounds-checks the length index and rejects
// them with ErrInvalidHuffmanCode (see the open question recorded in
// DESIGN.md) rather than this table needing entries for them.
var (
	lengthBase = [29]int{
		3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
		35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
	}
	lengthExtra = [29]uint{
		0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
		3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
	}
	distBase = [30]int{
		1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
		257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
	}
	distExtra = [30]uint{
		0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
		7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
	}
)

// endOfBlock is the litlen alphabet's symbol 256.
const endOfBlock = 256

// expandBlock decodes literals and length/distance pairs with litLenTable
// and distTable until it reaches the end-of-block symbol, writing the
// results through sink. This is the LZ77Expander of the design: it is run
// once per fixed or dynamic Huffman block (stored blocks bypass it
// entirely, since they carry no Huffman-coded symbols).
func expandBlock(r *bitReader, sink outputSink, litLenTable, distTable *huffmanTable) error {
	for {
		sym, err := litLenTable.decodeSymbol(r)
		if err != nil {
			return err
		}

		if sym == endOfBlock {
			return nil
		}
		if sym < endOfBlock {
			if err := sink.writeLiteral(byte(sym)); err != nil {
				return err
			}
			continue
		}

		li := sym - (endOfBlock + 1)
		if li < 0 || li >= len(lengthBase) {
			return ErrInvalidHuffmanCode
		}
		extra, err := r.readBits(lengthExtra[li])
		if err != nil {
			return err
		}
		length := lengthBase[li] + int(extra)

		dsym, err := distTable.decodeSymbol(r)
		if err != nil {
			return err
		}
		if dsym < 0 || dsym >= len(distBase) {
			return ErrInvalidHuffmanCode
		}
		dextra, err := r.readBits(distExtra[dsym])
		if err != nil {
			return err
		}
		distance := distBase[dsym] + int(dextra)

		if distance > sink.totalWritten() {
			return ErrInvalidDistance
		}
		if err := sink.writeBackref(distance, length); err != nil {
			return err
		}
	}
}

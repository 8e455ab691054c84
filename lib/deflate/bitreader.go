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

// bitReader pulls bits LSB-first out of a byte slice. Bits are packed into
// bitBuf from the low end; the next bit to be consumed is always bit 0.
//
// bitBuf is 32 bits wide, which §9's design notes call out as sufficient: no
// single read ever needs more than 16 bits (the longest Huffman code is 15
// bits; the largest extra-bits read is 13 bits), so a refill never has to
// straddle more than 4 input bytes.
type bitReader struct {
	input []byte
	ip    int

	bitBuf uint32
	bitLen uint
}

// fill ensures at least n bits are available in bitBuf, loading whole bytes
// from input as needed. It never consumes more than one partial byte's worth
// of slack — callers are expected to call fill with n <= 25 so that bitLen
// never needs to exceed 32.
func (r *bitReader) fill(n uint) error {
	for r.bitLen < n {
		if r.ip >= len(r.input) {
			return ErrTruncatedInput
		}
		r.bitBuf |= uint32(r.input[r.ip]) << r.bitLen
		r.ip++
		r.bitLen += 8
	}
	return nil
}

// peekBits returns the next n bits (0 <= n <= 16) without consuming them.
func (r *bitReader) peekBits(n uint) (uint32, error) {
	if err := r.fill(n); err != nil {
		return 0, err
	}
	return r.bitBuf & ((uint32(1) << n) - 1), nil
}

// discardBits consumes n bits previously returned by peekBits. n must not
// exceed bitLen.
func (r *bitReader) discardBits(n uint) {
	r.bitBuf >>= n
	r.bitLen -= n
}

// readBits returns the next n bits (0 <= n <= 16) and consumes them.
func (r *bitReader) readBits(n uint) (uint32, error) {
	v, err := r.peekBits(n)
	if err != nil {
		return 0, err
	}
	r.discardBits(n)
	return v, nil
}

// alignToByte drops any pending bits so the next read starts at a byte
// boundary. Used before a stored block's LEN/NLEN header.
func (r *bitReader) alignToByte() {
	drop := r.bitLen % 8
	r.bitBuf >>= drop
	r.bitLen -= drop
}

// readByte reads one whole byte: from the bit buffer if it still holds any
// bits, otherwise directly from input. The caller must have called
// alignToByte first, so that any pending bits form whole bytes.
func (r *bitReader) readByte() (byte, error) {
	if r.bitLen != 0 {
		v := byte(r.bitBuf & 0xff)
		r.bitBuf >>= 8
		r.bitLen -= 8
		return v, nil
	}
	if r.ip >= len(r.input) {
		return 0, ErrTruncatedInput
	}
	b := r.input[r.ip]
	r.ip++
	return b, nil
}

// readRaw returns the next n bytes directly from input, bypassing the bit
// buffer. The caller must be at a byte boundary (bitLen == 0), which holds
// after alignToByte plus a whole number of readByte calls.
func (r *bitReader) readRaw(n int) ([]byte, error) {
	if r.ip+n > len(r.input) {
		return nil, ErrTruncatedInput
	}
	raw := r.input[r.ip : r.ip+n]
	r.ip += n
	return raw, nil
}

// readAlignedBytes aligns to a byte boundary and then reads n whole bytes,
// draining any bytes already loaded into the bit buffer before pulling new
// ones from input. Unlike readRaw, this is safe to call with pending,
// non-byte-aligned bits still buffered (e.g. right after the Huffman-coded
// end-of-block symbol of the final DEFLATE block), which is exactly the
// state lib/zlib finds the reader in when it goes to read the trailing
// Adler-32.
func (r *bitReader) readAlignedBytes(n int) ([]byte, error) {
	r.alignToByte()
	out := make([]byte, n)
	for i := range out {
		b, err := r.readByte()
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

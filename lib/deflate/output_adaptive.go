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

// adaptiveSink grows one contiguous buffer on demand. It never needs to
// concatenate chunks, but a pathological input (e.g. a literal/length table
// whose shortest code is short, on data that decodes mostly to literals) can
// make it over-allocate relative to the final size.
type adaptiveSink struct {
	buf    []byte
	op     int
	resize bool

	inputLen      int
	consumedInput int
	minLen        uint
}

func newAdaptiveSink(input []byte, blockSize int, resize bool) *adaptiveSink {
	initial := blockSize
	if initial < defaultBlockSize {
		initial = defaultBlockSize
	}
	return &adaptiveSink{
		buf:      make([]byte, initial),
		inputLen: len(input),
		minLen:   1,
		resize:   resize,
	}
}

func (s *adaptiveSink) totalWritten() int { return s.op }

func (s *adaptiveSink) beginHuffmanBlock(consumedInput int, minLen uint) {
	s.consumedInput = consumedInput
	if minLen > 0 {
		s.minLen = minLen
	}
}

// grow ensures at least needed more bytes fit past op, extending buf with
// either a doubling or a remaining-input estimate (§4.7).
func (s *adaptiveSink) grow(needed int) {
	if s.op+needed <= len(s.buf) {
		return
	}

	var newLen int
	if s.inputLen == 0 || s.consumedInput*2 < s.inputLen {
		// Less than half the input has been consumed: a doubling keeps
		// amortized cost low without needing to know anything about the
		// data's compressibility yet.
		newLen = len(s.buf) * 2
	} else {
		// More than half the input is behind us: extrapolate from how
		// compressible it has been so far. A code whose shortest length is
		// minLen bits can encode at most one symbol per minLen bits, and
		// each length symbol can expand to up to maxMatchLen bytes; halving
		// treats that as a pessimistic (not worst-case) estimate.
		remaining := s.inputLen - s.consumedInput
		estimate := (remaining / int(s.minLen)) / 2 * maxMatchLen
		newLen = len(s.buf) + estimate
	}

	if newLen < s.op+needed {
		newLen = s.op + needed
	}
	grown := make([]byte, newLen)
	copy(grown, s.buf[:s.op])
	s.buf = grown
}

func (s *adaptiveSink) writeLiteral(b byte) error {
	s.grow(1)
	s.buf[s.op] = b
	s.op++
	return nil
}

func (s *adaptiveSink) writeBackref(distance, length int) error {
	s.grow(length)
	to := s.op
	from := s.op - distance
	for k := 0; k < length; k++ {
		s.buf[to+k] = s.buf[from+k]
	}
	s.op += length
	return nil
}

func (s *adaptiveSink) writeRaw(p []byte) error {
	s.grow(len(p))
	copy(s.buf[s.op:], p)
	s.op += len(p)
	return nil
}

func (s *adaptiveSink) finalize() []byte {
	if s.resize {
		out := make([]byte, s.op)
		copy(out, s.buf[:s.op])
		return out
	}
	return s.buf[:s.op]
}

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

// windowedSink keeps a fixed-size working buffer: windowSize bytes of
// sliding-window history, plus room for roughly one block's worth of new
// output. Once that room is used up, the newly produced range is snapshotted
// into chunks and the trailing windowSize bytes are carried back to the
// front of the buffer, bounding peak working memory independent of the
// total output size.
//
// This carry-back-on-wrap shape is grounded on JoshVarga/blast's
// fixed-size output array and its own wrap-and-flush logic in decompress
// — generalized here to also preserve the last windowSize bytes across a
// flush, which blast's much smaller window (4096, versus its own 4096-byte
// maximum distance) never needs to do.
type windowedSink struct {
	buf       []byte
	op        int
	blockSize int
	chunks    [][]byte
	total     int
}

func newWindowedSink(blockSize int) *windowedSink {
	return &windowedSink{
		buf:       make([]byte, windowSize+blockSize+maxMatchLen),
		op:        windowSize,
		blockSize: blockSize,
	}
}

func (s *windowedSink) totalWritten() int { return s.total }

func (s *windowedSink) beginHuffmanBlock(consumedInput int, minLen uint) {
	// Windowed mode's buffer size does not depend on how compressible the
	// remaining input looks; nothing to record here.
}

// ensure makes room for n more bytes past op, flushing the working buffer
// (and, in the rare case of a single write larger than blockSize+
// maxMatchLen — e.g. a large stored block — growing its tail) as needed.
func (s *windowedSink) ensure(n int) {
	if s.op+n <= len(s.buf) {
		return
	}
	s.flush()
	if s.op+n > len(s.buf) {
		grown := make([]byte, windowSize+n)
		copy(grown, s.buf[:windowSize])
		s.buf = grown
	}
}

func (s *windowedSink) flush() {
	if s.op > windowSize {
		chunk := append([]byte(nil), s.buf[windowSize:s.op]...)
		s.chunks = append(s.chunks, chunk)
	}
	copy(s.buf[:windowSize], s.buf[s.op-windowSize:s.op])
	s.op = windowSize
}

func (s *windowedSink) writeLiteral(b byte) error {
	s.ensure(1)
	s.buf[s.op] = b
	s.op++
	s.total++
	return nil
}

func (s *windowedSink) writeBackref(distance, length int) error {
	s.ensure(length)
	to := s.op
	from := s.op - distance
	for k := 0; k < length; k++ {
		s.buf[to+k] = s.buf[from+k]
	}
	s.op += length
	s.total += length
	return nil
}

func (s *windowedSink) writeRaw(p []byte) error {
	s.ensure(len(p))
	copy(s.buf[s.op:], p)
	s.op += len(p)
	s.total += len(p)
	return nil
}

func (s *windowedSink) finalize() []byte {
	size := 0
	for _, c := range s.chunks {
		size += len(c)
	}
	tail := s.buf[windowSize:s.op]
	size += len(tail)

	out := make([]byte, 0, size)
	for _, c := range s.chunks {
		out = append(out, c...)
	}
	out = append(out, tail...)
	return out
}

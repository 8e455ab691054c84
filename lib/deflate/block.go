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

// codeOrder is the order in which the 19 code-length-alphabet bit lengths
// are stored in a dynamic Huffman block, per RFC 1951 §3.2.7.
var codeOrder = [19]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// decodeBlock reads one DEFLATE block header and dispatches to the
// matching parser. It sets d.bFinal when this was the last block.
func (d *Decoder) decodeBlock() error {
	bFinal, err := d.br.readBits(1)
	if err != nil {
		return err
	}
	d.bFinal = bFinal != 0

	btype, err := d.br.readBits(2)
	if err != nil {
		return err
	}

	switch btype {
	case 0:
		return d.decodeStoredBlock()
	case 1:
		litLen, dist := fixedTables()
		d.sink.beginHuffmanBlock(d.br.ip, litLen.minLen)
		return expandBlock(&d.br, d.sink, litLen, dist)
	case 2:
		litLen, dist, err := d.decodeDynamicTables()
		if err != nil {
			return err
		}
		d.sink.beginHuffmanBlock(d.br.ip, litLen.minLen)
		return expandBlock(&d.br, d.sink, litLen, dist)
	default:
		return ErrInvalidBlockType
	}
}

func (d *Decoder) decodeStoredBlock() error {
	d.br.alignToByte()

	var hdr [4]byte
	for i := range hdr {
		b, err := d.br.readByte()
		if err != nil {
			return err
		}
		hdr[i] = b
	}
	length := uint16(hdr[0]) | uint16(hdr[1])<<8
	nlength := uint16(hdr[2]) | uint16(hdr[3])<<8
	if nlength != ^length {
		return ErrInvalidStoredLength
	}

	raw, err := d.br.readRaw(int(length))
	if err != nil {
		return err
	}
	return d.sink.writeRaw(raw)
}

// decodeDynamicTables reads the HLIT/HDIST/HCLEN header, the code-length
// alphabet's own lengths, and then the combined literal/length + distance
// length vector that alphabet encodes, per RFC 1951 §3.2.7.
func (d *Decoder) decodeDynamicTables() (litLen, dist *huffmanTable, retErr error) {
	hlitRaw, err := d.br.readBits(5)
	if err != nil {
		return nil, nil, err
	}
	hlit := int(hlitRaw) + 257

	hdistRaw, err := d.br.readBits(5)
	if err != nil {
		return nil, nil, err
	}
	hdist := int(hdistRaw) + 1

	hclenRaw, err := d.br.readBits(4)
	if err != nil {
		return nil, nil, err
	}
	hclen := int(hclenRaw) + 4

	var clLengths [19]byte
	for i := 0; i < hclen; i++ {
		v, err := d.br.readBits(3)
		if err != nil {
			return nil, nil, err
		}
		clLengths[codeOrder[i]] = byte(v)
	}
	clTable := buildHuffmanTable(clLengths[:])

	total := hlit + hdist
	lengths := make([]byte, total)
	prev := byte(0)
	for i := 0; i < total; {
		sym, err := clTable.decodeSymbol(&d.br)
		if err != nil {
			return nil, nil, err
		}

		switch {
		case sym < 16:
			prev = byte(sym)
			lengths[i] = prev
			i++

		case sym == 16:
			if i == 0 {
				return nil, nil, ErrInvalidHuffmanCode
			}
			extra, err := d.br.readBits(2)
			if err != nil {
				return nil, nil, err
			}
			count := 3 + int(extra)
			if i+count > total {
				return nil, nil, ErrInvalidHuffmanCode
			}
			for ; count > 0; count-- {
				lengths[i] = prev
				i++
			}

		case sym == 17:
			extra, err := d.br.readBits(3)
			if err != nil {
				return nil, nil, err
			}
			count := 3 + int(extra)
			if i+count > total {
				return nil, nil, ErrInvalidHuffmanCode
			}
			for ; count > 0; count-- {
				lengths[i] = 0
				i++
			}
			prev = 0

		case sym == 18:
			extra, err := d.br.readBits(7)
			if err != nil {
				return nil, nil, err
			}
			count := 11 + int(extra)
			if i+count > total {
				return nil, nil, ErrInvalidHuffmanCode
			}
			for ; count > 0; count-- {
				lengths[i] = 0
				i++
			}
			prev = 0

		default:
			return nil, nil, ErrInvalidHuffmanCode
		}
	}

	litLen = buildHuffmanTable(lengths[:hlit])
	dist = buildHuffmanTable(lengths[hlit:])
	return litLen, dist, nil
}

package entropy

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/huff0"
)

// Block modes of the huffman frame.
const (
	blockRaw  byte = 0 // payload is the block itself
	blockRLE  byte = 1 // payload is the single repeated byte
	blockHuff byte = 2 // payload is a huff0 table followed by a 1X stream
)

// huffmanCoder splits the input into blocks of at most huff0.BlockSizeMax
// bytes. Each block is written as
//
//	mode (1 byte) | original length (uvarint) | payload length (uvarint) | payload
//
// Every block carries its own table.
type huffmanCoder struct{}

func (huffmanCoder) Name() string { return Huffman }

// Compress encodes src block by block, falling back to RLE or raw storage
// when huff0 reports the block is a single symbol or incompressible.
func (huffmanCoder) Compress(src []byte) ([]byte, error) {
	out := make([]byte, 0, len(src)/2+16)
	s := &huff0.Scratch{Reuse: huff0.ReusePolicyNone}

	for len(src) > 0 {
		n := min(len(src), huff0.BlockSizeMax)
		block := src[:n]
		src = src[n:]

		comp, _, err := huff0.Compress1X(block, s)
		switch {
		case err == nil:
			out = appendBlock(out, blockHuff, n, comp)
		case errors.Is(err, huff0.ErrUseRLE):
			out = appendBlock(out, blockRLE, n, block[:1])
		case errors.Is(err, huff0.ErrIncompressible):
			out = appendBlock(out, blockRaw, n, block)
		default:
			return nil, fmt.Errorf("entropy: huffman block: %w", err)
		}
	}
	return out, nil
}

// appendBlock writes one framed block. payload may alias scratch memory and
// is copied.
func appendBlock(out []byte, mode byte, n int, payload []byte) []byte {
	out = append(out, mode)
	out = binary.AppendUvarint(out, uint64(n))
	out = binary.AppendUvarint(out, uint64(len(payload)))
	return append(out, payload...)
}

// Decompress reverses Compress.
func (huffmanCoder) Decompress(src []byte) ([]byte, error) {
	var out []byte
	for len(src) > 0 {
		mode := src[0]
		src = src[1:]

		n, k := binary.Uvarint(src)
		if k <= 0 || n > huff0.BlockSizeMax {
			return nil, fmt.Errorf("huffman block length: %w", ErrCorrupt)
		}
		src = src[k:]
		size, k := binary.Uvarint(src)
		if k <= 0 || size > uint64(len(src)-k) {
			return nil, fmt.Errorf("huffman payload length: %w", ErrCorrupt)
		}
		src = src[k:]
		payload := src[:size]
		src = src[size:]

		switch mode {
		case blockRaw:
			if uint64(len(payload)) != n {
				return nil, fmt.Errorf("huffman raw block: %w", ErrCorrupt)
			}
			out = append(out, payload...)
		case blockRLE:
			if len(payload) != 1 {
				return nil, fmt.Errorf("huffman rle block: %w", ErrCorrupt)
			}
			for i := uint64(0); i < n; i++ {
				out = append(out, payload[0])
			}
		case blockHuff:
			s, remain, err := huff0.ReadTable(payload, nil)
			if err != nil {
				return nil, fmt.Errorf("huffman table: %v: %w", err, ErrCorrupt)
			}
			dec, err := s.Decoder().Decompress1X(make([]byte, 0, n), remain)
			if err != nil || uint64(len(dec)) != n {
				return nil, fmt.Errorf("huffman stream: %w", ErrCorrupt)
			}
			out = append(out, dec...)
		default:
			return nil, fmt.Errorf("huffman block mode %d: %w", mode, ErrCorrupt)
		}
	}
	return out, nil
}

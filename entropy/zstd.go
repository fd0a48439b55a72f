package entropy

import (
	"fmt"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

// zstdCoder writes one zstd frame. Encoder and decoder are created per call
// with concurrency 1, so no background goroutines outlive a call.
type zstdCoder struct{}

func (zstdCoder) Name() string { return Zstd }

func (zstdCoder) Compress(src []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1), zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, fmt.Errorf("entropy: zstd writer: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(src, make([]byte, 0, len(src)/2)), nil
}

func (zstdCoder) Decompress(src []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("entropy: zstd reader: %w", err)
	}
	defer dec.Close()
	out, err := dec.DecodeAll(src, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %v: %w", err, ErrCorrupt)
	}
	return out, nil
}

// s2Coder writes one s2 block.
type s2Coder struct{}

func (s2Coder) Name() string { return S2 }

func (s2Coder) Compress(src []byte) ([]byte, error) {
	return s2.EncodeBetter(nil, src), nil
}

func (s2Coder) Decompress(src []byte) ([]byte, error) {
	out, err := s2.Decode(nil, src)
	if err != nil {
		return nil, fmt.Errorf("s2: %v: %w", err, ErrCorrupt)
	}
	return out, nil
}

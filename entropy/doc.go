// Package entropy provides the byte-level compression pass applied to the
// serialized grammar text.
//
// When to use
//
//	Grammar serialization removes repeats; what is left is a token text with a
//	skewed byte distribution. An order-0 entropy coder squeezes that skew.
//	The pass is optional: every coder, including "none", must round-trip.
//
// Coders
//
//	huffman  klauspost/compress/huff0, blockwise, with raw and RLE fallbacks
//	zstd     klauspost/compress/zstd (dictionary-free, single frame)
//	s2       klauspost/compress/s2 (fast, modest ratio)
//	none     identity
//
// Tradeoffs
//
//	huffman is closest to the classic grammar-compressor setup and needs no
//	window; zstd usually wins on ratio for large tables; s2 is for speed.
package entropy

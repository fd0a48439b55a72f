// Package seqgram is grammar-based compression for nucleotide sequences:
// Sequitur grammar induction with reverse-complement matching, a textual
// grammar codec, and the stages that turn the grammar into a small archive.
//
// 🚀 What is seqgram?
//
//	A pipeline of small packages, each usable on its own:
//		• grammar:  incremental Sequitur; digram uniqueness and rule utility
//		            hold after every terminal; "GT" can reuse the rule for "AC"
//		• codec:    rule table + top-level stream, and the exact inverse
//		• entropy:  huffman (huff0), zstd, s2 or identity over the codec text
//		• archive:  msgpack container with schema version, ID and CRC-32
//		• fasta:    plain or gzip FASTA records in, wrapped FASTA out
//		• pipeline: all of the above per record, many records concurrently
//
// ✨ Why a grammar?
//
//   - Lossless: the grammar spells the input exactly
//   - Streaming: one pass, amortized O(1) work per terminal
//   - Both strands: a repeat on the reverse strand costs one reference
//
// Under the hood:
//
//	grammar/:  arena store, digram index, induction engine
//	codec/:    Serialize, Decode, Format
//	entropy/:  Coder registry
//	archive/:  Write, NewReader, Verify
//	fasta/:    Reader, Write
//	pipeline/: Encoder, EncodeRecords, DecodeArchives
//	config/:   TOML/YAML settings
//	logging/:  zap logger construction
//	cmd/seqz/: the command-line tool
//
// Quick start:
//
//	g := grammar.Build("ACGTACGT", grammar.WithComplement())
//	enc := codec.Serialize(g)
//	fmt.Print(enc) // 0: ... then one line per rule
//
// See each subpackage's doc.go for details.
package seqgram

// Package pipeline wires the stages of seqz together:
//
//	FASTA record → grammar.Build → codec.Serialize → entropy coder → archive
//
// and back. One Encoder may encode many records concurrently; every record
// gets its own grammar.Builder, since a grammar is built strictly in input
// order and cannot be split across goroutines.
package pipeline

// Package grammar infers a context-free grammar from a symbol sequence on the
// fly (the Sequitur algorithm), with an optional reverse-complement matching
// rule for nucleotide sequences.
//
// 🚀 What does it build?
//
//	Feeding "abcabc" yields
//	  S → R1 R1
//	  R1 → a b c
//	Every repeated digram (pair of adjacent symbols) is replaced by a rule,
//	and every rule is used at least twice. The grammar is a lossless,
//	usually much smaller, description of the input.
//
// ✨ Key features:
//   - incremental: one Append per terminal, amortized O(1) each
//   - digram uniqueness and rule utility restored after every terminal
//   - reverse-complement matching (WithComplement): "GT" matches an earlier
//     "AC" and is stored as a complement-oriented reference to the same rule
//   - arena storage with integer handles; no pointer aliasing
//   - one Builder per run; no package-level state, so independent runs may
//     proceed concurrently
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/seqgram/grammar"
//
//	b := grammar.NewBuilder(grammar.WithComplement())
//	g := b.Feed("ACGTACGT")
//	for _, r := range g.Rules() {
//	  fmt.Println(r, g.Body(r))
//	}
//
// Invariants:
//
//	Validate() reports reference-count and utility violations;
//	DuplicateDigrams() reports repeated digrams. Broken engine invariants
//	(a reference count below zero, expanding a rule that is still shared)
//	panic: the grammar cannot be repaired locally once they break.
//
// Complexity:
//
//   - Time:   O(n) expected for n terminals
//   - Memory: O(n) symbol records; handles are not recycled within a run
//
// See package codec for flattening a Grammar into a rule table and back.
package grammar

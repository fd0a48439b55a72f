// Package codec flattens a grammar into a numbered rule table plus a top-level
// token stream, and reverses that flattening to recover the sequence.
//
// 🚀 Wire format
//
//	Stream: the top rule (number 0) as tokens separated by single spaces.
//	Table:  one line per rule, numbered 1, 2, ... in breadth-first discovery
//	        order from the top rule. The top rule is never listed.
//
//	Token kinds:
//	  17     reference to table line 17
//	  17'    reference to the reverse complement of line 17
//	  other  one literal terminal, escaped when it collides with the above:
//	           ' '                → _
//	           '\n' '\t' '\r'     → \n \t \r
//	           0-9 ( ) _ \ '      → backslash + rune
//	           other space/control → \u{hex}
//
// ✨ Example
//
//	"abab"  → stream "1 1",  table "a b"
//	"ACGT"  → stream "1 1'", table "A C"   (with complement matching)
//
// ⚙️ Usage:
//
//	enc := codec.Serialize(g)
//	seq, err := codec.Decode(enc)
//	fmt.Print(enc) // human-readable dump with expansions
//
// Decoding does not touch the induction engine. Every table line is expanded
// at most once (memoized); cyclic and out-of-range references are reported as
// ErrMalformedTable.
package codec

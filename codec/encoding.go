package codec

import (
	"strings"

	"github.com/katalvlaran/seqgram/grammar"
)

// Encoding is a flattened grammar.
//
// Stream holds the tokens of the top rule. Table[i] holds the tokens of the
// rule numbered i+1.
type Encoding struct {
	Stream []string
	Table  [][]string
}

// Serialize flattens g.
//
// Implementation:
//   - Stage 1: number the rules in breadth-first discovery order from the top
//     rule (which is 0).
//   - Stage 2: render every body; terminals through Escape, references
//     through Reference.
//
// An empty grammar yields an empty stream and an empty table.
//
// Complexity: O(total body length).
func Serialize(g *grammar.Grammar) Encoding {
	rules := g.Rules()
	number := make(map[grammar.RuleID]int, len(rules))
	for i, r := range rules {
		number[r] = i
	}

	render := func(r grammar.RuleID) []string {
		body := g.Body(r)
		out := make([]string, len(body))
		for i, sym := range body {
			if sym.IsRule() {
				out[i] = Reference(number[sym.Rule], sym.Complement)
			} else {
				out[i] = Escape(sym.Terminal)
			}
		}
		return out
	}

	enc := Encoding{
		Stream: render(rules[0]),
		Table:  make([][]string, 0, len(rules)-1),
	}
	for _, r := range rules[1:] {
		enc.Table = append(enc.Table, render(r))
	}
	return enc
}

// StreamText returns the stream as wire text.
func (e Encoding) StreamText() string {
	return strings.Join(e.Stream, " ")
}

// TableText returns the table as wire text, one rule per line.
func (e Encoding) TableText() string {
	lines := make([]string, len(e.Table))
	for i, row := range e.Table {
		lines[i] = strings.Join(row, " ")
	}
	return strings.Join(lines, "\n")
}

// Parse reads the wire text produced by StreamText and TableText.
// Tokens are not validated here; Decode reports bad tokens and references.
// A single trailing newline on the table text is ignored.
func Parse(stream, table string) Encoding {
	enc := Encoding{Stream: strings.Fields(stream)}
	table = strings.TrimSuffix(table, "\n")
	if table == "" {
		return enc
	}
	for _, line := range strings.Split(table, "\n") {
		enc.Table = append(enc.Table, strings.Fields(line))
	}
	return enc
}

// Symbols returns the total number of tokens in the stream and the table.
func (e Encoding) Symbols() int {
	n := len(e.Stream)
	for _, row := range e.Table {
		n += len(row)
	}
	return n
}

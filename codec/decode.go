package codec

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/seqgram/grammar"
)

// Visitation state of a table line: white (not expanded), gray (on the
// expansion stack), black (expanded and memoized).
const (
	white = iota
	gray
	black
)

// decoder expands table lines on demand.
type decoder struct {
	table [][]string
	state []int
	memo  [][]rune
}

func newDecoder(table [][]string) *decoder {
	return &decoder{
		table: table,
		state: make([]int, len(table)),
		memo:  make([][]rune, len(table)),
	}
}

// Decode reconstructs the sequence encoded by enc.
//
// Implementation:
//   - Stage 1: expand the stream left to right.
//   - Stage 2: a reference expands its table line depth-first (memoized);
//     a complement reference reverse-complements the expansion.
//
// Errors:
//   - ErrMalformedTable for a reference outside 1..len(Table), a reference
//     cycle, or a referenced empty line.
//   - ErrUnsupportedComplement when a complement reference covers a terminal
//     outside A, C, G, T (either case).
//   - ErrBadToken for a token that cannot be parsed.
//
// Complexity: O(output length + table size).
func Decode(enc Encoding) ([]rune, error) {
	d := newDecoder(enc.Table)
	out := make([]rune, 0, len(enc.Stream))
	for i, tok := range enc.Stream {
		exp, err := d.token(tok)
		if err != nil {
			return nil, fmt.Errorf("stream token %d: %w", i, err)
		}
		out = append(out, exp...)
	}
	return out, nil
}

// DecodeString parses the wire text and decodes it.
func DecodeString(stream, table string) (string, error) {
	out, err := Decode(Parse(stream, table))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// token expands one token.
func (d *decoder) token(tok string) ([]rune, error) {
	t, err := parseToken(tok)
	if err != nil {
		return nil, err
	}
	if !t.ref {
		return []rune{t.lit}, nil
	}

	exp, err := d.line(t.rule)
	if err != nil {
		return nil, err
	}
	if !t.comp {
		return exp, nil
	}
	rc, err := grammar.ReverseComplement(exp)
	if errors.Is(err, grammar.ErrNotComplementable) {
		return nil, fmt.Errorf("rule %d: %w", t.rule, ErrUnsupportedComplement)
	}
	return rc, err
}

// line returns the memoized expansion of table line n (1-based).
func (d *decoder) line(n int) ([]rune, error) {
	if n < 1 || n > len(d.table) {
		return nil, fmt.Errorf("rule %d outside 1..%d: %w", n, len(d.table), ErrMalformedTable)
	}
	i := n - 1
	switch d.state[i] {
	case black:
		return d.memo[i], nil
	case gray:
		return nil, fmt.Errorf("rule %d references itself: %w", n, ErrMalformedTable)
	}
	if len(d.table[i]) == 0 {
		return nil, fmt.Errorf("rule %d is empty: %w", n, ErrMalformedTable)
	}

	d.state[i] = gray
	var out []rune
	for _, tok := range d.table[i] {
		exp, err := d.token(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, exp...)
	}
	d.state[i] = black
	d.memo[i] = out
	return out, nil
}

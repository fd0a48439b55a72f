package codec

import "fmt"

// Stats summarises the shape of an Encoding. For a serialized grammar the
// fields agree with the grammar's own Stats.
type Stats struct {
	Rules          int // table lines
	Symbols        int // tokens in the stream and the table
	ComplementRefs int // references in complement orientation
	Depth          int // longest reference chain below the stream
}

// Stats classifies every token of e and measures the reference structure
// without expanding it.
//
// Errors:
//   - ErrBadToken for a token that cannot be parsed.
//   - ErrMalformedTable for a reference outside 1..len(Table) or a cycle.
//
// Complexity: O(number of tokens).
func (e Encoding) Stats() (Stats, error) {
	st := Stats{Rules: len(e.Table), Symbols: e.Symbols()}

	stream, err := parseRow(e.Stream)
	if err != nil {
		return Stats{}, fmt.Errorf("stream: %w", err)
	}
	rows := make([][]token, len(e.Table))
	for i, row := range e.Table {
		if rows[i], err = parseRow(row); err != nil {
			return Stats{}, fmt.Errorf("rule %d: %w", i+1, err)
		}
	}
	for _, row := range append([][]token{stream}, rows...) {
		for _, t := range row {
			if t.ref && t.comp {
				st.ComplementRefs++
			}
		}
	}

	state := make([]int, len(rows))
	depth := make([]int, len(rows))
	var rowDepth func(row []token) (int, error)
	lineDepth := func(n int) (int, error) {
		if n < 1 || n > len(rows) {
			return 0, fmt.Errorf("rule %d outside 1..%d: %w", n, len(rows), ErrMalformedTable)
		}
		i := n - 1
		switch state[i] {
		case black:
			return depth[i], nil
		case gray:
			return 0, fmt.Errorf("rule %d references itself: %w", n, ErrMalformedTable)
		}
		state[i] = gray
		d, err := rowDepth(rows[i])
		if err != nil {
			return 0, err
		}
		state[i] = black
		depth[i] = d
		return d, nil
	}
	rowDepth = func(row []token) (int, error) {
		best := 0
		for _, t := range row {
			if !t.ref {
				continue
			}
			d, err := lineDepth(t.rule)
			if err != nil {
				return 0, err
			}
			best = max(best, d+1)
		}
		return best, nil
	}

	if st.Depth, err = rowDepth(stream); err != nil {
		return Stats{}, err
	}
	return st, nil
}

// parseRow parses every token of row.
func parseRow(row []string) ([]token, error) {
	out := make([]token, len(row))
	for i, tok := range row {
		t, err := parseToken(tok)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

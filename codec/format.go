package codec

import (
	"fmt"
	"strings"
)

// Format renders enc for reading: one "N: tokens" line per rule, the top rule
// first, each table rule followed by its expansion.
//
//	0: 1 1
//	1: a b    ab
//
// Errors:
//   - any Decode error met while expanding a table line.
func Format(enc Encoding) (string, error) {
	d := newDecoder(enc.Table)

	var sb strings.Builder
	fmt.Fprintf(&sb, "0: %s\n", enc.StreamText())
	for i, row := range enc.Table {
		exp, err := d.line(i + 1)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "%d: %s    %s\n", i+1, strings.Join(row, " "), escapeAll(exp))
	}
	return sb.String(), nil
}

// String returns Format(e), or the bare token lines when e does not decode.
func (e Encoding) String() string {
	if s, err := Format(e); err == nil {
		return s
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "0: %s\n", e.StreamText())
	for i, row := range e.Table {
		fmt.Fprintf(&sb, "%d: %s\n", i+1, strings.Join(row, " "))
	}
	return sb.String()
}

// escapeAll renders a terminal run with every terminal escaped.
func escapeAll(seq []rune) string {
	var sb strings.Builder
	for _, t := range seq {
		sb.WriteString(Escape(t))
	}
	return sb.String()
}

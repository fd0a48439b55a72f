package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// complementMark suffixes a reference token in complement orientation.
const complementMark = '\''

// Escape renders terminal t as a literal token.
func Escape(t rune) string {
	switch t {
	case ' ':
		return "_"
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	case '(', ')', '_', '\\', complementMark:
		return `\` + string(t)
	}
	if t >= '0' && t <= '9' {
		return `\` + string(t)
	}
	if unicode.IsSpace(t) || unicode.IsControl(t) {
		return fmt.Sprintf(`\u{%x}`, t)
	}
	return string(t)
}

// Reference renders a reference to table line n.
func Reference(n int, complement bool) string {
	s := strconv.Itoa(n)
	if complement {
		s += string(complementMark)
	}
	return s
}

// token is one parsed stream or table token: a literal terminal, or a
// reference to a table line when ref is set.
type token struct {
	lit  rune
	ref  bool
	rule int
	comp bool
}

// parseToken classifies and unescapes tok.
func parseToken(tok string) (token, error) {
	if tok == "" {
		return token{}, fmt.Errorf("empty token: %w", ErrBadToken)
	}
	if isDigit(tok[0]) {
		digits, comp := strings.CutSuffix(tok, string(complementMark))
		if !allDigits(digits) {
			return token{}, fmt.Errorf("reference %q: %w", tok, ErrBadToken)
		}
		n, err := strconv.Atoi(digits)
		if errors.Is(err, strconv.ErrRange) {
			return token{}, fmt.Errorf("reference %q out of range: %w", tok, ErrMalformedTable)
		}
		if err != nil {
			return token{}, fmt.Errorf("reference %q: %w", tok, ErrBadToken)
		}
		return token{ref: true, rule: n, comp: comp}, nil
	}

	t, err := Unescape(tok)
	if err != nil {
		return token{}, err
	}
	return token{lit: t}, nil
}

// Unescape returns the terminal a literal token stands for.
//
// Errors:
//   - ErrBadToken when tok is empty, holds more than one terminal, or uses
//     an unknown escape.
func Unescape(tok string) (rune, error) {
	if tok == "_" {
		return ' ', nil
	}
	if !strings.HasPrefix(tok, `\`) {
		t, size := utf8.DecodeRuneInString(tok)
		if size != len(tok) || (t == utf8.RuneError && size <= 1) || isDigit(tok[0]) {
			return 0, fmt.Errorf("literal %q: %w", tok, ErrBadToken)
		}
		return t, nil
	}

	body := tok[1:]
	switch body {
	case "n":
		return '\n', nil
	case "t":
		return '\t', nil
	case "r":
		return '\r', nil
	case "(", ")", "_", `\`, string(complementMark):
		return rune(body[0]), nil
	}
	if len(body) == 1 && isDigit(body[0]) {
		return rune(body[0]), nil
	}
	if hex, ok := strings.CutPrefix(body, "u{"); ok {
		if hex, ok = strings.CutSuffix(hex, "}"); ok {
			v, err := strconv.ParseUint(hex, 16, 32)
			if err == nil && utf8.ValidRune(rune(v)) {
				return rune(v), nil
			}
		}
	}
	return 0, fmt.Errorf("escape %q: %w", tok, ErrBadToken)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return s != ""
}

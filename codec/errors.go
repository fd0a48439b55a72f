package codec

import "errors"

var (
	// ErrMalformedTable indicates a reference to a rule number outside the
	// table, a reference cycle between table lines, or an empty table line.
	ErrMalformedTable = errors.New("codec: malformed rule table")

	// ErrUnsupportedComplement indicates a complement reference whose
	// expansion contains a terminal without a complement.
	ErrUnsupportedComplement = errors.New("codec: complement of non-nucleotide terminal")

	// ErrBadToken indicates a token that is neither a reference nor a single
	// (possibly escaped) terminal.
	ErrBadToken = errors.New("codec: bad token")
)

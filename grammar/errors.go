// SPDX-License-Identifier: MIT
// Package grammar: sentinel error set.
//
// Public methods return these sentinels (possibly wrapped with context via
// fmt.Errorf("...: %w", ErrX)); callers match them with errors.Is.
// Broken engine invariants are programmer errors and panic instead, see
// invariantf.

package grammar

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownRule indicates a RuleID that is not a live rule of this grammar.
	ErrUnknownRule = errors.New("grammar: unknown rule")

	// ErrTopRule indicates an operation that is not defined on the top rule.
	ErrTopRule = errors.New("grammar: operation not allowed on the top rule")

	// ErrInvariant is returned by Validate when the grammar violates the
	// rule-utility or reference-count invariants.
	ErrInvariant = errors.New("grammar: invariant violated")

	// ErrNotComplementable indicates a terminal outside the complementable
	// alphabet was met where a reverse complement was required.
	ErrNotComplementable = errors.New("grammar: terminal has no complement")
)

// invariantf panics with a grammar-prefixed message. The grammar cannot be
// repaired locally once the substitution protocol is broken.
func invariantf(format string, args ...any) {
	panic(fmt.Sprintf("grammar: "+format, args...))
}

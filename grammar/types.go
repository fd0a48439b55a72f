// SPDX-License-Identifier: MIT
// Package grammar: value types shared by the store, the digram index and the
// induction engine.
//
// Handles:
//   - RuleID names a rule for the lifetime of one Builder run. IDs are
//     assigned from a monotonic counter and never re-derived from content.
//   - symID is an arena handle; prev/next links are handles, never pointers.
//     Handles are never recycled within a run, so a handle captured before a
//     cascade of repairs can be re-inspected safely afterwards.

package grammar

// RuleID identifies a rule within one Builder run.
// The zero value NoRule marks a terminal Symbol.
type RuleID int32

// NoRule is the RuleID carried by terminal symbols.
const NoRule RuleID = 0

// symID is a handle into the symbol arena.
type symID int32

// nilSym marks an unset prev/next link.
const nilSym symID = -1

// Symbol is the read-only view of one entry of a rule body.
//
// A Symbol is either a terminal (Rule == NoRule, Terminal holds the value) or
// a reference to another rule (Rule != NoRule). Complement is meaningful only
// for references: it marks a use of the reverse complement of the rule body.
type Symbol struct {
	Terminal   rune
	Rule       RuleID
	Complement bool
}

// IsRule reports whether s references a rule.
func (s Symbol) IsRule() bool { return s.Rule != NoRule }

// node is one arena record.
//
// For a guard node, rule holds the owning rule. For a reference, rule holds
// the referenced rule and comp its orientation. For a terminal, rule is NoRule.
type node struct {
	prev, next symID
	term       rune
	rule       RuleID
	comp       bool
	dead       bool
}

// ruleRec is the bookkeeping for one rule.
type ruleRec struct {
	guard symID
	refs  int // number of live symbols referencing this rule

	// complementable is fixed at creation: a rule's expansion never changes
	// over its lifetime, so neither does whether it can be complemented.
	complementable bool
	dead           bool
}

// symKey is the content identity of a symbol: a terminal value, or a rule
// identity plus orientation.
type symKey struct {
	term rune
	rule RuleID
	comp bool
}

// digram is the signature of an ordered pair of adjacent symbols.
type digram struct {
	left, right symKey
}

// Stats summarises the shape of a grammar and the work done to build it.
type Stats struct {
	// Input is the number of terminals fed so far.
	Input int

	// Rules is the number of rules reachable from the top rule, top excluded.
	Rules int

	// Symbols is the total number of body symbols over all reachable rules,
	// top included.
	Symbols int

	// ComplementRefs counts complement-oriented references in reachable bodies.
	ComplementRefs int

	// Depth is the longest chain of nested references starting at the top rule.
	Depth int

	// Created, Reused and Expanded count engine events over the whole run.
	Created  int
	Reused   int
	Expanded int
}

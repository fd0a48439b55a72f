// SPDX-License-Identifier: MIT
// Package grammar: the induction engine.
//
// Builder folds an input sequence into a grammar one terminal at a time.
// After every Append the grammar satisfies:
//   - digram uniqueness: no digram appears twice (overlapping runs aside);
//   - rule utility: every rule other than the top is referenced at least twice.
//
// Both invariants are global, so every repair triggered by one terminal
// (processMatch, substitute, expand) completes before the next is taken.

package grammar

import "go.uber.org/zap"

// Builder owns the store and digram index of one construction run.
// A Builder is not safe for concurrent use; independent runs may use
// independent Builders concurrently.
type Builder struct {
	nodes []node
	rules []ruleRec
	index digramIndex
	top   RuleID
	opts  options
	log   *zap.Logger

	length   int  // terminals appended
	sealed   bool // set by Grammar.Inline
	created  int
	reused   int
	expanded int
}

// NewBuilder returns a Builder with an empty top rule.
//
// Complexity: O(capacity) for presizing, O(1) otherwise.
func NewBuilder(opts ...Option) *Builder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := &Builder{
		nodes: make([]node, 0, 2*o.capacity+1),
		// Slot 0 is NoRule; real rules start at 1.
		rules: make([]ruleRec, 1, o.capacity/4+2),
		index: newDigramIndex(o.capacity),
		opts:  o,
		log:   o.logger,
	}
	b.top = b.newRule()
	return b
}

// Build is shorthand for NewBuilder(opts...).Feed(seq).
func Build(seq string, opts ...Option) *Grammar {
	return NewBuilder(append([]Option{WithCapacity(len(seq))}, opts...)...).Feed(seq)
}

// Append adds one terminal to the end of the top rule and restores the
// grammar invariants.
//
// Implementation:
//   - Stage 1: link a new terminal after the last symbol of the top rule.
//   - Stage 2: check the digram it completes with its predecessor.
//
// Append panics once the grammar has been reshaped with Grammar.Inline.
//
// Complexity: amortized O(1).
func (b *Builder) Append(t rune) {
	if b.sealed {
		invariantf("append after Inline")
	}
	s := b.alloc(node{term: t})
	b.insertAfter(b.last(b.top), s)
	b.length++
	b.check(b.nodes[s].prev)
}

// Feed appends every rune of seq and returns the grammar built so far.
func (b *Builder) Feed(seq string) *Grammar {
	for _, t := range seq {
		b.Append(t)
	}
	return b.Grammar()
}

// FeedRunes appends every terminal of seq and returns the grammar built so far.
func (b *Builder) FeedRunes(seq []rune) *Grammar {
	for _, t := range seq {
		b.Append(t)
	}
	return b.Grammar()
}

// Grammar returns a view of the grammar built so far. The view shares the
// Builder's store; appending more terminals updates it.
func (b *Builder) Grammar() *Grammar {
	return &Grammar{b: b}
}

// witness looks up d and confirms the recorded witness still spells d.
// An entry left behind by a relink is treated as absent.
func (b *Builder) witness(d digram) (symID, bool) {
	w, ok := b.index.lookup(d)
	if !ok {
		return nilSym, false
	}
	n := b.nodes[w]
	if n.dead || n.next == nilSym || b.isGuard(w) || b.isGuard(n.next) || b.keyOf(w) != d {
		return nilSym, false
	}
	return w, true
}

// check examines the digram (s, s.next). A first sighting is indexed; a
// repeat is resolved through processMatch.
//
// Resolution order:
//   - forward witness, unless it overlaps s (runs like "aaa") → plain match;
//   - otherwise a reverse-complement witness, when matching is enabled → complement match.
//
// Returns true when the digram was already known (matched or overlapping),
// false when it was newly indexed or is not a digram at all.
func (b *Builder) check(s symID) bool {
	next := b.nodes[s].next
	if b.isGuard(s) || b.isGuard(next) {
		return false
	}

	fwd := b.keyOf(s)
	if w, ok := b.witness(fwd); ok {
		if w == s {
			return false
		}
		if b.nodes[w].next != s && w != next {
			b.processMatch(s, w, false)
		}
		return true
	}

	if b.opts.complement {
		if rc, ok := b.reverseComplement(fwd); ok {
			if w, ok := b.witness(rc); ok && w != s {
				if b.nodes[w].next != s && w != next {
					b.processMatch(s, w, true)
				}
				return true
			}
		}
	}

	b.index.insert(fwd, s)
	return false
}

// processMatch resolves the digram at s against the earlier occurrence at w.
//
// Implementation:
//   - Stage 1 (reuse): when w's digram is the whole body of a rule other than
//     the top, replace the digram at s with a reference to that rule.
//   - Stage 1 (create): otherwise copy w's digram into a new rule, replace w's
//     occurrence with a plain reference and s's occurrence with a reference in
//     the matched orientation, then index the new body's digram.
//   - Stage 2: expand any rule referenced from the first or last body symbol
//     that is now used only once.
func (b *Builder) processMatch(s, w symID, complement bool) {
	var (
		r     RuleID
		edges [2]symID
	)
	wPrev := b.nodes[w].prev
	wNext := b.nodes[w].next

	if b.isGuard(wPrev) && b.isGuard(b.nodes[wNext].next) && b.nodes[wPrev].rule != b.top {
		r = b.nodes[wPrev].rule
		edges = [2]symID{w, wNext}
		b.substitute(s, r, complement)
		b.reused++
		if ce := b.log.Check(zap.DebugLevel, "rule reused"); ce != nil {
			ce.Write(zap.Int32("rule", int32(r)), zap.Bool("complement", complement))
		}
	} else {
		left, right := b.valueOf(w), b.valueOf(wNext)
		r = b.newRule()
		b.rules[r].complementable = b.keyComplementable(left) && b.keyComplementable(right)
		b.insertAfter(b.last(r), b.newSymbol(left))
		b.insertAfter(b.last(r), b.newSymbol(right))
		edges = [2]symID{b.first(r), b.last(r)}

		b.substitute(w, r, false)
		b.substitute(s, r, complement)

		if !b.rules[r].dead {
			f := b.first(r)
			if b.nodes[f].next != b.rules[r].guard {
				b.index.insert(b.keyOf(f), f)
			}
		}
		b.created++
		if ce := b.log.Check(zap.DebugLevel, "rule created"); ce != nil {
			ce.Write(zap.Int32("rule", int32(r)), zap.Bool("complement", complement))
		}
	}

	b.pruneUnderused(r, edges)
}

// pruneUnderused expands references whose rule is now used exactly once.
// Candidates are the edges of r's body as they are now, plus the edge symbols
// captured before substitution: when a cascade already spliced r away, those
// symbols live on inside the rule that absorbed it.
func (b *Builder) pruneUnderused(r RuleID, captured [2]symID) {
	candidates := make([]symID, 0, 4)
	if !b.rules[r].dead {
		candidates = append(candidates, b.first(r), b.last(r))
	}
	candidates = append(candidates, captured[0], captured[1])

	for _, c := range candidates {
		n := b.nodes[c]
		if n.dead || n.rule == NoRule || b.isGuard(c) {
			continue
		}
		if b.rules[n.rule].refs == 1 {
			if ce := b.log.Check(zap.DebugLevel, "rule expanded"); ce != nil {
				ce.Write(zap.Int32("rule", int32(n.rule)), zap.Bool("complement", n.comp))
			}
			b.expand(c)
		}
	}
}

// substitute replaces the digram starting at s with one reference to r, then
// re-validates both splice points.
func (b *Builder) substitute(s symID, r RuleID, complement bool) {
	prev := b.nodes[s].prev
	b.remove(b.nodes[prev].next)
	b.remove(b.nodes[prev].next)

	ref := b.newSymbol(symKey{rule: r, comp: complement})
	b.insertAfter(prev, ref)

	if !b.check(prev) {
		b.check(b.nodes[prev].next)
	}
}

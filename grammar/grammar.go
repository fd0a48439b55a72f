// SPDX-License-Identifier: MIT
// Package grammar: the Grammar view.
//
// A Grammar is the top rule plus every rule reachable from it. It reads the
// Builder's store directly; there is no copy. Inline is the only mutating
// method and exists to reshape a finished grammar; it seals the Builder.

package grammar

import (
	"errors"
	"fmt"
)

// Grammar is a view of the rules induced by a Builder.
type Grammar struct {
	b *Builder
}

// Top returns the ID of the top rule.
func (g *Grammar) Top() RuleID { return g.b.top }

// Len returns the number of terminals fed into the grammar.
func (g *Grammar) Len() int { return g.b.length }

// ComplementMatching reports whether the grammar was built with
// reverse-complement matching enabled.
func (g *Grammar) ComplementMatching() bool { return g.b.opts.complement }

// live reports whether r names a rule that still exists.
func (g *Grammar) live(r RuleID) bool {
	return r > NoRule && int(r) < len(g.b.rules) && !g.b.rules[r].dead
}

// Body returns the symbols of rule r in order, or nil when r is not a live rule.
//
// Complexity: O(|body|).
func (g *Grammar) Body(r RuleID) []Symbol {
	if !g.live(r) {
		return nil
	}
	b := g.b
	guard := b.rules[r].guard
	var out []Symbol
	for s := b.nodes[guard].next; s != guard; s = b.nodes[s].next {
		n := b.nodes[s]
		out = append(out, Symbol{Terminal: n.term, Rule: n.rule, Complement: n.comp})
	}
	return out
}

// References returns the reference count of r, or 0 when r is not live.
func (g *Grammar) References(r RuleID) int {
	if !g.live(r) {
		return 0
	}
	return g.b.rules[r].refs
}

// Rules returns the top rule followed by every reachable rule in
// breadth-first discovery order.
//
// Complexity: O(total body length).
func (g *Grammar) Rules() []RuleID {
	order := []RuleID{g.b.top}
	seen := map[RuleID]bool{g.b.top: true}
	for i := 0; i < len(order); i++ {
		for _, sym := range g.Body(order[i]) {
			if sym.IsRule() && !seen[sym.Rule] {
				seen[sym.Rule] = true
				order = append(order, sym.Rule)
			}
		}
	}
	return order
}

// Expand returns the terminal sequence the grammar encodes.
func (g *Grammar) Expand() []rune {
	out, _ := g.Expansion(g.b.top)
	return out
}

// Expansion returns the terminals rule r stands for.
// Errors:
//   - ErrUnknownRule when r is not live.
func (g *Grammar) Expansion(r RuleID) ([]rune, error) {
	if !g.live(r) {
		return nil, fmt.Errorf("expansion of %d: %w", r, ErrUnknownRule)
	}
	memo := make(map[RuleID][]rune)
	return g.expand(r, memo), nil
}

// expand flattens r, caching plain expansions per rule.
func (g *Grammar) expand(r RuleID, memo map[RuleID][]rune) []rune {
	if out, ok := memo[r]; ok {
		return out
	}
	var out []rune
	for _, sym := range g.Body(r) {
		if !sym.IsRule() {
			out = append(out, sym.Terminal)
			continue
		}
		sub := g.expand(sym.Rule, memo)
		if sym.Complement {
			rc, err := ReverseComplement(sub)
			if err != nil {
				invariantf("complement reference to rule %d: %v", sym.Rule, err)
			}
			sub = rc
		}
		out = append(out, sub...)
	}
	memo[r] = out
	return out
}

// String returns the encoded sequence.
func (g *Grammar) String() string { return string(g.Expand()) }

// Stats summarises the grammar shape and the run's engine events.
//
// Complexity: O(total body length).
func (g *Grammar) Stats() Stats {
	st := Stats{
		Input:    g.b.length,
		Created:  g.b.created,
		Reused:   g.b.reused,
		Expanded: g.b.expanded,
	}
	rules := g.Rules()
	st.Rules = len(rules) - 1
	for _, r := range rules {
		for _, sym := range g.Body(r) {
			st.Symbols++
			if sym.IsRule() && sym.Complement {
				st.ComplementRefs++
			}
		}
	}
	st.Depth = g.depth(g.b.top, make(map[RuleID]int))
	return st
}

// depth returns the longest reference chain below r.
func (g *Grammar) depth(r RuleID, memo map[RuleID]int) int {
	if d, ok := memo[r]; ok {
		return d
	}
	best := 0
	for _, sym := range g.Body(r) {
		if sym.IsRule() {
			if d := g.depth(sym.Rule, memo) + 1; d > best {
				best = d
			}
		}
	}
	memo[r] = best
	return best
}

// Validate checks the structural invariants over every reachable rule:
//   - stored reference counts equal the references actually present;
//   - every rule other than the top is referenced at least twice;
//   - no rule other than the top has an empty body.
//
// Returns nil or an error wrapping ErrInvariant that lists every violation.
func (g *Grammar) Validate() error {
	rules := g.Rules()
	counted := make(map[RuleID]int, len(rules))
	for _, r := range rules {
		for _, sym := range g.Body(r) {
			if sym.IsRule() {
				counted[sym.Rule]++
			}
		}
	}

	var errs []error
	for _, r := range rules {
		if r == g.b.top {
			continue
		}
		stored := g.b.rules[r].refs
		if stored != counted[r] {
			errs = append(errs, fmt.Errorf("%w: rule %d stores %d references, found %d",
				ErrInvariant, r, stored, counted[r]))
		}
		if counted[r] < 2 {
			errs = append(errs, fmt.Errorf("%w: rule %d referenced %d time(s)", ErrInvariant, r, counted[r]))
		}
		if g.b.first(r) == g.b.rules[r].guard {
			errs = append(errs, fmt.Errorf("%w: rule %d has an empty body", ErrInvariant, r))
		}
	}
	return errors.Join(errs...)
}

// DuplicateDigrams returns how many digram occurrences repeat an earlier one
// across all reachable rule bodies. Overlapping occurrences inside a run of
// equal symbols ("aaa") count once.
func (g *Grammar) DuplicateDigrams() int {
	b := g.b
	seen := make(map[digram]symID)
	dups := 0
	for _, r := range g.Rules() {
		guard := b.rules[r].guard
		for s := b.nodes[guard].next; s != guard; s = b.nodes[s].next {
			next := b.nodes[s].next
			if next == guard {
				break
			}
			d := b.keyOf(s)
			if w, ok := seen[d]; ok {
				if b.nodes[w].next != s {
					dups++
				}
				continue
			}
			seen[d] = s
		}
	}
	return dups
}

// Inline replaces every reference to r with a copy of r's body (the reverse
// complement for complement-oriented references) and discards r.
// The encoded sequence is unchanged; the grammar only changes shape.
//
// Inlined copies repeat digrams on purpose, so they are not indexed and the
// Builder is sealed: any later Append panics.
//
// Errors:
//   - ErrTopRule when r is the top rule.
//   - ErrUnknownRule when r is not a live rule.
//
// Complexity: O(refs(r)·|body(r)|) plus one scan of the reachable grammar.
func (g *Grammar) Inline(r RuleID) error {
	if r == g.b.top {
		return ErrTopRule
	}
	if !g.live(r) {
		return fmt.Errorf("inline %d: %w", r, ErrUnknownRule)
	}
	b := g.b

	var refs []symID
	for _, owner := range g.Rules() {
		guard := b.rules[owner].guard
		for s := b.nodes[guard].next; s != guard; s = b.nodes[s].next {
			if b.nodes[s].rule == r {
				refs = append(refs, s)
			}
		}
	}
	if len(refs) == 0 {
		return fmt.Errorf("inline %d: %w", r, ErrUnknownRule)
	}

	b.sealed = true
	body := g.Body(r)
	for _, s := range refs[:len(refs)-1] {
		at := b.nodes[s].prev
		for _, k := range orientedBody(body, b.nodes[s].comp) {
			c := b.newSymbol(k)
			b.insertAfter(at, c)
			at = c
		}
		b.remove(s)
	}
	b.expand(refs[len(refs)-1])
	return nil
}

// orientedBody returns the content identities of body, reverse complemented
// when comp is set. Callers only pass complementable bodies with comp set.
func orientedBody(body []Symbol, comp bool) []symKey {
	out := make([]symKey, len(body))
	for i, sym := range body {
		k := symKey{term: sym.Terminal, rule: sym.Rule, comp: sym.Complement}
		if !comp {
			out[i] = k
			continue
		}
		if k.rule == NoRule {
			c, ok := Complement(k.term)
			if !ok {
				invariantf("complement copy of terminal %q", k.term)
			}
			k.term = c
		} else {
			k.comp = !k.comp
		}
		out[len(body)-1-i] = k
	}
	return out
}

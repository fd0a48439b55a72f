// SPDX-License-Identifier: MIT
// Package grammar: the symbol/rule store.
//
// Every rule body is a circular doubly-linked list threaded through the symbol
// arena and anchored by a guard node. The guard is an ordinary arena entry;
// whether a node is a guard is derived (see isGuard), not stored.
//
// Index upkeep lives here: join evicts the digram a link change destroys and
// re-registers overlapping triples, remove evicts the digram starting at the
// removed symbol, expand registers the digrams at both ends of the spliced-in body.

package grammar

// alloc appends n to the arena and returns its handle.
// A reference increments the referenced rule's count.
func (b *Builder) alloc(n node) symID {
	id := symID(len(b.nodes))
	n.prev, n.next = nilSym, nilSym
	b.nodes = append(b.nodes, n)
	if n.rule != NoRule {
		b.rules[n.rule].refs++
	}
	return id
}

// newSymbol allocates an unlinked symbol with content k.
func (b *Builder) newSymbol(k symKey) symID {
	return b.alloc(node{term: k.term, rule: k.rule, comp: k.comp})
}

// newRule allocates a rule with an empty body: a guard linked to itself.
func (b *Builder) newRule() RuleID {
	id := RuleID(len(b.rules))
	b.rules = append(b.rules, ruleRec{})
	// The guard carries its owning rule, but does not count as a reference.
	g := symID(len(b.nodes))
	b.nodes = append(b.nodes, node{prev: nilSym, next: nilSym, rule: id})
	b.rules[id].guard = g
	b.join(g, g)
	return id
}

// first returns the first body symbol of r (the guard when r is empty).
func (b *Builder) first(r RuleID) symID { return b.nodes[b.rules[r].guard].next }

// last returns the last body symbol of r (the guard when r is empty).
func (b *Builder) last(r RuleID) symID { return b.nodes[b.rules[r].guard].prev }

// isGuard reports whether s is the guard of the rule it carries: the owning
// rule's first symbol links back to s.
func (b *Builder) isGuard(s symID) bool {
	r := b.nodes[s].rule
	if r == NoRule {
		return false
	}
	return b.nodes[b.first(r)].prev == s
}

// valueOf returns the content identity of s.
func (b *Builder) valueOf(s symID) symKey {
	n := &b.nodes[s]
	return symKey{term: n.term, rule: n.rule, comp: n.comp}
}

// keyOf returns the signature of the digram (s, s.next).
func (b *Builder) keyOf(s symID) digram {
	return digram{left: b.valueOf(s), right: b.valueOf(b.nodes[s].next)}
}

// join links left and right as neighbours.
//
// Implementation:
//   - Stage 1: if left was linked, evict the digram (left, left.next).
//   - Stage 2: overlapping triples. In a run like "aaa" only one of the two
//     equal digrams is indexed; when the indexed one is broken up the other
//     must be registered so it is not forgotten. On the right that is
//     (right, right.next), on the left (left.prev, left).
//   - Stage 3: relink.
//
// Complexity: O(1).
func (b *Builder) join(left, right symID) {
	if b.nodes[left].next != nilSym {
		b.deleteDigram(left)

		r := b.nodes[right]
		if r.prev != nilSym && r.next != nilSym &&
			b.valueOf(right) == b.valueOf(r.prev) &&
			b.valueOf(right) == b.valueOf(r.next) {
			b.index.insert(b.keyOf(right), right)
		}

		l := b.nodes[left]
		if l.prev != nilSym && l.next != nilSym &&
			b.valueOf(left) == b.valueOf(l.next) &&
			b.valueOf(left) == b.valueOf(l.prev) && !b.isGuard(l.prev) {
			b.index.insert(b.keyOf(l.prev), l.prev)
		}
	}
	b.nodes[left].next = right
	b.nodes[right].prev = left
}

// insertAfter links s immediately after anchor.
func (b *Builder) insertAfter(anchor, s symID) {
	b.join(s, b.nodes[anchor].next)
	b.join(anchor, s)
}

// remove unlinks s, evicts the digram it started and releases its reference.
// The node stays in the arena, marked dead.
func (b *Builder) remove(s symID) {
	n := b.nodes[s]
	b.join(n.prev, n.next)
	if !b.isGuard(s) {
		b.deleteDigram(s)
		if n.rule != NoRule {
			b.release(n.rule)
		}
	}
	b.nodes[s].dead = true
}

// release drops one reference to r.
func (b *Builder) release(r RuleID) {
	b.rules[r].refs--
	if b.rules[r].refs < 0 {
		invariantf("rule %d reference count below zero", r)
	}
}

// deleteDigram evicts (s, s.next) when s is its recorded witness.
// Guard-adjacent pairs are never digrams.
func (b *Builder) deleteDigram(s symID) {
	if b.isGuard(s) || b.isGuard(b.nodes[s].next) {
		return
	}
	d := b.keyOf(s)
	if w, ok := b.index.lookup(d); ok && w == s {
		b.index.remove(d)
	}
}

// expand replaces s, the last remaining reference to its rule, with the
// rule's body and discards the rule.
//
// Implementation:
//   - Stage 1: assert s is the sole reference; flip the body first when s is
//     complement-oriented.
//   - Stage 2: evict (s, s.next), splice first..last between s.prev and s.next.
//   - Stage 3: register both splice digrams, (left, first) and (last, right).
//   - Stage 4: mark s, the guard and the rule dead.
//
// Complexity: O(1), or O(|body|) for a complement-oriented reference.
func (b *Builder) expand(s symID) {
	n := b.nodes[s]
	r := n.rule
	if r == NoRule || b.rules[r].refs != 1 {
		invariantf("expand of symbol %d: rule %d is not singly referenced", s, r)
	}
	if n.comp {
		b.flip(r)
	}

	left, right := n.prev, n.next
	first, last := b.first(r), b.last(r)

	b.deleteDigram(s)
	b.join(left, first)
	b.join(last, right)
	if !b.isGuard(left) {
		b.index.insert(b.keyOf(left), left)
	}
	if !b.isGuard(right) {
		b.index.insert(b.keyOf(last), last)
	}

	guard := b.rules[r].guard
	b.nodes[s].dead = true
	b.nodes[guard].dead = true
	b.rules[r].refs = 0
	b.rules[r].dead = true
	b.expanded++
}

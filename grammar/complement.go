// SPDX-License-Identifier: MIT
// Package grammar: nucleotide complement rules.
//
// The complement mapping is defined over A, C, G, T in both cases (lower case
// is how soft-masked FASTA marks repeats). Every other terminal, including N
// and run markers, takes part in plain matching only.

package grammar

// Complement returns the Watson–Crick partner of t and whether t has one.
func Complement(t rune) (rune, bool) {
	switch t {
	case 'A':
		return 'T', true
	case 'T':
		return 'A', true
	case 'C':
		return 'G', true
	case 'G':
		return 'C', true
	case 'a':
		return 't', true
	case 't':
		return 'a', true
	case 'c':
		return 'g', true
	case 'g':
		return 'c', true
	}
	return t, false
}

// Complementable reports whether t belongs to the complementable alphabet.
func Complementable(t rune) bool {
	_, ok := Complement(t)
	return ok
}

// ReverseComplement returns the reverse complement of seq.
// It fails with ErrNotComplementable on the first terminal without a partner.
func ReverseComplement(seq []rune) ([]rune, error) {
	out := make([]rune, len(seq))
	for i, t := range seq {
		c, ok := Complement(t)
		if !ok {
			return nil, ErrNotComplementable
		}
		out[len(seq)-1-i] = c
	}
	return out, nil
}

// complementKey returns the content identity of the complement of k.
// A terminal maps to its partner; a reference toggles its orientation and is
// only defined when the referenced rule is complementable.
func (b *Builder) complementKey(k symKey) (symKey, bool) {
	if k.rule == NoRule {
		c, ok := Complement(k.term)
		return symKey{term: c}, ok
	}
	if !b.rules[k.rule].complementable {
		return symKey{}, false
	}
	return symKey{rule: k.rule, comp: !k.comp}, true
}

// reverseComplement returns the signature of the reverse complement of d:
// both members complemented and their order swapped.
func (b *Builder) reverseComplement(d digram) (digram, bool) {
	left, ok := b.complementKey(d.right)
	if !ok {
		return digram{}, false
	}
	right, ok := b.complementKey(d.left)
	if !ok {
		return digram{}, false
	}
	return digram{left: left, right: right}, true
}

// keyComplementable reports whether a symbol with content k may appear
// inside a complementable rule.
func (b *Builder) keyComplementable(k symKey) bool {
	if k.rule == NoRule {
		return Complementable(k.term)
	}
	return b.rules[k.rule].complementable
}

// flip rewrites the body of r in place into its reverse complement: links are
// reversed, terminals complemented, references toggled. Body digrams are
// evicted before the rewrite and registered again afterwards.
//
// Used when the sole remaining reference to r is complement-oriented and r is
// about to be spliced into that position.
func (b *Builder) flip(r RuleID) {
	guard := b.rules[r].guard

	// Stage 1: evict every body digram keyed on the old content.
	for s := b.nodes[guard].next; s != guard; s = b.nodes[s].next {
		if next := b.nodes[s].next; next != guard {
			d := b.keyOf(s)
			if w, ok := b.index.lookup(d); ok && w == s {
				b.index.remove(d)
			}
		}
	}

	// Stage 2: reverse the circular list, guard included, and complement
	// every body symbol.
	s := guard
	for {
		n := &b.nodes[s]
		n.prev, n.next = n.next, n.prev
		if s != guard {
			if n.rule == NoRule {
				c, ok := Complement(n.term)
				if !ok {
					invariantf("complement reference to rule %d covers terminal %q", r, n.term)
				}
				n.term = c
			} else {
				n.comp = !n.comp
			}
		}
		s = n.next
		if s == guard {
			break
		}
	}

	// Stage 3: register the flipped digrams.
	for s := b.nodes[guard].next; s != guard; s = b.nodes[s].next {
		if next := b.nodes[s].next; next != guard {
			b.index.insert(b.keyOf(s), s)
		}
	}
}

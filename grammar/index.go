// SPDX-License-Identifier: MIT
// Package grammar: the digram index.
//
// The index maps a digram signature to one witness: the left member of an
// occurrence of that digram. It is plain key-value storage. Deciding when an
// entry is inserted or evicted belongs to the store (join, remove, expand)
// and the engine (check, processMatch).

package grammar

// digramIndex is scoped to exactly one Builder.
type digramIndex map[digram]symID

// newDigramIndex allocates an index sized for roughly n digrams.
func newDigramIndex(n int) digramIndex {
	return make(digramIndex, n)
}

// lookup returns the witness recorded for d, if any.
func (ix digramIndex) lookup(d digram) (symID, bool) {
	s, ok := ix[d]
	return s, ok
}

// insert records s as the witness of d, replacing any previous witness.
func (ix digramIndex) insert(d digram, s symID) {
	ix[d] = s
}

// remove forgets d.
func (ix digramIndex) remove(d digram) {
	delete(ix, d)
}

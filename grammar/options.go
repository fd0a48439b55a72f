// SPDX-License-Identifier: MIT
// Package grammar: functional options for NewBuilder.
//
// Contract:
//   - Options are functional (type Option func(*options)).
//   - Nil arguments have no effect; defaults stay in place.
//   - No hidden globals; every run gets its own options value.

package grammar

import "go.uber.org/zap"

// Option customizes a Builder before the first terminal is appended.
type Option func(*options)

// options holds the per-run settings of a Builder.
type options struct {
	complement bool        // enable reverse-complement digram matching
	capacity   int         // expected input length, used to presize the arena
	logger     *zap.Logger // debug events: rule created / reused / expanded
}

// defaultOptions returns plain Sequitur with no logging.
func defaultOptions() options {
	return options{logger: zap.NewNop()}
}

// WithComplement enables reverse-complement matching: a digram also matches
// an earlier digram that spells its reverse complement (A↔T, C↔G), and the
// later occurrence is replaced by a complement-oriented reference.
func WithComplement() Option {
	return func(o *options) { o.complement = true }
}

// WithCapacity presizes the symbol arena for an input of about n terminals.
// Non-positive values are ignored.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithLogger attaches a logger for debug-level engine events.
// Passing nil has no effect.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

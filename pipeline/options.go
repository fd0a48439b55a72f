package pipeline

import (
	"fmt"

	"github.com/katalvlaran/seqgram/config"
	"github.com/katalvlaran/seqgram/entropy"
	"go.uber.org/zap"
)

// Option customizes an Encoder.
type Option func(*Encoder)

// WithComplement toggles reverse-complement matching.
func WithComplement(on bool) Option {
	return func(e *Encoder) { e.complement = on }
}

// WithCapacity presizes every grammar for about n terminals.
// Non-positive values size each grammar from its own record.
func WithCapacity(n int) Option {
	return func(e *Encoder) { e.capacity = n }
}

// WithCoder selects the entropy coder. Passing nil has no effect.
func WithCoder(c entropy.Coder) Option {
	return func(e *Encoder) {
		if c != nil {
			e.coder = c
		}
	}
}

// WithJobs bounds the records encoded concurrently by EncodeRecords and
// DecodeArchives. Non-positive values mean GOMAXPROCS.
func WithJobs(n int) Option {
	return func(e *Encoder) { e.jobs = n }
}

// WithLogger attaches a logger. Passing nil has no effect.
func WithLogger(l *zap.Logger) Option {
	return func(e *Encoder) {
		if l != nil {
			e.log = l
		}
	}
}

// FromConfig returns the options described by cfg.
func FromConfig(cfg *config.Config) ([]Option, error) {
	coder, err := entropy.Lookup(cfg.CoderName())
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return []Option{
		WithComplement(cfg.Engine.Complement),
		WithCapacity(cfg.Engine.Capacity),
		WithCoder(coder),
		WithJobs(cfg.Batch.Jobs),
	}, nil
}

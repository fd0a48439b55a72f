// Package config loads seqz settings from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/katalvlaran/seqgram/entropy"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalid indicates a setting outside its allowed range.
	ErrInvalid = errors.New("config: invalid setting")

	// ErrFormat indicates a config file extension other than .toml, .yaml or .yml.
	ErrFormat = errors.New("config: unsupported file format")
)

// Config holds all seqz settings.
type Config struct {
	Engine  EngineConfig  `toml:"engine" yaml:"engine"`
	Entropy EntropyConfig `toml:"entropy" yaml:"entropy"`
	Batch   BatchConfig   `toml:"batch" yaml:"batch"`
	FASTA   FASTAConfig   `toml:"fasta" yaml:"fasta"`
	Log     LogConfig     `toml:"log" yaml:"log"`
}

// EngineConfig configures grammar induction.
type EngineConfig struct {
	Complement bool `toml:"complement" yaml:"complement"` // reverse-complement matching
	Capacity   int  `toml:"capacity" yaml:"capacity"`     // expected terminals per record; 0 = size of the record
}

// EntropyConfig configures the byte-level pass over the serialized grammar.
type EntropyConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Coder   string `toml:"coder" yaml:"coder"` // huffman, zstd, s2, none
}

// BatchConfig configures multi-record encoding.
type BatchConfig struct {
	Jobs int `toml:"jobs" yaml:"jobs"` // concurrent records; 0 = GOMAXPROCS
}

// FASTAConfig configures FASTA input and output.
type FASTAConfig struct {
	Width    int  `toml:"width" yaml:"width"`         // output line width
	KeepCase bool `toml:"keep_case" yaml:"keep_case"` // keep soft-masked residues
}

// LogConfig configures logging.
type LogConfig struct {
	Level    string `toml:"level" yaml:"level"`       // debug, info, warn, error
	Encoding string `toml:"encoding" yaml:"encoding"` // console or json
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Engine:  EngineConfig{Complement: true},
		Entropy: EntropyConfig{Enabled: true, Coder: entropy.Huffman},
		FASTA:   FASTAConfig{Width: 60},
		Log:     LogConfig{Level: "info", Encoding: "console"},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
// Environment overrides (SEQZ_LOG_LEVEL, SEQZ_CODER) are applied last.
//
// Errors:
//   - ErrFormat for an unknown extension.
//   - ErrInvalid (wrapped) for unknown TOML keys.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			meta, err := toml.DecodeFile(path, cfg)
			if err != nil {
				return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
			}
			if undecoded := meta.Undecoded(); len(undecoded) > 0 {
				return nil, fmt.Errorf("%s: unknown key %q: %w", path, undecoded[0].String(), ErrInvalid)
			}
		case ".yaml", ".yml":
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
			dec := yaml.NewDecoder(bytes.NewReader(data))
			dec.KnownFields(true)
			err = dec.Decode(cfg)
			var typeErr *yaml.TypeError
			switch {
			case err == nil, errors.Is(err, io.EOF):
			case errors.As(err, &typeErr):
				return nil, fmt.Errorf("%s: %s: %w", path, strings.Join(typeErr.Errors, "; "), ErrInvalid)
			default:
				return nil, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
			}
		default:
			return nil, fmt.Errorf("%s: %w", path, ErrFormat)
		}
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides lets the environment win over the file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SEQZ_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("SEQZ_CODER"); v != "" {
		c.Entropy.Coder = v
	}
}

// Validate reports every setting outside its allowed range, each wrapping ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	if c.Engine.Capacity < 0 {
		errs = append(errs, fmt.Errorf("%w: engine.capacity %d < 0", ErrInvalid, c.Engine.Capacity))
	}
	if !slices.Contains(entropy.Names(), c.Entropy.Coder) {
		errs = append(errs, fmt.Errorf("%w: entropy.coder %q (valid: %v)", ErrInvalid, c.Entropy.Coder, entropy.Names()))
	}
	if c.Batch.Jobs < 0 {
		errs = append(errs, fmt.Errorf("%w: batch.jobs %d < 0", ErrInvalid, c.Batch.Jobs))
	}
	if c.FASTA.Width < 0 {
		errs = append(errs, fmt.Errorf("%w: fasta.width %d < 0", ErrInvalid, c.FASTA.Width))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level))
	}
	if c.Log.Encoding != "console" && c.Log.Encoding != "json" {
		errs = append(errs, fmt.Errorf("%w: log.encoding %q (valid: console, json)", ErrInvalid, c.Log.Encoding))
	}
	return errors.Join(errs...)
}

// CoderName returns the effective entropy coder: "none" when the pass is disabled.
func (c *Config) CoderName() string {
	if !c.Entropy.Enabled {
		return entropy.None
	}
	return c.Entropy.Coder
}

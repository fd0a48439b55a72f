package entropy

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownCoder indicates a coder name that is not registered.
	ErrUnknownCoder = errors.New("entropy: unknown coder")

	// ErrCorrupt indicates compressed input that cannot be decoded.
	ErrCorrupt = errors.New("entropy: corrupt input")
)

// Coder is a lossless byte transform.
// Implementations are safe for concurrent use.
type Coder interface {
	// Name is the registry key, recorded in archives.
	Name() string
	Compress(src []byte) ([]byte, error)
	Decompress(src []byte) ([]byte, error)
}

// Coder names.
const (
	Huffman = "huffman"
	Zstd    = "zstd"
	S2      = "s2"
	None    = "none"
)

var registry = map[string]Coder{
	Huffman: huffmanCoder{},
	Zstd:    zstdCoder{},
	S2:      s2Coder{},
	None:    noneCoder{},
}

// Lookup returns the coder registered under name.
func Lookup(name string) (Coder, error) {
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownCoder)
	}
	return c, nil
}

// Names returns the registered coder names in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// noneCoder passes bytes through unchanged.
type noneCoder struct{}

func (noneCoder) Name() string { return None }

func (noneCoder) Compress(src []byte) ([]byte, error) {
	return append([]byte(nil), src...), nil
}

func (noneCoder) Decompress(src []byte) ([]byte, error) {
	return append([]byte(nil), src...), nil
}

package archive

import (
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"fortio.org/safecast"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// SchemaVersion is incremented whenever the Archive layout changes.
const SchemaVersion uint16 = 1

var (
	// ErrSchema indicates an archive written by another schema version.
	ErrSchema = errors.New("archive: unsupported schema version")

	// ErrChecksum indicates a decoded sequence that does not match the
	// stored checksum.
	ErrChecksum = errors.New("archive: checksum mismatch")

	// ErrTooLarge indicates a size that does not fit the archive header.
	ErrTooLarge = errors.New("archive: size out of range")
)

// Archive holds one encoded sequence.
type Archive struct {
	Schema uint16    `msgpack:"schema"`
	ID     uuid.UUID `msgpack:"id"`

	// Record identity, copied from the FASTA header when there is one.
	Name        string `msgpack:"name"`
	Description string `msgpack:"desc,omitempty"`

	// Grammar shape.
	Complement bool   `msgpack:"complement"`
	Length     uint32 `msgpack:"length"` // terminals in the original sequence
	Rules      uint32 `msgpack:"rules"`

	// Payloads, compressed with Coder.
	Coder      string `msgpack:"coder"`
	Stream     []byte `msgpack:"stream"`
	Table      []byte `msgpack:"table"`
	StreamSize uint32 `msgpack:"stream_size"` // before compression
	TableSize  uint32 `msgpack:"table_size"`

	Checksum uint32 `msgpack:"crc32"` // IEEE CRC-32 of the original sequence
}

// Header is the subset of an Archive describing the encoded sequence.
type Header struct {
	Name        string
	Description string
	Complement  bool
	Length      int
	Rules       int
	Coder       string
}

// New assembles an archive for seq from its compressed payloads.
//
// Errors:
//   - ErrTooLarge when a length does not fit in 32 bits.
func New(h Header, seq []byte, stream, table []byte, streamSize, tableSize int) (*Archive, error) {
	a := &Archive{
		Schema:      SchemaVersion,
		ID:          uuid.New(),
		Name:        h.Name,
		Description: h.Description,
		Complement:  h.Complement,
		Coder:       h.Coder,
		Stream:      stream,
		Table:       table,
		Checksum:    Checksum(seq),
	}
	var err error
	if a.Length, err = narrow("length", h.Length); err != nil {
		return nil, err
	}
	if a.Rules, err = narrow("rules", h.Rules); err != nil {
		return nil, err
	}
	if a.StreamSize, err = narrow("stream size", streamSize); err != nil {
		return nil, err
	}
	if a.TableSize, err = narrow("table size", tableSize); err != nil {
		return nil, err
	}
	return a, nil
}

func narrow(what string, n int) (uint32, error) {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return 0, fmt.Errorf("%s %d: %w", what, n, ErrTooLarge)
	}
	return v, nil
}

// Checksum returns the IEEE CRC-32 of seq.
func Checksum(seq []byte) uint32 {
	return crc32.ChecksumIEEE(seq)
}

// Verify reports whether seq matches the stored checksum and length.
func (a *Archive) Verify(seq []byte, terminals int) error {
	n, err := safecast.Conv[uint32](terminals)
	if err != nil || n != a.Length || Checksum(seq) != a.Checksum {
		return fmt.Errorf("%s: %w", a.Name, ErrChecksum)
	}
	return nil
}

// Write encodes a to w.
func Write(w io.Writer, a *Archive) error {
	if err := msgpack.NewEncoder(w).Encode(a); err != nil {
		return fmt.Errorf("archive: encode: %w", err)
	}
	return nil
}

// Reader decodes a sequence of archives written back to back.
type Reader struct {
	dec *msgpack.Decoder
}

// NewReader returns a Reader over r. The underlying decoder buffers, so r
// should not be read by anyone else afterwards.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: msgpack.NewDecoder(r)}
}

// Next decodes the next archive. It returns io.EOF when r is exhausted.
//
// Errors:
//   - ErrSchema when the archive was written by another schema version.
func (r *Reader) Next() (*Archive, error) {
	var a Archive
	if err := r.dec.Decode(&a); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("archive: decode: %w", err)
	}
	if a.Schema != SchemaVersion {
		return nil, fmt.Errorf("schema %d, want %d: %w", a.Schema, SchemaVersion, ErrSchema)
	}
	return &a, nil
}

// ReadAll decodes every archive in r.
func ReadAll(r io.Reader) ([]*Archive, error) {
	ar := NewReader(r)
	var out []*Archive
	for {
		a, err := ar.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, a)
	}
}

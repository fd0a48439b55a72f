// Package fasta reads and writes FASTA records, transparently accepting
// gzip-compressed input.
package fasta

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// DefaultWidth is the line width Write uses when none is given.
const DefaultWidth = 60

var (
	// ErrNoHeader indicates sequence data before the first '>' line.
	ErrNoHeader = errors.New("fasta: sequence data before header")

	// ErrEmptyID indicates a header line with no identifier.
	ErrEmptyID = errors.New("fasta: header without identifier")
)

// Record is one FASTA entry.
type Record struct {
	ID          string // header up to the first space
	Description string // rest of the header line, trimmed
	Seq         []byte // residues, no line breaks
}

// Option configures a Reader.
type Option func(*options)

type options struct {
	keepCase bool
}

// WithKeepCase keeps lower-case (soft-masked) residues as they are.
// By default residues are upper-cased.
func WithKeepCase() Option {
	return func(o *options) { o.keepCase = true }
}

// Reader yields the records of a FASTA stream one at a time.
type Reader struct {
	br     *bufio.Reader
	gz     *gzip.Reader
	opts   options
	header []byte // pending header of the next record
	line   int
	done   bool
}

// NewReader returns a Reader over r. Input starting with the gzip magic
// bytes is decompressed.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	rd := &Reader{opts: o}
	br := bufio.NewReader(r)
	if magic, _ := br.Peek(2); len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("fasta: gzip: %w", err)
		}
		rd.gz = gz
		br = bufio.NewReader(gz)
	}
	rd.br = br
	return rd, nil
}

// Close releases the gzip stream, if any. It does not close the underlying reader.
func (r *Reader) Close() error {
	if r.gz != nil {
		return r.gz.Close()
	}
	return nil
}

// Next returns the next record, or io.EOF after the last one.
//
// Errors:
//   - ErrNoHeader when residues appear before the first header.
//   - ErrEmptyID when a header has no identifier.
func (r *Reader) Next() (*Record, error) {
	var seq []byte
	for !r.done {
		line, err := r.br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("fasta: line %d: %w", r.line+1, err)
		}
		if errors.Is(err, io.EOF) {
			r.done = true
		}
		if len(line) > 0 {
			r.line++
		}
		line = bytes.TrimRight(line, "\r\n \t")

		switch {
		case len(line) == 0 || line[0] == ';':
			continue
		case line[0] == '>':
			if r.header != nil {
				rec, recErr := r.record(seq)
				r.header = append(r.header[:0], line[1:]...)
				return rec, recErr
			}
			r.header = append([]byte{}, line[1:]...)
		default:
			if r.header == nil {
				return nil, fmt.Errorf("line %d: %w", r.line, ErrNoHeader)
			}
			seq = append(seq, line...)
		}
	}
	if r.header == nil {
		return nil, io.EOF
	}
	rec, err := r.record(seq)
	r.header = nil
	return rec, err
}

// record builds a Record from the pending header and seq.
func (r *Reader) record(seq []byte) (*Record, error) {
	fields := bytes.Fields(r.header)
	if len(fields) == 0 {
		return nil, fmt.Errorf("line %d: %w", r.line, ErrEmptyID)
	}
	id := string(fields[0])
	desc := string(bytes.TrimSpace(bytes.TrimPrefix(bytes.TrimSpace(r.header), fields[0])))
	if !r.opts.keepCase {
		seq = bytes.ToUpper(seq)
	}
	if seq == nil {
		seq = []byte{}
	}
	return &Record{ID: id, Description: desc, Seq: seq}, nil
}

// ReadAll returns every record of r.
func ReadAll(r io.Reader, opts ...Option) ([]Record, error) {
	rd, err := NewReader(r, opts...)
	if err != nil {
		return nil, err
	}
	defer rd.Close()

	var out []Record
	for {
		rec, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, *rec)
	}
}

// Write writes rec to w, wrapping residues at width columns
// (DefaultWidth when width <= 0).
func Write(w io.Writer, rec Record, width int) error {
	if width <= 0 {
		width = DefaultWidth
	}
	bw := bufio.NewWriter(w)
	bw.WriteByte('>')
	bw.WriteString(rec.ID)
	if rec.Description != "" {
		bw.WriteByte(' ')
		bw.WriteString(rec.Description)
	}
	bw.WriteByte('\n')
	for seq := rec.Seq; len(seq) > 0; {
		n := min(width, len(seq))
		bw.Write(seq[:n])
		bw.WriteByte('\n')
		seq = seq[n:]
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("fasta: write %s: %w", rec.ID, err)
	}
	return nil
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"unicode/utf8"

	"github.com/katalvlaran/seqgram/archive"
	"github.com/katalvlaran/seqgram/codec"
	"github.com/katalvlaran/seqgram/entropy"
	"github.com/katalvlaran/seqgram/fasta"
	"github.com/katalvlaran/seqgram/grammar"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrSize indicates a payload whose decompressed size differs from the
// size recorded in the archive.
var ErrSize = errors.New("pipeline: payload size mismatch")

// Encoder turns FASTA records into archives and back.
// An Encoder is immutable after New and safe for concurrent use.
type Encoder struct {
	complement bool
	capacity   int
	coder      entropy.Coder
	jobs       int
	log        *zap.Logger
}

// New returns an Encoder. Defaults: complement matching on, huffman coder,
// GOMAXPROCS jobs, no logging.
func New(opts ...Option) *Encoder {
	huff, _ := entropy.Lookup(entropy.Huffman)
	e := &Encoder{
		complement: true,
		coder:      huff,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.jobs <= 0 {
		e.jobs = runtime.GOMAXPROCS(0)
	}
	return e
}

// Result is the outcome of encoding one record.
type Result struct {
	Archive  *archive.Archive
	Encoding codec.Encoding
	Stats    grammar.Stats
}

// Encode builds the grammar of rec, serializes it, compresses both texts and
// packs them into an archive.
func (e *Encoder) Encode(rec fasta.Record) (*Result, error) {
	log := e.log.With(zap.String("record", rec.ID))

	opts := []grammar.Option{grammar.WithLogger(log.Named("grammar"))}
	if e.complement {
		opts = append(opts, grammar.WithComplement())
	}
	if e.capacity > 0 {
		opts = append(opts, grammar.WithCapacity(e.capacity))
	}
	g := grammar.Build(string(rec.Seq), opts...)
	enc := codec.Serialize(g)
	stats := g.Stats()

	streamText, tableText := []byte(enc.StreamText()), []byte(enc.TableText())
	stream, err := e.coder.Compress(streamText)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: stream: %w", rec.ID, err)
	}
	table, err := e.coder.Compress(tableText)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: table: %w", rec.ID, err)
	}

	a, err := archive.New(archive.Header{
		Name:        rec.ID,
		Description: rec.Description,
		Complement:  e.complement,
		Length:      stats.Input,
		Rules:       stats.Rules,
		Coder:       e.coder.Name(),
	}, rec.Seq, stream, table, len(streamText), len(tableText))
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", rec.ID, err)
	}

	log.Info("record encoded",
		zap.Int("terminals", stats.Input),
		zap.Int("rules", stats.Rules),
		zap.Int("symbols", stats.Symbols),
		zap.Int("complement_refs", stats.ComplementRefs),
		zap.Int("bytes", len(stream)+len(table)),
		zap.String("coder", e.coder.Name()))
	return &Result{Archive: a, Encoding: enc, Stats: stats}, nil
}

// Encoding returns the serialized grammar held in a, without expanding it.
func (e *Encoder) Encoding(a *archive.Archive) (codec.Encoding, error) {
	coder, err := entropy.Lookup(a.Coder)
	if err != nil {
		return codec.Encoding{}, fmt.Errorf("pipeline: %s: %w", a.Name, err)
	}
	stream, err := inflate(coder, a.Stream, a.StreamSize)
	if err != nil {
		return codec.Encoding{}, fmt.Errorf("pipeline: %s: stream: %w", a.Name, err)
	}
	table, err := inflate(coder, a.Table, a.TableSize)
	if err != nil {
		return codec.Encoding{}, fmt.Errorf("pipeline: %s: table: %w", a.Name, err)
	}
	return codec.Parse(string(stream), string(table)), nil
}

// inflate decompresses p and checks its size.
func inflate(c entropy.Coder, p []byte, size uint32) ([]byte, error) {
	out, err := c.Decompress(p)
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) != uint64(size) {
		return nil, fmt.Errorf("got %d bytes, want %d: %w", len(out), size, ErrSize)
	}
	return out, nil
}

// Decode restores the record held in a and verifies its checksum.
func (e *Encoder) Decode(a *archive.Archive) (fasta.Record, error) {
	enc, err := e.Encoding(a)
	if err != nil {
		return fasta.Record{}, err
	}
	seq, err := codec.Decode(enc)
	if err != nil {
		return fasta.Record{}, fmt.Errorf("pipeline: %s: %w", a.Name, err)
	}
	out := []byte(string(seq))
	if err := a.Verify(out, utf8.RuneCount(out)); err != nil {
		return fasta.Record{}, err
	}

	e.log.Debug("record decoded", zap.String("record", a.Name), zap.Int("terminals", len(seq)))
	return fasta.Record{ID: a.Name, Description: a.Description, Seq: out}, nil
}

// EncodeRecords encodes recs concurrently, at most jobs at a time.
// Results are in input order. The first error cancels the remaining work.
func (e *Encoder) EncodeRecords(ctx context.Context, recs []fasta.Record) ([]*Result, error) {
	results := make([]*Result, len(recs))
	err := e.each(ctx, len(recs), func(i int) error {
		r, err := e.Encode(recs[i])
		results[i] = r
		return err
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// DecodeArchives decodes as concurrently, at most jobs at a time.
// Records are in input order.
func (e *Encoder) DecodeArchives(ctx context.Context, as []*archive.Archive) ([]fasta.Record, error) {
	recs := make([]fasta.Record, len(as))
	err := e.each(ctx, len(as), func(i int) error {
		r, err := e.Decode(as[i])
		recs[i] = r
		return err
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// each runs fn(0..n-1) under an errgroup bounded by e.jobs.
func (e *Encoder) each(ctx context.Context, n int, fn func(i int) error) error {
	if n == 0 {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(e.jobs, n))

	for i := 0; i < n; i++ {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return fn(i)
		})
	}
	return g.Wait()
}

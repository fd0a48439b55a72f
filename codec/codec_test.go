package codec_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/katalvlaran/seqgram/codec"
	"github.com/katalvlaran/seqgram/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertEncoding compares encodings structurally, treating nil and empty alike.
func assertEncoding(t *testing.T, want, got codec.Encoding) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("encoding mismatch (-want +got):\n%s", diff)
	}
}

// TestSerialize_Scenarios covers plain reuse, complement reuse and no repeats.
func TestSerialize_Scenarios(t *testing.T) {
	cases := []struct {
		name string
		seq  string
		opts []grammar.Option
		want codec.Encoding
	}{
		{
			name: "plain reuse",
			seq:  "abab",
			want: codec.Encoding{Stream: []string{"1", "1"}, Table: [][]string{{"a", "b"}}},
		},
		{
			name: "complement reuse",
			seq:  "ACGT",
			opts: []grammar.Option{grammar.WithComplement()},
			want: codec.Encoding{Stream: []string{"1", "1'"}, Table: [][]string{{"A", "C"}}},
		},
		{
			name: "no repeats",
			seq:  "abcdef",
			want: codec.Encoding{Stream: []string{"a", "b", "c", "d", "e", "f"}},
		},
		{
			name: "empty",
			seq:  "",
			want: codec.Encoding{},
		},
		{
			name: "nested then expanded",
			seq:  "abcabc",
			want: codec.Encoding{Stream: []string{"1", "1"}, Table: [][]string{{"a", "b", "c"}}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			enc := codec.Serialize(grammar.Build(tc.seq, tc.opts...))
			assertEncoding(t, tc.want, enc)

			out, err := codec.Decode(enc)
			require.NoError(t, err)
			assert.Equal(t, tc.seq, string(out))
		})
	}
}

// TestSerialize_WireText checks the text form of "abab" and "ACGT".
func TestSerialize_WireText(t *testing.T) {
	enc := codec.Serialize(grammar.Build("abab"))
	assert.Equal(t, "1 1", enc.StreamText())
	assert.Equal(t, "a b", enc.TableText())

	enc = codec.Serialize(grammar.Build("ACGT", grammar.WithComplement()))
	assert.Equal(t, "1 1'", enc.StreamText())
	assert.Equal(t, "A C", enc.TableText())
	assert.Equal(t, 4, enc.Symbols())
}

// TestSerialize_DiscoveryOrder checks that rule numbers follow breadth-first
// discovery from the top rule.
func TestSerialize_DiscoveryOrder(t *testing.T) {
	g := grammar.Build(strings.Repeat("abcdbcab", 4))
	enc := codec.Serialize(g)

	seen := 0
	check := func(row []string) {
		for _, tok := range row {
			if tok[0] < '0' || tok[0] > '9' {
				continue
			}
			n := 0
			for _, c := range strings.TrimSuffix(tok, "'") {
				n = n*10 + int(c-'0')
			}
			require.LessOrEqual(t, n, seen+1, "rule %d referenced before rule %d", n, seen+1)
			if n == seen+1 {
				seen++
			}
		}
	}
	check(enc.Stream)
	for _, row := range enc.Table {
		check(row)
	}
	assert.Equal(t, len(enc.Table), seen)
}

// TestDecode_Malformed covers out-of-range, cyclic and empty table lines.
func TestDecode_Malformed(t *testing.T) {
	cases := []struct {
		name string
		enc  codec.Encoding
	}{
		{"out of range", codec.Encoding{Stream: []string{"5"}, Table: [][]string{{"a", "b"}, {"c", "d"}}}},
		{"zero", codec.Encoding{Stream: []string{"0"}, Table: [][]string{{"a", "b"}}}},
		{"nested out of range", codec.Encoding{Stream: []string{"1"}, Table: [][]string{{"a", "3"}}}},
		{"self cycle", codec.Encoding{Stream: []string{"1"}, Table: [][]string{{"a", "1"}}}},
		{"mutual cycle", codec.Encoding{Stream: []string{"2"}, Table: [][]string{{"2", "a"}, {"b", "1"}}}},
		{"empty line", codec.Encoding{Stream: []string{"1"}, Table: [][]string{{}}}},
		{"no table", codec.Encoding{Stream: []string{"1"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := codec.Decode(tc.enc)
			assert.ErrorIs(t, err, codec.ErrMalformedTable)
		})
	}
}

// TestDecodeString_Malformed decodes a "5" against a two-line table from wire text.
func TestDecodeString_Malformed(t *testing.T) {
	_, err := codec.DecodeString("5", "a b\nc d")
	assert.ErrorIs(t, err, codec.ErrMalformedTable)
}

// TestDecode_UnsupportedComplement checks a complement reference over a non-nucleotide.
func TestDecode_UnsupportedComplement(t *testing.T) {
	enc := codec.Encoding{Stream: []string{"1", "1'"}, Table: [][]string{{"A", "N"}}}
	_, err := codec.Decode(enc)
	assert.ErrorIs(t, err, codec.ErrUnsupportedComplement)

	// Only the plain use is fine.
	out, err := codec.Decode(codec.Encoding{Stream: []string{"1", "1"}, Table: enc.Table})
	require.NoError(t, err)
	assert.Equal(t, "ANAN", string(out))
}

// TestDecode_NestedComplement checks that a complement reference applies to the
// whole nested expansion, including inner complement references.
func TestDecode_NestedComplement(t *testing.T) {
	enc := codec.Encoding{
		Stream: []string{"2", "2'"},
		Table:  [][]string{{"A", "C"}, {"1", "G", "1'"}},
	}
	out, err := codec.Decode(enc)
	require.NoError(t, err)
	// line 2 = AC G GT; its reverse complement is AC C GT.
	assert.Equal(t, "ACGGTACCGT", string(out))
}

// TestDecode_BadTokens covers tokens that are neither literals nor references.
func TestDecode_BadTokens(t *testing.T) {
	for _, tok := range []string{"ab", `\q`, "1x", "1''", `\u{zz}`, ""} {
		t.Run(tok, func(t *testing.T) {
			_, err := codec.Decode(codec.Encoding{Stream: []string{tok}})
			assert.ErrorIs(t, err, codec.ErrBadToken)
		})
	}
}

// TestDecode_ReferenceOverflow checks that a rule number too large to hold is
// reported as outside the table.
func TestDecode_ReferenceOverflow(t *testing.T) {
	for _, tok := range []string{"99999999999999999999", "99999999999999999999'"} {
		_, err := codec.Decode(codec.Encoding{Stream: []string{tok}, Table: [][]string{{"a", "b"}}})
		assert.ErrorIs(t, err, codec.ErrMalformedTable, "token %q", tok)
		assert.NotErrorIs(t, err, codec.ErrBadToken, "token %q", tok)
	}
}

// TestRoundTrip_ReplacementRune checks that U+FFFD, whether written literally or
// produced from invalid UTF-8, survives the wire text.
func TestRoundTrip_ReplacementRune(t *testing.T) {
	for _, seq := range []string{"a\uFFFDb", "x\xffy", "\uFFFD\uFFFD\uFFFD\uFFFD"} {
		g := grammar.Build(seq)
		enc := codec.Serialize(g)

		out, err := codec.DecodeString(enc.StreamText(), enc.TableText())
		require.NoError(t, err, "%q", seq)
		assert.Equal(t, g.String(), out, "%q", seq)
	}
}

// TestEncoding_Stats checks the measured shape against the grammar's own Stats.
func TestEncoding_Stats(t *testing.T) {
	st, err := codec.Serialize(grammar.Build("ACGT", grammar.WithComplement())).Stats()
	require.NoError(t, err)
	assert.Equal(t, codec.Stats{Rules: 1, Symbols: 4, ComplementRefs: 1, Depth: 1}, st)

	rng := rand.New(rand.NewSource(5))
	for _, n := range []int{0, 10, 400, 3000} {
		seq := make([]byte, n)
		for i := range seq {
			seq[i] = "ACGT"[rng.Intn(4)]
		}
		g := grammar.Build(string(seq), grammar.WithComplement())
		want := g.Stats()

		got, err := codec.Serialize(g).Stats()
		require.NoError(t, err)
		assert.Equal(t, codec.Stats{
			Rules:          want.Rules,
			Symbols:        want.Symbols,
			ComplementRefs: want.ComplementRefs,
			Depth:          want.Depth,
		}, got, "n=%d", n)
	}
}

// TestEncoding_StatsErrors covers the malformed encodings Stats refuses.
func TestEncoding_StatsErrors(t *testing.T) {
	cases := []struct {
		name string
		enc  codec.Encoding
		want error
	}{
		{"out of range", codec.Encoding{Stream: []string{"3"}, Table: [][]string{{"a", "b"}}}, codec.ErrMalformedTable},
		{"cycle", codec.Encoding{Stream: []string{"1"}, Table: [][]string{{"a", "2"}, {"1", "b"}}}, codec.ErrMalformedTable},
		{"bad token", codec.Encoding{Stream: []string{"a"}, Table: [][]string{{"ab", "b"}}}, codec.ErrBadToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.enc.Stats()
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// TestParse checks the wire text reader, including an empty stream and a trailing newline.
func TestParse(t *testing.T) {
	enc := codec.Parse("1 a 1'", "b c\n1 d\n")
	assertEncoding(t, codec.Encoding{
		Stream: []string{"1", "a", "1'"},
		Table:  [][]string{{"b", "c"}, {"1", "d"}},
	}, enc)

	assertEncoding(t, codec.Encoding{}, codec.Parse("", ""))
}

// TestRoundTrip_Random serializes random grammars to wire text, parses them
// back and decodes.
func TestRoundTrip_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	alphabets := []string{
		"ACGT",
		"ACGTN",
		"ab",
		"x 0_1(\\)'\n\t\r é",
	}
	for _, alphabet := range alphabets {
		letters := []rune(alphabet)
		for _, complement := range []bool{false, true} {
			for _, n := range []int{0, 1, 5, 100, 2000} {
				seq := make([]rune, n)
				for i := range seq {
					seq[i] = letters[rng.Intn(len(letters))]
				}
				var opts []grammar.Option
				if complement {
					opts = append(opts, grammar.WithComplement())
				}
				enc := codec.Serialize(grammar.Build(string(seq), opts...))

				out, err := codec.DecodeString(enc.StreamText(), enc.TableText())
				require.NoError(t, err)
				require.Equal(t, string(seq), out, "alphabet %q, n=%d", alphabet, n)
			}
		}
	}
}

// TestFormat checks the readable dump of "abab".
func TestFormat(t *testing.T) {
	enc := codec.Serialize(grammar.Build("abab"))
	s, err := codec.Format(enc)
	require.NoError(t, err)
	assert.Equal(t, "0: 1 1\n1: a b    ab\n", s)
	assert.Equal(t, s, enc.String())

	bad := codec.Encoding{Stream: []string{"2"}, Table: [][]string{{"a", "b"}}}
	_, err = codec.Format(bad)
	require.NoError(t, err, "Format expands table lines only")

	bad.Table[0] = []string{"a", "9"}
	_, err = codec.Format(bad)
	assert.ErrorIs(t, err, codec.ErrMalformedTable)
	assert.Equal(t, "0: 2\n1: a 9\n", bad.String())
}

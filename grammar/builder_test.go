package grammar_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/katalvlaran/seqgram/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Alphabets used by the randomized round-trip tests.
const (
	AlphabetBinary = "ab"
	AlphabetDNA    = "ACGT"
	AlphabetDNAN   = "ACGTN"
	AlphabetText   = "the quick brown fox, 0123 (x_y)\\'"
)

// ref and lit build expected Symbol values.
func ref(r grammar.RuleID) grammar.Symbol { return grammar.Symbol{Rule: r} }
func rc(r grammar.RuleID) grammar.Symbol  { return grammar.Symbol{Rule: r, Complement: true} }
func lit(t rune) grammar.Symbol           { return grammar.Symbol{Terminal: t} }

// randomSequence draws n runes from alphabet with a fixed seed.
func randomSequence(rng *rand.Rand, alphabet string, n int) string {
	letters := []rune(alphabet)
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteRune(letters[rng.Intn(len(letters))])
	}
	return sb.String()
}

// TestBuild_Empty verifies that no input yields an empty top rule and no rules.
func TestBuild_Empty(t *testing.T) {
	g := grammar.Build("")

	assert.Empty(t, g.Body(g.Top()), "empty input must leave the top rule empty")
	assert.Equal(t, []grammar.RuleID{g.Top()}, g.Rules())
	assert.Empty(t, g.Expand())
	assert.NoError(t, g.Validate())
	assert.Equal(t, 0, g.Len())
}

// TestBuild_NoRepeats checks that a sequence without a repeated digram stays literal.
func TestBuild_NoRepeats(t *testing.T) {
	g := grammar.Build("abcdef")

	body := g.Body(g.Top())
	require.Len(t, body, 6)
	for i, r := range "abcdef" {
		assert.Equal(t, lit(r), body[i])
	}
	assert.Len(t, g.Rules(), 1, "no rule may be created without a repeat")
}

// TestBuild_PlainReuse checks "abab" → S → R R, R → a b.
func TestBuild_PlainReuse(t *testing.T) {
	g := grammar.Build("abab")

	rules := g.Rules()
	require.Len(t, rules, 2)
	r := rules[1]
	assert.Equal(t, []grammar.Symbol{ref(r), ref(r)}, g.Body(g.Top()))
	assert.Equal(t, []grammar.Symbol{lit('a'), lit('b')}, g.Body(r))
	assert.Equal(t, 2, g.References(r))
	assert.Equal(t, "abab", g.String())
}

// TestBuild_UnderusedRuleExpanded checks that "abcabc" first builds R1 → a b,
// then R2 → R1 c, and that R1 (now used once) is spliced into R2.
func TestBuild_UnderusedRuleExpanded(t *testing.T) {
	g := grammar.Build("abcabc")

	rules := g.Rules()
	require.Len(t, rules, 2, "the single-use inner rule must be expanded")
	r := rules[1]
	assert.Equal(t, []grammar.Symbol{ref(r), ref(r)}, g.Body(g.Top()))
	assert.Equal(t, []grammar.Symbol{lit('a'), lit('b'), lit('c')}, g.Body(r))

	st := g.Stats()
	assert.Equal(t, 2, st.Created)
	assert.Equal(t, 1, st.Expanded)
}

// TestBuild_Run checks overlapping digrams in a run of equal terminals.
func TestBuild_Run(t *testing.T) {
	g := grammar.Build("aaa")
	assert.Len(t, g.Rules(), 1, "overlapping digrams in \"aaa\" are not a repeat")

	g = grammar.Build("aaaa")
	rules := g.Rules()
	require.Len(t, rules, 2)
	r := rules[1]
	assert.Equal(t, []grammar.Symbol{ref(r), ref(r)}, g.Body(g.Top()))
	assert.Equal(t, []grammar.Symbol{lit('a'), lit('a')}, g.Body(r))
}

// TestBuild_ComplementReuse checks "ACGT": GT is the reverse complement of AC.
func TestBuild_ComplementReuse(t *testing.T) {
	g := grammar.Build("ACGT", grammar.WithComplement())

	rules := g.Rules()
	require.Len(t, rules, 2)
	r := rules[1]
	assert.Equal(t, []grammar.Symbol{ref(r), rc(r)}, g.Body(g.Top()))
	assert.Equal(t, []grammar.Symbol{lit('A'), lit('C')}, g.Body(r))
	assert.Equal(t, "ACGT", g.String())
	assert.Equal(t, 1, g.Stats().ComplementRefs)
}

// TestBuild_ComplementDisabled checks that plain Sequitur ignores reverse complements.
func TestBuild_ComplementDisabled(t *testing.T) {
	g := grammar.Build("ACGT")
	assert.Len(t, g.Rules(), 1)
	assert.False(t, g.ComplementMatching())
}

// TestBuild_ComplementAcrossMarker checks that a non-complementable terminal
// between the two occurrences does not prevent the match.
func TestBuild_ComplementAcrossMarker(t *testing.T) {
	g := grammar.Build("ACNGT", grammar.WithComplement())

	rules := g.Rules()
	require.Len(t, rules, 2)
	r := rules[1]
	assert.Equal(t, []grammar.Symbol{ref(r), lit('N'), rc(r)}, g.Body(g.Top()))
}

// TestBuild_Uniqueness checks that hand-traced inputs end without duplicate digrams.
func TestBuild_Uniqueness(t *testing.T) {
	cases := []struct {
		name       string
		seq        string
		complement bool
	}{
		{"plain reuse", "abab", false},
		{"expansion", "abcabc", false},
		{"run", "aaaa", false},
		{"complement", "ACGT", true},
		{"marker", "ACNGT", true},
		{"run broken on the left", "aaababaa", false},
		{"expansion after complement match", "AACGTTAA", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var opts []grammar.Option
			if tc.complement {
				opts = append(opts, grammar.WithComplement())
			}
			g := grammar.Build(tc.seq, opts...)
			assert.Zero(t, g.DuplicateDigrams())
			assert.Equal(t, tc.seq, g.String())
			assert.NoError(t, g.Validate())
		})
	}
}

// TestBuild_RoundTripRandom feeds seeded random sequences and checks the grammar
// still spells the input, keeps every rule used at least twice and repeats no digram.
func TestBuild_RoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cases := []struct {
		name       string
		alphabet   string
		complement bool
	}{
		{"binary", AlphabetBinary, false},
		{"dna plain", AlphabetDNA, false},
		{"dna complement", AlphabetDNA, true},
		{"dna with N complement", AlphabetDNAN, true},
		{"text", AlphabetText, false},
		{"text complement", AlphabetText, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, n := range []int{1, 2, 3, 7, 64, 500, 3000} {
				seq := randomSequence(rng, tc.alphabet, n)
				var opts []grammar.Option
				if tc.complement {
					opts = append(opts, grammar.WithComplement())
				}
				g := grammar.Build(seq, opts...)
				require.Equal(t, seq, g.String(), "round trip failed for n=%d", n)
				require.NoError(t, g.Validate(), "invariants broken for n=%d", n)
				require.Equal(t, len([]rune(seq)), g.Len())
				require.Zero(t, g.DuplicateDigrams(), "repeated digram for n=%d", n)
			}
		})
	}
}

// TestBuilder_Incremental checks that invariants hold after every Append,
// not only at the end of the input.
func TestBuilder_Incremental(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seq := randomSequence(rng, AlphabetDNA, 400)

	b := grammar.NewBuilder(grammar.WithComplement())
	for i, r := range seq {
		b.Append(r)
		g := b.Grammar()
		require.Equal(t, seq[:i+1], g.String())
		require.NoError(t, g.Validate(), "after %d terminals", i+1)
		require.Zero(t, g.DuplicateDigrams(), "after %d terminals", i+1)
	}
}

// TestBuild_UniquenessManySeeds builds many short random inputs per alphabet,
// where left-side run repairs and edge expansions are most frequent.
func TestBuild_UniquenessManySeeds(t *testing.T) {
	for _, alphabet := range []string{AlphabetBinary, "abc", AlphabetDNA, AlphabetDNAN} {
		for _, complement := range []bool{false, true} {
			var opts []grammar.Option
			if complement {
				opts = append(opts, grammar.WithComplement())
			}
			rng := rand.New(rand.NewSource(int64(len(alphabet))))
			for i := 0; i < 300; i++ {
				seq := randomSequence(rng, alphabet, 8+rng.Intn(120))
				g := grammar.Build(seq, opts...)
				require.Equal(t, seq, g.String(), "%q", seq)
				require.NoError(t, g.Validate(), "%q", seq)
				require.Zero(t, g.DuplicateDigrams(), "%q complement=%v", seq, complement)
			}
		}
	}
}

// TestBuilder_IndependentRuns checks that two builders never share state.
func TestBuilder_IndependentRuns(t *testing.T) {
	a := grammar.NewBuilder()
	b := grammar.NewBuilder()

	a.Feed("abab")
	gb := b.Feed("cdcd")

	assert.Equal(t, "cdcd", gb.String())
	rules := gb.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, []grammar.Symbol{lit('c'), lit('d')}, gb.Body(rules[1]))
}

// TestBuild_RepetitiveInputCompresses checks a highly repetitive input ends
// with far fewer symbols than terminals.
func TestBuild_RepetitiveInputCompresses(t *testing.T) {
	seq := strings.Repeat("GATTACA", 200)
	g := grammar.Build(seq, grammar.WithComplement())

	st := g.Stats()
	assert.Equal(t, seq, g.String())
	assert.Less(t, st.Symbols, len(seq)/10)
	assert.Greater(t, st.Depth, 1)
}

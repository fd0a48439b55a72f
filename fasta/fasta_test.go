package fasta_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/seqgram/fasta"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `;comment line
>chr1 first contig
ACGTacgt
NNNN
>chr2
GATTACA
`

var sampleRecords = []fasta.Record{
	{ID: "chr1", Description: "first contig", Seq: []byte("ACGTACGTNNNN")},
	{ID: "chr2", Seq: []byte("GATTACA")},
}

// TestReadAll_Plain parses two records, upper-casing residues.
func TestReadAll_Plain(t *testing.T) {
	recs, err := fasta.ReadAll(strings.NewReader(sample))
	require.NoError(t, err)
	if diff := cmp.Diff(sampleRecords, recs); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

// TestReadAll_KeepCase keeps soft-masked residues.
func TestReadAll_KeepCase(t *testing.T) {
	recs, err := fasta.ReadAll(strings.NewReader(sample), fasta.WithKeepCase())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "ACGTacgtNNNN", string(recs[0].Seq))
}

// TestReadAll_CRLFNoTrailingNewline handles Windows line ends and a missing final newline.
func TestReadAll_CRLFNoTrailingNewline(t *testing.T) {
	recs, err := fasta.ReadAll(strings.NewReader(">a x\r\nAC\r\nGT\r\n>b\r\nTT"))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "ACGT", string(recs[0].Seq))
	assert.Equal(t, "x", recs[0].Description)
	assert.Equal(t, "TT", string(recs[1].Seq))
}

// TestReadAll_EmptyRecord keeps a header with no residues.
func TestReadAll_EmptyRecord(t *testing.T) {
	recs, err := fasta.ReadAll(strings.NewReader(">a\n>b\nAC\n"))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Empty(t, recs[0].Seq)
	assert.Equal(t, "AC", string(recs[1].Seq))
}

// TestReadAll_Gzip checks transparent decompression.
func TestReadAll_Gzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	recs, err := fasta.ReadAll(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(sampleRecords, recs); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

// TestReadAll_Errors covers malformed inputs.
func TestReadAll_Errors(t *testing.T) {
	_, err := fasta.ReadAll(strings.NewReader("ACGT\n>a\n"))
	assert.ErrorIs(t, err, fasta.ErrNoHeader)

	_, err = fasta.ReadAll(strings.NewReader(">\nACGT\n"))
	assert.ErrorIs(t, err, fasta.ErrEmptyID)

	recs, err := fasta.ReadAll(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

// TestWrite wraps residues and round-trips through the reader.
func TestWrite(t *testing.T) {
	rec := fasta.Record{ID: "r1", Description: "demo", Seq: []byte("ACGTACGTAC")}

	var buf bytes.Buffer
	require.NoError(t, fasta.Write(&buf, rec, 4))
	assert.Equal(t, ">r1 demo\nACGT\nACGT\nAC\n", buf.String())

	recs, err := fasta.ReadAll(&buf)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	if diff := cmp.Diff(rec, recs[0]); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

// TestWrite_DefaultWidth checks the fallback width.
func TestWrite_DefaultWidth(t *testing.T) {
	var buf bytes.Buffer
	rec := fasta.Record{ID: "r", Seq: bytes.Repeat([]byte("A"), fasta.DefaultWidth+1)}
	require.NoError(t, fasta.Write(&buf, rec, 0))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Len(t, lines[1], fasta.DefaultWidth)
	assert.Len(t, lines[2], 1)
}

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/katalvlaran/seqgram/archive"
	"github.com/katalvlaran/seqgram/entropy"
	"github.com/katalvlaran/seqgram/fasta"
	"github.com/katalvlaran/seqgram/pipeline"
	"github.com/spf13/cobra"
)

var (
	encodeOutput       string
	encodeCoder        string
	encodeNoComplement bool
	encodeNoEntropy    bool
	encodeJobs         int
)

func init() {
	encodeCmd.Flags().StringVarP(&encodeOutput, "output", "o", "", "archive file (default stdout)")
	encodeCmd.Flags().StringVar(&encodeCoder, "coder", "", "entropy coder (huffman|zstd|s2|none)")
	encodeCmd.Flags().BoolVar(&encodeNoComplement, "no-complement", false, "disable reverse-complement matching")
	encodeCmd.Flags().BoolVar(&encodeNoEntropy, "no-entropy", false, "skip the entropy pass")
	encodeCmd.Flags().IntVarP(&encodeJobs, "jobs", "j", 0, "records encoded concurrently (default from config)")
}

var encodeCmd = &cobra.Command{
	Use:   "encode [input.fa|-]",
	Short: "Compress the records of a FASTA file",
	Long: `Reads FASTA (plain or gzip), builds one grammar per record and writes one
archive per record, back to back, to the output.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("coder") {
			cfg.Entropy.Coder = encodeCoder
		}
		if encodeNoEntropy {
			cfg.Entropy.Enabled = false
		}
		if encodeNoComplement {
			cfg.Engine.Complement = false
		}
		if encodeJobs > 0 {
			cfg.Batch.Jobs = encodeJobs
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		opts, err := pipeline.FromConfig(cfg)
		if err != nil {
			return err
		}
		enc := pipeline.New(append(opts, pipeline.WithLogger(logger))...)

		in, err := openInput(cmd, args[0])
		if err != nil {
			return err
		}
		defer in.Close()
		var readOpts []fasta.Option
		if cfg.FASTA.KeepCase {
			readOpts = append(readOpts, fasta.WithKeepCase())
		}
		recs, err := fasta.ReadAll(in, readOpts...)
		if err != nil {
			return err
		}

		results, err := enc.EncodeRecords(cmd.Context(), recs)
		if err != nil {
			return err
		}

		out, err := createOutput(cmd, encodeOutput)
		if err != nil {
			return err
		}
		var inBytes, outBytes int
		for i, r := range results {
			if err := archive.Write(out, r.Archive); err != nil {
				out.Close()
				return err
			}
			inBytes += len(recs[i].Seq)
			outBytes += len(r.Archive.Stream) + len(r.Archive.Table)
		}
		if err := out.Close(); err != nil {
			return err
		}

		printSummary(cmd, len(results), inBytes, outBytes)
		return nil
	},
}

// printSummary writes a one-line ratio report to stderr.
func printSummary(cmd *cobra.Command, records, in, out int) {
	ratio := 0.0
	if in > 0 {
		ratio = float64(out) / float64(in)
	}
	label := color.New(color.FgGreen, color.Bold)
	coder := cfg.CoderName()
	if coder == entropy.None {
		coder = "no entropy pass"
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %d record(s), %d → %d bytes (%.3f, %s)\n",
		label.Sprint("encoded"), records, in, out, ratio, coder)
}

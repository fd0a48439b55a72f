package main

import (
	"github.com/katalvlaran/seqgram/archive"
	"github.com/katalvlaran/seqgram/fasta"
	"github.com/katalvlaran/seqgram/pipeline"
	"github.com/spf13/cobra"
)

var (
	decodeOutput string
	decodeWidth  int
)

func init() {
	decodeCmd.Flags().StringVarP(&decodeOutput, "output", "o", "", "FASTA file (default stdout)")
	decodeCmd.Flags().IntVarP(&decodeWidth, "width", "w", 0, "residues per line (default from config)")
}

var decodeCmd = &cobra.Command{
	Use:   "decode [input.sqz|-]",
	Short: "Restore FASTA records from archives",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInput(cmd, args[0])
		if err != nil {
			return err
		}
		defer in.Close()
		as, err := archive.ReadAll(in)
		if err != nil {
			return err
		}

		dec := pipeline.New(pipeline.WithJobs(cfg.Batch.Jobs), pipeline.WithLogger(logger))
		recs, err := dec.DecodeArchives(cmd.Context(), as)
		if err != nil {
			return err
		}

		width := cfg.FASTA.Width
		if decodeWidth > 0 {
			width = decodeWidth
		}
		out, err := createOutput(cmd, decodeOutput)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			if err := fasta.Write(out, rec, width); err != nil {
				out.Close()
				return err
			}
		}
		return out.Close()
	},
}

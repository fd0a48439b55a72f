package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/katalvlaran/seqgram/codec"
	"github.com/katalvlaran/seqgram/fasta"
	"github.com/katalvlaran/seqgram/pipeline"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var grammarWide bool

func init() {
	grammarCmd.Flags().BoolVar(&grammarWide, "wide", false, "do not truncate lines to the terminal width")
}

var grammarCmd = &cobra.Command{
	Use:   "grammar [input.fa|-]",
	Short: "Print the grammar induced from each FASTA record",
	Long: `Prints one line per rule: the rule number, its body, and (for table rules)
its expansion. Rule 0 is the top-level stream; N' is the reverse complement of
rule N.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		opts, err := pipeline.FromConfig(cfg)
		if err != nil {
			return err
		}
		p := pipeline.New(append(opts, pipeline.WithLogger(logger))...)
		results, err := p.EncodeRecords(cmd.Context(), recs)
		if err != nil {
			return err
		}

		width := 0
		if !grammarWide && isTerminal(os.Stdout) {
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				width = w
			}
		}
		head := color.New(color.FgYellow, color.Bold)
		out := cmd.OutOrStdout()
		for i, r := range results {
			fmt.Fprintln(out, head.Sprintf(">%s  (%d rules, depth %d)", recs[i].ID, r.Stats.Rules, r.Stats.Depth))
			dump, err := codec.Format(r.Encoding)
			if err != nil {
				return err
			}
			for _, line := range strings.Split(strings.TrimSuffix(dump, "\n"), "\n") {
				if width > 0 {
					line = runewidth.Truncate(line, width, "…")
				}
				fmt.Fprintln(out, line)
			}
		}
		return nil
	},
}

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/katalvlaran/seqgram/archive"
	"github.com/katalvlaran/seqgram/codec"
	"github.com/katalvlaran/seqgram/pipeline"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [input.sqz|-]",
	Short: "Describe the archives in a file without decoding the sequences",
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

		p := pipeline.New(pipeline.WithLogger(logger))
		rows := make([]inspectRow, 0, len(as))
		for _, a := range as {
			enc, err := p.Encoding(a)
			if err != nil {
				return err
			}
			st, err := enc.Stats()
			if err != nil {
				return fmt.Errorf("%s: %w", a.Name, err)
			}
			rows = append(rows, inspectRow{a: a, stats: st})
		}
		renderInspect(cmd.OutOrStdout(), rows)
		return nil
	},
}

type inspectRow struct {
	a     *archive.Archive
	stats codec.Stats
}

// renderInspect prints one aligned line per archive.
func renderInspect(w io.Writer, rows []inspectRow) {
	head := color.New(color.FgCyan, color.Bold)
	nameWidth := runewidth.StringWidth("record")
	for _, r := range rows {
		nameWidth = max(nameWidth, runewidth.StringWidth(r.a.Name))
	}

	fmt.Fprintln(w, head.Sprintf("%s %10s %8s %9s %9s %6s %10s %-8s %s",
		runewidth.FillRight("record", nameWidth), "length", "rules", "symbols", "rc-refs", "depth", "bytes", "coder", "id"))
	for _, r := range rows {
		a, st := r.a, r.stats
		fmt.Fprintf(w, "%s %10d %8d %9d %9d %6d %10d %-8s %s\n",
			runewidth.FillRight(a.Name, nameWidth), a.Length, st.Rules, st.Symbols, st.ComplementRefs, st.Depth,
			len(a.Stream)+len(a.Table), a.Coder, a.ID)
	}
}

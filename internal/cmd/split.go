package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolbox-cli/toolbox/novel"
)

// NewSplitCmd creates the split subcommand, which turns a chapter-delimited
// text file into a CSV.
func NewSplitCmd(app *App) *cobra.Command {
	var (
		pattern string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "split FILE",
		Short: "Split a novel into chapters and write them to CSV",
		Long: `Split a plain-text novel into chapters and write a CSV with the columns
title, serial and content.

A line matching the title pattern starts a new chapter. The pattern's first
capture group is the chapter number (Arabic or Chinese numerals) and the
second is the title. Empty lines and text before the first chapter are
dropped. The CSV is written to <name>.csv in the current directory unless
--output is given.`,
		Example: `  toolbox split 三体.txt
  toolbox split book.txt --pattern '^Chapter (\d+)\s*(.*)' -o chapters.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			re, err := novel.CompilePattern(pattern)
			if err != nil {
				return err
			}
			dst := output
			if dst == "" {
				dst = novel.OutputName(src)
			}

			n, err := novel.SplitFile(app.Fs, src, dst, re)
			if err != nil {
				return err
			}
			app.Log.Debug("split finished", "src", src, "dst", dst, "chapters", n)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d chapters to %s\n", n, dst)
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", novel.DefaultPattern, "Regular expression matching chapter title lines")
	cmd.Flags().StringVarP(&output, "output", "o", "", "CSV file to write (default: <name>.csv)")

	return cmd
}

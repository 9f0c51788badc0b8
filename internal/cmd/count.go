package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolbox-cli/toolbox/imaging"
	"github.com/toolbox-cli/toolbox/internal/display"
)

// NewCountCmd creates the count subcommand. It applies the same
// classification as compress or convert and counts the eligible images
// without running any encoder.
func NewCountCmd(app *App) *cobra.Command {
	var (
		path   string
		mode   string
		format string
		outDir string
		list   bool
	)

	cmd := &cobra.Command{
		Use:   "count [PATH]",
		Short: "Count the images a compress or convert run would process",
		Long: `Count the images under PATH that compress (the default) or convert would
process. Directories the walker ignores (hidden, node_modules, output
directories) are skipped here too.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				path = args[0]
			}

			var s imaging.Strategy
			switch mode {
			case "compress":
				s = imaging.InPlace(imaging.DefaultQuality)
			case "convert":
				cfg := app.Config
				if cmd.Flags().Changed("format") {
					cfg.Format = format
				}
				cfg.OutDir = outDir
				var err error
				if s, err = cfg.ConversionStrategy(); err != nil {
					return err
				}
			default:
				return fmt.Errorf("invalid mode %q (use 'compress' or 'convert')", mode)
			}

			entries, err := imaging.Discover(cmd.Context(), app.Fs, path, s)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var total int64
			for _, e := range entries {
				total += e.Size
				if list {
					display.Listing(out, e.Rel, e.Size)
				}
			}
			fmt.Fprintf(out, "Total images: %d (%s)\n", len(entries), imaging.FormatBytes(total))
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Path to count images in (default: current directory)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "compress", "Classification to apply (compress, convert)")
	cmd.Flags().StringVarP(&format, "format", "f", string(imaging.FormatWebP), "Target format in convert mode")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Output directory name in convert mode")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List every image with its size")

	return cmd
}

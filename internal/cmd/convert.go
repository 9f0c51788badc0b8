package cmd

import (
	"github.com/spf13/cobra"

	"github.com/toolbox-cli/toolbox/imaging"
	"github.com/toolbox-cli/toolbox/internal/config"
)

// NewConvertCmd creates the convert subcommand, which writes converted
// copies of images into a mirrored output tree.
func NewConvertCmd(app *App) *cobra.Command {
	var (
		quality int
		format  string
		codec   string
		outDir  string
		opts    walkOptions
	)

	cmd := &cobra.Command{
		Use:   "convert [PATH]",
		Short: "Convert images into a mirrored output directory",
		Long: `Recursively convert jpg, jpeg and png files under PATH (default: the current
directory) to another format. Output goes to PATH/OUT_DIR/<same relative
path>/<name>.<format>; sources are never modified.

The encoder is ImageMagick (default) or squoosh-cli. OUT_DIR defaults to the
format name for magick and to "squoosh" for squoosh-cli.`,
		Example: `  toolbox convert ./photos --format avif
  toolbox convert --codec squoosh -q 60 --format webp
  toolbox convert ./site --dry-run --report run.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			flags := cmd.Flags()
			if flags.Changed("quality") {
				cfg.Quality = quality
			}
			if flags.Changed("format") {
				cfg.Format = format
			}
			if flags.Changed("codec") {
				cfg.Codec = config.CodecName(codec)
			}
			if flags.Changed("out-dir") {
				cfg.OutDir = outDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			s, err := cfg.ConversionStrategy()
			if err != nil {
				return err
			}
			return runWalk(cmd, app, cfg.NewCodec(), s, rootArg(args), opts)
		},
	}

	cmd.Flags().IntVarP(&quality, "quality", "q", imaging.DefaultQuality, "Encoder quality (1-100)")
	cmd.Flags().StringVarP(&format, "format", "f", string(imaging.FormatWebP), "Output format (webp, avif, jpg, png)")
	cmd.Flags().StringVar(&codec, "codec", string(config.CodecMagick), "Encoder to run (magick, squoosh)")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Output directory name under PATH")
	opts.register(cmd)

	return cmd
}

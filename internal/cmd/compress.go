package cmd

import (
	"github.com/spf13/cobra"

	"github.com/toolbox-cli/toolbox/imaging"
)

// NewCompressCmd creates the compress subcommand, which recompresses images
// in place with ImageMagick at the fixed default quality.
func NewCompressCmd(app *App) *cobra.Command {
	var opts walkOptions

	cmd := &cobra.Command{
		Use:   "compress [PATH]",
		Short: "Recompress images in place with ImageMagick",
		Long: `Recursively recompress jpg, jpeg, png and webp files under PATH (default:
the current directory), overwriting each file with the output of

  magick FILE -quality 75 FILE

The quality is fixed; TOOLBOX_QUALITY only applies to convert. Hidden
directories, node_modules and squoosh output directories are skipped.
A failed file is reported and the walk continues; the command exits non-zero
if any file failed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec := imaging.NewMagick(app.Config.MagickBinary)
			return runWalk(cmd, app, codec, imaging.InPlace(imaging.DefaultQuality), rootArg(args), opts)
		},
	}

	opts.register(cmd)

	return cmd
}

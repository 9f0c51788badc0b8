package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolbox-cli/toolbox/imaging"
	"github.com/toolbox-cli/toolbox/internal/display"
)

type versionedCodec interface {
	imaging.Codec
	Version(ctx context.Context) (string, error)
}

// NewCheckCmd creates the check subcommand, which reports whether the
// external encoders can be launched.
func NewCheckCmd(app *App) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the external image encoders are installed",
		Long: `Run the version query of each external encoder (magick -version and
squoosh-cli --version) and print whether it is available.

With --strict the command fails when any encoder is missing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			codecs := []versionedCodec{
				imaging.NewMagick(app.Config.MagickBinary),
				imaging.NewSquoosh(app.Config.SquooshBinary),
			}
			out := cmd.OutOrStdout()
			missing := 0
			for _, c := range codecs {
				line, err := c.Version(cmd.Context())
				display.Dependency(out, c.Name(), line, err)
				if err != nil {
					missing++
					app.Log.Debug("encoder unavailable", "codec", c.Name(), "err", err)
					fmt.Fprintf(out, "  install: %s\n", c.InstallHint())
				}
			}
			if strict && missing > 0 {
				return fmt.Errorf("%w: %d of %d encoders", imaging.ErrMissingDependency, missing, len(codecs))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when an encoder is missing")

	return cmd
}

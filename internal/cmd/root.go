package cmd

import (
	"github.com/spf13/cobra"

	"github.com/toolbox-cli/toolbox/internal/config"
	"github.com/toolbox-cli/toolbox/internal/logging"
	"github.com/toolbox-cli/toolbox/version"
)

const (
	groupImages    = "images"
	groupUtilities = "utilities"
)

// NewRootCmd creates and returns the root cobra command for the toolbox CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(NewApp())
}

func newRootCmd(app *App) *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "toolbox",
		Short: "toolbox - a personal collection of command-line helpers",
		Long: `toolbox bundles small unrelated helpers behind one binary.

The image commands walk a directory tree and hand every eligible image to
an external encoder (ImageMagick's magick or squoosh-cli), then print how
much space was saved:
  - compress: recompress jpg/jpeg/png/webp files in place
  - convert: write converted copies into a mirrored output directory
  - count: list the images a run would touch
  - check: verify the external encoders are installed

Settings can also come from a .env file or TOOLBOX_* environment variables.`,
		Version: version.GetFullVersion(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			app.Config = cfg
			app.Log = logger
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.DefaultLevel, "Diagnostic log level (debug, info, warn, error)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupImages,
		Title: "Image Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	compressCmd := NewCompressCmd(app)
	convertCmd := NewConvertCmd(app)
	countCmd := NewCountCmd(app)
	checkCmd := NewCheckCmd(app)
	seedCmd := NewSeedCmd(app)
	nowCmd := NewNowCmd(app)
	pwdCmd := NewPwdCmd()
	splitCmd := NewSplitCmd(app)
	versionCmd := NewVersionCmd()

	compressCmd.GroupID = groupImages
	convertCmd.GroupID = groupImages
	countCmd.GroupID = groupImages
	checkCmd.GroupID = groupImages
	seedCmd.GroupID = groupImages
	nowCmd.GroupID = groupUtilities
	pwdCmd.GroupID = groupUtilities
	splitCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	rootCmd.AddCommand(compressCmd, convertCmd, countCmd, checkCmd, seedCmd)
	rootCmd.AddCommand(nowCmd, pwdCmd, splitCmd, versionCmd)

	return rootCmd
}

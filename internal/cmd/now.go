package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolbox-cli/toolbox/internal/datefmt"
)

// NewNowCmd creates the now subcommand.
func NewNowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Print the current local date and time",
		Long:  `Print the current local date and time as YYYY年MM月DD日 星期X HH时mm分ss秒.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), datefmt.Format(app.Now()))
			return err
		},
	}
}

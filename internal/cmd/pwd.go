package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewPwdCmd creates the pwd subcommand.
func NewPwdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pwd",
		Short: "Print the working directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), wd)
			return err
		},
	}
}

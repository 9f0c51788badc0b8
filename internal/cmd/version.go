package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/toolbox-cli/toolbox/version"
)

// NewVersionCmd creates the version subcommand.
func NewVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				je := json.NewEncoder(cmd.OutOrStdout())
				je.SetIndent("", "  ")
				return je.Encode(version.GetInfo())
			}
			version.Fprint(cmd.OutOrStdout(), "toolbox")
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}

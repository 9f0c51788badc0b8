// Package cmd provides the command-line interface implementation for toolbox.
//
// Each subcommand lives in its own file with a constructor returning a
// *cobra.Command. Commands are grouped into image operations (compress,
// convert, count, check, seed) and utility commands (now, pwd, split).
// Shared state such as configuration, the logger and the filesystem is
// carried by an App that the root command fills in before any subcommand
// runs.
package cmd

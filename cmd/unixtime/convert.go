package main

import (
	"github.com/aretw0/unixtime/internal/cli"
	"github.com/aretw0/unixtime/pkg/domain"
	"github.com/spf13/cobra"
)

var toHumanCmd = &cobra.Command{
	Use:   "to-human [timestamp]",
	Short: "Convert a Unix timestamp to a human-readable date",
	Long: `Converts whole seconds since the epoch to a date such as
"Thu Jan 01 1970 00:00:00 GMT+0000 (UTC)".

The input is the --selection of --file when it is not empty, otherwise the
argument, otherwise a line read from stdin. With a file the selection is
replaced; without one the result is appended to the log and printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args, domain.CommandUnixToHuman)
	},
}

var toTimestampCmd = &cobra.Command{
	Use:   "to-timestamp [date]",
	Short: "Convert a date to a Unix timestamp",
	Long: `Parses a date (the format printed by to-human, RFC 3339, or most common
layouts) and converts it to whole seconds since the epoch. Dates without a zone
are read in --location.

Input and output follow the same rules as to-human.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args, domain.CommandHumanToUnix)
	},
}

func runConvert(cmd *cobra.Command, args []string, id domain.CommandID) error {
	path, _ := cmd.Flags().GetString("file")
	selection, _ := cmd.Flags().GetString("selection")

	cmdOpts := cli.CommandOptions{File: path, Selection: selection}
	if len(args) > 0 {
		cmdOpts.Value = &args[0]
	}
	return cli.RunCommand(globalOptions(cmd), id, cmdOpts)
}

func init() {
	for _, c := range []*cobra.Command{toHumanCmd, toTimestampCmd} {
		rootCmd.AddCommand(c)
		c.Flags().StringP("file", "f", "", "Document holding the selection")
		c.Flags().StringP("selection", "s", "", "Byte range start:end (or a cursor offset) inside --file")
	}
}

package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/unixtime"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of unixtime",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "unixtime version %s\n", strings.TrimSpace(unixtime.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

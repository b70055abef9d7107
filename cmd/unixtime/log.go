package main

import (
	"github.com/aretw0/unixtime/internal/cli"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the output log",
	Long: `Prints the "Unix Time Utility" log. The in-memory log only lives for one
process, so this is mostly useful with log_backend: redis, which is shared.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		follow, _ := cmd.Flags().GetBool("follow")
		return cli.ShowLog(globalOptions(cmd), follow)
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().BoolP("follow", "F", false, "Keep printing new lines (redis backend only)")
}

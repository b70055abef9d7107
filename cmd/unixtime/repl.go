package main

import (
	"github.com/aretw0/unixtime/internal/cli"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `Reads commands from stdin:

  now               print the current timestamp
  human [ts]        convert a timestamp (prompts when omitted)
  ts [date]         convert a date (prompts when omitted)
  :log              show the log
  quit              leave`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunREPL(globalOptions(cmd))
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

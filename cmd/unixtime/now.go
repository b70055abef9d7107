package main

import (
	"strconv"

	"github.com/aretw0/unixtime/internal/cli"
	"github.com/aretw0/unixtime/pkg/domain"
	"github.com/spf13/cobra"
)

var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "Insert the current Unix timestamp at the cursor of --file",
	Long: `Inserts the current whole seconds since the epoch into --file at --cursor
(default: start of file). Without --file there is no editor to insert into and
the command fails; use --print to just print the value.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := globalOptions(cmd)
		if printOnly, _ := cmd.Flags().GetBool("print"); printOnly {
			return cli.PrintNow(opts)
		}

		path, _ := cmd.Flags().GetString("file")
		cursor, _ := cmd.Flags().GetInt("cursor")
		return cli.RunCommand(opts, domain.CommandInsertTimestamp, cli.CommandOptions{
			File:      path,
			Selection: strconv.Itoa(cursor),
		})
	},
}

func init() {
	rootCmd.AddCommand(nowCmd)

	nowCmd.Flags().StringP("file", "f", "", "Document to insert into")
	nowCmd.Flags().Int("cursor", 0, "Byte offset of the cursor in --file")
	nowCmd.Flags().Bool("print", false, "Print the timestamp instead of inserting it")
}

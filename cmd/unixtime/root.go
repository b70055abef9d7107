package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/unixtime/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "unixtime",
	Short: "Insert and convert Unix timestamps",
	Long: `unixtime inserts the current Unix timestamp and converts between
timestamps (whole seconds) and human-readable dates.

Conversions act on a selection inside --file, or on a value you type;
results without a document land in the "Unix Time Utility" log.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// globalOptions reads the persistent flags.
func globalOptions(cmd *cobra.Command) cli.Options {
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	location, _ := cmd.Flags().GetString("location")
	return cli.Options{
		ConfigPath: configPath,
		Debug:      debug,
		Location:   location,
		Stdin:      cmd.InOrStdin(),
		Stdout:     cmd.OutOrStdout(),
		Stderr:     cmd.ErrOrStderr(),
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default .unixtime.yaml if present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().String("location", "", "IANA time zone for rendering and parsing dates (default Local)")
}

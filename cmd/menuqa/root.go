package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menuqa",
		Short: "MenuQA - CLI tool for menu extraction quality analysis",
		Long: `MenuQA is a command-line tool for analyzing the quality of extracted menu data.

It scores menu items for semantic confidence, recommends repairs for
low-quality items, applies safe automatic fixes, and produces quality reports.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newScoreCommand())
	cmd.AddCommand(newRepairCommand())
	cmd.AddCommand(newReportCommand())
	cmd.AddCommand(newCheckCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

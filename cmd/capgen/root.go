package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	capgenlog "github.com/beyondmcp/capgen/internal/log"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool
)

// rootCmd is the base command for capgen.
var rootCmd = &cobra.Command{
	Use:   "capgen",
	Short: "Scaffold CLI and script surfaces for MCP capabilities",
	Long: `Capgen scaffolds additional surfaces for capabilities that already exist
as MCP tools. From a single typed parameter specification it generates a
CLI subcommand file, a self-contained script file, or both, plus optional
test-plan and usage-snippet documentation stubs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		capgenlog.Setup(verbose, quiet)
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

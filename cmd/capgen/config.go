package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/beyondmcp/capgen/internal/config"
	"github.com/beyondmcp/capgen/internal/emit"
)

// Config init flag values.
var (
	cfgInitBinary       string
	cfgInitBaseURL      string
	cfgInitOutCLIDir    string
	cfgInitOutScriptDir string
	cfgInitScriptsDir   string
	cfgInitForce        bool
)

// configCmd is the parent command for config subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage capgen configuration",
	Long: `Manage capgen configuration.

Capgen reads defaults from .capgen.yaml in the working directory. Explicit
command-line flags always override config values.`,
}

// configInitCmd writes a starter .capgen.yaml.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter .capgen.yaml in the working directory",
	Long: `Write a starter .capgen.yaml in the working directory.

The generated file records project-wide defaults for capgen generate and
capgen index, so individual invocations only need the capability-specific
flags. An existing config is left untouched unless --force is given; a skip
exits with code 2.

Examples:
  capgen config init --binary yourcmd --api-base-url https://api.example.com
  capgen config init --out-script-dir apps/scripts --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	f := configInitCmd.Flags()
	f.StringVar(&cfgInitBinary, "binary", "", "default --binary for capgen generate")
	f.StringVar(&cfgInitBaseURL, "api-base-url", "", "default --api-base-url for capgen generate")
	f.StringVar(&cfgInitOutCLIDir, "out-cli-dir", "cmd", "directory for default --out-cli paths")
	f.StringVar(&cfgInitOutScriptDir, "out-script-dir", "scripts", "directory for default --out-script paths")
	f.StringVar(&cfgInitScriptsDir, "scripts-dir", "scripts", "default directory for capgen index")
	f.BoolVar(&cfgInitForce, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	cfg := &config.Config{
		Binary:       cfgInitBinary,
		APIBaseURL:   cfgInitBaseURL,
		OutCLIDir:    cfgInitOutCLIDir,
		OutScriptDir: cfgInitOutScriptDir,
		ScriptsDir:   cfgInitScriptsDir,
	}

	var sb strings.Builder
	if err := config.Write(&sb, cfg); err != nil {
		return exitError(ExitFailure, "capgen: encode config (%v)", err)
	}

	writer := emit.NewWriter(cmdFS, cfgInitForce)
	report := &emit.Report{}
	report.Add(writer.Write(config.FileName, sb.String()))
	printWriteReport(cmd, report)

	switch {
	case report.AnyFailed():
		return exitError(ExitFailure, "capgen: could not write %s", config.FileName)
	case report.AnySkipped():
		return exitError(ExitSkippedExisting, "capgen: %s already exists; use --force to overwrite", config.FileName)
	}
	return nil
}

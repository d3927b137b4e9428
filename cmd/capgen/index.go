package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beyondmcp/capgen/internal/config"
	"github.com/beyondmcp/capgen/internal/index"
)

// Index-specific flag values.
var (
	indexJSON   bool
	indexFilter string
	indexPrime  bool
)

// indexCmd is the subcommand for enumerating capability scripts.
var indexCmd = &cobra.Command{
	Use:   "index [dir]",
	Short: "List capability scripts with lightweight metadata",
	Long: `Enumerate standalone capability scripts in a directory and report name,
path, size, content fingerprint, description, and usage examples — without
loading full script contents into an agent context.

Use --prime-prompt to emit an agent prime prompt for progressive disclosure,
or --json for machine-readable output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexJSON, "json", false, "emit strict JSON on stdout")
	indexCmd.Flags().StringVar(&indexFilter, "filter", "", "case-insensitive substring filter on script names")
	indexCmd.Flags().BoolVar(&indexPrime, "prime-prompt", false, "emit an agent prime prompt instead of a listing")
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return exitError(ExitFailure, "capgen: cannot read %s (%v)", config.FileName, err)
	}

	dir := "./scripts"
	if cfg.ScriptsDir != "" {
		dir = cfg.ScriptsDir
	}
	if len(args) > 0 {
		dir = args[0]
	}

	entries, err := index.Scan(dir, indexFilter)
	if err != nil {
		return exitError(ExitFailure, "capgen: %v", err)
	}

	w := cmd.OutOrStdout()
	switch {
	case indexPrime:
		_, _ = fmt.Fprint(w, index.PrimePrompt(dir, entries))
	case indexJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if entries == nil {
			entries = []index.Entry{}
		}
		if err := enc.Encode(entries); err != nil {
			return exitError(ExitFailure, "capgen: encode index (%v)", err)
		}
	default:
		if len(entries) == 0 {
			_, _ = fmt.Fprintf(w, "no capability scripts found under %s\n", dir)
			return nil
		}
		for _, e := range entries {
			line := fmt.Sprintf("%-24s %8d  %s", e.Name, e.Size, e.Fingerprint)
			if e.Description != "" {
				line += "  " + e.Description
			}
			_, _ = fmt.Fprintln(w, line)
		}
	}
	return nil
}

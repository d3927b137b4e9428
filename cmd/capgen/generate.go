// Copyright 2026 The Capgen Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/beyondmcp/capgen/internal/config"
	"github.com/beyondmcp/capgen/internal/emit"
	"github.com/beyondmcp/capgen/internal/render"
	"github.com/beyondmcp/capgen/internal/spec"
)

// Generate-specific flag values.
var (
	genTarget      string
	genBinary      string
	genEndpoint    string
	genBaseURL     string
	genParams      []string
	genDescription string
	genOutCLI      string
	genOutScript   string
	genTestPlan    string
	genDocSnippets string
	genNoSimulate  bool
	genForce       bool
	genDryRun      bool
)

// generateCmd is the subcommand for scaffolding capability surfaces.
var generateCmd = &cobra.Command{
	Use:   "generate <capability>",
	Short: "Scaffold a CLI subcommand and/or standalone script for a capability",
	Long: `Generate boilerplate source files for a capability: a CLI subcommand file,
a self-contained script file, or both. Parameters are declared in order as
'name:type[:default]' tokens; a parameter without a default is required.

Generated files follow fixed conventions: a --json machine-readable mode with
a strict JSON error envelope, concise human output by default, and exit 0 on
success / non-zero on failure.

All validation runs before anything is written. Existing destinations are
skipped unless --force is given; skipped destinations exit with code 2.

A .capgen.yaml in the working directory may supply defaults for --binary,
--api-base-url, output directories, and the simulate stub. Explicit flags win.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(generateCmd.Flags())
}

// addGenerateFlags registers the generate flags on fs.
func addGenerateFlags(fs *pflag.FlagSet) {
	fs.StringVar(&genTarget, "target", "", "what to generate: cli, script, or both")
	fs.StringVar(&genBinary, "binary", "", "CLI binary name for generated help text and user agents")
	fs.StringVar(&genEndpoint, "endpoint", "", "API path for the generated HTTP call (must start with /)")
	fs.StringVar(&genBaseURL, "api-base-url", "", "absolute http(s) base URL embedded in generated code")
	fs.StringArrayVar(&genParams, "param", nil, "parameter spec 'name:type[:default]'; repeatable, order preserved")
	fs.StringVar(&genDescription, "description", "", "one-line description for the generated subcommand/script")
	fs.StringVar(&genOutCLI, "out-cli", "", "destination path for the generated CLI subcommand file")
	fs.StringVar(&genOutScript, "out-script", "", "destination path for the generated script file")
	fs.StringVar(&genTestPlan, "emit-test-plan", "", "test-plan doc to create or update with a section for this capability")
	fs.StringVar(&genDocSnippets, "emit-doc-snippets", "", "usage-snippet doc to create or update with a section for this capability")
	fs.BoolVar(&genNoSimulate, "no-simulate", false, "omit the --simulate stub mode from the generated script")
	fs.BoolVar(&genForce, "force", false, "overwrite existing destination files")
	fs.BoolVar(&genDryRun, "dry-run", false, "validate and render, report planned writes, write nothing")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	capability := spec.Snake(args[0])

	cfg, err := config.Load(".")
	if err != nil {
		return exitError(ExitFailure, "capgen: cannot read %s (%v)", config.FileName, err)
	}
	applyConfigDefaults(cmd, cfg, capability)

	params, err := spec.ParseParams(genParams)
	if err != nil {
		return exitError(ExitFailure, "capgen: %v", err)
	}

	req := &spec.Request{
		Capability:      capability,
		Target:          spec.Target(genTarget),
		Binary:          genBinary,
		Endpoint:        genEndpoint,
		APIBaseURL:      genBaseURL,
		Description:     genDescription,
		Params:          params,
		OutCLI:          genOutCLI,
		OutScript:       genOutScript,
		TestPlanPath:    genTestPlan,
		DocSnippetsPath: genDocSnippets,
		Simulate:        !genNoSimulate,
		Force:           genForce,
	}

	if err := spec.Validate(req); err != nil {
		return exitError(ExitFailure, "capgen: %v", err)
	}

	// Render everything up front so a template failure never leaves a
	// partially written output set.
	type output struct {
		path    string
		content string
	}
	var outputs []output
	if req.Target.IncludesCLI() {
		text, err := render.CLI(req)
		if err != nil {
			return exitError(ExitFailure, "capgen: %v", err)
		}
		outputs = append(outputs, output{req.OutCLI, text})
	}
	if req.Target.IncludesScript() {
		text, err := render.Script(req)
		if err != nil {
			return exitError(ExitFailure, "capgen: %v", err)
		}
		outputs = append(outputs, output{req.OutScript, text})
	}

	if genDryRun {
		w := cmd.OutOrStdout()
		for _, o := range outputs {
			fmt.Fprintf(w, "would write %s\n", o.path)
		}
		if req.TestPlanPath != "" {
			fmt.Fprintf(w, "would update %s\n", req.TestPlanPath)
		}
		if req.DocSnippetsPath != "" {
			fmt.Fprintf(w, "would update %s\n", req.DocSnippetsPath)
		}
		return nil
	}

	writer := emit.NewWriter(cmdFS, genForce)
	report := &emit.Report{}
	for _, o := range outputs {
		report.Add(writer.Write(o.path, o.content))
	}

	if req.TestPlanPath != "" {
		section := render.TestPlanSection(req)
		report.Add(writer.Merge(req.TestPlanPath, func(existing []byte) []byte {
			return render.MergeCapabilitySection(existing, render.TestPlanHeader, req.Capability, section)
		}))
	}
	if req.DocSnippetsPath != "" {
		section := render.DocSnippetsSection(req)
		report.Add(writer.Merge(req.DocSnippetsPath, func(existing []byte) []byte {
			return render.MergeCapabilitySection(existing, render.DocSnippetsHeader, req.Capability, section)
		}))
	}

	printWriteReport(cmd, report)

	switch {
	case report.AnyFailed():
		return exitError(ExitFailure, "capgen: one or more destinations failed")
	case report.AnySkipped():
		return exitError(ExitSkippedExisting, "capgen: skipped existing destination(s); use --force to overwrite")
	}

	slog.Info("generation complete", "capability", req.Capability, "outputs", len(report.Results))
	return nil
}

// applyConfigDefaults fills unset generate flags from .capgen.yaml values.
func applyConfigDefaults(cmd *cobra.Command, cfg *config.Config, capability string) {
	if genBinary == "" {
		genBinary = cfg.Binary
	}
	if genBaseURL == "" {
		genBaseURL = cfg.APIBaseURL
	}
	if genOutCLI == "" && cfg.OutCLIDir != "" {
		genOutCLI = filepath.Join(cfg.OutCLIDir, capability+".go")
	}
	if genOutScript == "" && cfg.OutScriptDir != "" {
		genOutScript = filepath.Join(cfg.OutScriptDir, capability+".go")
	}
	if !cmd.Flags().Changed("no-simulate") && cfg.NoSimulate != nil {
		genNoSimulate = *cfg.NoSimulate
	}
}

// printWriteReport prints the per-destination outcome summary.
func printWriteReport(cmd *cobra.Command, report *emit.Report) {
	w := cmd.OutOrStdout()
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)
	dim := color.New(color.Faint)

	for _, res := range report.Results {
		var prefix string
		switch res.Status {
		case emit.StatusWritten:
			prefix = green.Sprint("  + ")
		case emit.StatusSkipped:
			prefix = yellow.Sprint("  - ")
		default:
			prefix = red.Sprint("  ! ")
		}
		line := fmt.Sprintf("%s%-40s %s", prefix, res.Path, res.Status)
		if res.Reason != "" {
			line += dim.Sprintf(" (%s)", res.Reason)
		}
		_, _ = fmt.Fprintln(w, line)
	}
}

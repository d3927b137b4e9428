// Copyright 2026 The Capgen Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// marketsArgs is a valid generate invocation producing both surfaces under
// the current directory.
func marketsArgs() []string {
	return []string{
		"generate", "markets",
		"--target", "both",
		"--binary", "yourcmd",
		"--endpoint", "/v1/markets",
		"--api-base-url", "https://api.example.com",
		"--param", "limit:int:10",
		"--param", "query:str",
		"--out-cli", "out/markets.go",
		"--out-script", "out/scripts/markets.go",
	}
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var ece *exitCodeError
	require.ErrorAs(t, err, &ece)
	return ece.ExitCode()
}

func TestRunGenerate_Both(t *testing.T) {
	chdir(t, t.TempDir())

	out, err := runCapgen(t, marketsArgs()...)
	require.NoError(t, err)
	assert.Contains(t, out, "out/markets.go")
	assert.Contains(t, out, "out/scripts/markets.go")
	assert.Contains(t, out, "written")

	cli, err := os.ReadFile("out/markets.go")
	require.NoError(t, err)
	assert.Contains(t, string(cli), `IntVar(&marketsLimit, "limit", 10,`)
	assert.Contains(t, string(cli), `MarkFlagRequired("query")`)
	assert.Less(t, strings.Index(string(cli), `"limit"`), strings.Index(string(cli), `"query"`),
		"flags must follow --param order")

	script, err := os.ReadFile("out/scripts/markets.go")
	require.NoError(t, err)
	assert.Contains(t, string(script), "package main")
	assert.Contains(t, string(script), `flag.Int("limit", 10,`)
}

func TestRunGenerate_CLIOnly(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := runCapgen(t,
		"generate", "markets",
		"--target", "cli",
		"--binary", "yourcmd",
		"--endpoint", "/v1/markets",
		"--api-base-url", "https://api.example.com",
		"--out-cli", "markets.go",
	)
	require.NoError(t, err)
	assert.FileExists(t, "markets.go")
	assert.NoFileExists(t, "scripts")
}

func TestRunGenerate_SkipExistingExitsTwo(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := runCapgen(t, marketsArgs()...)
	require.NoError(t, err)

	before, err := os.ReadFile("out/markets.go")
	require.NoError(t, err)

	out, err := runCapgen(t, marketsArgs()...)
	assert.Equal(t, ExitSkippedExisting, exitCode(t, err))
	assert.Contains(t, out, "skipped")
	assert.Contains(t, out, "already-exists")

	// Existing content untouched.
	after, err := os.ReadFile("out/markets.go")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRunGenerate_ForceOverwrites(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := runCapgen(t, marketsArgs()...)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile("out/markets.go", []byte("stale"), 0o600))

	_, err = runCapgen(t, append(marketsArgs(), "--force")...)
	require.NoError(t, err)

	data, err := os.ReadFile("out/markets.go")
	require.NoError(t, err)
	assert.NotEqual(t, "stale", string(data))
}

func TestRunGenerate_MalformedParamExitsOne(t *testing.T) {
	chdir(t, t.TempDir())

	args := append(marketsArgs(), "--param", "count:integer:5")
	_, err := runCapgen(t, args...)
	assert.Equal(t, ExitFailure, exitCode(t, err))
	assert.Contains(t, err.Error(), "count:integer:5")

	// Nothing written on validation failure.
	assert.NoFileExists(t, "out/markets.go")
	assert.NoFileExists(t, "out/scripts/markets.go")
}

func TestRunGenerate_MissingOutScriptExitsOne(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := runCapgen(t,
		"generate", "markets",
		"--target", "both",
		"--binary", "yourcmd",
		"--endpoint", "/v1/markets",
		"--api-base-url", "https://api.example.com",
		"--out-cli", "out/markets.go",
	)
	assert.Equal(t, ExitFailure, exitCode(t, err))
	assert.NoFileExists(t, "out/markets.go")
}

func TestRunGenerate_InvalidBaseURLExitsOne(t *testing.T) {
	chdir(t, t.TempDir())

	args := marketsArgs()
	for i, a := range args {
		if a == "https://api.example.com" {
			args[i] = "api.example.com"
		}
	}
	_, err := runCapgen(t, args...)
	assert.Equal(t, ExitFailure, exitCode(t, err))
}

func TestRunGenerate_DryRunWritesNothing(t *testing.T) {
	chdir(t, t.TempDir())

	args := append(marketsArgs(), "--dry-run", "--emit-test-plan", "TEST_PLAN.md")
	out, err := runCapgen(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "would write out/markets.go")
	assert.Contains(t, out, "would write out/scripts/markets.go")
	assert.Contains(t, out, "would update TEST_PLAN.md")

	assert.NoFileExists(t, "out/markets.go")
	assert.NoFileExists(t, "TEST_PLAN.md")
}

func TestRunGenerate_EmitDocs(t *testing.T) {
	chdir(t, t.TempDir())

	args := append(marketsArgs(), "--emit-test-plan", "TEST_PLAN.md", "--emit-doc-snippets", "SNIPPETS.md")
	_, err := runCapgen(t, args...)
	require.NoError(t, err)

	plan, err := os.ReadFile("TEST_PLAN.md")
	require.NoError(t, err)
	assert.Contains(t, string(plan), "## markets")
	assert.Contains(t, string(plan), "<!-- capgen:capability:markets:start -->")

	snippets, err := os.ReadFile("SNIPPETS.md")
	require.NoError(t, err)
	assert.Contains(t, string(snippets), "capgen generate markets")
}

func TestRunGenerate_DocReemitDedupes(t *testing.T) {
	chdir(t, t.TempDir())

	args := append(marketsArgs(), "--emit-test-plan", "TEST_PLAN.md")
	_, err := runCapgen(t, args...)
	require.NoError(t, err)

	// Regenerating dedupes the doc section by capability; the skipped source
	// files still force exit code 2.
	_, err = runCapgen(t, args...)
	assert.Equal(t, ExitSkippedExisting, exitCode(t, err))

	plan, err := os.ReadFile("TEST_PLAN.md")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(plan), "<!-- capgen:capability:markets:start -->"))
	assert.Equal(t, 1, strings.Count(string(plan), "## markets"))
}

func TestRunGenerate_ConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	cfg := `binary: yourcmd
api_base_url: https://api.example.com
out_cli_dir: apps/cli
out_script_dir: apps/scripts
`
	require.NoError(t, os.WriteFile(".capgen.yaml", []byte(cfg), 0o600))

	_, err := runCapgen(t,
		"generate", "markets",
		"--target", "both",
		"--endpoint", "/v1/markets",
	)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join("apps", "cli", "markets.go"))
	assert.FileExists(t, filepath.Join("apps", "scripts", "markets.go"))
}

func TestRunGenerate_FlagsWinOverConfig(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile(".capgen.yaml", []byte("out_cli_dir: apps/cli\n"), 0o600))

	_, err := runCapgen(t, marketsArgs()...)
	require.NoError(t, err)
	assert.FileExists(t, "out/markets.go")
	assert.NoFileExists(t, filepath.Join("apps", "cli", "markets.go"))
}

func TestRunGenerate_NoSimulate(t *testing.T) {
	chdir(t, t.TempDir())

	args := append(marketsArgs(), "--no-simulate")
	_, err := runCapgen(t, args...)
	require.NoError(t, err)

	script, err := os.ReadFile("out/scripts/markets.go")
	require.NoError(t, err)
	assert.NotContains(t, string(script), "simulate")
}

func TestRunGenerate_NoSimulateFlagOverridesConfig(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile(".capgen.yaml", []byte("no_simulate: true\n"), 0o600))

	// Explicit --no-simulate=false re-enables the stub despite the config.
	args := append(marketsArgs(), "--no-simulate=false")
	_, err := runCapgen(t, args...)
	require.NoError(t, err)

	script, err := os.ReadFile("out/scripts/markets.go")
	require.NoError(t, err)
	assert.Contains(t, string(script), `flag.Bool("simulate"`)
}

func TestRunGenerate_NormalizesCapabilityName(t *testing.T) {
	chdir(t, t.TempDir())

	args := marketsArgs()
	args[1] = "Market Depth"
	_, err := runCapgen(t, args...)
	require.NoError(t, err)

	cli, err := os.ReadFile("out/markets.go")
	require.NoError(t, err)
	assert.Contains(t, string(cli), `Use:   "market-depth"`)
}

func TestExitCodeError(t *testing.T) {
	err := exitError(ExitSkippedExisting, "skipped %d destination(s)", 2)
	assert.Equal(t, "skipped 2 destination(s)", err.Error())
	assert.Equal(t, ExitSkippedExisting, err.ExitCode())

	var ece *exitCodeError
	assert.True(t, errors.As(error(err), &ece))
}

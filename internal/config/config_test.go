package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	content := `binary: yourcmd
api_base_url: https://api.example.com
out_cli_dir: apps/cli
out_script_dir: apps/scripts
scripts_dir: apps/scripts
no_simulate: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "yourcmd", cfg.Binary)
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, "apps/cli", cfg.OutCLIDir)
	assert.Equal(t, "apps/scripts", cfg.OutScriptDir)
	assert.Equal(t, "apps/scripts", cfg.ScriptsDir)
	require.NotNil(t, cfg.NoSimulate)
	assert.True(t, *cfg.NoSimulate)
}

func TestLoad_UnsetNoSimulateIsNil(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("binary: x\n"), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Nil(t, cfg.NoSimulate, "absent no_simulate must stay unset, not default to false")
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("binary: [unclosed\n"), 0o600))

	_, err := Load(dir)
	require.Error(t, err)
}

func TestWrite_RoundTrip(t *testing.T) {
	yes := true
	cfg := &Config{Binary: "yourcmd", APIBaseURL: "https://api.example.com", NoSimulate: &yes}

	var sb strings.Builder
	require.NoError(t, Write(&sb, cfg))

	assert.Contains(t, sb.String(), "binary: yourcmd")
	assert.Contains(t, sb.String(), "no_simulate: true")
	assert.NotContains(t, sb.String(), "out_cli_dir", "zero fields are omitted")
}

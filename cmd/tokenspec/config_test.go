package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfigFile(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	orig := configPath
	configPath = path
	t.Cleanup(func() { configPath = orig })
}

func TestLoadProjectConfig_Missing(t *testing.T) {
	orig := configPath
	configPath = filepath.Join(t.TempDir(), "nope.yaml")
	t.Cleanup(func() { configPath = orig })

	cfg, err := loadProjectConfig()
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadProjectConfig_Parses(t *testing.T) {
	withConfigFile(t, `
version: "1"
strategy: newest
pattern:
  separator: "/"
  case: kebab
include:
  - "**/theme.json"
log_level: debug
mcp_log: .tokenspec/mcp.jsonl
`)

	cfg, err := loadProjectConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "newest", cfg.Strategy)
	require.NotNil(t, cfg.Pattern)
	assert.Equal(t, "/", cfg.Pattern.Separator)
	assert.Equal(t, []string{"**/theme.json"}, cfg.Include)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ".tokenspec/mcp.jsonl", cfg.MCPLog)
}

func TestLoadProjectConfig_Malformed(t *testing.T) {
	withConfigFile(t, "strategy: [")
	_, err := loadProjectConfig()
	assert.Error(t, err)
}

func TestResolveString(t *testing.T) {
	assert.Equal(t, "flag", resolveString("flag", "config", "default"))
	assert.Equal(t, "config", resolveString("", "config", "default"))
	assert.Equal(t, "default", resolveString("", "", "default"))
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/tokenspec/pkg/token"
)

func TestResolvePattern_Nil(t *testing.T) {
	p, err := resolvePattern("", "", nil)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestResolvePattern_FromFlags(t *testing.T) {
	p, err := resolvePattern("/", "kebab", nil)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, token.SeparatorSlash, p.Separator)
	assert.Equal(t, token.CaseKebab, p.Case)
}

func TestResolvePattern_PartialFillsDefault(t *testing.T) {
	p, err := resolvePattern("_", "", nil)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, token.SeparatorUnderscore, p.Separator)
	assert.Equal(t, token.CaseKebab, p.Case)
}

func TestResolvePattern_FromConfig(t *testing.T) {
	cfg := &ProjectConfig{Pattern: &PatternConfig{Separator: ".", Case: "snake"}}
	p, err := resolvePattern("", "", cfg)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, token.SeparatorDot, p.Separator)
	assert.Equal(t, token.CaseSnake, p.Case)
}

func TestResolvePattern_FlagBeatsConfig(t *testing.T) {
	cfg := &ProjectConfig{Pattern: &PatternConfig{Separator: ".", Case: "snake"}}
	p, err := resolvePattern("/", "", cfg)
	require.NoError(t, err)
	assert.Equal(t, token.SeparatorSlash, p.Separator)
	assert.Equal(t, token.CaseSnake, p.Case)
}

func TestResolvePattern_Invalid(t *testing.T) {
	_, err := resolvePattern("|", "", nil)
	assert.Error(t, err)

	_, err = resolvePattern("", "shouty", nil)
	assert.Error(t, err)
}

func TestCollectPaths(t *testing.T) {
	root := t.TempDir()
	tokensFile := filepath.Join(root, "tokens.json")
	require.NoError(t, os.WriteFile(tokensFile, []byte("{}"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "themes"), 0755))
	themeFile := filepath.Join(root, "themes", "dark.tokens.json")
	require.NoError(t, os.WriteFile(themeFile, []byte("{}"), 0644))

	// A directory argument is searched recursively.
	paths, err := collectPaths([]string{root}, nil, nil)
	require.NoError(t, err)
	assert.Len(t, paths, 2)

	// A file argument is taken as-is, matching or not.
	other := filepath.Join(root, "export.json")
	require.NoError(t, os.WriteFile(other, []byte("{}"), 0644))
	paths, err = collectPaths([]string{other}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{other}, paths)
}

func TestCollectPaths_MissingArg(t *testing.T) {
	_, err := collectPaths([]string{"/does/not/exist"}, nil, nil)
	assert.Error(t, err)
}

func TestCollectPaths_NothingFound(t *testing.T) {
	_, err := collectPaths([]string{t.TempDir()}, nil, nil)
	assert.Error(t, err)
}

func TestWriteJSON_ToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, writeJSON(map[string]string{"a": "b"}, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"a": "b"`)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelens/pagelens/internal/extractor"
)

// Test Plan for configuration loading:
// - A missing config file yields the defaults
// - .pagelens/config.yml values override the defaults
// - Environment variables override the file
// - Invalid files and invalid values fail loading
// - ToIndexerConfig carries every field across

func writeConfigFile(t *testing.T, root, content string) {
	t.Helper()
	dir := filepath.Join(root, ".pagelens")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfigFromDir(t.TempDir())
	require.NoError(t, err)

	defaults := Default()
	assert.Equal(t, defaults.Paths.Code, cfg.Paths.Code)
	assert.Equal(t, defaults.Paths.Ignore, cfg.Paths.Ignore)
	assert.Equal(t, string(extractor.ProfilePlaywright), cfg.Extraction.Profile)
	assert.False(t, cfg.Extraction.IncludeCode)
	assert.Equal(t, extractor.DefaultTestSuffixes, cfg.Extraction.TestSuffixes)
	assert.Equal(t, ".pagelens", cfg.Output.Dir)
	assert.Empty(t, cfg.Output.Database)
}

func TestLoad_FromFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfigFile(t, root, `paths:
  code:
    - "**/*.ts"
  ignore:
    - "vendor/**"
extraction:
  profile: generic
  include_code: true
  test_suffixes:
    - ".e2e.ts"
output:
  dir: out
  database: out/chunks.db
`)

	cfg, err := LoadConfigFromDir(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"**/*.ts"}, cfg.Paths.Code)
	assert.Equal(t, []string{"vendor/**"}, cfg.Paths.Ignore)
	assert.Equal(t, "generic", cfg.Extraction.Profile)
	assert.True(t, cfg.Extraction.IncludeCode)
	assert.Equal(t, []string{".e2e.ts"}, cfg.Extraction.TestSuffixes)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "out/chunks.db", cfg.Output.Database)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	root := t.TempDir()
	writeConfigFile(t, root, `extraction:
  profile: playwright
`)
	t.Setenv("PAGELENS_EXTRACTION_PROFILE", "generic")

	cfg, err := LoadConfigFromDir(root)
	require.NoError(t, err)
	assert.Equal(t, "generic", cfg.Extraction.Profile)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfigFile(t, root, "extraction: [not: valid\n")

	_, err := LoadConfigFromDir(root)
	assert.Error(t, err)
}

func TestLoad_InvalidProfile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfigFile(t, root, `extraction:
  profile: cypress
`)

	_, err := LoadConfigFromDir(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile")
}

func TestToIndexerConfig(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Extraction.Profile = "generic"
	cfg.Extraction.IncludeCode = true

	engineCfg := cfg.ToIndexerConfig("/work/project")

	assert.Equal(t, "/work/project", engineCfg.RootDir)
	assert.Equal(t, extractor.ProfileGeneric, engineCfg.Profile)
	assert.True(t, engineCfg.IncludeCode)
	assert.Equal(t, cfg.Paths.Code, engineCfg.CodePatterns)
	assert.Equal(t, cfg.Paths.Ignore, engineCfg.IgnorePatterns)
	assert.Equal(t, cfg.Extraction.TestSuffixes, engineCfg.TestSuffixes)
	assert.Equal(t, cfg.Extraction.PageObjectMarkers, engineCfg.PageObjectMarkers)
}

package config

import (
	"github.com/pagelens/pagelens/internal/extractor"
	"github.com/pagelens/pagelens/internal/indexer"
)

// Config represents the complete pagelens configuration.
// It can be loaded from .pagelens/config.yml with environment variable
// overrides.
type Config struct {
	Paths      PathsConfig      `yaml:"paths" mapstructure:"paths"`
	Extraction ExtractionConfig `yaml:"extraction" mapstructure:"extraction"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
}

// PathsConfig defines which files to extract from and which to ignore.
type PathsConfig struct {
	Code   []string `yaml:"code" mapstructure:"code"`     // glob patterns for source files
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns to ignore
}

// ExtractionConfig defines classifier behavior.
type ExtractionConfig struct {
	Profile           string   `yaml:"profile" mapstructure:"profile"`                         // "generic" or "playwright"
	IncludeCode       bool     `yaml:"include_code" mapstructure:"include_code"`               // copy source text into chunks
	TestSuffixes      []string `yaml:"test_suffixes" mapstructure:"test_suffixes"`             // filename suffixes of spec/setup files
	PageObjectMarkers []string `yaml:"page_object_markers" mapstructure:"page_object_markers"` // import path markers for UI-object modules
}

// OutputConfig defines where results are written.
type OutputConfig struct {
	Dir      string `yaml:"dir" mapstructure:"dir"`           // chunk file directory, relative to root
	Database string `yaml:"database" mapstructure:"database"` // optional SQLite path; empty disables
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Code: []string{
				"**/*.ts",
				"**/*.tsx",
				"**/*.js",
				"**/*.jsx",
				"**/*.mjs",
				"**/*.cjs",
			},
			Ignore: []string{
				"node_modules/**",
				"dist/**",
				"build/**",
				".git/**",
				"coverage/**",
				"playwright-report/**",
				"test-results/**",
			},
		},
		Extraction: ExtractionConfig{
			Profile:           string(extractor.ProfilePlaywright),
			IncludeCode:       false,
			TestSuffixes:      extractor.DefaultTestSuffixes,
			PageObjectMarkers: extractor.DefaultPageObjectMarkers,
		},
		Output: OutputConfig{
			Dir:      ".pagelens",
			Database: "",
		},
	}
}

// ToIndexerConfig converts the configuration into an engine configuration
// rooted at rootDir.
func (c *Config) ToIndexerConfig(rootDir string) *indexer.Config {
	return &indexer.Config{
		RootDir:           rootDir,
		Profile:           extractor.Profile(c.Extraction.Profile),
		IncludeCode:       c.Extraction.IncludeCode,
		CodePatterns:      c.Paths.Code,
		IgnorePatterns:    c.Paths.Ignore,
		TestSuffixes:      c.Extraction.TestSuffixes,
		PageObjectMarkers: c.Extraction.PageObjectMarkers,
	}
}

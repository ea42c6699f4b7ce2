package indexer

import (
	"context"

	"github.com/pagelens/pagelens/internal/extractor"
)

// Extractor is the high-level API for chunk extraction runs.
type Extractor interface {
	// Extract walks the project once and returns every chunk in traversal
	// order, together with run statistics.
	Extract(ctx context.Context) (*Result, error)

	// Watch re-runs extraction whenever a relevant file changes, passing
	// each fresh result to onResult. Blocks until the context is cancelled.
	Watch(ctx context.Context, onResult func(*Result)) error

	// Close releases the parser and any other held resources.
	Close() error
}

// Config contains configuration for an extraction run.
type Config struct {
	// Root directory of the project to extract from.
	RootDir string

	// Profile selects the classifier: generic or playwright.
	Profile extractor.Profile

	// IncludeCode copies verbatim source slices into chunks.
	IncludeCode bool

	// File selection.
	CodePatterns   []string
	IgnorePatterns []string

	// Playwright-profile conventions.
	TestSuffixes      []string
	PageObjectMarkers []string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig(rootDir string) *Config {
	return &Config{
		RootDir: rootDir,
		Profile: extractor.ProfilePlaywright,
		CodePatterns: []string{
			"**/*.ts",
			"**/*.tsx",
			"**/*.js",
			"**/*.jsx",
			"**/*.mjs",
			"**/*.cjs",
		},
		IgnorePatterns: []string{
			"node_modules/**",
			"dist/**",
			"build/**",
			".git/**",
			"coverage/**",
			"playwright-report/**",
			"test-results/**",
		},
		TestSuffixes:      extractor.DefaultTestSuffixes,
		PageObjectMarkers: extractor.DefaultPageObjectMarkers,
	}
}

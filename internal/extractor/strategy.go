package extractor

import (
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Profile selects which classifier runs over a file set.
type Profile string

const (
	// ProfileGeneric extracts functions, classes, and methods.
	ProfileGeneric Profile = "generic"
	// ProfilePlaywright extracts tests, locators, actions, and fixtures
	// from Playwright-style suites and page-object classes.
	ProfilePlaywright Profile = "playwright"
)

// Strategy is the per-file extraction strategy under the Playwright profile.
// It is decided once per file, from the filename alone, before any node is
// inspected.
type Strategy string

const (
	// StrategyTestFile extracts grouped and standalone test cases.
	StrategyTestFile Strategy = "test-file"
	// StrategyPageObject extracts locators, properties, and member groups
	// from UI-object classes.
	StrategyPageObject Strategy = "page-object"
)

// DefaultTestSuffixes identify spec and setup files.
var DefaultTestSuffixes = []string{
	".spec.ts", ".spec.tsx", ".spec.js", ".spec.jsx",
	".test.ts", ".test.tsx", ".test.js", ".test.jsx",
	".setup.ts", ".setup.js",
}

// DetectStrategy decides the extraction strategy for a file path.
func DetectStrategy(path string, testSuffixes []string) Strategy {
	if len(testSuffixes) == 0 {
		testSuffixes = DefaultTestSuffixes
	}

	base := strings.ToLower(filepath.Base(path))
	for _, suffix := range testSuffixes {
		if strings.HasSuffix(base, suffix) {
			return StrategyTestFile
		}
	}
	return StrategyPageObject
}

// PlaywrightOptions configures the Playwright-profile classifier.
type PlaywrightOptions struct {
	// IncludeCode copies the verbatim source slice into each chunk.
	IncludeCode bool
	// Relations is the class-to-test-file graph built by the import
	// pre-pass. May be nil, in which case no relationship metadata is
	// attached.
	Relations *RelationshipGraph
	// TestSuffixes overrides DefaultTestSuffixes.
	TestSuffixes []string
}

// ExtractPlaywright runs the Playwright-profile classifier over one parsed
// file, dispatching to the test-file or page-object strategy.
func ExtractPlaywright(file string, source []byte, root *sitter.Node, opts PlaywrightOptions) []Chunk {
	switch DetectStrategy(file, opts.TestSuffixes) {
	case StrategyTestFile:
		return extractTestFile(file, source, root, opts)
	default:
		return extractPageObject(file, source, root, opts)
	}
}

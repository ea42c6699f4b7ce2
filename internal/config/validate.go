package config

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/pagelens/pagelens/internal/extractor"
)

// Validate checks a configuration for errors that would make an extraction
// run fail or behave unpredictably.
func Validate(cfg *Config) error {
	if len(cfg.Paths.Code) == 0 {
		return fmt.Errorf("paths.code must contain at least one pattern")
	}

	for _, pattern := range cfg.Paths.Code {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("invalid code pattern %q: %w", pattern, err)
		}
	}
	for _, pattern := range cfg.Paths.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
	}

	switch extractor.Profile(cfg.Extraction.Profile) {
	case extractor.ProfileGeneric, extractor.ProfilePlaywright:
	default:
		return fmt.Errorf("extraction.profile must be %q or %q, got %q",
			extractor.ProfileGeneric, extractor.ProfilePlaywright, cfg.Extraction.Profile)
	}

	for _, suffix := range cfg.Extraction.TestSuffixes {
		if !strings.HasPrefix(suffix, ".") {
			return fmt.Errorf("test suffix %q must start with a dot", suffix)
		}
	}

	if cfg.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}

	return nil
}

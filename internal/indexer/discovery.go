package indexer

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/pagelens/pagelens/internal/extractor"
)

// compiledPattern holds both the pattern string and its compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery handles file discovery with glob patterns and ignore rules.
type FileDiscovery struct {
	rootDir        string
	codePatterns   []compiledPattern
	ignorePatterns []compiledPattern
	testSuffixes   []string
}

// NewFileDiscovery creates a new file discovery instance.
func NewFileDiscovery(rootDir string, codePatterns, ignorePatterns, testSuffixes []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{
		rootDir:      rootDir,
		testSuffixes: testSuffixes,
	}

	for _, pattern := range codePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		fd.codePatterns = append(fd.codePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		fd.ignorePatterns = append(fd.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return fd, nil
}

// DiscoverFiles walks the root and returns root-relative test files and
// object files, each sorted for deterministic traversal order.
func (fd *FileDiscovery) DiscoverFiles() (testFiles []string, objectFiles []string, err error) {
	testFiles = []string{}
	objectFiles = []string{}

	err = filepath.Walk(fd.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(fd.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if fd.shouldIgnore(relPath) {
			return nil
		}
		if !fd.matchesAnyPattern(relPath, fd.codePatterns) {
			return nil
		}

		if extractor.DetectStrategy(relPath, fd.testSuffixes) == extractor.StrategyTestFile {
			testFiles = append(testFiles, relPath)
		} else {
			objectFiles = append(objectFiles, relPath)
		}
		return nil
	})

	sort.Strings(testFiles)
	sort.Strings(objectFiles)
	return testFiles, objectFiles, err
}

// shouldIgnore checks if a path matches any ignore pattern.
func (fd *FileDiscovery) shouldIgnore(relPath string) bool {
	// The output directory is never indexed.
	if strings.HasPrefix(relPath, ".pagelens/") || relPath == ".pagelens" {
		return true
	}

	if fd.matchesAnyPattern(relPath, fd.ignorePatterns) {
		return true
	}

	// A directory path also matches its own /** pattern, so "node_modules"
	// is ignored by the pattern "node_modules/**".
	return fd.matchesAnyPattern(relPath+"/**", fd.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (fd *FileDiscovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Root-level files have no slash, so "**/*.ts" would miss "app.ts".
	// Retry those against the pattern with the **/ prefix removed.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}

	return false
}

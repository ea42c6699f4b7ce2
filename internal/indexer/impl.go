package indexer

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pagelens/pagelens/internal/extractor"
)

// engine implements the Extractor interface. Execution is single-threaded
// and synchronous: each file is read, parsed, and fully classified before
// the next begins. The parser is owned exclusively by the engine.
type engine struct {
	config    *Config
	parser    *extractor.Parser
	discovery *FileDiscovery
	progress  ProgressReporter
}

// New creates a new extraction engine.
func New(config *Config) (Extractor, error) {
	return NewWithProgress(config, &NoOpProgressReporter{})
}

// NewWithProgress creates a new extraction engine with a custom progress
// reporter.
func NewWithProgress(config *Config, progress ProgressReporter) (Extractor, error) {
	if config.RootDir == "" {
		return nil, fmt.Errorf("root directory is required")
	}

	discovery, err := NewFileDiscovery(
		config.RootDir,
		config.CodePatterns,
		config.IgnorePatterns,
		config.TestSuffixes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create file discovery: %w", err)
	}

	if progress == nil {
		progress = &NoOpProgressReporter{}
	}

	return &engine{
		config:    config,
		parser:    extractor.NewParser(),
		discovery: discovery,
		progress:  progress,
	}, nil
}

// Extract runs one full extraction pass: discovery, the relationship
// pre-pass (playwright profile only), then per-file classification in sorted
// file order. Per-file failures are logged and skipped; they never abort the
// run.
func (e *engine) Extract(ctx context.Context) (*Result, error) {
	start := time.Now()
	stats := &ProcessingStats{ChunksByKind: make(map[extractor.ChunkKind]int)}

	e.progress.OnDiscoveryStart()
	testFiles, objectFiles, err := e.discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}
	stats.FilesDiscovered = len(testFiles) + len(objectFiles)
	stats.TestFiles = len(testFiles)
	e.progress.OnDiscoveryComplete(len(testFiles), len(objectFiles))

	// The relationship graph must be complete before any page-object class
	// is classified.
	var relations *extractor.RelationshipGraph
	if e.config.Profile == extractor.ProfilePlaywright {
		e.progress.OnRelationsStart(len(testFiles))
		analyzer := extractor.NewRelationshipAnalyzer(e.parser, e.config.PageObjectMarkers)
		relations = analyzer.Analyze(e.config.RootDir, testFiles)
		stats.RelationClasses, stats.RelationTestFiles = relations.Size()
		e.progress.OnRelationsComplete(stats.RelationClasses, stats.RelationTestFiles)
	}

	allFiles := make([]string, 0, len(testFiles)+len(objectFiles))
	allFiles = append(allFiles, testFiles...)
	allFiles = append(allFiles, objectFiles...)

	e.progress.OnFileProcessingStart(len(allFiles))

	var chunks []extractor.Chunk
	for _, file := range allFiles {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		fileChunks, err := e.extractFile(file, relations)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", file, err)
			stats.FilesSkipped++
			e.progress.OnFileProcessed(file)
			continue
		}

		stats.FilesProcessed++
		stats.countChunks(fileChunks)
		chunks = append(chunks, fileChunks...)
		e.progress.OnFileProcessed(file)
	}

	stats.ProcessingTimeSeconds = time.Since(start).Seconds()
	e.progress.OnComplete(stats)

	return &Result{Chunks: chunks, Stats: stats}, nil
}

// extractFile reads, parses, and classifies a single file.
func (e *engine) extractFile(relPath string, relations *extractor.RelationshipGraph) ([]extractor.Chunk, error) {
	source, err := os.ReadFile(filepath.Join(e.config.RootDir, relPath))
	if err != nil {
		return nil, err
	}

	tree, err := e.parser.Parse(source, extractor.VariantForFile(relPath))
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()

	if e.config.Profile == extractor.ProfileGeneric {
		return extractor.ExtractGeneric(relPath, source, root, e.config.IncludeCode), nil
	}

	return extractor.ExtractPlaywright(relPath, source, root, extractor.PlaywrightOptions{
		IncludeCode:  e.config.IncludeCode,
		Relations:    relations,
		TestSuffixes: e.config.TestSuffixes,
	}), nil
}

// Close releases the parser.
func (e *engine) Close() error {
	e.parser.Close()
	return nil
}

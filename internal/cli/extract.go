package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pagelens/pagelens/internal/config"
	"github.com/pagelens/pagelens/internal/indexer"
	"github.com/pagelens/pagelens/internal/storage"
)

var (
	profileFlag     string
	includeCodeFlag bool
	outFlag         string
	dbFlag          string
	quietFlag       bool
	watchFlag       bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [dir]",
	Short: "Extract chunks from a source tree",
	Long: `Extract walks a JavaScript/TypeScript project and produces classified
chunks with location and relationship metadata.

The extractor:
  - Discovers source files by glob patterns
  - Builds the class-to-test-file relationship graph (playwright profile)
  - Classifies each file: tests, locators, actions, fixtures, or generic
    functions/classes/methods
  - Writes chunks to .pagelens/chunks.json (and optionally SQLite)

Examples:
  # Extract the current directory with the playwright profile
  pagelens extract

  # Generic profile with verbatim source included
  pagelens extract --profile generic --include-code

  # Also persist chunks into a SQLite database
  pagelens extract --db .pagelens/chunks.db

  # Watch for changes and re-extract
  pagelens extract --watch
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVar(&profileFlag, "profile", "", "classifier profile: generic or playwright (default from config)")
	extractCmd.Flags().BoolVar(&includeCodeFlag, "include-code", false, "include verbatim source text in chunks")
	extractCmd.Flags().StringVar(&outFlag, "out", "", "output chunk file (default <root>/.pagelens/chunks.json)")
	extractCmd.Flags().StringVar(&dbFlag, "db", "", "also write chunks to a SQLite database at this path")
	extractCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "disable progress bars and non-error output")
	extractCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "watch for file changes and re-extract")
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling extraction...")
		cancel()
	}()

	rootDir, err := resolveRootDir(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if profileFlag != "" {
		cfg.Extraction.Profile = profileFlag
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}
	if includeCodeFlag {
		cfg.Extraction.IncludeCode = true
	}

	engineConfig := cfg.ToIndexerConfig(rootDir)

	outPath := outFlag
	if outPath == "" {
		outPath = filepath.Join(rootDir, cfg.Output.Dir, "chunks.json")
	}
	dbPath := dbFlag
	if dbPath == "" {
		dbPath = cfg.Output.Database
	}

	progress := NewCLIProgressReporter(quietFlag)
	engine, err := indexer.NewWithProgress(engineConfig, progress)
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}
	defer engine.Close()

	writeResult := func(result *indexer.Result) error {
		chunkFile := &storage.ChunkFile{
			Metadata: storage.Metadata{
				Version:     storage.FormatVersion,
				GeneratedAt: time.Now().UTC(),
				Root:        rootDir,
				Profile:     cfg.Extraction.Profile,
				TotalChunks: len(result.Chunks),
			},
			Chunks: result.Chunks,
		}
		if err := storage.WriteChunkFile(outPath, chunkFile); err != nil {
			return fmt.Errorf("failed to write chunk file: %w", err)
		}

		if dbPath != "" {
			store, err := storage.NewChunkStore(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open chunk database: %w", err)
			}
			defer store.Close()
			if err := store.WriteChunks(result.Chunks); err != nil {
				return fmt.Errorf("failed to write chunk database: %w", err)
			}
		}
		return nil
	}

	result, err := engine.Extract(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("extraction cancelled")
		}
		return fmt.Errorf("extraction failed: %w", err)
	}
	if err := writeResult(result); err != nil {
		return err
	}

	if quietFlag {
		fmt.Printf("Extraction complete: %d chunks in %.2fs\n",
			result.Stats.TotalChunks, result.Stats.ProcessingTimeSeconds)
	}

	if watchFlag {
		if !quietFlag {
			log.Println("Starting watch mode...")
		}
		err := engine.Watch(ctx, func(result *indexer.Result) {
			if err := writeResult(result); err != nil {
				log.Printf("Error writing results: %v", err)
			}
		})
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("watch mode failed: %w", err)
		}
		if !quietFlag {
			log.Println("Watch mode stopped")
		}
	}

	return nil
}

// resolveRootDir returns the absolute project root from the optional
// positional argument, defaulting to the working directory.
func resolveRootDir(args []string) (string, error) {
	if len(args) == 1 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to resolve root directory: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}

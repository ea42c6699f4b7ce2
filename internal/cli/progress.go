package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/pagelens/pagelens/internal/extractor"
	"github.com/pagelens/pagelens/internal/indexer"
)

// kindOrder fixes the display order of the per-kind summary.
var kindOrder = []extractor.ChunkKind{
	extractor.KindFunction,
	extractor.KindMethod,
	extractor.KindConstructor,
	extractor.KindClass,
	extractor.KindTest,
	extractor.KindLocator,
	extractor.KindAction,
	extractor.KindAssert,
	extractor.KindHelper,
	extractor.KindSetup,
	extractor.KindFixture,
	extractor.KindConstant,
	extractor.KindIIFE,
}

// CLIProgressReporter implements progress reporting with progress bars.
type CLIProgressReporter struct {
	quiet   bool
	fileBar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet}
}

func (c *CLIProgressReporter) OnDiscoveryStart() {
	if c.quiet {
		return
	}
	log.Println("Discovering files...")
}

func (c *CLIProgressReporter) OnDiscoveryComplete(testFiles, objectFiles int) {
	if c.quiet {
		return
	}
	log.Printf("Found %d test files and %d object files\n", testFiles, objectFiles)
}

func (c *CLIProgressReporter) OnRelationsStart(testFiles int) {
	if c.quiet {
		return
	}
	log.Printf("Analyzing imports across %d test files...\n", testFiles)
}

func (c *CLIProgressReporter) OnRelationsComplete(classes, testFiles int) {
	if c.quiet {
		return
	}
	log.Printf("Relationship graph: %d classes linked to %d test files\n", classes, testFiles)
}

func (c *CLIProgressReporter) OnFileProcessingStart(totalFiles int) {
	if c.quiet {
		return
	}
	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Extracting chunks"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) OnFileProcessed(fileName string) {
	if c.quiet {
		return
	}
	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(stats *indexer.ProcessingStats) {
	if c.quiet {
		return
	}

	fmt.Println()
	fmt.Printf("✓ Extraction complete: %d chunks in %.1fs\n",
		stats.TotalChunks, stats.ProcessingTimeSeconds)
	fmt.Printf("  Files processed: %d (%d skipped)\n", stats.FilesProcessed, stats.FilesSkipped)
	if len(stats.ChunksByKind) > 0 {
		for _, kind := range kindOrder {
			if count := stats.ChunksByKind[kind]; count > 0 {
				fmt.Printf("  %-12s %d\n", string(kind)+":", count)
			}
		}
	}
}

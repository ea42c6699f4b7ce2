package indexer

// ProgressReporter provides callbacks for reporting extraction progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnDiscoveryStart is called when file discovery begins.
	OnDiscoveryStart()

	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(testFiles, objectFiles int)

	// OnRelationsStart is called before the import relationship pre-pass.
	OnRelationsStart(testFiles int)

	// OnRelationsComplete is called when the relationship graph is built.
	OnRelationsComplete(classes, testFiles int)

	// OnFileProcessingStart is called before classifying files.
	OnFileProcessingStart(totalFiles int)

	// OnFileProcessed is called after each file is classified.
	OnFileProcessed(fileName string)

	// OnComplete is called when extraction completes successfully.
	OnComplete(stats *ProcessingStats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryStart()                           {}
func (n *NoOpProgressReporter) OnDiscoveryComplete(testFiles, objects int)  {}
func (n *NoOpProgressReporter) OnRelationsStart(testFiles int)              {}
func (n *NoOpProgressReporter) OnRelationsComplete(classes, testFiles int)  {}
func (n *NoOpProgressReporter) OnFileProcessingStart(totalFiles int)        {}
func (n *NoOpProgressReporter) OnFileProcessed(fileName string)             {}
func (n *NoOpProgressReporter) OnComplete(stats *ProcessingStats)           {}

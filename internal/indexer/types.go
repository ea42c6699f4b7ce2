package indexer

import "github.com/pagelens/pagelens/internal/extractor"

// Result is the output of one extraction run.
type Result struct {
	Chunks []extractor.Chunk
	Stats  *ProcessingStats
}

// ProcessingStats contains statistics about an extraction run.
type ProcessingStats struct {
	FilesDiscovered int
	TestFiles       int
	FilesProcessed  int
	FilesSkipped    int

	TotalChunks  int
	ChunksByKind map[extractor.ChunkKind]int

	RelationClasses   int
	RelationTestFiles int

	ProcessingTimeSeconds float64
}

// countChunks tallies per-kind chunk counts into the stats.
func (s *ProcessingStats) countChunks(chunks []extractor.Chunk) {
	if s.ChunksByKind == nil {
		s.ChunksByKind = make(map[extractor.ChunkKind]int)
	}
	for _, chunk := range chunks {
		s.ChunksByKind[chunk.Kind]++
	}
	s.TotalChunks += len(chunks)
}

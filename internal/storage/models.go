package storage

import (
	"time"

	"github.com/pagelens/pagelens/internal/extractor"
)

// FormatVersion identifies the chunk file layout for downstream consumers.
const FormatVersion = "1.0"

// Metadata describes one extraction run. It lives in the envelope only, so
// the chunk array stays byte-identical across runs on unchanged input.
type Metadata struct {
	Version     string    `json:"version"`
	GeneratedAt time.Time `json:"generated_at"`
	Root        string    `json:"root"`
	Profile     string    `json:"profile"`
	TotalChunks int       `json:"total_chunks"`
}

// ChunkFile is the JSON document produced by an extraction run.
type ChunkFile struct {
	Metadata Metadata          `json:"_metadata"`
	Chunks   []extractor.Chunk `json:"chunks"`
}

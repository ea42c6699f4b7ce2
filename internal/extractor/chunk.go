package extractor

import (
	"fmt"

	"github.com/google/uuid"
)

// AnonymousName is the sentinel used when no name can be derived for a chunk.
const AnonymousName = "<anonymous>"

// ChunkKind classifies an extracted chunk.
type ChunkKind string

const (
	KindFunction    ChunkKind = "function"
	KindMethod      ChunkKind = "method"
	KindConstructor ChunkKind = "constructor"
	KindClass       ChunkKind = "class"
	KindTest        ChunkKind = "test"
	KindLocator     ChunkKind = "locator"
	KindAction      ChunkKind = "action"
	KindAssert      ChunkKind = "assert"
	KindHelper      ChunkKind = "helper"
	KindSetup       ChunkKind = "setup"
	KindFixture     ChunkKind = "fixture"
	KindConstant    ChunkKind = "constant"
	KindIIFE        ChunkKind = "iife"
)

// Location identifies a source span. Lines are 1-indexed; columns are byte
// offsets from the preceding newline (0-indexed), matching tree-sitter points.
type Location struct {
	File        string `json:"file"`
	StartLine   int    `json:"startLine"`
	EndLine     int    `json:"endLine"`
	StartColumn int    `json:"startColumn"`
	EndColumn   int    `json:"endColumn"`
}

// Chunk is one extracted, classified unit of source code.
// Chunks are fully populated at creation and never mutated afterwards.
type Chunk struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Kind          ChunkKind `json:"kind"`
	Location      Location  `json:"location"`
	Code          string    `json:"code,omitempty"`
	Documentation string    `json:"documentation,omitempty"`

	// Playwright-profile metadata.
	OwningClass      string   `json:"owningClass,omitempty"`
	MemberNames      string   `json:"memberNames,omitempty"`
	Repository       string   `json:"repository,omitempty"`
	Module           string   `json:"module,omitempty"`
	RelatedTestFiles []string `json:"relatedTestFiles,omitempty"`
	TestSuiteName    string   `json:"testSuiteName,omitempty"`
	TestCaseName     string   `json:"testCaseName,omitempty"`
}

// chunkID derives a stable UUIDv5 from the chunk's identity fields so that
// repeated runs over unchanged input produce identical output.
func chunkID(file string, kind ChunkKind, name string, startLine, startColumn int) string {
	seed := fmt.Sprintf("%s#%s#%s#%d:%d", file, kind, name, startLine, startColumn)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed)).String()
}

// newChunk creates a chunk with its deterministic ID filled in.
func newChunk(name string, kind ChunkKind, loc Location) Chunk {
	return Chunk{
		ID:       chunkID(loc.File, kind, name, loc.StartLine, loc.StartColumn),
		Name:     name,
		Kind:     kind,
		Location: loc,
	}
}

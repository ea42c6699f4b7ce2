package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteChunkFile writes a chunk file to disk atomically: the document is
// written to a temp file in the target directory and renamed into place, so
// readers never observe a partial file.
func WriteChunkFile(path string, chunkFile *ChunkFile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(chunkFile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal chunk file: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, ".chunks-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write chunk file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move chunk file into place: %w", err)
	}
	return nil
}

// ReadChunkFile loads a previously written chunk file.
func ReadChunkFile(path string) (*ChunkFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var chunkFile ChunkFile
	if err := json.Unmarshal(data, &chunkFile); err != nil {
		return nil, fmt.Errorf("failed to parse chunk file %s: %w", path, err)
	}
	return &chunkFile, nil
}

package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pagelens/pagelens/internal/extractor"
)

// chunkSchema is the chunks table. related_test_files is stored as a
// comma-joined list; consumers that need set semantics split on read.
const chunkSchema = `
CREATE TABLE IF NOT EXISTS chunks (
	chunk_id           TEXT PRIMARY KEY,
	file_path          TEXT NOT NULL,
	kind               TEXT NOT NULL,
	name               TEXT NOT NULL,
	start_line         INTEGER NOT NULL,
	end_line           INTEGER NOT NULL,
	start_column       INTEGER NOT NULL,
	end_column         INTEGER NOT NULL,
	code               TEXT,
	documentation      TEXT,
	owning_class       TEXT,
	member_names       TEXT,
	repository         TEXT,
	module             TEXT,
	related_test_files TEXT,
	test_suite         TEXT,
	test_case          TEXT,
	updated_at         TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chunks_file ON chunks(file_path);
CREATE INDEX IF NOT EXISTS idx_chunks_kind ON chunks(kind);
`

// ChunkStore persists chunks to a SQLite database. Writes are transactional
// full replaces: either every chunk lands or none do.
type ChunkStore struct {
	db *sql.DB
}

// NewChunkStore opens or creates the SQLite database at dbPath.
func NewChunkStore(dbPath string) (*ChunkStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(chunkSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &ChunkStore{db: db}, nil
}

// WriteChunks replaces all stored chunks with the given set.
func (s *ChunkStore) WriteChunks(chunks []extractor.Chunk) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	if _, err := sq.Delete("chunks").RunWith(tx).Exec(); err != nil {
		return fmt.Errorf("failed to clear chunks: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, chunk := range chunks {
		_, err := sq.Insert("chunks").
			Columns(
				"chunk_id", "file_path", "kind", "name",
				"start_line", "end_line", "start_column", "end_column",
				"code", "documentation", "owning_class", "member_names",
				"repository", "module", "related_test_files",
				"test_suite", "test_case", "updated_at",
			).
			Values(
				chunk.ID,
				chunk.Location.File,
				string(chunk.Kind),
				chunk.Name,
				chunk.Location.StartLine,
				chunk.Location.EndLine,
				chunk.Location.StartColumn,
				chunk.Location.EndColumn,
				chunk.Code,
				chunk.Documentation,
				chunk.OwningClass,
				chunk.MemberNames,
				chunk.Repository,
				chunk.Module,
				strings.Join(chunk.RelatedTestFiles, ","),
				chunk.TestSuiteName,
				chunk.TestCaseName,
				now,
			).
			RunWith(tx).
			Exec()
		if err != nil {
			return fmt.Errorf("failed to insert chunk %s: %w", chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CountChunks returns the number of stored chunks.
func (s *ChunkStore) CountChunks() (int, error) {
	var count int
	err := sq.Select("COUNT(*)").From("chunks").RunWith(s.db).QueryRow().Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return count, nil
}

// Close closes the database connection.
func (s *ChunkStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

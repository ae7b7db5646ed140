package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/finsight-labs/finsight-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/finsight-labs/finsight-cli/internal/core/domain"
	"github.com/finsight-labs/finsight-cli/internal/core/ports/driven"
)

// Store is the SQLite-backed passage index. Queries are embedded with
// the same embedding service used at ingestion, then scored against
// every stored vector in process.
type Store struct {
	db       *sql.DB
	path     string
	embedder driven.EmbeddingService
}

var _ driven.IndexStore = (*Store)(nil)

// NewStore creates a SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.finsight/data/index.db.
func NewStore(dataDir string, embedder driven.EmbeddingService) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".finsight", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:       db,
		path:     dbPath,
		embedder: embedder,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// HasSource reports whether any stored passage carries the given source
// filename in its metadata.
func (s *Store) HasSource(ctx context.Context, source string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM passages WHERE source = ?", source).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("%w: checking source: %w", domain.ErrStore, err)
	}
	return count > 0, nil
}

// Upsert inserts the passage if its id is absent; otherwise it is a
// no-op, so the first stored record and its embedding survive
// re-ingestion of identical text.
func (s *Store) Upsert(ctx context.Context, passage domain.Passage) error {
	if err := passage.Metadata.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO passages (id, content, embedding, source, company, period)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, passage.ID, passage.Text, float32SliceToBytes(passage.Embedding),
		passage.Metadata.Source, passage.Metadata.Company, passage.Metadata.Period)

	if err != nil {
		return fmt.Errorf("%w: saving passage: %w", domain.ErrStore, err)
	}
	return nil
}

// Search embeds the query and returns the k nearest passages by cosine
// similarity, descending. Ties keep insertion order (rowid).
func (s *Store) Search(ctx context.Context, query string, k int) ([]domain.Retrieval, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be >= 1, got %d", domain.ErrInvalidInput, k)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT content, embedding, source, company, period
		FROM passages ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying passages: %w", domain.ErrStore, err)
	}
	defer rows.Close()

	var passages []domain.Passage //nolint:prealloc // size unknown from query
	for rows.Next() {
		var p domain.Passage
		var embeddingBlob []byte
		if err := rows.Scan(&p.Text, &embeddingBlob,
			&p.Metadata.Source, &p.Metadata.Company, &p.Metadata.Period); err != nil {
			return nil, fmt.Errorf("%w: scanning passage: %w", domain.ErrStore, err)
		}
		p.ID = domain.PassageID(p.Text)
		p.Embedding = bytesToFloat32Slice(embeddingBlob)
		passages = append(passages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating passages: %w", domain.ErrStore, err)
	}

	if len(passages) == 0 {
		return []domain.Retrieval{}, nil
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	if dims := len(passages[0].Embedding); dims != len(queryVec) {
		return nil, fmt.Errorf(
			"%w: stored embeddings have %d dimensions but model %q produces %d; "+
				"run 'finsight reset' and re-index",
			domain.ErrStore, dims, s.embedder.ModelName(), len(queryVec))
	}

	retrievals := make([]domain.Retrieval, 0, len(passages))
	for _, p := range passages {
		retrievals = append(retrievals, domain.Retrieval{
			Passage: p,
			Score:   cosineSimilarity(queryVec, p.Embedding),
		})
	}

	sort.SliceStable(retrievals, func(i, j int) bool {
		return retrievals[i].Score > retrievals[j].Score
	})

	if k < len(retrievals) {
		retrievals = retrievals[:k]
	}
	return retrievals, nil
}

// Count returns the number of stored passages.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM passages").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting passages: %w", domain.ErrStore, err)
	}
	return count, nil
}

// Clear removes all passages.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM passages"); err != nil {
		return fmt.Errorf("%w: clearing passages: %w", domain.ErrStore, err)
	}
	return nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// cosineSimilarity computes cosine similarity between two vectors.
// Mismatched or zero-norm vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

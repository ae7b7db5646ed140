// Package memory provides an in-memory IndexStore. It carries the same
// semantics as the SQLite store and backs service tests and ephemeral
// runs where nothing should touch disk.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/finsight-labs/finsight-cli/internal/core/domain"
	"github.com/finsight-labs/finsight-cli/internal/core/ports/driven"
)

// Store is an in-memory passage index. Passages are held in insertion
// order so similarity ties resolve the same way as the persistent store.
type Store struct {
	embedder driven.EmbeddingService

	mu       sync.RWMutex
	passages []domain.Passage
	ids      map[string]struct{}
}

var _ driven.IndexStore = (*Store)(nil)

// NewStore creates an empty in-memory store. Queries are embedded with
// the given embedding service, the same one used at ingestion.
func NewStore(embedder driven.EmbeddingService) *Store {
	return &Store{
		embedder: embedder,
		ids:      make(map[string]struct{}),
	}
}

// HasSource reports whether any passage carries the given source filename.
func (s *Store) HasSource(ctx context.Context, source string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.passages {
		if p.Metadata.Source == source {
			return true, nil
		}
	}
	return false, nil
}

// Upsert inserts the passage if its id is absent; otherwise it is a no-op.
func (s *Store) Upsert(ctx context.Context, passage domain.Passage) error {
	if err := passage.Metadata.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[passage.ID]; ok {
		return nil
	}
	s.ids[passage.ID] = struct{}{}
	s.passages = append(s.passages, passage)
	return nil
}

// Search embeds the query and returns the k nearest passages by cosine
// similarity, descending. Ties keep insertion order.
func (s *Store) Search(ctx context.Context, query string, k int) ([]domain.Retrieval, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be >= 1, got %d", domain.ErrInvalidInput, k)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.passages) == 0 {
		return []domain.Retrieval{}, nil
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	retrievals := make([]domain.Retrieval, 0, len(s.passages))
	for _, p := range s.passages {
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
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.passages), nil
}

// Clear removes all passages.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passages = nil
	s.ids = make(map[string]struct{})
	return nil
}

// Close releases nothing; the store is purely in-memory.
func (s *Store) Close() error {
	return nil
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

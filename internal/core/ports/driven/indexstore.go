package driven

import (
	"context"

	"github.com/finsight-labs/finsight-cli/internal/core/domain"
)

// IndexStore is the persistent content-addressed passage store with
// similarity search. It exclusively owns passages for the lifetime of
// the persisted volume.
//
// Two independent layers keep ingestion idempotent: HasSource skips a
// previously indexed document entirely, and Upsert deduplicates at
// chunk granularity by content identifier.
type IndexStore interface {
	// HasSource reports whether any stored passage carries the given
	// source filename in its metadata.
	HasSource(ctx context.Context, source string) (bool, error)

	// Upsert inserts the passage if its id is absent, otherwise it is
	// a no-op: identical text produces an identical record, so the
	// stored embedding is never overwritten. Each upsert is atomic.
	// Metadata is validated at write time.
	Upsert(ctx context.Context, passage domain.Passage) error

	// Search embeds the query text with the same embedding function
	// used at ingestion and returns the k nearest passages by cosine
	// similarity, descending, ties broken by insertion order.
	// k must be >= 1. An empty store yields an empty slice, not an error.
	Search(ctx context.Context, query string, k int) ([]domain.Retrieval, error)

	// Count returns the number of stored passages.
	Count(ctx context.Context) (int, error)

	// Clear removes all passages. Required when swapping the
	// embedding model, which invalidates every stored vector.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}

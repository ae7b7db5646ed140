package driving

import (
	"context"

	"github.com/finsight-labs/finsight-cli/internal/core/domain"
)

// AnswerService is the single query entry point consumed by upstream
// callers (chat UI, responder routing). Answer always returns a string
// for "no data found" - that is a normal result value, not an error.
// Errors are limited to store or model transport failures.
type AnswerService interface {
	// Answer retrieves the most relevant passages for the question and
	// synthesizes a cited answer.
	Answer(ctx context.Context, question string) (string, error)
}

// RetrieveService exposes raw retrieval for callers that want passages
// without synthesis (inspection, debugging, external rankers).
type RetrieveService interface {
	// Retrieve returns the top-k most similar passages with scores.
	// An empty result distinguishes "no knowledge" from a failure.
	Retrieve(ctx context.Context, question string, k int) ([]domain.Retrieval, error)
}

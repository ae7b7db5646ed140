package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/finsight-labs/finsight-cli/internal/core/domain"
	"github.com/finsight-labs/finsight-cli/internal/core/ports/driven"
	"github.com/finsight-labs/finsight-cli/internal/core/ports/driving"
	"github.com/finsight-labs/finsight-cli/internal/logger"
)

// Ensure Retriever implements the interface.
var _ driving.RetrieveService = (*Retriever)(nil)

// Retriever exposes raw similarity retrieval. It is stateless: every
// call embeds the question and scores it against the current store.
type Retriever struct {
	store driven.IndexStore
}

// NewRetriever creates a new retriever.
func NewRetriever(store driven.IndexStore) *Retriever {
	return &Retriever{store: store}
}

// Retrieve returns the top-k most similar passages with scores.
// An empty slice means the index holds nothing relevant; it is not
// an error.
func (s *Retriever) Retrieve(ctx context.Context, question string, k int) ([]domain.Retrieval, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}

	logger.Debug("Retrieving top %d passages for %q", k, question)

	retrievals, err := s.store.Search(ctx, question, k)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	logger.Debug("Retrieved %d passage(s)", len(retrievals))
	return retrievals, nil
}

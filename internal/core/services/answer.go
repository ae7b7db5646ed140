package services

import (
	"context"

	"github.com/finsight-labs/finsight-cli/internal/core/ports/driving"
)

// Ensure Answerer implements the interface.
var _ driving.AnswerService = (*Answerer)(nil)

// DefaultTopK is the number of passages retrieved per question.
const DefaultTopK = 3

// Answerer composes retrieval and synthesis into the single query
// entry point.
type Answerer struct {
	retriever   driving.RetrieveService
	synthesizer *Synthesizer
	topK        int
}

// AnswererOption configures an Answerer.
type AnswererOption func(*Answerer)

// WithTopK overrides the number of passages retrieved per question.
func WithTopK(k int) AnswererOption {
	return func(a *Answerer) {
		if k >= 1 {
			a.topK = k
		}
	}
}

// NewAnswerer creates a new answerer.
func NewAnswerer(
	retriever driving.RetrieveService, synthesizer *Synthesizer, opts ...AnswererOption,
) *Answerer {
	a := &Answerer{
		retriever:   retriever,
		synthesizer: synthesizer,
		topK:        DefaultTopK,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Answer retrieves the most relevant passages for the question and
// synthesizes a cited answer. "No data found" is a normal answer
// string, never an error.
func (a *Answerer) Answer(ctx context.Context, question string) (string, error) {
	retrievals, err := a.retriever.Retrieve(ctx, question, a.topK)
	if err != nil {
		return "", err
	}
	return a.synthesizer.Synthesize(ctx, question, retrievals)
}

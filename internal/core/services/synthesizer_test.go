package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-labs/finsight-cli/internal/core/domain"
)

func retrievalOf(text, source, company, period string, score float64) domain.Retrieval {
	return domain.Retrieval{
		Passage: domain.NewPassage(domain.Chunk{
			Text: text, Source: source, Company: company, Period: period,
		}, []float32{1}),
		Score: score,
	}
}

func TestSynthesize_EmptyRetrievalsShortCircuits(t *testing.T) {
	llm := &mockLLMService{response: "should not be called"}
	synth := NewSynthesizer(llm)

	answer, err := synth.Synthesize(context.Background(), "what was revenue?", nil)
	require.NoError(t, err)
	assert.Equal(t, NoInformationAnswer, answer)
	assert.Empty(t, llm.prompts, "no model call for empty retrievals")
}

func TestSynthesize_GroundsPromptInContext(t *testing.T) {
	llm := &mockLLMService{response: "Revenue was $383.3 billion."}
	synth := NewSynthesizer(llm)

	retrievals := []domain.Retrieval{
		retrievalOf("Net revenue was $383.3 billion in fiscal 2023.", "10k.pdf", "Apple", "2023", 0.9),
		retrievalOf("Products revenue declined 3 percent.", "10k.pdf", "Apple", "2023", 0.8),
	}

	answer, err := synth.Synthesize(context.Background(), "What was Apple's revenue?", retrievals)
	require.NoError(t, err)

	require.Len(t, llm.prompts, 1)
	prompt := llm.prompts[0]
	assert.Contains(t, prompt, "based only on the following context")
	assert.Contains(t, prompt, "Net revenue was $383.3 billion in fiscal 2023.")
	assert.Contains(t, prompt, "Products revenue declined 3 percent.")
	assert.Contains(t, prompt, "What was Apple's revenue?")

	// Higher scored passage comes first in the context block.
	assert.Less(t,
		strings.Index(prompt, "Net revenue"),
		strings.Index(prompt, "Products revenue"))

	assert.True(t, strings.HasPrefix(answer, "Revenue was $383.3 billion."))
}

func TestSynthesize_CitationsDeduplicatedInOrder(t *testing.T) {
	llm := &mockLLMService{response: "Both filings discuss revenue."}
	synth := NewSynthesizer(llm)

	retrievals := []domain.Retrieval{
		retrievalOf("Passage one text about fiscal 2023 revenue.", "10k.pdf", "Apple", "2023", 0.9),
		retrievalOf("Passage two text about quarterly revenue.", "10q.pdf", "Apple", "2024", 0.8),
		retrievalOf("Passage three text, same filing as one.", "10k.pdf", "Apple", "2023", 0.7),
	}

	answer, err := synth.Synthesize(context.Background(), "revenue?", retrievals)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(answer, "10k.pdf (Apple, 2023)"))
	assert.Equal(t, 1, strings.Count(answer, "10q.pdf (Apple, 2024)"))

	// First occurrence order is retrieval order.
	assert.Less(t,
		strings.Index(answer, "10k.pdf (Apple, 2023)"),
		strings.Index(answer, "10q.pdf (Apple, 2024)"))
	assert.Contains(t, answer, "Sources:")
}

func TestSynthesize_BoundsContextByScoreOrder(t *testing.T) {
	llm := &mockLLMService{response: "Answer."}
	synth := NewSynthesizer(llm, WithMaxContextChars(80))

	long := strings.Repeat("a", 60)
	retrievals := []domain.Retrieval{
		retrievalOf(long, "10k.pdf", "Apple", "2023", 0.9),
		retrievalOf("this passage does not fit the window", "10q.pdf", "Apple", "2024", 0.8),
	}

	answer, err := synth.Synthesize(context.Background(), "q?", retrievals)
	require.NoError(t, err)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], long)
	assert.NotContains(t, llm.prompts[0], "does not fit")

	// Citations only cover passages actually used.
	assert.Contains(t, answer, "10k.pdf (Apple, 2023)")
	assert.NotContains(t, answer, "10q.pdf (Apple, 2024)")
}

func TestSynthesize_OversizedFirstPassageStillUsed(t *testing.T) {
	llm := &mockLLMService{response: "Answer."}
	synth := NewSynthesizer(llm, WithMaxContextChars(10))

	retrievals := []domain.Retrieval{
		retrievalOf(strings.Repeat("b", 100), "10k.pdf", "Apple", "2023", 0.9),
	}

	_, err := synth.Synthesize(context.Background(), "q?", retrievals)
	require.NoError(t, err)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], strings.Repeat("b", 100))
}

func TestSynthesize_ModelFailure(t *testing.T) {
	llm := &mockLLMService{err: errors.New("rate limited")}
	synth := NewSynthesizer(llm)

	_, err := synth.Synthesize(context.Background(), "q?",
		[]domain.Retrieval{retrievalOf("some passage text", "10k.pdf", "Apple", "2023", 0.9)})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSynthesis)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestSynthesize_EmptyCompletion(t *testing.T) {
	llm := &mockLLMService{response: "   \n"}
	synth := NewSynthesizer(llm)

	_, err := synth.Synthesize(context.Background(), "q?",
		[]domain.Retrieval{retrievalOf("some passage text", "10k.pdf", "Apple", "2023", 0.9)})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSynthesis)
}

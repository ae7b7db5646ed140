package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/finsight-labs/finsight-cli/internal/core/domain"
	"github.com/finsight-labs/finsight-cli/internal/core/ports/driven"
	"github.com/finsight-labs/finsight-cli/internal/logger"
)

// NoInformationAnswer is the fixed response returned when retrieval
// yields nothing. It is produced without a model call.
const NoInformationAnswer = "I don't have any information about that in the indexed filings."

// DefaultMaxContextChars bounds the context block handed to the model.
const DefaultMaxContextChars = 12000

// passageSeparator joins passage texts inside the context block.
const passageSeparator = "\n\n---\n\n"

// promptTemplate grounds the model in the retrieved context. The
// context comes first so a truncating model drops the question last.
const promptTemplate = `Answer the question based only on the following context:

%s

---

Answer the question based on the above context: %s`

// Synthesizer turns retrieved passages into a cited answer with
// exactly one model call per question.
type Synthesizer struct {
	llm             driven.LLMService
	maxContextChars int
}

// SynthesizerOption configures a Synthesizer.
type SynthesizerOption func(*Synthesizer)

// WithMaxContextChars overrides the context block bound.
func WithMaxContextChars(n int) SynthesizerOption {
	return func(s *Synthesizer) {
		if n > 0 {
			s.maxContextChars = n
		}
	}
}

// NewSynthesizer creates a new synthesizer.
func NewSynthesizer(llm driven.LLMService, opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{
		llm:             llm,
		maxContextChars: DefaultMaxContextChars,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize produces a grounded, cited answer from the retrievals.
// Empty retrievals short-circuit to the fixed no-information answer.
// Model failures and empty completions wrap domain.ErrSynthesis; there
// is no automatic retry.
func (s *Synthesizer) Synthesize(
	ctx context.Context, question string, retrievals []domain.Retrieval,
) (string, error) {
	if len(retrievals) == 0 {
		logger.Debug("No passages retrieved, returning fixed answer")
		return NoInformationAnswer, nil
	}

	used := s.contextWindow(retrievals)
	prompt := fmt.Sprintf(promptTemplate, contextBlock(used), question)

	logger.Debug("Synthesizing with %d of %d passage(s), model %s",
		len(used), len(retrievals), s.llm.ModelName())

	answer, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrSynthesis, err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("%w: model returned empty completion", domain.ErrSynthesis)
	}

	return answer + formatCitations(used), nil
}

// contextWindow keeps retrievals in score order until the combined
// text would exceed the bound. The first passage is always kept so a
// single oversized passage still produces an answer.
func (s *Synthesizer) contextWindow(retrievals []domain.Retrieval) []domain.Retrieval {
	used := retrievals[:1]
	size := len(retrievals[0].Passage.Text)

	for _, r := range retrievals[1:] {
		size += len(passageSeparator) + len(r.Passage.Text)
		if size > s.maxContextChars {
			break
		}
		used = retrievals[:len(used)+1]
	}
	return used
}

// contextBlock joins the passage texts for the prompt.
func contextBlock(retrievals []domain.Retrieval) string {
	texts := make([]string, 0, len(retrievals))
	for _, r := range retrievals {
		texts = append(texts, r.Passage.Text)
	}
	return strings.Join(texts, passageSeparator)
}

// formatCitations renders the citation block: the first occurrence of
// each distinct (source, company, period) tuple in retrieval order.
func formatCitations(retrievals []domain.Retrieval) string {
	seen := make(map[domain.Citation]struct{})
	var sb strings.Builder

	sb.WriteString("\n\nSources:")
	for _, r := range retrievals {
		citation := r.Passage.Metadata.Citation()
		if _, ok := seen[citation]; ok {
			continue
		}
		seen[citation] = struct{}{}
		sb.WriteString("\n- ")
		sb.WriteString(citation.String())
	}
	return sb.String()
}

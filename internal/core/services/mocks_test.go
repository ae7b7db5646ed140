package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/finsight-labs/finsight-cli/internal/core/domain"
	"github.com/finsight-labs/finsight-cli/internal/core/ports/driven"
)

func basename(path string) string { return filepath.Base(path) }
func ext(path string) string      { return strings.ToLower(filepath.Ext(path)) }

// mockEmbeddingService returns fixed vectors for known texts. Unknown
// texts embed to the zero vector, which scores 0 against everything.
type mockEmbeddingService struct {
	vectors   map[string][]float32
	embedErr  error
	embedDims int
	calls     int
}

func newMockEmbedder() *mockEmbeddingService {
	return &mockEmbeddingService{
		embedDims: 3,
		vectors:   map[string][]float32{},
	}
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if v, ok := m.vectors[text]; ok {
		return v, nil
	}
	return make([]float32, m.embedDims), nil
}

func (m *mockEmbeddingService) Dimensions() int   { return m.embedDims }
func (m *mockEmbeddingService) ModelName() string { return "mock-embedder" }
func (m *mockEmbeddingService) Close() error      { return nil }

// mockLLMService records the prompt and returns a canned completion.
type mockLLMService struct {
	response string
	err      error
	prompts  []string
}

func (m *mockLLMService) Generate(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLMService) ModelName() string { return "mock-llm" }
func (m *mockLLMService) Close() error      { return nil }

// mockIndexStore is an in-memory store with the IndexStore semantics:
// content-addressed upsert, source lookup, cosine search over mock
// embeddings.
type mockIndexStore struct {
	embedder *mockEmbeddingService
	passages []domain.Passage
	ids      map[string]struct{}

	upsertErr error
	searchErr error
}

var _ driven.IndexStore = (*mockIndexStore)(nil)

func newMockStore(embedder *mockEmbeddingService) *mockIndexStore {
	return &mockIndexStore{
		embedder: embedder,
		ids:      map[string]struct{}{},
	}
}

func (m *mockIndexStore) HasSource(_ context.Context, source string) (bool, error) {
	for _, p := range m.passages {
		if p.Metadata.Source == source {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockIndexStore) Upsert(_ context.Context, passage domain.Passage) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	if err := passage.Metadata.Validate(); err != nil {
		return err
	}
	if _, ok := m.ids[passage.ID]; ok {
		return nil
	}
	m.ids[passage.ID] = struct{}{}
	m.passages = append(m.passages, passage)
	return nil
}

func (m *mockIndexStore) Search(ctx context.Context, query string, k int) ([]domain.Retrieval, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be >= 1", domain.ErrInvalidInput)
	}
	if len(m.passages) == 0 {
		return []domain.Retrieval{}, nil
	}

	queryVec, err := m.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	retrievals := make([]domain.Retrieval, 0, len(m.passages))
	for _, p := range m.passages {
		var score float64
		for i := range queryVec {
			if i < len(p.Embedding) {
				score += float64(queryVec[i]) * float64(p.Embedding[i])
			}
		}
		retrievals = append(retrievals, domain.Retrieval{Passage: p, Score: score})
	}
	sort.SliceStable(retrievals, func(i, j int) bool {
		return retrievals[i].Score > retrievals[j].Score
	})
	if k < len(retrievals) {
		retrievals = retrievals[:k]
	}
	return retrievals, nil
}

func (m *mockIndexStore) Count(_ context.Context) (int, error) {
	return len(m.passages), nil
}

func (m *mockIndexStore) Clear(_ context.Context) error {
	m.passages = nil
	m.ids = map[string]struct{}{}
	return nil
}

func (m *mockIndexStore) Close() error { return nil }

// mockParser returns canned elements for any file, or a fixed error.
type mockParser struct {
	extensions []string
	elements   map[string][]domain.Element // keyed by base filename
	err        error
}

func (m *mockParser) Extensions() []string {
	if m.extensions == nil {
		return []string{".txt"}
	}
	return m.extensions
}

func (m *mockParser) Parse(_ context.Context, path string) ([]domain.Element, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.elements[basename(path)], nil
}

// mockRegistry routes every recognised extension to one parser.
type mockRegistry struct {
	parser driven.Parser
	exts   map[string]bool
}

func newMockRegistry(parser driven.Parser) *mockRegistry {
	exts := map[string]bool{}
	for _, ext := range parser.Extensions() {
		exts[ext] = true
	}
	return &mockRegistry{parser: parser, exts: exts}
}

func (m *mockRegistry) ForFile(path string) (driven.Parser, bool) {
	if m.exts[ext(path)] {
		return m.parser, true
	}
	return nil, false
}

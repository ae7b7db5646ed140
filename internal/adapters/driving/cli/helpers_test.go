package cli

import (
	"context"
	"errors"

	"github.com/finsight-labs/finsight-cli/internal/core/domain"
)

// mockIngestService returns a canned report.
type mockIngestService struct {
	report *domain.IngestReport
	err    error
	calls  int
}

func (m *mockIngestService) Ingest(_ context.Context, _ string) (*domain.IngestReport, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.report != nil {
		return m.report, nil
	}
	return &domain.IngestReport{RunID: "test-run"}, nil
}

// mockAnswerService returns a canned answer.
type mockAnswerService struct {
	answer string
	err    error
}

func (m *mockAnswerService) Answer(_ context.Context, _ string) (string, error) {
	return m.answer, m.err
}

// mockRetrieveService returns canned retrievals.
type mockRetrieveService struct {
	retrievals []domain.Retrieval
	err        error
}

func (m *mockRetrieveService) Retrieve(_ context.Context, _ string, _ int) ([]domain.Retrieval, error) {
	return m.retrievals, m.err
}

// mockIndexStore implements the store surface status and reset use.
type mockIndexStore struct {
	count      int
	clearCalls int
	countErr   error
	clearErr   error
}

func (m *mockIndexStore) HasSource(_ context.Context, _ string) (bool, error) { return false, nil }
func (m *mockIndexStore) Upsert(_ context.Context, _ domain.Passage) error    { return nil }
func (m *mockIndexStore) Search(_ context.Context, _ string, _ int) ([]domain.Retrieval, error) {
	return nil, errors.New("not implemented")
}
func (m *mockIndexStore) Count(_ context.Context) (int, error) { return m.count, m.countErr }
func (m *mockIndexStore) Clear(_ context.Context) error {
	m.clearCalls++
	return m.clearErr
}
func (m *mockIndexStore) Close() error { return nil }

// setupTestServices injects mocks into the package-level services and
// returns a cleanup restoring the previous values.
func setupTestServices() func() {
	oldIngest := ingestService
	oldAnswer := answerService
	oldRetrieve := retrieveService
	oldStore := indexStore

	ingestService = &mockIngestService{}
	answerService = &mockAnswerService{answer: "mock answer"}
	retrieveService = &mockRetrieveService{}
	indexStore = &mockIndexStore{}

	return func() {
		ingestService = oldIngest
		answerService = oldAnswer
		retrieveService = oldRetrieve
		indexStore = oldStore
	}
}

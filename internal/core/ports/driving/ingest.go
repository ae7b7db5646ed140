package driving

import (
	"context"

	"github.com/finsight-labs/finsight-cli/internal/core/domain"
)

// IngestService drives corpus ingestion.
type IngestService interface {
	// Ingest walks the corpus tree root/{company}/{period}/{files},
	// indexes every recognised document not already present in the
	// store, and returns an end-of-run report. Per-document failures
	// are isolated in the report; only store failures abort the run.
	Ingest(ctx context.Context, corpusRoot string) (*domain.IngestReport, error)
}

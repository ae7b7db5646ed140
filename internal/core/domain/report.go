package domain

import "fmt"

// DocumentFailure records one document that could not be ingested.
type DocumentFailure struct {
	// Path is the corpus-relative path of the failed document.
	Path string

	// Reason is the failure description.
	Reason string
}

// IngestReport summarises one ingestion run over a corpus tree.
// Per-document failures are isolated and collected here; they never
// abort processing of the remaining documents.
type IngestReport struct {
	// RunID identifies the ingestion run in logs.
	RunID string

	// DocumentsIndexed counts documents newly parsed and stored.
	DocumentsIndexed int

	// DocumentsSkipped counts documents skipped because their source
	// filename was already indexed.
	DocumentsSkipped int

	// DocumentsFailed counts documents skipped due to parse or
	// chunking failures.
	DocumentsFailed int

	// PassagesStored counts passages newly stored this run.
	// Deduplicated passages do not count.
	PassagesStored int

	// Failures lists the per-document failures.
	Failures []DocumentFailure
}

// Summary formats the report for end-of-run display.
func (r IngestReport) Summary() string {
	return fmt.Sprintf("indexed %d document(s) (%d skipped, %d failed), stored %d new passage(s)",
		r.DocumentsIndexed, r.DocumentsSkipped, r.DocumentsFailed, r.PassagesStored)
}

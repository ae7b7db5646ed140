package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/finsight-labs/finsight-cli/internal/core/domain"
	"github.com/finsight-labs/finsight-cli/internal/core/ports/driven"
	"github.com/finsight-labs/finsight-cli/internal/core/ports/driving"
	"github.com/finsight-labs/finsight-cli/internal/logger"
)

// Ensure Ingestor implements the interface.
var _ driving.IngestService = (*Ingestor)(nil)

// Ingestor walks a corpus tree and indexes every recognised document.
// The corpus layout is root/{company}/{period}/{files}; the two
// directory levels supply the passage metadata.
type Ingestor struct {
	registry driven.ParserRegistry
	chunker  driven.Chunker
	embedder driven.EmbeddingService
	store    driven.IndexStore
}

// NewIngestor creates a new ingestor.
func NewIngestor(
	registry driven.ParserRegistry,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	store driven.IndexStore,
) *Ingestor {
	return &Ingestor{
		registry: registry,
		chunker:  chunker,
		embedder: embedder,
		store:    store,
	}
}

// Ingest walks the corpus tree and indexes documents not already
// present in the store. Parse and chunking failures are isolated per
// document and collected in the report; store failures abort the run.
func (s *Ingestor) Ingest(ctx context.Context, corpusRoot string) (*domain.IngestReport, error) {
	info, err := os.Stat(corpusRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: corpus root %q: %v", domain.ErrInvalidInput, corpusRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: corpus root %q is not a directory", domain.ErrInvalidInput, corpusRoot)
	}

	report := &domain.IngestReport{RunID: uuid.NewString()}

	logger.Section("Ingestion")
	logger.Info("Run %s over %s", report.RunID, corpusRoot)

	countBefore, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting passages: %w", err)
	}

	docs, err := collectDocuments(corpusRoot)
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		parser, ok := s.registry.ForFile(doc.Path)
		if !ok {
			logger.Debug("No parser for %s, ignoring", doc.Source)
			continue
		}

		indexed, err := s.store.HasSource(ctx, doc.Source)
		if err != nil {
			return nil, fmt.Errorf("checking source %s: %w", doc.Source, err)
		}
		if indexed {
			logger.Debug("Already indexed: %s", doc.Source)
			report.DocumentsSkipped++
			continue
		}

		if err := s.ingestDocument(ctx, parser, doc); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Store failures abort the run; committed records stay intact.
			if errors.Is(err, domain.ErrStore) {
				return nil, err
			}
			report.DocumentsFailed++
			report.Failures = append(report.Failures, domain.DocumentFailure{
				Path:   relativeTo(corpusRoot, doc.Path),
				Reason: err.Error(),
			})
			logger.Warn("Skipping %s: %v", doc.Source, err)
			continue
		}

		report.DocumentsIndexed++
		logger.Info("Indexed %s (%s, %s)", doc.Source, doc.Company, doc.Period)
	}

	countAfter, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting passages: %w", err)
	}
	report.PassagesStored = countAfter - countBefore

	logger.Info("Run %s complete: %s", report.RunID, report.Summary())
	return report, nil
}

// ingestDocument parses, chunks, embeds and stores one document.
// All chunks are embedded before the first upsert so a mid-document
// failure never leaves a partially indexed source behind.
func (s *Ingestor) ingestDocument(ctx context.Context, parser driven.Parser, doc domain.Document) error {
	elements, err := parser.Parse(ctx, doc.Path)
	if err != nil {
		return err
	}
	if len(elements) == 0 {
		return fmt.Errorf("%w: no usable text extracted", domain.ErrParse)
	}

	chunks, err := s.chunker.Chunk(doc, elements)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrChunking, err)
	}
	if len(chunks) == 0 {
		return fmt.Errorf("%w: no chunks above the minimum size", domain.ErrChunking)
	}

	passages := make([]domain.Passage, 0, len(chunks))
	for _, chunk := range chunks {
		embedding, err := s.embedder.Embed(ctx, chunk.Text)
		if err != nil {
			return fmt.Errorf("embedding chunk %d: %w", chunk.Position, err)
		}
		passages = append(passages, domain.NewPassage(chunk, embedding))
	}

	for _, passage := range passages {
		if err := s.store.Upsert(ctx, passage); err != nil {
			return fmt.Errorf("storing passage: %w", err)
		}
	}

	logger.Debug("Stored %d chunk(s) from %s", len(passages), doc.Source)
	return nil
}

// collectDocuments enumerates corpus files in the fixed two-level
// layout. Entries outside root/{company}/{period}/ and hidden files
// are ignored. Documents come back in deterministic path order.
func collectDocuments(corpusRoot string) ([]domain.Document, error) {
	companies, err := os.ReadDir(corpusRoot)
	if err != nil {
		return nil, fmt.Errorf("reading corpus root: %w", err)
	}

	var docs []domain.Document
	for _, company := range companies {
		if !company.IsDir() || isHidden(company.Name()) {
			continue
		}

		companyDir := filepath.Join(corpusRoot, company.Name())
		periods, err := os.ReadDir(companyDir)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", companyDir, err)
		}

		for _, period := range periods {
			if !period.IsDir() || isHidden(period.Name()) {
				continue
			}

			periodDir := filepath.Join(companyDir, period.Name())
			files, err := os.ReadDir(periodDir)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", periodDir, err)
			}

			for _, file := range files {
				if file.IsDir() || isHidden(file.Name()) {
					continue
				}
				docs = append(docs, domain.Document{
					Path:    filepath.Join(periodDir, file.Name()),
					Source:  file.Name(),
					Company: company.Name(),
					Period:  period.Name(),
				})
			}
		}
	}

	return docs, nil
}

// isHidden reports whether a directory entry is a dotfile.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// relativeTo returns path relative to root, falling back to path.
func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

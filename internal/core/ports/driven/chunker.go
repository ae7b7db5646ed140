package driven

import (
	"github.com/finsight-labs/finsight-cli/internal/core/domain"
)

// Chunker groups the element sequence of one document into ordered,
// bounded-size chunks. It never merges elements across documents.
type Chunker interface {
	// Chunk flattens elements into chunks carrying the document's
	// metadata. Document order is preserved and the chunk sequence
	// index is assigned at flush time. Failures wrap domain.ErrChunking.
	Chunk(doc domain.Document, elements []domain.Element) ([]domain.Chunk, error)
}

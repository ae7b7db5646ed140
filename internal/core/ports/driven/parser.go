package driven

import (
	"context"

	"github.com/finsight-labs/finsight-cli/internal/core/domain"
)

// Parser extracts an ordered sequence of elements from a document file.
// Parsing has no side effect beyond reading the file; a failure must not
// partially register the document anywhere.
type Parser interface {
	// Extensions returns the lower-case file extensions this parser
	// handles, including the leading dot (e.g. ".pdf").
	Extensions() []string

	// Parse reads the file at path and returns its elements in
	// document order. Embedded tables come back as distinct elements.
	// Empty or whitespace-only elements are kept; dropping them is the
	// chunker's job. Failures wrap domain.ErrParse.
	Parse(ctx context.Context, path string) ([]domain.Element, error)
}

// ParserRegistry selects the parser responsible for a file.
// Files with no registered parser are ignored by ingestion.
type ParserRegistry interface {
	// ForFile returns the parser for the file's extension,
	// or false when the extension is not recognised.
	ForFile(path string) (Parser, bool)
}

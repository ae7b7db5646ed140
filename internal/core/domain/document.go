package domain

// Document identifies one filing in the corpus tree.
// It is a read-only input to ingestion; the corpus layout is
// root/{company}/{period}/{source file}.
type Document struct {
	// Path is the absolute path of the source file.
	Path string

	// Source is the base filename (e.g. "aapl-10k-2023.pdf").
	// It is the key for the document-level "already indexed" check.
	Source string

	// Company is the owning entity, taken from the first corpus
	// directory level.
	Company string

	// Period is the reporting period, taken from the second corpus
	// directory level (typically a year).
	Period string
}

// ElementKind classifies a parsed document element.
type ElementKind string

// Element kinds produced by parsers.
const (
	ElementHeading   ElementKind = "heading"
	ElementParagraph ElementKind = "paragraph"
	ElementTable     ElementKind = "table"
)

// Element is one parsed unit of a document. Elements are ephemeral:
// produced by a parser, consumed by the chunker, never persisted.
type Element struct {
	// Kind classifies the element.
	Kind ElementKind

	// Text is the raw extracted text.
	Text string

	// Page is the 1-based page reference, 0 when the format has no pages.
	Page int
}

// Chunk is a semantically grouped span of elements flattened to a
// single text block, bounded below the configured maximum length.
type Chunk struct {
	// Text is the flattened chunk text.
	Text string

	// Source, Company and Period carry the owning document's metadata.
	Source  string
	Company string
	Period  string

	// Page is the page reference of the first element in the chunk.
	Page int

	// Position is the sequence index within the document, assigned
	// at flush time.
	Position int
}

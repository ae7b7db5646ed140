// Package domain defines the core business entities for Finsight.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A filing in the corpus tree with its metadata
//   - Element: One parsed unit of a document (heading, paragraph, table)
//   - Chunk: A bounded span of document text produced by the chunker
//   - Passage: The persisted retrievable unit, keyed by content identity
//   - Retrieval: A passage with its similarity score
//   - Citation: Where an answer's supporting text originated
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

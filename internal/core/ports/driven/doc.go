// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - Parser: Extracts structured elements from a document file
//   - ParserRegistry: Selects the parser for a file by extension
//   - Chunker: Groups elements into bounded, coherent passages
//   - IndexStore: Content-addressed passage persistence and similarity search
//   - EmbeddingService: Generates vector embeddings
//   - LLMService: Single-shot language model inference
//
// The same EmbeddingService instance must be supplied to ingestion and
// to the IndexStore: swapping the embedding model invalidates the stored
// vectors and requires a full re-index via IndexStore.Clear.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or parser package
package driven

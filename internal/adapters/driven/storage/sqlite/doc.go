// Package sqlite provides the SQLite-based implementation of the
// IndexStore driven port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. Passages are stored in a
// single content-addressed table; embeddings are persisted as little-endian
// float32 blobs and similarity search runs in process over all stored vectors.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.finsight/data/index.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite

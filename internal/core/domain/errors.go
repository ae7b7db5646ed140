package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
//
// An empty retrieval result is deliberately NOT an error: it is a
// normal outcome handled by the synthesizer's fixed no-information
// response. Only transport and storage failures surface as errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrParse indicates a document could not be parsed
	// (unreadable file, unsupported encoding, corrupt structure).
	// Ingestion skips the document and continues the corpus walk.
	ErrParse = errors.New("parse failed")

	// ErrChunking indicates unexpected structure within one document.
	// Ingestion skips the document and continues the corpus walk.
	ErrChunking = errors.New("chunking failed")

	// ErrStore indicates an I/O or connectivity failure on the
	// persistent index. Fatal to the current ingestion of a document
	// or to the current query; committed records stay intact.
	ErrStore = errors.New("index store failure")

	// ErrSynthesis indicates the model call failed or returned empty.
	// Surfaced to the caller; no automatic retry.
	ErrSynthesis = errors.New("answer synthesis failed")
)

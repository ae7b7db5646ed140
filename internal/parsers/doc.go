// Package parsers provides document parser implementations and the
// registry that selects a parser by file extension.
//
// Parsers turn one source file into an ordered sequence of
// domain.Element values (headings, paragraphs, tables) with page
// references. They implement the driven.Parser port and are selected
// by the ingestion orchestrator through the Registry; files with no
// registered parser are ignored by the corpus walk.
package parsers

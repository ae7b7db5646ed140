package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// PassageMetadata is the fixed-shape metadata persisted with every
// passage. All fields are required and validated at write time rather
// than trusted at read time.
type PassageMetadata struct {
	// Source is the base filename of the originating document.
	Source string

	// Company is the owning entity.
	Company string

	// Period is the reporting period.
	Period string
}

// Validate reports whether the metadata is complete.
func (m PassageMetadata) Validate() error {
	if strings.TrimSpace(m.Source) == "" {
		return fmt.Errorf("%w: passage metadata missing source", ErrInvalidInput)
	}
	if strings.TrimSpace(m.Company) == "" {
		return fmt.Errorf("%w: passage metadata missing company", ErrInvalidInput)
	}
	if strings.TrimSpace(m.Period) == "" {
		return fmt.Errorf("%w: passage metadata missing period", ErrInvalidInput)
	}
	return nil
}

// Citation returns the display citation for this metadata.
func (m PassageMetadata) Citation() Citation {
	return Citation{Source: m.Source, Company: m.Company, Period: m.Period}
}

// Passage is the persisted retrievable unit. The ID is a pure function
// of Text, so two chunks with identical text collapse to one record.
// Passages are created during ingestion and never mutated.
type Passage struct {
	// ID is the content identifier: PassageID(Text).
	ID string

	// Text is the chunk text.
	Text string

	// Embedding is the fixed-length vector representation of Text.
	Embedding []float32

	// Metadata identifies the originating document.
	Metadata PassageMetadata
}

// Retrieval is a passage paired with its similarity score.
// Retrievals are transient, freshly computed per query.
type Retrieval struct {
	Passage Passage
	Score   float64
}

// Citation identifies where an answer's supporting text originated.
// Citations are deduplicated by exact-tuple equality within one answer.
type Citation struct {
	Source  string
	Company string
	Period  string
}

// String formats the citation for display.
func (c Citation) String() string {
	return fmt.Sprintf("%s (%s, %s)", c.Source, c.Company, c.Period)
}

// PassageID derives the content identifier for a chunk text: the
// hex-encoded SHA-256 of the exact text bytes. Same text, same id,
// regardless of which document or ingestion run produced it.
func PassageID(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// NewPassage builds a passage from a chunk and its embedding.
func NewPassage(chunk Chunk, embedding []float32) Passage {
	return Passage{
		ID:        PassageID(chunk.Text),
		Text:      chunk.Text,
		Embedding: embedding,
		Metadata: PassageMetadata{
			Source:  chunk.Source,
			Company: chunk.Company,
			Period:  chunk.Period,
		},
	}
}

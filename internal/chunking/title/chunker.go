// Package title provides a heading-aware chunker. Elements are
// accumulated under a detected heading boundary into one chunk, so
// passages keep the coherence of the section they came from.
package title

import (
	"strings"

	"github.com/finsight-labs/finsight-cli/internal/core/domain"
	"github.com/finsight-labs/finsight-cli/internal/core/ports/driven"
)

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// DefaultMaxChars is the default maximum chunk length in characters.
const DefaultMaxChars = 2000

// DefaultMinChars is the default minimum chunk length. Shorter chunks
// are noise (running headers, page numbers) and are discarded.
const DefaultMinChars = 30

// elementSeparator joins element texts within one chunk.
const elementSeparator = "\n\n"

// Chunker groups parsed elements into bounded, section-coherent chunks.
type Chunker struct {
	maxChars int
	minChars int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMaxChars sets the maximum chunk length in characters.
func WithMaxChars(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.maxChars = n
		}
	}
}

// WithMinChars sets the minimum chunk length in characters.
func WithMinChars(n int) Option {
	return func(c *Chunker) {
		if n >= 0 {
			c.minChars = n
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		maxChars: DefaultMaxChars,
		minChars: DefaultMinChars,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.minChars >= c.maxChars {
		c.minChars = DefaultMinChars
	}

	return c
}

// Chunk groups the document's elements into chunks. A chunk is flushed
// when a new heading boundary is reached or when appending the next
// element would exceed the maximum length, whichever comes first.
// Chunks below the minimum length are discarded. Ordering follows the
// element sequence; the position index is assigned at flush time.
func (c *Chunker) Chunk(doc domain.Document, elements []domain.Element) ([]domain.Chunk, error) {
	var (
		chunks   []domain.Chunk
		texts    []string
		size     int
		page     int
		position int
	)

	flush := func() {
		if len(texts) == 0 {
			return
		}
		text := strings.Join(texts, elementSeparator)
		texts = nil
		size = 0
		if len(text) < c.minChars {
			return
		}
		chunks = append(chunks, domain.Chunk{
			Text:     text,
			Source:   doc.Source,
			Company:  doc.Company,
			Period:   doc.Period,
			Page:     page,
			Position: position,
		})
		position++
	}

	for _, el := range elements {
		text := strings.TrimSpace(el.Text)
		if text == "" {
			continue
		}

		// A heading closes the previous section's chunk.
		if el.Kind == domain.ElementHeading {
			flush()
		}

		// An element longer than the budget becomes chunks of its own,
		// split at word boundaries.
		for _, piece := range splitAtWords(text, c.maxChars) {
			if len(texts) > 0 && size+len(elementSeparator)+len(piece) > c.maxChars {
				flush()
			}
			if len(texts) == 0 {
				page = el.Page
			} else {
				size += len(elementSeparator)
			}
			texts = append(texts, piece)
			size += len(piece)
		}
	}
	flush()

	return chunks, nil
}

// splitAtWords splits text into pieces of at most max characters,
// breaking at the last space before the limit where possible.
func splitAtWords(text string, max int) []string {
	if len(text) <= max {
		return []string{text}
	}

	var pieces []string
	for len(text) > max {
		cut := max
		if idx := strings.LastIndexByte(text[:max], ' '); idx > 0 {
			cut = idx
		}
		pieces = append(pieces, strings.TrimSpace(text[:cut]))
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		pieces = append(pieces, text)
	}
	return pieces
}

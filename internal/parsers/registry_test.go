package parsers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-labs/finsight-cli/internal/core/domain"
)

type stubParser struct {
	exts []string
}

func (s *stubParser) Extensions() []string { return s.exts }

func (s *stubParser) Parse(_ context.Context, _ string) ([]domain.Element, error) {
	return nil, nil
}

func TestRegistry_ForFile(t *testing.T) {
	pdf := &stubParser{exts: []string{".pdf"}}
	text := &stubParser{exts: []string{".txt", ".md"}}
	r := NewRegistry(pdf, text)

	t.Run("selects by extension", func(t *testing.T) {
		got, ok := r.ForFile("/corpus/Apple/2023/filing.pdf")
		require.True(t, ok)
		assert.Same(t, pdf, got)

		got, ok = r.ForFile("notes.md")
		require.True(t, ok)
		assert.Same(t, text, got)
	})

	t.Run("case insensitive", func(t *testing.T) {
		got, ok := r.ForFile("FILING.PDF")
		require.True(t, ok)
		assert.Same(t, pdf, got)
	})

	t.Run("unknown extension ignored", func(t *testing.T) {
		_, ok := r.ForFile("chart.png")
		assert.False(t, ok)
	})

	t.Run("no extension ignored", func(t *testing.T) {
		_, ok := r.ForFile("README")
		assert.False(t, ok)
	})
}

func TestRegistry_Extensions(t *testing.T) {
	r := NewRegistry(&stubParser{exts: []string{".pdf"}}, &stubParser{exts: []string{".txt"}})
	assert.ElementsMatch(t, []string{".pdf", ".txt"}, r.Extensions())
}

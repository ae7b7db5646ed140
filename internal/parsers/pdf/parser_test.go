package pdf

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-labs/finsight-cli/internal/core/domain"
	"github.com/finsight-labs/finsight-cli/internal/core/ports/driven"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
}

func (m *mockRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	return m.output, m.err
}

// writeTestPDF creates a placeholder file so the stat check passes.
func writeTestPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "filing.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0600))
	return path
}

func TestNew(t *testing.T) {
	p := New()
	require.NotNil(t, p)
	assert.IsType(t, &Parser{}, p)
}

func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{".pdf"}, New().Extensions())
}

func TestParse_MissingFile(t *testing.T) {
	p := New(WithRunner(&mockRunner{output: []byte("unused")}))

	_, err := p.Parse(context.Background(), "/nonexistent/filing.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestParse_RunnerFailure(t *testing.T) {
	p := New(WithRunner(&mockRunner{err: errors.New("exit status 1")}))

	_, err := p.Parse(context.Background(), writeTestPDF(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestParse_MissingBinary(t *testing.T) {
	p := New(WithRunner(&mockRunner{err: &exec.Error{Name: "pdftotext", Err: exec.ErrNotFound}}))

	_, err := p.Parse(context.Background(), writeTestPDF(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParse)
	assert.Contains(t, err.Error(), "Install poppler")
}

func TestParse_ClassifiesElements(t *testing.T) {
	output := "Item 7. Management Discussion\n" +
		"\n" +
		"Net sales increased 8% compared to the prior year, driven by iPhone.\n" +
		"\n" +
		"Products        200,583     205,489\n" +
		"Services         85,200      78,129\n" +
		"\f" +
		"RISK FACTORS\n" +
		"\n" +
		"The company faces significant competition in all markets.\n"

	p := New(WithRunner(&mockRunner{output: []byte(output)}))

	elements, err := p.Parse(context.Background(), writeTestPDF(t))
	require.NoError(t, err)
	require.Len(t, elements, 5)

	assert.Equal(t, domain.ElementHeading, elements[0].Kind)
	assert.Equal(t, "Item 7. Management Discussion", elements[0].Text)
	assert.Equal(t, 1, elements[0].Page)

	assert.Equal(t, domain.ElementParagraph, elements[1].Kind)

	assert.Equal(t, domain.ElementTable, elements[2].Kind)
	assert.Contains(t, elements[2].Text, "200,583")

	assert.Equal(t, domain.ElementHeading, elements[3].Kind)
	assert.Equal(t, 2, elements[3].Page)

	assert.Equal(t, domain.ElementParagraph, elements[4].Kind)
	assert.Equal(t, 2, elements[4].Page)
}

func TestParse_EmptyOutput(t *testing.T) {
	p := New(WithRunner(&mockRunner{output: nil}))

	elements, err := p.Parse(context.Background(), writeTestPDF(t))
	require.NoError(t, err)
	assert.Empty(t, elements)
}

func TestLooksLikeHeading(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"item marker", "Item 1A. Risk Factors", true},
		{"part marker", "PART II", true},
		{"all caps", "CONSOLIDATED BALANCE SHEETS", true},
		{"title case", "Liquidity and Capital Resources", true},
		{"sentence", "Net sales increased 8% compared to the prior year.", false},
		{"multi line", "One\nTwo", false},
		{"trailing colon", "The following table shows:", false},
		{"lowercase prose", "the company believes that demand will recover because inventories are low", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, looksLikeHeading(tt.text))
		})
	}
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "pdftotext")
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Parser = (*Parser)(nil)
}

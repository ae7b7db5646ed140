// Package text parses plain-text and Markdown filings. Blocks are
// separated by blank lines; Markdown heading markers and short
// all-caps lines are treated as section boundaries.
package text

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/finsight-labs/finsight-cli/internal/core/domain"
	"github.com/finsight-labs/finsight-cli/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

// Parser extracts elements from plain-text and Markdown files.
type Parser struct{}

// New creates a text parser.
func New() *Parser {
	return &Parser{}
}

// Extensions returns the file extensions this parser handles.
func (p *Parser) Extensions() []string {
	return []string{".txt", ".md"}
}

// Parse reads the file and returns its elements in document order.
// Text formats have no page structure, so Page is always 0.
func (p *Parser) Parse(_ context.Context, path string) ([]domain.Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrParse, path, err)
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")

	var elements []domain.Element
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		elements = append(elements, domain.Element{
			Kind: classify(block),
			Text: stripHeadingMarker(block),
		})
	}

	return elements, nil
}

// classify decides the element kind for a block.
func classify(block string) domain.ElementKind {
	if strings.Contains(block, "\n") {
		if looksTabular(block) {
			return domain.ElementTable
		}
		return domain.ElementParagraph
	}
	if strings.HasPrefix(block, "#") {
		return domain.ElementHeading
	}
	if len(block) <= 80 && isAllCaps(block) {
		return domain.ElementHeading
	}
	return domain.ElementParagraph
}

// looksTabular reports whether a multi-line block reads like a
// Markdown or column-aligned table.
func looksTabular(block string) bool {
	lines := strings.Split(block, "\n")
	piped, gapped := 0, 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "|") {
			piped++
		}
		if strings.Contains(trimmed, "   ") {
			gapped++
		}
	}
	return piped*2 >= len(lines) || gapped*2 >= len(lines)
}

// isAllCaps reports whether every letter in the text is upper case.
func isAllCaps(text string) bool {
	letters := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return letters > 0
}

// stripHeadingMarker removes leading Markdown heading markers.
func stripHeadingMarker(block string) string {
	return strings.TrimSpace(strings.TrimLeft(block, "#"))
}

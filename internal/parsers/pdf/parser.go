// Package pdf parses PDF filings by shelling out to pdftotext from
// poppler-utils. Layout mode keeps column spacing intact so embedded
// tables survive as recognisable elements.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"unicode"

	"github.com/finsight-labs/finsight-cli/internal/core/domain"
	"github.com/finsight-labs/finsight-cli/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

// CommandRunner abstracts command execution for testability.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Parser extracts elements from PDF files via pdftotext.
type Parser struct {
	runner CommandRunner
}

// Option configures the parser.
type Option func(*Parser)

// WithRunner sets a custom command runner. Used in tests.
func WithRunner(r CommandRunner) Option {
	return func(p *Parser) {
		p.runner = r
	}
}

// New creates a PDF parser.
func New(opts ...Option) *Parser {
	p := &Parser{runner: execRunner{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Extensions returns the file extensions this parser handles.
func (p *Parser) Extensions() []string {
	return []string{".pdf"}
}

// Parse extracts elements from the PDF at path. Pages are delimited by
// form feeds in pdftotext output; blocks within a page are delimited by
// blank lines and classified as heading, table or paragraph.
func (p *Parser) Parse(ctx context.Context, path string) ([]domain.Element, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrParse, path, err)
	}

	out, err := p.runner.Run(ctx, "pdftotext", "-layout", "-enc", "UTF-8", path, "-")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrParse, InstallInstructions())
		}
		return nil, fmt.Errorf("%w: pdftotext %s: %v", domain.ErrParse, path, err)
	}

	var elements []domain.Element
	for pageIdx, page := range strings.Split(string(out), "\f") {
		for _, block := range splitBlocks(page) {
			elements = append(elements, domain.Element{
				Kind: classify(block),
				Text: block,
				Page: pageIdx + 1,
			})
		}
	}

	return elements, nil
}

// InstallInstructions describes how to install the pdftotext dependency.
func InstallInstructions() string {
	return "pdftotext not found. Install poppler:\n" +
		"  macOS:  brew install poppler\n" +
		"  Debian: apt install poppler-utils\n" +
		"  Fedora: dnf install poppler-utils"
}

// splitBlocks splits page text into blocks separated by blank lines.
func splitBlocks(page string) []string {
	var (
		blocks []string
		lines  []string
	)

	flush := func() {
		if len(lines) == 0 {
			return
		}
		block := strings.TrimSpace(strings.Join(lines, "\n"))
		lines = nil
		if block != "" {
			blocks = append(blocks, block)
		}
	}

	for _, line := range strings.Split(page, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		lines = append(lines, strings.TrimRight(line, " \t"))
	}
	flush()

	return blocks
}

// maxHeadingLen bounds how long a single line can be and still count
// as a section heading.
const maxHeadingLen = 120

// classify decides the element kind for a block.
func classify(block string) domain.ElementKind {
	if looksTabular(block) {
		return domain.ElementTable
	}
	if looksLikeHeading(block) {
		return domain.ElementHeading
	}
	return domain.ElementParagraph
}

// looksTabular reports whether a block has the column gaps pdftotext
// layout mode produces for tables: multiple lines with runs of three
// or more spaces between cells.
func looksTabular(block string) bool {
	lines := strings.Split(block, "\n")
	if len(lines) < 2 {
		return false
	}
	gapped := 0
	for _, line := range lines {
		if strings.Contains(strings.TrimSpace(line), "   ") {
			gapped++
		}
	}
	return gapped*2 >= len(lines)
}

// looksLikeHeading reports whether a block is a single short line that
// reads like a section title: a filing item marker, an all-caps line,
// or title-cased text without terminal punctuation.
func looksLikeHeading(block string) bool {
	if strings.Contains(block, "\n") || len(block) > maxHeadingLen {
		return false
	}

	lower := strings.ToLower(block)
	if strings.HasPrefix(lower, "item ") || strings.HasPrefix(lower, "part ") ||
		strings.HasPrefix(lower, "note ") {
		return true
	}

	if strings.HasSuffix(block, ".") || strings.HasSuffix(block, ",") ||
		strings.HasSuffix(block, ";") || strings.HasSuffix(block, ":") {
		return false
	}

	letters, upper := 0, 0
	for _, r := range block {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 {
		return false
	}
	// All caps, or title case on a short line.
	if upper == letters {
		return true
	}
	words := strings.Fields(block)
	if len(words) > 8 {
		return false
	}
	if r := []rune(words[0])[0]; !unicode.IsUpper(r) && !unicode.IsDigit(r) {
		return false
	}
	for _, w := range words {
		r := []rune(w)[0]
		if unicode.IsUpper(r) || unicode.IsDigit(r) || smallWords[strings.ToLower(w)] {
			continue
		}
		return false
	}
	return true
}

// smallWords are connectives allowed lowercase inside a title-cased heading.
var smallWords = map[string]bool{
	"a": true, "an": true, "and": true, "by": true, "for": true,
	"in": true, "of": true, "on": true, "or": true, "the": true, "to": true,
}

package parsers

import (
	"path/filepath"
	"strings"

	"github.com/finsight-labs/finsight-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ParserRegistry = (*Registry)(nil)

// Registry maps file extensions to parsers. Registration order decides
// nothing: each extension belongs to exactly one parser, last wins.
type Registry struct {
	byExt map[string]driven.Parser
}

// NewRegistry creates a registry over the given parsers.
func NewRegistry(parsers ...driven.Parser) *Registry {
	r := &Registry{byExt: make(map[string]driven.Parser)}
	for _, p := range parsers {
		r.Register(p)
	}
	return r
}

// Register adds a parser for all its extensions.
func (r *Registry) Register(p driven.Parser) {
	for _, ext := range p.Extensions() {
		r.byExt[strings.ToLower(ext)] = p
	}
}

// ForFile returns the parser for the file's extension, or false when
// the extension is not recognised.
func (r *Registry) ForFile(path string) (driven.Parser, bool) {
	p, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return p, ok
}

// Extensions returns all registered extensions.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}

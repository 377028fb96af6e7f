package builder

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Filter decides which referenced identifiers are excluded from the graph.
// Exclusion rules are configuration input, not a core invariant: the default
// set filters the language's own standard library and well-known third-party
// namespaces so external types do not drown the analysis.
type Filter struct {
	prefixes []string
	patterns []glob.Glob
}

// NewFilter compiles prefix and glob-pattern exclusion rules. Pattern syntax
// follows gobwas/glob with "." as the separator, so "org.apache.**" matches
// everything below org.apache.
func NewFilter(prefixes, patterns []string) (*Filter, error) {
	f := &Filter{prefixes: prefixes}
	for _, p := range patterns {
		compiled, err := glob.Compile(p, '.')
		if err != nil {
			return nil, fmt.Errorf("invalid exclusion pattern %q: %w", p, err)
		}
		f.patterns = append(f.patterns, compiled)
	}
	return f, nil
}

// Excluded reports whether the referenced identifier matches any exclusion
// rule.
func (f *Filter) Excluded(ref string) bool {
	if f == nil {
		return false
	}
	for _, p := range f.prefixes {
		if strings.HasPrefix(ref, p) {
			return true
		}
	}
	for _, g := range f.patterns {
		if g.Match(ref) {
			return true
		}
	}
	return false
}

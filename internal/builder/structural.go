package builder

import (
	"fmt"

	"wirelens/internal/facts"
	"wirelens/internal/graph"
	"wirelens/pkg/logging"
)

// Level selects the granularity of a structural graph.
type Level int

const (
	// LevelNamespace aggregates dependencies between namespaces: each
	// reference is attributed to the parent namespace of its target.
	LevelNamespace Level = iota
	// LevelType keeps dependencies between fully-qualified type names.
	LevelType
)

// String makes Level satisfy the fmt.Stringer interface.
func (l Level) String() string {
	if l == LevelType {
		return "type"
	}
	return "namespace"
}

// ParseLevel maps a user-supplied level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "namespace", "":
		return LevelNamespace, nil
	case "type":
		return LevelType, nil
	default:
		return LevelNamespace, fmt.Errorf("unknown graph level %q (want namespace or type)", s)
	}
}

// Structural builds a namespace- or type-level dependency graph from
// source-unit facts. Units are applied incrementally; the finished graph is
// order-independent because nodes and edges are set-based.
type Structural struct {
	level  Level
	filter *Filter
	g      *graph.Graph
}

// NewStructural returns a builder producing a fresh graph at the given level.
// A nil filter excludes nothing.
func NewStructural(level Level, filter *Filter) *Structural {
	return &Structural{
		level:  level,
		filter: filter,
		g:      graph.New(),
	}
}

// AddUnit applies one source-unit fact. Units without a resolvable namespace
// are skipped with a diagnostic, never fatally. Wildcard imports have no
// derivable single target and are skipped, as are references matching the
// exclusion filter.
func (b *Structural) AddUnit(u facts.SourceUnit) {
	if u.Namespace == "" {
		logging.Warn("Builder", "skipping unit %s: no resolvable namespace", u.Path)
		return
	}

	switch b.level {
	case LevelType:
		b.addTypeLevel(u)
	default:
		b.addNamespaceLevel(u)
	}
}

func (b *Structural) addNamespaceLevel(u facts.SourceUnit) {
	b.g.AddNode(u.Namespace, graph.KindNamespace)
	for _, imp := range u.Imports {
		if imp.Wildcard || b.filter.Excluded(imp.Target) {
			continue
		}
		target := facts.ParentNamespace(imp.Target)
		if target == "" {
			logging.Debug("Builder", "reference %q has no namespace, dropped", imp.Target)
			continue
		}
		// Intra-namespace references are not dependencies at this level.
		if target == u.Namespace {
			continue
		}
		b.g.AddNode(target, graph.KindNamespace)
		b.g.AddEdge(u.Namespace, target)
	}
}

func (b *Structural) addTypeLevel(u facts.SourceUnit) {
	for _, t := range u.Types {
		id := t.FullName()
		b.g.AddNode(id, graph.KindType)
		for _, imp := range u.Imports {
			if imp.Wildcard || b.filter.Excluded(imp.Target) {
				continue
			}
			if imp.Target == id {
				continue
			}
			b.g.AddNode(imp.Target, graph.KindType)
			b.g.AddEdge(id, imp.Target)
		}
	}
}

// Graph returns the graph built so far. Callers must finish adding units
// before running queries against it.
func (b *Structural) Graph() *graph.Graph {
	return b.g
}

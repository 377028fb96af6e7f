// Package builder converts extracted facts into dependency graphs.
//
// Two independent builders share the graph model in internal/graph:
//
// Structural builds a namespace-level or type-level graph from source-unit
// facts. At namespace level each import is attributed to its parent
// namespace; at type level the reference is kept unaltered. Wildcard imports
// and references matching the configured exclusion filter are skipped.
//
// Components builds the component-wiring graph from declarative
// (annotation-marked) and configuration (XML bean) facts. Component identity
// derivation is a pure function of the fact: explicit identifiers win,
// declarative components fall back to the implementation's simple name with
// the first letter lowercased, configuration components fall back to the
// implementation class name. Wiring references that resolve to no known
// component are dropped silently.
//
// Structural, namespace-level and component graphs are distinct graph
// instances and are never merged. All builders absorb malformed facts with a
// diagnostic instead of failing: the transformation is best effort.
package builder

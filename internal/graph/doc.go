// Package graph provides the directed dependency graph wirelens builds its
// analyses on: a deduplicated-edge digraph with two-way adjacency indices,
// cycle detection and coupling metrics.
//
// # Core Concepts
//
// Graph: nodes keyed by identifier (namespace path, fully-qualified type name
// or component identifier) and a set of directed edges between them. Edges
// are unweighted and deduplicated; adding an existing edge is a no-op, and
// missing endpoints are auto-added so no edge ever dangles.
//
// Cycle detection: Tarjan's strongly-connected components determine exact
// cycle membership; a greedy walk then reconstructs one witness cycle per
// cyclic region. Self-loops are reported as 1-node cycles.
//
// Coupling metrics: per-node afferent/efferent edge counts and the
// instability score efferent/(afferent+efferent), bucketed into
// stable/moderate/unstable bands for reporting.
//
// # Lifecycle
//
// A Graph is created per analysis run, populated sequentially by one of the
// builders in internal/builder, then queried read-only. Construction is not
// thread-safe; once building has finished, DetectCycles and CouplingMetrics
// may run concurrently with each other.
package graph

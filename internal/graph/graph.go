package graph

import (
	"sort"
)

// NodeKind categorises nodes. A dependency graph is built at exactly one
// level, but placeholder nodes created as edge targets start out unknown
// until a builder records them properly.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindNamespace
	KindType
	KindComponent
)

// String makes NodeKind satisfy the fmt.Stringer interface.
func (k NodeKind) String() string {
	switch k {
	case KindNamespace:
		return "NAMESPACE"
	case KindType:
		return "TYPE"
	case KindComponent:
		return "COMPONENT"
	default:
		return "UNKNOWN"
	}
}

// Node is a vertex in a dependency graph. The ID is a namespace path, a
// fully-qualified type name or a component identifier, depending on which
// builder produced the graph.
type Node struct {
	ID   string
	Kind NodeKind
}

// Edge is an ordered (source, target) pair meaning "source depends on
// target". Edges are unweighted and unlabeled.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is a directed graph with deduplicated edges and adjacency indexed in
// both directions. It is not safe for concurrent mutation; the contract is
// build first, then run read-only queries.
type Graph struct {
	nodes    map[string]*Node
	outgoing map[string]map[string]struct{}
	incoming map[string]map[string]struct{}
	edges    int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string]map[string]struct{}),
		incoming: make(map[string]map[string]struct{}),
	}
}

// AddNode inserts a node with the given kind. It is idempotent: when the node
// already exists the stored node is returned and inserted is false. A node
// previously auto-created as an edge endpoint (KindUnknown) is upgraded to
// the given kind rather than duplicated.
//
// An empty ID is a programming error and panics.
func (g *Graph) AddNode(id string, kind NodeKind) (node *Node, inserted bool) {
	mustID(id)
	if n, ok := g.nodes[id]; ok {
		if n.Kind == KindUnknown && kind != KindUnknown {
			n.Kind = kind
		}
		return n, false
	}
	n := &Node{ID: id, Kind: kind}
	g.nodes[id] = n
	return n, true
}

// AddEdge inserts a directed edge from source to target. Missing endpoints
// are auto-added as placeholders so the graph never holds a dangling edge.
// Re-adding an existing edge is a no-op; inserted reports whether the edge
// was new.
func (g *Graph) AddEdge(source, target string) (inserted bool) {
	mustID(source)
	mustID(target)
	g.AddNode(source, KindUnknown)
	g.AddNode(target, KindUnknown)

	out, ok := g.outgoing[source]
	if !ok {
		out = make(map[string]struct{})
		g.outgoing[source] = out
	}
	if _, exists := out[target]; exists {
		return false
	}
	out[target] = struct{}{}

	in, ok := g.incoming[target]
	if !ok {
		in = make(map[string]struct{})
		g.incoming[target] = in
	}
	in[source] = struct{}{}

	g.edges++
	return true
}

// HasEdge reports whether the edge source→target exists.
func (g *Graph) HasEdge(source, target string) bool {
	_, ok := g.outgoing[source][target]
	return ok
}

// Node returns the stored node or nil if it does not exist.
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// OutgoingOf returns the sorted IDs the given node depends on. A missing node
// yields an empty slice, not an error.
func (g *Graph) OutgoingOf(id string) []string {
	mustID(id)
	return sortedKeys(g.outgoing[id])
}

// IncomingOf returns the sorted IDs that depend on the given node. A missing
// node yields an empty slice, not an error.
func (g *Graph) IncomingOf(id string) []string {
	mustID(id)
	return sortedKeys(g.incoming[id])
}

// NodeCount returns the number of nodes, placeholders included.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Nodes returns all nodes sorted by ID. The slice is a copy; the nodes are
// the stored records.
func (g *Graph) Nodes() []*Node {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	nodes := make([]*Node, len(ids))
	for i, id := range ids {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// Edges returns all edges sorted by source, then target.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.edges)
	for source, targets := range g.outgoing {
		for target := range targets {
			edges = append(edges, Edge{Source: source, Target: target})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	return edges
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func mustID(id string) {
	if id == "" {
		panic("graph: empty node identifier")
	}
}

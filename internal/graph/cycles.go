package graph

import (
	"sort"
	"strings"
)

// Cycle is an ordered sequence of node IDs n0..nk where each ni has an edge
// to n(i+1) and nk has an edge back to n0. A self-loop is the 1-node cycle.
type Cycle []string

// DetectCycles returns representative cycles for the cyclic regions of the
// graph. Membership is exact: a node appears in some returned cycle only if
// it genuinely lies on a directed cycle, and every returned sequence is a
// genuine cycle. Reconstruction is a greedy walk confined to one
// strongly-connected component at a time, preferring unvisited successors;
// it aims for one witness per offending region but may under-report
// witnesses in densely interlinked components. Callers that need full
// elementary-cycle enumeration need a different algorithm; reporting
// consumers act per offending region, not per elementary cycle.
func (g *Graph) DetectCycles() []Cycle {
	comp := g.cyclicComponents()

	var cycles []Cycle
	seen := make(map[string]struct{})

	emit := func(c Cycle) {
		key := canonicalKey(c)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		cycles = append(cycles, c)
	}

	// Self-loops first: the walk below requires at least two distinct nodes.
	var selfLoops []string
	for id := range g.nodes {
		if g.HasEdge(id, id) {
			selfLoops = append(selfLoops, id)
		}
	}
	sort.Strings(selfLoops)
	for _, id := range selfLoops {
		emit(Cycle{id})
	}

	ids := make([]string, 0, len(comp))
	for id := range comp {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	visited := make(map[string]bool)
	for _, start := range ids {
		if visited[start] {
			continue
		}
		path := Cycle{start}
		visited[start] = true
		current := start

		for {
			next := g.nextWitness(current, start, comp, visited)
			if next == "" {
				break // walk dead-ended, discard the partial path
			}
			if next == start {
				emit(append(Cycle(nil), path...))
				break
			}
			visited[next] = true
			path = append(path, next)
			current = next
		}
	}

	return cycles
}

// cyclicComponents maps every node lying in a strongly-connected component of
// size greater than one to its component index. Self-loop nodes outside such
// components are not included; they are reported separately as 1-node cycles.
func (g *Graph) cyclicComponents() map[string]int {
	comp := make(map[string]int)
	for i, scc := range g.stronglyConnected() {
		if len(scc) > 1 {
			for _, id := range scc {
				comp[id] = i
			}
		}
	}
	return comp
}

// nextWitness picks the successor of current for the reconstruction walk,
// never leaving the start node's strongly-connected component: the start
// node if it is a direct successor (closing the cycle), otherwise the first
// unvisited member successor in sorted order. Confining the walk to one
// component keeps a cross-component edge from dragging the walk into a
// region whose witness belongs to a different start.
func (g *Graph) nextWitness(current, start string, comp map[string]int, visited map[string]bool) string {
	var first string
	for _, succ := range g.OutgoingOf(current) {
		if succ == current {
			continue
		}
		c, ok := comp[succ]
		if !ok || c != comp[start] {
			continue
		}
		if succ == start {
			return start
		}
		if first == "" && !visited[succ] {
			first = succ
		}
	}
	return first
}

// stronglyConnected runs Tarjan's algorithm and returns all strongly-connected
// components, singletons included.
func (g *Graph) stronglyConnected() [][]string {
	index := 0
	indices := make(map[string]int, len(g.nodes))
	lowlink := make(map[string]int, len(g.nodes))
	onStack := make(map[string]bool, len(g.nodes))
	var stack []string
	var components [][]string

	var strongconnect func(v string)
	strongconnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.OutgoingOf(v) {
			if _, seen := indices[w]; !seen {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var component []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				component = append(component, w)
				if w == v {
					break
				}
			}
			components = append(components, component)
		}
	}

	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if _, seen := indices[id]; !seen {
			strongconnect(id)
		}
	}
	return components
}

// canonicalKey rotates a cycle so its lexicographically smallest node comes
// first, making content-equal cycles compare equal regardless of where the
// walk entered them.
func canonicalKey(c Cycle) string {
	if len(c) == 0 {
		return ""
	}
	min := 0
	for i := 1; i < len(c); i++ {
		if c[i] < c[min] {
			min = i
		}
	}
	rotated := make([]string, 0, len(c))
	rotated = append(rotated, c[min:]...)
	rotated = append(rotated, c[:min]...)
	return strings.Join(rotated, "\x00")
}

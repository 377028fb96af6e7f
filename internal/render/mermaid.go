package render

import (
	"fmt"
	"strings"

	"wirelens/internal/analysis"
	"wirelens/internal/graph"
)

// Mermaid renders a snapshot as a Mermaid "graph LR" diagram. Nodes get
// stable aliases (n0, n1, ...) in snapshot order since dotted identifiers are
// not valid Mermaid node names. Edges that lie on a detected cycle are
// stroked red so offending regions stand out.
func Mermaid(snap analysis.Snapshot, cycles []graph.Cycle) string {
	alias := make(map[string]string, len(snap.Nodes))
	var b strings.Builder
	b.WriteString("graph LR\n")

	for i, n := range snap.Nodes {
		a := fmt.Sprintf("n%d", i)
		alias[n.ID] = a
		label := n.ID
		if n.Origin != "" {
			label = fmt.Sprintf("%s<br/>%s", n.ID, strings.ToLower(n.Origin))
		}
		fmt.Fprintf(&b, "    %s[\"%s\"]\n", a, label)
	}

	cycleEdges := make(map[graph.Edge]bool)
	for _, c := range cycles {
		for i := range c {
			cycleEdges[graph.Edge{Source: c[i], Target: c[(i+1)%len(c)]}] = true
		}
	}

	var highlighted []int
	for i, e := range snap.Edges {
		fmt.Fprintf(&b, "    %s --> %s\n", alias[e.Source], alias[e.Target])
		if cycleEdges[e] {
			highlighted = append(highlighted, i)
		}
	}
	for _, i := range highlighted {
		fmt.Fprintf(&b, "    linkStyle %d stroke:#d33,stroke-width:2px\n", i)
	}
	return b.String()
}

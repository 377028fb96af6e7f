package graph

// Stability classification thresholds. Downstream renderers colour nodes by
// these bands; the bands themselves are not stored on the graph.
const (
	stableThreshold   = 0.30
	unstableThreshold = 0.70
)

// StabilityClass buckets an instability score for reporting.
type StabilityClass string

const (
	ClassStable   StabilityClass = "stable"
	ClassModerate StabilityClass = "moderate"
	ClassUnstable StabilityClass = "unstable"
)

// CouplingMetric is the derived coupling record for one node.
type CouplingMetric struct {
	NodeID      string  `json:"node"`
	Afferent    int     `json:"afferent"`
	Efferent    int     `json:"efferent"`
	Instability float64 `json:"instability"`
}

// Class returns the stability classification for the metric's instability.
func (m CouplingMetric) Class() StabilityClass {
	return Classify(m.Instability)
}

// Classify buckets an instability score: below 0.30 is stable, above 0.70 is
// unstable, anything in between is moderate.
func Classify(instability float64) StabilityClass {
	switch {
	case instability < stableThreshold:
		return ClassStable
	case instability > unstableThreshold:
		return ClassUnstable
	default:
		return ClassModerate
	}
}

// CouplingMetrics computes afferent/efferent coupling and instability for
// every node, sorted by node ID. Instability is efferent/(afferent+efferent),
// defined as 0.0 for isolated nodes. The computation is pure and read-only.
func (g *Graph) CouplingMetrics() []CouplingMetric {
	metrics := make([]CouplingMetric, 0, len(g.nodes))
	for _, n := range g.Nodes() {
		afferent := len(g.incoming[n.ID])
		efferent := len(g.outgoing[n.ID])
		instability := 0.0
		if afferent+efferent > 0 {
			instability = float64(efferent) / float64(afferent+efferent)
		}
		metrics = append(metrics, CouplingMetric{
			NodeID:      n.ID,
			Afferent:    afferent,
			Efferent:    efferent,
			Instability: instability,
		})
	}
	return metrics
}

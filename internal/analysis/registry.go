package analysis

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"wirelens/internal/builder"
	"wirelens/internal/graph"
)

// GraphSelector names one of the graphs an analysis run produces.
type GraphSelector string

const (
	// SelectStructural is the namespace- or type-level graph.
	SelectStructural GraphSelector = "structural"
	// SelectComponents is the component-wiring graph.
	SelectComponents GraphSelector = "components"
)

// NodeRecord is a node enriched with the component side-table metadata, when
// any exists. Origin and Implementation are empty for structural nodes and
// for referenced-but-undefined component placeholders.
type NodeRecord struct {
	ID             string `json:"id"`
	Kind           string `json:"kind"`
	Origin         string `json:"origin,omitempty"`
	Implementation string `json:"implementation,omitempty"`
}

// Snapshot is the full node/edge enumeration handed to renderers.
type Snapshot struct {
	Graph GraphSelector `json:"graph"`
	Nodes []NodeRecord  `json:"nodes"`
	Edges []graph.Edge  `json:"edges"`
}

// GraphReport bundles every query result for one graph.
type GraphReport struct {
	NodeCount int                    `json:"nodeCount"`
	EdgeCount int                    `json:"edgeCount"`
	Cycles    []graph.Cycle          `json:"cycles"`
	Metrics   []graph.CouplingMetric `json:"metrics"`
}

// Report is the combined result of all read-only queries over a run.
type Report struct {
	Structural GraphReport `json:"structural"`
	Components GraphReport `json:"components"`
}

// Registry exposes a finished analysis to renderers and the protocol layer
// without re-exposing mutation. It holds the built graphs and the component
// side table; all methods are read-only and safe to call concurrently once
// construction has completed.
type Registry struct {
	level      builder.Level
	structural *graph.Graph
	components *graph.Graph
	info       map[string]builder.ComponentInfo
}

// NewRegistry wraps finished builders. Wire is invoked on the component
// builder in case the caller has not done so; after this point the graphs
// are conceptually frozen.
func NewRegistry(level builder.Level, structural *builder.Structural, components *builder.Components) *Registry {
	components.Wire()
	info := make(map[string]builder.ComponentInfo)
	for _, ci := range components.Infos() {
		info[ci.ID] = ci
	}
	return &Registry{
		level:      level,
		structural: structural.Graph(),
		components: components.Graph(),
		info:       info,
	}
}

// Level returns the structural graph's granularity.
func (r *Registry) Level() builder.Level {
	return r.level
}

func (r *Registry) graphFor(sel GraphSelector) (*graph.Graph, error) {
	switch sel {
	case SelectStructural:
		return r.structural, nil
	case SelectComponents:
		return r.components, nil
	default:
		return nil, fmt.Errorf("unknown graph selector %q (want %s or %s)", sel, SelectStructural, SelectComponents)
	}
}

// Snapshot returns the full node/edge enumeration of the selected graph.
func (r *Registry) Snapshot(sel GraphSelector) (Snapshot, error) {
	g, err := r.graphFor(sel)
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{Graph: sel, Edges: g.Edges()}
	for _, n := range g.Nodes() {
		rec := NodeRecord{ID: n.ID, Kind: n.Kind.String()}
		if sel == SelectComponents {
			if ci, ok := r.info[n.ID]; ok {
				rec.Origin = ci.Origin
				rec.Implementation = ci.Implementation
			}
		}
		snap.Nodes = append(snap.Nodes, rec)
	}
	return snap, nil
}

// Cycles recomputes the representative cycles of the selected graph.
func (r *Registry) Cycles(sel GraphSelector) ([]graph.Cycle, error) {
	g, err := r.graphFor(sel)
	if err != nil {
		return nil, err
	}
	return g.DetectCycles(), nil
}

// Metrics computes the per-node coupling metrics of the selected graph.
func (r *Registry) Metrics(sel GraphSelector) ([]graph.CouplingMetric, error) {
	g, err := r.graphFor(sel)
	if err != nil {
		return nil, err
	}
	return g.CouplingMetrics(), nil
}

// Components returns the side-table records sorted by component id.
func (r *Registry) Components() []builder.ComponentInfo {
	out := make([]builder.ComponentInfo, 0, len(r.info))
	for _, ci := range r.info {
		out = append(out, ci)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Report runs every query over both graphs. The queries are independent and
// read-only, so they run concurrently.
func (r *Registry) Report(ctx context.Context) (*Report, error) {
	report := &Report{
		Structural: GraphReport{NodeCount: r.structural.NodeCount(), EdgeCount: r.structural.EdgeCount()},
		Components: GraphReport{NodeCount: r.components.NodeCount(), EdgeCount: r.components.EdgeCount()},
	}

	eg, _ := errgroup.WithContext(ctx)
	eg.Go(func() error {
		report.Structural.Cycles = r.structural.DetectCycles()
		return nil
	})
	eg.Go(func() error {
		report.Structural.Metrics = r.structural.CouplingMetrics()
		return nil
	})
	eg.Go(func() error {
		report.Components.Cycles = r.components.DetectCycles()
		return nil
	})
	eg.Go(func() error {
		report.Components.Metrics = r.components.CouplingMetrics()
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

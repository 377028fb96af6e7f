package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wirelens/internal/builder"
	"wirelens/internal/facts"
)

func buildRegistry(t *testing.T) *Registry {
	t.Helper()

	structural := builder.NewStructural(builder.LevelNamespace, nil)
	structural.AddUnit(facts.SourceUnit{
		Namespace: "pkg.a",
		Imports:   []facts.ImportRef{{Target: "pkg.b.X"}},
	})
	structural.AddUnit(facts.SourceUnit{
		Namespace: "pkg.b",
		Imports:   []facts.ImportRef{{Target: "pkg.a.Y"}},
	})

	components := builder.NewComponents()
	service := facts.TypeDecl{
		Name:        "OrderService",
		Namespace:   "pkg.a",
		Annotations: []facts.Annotation{{Name: "Service"}},
		Fields:      []facts.Field{{Name: "repo", Type: "OrderRepository", Injected: true}},
	}
	repo := facts.TypeDecl{
		Name:        "OrderRepository",
		Namespace:   "pkg.b",
		Annotations: []facts.Annotation{{Name: "Repository"}},
	}
	components.AddType(service)
	components.AddType(repo)

	return NewRegistry(builder.LevelNamespace, structural, components)
}

func TestSnapshotStructural(t *testing.T) {
	r := buildRegistry(t)

	snap, err := r.Snapshot(SelectStructural)
	require.NoError(t, err)
	assert.Equal(t, SelectStructural, snap.Graph)
	assert.Len(t, snap.Nodes, 2)
	assert.Len(t, snap.Edges, 2)
	for _, n := range snap.Nodes {
		assert.Equal(t, "NAMESPACE", n.Kind)
		assert.Empty(t, n.Origin)
	}
}

func TestSnapshotComponentsCarriesMetadata(t *testing.T) {
	r := buildRegistry(t)

	snap, err := r.Snapshot(SelectComponents)
	require.NoError(t, err)
	require.Len(t, snap.Nodes, 2)

	byID := make(map[string]NodeRecord)
	for _, n := range snap.Nodes {
		byID[n.ID] = n
	}
	svc := byID["orderService"]
	assert.Equal(t, "COMPONENT", svc.Kind)
	assert.Equal(t, "DECLARATIVE", svc.Origin)
	assert.Equal(t, "pkg.a.OrderService", svc.Implementation)
}

func TestUnknownSelector(t *testing.T) {
	r := buildRegistry(t)

	_, err := r.Snapshot(GraphSelector("bogus"))
	assert.Error(t, err)
	_, err = r.Cycles(GraphSelector("bogus"))
	assert.Error(t, err)
	_, err = r.Metrics(GraphSelector("bogus"))
	assert.Error(t, err)
}

func TestReportRunsAllQueries(t *testing.T) {
	r := buildRegistry(t)

	report, err := r.Report(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Structural.NodeCount)
	assert.Equal(t, 2, report.Structural.EdgeCount)
	require.Len(t, report.Structural.Cycles, 1)
	assert.Len(t, report.Structural.Metrics, 2)

	assert.Equal(t, 2, report.Components.NodeCount)
	assert.Equal(t, 1, report.Components.EdgeCount)
	assert.Empty(t, report.Components.Cycles)
}

package render

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"wirelens/internal/builder"
	"wirelens/internal/graph"
)

// MetricsTable renders coupling metrics as a console table, unstable rows
// tinted red and stable rows green.
func MetricsTable(metrics []graph.CouplingMetric, color bool) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Node", "Ca", "Ce", "Instability", "Class"})

	for _, m := range metrics {
		class := string(m.Class())
		if color {
			switch m.Class() {
			case graph.ClassUnstable:
				class = text.FgRed.Sprint(class)
			case graph.ClassStable:
				class = text.FgGreen.Sprint(class)
			}
		}
		t.AppendRow(table.Row{m.NodeID, m.Afferent, m.Efferent, fmt.Sprintf("%.2f", m.Instability), class})
	}
	return t.Render()
}

// CyclesTable renders detected cycles as a console table.
func CyclesTable(cycles []graph.Cycle) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Length", "Path"})
	for i, c := range cycles {
		t.AppendRow(table.Row{i + 1, len(c), cyclePath(c)})
	}
	return t.Render()
}

// ComponentsTable renders the component inventory as a console table.
func ComponentsTable(infos []builder.ComponentInfo) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Identifier", "Origin", "Implementation"})
	for _, ci := range infos {
		t.AppendRow(table.Row{ci.ID, ci.Origin, ci.Implementation})
	}
	return t.Render()
}

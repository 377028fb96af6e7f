package render

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"

	"wirelens/internal/analysis"
	"wirelens/internal/builder"
	"wirelens/internal/graph"
)

// ReportData is the view model for the Markdown report.
type ReportData struct {
	Root        string
	Level       string
	GeneratedAt time.Time
	Report      *analysis.Report
	Components  []builder.ComponentInfo
}

const markdownTemplate = `# Dependency Report

- **Project:** {{ .Root }}
- **Structural level:** {{ .Level }}
- **Generated:** {{ .GeneratedAt | date "2006-01-02 15:04:05" }}

## Summary

| Graph | Nodes | Edges | Cycles |
|-------|------:|------:|-------:|
| Structural ({{ .Level }}) | {{ .Report.Structural.NodeCount }} | {{ .Report.Structural.EdgeCount }} | {{ len .Report.Structural.Cycles }} |
| Components | {{ .Report.Components.NodeCount }} | {{ .Report.Components.EdgeCount }} | {{ len .Report.Components.Cycles }} |

## Circular Dependencies
{{ if or .Report.Structural.Cycles .Report.Components.Cycles }}
{{- range .Report.Structural.Cycles }}
- structural: {{ cyclePath . }}
{{- end }}
{{- range .Report.Components.Cycles }}
- components: {{ cyclePath . }}
{{- end }}
{{ else }}
No circular dependencies detected.
{{ end }}
## Coupling ({{ .Level }} level)

| Node | Afferent | Efferent | Instability | Class |
|------|---------:|---------:|------------:|-------|
{{- range .Report.Structural.Metrics }}
| {{ .NodeID }} | {{ .Afferent }} | {{ .Efferent }} | {{ printf "%.2f" .Instability }} | {{ .Class }} |
{{- end }}

## Components

{{ if .Components }}| Identifier | Origin | Implementation |
|------------|--------|----------------|
{{- range .Components }}
| {{ .ID }} | {{ .Origin | lower }} | {{ .Implementation }} |
{{- end }}
{{ else }}No managed components found.
{{ end }}`

// Markdown renders the full analysis report as Markdown.
func Markdown(data ReportData) (string, error) {
	tmpl, err := template.New("report").
		Funcs(sprig.TxtFuncMap()).
		Funcs(template.FuncMap{"cyclePath": cyclePath}).
		Parse(markdownTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing report template: %w", err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return b.String(), nil
}

// cyclePath formats a cycle as "a -> b -> a", closing the loop explicitly.
func cyclePath(c graph.Cycle) string {
	if len(c) == 0 {
		return ""
	}
	return strings.Join(append(append([]string{}, c...), c[0]), " -> ")
}

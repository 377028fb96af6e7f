package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// registerTools registers the wirelens tool catalog.
func (s *Server) registerTools() {
	analyzeTool := mcp.NewTool("analyze_project",
		mcp.WithDescription("Analyze a project's dependency-injection structure and record the result for querying"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Project root directory to analyze"),
		),
		mcp.WithString("level",
			mcp.Description("Structural graph granularity: namespace (default) or type"),
			mcp.Enum("namespace", "type"),
		),
	)
	s.mcpServer.AddTool(analyzeTool, s.handleAnalyzeProject)

	listTool := mcp.NewTool("list_analyses",
		mcp.WithDescription("List recorded analysis runs, newest first"),
	)
	s.mcpServer.AddTool(listTool, s.handleListAnalyses)

	graphTool := mcp.NewTool("get_dependency_graph",
		mcp.WithDescription("Get the full node/edge enumeration of an analyzed graph"),
		mcp.WithString("run",
			mcp.Required(),
			mcp.Description("Analysis run id returned by analyze_project"),
		),
		mcp.WithString("graph",
			mcp.Description("Which graph to query: structural (default) or components"),
			mcp.Enum("structural", "components"),
		),
	)
	s.mcpServer.AddTool(graphTool, s.handleGetDependencyGraph)

	cyclesTool := mcp.NewTool("detect_cycles",
		mcp.WithDescription("Detect circular dependencies in an analyzed graph"),
		mcp.WithString("run",
			mcp.Required(),
			mcp.Description("Analysis run id returned by analyze_project"),
		),
		mcp.WithString("graph",
			mcp.Description("Which graph to query: structural (default) or components"),
			mcp.Enum("structural", "components"),
		),
	)
	s.mcpServer.AddTool(cyclesTool, s.handleDetectCycles)

	metricsTool := mcp.NewTool("get_coupling_metrics",
		mcp.WithDescription("Compute afferent/efferent coupling and instability per node"),
		mcp.WithString("run",
			mcp.Required(),
			mcp.Description("Analysis run id returned by analyze_project"),
		),
		mcp.WithString("graph",
			mcp.Description("Which graph to query: structural (default) or components"),
			mcp.Enum("structural", "components"),
		),
	)
	s.mcpServer.AddTool(metricsTool, s.handleGetCouplingMetrics)

	componentsTool := mcp.NewTool("list_components",
		mcp.WithDescription("List the managed components an analysis discovered, with origin and implementation type"),
		mcp.WithString("run",
			mcp.Required(),
			mcp.Description("Analysis run id returned by analyze_project"),
		),
	)
	s.mcpServer.AddTool(componentsTool, s.handleListComponents)

	diagramTool := mcp.NewTool("render_diagram",
		mcp.WithDescription("Render an analyzed graph as a Mermaid diagram with cycle edges highlighted"),
		mcp.WithString("run",
			mcp.Required(),
			mcp.Description("Analysis run id returned by analyze_project"),
		),
		mcp.WithString("graph",
			mcp.Description("Which graph to render: structural (default) or components"),
			mcp.Enum("structural", "components"),
		),
	)
	s.mcpServer.AddTool(diagramTool, s.handleRenderDiagram)

	reportTool := mcp.NewTool("render_report",
		mcp.WithDescription("Render the full analysis report as Markdown"),
		mcp.WithString("run",
			mcp.Required(),
			mcp.Description("Analysis run id returned by analyze_project"),
		),
	)
	s.mcpServer.AddTool(reportTool, s.handleRenderReport)
}

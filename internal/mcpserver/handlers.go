package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"wirelens/internal/analysis"
	"wirelens/internal/builder"
	"wirelens/internal/config"
	"wirelens/internal/extract"
	"wirelens/internal/render"
	"wirelens/pkg/logging"
)

// analyzeSummary is the JSON payload returned by analyze_project.
type analyzeSummary struct {
	Run          string `json:"run"`
	Root         string `json:"root"`
	Level        string `json:"level"`
	FilesScanned int    `json:"filesScanned"`
	SourceUnits  int    `json:"sourceUnits"`
	Beans        int    `json:"beans"`
	Structural   struct {
		Nodes int `json:"nodes"`
		Edges int `json:"edges"`
	} `json:"structural"`
	Components struct {
		Nodes int `json:"nodes"`
		Edges int `json:"edges"`
	} `json:"components"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

func (s *Server) handleAnalyzeProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path argument is required"), nil
	}
	root, err := filepath.Abs(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid path: %v", err)), nil
	}

	cfg, err := config.Load(root)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading configuration: %v", err)), nil
	}
	level, err := builder.ParseLevel(request.GetString("level", cfg.Level))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	registry, scan, err := analysis.Analyze(ctx, root, cfg, level)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	run := s.store.Add(root, registry)
	if s.watcher != nil {
		if err := s.watcher.Watch(root); err != nil {
			// Staleness tracking is best effort; the run itself is fine.
			logging.Warn("MCPServer", "not watching %s for changes: %v", root, err)
		}
	}
	return s.jsonResult(summaryFor(run, registry, scan))
}

func summaryFor(run *analysis.Run, registry *analysis.Registry, scan *extract.Result) analyzeSummary {
	summary := analyzeSummary{
		Run:          run.ID,
		Root:         run.Root,
		Level:        run.Level,
		FilesScanned: scan.FilesScanned,
		SourceUnits:  len(scan.Units),
		Beans:        len(scan.Beans),
		Diagnostics:  scan.Diagnostics,
	}
	if snap, err := registry.Snapshot(analysis.SelectStructural); err == nil {
		summary.Structural.Nodes = len(snap.Nodes)
		summary.Structural.Edges = len(snap.Edges)
	}
	if snap, err := registry.Snapshot(analysis.SelectComponents); err == nil {
		summary.Components.Nodes = len(snap.Nodes)
		summary.Components.Edges = len(snap.Edges)
	}
	return summary
}

func (s *Server) handleListAnalyses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.jsonResult(s.store.List())
}

func (s *Server) handleGetDependencyGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	run, sel, errResult := s.runAndSelector(request)
	if errResult != nil {
		return errResult, nil
	}
	snap, err := run.Registry.Snapshot(sel)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.jsonResult(snap)
}

func (s *Server) handleDetectCycles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	run, sel, errResult := s.runAndSelector(request)
	if errResult != nil {
		return errResult, nil
	}
	cycles, err := run.Registry.Cycles(sel)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.jsonResult(map[string]interface{}{
		"graph":  sel,
		"count":  len(cycles),
		"cycles": cycles,
	})
}

func (s *Server) handleGetCouplingMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	run, sel, errResult := s.runAndSelector(request)
	if errResult != nil {
		return errResult, nil
	}
	metrics, err := run.Registry.Metrics(sel)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	type classified struct {
		NodeID      string  `json:"node"`
		Afferent    int     `json:"afferent"`
		Efferent    int     `json:"efferent"`
		Instability float64 `json:"instability"`
		Class       string  `json:"class"`
	}
	out := make([]classified, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, classified{
			NodeID:      m.NodeID,
			Afferent:    m.Afferent,
			Efferent:    m.Efferent,
			Instability: m.Instability,
			Class:       string(m.Class()),
		})
	}
	return s.jsonResult(out)
}

func (s *Server) handleListComponents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	run, errResult := s.runFor(request)
	if errResult != nil {
		return errResult, nil
	}
	return s.jsonResult(run.Registry.Components())
}

func (s *Server) handleRenderDiagram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	run, sel, errResult := s.runAndSelector(request)
	if errResult != nil {
		return errResult, nil
	}
	snap, err := run.Registry.Snapshot(sel)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cycles, err := run.Registry.Cycles(sel)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(render.Mermaid(snap, cycles)), nil
}

func (s *Server) handleRenderReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	run, errResult := s.runFor(request)
	if errResult != nil {
		return errResult, nil
	}
	report, err := run.Registry.Report(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("building report: %v", err)), nil
	}
	md, err := render.Markdown(render.ReportData{
		Root:        run.Root,
		Level:       run.Level,
		GeneratedAt: time.Now(),
		Report:      report,
		Components:  run.Registry.Components(),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(md), nil
}

func (s *Server) runFor(request mcp.CallToolRequest) (*analysis.Run, *mcp.CallToolResult) {
	id, err := request.RequireString("run")
	if err != nil {
		return nil, mcp.NewToolResultError("run argument is required")
	}
	run, err := s.store.Get(id)
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	return run, nil
}

func (s *Server) runAndSelector(request mcp.CallToolRequest) (*analysis.Run, analysis.GraphSelector, *mcp.CallToolResult) {
	run, errResult := s.runFor(request)
	if errResult != nil {
		return nil, "", errResult
	}
	sel := analysis.GraphSelector(request.GetString("graph", string(analysis.SelectStructural)))
	return run, sel, nil
}

func (s *Server) jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

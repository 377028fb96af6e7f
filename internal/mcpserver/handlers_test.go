package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: struct {
			Name      string    `json:"name"`
			Arguments any       `json:"arguments,omitempty"`
			Meta      *mcp.Meta `json:"_meta,omitempty"`
		}{
			Arguments: args,
		},
	}
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	content, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return content.Text
}

// writeProject lays down a minimal Spring-style project with a component
// cycle and one XML bean.
func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	src := filepath.Join(root, "src", "main", "java", "com", "acme")
	require.NoError(t, os.MkdirAll(src, 0o755))

	orders := `package com.acme;

import org.springframework.stereotype.Service;
import com.acme.BillingService;

@Service
public class OrderService {
    private final BillingService billing;

    public OrderService(BillingService billing) {
        this.billing = billing;
    }
}
`
	billing := `package com.acme;

import org.springframework.stereotype.Service;
import com.acme.OrderService;

@Service
public class BillingService {
    @Autowired
    private OrderService orders;
}
`
	beans := `<?xml version="1.0" encoding="UTF-8"?>
<beans>
  <bean id="auditLog" class="com.acme.AuditLog">
    <property name="orders" ref="orderService"/>
  </bean>
</beans>
`
	require.NoError(t, os.WriteFile(filepath.Join(src, "OrderService.java"), []byte(orders), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "BillingService.java"), []byte(billing), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "beans.xml"), []byte(beans), 0o644))
	return root
}

// analyzeProject runs the analyze_project handler and returns the server and
// the recorded run id.
func analyzeProject(t *testing.T) (*Server, string) {
	t.Helper()
	root := writeProject(t)
	s := NewServer("test")

	result, err := s.handleAnalyzeProject(context.Background(), callRequest(map[string]interface{}{
		"path": root,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var summary analyzeSummary
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &summary))
	require.NotEmpty(t, summary.Run)
	return s, summary.Run
}

func TestAnalyzeProject(t *testing.T) {
	root := writeProject(t)
	s := NewServer("test")

	result, err := s.handleAnalyzeProject(context.Background(), callRequest(map[string]interface{}{
		"path":  root,
		"level": "namespace",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var summary analyzeSummary
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &summary))
	assert.Equal(t, root, summary.Root)
	assert.Equal(t, "namespace", summary.Level)
	assert.Equal(t, 3, summary.FilesScanned)
	assert.Equal(t, 2, summary.SourceUnits)
	assert.Equal(t, 1, summary.Beans)
	// orderService, billingService, auditLog plus the unresolved ref target.
	assert.GreaterOrEqual(t, summary.Components.Nodes, 3)
}

func TestAnalyzeProjectMissingPath(t *testing.T) {
	s := NewServer("test")
	result, err := s.handleAnalyzeProject(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textOf(t, result), "path")
}

func TestAnalyzeProjectBadLevel(t *testing.T) {
	s := NewServer("test")
	result, err := s.handleAnalyzeProject(context.Background(), callRequest(map[string]interface{}{
		"path":  t.TempDir(),
		"level": "method",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textOf(t, result), "unknown graph level")
}

func TestListAnalyses(t *testing.T) {
	s, runID := analyzeProject(t)

	result, err := s.handleListAnalyses(context.Background(), callRequest(nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var runs []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0]["id"])
	assert.Equal(t, false, runs[0]["stale"])
}

func TestGetDependencyGraph(t *testing.T) {
	s, runID := analyzeProject(t)

	result, err := s.handleGetDependencyGraph(context.Background(), callRequest(map[string]interface{}{
		"run":   runID,
		"graph": "components",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := textOf(t, result)
	assert.Contains(t, text, `"orderService"`)
	assert.Contains(t, text, `"billingService"`)
	assert.Contains(t, text, `"auditLog"`)
}

func TestGetDependencyGraphUnknownRun(t *testing.T) {
	s, _ := analyzeProject(t)

	result, err := s.handleGetDependencyGraph(context.Background(), callRequest(map[string]interface{}{
		"run": "nope",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textOf(t, result), "no analysis run")
}

func TestGetDependencyGraphBadSelector(t *testing.T) {
	s, runID := analyzeProject(t)

	result, err := s.handleGetDependencyGraph(context.Background(), callRequest(map[string]interface{}{
		"run":   runID,
		"graph": "imports",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textOf(t, result), "unknown graph selector")
}

func TestDetectCycles(t *testing.T) {
	s, runID := analyzeProject(t)

	result, err := s.handleDetectCycles(context.Background(), callRequest(map[string]interface{}{
		"run":   runID,
		"graph": "components",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var payload struct {
		Count  int        `json:"count"`
		Cycles [][]string `json:"cycles"`
	}
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &payload))
	require.Equal(t, 1, payload.Count)
	assert.ElementsMatch(t, []string{"billingService", "orderService"}, payload.Cycles[0])
}

func TestGetCouplingMetrics(t *testing.T) {
	s, runID := analyzeProject(t)

	result, err := s.handleGetCouplingMetrics(context.Background(), callRequest(map[string]interface{}{
		"run":   runID,
		"graph": "components",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var metrics []struct {
		Node        string  `json:"node"`
		Instability float64 `json:"instability"`
		Class       string  `json:"class"`
	}
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &metrics))
	byNode := map[string]string{}
	for _, m := range metrics {
		byNode[m.Node] = m.Class
	}
	assert.Equal(t, "moderate", byNode["orderService"])
}

func TestListComponents(t *testing.T) {
	s, runID := analyzeProject(t)

	result, err := s.handleListComponents(context.Background(), callRequest(map[string]interface{}{
		"run": runID,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var components []struct {
		ID     string `json:"id"`
		Origin string `json:"origin"`
	}
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &components))
	origins := map[string]string{}
	for _, c := range components {
		origins[c.ID] = c.Origin
	}
	assert.Equal(t, "DECLARATIVE", origins["orderService"])
	assert.Equal(t, "CONFIG", origins["auditLog"])
}

func TestRenderDiagram(t *testing.T) {
	s, runID := analyzeProject(t)

	result, err := s.handleRenderDiagram(context.Background(), callRequest(map[string]interface{}{
		"run":   runID,
		"graph": "components",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := textOf(t, result)
	assert.Contains(t, text, "graph LR")
	assert.Contains(t, text, "orderService")
}

func TestRenderReport(t *testing.T) {
	s, runID := analyzeProject(t)

	result, err := s.handleRenderReport(context.Background(), callRequest(map[string]interface{}{
		"run": runID,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := textOf(t, result)
	assert.Contains(t, text, "# Dependency Report")
	assert.Contains(t, text, "orderService")
}

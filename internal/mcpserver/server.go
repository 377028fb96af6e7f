package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"wirelens/internal/analysis"
	"wirelens/pkg/logging"
)

// Server exposes wirelens analyses as MCP tools over stdio, so AI assistants
// can analyze a project and query its dependency structure through the
// standard protocol.
type Server struct {
	store     *analysis.Store
	watcher   *Watcher
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server with the full tool catalog registered.
// The filesystem watcher is optional: when it cannot be created, analyses
// simply never go stale and serving continues.
func NewServer(version string) *Server {
	mcpServer := server.NewMCPServer(
		"wirelens",
		version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		store:     analysis.NewStore(),
		mcpServer: mcpServer,
	}

	watcher, err := NewWatcher(s.store)
	if err != nil {
		logging.Warn("MCPServer", "filesystem watcher unavailable, staleness tracking disabled: %v", err)
	} else {
		s.watcher = watcher
	}

	s.registerTools()
	return s
}

// Start serves the MCP protocol over stdio and blocks until the transport
// closes. Logging must go to stderr; stdout belongs to the protocol.
func (s *Server) Start(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.Run(ctx)
		defer s.watcher.Close()
	}
	logging.Info("MCPServer", "serving MCP over stdio")
	return server.ServeStdio(s.mcpServer)
}

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"wirelens/internal/mcpserver"
	"wirelens/pkg/logging"
)

// serveVerbose enables debug logging. All logging goes to stderr because
// stdout carries the MCP protocol stream.
var serveVerbose bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve wirelens analyses over MCP on stdio",
	Long: `Starts an MCP server on stdio exposing the wirelens tool catalog:
analyze_project, list_analyses, get_dependency_graph, detect_cycles,
get_coupling_metrics, list_components, render_diagram and render_report.

Intended to be launched by an MCP client (an AI assistant or IDE
integration); the process serves until its stdin closes.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	level := logging.LevelInfo
	if serveVerbose {
		level = logging.LevelDebug
	}
	logging.Init(level, cmd.ErrOrStderr())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return mcpserver.NewServer(GetVersion()).Start(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Enable debug logging")
}

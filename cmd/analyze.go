package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"wirelens/internal/analysis"
	"wirelens/internal/builder"
	"wirelens/internal/config"
	"wirelens/internal/render"
	"wirelens/pkg/logging"
)

var (
	analyzeLevel   string
	analyzeFormat  string
	analyzeGraph   string
	analyzeOutput  string
	analyzeVerbose bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a project and report its dependency structure",
	Long: `Scans the project at the given path (default: current directory), builds
its structural and component dependency graphs, and prints circular
dependencies, coupling metrics and discovered components.

Output formats:
  table     human-readable tables (default)
  json      the full report as JSON
  markdown  a Markdown report
  mermaid   a Mermaid diagram of the selected graph`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logLevel := logging.LevelWarn
	if analyzeVerbose {
		logLevel = logging.LevelDebug
	}
	logging.Init(logLevel, cmd.ErrOrStderr())

	path := "."
	if len(args) == 1 {
		path = args[0]
	}
	root, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	if analyzeLevel == "" {
		analyzeLevel = cfg.Level
	}
	level, err := builder.ParseLevel(analyzeLevel)
	if err != nil {
		return err
	}

	interactive := term.IsTerminal(int(os.Stderr.Fd())) && !analyzeVerbose
	var spin *spinner.Spinner
	if interactive {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		spin.Suffix = fmt.Sprintf(" analyzing %s", root)
		spin.Start()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	registry, scan, err := analysis.Analyze(ctx, root, cfg, level)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if analyzeOutput != "" {
		f, createErr := os.Create(analyzeOutput)
		if createErr != nil {
			return fmt.Errorf("creating output file: %w", createErr)
		}
		defer f.Close()
		out = f
	}

	for _, d := range scan.Diagnostics {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", d)
	}

	switch analyzeFormat {
	case "table", "":
		return writeTables(out, registry, analyzeOutput == "")
	case "json":
		return writeJSON(ctx, out, registry)
	case "markdown":
		return writeMarkdown(ctx, out, root, level, registry)
	case "mermaid":
		return writeMermaid(out, registry)
	default:
		return fmt.Errorf("unknown output format %q (want table, json, markdown or mermaid)", analyzeFormat)
	}
}

func selectedGraph() (analysis.GraphSelector, error) {
	sel := analysis.GraphSelector(analyzeGraph)
	switch sel {
	case analysis.SelectStructural, analysis.SelectComponents:
		return sel, nil
	default:
		return "", fmt.Errorf("unknown graph %q (want %s or %s)", analyzeGraph, analysis.SelectStructural, analysis.SelectComponents)
	}
}

func writeTables(out io.Writer, registry *analysis.Registry, color bool) error {
	sel, err := selectedGraph()
	if err != nil {
		return err
	}
	cycles, err := registry.Cycles(sel)
	if err != nil {
		return err
	}
	metrics, err := registry.Metrics(sel)
	if err != nil {
		return err
	}

	if len(cycles) == 0 {
		fmt.Fprintln(out, "No circular dependencies detected.")
	} else {
		fmt.Fprintf(out, "Circular dependencies (%d):\n%s\n", len(cycles), render.CyclesTable(cycles))
	}
	fmt.Fprintf(out, "\nCoupling metrics:\n%s\n", render.MetricsTable(metrics, color))

	if components := registry.Components(); len(components) > 0 {
		fmt.Fprintf(out, "\nComponents:\n%s\n", render.ComponentsTable(components))
	}
	return nil
}

func writeJSON(ctx context.Context, out io.Writer, registry *analysis.Registry) error {
	report, err := registry.Report(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		*analysis.Report
		Components []builder.ComponentInfo `json:"components"`
	}{report, registry.Components()})
}

func writeMarkdown(ctx context.Context, out io.Writer, root string, level builder.Level, registry *analysis.Registry) error {
	report, err := registry.Report(ctx)
	if err != nil {
		return err
	}
	md, err := render.Markdown(render.ReportData{
		Root:        root,
		Level:       level.String(),
		GeneratedAt: time.Now(),
		Report:      report,
		Components:  registry.Components(),
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, md)
	return err
}

func writeMermaid(out io.Writer, registry *analysis.Registry) error {
	sel, err := selectedGraph()
	if err != nil {
		return err
	}
	snap, err := registry.Snapshot(sel)
	if err != nil {
		return err
	}
	cycles, err := registry.Cycles(sel)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, render.Mermaid(snap, cycles))
	return err
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeLevel, "level", "", "Structural graph granularity: namespace or type (default from config)")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "table", "Output format: table, json, markdown or mermaid")
	analyzeCmd.Flags().StringVar(&analyzeGraph, "graph", "structural", "Graph for table and mermaid output: structural or components")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Write the report to a file instead of stdout")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Enable debug logging")
}

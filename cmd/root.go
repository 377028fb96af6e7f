package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the wirelens application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "wirelens",
	Short: "Analyze dependency-injection wiring in a codebase",
	Long: `wirelens scans a project's sources and bean configuration, builds its
structural and component dependency graphs, and reports circular
dependencies and coupling metrics. It runs as a one-shot analyzer
('wirelens analyze') or as an MCP server ('wirelens serve') so AI
assistants can query the graphs interactively.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command. This is called from the
// main package to inject the build version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "wirelens version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
}

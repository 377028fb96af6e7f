package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"wirelens/pkg/logging"
)

const configFileName = ".wirelens.yaml"

// Config is the top-level configuration for an analysis run. Everything in
// here is input to the builders and the scanner; the graph engine itself has
// no configuration.
type Config struct {
	// Level selects the structural graph granularity: "namespace" or "type".
	Level string `yaml:"level,omitempty"`

	Exclude ExcludeConfig `yaml:"exclude,omitempty"`
	Scan    ScanConfig    `yaml:"scan,omitempty"`
}

// ExcludeConfig filters referenced identifiers out of the structural graph.
// The defaults keep the language's standard library and common framework
// namespaces from flooding the analysis; the list is policy, not invariant.
type ExcludeConfig struct {
	// Prefixes are literal identifier prefixes, e.g. "java.".
	Prefixes []string `yaml:"prefixes,omitempty"`
	// Patterns are glob patterns with "." as separator, e.g. "org.apache.**".
	Patterns []string `yaml:"patterns,omitempty"`
}

// ScanConfig controls the source scanner.
type ScanConfig struct {
	// Include restricts scanning to paths matching these globs. Empty means
	// everything under the root.
	Include []string `yaml:"include,omitempty"`
	// Exclude skips paths matching these globs. Directory names listed in
	// SkipDirs are pruned regardless.
	Exclude []string `yaml:"exclude,omitempty"`
	// SkipDirs are directory basenames pruned during the walk.
	SkipDirs []string `yaml:"skipDirs,omitempty"`
	// Parallelism bounds concurrent file parsing; 0 means GOMAXPROCS.
	Parallelism int `yaml:"parallelism,omitempty"`
	// MaxFileSize skips files larger than this many bytes (default 10MB).
	MaxFileSize int64 `yaml:"maxFileSize,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Level: "namespace",
		Exclude: ExcludeConfig{
			Prefixes: []string{
				"java.",
				"javax.",
				"jakarta.",
				"lombok.",
			},
			Patterns: []string{
				"org.springframework.**",
				"org.slf4j.**",
				"org.apache.**",
				"com.fasterxml.**",
				"com.google.**",
				"org.junit.**",
				"org.mockito.**",
			},
		},
		Scan: ScanConfig{
			SkipDirs:    []string{".git", "target", "build", "out", "node_modules"},
			MaxFileSize: 10 * 1024 * 1024,
		},
	}
}

// Load reads .wirelens.yaml from the given project root, layered over the
// defaults. A missing file is not an error: the defaults apply.
func Load(root string) (Config, error) {
	cfg := Default()
	path := filepath.Join(root, configFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("Config", "no %s at %s, using defaults", configFileName, root)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	logging.Info("Config", "loaded configuration from %s", path)
	return cfg, nil
}

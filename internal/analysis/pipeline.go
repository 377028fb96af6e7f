package analysis

import (
	"context"
	"fmt"

	"wirelens/internal/builder"
	"wirelens/internal/config"
	"wirelens/internal/extract"
	"wirelens/pkg/logging"
)

// Analyze runs the full pipeline over a project root: scan, extract facts,
// build the structural and component graphs, and freeze them behind a
// registry. The scan result is returned alongside so callers can surface
// file counts and diagnostics.
func Analyze(ctx context.Context, root string, cfg config.Config, level builder.Level) (*Registry, *extract.Result, error) {
	filter, err := builder.NewFilter(cfg.Exclude.Prefixes, cfg.Exclude.Patterns)
	if err != nil {
		return nil, nil, err
	}
	scanner, err := extract.NewScanner(cfg.Scan)
	if err != nil {
		return nil, nil, err
	}

	scan, err := scanner.Scan(ctx, root)
	if err != nil {
		return nil, nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	structural := builder.NewStructural(level, filter)
	components := builder.NewComponents()
	for _, unit := range scan.Units {
		structural.AddUnit(unit)
		for _, t := range unit.Types {
			components.AddType(t)
		}
	}
	for _, bean := range scan.Beans {
		components.AddBean(bean)
	}

	registry := NewRegistry(level, structural, components)
	logging.Info("Analysis", "%s: %d %s nodes, %d component nodes",
		root, registry.structural.NodeCount(), level, registry.components.NodeCount())
	return registry, scan, nil
}

package extract

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"

	"wirelens/internal/config"
	"wirelens/internal/facts"
	"wirelens/pkg/logging"
)

// Result collects everything a scan extracted. Units and Beans are sorted by
// path so the same tree always produces the same fact order.
type Result struct {
	Units        []facts.SourceUnit
	Beans        []facts.BeanDefinition
	FilesScanned int
	// Diagnostics records files that were skipped or only partially
	// extracted. They are informational; a scan never fails on one bad file.
	Diagnostics []string
}

// Scanner walks a project tree and extracts facts from Java sources and bean
// definition XML files. Files are parsed in parallel; fact application order
// does not matter because the builders produce order-independent graphs.
type Scanner struct {
	cfg     config.ScanConfig
	include []glob.Glob
	exclude []glob.Glob
}

// NewScanner compiles the scan configuration.
func NewScanner(cfg config.ScanConfig) (*Scanner, error) {
	s := &Scanner{cfg: cfg}
	var err error
	if s.include, err = compileGlobs(cfg.Include); err != nil {
		return nil, err
	}
	if s.exclude, err = compileGlobs(cfg.Exclude); err != nil {
		return nil, err
	}
	return s, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid scan pattern %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// Scan walks root and returns the extracted facts. Unreadable or malformed
// files are recorded as diagnostics, never as a scan failure; only an
// unusable root or a cancelled context aborts.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	paths, err := s.collect(root)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	var mu sync.Mutex

	eg, ctx := errgroup.WithContext(ctx)
	limit := s.cfg.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	eg.SetLimit(limit)

	for _, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.scanFile(ctx, path, result, &mu)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(result.Units, func(i, j int) bool { return result.Units[i].Path < result.Units[j].Path })
	sort.Slice(result.Beans, func(i, j int) bool {
		if result.Beans[i].Path != result.Beans[j].Path {
			return result.Beans[i].Path < result.Beans[j].Path
		}
		return result.Beans[i].ID < result.Beans[j].ID
	})
	sort.Strings(result.Diagnostics)

	logging.Info("Scanner", "scanned %d files under %s (%d units, %d beans)",
		result.FilesScanned, root, len(result.Units), len(result.Beans))
	return result, nil
}

// collect gathers candidate file paths in a single sequential walk.
func (s *Scanner) collect(root string) ([]string, error) {
	skipDirs := make(map[string]bool, len(s.cfg.SkipDirs))
	for _, d := range s.cfg.SkipDirs {
		skipDirs[d] = true
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logging.Warn("Scanner", "skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".java" && ext != ".xml" {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if !s.matches(filepath.ToSlash(rel)) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return paths, nil
}

func (s *Scanner) matches(rel string) bool {
	for _, g := range s.exclude {
		if g.Match(rel) {
			return false
		}
	}
	if len(s.include) == 0 {
		return true
	}
	for _, g := range s.include {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

func (s *Scanner) scanFile(ctx context.Context, path string, result *Result, mu *sync.Mutex) {
	info, err := os.Stat(path)
	if err == nil && s.cfg.MaxFileSize > 0 && info.Size() > s.cfg.MaxFileSize {
		mu.Lock()
		result.Diagnostics = append(result.Diagnostics, fmt.Sprintf("%s: exceeds size limit, skipped", path))
		mu.Unlock()
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		mu.Lock()
		result.Diagnostics = append(result.Diagnostics, fmt.Sprintf("%s: %v", path, err))
		mu.Unlock()
		return
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".java":
		unit, err := ParseJavaSource(ctx, content, path)
		mu.Lock()
		defer mu.Unlock()
		result.FilesScanned++
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, err.Error())
			return
		}
		result.Units = append(result.Units, unit)
	case ".xml":
		beans, err := ParseBeans(content, path)
		mu.Lock()
		defer mu.Unlock()
		result.FilesScanned++
		if err != nil {
			// Most XML in a project is not bean configuration; not a finding.
			logging.Debug("Scanner", "%s is not a bean definition file: %v", path, err)
			return
		}
		result.Beans = append(result.Beans, beans...)
	}
}

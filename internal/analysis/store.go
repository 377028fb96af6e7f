package analysis

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded analysis: a frozen registry plus the metadata the
// protocol layer needs to list and address it.
type Run struct {
	ID        string    `json:"id"`
	Root      string    `json:"root"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
	// Stale is set when sources under Root changed after the run completed.
	// The run stays queryable; consumers decide whether to re-analyze.
	Stale bool `json:"stale"`

	Registry *Registry `json:"-"`
}

// Store keeps analysis runs for the lifetime of the process. Registries are
// immutable once stored, so the lock only guards the run bookkeeping.
type Store struct {
	mu   sync.RWMutex
	runs map[string]*Run
}

// NewStore returns an empty run store.
func NewStore() *Store {
	return &Store{runs: make(map[string]*Run)}
}

// Add records a finished registry and returns the new run.
func (s *Store) Add(root string, registry *Registry) *Run {
	run := &Run{
		ID:        uuid.NewString(),
		Root:      root,
		Level:     registry.Level().String(),
		CreatedAt: time.Now(),
		Registry:  registry,
	}
	s.mu.Lock()
	s.runs[run.ID] = run
	s.mu.Unlock()
	return run
}

// Get returns the run with the given id.
func (s *Store) Get(id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("no analysis run with id %q", id)
	}
	return run, nil
}

// Latest returns the most recent run for the given root, if any.
func (s *Store) Latest(root string) (*Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *Run
	for _, run := range s.runs {
		if run.Root != root {
			continue
		}
		if latest == nil || run.CreatedAt.After(latest.CreatedAt) {
			latest = run
		}
	}
	return latest, latest != nil
}

// List returns all runs, newest first.
func (s *Store) List() []*Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Run, 0, len(s.runs))
	for _, run := range s.runs {
		out = append(out, run)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// MarkStaleUnder flags every run whose root contains the changed path.
func (s *Store) MarkStaleUnder(changed string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, run := range s.runs {
		rel, err := filepath.Rel(run.Root, changed)
		if err != nil {
			continue
		}
		if rel == "." || !strings.HasPrefix(rel, "..") {
			run.Stale = true
		}
	}
}

package analysis

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wirelens/internal/builder"
)

func emptyRegistry() *Registry {
	return NewRegistry(builder.LevelNamespace,
		builder.NewStructural(builder.LevelNamespace, nil),
		builder.NewComponents())
}

func TestStoreAddGet(t *testing.T) {
	s := NewStore()
	run := s.Add("/projects/shop", emptyRegistry())
	require.NotEmpty(t, run.ID)
	assert.Equal(t, "namespace", run.Level)
	assert.False(t, run.Stale)

	got, err := s.Get(run.ID)
	require.NoError(t, err)
	assert.Same(t, run, got)

	_, err = s.Get("missing")
	assert.Error(t, err)
}

func TestStoreList(t *testing.T) {
	s := NewStore()
	first := s.Add("/a", emptyRegistry())
	second := s.Add("/b", emptyRegistry())
	second.CreatedAt = first.CreatedAt.Add(1) // map order must not matter

	runs := s.List()
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)
}

func TestStoreLatest(t *testing.T) {
	s := NewStore()
	_, ok := s.Latest("/a")
	assert.False(t, ok)

	old := s.Add("/a", emptyRegistry())
	newer := s.Add("/a", emptyRegistry())
	newer.CreatedAt = old.CreatedAt.Add(1)
	s.Add("/b", emptyRegistry())

	latest, ok := s.Latest("/a")
	require.True(t, ok)
	assert.Equal(t, newer.ID, latest.ID)
}

func TestMarkStaleUnder(t *testing.T) {
	s := NewStore()
	inside := s.Add(filepath.Join("/projects", "shop"), emptyRegistry())
	outside := s.Add(filepath.Join("/projects", "warehouse"), emptyRegistry())

	s.MarkStaleUnder(filepath.Join("/projects", "shop", "src", "Order.java"))
	assert.True(t, inside.Stale)
	assert.False(t, outside.Stale)
}

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/goglass/internal/generate"
	"github.com/alexiusacademia/goglass/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "models", "goglass.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func spiderPanel(t *testing.T, name string) *model.Model {
	t.Helper()
	m := model.New(name)
	_, err := generate.Panel(m, generate.PanelSpec{})
	require.NoError(t, err)
	_, err = generate.SpiderFit(m, generate.SpiderSpec{Surface: 1})
	require.NoError(t, err)
	_, err = generate.WindLoad(m, generate.WindSpec{Surface: 1})
	require.NoError(t, err)
	return m
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	m := spiderPanel(t, "facade")

	require.NoError(t, s.Save(ctx, m))

	loaded, err := s.Load(ctx, "facade")
	require.NoError(t, err)
	if diff := cmp.Diff(m.Document(), loaded.Document()); diff != "" {
		t.Errorf("document mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	m := spiderPanel(t, "facade")
	require.NoError(t, s.Save(ctx, m))

	_, err := generate.Grid(m, generate.GridSpec{PanelWidth: 1, PanelHeight: 2, Rows: 1, Cols: 2})
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, m))

	loaded, err := s.Load(ctx, "facade")
	require.NoError(t, err)
	assert.Equal(t, model.Counts{Nodes: 6, Lines: 7}, loaded.Counts())
	assert.Equal(t, m.ID, loaded.ID)

	// renaming keeps a single copy of the model
	m.Name = "facade-b"
	require.NoError(t, s.Save(ctx, m))
	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "facade-b", list[0].Name)
}

func TestStore_ListDelete(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	for _, name := range []string{"west", "east"} {
		require.NoError(t, s.Save(ctx, spiderPanel(t, name)))
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "east", list[0].Name)
	assert.Equal(t, 8, list[0].Nodes)
	assert.Equal(t, 4, list[0].Lines)
	assert.False(t, list[0].UpdatedAt.IsZero())

	require.NoError(t, s.Delete(ctx, "east"))
	assert.ErrorIs(t, s.Delete(ctx, "east"), ErrNotFound)

	_, err = s.Load(ctx, "east")
	assert.ErrorIs(t, err, ErrNotFound)

	list, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "west", list[0].Name)
}

func TestStore_Memory(t *testing.T) {
	ctx := context.Background()
	s, err := Open(MemoryPath)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(ctx, spiderPanel(t, "scratch")))
	loaded, err := s.Load(ctx, "scratch")
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.Counts().Supports)
}

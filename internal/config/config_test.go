package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "goglass.db", cfg.DB)
	assert.Equal(t, "default", cfg.Model)
	assert.Equal(t, 1.5, cfg.Panel.Width)
	assert.Equal(t, 3.0, cfg.Panel.Height)
	assert.Equal(t, 0.016, cfg.Panel.Thickness)
	assert.Equal(t, 3, cfg.Grid.Rows)
	assert.Equal(t, 0.1, cfg.Spider.Offset)
	assert.Equal(t, 0.001, cfg.Spider.Tolerance)
	assert.Equal(t, "centroid", cfg.Spider.Mode)
	assert.Equal(t, 1.5, cfg.Wind.Magnitude)
	assert.Equal(t, 2, cfg.Lines.MaxDegree)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := `
model: tower
spider:
  offset: 0.075
  mode: edges
grid:
  rows: 5
lines:
  max_degree: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("GOGLASS_GRID_COLS", "7")
	t.Setenv("GOGLASS_MODEL", "podium")

	v := viper.New()
	Init(v, path)
	require.NoError(t, Read(v, true))

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "podium", cfg.Model)
	assert.Equal(t, 0.075, cfg.Spider.Offset)
	assert.Equal(t, "edges", cfg.Spider.Mode)
	assert.Equal(t, 5, cfg.Grid.Rows)
	assert.Equal(t, 7, cfg.Grid.Cols)
	assert.Equal(t, 3, cfg.Lines.MaxDegree)
	assert.Equal(t, 0.001, cfg.Spider.Tolerance)
}

func TestRead_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	v := viper.New()
	Init(v, "")
	assert.NoError(t, Read(v, false))

	v = viper.New()
	Init(v, filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, Read(v, true))
}

func TestLoad_RejectsBadDegree(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("lines.max_degree", 0)

	_, err := Load(v)
	assert.Error(t, err)
}

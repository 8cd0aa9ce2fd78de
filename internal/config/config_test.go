package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "pokemon.csv", c.DataFile)
	assert.Equal(t, "charts", c.OutputDir)
	assert.Equal(t, 1024, c.ChartWidth)
	assert.Equal(t, 640, c.ChartHeight)
	assert.Equal(t, 15, c.ComboTopN)
	assert.Equal(t, 10, c.StatTopN)
	assert.Equal(t, 15, c.HistogramBins)
	assert.Empty(t, c.Steps)
}

func TestSaveThenLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, t.TempDir())

	in := &Global{DataFile: "mons.xlsx", Sheet: "Stats", ChartWidth: 800, ComboTopN: 5, Steps: []string{"playstyle"}}
	require.NoError(t, Save(in, ""))
	_, err := os.Stat(filepath.Join(home, ".pokestat", "config.yaml"))
	require.NoError(t, err)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mons.xlsx", c.DataFile)
	assert.Equal(t, "Stats", c.Sheet)
	assert.Equal(t, 800, c.ChartWidth)
	assert.Equal(t, 5, c.ComboTopN)
	assert.Equal(t, []string{"playstyle"}, c.Steps)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
	cfg := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("output_dir: from-file\nstat_top_n: 3\n"), 0o644))
	t.Setenv("POKESTAT_OUTPUT_DIR", "from-env")

	c, err := Load(cfg)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.OutputDir)
	assert.Equal(t, 3, c.StatTopN)
}

func TestDotEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd := t.TempDir()
	chdir(t, wd)
	require.NoError(t, os.WriteFile(filepath.Join(wd, ".env"), []byte("POKESTAT_DATA_FILE=dotenv.csv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("POKESTAT_DATA_FILE") })

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv.csv", c.DataFile)
}

package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/pokestat-cli/internal/manifest"
	"github.com/KaramelBytes/pokestat-cli/internal/pipeline"
)

func TestSaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	arts := []pipeline.Artifact{
		{Step: "generation-counts", Title: "Generations", Path: filepath.Join(dir, "generation-counts.png")},
		{Step: "playstyle", Title: "Playstyle", Path: "/elsewhere/playstyle.png"},
	}
	m := manifest.New(dir, "pokemon.csv", 800, arts)
	_, err := uuid.Parse(m.RunID)
	require.NoError(t, err)
	assert.Equal(t, "generation-counts.png", m.Artifacts[0].Path, "paths under dir become relative")
	assert.Equal(t, "/elsewhere/playstyle.png", m.Artifacts[1].Path)

	path, err := m.Save()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "manifest.json"), path)

	got, err := manifest.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, m.RunID, got.RunID)
	assert.Equal(t, 800, got.Records)
	assert.Equal(t, "pokemon.csv", got.Source)
	assert.Equal(t, m.Artifacts, got.Artifacts)
	assert.True(t, m.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, dir, got.Dir())

	b, err := os.ReadFile(filepath.Join(dir, "manifest.yaml"))
	require.NoError(t, err)
	var mirror map[string]any
	require.NoError(t, yaml.Unmarshal(b, &mirror))
	assert.Equal(t, m.RunID, mirror["run_id"])
	assert.Len(t, mirror["artifacts"], 2)
}

func TestNewRunIDsDiffer(t *testing.T) {
	a := manifest.New(t.TempDir(), "x.csv", 1, nil)
	b := manifest.New(t.TempDir(), "x.csv", 1, nil)
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Empty(t, a.Artifacts)
}

func TestLoadMissing(t *testing.T) {
	_, err := manifest.Load(t.TempDir())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveWithoutDir(t *testing.T) {
	_, err := (&manifest.Manifest{}).Save()
	assert.Error(t, err)
}

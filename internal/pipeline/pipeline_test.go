package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/pokestat-cli/internal/analysis"
	"github.com/KaramelBytes/pokestat-cli/internal/chart"
	"github.com/KaramelBytes/pokestat-cli/internal/dataset"
)

func setup(t *testing.T) (*dataset.Table, *chart.Renderer) {
	t.Helper()
	tbl, err := dataset.Load("../dataset/testdata/pokemon_sample.csv", dataset.LoadOptions{})
	require.NoError(t, err)
	r, err := chart.NewRenderer(t.TempDir(), 640, 400, nil)
	require.NoError(t, err)
	return tbl, r
}

func TestRegistryOrder(t *testing.T) {
	ids := make([]string, 0, len(registry))
	seen := map[string]bool{}
	for _, s := range Steps() {
		require.NotEmpty(t, s.Title, s.ID)
		require.NotNil(t, s.Render, s.ID)
		require.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{
		"generation-counts", "generation-total", "generation-stats",
		"type-pairing", "type1-counts", "type2-counts", "type-combos",
		"stat-distributions", "legendary-density", "stats-by-type1", "stats-by-type2",
		"correlations", "playstyle", "top-by-stat", "strongest-per-type", "legendary-by-type",
	}, ids)
}

func TestRunAllSteps(t *testing.T) {
	tbl, r := setup(t)
	arts, err := Run(context.Background(), tbl, r, Options{})
	require.NoError(t, err)
	require.Len(t, arts, len(registry))
	for i, a := range arts {
		assert.Equal(t, registry[i].ID, a.Step)
		assert.Equal(t, filepath.Join(r.Dir, a.Step+".png"), a.Path)
		info, err := os.Stat(a.Path)
		require.NoError(t, err, a.Step)
		assert.Greater(t, info.Size(), int64(0), a.Step)
	}
}

func TestRunSelectedSteps(t *testing.T) {
	tbl, r := setup(t)
	arts, err := Run(context.Background(), tbl, r, Options{
		Steps:    []string{"playstyle", " generation-counts", "playstyle"},
		Analysis: analysis.Options{ComboTopN: 3},
	})
	require.NoError(t, err)
	require.Len(t, arts, 2)
	assert.Equal(t, "generation-counts", arts[0].Step, "registry order wins")
	assert.Equal(t, "playstyle", arts[1].Step)

	entries, err := os.ReadDir(r.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRunUnknownStep(t *testing.T) {
	tbl, r := setup(t)
	_, err := Run(context.Background(), tbl, r, Options{Steps: []string{"pie-chart"}})
	require.ErrorIs(t, err, ErrUnknownStep)
	assert.Contains(t, err.Error(), "pie-chart")

	entries, err := os.ReadDir(r.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing rendered before validation")
}

func TestRunCanceled(t *testing.T) {
	tbl, r := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	arts, err := Run(ctx, tbl, r, Options{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, arts)
}

func TestRunEmptyTable(t *testing.T) {
	_, r := setup(t)
	_, err := Run(context.Background(), &dataset.Table{}, r, Options{})
	require.ErrorIs(t, err, chart.ErrNoData)
}

func TestRunSingleGeneration(t *testing.T) {
	_, r := setup(t)
	tbl := &dataset.Table{Records: []dataset.Record{
		{Name: "A", Type1: "Fire", Generation: 1, HP: 40, Attack: 50, Defense: 30, SpAtk: 60, SpDef: 30, Speed: 70, Total: 280},
		{Name: "B", Type1: "Water", Type2: "Ice", Generation: 1, Legendary: true, HP: 90, Attack: 80, Defense: 100, SpAtk: 70, SpDef: 110, Speed: 50, Total: 500},
	}}
	arts, err := Run(context.Background(), tbl, r, Options{})
	require.NoError(t, err)
	require.Len(t, arts, len(registry)-1, "one value per legendary group has no density")
	for _, a := range arts {
		assert.NotEqual(t, "legendary-density", a.Step)
	}
}

func TestRunGenerationLinesOneGeneration(t *testing.T) {
	_, r := setup(t)
	tbl := &dataset.Table{Records: []dataset.Record{
		{Name: "A", Type1: "Fire", Generation: 4, HP: 40, Total: 280},
		{Name: "B", Type1: "Water", Generation: 4, HP: 90, Total: 500},
	}}
	arts, err := Run(context.Background(), tbl, r, Options{Steps: []string{"generation-total", "generation-stats"}})
	require.NoError(t, err)
	require.Len(t, arts, 2)
	for _, a := range arts {
		info, err := os.Stat(a.Path)
		require.NoError(t, err, a.Step)
		assert.Greater(t, info.Size(), int64(0), a.Step)
	}
}

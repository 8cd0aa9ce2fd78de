package chart

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/pokestat-cli/internal/analysis"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(filepath.Join(t.TempDir(), "charts"), 480, 320, nil)
	require.NoError(t, err)
	return r
}

func requirePNG(t *testing.T, path string) {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(b))
	require.NoError(t, err, "decode %s", path)
	assert.Greater(t, cfg.Width, 0)
	assert.Greater(t, cfg.Height, 0)
}

var sampleBars = []Bar{{"Fire", 4}, {"Grass", 3}, {"Water", 2}}

func TestBar(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.Bar("counts", BarSpec{Title: "Counts", YLabel: "Count", Bars: sampleBars})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(r.Dir, "counts.png"), out)
	requirePNG(t, out)

	_, err = r.Bar("empty", BarSpec{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestBarAllZero(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.Bar("zeros.png", BarSpec{Bars: []Bar{{"a", 0}, {"b", 0}}})
	require.NoError(t, err)
	requirePNG(t, out)
}

func TestLines(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.Lines("trend", LineSpec{
		Title:  "Trend",
		XLabel: "Generation",
		X:      []float64{1, 2, 3},
		Series: []Series{{Name: "HP", Y: []float64{60, 70, 65}}, {Name: "Speed", Y: []float64{55, 58, 61}}},
	})
	require.NoError(t, err)
	requirePNG(t, out)

	out, err = r.Lines("single", LineSpec{X: []float64{1}, Series: []Series{{Name: "Total", Y: []float64{400}}}})
	require.NoError(t, err, "a single generation still renders")
	requirePNG(t, out)

	out, err = r.Lines("single-multi", LineSpec{
		X:      []float64{3},
		Series: []Series{{Name: "HP", Y: []float64{70}}, {Name: "Speed", Y: []float64{70}}},
	})
	require.NoError(t, err, "one x position with flat series")
	requirePNG(t, out)

	_, err = r.Lines("bad", LineSpec{X: []float64{1, 2}, Series: []Series{{Name: "x", Y: []float64{1}}}})
	assert.Error(t, err)

	_, err = r.Lines("none", LineSpec{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestHBar(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.HBar("combos", BarSpec{Title: "Combos", XLabel: "Count", Bars: sampleBars})
	require.NoError(t, err)
	requirePNG(t, out)

	_, err = r.HBar("empty", BarSpec{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestHeatmap(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.Heatmap("corr", HeatmapSpec{
		Title:  "Correlation",
		Cols:   []string{"HP", "Attack"},
		Rows:   []string{"HP", "Attack"},
		Values: [][]float64{{1, 0.4}, {0.4, 1}},
		Min:    -1, Max: 1,
	})
	require.NoError(t, err)
	requirePNG(t, out)

	out, err = r.Heatmap("legendary", HeatmapSpec{
		Cols:    []string{"false", "true"},
		Rows:    []string{"Fire", "Psychic", "Water"},
		Values:  [][]float64{{4, 0}, {0, 2}, {2, 0}},
		Max:     4,
		Palette: "sequential",
		Format:  "%.0f",
	})
	require.NoError(t, err)
	requirePNG(t, out)

	_, err = r.Heatmap("mismatch", HeatmapSpec{Cols: []string{"a"}, Rows: []string{"x", "y"}, Values: [][]float64{{1}}})
	assert.Error(t, err)

	_, err = r.Heatmap("pal", HeatmapSpec{Cols: []string{"a"}, Rows: []string{"x"}, Values: [][]float64{{1}}, Palette: "neon"})
	assert.Error(t, err)
}

func TestGrid(t *testing.T) {
	r := newTestRenderer(t)
	vals := []float64{45, 39, 78, 44, 35, 40, 35, 130}
	panels := []Panel{
		HistogramPanel("HP", "HP", analysis.Histogram(vals, 5)),
		BoxPanel("HP by type", "HP", []analysis.ValueGroup{{Key: "Fire", Values: vals[:4]}, {Key: "Water", Values: vals[4:]}}),
		DensityPanel("HP density", []DensitySeries{
			{Name: "false", Points: analysis.Density(vals, 50)},
			{Name: "true", Points: nil},
		}),
		HBarPanel(BarSpec{Title: "Top", Bars: sampleBars}),
		HBarPanel(BarSpec{}), // skipped
	}
	out, err := r.Grid("grid", "Stats", 3, panels)
	require.NoError(t, err)
	requirePNG(t, out)

	_, err = r.Grid("nothing", "", 2, []Panel{HBarPanel(BarSpec{})})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestNewRendererDefaults(t *testing.T) {
	r, err := NewRenderer(t.TempDir(), 0, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultWidth, r.Width)
	assert.Equal(t, DefaultHeight, r.Height)

	_, err = NewRenderer("", 0, 0, nil)
	assert.Error(t, err)
}

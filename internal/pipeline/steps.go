package pipeline

import (
	"fmt"
	"strconv"

	"github.com/KaramelBytes/pokestat-cli/internal/analysis"
	"github.com/KaramelBytes/pokestat-cli/internal/chart"
	"github.com/KaramelBytes/pokestat-cli/internal/dataset"
)

// Env is what a step sees. Title is the running step's title.
type Env struct {
	Title    string
	Table    *dataset.Table
	Renderer *chart.Renderer
	Options  analysis.Options
}

// Step is one named chart in the analysis run. Render returns the path of
// the file it wrote.
type Step struct {
	ID     string
	Title  string
	Render func(env Env) (string, error)
}

// panelCols is the column count of the per-stat grids (7 stats in a 2x4 grid).
const panelCols = 4

var registry = []Step{
	{ID: "generation-counts", Title: "Number of Pokémon Introduced per Generation", Render: generationCounts},
	{ID: "generation-total", Title: "Average Total Stats per Generation", Render: generationTotal},
	{ID: "generation-stats", Title: "Average of Each Stat by Generation", Render: generationStats},
	{ID: "type-pairing", Title: "Single vs Dual Type Pokémon", Render: typePairing},
	{ID: "type1-counts", Title: "Most Common Pokémon Types (Type 1)", Render: typeCounts(analysis.ByType1, "type1-counts")},
	{ID: "type2-counts", Title: "Most Common Pokémon Types (Type 2)", Render: typeCounts(analysis.ByType2, "type2-counts")},
	{ID: "type-combos", Title: "Most Common Pokémon Type Combinations", Render: typeCombos},
	{ID: "stat-distributions", Title: "Pokémon Stats Distribution", Render: statDistributions},
	{ID: "legendary-density", Title: "Legendary vs Non-Legendary Stats", Render: legendaryDensity},
	{ID: "stats-by-type1", Title: "Boxplots of Pokémon Stats by Primary Type (Type 1)", Render: statsByType(analysis.ByType1, "stats-by-type1")},
	{ID: "stats-by-type2", Title: "Boxplots of Pokémon Stats by Secondary Type (Type 2)", Render: statsByType(analysis.ByType2OrNone, "stats-by-type2")},
	{ID: "correlations", Title: "Correlation Between Pokémon Stats", Render: correlations},
	{ID: "playstyle", Title: "Pokémon Classification: Offensive vs Defensive vs Balanced", Render: playstyle},
	{ID: "top-by-stat", Title: "Top Pokémon by Each Stat", Render: topByStat},
	{ID: "strongest-per-type", Title: "Strongest Pokémon per Type (by Total Stats)", Render: strongestPerType},
	{ID: "legendary-by-type", Title: "Legendary vs Non-Legendary by Type 1", Render: legendaryByType},
}

// Steps returns the registered steps in run order.
func Steps() []Step {
	out := make([]Step, len(registry))
	copy(out, registry)
	return out
}

func countBars(counts []analysis.CategoryCount) []chart.Bar {
	bars := make([]chart.Bar, len(counts))
	for i, c := range counts {
		bars[i] = chart.Bar{Label: c.Value, Value: float64(c.Count)}
	}
	return bars
}

func generationCounts(env Env) (string, error) {
	counts := analysis.SortByValue(analysis.CountBy(env.Table, analysis.ByGeneration))
	return env.Renderer.Bar("generation-counts", chart.BarSpec{
		Title:  env.Title,
		XLabel: dataset.ColGeneration,
		YLabel: "Count",
		Bars:   countBars(counts),
	})
}

// generationAxis returns the generation numbers of groups as X positions.
func generationAxis(groups []analysis.GroupResult) ([]float64, error) {
	xs := make([]float64, len(groups))
	for i, g := range groups {
		n, err := strconv.Atoi(g.Key)
		if err != nil {
			return nil, fmt.Errorf("generation %q: %w", g.Key, err)
		}
		xs[i] = float64(n)
	}
	return xs, nil
}

func meanSeries(groups []analysis.GroupResult, s dataset.Stat) chart.Series {
	ys := make([]float64, len(groups))
	for i, g := range groups {
		ys[i] = g.Metrics[s].Mean
	}
	return chart.Series{Name: s.String(), Y: ys}
}

func generationTotal(env Env) (string, error) {
	groups := analysis.GroupStats(env.Table, analysis.ByGeneration, []dataset.Stat{dataset.Total})
	xs, err := generationAxis(groups)
	if err != nil {
		return "", err
	}
	return env.Renderer.Lines("generation-total", chart.LineSpec{
		Title:  env.Title,
		XLabel: dataset.ColGeneration,
		YLabel: "Total",
		X:      xs,
		Series: []chart.Series{meanSeries(groups, dataset.Total)},
	})
}

func generationStats(env Env) (string, error) {
	groups := analysis.GroupStats(env.Table, analysis.ByGeneration, dataset.Stats)
	xs, err := generationAxis(groups)
	if err != nil {
		return "", err
	}
	// one series per stat, the long form of the per-generation means
	byStat := make(map[dataset.Stat][]float64, len(dataset.Stats))
	for _, row := range analysis.Melt(groups, dataset.Stats) {
		byStat[row.Stat] = append(byStat[row.Stat], row.Value)
	}
	series := make([]chart.Series, 0, len(dataset.Stats))
	for _, s := range dataset.Stats {
		series = append(series, chart.Series{Name: s.String(), Y: byStat[s]})
	}
	return env.Renderer.Lines("generation-stats", chart.LineSpec{
		Title:  env.Title,
		XLabel: dataset.ColGeneration,
		YLabel: "Average",
		X:      xs,
		Series: series,
	})
}

func typePairing(env Env) (string, error) {
	return env.Renderer.Bar("type-pairing", chart.BarSpec{
		Title:  env.Title,
		XLabel: analysis.ByTypePairing.Name,
		YLabel: "Count",
		Bars:   countBars(analysis.CountBy(env.Table, analysis.ByTypePairing)),
	})
}

func typeCounts(key analysis.Key, id string) func(Env) (string, error) {
	return func(env Env) (string, error) {
		return env.Renderer.Bar(id, chart.BarSpec{
			Title:  env.Title,
			XLabel: key.Name,
			YLabel: "Count",
			Bars:   countBars(analysis.SortByCount(analysis.CountBy(env.Table, key))),
		})
	}
}

func typeCombos(env Env) (string, error) {
	n := env.Options.ComboTopN
	return env.Renderer.HBar("type-combos", chart.BarSpec{
		Title:  fmt.Sprintf("%s (Top %d)", env.Title, n),
		XLabel: "Count",
		YLabel: analysis.ByTypeCombo.Name,
		Bars:   countBars(analysis.TopCombos(env.Table, n)),
	})
}

func statDistributions(env Env) (string, error) {
	panels := make([]chart.Panel, 0, len(dataset.Stats))
	for _, s := range dataset.Stats {
		bins := analysis.Histogram(analysis.Column(env.Table, s), env.Options.HistogramBins)
		panels = append(panels, chart.HistogramPanel("Distribution of "+s.String(), s.String(), bins))
	}
	return env.Renderer.Grid("stat-distributions", env.Title, panelCols, panels)
}

// densityPoints is the evaluation grid size of each KDE curve.
const densityPoints = 200

func legendaryDensity(env Env) (string, error) {
	panels := make([]chart.Panel, 0, len(dataset.Stats))
	for _, s := range dataset.Stats {
		groups := analysis.GroupValues(env.Table, analysis.ByLegendary, s)
		sortLegendary(groups)
		series := make([]chart.DensitySeries, 0, len(groups))
		for _, g := range groups {
			series = append(series, chart.DensitySeries{Name: g.Key, Points: analysis.Density(g.Values, densityPoints)})
		}
		panels = append(panels, chart.DensityPanel(s.String(), series))
	}
	return env.Renderer.Grid("legendary-density", env.Title, 3, panels)
}

// sortLegendary orders "false" before "true" so legend colors are stable.
func sortLegendary(groups []analysis.ValueGroup) {
	if len(groups) == 2 && groups[0].Key > groups[1].Key {
		groups[0], groups[1] = groups[1], groups[0]
	}
}

func statsByType(key analysis.Key, id string) func(Env) (string, error) {
	return func(env Env) (string, error) {
		panels := make([]chart.Panel, 0, len(dataset.Stats))
		for _, s := range dataset.Stats {
			groups := analysis.GroupValues(env.Table, key, s)
			panels = append(panels, chart.BoxPanel(fmt.Sprintf("%s by %s", s, key.Name), s.String(), groups))
		}
		return env.Renderer.Grid(id, env.Title, panelCols, panels)
	}
}

func correlations(env Env) (string, error) {
	m := analysis.Correlate(env.Table, dataset.Stats)
	labels := make([]string, len(m.Columns))
	for i, s := range m.Columns {
		labels[i] = s.String()
	}
	return env.Renderer.Heatmap("correlations", chart.HeatmapSpec{
		Title:   env.Title,
		Cols:    labels,
		Rows:    labels,
		Values:  m.Values,
		Min:     -1,
		Max:     1,
		Palette: "diverging",
		Format:  "%.2f",
	})
}

func playstyle(env Env) (string, error) {
	return env.Renderer.Bar("playstyle", chart.BarSpec{
		Title:  env.Title,
		XLabel: analysis.ByPlaystyle.Name,
		YLabel: "Count",
		Bars:   countBars(analysis.CountBy(env.Table, analysis.ByPlaystyle)),
	})
}

func topByStat(env Env) (string, error) {
	n := env.Options.StatTopN
	panels := make([]chart.Panel, 0, len(dataset.Stats))
	for _, s := range dataset.Stats {
		top := analysis.TopByStat(env.Table, s, n)
		bars := make([]chart.Bar, len(top))
		for i, rec := range top {
			bars[i] = chart.Bar{Label: rec.Name, Value: float64(s.Of(rec))}
		}
		panels = append(panels, chart.HBarPanel(chart.BarSpec{
			Title:  fmt.Sprintf("Top %d Pokémon by %s", n, s),
			XLabel: s.String(),
			Bars:   bars,
		}))
	}
	return env.Renderer.Grid("top-by-stat", env.Title, panelCols, panels)
}

func strongestPerType(env Env) (string, error) {
	best := analysis.OrderByStat(analysis.BestPerGroup(env.Table, analysis.ByType1, dataset.Total), dataset.Total)
	bars := make([]chart.Bar, len(best))
	for i, g := range best {
		bars[i] = chart.Bar{Label: g.Key, Value: float64(g.Record.Total)}
	}
	return env.Renderer.Bar("strongest-per-type", chart.BarSpec{
		Title:  env.Title,
		XLabel: dataset.ColType1,
		YLabel: "Total Stats",
		Bars:   bars,
	})
}

func legendaryByType(env Env) (string, error) {
	ct := analysis.CrossTab(env.Table, analysis.ByType1, analysis.ByLegendary)
	values := make([][]float64, len(ct.Counts))
	for i, row := range ct.Counts {
		values[i] = make([]float64, len(row))
		for j, v := range row {
			values[i][j] = float64(v)
		}
	}
	return env.Renderer.Heatmap("legendary-by-type", chart.HeatmapSpec{
		Title:   env.Title,
		XLabel:  ct.ColKey,
		YLabel:  ct.RowKey,
		Cols:    ct.Cols,
		Rows:    ct.Rows,
		Values:  values,
		Min:     0,
		Max:     float64(ct.Max()),
		Palette: "sequential",
		Format:  "%.0f",
	})
}

package analysis

import (
	"math"
	"sort"

	"github.com/KaramelBytes/pokestat-cli/internal/dataset"
)

// NumSummary aggregates one stat within a group.
type NumSummary struct {
	Count          int
	Min, Max, Mean float64
}

// GroupResult captures aggregated stats per group key.
type GroupResult struct {
	Key     string
	Size    int
	Metrics map[dataset.Stat]NumSummary
}

// GroupStats computes count/min/max/mean of each stat per group. Groups are
// ordered by key ascending.
func GroupStats(t *dataset.Table, key Key, stats []dataset.Stat) []GroupResult {
	if t == nil {
		return nil
	}
	type acc struct {
		size     int
		sum      map[dataset.Stat]float64
		min, max map[dataset.Stat]float64
	}
	groups := map[string]*acc{}
	var order []string
	for _, r := range t.Records {
		k, ok := key.Of(r)
		if !ok {
			continue
		}
		g := groups[k]
		if g == nil {
			g = &acc{sum: map[dataset.Stat]float64{}, min: map[dataset.Stat]float64{}, max: map[dataset.Stat]float64{}}
			for _, s := range stats {
				g.min[s] = math.Inf(1)
				g.max[s] = math.Inf(-1)
			}
			groups[k] = g
			order = append(order, k)
		}
		g.size++
		for _, s := range stats {
			x := float64(s.Of(r))
			g.sum[s] += x
			g.min[s] = math.Min(g.min[s], x)
			g.max[s] = math.Max(g.max[s], x)
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return lessValue(order[i], order[j]) })

	out := make([]GroupResult, 0, len(order))
	for _, k := range order {
		g := groups[k]
		gr := GroupResult{Key: k, Size: g.size, Metrics: make(map[dataset.Stat]NumSummary, len(stats))}
		for _, s := range stats {
			gr.Metrics[s] = NumSummary{Count: g.size, Min: g.min[s], Max: g.max[s], Mean: g.sum[s] / float64(g.size)}
		}
		out = append(out, gr)
	}
	return out
}

// LongRow is one (group, stat, mean) observation in long format.
type LongRow struct {
	Group string
	Stat  dataset.Stat
	Value float64
}

// Melt reshapes group means into long format, stat-major then group order.
func Melt(groups []GroupResult, stats []dataset.Stat) []LongRow {
	out := make([]LongRow, 0, len(groups)*len(stats))
	for _, s := range stats {
		for _, g := range groups {
			m, ok := g.Metrics[s]
			if !ok {
				continue
			}
			out = append(out, LongRow{Group: g.Key, Stat: s, Value: m.Mean})
		}
	}
	return out
}

// ValueGroup holds the raw values of one stat for a single category.
type ValueGroup struct {
	Key    string
	Values []float64
}

// GroupValues collects the values of stat per key, in first-seen order.
func GroupValues(t *dataset.Table, key Key, stat dataset.Stat) []ValueGroup {
	if t == nil {
		return nil
	}
	pos := map[string]int{}
	var out []ValueGroup
	for _, r := range t.Records {
		k, ok := key.Of(r)
		if !ok {
			continue
		}
		i, seen := pos[k]
		if !seen {
			i = len(out)
			pos[k] = i
			out = append(out, ValueGroup{Key: k})
		}
		out[i].Values = append(out[i].Values, float64(stat.Of(r)))
	}
	return out
}

// Column returns every value of stat in table order.
func Column(t *dataset.Table, stat dataset.Stat) []float64 {
	if t == nil {
		return nil
	}
	out := make([]float64, len(t.Records))
	for i, r := range t.Records {
		out[i] = float64(stat.Of(r))
	}
	return out
}

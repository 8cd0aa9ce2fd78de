package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/pokestat-cli/internal/dataset"
)

// Options controls the size of ranked and binned results.
type Options struct {
	// ComboTopN limits the type-combination ranking.
	ComboTopN int
	// StatTopN limits the per-stat leaderboards.
	StatTopN int
	// HistogramBins is the number of equal-width bins per stat.
	HistogramBins int
}

// DefaultOptions returns the sizes used by the standard analysis run.
func DefaultOptions() Options {
	return Options{
		ComboTopN:     15,
		StatTopN:      10,
		HistogramBins: 15,
	}
}

// WithDefaults fills zero or negative sizes from DefaultOptions.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.ComboTopN <= 0 {
		o.ComboTopN = d.ComboTopN
	}
	if o.StatTopN <= 0 {
		o.StatTopN = d.StatTopN
	}
	if o.HistogramBins <= 0 {
		o.HistogramBins = d.HistogramBins
	}
	return o
}

// Report gathers every aggregation of a derived table.
type Report struct {
	Name          string
	Rows          int
	Generations   []CategoryCount
	GenStats      []GroupResult
	Pairing       []CategoryCount
	Type1         []CategoryCount
	Type2         []CategoryCount
	Combos        []CategoryCount
	Playstyles    []CategoryCount
	Strongest     []GroupBest
	Leaders       map[dataset.Stat][]dataset.Record
	Corr          *CorrMatrix
	Legendary     *Crosstab
	Boxes         map[dataset.Stat]BoxSummary
	// Distributions holds HistogramBins equal-width bins per stat.
	Distributions map[dataset.Stat][]Bin
}

// BuildReport runs every aggregator over t. Derived columns are computed
// first when t does not carry them yet.
func BuildReport(t *dataset.Table, opt Options) *Report {
	if !t.Derived() {
		t = dataset.Derive(t)
	}
	opt = opt.WithDefaults()
	r := &Report{
		Name:        t.Source,
		Rows:        t.Len(),
		Generations: SortByValue(CountBy(t, ByGeneration)),
		GenStats:    GroupStats(t, ByGeneration, dataset.Stats),
		Pairing:     CountBy(t, ByTypePairing),
		Type1:       SortByCount(CountBy(t, ByType1)),
		Type2:       SortByCount(CountBy(t, ByType2)),
		Combos:      TopCombos(t, opt.ComboTopN),
		Playstyles:  CountBy(t, ByPlaystyle),
		Strongest:   OrderByStat(BestPerGroup(t, ByType1, dataset.Total), dataset.Total),
		Leaders:     make(map[dataset.Stat][]dataset.Record, len(dataset.Stats)),
		Corr:        Correlate(t, dataset.Stats),
		Legendary:   CrossTab(t, ByType1, ByLegendary),
		Boxes:       make(map[dataset.Stat]BoxSummary, len(dataset.Stats)),

		Distributions: make(map[dataset.Stat][]Bin, len(dataset.Stats)),
	}
	for _, s := range dataset.Stats {
		r.Leaders[s] = TopByStat(t, s, opt.StatTopN)
		col := Column(t, s)
		r.Boxes[s] = Box(col)
		r.Distributions[s] = Histogram(col, opt.HistogramBins)
	}
	return r
}

// Markdown renders a compact report suitable for terminals or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))

	b.WriteString("\n[STATS]\n")
	for _, s := range dataset.Stats {
		box, ok := r.Boxes[s]
		if !ok || box.Count == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("- %s: min %.4g, q1 %.4g, median %.4g, q3 %.4g, max %.4g", s, box.Min, box.Q1, box.Median, box.Q3, box.Max))
		if len(box.Outliers) > 0 {
			b.WriteString(fmt.Sprintf("; outliers: %d", len(box.Outliers)))
		}
		b.WriteString("\n")
	}

	if len(r.Distributions) > 0 {
		b.WriteString("\n[DISTRIBUTIONS]\n")
		for _, s := range dataset.Stats {
			bins := r.Distributions[s]
			if len(bins) == 0 {
				continue
			}
			peak := 0
			counts := make([]string, len(bins))
			for i, bin := range bins {
				counts[i] = strconv.Itoa(bin.Count)
				if bin.Count > bins[peak].Count {
					peak = i
				}
			}
			b.WriteString(fmt.Sprintf("- %s (%d bins): peak %.4g..%.4g (n=%d); counts %s\n",
				s, len(bins), bins[peak].Lo, bins[peak].Hi, bins[peak].Count, strings.Join(counts, " ")))
		}
	}

	if len(r.GenStats) > 0 {
		b.WriteString("\n[GENERATIONS]\n")
		for _, g := range r.GenStats {
			b.WriteString(fmt.Sprintf("- Generation %s (n=%d)\n", g.Key, g.Size))
			for _, s := range dataset.Stats {
				m, ok := g.Metrics[s]
				if !ok {
					continue
				}
				b.WriteString(fmt.Sprintf("  • %s: mean %.4g (min %.4g, max %.4g)\n", s, m.Mean, m.Min, m.Max))
			}
		}
	}

	writeCounts(&b, "TYPE PAIRING", r.Pairing)
	writeCounts(&b, "TYPE 1", r.Type1)
	writeCounts(&b, "TYPE 2", r.Type2)
	writeCounts(&b, fmt.Sprintf("TOP %d TYPE COMBOS", len(r.Combos)), r.Combos)
	writeCounts(&b, "PLAYSTYLE", r.Playstyles)

	if len(r.Strongest) > 0 {
		b.WriteString("\n[STRONGEST PER TYPE]\n")
		for _, g := range r.Strongest {
			b.WriteString(fmt.Sprintf("- %s: %s (Total %d)\n", g.Key, safeVal(g.Record.Name), g.Record.Total))
		}
	}

	if len(r.Leaders) > 0 {
		b.WriteString("\n[LEADERS]\n")
		for _, s := range dataset.Stats {
			recs := r.Leaders[s]
			if len(recs) == 0 {
				continue
			}
			names := make([]string, len(recs))
			for i, rec := range recs {
				names[i] = fmt.Sprintf("%s(%d)", safeVal(rec.Name), s.Of(rec))
			}
			b.WriteString(fmt.Sprintf("- %s: %s\n", s, strings.Join(names, ", ")))
		}
	}

	if r.Corr != nil && len(r.Corr.Columns) >= 2 {
		b.WriteString("\n[CORRELATIONS]\n")
		pairs := r.Corr.Pairs()
		if len(pairs) > 10 {
			pairs = pairs[:10]
		}
		for _, p := range pairs {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
		}
	}

	if r.Legendary != nil && len(r.Legendary.Rows) > 0 {
		b.WriteString("\n[LEGENDARY BY TYPE 1]\n")
		b.WriteString("| " + r.Legendary.RowKey)
		for _, c := range r.Legendary.Cols {
			b.WriteString(" | " + c)
		}
		b.WriteString(" |\n|" + strings.Repeat(" --- |", len(r.Legendary.Cols)+1) + "\n")
		for i, row := range r.Legendary.Rows {
			b.WriteString("| " + safeVal(row))
			for _, v := range r.Legendary.Counts[i] {
				b.WriteString(fmt.Sprintf(" | %d", v))
			}
			b.WriteString(" |\n")
		}
	}
	return b.String()
}

func writeCounts(b *strings.Builder, title string, counts []CategoryCount) {
	if len(counts) == 0 {
		return
	}
	b.WriteString("\n[" + title + "]\n")
	for _, c := range counts {
		b.WriteString(fmt.Sprintf("- %s: %d\n", safeVal(c.Value), c.Count))
	}
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }

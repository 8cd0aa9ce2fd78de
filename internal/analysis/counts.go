package analysis

import (
	"sort"

	"github.com/KaramelBytes/pokestat-cli/internal/dataset"
)

// CategoryCount is the number of records sharing one category value.
type CategoryCount struct {
	Value string
	Count int
}

// CountBy counts records per key value. Results are in first-seen order.
func CountBy(t *dataset.Table, key Key) []CategoryCount {
	if t == nil {
		return nil
	}
	pos := map[string]int{}
	var out []CategoryCount
	for _, r := range t.Records {
		v, ok := key.Of(r)
		if !ok {
			continue
		}
		i, seen := pos[v]
		if !seen {
			i = len(out)
			pos[v] = i
			out = append(out, CategoryCount{Value: v})
		}
		out[i].Count++
	}
	return out
}

// SortByCount orders counts descending; equal counts keep their prior order.
func SortByCount(counts []CategoryCount) []CategoryCount {
	out := append([]CategoryCount(nil), counts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// SortByValue orders counts by category value ascending, numeric-aware.
func SortByValue(counts []CategoryCount) []CategoryCount {
	out := append([]CategoryCount(nil), counts...)
	sort.SliceStable(out, func(i, j int) bool { return lessValue(out[i].Value, out[j].Value) })
	return out
}

// Truncate keeps at most n entries; n <= 0 keeps everything.
func Truncate(counts []CategoryCount, n int) []CategoryCount {
	if n <= 0 || len(counts) <= n {
		return counts
	}
	return counts[:n]
}

// TopCombos ranks type combinations by frequency and keeps the top n.
func TopCombos(t *dataset.Table, n int) []CategoryCount {
	return Truncate(SortByCount(CountBy(t, ByTypeCombo)), n)
}

// SumCounts returns the total count across entries.
func SumCounts(counts []CategoryCount) int {
	n := 0
	for _, c := range counts {
		n += c.Count
	}
	return n
}

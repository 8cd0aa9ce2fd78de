package analysis

import (
	"sort"

	"github.com/KaramelBytes/pokestat-cli/internal/dataset"
)

// Crosstab is a contingency table of record counts per (row, column) pair.
type Crosstab struct {
	RowKey, ColKey string
	Rows, Cols     []string
	Counts         [][]int // Counts[row][col]
}

// CrossTab counts records for every combination of two keys. Row and column
// labels are sorted ascending.
func CrossTab(t *dataset.Table, rowKey, colKey Key) *Crosstab {
	ct := &Crosstab{RowKey: rowKey.Name, ColKey: colKey.Name}
	if t == nil {
		return ct
	}
	type cell struct{ r, c string }
	counts := map[cell]int{}
	rows, cols := map[string]bool{}, map[string]bool{}
	for _, rec := range t.Records {
		r, ok := rowKey.Of(rec)
		if !ok {
			continue
		}
		c, ok := colKey.Of(rec)
		if !ok {
			continue
		}
		counts[cell{r, c}]++
		rows[r] = true
		cols[c] = true
	}
	ct.Rows = sortedKeys(rows)
	ct.Cols = sortedKeys(cols)
	ct.Counts = make([][]int, len(ct.Rows))
	for i, r := range ct.Rows {
		ct.Counts[i] = make([]int, len(ct.Cols))
		for j, c := range ct.Cols {
			ct.Counts[i][j] = counts[cell{r, c}]
		}
	}
	return ct
}

// Max returns the largest cell count.
func (ct *Crosstab) Max() int {
	m := 0
	for _, row := range ct.Counts {
		for _, v := range row {
			if v > m {
				m = v
			}
		}
	}
	return m
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return lessValue(out[i], out[j]) })
	return out
}

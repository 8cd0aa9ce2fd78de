package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/pokestat-cli/internal/dataset"
)

// CorrMatrix holds a symmetric Pearson correlation matrix across stats.
type CorrMatrix struct {
	Columns []dataset.Stat
	Values  [][]float64 // row-major, Values[i][j]
}

// Correlate computes pairwise Pearson coefficients between stats. The
// diagonal is exactly 1; coefficients undefined for zero-variance columns are 0.
func Correlate(t *dataset.Table, stats []dataset.Stat) *CorrMatrix {
	n := len(stats)
	cols := make([][]float64, n)
	for i, s := range stats {
		cols[i] = Column(t, s)
	}
	mat := make([][]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
	}
	for a := 0; a < n; a++ {
		mat[a][a] = 1
		for b := a + 1; b < n; b++ {
			var r float64
			if len(cols[a]) >= 2 {
				r = stat.Correlation(cols[a], cols[b], nil)
			}
			if math.IsNaN(r) || math.IsInf(r, 0) {
				r = 0
			}
			if r > 1 {
				r = 1
			} else if r < -1 {
				r = -1
			}
			mat[a][b] = r
			mat[b][a] = r
		}
	}
	return &CorrMatrix{Columns: append([]dataset.Stat(nil), stats...), Values: mat}
}

// PairCorr is a simple correlation pair summary.
type PairCorr struct {
	A, B dataset.Stat
	R    float64
}

// Pairs lists the upper triangle ordered by |r| descending.
func (m *CorrMatrix) Pairs() []PairCorr {
	var out []PairCorr
	for i := range m.Columns {
		for j := i + 1; j < len(m.Columns); j++ {
			out = append(out, PairCorr{A: m.Columns[i], B: m.Columns[j], R: m.Values[i][j]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return math.Abs(out[i].R) > math.Abs(out[j].R) })
	return out
}

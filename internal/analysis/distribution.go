package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Bin is one equal-width histogram bucket covering [Lo, Hi).
// The last bin also includes Hi.
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Histogram splits values into equal-width bins spanning [min, max].
// A zero-width range is widened by 0.5 on each side.
func Histogram(values []float64, bins int) []Bin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lo = lo + float64(i)*width
		out[i].Hi = lo + float64(i+1)*width
	}
	out[bins-1].Hi = hi
	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		out[i].Count++
	}
	return out
}

// BoxSummary is a five-number summary with Tukey whiskers.
type BoxSummary struct {
	Count                      int
	Min, Q1, Median, Q3, Max   float64
	LowerWhisker, UpperWhisker float64
	Outliers                   []float64
}

// Box computes quartiles by linear interpolation and 1.5×IQR whiskers
// clamped to the most extreme data points inside the fences.
func Box(values []float64) BoxSummary {
	if len(values) == 0 {
		return BoxSummary{}
	}
	cp := append([]float64(nil), values...)
	sort.Float64s(cp)
	b := BoxSummary{
		Count:  len(cp),
		Min:    cp[0],
		Max:    cp[len(cp)-1],
		Q1:     quantile(cp, 0.25),
		Median: quantile(cp, 0.5),
		Q3:     quantile(cp, 0.75),
	}
	iqr := b.Q3 - b.Q1
	loFence, hiFence := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.LowerWhisker, b.UpperWhisker = b.Max, b.Min
	for _, v := range cp {
		if v < loFence || v > hiFence {
			b.Outliers = append(b.Outliers, v)
			continue
		}
		b.LowerWhisker = math.Min(b.LowerWhisker, v)
		b.UpperWhisker = math.Max(b.UpperWhisker, v)
	}
	return b
}

// quantile expects sorted input.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// Point is an (x, y) sample of a curve.
type Point struct{ X, Y float64 }

// Density estimates a Gaussian kernel density at n evenly spaced points,
// using Scott's rule for the bandwidth. The grid extends three bandwidths past
// the data. It returns nil for fewer than two values or zero variance.
func Density(values []float64, n int) []Point {
	if len(values) < 2 || n < 2 {
		return nil
	}
	sd := stat.StdDev(values, nil)
	if sd == 0 || math.IsNaN(sd) {
		return nil
	}
	bw := sd * math.Pow(float64(len(values)), -0.2)
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	lo -= 3 * bw
	hi += 3 * bw
	step := (hi - lo) / float64(n-1)
	norm := 1 / (float64(len(values)) * bw * math.Sqrt(2*math.Pi))
	out := make([]Point, n)
	for i := range out {
		x := lo + float64(i)*step
		var sum float64
		for _, v := range values {
			z := (x - v) / bw
			sum += math.Exp(-0.5 * z * z)
		}
		out[i] = Point{X: x, Y: sum * norm}
	}
	return out
}

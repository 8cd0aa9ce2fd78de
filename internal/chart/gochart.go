package chart

import (
	"fmt"
	"math"
	"os"
	"strconv"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Bar renders a vertical bar chart, one color per bar.
func (r *Renderer) Bar(name string, spec BarSpec) (string, error) {
	if len(spec.Bars) == 0 {
		return "", fmt.Errorf("%s: %w", name, ErrNoData)
	}
	values := make([]gochart.Value, len(spec.Bars))
	for i, b := range spec.Bars {
		c := gochart.GetDefaultColor(i)
		values[i] = gochart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: gochart.Style{FillColor: c, StrokeColor: c.WithAlpha(255), StrokeWidth: 1},
		}
	}
	top := maxBar(spec.Bars)
	if top <= 0 {
		top = 1
	}
	// Leave the slot for labels when many categories share the axis.
	barWidth := (r.Width - 120) / (len(values) + 1)
	if barWidth > 80 {
		barWidth = 80
	}
	if barWidth < 8 {
		barWidth = 8
	}
	xAxis := gochart.Style{}
	padBottom := 24
	if len(values) > 8 {
		xAxis.TextRotationDegrees = 45
		padBottom = 72
	}
	graph := gochart.BarChart{
		Title:      spec.Title,
		Width:      r.Width,
		Height:     r.Height,
		BarWidth:   barWidth,
		Background: gochart.Style{Padding: gochart.Box{Top: 48, Left: 16, Right: 12, Bottom: padBottom}},
		XAxis:      xAxis,
		YAxis: gochart.YAxis{
			Name:  spec.YLabel,
			Range: &gochart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Bars: values,
	}
	out := r.path(name)
	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("create chart: %w", err)
	}
	defer f.Close()
	if err := graph.Render(gochart.PNG, f); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	r.wrote("bar", out)
	return out, nil
}

// Series is one named line over the shared X values of a LineSpec.
type Series struct {
	Name string
	Y    []float64
}

// LineSpec describes a line chart with markers at every point.
type LineSpec struct {
	Title  string
	XLabel string
	YLabel string
	X      []float64
	Series []Series
}

// Lines renders one or more series as a marked line chart with a legend.
func (r *Renderer) Lines(name string, spec LineSpec) (string, error) {
	if len(spec.X) == 0 || len(spec.Series) == 0 {
		return "", fmt.Errorf("%s: %w", name, ErrNoData)
	}
	xs := spec.X
	ticks := make([]gochart.Tick, len(xs))
	for i, x := range xs {
		ticks[i] = gochart.Tick{Value: x, Label: strconv.FormatFloat(x, 'f', -1, 64)}
	}
	var xRange *gochart.ContinuousRange
	// go-chart takes the x-range from the ticks and needs a non-zero width,
	// so a lone X gets blank ticks half a unit either side.
	if len(xs) == 1 {
		x := xs[0]
		xs = []float64{x, x}
		xRange = &gochart.ContinuousRange{Min: x - 0.5, Max: x + 0.5}
		ticks = []gochart.Tick{{Value: x - 0.5}, ticks[0], {Value: x + 0.5}}
	}
	minY, maxY := math.MaxFloat64, -math.MaxFloat64
	series := make([]gochart.Series, 0, len(spec.Series))
	for i, s := range spec.Series {
		if len(s.Y) != len(spec.X) {
			return "", fmt.Errorf("%s: series %q has %d values for %d x positions", name, s.Name, len(s.Y), len(spec.X))
		}
		ys := s.Y
		if len(ys) == 1 {
			ys = []float64{ys[0], ys[0]}
		}
		for _, y := range ys {
			minY = math.Min(minY, y)
			maxY = math.Max(maxY, y)
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(gochart.GetDefaultColor(i)),
		})
	}
	pad := (maxY - minY) * 0.1
	if pad == 0 {
		pad = 1
	}
	ch := gochart.Chart{
		Title:      spec.Title,
		Width:      r.Width,
		Height:     r.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 48, Left: 16, Right: 12, Bottom: 24}},
		XAxis:      gochart.XAxis{Name: spec.XLabel, Ticks: ticks},
		YAxis:      gochart.YAxis{Name: spec.YLabel, Range: &gochart.ContinuousRange{Min: minY - pad, Max: maxY + pad}},
		Series:     series,
	}
	if xRange != nil {
		ch.XAxis.Range = xRange
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	out := r.path(name)
	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("create chart: %w", err)
	}
	defer f.Close()
	if err := ch.Render(gochart.PNG, f); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	r.wrote("line", out)
	return out, nil
}

// lineStyle draws a solid line with dot markers.
func lineStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    4,
	}
}

package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/KaramelBytes/pokestat-cli/internal/analysis"
)

// Panel builds one plot of a grid.
type Panel func() (*plot.Plot, error)

var (
	steelBlue = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	skyBlue   = color.RGBA{R: 135, G: 206, B: 235, A: 255}
)

// HBar renders a horizontal bar chart; the first bar is drawn at the top.
func (r *Renderer) HBar(name string, spec BarSpec) (string, error) {
	p, err := HBarPanel(spec)()
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return r.save(name, "hbar", p)
}

// HBarPanel builds a horizontal bar plot.
func HBarPanel(spec BarSpec) Panel {
	return func() (*plot.Plot, error) {
		if len(spec.Bars) == 0 {
			return nil, ErrNoData
		}
		n := len(spec.Bars)
		vals := make(plotter.Values, n)
		labels := make([]string, n)
		for i, b := range spec.Bars {
			// reversed so the first entry sits at the top of the axis
			vals[n-1-i] = b.Value
			labels[n-1-i] = b.Label
		}
		p := plot.New()
		p.Title.Text = spec.Title
		p.X.Label.Text = spec.XLabel
		p.Y.Label.Text = spec.YLabel
		bars, err := plotter.NewBarChart(vals, vg.Points(12))
		if err != nil {
			return nil, err
		}
		bars.Horizontal = true
		bars.Color = steelBlue
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
		p.NominalY(labels...)
		p.X.Min = 0
		return p, nil
	}
}

// HistogramPanel builds a histogram from precomputed bins.
func HistogramPanel(title, xLabel string, bins []analysis.Bin) Panel {
	return func() (*plot.Plot, error) {
		if len(bins) == 0 {
			return nil, ErrNoData
		}
		hb := make([]plotter.HistogramBin, len(bins))
		for i, b := range bins {
			hb[i] = plotter.HistogramBin{Min: b.Lo, Max: b.Hi, Weight: float64(b.Count)}
		}
		h := &plotter.Histogram{
			Bins:      hb,
			Width:     bins[0].Hi - bins[0].Lo,
			FillColor: skyBlue,
			LineStyle: plotter.DefaultLineStyle,
		}
		p := plot.New()
		p.Title.Text = title
		p.X.Label.Text = xLabel
		p.Y.Label.Text = "Count"
		p.Add(h)
		return p, nil
	}
}

// BoxPanel builds side-by-side box plots, one per group.
func BoxPanel(title, yLabel string, groups []analysis.ValueGroup) Panel {
	return func() (*plot.Plot, error) {
		p := plot.New()
		p.Title.Text = title
		p.Y.Label.Text = yLabel
		var names []string
		for _, g := range groups {
			if len(g.Values) == 0 {
				continue
			}
			box, err := plotter.NewBoxPlot(vg.Points(14), float64(len(names)), plotter.Values(g.Values))
			if err != nil {
				return nil, fmt.Errorf("box %s: %w", g.Key, err)
			}
			box.FillColor = categorical(len(names))
			p.Add(box)
			names = append(names, g.Key)
		}
		if len(names) == 0 {
			return nil, ErrNoData
		}
		p.NominalX(names...)
		rotateX(p)
		return p, nil
	}
}

// DensitySeries is one named KDE curve.
type DensitySeries struct {
	Name   string
	Points []analysis.Point
}

// DensityPanel overlays KDE curves with a legend. Empty curves are skipped.
func DensityPanel(title string, series []DensitySeries) Panel {
	return func() (*plot.Plot, error) {
		p := plot.New()
		p.Title.Text = title
		p.X.Label.Text = "Value"
		p.Y.Label.Text = "Density"
		p.Legend.Top = true
		drawn := 0
		for i, s := range series {
			if len(s.Points) == 0 {
				continue
			}
			xys := make(plotter.XYs, len(s.Points))
			for j, pt := range s.Points {
				xys[j] = plotter.XY{X: pt.X, Y: pt.Y}
			}
			l, err := plotter.NewLine(xys)
			if err != nil {
				return nil, err
			}
			c := categorical(i)
			l.Color = c
			l.Width = vg.Points(1.5)
			fill := color.NRGBAModel.Convert(c).(color.NRGBA)
			fill.A = 100
			l.FillColor = fill
			p.Add(l)
			p.Legend.Add(s.Name, l)
			drawn++
		}
		if drawn == 0 {
			return nil, ErrNoData
		}
		return p, nil
	}
}

// HeatmapSpec describes an annotated matrix. Rows[0] is drawn at the top.
type HeatmapSpec struct {
	Title   string
	XLabel  string
	YLabel  string
	Cols    []string
	Rows    []string
	Values  [][]float64 // Values[row][col]
	Min     float64
	Max     float64
	Palette string // "diverging" or "sequential"
	Format  string // annotation format, e.g. "%.2f"
}

// Heatmap renders an annotated heatmap.
func (r *Renderer) Heatmap(name string, spec HeatmapSpec) (string, error) {
	if len(spec.Rows) == 0 || len(spec.Cols) == 0 {
		return "", fmt.Errorf("%s: %w", name, ErrNoData)
	}
	if len(spec.Values) != len(spec.Rows) {
		return "", fmt.Errorf("%s: %d value rows for %d labels", name, len(spec.Values), len(spec.Rows))
	}
	pal, err := heatPalette(spec.Palette)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	g := matrixGrid{z: spec.Values}
	h := plotter.NewHeatMap(g, pal)
	h.Min, h.Max = spec.Min, spec.Max
	if h.Min == h.Max {
		h.Max = h.Min + 1
	}
	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel
	p.Add(h)

	format := spec.Format
	if format == "" {
		format = "%.2f"
	}
	var xys []plotter.XY
	var labels []string
	for row := range spec.Rows {
		for c := range spec.Cols {
			xys = append(xys, plotter.XY{X: float64(c), Y: g.Y(g.gridRow(row))})
			labels = append(labels, fmt.Sprintf(format, spec.Values[row][c]))
		}
	}
	ann, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	for i := range ann.TextStyle {
		ann.TextStyle[i].XAlign = draw.XCenter
		ann.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(ann)

	rowLabels := make([]string, len(spec.Rows))
	for i, l := range spec.Rows {
		rowLabels[len(spec.Rows)-1-i] = l
	}
	p.NominalX(spec.Cols...)
	p.NominalY(rowLabels...)
	if len(spec.Cols) > 4 {
		rotateX(p)
	}
	return r.save(name, "heatmap", p)
}

// Grid lays panels out in rows of cols and writes them as one image with a
// common title. Each tile gets the renderer's size scaled down by half.
func (r *Renderer) Grid(name, title string, cols int, panels []Panel) (string, error) {
	if len(panels) == 0 {
		return "", fmt.Errorf("%s: %w", name, ErrNoData)
	}
	if cols <= 0 {
		cols = 4
	}
	rows := (len(panels) + cols - 1) / cols
	plots := make([]*plot.Plot, 0, len(panels))
	for i, build := range panels {
		p, err := build()
		if errors.Is(err, ErrNoData) {
			r.log.Debug("grid panel skipped")
			plots = append(plots, nil)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("%s: panel %d: %w", name, i, err)
		}
		plots = append(plots, p)
	}

	tileW, tileH := pixels(r.Width/2), pixels(r.Height/2)
	titleH := vg.Points(36)
	w, h := tileW*vg.Length(cols), tileH*vg.Length(rows)+titleH
	img := vgimg.New(w, h)
	dc := draw.New(img)
	dc.SetColor(color.White)
	dc.Fill(dc.Rectangle.Path())

	if title != "" {
		fnt := plot.DefaultFont
		fnt.Size = vg.Points(18)
		sty := text.Style{
			Color:   color.Black,
			Font:    fnt,
			XAlign:  draw.XCenter,
			YAlign:  draw.YTop,
			Handler: plot.DefaultTextHandler,
		}
		dc.FillText(sty, vg.Point{X: w / 2, Y: h - vg.Points(8)}, title)
	}
	body := draw.Crop(dc, 0, 0, 0, -titleH)
	tiles := draw.Tiles{
		Rows: rows, Cols: cols,
		PadX: vg.Millimeter * 2, PadY: vg.Millimeter * 2,
		PadTop: vg.Millimeter, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}
	drawn := 0
	for i, p := range plots {
		if p == nil {
			continue
		}
		p.Draw(tiles.At(body, i%cols, i/cols))
		drawn++
	}
	if drawn == 0 {
		return "", fmt.Errorf("%s: %w", name, ErrNoData)
	}

	out := r.path(name)
	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("create chart: %w", err)
	}
	defer f.Close()
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	r.wrote("grid", out)
	return out, nil
}

func (r *Renderer) save(name, kind string, p *plot.Plot) (string, error) {
	out := r.path(name)
	if err := p.Save(pixels(r.Width), pixels(r.Height), out); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	r.wrote(kind, out)
	return out, nil
}

func rotateX(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

func categorical(i int) color.Color {
	pal := []color.Color{
		color.RGBA{R: 31, G: 119, B: 180, A: 255},
		color.RGBA{R: 255, G: 127, B: 14, A: 255},
		color.RGBA{R: 44, G: 160, B: 44, A: 255},
		color.RGBA{R: 214, G: 39, B: 40, A: 255},
		color.RGBA{R: 148, G: 103, B: 189, A: 255},
		color.RGBA{R: 140, G: 86, B: 75, A: 255},
		color.RGBA{R: 227, G: 119, B: 194, A: 255},
		color.RGBA{R: 127, G: 127, B: 127, A: 255},
		color.RGBA{R: 188, G: 189, B: 34, A: 255},
		color.RGBA{R: 23, G: 190, B: 207, A: 255},
	}
	return pal[i%len(pal)]
}

func heatPalette(kind string) (palette.Palette, error) {
	switch kind {
	case "", "diverging":
		return moreland.SmoothBlueRed().Palette(255), nil
	case "sequential":
		p, err := brewer.GetPalette(brewer.TypeAny, "Blues", 9)
		if err != nil {
			return nil, fmt.Errorf("palette: %w", err)
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown palette %q", kind)
}

// matrixGrid adapts a row-major matrix to plotter.GridXYZ with row 0 on top.
type matrixGrid struct {
	z [][]float64
}

func (g matrixGrid) Dims() (c, r int) {
	if len(g.z) == 0 {
		return 0, 0
	}
	return len(g.z[0]), len(g.z)
}

func (g matrixGrid) gridRow(dataRow int) int { return len(g.z) - 1 - dataRow }

func (g matrixGrid) Z(c, r int) float64 { return g.z[g.gridRow(r)][c] }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return float64(r) }

// Package chart renders aggregation results to PNG files.
package chart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"
)

// ErrNoData is returned when a chart would have nothing to draw.
var ErrNoData = errors.New("chart: no data")

const (
	DefaultWidth  = 1024
	DefaultHeight = 640
	dpi           = 96
)

// Renderer writes charts as PNG files under Dir.
type Renderer struct {
	Dir    string
	Width  int
	Height int
	log    *zap.Logger
}

// NewRenderer creates the output directory and returns a Renderer. Zero
// sizes fall back to the defaults; a nil logger disables logging.
func NewRenderer(dir string, width, height int, log *zap.Logger) (*Renderer, error) {
	if dir == "" {
		return nil, errors.New("chart: output directory not set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create out dir: %w", err)
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{Dir: dir, Width: width, Height: height, log: log}, nil
}

// path returns the output file for a chart name, adding .png when missing.
func (r *Renderer) path(name string) string {
	if !strings.HasSuffix(strings.ToLower(name), ".png") {
		name += ".png"
	}
	return filepath.Join(r.Dir, name)
}

func (r *Renderer) wrote(kind, path string) {
	r.log.Debug("chart written", zap.String("kind", kind), zap.String("path", path))
}

// pixels converts a pixel count to a vg length at the renderer's DPI.
func pixels(px int) vg.Length {
	return vg.Length(px) * vg.Inch / dpi
}

// Bar is a single labeled value.
type Bar struct {
	Label string
	Value float64
}

// BarSpec describes a bar chart.
type BarSpec struct {
	Title  string
	XLabel string
	YLabel string
	Bars   []Bar
}

func maxBar(bars []Bar) float64 {
	m := 0.0
	for _, b := range bars {
		if b.Value > m {
			m = b.Value
		}
	}
	return m
}

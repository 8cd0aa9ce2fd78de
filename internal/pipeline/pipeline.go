// Package pipeline runs the registered analysis steps over a dataset and
// collects the charts they write.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KaramelBytes/pokestat-cli/internal/analysis"
	"github.com/KaramelBytes/pokestat-cli/internal/chart"
	"github.com/KaramelBytes/pokestat-cli/internal/dataset"
)

// ErrUnknownStep is returned when a requested step id is not registered.
var ErrUnknownStep = errors.New("unknown step")

// Options selects and sizes a run. An empty Steps runs every step.
type Options struct {
	Analysis analysis.Options
	Steps    []string
	Log      *zap.Logger
}

// Artifact is one chart written by a step.
type Artifact struct {
	Step  string `json:"step" yaml:"step"`
	Title string `json:"title" yaml:"title"`
	Path  string `json:"file" yaml:"file"`
}

// Select returns the registered steps named by ids, in registry order.
// Duplicates are ignored; an empty list selects everything.
func Select(ids []string) ([]Step, error) {
	if len(ids) == 0 {
		return Steps(), nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if !known(id) {
			return nil, fmt.Errorf("%w: %q (see 'pokestat steps')", ErrUnknownStep, id)
		}
		want[id] = true
	}
	var out []Step
	for _, s := range registry {
		if want[s.ID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func known(id string) bool {
	for _, s := range registry {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Run executes the selected steps in order against t, stopping at the first
// error. A step with nothing to draw is skipped and leaves no artifact.
// Cancellation of ctx is checked before each step.
func Run(ctx context.Context, t *dataset.Table, r *chart.Renderer, opt Options) ([]Artifact, error) {
	log := opt.Log
	if log == nil {
		log = zap.NewNop()
	}
	steps, err := Select(opt.Steps)
	if err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, fmt.Errorf("analyze: %w", chart.ErrNoData)
	}
	if !t.Derived() {
		t = dataset.Derive(t)
	}
	env := Env{Table: t, Renderer: r, Options: opt.Analysis.WithDefaults()}

	artifacts := make([]Artifact, 0, len(steps))
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return artifacts, err
		}
		start := time.Now()
		env.Title = s.Title
		path, err := s.Render(env)
		if errors.Is(err, chart.ErrNoData) {
			log.Warn("step skipped: nothing to draw", zap.String("step", s.ID))
			continue
		}
		if err != nil {
			return artifacts, fmt.Errorf("step %s: %w", s.ID, err)
		}
		log.Debug("step complete",
			zap.String("step", s.ID),
			zap.String("file", path),
			zap.Duration("took", time.Since(start)))
		artifacts = append(artifacts, Artifact{Step: s.ID, Title: s.Title, Path: path})
	}
	return artifacts, nil
}

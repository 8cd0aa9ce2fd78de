// Package manifest records what an analysis run produced.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/pokestat-cli/internal/pipeline"
	"github.com/KaramelBytes/pokestat-cli/internal/utils"
)

const (
	jsonFileName = "manifest.json"
	yamlFileName = "manifest.yaml"
)

// Manifest describes a single analysis run persisted next to its charts.
type Manifest struct {
	RunID     string              `json:"run_id" yaml:"run_id"`
	Source    string              `json:"source" yaml:"source"`
	Records   int                 `json:"records" yaml:"records"`
	CreatedAt time.Time           `json:"created_at" yaml:"created_at"`
	Artifacts []pipeline.Artifact `json:"artifacts" yaml:"artifacts"`

	// Not serialized: directory the manifest is written to
	dir string
}

// New constructs a manifest for a run. Artifact paths are stored relative
// to dir when they live under it. Call Save to persist.
func New(dir, source string, records int, artifacts []pipeline.Artifact) *Manifest {
	m := &Manifest{
		RunID:     uuid.NewString(),
		Source:    source,
		Records:   records,
		CreatedAt: time.Now().UTC(),
		Artifacts: make([]pipeline.Artifact, len(artifacts)),
		dir:       dir,
	}
	for i, a := range artifacts {
		if rel, err := filepath.Rel(dir, a.Path); err == nil && filepath.IsLocal(rel) {
			a.Path = rel
		}
		m.Artifacts[i] = a
	}
	return m
}

// Dir returns the directory the manifest belongs to.
func (m *Manifest) Dir() string { return m.dir }

// Save writes manifest.json and its YAML mirror using atomic writes. It
// returns the path of the JSON file.
func (m *Manifest) Save() (string, error) {
	if m.dir == "" {
		return "", errors.New("manifest directory not set")
	}
	if err := utils.EnsureDir(m.dir); err != nil {
		return "", fmt.Errorf("ensure dir: %w", err)
	}
	data, err := utils.PrettyJSON(m)
	if err != nil {
		return "", err
	}
	path := filepath.Join(m.dir, jsonFileName)
	if err := utils.SafeWriteFile(path, data); err != nil {
		return "", err
	}
	y, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(filepath.Join(m.dir, yamlFileName), y); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads manifest.json from dir.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, jsonFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("manifest not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	m.dir = dir
	return &m, nil
}

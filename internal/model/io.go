package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.yaml.in/yaml/v3"
)

// Document is the serialized form of a model
type Document struct {
	ID           string         `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Nodes        []Node         `json:"nodes" yaml:"nodes"`
	Lines        []Line         `json:"lines" yaml:"lines"`
	Materials    []Material     `json:"materials,omitempty" yaml:"materials,omitempty"`
	Thicknesses  []Thickness    `json:"thicknesses,omitempty" yaml:"thicknesses,omitempty"`
	Surfaces     []Surface      `json:"surfaces,omitempty" yaml:"surfaces,omitempty"`
	Supports     []NodalSupport `json:"nodal_supports,omitempty" yaml:"nodal_supports,omitempty"`
	LoadCases    []LoadCase     `json:"load_cases,omitempty" yaml:"load_cases,omitempty"`
	SurfaceLoads []SurfaceLoad  `json:"surface_loads,omitempty" yaml:"surface_loads,omitempty"`
}

// Document returns a snapshot of the model with objects sorted by number
func (m *Model) Document() Document {
	return Document{
		ID:           m.ID,
		Name:         m.Name,
		Nodes:        m.Nodes(),
		Lines:        m.Lines(),
		Materials:    m.Materials(),
		Thicknesses:  m.Thicknesses(),
		Surfaces:     m.Surfaces(),
		Supports:     m.Supports(),
		LoadCases:    m.LoadCases(),
		SurfaceLoads: m.SurfaceLoads(),
	}
}

// FromDocument builds a model, checking every reference
func FromDocument(doc Document) (*Model, error) {
	m := New(doc.Name)
	if doc.ID != "" {
		m.ID = doc.ID
	}

	for _, n := range doc.Nodes {
		if n.No <= 0 {
			return nil, &ValidationError{"node numbers must be positive"}
		}
		if _, err := m.AddNode(n.No, n.X, n.Y, n.Z); err != nil {
			return nil, err
		}
	}
	for _, l := range doc.Lines {
		if l.No <= 0 {
			return nil, &ValidationError{"line numbers must be positive"}
		}
		if _, err := m.AddLine(l.No, l.Nodes...); err != nil {
			return nil, err
		}
	}
	for _, mat := range doc.Materials {
		if _, err := m.AddMaterial(mat.No, mat.Name); err != nil {
			return nil, err
		}
	}
	for _, th := range doc.Thicknesses {
		if _, err := m.AddThickness(th.No, th.Name, th.Material, th.Uniform); err != nil {
			return nil, err
		}
	}
	for _, s := range doc.Surfaces {
		if _, err := m.AddSurface(s.No, s.Boundary, s.Thickness); err != nil {
			return nil, err
		}
	}
	for _, s := range doc.Supports {
		if _, err := m.AddSupport(s); err != nil {
			return nil, err
		}
	}
	for _, lc := range doc.LoadCases {
		if _, err := m.AddLoadCase(lc.No, lc.Name); err != nil {
			return nil, err
		}
	}
	for _, sl := range doc.SurfaceLoads {
		if _, err := m.AddSurfaceLoad(sl); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadFromFile loads a model from a JSON or YAML file
func LoadFromFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading model file")
	}

	var doc Document
	if isYAML(path) {
		err = yaml.Unmarshal(data, &doc)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", filepath.Base(path))
	}

	m, err := FromDocument(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", filepath.Base(path))
	}
	return m, nil
}

// SaveToFile writes the model as JSON or YAML, chosen by file extension
func (m *Model) SaveToFile(path string) error {
	doc := m.Document()

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(&doc)
	} else {
		data, err = json.MarshalIndent(&doc, "", "  ")
	}
	if err != nil {
		return errors.Wrap(err, "encoding model")
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "writing model file")
}

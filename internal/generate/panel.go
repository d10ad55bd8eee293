// Package generate builds glazing geometry inside a model: panel grids,
// single glass panels, spider fitting supports and wind loads.
//
// Coordinates are in metres. Panels lie in the global XZ plane with X
// along the width and Z along the height.
package generate

import (
	"fmt"

	"github.com/alexiusacademia/goglass/internal/model"
)

// Panel defaults
const (
	DefaultPanelWidth  = 1.5
	DefaultPanelHeight = 3.0
	DefaultThickness   = 0.016 // 16 mm
	DefaultMaterial    = "Laminated heat-strengthened glass"
)

// PanelSpec describes a single rectangular glass panel
type PanelSpec struct {
	Width        float64 // m
	Height       float64 // m
	Thickness    float64 // m
	MaterialName string
}

// PanelResult lists the objects created by Panel
type PanelResult struct {
	Nodes     []model.Node
	Lines     []model.Line
	Material  model.Material
	Thickness model.Thickness
	Surface   model.Surface
}

func (s *PanelSpec) applyDefaults() {
	if s.Width == 0 {
		s.Width = DefaultPanelWidth
	}
	if s.Height == 0 {
		s.Height = DefaultPanelHeight
	}
	if s.Thickness == 0 {
		s.Thickness = DefaultThickness
	}
	if s.MaterialName == "" {
		s.MaterialName = DefaultMaterial
	}
}

// Validate checks the panel dimensions
func (s PanelSpec) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return &SpecError{fmt.Sprintf("panel dimensions must be positive (got %g x %g)", s.Width, s.Height)}
	}
	if s.Thickness <= 0 {
		return &SpecError{"panel thickness must be positive"}
	}
	return nil
}

// Panel clears the model and creates one glass panel: material 1,
// thickness 1, corner nodes 1-4, edge lines 1-4 and surface 1.
func Panel(m *model.Model, spec PanelSpec) (*PanelResult, error) {
	spec.applyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	m.Clear()
	res := &PanelResult{}

	var err error
	if res.Material, err = m.AddMaterial(1, spec.MaterialName); err != nil {
		return nil, err
	}
	if res.Thickness, err = m.AddThickness(1, "Glass thickness", res.Material.No, spec.Thickness); err != nil {
		return nil, err
	}

	corners := [][3]float64{
		{0, 0, 0},
		{spec.Width, 0, 0},
		{spec.Width, 0, spec.Height},
		{0, 0, spec.Height},
	}
	for i, c := range corners {
		n, err := m.AddNode(i+1, c[0], c[1], c[2])
		if err != nil {
			return nil, err
		}
		res.Nodes = append(res.Nodes, n)
	}

	boundary := make([]int, 0, 4)
	for i := range corners {
		l, err := m.AddLine(i+1, i+1, (i+1)%4+1)
		if err != nil {
			return nil, err
		}
		res.Lines = append(res.Lines, l)
		boundary = append(boundary, l.No)
	}

	if res.Surface, err = m.AddSurface(1, boundary, res.Thickness.No); err != nil {
		return nil, err
	}
	return res, nil
}

// SpecError reports invalid generator parameters
type SpecError struct {
	msg string
}

func (e *SpecError) Error() string {
	return e.msg
}

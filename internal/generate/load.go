package generate

import (
	"github.com/pkg/errors"

	"github.com/alexiusacademia/goglass/internal/model"
)

// DefaultWindLoad is the surface pressure applied when none is given (kN/m²)
const DefaultWindLoad = 1.5

// WindSpec describes a uniform wind pressure on one surface
type WindSpec struct {
	Surface   int
	Magnitude float64 // kN/m²
	LoadCase  int     // 0 adds a new load case
	CaseName  string
}

// WindResult lists the objects used or created by WindLoad
type WindResult struct {
	LoadCase model.LoadCase
	Load     model.SurfaceLoad
}

// WindLoad applies a uniform force along global Y to a surface. An
// existing load case is reused when spec.LoadCase names one; otherwise a
// new case is added.
func WindLoad(m *model.Model, spec WindSpec) (*WindResult, error) {
	if spec.Magnitude == 0 {
		spec.Magnitude = DefaultWindLoad
	}
	if spec.CaseName == "" {
		spec.CaseName = "Wind"
	}
	if _, ok := m.Surface(spec.Surface); !ok {
		return nil, errors.Wrapf(model.ErrNotFound, "surface %d", spec.Surface)
	}

	res := &WindResult{}
	lc, ok := m.LoadCase(spec.LoadCase)
	if !ok {
		var err error
		if lc, err = m.AddLoadCase(spec.LoadCase, spec.CaseName); err != nil {
			return nil, err
		}
	}
	res.LoadCase = lc

	load, err := m.AddSurfaceLoad(model.SurfaceLoad{
		LoadCase:     lc.No,
		Surfaces:     []int{spec.Surface},
		Distribution: model.DistributionUniform,
		Magnitude:    spec.Magnitude,
		Direction:    model.DirectionGlobalY,
	})
	if err != nil {
		return nil, err
	}
	res.Load = load
	return res, nil
}

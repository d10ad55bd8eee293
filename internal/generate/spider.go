package generate

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alexiusacademia/goglass/internal/connect"
	"github.com/alexiusacademia/goglass/internal/model"
)

// Spider fitting defaults
const (
	DefaultSpiderOffset = 0.1   // 100 mm
	DefaultTolerance    = 0.001 // 1 mm

	// projections shorter than this leave the fitting on its corner
	minInsetLength = 1e-4
)

// InsetMode selects how a fitting is moved in from its corner
type InsetMode string

const (
	// InsetCentroid moves the fitting Offset towards the panel centre,
	// within the panel plane
	InsetCentroid InsetMode = "centroid"

	// InsetEdges moves the fitting Offset along each of the two edges
	// meeting at the corner
	InsetEdges InsetMode = "edges"
)

// SupportRole names the restraint given to a spider fitting
type SupportRole string

const (
	RolePinned SupportRole = "PINNED" // X, Y and Z fixed
	RoleZY     SupportRole = "Z+Y"    // Y and Z fixed
	RoleXY     SupportRole = "X+Y"    // X and Y fixed
	RoleWind   SupportRole = "WIND"   // Y fixed
)

// Translation returns the fixed translations (X, Y, Z) of the role
func (r SupportRole) Translation() [3]bool {
	switch r {
	case RolePinned:
		return [3]bool{true, true, true}
	case RoleZY:
		return [3]bool{false, true, true}
	case RoleXY:
		return [3]bool{true, true, false}
	case RoleWind:
		return [3]bool{false, true, false}
	}
	return [3]bool{}
}

// SupportRoles returns the role of corners 0-3 after sorting them by
// distance from the first corner: 0 is the reference corner, 1 and 2 its
// neighbours and 3 the opposite corner.
func SupportRoles(zAxisUpward bool) [4]SupportRole {
	if zAxisUpward {
		return [4]SupportRole{RoleXY, RoleWind, RolePinned, RoleZY}
	}
	return [4]SupportRole{RolePinned, RoleZY, RoleXY, RoleWind}
}

// ErrDegenerateSurface is returned when the corners of a surface do not
// span a plane
var ErrDegenerateSurface = errors.New("surface corners do not define a plane")

// SpiderSpec describes the spider fittings of one surface
type SpiderSpec struct {
	Surface     int
	Offset      float64 // m
	Tolerance   float64 // m
	ZAxisUpward bool
	Mode        InsetMode
}

// SpiderResult lists what SpiderFit found and created
type SpiderResult struct {
	Corners  []model.Node // sorted by distance from the first corner
	Center   r3.Vec
	Normal   r3.Vec
	Nodes    []model.Node
	Supports []model.NodalSupport
	Erased   []int // nodes removed from fitting positions
}

func (s *SpiderSpec) applyDefaults() {
	if s.Offset == 0 {
		s.Offset = DefaultSpiderOffset
	}
	if s.Tolerance == 0 {
		s.Tolerance = DefaultTolerance
	}
	if s.Mode == "" {
		s.Mode = InsetCentroid
	}
}

// Validate checks the spider parameters
func (s SpiderSpec) Validate() error {
	if s.Offset <= 0 {
		return &SpecError{"spider offset must be positive"}
	}
	if s.Tolerance <= 0 {
		return &SpecError{"position tolerance must be positive"}
	}
	if s.Mode != InsetCentroid && s.Mode != InsetEdges {
		return &SpecError{fmt.Sprintf("unknown inset mode %q", s.Mode)}
	}
	return nil
}

// SpiderFit places a spider fitting node near each corner of a surface and
// supports it. Rotations are always free; translations follow the corner's
// SupportRole. A node already sitting at a fitting position is erased
// first when nothing else uses it.
func SpiderFit(m *model.Model, spec SpiderSpec) (*SpiderResult, error) {
	spec.applyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	corners, err := m.SurfaceCorners(spec.Surface)
	if err != nil {
		return nil, err
	}
	if len(corners) < 3 {
		return nil, errors.Wrapf(ErrDegenerateSurface, "surface %d has %d corner nodes", spec.Surface, len(corners))
	}
	if len(corners) != 4 {
		klog.Warningf("surface %d: expected 4 corner nodes, found %d", spec.Surface, len(corners))
	}

	res := &SpiderResult{}
	for _, c := range corners {
		res.Center = r3.Add(res.Center, c.Pos())
	}
	res.Center = r3.Scale(1/float64(len(corners)), res.Center)

	normal := r3.Cross(
		r3.Sub(corners[1].Pos(), corners[0].Pos()),
		r3.Sub(corners[2].Pos(), corners[0].Pos()),
	)
	if r3.Norm(normal) < minInsetLength {
		return nil, errors.Wrapf(ErrDegenerateSurface, "surface %d", spec.Surface)
	}
	res.Normal = r3.Unit(normal)

	ref := corners[0].Pos()
	sort.SliceStable(corners, func(i, j int) bool {
		return connect.Distance(corners[i].Pos(), ref) < connect.Distance(corners[j].Pos(), ref)
	})
	res.Corners = corners

	startNo := m.NextNodeNo()
	for i, corner := range corners {
		pos := spec.inset(corner, corners, res.Center, res.Normal)

		if existing, ok := m.NodeAt(pos, spec.Tolerance); ok {
			if err := m.EraseNode(existing.No); err != nil {
				klog.Warningf("could not delete node %d at spider location: %v", existing.No, err)
			} else {
				klog.Infof("deleted existing node %d at spider location", existing.No)
				res.Erased = append(res.Erased, existing.No)
			}
		}

		n, err := m.AddNode(startNo+i, pos.X, pos.Y, pos.Z)
		if err != nil {
			return nil, err
		}
		res.Nodes = append(res.Nodes, n)
	}

	roles := SupportRoles(spec.ZAxisUpward)
	for i, n := range res.Nodes {
		if i >= len(roles) {
			klog.Warningf("no support role for spider node %d", n.No)
			continue
		}
		s, err := m.AddSupport(model.NodalSupport{
			Nodes:       []int{n.No},
			Translation: roles[i].Translation(),
			Label:       string(roles[i]),
		})
		if err != nil {
			return nil, err
		}
		res.Supports = append(res.Supports, s)
	}

	return res, nil
}

// inset returns the fitting position for corner
func (s SpiderSpec) inset(corner model.Node, corners []model.Node, center, normal r3.Vec) r3.Vec {
	p := corner.Pos()

	switch s.Mode {
	case InsetEdges:
		a, b := neighbours(corner, corners)
		for _, n := range []model.Node{a, b} {
			dir := r3.Sub(n.Pos(), p)
			if r3.Norm(dir) < minInsetLength {
				continue
			}
			p = r3.Add(p, r3.Scale(s.Offset, r3.Unit(dir)))
		}
		return p

	default:
		toCenter := r3.Sub(center, p)
		inPlane := r3.Sub(toCenter, r3.Scale(r3.Dot(toCenter, normal), normal))
		if r3.Norm(inPlane) < minInsetLength {
			klog.Warningf("could not find an inset direction for corner node %d", corner.No)
			return p
		}
		return r3.Add(p, r3.Scale(s.Offset, r3.Unit(inPlane)))
	}
}

// neighbours returns the two corners closest to corner
func neighbours(corner model.Node, corners []model.Node) (model.Node, model.Node) {
	others := make([]model.Node, 0, len(corners)-1)
	for _, c := range corners {
		if c.No != corner.No {
			others = append(others, c)
		}
	}
	sort.SliceStable(others, func(i, j int) bool {
		return connect.Distance(others[i].Pos(), corner.Pos()) < connect.Distance(others[j].Pos(), corner.Pos())
	})
	return others[0], others[1]
}

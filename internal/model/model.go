// Package model holds the geometric model of a glazing layout: numbered
// nodes, lines, surfaces, their material and thickness, nodal supports and
// loads. Numbers are assigned by the caller or, when zero, allocated as the
// highest number in use plus one.
package model

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// Model is an in-memory structural model
type Model struct {
	ID   string
	Name string

	nodes        map[int]*Node
	lines        map[int]*Line
	materials    map[int]*Material
	thicknesses  map[int]*Thickness
	surfaces     map[int]*Surface
	supports     map[int]*NodalSupport
	loadCases    map[int]*LoadCase
	surfaceLoads map[int]*SurfaceLoad
}

// New creates an empty model
func New(name string) *Model {
	m := &Model{
		ID:   uuid.NewString(),
		Name: name,
	}
	m.Clear()
	return m
}

// Clear removes every object from the model, keeping its identity
func (m *Model) Clear() {
	m.nodes = map[int]*Node{}
	m.lines = map[int]*Line{}
	m.materials = map[int]*Material{}
	m.thicknesses = map[int]*Thickness{}
	m.surfaces = map[int]*Surface{}
	m.supports = map[int]*NodalSupport{}
	m.loadCases = map[int]*LoadCase{}
	m.surfaceLoads = map[int]*SurfaceLoad{}
}

// Counts holds the number of objects of each kind
type Counts struct {
	Nodes        int
	Lines        int
	Materials    int
	Thicknesses  int
	Surfaces     int
	Supports     int
	LoadCases    int
	SurfaceLoads int
}

// Counts returns the number of objects of each kind
func (m *Model) Counts() Counts {
	return Counts{
		Nodes:        len(m.nodes),
		Lines:        len(m.lines),
		Materials:    len(m.materials),
		Thicknesses:  len(m.thicknesses),
		Surfaces:     len(m.surfaces),
		Supports:     len(m.supports),
		LoadCases:    len(m.loadCases),
		SurfaceLoads: len(m.surfaceLoads),
	}
}

func nextNo[T any](objs map[int]*T) int {
	next := 1
	for no := range objs {
		if no >= next {
			next = no + 1
		}
	}
	return next
}

func sorted[T any](objs map[int]*T) []T {
	out := make([]T, 0, len(objs))
	for _, no := range slices.Sorted(maps.Keys(objs)) {
		out = append(out, *objs[no])
	}
	return out
}

// Next*No return the number the next object of each kind gets when it is
// added with number 0.
func (m *Model) NextNodeNo() int { return nextNo(m.nodes) }
func (m *Model) NextLineNo() int { return nextNo(m.lines) }
func (m *Model) NextMaterialNo() int { return nextNo(m.materials) }
func (m *Model) NextThicknessNo() int { return nextNo(m.thicknesses) }
func (m *Model) NextSurfaceNo() int { return nextNo(m.surfaces) }
func (m *Model) NextSupportNo() int { return nextNo(m.supports) }
func (m *Model) NextLoadCaseNo() int { return nextNo(m.loadCases) }
func (m *Model) NextSurfaceLoadNo() int { return nextNo(m.surfaceLoads) }

// Nodes, Lines and the other plural accessors return copies of the model's
// objects sorted by number.
func (m *Model) Nodes() []Node { return sorted(m.nodes) }
func (m *Model) Lines() []Line { return sorted(m.lines) }
func (m *Model) Materials() []Material { return sorted(m.materials) }
func (m *Model) Thicknesses() []Thickness { return sorted(m.thicknesses) }
func (m *Model) Surfaces() []Surface { return sorted(m.surfaces) }
func (m *Model) Supports() []NodalSupport { return sorted(m.supports) }
func (m *Model) LoadCases() []LoadCase { return sorted(m.loadCases) }
func (m *Model) SurfaceLoads() []SurfaceLoad { return sorted(m.surfaceLoads) }

// Node returns node no
func (m *Model) Node(no int) (Node, bool) {
	n, ok := m.nodes[no]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Line returns line no
func (m *Model) Line(no int) (Line, bool) {
	l, ok := m.lines[no]
	if !ok {
		return Line{}, false
	}
	return *l, true
}

// Surface returns surface no
func (m *Model) Surface(no int) (Surface, bool) {
	s, ok := m.surfaces[no]
	if !ok {
		return Surface{}, false
	}
	return *s, true
}

// LoadCase returns load case no
func (m *Model) LoadCase(no int) (LoadCase, bool) {
	lc, ok := m.loadCases[no]
	if !ok {
		return LoadCase{}, false
	}
	return *lc, true
}

// AddNode creates a node at (x, y, z). A zero no takes the next free number.
func (m *Model) AddNode(no int, x, y, z float64) (Node, error) {
	if no == 0 {
		no = m.NextNodeNo()
	}
	if _, ok := m.nodes[no]; ok {
		return Node{}, &NumberInUseError{Kind: "node", No: no}
	}
	if math.IsNaN(x) || math.IsNaN(y) || math.IsNaN(z) {
		return Node{}, &ValidationError{fmt.Sprintf("node %d has a NaN coordinate", no)}
	}
	n := &Node{No: no, X: x, Y: y, Z: z}
	m.nodes[no] = n
	return *n, nil
}

// AddLine creates a polyline through the given nodes
func (m *Model) AddLine(no int, nodes ...int) (Line, error) {
	if no == 0 {
		no = m.NextLineNo()
	}
	if _, ok := m.lines[no]; ok {
		return Line{}, &NumberInUseError{Kind: "line", No: no}
	}
	if len(nodes) < 2 {
		return Line{}, &ValidationError{fmt.Sprintf("line %d needs at least 2 nodes", no)}
	}
	for i, n := range nodes {
		if _, ok := m.nodes[n]; !ok {
			return Line{}, &ReferenceError{Kind: "line", No: no, Target: "node", Ref: n}
		}
		if i > 0 && nodes[i-1] == n {
			return Line{}, &ValidationError{fmt.Sprintf("line %d repeats node %d", no, n)}
		}
	}
	l := &Line{No: no, Nodes: slices.Clone(nodes)}
	m.lines[no] = l
	return *l, nil
}

// AddMaterial creates a named material
func (m *Model) AddMaterial(no int, name string) (Material, error) {
	if no == 0 {
		no = m.NextMaterialNo()
	}
	if _, ok := m.materials[no]; ok {
		return Material{}, &NumberInUseError{Kind: "material", No: no}
	}
	mat := &Material{No: no, Name: name}
	m.materials[no] = mat
	return *mat, nil
}

// AddThickness creates a uniform thickness of an existing material
func (m *Model) AddThickness(no int, name string, material int, uniform float64) (Thickness, error) {
	if no == 0 {
		no = m.NextThicknessNo()
	}
	if _, ok := m.thicknesses[no]; ok {
		return Thickness{}, &NumberInUseError{Kind: "thickness", No: no}
	}
	if _, ok := m.materials[material]; !ok {
		return Thickness{}, &ReferenceError{Kind: "thickness", No: no, Target: "material", Ref: material}
	}
	if uniform <= 0 {
		return Thickness{}, &ValidationError{fmt.Sprintf("thickness %d must be positive", no)}
	}
	th := &Thickness{No: no, Name: name, Material: material, Uniform: uniform}
	m.thicknesses[no] = th
	return *th, nil
}

// AddSurface creates a surface bounded by existing lines
func (m *Model) AddSurface(no int, boundary []int, thickness int) (Surface, error) {
	if no == 0 {
		no = m.NextSurfaceNo()
	}
	if _, ok := m.surfaces[no]; ok {
		return Surface{}, &NumberInUseError{Kind: "surface", No: no}
	}
	if len(boundary) < 3 {
		return Surface{}, &ValidationError{fmt.Sprintf("surface %d needs at least 3 boundary lines", no)}
	}
	for _, l := range boundary {
		if _, ok := m.lines[l]; !ok {
			return Surface{}, &ReferenceError{Kind: "surface", No: no, Target: "line", Ref: l}
		}
	}
	if _, ok := m.thicknesses[thickness]; !ok {
		return Surface{}, &ReferenceError{Kind: "surface", No: no, Target: "thickness", Ref: thickness}
	}
	s := &Surface{No: no, Boundary: slices.Clone(boundary), Thickness: thickness}
	m.surfaces[no] = s
	return *s, nil
}

// AddSupport creates a nodal support on existing nodes
func (m *Model) AddSupport(s NodalSupport) (NodalSupport, error) {
	if s.No == 0 {
		s.No = m.NextSupportNo()
	}
	if _, ok := m.supports[s.No]; ok {
		return NodalSupport{}, &NumberInUseError{Kind: "nodal support", No: s.No}
	}
	for _, n := range s.Nodes {
		if _, ok := m.nodes[n]; !ok {
			return NodalSupport{}, &ReferenceError{Kind: "nodal support", No: s.No, Target: "node", Ref: n}
		}
	}
	s.Nodes = slices.Clone(s.Nodes)
	m.supports[s.No] = &s
	return s, nil
}

// AddLoadCase creates a load case
func (m *Model) AddLoadCase(no int, name string) (LoadCase, error) {
	if no == 0 {
		no = m.NextLoadCaseNo()
	}
	if _, ok := m.loadCases[no]; ok {
		return LoadCase{}, &NumberInUseError{Kind: "load case", No: no}
	}
	lc := &LoadCase{No: no, Name: name}
	m.loadCases[no] = lc
	return *lc, nil
}

// AddSurfaceLoad creates a load on existing surfaces
func (m *Model) AddSurfaceLoad(sl SurfaceLoad) (SurfaceLoad, error) {
	if sl.No == 0 {
		sl.No = m.NextSurfaceLoadNo()
	}
	if _, ok := m.surfaceLoads[sl.No]; ok {
		return SurfaceLoad{}, &NumberInUseError{Kind: "surface load", No: sl.No}
	}
	if _, ok := m.loadCases[sl.LoadCase]; !ok {
		return SurfaceLoad{}, &ReferenceError{Kind: "surface load", No: sl.No, Target: "load case", Ref: sl.LoadCase}
	}
	for _, s := range sl.Surfaces {
		if _, ok := m.surfaces[s]; !ok {
			return SurfaceLoad{}, &ReferenceError{Kind: "surface load", No: sl.No, Target: "surface", Ref: s}
		}
	}
	if sl.Distribution == "" {
		sl.Distribution = DistributionUniform
	}
	sl.Surfaces = slices.Clone(sl.Surfaces)
	m.surfaceLoads[sl.No] = &sl
	return sl, nil
}

// EraseNode removes a node that no line or support refers to
func (m *Model) EraseNode(no int) error {
	if _, ok := m.nodes[no]; !ok {
		return ErrNotFound
	}
	for _, l := range m.lines {
		if slices.Contains(l.Nodes, no) {
			return ErrNodeInUse
		}
	}
	for _, s := range m.supports {
		if slices.Contains(s.Nodes, no) {
			return ErrNodeInUse
		}
	}
	delete(m.nodes, no)
	return nil
}

// LineExists reports whether a two-node line joins a and b in either direction
func (m *Model) LineExists(a, b int) bool {
	for _, l := range m.lines {
		if len(l.Nodes) != 2 {
			continue
		}
		if (l.Nodes[0] == a && l.Nodes[1] == b) || (l.Nodes[0] == b && l.Nodes[1] == a) {
			return true
		}
	}
	return false
}

// NodeAt returns the lowest-numbered node lying within tol of pos on every axis
func (m *Model) NodeAt(pos r3.Vec, tol float64) (Node, bool) {
	for _, n := range m.Nodes() {
		if math.Abs(n.X-pos.X) < tol && math.Abs(n.Y-pos.Y) < tol && math.Abs(n.Z-pos.Z) < tol {
			return n, true
		}
	}
	return Node{}, false
}

package model

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// Node is a numbered point of the model (coordinates in metres)
type Node struct {
	No int     `json:"no" yaml:"no"`
	X  float64 `json:"x" yaml:"x"`
	Y  float64 `json:"y" yaml:"y"`
	Z  float64 `json:"z" yaml:"z"`
}

// Pos returns the node coordinates as a vector
func (n Node) Pos() r3.Vec {
	return r3.Vec{X: n.X, Y: n.Y, Z: n.Z}
}

// Line is a polyline through its definition nodes.
// Straight lines have exactly two nodes.
type Line struct {
	No    int   `json:"no" yaml:"no"`
	Nodes []int `json:"nodes" yaml:"nodes"`
}


// Material is a named material definition
type Material struct {
	No   int    `json:"no" yaml:"no"`
	Name string `json:"name" yaml:"name"`
}

// Thickness is a uniform plate thickness of a material
type Thickness struct {
	No       int     `json:"no" yaml:"no"`
	Name     string  `json:"name" yaml:"name"`
	Material int     `json:"material" yaml:"material"`
	Uniform  float64 `json:"uniform" yaml:"uniform"` // m
}

// Surface is a plate bounded by an ordered loop of lines
type Surface struct {
	No        int   `json:"no" yaml:"no"`
	Boundary  []int `json:"boundary" yaml:"boundary"`
	Thickness int   `json:"thickness" yaml:"thickness"`
}

// NodalSupport restrains translations and rotations of nodes.
// Index 0, 1, 2 of each array are the global X, Y, Z axes.
type NodalSupport struct {
	No          int     `json:"no" yaml:"no"`
	Nodes       []int   `json:"nodes" yaml:"nodes"`
	Translation [3]bool `json:"translation" yaml:"translation"`
	Rotation    [3]bool `json:"rotation" yaml:"rotation"`
	Label       string  `json:"label,omitempty" yaml:"label,omitempty"`
}

// LoadCase groups loads
type LoadCase struct {
	No   int    `json:"no" yaml:"no"`
	Name string `json:"name" yaml:"name"`
}

// Surface load distributions and directions
const (
	DistributionUniform = "UNIFORM"
	DirectionGlobalY    = "GLOBAL_Y_OR_USER_DEFINED_V_TRUE"
)

// SurfaceLoad is a force per area applied to surfaces
type SurfaceLoad struct {
	No           int     `json:"no" yaml:"no"`
	LoadCase     int     `json:"load_case" yaml:"load_case"`
	Surfaces     []int   `json:"surfaces" yaml:"surfaces"`
	Distribution string  `json:"distribution" yaml:"distribution"`
	Magnitude    float64 `json:"magnitude" yaml:"magnitude"` // kN/m²
	Direction    string  `json:"direction" yaml:"direction"`
}

// Errors
var (
	ErrNodeInUse   = errors.New("node is referenced by another object")
	ErrNotFound    = errors.New("object not found")
	ErrBadNodeList = errors.New("unrecognized node list")
)

// ReferenceError is returned when an object refers to a missing object
type ReferenceError struct {
	Kind   string // kind of the object being added
	No     int
	Target string // kind of the missing object
	Ref    int
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %d: %s %d does not exist", e.Kind, e.No, e.Target, e.Ref)
}

// NumberInUseError is returned when adding an object under a taken number
type NumberInUseError struct {
	Kind string
	No   int
}

func (e *NumberInUseError) Error() string {
	return fmt.Sprintf("%s %d already exists", e.Kind, e.No)
}

// ValidationError represents an invalid object definition
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

package connect

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultMaxDegree is the number of edges a point may carry when
// Options.MaxDegree is not set
const DefaultMaxDegree = 2

// ErrInsufficientInput is returned when fewer than two points are supplied
var ErrInsufficientInput = errors.New("at least 2 points are required")

// Point is an identified 3D coordinate
type Point struct {
	ID  int
	Pos r3.Vec
}

// Edge is an undirected connection between two points
type Edge struct {
	A int
	B int
}

// Key returns the edge with its ends in ascending order, so that
// Edge{2, 1} and Edge{1, 2} share the same key
func (e Edge) Key() Edge {
	if e.A > e.B {
		return Edge{A: e.B, B: e.A}
	}
	return e
}

// Same reports whether both edges join the same two points
func (e Edge) Same(o Edge) bool {
	return e.Key() == o.Key()
}

func (e Edge) String() string {
	return fmt.Sprintf("(%d,%d)", e.A, e.B)
}

// Pair is a candidate connection between two distinct points
type Pair struct {
	A        int
	B        int
	Distance float64
}

// Edge returns the pair as an edge
func (p Pair) Edge() Edge {
	return Edge{A: p.A, B: p.B}
}

// Options controls a Connect call
type Options struct {
	// Existing edges are treated as already realized. They are never
	// re-emitted and do not count toward a point's degree.
	Existing []Edge

	// MaxDegree caps the edges touching any point (DefaultMaxDegree if <= 0)
	MaxDegree int
}

// Result holds the output of a Connect call
type Result struct {
	// Edges in the order they were produced
	Edges []Edge

	// Degree is the final edge count per input point
	Degree map[int]int

	// Furthest is the pair excluded from the output
	Furthest Pair

	// Candidates sorted by ascending distance
	Candidates []Pair
}

// Saturated reports whether every point reached max edges
func (r *Result) Saturated(maxDegree int) bool {
	if maxDegree <= 0 {
		maxDegree = DefaultMaxDegree
	}
	for _, d := range r.Degree {
		if d < maxDegree {
			return false
		}
	}
	return true
}

// DuplicateIDError is returned when two input points share an ID
type DuplicateIDError struct {
	ID int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate point id %d", e.ID)
}

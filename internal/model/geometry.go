package model

import (
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/alexiusacademia/goglass/internal/connect"
)

// SurfaceCorners returns the distinct definition nodes of a surface's
// boundary lines, in boundary order. Missing lines and nodes are skipped.
func (m *Model) SurfaceCorners(no int) ([]Node, error) {
	s, ok := m.surfaces[no]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "surface %d", no)
	}

	seen := map[int]bool{}
	var corners []Node
	for _, lineNo := range s.Boundary {
		l, ok := m.lines[lineNo]
		if !ok {
			klog.Warningf("surface %d: line %d not found, skipping", no, lineNo)
			continue
		}
		for _, nodeNo := range l.Nodes {
			if seen[nodeNo] {
				continue
			}
			seen[nodeNo] = true
			if n, ok := m.nodes[nodeNo]; ok {
				corners = append(corners, *n)
			}
		}
	}
	return corners, nil
}

// Edges returns every two-node line as an undirected edge
func (m *Model) Edges() []connect.Edge {
	var edges []connect.Edge
	for _, l := range m.Lines() {
		if len(l.Nodes) == 2 {
			edges = append(edges, connect.Edge{A: l.Nodes[0], B: l.Nodes[1]})
		}
	}
	return edges
}

// Points returns the listed nodes as connector points, in list order.
// Numbers with no node are skipped with a warning. An empty list selects
// every node.
func (m *Model) Points(list []int) []connect.Point {
	if len(list) == 0 {
		points := make([]connect.Point, 0, len(m.nodes))
		for _, n := range m.Nodes() {
			points = append(points, connect.Point{ID: n.No, Pos: n.Pos()})
		}
		return points
	}

	points := make([]connect.Point, 0, len(list))
	for _, no := range list {
		n, ok := m.nodes[no]
		if !ok {
			klog.Warningf("node %d does not exist, skipping", no)
			continue
		}
		points = append(points, connect.Point{ID: n.No, Pos: n.Pos()})
	}
	return points
}

package generate

import (
	"fmt"

	"github.com/alexiusacademia/goglass/internal/model"
)

// GridSpec describes a grid of equal rectangular panels
type GridSpec struct {
	PanelWidth  float64 // m
	PanelHeight float64 // m
	Rows        int
	Cols        int
}

// GridResult lists the objects created by Grid
type GridResult struct {
	Nodes []model.Node
	Lines []model.Line
}

// Validate checks the grid parameters
func (s GridSpec) Validate() error {
	if s.PanelWidth <= 0 || s.PanelHeight <= 0 {
		return &SpecError{fmt.Sprintf("panel dimensions must be positive (got %g x %g)", s.PanelWidth, s.PanelHeight)}
	}
	if s.Rows < 1 || s.Cols < 1 {
		return &SpecError{fmt.Sprintf("grid needs at least one row and one column (got %d x %d)", s.Rows, s.Cols)}
	}
	return nil
}

// Grid clears the model and creates the nodes and lines of a panel grid.
//
// Nodes are numbered row by row from the bottom left, node (row, col)
// sitting at (col·w, 0, row·h). Horizontal lines come first, row by row,
// then vertical lines, column by column. A line shared by two panels is
// created once.
func Grid(m *model.Model, spec GridSpec) (*GridResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	m.Clear()
	res := &GridResult{}

	nodeNo := 1
	for row := 0; row <= spec.Rows; row++ {
		for col := 0; col <= spec.Cols; col++ {
			n, err := m.AddNode(nodeNo, float64(col)*spec.PanelWidth, 0, float64(row)*spec.PanelHeight)
			if err != nil {
				return nil, err
			}
			res.Nodes = append(res.Nodes, n)
			nodeNo++
		}
	}

	nodesPerRow := spec.Cols + 1
	lineNo := 1
	addLine := func(a, b int) error {
		l, err := m.AddLine(lineNo, a, b)
		if err != nil {
			return err
		}
		res.Lines = append(res.Lines, l)
		lineNo++
		return nil
	}

	for row := 0; row <= spec.Rows; row++ {
		for col := 0; col < spec.Cols; col++ {
			base := row*nodesPerRow + col + 1
			if err := addLine(base, base+1); err != nil {
				return nil, err
			}
		}
	}
	for col := 0; col <= spec.Cols; col++ {
		for row := 0; row < spec.Rows; row++ {
			base := row*nodesPerRow + col + 1
			if err := addLine(base, base+nodesPerRow); err != nil {
				return nil, err
			}
		}
	}

	return res, nil
}

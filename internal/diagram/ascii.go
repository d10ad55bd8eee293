package diagram

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexiusacademia/goglass/internal/connect"
	"github.com/alexiusacademia/goglass/internal/model"
)

// Elevation drawing characters
const (
	glyphLine      = '·'
	glyphHighlight = '#'
	glyphNode      = 'o'
	glyphSupport   = '▲'
)

// ElevationOptions controls DrawElevation
type ElevationOptions struct {
	// Size of the drawing area in characters
	Width  int
	Height int

	// Highlight lists edges drawn with a heavier glyph (e.g. new lines)
	Highlight []connect.Edge

	// Labels writes node numbers next to nodes
	Labels bool
}

// DrawElevation creates an ASCII elevation of the model, X to the right
// and Z upward. Supported nodes are drawn as ▲.
func DrawElevation(m *model.Model, opts ElevationOptions) string {
	if opts.Width < 10 {
		opts.Width = 60
	}
	if opts.Height < 5 {
		opts.Height = 20
	}

	nodes := m.Nodes()
	if len(nodes) == 0 {
		return "\n  (empty model)\n"
	}

	minX, maxX := nodes[0].X, nodes[0].X
	minZ, maxZ := nodes[0].Z, nodes[0].Z
	for _, n := range nodes {
		minX = math.Min(minX, n.X)
		maxX = math.Max(maxX, n.X)
		minZ = math.Min(minZ, n.Z)
		maxZ = math.Max(maxZ, n.Z)
	}

	// Keep the aspect ratio, with characters about twice as tall as wide
	spanX := maxX - minX
	spanZ := maxZ - minZ
	scale := math.Inf(1)
	if spanX > 0 {
		scale = math.Min(scale, float64(opts.Width-1)/spanX)
	}
	if spanZ > 0 {
		scale = math.Min(scale, float64(opts.Height-1)*2/spanZ)
	}
	if math.IsInf(scale, 1) {
		scale = 1
	}

	canvas := newCanvas(opts.Width, opts.Height)
	toCell := func(x, z float64) (int, int) {
		col := int(math.Round((x - minX) * scale))
		row := opts.Height - 1 - int(math.Round((z-minZ)*scale/2))
		return col, row
	}

	highlight := map[connect.Edge]bool{}
	for _, e := range opts.Highlight {
		highlight[e.Key()] = true
	}

	for _, l := range m.Lines() {
		glyph := glyphLine
		if len(l.Nodes) == 2 && highlight[connect.Edge{A: l.Nodes[0], B: l.Nodes[1]}.Key()] {
			glyph = glyphHighlight
		}
		for i := 1; i < len(l.Nodes); i++ {
			a, okA := m.Node(l.Nodes[i-1])
			b, okB := m.Node(l.Nodes[i])
			if !okA || !okB {
				continue
			}
			c0, r0 := toCell(a.X, a.Z)
			c1, r1 := toCell(b.X, b.Z)
			canvas.line(c0, r0, c1, r1, glyph)
		}
	}

	supported := map[int]bool{}
	for _, s := range m.Supports() {
		for _, n := range s.Nodes {
			supported[n] = true
		}
	}
	for _, n := range nodes {
		col, row := toCell(n.X, n.Z)
		glyph := glyphNode
		if supported[n.No] {
			glyph = glyphSupport
		}
		canvas.set(col, row, glyph)
		if opts.Labels {
			canvas.text(col+1, row, strconv.Itoa(n.No))
		}
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  ELEVATION (X: %.3f to %.3f m, Z: %.3f to %.3f m)\n", minX, maxX, minZ, maxZ))
	sb.WriteString("  " + strings.Repeat("─", opts.Width+2) + "\n")
	for _, row := range canvas.rows {
		sb.WriteString("  │" + string(row) + "│\n")
	}
	sb.WriteString("  " + strings.Repeat("─", opts.Width+2) + "\n")
	sb.WriteString("  Legend: o node  ▲ supported node  · line")
	if len(opts.Highlight) > 0 {
		sb.WriteString("  # new line")
	}
	sb.WriteString("\n")
	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

type canvas struct {
	rows [][]rune
}

func newCanvas(width, height int) *canvas {
	c := &canvas{rows: make([][]rune, height)}
	for i := range c.rows {
		c.rows[i] = []rune(strings.Repeat(" ", width))
	}
	return c
}

func (c *canvas) set(col, row int, r rune) {
	if row < 0 || row >= len(c.rows) || col < 0 || col >= len(c.rows[row]) {
		return
	}
	c.rows[row][col] = r
}

func (c *canvas) text(col, row int, s string) {
	for i, r := range s {
		c.set(col+i, row, r)
	}
}

// line draws with Bresenham's algorithm
func (c *canvas) line(c0, r0, c1, r1 int, glyph rune) {
	dc := abs(c1 - c0)
	dr := -abs(r1 - r0)
	sc, sr := 1, 1
	if c0 > c1 {
		sc = -1
	}
	if r0 > r1 {
		sr = -1
	}
	e := dc + dr
	for {
		c.set(c0, r0, glyph)
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

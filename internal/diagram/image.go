package diagram

import (
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/goglass/internal/connect"
	"github.com/alexiusacademia/goglass/internal/model"
)

var (
	colorLine      = color.Black
	colorHighlight = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	colorExcluded  = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	colorNode      = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	colorSupport   = color.RGBA{R: 139, G: 69, B: 19, A: 255}
)

// ExportOptions controls ExportModel
type ExportOptions struct {
	Title string

	// Highlight lists edges drawn thicker and in green (e.g. new lines)
	Highlight []connect.Edge

	// Excluded is drawn as a dashed red line when set, typically the
	// furthest pair left out by the connector
	Excluded *connect.Pair
}

// ExportModel exports an X-Z elevation of the model to an image file.
// The format follows the extension (.png, .svg, .pdf); other names get .png
// appended.
func ExportModel(m *model.Model, opts ExportOptions, filename string) error {
	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = "Glass Model " + m.Name
	}
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Z (m)"

	highlight := map[connect.Edge]bool{}
	for _, e := range opts.Highlight {
		highlight[e.Key()] = true
	}

	// Lines
	for _, l := range m.Lines() {
		var pts plotter.XYs
		for _, no := range l.Nodes {
			n, ok := m.Node(no)
			if !ok {
				continue
			}
			pts = append(pts, plotter.XY{X: n.X, Y: n.Z})
		}
		if len(pts) < 2 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = colorLine
		if len(l.Nodes) == 2 && highlight[connect.Edge{A: l.Nodes[0], B: l.Nodes[1]}.Key()] {
			line.LineStyle.Width = vg.Points(2.5)
			line.LineStyle.Color = colorHighlight
		}
		p.Add(line)
	}

	// Excluded pair
	if opts.Excluded != nil {
		a, okA := m.Node(opts.Excluded.A)
		b, okB := m.Node(opts.Excluded.B)
		if okA && okB {
			line, err := plotter.NewLine(plotter.XYs{{X: a.X, Y: a.Z}, {X: b.X, Y: b.Z}})
			if err != nil {
				return err
			}
			line.LineStyle.Width = vg.Points(1)
			line.LineStyle.Color = colorExcluded
			line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
			p.Add(line)
		}
	}

	// Nodes and supports
	supported := map[int]bool{}
	for _, s := range m.Supports() {
		for _, n := range s.Nodes {
			supported[n] = true
		}
	}

	nodes := m.Nodes()
	if len(nodes) > 0 {
		var free, fixed plotter.XYs
		labels := plotter.XYLabels{}
		for _, n := range nodes {
			pt := plotter.XY{X: n.X, Y: n.Z}
			if supported[n.No] {
				fixed = append(fixed, pt)
			} else {
				free = append(free, pt)
			}
			labels.XYs = append(labels.XYs, pt)
			labels.Labels = append(labels.Labels, strconv.Itoa(n.No))
		}

		if len(free) > 0 {
			s, err := plotter.NewScatter(free)
			if err != nil {
				return err
			}
			s.GlyphStyle.Color = colorNode
			s.GlyphStyle.Radius = vg.Points(3)
			s.GlyphStyle.Shape = draw.CircleGlyph{}
			p.Add(s)
		}
		if len(fixed) > 0 {
			s, err := plotter.NewScatter(fixed)
			if err != nil {
				return err
			}
			s.GlyphStyle.Color = colorSupport
			s.GlyphStyle.Radius = vg.Points(5)
			s.GlyphStyle.Shape = draw.TriangleGlyph{}
			p.Add(s)
		}

		l, err := plotter.NewLabels(labels)
		if err != nil {
			return err
		}
		for i := range l.TextStyle {
			l.TextStyle[i].XAlign = draw.XLeft
			l.TextStyle[i].YAlign = draw.YBottom
		}
		p.Add(l)
	}

	width := 8 * vg.Inch
	height := 6 * vg.Inch

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "creating %s", dir)
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
	default:
		filename += ".png"
	}
	return errors.Wrapf(p.Save(width, height, filename), "saving %s", filename)
}

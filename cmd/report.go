package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/alexiusacademia/goglass/internal/connect"
	"github.com/alexiusacademia/goglass/internal/model"
	"github.com/alexiusacademia/goglass/internal/store"
)

// out receives every report; tests swap it for a buffer
var out io.Writer = os.Stdout

const rule = "───────────────────────────────────────────────────────────────"

func printBanner(title string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "     %s\n", title)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)
}

func printSection(title string) *tabwriter.Writer {
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, rule)
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func endSection(w *tabwriter.Writer) {
	w.Flush()
	fmt.Fprintln(out)
}

func printNodes(title string, nodes []model.Node) {
	if len(nodes) == 0 {
		return
	}
	w := printSection(title)
	fmt.Fprintln(w, "  No.\tX (m)\tY (m)\tZ (m)")
	for _, n := range nodes {
		fmt.Fprintf(w, "  %d\t%.4f\t%.4f\t%.4f\n", n.No, n.X, n.Y, n.Z)
	}
	endSection(w)
}

func printLines(title string, m *model.Model, lines []model.Line) {
	if len(lines) == 0 {
		return
	}
	w := printSection(title)
	fmt.Fprintln(w, "  No.\tNodes\tLength (m)")
	for _, l := range lines {
		fmt.Fprintf(w, "  %d\t%v\t%.4f\n", l.No, l.Nodes, lineLength(m, l))
	}
	endSection(w)
}

func printSupports(title string, supports []model.NodalSupport) {
	if len(supports) == 0 {
		return
	}
	w := printSection(title)
	fmt.Fprintln(w, "  No.\tNodes\tRole\tFixed (X Y Z)")
	for _, s := range supports {
		fmt.Fprintf(w, "  %d\t%v\t%s\t%s\n", s.No, s.Nodes, s.Label, fixity(s.Translation))
	}
	endSection(w)
}

func fixity(t [3]bool) string {
	var b []byte
	for i, fixed := range t {
		if i > 0 {
			b = append(b, ' ')
		}
		if fixed {
			b = append(b, "✓"...)
		} else {
			b = append(b, '-')
		}
	}
	return string(b)
}

func lineLength(m *model.Model, l model.Line) float64 {
	var length float64
	for i := 1; i < len(l.Nodes); i++ {
		a, okA := m.Node(l.Nodes[i-1])
		b, okB := m.Node(l.Nodes[i])
		if okA && okB {
			length += connect.Distance(a.Pos(), b.Pos())
		}
	}
	return length
}

// withModel loads the working model from the database, runs fn on it and
// saves it back. When create is set a missing model starts out empty.
// Nothing is written when save is false.
func withModel(ctx context.Context, create, save bool, fn func(m *model.Model) error) error {
	s, err := store.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer s.Close()

	m, err := s.Load(ctx, cfg.Model)
	switch {
	case errors.Is(err, store.ErrNotFound) && create:
		klog.V(1).Infof("model %q not found in %s, starting a new one", cfg.Model, cfg.DB)
		m = model.New(cfg.Model)
	case err != nil:
		return err
	}

	if err := fn(m); err != nil {
		return err
	}
	if !save {
		return nil
	}
	if err := s.Save(ctx, m); err != nil {
		return err
	}
	klog.V(1).Infof("saved model %q to %s", m.Name, cfg.DB)
	return nil
}

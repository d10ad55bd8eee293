package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goglass/internal/diagram"
	"github.com/alexiusacademia/goglass/internal/generate"
	"github.com/alexiusacademia/goglass/internal/model"
)

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Generate a single rectangular glass panel",
	Long: `Replace the working model with one rectangular glass panel in
the X-Z plane: four corner nodes, four boundary lines, a glass
material, a uniform thickness and the surface itself.

Examples:
  # Default 1.5 x 3.0 m panel, 16 mm thick
  goglass panel

  # 1.2 x 2.4 m panel of 12 mm glass in model "lobby"
  goglass panel --width 1.2 --height 2.4 -t 0.012 -m lobby`,
	Args: cobra.NoArgs,
	RunE: runPanel,
}

func init() {
	rootCmd.AddCommand(panelCmd)

	f := panelCmd.Flags()
	f.Float64P("width", "b", generate.DefaultPanelWidth, "Panel width along X (m)")
	f.Float64("height", generate.DefaultPanelHeight, "Panel height along Z (m)")
	f.Float64P("thickness", "t", generate.DefaultThickness, "Glass thickness (m)")
	f.String("material", generate.DefaultMaterial, "Glass material name")

	bindFlag(f, "width", "panel.width")
	bindFlag(f, "height", "panel.height")
	bindFlag(f, "thickness", "panel.thickness")
	bindFlag(f, "material", "panel.material")
}

func runPanel(cmd *cobra.Command, args []string) error {
	return withModel(cmd.Context(), true, true, func(m *model.Model) error {
		res, err := generate.Panel(m, generate.PanelSpec{
			Width:        cfg.Panel.Width,
			Height:       cfg.Panel.Height,
			Thickness:    cfg.Panel.Thickness,
			MaterialName: cfg.Panel.Material,
		})
		if err != nil {
			return err
		}

		printBanner("GLASS PANEL - " + m.Name)

		w := printSection("INPUT DATA:")
		fmt.Fprintf(w, "  Width (X):\t%.3f m\n", cfg.Panel.Width)
		fmt.Fprintf(w, "  Height (Z):\t%.3f m\n", cfg.Panel.Height)
		fmt.Fprintf(w, "  Thickness:\t%.1f mm\n", res.Thickness.Uniform*1000)
		fmt.Fprintf(w, "  Material:\t%s\n", res.Material.Name)
		endSection(w)

		printNodes("NODES:", res.Nodes)
		printLines("LINES:", m, res.Lines)

		fmt.Fprint(out, diagram.DrawSummaryBox("SURFACE "+fmt.Sprint(res.Surface.No), []string{
			fmt.Sprintf("Boundary lines: %v", res.Surface.Boundary),
			fmt.Sprintf("Area: %.3f m²", cfg.Panel.Width*cfg.Panel.Height),
		}))
		fmt.Fprintln(out)
		return nil
	})
}

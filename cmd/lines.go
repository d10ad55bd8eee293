package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goglass/internal/connect"
	"github.com/alexiusacademia/goglass/internal/diagram"
	"github.com/alexiusacademia/goglass/internal/model"
)

var linesCmd = &cobra.Command{
	Use:   "lines",
	Short: "Join nodes with lines between nearest neighbours",
	Long: `Create straight lines between the closest pairs of the selected
nodes, shortest first, until every node carries --max-degree lines.

  - The two nodes furthest apart are never joined.
  - Node pairs already joined by a line are skipped; existing lines do
    not count toward a node's line limit.

Node lists:
  (empty)   every node of the model
  1-8       a range (8-1 works too)
  1,4,6,9   a list
  5         a single node (nothing to connect)

Examples:
  goglass lines --nodes 5-8
  goglass lines --nodes 1,2,3,4 --max-degree 3 --chart
  goglass lines --nodes 5-8 --dry-run --plot out/lines.png`,
	Args: cobra.NoArgs,
	RunE: runLines,
}

func init() {
	rootCmd.AddCommand(linesCmd)

	f := linesCmd.Flags()
	f.StringP("nodes", "n", "", "Nodes to connect (range, list or empty for all)")
	f.IntP("max-degree", "d", connect.DefaultMaxDegree, "Maximum new lines per node")
	f.Bool("chart", false, "Print a chart of candidate pair distances")
	f.Bool("elevation", false, "Print an ASCII elevation with the new lines")
	f.String("plot", "", "Export a drawing of the result (png, svg or pdf)")
	f.Bool("dry-run", false, "Report the lines without saving them")

	bindFlag(f, "max-degree", "lines.max_degree")
}

func runLines(cmd *cobra.Command, args []string) error {
	nodeList, _ := cmd.Flags().GetString("nodes")
	showChart, _ := cmd.Flags().GetBool("chart")
	showElevation, _ := cmd.Flags().GetBool("elevation")
	plotFile, _ := cmd.Flags().GetString("plot")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	list, err := model.ParseNodeList(nodeList)
	if err != nil {
		return err
	}

	return withModel(cmd.Context(), false, !dryRun, func(m *model.Model) error {
		report, err := m.ConnectNodes(list, cfg.Lines.MaxDegree)
		if err != nil {
			return err
		}
		res := report.Result

		printBanner("NEAREST NEIGHBOUR LINES - " + m.Name)

		w := printSection("INPUT DATA:")
		if len(list) == 0 {
			fmt.Fprintf(w, "  Nodes:\tall (%d)\n", len(res.Degree))
		} else {
			fmt.Fprintf(w, "  Nodes:\t%s (%d)\n", nodeList, len(res.Degree))
		}
		fmt.Fprintf(w, "  Max lines per node:\t%d\n", cfg.Lines.MaxDegree)
		fmt.Fprintf(w, "  Candidate pairs:\t%d\n", len(res.Candidates))
		fmt.Fprintf(w, "  Furthest pair (skipped):\t%s  %.4f m\n", res.Furthest.Edge(), res.Furthest.Distance)
		fmt.Fprintf(w, "  Pairs already joined:\t%d\n", len(report.Joined))
		endSection(w)

		printLines("NEW LINES:", m, report.Lines)

		w = printSection("LINES PER NODE:")
		ids := make([]int, 0, len(res.Degree))
		for id := range res.Degree {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			d := res.Degree[id]
			status := "✓"
			if d < cfg.Lines.MaxDegree {
				status = "⚠ below limit"
			}
			fmt.Fprintf(w, "  Node %d:\t%d\t%s\n", id, d, status)
		}
		endSection(w)

		if showChart {
			fmt.Fprint(out, diagram.DrawDistanceChart(res.Candidates, res.Furthest))
			fmt.Fprintln(out)
		}
		if showElevation {
			fmt.Fprint(out, diagram.DrawElevation(m, diagram.ElevationOptions{Highlight: res.Edges, Labels: true}))
			fmt.Fprintln(out)
		}
		if plotFile != "" {
			furthest := res.Furthest
			err := diagram.ExportModel(m, diagram.ExportOptions{
				Title:     "New lines - " + m.Name,
				Highlight: res.Edges,
				Excluded:  &furthest,
			}, plotFile)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "  Drawing exported to %s\n\n", plotFile)
		}

		status := "Saved"
		if dryRun {
			status = "Dry run, nothing saved"
		}
		fmt.Fprint(out, diagram.DrawSummaryBox("LINES CREATED", []string{
			fmt.Sprintf("New lines: %d", len(report.Lines)),
			fmt.Sprintf("All nodes at limit: %t", res.Saturated(cfg.Lines.MaxDegree)),
			status,
		}))
		fmt.Fprintln(out)
		return nil
	})
}

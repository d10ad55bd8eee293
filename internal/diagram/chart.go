package diagram

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/goglass/internal/connect"
)

// DrawDistanceChart plots the candidate pair distances in ascending order,
// as walked by the connector. Returns an empty string for no pairs.
func DrawDistanceChart(pairs []connect.Pair, furthest connect.Pair) string {
	if len(pairs) == 0 {
		return ""
	}

	data := make([]float64, len(pairs))
	for i, p := range pairs {
		data[i] = p.Distance
	}

	caption := fmt.Sprintf("%d candidate pairs (m), furthest %s = %.3f excluded",
		len(pairs), furthest.Edge(), furthest.Distance)

	opts := []asciigraph.Option{
		asciigraph.Height(10),
		asciigraph.Offset(4),
		asciigraph.Caption(caption),
	}
	// asciigraph interpolates to the width, so only widen short series
	if len(data) < 40 {
		opts = append(opts, asciigraph.Width(40))
	}

	return "\n" + asciigraph.Plot(data, opts...) + "\n"
}

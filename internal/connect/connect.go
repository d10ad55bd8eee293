// Package connect joins points with straight edges, closest pairs first,
// while limiting how many edges meet at any point.
package connect

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Connect builds edges between the closest pairs of points.
//
// Every unordered pair is ranked by Euclidean distance and walked once from
// the closest. A pair becomes an edge unless it is the furthest pair of the
// whole set, the two points are already joined, or either point already
// carries opts.MaxDegree edges. Ties in distance keep input order, so the
// output is fully determined by the order of points.
func Connect(points []Point, opts Options) (*Result, error) {
	if len(points) < 2 {
		return nil, ErrInsufficientInput
	}

	maxDegree := opts.MaxDegree
	if maxDegree <= 0 {
		maxDegree = DefaultMaxDegree
	}

	degree := make(map[int]int, len(points))
	for _, p := range points {
		if _, ok := degree[p.ID]; ok {
			return nil, &DuplicateIDError{ID: p.ID}
		}
		degree[p.ID] = 0
	}

	pairs, furthest := candidatePairs(points)

	// Input edges with unknown ends can never match a candidate, so they
	// are kept as-is.
	joined := make(map[Edge]bool, len(opts.Existing)+len(points))
	for _, e := range opts.Existing {
		joined[e.Key()] = true
	}

	result := &Result{
		Degree:     degree,
		Furthest:   furthest,
		Candidates: pairs,
	}

	unsaturated := len(points)
	for _, pair := range pairs {
		if unsaturated == 0 {
			break
		}
		edge := pair.Edge()
		if edge.Same(furthest.Edge()) {
			continue
		}
		if joined[edge.Key()] {
			continue
		}
		if degree[pair.A] >= maxDegree || degree[pair.B] >= maxDegree {
			continue
		}

		result.Edges = append(result.Edges, edge)
		joined[edge.Key()] = true
		for _, id := range []int{pair.A, pair.B} {
			degree[id]++
			if degree[id] == maxDegree {
				unsaturated--
			}
		}
	}

	return result, nil
}

// candidatePairs returns every pair of distinct points sorted by distance,
// and the furthest pair. Enumeration runs i < j over input order; the
// first pair found with the maximum distance is the furthest.
func candidatePairs(points []Point) ([]Pair, Pair) {
	n := len(points)
	pairs := make([]Pair, 0, n*(n-1)/2)

	var furthest Pair
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			p := Pair{
				A:        points[i].ID,
				B:        points[j].ID,
				Distance: Distance(points[i].Pos, points[j].Pos),
			}
			if len(pairs) == 0 || p.Distance > furthest.Distance {
				furthest = p
			}
			pairs = append(pairs, p)
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].Distance < pairs[b].Distance
	})

	return pairs, furthest
}

// Distance is the Euclidean distance between a and b
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

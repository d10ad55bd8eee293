package connect

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func pt(id int, x, y, z float64) Point {
	return Point{ID: id, Pos: r3.Vec{X: x, Y: y, Z: z}}
}

func colinear() []Point {
	return []Point{
		pt(1, 0, 0, 0),
		pt(2, 1, 0, 0),
		pt(3, 2, 0, 0),
		pt(4, 3, 0, 0),
	}
}

func square() []Point {
	return []Point{
		pt(1, 0, 0, 0),
		pt(2, 1, 0, 0),
		pt(3, 1, 0, 1),
		pt(4, 0, 0, 1),
	}
}

func TestConnect(t *testing.T) {
	tests := []struct {
		name         string
		points       []Point
		opts         Options
		wantEdges    []Edge
		wantFurthest Edge
		wantDegree   map[int]int
	}{
		{
			name:         "colinear points chain in order",
			points:       colinear(),
			wantEdges:    []Edge{{1, 2}, {2, 3}, {3, 4}},
			wantFurthest: Edge{1, 4},
			wantDegree:   map[int]int{1: 1, 2: 2, 3: 2, 4: 1},
		},
		{
			name:         "square keeps sides and drops both diagonals",
			points:       square(),
			wantEdges:    []Edge{{1, 2}, {1, 4}, {2, 3}, {3, 4}},
			wantFurthest: Edge{1, 3},
			wantDegree:   map[int]int{1: 2, 2: 2, 3: 2, 4: 2},
		},
		{
			name:         "two points are the furthest pair",
			points:       []Point{pt(7, 0, 0, 0), pt(9, 5, 0, 0)},
			wantEdges:    nil,
			wantFurthest: Edge{7, 9},
			wantDegree:   map[int]int{7: 0, 9: 0},
		},
		{
			name:         "existing edge is not re-emitted",
			points:       colinear(),
			opts:         Options{Existing: []Edge{{2, 1}}},
			wantEdges:    []Edge{{2, 3}, {3, 4}, {2, 4}},
			wantFurthest: Edge{1, 4},
			wantDegree:   map[int]int{1: 0, 2: 2, 3: 2, 4: 2},
		},
		{
			name:   "existing edges with unknown ids are ignored",
			points: colinear(),
			opts: Options{Existing: []Edge{
				{10, 11},
				{3, 3},
			}},
			wantEdges:    []Edge{{1, 2}, {2, 3}, {3, 4}},
			wantFurthest: Edge{1, 4},
			wantDegree:   map[int]int{1: 1, 2: 2, 3: 2, 4: 1},
		},
		{
			name:         "degree cap of one pairs neighbours",
			points:       colinear(),
			opts:         Options{MaxDegree: 1},
			wantEdges:    []Edge{{1, 2}, {3, 4}},
			wantFurthest: Edge{1, 4},
			wantDegree:   map[int]int{1: 1, 2: 1, 3: 1, 4: 1},
		},
		{
			name:         "degree cap of three adds a diagonal",
			points:       square(),
			opts:         Options{MaxDegree: 3},
			wantEdges:    []Edge{{1, 2}, {1, 4}, {2, 3}, {3, 4}, {2, 4}},
			wantFurthest: Edge{1, 3},
			wantDegree:   map[int]int{1: 2, 2: 3, 3: 2, 4: 3},
		},
		{
			name: "ids follow input order, not numeric order",
			points: []Point{
				pt(30, 0, 0, 0),
				pt(10, 1, 0, 0),
				pt(20, 2, 0, 0),
			},
			wantEdges:    []Edge{{30, 10}, {10, 20}},
			wantFurthest: Edge{30, 20},
			wantDegree:   map[int]int{30: 1, 10: 2, 20: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Connect(tt.points, tt.opts)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.wantEdges, got.Edges); diff != "" {
				t.Errorf("edges mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.wantFurthest, got.Furthest.Edge())
			assert.Equal(t, tt.wantDegree, got.Degree)
		})
	}
}

func TestConnect_SquareSaturatesBeforeDiagonal(t *testing.T) {
	got, err := Connect(square(), Options{})
	require.NoError(t, err)

	// (2,4) ties the furthest distance but is not the recorded furthest
	// pair; it is refused only because both ends are full.
	assert.Equal(t, Edge{1, 3}, got.Furthest.Edge())
	for _, e := range got.Edges {
		assert.False(t, e.Same(Edge{2, 4}), "diagonal (2,4) emitted")
	}
	assert.True(t, got.Saturated(DefaultMaxDegree))
	assert.Equal(t, 2, got.Degree[2])
	assert.Equal(t, 2, got.Degree[4])
}

func TestConnect_Errors(t *testing.T) {
	t.Run("single point", func(t *testing.T) {
		_, err := Connect([]Point{pt(1, 0, 0, 0)}, Options{})
		assert.ErrorIs(t, err, ErrInsufficientInput)
	})

	t.Run("no points", func(t *testing.T) {
		_, err := Connect(nil, Options{})
		assert.ErrorIs(t, err, ErrInsufficientInput)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := Connect([]Point{pt(1, 0, 0, 0), pt(2, 1, 0, 0), pt(1, 2, 0, 0)}, Options{})
		var dup *DuplicateIDError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, 1, dup.ID)
	})
}

func TestConnect_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.Intn(30)
		points := make([]Point, n)
		for i := range points {
			points[i] = pt(i+1, rng.Float64()*10, rng.Float64()*10, rng.Float64()*10)
		}
		maxDegree := 1 + rng.Intn(3)

		var existing []Edge
		if n > 3 {
			existing = []Edge{{1, 2}, {3, 4}}
		}

		got, err := Connect(points, Options{Existing: existing, MaxDegree: maxDegree})
		require.NoError(t, err)

		counts := map[int]int{}
		seen := map[Edge]bool{}
		for _, e := range got.Edges {
			assert.NotEqual(t, e.A, e.B, "self edge")
			assert.False(t, e.Same(got.Furthest.Edge()), "furthest pair emitted")
			assert.False(t, seen[e.Key()], "edge %v emitted twice", e)
			for _, x := range existing {
				assert.False(t, e.Same(x), "existing edge %v re-emitted", x)
			}
			seen[e.Key()] = true
			counts[e.A]++
			counts[e.B]++
		}
		for id, c := range counts {
			assert.LessOrEqual(t, c, maxDegree, "point %d", id)
			assert.Equal(t, c, got.Degree[id])
		}

		for _, p := range got.Candidates {
			assert.LessOrEqual(t, p.Distance, got.Furthest.Distance)
		}

		again, err := Connect(points, Options{Existing: existing, MaxDegree: maxDegree})
		require.NoError(t, err)
		if diff := cmp.Diff(got.Edges, again.Edges); diff != "" {
			t.Fatalf("non-deterministic output (-first +second):\n%s", diff)
		}
	}
}

func TestCandidatePairs_StableTies(t *testing.T) {
	pairs, furthest := candidatePairs(square())

	want := []Edge{{1, 2}, {1, 4}, {2, 3}, {3, 4}, {1, 3}, {2, 4}}
	got := make([]Edge, len(pairs))
	for i, p := range pairs {
		got[i] = p.Edge()
	}
	assert.Equal(t, want, got)
	assert.Equal(t, Edge{1, 3}, furthest.Edge())
}

func TestEdge_Key(t *testing.T) {
	assert.Equal(t, Edge{1, 2}, Edge{2, 1}.Key())
	assert.True(t, Edge{5, 3}.Same(Edge{3, 5}))
	assert.False(t, Edge{5, 3}.Same(Edge{3, 6}))
	assert.Equal(t, "(5,3)", Edge{5, 3}.String())
}

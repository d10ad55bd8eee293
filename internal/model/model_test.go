package model

import (
	"path/filepath"
	"testing"

	"github.com/alexiusacademia/goglass/internal/connect"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// panelModel builds a 1.5 x 3.0 panel with one surface
func panelModel(t *testing.T) *Model {
	t.Helper()
	m := New("test")
	for _, n := range []Node{
		{No: 1, X: 0, Y: 0, Z: 0},
		{No: 2, X: 1.5, Y: 0, Z: 0},
		{No: 3, X: 1.5, Y: 0, Z: 3},
		{No: 4, X: 0, Y: 0, Z: 3},
	} {
		_, err := m.AddNode(n.No, n.X, n.Y, n.Z)
		require.NoError(t, err)
	}
	for i, pair := range [][2]int{{1, 2}, {2, 3}, {3, 4}, {4, 1}} {
		_, err := m.AddLine(i+1, pair[0], pair[1])
		require.NoError(t, err)
	}
	_, err := m.AddMaterial(1, "Glass")
	require.NoError(t, err)
	_, err = m.AddThickness(1, "Glass thickness", 1, 0.016)
	require.NoError(t, err)
	_, err = m.AddSurface(1, []int{1, 2, 3, 4}, 1)
	require.NoError(t, err)
	return m
}

func TestModel_Numbering(t *testing.T) {
	m := New("numbering")
	assert.Equal(t, 1, m.NextNodeNo())

	n, err := m.AddNode(0, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n.No)

	_, err = m.AddNode(10, 1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 11, m.NextNodeNo())

	n, err = m.AddNode(0, 2, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 11, n.No)

	_, err = m.AddNode(10, 3, 0, 0)
	var inUse *NumberInUseError
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, 10, inUse.No)
}

func TestModel_References(t *testing.T) {
	m := panelModel(t)

	tests := []struct {
		name   string
		add    func() error
		target string
		ref    int
	}{
		{
			name:   "line to missing node",
			add:    func() error { _, err := m.AddLine(0, 1, 99); return err },
			target: "node",
			ref:    99,
		},
		{
			name:   "surface with missing line",
			add:    func() error { _, err := m.AddSurface(0, []int{1, 2, 42}, 1); return err },
			target: "line",
			ref:    42,
		},
		{
			name:   "surface with missing thickness",
			add:    func() error { _, err := m.AddSurface(0, []int{1, 2, 3}, 7); return err },
			target: "thickness",
			ref:    7,
		},
		{
			name:   "thickness of missing material",
			add:    func() error { _, err := m.AddThickness(0, "x", 5, 0.01); return err },
			target: "material",
			ref:    5,
		},
		{
			name:   "support on missing node",
			add:    func() error { _, err := m.AddSupport(NodalSupport{Nodes: []int{8}}); return err },
			target: "node",
			ref:    8,
		},
		{
			name: "load in missing load case",
			add: func() error {
				_, err := m.AddSurfaceLoad(SurfaceLoad{LoadCase: 3, Surfaces: []int{1}})
				return err
			},
			target: "load case",
			ref:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var refErr *ReferenceError
			require.ErrorAs(t, tt.add(), &refErr)
			assert.Equal(t, tt.target, refErr.Target)
			assert.Equal(t, tt.ref, refErr.Ref)
		})
	}
}

func TestModel_EraseNode(t *testing.T) {
	m := panelModel(t)
	free, err := m.AddNode(0, 0.5, 0, 0.5)
	require.NoError(t, err)

	assert.ErrorIs(t, m.EraseNode(1), ErrNodeInUse)
	assert.ErrorIs(t, m.EraseNode(99), ErrNotFound)

	require.NoError(t, m.EraseNode(free.No))
	_, ok := m.Node(free.No)
	assert.False(t, ok)

	supported, err := m.AddNode(0, 0.7, 0, 0.7)
	require.NoError(t, err)
	_, err = m.AddSupport(NodalSupport{Nodes: []int{supported.No}})
	require.NoError(t, err)
	assert.ErrorIs(t, m.EraseNode(supported.No), ErrNodeInUse)
}

func TestModel_LineExists(t *testing.T) {
	m := panelModel(t)
	assert.True(t, m.LineExists(1, 2))
	assert.True(t, m.LineExists(2, 1))
	assert.True(t, m.LineExists(1, 4))
	assert.False(t, m.LineExists(1, 3))
}

func TestModel_NodeAt(t *testing.T) {
	m := panelModel(t)

	n, ok := m.NodeAt(r3.Vec{X: 1.5004, Y: 0, Z: 2.9995}, 0.001)
	require.True(t, ok)
	assert.Equal(t, 3, n.No)

	_, ok = m.NodeAt(r3.Vec{X: 1.502, Y: 0, Z: 3}, 0.001)
	assert.False(t, ok)
}

func TestModel_SurfaceCorners(t *testing.T) {
	m := panelModel(t)

	corners, err := m.SurfaceCorners(1)
	require.NoError(t, err)
	got := make([]int, len(corners))
	for i, c := range corners {
		got[i] = c.No
	}
	assert.Equal(t, []int{1, 2, 3, 4}, got)

	_, err = m.SurfaceCorners(9)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "surface 9: object not found")
}

func TestModel_ConnectNodes(t *testing.T) {
	m := New("connect")
	for i := 0; i < 4; i++ {
		_, err := m.AddNode(0, float64(i), 0, 0)
		require.NoError(t, err)
	}
	_, err := m.AddNode(0, 100, 0, 0)
	require.NoError(t, err)
	_, err = m.AddLine(0, 1, 2)
	require.NoError(t, err)

	report, err := m.ConnectNodes([]int{1, 2, 3, 4, 77}, 2)
	require.NoError(t, err)

	want := []connect.Edge{{A: 2, B: 3}, {A: 3, B: 4}, {A: 2, B: 4}}
	if diff := cmp.Diff(want, report.Result.Edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, report.Lines, 3)
	assert.Equal(t, 2, report.Lines[0].No)
	assert.Equal(t, []int{2, 3}, report.Lines[0].Nodes)
	assert.Equal(t, 4, report.Lines[2].No)
	assert.True(t, m.LineExists(4, 2))
	assert.Equal(t, 4, m.Counts().Lines)
	assert.Equal(t, []connect.Edge{{A: 1, B: 2}}, report.Joined)
}

func TestModel_ConnectNodes_AllNodes(t *testing.T) {
	m := New("all")
	for _, p := range [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}} {
		_, err := m.AddNode(0, p[0], p[1], p[2])
		require.NoError(t, err)
	}

	report, err := m.ConnectNodes(nil, 0)
	require.NoError(t, err)
	assert.Len(t, report.Lines, 4)
	assert.Equal(t, connect.Edge{A: 1, B: 3}, report.Result.Furthest.Edge())
	assert.False(t, m.LineExists(1, 3))
	assert.False(t, m.LineExists(2, 4))

	// Lines already in the model are skipped but do not use up a node's
	// capacity, so a second run adds the remaining diagonal.
	again, err := m.ConnectNodes(nil, 0)
	require.NoError(t, err)
	require.Len(t, again.Lines, 1)
	assert.Equal(t, []int{2, 4}, again.Lines[0].Nodes)
	assert.Len(t, again.Joined, 4)
	assert.Empty(t, report.Joined)
}

func TestModel_ConnectNodes_Errors(t *testing.T) {
	m := panelModel(t)

	_, err := m.ConnectNodes([]int{1, 50}, 2)
	assert.ErrorIs(t, err, connect.ErrInsufficientInput)

	_, err = m.ConnectNodes([]int{1, 2, 1}, 2)
	var dup *connect.DuplicateIDError
	assert.ErrorAs(t, err, &dup)
}

func TestModel_FileRoundTrip(t *testing.T) {
	m := panelModel(t)
	lc, err := m.AddLoadCase(0, "Wind")
	require.NoError(t, err)
	_, err = m.AddSurfaceLoad(SurfaceLoad{LoadCase: lc.No, Surfaces: []int{1}, Magnitude: 1.5, Direction: DirectionGlobalY})
	require.NoError(t, err)
	_, err = m.AddSupport(NodalSupport{Nodes: []int{1}, Translation: [3]bool{true, true, true}, Label: "PINNED"})
	require.NoError(t, err)

	for _, name := range []string{"model.json", "nested/model.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, m.SaveToFile(path))

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			if diff := cmp.Diff(m.Document(), loaded.Document()); diff != "" {
				t.Errorf("document mismatch (-saved +loaded):\n%s", diff)
			}
		})
	}
}

func TestFromDocument_RejectsDanglingLine(t *testing.T) {
	_, err := FromDocument(Document{
		Name:  "bad",
		Nodes: []Node{{No: 1}},
		Lines: []Line{{No: 1, Nodes: []int{1, 2}}},
	})
	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, 2, refErr.Ref)
}

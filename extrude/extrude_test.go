package extrude_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/centria3d/letterlib/extrude"
	"github.com/centria3d/letterlib/render"
)

func squarePoints() []r2.Vec {
	return []r2.Vec{
		{X: 0, Y: 0},
		{X: 0, Y: 10},
		{X: 10, Y: 10},
		{X: 10, Y: 0},
	}
}

// lPoints is a concave hexagonal outline.
func lPoints() []r2.Vec {
	return []r2.Vec{
		{X: 0, Y: 0},
		{X: 0, Y: 4},
		{X: 6, Y: 4},
		{X: 6, Y: 10},
		{X: 10, Y: 10},
		{X: 10, Y: 0},
	}
}

func TestSolidSquare(t *testing.T) {
	m, err := extrude.Solid(squarePoints(), 3.5, 40)
	require.NoError(t, err)
	assert.Equal(t, 8, m.VertexCount(), "two rings of the input polyline")
	// 8 wall triangles plus 2 fan triangles per cap.
	assert.Equal(t, 12, m.FaceCount())

	bounds := m.Bounds()
	assert.InDelta(t, -40, bounds.Min.X, 1e-9)
	assert.InDelta(t, 40, bounds.Max.X, 1e-9)
	assert.InDelta(t, -40, bounds.Min.Y, 1e-9)
	assert.InDelta(t, 40, bounds.Max.Y, 1e-9)
	assert.InDelta(t, 0, bounds.Min.Z, 1e-9)
	assert.InDelta(t, 3.5, bounds.Max.Z, 1e-9)

	assertClosed(t, m)
	assert.Greater(t, signedVolume(m), 0.0, "outward winding means positive volume")
}

func TestSolidConcave(t *testing.T) {
	m, err := extrude.Solid(lPoints(), 5.5, 40)
	require.NoError(t, err)
	assert.Equal(t, 12, m.VertexCount())
	assertClosed(t, m)
	assert.Greater(t, signedVolume(m), 0.0)
}

func TestSolidInsufficientPoints(t *testing.T) {
	_, err := extrude.Solid(squarePoints()[:2], 3.5, 40)
	require.ErrorIs(t, err, extrude.ErrInsufficientPoints)
	_, err = extrude.Solid(nil, 3.5, 40)
	require.ErrorIs(t, err, extrude.ErrInsufficientPoints)
}

func TestSolidDeterministic(t *testing.T) {
	a, err := extrude.Solid(lPoints(), 4.5, 40)
	require.NoError(t, err)
	b, err := extrude.Solid(lPoints(), 4.5, 40)
	require.NoError(t, err)
	assert.Equal(t, a.Vertices(), b.Vertices())
	assert.Equal(t, a.Faces(), b.Faces())
}

func TestSolidImageAxisFlip(t *testing.T) {
	// Input points are (row, col); the column axis must come out negated.
	m, err := extrude.Solid(squarePoints(), 1, 40)
	require.NoError(t, err)
	first := m.Vertices()[0] // input (0,0), centered at (-5,-5), scaled by 8
	assert.InDelta(t, -40, first.X, 1e-9)
	assert.InDelta(t, 40, first.Y, 1e-9)
}

func TestMeshScale(t *testing.T) {
	m, err := extrude.Solid(squarePoints(), 2, 40)
	require.NoError(t, err)
	m.Scale(1.5)
	bounds := m.Bounds()
	assert.InDelta(t, 60, bounds.Max.X, 1e-9)
	assert.InDelta(t, 3, bounds.Max.Z, 1e-9)
}

func TestMeshStreaming(t *testing.T) {
	m, err := extrude.Solid(squarePoints(), 2, 40)
	require.NoError(t, err)
	tris, err := render.RenderAll(m)
	require.NoError(t, err)
	assert.Len(t, tris, m.FaceCount())
	// The stream is exhausted until rewound.
	again, err := render.RenderAll(m)
	require.NoError(t, err)
	assert.Empty(t, again)
	m.Reset()
	rewound, err := render.RenderAll(m)
	require.NoError(t, err)
	assert.Len(t, rewound, m.FaceCount())
	assert.Equal(t, tris, m.Triangles())
}

// assertClosed verifies every directed edge is paired with its twin, the
// watertightness invariant STL slicers rely on.
func assertClosed(t *testing.T, m *extrude.Mesh) {
	t.Helper()
	directed := make(map[[2]int]int)
	for _, f := range m.Faces() {
		for e := 0; e < 3; e++ {
			directed[[2]int{f[e], f[(e+1)%3]}]++
		}
	}
	for edge, n := range directed {
		require.Equal(t, 1, n, "edge %v repeated within one orientation", edge)
		require.Equal(t, 1, directed[[2]int{edge[1], edge[0]}], "edge %v has no twin", edge)
	}
}

func signedVolume(m *extrude.Mesh) float64 {
	vol := 0.0
	verts := m.Vertices()
	for _, f := range m.Faces() {
		vol += r3.Dot(verts[f[0]], r3.Cross(verts[f[1]], verts[f[2]]))
	}
	return vol / 6
}

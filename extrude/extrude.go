// Package extrude lifts 2D boundary polylines into closed triangular solids
// ready for STL export.
package extrude

import (
	"errors"
	"io"

	"github.com/centria3d/letterlib/internal/d2"
	"github.com/centria3d/letterlib/internal/d3"
	"github.com/centria3d/letterlib/render"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultTargetWidth is the planar extent in model units (millimeters) the
// polyline is normalized to before extrusion.
const DefaultTargetWidth = 40.0

// ErrInsufficientPoints is returned for polylines that cannot enclose area.
var ErrInsufficientPoints = errors.New("extrude: need at least 3 contour points")

// Mesh is a triangular surface as a vertex list and index triples into it.
// Meshes built by Solid hold exactly two ring copies of the input polyline:
// vertex count is always twice the polyline point count.
type Mesh struct {
	vertices []r3.Vec
	faces    [][3]int
	cursor   int
}

// Solid extrudes a polyline of image-space points (X row, Y column) into a
// closed solid of the given height. The polyline is centered on its
// centroid, scaled so its maximum absolute extent equals targetWidth
// (DefaultTargetWidth when <= 0), and its column axis negated to convert
// from image coordinates to a right-handed model frame. Winding is
// normalized outward and any open rim left by the cap triangulation is
// patched before returning.
func Solid(points []r2.Vec, height, targetWidth float64) (*Mesh, error) {
	n := len(points)
	if n < 3 {
		return nil, ErrInsufficientPoints
	}
	if targetWidth <= 0 {
		targetWidth = DefaultTargetWidth
	}
	coords := make(d2.Set, n)
	copy(coords, points)
	center := coords.Centroid()
	for i := range coords {
		coords[i] = r2.Sub(coords[i], center)
	}
	// A zero extent cannot happen for 3 or more distinct points but is guarded.
	if extent := coords.MaxAbs(); extent > 0 {
		k := targetWidth / extent
		for i := range coords {
			coords[i] = r2.Scale(k, coords[i])
		}
	}

	m := &Mesh{
		vertices: make([]r3.Vec, 0, 2*n),
		faces:    make([][3]int, 0, 4*n-4),
	}
	// Bottom ring at z=0, top ring at z=height, both in polyline order.
	for _, p := range coords {
		m.vertices = append(m.vertices, r3.Vec{X: p.X, Y: -p.Y})
	}
	for _, p := range coords {
		m.vertices = append(m.vertices, r3.Vec{X: p.X, Y: -p.Y, Z: height})
	}
	// Side wall: two triangles per polyline segment, then close the loop.
	for i := 0; i < n-1; i++ {
		m.faces = append(m.faces,
			[3]int{i, i + 1, i + 1 + n},
			[3]int{i, i + 1 + n, i + n})
	}
	m.faces = append(m.faces,
		[3]int{n - 1, 0, n},
		[3]int{n - 1, n, 2*n - 1})
	// Caps by fan triangulation from each ring's first vertex. Valid for
	// the roughly convex outlines of letter strokes; highly concave
	// contours can yield overlapping cap triangles.
	for i := 1; i < n-1; i++ {
		m.faces = append(m.faces,
			[3]int{0, i + 1, i},
			[3]int{n, n + i, n + i + 1})
	}

	m.normalizeWinding()
	m.fillHoles()
	return m, nil
}

// VertexCount returns the number of mesh vertices.
func (m *Mesh) VertexCount() int { return len(m.vertices) }

// FaceCount returns the number of mesh triangles.
func (m *Mesh) FaceCount() int { return len(m.faces) }

// Vertices returns the mesh vertex list. The slice is shared with the mesh.
func (m *Mesh) Vertices() []r3.Vec { return m.vertices }

// Faces returns the mesh triangle index list. The slice is shared with the mesh.
func (m *Mesh) Faces() [][3]int { return m.faces }

// Bounds returns the axis aligned bounding box of the mesh.
func (m *Mesh) Bounds() d3.Box {
	return d3.Set(m.vertices).Bounds()
}

// Scale scales every vertex about the origin, used for print material
// shrinkage compensation.
func (m *Mesh) Scale(k float64) {
	for i := range m.vertices {
		m.vertices[i] = r3.Scale(k, m.vertices[i])
	}
}

func (m *Mesh) triangle(i int) render.Triangle3 {
	f := m.faces[i]
	return render.Triangle3{V: [3]r3.Vec{
		m.vertices[f[0]],
		m.vertices[f[1]],
		m.vertices[f[2]],
	}}
}

// Triangles returns all mesh triangles as vertex triples.
func (m *Mesh) Triangles() []render.Triangle3 {
	tris := make([]render.Triangle3, len(m.faces))
	for i := range m.faces {
		tris[i] = m.triangle(i)
	}
	return tris
}

// ReadTriangles implements render.Renderer so a mesh can be streamed
// straight into render.CreateSTL. Reads continue from the last position;
// use Reset to stream the mesh again.
func (m *Mesh) ReadTriangles(dst []render.Triangle3) (int, error) {
	if len(dst) == 0 {
		panic("cannot write to empty triangle slice")
	}
	if m.cursor >= len(m.faces) {
		return 0, io.EOF
	}
	n := 0
	for n < len(dst) && m.cursor < len(m.faces) {
		dst[n] = m.triangle(m.cursor)
		m.cursor++
		n++
	}
	return n, nil
}

// Reset rewinds the triangle stream to the first face.
func (m *Mesh) Reset() { m.cursor = 0 }

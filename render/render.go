package render

import (
	"io"

	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer is a source of mesh triangles. Implementations yield triangles
// in batches until exhausted, at which point they return io.EOF.
type Renderer interface {
	ReadTriangles(t []Triangle3) (int, error)
}

// Triangle3 is a 3D triangle defined by its three vertices.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the triangle's unit normal following the right hand rule
// on the vertex winding order. Degenerate triangles have a zero normal.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	n := r3.Cross(e1, e2)
	if r3.Norm(n) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(n)
}

// Centroid returns the mean position of the triangle vertices.
func (t Triangle3) Centroid() r3.Vec {
	sum := r3.Add(t.V[0], r3.Add(t.V[1], t.V[2]))
	return r3.Scale(1./3., sum)
}

// Area returns the triangle surface area.
func (t Triangle3) Area() float64 {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	return 0.5 * r3.Norm(r3.Cross(e1, e2))
}

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.ReadAll implementation.
func RenderAll(r Renderer) ([]Triangle3, error) {
	var err error
	var nt int
	result := make([]Triangle3, 0, 1<<12)
	buf := make([]Triangle3, 1024)
	for {
		nt, err = r.ReadTriangles(buf)
		if err != nil {
			break
		}
		result = append(result, buf[:nt]...)
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

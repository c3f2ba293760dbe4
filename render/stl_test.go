package render_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/centria3d/letterlib/extrude"
	"github.com/centria3d/letterlib/render"
)

func testMesh(t *testing.T) *extrude.Mesh {
	t.Helper()
	points := []r2.Vec{
		{X: 0, Y: 0},
		{X: 0, Y: 10},
		{X: 10, Y: 10},
		{X: 10, Y: 0},
	}
	m, err := extrude.Solid(points, 3.5, 40)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSTLCreateWriteRead(t *testing.T) {
	m := testMesh(t)
	path := filepath.Join(t.TempDir(), "box.stl")
	if err := render.CreateSTL(path, m); err != nil {
		t.Fatal(err)
	}
	bfile, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var b bytes.Buffer
	if err := render.WriteSTL(&b, m.Triangles()); err != nil {
		t.Fatal(err)
	}
	if b.Len() != len(bfile) {
		t.Fatal("WriteSTL and CreateSTL output length mismatch")
	}
	if b.String() != string(bfile) {
		t.Fatal("WriteSTL and CreateSTL output mismatch")
	}

	tris, err := render.ReadSTL(bytes.NewReader(bfile))
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) != m.FaceCount() {
		t.Fatalf("read %d triangles, mesh has %d", len(tris), m.FaceCount())
	}
}

func TestWriteSTLEmpty(t *testing.T) {
	var b bytes.Buffer
	if err := render.WriteSTL(&b, nil); err == nil {
		t.Fatal("empty model must not serialize")
	}
}

func TestReadSTLTruncated(t *testing.T) {
	if _, err := render.ReadSTL(bytes.NewReader([]byte("not an stl"))); err == nil {
		t.Fatal("truncated header must fail")
	}
	m := testMesh(t)
	var b bytes.Buffer
	if err := render.WriteSTL(&b, m.Triangles()); err != nil {
		t.Fatal(err)
	}
	if _, err := render.ReadSTL(bytes.NewReader(b.Bytes()[:100])); err == nil {
		t.Fatal("truncated body must fail")
	}
}

package main

import (
	"log"
	"strings"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"

	"github.com/centria3d/letterlib"
)

const (
	// Scale down images relative to Full HD resolution.
	previewScaler           = 0.4
	previewW, previewH      = int(1920. * previewScaler), int(1080. * previewScaler)
	previewFovy             = 30 // vertical field of view in degrees
	previewNear, previewFar = 1, 10
)

// renderPreviews writes a PNG next to each generated STL. Preview failures
// are logged and do not affect the generation outcome.
func renderPreviews(outcomes []letterlib.Outcome) {
	for _, o := range outcomes {
		if !o.OK() {
			continue
		}
		pngPath := strings.TrimSuffix(o.Path, ".stl") + ".png"
		if err := stlToPNG(o.Path, pngPath); err != nil {
			log.Printf("preview %s: %v", o.Path, err)
		}
	}
}

func stlToPNG(stlName, outputname string) error {
	mesh, err := fauxgl.LoadSTL(stlName)
	if err != nil {
		return err
	}
	const scale = 1 // optional supersampling
	var (
		eye    = fauxgl.V(2.4, 2.4, 2.4)              // camera position, iso view
		center = fauxgl.V(0, 0, 0)                    // view center position
		up     = fauxgl.V(0, 0, 1)                    // up vector
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize() // light direction
		color  = fauxgl.HexColor("#468966")           // object color
	)

	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()
	context := fauxgl.NewContext(previewW*scale, previewH*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(previewW) / float64(previewH)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(previewFovy, aspect, previewNear, previewFar)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	image := context.Image()
	image = resize.Resize(uint(previewW), uint(previewH), image, resize.Bilinear)
	return fauxgl.SavePNG(outputname, image)
}

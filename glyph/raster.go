// Package glyph rasterizes single characters into fixed size grayscale
// bitmaps suitable for contour extraction.
package glyph

import (
	"image"
	"image/draw"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/math/fixed"
)

const (
	// ImageSize is the side length in pixels of rasterized glyph bitmaps.
	ImageSize = 300
	// DefaultFontSize is the point size glyphs are rendered at inside the bitmap.
	DefaultFontSize = 200
	// DefaultThreshold is the intensity above which a pixel counts as glyph foreground.
	DefaultThreshold = 128
)

// FontCandidates lists TTF files tried in order when building a Rasterizer.
// A bold, clean sans face gives the sturdiest printed letters. None of these
// resolving is not an error; the embedded Go Bold face is the fallback and
// only affects aesthetics.
var FontCandidates = []string{
	"arialbd.ttf",
	"arial.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
	"C:/Windows/Fonts/arialbd.ttf",
	"C:/Windows/Fonts/arial.ttf",
}

// Rasterizer renders characters white-on-black into square bitmaps.
// It is not safe for concurrent use; the pipeline is sequential.
type Rasterizer struct {
	face font.Face
}

// NewRasterizer builds a Rasterizer at the given font size, trying
// FontCandidates in order and falling back to the embedded Go Bold face,
// which always parses. fontSize <= 0 selects DefaultFontSize.
func NewRasterizer(fontSize float64) *Rasterizer {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	ttf := loadCandidateFont()
	if ttf == nil {
		// gobold.TTF ships with x/image and cannot fail to parse.
		ttf, _ = truetype.Parse(gobold.TTF)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	return &Rasterizer{face: face}
}

func loadCandidateFont() *truetype.Font {
	for _, path := range FontCandidates {
		b, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		ttf, err := truetype.Parse(b)
		if err != nil {
			continue
		}
		return ttf
	}
	return nil
}

// Rasterize renders letter centered into an ImageSize x ImageSize grayscale
// bitmap, glyph white on black. Centering uses the measured string bounding
// box so it is exact regardless of glyph metric quirks.
func (rz *Rasterizer) Rasterize(letter rune) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, ImageSize, ImageSize))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)

	s := string(letter)
	bounds, _ := font.BoundString(rz.face, s)
	w := bounds.Max.X - bounds.Min.X
	h := bounds.Max.Y - bounds.Min.Y
	dot := fixed.Point26_6{
		X: (fixed.I(ImageSize)-w)/2 - bounds.Min.X,
		Y: (fixed.I(ImageSize)-h)/2 - bounds.Min.Y,
	}
	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: rz.face,
		Dot:  dot,
	}
	d.DrawString(s)
	return img
}

// Mask binarizes a grayscale bitmap: pixels with intensity strictly above
// threshold are foreground. Returned rows are indexed [row][col].
func Mask(img *image.Gray, threshold uint8) [][]bool {
	b := img.Bounds()
	mask := make([][]bool, b.Dy())
	for y := 0; y < b.Dy(); y++ {
		row := make([]bool, b.Dx())
		for x := 0; x < b.Dx(); x++ {
			row[x] = img.GrayAt(b.Min.X+x, b.Min.Y+y).Y > threshold
		}
		mask[y] = row
	}
	return mask
}

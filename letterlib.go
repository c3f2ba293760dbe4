// Package letterlib generates 3D-printable STL models for letter glyphs.
// Each letter is rasterized, its longest boundary contour extracted and
// extruded into a watertight solid at a product-variant thickness, then
// exported as one STL file per (letter, variant) pair.
package letterlib

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/centria3d/letterlib/contour"
	"github.com/centria3d/letterlib/extrude"
	"github.com/centria3d/letterlib/glyph"
	"github.com/centria3d/letterlib/matter"
	"github.com/centria3d/letterlib/render"
)

// Variant describes one physical product form of a letter, distinguished
// primarily by extrusion thickness.
type Variant struct {
	Name        string
	Thickness   float64 // extrusion height in millimeters
	Description string
}

// DefaultVariants returns the fixed product table.
func DefaultVariants() []Variant {
	return []Variant{
		{Name: "pin", Thickness: 3.5, Description: "Pin with mounting post"},
		{Name: "magnet", Thickness: 4.5, Description: "Magnet with recess"},
		{Name: "keyring", Thickness: 5.5, Description: "Keyring with reinforced loop"},
		{Name: "cake_mould", Thickness: 10.0, Description: "Cake mould (inverted relief)"},
	}
}

// Letter sets selectable at the command line.
var (
	CentriaLetters = []rune("CENTRIA")
	FullAlphabet   = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
)

// Config collects every knob of the pipeline. It is treated as immutable
// once handed to NewGenerator.
type Config struct {
	// OutputDir is the root directory; each variant gets a subdirectory.
	OutputDir string
	// FontSize in points for glyph rasterization.
	FontSize float64
	// TargetWidth is the planar extent meshes are normalized to, in mm.
	TargetWidth float64
	// Threshold is the bitmap intensity above which a pixel is foreground.
	Threshold uint8
	// MaxContourPoints bounds the polyline length after downsampling.
	MaxContourPoints int
	// Variants is the product table; order is preserved in reports.
	Variants []Variant
	// Compensate applies PLA shrinkage compensation to finished meshes.
	Compensate bool
	// Progress receives per-item progress lines. nil silences them.
	Progress io.Writer
}

// DefaultConfig returns the configuration matching the reference letter
// library: 300x300 bitmaps at font size 200, 40mm letters, four variants.
func DefaultConfig() Config {
	return Config{
		OutputDir:        filepath.Join("Centria_3D_Models", "Letters_Library"),
		FontSize:         glyph.DefaultFontSize,
		TargetWidth:      extrude.DefaultTargetWidth,
		Threshold:        glyph.DefaultThreshold,
		MaxContourPoints: 100,
		Variants:         DefaultVariants(),
		Progress:         os.Stdout,
	}
}

// FileName returns the deterministic model file name for a letter/variant pair.
func FileName(letter rune, variant string) string {
	return fmt.Sprintf("Letter_%c_%s.stl", letter, variant)
}

// Outcome records the result of one (letter, variant) attempt: a generated
// file with its stats, a skip for unusable contours, or a failure.
type Outcome struct {
	Letter   rune
	Variant  string
	Path     string
	Size     int64 // file size in bytes
	Vertices int
	Skipped  bool
	Err      error
}

// OK reports whether the attempt produced a model file.
func (o Outcome) OK() bool { return o.Err == nil && !o.Skipped }

// Generator runs the letter pipeline against a fixed configuration.
type Generator struct {
	cfg    Config
	raster *glyph.Rasterizer
}

// NewGenerator validates cfg and creates the output directory tree. Any
// failure here aborts before a single letter is attempted.
func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("letterlib: empty output directory")
	}
	if len(cfg.Variants) == 0 {
		return nil, fmt.Errorf("letterlib: no variants configured")
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o777); err != nil {
		return nil, fmt.Errorf("letterlib: create output directory: %w", err)
	}
	for _, v := range cfg.Variants {
		if v.Name == "" || v.Thickness <= 0 {
			return nil, fmt.Errorf("letterlib: invalid variant %+v", v)
		}
		if err := os.MkdirAll(filepath.Join(cfg.OutputDir, v.Name), 0o777); err != nil {
			return nil, fmt.Errorf("letterlib: create variant directory %s: %w", v.Name, err)
		}
	}
	if cfg.Progress == nil {
		cfg.Progress = io.Discard
	}
	return &Generator{
		cfg:    cfg,
		raster: glyph.NewRasterizer(cfg.FontSize),
	}, nil
}

// GenerateSet runs every letter of the set through all variants, strictly
// sequentially, and returns one Outcome per (letter, variant) attempt.
// Per-item failures never abort the batch.
func (g *Generator) GenerateSet(letters []rune) []Outcome {
	outcomes := make([]Outcome, 0, len(letters)*len(g.cfg.Variants))
	for _, letter := range letters {
		outcomes = append(outcomes, g.GenerateLetter(letter)...)
	}
	return outcomes
}

// GenerateLetter attempts all configured variants for one letter.
func (g *Generator) GenerateLetter(letter rune) []Outcome {
	w := g.cfg.Progress
	fmt.Fprintf(w, "\nProcessing Letter: %c\n", letter)
	fmt.Fprintln(w, strings.Repeat("-", 50))

	outcomes := make([]Outcome, 0, len(g.cfg.Variants))
	for _, v := range g.cfg.Variants {
		fmt.Fprintf(w, "  Creating %s (%gmm)... ", v.Name, v.Thickness)
		out := g.generateVariant(letter, v)
		switch {
		case out.Skipped:
			fmt.Fprintf(w, "FAILED - insufficient contour points for letter %c\n", letter)
		case out.Err != nil:
			fmt.Fprintf(w, "ERROR: %v\n", out.Err)
		default:
			fmt.Fprintf(w, "OK (%.1f KB, %d vertices)\n", float64(out.Size)/1024, out.Vertices)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}

// generateVariant runs the full pipeline for one pair. Panics from any
// stage are converted into a failure outcome with a stack trace so one bad
// glyph cannot take down the batch.
func (g *Generator) generateVariant(letter rune, v Variant) (out Outcome) {
	out = Outcome{Letter: letter, Variant: v.Name}
	defer func() {
		if r := recover(); r != nil {
			out.Err = fmt.Errorf("panic generating %c/%s: %v\n%s", letter, v.Name, r, debug.Stack())
		}
	}()

	img := g.raster.Rasterize(letter)
	mask := glyph.Mask(img, g.cfg.Threshold)
	curves := contour.Find(mask)
	points := contour.Downsample(contour.Longest(curves), g.cfg.MaxContourPoints)
	if len(points) < 3 {
		out.Skipped = true
		return out
	}

	mesh, err := extrude.Solid(points, v.Thickness, g.cfg.TargetWidth)
	if err != nil {
		out.Err = fmt.Errorf("extrude letter %c: %w", letter, err)
		return out
	}
	if g.cfg.Compensate {
		mesh.Scale(matter.PLA.ScaleFactor())
	}
	out.Vertices = mesh.VertexCount()

	path := filepath.Join(g.cfg.OutputDir, v.Name, FileName(letter, v.Name))
	if err := render.CreateSTL(path, mesh); err != nil {
		out.Err = fmt.Errorf("export %s: %w", path, err)
		return out
	}
	info, err := os.Stat(path)
	if err != nil {
		out.Err = fmt.Errorf("stat %s: %w", path, err)
		return out
	}
	out.Path = path
	out.Size = info.Size()
	return out
}

// Summary writes the grouped per-variant listing of generated files.
func (g *Generator) Summary(w io.Writer, outcomes []Outcome) {
	line := strings.Repeat("=", 60)
	fmt.Fprintf(w, "\n%s\nGENERATION COMPLETE\n%s\n", line, line)

	abs, err := filepath.Abs(g.cfg.OutputDir)
	if err != nil {
		abs = g.cfg.OutputDir
	}
	fmt.Fprintf(w, "\nOutput directory: %s\n", abs)
	fmt.Fprintf(w, "Letters attempted: %s\n", strings.Join(lettersOf(outcomes), ", "))
	fmt.Fprintf(w, "Total files: %d\n", countOK(outcomes))

	fmt.Fprintln(w, "\nGenerated files by variant:")
	for _, v := range g.cfg.Variants {
		var files []Outcome
		for _, o := range outcomes {
			if o.OK() && o.Variant == v.Name {
				files = append(files, o)
			}
		}
		fmt.Fprintf(w, "\n%s/ (%d files) - %s\n", v.Name, len(files), v.Description)
		for _, o := range files {
			fmt.Fprintf(w, "  - %s (%.1f KB)\n", filepath.Base(o.Path), float64(o.Size)/1024)
		}
	}
}

func lettersOf(outcomes []Outcome) []string {
	var letters []string
	seen := make(map[rune]bool)
	for _, o := range outcomes {
		if !seen[o.Letter] {
			seen[o.Letter] = true
			letters = append(letters, string(o.Letter))
		}
	}
	return letters
}

func countOK(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

package letterlib_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centria3d/letterlib"
	"github.com/centria3d/letterlib/contour"
	"github.com/centria3d/letterlib/extrude"
	"github.com/centria3d/letterlib/glyph"
	"github.com/centria3d/letterlib/render"
)

func testConfig(t *testing.T) letterlib.Config {
	t.Helper()
	cfg := letterlib.DefaultConfig()
	cfg.OutputDir = filepath.Join(t.TempDir(), "Centria_3D_Models", "Letters_Library")
	cfg.Progress = io.Discard
	return cfg
}

func TestNewGeneratorCreatesLayout(t *testing.T) {
	cfg := testConfig(t)
	_, err := letterlib.NewGenerator(cfg)
	require.NoError(t, err)
	for _, v := range cfg.Variants {
		info, err := os.Stat(filepath.Join(cfg.OutputDir, v.Name))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestNewGeneratorRejectsBadConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Variants = nil
	_, err := letterlib.NewGenerator(cfg)
	require.Error(t, err)

	cfg = testConfig(t)
	cfg.Variants = []letterlib.Variant{{Name: "pin", Thickness: -1}}
	_, err = letterlib.NewGenerator(cfg)
	require.Error(t, err)

	cfg = testConfig(t)
	cfg.OutputDir = ""
	_, err = letterlib.NewGenerator(cfg)
	require.Error(t, err)
}

func TestGenerateLetterAPin(t *testing.T) {
	cfg := testConfig(t)
	gen, err := letterlib.NewGenerator(cfg)
	require.NoError(t, err)

	outcomes := gen.GenerateLetter('A')
	require.Len(t, outcomes, len(cfg.Variants))

	var pin letterlib.Outcome
	for _, o := range outcomes {
		if o.Variant == "pin" {
			pin = o
		}
	}
	require.True(t, pin.OK(), "pin outcome failed: %v", pin.Err)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "pin", "Letter_A_pin.stl"), pin.Path)
	assert.Positive(t, pin.Size)
	assert.GreaterOrEqual(t, pin.Vertices, 6)
	assert.Zero(t, pin.Vertices%2, "two identical rings")

	f, err := os.Open(pin.Path)
	require.NoError(t, err)
	defer f.Close()
	tris, err := render.ReadSTL(f)
	require.NoError(t, err)
	assert.NotEmpty(t, tris)
}

func TestVertexCountMatchesContour(t *testing.T) {
	cfg := testConfig(t)
	rz := glyph.NewRasterizer(cfg.FontSize)
	mask := glyph.Mask(rz.Rasterize('T'), cfg.Threshold)
	points := contour.Downsample(contour.Longest(contour.Find(mask)), cfg.MaxContourPoints)
	require.GreaterOrEqual(t, len(points), 3)

	m, err := extrude.Solid(points, 3.5, cfg.TargetWidth)
	require.NoError(t, err)
	assert.Equal(t, 2*len(points), m.VertexCount())
}

func TestGenerateIdempotent(t *testing.T) {
	cfg := testConfig(t)
	gen, err := letterlib.NewGenerator(cfg)
	require.NoError(t, err)

	first := gen.GenerateLetter('C')
	var path string
	for _, o := range first {
		if o.Variant == "keyring" {
			require.True(t, o.OK())
			path = o.Path
		}
	}
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	gen.GenerateLetter('C')
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "regeneration must be byte-for-byte reproducible")
}

func TestBlankGlyphSkips(t *testing.T) {
	cfg := testConfig(t)
	gen, err := letterlib.NewGenerator(cfg)
	require.NoError(t, err)

	outcomes := gen.GenerateLetter(' ')
	require.Len(t, outcomes, len(cfg.Variants))
	for _, o := range outcomes {
		assert.True(t, o.Skipped, "blank bitmap must skip, not fail")
		assert.NoError(t, o.Err)
		_, err := os.Stat(filepath.Join(cfg.OutputDir, o.Variant, letterlib.FileName(' ', o.Variant)))
		assert.True(t, os.IsNotExist(err), "no file may be written for a skipped pair")
	}
}

func TestFullAlphabetAccounting(t *testing.T) {
	if testing.Short() {
		t.Skip("full alphabet batch")
	}
	cfg := testConfig(t)
	gen, err := letterlib.NewGenerator(cfg)
	require.NoError(t, err)

	outcomes := gen.GenerateSet(letterlib.FullAlphabet)
	require.Len(t, outcomes, 26*len(cfg.Variants))

	generated := 0
	for _, o := range outcomes {
		if o.OK() {
			generated++
			info, err := os.Stat(o.Path)
			require.NoError(t, err)
			assert.Equal(t, o.Size, info.Size())
		}
	}
	assert.LessOrEqual(t, generated, 26*len(cfg.Variants))
	assert.Positive(t, generated)

	var sb strings.Builder
	gen.Summary(&sb, outcomes)
	report := sb.String()
	assert.Contains(t, report, "GENERATION COMPLETE")
	for _, v := range cfg.Variants {
		assert.Contains(t, report, v.Name+"/")
	}
}

func TestSummaryCountsOnlyGeneratedFiles(t *testing.T) {
	cfg := testConfig(t)
	gen, err := letterlib.NewGenerator(cfg)
	require.NoError(t, err)

	outcomes := gen.GenerateSet([]rune{'I', ' '})
	var sb strings.Builder
	gen.Summary(&sb, outcomes)
	assert.Contains(t, sb.String(), "Total files: 4")
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Letter_A_pin.stl", letterlib.FileName('A', "pin"))
	assert.Equal(t, "Letter_Z_cake_mould.stl", letterlib.FileName('Z', "cake_mould"))
}

func TestDefaultConfigTable(t *testing.T) {
	cfg := letterlib.DefaultConfig()
	assert.Equal(t, filepath.Join("Centria_3D_Models", "Letters_Library"), cfg.OutputDir)
	require.Len(t, cfg.Variants, 4)
	want := map[string]float64{
		"pin":        3.5,
		"magnet":     4.5,
		"keyring":    5.5,
		"cake_mould": 10.0,
	}
	for _, v := range cfg.Variants {
		assert.Equal(t, want[v.Name], v.Thickness, v.Name)
		assert.NotEmpty(t, v.Description)
	}
}

// Package contour extracts closed boundary curves from binary bitmaps using
// marching squares with sub-pixel edge interpolation.
package contour

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/centria3d/letterlib/internal/d2"
)

// A Contour is an ordered boundary curve in image coordinates. Each point's
// X component is the image row and Y the image column, matching the
// row-major bitmap layout. Curves traced from interior features are closed;
// curves truncated by the bitmap border may be open.
type Contour []r2.Vec

// Bounds returns the bounding box of the curve in image coordinates.
func (c Contour) Bounds() d2.Box {
	return d2.Set(c).Bounds()
}

// level is the iso-value boundaries are traced at, halfway between
// background (0) and foreground (1).
const level = 0.5

type segment struct {
	a, b r2.Vec
}

// Find traces all boundary curves separating foreground from background in
// mask, indexed [row][col]. Crossing points are interpolated on cell edges,
// which for a binary mask lands them on edge midpoints. Returns nil when the
// mask holds no foreground/background transition.
func Find(mask [][]bool) []Contour {
	h := len(mask)
	if h < 2 {
		return nil
	}
	w := len(mask[0])
	if w < 2 {
		return nil
	}
	val := func(r, c int) float64 {
		if mask[r][c] {
			return 1
		}
		return 0
	}
	var segs []segment
	emit := func(a, b r2.Vec) {
		segs = append(segs, segment{a: a, b: b})
	}
	for r := 0; r < h-1; r++ {
		for c := 0; c < w-1; c++ {
			tl, tr := val(r, c), val(r, c+1)
			bl, br := val(r+1, c), val(r+1, c+1)
			idx := 0
			if tl > level {
				idx |= 8
			}
			if tr > level {
				idx |= 4
			}
			if br > level {
				idx |= 2
			}
			if bl > level {
				idx |= 1
			}
			if idx == 0 || idx == 15 {
				continue
			}
			// Crossing points on the four cell edges.
			top := r2.Vec{X: float64(r), Y: float64(c) + interp(tl, tr)}
			right := r2.Vec{X: float64(r) + interp(tr, br), Y: float64(c + 1)}
			bottom := r2.Vec{X: float64(r + 1), Y: float64(c) + interp(bl, br)}
			left := r2.Vec{X: float64(r) + interp(tl, bl), Y: float64(c)}
			switch idx {
			case 1:
				emit(left, bottom)
			case 2:
				emit(bottom, right)
			case 3:
				emit(left, right)
			case 4:
				emit(top, right)
			case 5:
				// Saddle. The cell center average equals the iso level for
				// binary input; >= resolves it as foreground (connected).
				if (tl+tr+br+bl)/4 >= level {
					emit(top, left)
					emit(right, bottom)
				} else {
					emit(top, right)
					emit(left, bottom)
				}
			case 6:
				emit(top, bottom)
			case 7:
				emit(top, left)
			case 8:
				emit(top, left)
			case 9:
				emit(top, bottom)
			case 10:
				if (tl+tr+br+bl)/4 >= level {
					emit(top, right)
					emit(left, bottom)
				} else {
					emit(top, left)
					emit(right, bottom)
				}
			case 11:
				emit(top, right)
			case 12:
				emit(left, right)
			case 13:
				emit(bottom, right)
			case 14:
				emit(left, bottom)
			}
		}
	}
	return chain(segs)
}

// interp returns the offset in [0,1] along an edge from value a to value b
// where the iso level is crossed. For non-crossing edges the result is
// unused by the segment table.
func interp(a, b float64) float64 {
	if a == b {
		return 0.5
	}
	return (level - a) / (b - a)
}

// pointKey quantizes a crossing point for exact endpoint matching. All
// crossing points lie on half-integer coordinates, so doubling and rounding
// is lossless.
func pointKey(p r2.Vec) [2]int {
	return [2]int{int(math.Round(p.X * 2)), int(math.Round(p.Y * 2))}
}

// chain links loose segments into ordered curves by walking shared
// endpoints until each curve closes on itself or runs out of continuations.
func chain(segs []segment) []Contour {
	if len(segs) == 0 {
		return nil
	}
	// Each endpoint indexes the segments touching it. Closed curves touch
	// every point exactly twice.
	touch := make(map[[2]int][]int, 2*len(segs))
	for i, s := range segs {
		ka, kb := pointKey(s.a), pointKey(s.b)
		touch[ka] = append(touch[ka], i)
		touch[kb] = append(touch[kb], i)
	}
	used := make([]bool, len(segs))
	next := func(at r2.Vec) (r2.Vec, bool) {
		for _, i := range touch[pointKey(at)] {
			if used[i] {
				continue
			}
			used[i] = true
			if pointKey(segs[i].a) == pointKey(at) {
				return segs[i].b, true
			}
			return segs[i].a, true
		}
		return r2.Vec{}, false
	}

	var curves []Contour
	for seed := range segs {
		if used[seed] {
			continue
		}
		used[seed] = true
		curve := Contour{segs[seed].a, segs[seed].b}
		start := pointKey(curve[0])
		// Walk forward until the curve closes or dead-ends.
		for {
			p, ok := next(curve[len(curve)-1])
			if !ok {
				break
			}
			if pointKey(p) == start {
				break // closed, do not duplicate the first point
			}
			curve = append(curve, p)
		}
		// An open chain may continue behind the seed segment.
		if pointKey(curve[len(curve)-1]) != start {
			for {
				p, ok := next(curve[0])
				if !ok {
					break
				}
				curve = append(Contour{p}, curve...)
			}
		}
		curves = append(curves, curve)
	}
	return curves
}

// Longest returns the curve with the greatest point count, the proxy for a
// glyph's main outline. For letters with large enclosed holes this may pick
// an inner boundary; that matches the reference behavior and is kept as is.
func Longest(curves []Contour) Contour {
	var longest Contour
	for _, c := range curves {
		if len(c) > len(longest) {
			longest = c
		}
	}
	return longest
}

// Downsample keeps every n-th point so the result has on the order of
// target points, trading outline fidelity for mesh size. target <= 0
// returns the curve unchanged.
func Downsample(c Contour, target int) Contour {
	if target <= 0 || len(c) == 0 {
		return c
	}
	step := len(c) / target
	if step < 1 {
		step = 1
	}
	out := make(Contour, 0, len(c)/step+1)
	for i := 0; i < len(c); i += step {
		out = append(out, c[i])
	}
	return out
}

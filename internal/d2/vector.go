package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

func Elem(sides float64) r2.Vec {
	return r2.Vec{
		X: sides,
		Y: sides,
	}
}

func EqualWithin(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

func Max(a r2.Vec) float64 {
	return math.Max(a.X, a.Y)
}

func Min(a r2.Vec) float64 {
	return math.Min(a.X, a.Y)
}

func AbsElem(a r2.Vec) r2.Vec {
	return r2.Vec{
		X: math.Abs(a.X),
		Y: math.Abs(a.Y),
	}
}

type Set []r2.Vec

// Min return the minimum components of a set of vectors.
func (a Set) Min() r2.Vec {
	vmin := a[0]
	for _, v := range a[1:] {
		vmin = MinElem(vmin, v)
	}
	return vmin
}

// Max return the maximum components of a set of vectors.
func (a Set) Max() r2.Vec {
	vmax := a[0]
	for _, v := range a[1:] {
		vmax = MaxElem(vmax, v)
	}
	return vmax
}

// Centroid returns the mean position of a set of vectors.
func (a Set) Centroid() r2.Vec {
	sum := r2.Vec{}
	for _, v := range a {
		sum = r2.Add(sum, v)
	}
	return r2.Scale(1/float64(len(a)), sum)
}

// MaxAbs returns the largest absolute component over a set of vectors.
func (a Set) MaxAbs() float64 {
	extent := 0.0
	for _, v := range a {
		extent = math.Max(extent, Max(AbsElem(v)))
	}
	return extent
}

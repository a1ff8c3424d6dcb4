// Package field samples a slope function on a regular grid and turns each
// sample into a unit direction vector.
package field

import (
	"fmt"
	"math"

	"github.com/san-kum/slopefield/internal/dynamo"
)

// Arrow is one sample of the direction field. DX, DY is the unit vector
// (cos θ, sin θ) with θ = atan(slope). Valid is false when the slope is NaN;
// renderers skip those samples.
type Arrow struct {
	At     dynamo.Point
	Slope  float64
	DX, DY float64
	Valid  bool
}

// Field is the sampled grid, row-major with rows along y.
type Field struct {
	Xs, Ys []float64
	Arrows []Arrow
}

func (f *Field) Len() int { return len(f.Arrows) }

// ValidCount returns the number of drawable samples.
func (f *Field) ValidCount() int {
	n := 0
	for _, a := range f.Arrows {
		if a.Valid {
			n++
		}
	}
	return n
}

// Count returns the number of samples on an axis of the given extent:
// floor(extent / spacing), or 0 when the extent is not positive. The floor
// is taken of the rounded IEEE quotient, so 6/0.2 gives 30, not 29.
func Count(extent, spacing float64) int {
	if !(extent > 0) || !(spacing > 0) {
		return 0
	}
	n := extent / spacing
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return 0
	}
	return int(n)
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
// n == 1 yields [lo]; n <= 0 yields nil.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// Direction converts a slope to a unit vector. ±Inf gives a vertical arrow;
// NaN reports ok = false.
func Direction(slope float64) (dx, dy float64, ok bool) {
	if math.IsNaN(slope) {
		return 0, 0, false
	}
	theta := math.Atan(slope)
	return math.Cos(theta), math.Sin(theta), true
}

// Sampler builds a Field for a bounds rectangle at a fixed spacing.
type Sampler struct {
	Spacing float64
}

func NewSampler(spacing float64) *Sampler {
	return &Sampler{Spacing: spacing}
}

// Sample evaluates f over the mesh spanned by b. GridFuncs are evaluated in
// one call over the whole mesh; other SlopeFuncs point by point.
func (s *Sampler) Sample(f dynamo.SlopeFunc, b dynamo.Bounds) (*Field, error) {
	if !(s.Spacing > 0) {
		return nil, fmt.Errorf("%w: spacing=%g", dynamo.ErrInvalidViewport, s.Spacing)
	}
	xs := Linspace(b.XMin, b.XMax, Count(b.Width(), s.Spacing))
	ys := Linspace(b.YMin, b.YMax, Count(b.Height(), s.Spacing))
	out := &Field{Xs: xs, Ys: ys, Arrows: make([]Arrow, 0, len(xs)*len(ys))}
	if len(xs) == 0 || len(ys) == 0 || f == nil {
		return out, nil
	}

	slopes, err := evaluate(f, xs, ys)
	if err != nil {
		return nil, err
	}
	for i, y := range ys {
		for j, x := range xs {
			m := slopes[i][j]
			dx, dy, ok := Direction(m)
			out.Arrows = append(out.Arrows, Arrow{
				At:    dynamo.Point{X: x, Y: y},
				Slope: m,
				DX:    dx,
				DY:    dy,
				Valid: ok,
			})
		}
	}
	return out, nil
}

// Mesh expands the axis vectors into coordinate matrices, rows along y.
func Mesh(xs, ys []float64) (gx, gy [][]float64) {
	gx = make([][]float64, len(ys))
	gy = make([][]float64, len(ys))
	for i, y := range ys {
		gx[i] = make([]float64, len(xs))
		gy[i] = make([]float64, len(xs))
		for j, x := range xs {
			gx[i][j] = x
			gy[i][j] = y
		}
	}
	return gx, gy
}

func evaluate(f dynamo.SlopeFunc, xs, ys []float64) ([][]float64, error) {
	if g, ok := f.(dynamo.GridFunc); ok {
		gx, gy := Mesh(xs, ys)
		return g.Grid(gx, gy)
	}
	out := make([][]float64, len(ys))
	for i, y := range ys {
		out[i] = make([]float64, len(xs))
		for j, x := range xs {
			out[i][j] = f.At(x, y)
		}
	}
	return out, nil
}

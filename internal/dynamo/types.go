package dynamo

import (
	"fmt"
	"math"
)

type Point struct {
	X, Y float64
}

func (p Point) IsValid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", p.X, p.Y)
}

type Polyline []Point

// Ys is the y column, for plotting against the step index.
func (l Polyline) Ys() []float64 {
	out := make([]float64, len(l))
	for i, p := range l {
		out[i] = p.Y
	}
	return out
}

// Length returns the summed Euclidean length of the segments.
func (l Polyline) Length() float64 {
	sum := 0.0
	for i := 1; i < len(l); i++ {
		sum += math.Hypot(l[i].X-l[i-1].X, l[i].Y-l[i-1].Y)
	}
	return sum
}

type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

func (b Bounds) Validate() error {
	if !(b.XMin < b.XMax) || !(b.YMin < b.YMax) {
		return fmt.Errorf("%w: x=[%g, %g] y=[%g, %g]", ErrInvalidBounds, b.XMin, b.XMax, b.YMin, b.YMax)
	}
	return nil
}

// Contains reports whether (x, y) lies strictly inside the rectangle.
// Points on an edge are outside. NaN is never inside.
func (b Bounds) Contains(x, y float64) bool {
	return x > b.XMin && x < b.XMax && y > b.YMin && y < b.YMax
}

func (b Bounds) ContainsPoint(p Point) bool {
	return b.Contains(p.X, p.Y)
}

func (b Bounds) Width() float64  { return b.XMax - b.XMin }
func (b Bounds) Height() float64 { return b.YMax - b.YMin }

func (b Bounds) String() string {
	return fmt.Sprintf("x=[%.3f, %.3f] y=[%.3f, %.3f]", b.XMin, b.XMax, b.YMin, b.YMax)
}

// SlopeFunc is the right-hand side of dy/dx = f(x, y).
type SlopeFunc interface {
	At(x, y float64) float64
}

// SlopeFuncOf adapts a plain function.
type SlopeFuncOf func(x, y float64) float64

func (f SlopeFuncOf) At(x, y float64) float64 { return f(x, y) }

// GridFunc is implemented by slope functions that can evaluate a whole mesh at once.
type GridFunc interface {
	SlopeFunc
	Grid(xs, ys [][]float64) ([][]float64, error)
}

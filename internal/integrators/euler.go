package integrators

import "github.com/san-kum/slopefield/internal/dynamo"

// Euler is the explicit first-order method for dy/dx = f(x, y).
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

// Step advances p by h: (x + h, y + h*f(x, y)). A negative h walks backward.
func (e *Euler) Step(f dynamo.SlopeFunc, p dynamo.Point, h float64) dynamo.Point {
	return dynamo.Point{X: p.X + h, Y: p.Y + h*f.At(p.X, p.Y)}
}

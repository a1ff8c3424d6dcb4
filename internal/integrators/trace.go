package integrators

import (
	"fmt"
	"math"

	"github.com/san-kum/slopefield/internal/dynamo"
)

// Trajectory is the solution curve through one seed. Forward and Backward
// both start at the seed when it is inside the bounds; Marker reports that.
type Trajectory struct {
	Seed     dynamo.Point
	Marker   bool
	Forward  dynamo.Polyline
	Backward dynamo.Polyline
}

// Empty reports whether neither direction produced a point.
func (t Trajectory) Empty() bool {
	return len(t.Forward) == 0 && len(t.Backward) == 0
}

// Steps is the number of points in both directions together.
func (t Trajectory) Steps() int {
	return len(t.Forward) + len(t.Backward)
}

// Curve joins both halves into one polyline ordered by increasing walk
// direction: the backward half reversed, then the forward half. The seed
// appears once.
func (t Trajectory) Curve() dynamo.Polyline {
	out := make(dynamo.Polyline, 0, t.Steps())
	for i := len(t.Backward) - 1; i >= 0; i-- {
		out = append(out, t.Backward[i])
	}
	fwd := t.Forward
	if len(out) > 0 && len(fwd) > 0 {
		fwd = fwd[1:]
	}
	return append(out, fwd...)
}

// Tracer walks Euler steps in both directions from a seed until the walk
// leaves the bounds. MaxSteps caps each direction; zero means no cap.
type Tracer struct {
	Method   *Euler
	MaxSteps int
}

func NewTracer(maxSteps int) *Tracer {
	return &Tracer{Method: NewEuler(), MaxSteps: maxSteps}
}

// Trace integrates through seed with step h forward and -h backward. Every
// recorded point is strictly inside b. A seed outside b gives an empty
// trajectory with Marker false.
//
// Without a cap a walk ends after about width/|h| steps while |h| is above
// the float spacing of x. Once x + h == x the walk never leaves and only
// MaxSteps stops it. A NaN y fails the bounds test at once. The errors are
// an invalid b, a zero or NaN step and, with MaxSteps set, a
// *dynamo.WalkError wrapping dynamo.ErrStepLimit. The partial trajectory is
// returned alongside that error.
func (t *Tracer) Trace(f dynamo.SlopeFunc, seed dynamo.Point, b dynamo.Bounds, h float64) (Trajectory, error) {
	tr := Trajectory{Seed: seed, Marker: b.ContainsPoint(seed)}
	if err := b.Validate(); err != nil {
		return tr, err
	}
	if h == 0 || math.IsNaN(h) {
		return tr, fmt.Errorf("%w: step=%g", dynamo.ErrInvalidViewport, h)
	}
	if !tr.Marker {
		return tr, nil
	}

	var err error
	tr.Forward, err = t.walk(f, seed, b, h)
	if err != nil {
		return tr, err
	}
	tr.Backward, err = t.walk(f, seed, b, -h)
	return tr, err
}

func (t *Tracer) walk(f dynamo.SlopeFunc, p dynamo.Point, b dynamo.Bounds, h float64) (dynamo.Polyline, error) {
	method := t.Method
	if method == nil {
		method = NewEuler()
	}
	var line dynamo.Polyline
	for b.ContainsPoint(p) {
		if t.MaxSteps > 0 && len(line) >= t.MaxSteps {
			return line, &dynamo.WalkError{Step: len(line), At: p, Wrapped: dynamo.ErrStepLimit}
		}
		line = append(line, p)
		p = method.Step(f, p, h)
	}
	return line, nil
}

// Trace is an uncapped Tracer. A zero step yields only the marker.
func Trace(f dynamo.SlopeFunc, seed dynamo.Point, b dynamo.Bounds, h float64) Trajectory {
	tr, _ := NewTracer(0).Trace(f, seed, b, h)
	return tr
}

package analysis

import (
	"math"

	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/field"
	"github.com/san-kum/slopefield/internal/integrators"
)

// Edge names the side of the bounds a walk left through.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
	EdgeBottom
	EdgeTop
	// EdgeUndefined means the walk stopped on a non-finite value.
	EdgeUndefined
)

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	case EdgeTop:
		return "top"
	case EdgeUndefined:
		return "undefined"
	}
	return "none"
}

// HalfSummary describes one direction of a walk.
type HalfSummary struct {
	Steps     int
	ArcLength float64
	Last      dynamo.Point
	Exit      Edge
}

type Summary struct {
	Seed       dynamo.Point
	Inside     bool
	Forward    HalfSummary
	Backward   HalfSummary
	YMin, YMax float64
}

// Summarize reports step counts, arc lengths, exit edges and the y range of
// a trajectory traced with step h inside b.
func Summarize(f dynamo.SlopeFunc, t integrators.Trajectory, b dynamo.Bounds, h float64) Summary {
	s := Summary{
		Seed:   t.Seed,
		Inside: t.Marker,
		YMin:   math.Inf(1),
		YMax:   math.Inf(-1),
	}
	s.Forward = summarizeHalf(f, t.Forward, b, h)
	s.Backward = summarizeHalf(f, t.Backward, b, -h)

	for _, half := range []dynamo.Polyline{t.Forward, t.Backward} {
		for _, p := range half {
			s.YMin = math.Min(s.YMin, p.Y)
			s.YMax = math.Max(s.YMax, p.Y)
		}
	}
	if t.Empty() {
		s.YMin, s.YMax = math.NaN(), math.NaN()
	}
	return s
}

func summarizeHalf(f dynamo.SlopeFunc, line dynamo.Polyline, b dynamo.Bounds, h float64) HalfSummary {
	hs := HalfSummary{Steps: len(line), ArcLength: line.Length()}
	if len(line) == 0 {
		return hs
	}
	hs.Last = line[len(line)-1]
	next := integrators.NewEuler().Step(f, hs.Last, h)
	hs.Exit = ExitEdge(next, b)
	return hs
}

// ExitEdge classifies a point that failed the bounds test. The x edges win
// ties since x moves by a fixed step every iteration.
func ExitEdge(p dynamo.Point, b dynamo.Bounds) Edge {
	switch {
	case math.IsNaN(p.X) || math.IsNaN(p.Y):
		return EdgeUndefined
	case p.X <= b.XMin:
		return EdgeLeft
	case p.X >= b.XMax:
		return EdgeRight
	case p.Y <= b.YMin:
		return EdgeBottom
	case p.Y >= b.YMax:
		return EdgeTop
	}
	return EdgeNone
}

// Isocline returns the sample points where the slope changes sign between
// vertical neighbors: an approximation of the nullcline f(x, y) = 0, with
// each crossing placed by linear interpolation.
func Isocline(fld *field.Field) []dynamo.Point {
	nx := len(fld.Xs)
	if nx == 0 || len(fld.Arrows) != nx*len(fld.Ys) {
		return nil
	}
	var out []dynamo.Point
	for i := 1; i < len(fld.Ys); i++ {
		for j := 0; j < nx; j++ {
			lo := fld.Arrows[(i-1)*nx+j]
			hi := fld.Arrows[i*nx+j]
			if !lo.Valid || !hi.Valid || math.IsInf(lo.Slope, 0) || math.IsInf(hi.Slope, 0) {
				continue
			}
			if lo.Slope == 0 {
				out = append(out, lo.At)
				continue
			}
			if lo.Slope*hi.Slope >= 0 {
				continue
			}
			frac := lo.Slope / (lo.Slope - hi.Slope)
			out = append(out, dynamo.Point{X: lo.At.X, Y: lo.At.Y + frac*(hi.At.Y-lo.At.Y)})
		}
	}
	return out
}

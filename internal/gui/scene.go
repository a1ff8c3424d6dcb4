package gui

import (
	"math"

	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/field"
	"github.com/san-kum/slopefield/internal/integrators"
)

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Segment is a line in screen pixels.
type Segment struct {
	X0, Y0, X1, Y1 float64
}

// arrowFill is the share of a grid cell an arrow spans.
const arrowFill = 0.7

// Scene is the session.Surface of the desktop front end. raylib repaints
// every frame, so Scene keeps the last picture the controller drew and maps
// it to the plot rectangle on demand.
type Scene struct {
	Plot Rect

	bounds dynamo.Bounds
	field  *field.Field
	curves []integrators.Trajectory
	frames int
}

func NewScene(plot Rect) *Scene {
	return &Scene{Plot: plot}
}

func (s *Scene) Clear() {
	s.field = nil
	s.curves = nil
}

func (s *Scene) SetBounds(b dynamo.Bounds)               { s.bounds = b }
func (s *Scene) DrawField(f *field.Field)                { s.field = f }
func (s *Scene) DrawTrajectory(t integrators.Trajectory) { s.curves = append(s.curves, t) }
func (s *Scene) Flush()                                  { s.frames++ }
func (s *Scene) Frames() int                             { return s.frames }
func (s *Scene) Bounds() dynamo.Bounds                   { return s.bounds }
func (s *Scene) Field() *field.Field                     { return s.field }
func (s *Scene) Curves() []integrators.Trajectory        { return s.curves }

// ToScreen maps a data point into the plot rectangle. ok is false for
// non-finite points or a degenerate viewport.
func (s *Scene) ToScreen(p dynamo.Point) (x, y float64, ok bool) {
	bw, bh := s.bounds.Width(), s.bounds.Height()
	if !p.IsValid() || !(bw > 0) || !(bh > 0) {
		return 0, 0, false
	}
	x = s.Plot.X + (p.X-s.bounds.XMin)/bw*s.Plot.W
	y = s.Plot.Y + (s.bounds.YMax-p.Y)/bh*s.Plot.H
	return x, y, true
}

// ToData is the inverse of ToScreen.
func (s *Scene) ToData(x, y float64) dynamo.Point {
	return dynamo.Point{
		X: s.bounds.XMin + (x-s.Plot.X)/s.Plot.W*s.bounds.Width(),
		Y: s.bounds.YMax - (y-s.Plot.Y)/s.Plot.H*s.bounds.Height(),
	}
}

// Arrows returns one centered segment per valid field sample. The segment
// follows the slope as it appears on screen, so non-square viewports still
// show tangents to the drawn curves.
func (s *Scene) Arrows() []Segment {
	if s.field == nil || len(s.field.Xs) == 0 || len(s.field.Ys) == 0 {
		return nil
	}
	bw, bh := s.bounds.Width(), s.bounds.Height()
	if !(bw > 0) || !(bh > 0) {
		return nil
	}
	cell := math.Min(s.Plot.W/float64(len(s.field.Xs)), s.Plot.H/float64(len(s.field.Ys)))
	half := arrowFill * cell / 2

	segs := make([]Segment, 0, s.field.ValidCount())
	for _, a := range s.field.Arrows {
		if !a.Valid {
			continue
		}
		cx, cy, ok := s.ToScreen(a.At)
		if !ok {
			continue
		}
		dx := a.DX * s.Plot.W / bw
		dy := -a.DY * s.Plot.H / bh
		n := math.Hypot(dx, dy)
		if n == 0 {
			continue
		}
		dx, dy = dx/n*half, dy/n*half
		segs = append(segs, Segment{cx - dx, cy - dy, cx + dx, cy + dy})
	}
	return segs
}

// Polyline maps a data polyline to screen points, dropping points that
// cannot be projected.
func (s *Scene) Polyline(pl dynamo.Polyline) [][2]float64 {
	out := make([][2]float64, 0, len(pl))
	for _, p := range pl {
		if x, y, ok := s.ToScreen(p); ok {
			out = append(out, [2]float64{x, y})
		}
	}
	return out
}

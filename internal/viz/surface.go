package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/field"
	"github.com/san-kum/slopefield/internal/integrators"
)

// minArrowGap is the smallest spacing, in sub-pixels, between drawn arrows.
// Denser fields are thinned to every n-th sample.
const minArrowGap = 6

// BrailleSurface draws a session frame onto two braille layers: the
// direction field underneath and the solution curves on top.
type BrailleSurface struct {
	field  *Canvas
	curves *Canvas
	bounds dynamo.Bounds
	frames int
}

func NewBrailleSurface(cols, rows int) *BrailleSurface {
	return &BrailleSurface{
		field:  NewCanvas(cols, rows),
		curves: NewCanvas(cols, rows),
	}
}

func (s *BrailleSurface) Resize(cols, rows int) {
	s.field.Resize(cols, rows)
	s.curves.Resize(cols, rows)
}

// Size returns the plot size in cells.
func (s *BrailleSurface) Size() (cols, rows int) {
	return s.field.Width, s.field.Height
}

func (s *BrailleSurface) Frames() int { return s.frames }

func (s *BrailleSurface) Bounds() dynamo.Bounds { return s.bounds }

func (s *BrailleSurface) Clear() {
	s.field.Clear()
	s.curves.Clear()
}

func (s *BrailleSurface) SetBounds(b dynamo.Bounds) { s.bounds = b }

func (s *BrailleSurface) Flush() { s.frames++ }

func (s *BrailleSurface) scale() (sx, sy float64) {
	pw, ph := s.field.PixelSize()
	return float64(pw-1) / s.bounds.Width(), float64(ph-1) / s.bounds.Height()
}

// Project maps a data point to sub-pixel coordinates. ok is false for
// non-finite points.
func (s *BrailleSurface) Project(p dynamo.Point) (x, y int, ok bool) {
	if !p.IsValid() || !(s.bounds.Width() > 0) || !(s.bounds.Height() > 0) {
		return 0, 0, false
	}
	sx, sy := s.scale()
	fx := (p.X - s.bounds.XMin) * sx
	fy := (s.bounds.YMax - p.Y) * sy
	if math.Abs(fx) > 1e6 || math.Abs(fy) > 1e6 {
		return 0, 0, false
	}
	return int(math.Round(fx)), int(math.Round(fy)), true
}

// CellToData maps a cell of the plot to the data point at its center.
func (s *BrailleSurface) CellToData(col, row int) dynamo.Point {
	sx, sy := s.scale()
	px := float64(col*2) + 0.5
	py := float64(row*4) + 1.5
	return dynamo.Point{
		X: s.bounds.XMin + px/sx,
		Y: s.bounds.YMax - py/sy,
	}
}

func (s *BrailleSurface) DrawField(f *field.Field) {
	nx, ny := len(f.Xs), len(f.Ys)
	if nx == 0 || ny == 0 {
		return
	}
	sx, sy := s.scale()
	gap := math.Inf(1)
	if nx > 1 {
		gap = (f.Xs[1] - f.Xs[0]) * sx
	}
	if ny > 1 {
		gap = math.Min(gap, (f.Ys[1]-f.Ys[0])*sy)
	}
	stride := 1
	if gap < minArrowGap {
		stride = int(math.Ceil(minArrowGap / gap))
	}
	half := math.Min(gap*float64(stride), 2*minArrowGap) * 0.4

	for i := 0; i < ny; i += stride {
		for j := 0; j < nx; j += stride {
			a := f.Arrows[i*nx+j]
			if !a.Valid {
				continue
			}
			cx, cy, ok := s.Project(a.At)
			if !ok {
				continue
			}
			// direction in pixel space; screen y grows downward
			vx, vy := a.DX*sx, -a.DY*sy
			n := math.Hypot(vx, vy)
			if n == 0 {
				continue
			}
			ox, oy := int(math.Round(vx/n*half)), int(math.Round(vy/n*half))
			s.field.DrawLine(cx-ox, cy-oy, cx+ox, cy+oy)
		}
	}
}

func (s *BrailleSurface) DrawTrajectory(t integrators.Trajectory) {
	for _, half := range []dynamo.Polyline{t.Forward, t.Backward} {
		s.drawPolyline(half)
	}
	if t.Marker {
		if x, y, ok := s.Project(t.Seed); ok {
			for _, d := range [][2]int{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				s.curves.Set(x+d[0], y+d[1])
			}
		}
	}
}

func (s *BrailleSurface) drawPolyline(line dynamo.Polyline) {
	havePrev := false
	var px, py int
	for _, p := range line {
		x, y, ok := s.Project(p)
		if !ok {
			havePrev = false
			continue
		}
		if havePrev {
			if x != px || y != py {
				s.curves.DrawLine(px, py, x, y)
			}
		} else {
			s.curves.Set(x, y)
		}
		px, py, havePrev = x, y, true
	}
}

// Plain renders both layers merged, without color.
func (s *BrailleSurface) Plain() string {
	var b strings.Builder
	for r := range s.field.Grid {
		for c := range s.field.Grid[r] {
			b.WriteRune(s.field.Grid[r][c] | s.curves.Grid[r][c])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render draws the field layer in fieldStyle and any cell touched by a
// curve in curveStyle. Runs of equally styled cells share one Render call.
func (s *BrailleSurface) Render(fieldStyle, curveStyle lipgloss.Style) string {
	var b, run strings.Builder
	for r := range s.field.Grid {
		runCurve := false
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runCurve {
				b.WriteString(curveStyle.Render(run.String()))
			} else {
				b.WriteString(fieldStyle.Render(run.String()))
			}
			run.Reset()
		}
		for c := range s.field.Grid[r] {
			isCurve := !s.curves.Empty(r, c)
			if isCurve != runCurve {
				flush()
				runCurve = isCurve
			}
			run.WriteRune(s.field.Grid[r][c] | s.curves.Grid[r][c])
		}
		flush()
		if r < len(s.field.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

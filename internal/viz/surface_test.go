package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/expr"
	"github.com/san-kum/slopefield/internal/field"
	"github.com/san-kum/slopefield/internal/integrators"
)

var square = dynamo.Bounds{XMin: -3, XMax: 3, YMin: -3, YMax: 3}

func TestSurfaceProject(t *testing.T) {
	s := NewBrailleSurface(32, 16)
	s.SetBounds(square)

	tests := []struct {
		p    dynamo.Point
		x, y int
	}{
		{dynamo.Point{X: -3, Y: 3}, 0, 0},
		{dynamo.Point{X: 3, Y: -3}, 63, 63},
		{dynamo.Point{X: -1, Y: 1}, 21, 21},
	}
	for _, tt := range tests {
		x, y, ok := s.Project(tt.p)
		if !ok || x != tt.x || y != tt.y {
			t.Errorf("Project(%v): expected (%d, %d), got (%d, %d, %v)", tt.p, tt.x, tt.y, x, y, ok)
		}
	}

	if _, _, ok := s.Project(dynamo.Point{X: math.NaN()}); ok {
		t.Error("NaN should not project")
	}
}

func TestSurfaceCellToData(t *testing.T) {
	s := NewBrailleSurface(60, 30)
	s.SetBounds(square)

	top := s.CellToData(0, 0)
	if top.X > -2.9 || top.Y < 2.9 {
		t.Errorf("top-left cell should map near (-3, 3), got %v", top)
	}
	bottom := s.CellToData(59, 29)
	if bottom.X < 2.9 || bottom.Y > -2.9 {
		t.Errorf("bottom-right cell should map near (3, -3), got %v", bottom)
	}

	p := s.CellToData(20, 10)
	x, y, _ := s.Project(p)
	if x/2 != 20 || y/4 != 10 {
		t.Errorf("round trip landed in cell (%d, %d)", x/2, y/4)
	}
}

func TestSurfaceDraw(t *testing.T) {
	f := expr.MustCompile("y**2 - 3*y + 1")
	fld, err := field.NewSampler(0.2).Sample(f, square)
	if err != nil {
		t.Fatal(err)
	}

	s := NewBrailleSurface(40, 20)
	s.Clear()
	s.SetBounds(square)
	s.DrawField(fld)
	fieldOnly := s.Plain()
	if strings.Trim(fieldOnly, string(blank)+"\n") == "" {
		t.Fatal("field drew nothing")
	}

	s.DrawTrajectory(integrators.Trace(f, dynamo.Point{}, square, 0.01))
	s.Flush()
	if s.Plain() == fieldOnly {
		t.Error("trajectory drew nothing")
	}
	if s.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", s.Frames())
	}

	out := s.Render(lipgloss.NewStyle(), lipgloss.NewStyle())
	if lines := strings.Split(out, "\n"); len(lines) != 20 {
		t.Errorf("expected 20 rendered lines, got %d", len(lines))
	}

	s.Clear()
	if strings.Trim(s.Plain(), string(blank)+"\n") != "" {
		t.Error("clear left dots behind")
	}
}

func TestSurfaceDegenerateBounds(t *testing.T) {
	s := NewBrailleSurface(10, 5)
	s.SetBounds(dynamo.Bounds{})
	s.DrawTrajectory(integrators.Trajectory{Marker: true, Forward: dynamo.Polyline{{X: 0, Y: 0}}})
	if strings.Trim(s.Plain(), string(blank)+"\n") != "" {
		t.Error("zero-size bounds should draw nothing")
	}
}

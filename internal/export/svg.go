package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/field"
	"github.com/san-kum/slopefield/internal/integrators"
)

// SVG draws a session frame as an SVG document. It satisfies the session
// drawing surface, so the same redraw that feeds the interactive front
// ends produces the file.
type SVG struct {
	Width, Height int
	CurveColor    string
	ArrowColor    string
	Background    string
	// ArrowScale is the arrow length as a fraction of the grid spacing.
	ArrowScale float64

	bounds dynamo.Bounds
	field  *field.Field
	curves []integrators.Trajectory
	frames int
}

func NewSVG(width, height int, curveColor string) *SVG {
	return &SVG{
		Width:      width,
		Height:     height,
		CurveColor: curveColor,
		ArrowColor: "#333333",
		Background: "#ffffff",
		ArrowScale: 0.7,
	}
}

func (s *SVG) Clear() {
	s.field = nil
	s.curves = nil
}

func (s *SVG) SetBounds(b dynamo.Bounds)               { s.bounds = b }
func (s *SVG) DrawField(f *field.Field)                { s.field = f }
func (s *SVG) DrawTrajectory(t integrators.Trajectory) { s.curves = append(s.curves, t) }
func (s *SVG) Flush()                                  { s.frames++ }

// Frames is the number of completed flushes.
func (s *SVG) Frames() int { return s.frames }

func (s *SVG) project(p dynamo.Point) (float64, float64) {
	x := (p.X - s.bounds.XMin) / s.bounds.Width() * float64(s.Width)
	y := float64(s.Height) - (p.Y-s.bounds.YMin)/s.bounds.Height()*float64(s.Height)
	return x, y
}

func (s *SVG) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, s.Background))

	if s.field != nil && len(s.field.Xs) > 1 {
		length := s.ArrowScale * (s.field.Xs[1] - s.field.Xs[0])
		sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="1">
`, s.ArrowColor))
		for _, a := range s.field.Arrows {
			if !a.Valid {
				continue
			}
			x1, y1 := s.project(a.At)
			x2, y2 := s.project(dynamo.Point{X: a.At.X + length*a.DX, Y: a.At.Y + length*a.DY})
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, x1, y1, x2, y2))
		}
		sb.WriteString("</g>\n")
	}

	for _, t := range s.curves {
		for _, half := range []dynamo.Polyline{t.Forward, t.Backward} {
			if len(half) < 2 {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, s.CurveColor))
			for i, p := range half {
				x, y := s.project(p)
				if i == 0 {
					sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
				} else {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
				}
			}
			sb.WriteString("\"/>\n")
		}
		if t.Marker {
			x, y := s.project(t.Seed)
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
`, x, y, s.CurveColor))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

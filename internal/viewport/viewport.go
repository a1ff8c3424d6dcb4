// Package viewport holds the visible window onto the (x, y) plane: its
// center, extents, grid spacing and the Euler step tied to the zoom level.
package viewport

import (
	"fmt"

	"github.com/san-kum/slopefield/internal/dynamo"
)

const (
	DefaultWidth       = 6.0
	DefaultHeight      = 6.0
	DefaultSpacing     = 0.2
	DefaultStep        = 0.01
	DefaultSensitivity = 0.1
)

// Viewport is mutated only through Pan and Zoom. Width and Height are full
// extents, so the visible rectangle is Center ± Width/2 by Center ± Height/2.
type Viewport struct {
	CenterX, CenterY float64
	Width, Height    float64
	GridSpacing      float64
	Step             float64
	Sensitivity      float64
}

// Params is the construction input for New. Zero fields take the defaults.
type Params struct {
	CenterX, CenterY float64
	Width, Height    float64
	GridSpacing      float64
	Step             float64
	Sensitivity      float64
}

func (p Params) withDefaults() Params {
	if p.Width == 0 {
		p.Width = DefaultWidth
	}
	if p.Height == 0 {
		p.Height = DefaultHeight
	}
	if p.GridSpacing == 0 {
		p.GridSpacing = DefaultSpacing
	}
	if p.Step == 0 {
		p.Step = DefaultStep
	}
	if p.Sensitivity == 0 {
		p.Sensitivity = DefaultSensitivity
	}
	return p
}

// New validates p and returns a viewport. Negative extents, spacing or step
// are rejected with dynamo.ErrInvalidViewport.
func New(p Params) (*Viewport, error) {
	p = p.withDefaults()
	if !(p.Width > 0) || !(p.Height > 0) || !(p.GridSpacing > 0) || !(p.Step > 0) {
		return nil, fmt.Errorf("%w: width=%g height=%g spacing=%g step=%g",
			dynamo.ErrInvalidViewport, p.Width, p.Height, p.GridSpacing, p.Step)
	}
	return &Viewport{
		CenterX:     p.CenterX,
		CenterY:     p.CenterY,
		Width:       p.Width,
		Height:      p.Height,
		GridSpacing: p.GridSpacing,
		Step:        p.Step,
		Sensitivity: p.Sensitivity,
	}, nil
}

// Default returns the 6x6 viewport centered at the origin.
func Default() *Viewport {
	v, _ := New(Params{})
	return v
}

func (v *Viewport) Bounds() dynamo.Bounds {
	hw, hh := v.Width/2, v.Height/2
	return dynamo.Bounds{
		XMin: v.CenterX - hw,
		XMax: v.CenterX + hw,
		YMin: v.CenterY - hh,
		YMax: v.CenterY + hh,
	}
}

// Pan translates the center by (dx, dy).
func (v *Viewport) Pan(dx, dy float64) {
	v.CenterX += dx
	v.CenterY += dy
}

// Zoom scales the extents and the Euler step by 1 - Sensitivity*step.
// Positive steps zoom in. There is no clamp: a large enough step can make
// the factor zero or negative.
func (v *Viewport) Zoom(step float64) {
	f := v.ZoomFactor(step)
	v.Width *= f
	v.Height *= f
	v.Step *= f
}

func (v *Viewport) ZoomFactor(step float64) float64 {
	return 1 - v.Sensitivity*step
}

// Contains is the strict open-interval test used for walk termination.
func (v *Viewport) Contains(x, y float64) bool {
	return v.Bounds().Contains(x, y)
}

func (v *Viewport) Center() dynamo.Point {
	return dynamo.Point{X: v.CenterX, Y: v.CenterY}
}

func (v *Viewport) String() string {
	return fmt.Sprintf("center=(%.3f, %.3f) size=%.3fx%.3f step=%g", v.CenterX, v.CenterY, v.Width, v.Height, v.Step)
}

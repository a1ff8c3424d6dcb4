package session

import (
	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/field"
	"github.com/san-kum/slopefield/internal/integrators"
)

// Surface is the drawing target of a front end. A full redraw is
// Clear, SetBounds, DrawField, DrawTrajectory per seed, Flush. An
// incremental seed draw is DrawTrajectory then Flush.
type Surface interface {
	Clear()
	SetBounds(b dynamo.Bounds)
	DrawField(f *field.Field)
	DrawTrajectory(t integrators.Trajectory)
	Flush()
}

// TextField is the one-line ODE input box.
type TextField interface {
	Text() string
	SetText(s string)
}

// StringField is a TextField backed by a plain string, for front ends
// without an editable widget.
type StringField struct {
	Value string
}

func (s *StringField) Text() string     { return s.Value }
func (s *StringField) SetText(v string) { s.Value = v }

// NopSurface discards all drawing.
type NopSurface struct{}

func (NopSurface) Clear()                                {}
func (NopSurface) SetBounds(dynamo.Bounds)               {}
func (NopSurface) DrawField(*field.Field)                {}
func (NopSurface) DrawTrajectory(integrators.Trajectory) {}
func (NopSurface) Flush()                                {}

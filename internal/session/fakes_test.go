package session

import (
	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/field"
	"github.com/san-kum/slopefield/internal/integrators"
)

// RecordingSurface counts draw calls. It lives in a _test file so both the
// internal and the external test packages can use it.
type RecordingSurface struct {
	Clears      int
	Flushes     int
	Fields      int
	Bounds      dynamo.Bounds
	Drawn       []integrators.Trajectory
	LastField   *field.Field
	callsByKind []string
}

func (r *RecordingSurface) Clear() {
	r.Clears++
	r.Drawn = nil
	r.callsByKind = append(r.callsByKind, "clear")
}

func (r *RecordingSurface) SetBounds(b dynamo.Bounds) {
	r.Bounds = b
	r.callsByKind = append(r.callsByKind, "bounds")
}

func (r *RecordingSurface) DrawField(f *field.Field) {
	r.Fields++
	r.LastField = f
	r.callsByKind = append(r.callsByKind, "field")
}

func (r *RecordingSurface) DrawTrajectory(t integrators.Trajectory) {
	r.Drawn = append(r.Drawn, t)
	r.callsByKind = append(r.callsByKind, "trajectory")
}

func (r *RecordingSurface) Flush() {
	r.Flushes++
	r.callsByKind = append(r.callsByKind, "flush")
}

func (r *RecordingSurface) Calls() []string { return r.callsByKind }

func (r *RecordingSurface) ResetCalls() { r.callsByKind = nil }

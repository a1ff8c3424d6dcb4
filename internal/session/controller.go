package session

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/expr"
	"github.com/san-kum/slopefield/internal/field"
	"github.com/san-kum/slopefield/internal/integrators"
	"github.com/san-kum/slopefield/internal/logging"
	"github.com/san-kum/slopefield/internal/viewport"
)

// DefaultODE is plotted when no other expression is configured.
const DefaultODE = "y**2 - 3*y + 1"

// HelpLines is the text of the help panel.
var HelpLines = []string{
	"Type in ODEs",
	"double click to add initial point",
	"right click to clear solutions",
	"hold and drag to move canvas",
	"This will re-draw the solutions so that clear before drag is recommended",
}

type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

type Options struct {
	Viewport *viewport.Viewport
	Surface  Surface
	Text     TextField
	Logger   *log.Logger

	// ODE is submitted once during New. Empty means DefaultODE.
	ODE string
	// Seeds are added before the first redraw.
	Seeds []dynamo.Point
	// MaxSteps caps each walk direction; zero means no cap.
	MaxSteps int
}

type Controller struct {
	view    *viewport.Viewport
	eval    *expr.Evaluator
	sampler *field.Sampler
	tracer  *integrators.Tracer
	surface Surface
	text    TextField
	log     *log.Logger

	seeds  []dynamo.Point
	state  State
	anchor dynamo.Point

	helpOpen bool
	closed   bool

	lastField  *field.Field
	lastTraces []integrators.Trajectory
	redraws    int
}

// New builds a controller, submits the initial ODE and performs the first
// full redraw. An invalid initial ODE is returned as an error.
func New(opts Options) (*Controller, error) {
	view := opts.Viewport
	if view == nil {
		view = viewport.Default()
	}
	surface := opts.Surface
	if surface == nil {
		surface = NopSurface{}
	}
	text := opts.Text
	if text == nil {
		text = &StringField{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	c := &Controller{
		view:    view,
		eval:    expr.NewEvaluator(),
		sampler: field.NewSampler(view.GridSpacing),
		tracer:  integrators.NewTracer(opts.MaxSteps),
		surface: surface,
		text:    text,
		log:     logger,
		seeds:   make([]dynamo.Point, 0, len(opts.Seeds)),
	}
	c.seeds = append(c.seeds, opts.Seeds...)

	ode := opts.ODE
	if ode == "" {
		ode = DefaultODE
	}
	if _, err := c.eval.Submit(ode); err != nil {
		return nil, fmt.Errorf("initial ode %q: %w", ode, err)
	}
	c.text.SetText(ode)
	c.Redraw()
	return c, nil
}

func (c *Controller) State() State                     { return c.state }
func (c *Controller) Viewport() *viewport.Viewport     { return c.view }
func (c *Controller) Func() *expr.Func                 { return c.eval.Active() }
func (c *Controller) HelpOpen() bool                   { return c.helpOpen }
func (c *Controller) Closed() bool                     { return c.closed }
func (c *Controller) Redraws() int                     { return c.redraws }
func (c *Controller) Field() *field.Field              { return c.lastField }
func (c *Controller) Traces() []integrators.Trajectory { return c.lastTraces }

// Seeds returns a copy of the seed list in insertion order.
func (c *Controller) Seeds() []dynamo.Point {
	out := make([]dynamo.Point, len(c.seeds))
	copy(out, c.seeds)
	return out
}

// Press handles a button press.
//
//   - plot, primary, single: start dragging from the pointer position
//   - plot, primary, double: add a seed and draw its curve incrementally
//   - plot, secondary: clear all seeds and redraw
//   - text, secondary: clear the text field
func (c *Controller) Press(ev Event) {
	if c.closed {
		return
	}
	switch ev.Region {
	case RegionPlot:
		switch ev.Button {
		case ButtonPrimary:
			if ev.Double {
				c.AddSeed(ev.Point())
				return
			}
			c.state = StateDragging
			c.anchor = ev.Point()
			c.log.Debug("drag start", "anchor", c.anchor)
		case ButtonSecondary:
			c.ClearSeeds()
		}
	case RegionText:
		if ev.Button == ButtonSecondary {
			c.text.SetText("")
		}
	}
}

// Release ends a drag when the primary button is released over the plot.
func (c *Controller) Release(ev Event) {
	if ev.Region == RegionPlot && ev.Button == ButtonPrimary && c.state == StateDragging {
		c.state = StateIdle
		c.log.Debug("drag end", "center", c.view.Center())
	}
}

// Motion pans by anchor - pointer while dragging. The front end maps the
// pointer through the updated viewport on the next event, so the data point
// under the pointer stays at the anchor and the plane tracks the pointer.
func (c *Controller) Motion(ev Event) {
	if c.closed || c.state != StateDragging || ev.Region != RegionPlot {
		return
	}
	d := c.anchor.Sub(ev.Point())
	if d.X == 0 && d.Y == 0 {
		return
	}
	c.view.Pan(d.X, d.Y)
	c.Redraw()
}

// Scroll zooms over the plot: wheel-up zooms in, wheel-down zooms out.
func (c *Controller) Scroll(ev Event) {
	if c.closed || ev.Region != RegionPlot {
		return
	}
	step := ev.ScrollStep()
	if step == 0 {
		return
	}
	c.Zoom(step)
}

// Zoom applies a zoom step and redraws.
func (c *Controller) Zoom(step float64) {
	c.view.Zoom(step)
	c.log.Debug("zoom", "step", step, "width", c.view.Width, "euler_step", c.view.Step)
	c.Redraw()
}

// Pan translates the viewport and redraws.
func (c *Controller) Pan(dx, dy float64) {
	c.view.Pan(dx, dy)
	c.Redraw()
}

// Submit compiles text as the new ODE. On success the active function is
// replaced and the plot redrawn. On failure the previous function stays
// active and the diagnostic is written into the text field. Blank input and
// echoed diagnostics are ignored and return nil.
func (c *Controller) Submit(text string) error {
	if c.closed {
		return nil
	}
	f, err := c.eval.Submit(text)
	if err != nil {
		if expr.IsNoop(err) {
			return nil
		}
		c.log.Debug("rejected ode", "text", text, "err", err)
		c.text.SetText(expr.Diagnostic(err))
		return err
	}
	c.log.Info("ode", "f", f.Source())
	c.Redraw()
	return nil
}

// AddSeed appends p and draws its curve on top of the current frame.
func (c *Controller) AddSeed(p dynamo.Point) {
	if c.closed {
		return
	}
	c.seeds = append(c.seeds, p)
	c.log.Debug("seed", "at", p, "count", len(c.seeds))
	tr := c.trace(p)
	c.lastTraces = append(c.lastTraces, tr)
	c.surface.DrawTrajectory(tr)
	c.surface.Flush()
}

// ClearSeeds drops every seed and redraws.
func (c *Controller) ClearSeeds() {
	if c.closed {
		return
	}
	c.seeds = c.seeds[:0]
	c.log.Debug("seeds cleared")
	c.Redraw()
}

// Redraw clears the surface, samples the field over the current bounds and
// retraces every seed.
func (c *Controller) Redraw() {
	if c.closed {
		return
	}
	b := c.view.Bounds()
	c.surface.Clear()
	c.surface.SetBounds(b)

	c.lastField = nil
	c.lastTraces = make([]integrators.Trajectory, 0, len(c.seeds))
	if f := c.eval.Active(); f != nil {
		fld, err := c.sampler.Sample(f, b)
		if err != nil {
			c.log.Warn("field sampling failed", "bounds", b, "err", err)
		} else {
			c.lastField = fld
			c.surface.DrawField(fld)
		}
		for _, s := range c.seeds {
			tr := c.trace(s)
			c.lastTraces = append(c.lastTraces, tr)
			c.surface.DrawTrajectory(tr)
		}
	}
	c.surface.Flush()
	c.redraws++
}

func (c *Controller) trace(seed dynamo.Point) integrators.Trajectory {
	f := c.eval.Active()
	if f == nil {
		return integrators.Trajectory{Seed: seed}
	}
	tr, err := c.tracer.Trace(f, seed, c.view.Bounds(), c.view.Step)
	if err != nil {
		var we *dynamo.WalkError
		if errors.As(err, &we) {
			c.log.Warn("walk truncated", "seed", seed, "steps", we.Step, "at", we.At)
		} else {
			c.log.Warn("trace failed", "seed", seed, "err", err)
		}
	}
	return tr
}

// OpenHelp shows the help panel. A second call while it is open does nothing.
func (c *Controller) OpenHelp() {
	if c.closed || c.helpOpen {
		return
	}
	c.helpOpen = true
}

func (c *Controller) CloseHelp() {
	c.helpOpen = false
}

func (c *Controller) ToggleHelp() {
	if c.helpOpen {
		c.CloseHelp()
		return
	}
	c.OpenHelp()
}

// Close ends the session and closes the help panel with it. Handlers are
// no-ops afterwards.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.helpOpen = false
	c.state = StateIdle
	c.closed = true
	c.log.Debug("session closed", "seeds", len(c.seeds), "redraws", c.redraws)
}

package session

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/expr"
)

func newTestController(t *testing.T) (*Controller, *RecordingSurface, *StringField) {
	t.Helper()
	surface := &RecordingSurface{}
	text := &StringField{}
	c, err := New(Options{Surface: surface, Text: text})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c, surface, text
}

func plot(b Button, x, y float64) Event {
	return Event{Region: RegionPlot, Button: b, X: x, Y: y}
}

func TestNewDrawsDefaultODE(t *testing.T) {
	c, surface, text := newTestController(t)

	if text.Value != DefaultODE {
		t.Errorf("expected text %q, got %q", DefaultODE, text.Value)
	}
	if c.Func() == nil || c.Func().Source() != DefaultODE {
		t.Fatalf("expected active function %q", DefaultODE)
	}
	if surface.Clears != 1 || surface.Fields != 1 || surface.Flushes != 1 {
		t.Errorf("expected one full redraw, got clears=%d fields=%d flushes=%d", surface.Clears, surface.Fields, surface.Flushes)
	}
	if c.State() != StateIdle {
		t.Errorf("expected idle, got %v", c.State())
	}
}

func TestNewRejectsInvalidODE(t *testing.T) {
	_, err := New(Options{ODE: "z + 1"})
	if !errors.Is(err, expr.ErrUndefinedSymbol) {
		t.Errorf("expected ErrUndefinedSymbol, got %v", err)
	}
}

func TestInstancesDoNotShareSeeds(t *testing.T) {
	a, _, _ := newTestController(t)
	b, _, _ := newTestController(t)

	a.AddSeed(dynamo.Point{X: 1, Y: 1})
	if len(b.Seeds()) != 0 {
		t.Errorf("seed leaked into another controller: %v", b.Seeds())
	}
}

func TestDoubleClickSeeding(t *testing.T) {
	c, surface, _ := newTestController(t)
	redraws := c.Redraws()

	first := plot(ButtonPrimary, 0.5, 0.5)
	first.Double = true
	second := plot(ButtonPrimary, -1, 1)
	second.Double = true

	c.Press(first)
	c.Press(second)

	seeds := c.Seeds()
	if len(seeds) != 2 {
		t.Fatalf("expected 2 seeds, got %d", len(seeds))
	}
	if seeds[0] != (dynamo.Point{X: 0.5, Y: 0.5}) || seeds[1] != (dynamo.Point{X: -1, Y: 1}) {
		t.Errorf("seeds out of order: %v", seeds)
	}
	if c.Redraws() != redraws {
		t.Error("double-click should draw incrementally, not redraw")
	}
	if len(surface.Drawn) != 2 {
		t.Errorf("expected 2 trajectories drawn, got %d", len(surface.Drawn))
	}
	if c.State() != StateIdle {
		t.Errorf("double-click should not start a drag, got %v", c.State())
	}

	c.Press(plot(ButtonSecondary, 0, 0))
	if len(c.Seeds()) != 0 {
		t.Errorf("expected seeds cleared, got %v", c.Seeds())
	}
	if c.Redraws() != redraws+1 {
		t.Error("right click should trigger a full redraw")
	}
	if len(surface.Drawn) != 0 {
		t.Errorf("expected no trajectories after clear, got %d", len(surface.Drawn))
	}
}

func TestIncrementalDrawOrder(t *testing.T) {
	c, surface, _ := newTestController(t)
	surface.ResetCalls()

	c.AddSeed(dynamo.Point{X: 0, Y: 0})
	calls := surface.Calls()
	if len(calls) != 2 || calls[0] != "trajectory" || calls[1] != "flush" {
		t.Errorf("unexpected incremental calls %v", calls)
	}

	surface.ResetCalls()
	c.Redraw()
	want := []string{"clear", "bounds", "field", "trajectory", "flush"}
	calls = surface.Calls()
	if len(calls) != len(want) {
		t.Fatalf("expected %v, got %v", want, calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d: expected %s, got %s", i, want[i], calls[i])
		}
	}
}

func TestDragPans(t *testing.T) {
	c, surface, _ := newTestController(t)

	c.Press(plot(ButtonPrimary, 1, 1))
	if c.State() != StateDragging {
		t.Fatalf("expected dragging, got %v", c.State())
	}

	before := c.Redraws()
	c.Motion(plot(ButtonNone, 0.5, 2))
	v := c.Viewport()
	if math.Abs(v.CenterX-0.5) > 1e-12 || math.Abs(v.CenterY+1) > 1e-12 {
		t.Errorf("expected center (0.5, -1), got (%v, %v)", v.CenterX, v.CenterY)
	}
	if c.Redraws() != before+1 {
		t.Error("motion while dragging should redraw")
	}
	if surface.Bounds != v.Bounds() {
		t.Errorf("surface bounds %v do not match viewport %v", surface.Bounds, v.Bounds())
	}

	c.Release(plot(ButtonPrimary, 0.5, 2))
	if c.State() != StateIdle {
		t.Errorf("expected idle after release, got %v", c.State())
	}

	c.Motion(plot(ButtonNone, 3, 3))
	if c.Redraws() != before+1 {
		t.Error("motion while idle should not redraw")
	}
}

func TestReleaseOutsidePlotKeepsDragging(t *testing.T) {
	c, _, _ := newTestController(t)
	c.Press(plot(ButtonPrimary, 0, 0))
	c.Release(Event{Region: RegionText, Button: ButtonPrimary})
	if c.State() != StateDragging {
		t.Errorf("expected dragging, got %v", c.State())
	}
}

func TestScrollZooms(t *testing.T) {
	tests := []struct {
		name   string
		ev     Event
		expect float64
	}{
		{"wheel up", Event{Region: RegionPlot, Button: ButtonWheelUp}, 5.4},
		{"wheel down", Event{Region: RegionPlot, Button: ButtonWheelDown}, 6.6},
		{"two notches", Event{Region: RegionPlot, Button: ButtonWheelUp, Step: 2}, 4.8},
		{"outside plot", Event{Region: RegionText, Button: ButtonWheelUp}, 6},
		{"not a wheel", Event{Region: RegionPlot, Button: ButtonPrimary}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestController(t)
			c.Scroll(tt.ev)
			if w := c.Viewport().Width; math.Abs(w-tt.expect) > 1e-12 {
				t.Errorf("expected width %v, got %v", tt.expect, w)
			}
		})
	}
}

func TestSubmit(t *testing.T) {
	c, _, text := newTestController(t)
	original := c.Func()

	if err := c.Submit("x + y"); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if c.Func() == original {
		t.Fatal("active function not replaced")
	}
	good := c.Func()

	tests := []struct {
		input    string
		wantText string
		wantErr  error
	}{
		{"z", "INVALID FUNCTION NAME: z", expr.ErrUndefinedSymbol},
		{"x +", "INVALID SYNTAX", expr.ErrSyntax},
	}
	for _, tt := range tests {
		err := c.Submit(tt.input)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Submit(%q): expected %v, got %v", tt.input, tt.wantErr, err)
		}
		if text.Value != tt.wantText {
			t.Errorf("Submit(%q): expected text %q, got %q", tt.input, tt.wantText, text.Value)
		}
		if c.Func() != good {
			t.Errorf("Submit(%q) replaced the active function", tt.input)
		}
	}

	redraws := c.Redraws()
	text.Value = "INVALID SYNTAX"
	if err := c.Submit(text.Value); err != nil {
		t.Errorf("echoed diagnostic should be ignored, got %v", err)
	}
	if err := c.Submit(""); err != nil {
		t.Errorf("empty submit should be ignored, got %v", err)
	}
	if c.Redraws() != redraws || text.Value != "INVALID SYNTAX" {
		t.Error("no-op submits changed state")
	}
}

func TestRightClickTextClearsField(t *testing.T) {
	c, _, text := newTestController(t)
	c.AddSeed(dynamo.Point{})
	c.Press(Event{Region: RegionText, Button: ButtonSecondary})
	if text.Value != "" {
		t.Errorf("expected empty text, got %q", text.Value)
	}
	if len(c.Seeds()) != 1 {
		t.Error("clearing the text field should not clear seeds")
	}
}

func TestHelpAndClose(t *testing.T) {
	c, _, _ := newTestController(t)

	c.OpenHelp()
	c.OpenHelp()
	if !c.HelpOpen() {
		t.Fatal("expected help open")
	}
	c.ToggleHelp()
	if c.HelpOpen() {
		t.Fatal("expected help closed")
	}

	c.ToggleHelp()
	c.Close()
	if !c.Closed() || c.HelpOpen() {
		t.Errorf("close should end the session and the help panel")
	}

	redraws := c.Redraws()
	c.Scroll(Event{Region: RegionPlot, Button: ButtonWheelUp})
	c.AddSeed(dynamo.Point{})
	c.OpenHelp()
	if c.Redraws() != redraws || len(c.Seeds()) != 0 || c.HelpOpen() {
		t.Error("handlers should be inert after close")
	}
}

func TestSeedOutsideBoundsDrawsNothing(t *testing.T) {
	c, surface, _ := newTestController(t)
	c.AddSeed(dynamo.Point{X: 3, Y: 0})
	if len(surface.Drawn) != 1 || !surface.Drawn[0].Empty() || surface.Drawn[0].Marker {
		t.Errorf("expected one empty unmarked trajectory, got %+v", surface.Drawn)
	}
}

func TestMaxStepsTruncates(t *testing.T) {
	c, err := New(Options{ODE: "0", MaxSteps: 5, Seeds: []dynamo.Point{{}}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tr := c.Traces()
	if len(tr) != 1 || len(tr[0].Forward) != 5 {
		t.Errorf("expected a 5-point forward walk, got %+v", tr)
	}
}

func TestClickTracker(t *testing.T) {
	ct := NewClickTracker()
	t0 := time.Unix(100, 0)

	tests := []struct {
		name string
		at   time.Duration
		x, y float64
		want bool
	}{
		{"first press", 0, 10, 10, false},
		{"quick second press", 200 * time.Millisecond, 10, 10, true},
		{"third press starts over", 300 * time.Millisecond, 10, 10, false},
		{"too far", 400 * time.Millisecond, 20, 10, false},
		{"too slow", 2 * time.Second, 20, 10, false},
		{"double at new spot", 2100 * time.Millisecond, 20.5, 10, true},
	}

	for _, tt := range tests {
		if got := ct.Press(t0.Add(tt.at), tt.x, tt.y); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestEventScrollStep(t *testing.T) {
	tests := []struct {
		ev   Event
		want float64
	}{
		{Event{Button: ButtonWheelUp}, 1},
		{Event{Button: ButtonWheelDown}, -1},
		{Event{Button: ButtonWheelDown, Step: -3}, -3},
		{Event{Button: ButtonWheelUp, Step: -3}, 3},
		{Event{Button: ButtonPrimary, Step: 2}, 0},
	}
	for _, tt := range tests {
		if got := tt.ev.ScrollStep(); got != tt.want {
			t.Errorf("%v step %v: expected %v, got %v", tt.ev.Button, tt.ev.Step, tt.want, got)
		}
	}
}

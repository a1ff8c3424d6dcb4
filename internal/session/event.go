package session

import (
	"math"
	"time"

	"github.com/san-kum/slopefield/internal/dynamo"
)

type Region int

const (
	RegionNone Region = iota
	RegionPlot
	RegionText
)

func (r Region) String() string {
	switch r {
	case RegionPlot:
		return "plot"
	case RegionText:
		return "text"
	}
	return "none"
}

type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonWheelUp
	ButtonWheelDown
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonWheelUp:
		return "wheel-up"
	case ButtonWheelDown:
		return "wheel-down"
	}
	return "none"
}

// Event is a pointer event already mapped to data coordinates. X and Y are
// meaningful only when Region is RegionPlot.
type Event struct {
	Region Region
	Button Button
	X, Y   float64
	Double bool
	// Step is the scroll amount. Zero means one notch in the direction of
	// Button.
	Step float64
}

func (e Event) Point() dynamo.Point {
	return dynamo.Point{X: e.X, Y: e.Y}
}

// ScrollStep returns the signed zoom step: positive for wheel-up, negative
// for wheel-down.
func (e Event) ScrollStep() float64 {
	step := math.Abs(e.Step)
	if step == 0 {
		step = 1
	}
	switch e.Button {
	case ButtonWheelUp:
		return step
	case ButtonWheelDown:
		return -step
	}
	return 0
}

const (
	DefaultDoubleClickInterval = 400 * time.Millisecond
	DefaultDoubleClickRadius   = 1.0
)

// ClickTracker synthesizes double-clicks for front ends that only report
// single presses. Coordinates are in whatever unit the caller uses for hit
// testing (terminal cells, screen pixels).
type ClickTracker struct {
	Interval time.Duration
	Radius   float64

	armed  bool
	last   time.Time
	lx, ly float64
}

func NewClickTracker() *ClickTracker {
	return &ClickTracker{Interval: DefaultDoubleClickInterval, Radius: DefaultDoubleClickRadius}
}

// Press records a primary press and reports whether it completes a
// double-click. A completed double-click disarms the tracker so a third
// press starts over.
func (c *ClickTracker) Press(now time.Time, x, y float64) bool {
	if c.armed && now.Sub(c.last) <= c.Interval && math.Abs(x-c.lx) <= c.Radius && math.Abs(y-c.ly) <= c.Radius {
		c.armed = false
		return true
	}
	c.armed = true
	c.last = now
	c.lx, c.ly = x, y
	return false
}

// Reset forgets the pending press.
func (c *ClickTracker) Reset() {
	c.armed = false
}

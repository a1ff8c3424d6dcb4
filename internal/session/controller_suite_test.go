package session_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/expr"
	"github.com/san-kum/slopefield/internal/session"
)

var _ = Describe("Controller", func() {
	var (
		c       *session.Controller
		surface *session.RecordingSurface
		text    *session.StringField
	)

	BeforeEach(func() {
		surface = &session.RecordingSurface{}
		text = &session.StringField{}
		var err error
		c, err = session.New(session.Options{Surface: surface, Text: text})
		Expect(err).NotTo(HaveOccurred())
	})

	at := func(b session.Button, x, y float64) session.Event {
		return session.Event{Region: session.RegionPlot, Button: b, X: x, Y: y}
	}

	Describe("state machine", func() {
		It("starts idle", func() {
			Expect(c.State()).To(Equal(session.StateIdle))
		})

		It("enters dragging on a primary press over the plot", func() {
			c.Press(at(session.ButtonPrimary, 0, 0))
			Expect(c.State()).To(Equal(session.StateDragging))
		})

		It("ignores presses outside the plot", func() {
			c.Press(session.Event{Region: session.RegionNone, Button: session.ButtonPrimary})
			Expect(c.State()).To(Equal(session.StateIdle))
		})

		It("returns to idle on release", func() {
			c.Press(at(session.ButtonPrimary, 0, 0))
			c.Release(at(session.ButtonPrimary, 0, 0))
			Expect(c.State()).To(Equal(session.StateIdle))
		})

		It("tracks the pointer while dragging", func() {
			c.Press(at(session.ButtonPrimary, 1, 1))
			c.Motion(at(session.ButtonNone, 2, 0))
			Expect(c.Viewport().Center()).To(Equal(dynamo.Point{X: -1, Y: 1}))
			Expect(c.State()).To(Equal(session.StateDragging))
		})

		It("stays idle on a double-click", func() {
			ev := at(session.ButtonPrimary, 0, 0)
			ev.Double = true
			c.Press(ev)
			Expect(c.State()).To(Equal(session.StateIdle))
			Expect(c.Seeds()).To(HaveLen(1))
		})
	})

	Describe("seeds", func() {
		It("keeps click order and clears on right click", func() {
			for _, p := range []dynamo.Point{{X: 1, Y: 0}, {X: -1, Y: 2}} {
				ev := at(session.ButtonPrimary, p.X, p.Y)
				ev.Double = true
				c.Press(ev)
			}
			Expect(c.Seeds()).To(Equal([]dynamo.Point{{X: 1, Y: 0}, {X: -1, Y: 2}}))

			c.Press(at(session.ButtonSecondary, 0, 0))
			Expect(c.Seeds()).To(BeEmpty())
			Expect(surface.Drawn).To(BeEmpty())
		})

		It("retraces every seed on a full redraw", func() {
			c.AddSeed(dynamo.Point{X: 0, Y: 0})
			c.AddSeed(dynamo.Point{X: 1, Y: 1})
			c.Zoom(1)
			Expect(surface.Drawn).To(HaveLen(2))
			Expect(c.Traces()).To(HaveLen(2))
			for _, tr := range c.Traces() {
				for _, p := range append(tr.Forward, tr.Backward...) {
					Expect(c.Viewport().Bounds().ContainsPoint(p)).To(BeTrue())
				}
			}
		})
	})

	Describe("submit", func() {
		It("keeps the last good function on error", func() {
			good := c.Func()
			err := c.Submit("q*x")
			Expect(err).To(MatchError(expr.ErrUndefinedSymbol))
			Expect(text.Text()).To(Equal("INVALID FUNCTION NAME: q"))
			Expect(c.Func()).To(BeIdenticalTo(good))
		})

		It("redraws with the new function", func() {
			before := c.Redraws()
			Expect(c.Submit("sin(x) * y")).To(Succeed())
			Expect(c.Redraws()).To(Equal(before + 1))
			Expect(surface.LastField.Arrows[0].Slope).To(BeNumerically("~", c.Func().At(-3, -3), 1e-12))
		})
	})

	Describe("help and close", func() {
		It("opens at most one help panel", func() {
			c.OpenHelp()
			c.OpenHelp()
			Expect(c.HelpOpen()).To(BeTrue())
			c.CloseHelp()
			Expect(c.HelpOpen()).To(BeFalse())
		})

		It("closes help with the session", func() {
			c.OpenHelp()
			c.Close()
			Expect(c.Closed()).To(BeTrue())
			Expect(c.HelpOpen()).To(BeFalse())
		})
	})
})

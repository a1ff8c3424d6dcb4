// Package session is the interaction controller. It owns the viewport, the
// active slope function, the seed list and the drag gesture, and turns
// pointer, keyboard and text events into viewport changes and redraws.
//
// One Controller exists per run. Every handler runs to completion on the
// caller's event loop; the Controller is not safe for concurrent use.
//
// Front ends supply a Surface to draw on and a TextField for the ODE input
// box, translate their native events into Event values in data
// coordinates, and call the matching handler:
//
//	c, err := session.New(session.Options{Surface: s, Text: t})
//	c.Press(session.Event{Region: session.RegionPlot, Button: session.ButtonPrimary, Double: true, X: 1, Y: 0.5})
//	c.Scroll(session.Event{Region: session.RegionPlot, Button: session.ButtonWheelUp})
package session

// Package dynamo provides the core primitives shared by the slope field tool.
//
// The package defines the small vocabulary every other package speaks:
//
//   - [Point]: a position in the (x, y) plane
//   - [Polyline]: an ordered run of points produced by the integrator
//   - [Bounds]: the visible rectangle, with an open-interval containment test
//   - [SlopeFunc]: the right-hand side f(x, y) of dy/dx = f(x, y)
//
// # Example
//
//	f, _ := expr.Compile("y**2 - 3*y + 1")
//	b := dynamo.Bounds{XMin: -3, XMax: 3, YMin: -3, YMax: 3}
//	tr := integrators.NewEuler().Trace(f, dynamo.Point{}, b, 0.01)
//
// # Thread Safety
//
// Values in this package are plain data. Nothing here is shared across
// goroutines by the rest of the tool.
package dynamo

// Package viz is the terminal front end.
//
// A [Model] is a bubbletea program that draws the direction field and the
// solution curves on a braille [Canvas] (2x4 sub-pixels per cell) and feeds
// mouse and key events to a session controller:
//
//   - [BrailleSurface]: session.Surface backed by two canvases, one for the
//     field and one for the curves, so each can carry its own style
//   - [Theme]: five built-in color schemes
//
// # Mouse
//
//	double click   add initial point
//	right click    clear solutions (or the ODE field)
//	drag           pan
//	wheel          zoom
//
// # Keys
//
//	arrows/hjkl  pan one grid cell
//	+ -          zoom
//	s            seed at the center
//	c            clear solutions
//	tab          edit the ODE
//	?            help
//	q            quit
package viz

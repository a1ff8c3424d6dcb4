// Package analysis describes solution curves after they are traced.
//
//   - [Summarize]: steps, arc length, exit edge and y range of a trajectory
//   - [LyapunovExponent]: separation rate of neighboring solutions
//   - [Equilibria]: zeros of f on a vertical line with their stability
//   - [Isocline]: approximate nullcline from a sampled field
//
// # Stability
//
// For dy/dx = y**2 - 3*y + 1 the constant solutions are y = (3 ± √5)/2:
//
//	for _, e := range analysis.Equilibria(f, 0, -3, 3, 61) {
//		fmt.Println(e.Y, e.Stable()) // 0.38 true, 2.62 false
//	}
package analysis

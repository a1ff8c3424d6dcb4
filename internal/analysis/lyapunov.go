package analysis

import (
	"math"

	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/integrators"
)

// LyapunovExponent estimates how fast neighboring solutions separate along
// the walk from seed with step h. Negative means nearby curves merge into
// this one, positive means they peel away.
//
// Two Euler walks start perturbation apart in y. After every step the
// separation is measured and the perturbed walk is pulled back to the
// initial distance:
//
//	λ ≈ Σ ln(|δy_k| / δy_0) / (n·|h|)
//
// The walk stops when the base point leaves b. NaN if no step was taken.
func LyapunovExponent(f dynamo.SlopeFunc, seed dynamo.Point, b dynamo.Bounds, h, perturbation float64) float64 {
	d0 := math.Abs(perturbation)
	if d0 == 0 || h == 0 || math.IsNaN(h) {
		return math.NaN()
	}

	euler := integrators.NewEuler()
	p := seed
	q := dynamo.Point{X: seed.X, Y: seed.Y + d0}

	sumLog := 0.0
	count := 0
	for b.ContainsPoint(p) {
		p = euler.Step(f, p, h)
		q = euler.Step(f, q, h)

		sep := math.Abs(q.Y - p.Y)
		if !(sep > 0) || math.IsInf(sep, 0) {
			break
		}
		sumLog += math.Log(sep / d0)
		count++

		// renormalize
		q.Y = p.Y + (q.Y-p.Y)*d0/sep
	}

	if count == 0 {
		return math.NaN()
	}
	return sumLog / (float64(count) * math.Abs(h))
}

// Equilibrium is a zero of f on a vertical line.
type Equilibrium struct {
	Y float64
	// Slope is ∂f/∂y at the zero: negative for an attracting solution,
	// positive for a repelling one.
	Slope float64
}

func (e Equilibrium) Stable() bool { return e.Slope < 0 }

// Equilibria scans the segment x = const, y in [ymin, ymax] at n points and
// refines every sign change of f by bisection. Sign changes across a pole
// are dropped. For an autonomous ODE these are the constant solutions.
func Equilibria(f dynamo.SlopeFunc, x, ymin, ymax float64, n int) []Equilibrium {
	if n < 2 || !(ymax > ymin) {
		return nil
	}
	var out []Equilibrium
	dy := (ymax - ymin) / float64(n-1)
	y0, f0 := ymin, f.At(x, ymin)
	for i := 1; i < n; i++ {
		y1 := ymin + float64(i)*dy
		f1 := f.At(x, y1)
		if isFinite(f0) && isFinite(f1) && (f0 == 0 || f0*f1 < 0) {
			y := bisect(f, x, y0, y1, f0)
			// a pole also flips sign; a zero leaves f small
			if math.Abs(f.At(x, y)) <= 1e-6*math.Max(1, math.Max(math.Abs(f0), math.Abs(f1))) {
				out = append(out, Equilibrium{Y: y, Slope: partialY(f, x, y, dy)})
			}
		}
		y0, f0 = y1, f1
	}
	return out
}

func bisect(f dynamo.SlopeFunc, x, lo, hi, flo float64) float64 {
	if flo == 0 {
		return lo
	}
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		fm := f.At(x, mid)
		if fm == 0 {
			return mid
		}
		if (fm < 0) == (flo < 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

func partialY(f dynamo.SlopeFunc, x, y, scale float64) float64 {
	d := 1e-6 * math.Max(1, scale)
	return (f.At(x, y+d) - f.At(x, y-d)) / (2 * d)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

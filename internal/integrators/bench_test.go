package integrators

import (
	"testing"

	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/expr"
)

var benchBounds = dynamo.Bounds{XMin: -3, XMax: 3, YMin: -3, YMax: 3}

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	f := dynamo.SlopeFuncOf(func(x, y float64) float64 { return -y })
	p := dynamo.Point{X: 0, Y: 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p = integrator.Step(f, p, 0.01)
	}
}

func BenchmarkTrace_Compiled(b *testing.B) {
	f := expr.MustCompile("y**2 - 3*y + 1")
	seed := dynamo.Point{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Trace(f, seed, benchBounds, 0.01)
	}
}

func BenchmarkTrace_Native(b *testing.B) {
	f := dynamo.SlopeFuncOf(func(x, y float64) float64 { return y*y - 3*y + 1 })
	seed := dynamo.Point{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Trace(f, seed, benchBounds, 0.01)
	}
}

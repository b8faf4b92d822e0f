package integrators

import (
	"testing"

	"github.com/san-kum/odelab/internal/ivp"
)

var benchParams = ivp.Params{X0: 0, Y0: 0, X: 7, N: 1000}

func benchmarkSolve(b *testing.B, m Method) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = MustSolve(m, ivp.ExpForced, benchParams)
	}
}

func BenchmarkExact(b *testing.B)         { benchmarkSolve(b, NewExact()) }
func BenchmarkEuler(b *testing.B)         { benchmarkSolve(b, NewEuler()) }
func BenchmarkImprovedEuler(b *testing.B) { benchmarkSolve(b, NewImprovedEuler()) }
func BenchmarkRK4(b *testing.B)           { benchmarkSolve(b, NewRK4()) }

func BenchmarkRK4Step(b *testing.B) {
	integ := NewRK4()
	y := 0.0
	h := 0.007

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		y = integ.Next(ivp.ExpForced, 0, 0, float64(i%1000)*h, y, h)
	}
	_ = y
}

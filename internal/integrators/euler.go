package integrators

import "github.com/san-kum/odelab/internal/ivp"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }
func (e *Euler) Order() int   { return 1 }

func (e *Euler) Next(p ivp.Problem, x0, y0, xi, yi, h float64) float64 {
	return EulerStep(p.F, xi, yi, h)
}

// EulerStep is one explicit Euler step: yi + h*f(xi, yi).
func EulerStep(f ivp.RightHandSide, xi, yi, h float64) float64 {
	return yi + h*f(xi, yi)
}

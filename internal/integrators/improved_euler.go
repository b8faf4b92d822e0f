package integrators

import "github.com/san-kum/odelab/internal/ivp"

// ImprovedEuler is Heun's predictor-corrector: an Euler step predicts y at
// xi+h and the trapezoid of the two slopes corrects it.
type ImprovedEuler struct{}

func NewImprovedEuler() *ImprovedEuler {
	return &ImprovedEuler{}
}

func (e *ImprovedEuler) Name() string { return "improved_euler" }
func (e *ImprovedEuler) Order() int   { return 2 }

func (e *ImprovedEuler) Next(p ivp.Problem, x0, y0, xi, yi, h float64) float64 {
	pre := EulerStep(p.F, xi, yi, h)
	return yi + h/2*(p.F(xi, yi)+p.F(xi+h, pre))
}

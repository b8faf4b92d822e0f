package integrators

import "github.com/san-kum/odelab/internal/ivp"

// Exact evaluates the problem's closed form at each node. Used as ground truth.
type Exact struct{}

func NewExact() *Exact {
	return &Exact{}
}

func (e *Exact) Name() string { return "exact" }
func (e *Exact) Order() int   { return 0 }

func (e *Exact) Next(p ivp.Problem, x0, y0, xi, yi, h float64) float64 {
	return p.Exact(x0, y0)(xi + h)
}

// solveAll builds the closed form once and evaluates it at every node,
// matching what Next gives step by step.
func (e *Exact) solveAll(p ivp.Problem, params ivp.Params) ivp.Trajectory {
	y := p.Exact(params.X0, params.Y0)
	h := params.StepSize()
	ys := make(ivp.Trajectory, params.N+1)
	ys[0] = params.Y0
	for i := 1; i <= params.N; i++ {
		ys[i] = y(params.Node(i-1) + h)
	}
	return ys
}

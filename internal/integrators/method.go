package integrators

import (
	"fmt"

	"github.com/san-kum/odelab/internal/ivp"
)

// Method is a single-step rule: given the current node (xi, yi) it returns
// the approximation at xi+h. x0 and y0 are passed through for methods that
// need the initial condition.
type Method interface {
	Name() string
	Order() int
	Next(p ivp.Problem, x0, y0, xi, yi, h float64) float64
}

// methods that can fill a whole trajectory without stepping
type wholeSolver interface {
	solveAll(p ivp.Problem, params ivp.Params) ivp.Trajectory
}

// Solve runs m over the N equally spaced steps of params and returns the
// N+1 values at the nodes. Element 0 is always y0.
func Solve(m Method, p ivp.Problem, params ivp.Params) (ivp.Trajectory, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name(), err)
	}

	if ws, ok := m.(wholeSolver); ok {
		return ws.solveAll(p, params), nil
	}

	h := params.StepSize()
	ys := make(ivp.Trajectory, params.N+1)
	y := params.Y0
	ys[0] = y
	for i := 1; i <= params.N; i++ {
		y = m.Next(p, params.X0, params.Y0, params.Node(i-1), y, h)
		ys[i] = y
	}
	return ys, nil
}

func MustSolve(m Method, p ivp.Problem, params ivp.Params) ivp.Trajectory {
	ys, err := Solve(m, p, params)
	if err != nil {
		panic(err)
	}
	return ys
}

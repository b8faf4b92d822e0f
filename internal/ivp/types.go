package ivp

import "math"

// RightHandSide is f in y' = f(x, y).
type RightHandSide func(x, y float64) float64

// ClosedForm returns the particular solution passing through (x0, y0).
type ClosedForm func(x0, y0 float64) func(x float64) float64

// Problem pairs a right-hand side with the closed form that solves it.
type Problem struct {
	Name        string
	Description string
	F           RightHandSide
	Exact       ClosedForm
}

// Params is one solve request. X0 <= X and N >= 1 are required.
type Params struct {
	X0 float64
	Y0 float64
	X  float64
	N  int
}

// Validate rejects non-finite inputs, N < 1 and X before x0.
func (p Params) Validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{{"x0", p.X0}, {"y0", p.Y0}, {"X", p.X}} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return &ParamError{Field: v.name, Value: v.val, Reason: "must be finite"}
		}
	}
	if p.N < 1 {
		return &ParamError{Field: "N", Value: p.N, Reason: "step count must be at least 1"}
	}
	if p.X0 > p.X {
		return &ParamError{Field: "X", Value: p.X, Reason: "endpoint must not precede x0"}
	}
	return nil
}

// StepSize is h = (X - x0) / N.
func (p Params) StepSize() float64 {
	return (p.X - p.X0) / float64(p.N)
}

// Node returns x_i = x0 + i*h. It is computed directly rather than
// accumulated so node i carries a single rounding.
func (p Params) Node(i int) float64 {
	return p.X0 + float64(i)*p.StepSize()
}

func (p Params) Nodes() []float64 {
	xs := make([]float64, p.N+1)
	for i := range xs {
		xs[i] = p.Node(i)
	}
	return xs
}

// WithN returns a copy of p using step count n.
func (p Params) WithN(n int) Params {
	p.N = n
	return p
}

// Trajectory holds y_0..y_N for the nodes of a Params.
type Trajectory []float64

// IsValid reports whether every value is finite.
func (t Trajectory) IsValid() bool {
	for _, v := range t {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

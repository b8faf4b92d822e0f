// Package ivp defines scalar first-order initial-value problems.
//
// A problem pairs a right-hand side f(x, y) with the closed-form solver that
// produces its particular solution, so the two can never drift apart:
//
//   - [Problem]: right-hand side plus matching closed form
//   - [Params]: initial condition (x0, y0), endpoint X and step count N
//   - [Trajectory]: the N+1 values at the nodes x0 + i*h
//
// # Example
//
//	p := ivp.ExpForced
//	params := ivp.Params{X0: 0, Y0: 0, X: 7, N: 11}
//	y := p.Exact(params.X0, params.Y0)
//	fmt.Println(y(params.Node(3)))
//
// # Thread Safety
//
// All types are values with no hidden state and may be shared freely.
package ivp

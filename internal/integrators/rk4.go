package integrators

import "github.com/san-kum/odelab/internal/ivp"

type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }
func (r *RK4) Order() int   { return 4 }

func (r *RK4) Next(p ivp.Problem, x0, y0, xi, yi, h float64) float64 {
	f := p.F
	k1 := h * f(xi, yi)
	k2 := h * f(xi+h*0.5, yi+k1*0.5)
	k3 := h * f(xi+h*0.5, yi+k2*0.5)
	k4 := h * f(xi+h, yi+k3)
	return yi + (k1+2*k2+2*k3+k4)/6.0
}

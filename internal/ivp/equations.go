package ivp

import (
	"fmt"
	"math"
	"sort"
)

// ExpForced is y' = 2e^x - y with y(x) = (e^(2x) + c) / e^x,
// c = e^(x0)*y0 - e^(2*x0).
var ExpForced = Problem{
	Name:        "exp_forced",
	Description: "y' = 2e^x - y",
	F: func(x, y float64) float64 {
		return 2*math.Exp(x) - y
	},
	Exact: func(x0, y0 float64) func(float64) float64 {
		c := math.Exp(x0)*y0 - math.Exp(2*x0)
		return func(x float64) float64 {
			return (math.Exp(2*x) + c) / math.Exp(x)
		}
	},
}

// Growth is y' = y with y(x) = y0*e^(x - x0).
var Growth = Problem{
	Name:        "growth",
	Description: "y' = y",
	F: func(x, y float64) float64 {
		return y
	},
	Exact: func(x0, y0 float64) func(float64) float64 {
		return func(x float64) float64 {
			return y0 * math.Exp(x-x0)
		}
	},
}

// Relaxation is y' = x - y with y(x) = x - 1 + (y0 - x0 + 1)*e^(x0 - x).
var Relaxation = Problem{
	Name:        "relaxation",
	Description: "y' = x - y",
	F: func(x, y float64) float64 {
		return x - y
	},
	Exact: func(x0, y0 float64) func(float64) float64 {
		k := y0 - x0 + 1
		return func(x float64) float64 {
			return x - 1 + k*math.Exp(x0-x)
		}
	},
}

var equations = map[string]Problem{
	ExpForced.Name:  ExpForced,
	Growth.Name:     Growth,
	Relaxation.Name: Relaxation,
}

// Lookup finds a built-in problem by name.
func Lookup(name string) (Problem, error) {
	p, ok := equations[name]
	if !ok {
		return Problem{}, fmt.Errorf("%w: %s", ErrUnknownEquation, name)
	}
	return p, nil
}

// Equations returns the registered problems ordered by name.
func Equations() []Problem {
	out := make([]Problem, 0, len(equations))
	for _, p := range equations {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

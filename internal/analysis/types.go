package analysis

import (
	"github.com/san-kum/odelab/internal/integrators"
	"github.com/san-kum/odelab/internal/ivp"
)

// Entry is a method plus the metadata a renderer needs to show it.
// Color is a CSS colour name; the analysis never interprets it.
type Entry struct {
	Method integrators.Method
	Label  string
	Color  string
}

type Series struct {
	Name   string    `json:"name"`
	Color  string    `json:"color"`
	Values []float64 `json:"values"`
}

type Solutions struct {
	Params ivp.Params `json:"params"`
	Xs     []float64  `json:"xs"`
	Exact  Series     `json:"exact"`
	Approx []Series   `json:"approx"`
}

type ErrorCurves struct {
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Total []float64 `json:"total"`
	Local []float64 `json:"local"`
}

// MaxTotal is the largest global error along the curve.
func (c ErrorCurves) MaxTotal() float64 {
	return maxOrZero(c.Total)
}

// Sweep holds maximum error against step count, Ns[k] = k+1.
type Sweep struct {
	Ns     []int    `json:"ns"`
	Series []Series `json:"series"`
}

// Report bundles all three views for one request.
type Report struct {
	Problem   string        `json:"problem"`
	Solutions *Solutions    `json:"solutions"`
	Errors    []ErrorCurves `json:"errors"`
	Sweep     *Sweep        `json:"sweep"`
}

// ErrorSeries flattens curves into plottable series. Local curves, when
// requested, take the darker variant of the method colour.
func ErrorSeries(curves []ErrorCurves, local bool) []Series {
	out := make([]Series, 0, 2*len(curves))
	for _, c := range curves {
		out = append(out, Series{Name: c.Name + " (total)", Color: c.Color, Values: c.Total})
		if local {
			out = append(out, Series{Name: c.Name + " (local)", Color: DarkColor(c.Color), Values: c.Local})
		}
	}
	return out
}

// DarkColor maps a CSS colour name to its half-intensity variant.
func DarkColor(c string) string {
	switch c {
	case "red", "green", "blue", "cyan", "magenta":
		return "dark" + c
	case "yellow":
		return "olive"
	default:
		return c
	}
}

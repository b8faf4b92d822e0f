package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/odelab/internal/analysis"
	"github.com/san-kum/odelab/internal/integrators"
	"github.com/san-kum/odelab/internal/ivp"
)

var ErrUnknownMethod = errors.New("experiment: unknown method")

// MethodInfo carries the legend name and colour shown next to a method.
type MethodInfo struct {
	Name  string
	Label string
	Color string
	New   func() integrators.Method
}

type Registry struct {
	equations map[string]func() ivp.Problem
	methods   map[string]MethodInfo
	order     []string
}

func NewRegistry() *Registry {
	r := &Registry{
		equations: make(map[string]func() ivp.Problem),
		methods:   make(map[string]MethodInfo),
	}

	for _, p := range ivp.Equations() {
		p := p
		r.equations[p.Name] = func() ivp.Problem { return p }
	}

	r.register(MethodInfo{Name: "exact", Label: "Exact solution", Color: "red",
		New: func() integrators.Method { return integrators.NewExact() }})
	r.register(MethodInfo{Name: "euler", Label: "Euler's method", Color: "green",
		New: func() integrators.Method { return integrators.NewEuler() }})
	r.register(MethodInfo{Name: "improved_euler", Label: "Improved Euler's method", Color: "cyan",
		New: func() integrators.Method { return integrators.NewImprovedEuler() }})
	r.register(MethodInfo{Name: "rk4", Label: "Runge-Kutta method", Color: "blue",
		New: func() integrators.Method { return integrators.NewRK4() }})

	return r
}

func (r *Registry) register(info MethodInfo) {
	if _, ok := r.methods[info.Name]; !ok {
		r.order = append(r.order, info.Name)
	}
	r.methods[info.Name] = info
}

func (r *Registry) GetEquation(name string) (ivp.Problem, error) {
	fn, ok := r.equations[name]
	if !ok {
		return ivp.Problem{}, fmt.Errorf("%w: %s", ivp.ErrUnknownEquation, name)
	}
	return fn(), nil
}

func (r *Registry) GetMethod(name string) (MethodInfo, error) {
	info, ok := r.methods[name]
	if !ok {
		return MethodInfo{}, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
	}
	return info, nil
}

// MethodByLabel is the reverse of the legend lookup; saved runs record
// labels only.
func (r *Registry) MethodByLabel(label string) (MethodInfo, error) {
	for _, name := range r.order {
		if info := r.methods[name]; info.Label == label {
			return info, nil
		}
	}
	return MethodInfo{}, fmt.Errorf("%w: label %q", ErrUnknownMethod, label)
}

// Entry builds the analysis entry for a registered method.
func (r *Registry) Entry(name string) (analysis.Entry, error) {
	info, err := r.GetMethod(name)
	if err != nil {
		return analysis.Entry{}, err
	}
	return analysis.Entry{Method: info.New(), Label: info.Label, Color: info.Color}, nil
}

func (r *Registry) ListEquations() []string {
	names := make([]string, 0, len(r.equations))
	for name := range r.equations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListMethods returns the numerical methods in registration order.
func (r *Registry) ListMethods() []string {
	names := make([]string, 0, len(r.order))
	for _, name := range r.order {
		if name != "exact" {
			names = append(names, name)
		}
	}
	return names
}

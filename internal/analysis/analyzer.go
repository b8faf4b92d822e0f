package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/odelab/internal/integrators"
	"github.com/san-kum/odelab/internal/ivp"
)

// Analyzer compares a set of methods against the exact solution of one problem.
type Analyzer struct {
	problem ivp.Problem
	exact   Entry
	methods []Entry
	workers int
	logger  *slog.Logger
}

type Option func(*Analyzer)

// WithWorkers bounds the goroutines used by TotalErrorVsN. Values below 1
// fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(a *Analyzer) { a.workers = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithExact replaces the ground-truth entry. Mostly useful to relabel it.
func WithExact(e Entry) Option {
	return func(a *Analyzer) { a.exact = e }
}

// New builds an analyzer for p. The exact entry defaults to the closed form.
func New(p ivp.Problem, methods []Entry, opts ...Option) *Analyzer {
	a := &Analyzer{
		problem: p,
		exact:   Entry{Method: integrators.NewExact(), Label: "Exact solution", Color: "red"},
		methods: append([]Entry(nil), methods...),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.workers < 1 {
		a.workers = runtime.GOMAXPROCS(0)
	}
	return a
}

func (a *Analyzer) Problem() ivp.Problem { return a.problem }
func (a *Analyzer) Methods() []Entry     { return append([]Entry(nil), a.methods...) }

func (a *Analyzer) SolutionsAt(params ivp.Params) (*Solutions, error) {
	exact, err := integrators.Solve(a.exact.Method, a.problem, params)
	if err != nil {
		return nil, err
	}

	sol := &Solutions{
		Params: params,
		Xs:     params.Nodes(),
		Exact:  Series{Name: a.exact.Label, Color: a.exact.Color, Values: exact},
		Approx: make([]Series, 0, len(a.methods)),
	}
	for _, e := range a.methods {
		ys, err := integrators.Solve(e.Method, a.problem, params)
		if err != nil {
			return nil, err
		}
		if !ys.IsValid() {
			a.logger.Warn("trajectory has non-finite values",
				"problem", a.problem.Name, "method", e.Label, "n", params.N)
		}
		sol.Approx = append(sol.Approx, Series{Name: e.Label, Color: e.Color, Values: ys})
	}
	return sol, nil
}

func (a *Analyzer) ErrorsVsX(params ivp.Params) ([]ErrorCurves, error) {
	sol, err := a.SolutionsAt(params)
	if err != nil {
		return nil, err
	}
	return errorCurves(sol), nil
}

func errorCurves(sol *Solutions) []ErrorCurves {
	curves := make([]ErrorCurves, 0, len(sol.Approx))
	for _, s := range sol.Approx {
		total := GlobalError(s.Values, sol.Exact.Values)
		curves = append(curves, ErrorCurves{
			Name:  s.Name,
			Color: s.Color,
			Total: total,
			Local: LocalError(total),
		})
	}
	return curves
}

// GlobalError returns |approx[i] - exact[i]| for every node.
func GlobalError(approx, exact []float64) []float64 {
	if len(approx) != len(exact) {
		panic(fmt.Sprintf("analysis: trajectory length mismatch %d != %d", len(approx), len(exact)))
	}
	total := floats.SubTo(make([]float64, len(approx)), approx, exact)
	for i, d := range total {
		total[i] = math.Abs(d)
	}
	return total
}

// LocalError returns the node-to-node change of the global error, 0 at node 0.
func LocalError(total []float64) []float64 {
	local := make([]float64, len(total))
	for i := 1; i < len(total); i++ {
		local[i] = math.Abs(total[i] - total[i-1])
	}
	return local
}

// Analyze computes the solutions, the error curves at params.N and the
// error sweep for n = 1..params.N.
func (a *Analyzer) Analyze(ctx context.Context, params ivp.Params) (*Report, error) {
	return a.AnalyzeUpTo(ctx, params, params.N)
}

// AnalyzeUpTo is Analyze with the sweep bound given separately.
func (a *Analyzer) AnalyzeUpTo(ctx context.Context, params ivp.Params, nMax int) (*Report, error) {
	sol, err := a.SolutionsAt(params)
	if err != nil {
		return nil, err
	}
	sweep, err := a.TotalErrorVsN(ctx, params.WithN(nMax))
	if err != nil {
		return nil, err
	}
	return &Report{
		Problem:   a.problem.Name,
		Solutions: sol,
		Errors:    errorCurves(sol),
		Sweep:     sweep,
	}, nil
}

func maxOrZero(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	return floats.Max(vs)
}

package experiment

import (
	"context"
	"errors"
	"log/slog"

	"github.com/san-kum/odelab/internal/analysis"
	"github.com/san-kum/odelab/internal/ivp"
)

var ErrNotSetup = errors.New("experiment: not set up")

type Config struct {
	Equation string
	Methods  []string
	Params   ivp.Params
	// NMax bounds the error sweep; zero means Params.N.
	NMax    int
	Workers int
}

type Experiment struct {
	cfg      Config
	analyzer *analysis.Analyzer
	logger   *slog.Logger
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg, logger: slog.New(slog.DiscardHandler)}
}

// Setup resolves the equation and method names against r.
func (e *Experiment) Setup(r *Registry, logger *slog.Logger) error {
	if logger != nil {
		e.logger = logger
	}

	problem, err := r.GetEquation(e.cfg.Equation)
	if err != nil {
		return err
	}

	methods := e.cfg.Methods
	if len(methods) == 0 {
		methods = r.ListMethods()
	}
	entries := make([]analysis.Entry, 0, len(methods))
	for _, name := range methods {
		entry, err := r.Entry(name)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}

	exact, err := r.Entry("exact")
	if err != nil {
		return err
	}

	e.analyzer = analysis.New(problem, entries,
		analysis.WithExact(exact),
		analysis.WithWorkers(e.cfg.Workers),
		analysis.WithLogger(e.logger))
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*analysis.Report, error) {
	if e.analyzer == nil {
		return nil, ErrNotSetup
	}
	e.logger.Debug("running analysis",
		"equation", e.cfg.Equation,
		"x0", e.cfg.Params.X0,
		"y0", e.cfg.Params.Y0,
		"X", e.cfg.Params.X,
		"n", e.cfg.Params.N,
		"n_max", e.cfg.NMax)
	if e.cfg.NMax > 0 {
		return e.analyzer.AnalyzeUpTo(ctx, e.cfg.Params, e.cfg.NMax)
	}
	return e.analyzer.Analyze(ctx, e.cfg.Params)
}

func (e *Experiment) Config() Config { return e.cfg }

// Analyzer returns the underlying analyzer for single-view requests.
func (e *Experiment) Analyzer() *analysis.Analyzer {
	return e.analyzer
}

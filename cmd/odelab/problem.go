package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/odelab/internal/config"
	"github.com/san-kum/odelab/internal/experiment"
	"github.com/san-kum/odelab/internal/viz"
)

// problemFlags are shared by every command that computes something.
type problemFlags struct {
	preset    string
	x0        float64
	y0        float64
	x         float64
	n         int
	nMax      int
	methods   []string
	precision int
	workers   int
	theme     string
	width     int
	height    int
	logScale  bool
}

func (f *problemFlags) register(cmd *cobra.Command) {
	d := config.DefaultConfig()
	fs := cmd.Flags()
	fs.StringVar(&f.preset, "preset", "", "use preset configuration")
	fs.Float64Var(&f.x0, "x0", d.X0, "initial x")
	fs.Float64Var(&f.y0, "y0", d.Y0, "initial y")
	fs.Float64VarP(&f.x, "X", "X", d.X, "end of the interval")
	fs.IntVarP(&f.n, "n", "n", d.N, "number of steps")
	fs.IntVar(&f.nMax, "n-max", 0, "largest step count in the error sweep (default n)")
	fs.StringSliceVarP(&f.methods, "methods", "m", d.Methods, "methods to compare")
	fs.IntVar(&f.precision, "precision", d.Precision, "decimals shown in tables")
	fs.IntVar(&f.workers, "workers", d.Workers, "parallel workers for the error sweep")
	fs.StringVar(&f.theme, "theme", d.Theme, fmt.Sprintf("table theme %v", viz.ThemeNames()))
	fs.IntVar(&f.width, "width", 80, "plot width")
	fs.IntVar(&f.height, "height", 15, "plot height")
	fs.BoolVar(&f.logScale, "log", false, "plot errors on a log10 scale")
}

// resolve layers the config: defaults or --config file, then --preset, then
// explicitly set flags. The equation comes from args when given.
func (f *problemFlags) resolve(cmd *cobra.Command, args []string, registry *experiment.Registry) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.Equation = args[0]
	}

	if f.preset != "" {
		p := config.GetPreset(cfg.Equation, f.preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", f.preset, config.ListPresets(cfg.Equation))
		}
		cfg.Apply(p)
	}

	flags := cmd.Flags()
	if flags.Changed("x0") {
		cfg.X0 = f.x0
	}
	if flags.Changed("y0") {
		cfg.Y0 = f.y0
	}
	if flags.Changed("X") {
		cfg.X = f.x
	}
	if flags.Changed("n") {
		cfg.N = f.n
	}
	if flags.Changed("n-max") {
		cfg.NMax = f.nMax
	}
	if flags.Changed("methods") {
		cfg.Methods = f.methods
	}
	if flags.Changed("precision") {
		cfg.Precision = f.precision
	}
	if flags.Changed("workers") {
		cfg.Workers = f.workers
	}
	if flags.Changed("theme") {
		cfg.Theme = f.theme
	}
	cfg.DataDir = dataDirFor(cmd, cfg)

	if cfg.N > config.MaxN || cfg.NMax > config.MaxN {
		logger.Warn("step count clamped", "n", cfg.N, "n_max", cfg.NMax, "max", config.MaxN)
	}
	cfg.Normalize()
	if err := cfg.Validate(registry.ListMethods()); err != nil {
		return nil, err
	}
	if _, err := registry.GetEquation(cfg.Equation); err != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, registry.ListEquations())
	}
	return cfg, nil
}

// loadConfig returns the --config file decoded over the defaults, or the
// defaults alone.
func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// dataDirFor picks the run directory: an explicit --data wins over the
// config's data_dir.
func dataDirFor(cmd *cobra.Command, cfg *config.Config) string {
	if f := cmd.Flag("data"); f != nil && f.Changed {
		return dataDir
	}
	if cfg.DataDir == "" {
		return config.DefaultDataDir
	}
	return cfg.DataDir
}

// resolveDataDir is dataDirFor for commands that only read saved runs.
func resolveDataDir(cmd *cobra.Command) (string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	return dataDirFor(cmd, cfg), nil
}

func stylesFor(cfg *config.Config) viz.Styles {
	return viz.NewStyles(viz.GetTheme(cfg.Theme))
}

func newExperiment(cfg *config.Config, registry *experiment.Registry) (*experiment.Experiment, error) {
	exp := experiment.New(experiment.Config{
		Equation: cfg.Equation,
		Methods:  cfg.Methods,
		Params:   cfg.Params(),
		NMax:     cfg.NMax,
		Workers:  cfg.Workers,
	})
	if err := exp.Setup(registry, logger); err != nil {
		return nil, err
	}
	return exp, nil
}

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/odelab/internal/analysis"
	"github.com/san-kum/odelab/internal/config"
	"github.com/san-kum/odelab/internal/experiment"
	"github.com/san-kum/odelab/internal/numfmt"
	"github.com/san-kum/odelab/internal/storage"
	"github.com/san-kum/odelab/internal/viz"
)

// logFloor keeps exact zeros (the first node) plottable on a log scale.
const logFloor = 1e-16

func newSolveCmd() *cobra.Command {
	var f problemFlags
	var noTables bool
	cmd := &cobra.Command{
		Use:   "solve [equation]",
		Short: "approximate the solution with every method",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := experiment.NewRegistry()
			cfg, err := f.resolve(cmd, args, registry)
			if err != nil {
				return err
			}
			exp, err := newExperiment(cfg, registry)
			if err != nil {
				return err
			}
			sol, err := exp.Analyzer().SolutionsAt(cfg.Params())
			if err != nil {
				return err
			}

			series := append([]analysis.Series{sol.Exact}, sol.Approx...)
			fmt.Println(viz.Plot(fmt.Sprintf("%s: y(x), N=%d", cfg.Equation, cfg.N), series, f.width, f.height))
			if noTables {
				return nil
			}

			curves, err := exp.Analyzer().ErrorsVsX(cfg.Params())
			if err != nil {
				return err
			}
			report := &analysis.Report{Problem: cfg.Equation, Solutions: sol, Errors: curves}
			styles := stylesFor(cfg)
			for _, t := range report.MethodTables() {
				fmt.Println()
				fmt.Println(viz.MethodTable(t, cfg.Precision, styles))
			}
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&noTables, "no-tables", false, "only draw the plot")
	return cmd
}

func newErrorsCmd() *cobra.Command {
	var f problemFlags
	var noLocal bool
	cmd := &cobra.Command{
		Use:   "errors [equation]",
		Short: "total and local error against x",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := experiment.NewRegistry()
			cfg, err := f.resolve(cmd, args, registry)
			if err != nil {
				return err
			}
			exp, err := newExperiment(cfg, registry)
			if err != nil {
				return err
			}
			curves, err := exp.Analyzer().ErrorsVsX(cfg.Params())
			if err != nil {
				return err
			}

			series := analysis.ErrorSeries(curves, !noLocal)
			caption := fmt.Sprintf("%s: errors vs x, N=%d", cfg.Equation, cfg.N)
			if f.logScale {
				series = viz.LogSeries(series, logFloor)
				caption += " (log10)"
			}
			fmt.Println(viz.Plot(caption, series, f.width, f.height))
			fmt.Println()

			styles := stylesFor(cfg)
			for _, c := range curves {
				fmt.Printf("%s %-26s max total error %s\n",
					viz.Swatch(c.Color), c.Name, styles.Value.Render(numfmt.Format(c.MaxTotal(), cfg.Precision)))
			}
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&noLocal, "no-local", false, "hide local error curves")
	return cmd
}

func newSweepCmd() *cobra.Command {
	var f problemFlags
	var table bool
	cmd := &cobra.Command{
		Use:   "sweep [equation]",
		Short: "maximum error against the number of steps",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := experiment.NewRegistry()
			cfg, err := f.resolve(cmd, args, registry)
			if err != nil {
				return err
			}
			exp, err := newExperiment(cfg, registry)
			if err != nil {
				return err
			}

			params := cfg.SweepParams()
			start := time.Now()
			sweep, err := exp.Analyzer().TotalErrorVsN(cmd.Context(), params)
			if err != nil {
				return err
			}
			logger.Debug("sweep done", "n_max", params.N, "elapsed", time.Since(start))

			series := sweep.Series
			caption := fmt.Sprintf("%s: max total error vs N, N=1..%d", cfg.Equation, params.N)
			if f.logScale {
				series = viz.LogSeries(series, logFloor)
				caption += " (log10)"
			}
			fmt.Println(viz.Plot(caption, series, f.width, f.height))
			fmt.Println()

			styles := stylesFor(cfg)
			if table {
				fmt.Println(viz.SweepTable(sweep, cfg.Precision, styles))
				fmt.Println()
			}
			printSweepSummary(sweep, cfg, styles)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&table, "table", false, "print the full error table")
	return cmd
}

// printSweepSummary shows the final error per method and the convergence
// order observed between N/2 and N.
func printSweepSummary(sweep *analysis.Sweep, cfg *config.Config, styles viz.Styles) {
	nMax := len(sweep.Ns)
	final := sweep.Final()
	for _, s := range sweep.Series {
		order := "n/a"
		if nMax >= 4 {
			half := nMax / 2
			p := analysis.ObservedOrder(s.Values[half-1], s.Values[nMax-1], float64(nMax)/float64(half))
			order = numfmt.Format(p, 2)
		}
		fmt.Printf("%s %-26s e(N=%d) = %s  order ≈ %s  %s\n",
			viz.Swatch(s.Color), s.Name, nMax,
			styles.Value.Render(numfmt.Format(final[s.Name], cfg.Precision)),
			order,
			viz.SparklineChart(viz.LogSeries([]analysis.Series{s}, logFloor)[0].Values, 30, s.Color))
	}
}

func newRunCmd() *cobra.Command {
	var f problemFlags
	cmd := &cobra.Command{
		Use:   "run [equation]",
		Short: "full analysis, saved to the data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := experiment.NewRegistry()
			cfg, err := f.resolve(cmd, args, registry)
			if err != nil {
				return err
			}

			st := storage.New(cfg.DataDir).WithLogger(logger)
			if err := st.Init(); err != nil {
				return err
			}

			exp, err := newExperiment(cfg, registry)
			if err != nil {
				return err
			}

			fmt.Printf("running %s analysis...\n", cfg.Equation)
			start := time.Now()
			report, err := exp.Run(cmd.Context())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			runID, err := st.Save(report, cfg.Precision)
			if err != nil {
				return err
			}

			fmt.Printf("completed in %v\n", elapsed)
			fmt.Printf("run id: %s\n", runID)
			fmt.Printf("nodes: %d, sweep: N=1..%d\n", len(report.Solutions.Xs), len(report.Sweep.Ns))
			fmt.Println("\nmax total error:")
			for _, c := range report.Errors {
				fmt.Printf("  %s: %s\n", c.Name, numfmt.Format(c.MaxTotal(), cfg.Precision))
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [equation]",
		Short: "list presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			equations := experiment.NewRegistry().ListEquations()
			if len(args) > 0 {
				equations = args[:1]
			}
			for _, eq := range equations {
				names := config.ListPresets(eq)
				if len(names) == 0 {
					fmt.Printf("%s: no presets\n", eq)
					continue
				}
				fmt.Printf("%s:\n", eq)
				for _, name := range names {
					p := config.GetPreset(eq, name)
					line := fmt.Sprintf("  %-8s x0=%g y0=%g X=%g N=%d", name, p.X0, p.Y0, p.X, p.N)
					if p.NMax > 0 {
						line += fmt.Sprintf(" n_max=%d", p.NMax)
					}
					fmt.Println(line)
				}
			}
			return nil
		},
	}
}

func newEquationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "equations",
		Short: "list equations",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := experiment.NewRegistry()
			for _, name := range registry.ListEquations() {
				p, err := registry.GetEquation(name)
				if err != nil {
					return err
				}
				fmt.Printf("%-12s %s\n", name, p.Description)
			}
			fmt.Printf("\nmethods: %s\n", strings.Join(registry.ListMethods(), ", "))
			return nil
		},
	}
}

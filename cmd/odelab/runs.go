package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/odelab/internal/analysis"
	"github.com/san-kum/odelab/internal/experiment"
	"github.com/san-kum/odelab/internal/export"
	"github.com/san-kum/odelab/internal/ivp"
	"github.com/san-kum/odelab/internal/numfmt"
	"github.com/san-kum/odelab/internal/storage"
	"github.com/san-kum/odelab/internal/viz"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDataDir(cmd)
			if err != nil {
				return err
			}
			st := storage.New(dir).WithLogger(logger)
			runs, err := st.List()
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEQUATION\tTIME\tINTERVAL\tY0\tN\tN_MAX\tMETHODS")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t[%g, %g]\t%g\t%d\t%d\t%s\n",
					run.ID,
					run.Equation,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.X0, run.X,
					run.Y0,
					run.N,
					run.NMax,
					strings.Join(run.Methods, ", "),
				)
			}
			return w.Flush()
		},
	}
}

func newShowCmd() *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDataDir(cmd)
			if err != nil {
				return err
			}
			st := storage.New(dir).WithLogger(logger)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}

			styles := viz.NewStyles(viz.ThemeClassic)
			var b strings.Builder
			fmt.Fprintf(&b, "equation  %s\n", meta.Equation)
			fmt.Fprintf(&b, "saved     %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(&b, "interval  [%g, %g], y0 = %g\n", meta.X0, meta.X, meta.Y0)
			fmt.Fprintf(&b, "steps     N = %d, sweep N = 1..%d\n\n", meta.N, meta.NMax)
			b.WriteString("max total error\n")
			for _, m := range meta.Methods {
				fmt.Fprintf(&b, "  %s %-26s %s\n", viz.Swatch(meta.Colors[m]), m,
					numfmt.Format(meta.MaxErrors[m], meta.Precision))
			}
			fmt.Println(styles.Title.Render(meta.ID))
			fmt.Println(styles.Panel.Render(strings.TrimRight(b.String(), "\n")))

			for _, name := range []string{storage.SolutionsTable, storage.TotalErrorTable} {
				t, err := st.LoadTable(meta.ID, name)
				if err != nil {
					return err
				}
				xs, series := tableSeries(t, meta.Colors)
				if len(xs) == 0 {
					continue
				}
				fmt.Println()
				fmt.Println(viz.Plot(fmt.Sprintf("%s vs %s", name, t.Header[0]), series, width, height))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "plot width")
	cmd.Flags().IntVar(&height, "height", 12, "plot height")
	return cmd
}

// tableSeries splits a stored table into its first column and one series per
// remaining column. Error columns are named "<label> (total|local)".
func tableSeries(t *storage.Table, colors map[string]string) ([]float64, []analysis.Series) {
	if len(t.Columns) == 0 {
		return nil, nil
	}
	series := make([]analysis.Series, 0, len(t.Header)-1)
	for i, name := range t.Header[1:] {
		color := colors[name]
		switch {
		case strings.HasSuffix(name, " (total)"):
			color = colors[strings.TrimSuffix(name, " (total)")]
		case strings.HasSuffix(name, " (local)"):
			color = analysis.DarkColor(colors[strings.TrimSuffix(name, " (local)")])
		}
		series = append(series, analysis.Series{Name: name, Color: color, Values: t.Columns[i+1]})
	}
	return t.Columns[0], series
}

func newExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "recompute a saved run and export the full report as json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDataDir(cmd)
			if err != nil {
				return err
			}
			st := storage.New(dir).WithLogger(logger)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}

			exp, err := replay(meta)
			if err != nil {
				return err
			}
			report, err := exp.Run(cmd.Context())
			if err != nil {
				return err
			}

			if out == "" {
				return export.WriteJSON(os.Stdout, report)
			}
			if err := export.ExportJSON(out, report); err != nil {
				return err
			}
			fmt.Printf("exported to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

// replay rebuilds the experiment a run was saved from. Runs store method
// labels, which map back onto registry names.
func replay(meta *storage.RunMetadata) (*experiment.Experiment, error) {
	registry := experiment.NewRegistry()
	methods := make([]string, 0, len(meta.Methods))
	for _, label := range meta.Methods {
		info, err := registry.MethodByLabel(label)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", meta.ID, err)
		}
		methods = append(methods, info.Name)
	}

	exp := experiment.New(experiment.Config{
		Equation: meta.Equation,
		Methods:  methods,
		Params:   ivp.Params{X0: meta.X0, Y0: meta.Y0, X: meta.X, N: meta.N},
		NMax:     meta.NMax,
	})
	if err := exp.Setup(registry, logger); err != nil {
		return nil, err
	}
	return exp, nil
}

func newSVGCmd() *cobra.Command {
	var outDir string
	var width, height int
	cmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "recompute a saved run and write its charts as svg",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDataDir(cmd)
			if err != nil {
				return err
			}
			st := storage.New(dir).WithLogger(logger)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}

			exp, err := replay(meta)
			if err != nil {
				return err
			}
			report, err := exp.Run(cmd.Context())
			if err != nil {
				return err
			}

			if outDir == "" {
				outDir = filepath.Join(dir, meta.ID)
			}
			written, err := writeCharts(outDir, report, width, height)
			if err != nil {
				return err
			}
			for _, p := range written {
				fmt.Printf("wrote %s\n", p)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default the run directory)")
	cmd.Flags().IntVar(&width, "width", 800, "image width")
	cmd.Flags().IntVar(&height, "height", 400, "image height")
	return cmd
}

// writeCharts renders the solution, error and sweep charts of report into
// dir and returns the files written. Charts with fewer than two points are
// skipped.
func writeCharts(dir string, report *analysis.Report, width, height int) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	charts := []struct {
		name  string
		chart *export.Chart
	}{
		{storage.SolutionsTable, export.SolutionsChart(report.Solutions)},
		{storage.ErrorsTable, export.ErrorsChart(report.Solutions.Xs, report.Errors)},
	}
	if report.Sweep != nil {
		charts = append(charts, struct {
			name  string
			chart *export.Chart
		}{storage.TotalErrorTable, export.SweepChart(report.Sweep)})
	}

	written := make([]string, 0, len(charts))
	for _, c := range charts {
		svg := c.chart.SVG(width, height)
		if svg == "" {
			logger.Warn("not enough points to draw", "chart", c.name)
			continue
		}
		path := filepath.Join(dir, c.name+".svg")
		if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

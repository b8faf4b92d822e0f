package export

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/odelab/internal/analysis"
	"github.com/san-kum/odelab/internal/integrators"
	"github.com/san-kum/odelab/internal/ivp"
)

func report(t *testing.T) *analysis.Report {
	t.Helper()
	a := analysis.New(ivp.ExpForced, []analysis.Entry{
		{Method: integrators.NewEuler(), Label: "Euler's method", Color: "green"},
		{Method: integrators.NewImprovedEuler(), Label: "Improved Euler's method", Color: "cyan"},
	})
	r, err := a.Analyze(context.Background(), ivp.Params{X0: 0, Y0: 0, X: 7, N: 11})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	return r
}

func TestSolutionsChartSVG(t *testing.T) {
	r := report(t)
	svg := SolutionsChart(r.Solutions).SVG(800, 400)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatal("output is not a complete svg document")
	}
	if got := strings.Count(svg, "<path "); got != 3 {
		t.Errorf("expected 3 polylines, got %d", got)
	}
	for _, want := range []string{`stroke="red"`, `stroke="green"`, `stroke="cyan"`, "Exact solution", "Euler&#39;s method"} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestErrorsChart_LocalUsesDarkColor(t *testing.T) {
	r := report(t)
	chart := ErrorsChart(r.Solutions.Xs, r.Errors)

	if len(chart.Series) != 4 {
		t.Fatalf("expected 4 series, got %d", len(chart.Series))
	}
	if chart.Series[0].Color != "green" || chart.Series[1].Color != "darkgreen" {
		t.Errorf("unexpected colours %s/%s", chart.Series[0].Color, chart.Series[1].Color)
	}
	if !strings.HasSuffix(chart.Series[1].Name, "(local)") {
		t.Errorf("unexpected local series name %q", chart.Series[1].Name)
	}
}

func TestSweepChart(t *testing.T) {
	r := report(t)
	chart := SweepChart(r.Sweep)

	if len(chart.Xs) != 11 || chart.Xs[0] != 1 || chart.Xs[10] != 11 {
		t.Errorf("unexpected N axis %v", chart.Xs)
	}
	if chart.SVG(640, 320) == "" {
		t.Error("expected svg output")
	}
}

func TestChartSVG_Degenerate(t *testing.T) {
	c := &Chart{Xs: []float64{0}, Series: []analysis.Series{{Values: []float64{1}}}}
	if c.SVG(100, 100) != "" {
		t.Error("expected empty output for a single point")
	}
}

func TestPathData_BreaksOnNonFinite(t *testing.T) {
	id := func(v float64) float64 { return v }
	d := pathData([]float64{0, 1, 2, 3}, []float64{0, math.NaN(), 2, 3}, id, id)

	if got := strings.Count(d, "M"); got != 2 {
		t.Errorf("expected 2 subpaths, got %d in %q", got, d)
	}
	if strings.Contains(d, "NaN") {
		t.Errorf("NaN leaked into path: %q", d)
	}
}

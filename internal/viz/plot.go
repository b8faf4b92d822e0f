package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/odelab/internal/analysis"
)

// Plot draws every series on one chart. Series without finite values are
// skipped so a diverging method cannot blank out the others.
func Plot(caption string, series []analysis.Series, width, height int) string {
	data := make([][]float64, 0, len(series))
	colors := make([]asciigraph.AnsiColor, 0, len(series))
	legends := make([]string, 0, len(series))
	for _, s := range series {
		if !hasFinite(s.Values) {
			continue
		}
		data = append(data, s.Values)
		colors = append(colors, AnsiColor(s.Color))
		legends = append(legends, s.Name)
	}
	if len(data) == 0 {
		return caption + ": no data"
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
	)
}

// LogSeries maps values to log10, clamping zeros to floor. Error curves span
// many decades and read better this way.
func LogSeries(series []analysis.Series, floor float64) []analysis.Series {
	out := make([]analysis.Series, len(series))
	for i, s := range series {
		vals := make([]float64, len(s.Values))
		for k, v := range s.Values {
			vals[k] = math.Log10(math.Max(math.Abs(v), floor))
		}
		out[i] = analysis.Series{Name: s.Name, Color: s.Color, Values: vals}
	}
	return out
}

func hasFinite(vs []float64) bool {
	for _, v := range vs {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

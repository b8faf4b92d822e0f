package export

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/san-kum/odelab/internal/analysis"
)

const (
	marginLeft   = 60.0
	marginRight  = 180.0
	marginTop    = 30.0
	marginBottom = 40.0
)

// Chart is a set of polylines sharing one x axis.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Xs     []float64
	Series []analysis.Series
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func (c *Chart) bounds() bounds {
	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for _, x := range c.Xs {
		b.minX = math.Min(b.minX, x)
		b.maxX = math.Max(b.maxX, x)
	}
	for _, s := range c.Series {
		for _, y := range s.Values {
			if math.IsNaN(y) || math.IsInf(y, 0) {
				continue
			}
			b.minY = math.Min(b.minY, y)
			b.maxY = math.Max(b.maxY, y)
		}
	}

	if b.minY > b.maxY {
		b.minY, b.maxY = 0, 1
	}

	// Add padding
	rangeY := b.maxY - b.minY
	if rangeY == 0 {
		rangeY = 1
	}
	b.minY -= rangeY * 0.05
	b.maxY += rangeY * 0.05
	if b.maxX == b.minX {
		b.maxX = b.minX + 1
	}
	return b
}

// SVG renders the chart with axes and a legend. Non-finite points break
// the polyline rather than distorting the scale.
func (c *Chart) SVG(width, height int) string {
	if len(c.Xs) < 2 || len(c.Series) == 0 {
		return ""
	}

	b := c.bounds()
	plotW := float64(width) - marginLeft - marginRight
	plotH := float64(height) - marginTop - marginBottom
	px := func(x float64) float64 { return marginLeft + (x-b.minX)/(b.maxX-b.minX)*plotW }
	py := func(y float64) float64 { return marginTop + plotH - (y-b.minY)/(b.maxY-b.minY)*plotH }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="monospace" font-size="12">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height))

	if c.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="18" text-anchor="middle" font-size="14">%s</text>
`, marginLeft+plotW/2, html.EscapeString(c.Title)))
	}

	// Axes
	sb.WriteString(fmt.Sprintf(`<g stroke="#333333" stroke-width="1">
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
</g>
`, marginLeft, marginTop+plotH, marginLeft+plotW, marginTop+plotH,
		marginLeft, marginTop, marginLeft, marginTop+plotH))

	for i := 0; i <= 4; i++ {
		fx := b.minX + (b.maxX-b.minX)*float64(i)/4
		fy := b.minY + (b.maxY-b.minY)*float64(i)/4
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle">%.3g</text>
`, px(fx), marginTop+plotH+16, fx))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="end">%.3g</text>
`, marginLeft-6, py(fy)+4, fy))
	}
	if c.XLabel != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle">%s</text>
`, marginLeft+plotW/2, float64(height)-6, html.EscapeString(c.XLabel)))
	}
	if c.YLabel != "" {
		sb.WriteString(fmt.Sprintf(`<text x="14" y="%.1f" text-anchor="middle">%s</text>
`, marginTop+plotH/2, html.EscapeString(c.YLabel)))
	}

	for _, s := range c.Series {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="%s"/>
`, strokeColor(s.Color), pathData(c.Xs, s.Values, px, py)))
	}

	// Legend
	for i, s := range c.Series {
		y := marginTop + 10 + float64(i)*18
		x := marginLeft + plotW + 16
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="3"/>
<text x="%.1f" y="%.1f">%s</text>
`, x, y, x+20, y, strokeColor(s.Color), x+26, y+4, html.EscapeString(s.Name)))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func pathData(xs, ys []float64, px, py func(float64) float64) string {
	var sb strings.Builder
	pen := false
	for i, x := range xs {
		if i >= len(ys) {
			break
		}
		y := ys[i]
		if math.IsNaN(y) || math.IsInf(y, 0) {
			pen = false
			continue
		}
		if !pen {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", px(x), py(y)))
			pen = true
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px(x), py(y)))
		}
	}
	return sb.String()
}

func strokeColor(c string) string {
	if c == "" {
		return "#000000"
	}
	return c
}

func intsToFloats(ns []int) []float64 {
	out := make([]float64, len(ns))
	for i, n := range ns {
		out[i] = float64(n)
	}
	return out
}

// SolutionsChart plots the exact curve and every approximation against x.
func SolutionsChart(sol *analysis.Solutions) *Chart {
	series := append([]analysis.Series{sol.Exact}, sol.Approx...)
	return &Chart{Title: "Solutions", XLabel: "x", YLabel: "y", Xs: sol.Xs, Series: series}
}

// ErrorsChart plots total and local error against x. Local curves use the
// darker variant of each method colour.
func ErrorsChart(xs []float64, curves []analysis.ErrorCurves) *Chart {
	return &Chart{Title: "Errors", XLabel: "x", YLabel: "e", Xs: xs, Series: analysis.ErrorSeries(curves, true)}
}

func SweepChart(sweep *analysis.Sweep) *Chart {
	return &Chart{
		Title:  "Total approximation errors",
		XLabel: "N",
		YLabel: "e",
		Xs:     intsToFloats(sweep.Ns),
		Series: sweep.Series,
	}
}

package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Muted   lipgloss.Style
	Value   lipgloss.Style
	Error   lipgloss.Style
	Panel   lipgloss.Style
	KeyHint lipgloss.Style
	Border  lipgloss.Color
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(t.Title),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(t.Header).Padding(0, 1),
		Cell:    lipgloss.NewStyle().Foreground(t.Text).Padding(0, 1),
		Muted:   lipgloss.NewStyle().Foreground(t.Muted),
		Value:   lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		Panel:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		KeyHint: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Border:  t.Border,
	}
}

// Swatch renders a short bar in the series colour for legends.
func Swatch(color string) string {
	return lipgloss.NewStyle().Foreground(LipglossColor(color)).Render("━━")
}

// SparklineChart renders a mini sparkline from values, sampled to width.
// Non-finite values are drawn as gaps.
func SparklineChart(values []float64, width int, color string) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	rng := hi - lo
	if rng <= 0 || math.IsInf(rng, 0) || math.IsNaN(rng) {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var sb strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		v := values[i*step]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			sb.WriteRune(' ')
			continue
		}
		idx := int((v - lo) / rng * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)
		sb.WriteRune(chars[idx])
	}

	return lipgloss.NewStyle().Foreground(LipglossColor(color)).Render(sb.String())
}

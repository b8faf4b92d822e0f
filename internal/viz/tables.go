package viz

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/odelab/internal/analysis"
	"github.com/san-kum/odelab/internal/numfmt"
)

var methodHeaders = []string{"i", "x", "approximated y", "exact y", "total error", "local error"}

func (s Styles) newTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(s.Border)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Header
			}
			return s.Cell
		})
}

// MethodTable renders one method's nodes rounded to precision decimals.
func MethodTable(t analysis.MethodTable, precision int, s Styles) string {
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = []string{
			strconv.Itoa(r.I),
			numfmt.Format(r.X, precision),
			numfmt.Format(r.Approx, precision),
			numfmt.Format(r.Exact, precision),
			numfmt.Format(r.Total, precision),
			numfmt.Format(r.Local, precision),
		}
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(LipglossColor(t.Color)).Render(t.Name)
	return title + "\n" + s.newTable().Headers(methodHeaders...).Rows(rows...).String()
}

// SweepTable renders maximum error against N, one column per method.
func SweepTable(sweep *analysis.Sweep, precision int, s Styles) string {
	headers := make([]string, 0, len(sweep.Series)+1)
	headers = append(headers, "N")
	for _, series := range sweep.Series {
		headers = append(headers, series.Name)
	}

	rows := make([][]string, len(sweep.Ns))
	for k, n := range sweep.Ns {
		row := make([]string, 0, len(headers))
		row = append(row, strconv.Itoa(n))
		for _, series := range sweep.Series {
			row = append(row, numfmt.Format(series.Values[k], precision))
		}
		rows[k] = row
	}
	return s.newTable().Headers(headers...).Rows(rows...).String()
}

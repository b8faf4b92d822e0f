package analysis

// Row is one node of a per-method table.
type Row struct {
	I      int
	X      float64
	Approx float64
	Exact  float64
	Total  float64
	Local  float64
}

type MethodTable struct {
	Name  string
	Color string
	Rows  []Row
}

// MethodTables lays out the report as one table per method with columns
// x, approximated y, exact y, total error and local error.
func (r *Report) MethodTables() []MethodTable {
	sol := r.Solutions
	tables := make([]MethodTable, 0, len(sol.Approx))
	for j, s := range sol.Approx {
		curves := r.Errors[j]
		rows := make([]Row, len(sol.Xs))
		for i, x := range sol.Xs {
			rows[i] = Row{
				I:      i,
				X:      x,
				Approx: s.Values[i],
				Exact:  sol.Exact.Values[i],
				Total:  curves.Total[i],
				Local:  curves.Local[i],
			}
		}
		tables = append(tables, MethodTable{Name: s.Name, Color: s.Color, Rows: rows})
	}
	return tables
}

// Final returns, per method, the maximum error at the largest step count.
func (s *Sweep) Final() map[string]float64 {
	out := make(map[string]float64, len(s.Series))
	for _, series := range s.Series {
		if len(series.Values) > 0 {
			out[series.Name] = series.Values[len(series.Values)-1]
		}
	}
	return out
}

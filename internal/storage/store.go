package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/odelab/internal/analysis"
)

var ErrRunNotFound = errors.New("storage: run not found")

// Table file names inside a run directory.
const (
	SolutionsTable  = "solutions"
	ErrorsTable     = "errors"
	TotalErrorTable = "total_error"
	metadataFile    = "metadata.json"
)

type Store struct {
	baseDir string
	logger  *slog.Logger
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, logger: slog.New(slog.DiscardHandler)}
}

func (s *Store) WithLogger(l *slog.Logger) *Store {
	if l != nil {
		s.logger = l
	}
	return s
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Equation  string             `json:"equation"`
	Timestamp time.Time          `json:"timestamp"`
	X0        float64            `json:"x0"`
	Y0        float64            `json:"y0"`
	X         float64            `json:"x"`
	N         int                `json:"n"`
	NMax      int                `json:"n_max"`
	Precision int                `json:"precision"`
	Methods   []string           `json:"methods"`
	Colors    map[string]string  `json:"colors"`
	MaxErrors map[string]float64 `json:"max_errors"`
}

// Save writes the report as metadata.json plus one CSV per view and returns
// the new run ID.
func (s *Store) Save(report *analysis.Report, precision int) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d_%s", report.Problem, now.Unix(), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	sol := report.Solutions
	meta := RunMetadata{
		ID:        runID,
		Equation:  report.Problem,
		Timestamp: now,
		X0:        sol.Params.X0,
		Y0:        sol.Params.Y0,
		X:         sol.Params.X,
		N:         sol.Params.N,
		Precision: precision,
		Colors:    map[string]string{sol.Exact.Name: sol.Exact.Color},
		MaxErrors: make(map[string]float64, len(report.Errors)),
	}
	if report.Sweep != nil {
		meta.NMax = len(report.Sweep.Ns)
	}
	for _, series := range sol.Approx {
		meta.Methods = append(meta.Methods, series.Name)
		meta.Colors[series.Name] = series.Color
	}
	for _, c := range report.Errors {
		meta.MaxErrors[c.Name] = c.MaxTotal()
	}

	if err := writeRun(runDir, &meta, report); err != nil {
		if rmErr := os.RemoveAll(runDir); rmErr != nil {
			s.logger.Warn("failed to clean up run directory", "dir", runDir, "err", rmErr)
		}
		return "", fmt.Errorf("save run %s: %w", runID, err)
	}

	s.logger.Info("run saved", "id", runID, "dir", runDir)
	return runID, nil
}

// writeRun writes the metadata and every table of report into runDir.
func writeRun(runDir string, meta *RunMetadata, report *analysis.Report) error {
	sol := report.Solutions
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return err
	}

	header, rows := solutionsRows(sol)
	if err := writeCSV(filepath.Join(runDir, SolutionsTable+".csv"), header, rows); err != nil {
		return err
	}

	header, rows = errorRows(sol.Xs, report.Errors)
	if err := writeCSV(filepath.Join(runDir, ErrorsTable+".csv"), header, rows); err != nil {
		return err
	}

	if report.Sweep != nil {
		header, rows = sweepRows(report.Sweep)
		if err := writeCSV(filepath.Join(runDir, TotalErrorTable+".csv"), header, rows); err != nil {
			return err
		}
	}

	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func solutionsRows(sol *analysis.Solutions) ([]string, [][]string) {
	header := []string{"x", sol.Exact.Name}
	for _, s := range sol.Approx {
		header = append(header, s.Name)
	}
	rows := make([][]string, len(sol.Xs))
	for i, x := range sol.Xs {
		row := []string{formatFloat(x), formatFloat(sol.Exact.Values[i])}
		for _, s := range sol.Approx {
			row = append(row, formatFloat(s.Values[i]))
		}
		rows[i] = row
	}
	return header, rows
}

func errorRows(xs []float64, curves []analysis.ErrorCurves) ([]string, [][]string) {
	header := []string{"x"}
	for _, c := range curves {
		header = append(header, c.Name+" (total)", c.Name+" (local)")
	}
	rows := make([][]string, len(xs))
	for i, x := range xs {
		row := []string{formatFloat(x)}
		for _, c := range curves {
			row = append(row, formatFloat(c.Total[i]), formatFloat(c.Local[i]))
		}
		rows[i] = row
	}
	return header, rows
}

func sweepRows(sweep *analysis.Sweep) ([]string, [][]string) {
	header := []string{"N"}
	for _, s := range sweep.Series {
		header = append(header, s.Name)
	}
	rows := make([][]string, len(sweep.Ns))
	for k, n := range sweep.Ns {
		row := []string{strconv.Itoa(n)}
		for _, s := range sweep.Series {
			row = append(row, formatFloat(s.Values[k]))
		}
		rows[k] = row
	}
	return header, rows
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Sync()
}

// List returns all readable runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			s.logger.Debug("skipping run directory", "dir", entry.Name(), "err", err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// Table is a CSV view read back from a run: the header and one numeric
// column per header entry.
type Table struct {
	Header  []string
	Columns [][]float64
}

// Column returns the column with the given header name.
func (t *Table) Column(name string) ([]float64, bool) {
	for i, h := range t.Header {
		if h == name {
			return t.Columns[i], true
		}
	}
	return nil, false
}

func (s *Store) LoadTable(runID, name string) (*Table, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, name+".csv"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s/%s", ErrRunNotFound, runID, name)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	t := &Table{
		Header:  records[0],
		Columns: make([][]float64, len(records[0])),
	}
	for i := range t.Columns {
		t.Columns[i] = make([]float64, 0, len(records)-1)
	}
	for line, record := range records[1:] {
		for j := range t.Header {
			if j >= len(record) {
				return nil, fmt.Errorf("%s/%s line %d: missing column %q", runID, name, line+2, t.Header[j])
			}
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("%s/%s line %d: %w", runID, name, line+2, err)
			}
			t.Columns[j] = append(t.Columns[j], v)
		}
	}
	return t, nil
}

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/odelab/internal/analysis"
	"github.com/san-kum/odelab/internal/experiment"
	"github.com/san-kum/odelab/internal/integrators"
	"github.com/san-kum/odelab/internal/ivp"
	"github.com/san-kum/odelab/internal/storage"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level, format string
		wantErr       bool
	}{
		{"info", "text", false},
		{"debug", "json", false},
		{"WARN", "JSON", false},
		{"loud", "text", true},
		{"info", "xml", true},
	}
	for _, tt := range tests {
		_, err := newLogger(tt.level, tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("newLogger(%q, %q) err = %v, wantErr %v", tt.level, tt.format, err, tt.wantErr)
		}
	}
}

func TestTableSeries(t *testing.T) {
	table := &storage.Table{
		Header: []string{"x", "Euler's method (total)", "Euler's method (local)"},
		Columns: [][]float64{
			{0, 1},
			{0, 0.5},
			{0, 0.5},
		},
	}
	colors := map[string]string{"Euler's method": "green"}

	xs, series := tableSeries(table, colors)
	if len(xs) != 2 || len(series) != 2 {
		t.Fatalf("unexpected split: %v, %d series", xs, len(series))
	}
	if series[0].Color != "green" || series[1].Color != "darkgreen" {
		t.Errorf("unexpected colours %q, %q", series[0].Color, series[1].Color)
	}

	if xs, series := tableSeries(&storage.Table{}, colors); xs != nil || series != nil {
		t.Error("expected nothing from an empty table")
	}
}

// commandTree mirrors main: a root with the persistent --data flag and one
// child that reads saved runs.
func commandTree(t *testing.T) (*cobra.Command, *cobra.Command) {
	t.Helper()
	oldData, oldConfig := dataDir, configFile
	t.Cleanup(func() { dataDir, configFile = oldData, oldConfig })

	root := &cobra.Command{Use: "odelab"}
	root.PersistentFlags().StringVar(&dataDir, "data", ".odelab", "data directory")
	child := &cobra.Command{Use: "list", RunE: func(*cobra.Command, []string) error { return nil }}
	root.AddCommand(child)
	return root, child
}

func TestResolveDataDir(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "odelab.yaml")
	runs := filepath.Join(tmp, "runs")
	if err := os.WriteFile(cfgPath, []byte("data_dir: "+runs+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("default", func(t *testing.T) {
		_, child := commandTree(t)
		configFile = ""
		got, err := resolveDataDir(child)
		if err != nil || got != ".odelab" {
			t.Errorf("got %q, %v", got, err)
		}
	})

	t.Run("config file", func(t *testing.T) {
		_, child := commandTree(t)
		configFile = cfgPath
		got, err := resolveDataDir(child)
		if err != nil || got != runs {
			t.Errorf("got %q, %v; want %q", got, err, runs)
		}
	})

	t.Run("flag wins", func(t *testing.T) {
		root, child := commandTree(t)
		configFile = cfgPath
		if err := root.PersistentFlags().Set("data", filepath.Join(tmp, "cli")); err != nil {
			t.Fatal(err)
		}
		got, err := resolveDataDir(child)
		if err != nil || got != filepath.Join(tmp, "cli") {
			t.Errorf("got %q, %v", got, err)
		}
	})

	t.Run("save and list agree", func(t *testing.T) {
		_, child := commandTree(t)
		configFile = cfgPath
		var f problemFlags
		f.register(child)
		cfg, err := f.resolve(child, nil, experiment.NewRegistry())
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		dir, err := resolveDataDir(child)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.DataDir != dir || dir != runs {
			t.Errorf("run saves to %q but list reads %q", cfg.DataDir, dir)
		}
	})

	t.Run("missing config", func(t *testing.T) {
		_, child := commandTree(t)
		configFile = filepath.Join(tmp, "absent.yaml")
		if _, err := resolveDataDir(child); err == nil {
			t.Error("expected an error for a missing config file")
		}
	})
}

func TestWriteCharts(t *testing.T) {
	a := analysis.New(ivp.ExpForced, []analysis.Entry{
		{Method: integrators.NewEuler(), Label: "Euler's method", Color: "green"},
	})
	report, err := a.Analyze(context.Background(), ivp.Params{X0: 0, Y0: 0, X: 7, N: 11})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "charts")
	written, err := writeCharts(dir, report, 640, 320)
	if err != nil {
		t.Fatalf("write charts: %v", err)
	}
	if len(written) != 3 {
		t.Fatalf("expected 3 charts, got %v", written)
	}
	for _, name := range []string{"solutions.svg", "errors.svg", "total_error.svg"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/odelab/internal/ivp"
	"github.com/san-kum/odelab/internal/numfmt"
)

const (
	DefaultEquation = "exp_forced"
	DefaultX0       = 0.0
	DefaultY0       = 0.0
	DefaultX        = 7.0
	DefaultN        = 11
	DefaultWorkers  = 4
	DefaultDataDir  = ".odelab"
	DefaultTheme    = "classic"

	// MaxN caps the step count; the error sweep is quadratic in it.
	MaxN = 10000
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Equation  string   `yaml:"equation" toml:"equation"`
	X0        float64  `yaml:"x0" toml:"x0"`
	Y0        float64  `yaml:"y0" toml:"y0"`
	X         float64  `yaml:"x" toml:"x"`
	N         int      `yaml:"n" toml:"n"`
	NMax      int      `yaml:"n_max,omitempty" toml:"n_max,omitempty"`
	Precision int      `yaml:"precision" toml:"precision"`
	Methods   []string `yaml:"methods" toml:"methods"`
	Workers   int      `yaml:"workers" toml:"workers"`
	DataDir   string   `yaml:"data_dir" toml:"data_dir"`
	Theme     string   `yaml:"theme" toml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Equation:  DefaultEquation,
		X0:        DefaultX0,
		Y0:        DefaultY0,
		X:         DefaultX,
		N:         DefaultN,
		Precision: numfmt.DefaultPrecision,
		Methods:   []string{"euler", "improved_euler", "rk4"},
		Workers:   DefaultWorkers,
		DataDir:   DefaultDataDir,
		Theme:     DefaultTheme,
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load decodes a yaml or toml file (chosen by extension) over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Clamp keeps n inside the supported step count range.
func Clamp(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxN {
		return MaxN
	}
	return n
}

// Normalize clamps step counts and fills zero values with defaults.
func (c *Config) Normalize() {
	c.N = Clamp(c.N)
	if c.NMax != 0 {
		c.NMax = Clamp(c.NMax)
	}
	if c.Precision < 0 {
		c.Precision = 0
	}
	if c.Workers < 1 {
		c.Workers = DefaultWorkers
	}
	if c.Equation == "" {
		c.Equation = DefaultEquation
	}
}

// Validate rejects what the core does not re-check: x0 must precede X and
// all inputs must be finite. Method names are checked against known.
func (c *Config) Validate(known []string) error {
	for _, v := range []struct {
		name string
		val  float64
	}{{"x0", c.X0}, {"y0", c.Y0}, {"x", c.X}} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidConfig, v.name)
		}
	}
	if c.X0 >= c.X {
		return fmt.Errorf("%w: x0 (%g) must be less than X (%g)", ErrInvalidConfig, c.X0, c.X)
	}
	if c.N < 1 || c.N > MaxN {
		return fmt.Errorf("%w: n must be in [1, %d], got %d", ErrInvalidConfig, MaxN, c.N)
	}
	if c.NMax < 0 || c.NMax > MaxN {
		return fmt.Errorf("%w: n_max must be in [1, %d], got %d", ErrInvalidConfig, MaxN, c.NMax)
	}
	for _, m := range c.Methods {
		if !contains(known, m) {
			return fmt.Errorf("%w: unknown method %q (available: %v)", ErrInvalidConfig, m, known)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (c *Config) Params() ivp.Params {
	return ivp.Params{X0: c.X0, Y0: c.Y0, X: c.X, N: c.N}
}

// SweepParams is Params with N replaced by the sweep bound (n_max, or n when unset).
func (c *Config) SweepParams() ivp.Params {
	p := c.Params()
	if c.NMax > 0 {
		p.N = c.NMax
	}
	return p
}

// Package tui is the interactive form: edit x0, y0, X and N, solve, and flip
// between the solution, error and error-vs-N graphs.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/san-kum/odelab/internal/config"
)

type field int

const (
	fieldX0 field = iota
	fieldY0
	fieldX
	fieldN
	numFields
)

var fieldLabels = [numFields]string{"x0", "y0", "X", "N"}

func newInputs(cfg *config.Config) []textinput.Model {
	values := [numFields]string{
		strconv.FormatFloat(cfg.X0, 'g', -1, 64),
		strconv.FormatFloat(cfg.Y0, 'g', -1, 64),
		strconv.FormatFloat(cfg.X, 'g', -1, 64),
		strconv.Itoa(cfg.N),
	}
	inputs := make([]textinput.Model, numFields)
	for i := range inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = fieldLabels[i]
		in.CharLimit = 24
		in.Width = 12
		in.SetValue(values[i])
		inputs[i] = in
	}
	return inputs
}

// readForm parses the fields into a copy of base. N is clamped into range
// rather than rejected; the clamped value is returned so the form can show it.
func readForm(base config.Config, values [numFields]string, known []string) (*config.Config, error) {
	cfg := base

	floats := []*float64{&cfg.X0, &cfg.Y0, &cfg.X}
	for i, dst := range floats {
		v, err := strconv.ParseFloat(strings.TrimSpace(values[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: not a number: %q", fieldLabels[i], values[i])
		}
		*dst = v
	}

	n, err := strconv.Atoi(strings.TrimSpace(values[fieldN]))
	if err != nil {
		return nil, fmt.Errorf("N: not an integer: %q", values[fieldN])
	}
	cfg.N = config.Clamp(n)
	cfg.NMax = 0

	if err := cfg.Validate(known); err != nil {
		return nil, err
	}
	return &cfg, nil
}

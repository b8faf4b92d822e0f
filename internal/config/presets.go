package config

import "sort"

var Presets = map[string]map[string]*Config{
	"exp_forced": {
		"default": {Equation: "exp_forced", X0: 0, Y0: 0, X: 7, N: 11},
		"short":   {Equation: "exp_forced", X0: 0, Y0: 0, X: 1, N: 10},
		"fine":    {Equation: "exp_forced", X0: 0, Y0: 0, X: 7, N: 200, NMax: 100},
		"offset":  {Equation: "exp_forced", X0: 1, Y0: 3, X: 4, N: 30},
	},
	"growth": {
		"unit": {Equation: "growth", X0: 0, Y0: 1, X: 1, N: 10},
		"long": {Equation: "growth", X0: 0, Y0: 1, X: 5, N: 50},
	},
	"relaxation": {
		"unit": {Equation: "relaxation", X0: 0, Y0: 1, X: 1, N: 10},
		"ramp": {Equation: "relaxation", X0: 0, Y0: 0, X: 10, N: 40},
	},
}

func GetPreset(equation, preset string) *Config {
	eqPresets, ok := Presets[equation]
	if !ok {
		return nil
	}
	cfg, ok := eqPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(equation string) []string {
	eqPresets, ok := Presets[equation]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(eqPresets))
	for name := range eqPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the preset's problem fields onto c.
func (c *Config) Apply(p *Config) {
	c.Equation = p.Equation
	c.X0 = p.X0
	c.Y0 = p.Y0
	c.X = p.X
	c.N = p.N
	c.NMax = p.NMax
}

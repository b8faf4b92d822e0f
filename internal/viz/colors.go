package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var namedColors = map[string]struct {
	hex  string
	ansi asciigraph.AnsiColor
}{
	"red":         {"#ff0000", asciigraph.Red},
	"darkred":     {"#8b0000", asciigraph.DarkRed},
	"green":       {"#00ff00", asciigraph.Green},
	"darkgreen":   {"#006400", asciigraph.DarkGreen},
	"blue":        {"#0000ff", asciigraph.Blue},
	"darkblue":    {"#00008b", asciigraph.DarkBlue},
	"cyan":        {"#00ffff", asciigraph.Cyan},
	"darkcyan":    {"#008b8b", asciigraph.DarkCyan},
	"magenta":     {"#ff00ff", asciigraph.Magenta},
	"darkmagenta": {"#8b008b", asciigraph.DarkMagenta},
	"yellow":      {"#ffff00", asciigraph.Yellow},
	"olive":       {"#808000", asciigraph.Olive},
}

// AnsiColor maps a CSS colour name onto the asciigraph palette.
func AnsiColor(name string) asciigraph.AnsiColor {
	if c, ok := namedColors[name]; ok {
		return c.ansi
	}
	return asciigraph.Default
}

// LipglossColor maps a CSS colour name onto a terminal colour.
func LipglossColor(name string) lipgloss.Color {
	if c, ok := namedColors[name]; ok {
		return lipgloss.Color(c.hex)
	}
	return lipgloss.Color("#dddddd")
}

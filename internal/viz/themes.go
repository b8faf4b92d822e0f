package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour scheme for tables and panels
type Theme struct {
	Name   string
	Title  lipgloss.Color
	Header lipgloss.Color
	Border lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
	Error  lipgloss.Color
}

// Available themes
var (
	ThemeClassic = Theme{
		Name:   "classic",
		Title:  lipgloss.Color("#00ffff"),
		Header: lipgloss.Color("#ffffff"),
		Border: lipgloss.Color("#444466"),
		Text:   lipgloss.Color("#dddddd"),
		Muted:  lipgloss.Color("#666688"),
		Accent: lipgloss.Color("#00ccff"),
		Error:  lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Title:  lipgloss.Color("#00ff00"), // Green phosphor
		Header: lipgloss.Color("#88ff88"),
		Border: lipgloss.Color("#005500"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#007700"),
		Accent: lipgloss.Color("#88ff88"),
		Error:  lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Title:  lipgloss.Color("#ffffff"),
		Header: lipgloss.Color("#ffffff"),
		Border: lipgloss.Color("#888888"),
		Text:   lipgloss.Color("#cccccc"),
		Muted:  lipgloss.Color("#888888"),
		Accent: lipgloss.Color("#0088ff"),
		Error:  lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Title:  lipgloss.Color("#00a8cc"),
		Header: lipgloss.Color("#e0f0ff"),
		Border: lipgloss.Color("#0077be"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Accent: lipgloss.Color("#ffd700"),
		Error:  lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the TUI color scheme.
type Theme struct {
	Name    string
	Surface lipgloss.Color
	Trail   lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeRetro = Theme{
		Name:    "retro",
		Surface: lipgloss.Color("#005500"),
		Trail:   lipgloss.Color("#00ff00"),
		Text:    lipgloss.Color("#88ff88"),
		Muted:   lipgloss.Color("#005500"),
		Warning: lipgloss.Color("#ffff00"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Surface: lipgloss.Color("#224466"),
		Trail:   lipgloss.Color("#00a8cc"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Warning: lipgloss.Color("#ffcc00"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Surface: lipgloss.Color("#444444"),
		Trail:   lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#cccccc"),
		Muted:   lipgloss.Color("#888888"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	Themes = []Theme{ThemeRetro, ThemeOcean, ThemeMinimal}
)

func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeRetro
}

func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

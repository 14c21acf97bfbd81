package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the scene and the status panel.
type Theme struct {
	Name    string
	Player  lipgloss.Color
	Crate   lipgloss.Color
	Terrain lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:    "classic",
		Player:  lipgloss.Color("#0000ff"),
		Crate:   lipgloss.Color("#ff8800"),
		Terrain: lipgloss.Color("#aaaaaa"),
		Accent:  lipgloss.Color("#00ffff"),
		Muted:   lipgloss.Color("#666688"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Player:  lipgloss.Color("#88ff88"),
		Crate:   lipgloss.Color("#00cc00"),
		Terrain: lipgloss.Color("#005500"),
		Accent:  lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Player:  lipgloss.Color("#ff6b6b"),
		Crate:   lipgloss.Color("#feca57"),
		Terrain: lipgloss.Color("#8b6b8c"),
		Accent:  lipgloss.Color("#ff9ff3"),
		Muted:   lipgloss.Color("#8b6b8c"),
	}

	Themes = []Theme{ThemeClassic, ThemeRetroGreen, ThemeSunset}
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

// NextTheme cycles through Themes.
func NextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// InkStyles maps scene inks to the theme's colours.
func (t Theme) InkStyles() map[uint8]lipgloss.Style {
	return map[uint8]lipgloss.Style{
		InkTerrain: lipgloss.NewStyle().Foreground(t.Terrain),
		InkCrate:   lipgloss.NewStyle().Foreground(t.Crate),
		InkPlayer:  lipgloss.NewStyle().Foreground(t.Player).Bold(true),
	}
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

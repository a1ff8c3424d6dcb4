package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the terminal front end.
type Theme struct {
	Name   string
	Field  lipgloss.Color
	Curve  lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Error  lipgloss.Color
}

var (
	ThemeMinimal = Theme{
		Name:   "minimal",
		Field:  lipgloss.Color("#888888"),
		Curve:  lipgloss.Color("#1f77b4"),
		Accent: lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666666"),
		Error:  lipgloss.Color("#ff0000"),
	}

	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Field:  lipgloss.Color("#00ffff"),
		Curve:  lipgloss.Color("#ff00ff"),
		Accent: lipgloss.Color("#ffff00"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666666"),
		Error:  lipgloss.Color("#ff0000"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Field:  lipgloss.Color("#005500"),
		Curve:  lipgloss.Color("#88ff88"),
		Accent: lipgloss.Color("#00ff00"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#007700"),
		Error:  lipgloss.Color("#ffff00"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Field:  lipgloss.Color("#4488aa"),
		Curve:  lipgloss.Color("#ffd700"),
		Accent: lipgloss.Color("#00a8cc"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Error:  lipgloss.Color("#ff4444"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Field:  lipgloss.Color("#8b6b8c"),
		Curve:  lipgloss.Color("#feca57"),
		Accent: lipgloss.Color("#ff6b6b"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Error:  lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{
		ThemeMinimal,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to minimal.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMinimal
}

// WithCurve returns a copy of t whose curve color is c, if c is set.
func (t Theme) WithCurve(c string) Theme {
	if c != "" {
		t.Curve = lipgloss.Color(c)
	}
	return t
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

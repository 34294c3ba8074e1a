package viz

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a colour scheme shared by plots, panels and the animation.
// Even and Odd tint values by parity.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Even      lipgloss.Color
	Odd       lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

const DefaultTheme = "cyberpunk"

var themes = []Theme{
	{
		Name:      "cyberpunk",
		Primary:   lipgloss.Color("#ff00ff"),
		Secondary: lipgloss.Color("#00ffff"),
		Accent:    lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Even:      lipgloss.Color("#00ffff"),
		Odd:       lipgloss.Color("#ff00ff"),
		Warning:   lipgloss.Color("#ff8800"),
		Error:     lipgloss.Color("#ff0000"),
	},
	{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Even:      lipgloss.Color("#00cc00"),
		Odd:       lipgloss.Color("#ccff66"),
		Warning:   lipgloss.Color("#ffff00"),
		Error:     lipgloss.Color("#ff0000"),
	},
	{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Even:      lipgloss.Color("#cccccc"),
		Odd:       lipgloss.Color("#0088ff"),
		Warning:   lipgloss.Color("#ffaa00"),
		Error:     lipgloss.Color("#ff0000"),
	},
	{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Even:      lipgloss.Color("#00a8cc"),
		Odd:       lipgloss.Color("#ffd700"),
		Warning:   lipgloss.Color("#ffcc00"),
		Error:     lipgloss.Color("#ff4444"),
	},
	{
		Name:      "sunset",
		Primary:   lipgloss.Color("#ff6b6b"),
		Secondary: lipgloss.Color("#feca57"),
		Accent:    lipgloss.Color("#ff9ff3"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Even:      lipgloss.Color("#feca57"),
		Odd:       lipgloss.Color("#ff6b6b"),
		Warning:   lipgloss.Color("#ffc048"),
		Error:     lipgloss.Color("#ff4757"),
	},
}

// GetTheme returns the named theme, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// HasTheme reports whether name is a known theme.
func HasTheme(name string) bool {
	return slices.ContainsFunc(themes, func(t Theme) bool { return t.Name == name })
}

// ThemeNames lists the available themes.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

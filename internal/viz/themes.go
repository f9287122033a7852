package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the particle field and the side panel.
type Theme struct {
	Name      string
	Particles lipgloss.Color
	Pointer   lipgloss.Color
	Accent    lipgloss.Color
}

var Themes = []Theme{
	{Name: "cyberpunk", Particles: lipgloss.Color("#00ffff"), Pointer: lipgloss.Color("#ff00ff"), Accent: lipgloss.Color("#ffff00")},
	{Name: "retro", Particles: lipgloss.Color("#00ff00"), Pointer: lipgloss.Color("#88ff88"), Accent: lipgloss.Color("#00cc00")},
	{Name: "minimal", Particles: lipgloss.Color("#ffffff"), Pointer: lipgloss.Color("#0088ff"), Accent: lipgloss.Color("#cccccc")},
	{Name: "ocean", Particles: lipgloss.Color("#00a8cc"), Pointer: lipgloss.Color("#ffd700"), Accent: lipgloss.Color("#0077be")},
	{Name: "sunset", Particles: lipgloss.Color("#feca57"), Pointer: lipgloss.Color("#ff9ff3"), Accent: lipgloss.Color("#ff6b6b")},
}

// ThemeIndex returns the position of the named theme, or 0 if unknown.
func ThemeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

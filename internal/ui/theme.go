package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dashtrash/internal/panel"
)

// Theme is the palette the dashboard is drawn with.
type Theme struct {
	Name string

	Surface string // status bar background
	Border  string // panel border at normal tone

	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Footer     lipgloss.Style
	Logo       lipgloss.Style
	Tagline    lipgloss.Style
	PanelTitle lipgloss.Style
	Hint       lipgloss.Style
}

func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Styles{
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),

		Footer: fg(t.Muted).
			Background(lipgloss.Color(t.Surface)).
			Padding(0, 1),
		Logo:       fg(t.Warning).Bold(true),
		Tagline:    fg(t.Warning).Italic(true),
		PanelTitle: fg(t.Accent).Bold(true),
		Hint:       fg(t.Warning).Bold(true),
	}
}

// ToneColor is the border color for a panel tone.
func (t Theme) ToneColor(tone panel.Tone) string {
	switch tone {
	case panel.ToneOK:
		return t.Success
	case panel.ToneWarn:
		return t.Warning
	case panel.ToneError:
		return t.Danger
	default:
		return t.Border
	}
}

var themeOrder = []Theme{
	{
		// github.com/EdenEast/nightfox.nvim
		Name:    "Nightfox",
		Surface: "#192330",
		Border:  "#39506d",
		Muted:   "#738091",
		Faint:   "#71839b",
		Accent:  "#719cd6",
		Success: "#81b29a",
		Warning: "#dbc074",
		Danger:  "#c94f6d",
	},
	{
		// github.com/rebelot/kanagawa.nvim
		Name:    "Kanagawa",
		Surface: "#1F1F28",
		Border:  "#54546D",
		Muted:   "#C8C093",
		Faint:   "#727169",
		Accent:  "#7E9CD8",
		Success: "#98BB6C",
		Warning: "#E6C384",
		Danger:  "#E46876",
	},
	{
		// tailwind slate/sky
		Name:    "Slate",
		Surface: "#0f172a",
		Border:  "#334155",
		Muted:   "#94a3b8",
		Faint:   "#64748b",
		Accent:  "#38bdf8",
		Success: "#22c55e",
		Warning: "#f59e0b",
		Danger:  "#ef4444",
	},
}

// GetTheme returns a theme by name, ignoring case. Unknown names get Nightfox.
func GetTheme(name string) Theme {
	name = strings.TrimSpace(name)
	for _, t := range themeOrder {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return themeOrder[0]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, t := range themeOrder {
		if strings.EqualFold(t.Name, current) {
			return themeOrder[(i+1)%len(themeOrder)].Name
		}
	}
	return themeOrder[0].Name
}

func ThemeNames() []string {
	names := make([]string, len(themeOrder))
	for i, t := range themeOrder {
		names[i] = t.Name
	}
	return names
}

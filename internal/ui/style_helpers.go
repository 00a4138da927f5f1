package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle renders status bar segments on a solid background. Rendering each
// word separately keeps the reset codes lipgloss emits from punching holes
// in the background between words and separators.
type BgStyle struct {
	bg    lipgloss.Color
	space string
}

// NewBgStyle returns a helper painting on bgColor.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{bg: bg, space: lipgloss.NewStyle().Background(bg).Render(" ")}
}

// Render styles text word by word with the background applied.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Background(b.bg)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

// Join joins rendered segments with a separator painted on the background.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, b.Render(sep, lipgloss.NewStyle()))
}

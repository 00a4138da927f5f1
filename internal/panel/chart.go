package panel

import (
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Usage colors shared by bars and tone selection.
const (
	colorGood = "#5FD75F"
	colorWarm = "#FFD700"
	colorHot  = "#FF6B6B"
)

// UsageColor maps a percentage to green, yellow or red at 50 and 80.
func UsageColor(percent float64) string {
	switch {
	case percent >= 80:
		return colorHot
	case percent >= 50:
		return colorWarm
	default:
		return colorGood
	}
}

// UsageTone is UsageColor expressed as a Tone.
func UsageTone(percent float64) Tone {
	switch {
	case percent >= 80:
		return ToneError
	case percent >= 50:
		return ToneWarn
	default:
		return ToneOK
	}
}

// Bar draws a solid progress bar for a percentage in [0,100].
func Bar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	bar := progress.New(
		progress.WithSolidFill(UsageColor(percent)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	return bar.ViewAs(clamp(percent/100, 0, 1))
}

// Sparkline draws values as a braille line chart. Fewer than two samples
// draw a flat rule.
func Sparkline(values []float64, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(values) < 2 {
		return lipgloss.NewStyle().Faint(true).Render(strings.Repeat("─", width))
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi-lo < 1 {
		hi = lo + 1
	}
	lc := linechart.New(width, height, 0, float64(len(values)-1), lo, hi)
	lc.Clear()
	for i := 0; i < len(values)-1; i++ {
		lc.DrawBrailleLine(
			canvas.Float64Point{X: float64(i), Y: values[i]},
			canvas.Float64Point{X: float64(i + 1), Y: values[i+1]},
		)
	}
	return lc.View()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dashtrash/internal/layout"
	"github.com/five82/dashtrash/internal/panel"
	"github.com/five82/dashtrash/internal/state"
)

const (
	minPanelWidth  = 4
	minPanelHeight = 3
)

// Screen is everything needed to draw the dashboard once.
type Screen struct {
	Snapshot state.Snapshot
	Tree     *layout.Tree
	Banner   Banner
	Theme    Theme
	Width    int
	Height   int
	Help     string // rendered key help shown under the status line
}

// Render draws the screen into exactly Height lines of Width cells. The
// banner is dropped when it would leave no room for the panels.
func Render(s Screen) string {
	if s.Width <= 0 || s.Height <= 0 {
		return ""
	}
	styles := s.Theme.Styles()

	footer := renderFooter(s, styles)
	footerHeight := lipgloss.Height(footer)

	var parts []string
	used := footerHeight
	if h := s.Banner.Height(); h > 0 && s.Height-h-footerHeight >= minPanelHeight {
		parts = append(parts, renderBanner(s.Banner, styles, s.Width))
		used += h
	}

	bodyHeight := s.Height - used
	if bodyHeight > 0 {
		parts = append(parts, renderBody(s, styles, bodyHeight))
	}
	parts = append(parts, footer)

	return lipgloss.NewStyle().
		MaxWidth(s.Width).
		MaxHeight(s.Height).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func renderBody(s Screen, styles Styles, height int) string {
	if !s.Snapshot.HasFrame {
		return lipgloss.Place(s.Width, height, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("Waiting for first refresh..."))
	}
	tree := s.Tree
	if tree == nil {
		tree = layout.Build(nil, 0)
	}
	return renderNode(tree.Root(), s.Snapshot.Frame.Regions, s.Theme, s.Width, height)
}

// renderNode draws one region of the tree into a w x h block. Split nodes
// divide their area by child ratio, the same way layout.Tree.Rects does.
func renderNode(node *layout.Node, regions map[string][]panel.Content, theme Theme, w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	if node == nil {
		return blank(w, h)
	}
	if node.IsLeaf() {
		return renderRegion(regions[node.Name], theme, w, h)
	}

	var parts []string
	if node.Axis == layout.AxisHorizontal {
		for i, size := range layout.Sizes(node.Children, w) {
			if part := renderNode(node.Children[i], regions, theme, size, h); part != "" {
				parts = append(parts, part)
			}
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}
	for i, size := range layout.Sizes(node.Children, h) {
		if part := renderNode(node.Children[i], regions, theme, w, size); part != "" {
			parts = append(parts, part)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderRegion stacks the panels placed in one region, splitting its height
// evenly between them.
func renderRegion(contents []panel.Content, theme Theme, w, h int) string {
	if len(contents) == 0 {
		return blank(w, h)
	}
	heights := evenSplit(h, len(contents))
	parts := make([]string, 0, len(contents))
	for i, c := range contents {
		if heights[i] <= 0 {
			continue
		}
		parts = append(parts, renderBox(c, theme, w, heights[i]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderBox draws a bordered panel of exactly w x h cells.
func renderBox(c panel.Content, theme Theme, w, h int) string {
	if w < minPanelWidth || h < minPanelHeight {
		return blank(w, h)
	}
	styles := theme.Styles()
	innerW, innerH := w-2, h-2

	lines := []string{styles.PanelTitle.Render(truncate(c.Title, innerW))}
	room := innerH - 1

	var footer string
	if c.Footer != "" && room >= 2 {
		footer = styles.FaintText.Render(c.Footer)
		room--
	}

	body := bodyLines(c.Body)
	if len(body) > room {
		if c.Follow {
			body = body[len(body)-room:]
		} else {
			body = body[:room]
		}
	}
	lines = append(lines, body...)
	if footer != "" {
		for len(lines) < innerH-1 {
			lines = append(lines, "")
		}
		lines = append(lines, footer)
	}

	clip := lipgloss.NewStyle().MaxWidth(innerW)
	for i := range lines {
		lines[i] = clip.Render(lines[i])
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.ToneColor(c.Tone))).
		Width(innerW).
		Height(innerH).
		MaxHeight(h).
		Render(strings.Join(lines, "\n"))
}

func bodyLines(body string) []string {
	body = strings.TrimRight(body, "\n")
	if body == "" {
		return nil
	}
	return strings.Split(body, "\n")
}

func renderBanner(b Banner, styles Styles, width int) string {
	clip := lipgloss.NewStyle().MaxWidth(width)
	lines := make([]string, 0, b.Height())
	for _, line := range b.Art {
		lines = append(lines, clip.Render(styles.Logo.Render(line)))
	}
	if b.Tagline != "" {
		lines = append(lines, clip.Render(styles.Tagline.Render(b.Tagline)))
	}
	return lipgloss.NewStyle().
		Width(width).
		MaxWidth(width).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderFooter draws the status line, plus the key help when it is shown.
func renderFooter(s Screen, styles Styles) string {
	bg := NewBgStyle(s.Theme.Surface)
	status := s.Snapshot.Frame.Status

	clock := "--:--:--"
	if !status.Time.IsZero() {
		clock = status.Time.Format("15:04:05")
	}
	parts := []string{
		bg.Render("Time: "+clock, styles.MutedText),
		bg.Render(fmt.Sprintf("Panels: %d", status.Panels), styles.MutedText),
		bg.Render(fmt.Sprintf("Refresh: %gs", status.Refresh.Seconds()), styles.MutedText),
		bg.Render("Press q to quit", styles.Hint),
	}
	if status.Errors > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("Errors: %d", status.Errors), styles.DangerText))
	}
	if s.Snapshot.Stopped {
		msg := "Stopped"
		if s.Snapshot.LastError != nil {
			msg += ": " + s.Snapshot.LastError.Error()
		}
		parts = append(parts, bg.Render(msg, styles.WarningText))
	}

	line := footerLine(styles, s.Width, bg.Join(parts, " | "))
	if s.Help == "" {
		return line
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, footerLine(styles, s.Width, s.Help))
}

// footerLine clips content before padding so the bar never wraps.
func footerLine(styles Styles, width int, content string) string {
	inner := max(width-2, 0)
	content = lipgloss.NewStyle().MaxWidth(inner).MaxHeight(1).Render(content)
	return styles.Footer.Width(width).MaxWidth(width).Render(content)
}

func blank(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Width(w).Height(h).Render("")
}

// evenSplit divides total into n parts; the last part takes the remainder.
func evenSplit(total, n int) []int {
	sizes := make([]int, n)
	if n == 0 || total <= 0 {
		return sizes
	}
	for i := range sizes {
		sizes[i] = total / n
	}
	sizes[n-1] += total - (total/n)*n
	return sizes
}

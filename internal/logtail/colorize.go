package logtail

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// Level is the severity a log line appears to carry.
type Level int

const (
	LevelPlain Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	LevelSuccess
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelSuccess:
		return "success"
	default:
		return "plain"
	}
}

// Checked in order; the first match wins.
var levelPatterns = []struct {
	level Level
	re    *regexp.Regexp
}{
	{LevelError, regexp.MustCompile(`(?i)\b(err(or)?s?|fail(ed|ure)?|fatal|panic|crit(ical)?)\b`)},
	{LevelWarn, regexp.MustCompile(`(?i)\b(warn(ing)?s?|deprecated)\b`)},
	{LevelInfo, regexp.MustCompile(`(?i)\b(info(rmation)?|notice)\b`)},
	{LevelDebug, regexp.MustCompile(`(?i)\b(debug|trace)\b`)},
	{LevelSuccess, regexp.MustCompile(`(?i)\b(success(ful)?|completed|ok|done)\b`)},
}

// Classify guesses the level of a line from its keywords.
func Classify(line string) Level {
	for _, p := range levelPatterns {
		if p.re.MatchString(line) {
			return p.level
		}
	}
	return LevelPlain
}

var levelStyles = map[Level]lipgloss.Style{
	LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	LevelWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
	LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF")),
	LevelDebug:   lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")),
	LevelSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")),
	LevelPlain:   lipgloss.NewStyle(),
}

// StyleFor returns the lipgloss style used for a level.
func StyleFor(level Level) lipgloss.Style {
	return levelStyles[level]
}

// ColorizeLine renders a line in the style of its level. Blank lines are
// returned unchanged.
func ColorizeLine(line string) string {
	if line == "" {
		return line
	}
	return StyleFor(Classify(line)).Render(line)
}

// ColorizeLines applies ColorizeLine to every line.
func ColorizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ColorizeLine(line)
	}
	return out
}

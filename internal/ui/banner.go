package ui

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/five82/dashtrash/internal/config"
)

const (
	fallbackFont  = "standard"
	figletTimeout = 2 * time.Second
)

// Banner is the header art drawn above the panels.
type Banner struct {
	Art     []string
	Tagline string
}

// Height reports how many lines the banner occupies.
func (b Banner) Height() int {
	if len(b.Art) == 0 && b.Tagline == "" {
		return 0
	}
	n := len(b.Art)
	if b.Tagline != "" {
		n++
	}
	return n
}

// figlet renders text with the figlet binary. Tests replace it.
var figlet = func(ctx context.Context, font, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, figletTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, "figlet", "-f", font, text).Output()
	return string(out), err
}

// BuildBanner renders cfg with figlet, retrying with the standard font when
// the configured one is unavailable. Without figlet the text is used as is.
func BuildBanner(ctx context.Context, cfg config.Banner) Banner {
	if cfg.Disabled {
		return Banner{}
	}
	text := strings.TrimSpace(cfg.Text)
	b := Banner{}
	if tagline := strings.TrimSpace(cfg.Tagline); tagline != "" {
		b.Tagline = `> "` + tagline + `"`
	}
	if text == "" {
		return b
	}

	fonts := []string{fallbackFont}
	if font := strings.TrimSpace(cfg.Font); font != "" && font != fallbackFont {
		fonts = []string{font, fallbackFont}
	}
	for _, font := range fonts {
		out, err := figlet(ctx, font, text)
		if err == nil && strings.TrimSpace(out) != "" {
			b.Art = artLines(out)
			return b
		}
	}
	b.Art = []string{strings.ToUpper(text)}
	return b
}

// artLines drops blank leading and trailing rows figlet pads its output with.
func artLines(out string) []string {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

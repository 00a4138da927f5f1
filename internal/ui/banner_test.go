package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/five82/dashtrash/internal/config"
)

func stubFiglet(t *testing.T, fn func(font, text string) (string, error)) *[]string {
	t.Helper()
	var calls []string
	orig := figlet
	figlet = func(_ context.Context, font, text string) (string, error) {
		calls = append(calls, font)
		return fn(font, text)
	}
	t.Cleanup(func() { figlet = orig })
	return &calls
}

func TestBuildBanner(t *testing.T) {
	missingFont := errors.New("font not found")
	tests := []struct {
		name      string
		cfg       config.Banner
		figlet    func(font, text string) (string, error)
		wantArt   []string
		wantFonts []string
	}{
		{
			name:      "configured font",
			cfg:       config.Banner{Text: "Dash", Font: "slant", Tagline: "hi"},
			figlet:    func(font, text string) (string, error) { return "\n" + font + ":" + text + "\n\n", nil },
			wantArt:   []string{"slant:Dash"},
			wantFonts: []string{"slant"},
		},
		{
			name: "falls back to standard font",
			cfg:  config.Banner{Text: "Dash", Font: "ansi_shadow"},
			figlet: func(font, text string) (string, error) {
				if font != "standard" {
					return "", missingFont
				}
				return "std\nart\n", nil
			},
			wantArt:   []string{"std", "art"},
			wantFonts: []string{"ansi_shadow", "standard"},
		},
		{
			name:      "no figlet",
			cfg:       config.Banner{Text: "Dash", Font: "slant"},
			figlet:    func(string, string) (string, error) { return "", errors.New("exec: not found") },
			wantArt:   []string{"DASH"},
			wantFonts: []string{"slant", "standard"},
		},
		{
			name:      "blank output",
			cfg:       config.Banner{Text: "Dash", Font: "standard"},
			figlet:    func(string, string) (string, error) { return "  \n", nil },
			wantArt:   []string{"DASH"},
			wantFonts: []string{"standard"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := stubFiglet(t, tt.figlet)
			b := BuildBanner(context.Background(), tt.cfg)
			if strings.Join(b.Art, "|") != strings.Join(tt.wantArt, "|") {
				t.Fatalf("Art = %q, want %q", b.Art, tt.wantArt)
			}
			if strings.Join(*calls, ",") != strings.Join(tt.wantFonts, ",") {
				t.Fatalf("fonts tried = %q, want %q", *calls, tt.wantFonts)
			}
		})
	}
}

func TestBuildBanner_Tagline(t *testing.T) {
	stubFiglet(t, func(string, string) (string, error) { return "art", nil })
	b := BuildBanner(context.Background(), config.Banner{Text: "Dash", Tagline: " Questionable aesthetics. "})
	if b.Tagline != `> "Questionable aesthetics."` {
		t.Fatalf("Tagline = %q", b.Tagline)
	}
	if b.Height() != 2 {
		t.Fatalf("Height() = %d, want 2", b.Height())
	}
}

func TestBuildBanner_Disabled(t *testing.T) {
	calls := stubFiglet(t, func(string, string) (string, error) { return "art", nil })
	b := BuildBanner(context.Background(), config.Banner{Text: "Dash", Tagline: "x", Disabled: true})
	if b.Height() != 0 || len(*calls) != 0 {
		t.Fatalf("disabled banner = %+v after %d figlet calls", b, len(*calls))
	}
}

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.yml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RefreshRate != DefaultRefreshRate {
		t.Fatalf("RefreshRate = %v, want %v", cfg.RefreshRate, DefaultRefreshRate)
	}
	if len(cfg.Panels) != 2 {
		t.Fatalf("len(Panels) = %d, want 2", len(cfg.Panels))
	}
	if cfg.Panels[0].Type != TypeSystem || cfg.Panels[0].Position != "top" {
		t.Fatalf("Panels[0] = %+v, want system at top", cfg.Panels[0])
	}
	if cfg.Panels[1].MaxLines != 20 {
		t.Fatalf("Panels[1].MaxLines = %d, want 20", cfg.Panels[1].MaxLines)
	}
	if !strings.HasPrefix(cfg.Logging.File, home) {
		t.Fatalf("Logging.File = %q, want it under HOME %q", cfg.Logging.File, home)
	}
}

func TestLoad_ParsesAndNormalizesYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "dashboard.yml")
	if err := os.WriteFile(path, []byte(`
refresh_rate: 2.5
panels:
  - type: " System "
    position: "  TOP "
  - type: logs
    file: /var/log/app.log
    filters: [ERROR]
  - type: clock
    time_format: 12H
    show_uptime: false
  - type: plugin
    plugin_name: demo
    options:
      seed: 7
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RefreshRate != 2.5 {
		t.Fatalf("RefreshRate = %v, want 2.5", cfg.RefreshRate)
	}
	if got := cfg.Positions(); !reflect.DeepEqual(got, []string{"top", "", "", ""}) {
		t.Fatalf("Positions() = %q, want %q", got, []string{"top", "", "", ""})
	}
	if cfg.Panels[0].Type != TypeSystem {
		t.Fatalf("Panels[0].Type = %q, want %q", cfg.Panels[0].Type, TypeSystem)
	}
	if cfg.Panels[1].MaxLines != DefaultMaxLines {
		t.Fatalf("Panels[1].MaxLines = %d, want %d", cfg.Panels[1].MaxLines, DefaultMaxLines)
	}
	clock := cfg.Panels[2]
	if clock.TimeFormat != TimeFormat12h {
		t.Fatalf("TimeFormat = %q, want %q", clock.TimeFormat, TimeFormat12h)
	}
	if clock.UptimeEnabled() {
		t.Fatalf("UptimeEnabled() = true, want false")
	}
	if !clock.TimezoneEnabled() {
		t.Fatalf("TimezoneEnabled() = false, want true")
	}
	if cfg.Panels[3].Options["seed"] != 7 {
		t.Fatalf("Options[seed] = %v, want 7", cfg.Panels[3].Options["seed"])
	}
	if cfg.Banner.Text != "DashTrash" {
		t.Fatalf("Banner.Text = %q, want %q", cfg.Banner.Text, "DashTrash")
	}
}

func TestLoad_ParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.toml")
	if err := os.WriteFile(path, []byte(`
refresh_rate = 0.5
theme = "Slate"

[[panels]]
type = "temperature"
position = "left"
simulate = true

[[panels]]
type = "clock"
position = "right"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", cfg.Theme, "Slate")
	}
	if len(cfg.Panels) != 2 || !cfg.Panels[0].Simulate {
		t.Fatalf("Panels = %+v, want simulated temperature then clock", cfg.Panels)
	}
}

func TestLoad_InvalidYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yml")
	if err := os.WriteFile(path, []byte("panels: [\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.toml")
	if err := os.WriteFile(path, []byte(`refresh_rate = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %v, want parse config error", err)
	}
}

func TestLoad_EmptyFileHasNoPanels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yml")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg.Panels) != 0 || cfg.RefreshRate != DefaultRefreshRate {
		t.Fatalf("Load(empty) = %+v, want no panels and default refresh", cfg)
	}
}

func TestLoad_ValidationFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yml")
	if err := os.WriteFile(path, []byte(`
panels:
  - position: top
  - type: plugin
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want validation error")
	}
	for _, want := range []string{"missing required type", "needs plugin_name"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("Load error = %q, want it to mention %q", err.Error(), want)
		}
	}
}

func TestWriteDefault_RoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	for _, name := range []string{"dashboard.yml", "dashboard.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			written, err := WriteDefault(path)
			if err != nil {
				t.Fatalf("WriteDefault returned error: %v", err)
			}
			if written != path {
				t.Fatalf("WriteDefault path = %q, want %q", written, path)
			}

			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			want := Default()
			Normalize(&want)
			if !reflect.DeepEqual(cfg, want) {
				t.Fatalf("Load(WriteDefault) = %+v, want %+v", cfg, want)
			}

			if _, err := WriteDefault(path); err == nil {
				t.Fatalf("second WriteDefault returned nil error, want exists error")
			}
		})
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

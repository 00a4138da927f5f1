package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Panel types understood by the dashboard.
const (
	TypeSystem      = "system"
	TypeLogs        = "logs"
	TypeTemperature = "temperature"
	TypeClock       = "clock"
	TypePlugin      = "plugin"
)

// Clock time formats.
const (
	TimeFormat12h = "12h"
	TimeFormat24h = "24h"
)

// Config is the dashboard description loaded from dashboard.yml.
type Config struct {
	RefreshRate float64 `yaml:"refresh_rate" toml:"refresh_rate"`
	Theme       string  `yaml:"theme,omitempty" toml:"theme,omitempty"`
	Banner      Banner  `yaml:"banner" toml:"banner"`
	Logging     Logging `yaml:"logging,omitempty" toml:"logging,omitempty"`
	Panels      []Panel `yaml:"panels" toml:"panels"`
}

// Banner is the header art shown above the panels.
type Banner struct {
	Text     string `yaml:"text" toml:"text"`
	Font     string `yaml:"font" toml:"font"`
	Tagline  string `yaml:"tagline" toml:"tagline"`
	Disabled bool   `yaml:"disabled,omitempty" toml:"disabled,omitempty"`
}

// Logging controls the diagnostic log, not the log panel.
type Logging struct {
	Level  string `yaml:"level,omitempty" toml:"level,omitempty"`
	Format string `yaml:"format,omitempty" toml:"format,omitempty"`
	Sink   string `yaml:"sink,omitempty" toml:"sink,omitempty"`
	File   string `yaml:"file,omitempty" toml:"file,omitempty"`
}

// Panel describes one dashboard panel. Declaration order matters: it is the
// ordinal used when a panel has no usable position.
type Panel struct {
	Type            string         `yaml:"type" toml:"type"`
	Position        string         `yaml:"position,omitempty" toml:"position,omitempty"`
	PluginName      string         `yaml:"plugin_name,omitempty" toml:"plugin_name,omitempty"`
	Title           string         `yaml:"title,omitempty" toml:"title,omitempty"`
	RefreshInterval float64        `yaml:"refresh_interval,omitempty" toml:"refresh_interval,omitempty"`
	File            string         `yaml:"file,omitempty" toml:"file,omitempty"`
	Filters         []string       `yaml:"filters,omitempty" toml:"filters,omitempty"`
	MaxLines        int            `yaml:"max_lines,omitempty" toml:"max_lines,omitempty"`
	Regex           bool           `yaml:"regex,omitempty" toml:"regex,omitempty"`
	TimeFormat      string         `yaml:"time_format,omitempty" toml:"time_format,omitempty"`
	ShowTimezone    *bool          `yaml:"show_timezone,omitempty" toml:"show_timezone,omitempty"`
	ShowUptime      *bool          `yaml:"show_uptime,omitempty" toml:"show_uptime,omitempty"`
	Mount           string         `yaml:"mount,omitempty" toml:"mount,omitempty"`
	Simulate        bool           `yaml:"simulate,omitempty" toml:"simulate,omitempty"`
	Options         map[string]any `yaml:"options,omitempty" toml:"options,omitempty"`
}

// TimezoneEnabled reports show_timezone, defaulting to true.
func (p Panel) TimezoneEnabled() bool { return p.ShowTimezone == nil || *p.ShowTimezone }

// UptimeEnabled reports show_uptime, defaulting to true.
func (p Panel) UptimeEnabled() bool { return p.ShowUptime == nil || *p.ShowUptime }

const (
	DefaultPath        = "dashboard.yml"
	DefaultRefreshRate = 1.0
	DefaultMaxLines    = 15
	defaultLogFile     = "~/.local/share/dashtrash/dashtrash.log"
)

// Default returns the dashboard used when no config file exists.
func Default() Config {
	return Config{
		RefreshRate: DefaultRefreshRate,
		Banner: Banner{
			Text:    "DashTrash",
			Font:    "ansi_shadow",
			Tagline: "Real-time dashboards. Questionable aesthetics.",
		},
		Panels: []Panel{
			{Type: TypeSystem, Position: "top", RefreshInterval: 2},
			{
				Type:     TypeLogs,
				Position: "bottom",
				File:     "/var/log/system.log",
				Filters:  []string{"ERROR", "WARNING", "INFO"},
				MaxLines: 20,
			},
		},
	}
}

// Load reads the dashboard config at path, falling back to Default when the
// file is missing. The result is normalized and validated.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			Normalize(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data, formatFor(resolved))
	if err != nil {
		return Config{}, err
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", resolved, err)
	}
	return cfg, nil
}

// Format is a config file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

func formatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Parse decodes raw config bytes. Unset top-level fields keep their zero
// values; Normalize fills them.
func Parse(data []byte, format Format) (Config, error) {
	var cfg Config
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	default:
		if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	return cfg, nil
}

// Marshal encodes cfg in the given format.
func Marshal(cfg Config, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(cfg)
	default:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

// WriteDefault writes Default to path unless a file already exists there.
// It returns the resolved path.
func WriteDefault(path string) (string, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(resolved); err == nil {
		return resolved, fmt.Errorf("config already exists: %s", resolved)
	}
	data, err := Marshal(Default(), formatFor(resolved))
	if err != nil {
		return "", fmt.Errorf("encode default config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return resolved, nil
}

// Positions returns each panel's declared position in declaration order.
func (c Config) Positions() []string {
	out := make([]string, len(c.Panels))
	for i, p := range c.Panels {
		out[i] = p.Position
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(DefaultPath)
	}
	return expandPath(path)
}

// ResolvePath expands path, using DefaultPath when it is empty.
func ResolvePath(path string) (string, error) { return resolvePath(path) }

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) { return expandPath(path) }

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

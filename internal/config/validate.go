package config

import (
	"errors"
	"fmt"
)

var knownTypes = map[string]bool{
	TypeSystem:      true,
	TypeLogs:        true,
	TypeTemperature: true,
	TypeClock:       true,
	TypePlugin:      true,
}

// Validate checks a normalized config. It does not mutate cfg and reports
// every problem it finds.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	var errs []error
	if cfg.RefreshRate < 0 {
		errs = append(errs, fmt.Errorf("refresh_rate must be positive, got %g", cfg.RefreshRate))
	}
	switch cfg.Logging.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be text or json", cfg.Logging.Format))
	}
	switch cfg.Logging.Sink {
	case "", "file", "stderr", "none":
	default:
		errs = append(errs, fmt.Errorf("logging.sink %q must be file, stderr or none", cfg.Logging.Sink))
	}

	for i, p := range cfg.Panels {
		where := fmt.Sprintf("panel %d", i)
		if p.Type == "" {
			errs = append(errs, fmt.Errorf("%s: missing required type", where))
			continue
		}
		if !knownTypes[p.Type] {
			errs = append(errs, fmt.Errorf("%s: unknown type %q", where, p.Type))
			continue
		}
		if p.Type == TypePlugin && p.PluginName == "" {
			errs = append(errs, fmt.Errorf("%s: plugin panel needs plugin_name", where))
		}
		if p.MaxLines < 0 {
			errs = append(errs, fmt.Errorf("%s: max_lines must not be negative", where))
		}
		if p.RefreshInterval < 0 {
			errs = append(errs, fmt.Errorf("%s: refresh_interval must not be negative", where))
		}
		if p.Type == TypeClock {
			switch p.TimeFormat {
			case "", TimeFormat12h, TimeFormat24h:
			default:
				errs = append(errs, fmt.Errorf("%s: time_format %q must be 12h or 24h", where, p.TimeFormat))
			}
		}
	}
	return errors.Join(errs...)
}

package config

import "strings"

// Normalize trims and lower-cases names, fills defaults and expands paths.
// Empty positions stay empty; the layout treats them as absent.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.RefreshRate == 0 {
		cfg.RefreshRate = DefaultRefreshRate
	}
	cfg.Theme = strings.TrimSpace(cfg.Theme)

	if strings.TrimSpace(cfg.Banner.Text) == "" {
		cfg.Banner.Text = Default().Banner.Text
	}
	cfg.Banner.Font = strings.TrimSpace(cfg.Banner.Font)

	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	cfg.Logging.Sink = strings.ToLower(strings.TrimSpace(cfg.Logging.Sink))
	if strings.TrimSpace(cfg.Logging.File) == "" {
		cfg.Logging.File = defaultLogFile
	}
	cfg.Logging.File = mustExpand(cfg.Logging.File)

	for i := range cfg.Panels {
		p := &cfg.Panels[i]
		p.Type = strings.ToLower(strings.TrimSpace(p.Type))
		p.Position = strings.ToLower(strings.TrimSpace(p.Position))
		p.PluginName = strings.TrimSpace(p.PluginName)
		p.TimeFormat = strings.ToLower(strings.TrimSpace(p.TimeFormat))
		if p.Type == TypeLogs {
			if p.MaxLines == 0 {
				p.MaxLines = DefaultMaxLines
			}
			if strings.HasPrefix(strings.TrimSpace(p.File), "~") {
				p.File = mustExpand(p.File)
			}
		}
	}
}

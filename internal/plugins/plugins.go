// Package plugins holds the panels reachable through type "plugin".
//
// A plugin is a panel.Factory registered under a name; dashboard.yml selects
// it with plugin_name and passes plugin settings under options. Plugins that
// hold resources implement io.Closer and are closed when the loop stops.
package plugins

import (
	"errors"
	"log/slog"

	"github.com/five82/dashtrash/internal/panel"
)

// Register installs every bundled plugin into reg.
func Register(reg *panel.Registry, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return errors.Join(
		reg.RegisterPlugin("demo", newDemo(logger.With("plugin", "demo"))),
	)
}

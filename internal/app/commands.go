package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/five82/dashtrash/internal/config"
	"github.com/five82/dashtrash/internal/layout"
)

// ErrConfigNotFound is returned by Validate when the file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Validate loads the config at path and writes a summary of it to out.
// Unlike Run, a missing file is an error.
func Validate(path string, out io.Writer) error {
	resolved, err := config.ResolvePath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(resolved); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, resolved)
		}
		return fmt.Errorf("stat config: %w", err)
	}
	cfg, err := config.Load(resolved)
	if err != nil {
		return err
	}

	tree := layout.Build(cfg.Positions(), len(cfg.Panels))
	var b strings.Builder
	fmt.Fprintf(&b, "Configuration file '%s' is valid\n\n", resolved)
	fmt.Fprintln(&b, "Dashboard summary:")
	fmt.Fprintf(&b, "  - Refresh rate: %gs\n", cfg.RefreshRate)
	fmt.Fprintf(&b, "  - Layout: %s (%s)\n", tree.Kind(), strings.Join(tree.Leaves(), ", "))
	fmt.Fprintf(&b, "  - Panels configured: %d\n", len(cfg.Panels))
	for i, p := range cfg.Panels {
		fmt.Fprintf(&b, "    %d. %s panel -> %s\n", i+1, PanelName(p), tree.Resolve(i, p.Position))
		switch p.Type {
		case config.TypeLogs:
			fmt.Fprintf(&b, "       Log file: %s\n", p.File)
		case config.TypePlugin:
			fmt.Fprintf(&b, "       Plugin: %s\n", p.PluginName)
		}
	}
	_, err = io.WriteString(out, b.String())
	return err
}

// CreateConfig writes the default dashboard to path and tells the user where.
func CreateConfig(path string, out io.Writer) error {
	resolved, err := config.WriteDefault(path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Default configuration created at '%s'\n", resolved)
	return err
}

package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/five82/dashtrash/internal/config"
	"github.com/five82/dashtrash/internal/engine"
	"github.com/five82/dashtrash/internal/layout"
	"github.com/five82/dashtrash/internal/logging"
	"github.com/five82/dashtrash/internal/panel"
	"github.com/five82/dashtrash/internal/plugins"
	"github.com/five82/dashtrash/internal/prefs"
	"github.com/five82/dashtrash/internal/state"
	"github.com/five82/dashtrash/internal/ui"
)

const (
	defaultOnceWidth  = 100
	defaultOnceHeight = 30
)

// runUI is swapped in tests; the real program needs a terminal.
var runUI = ui.Run

// Options configure the dashboard application.
type Options struct {
	ConfigPath string
	PrefsPath  string  // empty uses ~/.config/dashtrash/prefs.toml
	Refresh    float64 // seconds; zero keeps refresh_rate from the config
	Once       bool    // print one frame to Stdout instead of starting the TUI
	Width      int
	Height     int
	Version    string
	Stdout     io.Writer
}

// Dashboard is a fully wired dashboard that has not started yet.
type Dashboard struct {
	Config config.Config
	Tree   *layout.Tree
	Loop   *engine.Loop
	Store  *state.Store
}

// Run boots the dashboard until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Refresh > 0 {
		cfg.RefreshRate = opts.Refresh
	}

	logger, closeLog, err := logging.Init(cfg.Logging, logging.Options{Version: opts.Version})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	d, err := Build(cfg, logger)
	if err != nil {
		return err
	}
	themeName := resolveTheme(cfg, opts.PrefsPath, logger)

	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	if opts.Once {
		return RenderOnce(ctx, d, themeName, opts.Width, opts.Height, out)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loopErr := make(chan error, 1)
	go func() { loopErr <- d.Loop.Run(ctx) }()

	uiErr := runUI(ui.Options{
		Context:   ctx,
		Store:     d.Store,
		Tree:      d.Tree,
		Banner:    cfg.Banner,
		Refresh:   interval(cfg.RefreshRate),
		ThemeName: themeName,
		PrefsPath: opts.PrefsPath,
		Logger:    logger,
	})

	d.Loop.Stop()
	cancel()
	err = <-loopErr
	fmt.Fprintln(out, "Dashboard stopped.")
	if err != nil {
		return err
	}
	if uiErr != nil {
		return fmt.Errorf("terminal ui: %w", uiErr)
	}
	return nil
}

// Build creates every configured panel and the loop that refreshes them. A
// panel that cannot be built is kept as an error block so the rest of the
// dashboard still runs.
func Build(cfg config.Config, logger *slog.Logger) (*Dashboard, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	reg := panel.NewRegistry()
	if err := panel.RegisterBuiltins(reg); err != nil {
		return nil, fmt.Errorf("register panels: %w", err)
	}
	if err := plugins.Register(reg, logger); err != nil {
		return nil, fmt.Errorf("register plugins: %w", err)
	}

	panels := make([]engine.Panel, len(cfg.Panels))
	for i, p := range cfg.Panels {
		name := PanelName(p)
		src, err := reg.Build(p)
		if err != nil {
			logger.Warn("panel build failed", "panel", name, "error", err)
			src = panel.Failed(name, err)
		}
		panels[i] = engine.Panel{Name: name, Position: p.Position, Source: src}
	}

	tree := layout.Build(cfg.Positions(), len(cfg.Panels))
	logger.Debug("layout built", "kind", tree.Kind(), "regions", tree.Leaves())

	store := &state.Store{}
	loop := engine.New(engine.Options{
		Layout:    tree,
		Panels:    panels,
		Publisher: store,
		Interval:  interval(cfg.RefreshRate),
		Logger:    logger,
	})
	return &Dashboard{Config: cfg, Tree: tree, Loop: loop, Store: store}, nil
}

// RenderOnce runs a single tick and writes the drawn frame to out.
func RenderOnce(ctx context.Context, d *Dashboard, themeName string, width, height int, out io.Writer) error {
	if width <= 0 {
		width = defaultOnceWidth
	}
	if height <= 0 {
		height = defaultOnceHeight
	}
	defer d.Loop.Close()

	d.Store.Publish(d.Loop.Tick(ctx))
	screen := ui.Screen{
		Snapshot: d.Store.Snapshot(),
		Tree:     d.Tree,
		Banner:   ui.BuildBanner(ctx, d.Config.Banner),
		Theme:    ui.GetTheme(themeName),
		Width:    width,
		Height:   height,
	}
	if _, err := fmt.Fprintln(out, ui.Render(screen)); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// PanelName is the label used for a panel in logs and error blocks.
func PanelName(p config.Panel) string {
	if title := strings.TrimSpace(p.Title); title != "" {
		return title
	}
	if p.Type == config.TypePlugin && p.PluginName != "" {
		return p.PluginName
	}
	if p.Type == "" {
		return "panel"
	}
	return p.Type
}

// resolveTheme prefers the config theme, then the saved preference.
func resolveTheme(cfg config.Config, prefsPath string, logger *slog.Logger) string {
	if cfg.Theme != "" {
		return cfg.Theme
	}
	p, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn("load preferences failed", "error", err)
	}
	return p.Theme
}

func interval(seconds float64) time.Duration {
	if seconds <= 0 {
		seconds = config.DefaultRefreshRate
	}
	return time.Duration(seconds * float64(time.Second))
}

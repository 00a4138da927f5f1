package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/five82/dashtrash/internal/app"
	"github.com/five82/dashtrash/internal/config"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newCommand(os.Stdout).Run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "dashtrash: %v\n", err)
		return 1
	}
	return 0
}

func newCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "dashtrash",
		Usage:   "terminal dashboard for real-time monitoring",
		Version: version,
		Writer:  stdout,
		Description: "Real-time dashboards. Questionable aesthetics.\n\n" +
			"Examples:\n" +
			"  dashtrash                    run with dashboard.yml\n" +
			"  dashtrash -c custom.yml      run with another config\n" +
			"  dashtrash --validate         check the config and exit\n" +
			"  dashtrash --create-config    write the default config and exit",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "dashboard config file (.yml, .yaml or .toml)",
			},
			&cli.FloatFlag{Name: "refresh", Usage: "override refresh_rate in seconds"},
			&cli.BoolFlag{Name: "validate", Usage: "validate the config, print a summary and exit"},
			&cli.BoolFlag{Name: "create-config", Usage: "write the default config to --config and exit"},
			&cli.BoolFlag{Name: "once", Usage: "print a single frame to stdout instead of starting the TUI"},
			&cli.IntFlag{Name: "width", Value: 100, Usage: "frame width for --once"},
			&cli.IntFlag{Name: "height", Value: 30, Usage: "frame height for --once"},
			&cli.StringFlag{Name: "prefs", Usage: "preferences file (default ~/.config/dashtrash/prefs.toml)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.String("config")
			switch {
			case cmd.Bool("create-config"):
				return app.CreateConfig(path, stdout)
			case cmd.Bool("validate"):
				return app.Validate(path, stdout)
			}

			refresh := cmd.Float("refresh")
			if refresh < 0 {
				return fmt.Errorf("--refresh must be positive, got %g", refresh)
			}
			return app.Run(ctx, app.Options{
				ConfigPath: path,
				PrefsPath:  cmd.String("prefs"),
				Refresh:    refresh,
				Once:       cmd.Bool("once"),
				Width:      int(cmd.Int("width")),
				Height:     int(cmd.Int("height")),
				Version:    version,
				Stdout:     stdout,
			})
		},
	}
}

// Package app is the composition root of the dashboard.
//
// Run wires the pieces together in this order:
//
//	config.Load        read dashboard.yml (or .toml), normalize, validate
//	logging.Init       slog logger on the rotating file sink
//	Build              registry + built-in panels + plugins, region tree, loop
//	engine.Loop.Run    background refresh, publishing frames to state.Store
//	ui.Run             Bubble Tea program drawing the latest frame (blocks)
//
// When the UI exits the loop is stopped and the context cancelled, and
// "Dashboard stopped." is printed to Options.Stdout. The loop's own failure,
// if any, is the error returned. With Options.Once the loop is ticked a
// single time and the frame is printed instead of starting the TUI.
//
// A panel whose factory fails does not stop startup. It is replaced by a
// source that renders the construction error in its region.
//
// Validate and CreateConfig back the --validate and --create-config flags.
package app

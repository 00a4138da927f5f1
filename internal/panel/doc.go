// Package panel defines the contract between dashboard panels and the
// refresh loop, and ships the built-in panels.
//
// A Source is fetched and rendered once per tick:
//
//	data := src.Fetch(ctx)   // never returns a Go error; failures go in Data.Err
//	content := src.Render(data)
//
// Content is plain title/body/footer text plus a Tone; the UI decides how to
// box and color it. ErrorContent is the block every panel uses for failures,
// so a broken panel looks the same wherever it is placed.
//
// The Registry maps panel types ("system", "logs", "temperature", "clock")
// and plugin names to factories. Type "plugin" looks up PluginName among
// registered plugins; an unknown plugin renders a "not found" block.
//
// Sources that hold resources may implement io.Closer; the refresh loop
// closes them when it stops.
package panel

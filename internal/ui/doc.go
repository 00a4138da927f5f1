// Package ui draws dashboard frames in the terminal.
//
// The Bubble Tea model never fetches panel data itself. It reads the latest
// state.Snapshot from the store whenever the store signals an update, and on
// a fallback tick, then composes the region tree:
//
//	banner (figlet art and tagline, dropped when the terminal is too short)
//	region tree (split nodes joined with lipgloss, leaves drawn as boxes)
//	status line (time, panel count, refresh, quit hint, error count)
//
// Panels placed in the same region are stacked and share its height. A box's
// border color follows the panel tone. Render is pure, so the same code
// draws the one-shot frame printed by --once.
//
// Keys: q or ctrl+c quits, T cycles the theme and saves it with
// internal/prefs, ? toggles the key help.
package ui

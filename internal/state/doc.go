// Package state shares the latest rendered frame between the refresh loop
// and the terminal UI.
//
// # Architecture
//
//	Producer (engine.Loop):        Consumer (UI):
//	┌────────────────┐            ┌──────────────────┐
//	│ Tick()         │            │                  │
//	│      ↓         │            │                  │
//	│ store.Publish()│───────────→│ store.Snapshot() │
//	│      ↓         │  (mutex)   │      ↓           │
//	│ sleep, repeat  │            │ draw regions     │
//	└────────────────┘            └──────────────────┘
//
// Store is safe to use as a zero value. Publish and MarkStopped take the
// write lock; Snapshot takes the read lock and returns a deep copy, so the
// UI can hold a frame while the loop builds the next one.
//
// A Frame maps region names to the panel content placed there. Several
// panels can land in the same region; they are kept in declaration order and
// the UI stacks them.
//
// MarkStopped keeps the last frame so the final state stays on screen after
// the loop exits. Updates returns a coalescing notification channel for
// consumers that want to redraw as soon as a frame lands.
package state

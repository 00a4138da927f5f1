// Package engine runs the dashboard refresh loop.
//
// Each tick walks the panels in declaration order. For every panel it
// resolves a region through the layout, fetches, renders, and places the
// content in the frame; the frame is then published and the loop sleeps for
// the refresh interval.
//
//	loop := engine.New(engine.Options{Panels: panels, Publisher: store, Interval: time.Second})
//	go loop.Run(ctx)
//	...
//	loop.Stop()
//
// # Isolation
//
// Fetch and Render run inside a recover boundary per panel. A panic, or Data
// carrying an error, becomes that panel's error block in its own region and
// the rest of the frame is unaffected. A panic outside that boundary stops
// Run, which logs it and returns it as an error.
//
// # Stopping
//
// Run owns an atomic running flag. Stop clears it and drops a token on a
// one-slot wake channel without blocking; Run leaves its sleep on the token
// and exits at the top of the next iteration. Cancelling the context wakes
// the sleep the same way. On exit Run marks the publisher stopped and closes every
// source that implements io.Closer, once.
//
// Fetch is called synchronously, so one slow panel delays the whole tick.
package engine

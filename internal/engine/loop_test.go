package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/five82/dashtrash/internal/layout"
	"github.com/five82/dashtrash/internal/panel"
	"github.com/five82/dashtrash/internal/state"
)

type fakeSource struct {
	title   string
	err     error
	panics  bool
	fetches atomic.Int32
	closed  atomic.Int32
}

func (f *fakeSource) Fetch(context.Context) panel.Data {
	f.fetches.Add(1)
	if f.panics {
		panic("kaboom")
	}
	return panel.Data{Value: f.title, Err: f.err}
}

func (f *fakeSource) Render(d panel.Data) panel.Content {
	if d.Err != nil {
		return panel.ErrorContent(f.title, d.Err)
	}
	return panel.Content{Title: f.title, Body: d.Value.(string)}
}

func (f *fakeSource) Close() error {
	f.closed.Add(1)
	return nil
}

// ignoresErr renders normal content even when Fetch reported an error.
type ignoresErr struct{}

func (ignoresErr) Fetch(context.Context) panel.Data {
	return panel.Data{Err: errors.New("sensor offline")}
}
func (ignoresErr) Render(panel.Data) panel.Content { return panel.Content{Title: "Quiet"} }

type recordingPublisher struct {
	mu      sync.Mutex
	frames  []state.Frame
	stopped bool
	err     error
}

func (p *recordingPublisher) Publish(f state.Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames = append(p.frames, f)
}

func (p *recordingPublisher) MarkStopped(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
	p.err = err
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames)
}

func titles(cs []panel.Content) string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Title
	}
	return strings.Join(out, ",")
}

func TestTick_TopLeftRight(t *testing.T) {
	l := New(Options{Panels: []Panel{
		{Name: "a", Position: "top", Source: &fakeSource{title: "A"}},
		{Name: "b", Position: "left", Source: &fakeSource{title: "B"}},
		{Name: "c", Position: "right", Source: &fakeSource{title: "C"}},
	}})
	f := l.Tick(context.Background())
	for region, want := range map[string]string{"top": "A", "left": "B", "right": "C"} {
		if got := titles(f.Regions[region]); got != want {
			t.Fatalf("Regions[%s] = %q, want %q", region, got, want)
		}
	}
	if f.Status.Panels != 3 || f.Status.Tick != 1 || f.Status.Errors != 0 {
		t.Fatalf("Status = %+v", f.Status)
	}
}

func TestTick_NoPositionsTwoPanels(t *testing.T) {
	l := New(Options{Panels: []Panel{
		{Name: "a", Source: &fakeSource{title: "A"}},
		{Name: "b", Source: &fakeSource{title: "B"}},
	}})
	f := l.Tick(context.Background())
	if titles(f.Regions["left"]) != "A" || titles(f.Regions["right"]) != "B" {
		t.Fatalf("Regions = %+v, want A left and B right", f.Regions)
	}
}

func TestTick_SingleUnknownPosition(t *testing.T) {
	l := New(Options{Panels: []Panel{
		{Name: "a", Position: "center", Source: &fakeSource{title: "A"}},
	}})
	f := l.Tick(context.Background())
	if titles(f.Regions["center"]) != "A" {
		t.Fatalf("Regions = %+v, want A in center", f.Regions)
	}
}

func TestTick_SharedRegionKeepsOrder(t *testing.T) {
	l := New(Options{Panels: []Panel{
		{Name: "a", Position: "top", Source: &fakeSource{title: "A"}},
		{Name: "b", Position: "top", Source: &fakeSource{title: "B"}},
	}})
	f := l.Tick(context.Background())
	if got := titles(f.Regions["top"]); got != "A,B" {
		t.Fatalf("Regions[top] = %q, want A,B", got)
	}
}

func TestTick_PanelIsolation(t *testing.T) {
	good := &fakeSource{title: "Good"}
	failing := &fakeSource{title: "Logs", err: errors.New("log file not found: /nope")}
	panicky := &fakeSource{title: "Boom", panics: true}

	l := New(Options{Panels: []Panel{
		{Name: "good", Position: "top", Source: good},
		{Name: "logs", Position: "left", Source: failing},
		{Name: "boom", Position: "right", Source: panicky},
		{Name: "quiet", Source: ignoresErr{}},
		{Name: "empty"},
	}})
	f := l.Tick(context.Background())

	// quiet has no position and falls back to top after good
	if c := f.Regions["top"]; len(c) != 2 || c[0].Title != "Good" || c[0].Tone == panel.ToneError {
		t.Fatalf("good panel affected: %+v", c)
	}
	logs := f.Regions["left"]
	if len(logs) == 0 || logs[0].Tone != panel.ToneError || !strings.Contains(logs[0].Body, "log file not found") {
		t.Fatalf("failing panel = %+v, want error block in left", logs)
	}
	boom := f.Regions["right"]
	if len(boom) == 0 || boom[0].Tone != panel.ToneError || !strings.Contains(boom[0].Body, "panic: kaboom") {
		t.Fatalf("panicking panel = %+v, want error block in right", boom)
	}
	if f.Status.Errors != 4 {
		t.Fatalf("Status.Errors = %d, want 4", f.Status.Errors)
	}

	var quiet, empty *panel.Content
	for _, cs := range f.Regions {
		for i := range cs {
			switch cs[i].Title {
			case "Quiet":
				quiet = &cs[i]
			case "empty":
				empty = &cs[i]
			}
		}
	}
	if quiet == nil || quiet.Tone != panel.ToneError || !strings.Contains(quiet.Body, "sensor offline") {
		t.Fatalf("error data not surfaced: %+v", quiet)
	}
	if empty == nil || empty.Tone != panel.ToneError {
		t.Fatalf("nil source not surfaced: %+v", empty)
	}

	// the next tick still runs every panel
	l.Tick(context.Background())
	if good.fetches.Load() != 2 || panicky.fetches.Load() != 2 {
		t.Fatalf("fetches = %d/%d, want 2/2", good.fetches.Load(), panicky.fetches.Load())
	}
}

type badPlacer struct{ *layout.Tree }

func (badPlacer) Resolve(int, string) string { return "nowhere" }

func TestTick_PlacementFallsBackToFirstLeaf(t *testing.T) {
	tree := layout.Build([]string{"left", "right"}, 2)
	l := New(Options{
		Layout: badPlacer{tree},
		Panels: []Panel{{Name: "a", Source: &fakeSource{title: "A"}}},
	})
	f := l.Tick(context.Background())
	if titles(f.Regions[tree.FirstLeaf()]) != "A" {
		t.Fatalf("Regions = %+v, want A in %s", f.Regions, tree.FirstLeaf())
	}
	if _, ok := f.Regions["nowhere"]; ok {
		t.Fatalf("content placed in a region missing from the layout")
	}
}

func TestTick_StatusClock(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	l := New(Options{Interval: 2 * time.Second, Now: func() time.Time { return fixed }})
	f := l.Tick(context.Background())
	if !f.Status.Time.Equal(fixed) || f.Status.Refresh != 2*time.Second || f.Status.Panels != 0 {
		t.Fatalf("Status = %+v", f.Status)
	}
}

func runAsync(t *testing.T, l *Loop, ctx context.Context) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()
	return done
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met before deadline")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestRun_StopExitsAndClosesSources(t *testing.T) {
	src := &fakeSource{title: "A"}
	pub := &recordingPublisher{}
	l := New(Options{
		Panels:    []Panel{{Name: "a", Source: src}},
		Publisher: pub,
		Interval:  time.Millisecond,
	})

	done := runAsync(t, l, context.Background())
	waitFor(t, func() bool { return pub.count() >= 3 })
	if !l.Running() {
		t.Fatalf("Running() = false while looping")
	}

	l.Stop()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not exit after Stop")
	}

	if l.Running() {
		t.Fatalf("Running() = true after exit")
	}
	if src.closed.Load() != 1 {
		t.Fatalf("Close called %d times, want 1", src.closed.Load())
	}
	if !pub.stopped || pub.err != nil {
		t.Fatalf("publisher stopped=%v err=%v, want stopped without error", pub.stopped, pub.err)
	}

	// no frames after exit
	n := pub.count()
	time.Sleep(10 * time.Millisecond)
	if pub.count() != n {
		t.Fatalf("frames published after stop")
	}
}

func TestRun_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := &state.Store{}
	l := New(Options{
		Panels:    []Panel{{Name: "a", Source: &fakeSource{title: "A"}}},
		Publisher: store,
		Interval:  time.Hour,
	})
	done := runAsync(t, l, ctx)
	waitFor(t, func() bool { return store.Snapshot().HasFrame })

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not exit after cancel")
	}
	if !store.Snapshot().Stopped {
		t.Fatalf("store not marked stopped")
	}
}

func TestRun_StopWakesSleep(t *testing.T) {
	pub := &recordingPublisher{}
	l := New(Options{
		Panels:    []Panel{{Name: "a", Source: &fakeSource{title: "A"}}},
		Publisher: pub,
		Interval:  time.Hour,
	})
	done := runAsync(t, l, context.Background())
	waitFor(t, func() bool { return pub.count() >= 1 })

	l.Stop()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run still sleeping after Stop")
	}
	if pub.count() != 1 {
		t.Fatalf("published %d frames, want 1", pub.count())
	}
}

func TestRun_StopBeforeRunStillTicksOnce(t *testing.T) {
	// Run sets the flag itself, so an earlier Stop does not prevent a run.
	pub := &recordingPublisher{}
	l := New(Options{Publisher: pub, Interval: time.Millisecond})
	l.Stop()
	done := runAsync(t, l, context.Background())
	waitFor(t, func() bool { return pub.count() >= 1 })
	l.Stop()
	if err := <-done; err != nil {
		t.Fatalf("Run error = %v", err)
	}
}

func TestRun_RejectsConcurrentRun(t *testing.T) {
	pub := &recordingPublisher{}
	l := New(Options{Publisher: pub, Interval: time.Millisecond})
	done := runAsync(t, l, context.Background())
	waitFor(t, l.Running)

	if err := l.Run(context.Background()); !errors.Is(err, ErrRunning) {
		t.Fatalf("second Run error = %v, want ErrRunning", err)
	}
	l.Stop()
	<-done
}

type panickyPublisher struct{ recordingPublisher }

func (p *panickyPublisher) Publish(state.Frame) { panic("display gone") }

func TestRun_LoopPanicBecomesError(t *testing.T) {
	src := &fakeSource{title: "A"}
	pub := &panickyPublisher{}
	l := New(Options{Panels: []Panel{{Name: "a", Source: src}}, Publisher: pub, Interval: time.Millisecond})

	err := l.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "display gone") {
		t.Fatalf("Run error = %v, want display gone", err)
	}
	if !pub.stopped || pub.err == nil {
		t.Fatalf("publisher not told about the crash")
	}
	if src.closed.Load() != 1 {
		t.Fatalf("Close called %d times, want 1", src.closed.Load())
	}
	if l.Running() {
		t.Fatalf("Running() = true after crash")
	}
}

func TestClose_OnceWithoutRun(t *testing.T) {
	src := &fakeSource{title: "A"}
	l := New(Options{Panels: []Panel{{Name: "a", Source: src}, {Name: "static", Source: panel.Static{}}}})
	l.Tick(context.Background())
	l.Close()
	l.Close()
	if src.closed.Load() != 1 {
		t.Fatalf("Close called %d times, want 1", src.closed.Load())
	}
}

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/five82/dashtrash/internal/layout"
	"github.com/five82/dashtrash/internal/panel"
	"github.com/five82/dashtrash/internal/state"
)

const defaultInterval = time.Second

// ErrRunning is returned by Run when the loop is already running.
var ErrRunning = errors.New("refresh loop already running")

// Placer decides which region a panel is drawn in. *layout.Tree implements it.
type Placer interface {
	Resolve(index int, declared string) string
	HasLeaf(name string) bool
	FirstLeaf() string
}

// Publisher receives each frame. *state.Store implements it.
type Publisher interface {
	Publish(state.Frame)
	MarkStopped(error)
}

// Panel is one configured panel in declaration order.
type Panel struct {
	Name     string // used in logs and as the fallback title
	Position string
	Source   panel.Source
}

// Options configure a Loop.
type Options struct {
	Layout    Placer // nil builds a tree from the panels' positions
	Panels    []Panel
	Publisher Publisher
	Interval  time.Duration
	Logger    *slog.Logger
	Now       func() time.Time
}

// Loop ticks every panel on a fixed interval and publishes the frames.
type Loop struct {
	layout    Placer
	panels    []Panel
	publisher Publisher
	interval  time.Duration
	logger    *slog.Logger
	now       func() time.Time

	running   atomic.Bool
	wake      chan struct{} // cuts the inter-tick sleep short after Stop
	ticks     uint64
	closeOnce sync.Once
}

func New(opts Options) *Loop {
	l := &Loop{
		layout:    opts.Layout,
		panels:    append([]Panel(nil), opts.Panels...),
		publisher: opts.Publisher,
		interval:  opts.Interval,
		logger:    opts.Logger,
		now:       opts.Now,
		wake:      make(chan struct{}, 1),
	}
	if l.layout == nil {
		positions := make([]string, len(l.panels))
		for i, p := range l.panels {
			positions[i] = p.Position
		}
		l.layout = layout.Build(positions, len(l.panels))
	}
	if l.publisher == nil {
		l.publisher = &state.Store{}
	}
	if l.interval <= 0 {
		l.interval = defaultInterval
	}
	if l.logger == nil {
		l.logger = slog.New(slog.DiscardHandler)
	}
	if l.now == nil {
		l.now = time.Now
	}
	return l
}

// Running reports whether Run is looping.
func (l *Loop) Running() bool { return l.running.Load() }

// Stop asks Run to exit before its next tick. It clears the running flag and
// wakes a sleeping Run without blocking, so it is safe from any goroutine or
// signal path.
func (l *Loop) Stop() {
	l.running.Store(false)
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run ticks until Stop is called or ctx is done. A panic that escapes a tick
// is logged and returned as an error. On exit the publisher is marked
// stopped and sources implementing io.Closer are closed.
func (l *Loop) Run(ctx context.Context) (err error) {
	if !l.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	// a Stop issued before this run must not cut its first sleep short
	select {
	case <-l.wake:
	default:
	}
	l.logger.Info("dashboard started", "panels", len(l.panels), "interval", l.interval)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("refresh loop: %v", r)
			l.logger.Error("refresh loop crashed", "error", err)
		}
		l.running.Store(false)
		l.closeSources()
		l.publisher.MarkStopped(err)
		l.logger.Info("dashboard stopped")
	}()

	timer := time.NewTimer(l.interval)
	defer timer.Stop()

	for l.running.Load() {
		if ctx.Err() != nil {
			return nil
		}
		l.publisher.Publish(l.Tick(ctx))

		timer.Reset(l.interval)
		select {
		case <-ctx.Done():
			return nil
		case <-l.wake:
		case <-timer.C:
		}
	}
	return nil
}

// Tick fetches and renders every panel once and returns the frame. A panel
// that fails or panics is drawn as an error block in its own region; the
// other panels are unaffected.
func (l *Loop) Tick(ctx context.Context) state.Frame {
	l.ticks++
	frame := state.Frame{Status: state.Status{
		Time:    l.now(),
		Panels:  len(l.panels),
		Refresh: l.interval,
		Tick:    l.ticks,
	}}
	for i, p := range l.panels {
		region := l.layout.Resolve(i, p.Position)
		content := l.render(ctx, p)
		if content.Tone == panel.ToneError {
			frame.Status.Errors++
		}
		frame.Place(l.place(p, region), content)
	}
	return frame
}

func (l *Loop) place(p Panel, region string) string {
	if l.layout.HasLeaf(region) {
		return region
	}
	fallback := l.layout.FirstLeaf()
	l.logger.Warn("region not in layout, using first region",
		"panel", p.Name, "region", region, "fallback", fallback)
	return fallback
}

func (l *Loop) render(ctx context.Context, p Panel) (content panel.Content) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("panel panicked", "panel", p.Name, "panic", r)
			content = panel.ErrorContent(p.Name, fmt.Errorf("panic: %v", r))
		}
	}()
	if p.Source == nil {
		return panel.ErrorContent(p.Name, errors.New("panel has no source"))
	}

	data := p.Source.Fetch(ctx)
	content = p.Source.Render(data)
	if data.Err != nil {
		l.logger.Warn("panel fetch failed", "panel", p.Name, "error", data.Err)
		if content.Tone != panel.ToneError {
			title := content.Title
			if title == "" {
				title = p.Name
			}
			content = panel.ErrorContent(title, data.Err)
		}
	}
	if content.Title == "" {
		content.Title = p.Name
	}
	return content
}

// Close releases every source that implements io.Closer. Run calls it on
// exit; callers that only use Tick call it themselves. Later calls are no-ops.
func (l *Loop) Close() { l.closeSources() }

func (l *Loop) closeSources() {
	l.closeOnce.Do(func() {
		for _, p := range l.panels {
			if c, ok := p.Source.(io.Closer); ok {
				l.closeSource(p.Name, c)
			}
		}
	})
}

func (l *Loop) closeSource(name string, c io.Closer) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("panel cleanup panicked", "panel", name, "panic", r)
		}
	}()
	if err := c.Close(); err != nil {
		l.logger.Warn("panel cleanup failed", "panel", name, "error", err)
	}
}

package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/dashtrash/internal/panel"
)

// Status is the header block of a frame.
type Status struct {
	Time    time.Time
	Panels  int
	Refresh time.Duration
	Errors  int // panels that rendered an error on this tick
	Tick    uint64
}

// Frame is everything drawn on one tick: the rendered panels keyed by the
// region they were placed in, in declaration order within a region.
type Frame struct {
	Regions map[string][]panel.Content
	Status  Status
}

// Place appends content to a region.
func (f *Frame) Place(region string, c panel.Content) {
	if f.Regions == nil {
		f.Regions = make(map[string][]panel.Content)
	}
	f.Regions[region] = append(f.Regions[region], c)
}

// Clone returns a deep copy of the frame.
func (f Frame) Clone() Frame {
	out := Frame{Status: f.Status}
	if f.Regions != nil {
		out.Regions = make(map[string][]panel.Content, len(f.Regions))
		for k, v := range f.Regions {
			out.Regions[k] = append([]panel.Content(nil), v...)
		}
	}
	return out
}

// Snapshot represents the latest frame available to the UI.
type Snapshot struct {
	Frame       Frame
	HasFrame    bool
	LastUpdated time.Time
	Stopped     bool
	LastError   error // set when the refresh loop stopped on a failure
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	notify   chan struct{}
}

// Publish replaces the stored frame.
func (s *Store) Publish(f Frame) {
	s.mu.Lock()
	s.snapshot.Frame = f.Clone()
	s.snapshot.HasFrame = true
	s.snapshot.LastUpdated = time.Now()
	s.signalLocked()
	s.mu.Unlock()
}

// MarkStopped records that the refresh loop has exited. The last frame is
// kept for display.
func (s *Store) MarkStopped(err error) {
	s.mu.Lock()
	s.snapshot.Stopped = true
	s.snapshot.LastError = err
	s.signalLocked()
	s.mu.Unlock()
}

// Updates returns a channel that receives a value after each Publish or
// MarkStopped. Updates coalesce; a slow reader sees at most one pending.
func (s *Store) Updates() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notify == nil {
		s.notify = make(chan struct{}, 1)
	}
	return s.notify
}

func (s *Store) signalLocked() {
	if s.notify == nil {
		return
	}
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Frame = s.snapshot.Frame.Clone()
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

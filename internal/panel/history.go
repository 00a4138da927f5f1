package panel

import "sync"

// DefaultHistory is the number of samples kept for sparklines.
const DefaultHistory = 20

// History is a bounded series of samples; the oldest is evicted first. The
// zero value holds DefaultHistory samples.
type History struct {
	mu    sync.Mutex
	buf   []float64
	idx   int
	count int
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistory
	}
	return &History{buf: make([]float64, capacity)}
}

func (h *History) Push(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.buf == nil {
		h.buf = make([]float64, DefaultHistory)
	}
	h.buf[h.idx] = v
	h.idx = (h.idx + 1) % len(h.buf)
	if h.count < len(h.buf) {
		h.count++
	}
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

func (h *History) Cap() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.buf == nil {
		return DefaultHistory
	}
	return len(h.buf)
}

// Values returns the samples oldest first.
func (h *History) Values() []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]float64, h.count)
	start := 0
	if h.count == len(h.buf) {
		start = h.idx
	}
	for i := range out {
		out[i] = h.buf[(start+i)%len(h.buf)]
	}
	return out
}

package logtail

import (
	"errors"
	"fmt"
	"os"
)

// Read returns at most maxLines lines from the end of the file at path,
// including a last line that has no newline yet. A missing file yields nil, nil.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}
	lines, _, _, err := scanBackward(file, info.Size(), defaultChunkSize, maxLines, nil)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return lines, nil
}

// ring keeps the last cap entries appended to it.
type ring struct {
	buf   []string
	idx   int
	count int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]string, capacity)}
}

func (r *ring) push(line string) {
	if len(r.buf) == 0 {
		return
	}
	r.buf[r.idx] = line
	r.idx = (r.idx + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

func (r *ring) lines() []string {
	if r.count == 0 {
		return nil
	}
	lines := make([]string, r.count)
	if r.count == len(r.buf) {
		for i := 0; i < r.count; i++ {
			lines[i] = r.buf[(r.idx+i)%len(r.buf)]
		}
	} else {
		copy(lines, r.buf[:r.count])
	}
	return lines
}

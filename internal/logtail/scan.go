package logtail

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
)

const defaultChunkSize = 8 * 1024

// scanBackward walks [0, end) from the end in chunk-sized reads and returns the
// last limit lines accepted by keep, oldest first. Bytes after the final
// newline form an unterminated line; it is returned as the newest line and
// partial reports that it was kept. consumed is the offset just past the
// final newline, or 0 when the range holds no newline at all.
func scanBackward(r io.ReaderAt, end int64, chunk, limit int, keep func(string) bool) (lines []string, consumed int64, partial bool, err error) {
	if chunk <= 0 {
		chunk = defaultChunkSize
	}
	if limit <= 0 || end <= 0 {
		return nil, 0, false, nil
	}

	consumed = -1
	var (
		rev  []string
		tail []byte // start of the line being assembled, already read
		buf  = make([]byte, chunk)
		pos  = end
	)
	emit := func(raw []byte) bool {
		line := decode(raw)
		if keep != nil && !keep(line) {
			return false
		}
		rev = append(rev, line)
		return true
	}

	for pos > 0 && len(rev) < limit {
		n := int64(chunk)
		if pos < n {
			n = pos
		}
		pos -= n
		part := buf[:n]
		if _, err := r.ReadAt(part, pos); err != nil && !errors.Is(err, io.EOF) {
			return nil, 0, false, err
		}

		stop := len(part)
		for j := len(part) - 1; j >= 0 && len(rev) < limit; j-- {
			if part[j] != '\n' {
				continue
			}
			line := join(part[j+1:stop], tail)
			if consumed < 0 {
				consumed = pos + int64(j) + 1
				if len(line) > 0 {
					partial = emit(line)
				}
			} else {
				emit(line)
			}
			tail = nil
			stop = j
		}
		if len(rev) >= limit {
			break
		}
		tail = join(part[:stop], tail)
	}

	if consumed < 0 {
		// no newline anywhere: the whole range is one unterminated line
		if len(tail) > 0 {
			partial = emit(tail)
		}
		return rev, 0, partial, nil
	}
	// at start of file the leading fragment is a whole line
	if pos == 0 && len(rev) < limit {
		emit(tail)
	}

	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev, consumed, partial, nil
}

// scanForward reads r to EOF and returns the last limit lines accepted by
// keep. A final line without a newline is included and reported by partial;
// consumed counts only the bytes of newline-terminated lines.
func scanForward(r io.Reader, limit int, keep func(string) bool) (lines []string, consumed int64, partial bool, err error) {
	if limit <= 0 {
		return nil, 0, false, nil
	}
	br := bufio.NewReaderSize(r, 64*1024)
	window := newRing(limit)
	for {
		raw, err := br.ReadBytes('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, consumed, false, err
			}
			if len(raw) > 0 {
				if line := decode(raw); keep == nil || keep(line) {
					window.push(line)
					partial = true
				}
			}
			break
		}
		consumed += int64(len(raw))
		line := decode(raw[:len(raw)-1])
		if keep == nil || keep(line) {
			window.push(line)
		}
	}
	return window.lines(), consumed, partial, nil
}

func join(head, tail []byte) []byte {
	out := make([]byte, 0, len(head)+len(tail))
	out = append(out, head...)
	return append(out, tail...)
}

// decode trims a trailing CR and drops bytes that are not valid UTF-8.
func decode(raw []byte) string {
	return strings.ToValidUTF8(string(bytes.TrimSuffix(raw, []byte{'\r'})), "")
}

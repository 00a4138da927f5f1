package logtail

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// DefaultMaxLines is the window size used when Options.MaxLines is not set.
const DefaultMaxLines = 15

// Options configure a Reader.
type Options struct {
	Path      string
	MaxLines  int
	Filters   []string // any-match, case-insensitive
	Regex     bool     // treat Filters as regular expressions instead of substrings
	ChunkSize int      // reverse scan read size; zero uses 8 KiB
}

// Result is the outcome of one Poll.
type Result struct {
	Lines []string
	Path  string
	// Reset is set when Lines is a fresh tail of the file (first poll,
	// truncation or rotation) rather than lines appended since the last poll.
	Reset bool
	// Partial is set when the last entry of Lines has no newline yet.
	Partial bool
	// ReplacesPartial is set when the previous poll ended with a partial
	// line; Lines supersedes it, so callers drop it before appending.
	ReplacesPartial bool
	Err             error
}

// Cursor is the resume point of a Reader. Offset sits just past the last
// newline read; Seen also counts an unterminated trailing line.
type Cursor struct {
	Offset   int64
	Seen     int64
	identity os.FileInfo
}

// Reader tails one file across polls without rereading it.
type Reader struct {
	path     string
	maxLines int
	chunk    int
	filters  []string
	match    *regexp.Regexp
	cursor   Cursor
	partial  bool // last returned line was unterminated
}

// New builds a Reader. It fails only when a filter pattern does not compile.
func New(opts Options) (*Reader, error) {
	maxLines := opts.MaxLines
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	r := &Reader{
		path:     strings.TrimSpace(opts.Path),
		maxLines: maxLines,
		chunk:    opts.ChunkSize,
	}
	for _, f := range opts.Filters {
		if f = strings.TrimSpace(f); f != "" {
			r.filters = append(r.filters, f)
		}
	}
	match, err := compileFilters(r.filters, opts.Regex)
	if err != nil {
		return nil, err
	}
	r.match = match
	return r, nil
}

func compileFilters(filters []string, raw bool) (*regexp.Regexp, error) {
	if len(filters) == 0 {
		return nil, nil
	}
	parts := make([]string, len(filters))
	for i, f := range filters {
		if raw {
			parts[i] = "(?:" + f + ")"
		} else {
			parts[i] = regexp.QuoteMeta(f)
		}
	}
	re, err := regexp.Compile("(?i)" + strings.Join(parts, "|"))
	if err != nil {
		return nil, fmt.Errorf("compile log filters: %w", err)
	}
	return re, nil
}

// Path returns the tracked file path.
func (r *Reader) Path() string { return r.path }

// MaxLines returns the window size.
func (r *Reader) MaxLines() int { return r.maxLines }

// Filters returns the active filter terms.
func (r *Reader) Filters() []string {
	return append([]string(nil), r.filters...)
}

// Cursor returns the current resume point.
func (r *Reader) Cursor() Cursor { return r.cursor }

// Poll returns the lines added since the previous poll. On the first poll, or
// once the file has shrunk or been replaced, it returns the last MaxLines
// lines instead and sets Result.Reset. A last line without a newline is
// returned too and read again on the next poll until it is completed.
// Failures are reported in Result.Err.
func (r *Reader) Poll() Result {
	res := Result{Path: r.path}

	file, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			res.Err = fmt.Errorf("log file not found: %s", r.path)
			return res
		}
		res.Err = fmt.Errorf("open log: %w", err)
		return res
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		res.Err = fmt.Errorf("stat log: %w", err)
		return res
	}
	size := info.Size()

	rotated := r.cursor.identity != nil && !os.SameFile(r.cursor.identity, info)
	if rotated || size < r.cursor.Seen {
		r.cursor = Cursor{}
		r.partial = false
	}

	if r.cursor.identity == nil {
		lines, consumed, partial, err := scanBackward(file, size, r.chunk, r.maxLines, r.keep())
		if err != nil {
			res.Err = fmt.Errorf("read log: %w", err)
			return res
		}
		r.cursor = Cursor{Offset: consumed, Seen: size, identity: info}
		r.partial = partial
		res.Lines = lines
		res.Partial = partial
		res.Reset = true
		return res
	}

	r.cursor.identity = info
	if size == r.cursor.Seen {
		return res
	}
	if _, err := file.Seek(r.cursor.Offset, io.SeekStart); err != nil {
		res.Err = fmt.Errorf("seek log: %w", err)
		return res
	}
	lines, consumed, partial, err := scanForward(file, r.maxLines, r.keep())
	r.cursor.Offset += consumed
	r.cursor.Seen = max(size, r.cursor.Offset)
	if err != nil {
		res.Err = fmt.Errorf("read log: %w", err)
		return res
	}
	res.ReplacesPartial = r.partial
	r.partial = partial
	res.Lines = lines
	res.Partial = partial
	return res
}

func (r *Reader) keep() func(string) bool {
	if r.match == nil {
		return nil
	}
	return r.match.MatchString
}

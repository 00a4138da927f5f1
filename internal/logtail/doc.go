// Package logtail reads the tail of a growing log file and colors its lines.
//
// # Overview
//
// A Reader follows one file across dashboard ticks. It keeps a byte cursor
// so each poll only reads what was appended since the previous one, and it
// never loads the whole file to find the last lines.
//
//	r, err := logtail.New(logtail.Options{
//		Path:     "/var/log/system.log",
//		MaxLines: 20,
//		Filters:  []string{"ERROR", "WARNING"},
//	})
//	res := r.Poll() // res.Lines, res.Reset, res.Err
//
// # Poll Algorithm
//
// First poll (cursor at 0): seek to the end and read 8 KiB chunks backwards,
// splitting on newlines and carrying the partial line at each chunk boundary
// into the next read. Scanning stops once MaxLines matching lines are
// collected or the start of the file is reached, so I/O is bounded by
// MaxLines x line length rather than file size.
//
// Later polls: seek to the cursor and read forward to EOF, keeping the last
// MaxLines matching lines in a ring buffer.
//
// In both cases a trailing line still being written is returned as the
// newest line with Result.Partial set, but the cursor stays at the last
// newline. The next poll that sees new bytes reads that line again and sets
// Result.ReplacesPartial so the caller can drop the stale copy.
//
// # Truncation and Rotation
//
// When the file is smaller than what was already read, or the path now names a
// different file (os.SameFile on the stat result), the cursor resets and the
// next read is a fresh reverse scan. Result.Reset tells the caller to replace
// its window rather than append to it.
//
// # Filtering
//
// Filter terms match case-insensitively and any term is enough. Plain terms
// are quoted and joined into one alternation; with Options.Regex they are
// used as patterns. Filtering happens per line as it is read, before the
// window is cut to MaxLines.
//
// # Decoding
//
// Lines are split on '\n', a trailing '\r' is dropped, and invalid UTF-8
// bytes are removed.
//
// # Error Handling
//
// Poll never panics or returns a Go error: a missing file, a permission
// problem or a read failure is reported in Result.Err so the panel can show
// it in place. New only fails on a filter regex that does not compile.
//
// # Colorization
//
// Classify picks a level from keywords (error, warn, info, debug, success)
// and ColorizeLine renders the line with the matching lipgloss style.
package logtail

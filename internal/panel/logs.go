package panel

import (
	"context"
	"fmt"
	"strings"

	"github.com/five82/dashtrash/internal/config"
	"github.com/five82/dashtrash/internal/logtail"
)

// LogsView is what the logs panel fetched: its current display window.
type LogsView struct {
	Path    string
	Lines   []string
	Filters []string
	Total   int // lines seen since the last reset
}

// Logs tails one file and keeps the newest MaxLines lines on screen.
type Logs struct {
	reader *logtail.Reader
	window []string
	total  int
}

func NewLogs(p config.Panel) (Source, error) {
	reader, err := logtail.New(logtail.Options{
		Path:     p.File,
		MaxLines: p.MaxLines,
		Filters:  p.Filters,
		Regex:    p.Regex,
	})
	if err != nil {
		return nil, err
	}
	return &Logs{reader: reader}, nil
}

func (l *Logs) Fetch(context.Context) Data {
	res := l.reader.Poll()
	if res.Err != nil {
		return Data{Err: res.Err}
	}
	if res.Reset {
		l.window = l.window[:0]
		l.total = 0
	}
	if res.ReplacesPartial && len(l.window) > 0 {
		l.window = l.window[:len(l.window)-1]
		l.total--
	}
	l.total += len(res.Lines)
	l.window = append(l.window, res.Lines...)
	if over := len(l.window) - l.reader.MaxLines(); over > 0 {
		l.window = append(l.window[:0], l.window[over:]...)
	}
	return Data{Value: LogsView{
		Path:    res.Path,
		Lines:   append([]string(nil), l.window...),
		Filters: l.reader.Filters(),
		Total:   l.total,
	}}
}

func (l *Logs) Render(d Data) Content {
	title := "Logs"
	if p := l.reader.Path(); p != "" {
		title = "Logs: " + p
	}
	if d.Err != nil {
		return ErrorContent(title, d.Err)
	}
	view, ok := d.Value.(LogsView)
	if !ok {
		return ErrorContent(title, fmt.Errorf("unexpected data %T", d.Value))
	}
	return RenderLogs(title, view)
}

// RenderLogs colors the window and summarizes it in the footer.
func RenderLogs(title string, v LogsView) Content {
	c := Content{Title: title, Follow: true}
	if len(v.Lines) == 0 {
		c.Body = "No log entries found"
	} else {
		c.Body = strings.Join(logtail.ColorizeLines(v.Lines), "\n")
	}
	c.Footer = fmt.Sprintf("%d lines", v.Total)
	if len(v.Filters) > 0 {
		c.Footer += " | Filters: " + strings.Join(v.Filters, ", ")
	}
	for _, line := range v.Lines {
		if logtail.Classify(line) == logtail.LevelError {
			c.Tone = ToneWarn
			break
		}
	}
	return c
}

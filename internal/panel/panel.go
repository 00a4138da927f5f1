package panel

import (
	"context"
	"fmt"
)

// Tone hints how the UI should frame a panel.
type Tone int

const (
	ToneNormal Tone = iota
	ToneOK
	ToneWarn
	ToneError
)

func (t Tone) String() string {
	switch t {
	case ToneOK:
		return "ok"
	case ToneWarn:
		return "warn"
	case ToneError:
		return "error"
	default:
		return "normal"
	}
}

// Data is what a source fetched on one tick. Err is set instead of a Go
// error return so a failed fetch still flows through Render.
type Data struct {
	Value any
	Err   error
}

// Content is a rendered panel block ready to be boxed by the UI.
type Content struct {
	Title  string
	Body   string
	Footer string
	Tone   Tone
	Follow bool // keep the last body lines when the box is too short
}

// Source is a panel data source. The refresh loop calls Fetch then Render
// once per tick. Sources that hold resources may also implement io.Closer.
type Source interface {
	Fetch(ctx context.Context) Data
	Render(Data) Content
}

// ErrorContent is the standard block shown in place of a failing panel.
func ErrorContent(title string, err error) Content {
	if title == "" {
		title = "Panel"
	}
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Content{
		Title: title,
		Body:  fmt.Sprintf("Error: %s", msg),
		Tone:  ToneError,
	}
}

// Static is a source that always renders the same content.
type Static struct {
	Content Content
}

func (s Static) Fetch(context.Context) Data { return Data{} }

func (s Static) Render(Data) Content { return s.Content }

// Failed returns a source that reports err on every tick. It stands in for
// panels whose construction failed so the rest of the dashboard still runs.
func Failed(title string, err error) Source {
	return Static{Content: ErrorContent(title, err)}
}

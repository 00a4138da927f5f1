package plugins

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/five82/dashtrash/internal/config"
	"github.com/five82/dashtrash/internal/panel"
)

// DemoStats is one sample of the demo plugin's made-up numbers.
type DemoStats struct {
	Now         time.Time
	Random      int
	CPUTemp     float64
	Requests    int
	Connections int
}

// Demo shows the current time and random stats. It exists to exercise the
// plugin path end to end.
type Demo struct {
	title  string
	rnd    *rand.Rand
	now    func() time.Time
	logger *slog.Logger
	closed bool
}

func newDemo(logger *slog.Logger) panel.Factory {
	return func(p config.Panel) (panel.Source, error) {
		seed := uint64(time.Now().UnixNano())
		if v, ok := p.Options["seed"]; ok {
			n, err := asUint(v)
			if err != nil {
				return nil, fmt.Errorf("demo option seed: %w", err)
			}
			seed = n
		}
		title := strings.TrimSpace(p.Title)
		if title == "" {
			title = "demo"
		}
		logger.Debug("demo plugin initialized", "seed", seed)
		return &Demo{
			title:  title,
			rnd:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
			now:    time.Now,
			logger: logger,
		}, nil
	}
}

func asUint(v any) (uint64, error) {
	switch n := v.(type) {
	case int:
		return uint64(n), nil
	case int64:
		return uint64(n), nil
	case uint64:
		return n, nil
	case float64:
		return uint64(n), nil
	default:
		return 0, fmt.Errorf("want a number, got %T", v)
	}
}

func (d *Demo) Fetch(context.Context) panel.Data {
	return panel.Data{Value: DemoStats{
		Now:         d.now(),
		Random:      1 + d.rnd.IntN(100),
		CPUTemp:     30 + d.rnd.Float64()*40,
		Requests:    10 + d.rnd.IntN(491),
		Connections: 5 + d.rnd.IntN(46),
	}}
}

func (d *Demo) Render(data panel.Data) panel.Content {
	if data.Err != nil {
		return panel.ErrorContent(d.title, data.Err)
	}
	s, ok := data.Value.(DemoStats)
	if !ok {
		return panel.ErrorContent(d.title, fmt.Errorf("unexpected data %T", data.Value))
	}
	tone := panel.ToneOK
	if s.CPUTemp > 60 {
		tone = panel.ToneWarn
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Current Time: %s\n", s.Now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Random Number: %d\n", s.Random)
	fmt.Fprintf(&b, "CPU Temp: %.1f°C\n", s.CPUTemp)
	fmt.Fprintf(&b, "Network Requests: %s\n", humanize.Comma(int64(s.Requests)))
	fmt.Fprintf(&b, "Active Connections: %d", s.Connections)
	return panel.Content{Title: d.title, Body: b.String(), Tone: tone}
}

// Close is called once when the dashboard stops.
func (d *Demo) Close() error {
	if !d.closed {
		d.closed = true
		d.logger.Debug("demo plugin cleaned up")
	}
	return nil
}

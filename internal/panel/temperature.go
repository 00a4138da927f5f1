package panel

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shirou/gopsutil/v4/sensors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/five82/dashtrash/internal/config"
)

const (
	defaultHigh     = 80.0
	defaultCritical = 90.0
)

// Reading is one sensor value with its thresholds in Celsius.
type Reading struct {
	Sensor   string
	Current  float64
	High     float64
	Critical float64
}

// Level returns "hot", "warm" or "ok" against the reading's thresholds.
func (r Reading) Level() string {
	switch {
	case r.Current >= r.Critical:
		return "hot"
	case r.Current >= r.High:
		return "warm"
	default:
		return "ok"
	}
}

// TemperatureView is what the temperature panel fetched.
type TemperatureView struct {
	Readings  []Reading
	Average   float64
	History   []float64
	Simulated bool
}

// Temperature reports hardware sensors, or synthetic readings when the host
// exposes none.
type Temperature struct {
	simulate bool
	interval float64
	history  *History
	read     func(context.Context) ([]Reading, error)
	intn     func(int) int
}

func NewTemperature(p config.Panel) (Source, error) {
	return &Temperature{
		simulate: p.Simulate,
		interval: p.RefreshInterval,
		history:  NewHistory(DefaultHistory),
		read:     readSensors,
		intn:     rand.IntN,
	}, nil
}

func readSensors(ctx context.Context) ([]Reading, error) {
	stats, err := sensors.TemperaturesWithContext(ctx)
	if err != nil && len(stats) == 0 {
		return nil, err
	}
	out := make([]Reading, 0, len(stats))
	for _, s := range stats {
		r := Reading{Sensor: s.SensorKey, Current: s.Temperature, High: s.High, Critical: s.Critical}
		if r.High <= 0 {
			r.High = defaultHigh
		}
		if r.Critical <= 0 {
			r.Critical = defaultCritical
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sensor < out[j].Sensor })
	return out, nil
}

func (t *Temperature) synthetic() []Reading {
	return []Reading{
		{Sensor: "cpu_core_0", Current: float64(45 + t.intn(31) - 10), High: defaultHigh, Critical: defaultCritical},
		{Sensor: "cpu_core_1", Current: float64(47 + t.intn(31) - 10), High: defaultHigh, Critical: defaultCritical},
		{Sensor: "system", Current: float64(42 + t.intn(26) - 10), High: 75, Critical: 85},
	}
}

func (t *Temperature) Fetch(ctx context.Context) Data {
	var readings []Reading
	simulated := t.simulate
	if !simulated {
		// sensor errors fall through to synthetic data
		readings, _ = t.read(ctx)
		if len(readings) == 0 {
			simulated = true
		}
	}
	if simulated {
		readings = t.synthetic()
	}

	var sum float64
	for _, r := range readings {
		sum += r.Current
	}
	avg := sum / float64(len(readings))
	t.history.Push(avg)

	return Data{Value: TemperatureView{
		Readings:  readings,
		Average:   avg,
		History:   t.history.Values(),
		Simulated: simulated,
	}}
}

func (t *Temperature) Render(d Data) Content {
	const title = "Temperature Monitor"
	if d.Err != nil {
		return ErrorContent(title, fmt.Errorf("temperature monitoring unavailable: %w", d.Err))
	}
	view, ok := d.Value.(TemperatureView)
	if !ok {
		return ErrorContent(title, fmt.Errorf("unexpected data %T", d.Value))
	}
	return RenderTemperature(view, t.interval)
}

var sensorTitle = cases.Title(language.English)

// SensorLabel turns a sensor key into a short display name.
func SensorLabel(key string) string {
	label := sensorTitle.String(strings.ReplaceAll(key, "_", " "))
	if r := []rune(label); len(r) > 12 {
		label = string(r[:12])
	}
	return label
}

func tempColor(current, high, critical float64) lipgloss.Color {
	switch {
	case current >= critical:
		return lipgloss.Color(colorHot)
	case current >= high:
		return lipgloss.Color(colorWarm)
	case current >= high*0.7:
		return lipgloss.Color("#FFA500")
	default:
		return lipgloss.Color(colorGood)
	}
}

// RenderTemperature formats readings as a table with the average trend.
func RenderTemperature(v TemperatureView, interval float64) Content {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %-8s %-6s %s\n", "Sensor", "Temp", "Status", "Limits")
	tone := ToneOK
	for _, r := range v.Readings {
		style := lipgloss.NewStyle().Foreground(tempColor(r.Current, r.High, r.Critical))
		status := strings.ToUpper(r.Level())
		switch r.Level() {
		case "hot":
			tone = ToneError
		case "warm":
			if tone != ToneError {
				tone = ToneWarn
			}
		}
		fmt.Fprintf(&b, "%-12s %s %-6s %.0f°/%.0f°\n",
			SensorLabel(r.Sensor),
			style.Render(fmt.Sprintf("%-8s", fmt.Sprintf("%.1f°C", r.Current))),
			status, r.High, r.Critical)
	}
	b.WriteString(Sparkline(v.History, 30, 2))

	footer := fmt.Sprintf("Avg: %.1f°C", v.Average)
	if interval > 0 {
		footer += fmt.Sprintf(" | Refresh: %gs", interval)
	}
	if v.Simulated {
		footer += " | simulated"
	}
	return Content{Title: "Temperature Monitor", Body: b.String(), Footer: footer, Tone: tone}
}

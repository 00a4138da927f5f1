package panel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/five82/dashtrash/internal/config"
)

// ClockView is what the clock panel fetched.
type ClockView struct {
	Now      time.Time
	Time     string
	Date     string
	Zone     string
	Uptime   string
	UptimeOK bool
}

// Clock shows local time, date, zone and host uptime.
type Clock struct {
	format       string
	showTimezone bool
	showUptime   bool
	now          func() time.Time
	uptime       func(context.Context) (uint64, error)
}

func NewClock(p config.Panel) (Source, error) {
	return &Clock{
		format:       p.TimeFormat,
		showTimezone: p.TimezoneEnabled(),
		showUptime:   p.UptimeEnabled(),
		now:          time.Now,
		uptime:       host.UptimeWithContext,
	}, nil
}

func (c *Clock) Fetch(ctx context.Context) Data {
	now := c.now()
	layout := "15:04:05"
	if c.format == config.TimeFormat12h {
		layout = "03:04:05 PM"
	}
	zone, _ := now.Zone()
	view := ClockView{
		Now:  now,
		Time: now.Format(layout),
		Date: now.Format("Monday, January 02, 2006"),
		Zone: zone,
	}
	if c.showUptime {
		if secs, err := c.uptime(ctx); err == nil {
			view.Uptime = FormatUptime(time.Duration(secs) * time.Second)
			view.UptimeOK = true
		}
	}
	return Data{Value: view}
}

func (c *Clock) Render(d Data) Content {
	const title = "Current Time"
	if d.Err != nil {
		return ErrorContent(title, d.Err)
	}
	v, ok := d.Value.(ClockView)
	if !ok {
		return ErrorContent(title, fmt.Errorf("unexpected data %T", d.Value))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", TimeOfDay(v.Now.Hour()), v.Time)
	fmt.Fprintf(&b, "Date:   %s\n", v.Date)
	if c.showTimezone {
		fmt.Fprintf(&b, "Zone:   %s\n", v.Zone)
	}
	if c.showUptime {
		uptime := "Unknown"
		if v.UptimeOK {
			uptime = v.Uptime
		}
		fmt.Fprintf(&b, "Uptime: %s\n", uptime)
	}
	fmt.Fprintf(&b, "Vibe:   %s", DayVibe(v.Now.Weekday()))
	return Content{Title: title, Body: b.String()}
}

// FormatUptime renders a duration as "Xd Yh Zm", dropping leading zero units.
func FormatUptime(d time.Duration) string {
	total := int64(d / time.Minute)
	days := total / (24 * 60)
	hours := (total % (24 * 60)) / 60
	minutes := total % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// TimeOfDay names the part of the day an hour falls in.
func TimeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Morning"
	case hour >= 12 && hour < 17:
		return "Afternoon"
	case hour >= 17 && hour < 21:
		return "Evening"
	default:
		return "Night"
	}
}

var dayVibes = map[time.Weekday]string{
	time.Monday:    "Monday Blues",
	time.Tuesday:   "Tuesday Grind",
	time.Wednesday: "Hump Day",
	time.Thursday:  "Almost There",
	time.Friday:    "FRIDAY!",
	time.Saturday:  "Weekend Vibes",
	time.Sunday:    "Sunday Chill",
}

// DayVibe returns a short mood line for the weekday.
func DayVibe(day time.Weekday) string {
	if v, ok := dayVibes[day]; ok {
		return v
	}
	return day.String()
}

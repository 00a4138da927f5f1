package panel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	gnet "github.com/shirou/gopsutil/v4/net"

	"github.com/five82/dashtrash/internal/config"
)

// SystemStats is one sample of host metrics.
type SystemStats struct {
	CPUPercent  float64
	CPUCount    int
	Load        [3]float64
	MemUsed     uint64
	MemTotal    uint64
	MemPercent  float64
	Mount       string
	DiskUsed    uint64
	DiskTotal   uint64
	DiskPercent float64
	NetSent     uint64
	NetRecv     uint64
	SendRate    float64 // bytes per second
	RecvRate    float64
	CPUHistory  []float64
}

type netSample struct {
	sent, recv uint64
	at         time.Time
}

// System reports CPU, memory, disk, network and load.
type System struct {
	mount    string
	interval float64
	history  *History
	last     *netSample
	now      func() time.Time
}

func NewSystem(p config.Panel) (Source, error) {
	mount := strings.TrimSpace(p.Mount)
	if mount == "" {
		mount = "/"
	}
	return &System{
		mount:    mount,
		interval: p.RefreshInterval,
		history:  NewHistory(DefaultHistory),
		now:      time.Now,
	}, nil
}

func (s *System) Fetch(ctx context.Context) Data {
	stats := SystemStats{Mount: s.mount}

	total, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return Data{Err: fmt.Errorf("cpu usage: %w", err)}
	}
	if len(total) > 0 {
		stats.CPUPercent = total[0]
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		stats.CPUCount = n
	}
	// load average is unavailable on some platforms; zeros are fine
	if avg, err := load.AvgWithContext(ctx); err == nil && avg != nil {
		stats.Load = [3]float64{avg.Load1, avg.Load5, avg.Load15}
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Data{Err: fmt.Errorf("memory usage: %w", err)}
	}
	stats.MemUsed, stats.MemTotal, stats.MemPercent = vm.Used, vm.Total, vm.UsedPercent

	du, err := disk.UsageWithContext(ctx, s.mount)
	if err != nil {
		return Data{Err: fmt.Errorf("disk usage %s: %w", s.mount, err)}
	}
	stats.DiskUsed, stats.DiskTotal, stats.DiskPercent = du.Used, du.Total, du.UsedPercent

	if counters, err := gnet.IOCountersWithContext(ctx, false); err == nil && len(counters) > 0 {
		cur := netSample{sent: counters[0].BytesSent, recv: counters[0].BytesRecv, at: s.now()}
		stats.NetSent, stats.NetRecv = cur.sent, cur.recv
		stats.SendRate, stats.RecvRate = netRates(s.last, cur)
		s.last = &cur
	}

	s.history.Push(stats.CPUPercent)
	stats.CPUHistory = s.history.Values()
	return Data{Value: stats}
}

// netRates returns bytes per second between two samples. The first sample,
// a non-positive interval or a counter reset yields zero.
func netRates(prev *netSample, cur netSample) (send, recv float64) {
	if prev == nil {
		return 0, 0
	}
	dt := cur.at.Sub(prev.at).Seconds()
	if dt <= 0 {
		return 0, 0
	}
	if cur.sent >= prev.sent {
		send = float64(cur.sent-prev.sent) / dt
	}
	if cur.recv >= prev.recv {
		recv = float64(cur.recv-prev.recv) / dt
	}
	return send, recv
}

func (s *System) Render(d Data) Content {
	const title = "System Metrics"
	if d.Err != nil {
		return ErrorContent(title, d.Err)
	}
	stats, ok := d.Value.(SystemStats)
	if !ok {
		return ErrorContent(title, fmt.Errorf("unexpected data %T", d.Value))
	}
	return RenderSystem(stats, s.interval)
}

// RenderSystem formats a sample. interval is shown in the footer when set.
func RenderSystem(st SystemStats, interval float64) Content {
	const barWidth = 20
	var b strings.Builder
	fmt.Fprintf(&b, "CPU    %s %5.1f%%  %d cores | Load: %.2f %.2f %.2f\n",
		Bar(st.CPUPercent, barWidth), st.CPUPercent, st.CPUCount, st.Load[0], st.Load[1], st.Load[2])
	fmt.Fprintf(&b, "Memory %s %5.1f%%  %s / %s\n",
		Bar(st.MemPercent, barWidth), st.MemPercent, humanize.IBytes(st.MemUsed), humanize.IBytes(st.MemTotal))
	fmt.Fprintf(&b, "Disk   %s %5.1f%%  %s / %s (%s)\n",
		Bar(st.DiskPercent, barWidth), st.DiskPercent, humanize.IBytes(st.DiskUsed), humanize.IBytes(st.DiskTotal), st.Mount)
	fmt.Fprintf(&b, "Net    ↑ %s/s ↓ %s/s  Total: ↑ %s ↓ %s",
		humanize.IBytes(uint64(st.SendRate)), humanize.IBytes(uint64(st.RecvRate)),
		humanize.IBytes(st.NetSent), humanize.IBytes(st.NetRecv))
	if len(st.CPUHistory) > 1 {
		b.WriteString("\n")
		b.WriteString(Sparkline(st.CPUHistory, 40, 3))
	}

	worst := max(st.CPUPercent, st.MemPercent, st.DiskPercent)
	c := Content{Title: "System Metrics", Body: b.String(), Tone: UsageTone(worst)}
	if interval > 0 {
		c.Footer = fmt.Sprintf("Refresh: %gs", interval)
	}
	return c
}

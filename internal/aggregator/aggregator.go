package aggregator

import (
	"time"

	"github.com/ksk1130/tsvloggen/internal/model"
)

// Stats holds a point-in-time snapshot of what has been generated.
type Stats struct {
	Uptime        time.Duration    `json:"uptime"`
	TotalLines    int64            `json:"total_lines"`
	TotalBytes    int64            `json:"total_bytes"`
	LinesPerSec   float64          `json:"lines_per_sec"`
	LevelCounts   map[string]int64 `json:"level_counts"`
	ServiceCounts map[string]int64 `json:"service_counts"`
}

// Aggregator observes the write loop and counts lines per level and service.
type Aggregator struct {
	startTime     time.Time
	now           func() time.Time
	totalLines    int64
	totalBytes    int64
	levelCounts   map[string]int64
	serviceCounts map[string]int64
}

// New creates an Aggregator whose uptime starts now.
func New() *Aggregator {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *Aggregator {
	return &Aggregator{
		startTime:     now(),
		now:           now,
		levelCounts:   make(map[string]int64),
		serviceCounts: make(map[string]int64),
	}
}

// OnLine records a written line.
func (a *Aggregator) OnLine(line model.Line, size int) {
	a.totalLines++
	a.totalBytes += int64(size)
	a.levelCounts[line.Level]++
	a.serviceCounts[line.Service]++
}

// OnProgress is a no-op; the aggregator counts every line itself.
func (a *Aggregator) OnProgress(model.Progress) {}

// Snapshot returns the current metrics. The maps are copies.
func (a *Aggregator) Snapshot() Stats {
	levels := make(map[string]int64, len(a.levelCounts))
	for k, v := range a.levelCounts {
		levels[k] = v
	}
	services := make(map[string]int64, len(a.serviceCounts))
	for k, v := range a.serviceCounts {
		services[k] = v
	}

	uptime := a.now().Sub(a.startTime)
	var rate float64
	if uptime > 0 {
		rate = float64(a.totalLines) / uptime.Seconds()
	}

	return Stats{
		Uptime:        uptime,
		TotalLines:    a.totalLines,
		TotalBytes:    a.totalBytes,
		LinesPerSec:   rate,
		LevelCounts:   levels,
		ServiceCounts: services,
	}
}

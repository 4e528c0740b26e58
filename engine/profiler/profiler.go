package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-lumen/common"
)

// Stats is one reporting window of frame and memory statistics.
type Stats struct {
	FPS         float64
	FrameTime   time.Duration // mean frame time over the window
	HeapMB      float64
	AllocRateMB float64 // MB allocated per second
	GCCount     uint32
	LastPause   time.Duration
	MaxPause    time.Duration // longest GC pause inside the window
	SysMB       float64
}

// Profiler tracks frame rate and memory statistics and reports them through the shared logger
// at a fixed interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
	now            func() time.Time
}

// NewProfiler creates a Profiler. Non-positive intervals fall back to one second.
//
// Parameters:
//   - interval: time between reports
//
// Returns:
//   - *Profiler: the profiler
func NewProfiler(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: interval,
		now:            time.Now,
	}
}

// Tick should be called once per frame. When the interval has elapsed it gathers Stats and logs them.
//
// Returns:
//   - bool: true if stats were reported this tick
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	s := Stats{
		FPS:       float64(p.frameCount) / elapsed.Seconds(),
		FrameTime: elapsed / time.Duration(p.frameCount),
		HeapMB:    float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:     float64(p.memStats.Sys) / 1024 / 1024,
		GCCount:   p.memStats.NumGC,
	}
	s.AllocRateMB = float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

	if s.GCCount > 0 {
		// PauseNs is a ring of the last 256 pauses
		s.LastPause = time.Duration(p.memStats.PauseNs[(s.GCCount-1)%256])
		start := p.lastGCCount
		if s.GCCount-start > 256 {
			start = s.GCCount - 256
		}
		for i := start; i < s.GCCount; i++ {
			s.MaxPause = max(s.MaxPause, time.Duration(p.memStats.PauseNs[i%256]))
		}
	}

	common.Logger().Info("frame stats",
		"fps", s.FPS,
		"frame", s.FrameTime,
		"heapMB", s.HeapMB,
		"allocMBps", s.AllocRateMB,
		"gc", s.GCCount,
		"lastPause", s.LastPause,
		"maxPause", s.MaxPause,
		"sysMB", s.SysMB,
	)

	p.last = s
	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recently reported stats.
func (p *Profiler) Last() Stats {
	return p.last
}

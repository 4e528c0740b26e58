package profiler

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-lumen/common"

	"github.com/charmbracelet/log"
)

func TestTick(t *testing.T) {
	var buf bytes.Buffer
	prev := common.Logger()
	common.SetLogger(common.NewLogger(&buf, log.InfoLevel))
	defer common.SetLogger(prev)

	start := time.Unix(0, 0)
	clock := start
	p := NewProfiler(time.Second)
	p.lastTime = start
	p.now = func() time.Time { return clock }

	for range 59 {
		clock = clock.Add(10 * time.Millisecond)
		if p.Tick() {
			t.Fatal("Tick() reported before the interval elapsed")
		}
	}
	clock = start.Add(2 * time.Second)
	if !p.Tick() {
		t.Fatal("Tick() did not report after the interval")
	}

	s := p.Last()
	if s.FPS != 30 {
		t.Errorf("FPS = %v, want 30", s.FPS)
	}
	if s.FrameTime != 2*time.Second/60 {
		t.Errorf("FrameTime = %v", s.FrameTime)
	}
	if !strings.Contains(buf.String(), "frame stats") || !strings.Contains(buf.String(), "fps=30") {
		t.Errorf("log output = %q", buf.String())
	}

	clock = clock.Add(10 * time.Millisecond)
	if p.Tick() {
		t.Error("Tick() reported again immediately after a report")
	}
}

func TestNewProfilerDefaultInterval(t *testing.T) {
	if p := NewProfiler(0); p.updateInterval != time.Second {
		t.Errorf("updateInterval = %v, want 1s", p.updateInterval)
	}
}

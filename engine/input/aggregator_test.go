package input

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-lumen/common"
)

func approx(a, b float32) bool {
	return common.Abs(a-b) <= 1e-5
}

func mouseMove(dx, dy float32, buttons uint8) PointerEvent {
	return PointerEvent{Kind: PointerMouse, MovementX: dx, MovementY: dy, Buttons: buttons}
}

func TestSample_AccumulatesDragAndResets(t *testing.T) {
	a := NewAggregator()
	a.PointerDown(PointerEvent{Kind: PointerMouse, Buttons: ButtonPrimary})

	deltas := [][2]float32{{1, 2}, {3.5, -1}, {-0.5, 4}, {10, 0}}
	var sx, sy float32
	for _, d := range deltas {
		a.PointerMove(mouseMove(d[0], d[1], ButtonPrimary))
		sx += d[0]
		sy += d[1]
	}

	snap := a.Sample()
	if !approx(snap.Analog.X, sx) || !approx(snap.Analog.Y, sy) {
		t.Errorf("Sample() analog = (%v, %v), want (%v, %v)", snap.Analog.X, snap.Analog.Y, sx, sy)
	}
	if !snap.Analog.Touching {
		t.Error("Sample().Analog.Touching = false, want true while held")
	}

	again := a.Sample()
	if again.Analog.X != 0 || again.Analog.Y != 0 || again.Analog.Zoom != 0 {
		t.Errorf("second Sample() analog = %+v, want zero deltas", again.Analog)
	}
	if !again.Analog.Touching {
		t.Error("Touching must not be reset by Sample()")
	}
}

func TestPointerMove_NotAccumulatedWithoutButton(t *testing.T) {
	a := NewAggregator()
	a.PointerMove(mouseMove(5, 5, 0))
	a.PointerMove(mouseMove(-3, 7, 0))

	snap := a.Sample()
	if snap.Analog.X != 0 || snap.Analog.Y != 0 {
		t.Errorf("Sample() analog = (%v, %v), want (0, 0) with no button held", snap.Analog.X, snap.Analog.Y)
	}
	if snap.Analog.Touching {
		t.Error("Touching = true, want false")
	}
}

func TestPointerMove_ReleaseStopsAccumulation(t *testing.T) {
	a := NewAggregator()
	a.PointerDown(PointerEvent{Kind: PointerMouse, Buttons: ButtonPrimary})
	a.PointerMove(mouseMove(4, 0, ButtonPrimary))
	a.PointerUp(PointerEvent{Kind: PointerMouse})
	a.PointerMove(mouseMove(100, 100, 0))

	if got := a.Sample().Analog.X; !approx(got, 4) {
		t.Errorf("Sample().Analog.X = %v, want 4", got)
	}
}

func TestPointerMove_TouchCountsAsHeld(t *testing.T) {
	a := NewAggregator()
	a.PointerDown(PointerEvent{ID: 7, Kind: PointerTouch, X: 10, Y: 10})
	a.PointerMove(PointerEvent{ID: 7, Kind: PointerTouch, X: 13, Y: 8, MovementX: 3, MovementY: -2})

	snap := a.Sample()
	if !approx(snap.Analog.X, 3) || !approx(snap.Analog.Y, -2) || !snap.Analog.Touching {
		t.Errorf("Sample().Analog = %+v, want X=3 Y=-2 touching", snap.Analog)
	}
}

func TestWheel_UsesSignOnly(t *testing.T) {
	tests := []struct {
		name   string
		deltas []float32
		step   float32
		want   float32
	}{
		{name: "single down", deltas: []float32{120}, step: 1, want: 1},
		{name: "trackpad magnitudes", deltas: []float32{0.5, 3, 53}, step: 1, want: 3},
		{name: "up and down cancel", deltas: []float32{-100, 4}, step: 1, want: 0},
		{name: "zero delta ignored", deltas: []float32{0}, step: 1, want: 0},
		{name: "custom step", deltas: []float32{-1, -1}, step: 0.25, want: -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAggregator(WithWheelStep(tt.step))
			for _, d := range tt.deltas {
				if !a.Wheel(WheelEvent{DeltaY: d}) {
					t.Fatal("Wheel() consumed = false, want true")
				}
			}
			if got := a.Sample().Analog.Zoom; !approx(got, tt.want) {
				t.Errorf("Sample().Analog.Zoom = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPinch_BaselineThenDelta(t *testing.T) {
	a := NewAggregator()
	a.PointerDown(PointerEvent{ID: 1, Kind: PointerTouch, X: 0, Y: 0})
	a.PointerDown(PointerEvent{ID: 2, Kind: PointerTouch, X: 100, Y: 0})

	// first two-finger sample establishes the baseline
	a.PointerMove(PointerEvent{ID: 2, Kind: PointerTouch, X: 100, Y: 0})
	if got := a.Sample().Analog.Zoom; got != 0 {
		t.Fatalf("first pinch sample zoom = %v, want 0", got)
	}

	// spreading by 20px zooms in (negative) at the default sensitivity
	a.PointerMove(PointerEvent{ID: 2, Kind: PointerTouch, X: 120, Y: 0})
	if got := a.Sample().Analog.Zoom; !approx(got, -0.05*20) {
		t.Fatalf("second pinch sample zoom = %v, want %v", got, -0.05*20)
	}

	// lifting a finger clears the baseline; re-adding it starts a fresh pinch
	a.PointerUp(PointerEvent{ID: 2, Kind: PointerTouch})
	a.PointerMove(PointerEvent{ID: 1, Kind: PointerTouch, X: 0, Y: 0})
	a.PointerDown(PointerEvent{ID: 3, Kind: PointerTouch, X: 0, Y: 50})
	a.PointerMove(PointerEvent{ID: 3, Kind: PointerTouch, X: 0, Y: 50})
	if got := a.Sample().Analog.Zoom; got != 0 {
		t.Fatalf("first sample of new pinch zoom = %v, want 0", got)
	}
	a.PointerMove(PointerEvent{ID: 3, Kind: PointerTouch, X: 0, Y: 40})
	if got := a.Sample().Analog.Zoom; !approx(got, -0.05*(40-50)) {
		t.Errorf("second sample of new pinch zoom = %v, want %v", got, -0.05*(40-50))
	}
}

func TestPinch_SingleTouchAndStrayEventsIgnored(t *testing.T) {
	a := NewAggregator(WithPinchSensitivity(-1))
	a.PointerDown(PointerEvent{ID: 1, Kind: PointerTouch})
	a.PointerMove(PointerEvent{ID: 1, Kind: PointerTouch, X: 40})
	a.PointerMove(PointerEvent{ID: 9, Kind: PointerTouch, X: 80})
	a.PointerUp(PointerEvent{ID: 42, Kind: PointerTouch})
	a.PointerCancel(PointerEvent{ID: 42, Kind: PointerTouch})

	if got := a.Sample().Analog.Zoom; got != 0 {
		t.Errorf("Sample().Analog.Zoom = %v, want 0 with fewer than two touches", got)
	}
}

func TestKeys_BindingsAndAliases(t *testing.T) {
	a := NewAggregator()

	if a.KeyDown(common.KeyQ) {
		t.Error("KeyDown(unmapped) consumed = true, want false")
	}
	a.KeyDown(common.KeyW)
	a.KeyDown(common.KeyLeftShift)
	a.KeyDown(common.KeyC)

	d := a.Sample().Digital
	if !d.Forward || !d.Down || d.Backward || d.Up {
		t.Errorf("Digital = %+v, want forward and down only", d)
	}

	// flags are level state, not reset by sampling
	if !a.Sample().Digital.Forward {
		t.Error("Forward cleared by Sample(), want held")
	}

	// key-up clears the flag even while an alias is still physically held
	a.KeyUp(common.KeyC)
	if a.Sample().Digital.Down {
		t.Error("Down = true after KeyUp(C), want false")
	}
}

func TestWithBindings_Replaces(t *testing.T) {
	a := NewAggregator(WithBindings(map[common.KeyCode]Flag{common.KeyUp: FlagForward}))
	if a.KeyDown(common.KeyW) {
		t.Error("KeyDown(W) consumed with custom bindings, want false")
	}
	a.KeyDown(common.KeyUp)
	if !a.Sample().Digital.Forward {
		t.Error("Forward = false, want true via custom binding")
	}
}

func TestDigital_AxisCancels(t *testing.T) {
	d := Digital{Forward: true, Backward: true, Left: true}
	if got := d.Axis(FlagForward, FlagBackward); got != 0 {
		t.Errorf("Axis(forward, backward) = %v, want 0", got)
	}
	if got := d.Axis(FlagRight, FlagLeft); got != -1 {
		t.Errorf("Axis(right, left) = %v, want -1", got)
	}
}

func TestParseFlag(t *testing.T) {
	for i, name := range flagNames {
		f, ok := ParseFlag(name)
		if !ok || f != Flag(i) || f.String() != name {
			t.Errorf("ParseFlag(%q) = %v, %v", name, f, ok)
		}
	}
	if _, ok := ParseFlag("sideways"); ok {
		t.Error("ParseFlag(\"sideways\") ok = true, want false")
	}
}

func TestSample_ConcurrentEventsNoLoss(t *testing.T) {
	a := NewAggregator()
	a.PointerDown(PointerEvent{Kind: PointerMouse, Buttons: ButtonPrimary})

	const producers, moves = 4, 500
	var wg sync.WaitGroup
	for range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range moves {
				a.PointerMove(mouseMove(1, 0, ButtonPrimary))
			}
		}()
	}

	var total float32
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for {
		select {
		case <-done:
			total += a.Sample().Analog.X
			if total != producers*moves {
				t.Errorf("sum of sampled X = %v, want %d", total, producers*moves)
			}
			return
		default:
			total += a.Sample().Analog.X
		}
	}
}

package input

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-lumen/common"
)

// Aggregator converts raw device events into per-frame input snapshots.
// Event methods report whether the event was consumed; the event source must suppress
// default platform handling for consumed events.
type Aggregator interface {
	// KeyDown marks the flag bound to code as held.
	//
	// Parameters:
	//   - code: the virtual key code
	//
	// Returns:
	//   - bool: true if the key is bound and the event was consumed
	KeyDown(code common.KeyCode) bool

	// KeyUp releases the flag bound to code.
	//
	// Parameters:
	//   - code: the virtual key code
	//
	// Returns:
	//   - bool: true if the key is bound and the event was consumed
	KeyUp(code common.KeyCode) bool

	// PointerDown starts a drag or registers a touch point.
	PointerDown(e PointerEvent) bool

	// PointerMove accumulates drag motion and updates pinch tracking.
	PointerMove(e PointerEvent) bool

	// PointerUp ends a drag or removes a touch point.
	PointerUp(e PointerEvent) bool

	// PointerCancel is treated like PointerUp.
	PointerCancel(e PointerEvent) bool

	// Wheel adds one signed zoom step per event, ignoring the reported magnitude.
	Wheel(e WheelEvent) bool

	// Sample returns the current snapshot and resets the analog accumulators in the same step.
	//
	// Returns:
	//   - Snapshot: the digital state and the analog motion since the previous Sample
	Sample() Snapshot

	// SetPinchSensitivity sets the zoom delta per pixel of pinch distance change.
	SetPinchSensitivity(sensitivity float32)

	// SetWheelStep sets the zoom increment contributed by one wheel event.
	SetWheelStep(step float32)
}

type touchPoint struct {
	x, y float32
}

// aggregatorImpl is the single implementation of Aggregator.
// mu guards only the accumulator fields below it and is never held while calling out.
type aggregatorImpl struct {
	bindings map[common.KeyCode]Flag

	mu *sync.Mutex

	digital  Digital
	dx, dy   float32
	zoom     float32
	touching bool

	// touches tracks active touch points by pointer ID for pinch detection.
	touches map[int]touchPoint

	// pinchDistance is the previous two-finger distance; 0 means no baseline recorded.
	pinchDistance float32

	pinchSensitivity float32
	wheelStep        float32
}

var _ Aggregator = &aggregatorImpl{}

// NewAggregator creates an Aggregator using the default bindings and tuning unless overridden.
//
// Parameters:
//   - options: functional options to configure the aggregator
//
// Returns:
//   - Aggregator: the newly created aggregator
func NewAggregator(options ...AggregatorBuilderOption) Aggregator {
	a := &aggregatorImpl{
		bindings:         DefaultBindings(),
		mu:               &sync.Mutex{},
		touches:          make(map[int]touchPoint),
		pinchSensitivity: -0.05,
		wheelStep:        1,
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

func (a *aggregatorImpl) KeyDown(code common.KeyCode) bool {
	return a.setKey(code, true)
}

func (a *aggregatorImpl) KeyUp(code common.KeyCode) bool {
	return a.setKey(code, false)
}

func (a *aggregatorImpl) PointerDown(e PointerEvent) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.touching = true
	if e.Kind == PointerTouch {
		a.touches[e.ID] = touchPoint{x: e.X, y: e.Y}
	}
	return true
}

func (a *aggregatorImpl) PointerMove(e PointerEvent) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if e.Kind == PointerMouse {
		a.touching = e.Buttons&ButtonPrimary != 0
	} else {
		a.touching = true
	}
	if a.touching {
		a.dx += e.MovementX
		a.dy += e.MovementY
	}

	if e.Kind != PointerTouch {
		return true
	}
	if _, ok := a.touches[e.ID]; !ok {
		// a move for a touch we never saw go down
		return true
	}
	a.touches[e.ID] = touchPoint{x: e.X, y: e.Y}
	if len(a.touches) == 2 {
		d := a.touchDistance()
		if a.pinchDistance == 0 {
			a.pinchDistance = d
		} else {
			a.zoom += a.pinchSensitivity * (d - a.pinchDistance)
			a.pinchDistance = d
		}
	}
	return true
}

func (a *aggregatorImpl) PointerUp(e PointerEvent) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.touching = false
	if e.Kind == PointerTouch {
		delete(a.touches, e.ID)
		a.pinchDistance = 0
	}
	return true
}

func (a *aggregatorImpl) PointerCancel(e PointerEvent) bool {
	return a.PointerUp(e)
}

func (a *aggregatorImpl) Wheel(e WheelEvent) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.touching = e.Buttons&ButtonPrimary != 0
	a.zoom += common.Sign(e.DeltaY) * a.wheelStep
	return true
}

func (a *aggregatorImpl) Sample() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := Snapshot{
		Digital: a.digital,
		Analog: Analog{
			X:        a.dx,
			Y:        a.dy,
			Zoom:     a.zoom,
			Touching: a.touching,
		},
	}
	a.dx, a.dy, a.zoom = 0, 0, 0
	return snap
}

func (a *aggregatorImpl) SetPinchSensitivity(sensitivity float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pinchSensitivity = sensitivity
}

func (a *aggregatorImpl) SetWheelStep(step float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.wheelStep = step
}

// --- internal helpers ---

// setKey applies a key transition to its bound flag. Bindings are immutable after
// construction so the lookup happens outside the lock.
func (a *aggregatorImpl) setKey(code common.KeyCode, held bool) bool {
	flag, ok := a.bindings[code]
	if !ok {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.digital.set(flag, held)
	return true
}

// touchDistance returns the distance between the two tracked touch points.
// Caller must hold the mutex and guarantee exactly two touches.
func (a *aggregatorImpl) touchDistance() float32 {
	var pts [2]touchPoint
	i := 0
	for _, p := range a.touches {
		pts[i] = p
		i++
		if i == 2 {
			break
		}
	}
	dx := float64(pts[0].x - pts[1].x)
	dy := float64(pts[0].y - pts[1].y)
	return float32(math.Hypot(dx, dy))
}

package engine

import (
	"github.com/Carmen-Shannon/oxy-lumen/common"
	"github.com/Carmen-Shannon/oxy-lumen/engine/camera"
	"github.com/Carmen-Shannon/oxy-lumen/engine/input"
	"github.com/Carmen-Shannon/oxy-lumen/engine/window"
)

// pointerTracker turns absolute cursor positions into per-event movement.
type pointerTracker struct {
	x, y  float32
	valid bool
}

// move records a position and returns the motion since the previous one. The first call returns zero.
func (p *pointerTracker) move(x, y float32) (dx, dy float32) {
	if p.valid {
		dx, dy = x-p.x, y-p.y
	}
	p.x, p.y, p.valid = x, y, true
	return dx, dy
}

// bindInput routes window events into the aggregator. The left button is the primary button,
// and Tab toggles between the orbit and free-fly cameras.
func (e *engine) bindInput(w window.Window) {
	w.SetKeyCallback(e.handleKey)
	w.SetMouseButtonCallback(e.handleMouseButton)
	w.SetMouseMoveCallback(e.handleMouseMove)
	w.SetScrollCallback(e.handleScroll)
}

func (e *engine) handleKey(key common.KeyCode, pressed bool) bool {
	if key == common.KeyTab {
		// key repeat arrives as another press
		if pressed && !e.tabHeld {
			e.toggleCamera()
		}
		e.tabHeld = pressed
		return true
	}
	if pressed {
		return e.agg.KeyDown(key)
	}
	return e.agg.KeyUp(key)
}

func (e *engine) handleMouseButton(button window.MouseButton, pressed bool, x, y float32) bool {
	if button != window.MouseButtonLeft {
		return false
	}
	e.pointer.move(x, y)
	ev := input.PointerEvent{
		Kind:    input.PointerMouse,
		X:       x,
		Y:       y,
		Buttons: e.buttons(),
	}
	if pressed {
		return e.agg.PointerDown(ev)
	}
	return e.agg.PointerUp(ev)
}

func (e *engine) handleMouseMove(x, y float32) bool {
	dx, dy := e.pointer.move(x, y)
	return e.agg.PointerMove(input.PointerEvent{
		Kind:      input.PointerMouse,
		X:         x,
		Y:         y,
		MovementX: dx,
		MovementY: dy,
		Buttons:   e.buttons(),
	})
}

// handleScroll converts GLFW's scroll-up-positive offset into a scroll-down-positive DeltaY.
func (e *engine) handleScroll(_, yoff float32) bool {
	if yoff == 0 {
		return false
	}
	return e.agg.Wheel(input.WheelEvent{DeltaY: -yoff, Buttons: e.buttons()})
}

func (e *engine) buttons() uint8 {
	if e.window != nil && e.window.MouseButtonHeld(window.MouseButtonLeft) {
		return input.ButtonPrimary
	}
	return 0
}

func (e *engine) toggleCamera() {
	next := camera.KindFreeFly
	if e.driver.Camera() == camera.KindFreeFly {
		next = camera.KindOrbit
	}
	e.switchCamera(next)
}

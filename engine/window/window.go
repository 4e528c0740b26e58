package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-lumen/common"

	"github.com/cogentcore/webgpu/wgpu"
)

// MouseButton identifies a mouse button. Values match GLFW's button numbering.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Window provides platform windowing and raw input events.
// Input callbacks report whether they consumed the event; unconsumed events get the
// window's default handling (Escape closes the window).
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyCallback sets the callback for key press and release events. Repeats are reported as presses.
	//
	// Parameters:
	//   - callback: function receiving the key code and whether it is now held
	SetKeyCallback(callback func(key common.KeyCode, pressed bool) bool)

	// SetMouseButtonCallback sets the callback for mouse button press and release.
	//
	// Parameters:
	//   - callback: function receiving the button, its new state and the cursor position
	SetMouseButtonCallback(callback func(button MouseButton, pressed bool, x, y float32) bool)

	// SetMouseMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in window coordinates
	SetMouseMoveCallback(callback func(x, y float32) bool)

	// SetScrollCallback sets the callback for scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving the scroll offsets (positive y = scroll up)
	SetScrollCallback(callback func(xoff, yoff float32) bool)

	// MouseButtonHeld reports whether a button is currently pressed.
	MouseButtonHeld(button MouseButton) bool

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	title string

	// size limits applied to user resizing
	maxWidth, maxHeight int
	minWidth, minHeight int

	// current framebuffer size in pixels
	width, height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate      func()
	onResize      func(width, height int)
	onKey         func(key common.KeyCode, pressed bool) bool
	onMouseButton func(button MouseButton, pressed bool, x, y float32) bool
	onMouseMove   func(x, y float32) bool
	onScroll      func(xoff, yoff float32) bool
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a platform window.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: error if the platform window cannot be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "lumen",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 200,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyCallback(callback func(key common.KeyCode, pressed bool) bool) {
	w.onKey = callback
}

func (w *engineWindow) SetMouseButtonCallback(callback func(button MouseButton, pressed bool, x, y float32) bool) {
	w.onMouseButton = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float32) bool) {
	w.onMouseMove = callback
}

func (w *engineWindow) SetScrollCallback(callback func(xoff, yoff float32) bool) {
	w.onScroll = callback
}

func (w *engineWindow) MouseButtonHeld(button MouseButton) bool {
	return platformMouseButtonHeld(w, button)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// dispatchKey delivers a key event and applies the default Escape handling when unconsumed.
func (w *engineWindow) dispatchKey(key common.KeyCode, pressed bool) {
	consumed := false
	if w.onKey != nil {
		consumed = w.onKey(key, pressed)
	}
	if !consumed && pressed && key == common.KeyEsc {
		w.RequestClose()
	}
}

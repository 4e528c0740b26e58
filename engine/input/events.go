package input

// PointerKind distinguishes the device that produced a pointer event.
type PointerKind int

const (
	PointerMouse PointerKind = iota
	PointerTouch
	PointerPen
)

// ButtonPrimary is the bit set in PointerEvent.Buttons and WheelEvent.Buttons while the primary button is held.
const ButtonPrimary uint8 = 1 << 0

// PointerEvent is a pointer down/move/up delivered by the event source.
type PointerEvent struct {
	// ID identifies the pointer. Each active touch point has its own ID.
	ID   int
	Kind PointerKind

	// X and Y are the pointer position in window pixels.
	X float32
	Y float32

	// MovementX and MovementY are the motion since the previous event of this pointer.
	MovementX float32
	MovementY float32

	// Buttons is the bitmask of held buttons (see ButtonPrimary).
	Buttons uint8
}

// WheelEvent is a scroll event. Only the sign of DeltaY is used.
type WheelEvent struct {
	// DeltaY is positive when scrolling down (away from the content).
	DeltaY  float32
	Buttons uint8
}

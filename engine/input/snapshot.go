package input

import "github.com/Carmen-Shannon/oxy-lumen/common"

// Flag names one digital movement intent.
type Flag int

const (
	FlagForward Flag = iota
	FlagBackward
	FlagLeft
	FlagRight
	FlagUp
	FlagDown
)

var flagNames = [...]string{"forward", "backward", "left", "right", "up", "down"}

// String returns the lower-case flag name used in configuration files.
func (f Flag) String() string {
	if f < 0 || int(f) >= len(flagNames) {
		return "unknown"
	}
	return flagNames[f]
}

// ParseFlag resolves a flag name ("forward", "down", ...) to its Flag.
//
// Parameters:
//   - name: the flag name
//
// Returns:
//   - Flag: the matching flag
//   - bool: false if the name is not known
func ParseFlag(name string) (Flag, bool) {
	for i, n := range flagNames {
		if n == name {
			return Flag(i), true
		}
	}
	return 0, false
}

// Digital holds the held/released state of each movement flag.
type Digital struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Up       bool
	Down     bool
}

// Analog holds pointer motion and zoom accumulated since the previous sample.
type Analog struct {
	// X and Y are the summed pointer deltas while the primary button or a touch was held.
	X float32
	Y float32

	// Zoom is the summed wheel steps and pinch deltas. Positive moves away from the target.
	Zoom float32

	// Touching reports whether the primary button or a touch point is currently down.
	Touching bool
}

// Snapshot is an immutable capture of the input state for one frame.
type Snapshot struct {
	Digital Digital
	Analog  Analog
}

// Axis returns the signed contribution of a pair of opposing flags: +1, -1 or 0 when both or neither are held.
//
// Parameters:
//   - positive: flag contributing +1
//   - negative: flag contributing -1
//
// Returns:
//   - float32: the combined axis value
func (d Digital) Axis(positive, negative Flag) float32 {
	var v float32
	if d.held(positive) {
		v++
	}
	if d.held(negative) {
		v--
	}
	return v
}

func (d Digital) held(f Flag) bool {
	switch f {
	case FlagForward:
		return d.Forward
	case FlagBackward:
		return d.Backward
	case FlagLeft:
		return d.Left
	case FlagRight:
		return d.Right
	case FlagUp:
		return d.Up
	case FlagDown:
		return d.Down
	}
	return false
}

func (d *Digital) set(f Flag, v bool) {
	switch f {
	case FlagForward:
		d.Forward = v
	case FlagBackward:
		d.Backward = v
	case FlagLeft:
		d.Left = v
	case FlagRight:
		d.Right = v
	case FlagUp:
		d.Up = v
	case FlagDown:
		d.Down = v
	}
}

// DefaultBindings returns the standard WASD layout. Space rises; either left modifier or C descends.
func DefaultBindings() map[common.KeyCode]Flag {
	return map[common.KeyCode]Flag{
		common.KeyW:           FlagForward,
		common.KeyS:           FlagBackward,
		common.KeyA:           FlagLeft,
		common.KeyD:           FlagRight,
		common.KeySpace:       FlagUp,
		common.KeyLeftShift:   FlagDown,
		common.KeyLeftControl: FlagDown,
		common.KeyC:           FlagDown,
	}
}

package camera

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Carmen-Shannon/oxy-lumen/common"
	"github.com/Carmen-Shannon/oxy-lumen/engine/input"
)

// Kind selects one of the two camera control schemes.
type Kind int

const (
	// KindOrbit circles a target point, driven by pointer drag and zoom only.
	KindOrbit Kind = iota

	// KindFreeFly moves along its own axes with the digital flags and looks around with the pointer.
	KindFreeFly
)

var (
	// ErrUnknownKind is returned by ParseKind for an unrecognized camera mode name.
	ErrUnknownKind = errors.New("unknown camera kind")

	// ErrNonFinite is returned when a view matrix contains NaN or infinite elements.
	ErrNonFinite = errors.New("view matrix is not finite")

	// ErrSingularMatrix is returned when a view matrix cannot be inverted.
	ErrSingularMatrix = errors.New("view matrix is singular")

	// ErrNotRigid is returned when a view matrix is not a rotation plus translation.
	ErrNotRigid = errors.New("view matrix rotation block is not orthonormal")
)

// rigidTolerance bounds how far basis lengths, dot products and the determinant may drift
// from their ideal values before a matrix is rejected.
const rigidTolerance = 1e-3

const halfPi = math.Pi / 2

// worldUp is the fixed up axis used by both camera variants.
var worldUp = common.Vec3{0, 1, 0}

// String returns the canonical mode name.
func (k Kind) String() string {
	switch k {
	case KindOrbit:
		return "orbit"
	case KindFreeFly:
		return "freefly"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a mode name to a Kind. Accepts "orbit"/"arcball" and "freefly"/"free_fly"/"wasd",
// case-insensitive.
//
// Parameters:
//   - name: the mode name
//
// Returns:
//   - Kind: the matching kind
//   - error: ErrUnknownKind if the name is not recognized
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "orbit", "arcball":
		return KindOrbit, nil
	case "freefly", "free_fly", "wasd":
		return KindFreeFly, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Camera is the contract shared by the orbit and free-fly variants.
// Exactly two implementations exist; callers select one through Kind.
type Camera interface {
	// Kind reports which variant this camera is.
	Kind() Kind

	// Update applies one frame of input and returns the freshly computed view matrix.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame
	//   - snap: the input snapshot sampled for this frame
	//
	// Returns:
	//   - common.Mat4: the view matrix
	Update(deltaTime float32, snap input.Snapshot) common.Mat4

	// View recomputes the view matrix from the current state without applying input.
	View() common.Mat4

	// Position returns the camera's world-space position.
	Position() common.Vec3

	// SetView re-derives the camera's parameters from an arbitrary rigid view matrix.
	// The camera is left unchanged when an error is returned.
	//
	// Parameters:
	//   - view: world-to-view matrix
	//
	// Returns:
	//   - error: ErrNonFinite, ErrSingularMatrix or ErrNotRigid
	SetView(view common.Mat4) error
}

// worldPose validates a view matrix and returns its inverse, the camera-to-world pose.
//
// Parameters:
//   - view: world-to-view matrix
//
// Returns:
//   - common.Mat4: the camera pose with right, up, back axes in columns 0-2 and position in column 3
//   - error: error if the matrix is not finite, not invertible or not rigid
func worldPose(view common.Mat4) (common.Mat4, error) {
	if !view.IsFinite() {
		return common.Mat4{}, ErrNonFinite
	}
	if common.Abs(view[3]) > rigidTolerance || common.Abs(view[7]) > rigidTolerance ||
		common.Abs(view[11]) > rigidTolerance || common.Abs(view[15]-1) > rigidTolerance {
		return common.Mat4{}, fmt.Errorf("%w: projective bottom row", ErrNotRigid)
	}
	world, ok := view.Invert()
	if !ok {
		return common.Mat4{}, ErrSingularMatrix
	}

	right, up, back := world.Column(0), world.Column(1), world.Column(2)
	for i, axis := range [3]common.Vec3{right, up, back} {
		if common.Abs(axis.Length()-1) > rigidTolerance {
			return common.Mat4{}, fmt.Errorf("%w: axis %d has length %g", ErrNotRigid, i, axis.Length())
		}
	}
	if common.Abs(right.Dot(up)) > rigidTolerance || common.Abs(right.Dot(back)) > rigidTolerance ||
		common.Abs(up.Dot(back)) > rigidTolerance {
		return common.Mat4{}, fmt.Errorf("%w: axes are not perpendicular", ErrNotRigid)
	}
	if det := right.Cross(up).Dot(back); common.Abs(det-1) > rigidTolerance {
		return common.Mat4{}, fmt.Errorf("%w: determinant %g", ErrNotRigid, det)
	}
	return world, nil
}

// wrapAngle maps an angle to [-π, π] so accumulated azimuth/yaw stays well conditioned.
func wrapAngle(a float32) float32 {
	return float32(math.Remainder(float64(a), 2*math.Pi))
}

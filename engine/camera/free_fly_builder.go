package camera

import "github.com/Carmen-Shannon/oxy-lumen/common"

// FreeFlyBuilderOption is a functional option for configuring a FreeFly camera.
type FreeFlyBuilderOption func(*freeFlyCameraImpl)

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - position: camera position
//
// Returns:
//   - FreeFlyBuilderOption: functional option to set the position
func WithPosition(position common.Vec3) FreeFlyBuilderOption {
	return func(f *freeFlyCameraImpl) {
		f.position = position
	}
}

// WithLookAt places the camera at eye facing center. An eye equal to center keeps the default orientation.
//
// Parameters:
//   - eye: camera position
//   - center: point to face
//
// Returns:
//   - FreeFlyBuilderOption: functional option to set position and orientation
func WithLookAt(eye, center common.Vec3) FreeFlyBuilderOption {
	return func(f *freeFlyCameraImpl) {
		f.position = eye
		back := eye.Sub(center)
		if back.Length() == 0 {
			return
		}
		back = back.Normalize()
		f.yaw = common.Atan2(back[0], back[2])
		f.pitch = common.Asin(-back[1])
	}
}

// WithMovementSpeed sets the distance travelled per second while a movement flag is held.
//
// Parameters:
//   - speed: world units per second
//
// Returns:
//   - FreeFlyBuilderOption: functional option to set movement speed
func WithMovementSpeed(speed float32) FreeFlyBuilderOption {
	return func(f *freeFlyCameraImpl) {
		f.movementSpeed = speed
	}
}

// WithLookSensitivity sets the radians of yaw/pitch per pixel of pointer movement.
//
// Parameters:
//   - sensitivity: multiplier for pointer movement
//
// Returns:
//   - FreeFlyBuilderOption: functional option to set the look sensitivity
func WithLookSensitivity(sensitivity float32) FreeFlyBuilderOption {
	return func(f *freeFlyCameraImpl) {
		f.rotationSensitivity = sensitivity
	}
}

// WithMaxPitch sets the largest allowed |pitch|. Values at or beyond π/2 are ignored.
//
// Parameters:
//   - max: pitch limit in radians
//
// Returns:
//   - FreeFlyBuilderOption: functional option to set the pitch limit
func WithMaxPitch(max float32) FreeFlyBuilderOption {
	return func(f *freeFlyCameraImpl) {
		if max > 0 && max < halfPi {
			f.maxPitch = max
		}
	}
}

package camera

import "github.com/Carmen-Shannon/oxy-lumen/common"

// OrbitBuilderOption is a functional option for configuring an Orbit camera.
type OrbitBuilderOption func(*orbitCameraImpl)

// WithTarget sets the look-at/pivot point.
//
// Parameters:
//   - target: world-space pivot
//
// Returns:
//   - OrbitBuilderOption: functional option to set the target position
func WithTarget(target common.Vec3) OrbitBuilderOption {
	return func(o *orbitCameraImpl) {
		o.target = target
	}
}

// WithDistance sets the initial distance from the target.
//
// Parameters:
//   - distance: distance from the orbit target
//
// Returns:
//   - OrbitBuilderOption: functional option to set the distance
func WithDistance(distance float32) OrbitBuilderOption {
	return func(o *orbitCameraImpl) {
		o.distance = distance
	}
}

// WithAngles sets the initial azimuth and elevation in radians.
//
// Parameters:
//   - azimuth: horizontal angle (0 = +Z axis)
//   - elevation: vertical angle (0 = horizontal)
//
// Returns:
//   - OrbitBuilderOption: functional option to set the angles
func WithAngles(azimuth, elevation float32) OrbitBuilderOption {
	return func(o *orbitCameraImpl) {
		o.azimuth = azimuth
		o.elevation = elevation
	}
}

// WithOrbitEye places the camera at eye, deriving distance and angles relative to the
// target configured so far. Apply it after WithTarget. An eye equal to the target is ignored.
//
// Parameters:
//   - eye: world-space camera position
//
// Returns:
//   - OrbitBuilderOption: functional option to set the camera position
func WithOrbitEye(eye common.Vec3) OrbitBuilderOption {
	return func(o *orbitCameraImpl) {
		offset := eye.Sub(o.target)
		d := offset.Length()
		if d == 0 {
			return
		}
		o.distance = d
		o.azimuth = common.Atan2(offset[0], offset[2])
		o.elevation = common.Asin(offset[1] / d)
	}
}

// WithDistanceBounds sets the minimum and maximum distance from the target.
// A non-positive minimum is ignored so the camera can never pass through the target.
//
// Parameters:
//   - min: minimum zoom distance (must be > 0)
//   - max: maximum zoom distance
//
// Returns:
//   - OrbitBuilderOption: functional option to set distance bounds
func WithDistanceBounds(min, max float32) OrbitBuilderOption {
	return func(o *orbitCameraImpl) {
		if min > 0 {
			o.minDistance = min
		}
		if max >= o.minDistance {
			o.maxDistance = max
		}
	}
}

// WithMaxElevation sets the largest allowed |elevation|. Values at or beyond π/2 are ignored.
//
// Parameters:
//   - max: elevation limit in radians
//
// Returns:
//   - OrbitBuilderOption: functional option to set the elevation limit
func WithMaxElevation(max float32) OrbitBuilderOption {
	return func(o *orbitCameraImpl) {
		if max > 0 && max < halfPi {
			o.maxElevation = max
		}
	}
}

// WithOrbitSensitivity sets the radians of rotation per pixel of drag.
//
// Parameters:
//   - sensitivity: multiplier for pointer movement
//
// Returns:
//   - OrbitBuilderOption: functional option to set the rotation sensitivity
func WithOrbitSensitivity(sensitivity float32) OrbitBuilderOption {
	return func(o *orbitCameraImpl) {
		o.rotationSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the fraction of the current distance changed per unit of zoom input.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - OrbitBuilderOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) OrbitBuilderOption {
	return func(o *orbitCameraImpl) {
		o.zoomSpeed = speed
	}
}

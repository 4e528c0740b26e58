package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-lumen/common"
	"github.com/Carmen-Shannon/oxy-lumen/engine/input"
)

// Orbit is the orbit variant of Camera. It faces its target from a spherical offset
// (distance, azimuth, elevation) and ignores the digital movement flags.
type Orbit interface {
	Camera

	// Target returns the look-at/pivot point.
	Target() common.Vec3

	// SetTarget moves the pivot point, keeping distance and angles.
	SetTarget(target common.Vec3)

	// Distance returns the current distance from the target.
	Distance() float32

	// SetDistance sets the distance from the target, clamped to the configured bounds.
	SetDistance(distance float32)

	// Azimuth returns the horizontal angle around the Y axis in radians (0 = +Z).
	Azimuth() float32

	// Elevation returns the vertical angle above the horizontal plane in radians.
	Elevation() float32

	// SetAngles sets azimuth and elevation. Elevation is clamped short of the poles.
	SetAngles(azimuth, elevation float32)
}

// orbitCameraImpl is the single implementation of Orbit.
type orbitCameraImpl struct {
	mu *sync.Mutex

	target common.Vec3

	// Spherical coordinates (offset from target)
	distance  float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	minDistance  float32
	maxDistance  float32
	maxElevation float32

	rotationSensitivity float32
	zoomSpeed           float32
}

var _ Orbit = &orbitCameraImpl{}

// NewOrbit creates an orbit camera with sensible defaults.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Orbit: the newly created camera
func NewOrbit(options ...OrbitBuilderOption) Orbit {
	o := &orbitCameraImpl{
		mu:       &sync.Mutex{},
		distance: 5,

		minDistance:  0.5,
		maxDistance:  500,
		maxElevation: float32(math.Pi/2 - 0.01),

		rotationSensitivity: 0.005,
		zoomSpeed:           0.1,
	}
	for _, opt := range options {
		opt(o)
	}
	o.distance = o.clampDistance(o.distance)
	o.elevation = common.Clamp(o.elevation, -o.maxElevation, o.maxElevation)
	return o
}

func (o *orbitCameraImpl) Kind() Kind {
	return KindOrbit
}

func (o *orbitCameraImpl) Update(deltaTime float32, snap input.Snapshot) common.Mat4 {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.azimuth = wrapAngle(o.azimuth + snap.Analog.X*o.rotationSensitivity)
	o.elevation = common.Clamp(o.elevation+snap.Analog.Y*o.rotationSensitivity, -o.maxElevation, o.maxElevation)

	if snap.Analog.Zoom != 0 {
		factor := 1 + snap.Analog.Zoom*o.zoomSpeed
		if factor <= 0 {
			o.distance = o.minDistance
		} else {
			o.distance = o.clampDistance(o.distance * factor)
		}
	}
	return o.view()
}

func (o *orbitCameraImpl) View() common.Mat4 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.view()
}

func (o *orbitCameraImpl) Position() common.Vec3 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.position()
}

func (o *orbitCameraImpl) SetView(view common.Mat4) error {
	world, err := worldPose(view)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	eye := world.Translation()
	back := world.Column(2)

	// Keep the current pivot distance and slide the target along the new view ray.
	o.distance = o.clampDistance(eye.Sub(o.target).Length())
	o.target = eye.Sub(back.Scale(o.distance))
	o.azimuth = common.Atan2(back[0], back[2])
	o.elevation = common.Clamp(common.Asin(back[1]), -o.maxElevation, o.maxElevation)
	return nil
}

func (o *orbitCameraImpl) Target() common.Vec3 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.target
}

func (o *orbitCameraImpl) SetTarget(target common.Vec3) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.target = target
}

func (o *orbitCameraImpl) Distance() float32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.distance
}

func (o *orbitCameraImpl) SetDistance(distance float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.distance = o.clampDistance(distance)
}

func (o *orbitCameraImpl) Azimuth() float32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.azimuth
}

func (o *orbitCameraImpl) Elevation() float32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.elevation
}

func (o *orbitCameraImpl) SetAngles(azimuth, elevation float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.azimuth = wrapAngle(azimuth)
	o.elevation = common.Clamp(elevation, -o.maxElevation, o.maxElevation)
}

// --- internal helpers ---

// position computes the eye from the target and spherical coordinates.
// Caller must hold the mutex.
func (o *orbitCameraImpl) position() common.Vec3 {
	cosElev := common.Cos(o.elevation)
	offset := common.Vec3{
		cosElev * common.Sin(o.azimuth),
		common.Sin(o.elevation),
		cosElev * common.Cos(o.azimuth),
	}
	return o.target.Add(offset.Scale(o.distance))
}

// view builds the look-at matrix toward the target. Caller must hold the mutex.
func (o *orbitCameraImpl) view() common.Mat4 {
	return common.LookAt(o.position(), o.target, worldUp)
}

func (o *orbitCameraImpl) clampDistance(d float32) float32 {
	return common.Clamp(d, o.minDistance, o.maxDistance)
}

package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-lumen/common"
	"github.com/Carmen-Shannon/oxy-lumen/engine/input"
)

// FreeFly is the free-fly variant of Camera. Its orientation comes from yaw and pitch
// accumulated from pointer motion; the digital flags move it along its own axes.
type FreeFly interface {
	Camera

	// SetPosition moves the camera without changing its orientation.
	SetPosition(position common.Vec3)

	// Yaw returns the rotation around the world Y axis in radians.
	Yaw() float32

	// Pitch returns the rotation around the camera's right axis in radians.
	Pitch() float32

	// SetAngles sets yaw and pitch. Pitch is clamped short of ±90°.
	SetAngles(yaw, pitch float32)
}

// freeFlyCameraImpl is the single implementation of FreeFly.
type freeFlyCameraImpl struct {
	mu *sync.Mutex

	position common.Vec3
	yaw      float32
	pitch    float32

	maxPitch            float32
	movementSpeed       float32 // world units per second
	rotationSensitivity float32 // radians per pixel
}

var _ FreeFly = &freeFlyCameraImpl{}

// NewFreeFly creates a free-fly camera with sensible defaults.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - FreeFly: the newly created camera
func NewFreeFly(options ...FreeFlyBuilderOption) FreeFly {
	f := &freeFlyCameraImpl{
		mu:       &sync.Mutex{},
		position: common.Vec3{0, 0, 5},

		maxPitch:            float32(math.Pi/2 - 0.01),
		movementSpeed:       10,
		rotationSensitivity: 0.005,
	}
	for _, opt := range options {
		opt(f)
	}
	f.pitch = common.Clamp(f.pitch, -f.maxPitch, f.maxPitch)
	return f
}

func (f *freeFlyCameraImpl) Kind() Kind {
	return KindFreeFly
}

func (f *freeFlyCameraImpl) Update(deltaTime float32, snap input.Snapshot) common.Mat4 {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.yaw = wrapAngle(f.yaw - snap.Analog.X*f.rotationSensitivity)
	f.pitch = common.Clamp(f.pitch-snap.Analog.Y*f.rotationSensitivity, -f.maxPitch, f.maxPitch)

	right, up, back := f.basis()
	d := snap.Digital
	move := right.Scale(d.Axis(input.FlagRight, input.FlagLeft)).
		Add(up.Scale(d.Axis(input.FlagUp, input.FlagDown))).
		Add(back.Scale(d.Axis(input.FlagBackward, input.FlagForward)))
	if move.Length() > 0 {
		f.position = f.position.Add(move.Normalize().Scale(f.movementSpeed * deltaTime))
	}

	return common.ViewFromBasis(right, up, back, f.position)
}

func (f *freeFlyCameraImpl) View() common.Mat4 {
	f.mu.Lock()
	defer f.mu.Unlock()
	right, up, back := f.basis()
	return common.ViewFromBasis(right, up, back, f.position)
}

func (f *freeFlyCameraImpl) Position() common.Vec3 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position
}

func (f *freeFlyCameraImpl) SetView(view common.Mat4) error {
	world, err := worldPose(view)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	right := world.Column(0)
	back := world.Column(2)
	f.position = world.Translation()
	f.yaw = common.Atan2(-right[2], right[0])
	f.pitch = common.Clamp(common.Asin(-back[1]), -f.maxPitch, f.maxPitch)
	return nil
}

func (f *freeFlyCameraImpl) SetPosition(position common.Vec3) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.position = position
}

func (f *freeFlyCameraImpl) Yaw() float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.yaw
}

func (f *freeFlyCameraImpl) Pitch() float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pitch
}

func (f *freeFlyCameraImpl) SetAngles(yaw, pitch float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.yaw = wrapAngle(yaw)
	f.pitch = common.Clamp(pitch, -f.maxPitch, f.maxPitch)
}

// --- internal helpers ---

// basis returns the camera's right, up and back axes for the pose Ry(yaw) * Rx(pitch).
// Caller must hold the mutex.
func (f *freeFlyCameraImpl) basis() (right, up, back common.Vec3) {
	sy, cy := common.Sin(f.yaw), common.Cos(f.yaw)
	sp, cp := common.Sin(f.pitch), common.Cos(f.pitch)

	right = common.Vec3{cy, 0, -sy}
	back = common.Vec3{sy * cp, -sp, cy * cp}
	up = back.Cross(right)
	return right, up, back
}

package camera

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-lumen/common"
	"github.com/Carmen-Shannon/oxy-lumen/engine/input"
)

// Rig owns one camera per Kind and tracks which one is active.
// Switching hands the outgoing view matrix to the incoming camera so the picture does not jump.
type Rig struct {
	mu      *sync.Mutex
	cameras map[Kind]Camera
	active  Kind
}

// NewRig creates a rig from an orbit and a free-fly camera.
//
// Parameters:
//   - orbit: camera reporting KindOrbit
//   - freeFly: camera reporting KindFreeFly
//   - active: the kind rendered first
//
// Returns:
//   - *Rig: the rig
//   - error: error if a camera is nil, reports the wrong kind, or active is unknown
func NewRig(orbit, freeFly Camera, active Kind) (*Rig, error) {
	if orbit == nil || freeFly == nil {
		return nil, fmt.Errorf("camera rig requires both cameras")
	}
	if orbit.Kind() != KindOrbit || freeFly.Kind() != KindFreeFly {
		return nil, fmt.Errorf("camera rig kinds mismatched: got %s and %s", orbit.Kind(), freeFly.Kind())
	}
	if active != KindOrbit && active != KindFreeFly {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, active)
	}
	return &Rig{
		mu: &sync.Mutex{},
		cameras: map[Kind]Camera{
			KindOrbit:   orbit,
			KindFreeFly: freeFly,
		},
		active: active,
	}, nil
}

// Active returns the camera currently used for rendering.
func (r *Rig) Active() Camera {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cameras[r.active]
}

// ActiveKind returns the kind of the active camera.
func (r *Rig) ActiveKind() Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Camera returns the camera registered for kind, or nil for an unknown kind.
func (r *Rig) Camera(kind Kind) Camera {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cameras[kind]
}

// Switch makes kind the active camera after copying the outgoing view into it.
// Switching to the already active kind does nothing. On a decomposition error the
// rig stays on the previous camera.
//
// Parameters:
//   - kind: the camera to activate
//
// Returns:
//   - error: ErrUnknownKind, or the incoming camera's SetView error
func (r *Rig) Switch(kind Kind) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if kind == r.active {
		return nil
	}
	incoming, ok := r.cameras[kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	view := r.cameras[r.active].View()
	if err := incoming.SetView(view); err != nil {
		return fmt.Errorf("failed to switch camera from %s to %s: %w", r.active, kind, err)
	}
	r.active = kind
	return nil
}

// Update forwards one frame of input to the active camera.
//
// Parameters:
//   - deltaTime: seconds since the previous frame
//   - snap: the sampled input
//
// Returns:
//   - common.Mat4: the active camera's view matrix
func (r *Rig) Update(deltaTime float32, snap input.Snapshot) common.Mat4 {
	return r.Active().Update(deltaTime, snap)
}

// Position returns the active camera's world-space position.
func (r *Rig) Position() common.Vec3 {
	return r.Active().Position()
}

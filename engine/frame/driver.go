package frame

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-lumen/common"
	"github.com/Carmen-Shannon/oxy-lumen/engine/camera"
	"github.com/Carmen-Shannon/oxy-lumen/engine/input"
	"github.com/Carmen-Shannon/oxy-lumen/engine/layout"
)

var (
	ErrNotControl = errors.New("field is not a scalar control")

	// ErrDriverOwned is returned by SetControl for a field the driver writes itself.
	ErrDriverOwned = errors.New("field is written by the frame driver")
)

// ownedField is a uniform the driver writes itself, with the component counts it can fill.
type ownedField struct {
	name       string
	components []int
}

// ownedFields must be declared by the uniform layout with one of the listed component counts.
var ownedFields = []ownedField{
	{layout.FieldViewMatrix, []int{16}},
	{layout.FieldProjectionMatrix, []int{16}},
	{layout.FieldModelMatrix, []int{16}},
	{layout.FieldCameraPosition, []int{3, 4}},
	{layout.FieldCanvasSize, []int{2}},
	{layout.FieldTime, []int{1}},
}

func isOwned(name string) bool {
	return slices.ContainsFunc(ownedFields, func(f ownedField) bool { return f.name == name })
}

// driverImpl is the implementation of the Driver interface.
type driverImpl struct {
	mu *sync.Mutex

	agg    input.Aggregator
	rig    *camera.Rig
	writer *layout.UniformWriter

	fovY, near, far float32
	model           common.Mat4
	initialControls map[string]float32

	controls map[string]float32
	elapsed  float32
}

// Driver runs the per-frame control flow: sample input, update the active camera, and push the
// resulting uniforms. It also owns the uniform writes that happen outside the tick (resize and
// named controls).
type Driver interface {
	// Tick advances one frame. It samples the aggregator, updates the rig, and writes the view
	// matrix, camera position and elapsed time.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous tick
	Tick(deltaTime float32)

	// SetControl writes a named scalar uniform. Fields the driver writes itself (uTime and the
	// matrices) are not controls.
	//
	// Parameters:
	//   - name: the uniform field name
	//   - value: the new value
	//
	// Returns:
	//   - error: ErrDriverOwned, layout.ErrUnknownField or ErrNotControl
	SetControl(name string, value float32) error

	// Controls returns the last value written to each control.
	//
	// Returns:
	//   - map[string]float32: control values keyed by field name
	Controls() map[string]float32

	// SwitchCamera activates another camera variant without a visual jump.
	//
	// Parameters:
	//   - kind: the camera to activate
	//
	// Returns:
	//   - error: the rig's switch error; the previous camera stays active
	SwitchCamera(kind camera.Kind) error

	// Camera returns the kind of the active camera.
	Camera() camera.Kind

	// Resize writes the projection matrix for the new aspect ratio and the canvas size.
	// A zero height keeps the previous projection.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	Resize(width, height int)

	// Elapsed returns the accumulated tick time in seconds.
	Elapsed() float32
}

var _ Driver = &driverImpl{}

// NewDriver creates a Driver and writes the initial model matrix and controls.
//
// Parameters:
//   - agg: the input aggregator sampled each tick
//   - rig: the camera rig
//   - writer: the uniform writer for the frame's uniform buffer
//   - options: DriverBuilderOption functions to configure the driver
//
// Returns:
//   - Driver: the driver
//   - error: error if a dependency is missing, a driver field is undeclared or has the wrong
//     component count, or a control is invalid
func NewDriver(agg input.Aggregator, rig *camera.Rig, writer *layout.UniformWriter, options ...DriverBuilderOption) (Driver, error) {
	if agg == nil || rig == nil || writer == nil {
		return nil, fmt.Errorf("frame driver requires an aggregator, a camera rig and a uniform writer")
	}

	d := &driverImpl{
		mu:       &sync.Mutex{},
		agg:      agg,
		rig:      rig,
		writer:   writer,
		fovY:     2 * math.Pi / 5,
		near:     1,
		far:      100,
		model:    common.Identity(),
		controls: make(map[string]float32),
	}
	for _, option := range options {
		option(d)
	}

	ul := writer.Layout()
	for _, of := range ownedFields {
		f, err := ul.Field(of.name)
		if err != nil {
			return nil, fmt.Errorf("frame driver: %w", err)
		}
		if !slices.Contains(of.components, f.Components) {
			return nil, fmt.Errorf("frame driver: %w: %s has %d components, want %v",
				layout.ErrComponentMismatch, of.name, f.Components, of.components)
		}
	}

	if err := d.writer.WriteMat4(layout.FieldModelMatrix, d.model); err != nil {
		return nil, err
	}
	for name, v := range d.initialControls {
		if err := d.SetControl(name, v); err != nil {
			return nil, fmt.Errorf("failed to apply control %s: %w", name, err)
		}
	}
	return d, nil
}

func (d *driverImpl) Tick(deltaTime float32) {
	snap := d.agg.Sample()
	view := d.rig.Update(deltaTime, snap)
	pos := d.rig.Position()

	d.mu.Lock()
	d.elapsed += deltaTime
	elapsed := d.elapsed
	d.mu.Unlock()

	logWrite(layout.FieldViewMatrix, d.writer.WriteMat4(layout.FieldViewMatrix, view))
	logWrite(layout.FieldCameraPosition, d.writer.WriteVec3(layout.FieldCameraPosition, pos, 1))
	logWrite(layout.FieldTime, d.writer.Write(layout.FieldTime, elapsed))
}

func (d *driverImpl) SetControl(name string, value float32) error {
	if isOwned(name) {
		return fmt.Errorf("%w: %s", ErrDriverOwned, name)
	}
	f, err := d.writer.Layout().Field(name)
	if err != nil {
		return err
	}
	if f.Components != 1 {
		return fmt.Errorf("%w: %s has %d components", ErrNotControl, name, f.Components)
	}
	if err := d.writer.Write(name, value); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.controls[name] = value
	return nil
}

func (d *driverImpl) Controls() map[string]float32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return maps.Clone(d.controls)
}

func (d *driverImpl) SwitchCamera(kind camera.Kind) error {
	from := d.rig.ActiveKind()
	if err := d.rig.Switch(kind); err != nil {
		return err
	}
	if from != kind {
		common.Logger().Info("camera switched", "from", from, "to", kind)
	}
	return nil
}

func (d *driverImpl) Camera() camera.Kind {
	return d.rig.ActiveKind()
}

func (d *driverImpl) Resize(width, height int) {
	if height > 0 {
		proj := common.Perspective(d.fovY, float32(width)/float32(height), d.near, d.far)
		logWrite(layout.FieldProjectionMatrix, d.writer.WriteMat4(layout.FieldProjectionMatrix, proj))
	}
	logWrite(layout.FieldCanvasSize, d.writer.Write(layout.FieldCanvasSize, float32(width), float32(height)))
}

// logWrite reports a failed per-frame uniform write. NewDriver validates every owned field,
// so this only fires if the writer's layout and the driver disagree.
func logWrite(field string, err error) {
	if err != nil {
		common.Logger().Error("uniform write failed", "field", field, "err", err)
	}
}

func (d *driverImpl) Elapsed() float32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.elapsed
}

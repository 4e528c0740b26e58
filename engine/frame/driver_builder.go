package frame

import (
	"maps"

	"github.com/Carmen-Shannon/oxy-lumen/common"
)

// DriverBuilderOption is a functional option for configuring a Driver via NewDriver.
type DriverBuilderOption func(*driverImpl)

// WithProjection sets the perspective parameters used on Resize.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - near: near clip distance
//   - far: far clip distance
//
// Returns:
//   - DriverBuilderOption: a function that applies the projection option to a driver
func WithProjection(fovY, near, far float32) DriverBuilderOption {
	return func(d *driverImpl) {
		d.fovY = fovY
		d.near = near
		d.far = far
	}
}

// WithControls sets the control values written when the driver is created.
//
// Parameters:
//   - controls: values keyed by uniform field name
//
// Returns:
//   - DriverBuilderOption: a function that applies the controls option to a driver
func WithControls(controls map[string]float32) DriverBuilderOption {
	return func(d *driverImpl) {
		d.initialControls = maps.Clone(controls)
	}
}

// WithModelMatrix sets the model matrix written once at creation.
func WithModelMatrix(m common.Mat4) DriverBuilderOption {
	return func(d *driverImpl) {
		d.model = m
	}
}

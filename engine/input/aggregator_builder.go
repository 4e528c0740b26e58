package input

import (
	"maps"

	"github.com/Carmen-Shannon/oxy-lumen/common"
)

// AggregatorBuilderOption is a functional option for configuring an Aggregator.
type AggregatorBuilderOption func(*aggregatorImpl)

// WithBindings replaces the default key bindings. Several keys may map to the same flag.
//
// Parameters:
//   - bindings: key code to flag mapping (copied)
//
// Returns:
//   - AggregatorBuilderOption: option function to apply
func WithBindings(bindings map[common.KeyCode]Flag) AggregatorBuilderOption {
	return func(a *aggregatorImpl) {
		a.bindings = maps.Clone(bindings)
		if a.bindings == nil {
			a.bindings = make(map[common.KeyCode]Flag)
		}
	}
}

// WithPinchSensitivity sets the zoom delta per pixel of pinch distance change (default -0.05).
//
// Parameters:
//   - sensitivity: multiplier applied to the change in finger distance
//
// Returns:
//   - AggregatorBuilderOption: option function to apply
func WithPinchSensitivity(sensitivity float32) AggregatorBuilderOption {
	return func(a *aggregatorImpl) {
		a.pinchSensitivity = sensitivity
	}
}

// WithWheelStep sets the zoom increment contributed by each wheel event (default 1).
//
// Parameters:
//   - step: unit added per wheel event, signed by scroll direction
//
// Returns:
//   - AggregatorBuilderOption: option function to apply
func WithWheelStep(step float32) AggregatorBuilderOption {
	return func(a *aggregatorImpl) {
		a.wheelStep = step
	}
}

package engine

import (
	"github.com/Carmen-Shannon/oxy-lumen/engine/renderer"
	"github.com/Carmen-Shannon/oxy-lumen/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets the window whose input events drive the engine and whose message loop Run blocks on.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer and the single draw issued each frame.
// Without a renderer the engine still ticks the driver but draws nothing.
//
// Parameters:
//   - r: the renderer
//   - pipelineKey: key of a registered pipeline
//   - meshKey: key of an uploaded mesh
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer, pipelineKey, meshKey string) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
		e.pipelineKey = pipelineKey
		e.meshKey = meshKey
	}
}

// WithConfigSource sets a source of reloaded configurations, applied at the start of each frame.
//
// Parameters:
//   - src: the config source, typically a *config.Watcher
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfigSource(src ConfigSource) EngineBuilderOption {
	return func(e *engine) {
		e.configs = src
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.SetRenderFrameLimit(fps)
	}
}

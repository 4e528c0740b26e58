package engine

import (
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-lumen/common"
	"github.com/Carmen-Shannon/oxy-lumen/engine/camera"
	"github.com/Carmen-Shannon/oxy-lumen/engine/config"
	"github.com/Carmen-Shannon/oxy-lumen/engine/frame"
	"github.com/Carmen-Shannon/oxy-lumen/engine/input"
	"github.com/Carmen-Shannon/oxy-lumen/engine/profiler"
	"github.com/Carmen-Shannon/oxy-lumen/engine/renderer"
	"github.com/Carmen-Shannon/oxy-lumen/engine/window"
)

var (
	// ErrNoWindow is returned by Run when the engine was built without a window.
	ErrNoWindow = errors.New("engine has no window")
)

// ConfigSource delivers reloaded configurations and reload errors. config.Watcher implements it.
type ConfigSource interface {
	Changes() <-chan config.Config
	Errors() <-chan error
}

// engine implements the Engine interface.
// Everything runs on the window thread: input callbacks fire inside ProcessMessages,
// then the update callback runs one frame.
type engine struct {
	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   window.Window
	renderer renderer.Renderer

	// pipelineKey and meshKey select the draw issued each frame
	pipelineKey string
	meshKey     string

	agg     input.Aggregator
	driver  frame.Driver
	configs ConfigSource

	pointer pointerTracker
	tabHeld bool

	// configCamera is the camera mode last requested by a config, so reloads only switch on a change
	configCamera camera.Kind

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastTick         time.Time
	now              func() time.Time
}

// Engine runs the interactive loop: window events feed the input aggregator, each frame
// ticks the frame driver and draws through the renderer.
type Engine interface {
	// Window returns the underlying window, or nil for a headless engine.
	Window() window.Window

	// Driver returns the frame driver ticked each frame.
	Driver() frame.Driver

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// ApplyConfig applies the runtime-adjustable parts of a configuration: log level, input tuning,
	// changed control values, camera mode and profiling. Rejected values are logged and skipped.
	//
	// Parameters:
	//   - cfg: the configuration to apply
	ApplyConfig(cfg config.Config)

	// Run starts the main loop and blocks until the window closes or Quit is called.
	//
	// Returns:
	//   - error: ErrNoWindow if the engine has no window
	Run() error

	// Quit stops the loop after the current frame. Safe to call multiple times.
	Quit()
}

// NewEngine creates an Engine around an aggregator and a frame driver.
// When a window is given its input callbacks are bound and the driver receives the initial size.
//
// Parameters:
//   - agg: the input aggregator fed by window events
//   - driver: the frame driver ticked each frame
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: error if agg or driver is nil
func NewEngine(agg input.Aggregator, driver frame.Driver, options ...EngineBuilderOption) (Engine, error) {
	if agg == nil || driver == nil {
		return nil, errors.New("engine requires an input aggregator and a frame driver")
	}

	e := &engine{
		quitChannel:      make(chan struct{}),
		agg:              agg,
		driver:           driver,
		configCamera:     driver.Camera(),
		profiler:         profiler.NewProfiler(time.Second),
		profilingEnabled: false,
		now:              time.Now,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.bindInput(e.window)
		e.window.SetResizeCallback(e.resize)
		e.driver.Resize(e.window.Width(), e.window.Height())
	}

	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Driver() frame.Driver {
	return e.driver
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}
	e.lastTick = e.now()
	e.window.SetUpdateCallback(e.frame)
	e.window.ProcessMessages()
	e.signalQuit()
	return nil
}

// Quit signals the loop to stop. Safe to call multiple times due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// frame runs one loop iteration: tick, draw, profile, then sleep off any frame limit.
func (e *engine) frame() {
	select {
	case <-e.quitChannel:
		e.window.RequestClose()
		return
	default:
	}

	start := e.now()
	dt := float32(start.Sub(e.lastTick).Seconds())
	e.lastTick = start

	e.tick(dt)
	e.render()

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// tick applies pending config reloads, then advances the driver.
func (e *engine) tick(dt float32) {
	e.drainConfigs()
	e.driver.Tick(dt)
}

func (e *engine) drainConfigs() {
	if e.configs == nil {
		return
	}
	for {
		select {
		case cfg := <-e.configs.Changes():
			e.ApplyConfig(cfg)
		case err := <-e.configs.Errors():
			common.Logger().Error("config reload failed, keeping previous config", "err", err)
		default:
			return
		}
	}
}

func (e *engine) render() {
	if e.renderer == nil {
		return
	}
	if err := e.renderer.BeginFrame(); err != nil {
		common.Logger().Debug("frame skipped", "err", err)
		return
	}
	if err := e.renderer.DrawCall(e.pipelineKey, e.meshKey); err != nil {
		common.Logger().Error("draw failed", "pipeline", e.pipelineKey, "mesh", e.meshKey, "err", err)
	}
	e.renderer.EndFrame()
	e.renderer.Present()
}

func (e *engine) resize(width, height int) {
	if e.renderer != nil {
		if err := e.renderer.Resize(width, height); err != nil {
			common.Logger().Error("surface resize failed", "width", width, "height", height, "err", err)
		}
	}
	e.driver.Resize(width, height)
}

func (e *engine) ApplyConfig(cfg config.Config) {
	if err := common.SetLogLevel(cfg.Log.Level); err != nil {
		common.Logger().Warn("invalid log level", "level", cfg.Log.Level, "err", err)
	}

	e.agg.SetPinchSensitivity(cfg.Input.PinchSensitivity)
	e.agg.SetWheelStep(cfg.Input.WheelStep)

	current := e.driver.Controls()
	for _, name := range slices.Sorted(maps.Keys(cfg.Controls)) {
		v := cfg.Controls[name]
		if old, ok := current[name]; ok && old == v {
			continue
		}
		if err := e.driver.SetControl(name, v); err != nil {
			common.Logger().Warn("control rejected", "control", name, "err", err)
			continue
		}
		common.Logger().Info("control updated", "control", name, "value", v)
	}

	kind, err := config.CameraKind(cfg.Camera.Mode)
	if err != nil {
		common.Logger().Warn("invalid camera mode", "mode", cfg.Camera.Mode, "err", err)
	} else if kind != e.configCamera {
		e.configCamera = kind
		e.switchCamera(kind)
	}

	e.profilingEnabled = cfg.Engine.Profiling
}

// switchCamera logs a failed switch; the driver stays on the previous camera.
func (e *engine) switchCamera(kind camera.Kind) {
	if err := e.driver.SwitchCamera(kind); err != nil {
		common.Logger().Error("camera switch failed", "to", kind, "err", err)
	}
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

package main

import (
	"flag"

	"github.com/Carmen-Shannon/oxy-lumen/common"
	"github.com/Carmen-Shannon/oxy-lumen/engine"
	"github.com/Carmen-Shannon/oxy-lumen/engine/camera"
	"github.com/Carmen-Shannon/oxy-lumen/engine/config"
	"github.com/Carmen-Shannon/oxy-lumen/engine/frame"
	"github.com/Carmen-Shannon/oxy-lumen/engine/input"
	"github.com/Carmen-Shannon/oxy-lumen/engine/layout"
	"github.com/Carmen-Shannon/oxy-lumen/engine/model"
	"github.com/Carmen-Shannon/oxy-lumen/engine/renderer"
	"github.com/Carmen-Shannon/oxy-lumen/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-lumen/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-lumen/engine/window"
)

const (
	uniformBuffer = pipeline.DefaultUniformBuffer
	beamPipeline  = "beam"
)

var beamColor = [4]float32{1.0, 0.85, 0.6, 1.0}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file, watched for changes")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	logger := common.Logger()

	// ── Config ──────────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", "path", *configPath, "err", err)
	}
	level := common.Coalesce(*logLevel, cfg.Log.Level)
	if err := common.SetLogLevel(level); err != nil {
		logger.Fatal("invalid log level", "level", level, "err", err)
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		logger.Fatal("invalid key bindings", "err", err)
	}
	mode, err := config.CameraKind(cfg.Camera.Mode)
	if err != nil {
		logger.Fatal("invalid camera mode", "err", err)
	}

	// ── Window ──────────────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		logger.Fatal("failed to create window", "err", err)
	}
	defer win.Close()

	// ── Mesh ────────────────────────────────────────────────────────────
	var loaderOpts []model.ProceduralBuilderOption
	if cfg.Mesh.Color {
		loaderOpts = append(loaderOpts, model.WithVertexColor(beamColor))
	}
	mesh, err := model.NewProceduralLoader(loaderOpts...).Load(cfg.Mesh.Name)
	if err != nil {
		logger.Fatal("failed to load mesh", "mesh", cfg.Mesh.Name, "err", err)
	}
	prepared, err := model.Prepare([]*model.Mesh{mesh}, cfg.Mesh.Workers)
	if err != nil {
		logger.Fatal("failed to prepare mesh", "mesh", cfg.Mesh.Name, "err", err)
	}
	beam := prepared[0]

	// ── Cameras ─────────────────────────────────────────────────────────
	eye := common.Vec3(cfg.Camera.Position)
	target := common.Vec3(cfg.Camera.Target)
	orbit := camera.NewOrbit(
		camera.WithTarget(target),
		camera.WithDistanceBounds(cfg.Camera.Orbit.MinDistance, cfg.Camera.Orbit.MaxDistance),
		camera.WithMaxElevation(cfg.Camera.Orbit.MaxElevation),
		camera.WithOrbitEye(eye),
		camera.WithOrbitSensitivity(cfg.Camera.Orbit.RotationSensitivity),
		camera.WithZoomSpeed(cfg.Camera.Orbit.ZoomSpeed),
	)
	freeFly := camera.NewFreeFly(
		camera.WithMaxPitch(cfg.Camera.FreeFly.MaxPitch),
		camera.WithLookAt(eye, target),
		camera.WithMovementSpeed(cfg.Camera.FreeFly.MovementSpeed),
		camera.WithLookSensitivity(cfg.Camera.FreeFly.RotationSensitivity),
	)
	rig, err := camera.NewRig(orbit, freeFly, mode)
	if err != nil {
		logger.Fatal("failed to create camera rig", "err", err)
	}

	// ── Renderer ────────────────────────────────────────────────────────
	ul, err := layout.PackUniforms(layout.DefaultUniformFields())
	if err != nil {
		logger.Fatal("failed to pack uniforms", "err", err)
	}
	rendererOpts, err := cfg.Renderer.Options()
	if err != nil {
		logger.Fatal("invalid renderer settings", "err", err)
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win, rendererOpts...)
	if err != nil {
		logger.Fatal("failed to create renderer", "err", err)
	}
	defer r.Release()

	if err := r.InitUniformBuffer(uniformBuffer, ul); err != nil {
		logger.Fatal("failed to init uniforms", "err", err)
	}
	if err := r.InitMesh(cfg.Mesh.Name, beam); err != nil {
		logger.Fatal("failed to upload mesh", "err", err)
	}

	sh, err := shader.NewBeamShader(beamPipeline, beam.Layout, ul)
	if err != nil {
		logger.Fatal("failed to generate shader", "err", err)
	}
	pipelineOpts, err := cfg.Pipeline.Options()
	if err != nil {
		logger.Fatal("invalid pipeline settings", "err", err)
	}
	pipelineOpts = append(pipelineOpts,
		pipeline.WithUniformBuffer(uniformBuffer),
		pipeline.WithBlendEnabled(true),
		pipeline.WithBlendState(pipeline.AdditiveBlendState()),
		pipeline.WithDepthWriteEnabled(false),
	)
	p := pipeline.NewPipeline(beamPipeline, sh, beam.Layout, pipelineOpts...)
	if err := r.RegisterPipelines(p); err != nil {
		logger.Fatal("failed to register pipeline", "err", err)
	}

	// ── Input + Driver ──────────────────────────────────────────────────
	agg := input.NewAggregator(
		input.WithBindings(bindings),
		input.WithPinchSensitivity(cfg.Input.PinchSensitivity),
		input.WithWheelStep(cfg.Input.WheelStep),
	)
	driver, err := frame.NewDriver(agg, rig, layout.NewUniformWriter(r, uniformBuffer, ul),
		frame.WithProjection(cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far),
		frame.WithControls(cfg.Controls),
	)
	if err != nil {
		logger.Fatal("failed to create frame driver", "err", err)
	}

	// ── Engine ──────────────────────────────────────────────────────────
	opts := []engine.EngineBuilderOption{
		engine.WithWindow(win),
		engine.WithRenderer(r, beamPipeline, cfg.Mesh.Name),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithRenderFrameLimit(cfg.Engine.FrameLimit),
	}
	if *configPath != "" {
		watcher, err := config.NewWatcher(*configPath)
		if err != nil {
			logger.Warn("config hot reload disabled", "path", *configPath, "err", err)
		} else {
			defer watcher.Close()
			opts = append(opts, engine.WithConfigSource(watcher))
		}
	}

	eng, err := engine.NewEngine(agg, driver, opts...)
	if err != nil {
		logger.Fatal("failed to create engine", "err", err)
	}

	logger.Info("lumen started", "mesh", cfg.Mesh.Name, "camera", mode, "config", *configPath)
	if err := eng.Run(); err != nil {
		logger.Error("engine stopped", "err", err)
	}
}

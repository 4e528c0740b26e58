package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-lumen/common"
	"github.com/Carmen-Shannon/oxy-lumen/engine/camera"
	"github.com/Carmen-Shannon/oxy-lumen/engine/input"
	"github.com/Carmen-Shannon/oxy-lumen/engine/layout"
	"github.com/Carmen-Shannon/oxy-lumen/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-lumen/engine/renderer/shader"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		t.Fatal(err)
	}
	want := input.DefaultBindings()
	if len(bindings) != len(want) {
		t.Fatalf("Bindings() has %d keys, want %d", len(bindings), len(want))
	}
	for code, flag := range want {
		if bindings[code] != flag {
			t.Errorf("Bindings()[%d] = %v, want %v", code, bindings[code], flag)
		}
	}
	if cfg.Controls[layout.FieldConeRadius] != 1 {
		t.Errorf("default %s = %v, want 1", layout.FieldConeRadius, cfg.Controls[layout.FieldConeRadius])
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Width != Default().Window.Width {
		t.Errorf("Load(\"\") width = %d", cfg.Window.Width)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
[window]
title = "beam"

[camera]
mode = "wasd"
far = 250

[camera.free_fly]
movement_speed = 4

[input]
wheel_step = 2

[input.bindings]
forward = ["Up", "W"]

[controls]
uConeRadius = 0.25
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Window.Title != "beam" || cfg.Window.Width != 1280 {
		t.Errorf("window = %+v", cfg.Window)
	}
	if kind, _ := CameraKind(cfg.Camera.Mode); kind != camera.KindFreeFly {
		t.Errorf("camera mode = %q", cfg.Camera.Mode)
	}
	if cfg.Camera.Far != 250 || cfg.Camera.Near != 1 {
		t.Errorf("near/far = %v/%v, want 1/250", cfg.Camera.Near, cfg.Camera.Far)
	}
	if cfg.Camera.FreeFly.MovementSpeed != 4 || cfg.Camera.FreeFly.RotationSensitivity != 0.005 {
		t.Errorf("free_fly = %+v", cfg.Camera.FreeFly)
	}
	if cfg.Input.WheelStep != 2 || cfg.Input.PinchSensitivity != -0.05 {
		t.Errorf("input = %+v", cfg.Input)
	}
	if cfg.Controls[layout.FieldConeRadius] != 0.25 || cfg.Controls[layout.FieldLightLength] != 1 {
		t.Errorf("controls = %v", cfg.Controls)
	}

	bindings, err := cfg.Bindings()
	if err != nil {
		t.Fatal(err)
	}
	if bindings[common.KeyUp] != input.FlagForward || bindings[common.KeyW] != input.FlagForward {
		t.Errorf("forward bindings = %v", bindings)
	}
	if bindings[common.KeyS] != input.FlagBackward {
		t.Errorf("default backward binding lost: %v", bindings)
	}
}

func TestParseRenderState(t *testing.T) {
	data := []byte(`
[engine]
frame_limit = 60

[renderer]
present_mode = "Uncapped"
msaa = 1
software = true

[pipeline]
cull = "back"
topology = "line-list"
front_face = "cw"
write_mask = ["red", "alpha"]
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Engine.FrameLimit != 60 {
		t.Errorf("frame_limit = %v, want 60", cfg.Engine.FrameLimit)
	}

	rendererOpts, err := cfg.Renderer.Options()
	if err != nil {
		t.Fatalf("Renderer.Options() error = %v", err)
	}
	if len(rendererOpts) != 3 {
		t.Errorf("Renderer.Options() = %d options, want 3", len(rendererOpts))
	}

	pipelineOpts, err := cfg.Pipeline.Options()
	if err != nil {
		t.Fatalf("Pipeline.Options() error = %v", err)
	}
	p := pipeline.NewPipeline("beam", shader.Shader{}, layout.VertexLayout{}, pipelineOpts...)
	if p.CullMode() != wgpu.CullModeBack {
		t.Errorf("CullMode() = %v, want back", p.CullMode())
	}
	if p.Topology() != wgpu.PrimitiveTopologyLineList {
		t.Errorf("Topology() = %v, want line-list", p.Topology())
	}
	if p.FrontFace() != wgpu.FrontFaceCW {
		t.Errorf("FrontFace() = %v, want cw", p.FrontFace())
	}
	if want := wgpu.ColorWriteMaskRed | wgpu.ColorWriteMaskAlpha; p.WriteMask() != want {
		t.Errorf("WriteMask() = %v, want %v", p.WriteMask(), want)
	}
}

func TestDefaultPipelineState(t *testing.T) {
	opts, err := Default().Pipeline.Options()
	if err != nil {
		t.Fatal(err)
	}
	p := pipeline.NewPipeline("beam", shader.Shader{}, layout.VertexLayout{}, opts...)
	if p.CullMode() != wgpu.CullModeNone || p.Topology() != wgpu.PrimitiveTopologyTriangleList ||
		p.FrontFace() != wgpu.FrontFaceCCW || p.WriteMask() != wgpu.ColorWriteMaskAll {
		t.Errorf("default state = %v/%v/%v/%v", p.CullMode(), p.Topology(), p.FrontFace(), p.WriteMask())
	}
}

func TestParseDoesNotLeakIntoDefaults(t *testing.T) {
	if _, err := Parse([]byte("[controls]\nuTime = 9\n")); err != nil {
		t.Fatal(err)
	}
	if _, ok := Default().Controls[layout.FieldTime]; ok {
		t.Error("Parse() mutated the default controls")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "zero width", doc: "[window]\nwidth = 0\n"},
		{name: "unknown mode", doc: "[camera]\nmode = \"chase\"\n"},
		{name: "near beyond far", doc: "[camera]\nnear = 10\nfar = 5\n"},
		{name: "negative min distance", doc: "[camera.orbit]\nmin_distance = -1\n"},
		{name: "min above max", doc: "[camera.orbit]\nmin_distance = 10\nmax_distance = 2\n"},
		{name: "unknown key", doc: "[input.bindings]\nforward = [\"Meta\"]\n"},
		{name: "unknown flag", doc: "[input.bindings]\njump = [\"J\"]\n"},
		{name: "key on two flags", doc: "[input.bindings]\nforward = [\"S\"]\n"},
		{name: "no workers", doc: "[mesh]\nworkers = 0\n"},
		{name: "negative frame limit", doc: "[engine]\nframe_limit = -1\n"},
		{name: "unknown present mode", doc: "[renderer]\npresent_mode = \"mailbox\"\n"},
		{name: "unsupported msaa", doc: "[renderer]\nmsaa = 8\n"},
		{name: "unknown cull", doc: "[pipeline]\ncull = \"both\"\n"},
		{name: "unknown topology", doc: "[pipeline]\ntopology = \"triangle-strip\"\n"},
		{name: "unknown front face", doc: "[pipeline]\nfront_face = \"left\"\n"},
		{name: "unknown channel", doc: "[pipeline]\nwrite_mask = [\"cyan\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Parse() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("[window\n"))
	if err == nil || errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Parse() error = %v, want a decode error", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumen.toml")
	if err := os.WriteFile(path, []byte("[mesh]\nname = \"cube\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mesh.Name != "cube" {
		t.Errorf("mesh name = %q, want cube", cfg.Mesh.Name)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load(missing) returned no error")
	}
}

func TestWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumen.toml")
	if err := os.WriteFile(path, []byte("[window]\ntitle = \"first\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[window]\ntitle = \"second\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	timeout := time.After(5 * time.Second)
	for done := false; !done; {
		select {
		case cfg := <-w.Changes():
			// a truncate can surface as its own event carrying the defaults
			done = cfg.Window.Title == "second"
		case <-timeout:
			t.Fatal("no reload observed")
		}
	}

	if err := os.WriteFile(path, []byte("[camera]\nmode = \"chase\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case err := <-w.Errors():
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("reload error = %v, want ErrInvalidConfig", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("invalid config not reported")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

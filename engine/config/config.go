package config

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"os"
	"sort"

	"github.com/Carmen-Shannon/oxy-lumen/common"
	"github.com/Carmen-Shannon/oxy-lumen/engine/camera"
	"github.com/Carmen-Shannon/oxy-lumen/engine/input"
	"github.com/Carmen-Shannon/oxy-lumen/engine/layout"
	"github.com/Carmen-Shannon/oxy-lumen/engine/renderer"
	"github.com/Carmen-Shannon/oxy-lumen/engine/renderer/pipeline"

	"github.com/pelletier/go-toml/v2"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the full application configuration as read from a TOML file.
type Config struct {
	Window   WindowConfig       `toml:"window"`
	Log      LogConfig          `toml:"log"`
	Engine   EngineConfig       `toml:"engine"`
	Renderer RendererConfig     `toml:"renderer"`
	Pipeline PipelineConfig     `toml:"pipeline"`
	Mesh     MeshConfig         `toml:"mesh"`
	Input    InputConfig        `toml:"input"`
	Camera   CameraConfig       `toml:"camera"`
	Controls map[string]float32 `toml:"controls"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type EngineConfig struct {
	Profiling bool `toml:"profiling"`

	// FrameLimit caps frames per second; 0 leaves the loop uncapped.
	FrameLimit float64 `toml:"frame_limit"`
}

// RendererConfig selects surface and adapter settings. Read once at startup.
type RendererConfig struct {
	PresentMode string `toml:"present_mode"`
	MSAA        int    `toml:"msaa"`
	Software    bool   `toml:"software"`
}

// PipelineConfig sets the beam pipeline's fixed-function state. Read once at startup.
type PipelineConfig struct {
	Cull      string   `toml:"cull"`
	Topology  string   `toml:"topology"`
	FrontFace string   `toml:"front_face"`
	WriteMask []string `toml:"write_mask"`
}

// Options converts the renderer settings into builder options.
//
// Returns:
//   - []renderer.RendererBuilderOption: present mode, MSAA and adapter options
//   - error: renderer.ErrUnknownOption for an unsupported value
func (c RendererConfig) Options() ([]renderer.RendererBuilderOption, error) {
	mode, err := renderer.ParsePresentMode(c.PresentMode)
	if err != nil {
		return nil, err
	}
	msaa, err := renderer.ParseMSAA(c.MSAA)
	if err != nil {
		return nil, err
	}
	return []renderer.RendererBuilderOption{
		renderer.WithPresentMode(mode),
		renderer.WithMSAA(msaa),
		renderer.WithForceSoftwareRenderer(c.Software),
	}, nil
}

// Options converts the pipeline settings into builder options.
//
// Returns:
//   - []pipeline.PipelineBuilderOption: cull, topology, front face and write mask options
//   - error: pipeline.ErrUnknownState for an unsupported value
func (c PipelineConfig) Options() ([]pipeline.PipelineBuilderOption, error) {
	cull, err := pipeline.ParseCullMode(c.Cull)
	if err != nil {
		return nil, err
	}
	topology, err := pipeline.ParseTopology(c.Topology)
	if err != nil {
		return nil, err
	}
	frontFace, err := pipeline.ParseFrontFace(c.FrontFace)
	if err != nil {
		return nil, err
	}
	mask, err := pipeline.ParseWriteMask(c.WriteMask)
	if err != nil {
		return nil, err
	}
	return []pipeline.PipelineBuilderOption{
		pipeline.WithCullMode(cull),
		pipeline.WithTopology(topology),
		pipeline.WithFrontFace(frontFace),
		pipeline.WithWriteMask(mask),
	}, nil
}

// MeshConfig selects the mesh to draw and how many workers prepare it.
type MeshConfig struct {
	Name    string `toml:"name"`
	Color   bool   `toml:"color"`
	Workers int    `toml:"workers"`
}

// InputConfig tunes the aggregator. Bindings maps a flag name to the keys that drive it.
type InputConfig struct {
	PinchSensitivity float32             `toml:"pinch_sensitivity"`
	WheelStep        float32             `toml:"wheel_step"`
	Bindings         map[string][]string `toml:"bindings"`
}

type CameraConfig struct {
	Mode     string        `toml:"mode"`
	Position [3]float32    `toml:"position"`
	Target   [3]float32    `toml:"target"`
	FOV      float32       `toml:"fov"`
	Near     float32       `toml:"near"`
	Far      float32       `toml:"far"`
	Orbit    OrbitConfig   `toml:"orbit"`
	FreeFly  FreeFlyConfig `toml:"free_fly"`
}

type OrbitConfig struct {
	RotationSensitivity float32 `toml:"rotation_sensitivity"`
	ZoomSpeed           float32 `toml:"zoom_speed"`
	MinDistance         float32 `toml:"min_distance"`
	MaxDistance         float32 `toml:"max_distance"`
	MaxElevation        float32 `toml:"max_elevation"`
}

type FreeFlyConfig struct {
	MovementSpeed       float32 `toml:"movement_speed"`
	RotationSensitivity float32 `toml:"rotation_sensitivity"`
	MaxPitch            float32 `toml:"max_pitch"`
}

// Default returns the configuration used when no file is given or a key is missing.
func Default() Config {
	return Config{
		Window: WindowConfig{Title: "lumen", Width: 1280, Height: 720},
		Log:    LogConfig{Level: "info"},
		Mesh:   MeshConfig{Name: "cone", Workers: 2},
		Renderer: RendererConfig{
			PresentMode: "vsync",
			MSAA:        4,
		},
		Pipeline: PipelineConfig{
			Cull:      "none",
			Topology:  "triangle-list",
			FrontFace: "ccw",
			WriteMask: []string{"all"},
		},
		Input: InputConfig{
			PinchSensitivity: -0.05,
			WheelStep:        1,
			Bindings: map[string][]string{
				input.FlagForward.String():  {"W"},
				input.FlagBackward.String(): {"S"},
				input.FlagLeft.String():     {"A"},
				input.FlagRight.String():    {"D"},
				input.FlagUp.String():       {"Space"},
				input.FlagDown.String():     {"LeftShift", "LeftControl", "C"},
			},
		},
		Camera: CameraConfig{
			Mode:     camera.KindOrbit.String(),
			Position: [3]float32{3, 2, 5},
			FOV:      2 * math.Pi / 5,
			Near:     1,
			Far:      100,
			Orbit: OrbitConfig{
				RotationSensitivity: 0.005,
				ZoomSpeed:           0.1,
				MinDistance:         0.5,
				MaxDistance:         500,
				MaxElevation:        math.Pi/2 - 0.01,
			},
			FreeFly: FreeFlyConfig{
				MovementSpeed:       10,
				RotationSensitivity: 0.005,
				MaxPitch:            math.Pi/2 - 0.01,
			},
		},
		Controls: layout.DefaultControls(),
	}
}

// Load reads and parses the TOML file at path over the defaults. An empty path returns Default().
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Config: the parsed and validated config
//   - error: error if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML data over the defaults and validates the result. Bindings and controls are
// merged per key, so a file that rebinds one flag keeps the default keys for the others.
//
// Parameters:
//   - data: TOML document
//
// Returns:
//   - Config: the parsed and validated config
//   - error: error if decoding or validation fails
func Parse(data []byte) (Config, error) {
	cfg := Default()
	bindings, controls := cfg.Input.Bindings, cfg.Controls
	cfg.Input.Bindings, cfg.Controls = nil, nil

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	maps.Copy(bindings, cfg.Input.Bindings)
	maps.Copy(controls, cfg.Controls)
	cfg.Input.Bindings, cfg.Controls = bindings, controls

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every value a component would otherwise reject at construction.
//
// Returns:
//   - error: ErrInvalidConfig wrapping the first problem found
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := CameraKind(c.Camera.Mode); err != nil {
		return invalid("camera mode: %v", err)
	}
	if c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far {
		return invalid("near %v must be positive and below far %v", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= math.Pi {
		return invalid("fov %v out of range", c.Camera.FOV)
	}
	o := c.Camera.Orbit
	if o.MinDistance <= 0 {
		return invalid("orbit min_distance %v must be positive", o.MinDistance)
	}
	if o.MinDistance > o.MaxDistance {
		return invalid("orbit min_distance %v above max_distance %v", o.MinDistance, o.MaxDistance)
	}
	if c.Engine.FrameLimit < 0 {
		return invalid("frame_limit %v must not be negative", c.Engine.FrameLimit)
	}
	if _, err := c.Renderer.Options(); err != nil {
		return invalid("renderer: %v", err)
	}
	if _, err := c.Pipeline.Options(); err != nil {
		return invalid("pipeline: %v", err)
	}
	if c.Mesh.Workers < 1 {
		return invalid("mesh workers %d", c.Mesh.Workers)
	}
	if _, err := c.Bindings(); err != nil {
		return invalid("%v", err)
	}
	for name, v := range c.Controls {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return invalid("control %s is not finite", name)
		}
	}
	return nil
}

// Bindings resolves the configured flag and key names into an aggregator key map.
//
// Returns:
//   - map[common.KeyCode]input.Flag: key bindings
//   - error: error for an unknown flag, unknown key name, or a key bound to two flags
func (c Config) Bindings() (map[common.KeyCode]input.Flag, error) {
	out := make(map[common.KeyCode]input.Flag)

	flags := make([]string, 0, len(c.Input.Bindings))
	for name := range c.Input.Bindings {
		flags = append(flags, name)
	}
	sort.Strings(flags)

	for _, name := range flags {
		flag, ok := input.ParseFlag(name)
		if !ok {
			return nil, fmt.Errorf("unknown binding flag %q", name)
		}
		for _, keyName := range c.Input.Bindings[name] {
			code, err := common.KeyByName(keyName)
			if err != nil {
				return nil, err
			}
			if prev, dup := out[code]; dup && prev != flag {
				return nil, fmt.Errorf("key %s bound to both %s and %s", keyName, prev, flag)
			}
			out[code] = flag
		}
	}
	return out, nil
}

// CameraKind parses the configured camera mode.
func CameraKind(mode string) (camera.Kind, error) {
	return camera.ParseKind(mode)
}

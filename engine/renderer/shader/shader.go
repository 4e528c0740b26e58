package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-lumen/engine/layout"
)

const (
	// VertexEntryPoint is the entry point name of the generated vertex stage.
	VertexEntryPoint = "vs_main"

	// FragmentEntryPoint is the entry point name of the generated fragment stage.
	FragmentEntryPoint = "fs_main"

	// UniformStruct and UniformVar name the generated uniform block.
	UniformStruct = "Uniforms"
	UniformVar    = "u"

	// InputStruct names the generated vertex input struct.
	InputStruct = "VertexInput"
)

var (
	// ErrMissingUniform is returned when the uniform layout lacks a field the beam shader reads.
	ErrMissingUniform = errors.New("uniform layout is missing a required field")
)

// beamUniforms lists the fields the beam shader reads and their component counts.
var beamUniforms = []layout.UniformField{
	{Name: layout.FieldModelMatrix, Components: 16},
	{Name: layout.FieldViewMatrix, Components: 16},
	{Name: layout.FieldProjectionMatrix, Components: 16},
	{Name: layout.FieldOverallRadius, Components: 1},
	{Name: layout.FieldConeRadius, Components: 1},
	{Name: layout.FieldLightLength, Components: 1},
	{Name: layout.FieldTime, Components: 1},
	{Name: layout.FieldLightStep, Components: 1},
	{Name: layout.FieldLightSpeed, Components: 1},
	{Name: layout.FieldLightIntensity, Components: 1},
}

// defaultTint is the beam color used when the mesh has no color channel.
const defaultTint = "vec4<f32>(1.0, 0.85, 0.6, 1.0)"

// Shader is a generated WGSL module with both render stages.
type Shader struct {
	Key           string
	Source        string
	VertexEntry   string
	FragmentEntry string
}

// NewBeamShader generates the light-beam shader for a mesh layout and uniform layout.
// The uniform block lives at group 0, binding 0, and vertex inputs use the layout's slots.
//
// Parameters:
//   - key: identifier used as the shader module label
//   - vl: the packed vertex layout of the mesh being drawn
//   - ul: the packed uniform layout
//
// Returns:
//   - Shader: the generated module
//   - error: ErrMissingUniform if ul lacks a field the shader reads
func NewBeamShader(key string, vl layout.VertexLayout, ul layout.UniformLayout) (Shader, error) {
	for _, want := range beamUniforms {
		f, err := ul.Field(want.Name)
		if err != nil {
			return Shader{}, fmt.Errorf("%w: %s", ErrMissingUniform, want.Name)
		}
		if f.Components != want.Components {
			return Shader{}, fmt.Errorf("%w: %s has %d components, want %d", ErrMissingUniform, want.Name, f.Components, want.Components)
		}
	}
	position, ok := vl.Attribute(layout.AttributePosition)
	if !ok {
		return Shader{}, layout.ErrMissingPosition
	}

	var b strings.Builder
	b.WriteString(ul.WGSL(UniformStruct, UniformVar, 0, 0))
	b.WriteString("\n")
	b.WriteString(vl.WGSLInput(InputStruct))
	b.WriteString(`
struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) local: vec3<f32>,
    @location(1) tint: vec4<f32>,
}
`)
	fmt.Fprintf(&b, `
@vertex
fn %s(in: %s) -> VertexOutput {
    var out: VertexOutput;
    let local = %s;
    let world = load_%s() * vec4<f32>(local, 1.0);
    out.clip = load_%s() * load_%s() * world;
    out.local = local;
    out.tint = %s;
    return out;
}
`, VertexEntryPoint, InputStruct, positionExpr(position.Format),
		layout.FieldModelMatrix, layout.FieldProjectionMatrix, layout.FieldViewMatrix, tintExpr(vl))

	fmt.Fprintf(&b, `
@fragment
fn %s(in: VertexOutput) -> @location(0) vec4<f32> {
    let beam = max(load_%s(), 0.0001);
    let along = clamp(-in.local.y / beam, 0.0, 1.0);
    let radius = max(load_%s() * load_%s() * along, 0.0001);
    let across = clamp(length(in.local.xz) / radius, 0.0, 1.0);
    let phase = along / max(load_%s(), 0.0001) - load_%s() * load_%s();
    let bands = 0.5 + 0.5 * sin(phase * 6.2831853);
    let glow = (1.0 - along) * (1.0 - across * across) * mix(0.6, 1.0, bands);
    let intensity = load_%s() * glow;
    return vec4<f32>(in.tint.rgb * intensity, clamp(intensity * in.tint.a, 0.0, 1.0));
}
`, FragmentEntryPoint, layout.FieldLightLength, layout.FieldOverallRadius, layout.FieldConeRadius,
		layout.FieldLightStep, layout.FieldTime, layout.FieldLightSpeed, layout.FieldLightIntensity)

	return Shader{
		Key:           key,
		Source:        b.String(),
		VertexEntry:   VertexEntryPoint,
		FragmentEntry: FragmentEntryPoint,
	}, nil
}

// positionExpr widens or narrows the position input to a vec3.
func positionExpr(f layout.Format) string {
	switch f {
	case layout.FormatFloat32:
		return "vec3<f32>(in.position, 0.0, 0.0)"
	case layout.FormatFloat32x2:
		return "vec3<f32>(in.position, 0.0)"
	case layout.FormatFloat32x4:
		return "in.position.xyz"
	}
	return "in.position"
}

// tintExpr reads the color channel as an RGBA vec4, or falls back to defaultTint.
func tintExpr(vl layout.VertexLayout) string {
	color, ok := vl.Attribute(layout.AttributeColor)
	if !ok {
		return defaultTint
	}
	switch color.Format {
	case layout.FormatFloat32:
		return "vec4<f32>(vec3<f32>(in.color), 1.0)"
	case layout.FormatFloat32x2:
		return "vec4<f32>(in.color, 0.0, 1.0)"
	case layout.FormatFloat32x3:
		return "vec4<f32>(in.color, 1.0)"
	}
	return "in.color"
}

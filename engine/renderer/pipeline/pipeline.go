package pipeline

import (
	"github.com/Carmen-Shannon/oxy-lumen/engine/layout"
	"github.com/Carmen-Shannon/oxy-lumen/engine/renderer/shader"

	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultUniformBuffer is the uniform buffer name a pipeline binds at group 0 unless overridden.
const DefaultUniformBuffer = "uniforms"

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	pipelineKey string

	shader        shader.Shader
	vertexLayout  layout.VertexLayout
	uniformBuffer string

	// renderPipeline is nil until the renderer registers the pipeline
	renderPipeline *wgpu.RenderPipeline

	depthWriteEnabled bool
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline describes a render pipeline: its generated shader, the packed vertex layout it reads,
// the uniform buffer it binds, and the fixed-function state used at creation.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	PipelineKey() string

	// Shader returns the generated shader module source and entry points.
	Shader() shader.Shader

	// VertexLayout returns the packed vertex layout the pipeline's vertex stage reads.
	VertexLayout() layout.VertexLayout

	// VertexBufferLayout converts the packed vertex layout into the wgpu descriptor for buffer slot 0.
	//
	// Returns:
	//   - wgpu.VertexBufferLayout: stride, step mode and one attribute per packed channel
	VertexBufferLayout() wgpu.VertexBufferLayout

	// UniformBuffer returns the name of the uniform buffer bound at group 0.
	UniformBuffer() string

	// RenderPipeline returns the created GPU pipeline, or nil before registration.
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline stores the created GPU pipeline.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)

	DepthWriteEnabled() bool
	BlendEnabled() bool
	CullMode() wgpu.CullMode
	Topology() wgpu.PrimitiveTopology
	FrontFace() wgpu.FrontFace
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state, or nil when blending is disabled.
	BlendState() *wgpu.BlendState
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a render pipeline description for a shader and the vertex layout it was generated from.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - s: the generated shader
//   - vl: the packed vertex layout of the meshes drawn with this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline with the specified configuration
func NewPipeline(pipelineKey string, s shader.Shader, vl layout.VertexLayout, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		shader:            s,
		vertexLayout:      vl,
		uniformBuffer:     DefaultUniformBuffer,
		depthWriteEnabled: true,
		blendEnabled:      false,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AdditiveBlendState adds source color onto the target, which suits emissive geometry like light beams.
func AdditiveBlendState() *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOne,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorZero,
			DstFactor: wgpu.BlendFactorOne,
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

// VertexFormat maps a packed float32 format to its wgpu vertex format.
func VertexFormat(f layout.Format) wgpu.VertexFormat {
	switch f {
	case layout.FormatFloat32:
		return wgpu.VertexFormatFloat32
	case layout.FormatFloat32x2:
		return wgpu.VertexFormatFloat32x2
	case layout.FormatFloat32x4:
		return wgpu.VertexFormatFloat32x4
	}
	return wgpu.VertexFormatFloat32x3
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) VertexLayout() layout.VertexLayout {
	return p.vertexLayout
}

func (p *pipeline) VertexBufferLayout() wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, len(p.vertexLayout.Attributes))
	for i, va := range p.vertexLayout.Attributes {
		attrs[i] = wgpu.VertexAttribute{
			Format:         VertexFormat(va.Format),
			Offset:         va.Offset,
			ShaderLocation: va.Slot,
		}
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: p.vertexLayout.Stride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

func (p *pipeline) UniformBuffer() string {
	return p.uniformBuffer
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	if !p.blendEnabled {
		return nil
	}
	return p.blendState
}

package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrUnknownState is returned when a fixed-function state name cannot be parsed.
var ErrUnknownState = errors.New("unknown pipeline state")

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithUniformBuffer sets the name of the uniform buffer bound at group 0.
//
// Parameters:
//   - name: the buffer name registered with the renderer
//
// Returns:
//   - PipelineBuilderOption: a function that sets the uniform buffer for this pipeline
func WithUniformBuffer(name string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.uniformBuffer = name
	}
}

// WithDepthWriteEnabled controls whether fragments write depth. Additive beams disable it so
// overlapping surfaces all accumulate.
func WithDepthWriteEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthWriteEnabled = enabled
	}
}

// WithBlendEnabled turns color blending on; the blend state comes from WithBlendState.
func WithBlendEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendEnabled = enabled
	}
}

// WithBlendState sets the blend state used when blending is enabled.
func WithBlendState(blendState *wgpu.BlendState) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendState = blendState
	}
}

// WithCullMode sets which faces are discarded. See ParseCullMode for the config names.
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithTopology sets how the index buffer is assembled into primitives. See ParseTopology.
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithFrontFace sets the winding order treated as front facing. See ParseFrontFace.
func WithFrontFace(frontFace wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = frontFace
	}
}

// WithWriteMask sets which color channels the fragment stage writes. See ParseWriteMask.
func WithWriteMask(writeMask wgpu.ColorWriteMask) PipelineBuilderOption {
	return func(p *pipeline) {
		p.writeMask = writeMask
	}
}

// ParseCullMode resolves "none", "front" or "back", case-insensitive.
//
// Parameters:
//   - name: the cull mode name
//
// Returns:
//   - wgpu.CullMode: the matching mode
//   - error: ErrUnknownState for any other name
func ParseCullMode(name string) (wgpu.CullMode, error) {
	switch strings.ToLower(name) {
	case "none":
		return wgpu.CullModeNone, nil
	case "front":
		return wgpu.CullModeFront, nil
	case "back":
		return wgpu.CullModeBack, nil
	}
	return wgpu.CullModeNone, fmt.Errorf("%w: cull mode %q", ErrUnknownState, name)
}

// ParseTopology resolves "triangle-list", "line-list" or "point-list". Line and point lists
// render the beam mesh as a wireframe or point cloud over the same index buffer.
func ParseTopology(name string) (wgpu.PrimitiveTopology, error) {
	switch strings.ToLower(name) {
	case "triangle-list":
		return wgpu.PrimitiveTopologyTriangleList, nil
	case "line-list":
		return wgpu.PrimitiveTopologyLineList, nil
	case "point-list":
		return wgpu.PrimitiveTopologyPointList, nil
	}
	return wgpu.PrimitiveTopologyTriangleList, fmt.Errorf("%w: topology %q", ErrUnknownState, name)
}

// ParseFrontFace resolves "ccw" or "cw".
func ParseFrontFace(name string) (wgpu.FrontFace, error) {
	switch strings.ToLower(name) {
	case "ccw":
		return wgpu.FrontFaceCCW, nil
	case "cw":
		return wgpu.FrontFaceCW, nil
	}
	return wgpu.FrontFaceCCW, fmt.Errorf("%w: front face %q", ErrUnknownState, name)
}

// ParseWriteMask combines channel names ("red", "green", "blue", "alpha") or "all" into a mask.
// An empty list means all channels.
//
// Parameters:
//   - channels: channel names
//
// Returns:
//   - wgpu.ColorWriteMask: the combined mask
//   - error: ErrUnknownState for an unknown channel
func ParseWriteMask(channels []string) (wgpu.ColorWriteMask, error) {
	if len(channels) == 0 {
		return wgpu.ColorWriteMaskAll, nil
	}
	var mask wgpu.ColorWriteMask
	for _, c := range channels {
		switch strings.ToLower(c) {
		case "all":
			mask |= wgpu.ColorWriteMaskAll
		case "red":
			mask |= wgpu.ColorWriteMaskRed
		case "green":
			mask |= wgpu.ColorWriteMaskGreen
		case "blue":
			mask |= wgpu.ColorWriteMaskBlue
		case "alpha":
			mask |= wgpu.ColorWriteMaskAlpha
		default:
			return 0, fmt.Errorf("%w: write mask channel %q", ErrUnknownState, c)
		}
	}
	return mask, nil
}

package pipeline

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-lumen/engine/layout"
	"github.com/Carmen-Shannon/oxy-lumen/engine/renderer/shader"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestParseCullMode(t *testing.T) {
	tests := []struct {
		name    string
		want    wgpu.CullMode
		wantErr bool
	}{
		{name: "none", want: wgpu.CullModeNone},
		{name: "Front", want: wgpu.CullModeFront},
		{name: "BACK", want: wgpu.CullModeBack},
		{name: "both", wantErr: true},
		{name: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCullMode(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownState) {
					t.Errorf("ParseCullMode(%q) error = %v, want ErrUnknownState", tt.name, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseCullMode(%q) = %v, %v, want %v", tt.name, got, err, tt.want)
			}
		})
	}
}

func TestParseTopology(t *testing.T) {
	tests := []struct {
		name    string
		want    wgpu.PrimitiveTopology
		wantErr bool
	}{
		{name: "triangle-list", want: wgpu.PrimitiveTopologyTriangleList},
		{name: "line-list", want: wgpu.PrimitiveTopologyLineList},
		{name: "Point-List", want: wgpu.PrimitiveTopologyPointList},
		{name: "triangle-strip", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTopology(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownState) {
					t.Errorf("ParseTopology(%q) error = %v, want ErrUnknownState", tt.name, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseTopology(%q) = %v, %v, want %v", tt.name, got, err, tt.want)
			}
		})
	}
}

func TestParseFrontFace(t *testing.T) {
	if got, err := ParseFrontFace("CW"); err != nil || got != wgpu.FrontFaceCW {
		t.Errorf("ParseFrontFace(CW) = %v, %v", got, err)
	}
	if got, err := ParseFrontFace("ccw"); err != nil || got != wgpu.FrontFaceCCW {
		t.Errorf("ParseFrontFace(ccw) = %v, %v", got, err)
	}
	if _, err := ParseFrontFace("clockwise"); !errors.Is(err, ErrUnknownState) {
		t.Errorf("ParseFrontFace(clockwise) error = %v, want ErrUnknownState", err)
	}
}

func TestParseWriteMask(t *testing.T) {
	tests := []struct {
		name     string
		channels []string
		want     wgpu.ColorWriteMask
		wantErr  bool
	}{
		{name: "empty", want: wgpu.ColorWriteMaskAll},
		{name: "all", channels: []string{"all"}, want: wgpu.ColorWriteMaskAll},
		{name: "rgb", channels: []string{"red", "Green", "blue"},
			want: wgpu.ColorWriteMaskRed | wgpu.ColorWriteMaskGreen | wgpu.ColorWriteMaskBlue},
		{name: "alpha", channels: []string{"alpha"}, want: wgpu.ColorWriteMaskAlpha},
		{name: "unknown", channels: []string{"red", "cyan"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWriteMask(tt.channels)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownState) {
					t.Errorf("ParseWriteMask(%v) error = %v, want ErrUnknownState", tt.channels, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseWriteMask(%v) = %v, %v, want %v", tt.channels, got, err, tt.want)
			}
		})
	}
}

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("beam", shader.Shader{}, layout.VertexLayout{})
	if p.UniformBuffer() != DefaultUniformBuffer {
		t.Errorf("UniformBuffer() = %q, want %q", p.UniformBuffer(), DefaultUniformBuffer)
	}
	if !p.DepthWriteEnabled() || p.BlendEnabled() {
		t.Errorf("depth write = %v, blend = %v, want true/false", p.DepthWriteEnabled(), p.BlendEnabled())
	}
	if p.CullMode() != wgpu.CullModeNone || p.Topology() != wgpu.PrimitiveTopologyTriangleList ||
		p.FrontFace() != wgpu.FrontFaceCCW || p.WriteMask() != wgpu.ColorWriteMaskAll {
		t.Errorf("state = %v/%v/%v/%v", p.CullMode(), p.Topology(), p.FrontFace(), p.WriteMask())
	}
}

func TestNewPipelineOptions(t *testing.T) {
	p := NewPipeline("beam", shader.Shader{}, layout.VertexLayout{},
		WithUniformBuffer("frame"),
		WithCullMode(wgpu.CullModeBack),
		WithTopology(wgpu.PrimitiveTopologyPointList),
		WithFrontFace(wgpu.FrontFaceCW),
		WithWriteMask(wgpu.ColorWriteMaskRed),
		WithBlendEnabled(true),
		WithBlendState(AdditiveBlendState()),
	)
	if p.UniformBuffer() != "frame" {
		t.Errorf("UniformBuffer() = %q, want frame", p.UniformBuffer())
	}
	if p.CullMode() != wgpu.CullModeBack || p.Topology() != wgpu.PrimitiveTopologyPointList ||
		p.FrontFace() != wgpu.FrontFaceCW || p.WriteMask() != wgpu.ColorWriteMaskRed {
		t.Errorf("state = %v/%v/%v/%v", p.CullMode(), p.Topology(), p.FrontFace(), p.WriteMask())
	}
	if !p.BlendEnabled() || p.BlendState() == nil {
		t.Error("blend state not applied")
	}
}

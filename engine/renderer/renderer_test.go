package renderer

import (
	"errors"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-lumen/engine/layout"
	"github.com/Carmen-Shannon/oxy-lumen/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-lumen/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-lumen/engine/renderer/shader"
)

func newTestRenderer(pipelines ...pipeline.Pipeline) *renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		uniforms:      make(map[string]bind_group_provider.BindGroupProvider),
		meshes:        make(map[string]bind_group_provider.BindGroupProvider),
	}
	for _, p := range pipelines {
		r.pipelineCache[p.PipelineKey()] = p
	}
	return r
}

func TestParsePresentMode(t *testing.T) {
	tests := []struct {
		name    string
		want    PresentMode
		wantErr bool
	}{
		{name: "vsync", want: PresentModeVSync},
		{name: "Uncapped", want: PresentModeUncapped},
		{name: "mailbox", wantErr: true},
		{name: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePresentMode(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownOption) {
					t.Errorf("ParsePresentMode(%q) error = %v, want ErrUnknownOption", tt.name, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParsePresentMode(%q) = %v, %v, want %v", tt.name, got, err, tt.want)
			}
		})
	}
}

func TestParseMSAA(t *testing.T) {
	tests := []struct {
		samples int
		want    MSAASampleCount
		wantErr bool
	}{
		{samples: 1, want: MSAAOff},
		{samples: 4, want: MSAA4x},
		{samples: 0, wantErr: true},
		{samples: 8, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMSAA(tt.samples)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownOption) {
				t.Errorf("ParseMSAA(%d) error = %v, want ErrUnknownOption", tt.samples, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseMSAA(%d) = %v, %v, want %v", tt.samples, got, err, tt.want)
		}
	}
}

func TestBuilderOptions(t *testing.T) {
	r := newTestRenderer()
	for _, opt := range []RendererBuilderOption{
		WithPresentMode(PresentModeUncapped),
		WithMSAA(MSAAOff),
		WithForceSoftwareRenderer(true),
	} {
		opt(r)
	}
	if r.pendingPresentMode == nil || *r.pendingPresentMode != PresentModeUncapped {
		t.Errorf("pendingPresentMode = %v, want uncapped", r.pendingPresentMode)
	}
	if r.pendingMSAA == nil || *r.pendingMSAA != MSAAOff {
		t.Errorf("pendingMSAA = %v, want off", r.pendingMSAA)
	}
	if !r.forceFallbackAdapter {
		t.Error("forceFallbackAdapter = false, want true")
	}
}

func TestPipelinesReturnsCopy(t *testing.T) {
	beam := pipeline.NewPipeline("beam", shader.Shader{}, layout.VertexLayout{})
	r := newTestRenderer(beam)

	got := r.Pipelines()
	delete(got, "beam")
	got["wire"] = pipeline.NewPipeline("wire", shader.Shader{}, layout.VertexLayout{})

	if len(r.pipelineCache) != 1 || r.Pipeline("beam") != beam {
		t.Errorf("pipeline cache changed through Pipelines(): %v", r.pipelineCache)
	}
	if r.Pipeline("wire") != nil {
		t.Error("Pipeline(wire) registered through the returned map")
	}
}

func TestDrawCallUnknownKeys(t *testing.T) {
	r := newTestRenderer(pipeline.NewPipeline("beam", shader.Shader{}, layout.VertexLayout{}))
	if err := r.DrawCall("missing", "cone"); !errors.Is(err, ErrUnknownPipeline) {
		t.Errorf("DrawCall(missing) error = %v, want ErrUnknownPipeline", err)
	}
	if err := r.DrawCall("beam", "cone"); !errors.Is(err, ErrUnknownMesh) {
		t.Errorf("DrawCall(beam, cone) error = %v, want ErrUnknownMesh", err)
	}
}

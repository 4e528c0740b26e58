package renderer

import (
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/Carmen-Shannon/oxy-lumen/common"
	"github.com/Carmen-Shannon/oxy-lumen/engine/layout"
	"github.com/Carmen-Shannon/oxy-lumen/engine/model"
	"github.com/Carmen-Shannon/oxy-lumen/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-lumen/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-lumen/engine/window"
)

var (
	// ErrUnknownPipeline is returned when a draw names a pipeline that was never registered.
	ErrUnknownPipeline = errors.New("unknown pipeline")

	// ErrUnknownMesh is returned when a draw names a mesh that was never uploaded.
	ErrUnknownMesh = errors.New("unknown mesh")

	// ErrUnknownBuffer is returned when a pipeline names a uniform buffer that was never initialized.
	ErrUnknownBuffer = errors.New("unknown uniform buffer")
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline
	uniforms      map[string]bind_group_provider.BindGroupProvider
	meshes        map[string]bind_group_provider.BindGroupProvider

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer draws uploaded meshes with registered pipelines and receives uniform writes by buffer name.
// It implements layout.Sink so a layout.UniformWriter can target GPU buffers directly.
type Renderer interface {
	layout.Sink

	// InitUniformBuffer allocates a uniform buffer sized to ul and its bind group at group 0, binding 0.
	//
	// Parameters:
	//   - name: buffer name used by WriteBuffer and pipelines
	//   - ul: the packed uniform layout
	//
	// Returns:
	//   - error: an error if GPU resource creation fails
	InitUniformBuffer(name string, ul layout.UniformLayout) error

	// InitMesh uploads a prepared mesh under key.
	//
	// Parameters:
	//   - key: identifier used by DrawCall
	//   - prepared: interleaved vertex bytes and index bytes
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMesh(key string, prepared model.Prepared) error

	// Pipeline retrieves the cached Pipeline associated with the given key, or nil.
	Pipeline(key string) pipeline.Pipeline

	// Pipelines returns a copy of the pipeline cache keyed by PipelineKey.
	Pipelines() map[string]pipeline.Pipeline

	// RegisterPipelines creates the GPU render pipeline for each description and caches it by PipelineKey.
	// Pipelines whose keys are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: ErrUnknownBuffer or a pipeline creation error
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize reconfigures the surface for a new framebuffer size. Zero sizes are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the attachments could not be recreated
	Resize(width, height int) error

	// SetPresentMode sets the surface present mode. A call to Resize is required for it to take effect.
	SetPresentMode(mode PresentMode)

	// BeginFrame acquires the swapchain texture and begins the main render pass.
	BeginFrame() error

	// DrawCall encodes one indexed draw of a mesh within the current render pass.
	//
	// Parameters:
	//   - pipelineKey: key of a registered pipeline
	//   - meshKey: key of an uploaded mesh
	//
	// Returns:
	//   - error: ErrUnknownPipeline or ErrUnknownMesh
	DrawCall(pipelineKey, meshKey string) error

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	Present()

	// Release frees every buffer, bind group and the device.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing to the window's surface.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - win: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the renderer
//   - error: an error if the adapter, device or surface could not be set up
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		uniforms:      make(map[string]bind_group_provider.BindGroupProvider),
		meshes:        make(map[string]bind_group_provider.BindGroupProvider),
		backendType:   backendType,
	}

	// Options first so forceFallbackAdapter is known before the adapter request.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer backend: %w", err)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	if err := r.backend.ConfigureSurface(win.Width(), win.Height()); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("failed to configure surface: %w", err)
	}
	return r, nil
}

func (r *renderer) WriteBuffer(buffer string, offset uint64, data []byte) {
	r.mu.Lock()
	provider, ok := r.uniforms[buffer]
	r.mu.Unlock()
	if !ok || provider.Buffer() == nil {
		common.Logger().Warn("write to unknown uniform buffer dropped", "buffer", buffer, "offset", offset)
		return
	}
	r.backend.WriteBuffer(provider.Buffer(), offset, data)
}

func (r *renderer) InitUniformBuffer(name string, ul layout.UniformLayout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.uniforms[name]; ok {
		old.Release()
	}
	provider := bind_group_provider.NewBindGroupProvider(name, bind_group_provider.WithSize(ul.Size()))
	if err := r.backend.InitUniformBuffer(provider); err != nil {
		provider.Release()
		return fmt.Errorf("failed to init uniform buffer %q: %w", name, err)
	}
	r.uniforms[name] = provider
	common.Logger().Debug("uniform buffer ready", "buffer", name, "size", ul.Size(), "fields", len(ul.Fields()))
	return nil
}

func (r *renderer) InitMesh(key string, prepared model.Prepared) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.meshes[key]; ok {
		old.Release()
	}
	provider := bind_group_provider.NewBindGroupProvider(key)
	if err := r.backend.InitMeshBuffers(provider, prepared.Vertices, prepared.Indices, prepared.IndexCount()); err != nil {
		provider.Release()
		return fmt.Errorf("failed to upload mesh %q: %w", key, err)
	}
	r.meshes[key] = provider
	common.Logger().Debug("mesh uploaded", "mesh", key, "stride", prepared.Layout.Stride, "indices", prepared.IndexCount())
	return nil
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.pipelineCache)
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		uniforms, ok := r.uniforms[p.UniformBuffer()]
		if !ok {
			return fmt.Errorf("%w: %q for pipeline %q", ErrUnknownBuffer, p.UniformBuffer(), key)
		}
		if err := r.backend.RegisterRenderPipeline(p, uniforms); err != nil {
			return fmt.Errorf("failed to create pipeline %q: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) Resize(width, height int) error {
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey, meshKey string) error {
	r.mu.Lock()
	p, ok := r.pipelineCache[pipelineKey]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownPipeline, pipelineKey)
	}
	mesh, ok := r.meshes[meshKey]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownMesh, meshKey)
	}
	uniforms := r.uniforms[p.UniformBuffer()]
	r.mu.Unlock()

	r.backend.DrawCall(p, uniforms, mesh)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, p := range r.pipelineCache {
		if rp := p.RenderPipeline(); rp != nil {
			rp.Release()
		}
		delete(r.pipelineCache, key)
	}
	for key, m := range r.meshes {
		m.Release()
		delete(r.meshes, key)
	}
	for name, u := range r.uniforms {
		u.Release()
		delete(r.uniforms, name)
	}
	r.backend.Release()
}

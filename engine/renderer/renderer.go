package renderer

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-waddle/common"
	"github.com/Carmen-Shannon/oxy-waddle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-waddle/engine/light"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-waddle/engine/window"
)

// staleFrames is how many frames a cached mesh or texture may go unused before its GPU
// resources are released.
const staleFrames = 300

// fallbackTextureKey caches the 1x1 white texture bound for untextured materials.
const fallbackTextureKey = 0

// ErrNoCamera is returned by Render when the frame has no camera.
var ErrNoCamera = errors.New("frame has no camera")

// cached is a provider plus the frame it was last drawn in.
type cached struct {
	provider bind_group_provider.BindGroupProvider
	lastUsed uint64
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount

	ready      bool
	frameCount uint64

	litShader    shader.Shader
	shadowShader shader.Shader
	skyShader    shader.Shader

	// frame is group 0 of the lit module; it owns the camera, light and scene buffers.
	frame bind_group_provider.BindGroupProvider
	// shadowFrame is group 0 of the shadow module and shares the scene buffer.
	shadowFrame bind_group_provider.BindGroupProvider
	// skyCamera is group 0 of the skybox module and shares the camera buffer.
	skyCamera bind_group_provider.BindGroupProvider
	sky       bind_group_provider.BindGroupProvider
	skyID     uint64

	shadowTexture *wgpu.Texture
	shadowView    *wgpu.TextureView
	shadowSampler *wgpu.Sampler
	shadowSize    uint32

	meshes   map[uint64]*cached // by geometry ID
	objects  map[uint64]*cached // by draw key
	textures map[uint64]*cached // by texture ID
}

// Renderer draws FrameData with a forward Blinn-Phong pipeline.
//
// Each frame runs an optional directional shadow pass, draws the skybox (if any) behind
// everything, then draws every item with the lit pipeline matching its material side.
// GPU resources for geometry, objects and textures are created on first use and cached.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// Render draws and presents one frame.
	//
	// Parameters:
	//   - frame: the frame to draw
	//
	// Returns:
	//   - error: an error if resource creation or surface acquisition fails
	Render(frame *FrameData) error

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Release frees every GPU resource held by the renderer and its backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer drawing into the given window's surface.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the window providing the platform surface and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := newRenderer(backendType, options...)

	msaa := MSAA4x // default
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(window.Width(), window.Height())
	return r
}

// newRenderer builds the renderer state without a backend.
func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		meshes:        make(map[uint64]*cached),
		objects:       make(map[uint64]*cached),
		textures:      make(map[uint64]*cached),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

// init compiles the modules, registers pipelines and creates the per-frame groups.
// Caller must hold the mutex.
func (r *renderer) init() error {
	if r.ready {
		return nil
	}
	r.litShader = newLitShader()
	r.shadowShader = newShadowShader()
	r.skyShader = newSkyboxShader()

	pipelines := []pipeline.Pipeline{
		pipeline.NewPipeline(pipelineShadow,
			pipeline.WithShader(r.shadowShader),
			pipeline.WithCullMode(wgpu.CullModeNone),
			pipeline.WithDepthBias(2, 2.0),
		),
		pipeline.NewPipeline(pipelineLit,
			pipeline.WithShader(r.litShader),
			pipeline.WithCullMode(wgpu.CullModeBack),
			pipeline.WithBlendEnabled(true),
		),
		pipeline.NewPipeline(pipelineLitDouble,
			pipeline.WithShader(r.litShader),
			pipeline.WithCullMode(wgpu.CullModeNone),
			pipeline.WithBlendEnabled(true),
		),
		pipeline.NewPipeline(pipelineSkybox,
			pipeline.WithShader(r.skyShader),
			pipeline.WithDepthTestEnabled(false),
			pipeline.WithDepthWriteEnabled(false),
		),
	}
	for _, p := range pipelines {
		if _, exists := r.pipelineCache[p.Key()]; exists {
			continue
		}
		if err := r.backend.RegisterPipeline(p); err != nil {
			return fmt.Errorf("pipeline %s: %w", p.Key(), err)
		}
		r.pipelineCache[p.Key()] = p
	}

	sampler, err := r.backend.CreateComparisonSampler()
	if err != nil {
		return err
	}
	r.shadowSampler = sampler

	if err := r.ensureShadowMap(light.ShadowMapResolution); err != nil {
		return err
	}

	r.shadowFrame = bind_group_provider.NewBindGroupProvider("Shadow Frame",
		bind_group_provider.WithSharedBuffer(0, r.frame.Buffer(bindingScene)))
	if err := r.backend.InitBindGroup(r.shadowFrame, r.shadowShader.BindGroupLayoutDescriptor(groupFrame)); err != nil {
		return err
	}

	r.skyCamera = bind_group_provider.NewBindGroupProvider("Sky Camera",
		bind_group_provider.WithSharedBuffer(0, r.frame.Buffer(bindingCamera)))
	if err := r.backend.InitBindGroup(r.skyCamera, r.skyShader.BindGroupLayoutDescriptor(groupFrame)); err != nil {
		return err
	}

	r.ready = true
	log.Printf("[Renderer] pipelines ready: %d", len(r.pipelineCache))
	return nil
}

// ensureShadowMap (re)creates the shadow depth texture at size and rebuilds the lit frame
// group around it. Caller must hold the mutex.
func (r *renderer) ensureShadowMap(size uint32) error {
	if size == r.shadowSize && r.frame != nil {
		return nil
	}
	view, tex, err := r.backend.CreateShadowMap(size)
	if err != nil {
		return err
	}

	if r.frame == nil {
		r.frame = bind_group_provider.NewBindGroupProvider("Frame")
	}
	r.frame.ShareTextureView(bindingShadowMap, view)
	r.frame.ShareSampler(bindingShadowSampler, r.shadowSampler)
	if err := r.backend.InitBindGroup(r.frame, r.litShader.BindGroupLayoutDescriptor(groupFrame)); err != nil {
		view.Release()
		tex.Release()
		return err
	}

	if r.shadowView != nil {
		r.shadowView.Release()
	}
	if r.shadowTexture != nil {
		r.shadowTexture.Release()
	}
	r.shadowView, r.shadowTexture, r.shadowSize = view, tex, size
	return nil
}

// ensureSky builds the skybox texture group when the cube texture changes.
// Caller must hold the mutex.
func (r *renderer) ensureSky(cube *material.CubeTexture) error {
	if cube == nil {
		return nil
	}
	if r.sky != nil && r.skyID == cube.ID() {
		return nil
	}
	if r.sky != nil {
		r.sky.Release()
		r.sky = nil
	}

	p := bind_group_provider.NewBindGroupProvider(cube.Label)
	if err := r.backend.InitTextureView(p, 0, cubeStaging(cube)); err != nil {
		return err
	}
	if err := r.backend.InitSampler(p, 1, common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
	}); err != nil {
		p.Release()
		return err
	}
	if err := r.backend.InitBindGroup(p, r.skyShader.BindGroupLayoutDescriptor(groupSky)); err != nil {
		p.Release()
		return err
	}
	r.sky, r.skyID = p, cube.ID()
	return nil
}

// meshProvider returns the cached vertex and index buffers for geo. Caller must hold the mutex.
func (r *renderer) meshProvider(geo *geometry.Geometry) (bind_group_provider.BindGroupProvider, error) {
	if c, ok := r.meshes[geo.ID()]; ok {
		c.lastUsed = r.frameCount
		return c.provider, nil
	}
	p := bind_group_provider.NewBindGroupProvider(geo.Label())
	if err := r.backend.InitMeshBuffers(p, geo.VertexBytes(), geo.IndexBytes(), len(geo.Indices())); err != nil {
		p.Release()
		return nil, err
	}
	r.meshes[geo.ID()] = &cached{provider: p, lastUsed: r.frameCount}
	return p, nil
}

// objectProvider returns the cached object uniform group for key. Caller must hold the mutex.
func (r *renderer) objectProvider(key uint64) (bind_group_provider.BindGroupProvider, error) {
	if c, ok := r.objects[key]; ok {
		c.lastUsed = r.frameCount
		return c.provider, nil
	}
	p := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("Object %d", key))
	if err := r.backend.InitBindGroup(p, r.litShader.BindGroupLayoutDescriptor(groupObject)); err != nil {
		p.Release()
		return nil, err
	}
	r.objects[key] = &cached{provider: p, lastUsed: r.frameCount}
	return p, nil
}

// textureProvider returns the cached diffuse group for tex, or the white fallback when tex
// is nil. Caller must hold the mutex.
func (r *renderer) textureProvider(tex *material.Texture) (bind_group_provider.BindGroupProvider, error) {
	key := uint64(fallbackTextureKey)
	if tex != nil {
		key = tex.ID()
	}
	if c, ok := r.textures[key]; ok {
		c.lastUsed = r.frameCount
		return c.provider, nil
	}

	label, staging, sampler := "White", whiteStaging(), common.SamplerStagingData{}
	if tex != nil {
		label, staging, sampler = tex.Label, textureStaging(tex), samplerStaging(tex)
	}
	p := bind_group_provider.NewBindGroupProvider(label)
	if err := r.backend.InitTextureView(p, 0, staging); err != nil {
		return nil, err
	}
	if err := r.backend.InitSampler(p, 1, sampler); err != nil {
		p.Release()
		return nil, err
	}
	if err := r.backend.InitBindGroup(p, r.litShader.BindGroupLayoutDescriptor(groupMaterial)); err != nil {
		p.Release()
		return nil, err
	}
	r.textures[key] = &cached{provider: p, lastUsed: r.frameCount}
	return p, nil
}

// evict releases object groups not drawn this frame and meshes or textures unused for
// staleFrames. Caller must hold the mutex.
func (r *renderer) evict() {
	for key, c := range r.objects {
		if c.lastUsed != r.frameCount {
			c.provider.Release()
			delete(r.objects, key)
		}
	}
	for _, cache := range []map[uint64]*cached{r.meshes, r.textures} {
		for key, c := range cache {
			if key != fallbackTextureKey && r.frameCount-c.lastUsed > staleFrames {
				c.provider.Release()
				delete(cache, key)
			}
		}
	}
}

type preparedDraw struct {
	item     DrawItem
	mesh     bind_group_provider.BindGroupProvider
	object   bind_group_provider.BindGroupProvider
	material bind_group_provider.BindGroupProvider
}

func (r *renderer) Render(frame *FrameData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if frame == nil || frame.Camera == nil {
		return ErrNoCamera
	}
	if err := r.init(); err != nil {
		return err
	}
	r.frameCount++

	packed := packFrame(frame)
	r.backend.SetClearColor(packed.clear)
	if err := r.ensureShadowMap(packed.shadowSize); err != nil {
		return err
	}
	if err := r.ensureSky(frame.Skybox); err != nil {
		return err
	}

	writes := []bind_group_provider.BufferWrite{
		{Provider: r.frame, Binding: bindingCamera, Data: packed.camera.Marshal()},
		{Provider: r.frame, Binding: bindingLights, Data: packed.lights},
		{Provider: r.frame, Binding: bindingScene, Data: packed.scene.Marshal()},
	}

	items := orderDraws(frame.Draws, frame.Camera.Position())
	draws := make([]preparedDraw, 0, len(items))
	for _, item := range items {
		mesh, err := r.meshProvider(item.Geometry)
		if err != nil {
			return fmt.Errorf("mesh %s: %w", item.Geometry.Label(), err)
		}
		object, err := r.objectProvider(item.Key)
		if err != nil {
			return err
		}
		mat, err := r.textureProvider(item.Material.Texture())
		if err != nil {
			return fmt.Errorf("material %s: %w", item.Material.Name(), err)
		}
		u := packObject(item, packed.shadowEnabled)
		writes = append(writes, bind_group_provider.BufferWrite{Provider: object, Binding: 0, Data: u.Marshal()})
		draws = append(draws, preparedDraw{item: item, mesh: mesh, object: object, material: mat})
	}
	r.evict()
	r.backend.WriteBuffers(writes)

	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	if packed.shadowEnabled {
		r.backend.BeginShadowPass(r.shadowView)
		shadow := r.pipelineCache[pipelineShadow]
		for _, d := range draws {
			if d.item.CastShadow {
				r.backend.Draw(shadow, d.mesh, []bind_group_provider.BindGroupProvider{r.shadowFrame, d.object})
			}
		}
		r.backend.EndPass()
	}

	r.backend.BeginMainPass()
	if frame.Skybox != nil && r.sky != nil {
		r.backend.Draw(r.pipelineCache[pipelineSkybox], nil, []bind_group_provider.BindGroupProvider{r.skyCamera, r.sky})
	}
	for _, d := range draws {
		key := pipelineLit
		if d.item.Material.Side() == material.SideDouble {
			key = pipelineLitDouble
		}
		r.backend.Draw(r.pipelineCache[key], d.mesh, []bind_group_provider.BindGroupProvider{r.frame, d.object, d.material})
	}
	r.backend.EndPass()
	return r.backend.EndFrame()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, cache := range []map[uint64]*cached{r.meshes, r.objects, r.textures} {
		for key, c := range cache {
			c.provider.Release()
			delete(cache, key)
		}
	}
	for _, p := range []bind_group_provider.BindGroupProvider{r.sky, r.skyCamera, r.shadowFrame, r.frame} {
		if p != nil {
			p.Release()
		}
	}
	r.sky, r.skyCamera, r.shadowFrame, r.frame = nil, nil, nil, nil
	if r.shadowView != nil {
		r.shadowView.Release()
		r.shadowView = nil
	}
	if r.shadowTexture != nil {
		r.shadowTexture.Release()
		r.shadowTexture = nil
	}
	if r.shadowSampler != nil {
		r.shadowSampler.Release()
		r.shadowSampler = nil
	}
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.ready = false
	if r.backend != nil {
		r.backend.Release()
	}
}

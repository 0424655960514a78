package renderer

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-waddle/common"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/pipeline"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how finished frames reach the display.
type PresentMode int

const (
	// PresentModeVSync waits for vertical blank. No tearing, frame rate capped at refresh.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents immediately and may tear.
	PresentModeUncapped
)

// MSAASampleCount is the number of samples per pixel in the main pass. WebGPU guarantees 1
// and 4; 8 and 16 depend on the adapter.
type MSAASampleCount uint32

const (
	MSAAOff MSAASampleCount = 1
	MSAA4x  MSAASampleCount = 4
	MSAA8x  MSAASampleCount = 8
	MSAA16x MSAASampleCount = 16
)

// ParseMSAA maps a configured sample count to an MSAASampleCount.
//
// Parameters:
//   - n: 0 or 1 for off, otherwise 4, 8 or 16
//
// Returns:
//   - MSAASampleCount: the sample count
//   - bool: false if n is not a supported count
func ParseMSAA(n int) (MSAASampleCount, bool) {
	switch n {
	case 0, 1:
		return MSAAOff, true
	case 4, 8, 16:
		return MSAASampleCount(n), true
	}
	return MSAAOff, false
}

var (
	errSurfaceUnconfigured = errors.New("surface not configured")
	errFrameInFlight       = errors.New("previous frame not yet presented")
	errNoFrame             = errors.New("no frame in progress")
)

// RendererBackend records and submits GPU work for the Renderer.
//
// A frame is one command buffer:
//
//	BeginFrame
//	  BeginShadowPass, Draw..., EndPass   (optional)
//	  BeginMainPass, Draw..., EndPass
//	EndFrame                              (submits and presents)
//
// Resource creation may happen at any time outside a pass.
type RendererBackend interface {
	// ConfigureSurface sizes the swapchain and the depth and MSAA attachments. A zero
	// dimension (minimized window) keeps the previous configuration.
	ConfigureSurface(width, height int)

	// SetPresentMode takes effect on the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color the main pass clears to.
	SetClearColor(c common.Color)

	// RegisterPipeline compiles p and stores the result on it. Depth-only pipelines target
	// the shadow map format with a single sample; the rest target the surface.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - error: error if the surface is not configured or compilation fails
	RegisterPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers uploads vertex and index data onto provider.
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup builds provider's bind group against descriptor. Missing buffers are
	// created at their minimum binding size. Texture and sampler bindings must already be set.
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// InitTextureView uploads staging pixels and stores a view at binding. Six layers make
	// a cube view.
	InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, staging common.TextureStagingData) error

	// InitSampler stores a sampler at binding. Zero staging fields take defaults.
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int, staging common.SamplerStagingData) error

	// CreateShadowMap allocates a square Depth32Float target that can also be sampled.
	//
	// Returns:
	//   - *wgpu.TextureView: the view to render into and bind
	//   - *wgpu.Texture: the texture; the caller releases both
	//   - error: error if allocation fails
	CreateShadowMap(size uint32) (*wgpu.TextureView, *wgpu.Texture, error)

	// CreateComparisonSampler creates the sampler used for filtered shadow lookups.
	CreateComparisonSampler() (*wgpu.Sampler, error)

	// WriteBuffers queues uniform updates. Writes to providers without a buffer at the
	// binding are skipped.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next swapchain image and opens the frame's command encoder.
	BeginFrame() error

	// BeginShadowPass opens a depth-only pass that clears and stores depthView.
	BeginShadowPass(depthView *wgpu.TextureView)

	// BeginMainPass opens the color pass into the swapchain image.
	BeginMainPass()

	// Draw records one draw in the open pass. A nil mesh draws a three-vertex fullscreen
	// triangle with no vertex buffers.
	//
	// Parameters:
	//   - p: a registered pipeline
	//   - mesh: the vertex and index buffers, or nil
	//   - groups: bound at indices 0..n-1
	Draw(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, groups []bind_group_provider.BindGroupProvider)

	// EndPass closes the open pass.
	EndPass()

	// EndFrame submits the frame and presents it. The swapchain image is released even
	// when encoding failed.
	EndFrame() error

	// Release frees the cached layouts, the attachments, the device and the instance.
	Release()
}

package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-waddle/common"
)

const (
	depthFormat  = wgpu.TextureFormatDepth24Plus
	shadowFormat = wgpu.TextureFormatDepth32Float
)

// wgpuBackend owns the WebGPU device and the per-surface attachments. Every method takes
// mu, so resources may be created from any goroutine while the main thread encodes.
type wgpuBackend struct {
	mu sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	presentMode wgpu.PresentMode
	samples     MSAASampleCount
	clear       wgpu.Color

	// set by ConfigureSurface
	format *wgpu.TextureFormat
	msaa   *attachment
	depth  *attachment

	// layouts caches bind group layouts by entries so groups built for one pipeline bind
	// with any other declaring the same group
	layouts map[string]*wgpu.BindGroupLayout

	frame *frameState
}

// attachment is a texture with its default view.
type attachment struct {
	tex  *wgpu.Texture
	view *wgpu.TextureView
}

func (a *attachment) release() {
	if a == nil {
		return
	}
	a.view.Release()
	a.tex.Release()
}

var _ RendererBackend = &wgpuBackend{}

// newWGPURendererBackend creates the instance, adapter and device for a surface. It panics
// when no adapter or device is available, since nothing can be drawn without one.
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, samples MSAASampleCount) *wgpuBackend {
	runtime.LockOSThread()

	b := &wgpuBackend{
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeImmediate,
		samples:     max(samples, MSAAOff),
		clear:       wgpu.Color{A: 1},
		layouts:     make(map[string]*wgpu.BindGroupLayout),
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		panic(fmt.Sprintf("wgpu: request adapter: %v", err))
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:          "oxy-waddle",
		RequiredLimits: &wgpu.RequiredLimits{Limits: wgpu.DefaultLimits()},
	})
	if err != nil {
		panic(fmt.Sprintf("wgpu: request device: %v", err))
	}
	b.device = device
	b.queue = device.GetQueue()
	return b
}

func (b *wgpuBackend) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}
	w, h := uint32(width), uint32(height)

	caps := b.surface.GetCapabilities(b.adapter)
	format := caps.Formats[0]
	b.format = &format
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       w,
		Height:      h,
		PresentMode: b.presentMode,
		AlphaMode:   caps.AlphaModes[0],
	})

	b.msaa.release()
	b.depth.release()
	b.msaa, b.depth = nil, nil

	// Depth sample count must match the color attachment.
	depth, err := b.newAttachment("Depth", w, h, uint32(b.samples), depthFormat, wgpu.TextureUsageRenderAttachment)
	if err != nil {
		panic(err)
	}
	b.depth = depth
	if b.samples > MSAAOff {
		msaa, err := b.newAttachment("MSAA Color", w, h, uint32(b.samples), format, wgpu.TextureUsageRenderAttachment)
		if err != nil {
			panic(err)
		}
		b.msaa = msaa
	}
}

// newAttachment creates a single-mip 2D texture and its view. Caller must hold mu.
func (b *wgpuBackend) newAttachment(label string, w, h, samples uint32, format wgpu.TextureFormat, usage wgpu.TextureUsage) (*attachment, error) {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("%s texture: %w", label, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("%s view: %w", label, err)
	}
	return &attachment{tex: tex, view: view}, nil
}

func (b *wgpuBackend) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.presentMode = wgpu.PresentModeImmediate
	if mode == PresentModeVSync {
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuBackend) SetClearColor(c common.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clear = wgpu.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: 1}
}

func (b *wgpuBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.abandonFrame()
	for key, layout := range b.layouts {
		layout.Release()
		delete(b.layouts, key)
	}
	b.msaa.release()
	b.depth.release()
	b.msaa, b.depth = nil, nil

	if b.queue != nil {
		b.queue.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.surface != nil {
		b.surface.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
	b.queue, b.device, b.adapter, b.surface, b.instance = nil, nil, nil, nil, nil
}

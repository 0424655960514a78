package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/pipeline"
)

// frameState is the swapchain image and encoder of the frame being recorded.
type frameState struct {
	surface *wgpu.Texture
	view    *wgpu.TextureView
	encoder *wgpu.CommandEncoder
	pass    *wgpu.RenderPassEncoder
}

func (b *wgpuBackend) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// wgpu-native refuses a second acquire before the first image is presented.
	if b.frame != nil {
		return errFrameInFlight
	}
	if b.format == nil || b.depth == nil {
		return errSurfaceUnconfigured
	}

	surface, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	view, err := surface.CreateView(nil)
	if err != nil {
		surface.Release()
		return err
	}
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surface.Release()
		return err
	}
	b.frame = &frameState{surface: surface, view: view, encoder: encoder}
	return nil
}

// endPass closes the open pass, if any. Caller must hold mu.
func (b *wgpuBackend) endPass() {
	if b.frame == nil || b.frame.pass == nil {
		return
	}
	b.frame.pass.End()
	b.frame.pass.Release()
	b.frame.pass = nil
}

func (b *wgpuBackend) BeginShadowPass(depthView *wgpu.TextureView) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frame == nil {
		return
	}
	b.endPass()
	b.frame.pass = b.frame.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1,
		},
	})
}

func (b *wgpuBackend) BeginMainPass() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frame == nil {
		return
	}
	b.endPass()

	// With MSAA the pass draws into the multisampled target and resolves into the
	// swapchain image; the samples themselves are not kept.
	color := wgpu.RenderPassColorAttachment{
		View:       b.frame.view,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: b.clear,
	}
	if b.msaa != nil {
		color.View = b.msaa.view
		color.ResolveTarget = b.frame.view
		color.StoreOp = wgpu.StoreOpDiscard
	}
	b.frame.pass = b.frame.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{color},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depth.view,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1,
		},
	})
}

func (b *wgpuBackend) Draw(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, groups []bind_group_provider.BindGroupProvider) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frame == nil || b.frame.pass == nil || p.RenderPipeline() == nil {
		return
	}
	pass := b.frame.pass
	if mesh != nil && (mesh.VertexBuffer() == nil || mesh.IndexBuffer() == nil) {
		return
	}

	pass.SetPipeline(p.RenderPipeline())
	for i, g := range groups {
		pass.SetBindGroup(uint32(i), g.BindGroup(), nil)
	}
	if mesh == nil {
		pass.Draw(3, 1, 0, 0)
		return
	}
	pass.SetVertexBuffer(0, mesh.VertexBuffer(), 0, wgpu.WholeSize)
	pass.SetIndexBuffer(mesh.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(uint32(mesh.IndexCount()), 1, 0, 0, 0)
}

func (b *wgpuBackend) EndPass() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.endPass()
}

func (b *wgpuBackend) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frame == nil {
		return errNoFrame
	}
	b.endPass()
	f := b.frame
	defer b.abandonFrame()

	commands, err := f.encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer commands.Release()
	b.queue.Submit(commands)
	b.surface.Present()
	return nil
}

// abandonFrame releases whatever the current frame still holds. Caller must hold mu.
func (b *wgpuBackend) abandonFrame() {
	f := b.frame
	if f == nil {
		return
	}
	b.endPass()
	f.encoder.Release()
	f.view.Release()
	f.surface.Release()
	b.frame = nil
}

package renderer

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-waddle/common"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/shader"
)

// layoutKey identifies a descriptor by its entries; labels do not affect compatibility.
func layoutKey(descriptor wgpu.BindGroupLayoutDescriptor) string {
	return fmt.Sprintf("%v", descriptor.Entries)
}

// bindGroupLayout returns the cached layout for descriptor, creating it on first use.
// Caller must hold mu.
func (b *wgpuBackend) bindGroupLayout(descriptor wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	key := layoutKey(descriptor)
	if layout, ok := b.layouts[key]; ok {
		return layout, nil
	}
	layout, err := b.device.CreateBindGroupLayout(&descriptor)
	if err != nil {
		return nil, err
	}
	b.layouts[key] = layout
	return layout, nil
}

// pipelineLayout lists one group layout per slot up to the highest group the shader
// declares. Gaps get the empty layout. Caller must hold mu.
func (b *wgpuBackend) pipelineLayout(label string, s shader.Shader) (*wgpu.PipelineLayout, error) {
	descriptors := s.BindGroupLayoutDescriptors()
	count := 0
	for g := range descriptors {
		count = max(count, g+1)
	}
	groups := make([]*wgpu.BindGroupLayout, count)
	for g := range groups {
		layout, err := b.bindGroupLayout(descriptors[g])
		if err != nil {
			return nil, fmt.Errorf("group %d layout: %w", g, err)
		}
		groups[g] = layout
	}
	return b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            label,
		BindGroupLayouts: groups,
	})
}

func (b *wgpuBackend) RegisterPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := p.Shader()
	if s == nil {
		return fmt.Errorf("pipeline %s has no shader", p.Key())
	}

	desc := &wgpu.RenderPipelineDescriptor{
		Label:     p.Key(),
		Primitive: p.Primitive(),
	}
	if p.DepthOnly() {
		desc.DepthStencil = p.DepthStencil(shadowFormat)
		desc.Multisample = wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF}
	} else {
		if b.format == nil {
			return errSurfaceUnconfigured
		}
		desc.DepthStencil = p.DepthStencil(depthFormat)
		desc.Multisample = wgpu.MultisampleState{Count: uint32(b.samples), Mask: 0xFFFFFFFF}
	}

	module, err := b.device.CreateShaderModule(s.Module())
	if err != nil {
		return err
	}
	defer module.Release()

	layout, err := b.pipelineLayout(p.Key(), s)
	if err != nil {
		return err
	}
	defer layout.Release()

	desc.Layout = layout
	desc.Vertex = wgpu.VertexState{
		Module:     module,
		EntryPoint: s.EntryPoint(shader.ShaderTypeVertex),
		Buffers:    s.VertexLayouts(),
	}
	if !p.DepthOnly() {
		desc.Fragment = &wgpu.FragmentState{
			Module:     module,
			EntryPoint: s.EntryPoint(shader.ShaderTypeFragment),
			Targets:    []wgpu.ColorTargetState{p.ColorTarget(*b.format)},
		}
	}

	compiled, err := b.device.CreateRenderPipeline(desc)
	if err != nil {
		return err
	}
	p.SetRenderPipeline(compiled)
	return nil
}

// upload creates a buffer sized to data and queues the copy. Caller must hold mu.
func (b *wgpuBackend) upload(label string, usage wgpu.BufferUsage, data []byte) (*wgpu.Buffer, error) {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	b.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

func (b *wgpuBackend) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(vertexData) > 0 {
		buf, err := b.upload(provider.Label()+" Vertices", wgpu.BufferUsageVertex, vertexData)
		if err != nil {
			return err
		}
		provider.SetVertexBuffer(buf)
	}
	if len(indexData) > 0 {
		buf, err := b.upload(provider.Label()+" Indices", wgpu.BufferUsageIndex, indexData)
		if err != nil {
			return err
		}
		provider.SetIndexBuffer(buf)
	}
	provider.SetIndexCount(indexCount)
	return nil
}

// bindingEntry resolves one layout entry to the provider's resource, creating a uniform or
// storage buffer when none is present. Caller must hold mu.
func (b *wgpuBackend) bindingEntry(provider bind_group_provider.BindGroupProvider, entry wgpu.BindGroupLayoutEntry) (wgpu.BindGroupEntry, error) {
	binding := int(entry.Binding)
	out := wgpu.BindGroupEntry{Binding: entry.Binding}

	switch {
	case entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
		out.TextureView = provider.TextureView(binding)
		if out.TextureView == nil {
			return out, fmt.Errorf("%s: binding %d has no texture view", provider.Label(), binding)
		}
	case entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
		out.Sampler = provider.Sampler(binding)
		if out.Sampler == nil {
			return out, fmt.Errorf("%s: binding %d has no sampler", provider.Label(), binding)
		}
	default:
		buf := provider.Buffer(binding)
		if buf == nil {
			if entry.Buffer.MinBindingSize == 0 {
				return out, fmt.Errorf("%s: binding %d has no size", provider.Label(), binding)
			}
			usage := wgpu.BufferUsageUniform
			if entry.Buffer.Type == wgpu.BufferBindingTypeStorage || entry.Buffer.Type == wgpu.BufferBindingTypeReadOnlyStorage {
				usage = wgpu.BufferUsageStorage
			}
			var err error
			buf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
				Label: fmt.Sprintf("%s %d", provider.Label(), binding),
				Size:  entry.Buffer.MinBindingSize,
				Usage: usage | wgpu.BufferUsageCopyDst,
			})
			if err != nil {
				return out, err
			}
			provider.SetBuffer(binding, buf)
		}
		out.Buffer = buf
		out.Size = wgpu.WholeSize
	}
	return out, nil
}

func (b *wgpuBackend) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(descriptor.Entries) == 0 {
		return nil
	}
	layout, err := b.bindGroupLayout(descriptor)
	if err != nil {
		return err
	}

	entries := make([]wgpu.BindGroupEntry, 0, len(descriptor.Entries))
	for _, e := range descriptor.Entries {
		entry, err := b.bindingEntry(provider, e)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}

	group, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label(),
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return err
	}
	// Rebuilding around a new shadow map replaces the old group.
	if old := provider.BindGroup(); old != nil {
		old.Release()
	}
	provider.SetBindGroup(group)
	return nil
}

func (b *wgpuBackend) InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, staging common.TextureStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	layers := max(staging.Layers, 1)
	format := common.Coalesce(staging.Format, wgpu.TextureFormatRGBA8UnormSrgb)
	if want := int(staging.Width) * int(staging.Height) * 4 * int(layers); len(staging.Pixels) != want {
		return fmt.Errorf("%s: texture has %d bytes, want %d", provider.Label(), len(staging.Pixels), want)
	}
	size := wgpu.Extent3D{Width: staging.Width, Height: staging.Height, DepthOrArrayLayers: layers}

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         provider.Label(),
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		Size:          size,
		Format:        format,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return err
	}
	// The view holds its own reference.
	defer tex.Release()

	// Layers are packed back to back, so one copy covers the cube.
	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{Texture: tex, Aspect: wgpu.TextureAspectAll},
		staging.Pixels,
		&wgpu.TextureDataLayout{BytesPerRow: staging.Width * 4, RowsPerImage: staging.Height},
		&size,
	)

	var viewDesc *wgpu.TextureViewDescriptor
	if layers == 6 {
		viewDesc = &wgpu.TextureViewDescriptor{
			Label:           provider.Label() + " Cube",
			Format:          format,
			Dimension:       wgpu.TextureViewDimensionCube,
			MipLevelCount:   1,
			ArrayLayerCount: 6,
			Aspect:          wgpu.TextureAspectAll,
		}
	}
	view, err := tex.CreateView(viewDesc)
	if err != nil {
		return err
	}
	provider.SetTextureView(binding, view)
	return nil
}

func (b *wgpuBackend) InitSampler(provider bind_group_provider.BindGroupProvider, binding int, staging common.SamplerStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         provider.Label(),
		AddressModeU:  common.Coalesce(staging.AddressModeU, wgpu.AddressModeRepeat),
		AddressModeV:  common.Coalesce(staging.AddressModeV, wgpu.AddressModeRepeat),
		AddressModeW:  common.Coalesce(staging.AddressModeW, wgpu.AddressModeRepeat),
		MagFilter:     common.Coalesce(staging.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(staging.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(staging.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   staging.LodMinClamp,
		LodMaxClamp:   common.Coalesce(staging.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(staging.MaxAnisotropy, 1),
		Compare:       staging.Compare,
	})
	if err != nil {
		return err
	}
	provider.SetSampler(binding, samp)
	return nil
}

func (b *wgpuBackend) CreateShadowMap(size uint32) (*wgpu.TextureView, *wgpu.Texture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, err := b.newAttachment("Shadow Map", size, size, 1, shadowFormat,
		wgpu.TextureUsageRenderAttachment|wgpu.TextureUsageTextureBinding)
	if err != nil {
		return nil, nil, err
	}
	return a.view, a.tex, nil
}

func (b *wgpuBackend) CreateComparisonSampler() (*wgpu.Sampler, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Shadow Compare",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		Compare:       wgpu.CompareFunctionLess,
		MaxAnisotropy: 1,
	})
}

func (b *wgpuBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		if buf := w.Provider.Buffer(w.Binding); buf != nil {
			b.queue.WriteBuffer(buf, w.Offset, w.Data)
		}
	}
}

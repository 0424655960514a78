package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// slot is the resource behind one binding index. At most one of buffer, view and sampler
// is set.
type slot struct {
	buffer  *wgpu.Buffer
	view    *wgpu.TextureView
	sampler *wgpu.Sampler
	// shared resources belong to another provider and are never released here
	shared bool
}

func (s *slot) release() {
	if s.shared {
		return
	}
	if s.buffer != nil {
		s.buffer.Release()
	}
	if s.view != nil {
		s.view.Release()
	}
	if s.sampler != nil {
		s.sampler.Release()
	}
}

type bindGroupProvider struct {
	label string
	group *wgpu.BindGroup
	slots map[int]*slot

	// mesh providers only
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int
}

// BindGroupProvider holds the GPU resources behind one bind group, or the vertex and index
// buffers of one mesh. The renderer keeps one per geometry, per scene node and per
// texture, and the backend fills them in.
//
// A binding is either owned, and freed by Release, or shared: the frame uniform buffer
// reused by the skybox group and the shadow map bound by the lit group belong to another
// provider and are only referenced.
type BindGroupProvider interface {
	// Label prefixes the debug label of every GPU object created for the provider.
	Label() string

	// BindGroup returns the group, or nil before InitBindGroup.
	BindGroup() *wgpu.BindGroup
	SetBindGroup(bg *wgpu.BindGroup)

	// Buffer, TextureView and Sampler return the resource at binding, or nil.
	Buffer(binding int) *wgpu.Buffer
	TextureView(binding int) *wgpu.TextureView
	Sampler(binding int) *wgpu.Sampler

	// SetBuffer, SetTextureView and SetSampler store an owned resource at binding. Whatever
	// the binding held before is dropped without being released.
	SetBuffer(binding int, buf *wgpu.Buffer)
	SetTextureView(binding int, tv *wgpu.TextureView)
	SetSampler(binding int, s *wgpu.Sampler)

	// ShareBuffer, ShareTextureView and ShareSampler store a resource owned elsewhere.
	ShareBuffer(binding int, buf *wgpu.Buffer)
	ShareTextureView(binding int, tv *wgpu.TextureView)
	ShareSampler(binding int, s *wgpu.Sampler)

	// Shared reports whether binding holds a resource owned elsewhere.
	Shared(binding int) bool

	// Bindings reports how many binding indices hold a resource.
	Bindings() int

	VertexBuffer() *wgpu.Buffer
	IndexBuffer() *wgpu.Buffer
	IndexCount() int
	SetVertexBuffer(buf *wgpu.Buffer)
	SetIndexBuffer(buf *wgpu.Buffer)
	SetIndexCount(count int)

	// Release frees the group and every owned resource, then forgets all bindings.
	Release()
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider.
//
// Parameters:
//   - label: debug label for the provider's GPU objects
//   - options: shared resources to reference
//
// Returns:
//   - BindGroupProvider: the provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{label: label, slots: make(map[int]*slot)}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string                   { return p.label }
func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup      { return p.group }
func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) { p.group = bg }

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	if s, ok := p.slots[binding]; ok {
		return s.buffer
	}
	return nil
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	if s, ok := p.slots[binding]; ok {
		return s.view
	}
	return nil
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	if s, ok := p.slots[binding]; ok {
		return s.sampler
	}
	return nil
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.slots[binding] = &slot{buffer: buf}
}

func (p *bindGroupProvider) SetTextureView(binding int, tv *wgpu.TextureView) {
	p.slots[binding] = &slot{view: tv}
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	p.slots[binding] = &slot{sampler: s}
}

func (p *bindGroupProvider) ShareBuffer(binding int, buf *wgpu.Buffer) {
	p.slots[binding] = &slot{buffer: buf, shared: true}
}

func (p *bindGroupProvider) ShareTextureView(binding int, tv *wgpu.TextureView) {
	p.slots[binding] = &slot{view: tv, shared: true}
}

func (p *bindGroupProvider) ShareSampler(binding int, s *wgpu.Sampler) {
	p.slots[binding] = &slot{sampler: s, shared: true}
}

func (p *bindGroupProvider) Shared(binding int) bool {
	s, ok := p.slots[binding]
	return ok && s.shared
}

func (p *bindGroupProvider) Bindings() int { return len(p.slots) }

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer       { return p.vertexBuffer }
func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer        { return p.indexBuffer }
func (p *bindGroupProvider) IndexCount() int                  { return p.indexCount }
func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) { p.vertexBuffer = buf }
func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer)  { p.indexBuffer = buf }
func (p *bindGroupProvider) SetIndexCount(count int)          { p.indexCount = count }

func (p *bindGroupProvider) Release() {
	// The group references the slot resources, so it goes first.
	if p.group != nil {
		p.group.Release()
		p.group = nil
	}
	for binding, s := range p.slots {
		s.release()
		delete(p.slots, binding)
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.indexCount = 0
}

package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/shader"
)

// alphaBlend is straight alpha blending, used by every blended pipeline.
var alphaBlend = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

type pipeline struct {
	key    string
	shader shader.Shader

	// compiled is nil until the backend registers the pipeline
	compiled *wgpu.RenderPipeline

	depthTest  bool
	depthWrite bool
	depthBias  int32
	slopeScale float32
	blend      bool
	cullMode   wgpu.CullMode
}

// Pipeline is the fixed-function state for one kind of draw, plus the shader it runs.
// The backend turns it into a compiled WebGPU pipeline on registration.
type Pipeline interface {
	// Key names the pipeline in the renderer's cache.
	Key() string

	// Shader returns the module holding the pipeline's entry points, or nil.
	Shader() shader.Shader

	// DepthOnly reports whether the pipeline has no color target, which is the case when
	// its shader has no fragment entry point.
	DepthOnly() bool

	// Blended reports whether the color target alpha-blends.
	Blended() bool

	// Primitive describes triangle assembly for the pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveState: counter-clockwise triangle lists with the configured cull mode
	Primitive() wgpu.PrimitiveState

	// ColorTarget describes the single color attachment.
	//
	// Parameters:
	//   - format: the surface format
	//
	// Returns:
	//   - wgpu.ColorTargetState: the target, with alpha blending when enabled
	ColorTarget(format wgpu.TextureFormat) wgpu.ColorTargetState

	// DepthStencil describes depth testing against an attachment of the given format.
	// Stencil is unused.
	//
	// Parameters:
	//   - format: the depth attachment format
	//
	// Returns:
	//   - *wgpu.DepthStencilState: the depth state
	DepthStencil(format wgpu.TextureFormat) *wgpu.DepthStencilState

	// RenderPipeline returns the compiled pipeline, or nil before registration.
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline stores the compiled pipeline.
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release frees the compiled pipeline.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a pipeline description.
// Depth test and write are on, culling is off, and blending is off.
//
// Parameters:
//   - key: the cache key
//   - opts: builder options
//
// Returns:
//   - Pipeline: the configured pipeline
func NewPipeline(key string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		key:        key,
		depthTest:  true,
		depthWrite: true,
		cullMode:   wgpu.CullModeNone,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) Key() string {
	return p.key
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) DepthOnly() bool {
	return p.shader == nil || p.shader.EntryPoint(shader.ShaderTypeFragment) == ""
}

func (p *pipeline) Blended() bool {
	return p.blend
}

func (p *pipeline) Primitive() wgpu.PrimitiveState {
	return wgpu.PrimitiveState{
		Topology:  wgpu.PrimitiveTopologyTriangleList,
		FrontFace: wgpu.FrontFaceCCW,
		CullMode:  p.cullMode,
	}
}

func (p *pipeline) ColorTarget(format wgpu.TextureFormat) wgpu.ColorTargetState {
	t := wgpu.ColorTargetState{Format: format, WriteMask: wgpu.ColorWriteMaskAll}
	if p.blend {
		b := alphaBlend
		t.Blend = &b
	}
	return t
}

func (p *pipeline) DepthStencil(format wgpu.TextureFormat) *wgpu.DepthStencilState {
	compare := wgpu.CompareFunctionLess
	if !p.depthTest {
		compare = wgpu.CompareFunctionAlways
	}
	return &wgpu.DepthStencilState{
		Format:              format,
		DepthWriteEnabled:   p.depthWrite,
		DepthCompare:        compare,
		DepthBias:           p.depthBias,
		DepthBiasSlopeScale: p.slopeScale,
		StencilFront:        wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		StencilBack:         wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
	}
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.compiled
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.compiled = rp
}

func (p *pipeline) Release() {
	if p.compiled != nil {
		p.compiled.Release()
		p.compiled = nil
	}
}

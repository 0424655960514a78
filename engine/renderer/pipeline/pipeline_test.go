package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/shader"
)

const depthOnlySource = `
@vertex
fn vs_main(@builtin(vertex_index) i: u32) -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 0.0, 1.0);
}
`

func TestDefaults(t *testing.T) {
	p := NewPipeline("default")
	ds := p.DepthStencil(wgpu.TextureFormatDepth24Plus)
	if ds.DepthCompare != wgpu.CompareFunctionLess || !ds.DepthWriteEnabled {
		t.Errorf("depth compare/write = %v/%v, want less/true", ds.DepthCompare, ds.DepthWriteEnabled)
	}
	if ds.Format != wgpu.TextureFormatDepth24Plus {
		t.Errorf("depth format = %v", ds.Format)
	}
	if prim := p.Primitive(); prim.CullMode != wgpu.CullModeNone || prim.Topology != wgpu.PrimitiveTopologyTriangleList {
		t.Errorf("primitive = %+v, want uncull triangle list", prim)
	}
	if target := p.ColorTarget(wgpu.TextureFormatBGRA8Unorm); target.Blend != nil || p.Blended() {
		t.Errorf("blend enabled by default")
	}
	if !p.DepthOnly() {
		t.Errorf("pipeline without a shader should be depth-only")
	}
	if p.RenderPipeline() != nil {
		t.Errorf("render pipeline set before registration")
	}
}

func TestOptions(t *testing.T) {
	s := shader.MustShader("shadow", depthOnlySource)
	tests := []struct {
		name  string
		opts  []PipelineBuilderOption
		check func(t *testing.T, p Pipeline)
	}{
		{
			name: "shadow",
			opts: []PipelineBuilderOption{WithShader(s), WithCullMode(wgpu.CullModeBack), WithDepthBias(2, 1.5)},
			check: func(t *testing.T, p Pipeline) {
				if p.Shader() != s || !p.DepthOnly() {
					t.Errorf("vertex-only shader should give a depth-only pipeline")
				}
				if p.Primitive().CullMode != wgpu.CullModeBack {
					t.Errorf("cull mode = %v, want back", p.Primitive().CullMode)
				}
				ds := p.DepthStencil(wgpu.TextureFormatDepth32Float)
				if ds.DepthBias != 2 || ds.DepthBiasSlopeScale != 1.5 {
					t.Errorf("depth bias = %d/%v, want 2/1.5", ds.DepthBias, ds.DepthBiasSlopeScale)
				}
			},
		},
		{
			name: "skybox",
			opts: []PipelineBuilderOption{WithDepthTestEnabled(false), WithDepthWriteEnabled(false)},
			check: func(t *testing.T, p Pipeline) {
				ds := p.DepthStencil(wgpu.TextureFormatDepth24Plus)
				if ds.DepthCompare != wgpu.CompareFunctionAlways || ds.DepthWriteEnabled {
					t.Errorf("depth compare/write = %v/%v, want always/false", ds.DepthCompare, ds.DepthWriteEnabled)
				}
			},
		},
		{
			name: "blended",
			opts: []PipelineBuilderOption{WithBlendEnabled(true)},
			check: func(t *testing.T, p Pipeline) {
				target := p.ColorTarget(wgpu.TextureFormatBGRA8Unorm)
				if target.Blend == nil || target.Blend.Color.SrcFactor != wgpu.BlendFactorSrcAlpha {
					t.Errorf("blend = %+v, want straight alpha", target.Blend)
				}
				if target.WriteMask != wgpu.ColorWriteMaskAll {
					t.Errorf("write mask = %v", target.WriteMask)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NewPipeline(tt.name, tt.opts...))
		})
	}
}

func TestColorTargetCopiesBlend(t *testing.T) {
	p := NewPipeline("lit", WithBlendEnabled(true))
	a := p.ColorTarget(wgpu.TextureFormatBGRA8Unorm)
	a.Blend.Color.SrcFactor = wgpu.BlendFactorZero
	if b := p.ColorTarget(wgpu.TextureFormatBGRA8Unorm); b.Blend.Color.SrcFactor != wgpu.BlendFactorSrcAlpha {
		t.Errorf("mutating one target changed the shared blend state")
	}
}

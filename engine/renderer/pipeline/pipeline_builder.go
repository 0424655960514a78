package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/shader"
)

// PipelineBuilderOption configures a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithShader sets the module whose entry points the pipeline runs. A module without a
// fragment entry point makes the pipeline depth-only.
func WithShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.shader = s
	}
}

// WithDepthTestEnabled toggles the depth comparison. When off every fragment passes.
func WithDepthTestEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthTest = enabled
	}
}

// WithDepthWriteEnabled toggles writes to the depth attachment.
func WithDepthWriteEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthWrite = enabled
	}
}

// WithDepthBias offsets written depth, mostly to fight shadow acne.
//
// Parameters:
//   - bias: constant bias in depth units
//   - slopeScale: bias scaled by the polygon's depth slope
func WithDepthBias(bias int32, slopeScale float32) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthBias = bias
		p.slopeScale = slopeScale
	}
}

// WithBlendEnabled turns on straight alpha blending for the color target.
func WithBlendEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blend = enabled
	}
}

// WithCullMode sets which triangle faces are discarded.
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

package renderer

// RendererBuilderOption configures a renderer before its backend is created.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the initial present mode.
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithMSAA sets the main pass sample count. The default is MSAA4x.
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingMSAA = &count
	}
}

// WithForceSoftwareRenderer asks for the fallback adapter instead of a hardware GPU. A
// software Vulkan driver (lavapipe, SwiftShader) must be installed.
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

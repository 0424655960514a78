package shader

// ShaderBuilderOption is a functional option applied to a shader during NewShader.
type ShaderBuilderOption func(*shader)

// WithInclude registers an extra include snippet for this shader only.
//
// Parameters:
//   - name: the include name used after //@oxy:include
//   - source: the WGSL snippet
//
// Returns:
//   - ShaderBuilderOption: a function that registers the snippet
func WithInclude(name, source string) ShaderBuilderOption {
	return func(s *shader) {
		s.pp.Register(name, source)
	}
}

package shader

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrNoVertexEntry is returned for modules without a @vertex function.
var ErrNoVertexEntry = errors.New("no @vertex entry point")

// ShaderType identifies a programmable stage of a render pipeline.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex stage.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment stage.
	ShaderTypeFragment
)

// shader is the implementation of the Shader interface.
// It holds a pre-processed WGSL module and the layout metadata reflected from it.
type shader struct {
	pp PreProcessor

	key    string
	source string
	module *wgpu.ShaderModuleDescriptor

	vertexEntry   string
	fragmentEntry string

	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayouts              []wgpu.VertexBufferLayout
	structSizes                map[string]wgslTypeLayout
}

// Shader is a WGSL module holding a vertex entry point and an optional fragment entry
// point, together with the bind group and vertex buffer layouts reflected from its source.
// Pipelines build their GPU layouts from these descriptors so Go code never repeats them.
type Shader interface {
	// Key returns the unique identifier for this shader.
	//
	// Returns:
	//   - string: the shader's key
	Key() string

	// Source returns the pre-processed WGSL source.
	//
	// Returns:
	//   - string: the WGSL source code
	Source() string

	// Module returns the shader module descriptor used to compile the source.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the descriptor
	Module() *wgpu.ShaderModuleDescriptor

	// EntryPoint returns the function name of a stage, or "" if the module has none.
	//
	// Parameters:
	//   - stage: the stage to look up
	//
	// Returns:
	//   - string: the entry point name
	EntryPoint(stage ShaderType) string

	// BindGroupLayoutDescriptors returns the reflected layouts keyed by group index.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptor returns the reflected layout of one group.
	//
	// Parameters:
	//   - group: the group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, empty if the group is unused
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName returns the variable declared at a group and binding.
	//
	// Parameters:
	//   - group: the group index
	//   - binding: the binding index
	//
	// Returns:
	//   - string: the variable name, or "" if nothing is declared there
	BindGroupVarName(group, binding int) string

	// VertexLayouts returns the vertex buffer layouts indexed by buffer slot.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts
	VertexLayouts() []wgpu.VertexBufferLayout

	// StructSize returns the uniform-buffer size of a struct declared in the module.
	//
	// Parameters:
	//   - name: the struct name
	//
	// Returns:
	//   - uint64: the size in bytes
	//   - bool: false if the struct is unknown or could not be sized
	StructSize(name string) (uint64, bool)
}

var _ Shader = &shader{}

// NewShader pre-processes and reflects a WGSL module.
//
// Every reflected entry is visible to both stages, so modules that declare the same group
// produce identical layouts and can share bind groups.
//
// Parameters:
//   - key: a unique identifier, used as the module label
//   - source: WGSL source, which may contain include directives
//   - options: functional options applied before pre-processing
//
// Returns:
//   - Shader: the reflected shader
//   - error: an error if pre-processing fails or the module has no vertex entry point
func NewShader(key, source string, options ...ShaderBuilderOption) (Shader, error) {
	s := &shader{
		pp:  NewPreProcessor(),
		key: key,
	}
	for _, opt := range options {
		opt(s)
	}

	processed, err := s.pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	s.source = processed
	s.module = &wgpu.ShaderModuleDescriptor{
		Label:          key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: processed},
	}

	cleaned := stripComments(processed)
	s.vertexEntry, s.fragmentEntry = parseEntryPoints(cleaned)
	if s.vertexEntry == "" {
		return nil, fmt.Errorf("shader %s: %w", key, ErrNoVertexEntry)
	}

	visibility := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	structs := parseStructBlocks(cleaned)
	s.structSizes = computeStructSizes(structs)
	s.vertexLayouts = parseVertexLayouts(structs)
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(cleaned, structs, visibility)
	return s, nil
}

// MustShader is NewShader for embedded sources that are known to be valid.
// It panics on error.
func MustShader(key, source string, options ...ShaderBuilderOption) Shader {
	s, err := NewShader(key, source, options...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) EntryPoint(stage ShaderType) string {
	switch stage {
	case ShaderTypeVertex:
		return s.vertexEntry
	case ShaderTypeFragment:
		return s.fragmentEntry
	default:
		return ""
	}
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupVarName(group, binding int) string {
	return s.bindingVarNames[group][binding]
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) StructSize(name string) (uint64, bool) {
	l, ok := s.structSizes[name]
	return l.size, ok
}

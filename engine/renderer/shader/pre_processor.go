package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-waddle/engine/camera"
	"github.com/Carmen-Shannon/oxy-waddle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-waddle/engine/light"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/material"
)

// includePrefix marks a line that is replaced by a registered WGSL snippet.
//
// Syntax: //@oxy:include <name>
const includePrefix = "//@oxy:include"

// PreProcessor expands include directives in WGSL source. Includes pull in the struct
// definitions that mirror Go GPU types, so the Go and WGSL layouts have one source each.
type PreProcessor interface {
	// Process replaces every include line with the registered snippet.
	//
	// Parameters:
	//   - source: WGSL source that may contain include directives
	//
	// Returns:
	//   - string: the expanded source
	//   - error: an error naming the line of a malformed or unknown include
	Process(source string) (string, error)

	// Register adds or replaces a snippet.
	//
	// Parameters:
	//   - name: the include name
	//   - source: the WGSL snippet
	Register(name, source string)
}

type preProcessor struct {
	registry map[string]string
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor returns a PreProcessor with the engine's GPU struct definitions registered:
// camera, light, material and vertex.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		registry: map[string]string{
			"camera":   camera.GPUCameraUniformSource,
			"light":    light.GPULightSource,
			"material": material.GPUMaterialParamsSource,
			"vertex":   geometry.GPUVertexSource,
		},
	}
}

func (p *preProcessor) Register(name, source string) {
	p.registry[name] = source
}

func (p *preProcessor) Process(source string) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	included := make(map[string]bool)

	for i, line := range lines {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), includePrefix)
		if !ok {
			out = append(out, line)
			continue
		}
		args := strings.Fields(rest)
		if len(args) != 1 {
			return "", fmt.Errorf("line %d: include takes exactly one name", i+1)
		}
		snippet, ok := p.registry[args[0]]
		if !ok {
			return "", fmt.Errorf("line %d: unknown include %q", i+1, args[0])
		}
		// A struct may only be declared once per module.
		if included[args[0]] {
			continue
		}
		included[args[0]] = true
		out = append(out, snippet)
	}
	return strings.Join(out, "\n"), nil
}

package renderer

import (
	_ "embed"

	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/shader"
)

// frameSource declares SceneParams and ObjectUniform for the lit and shadow modules.
//
//go:embed shaders/frame.wgsl
var frameSource string

//go:embed shaders/lit.wgsl
var litSource string

//go:embed shaders/shadow.wgsl
var shadowSource string

//go:embed shaders/skybox.wgsl
var skyboxSource string

// Pipeline keys.
const (
	pipelineLit       = "lit"
	pipelineLitDouble = "lit_double"
	pipelineShadow    = "shadow"
	pipelineSkybox    = "skybox"
)

// Bind group indices shared by the lit, shadow and skybox modules.
const (
	groupFrame    = 0
	groupObject   = 1
	groupMaterial = 2
	groupSky      = 1
)

// Bindings inside the frame group of the lit module.
const (
	bindingCamera        = 0
	bindingLights        = 1
	bindingScene         = 2
	bindingShadowMap     = 3
	bindingShadowSampler = 4
)

// newLitShader, newShadowShader and newSkyboxShader compile the embedded modules. The
// sources ship with the binary, so a failure is a programming error.
func newLitShader() shader.Shader {
	return shader.MustShader(pipelineLit, litSource, shader.WithInclude("frame", frameSource))
}

func newShadowShader() shader.Shader {
	return shader.MustShader(pipelineShadow, shadowSource, shader.WithInclude("frame", frameSource))
}

func newSkyboxShader() shader.Shader {
	return shader.MustShader(pipelineSkybox, skyboxSource)
}

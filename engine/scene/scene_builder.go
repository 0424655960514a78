package scene

import (
	"github.com/Carmen-Shannon/oxy-waddle/common"
	"github.com/Carmen-Shannon/oxy-waddle/engine/light"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/material"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithRenderer attaches the renderer the scene draws through.
func WithRenderer(r renderer.Renderer) SceneBuilderOption {
	return func(s *scene) {
		s.r = r
	}
}

// WithNodes adds initial nodes under the root.
//
// Parameters:
//   - nodes: the nodes to attach
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithNodes(nodes ...*Node) SceneBuilderOption {
	return func(s *scene) {
		for _, n := range nodes {
			s.root.Add(n)
		}
	}
}

// WithLights adds initial lights.
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		for _, l := range lights {
			if l != nil {
				s.lights = append(s.lights, l)
			}
		}
	}
}

// WithBackground sets the clear color.
func WithBackground(c common.Color) SceneBuilderOption {
	return func(s *scene) {
		s.background = c
	}
}

// WithFog enables linear fog.
//
// Parameters:
//   - c: the fog color
//   - near: view distance where fog starts
//   - far: view distance where fog is total
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFog(c common.Color, near, far float32) SceneBuilderOption {
	return func(s *scene) {
		s.fog = &renderer.Fog{Color: c, Near: near, Far: far}
	}
}

// WithSkybox sets the environment cube texture.
func WithSkybox(c *material.CubeTexture) SceneBuilderOption {
	return func(s *scene) {
		s.skybox = c
	}
}

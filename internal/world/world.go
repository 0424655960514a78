// Package world assembles the static part of the penguin scene: fog, ground, skybox,
// lights, scattered primitives and the orbit camera.
package world

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"

	"github.com/Carmen-Shannon/oxy-waddle/common"
	"github.com/Carmen-Shannon/oxy-waddle/engine/async"
	"github.com/Carmen-Shannon/oxy-waddle/engine/camera"
	"github.com/Carmen-Shannon/oxy-waddle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-waddle/engine/light"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-waddle/engine/scene"
)

// TextureLoader decodes images in the background. Futures must resolve on the frame loop
// thread.
type TextureLoader interface {
	LoadTextureAsync(path string) *async.Future[*material.Texture]
	LoadCubeTextureAsync(paths [6]string) *async.Future[*material.CubeTexture]
}

// World is the assembled scene plus handles to the parts callers touch later.
type World struct {
	Scene  scene.Scene
	Camera camera.Camera
	Ground *scene.Node
	Shapes []*scene.Node

	Ambient light.Light
	Sun     light.Light
	Point   light.Light

	// GroundTexture and Skybox resolve once the images are applied. They are nil when
	// Build had no texture loader.
	GroundTexture *async.Future[*material.Texture]
	Skybox        *async.Future[*material.CubeTexture]
}

// Build assembles the scene.
//
// Parameters:
//   - cfg: scene description
//   - aspect: window width over height
//   - rng: source for shape placement and colors
//   - textures: image loader; nil leaves the ground untextured and the sky plain
//
// Returns:
//   - *World: the assembled world
func Build(cfg Config, aspect float32, rng *rand.Rand, textures TextureLoader) *World {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	w := &World{}

	w.Camera = newCamera(cfg.Camera, aspect)
	w.Ambient = light.NewLight(light.LightTypeAmbient,
		light.WithHexColor(cfg.Ambient.Color),
		light.WithIntensity(cfg.Ambient.Intensity),
	)
	w.Sun = light.NewLight(light.LightTypeDirectional,
		light.WithHexColor(cfg.Sun.Color),
		light.WithIntensity(cfg.Sun.Intensity),
		light.WithPosition(cfg.Sun.Position),
		light.WithTarget(cfg.Sun.Target),
		light.WithCastsShadows(cfg.Sun.CastsShadows),
		light.WithShadow(shadowConfig(cfg.Sun)),
	)
	w.Point = light.NewLight(light.LightTypePoint,
		light.WithHexColor(cfg.Point.Color),
		light.WithIntensity(cfg.Point.Intensity),
		light.WithPosition(cfg.Point.Position),
		light.WithDistance(cfg.Point.Distance),
		light.WithCastsShadows(cfg.Point.CastsShadows),
		light.WithShadow(shadowConfig(cfg.Point)),
	)

	w.Ground = newGround(cfg.Ground)
	w.Shapes = scatterShapes(cfg.Shapes, rng)

	w.Scene = scene.NewScene("waddle", w.Camera,
		scene.WithBackground(common.ColorFromHex(cfg.Background)),
		scene.WithFog(common.ColorFromHex(cfg.Fog.Color), cfg.Fog.Near, cfg.Fog.Far),
		scene.WithLights(w.Ambient, w.Sun, w.Point),
		scene.WithNodes(w.Ground),
		scene.WithNodes(w.Shapes...),
	)

	if textures != nil {
		w.loadGroundTexture(cfg.Ground, textures)
		w.loadSkybox(cfg.Skybox, textures)
	}
	return w
}

func newCamera(cfg Camera, aspect float32) camera.Camera {
	ctrl := camera.NewOrbitController(
		camera.WithTarget(cfg.Target),
		camera.WithStartPosition(cfg.Position),
		camera.WithDamping(cfg.Damping),
	)
	return camera.NewCamera(
		camera.WithFovDegrees(cfg.FovDegrees),
		camera.WithAspect(aspect),
		camera.WithNear(cfg.Near),
		camera.WithFar(cfg.Far),
		camera.WithController(ctrl),
	)
}

func shadowConfig(l Light) light.ShadowConfig {
	return light.ShadowConfig{
		MapSize: l.ShadowMap,
		Bias:    l.ShadowBias,
		Near:    l.ShadowNear,
		Far:     l.ShadowFar,
	}
}

func newGround(cfg Ground) *scene.Node {
	return scene.NewMeshNode("ground",
		geometry.NewPlane(cfg.Size, cfg.Size, 1, 1),
		material.NewMaterial(material.WithName("ground"), material.WithSide(material.SideDouble)),
		scene.WithRotation(ms3.Vec{X: -math32.Pi / 2}),
		scene.WithShadows(false, true),
	)
}

// scatterShapes places the boxes, then the spheres, then the cylinders. Each shape draws
// its color before its position.
func scatterShapes(cfg Shapes, rng *rand.Rand) []*scene.Node {
	kinds := []struct {
		name  string
		count int
		geo   func() *geometry.Geometry
	}{
		{"box", cfg.Boxes, func() *geometry.Geometry {
			return geometry.NewBox(cfg.BoxSize, cfg.BoxSize, cfg.BoxSize)
		}},
		{"sphere", cfg.Spheres, func() *geometry.Geometry {
			return geometry.NewSphere(cfg.SphereRadius, cfg.Segments, cfg.Segments)
		}},
		{"cylinder", cfg.Cylinders, func() *geometry.Geometry {
			return geometry.NewCylinder(cfg.CylinderRadius, cfg.CylinderRadius, cfg.CylinderHeight, cfg.Segments)
		}},
	}

	var shapes []*scene.Node
	for _, k := range kinds {
		if k.count <= 0 {
			continue
		}
		geo := k.geo()
		for i := range k.count {
			color := common.Color{R: rng.Float32(), G: rng.Float32(), B: rng.Float32()}
			pos := ms3.Vec{
				X: (rng.Float32()*2 - 1) * cfg.Spread,
				Y: cfg.Height,
				Z: (rng.Float32()*2 - 1) * cfg.Spread,
			}
			name := fmt.Sprintf("%s-%d", k.name, i)
			shapes = append(shapes, scene.NewMeshNode(name, geo,
				material.NewMaterial(material.WithName(name), material.WithColor(color)),
				scene.WithPosition(pos),
				scene.WithShadows(true, true),
			))
		}
	}
	return shapes
}

func (w *World) loadGroundTexture(cfg Ground, textures TextureLoader) {
	if cfg.Texture == "" {
		return
	}
	repeat := float32(1)
	if cfg.TileSize > 0 {
		repeat = cfg.Size / cfg.TileSize
	}
	ground := w.Ground
	w.GroundTexture = textures.LoadTextureAsync(cfg.Texture)
	w.GroundTexture.OnResolve(func(tex *material.Texture, err error) {
		if err != nil {
			log.Printf("[World] ground texture %s: %v", cfg.Texture, err)
			return
		}
		tex.WrapS, tex.WrapT = material.WrapRepeat, material.WrapRepeat
		tex.MagFilter = material.FilterNearest
		tex.SRGB = true
		tex.Repeat = [2]float32{repeat, repeat}
		ground.Mesh.Material.SetTexture(tex)
	})
}

func (w *World) loadSkybox(faces [6]string, textures TextureLoader) {
	if faces[0] == "" {
		return
	}
	s := w.Scene
	w.Skybox = textures.LoadCubeTextureAsync(faces)
	w.Skybox.OnResolve(func(cube *material.CubeTexture, err error) {
		if err != nil {
			log.Printf("[World] skybox: %v", err)
			return
		}
		s.SetSkybox(cube)
	})
}

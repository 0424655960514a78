package renderer

import (
	"sort"

	"github.com/soypat/geometry/ms3"

	"github.com/Carmen-Shannon/oxy-waddle/common"
	"github.com/Carmen-Shannon/oxy-waddle/engine/camera"
	"github.com/Carmen-Shannon/oxy-waddle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-waddle/engine/light"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/material"
)

// Fog is linear distance fog. Fragments closer than Near are unaffected and fragments
// farther than Far take Color entirely.
type Fog struct {
	Color common.Color
	Near  float32
	Far   float32
}

// DrawItem is one mesh to draw this frame.
type DrawItem struct {
	// Key identifies the per-object GPU resources; the scene uses the node ID.
	Key           uint64
	Geometry      *geometry.Geometry
	Material      material.Material
	World         common.Mat4
	CastShadow    bool
	ReceiveShadow bool
}

// FrameData is everything the renderer needs to draw one frame. It is assembled by the
// scene each frame and is not retained after Render returns.
type FrameData struct {
	Camera     camera.Camera
	Lights     []light.Light
	Fog        *Fog
	Background common.Color
	// Skybox replaces Background when set.
	Skybox *material.CubeTexture
	Draws  []DrawItem
}

// packedFrame is the CPU side of the per-frame uniforms.
type packedFrame struct {
	camera        camera.GPUCameraUniform
	lights        []byte
	scene         GPUSceneParams
	clear         common.Color
	shadowSize    uint32
	shadowEnabled bool
}

// packFrame converts frame state into GPU-ready blocks.
//
// Parameters:
//   - f: the frame to pack; f.Camera must be non-nil
//
// Returns:
//   - packedFrame: the packed uniforms
func packFrame(f *FrameData) packedFrame {
	p := packedFrame{
		camera:     camera.NewGPUCameraUniform(f.Camera),
		lights:     light.MarshalLightBuffer(f.Lights),
		clear:      f.Background,
		shadowSize: light.ShadowMapResolution,
	}

	if f.Fog != nil && f.Fog.Far > f.Fog.Near {
		p.scene.FogColor = [3]float32{f.Fog.Color.R, f.Fog.Color.G, f.Fog.Color.B}
		p.scene.FogNear = f.Fog.Near
		p.scene.FogFar = f.Fog.Far
		p.scene.FogEnabled = 1
	}

	if caster := light.ShadowCaster(f.Lights); caster != nil {
		cfg := caster.Shadow()
		size := common.Coalesce(cfg.MapSize, light.ShadowMapResolution)
		p.scene.LightViewProj = light.DirectionalViewProj(caster)
		p.scene.ShadowBias = cfg.Bias
		p.scene.ShadowEnabled = 1
		p.scene.ShadowTexel = 1 / float32(size)
		p.shadowSize = size
		p.shadowEnabled = true
	}
	return p
}

// packObject builds the per-draw uniform block.
//
// Parameters:
//   - d: the draw item
//   - shadows: whether a shadow map was rendered this frame
//
// Returns:
//   - GPUObjectUniform: the packed block
func packObject(d DrawItem, shadows bool) GPUObjectUniform {
	u := GPUObjectUniform{
		Model:    d.World,
		Normal:   d.World.NormalMatrix(),
		Material: material.Params(d.Material),
	}
	if shadows && d.ReceiveShadow {
		u.ReceiveShadow = 1
	}
	return u
}

// transparent reports whether a material needs blending and back-to-front ordering.
func transparent(m material.Material) bool {
	return m.Opacity() < 1
}

// orderDraws returns the drawable items with opaque items first in submission order,
// followed by transparent items sorted far to near from eye.
//
// Parameters:
//   - draws: the frame's draw list
//   - eye: world-space camera position
//
// Returns:
//   - []DrawItem: the ordered list; items without geometry, indices or material are dropped
func orderDraws(draws []DrawItem, eye ms3.Vec) []DrawItem {
	out := make([]DrawItem, 0, len(draws))
	var blended []DrawItem
	for _, d := range draws {
		if d.Geometry == nil || d.Material == nil || len(d.Geometry.Indices()) == 0 {
			continue
		}
		if transparent(d.Material) {
			blended = append(blended, d)
			continue
		}
		out = append(out, d)
	}
	dist := func(d DrawItem) float32 {
		v := ms3.Sub(d.World.Translation(), eye)
		return ms3.Dot(v, v)
	}
	sort.SliceStable(blended, func(i, j int) bool {
		return dist(blended[i]) > dist(blended[j])
	})
	return append(out, blended...)
}

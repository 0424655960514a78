package light

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"

	"github.com/Carmen-Shannon/oxy-waddle/common"
)

// ShadowMapResolution is the default width and height in texels of the shadow
// depth texture.
const ShadowMapResolution = 2048

// DefaultShadowHalfExtent is the default orthographic half-extent (in world units)
// of the directional light shadow frustum.
const DefaultShadowHalfExtent float32 = 40.0

// DefaultShadowNear is the default near plane of the shadow projection.
const DefaultShadowNear float32 = 0.1

// DefaultShadowFar is the default far plane of the shadow projection.
const DefaultShadowFar float32 = 200.0

// ShadowConfig describes the shadow camera of a shadow-casting light.
type ShadowConfig struct {
	// MapSize is the width and height of the depth texture in texels.
	MapSize uint32
	// Bias is added to the fragment depth before the shadow comparison.
	// Negative values push shadows away from surfaces.
	Bias float32
	// Near and Far bound the shadow camera's depth range.
	Near, Far float32
	// HalfExtent is the half-size of the orthographic shadow frustum in world units.
	HalfExtent float32
}

// DefaultShadowConfig returns the package defaults.
func DefaultShadowConfig() ShadowConfig {
	return ShadowConfig{
		MapSize:    ShadowMapResolution,
		Near:       DefaultShadowNear,
		Far:        DefaultShadowFar,
		HalfExtent: DefaultShadowHalfExtent,
	}
}

// DirectionalViewProj builds the orthographic view-projection matrix of a directional
// light's shadow camera, looking from the light's position toward its target.
//
// Parameters:
//   - l: the directional light
//
// Returns:
//   - common.Mat4: the light-space view-projection matrix
func DirectionalViewProj(l Light) common.Mat4 {
	up := ms3.Vec{Y: 1}
	if math32.Abs(l.Direction().Y) > 0.99 {
		up = ms3.Vec{X: 1}
	}
	view := common.LookAt(l.Position(), l.Target(), up)
	s := l.Shadow()
	h := s.HalfExtent
	return common.Orthographic(-h, h, -h, h, s.Near, s.Far).Mul(view)
}

// ShadowCaster returns the first enabled directional light that casts shadows, or nil.
//
// Parameters:
//   - lights: candidate lights
//
// Returns:
//   - Light: the shadow-casting directional light, or nil
func ShadowCaster(lights []Light) Light {
	for _, l := range lights {
		if l.Enabled() && l.CastsShadows() && l.Type() == LightTypeDirectional {
			return l
		}
	}
	return nil
}

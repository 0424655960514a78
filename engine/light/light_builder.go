package light

import (
	"github.com/soypat/geometry/ms3"

	"github.com/Carmen-Shannon/oxy-waddle/common"
)

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - p: the position
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(p ms3.Vec) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = p
	}
}

// WithTarget is an option builder that sets the point a directional light shines toward.
//
// Parameters:
//   - t: the target position
//
// Returns:
//   - LightBuilderOption: a function that applies the target option to a lightImpl
func WithTarget(t ms3.Vec) LightBuilderOption {
	return func(l *lightImpl) {
		l.target = t
	}
}

// WithColor is an option builder that sets the RGB color of the light.
//
// Parameters:
//   - c: the light color
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(c common.Color) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = c
	}
}

// WithHexColor sets the light color from a 0xRRGGBB value.
func WithHexColor(hex uint32) LightBuilderOption {
	return WithColor(common.ColorFromHex(hex))
}

// WithIntensity is an option builder that sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithDistance is an option builder that sets the cutoff distance of a point light.
// Zero disables the cutoff.
//
// Parameters:
//   - distance: the cutoff distance
//
// Returns:
//   - LightBuilderOption: a function that applies the distance option to a lightImpl
func WithDistance(distance float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.distance = max(0, distance)
	}
}

// WithDecay sets the distance falloff exponent of a point light (default 2).
func WithDecay(decay float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.decay = decay
	}
}

// WithEnabled is an option builder that sets whether the light is active for rendering.
//
// Parameters:
//   - enabled: true to enable the light
//
// Returns:
//   - LightBuilderOption: a function that applies the enabled option to a lightImpl
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}

// WithCastsShadows is an option builder that sets whether the light is eligible for
// shadow map generation.
//
// Parameters:
//   - castsShadows: true to enable shadow casting
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow casting option to a lightImpl
func WithCastsShadows(castsShadows bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = castsShadows
	}
}

// WithShadow is an option builder that replaces the shadow map configuration.
// Zero fields in cfg keep their defaults.
//
// Parameters:
//   - cfg: the shadow configuration
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow option to a lightImpl
func WithShadow(cfg ShadowConfig) LightBuilderOption {
	return func(l *lightImpl) {
		def := DefaultShadowConfig()
		l.shadow = ShadowConfig{
			MapSize:    common.Coalesce(cfg.MapSize, def.MapSize),
			Bias:       cfg.Bias,
			Near:       common.Coalesce(cfg.Near, def.Near),
			Far:        common.Coalesce(cfg.Far, def.Far),
			HalfExtent: common.Coalesce(cfg.HalfExtent, def.HalfExtent),
		}
	}
}

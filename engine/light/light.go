package light

import (
	"github.com/soypat/geometry/ms3"

	"github.com/Carmen-Shannon/oxy-waddle/common"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every fragment uniformly with no direction.
	// Multiple ambient lights are summed.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a distant light shining from its position toward
	// its target. Only the direction matters for shading; the position also places the
	// shadow camera.
	LightTypeDirectional

	// LightTypePoint emits in all directions from a position and attenuates with distance.
	LightTypePoint
)

// String returns the light type name.
func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	default:
		return "unknown"
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType    LightType
	position     ms3.Vec
	target       ms3.Vec
	color        common.Color
	intensity    float32
	distance     float32
	decay        float32
	enabled      bool
	castsShadows bool
	shadow       ShadowConfig
}

// Light defines the interface for a light source in the scene.
//
// All light types share this interface; type-specific properties return their stored
// values even when the type ignores them (e.g. Distance on a directional light).
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - ms3.Vec: the position
	Position() ms3.Vec

	// Target returns the point a directional light shines toward.
	//
	// Returns:
	//   - ms3.Vec: the target position
	Target() ms3.Vec

	// Direction returns the normalized direction light travels (position toward target).
	//
	// Returns:
	//   - ms3.Vec: the unit direction, or -Y if position and target coincide
	Direction() ms3.Vec

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - common.Color: the light color
	Color() common.Color

	// Intensity returns the scalar intensity multiplier.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Distance returns the cutoff distance of a point light. Zero means unlimited.
	//
	// Returns:
	//   - float32: the cutoff distance
	Distance() float32

	// Decay returns the distance falloff exponent of a point light.
	//
	// Returns:
	//   - float32: the decay exponent
	Decay() float32

	// Enabled returns whether this light contributes to rendering.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// CastsShadows returns whether this light is eligible for shadow map generation.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// Shadow returns the shadow map configuration.
	//
	// Returns:
	//   - ShadowConfig: the shadow configuration
	Shadow() ShadowConfig

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - p: the new position
	SetPosition(p ms3.Vec)

	// SetTarget sets the point a directional light shines toward.
	//
	// Parameters:
	//   - t: the new target
	SetTarget(t ms3.Vec)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - c: the new color
	SetColor(c common.Color)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetCastsShadows sets whether the light is eligible for shadow mapping.
	//
	// Parameters:
	//   - castsShadows: true to enable shadow casting
	SetCastsShadows(castsShadows bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		position:  ms3.Vec{Y: 1},
		color:     common.Color{R: 1, G: 1, B: 1},
		intensity: 1,
		decay:     2,
		enabled:   true,
		shadow:    DefaultShadowConfig(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() ms3.Vec {
	return l.position
}

func (l *lightImpl) Target() ms3.Vec {
	return l.target
}

func (l *lightImpl) Direction() ms3.Vec {
	d := ms3.Sub(l.target, l.position)
	if ms3.Norm(d) == 0 {
		return ms3.Vec{Y: -1}
	}
	return ms3.Unit(d)
}

func (l *lightImpl) Color() common.Color {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Distance() float32 {
	return l.distance
}

func (l *lightImpl) Decay() float32 {
	return l.decay
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) Shadow() ShadowConfig {
	return l.shadow
}

func (l *lightImpl) SetPosition(p ms3.Vec) {
	l.position = p
}

func (l *lightImpl) SetTarget(t ms3.Vec) {
	l.target = t
}

func (l *lightImpl) SetColor(c common.Color) {
	l.color = c
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.castsShadows = castsShadows
}

package material

import (
	"github.com/Carmen-Shannon/oxy-waddle/common"
)

// Side selects which faces of a mesh are rendered and hit by raycasts.
type Side int

const (
	// SideFront renders counter-clockwise faces only.
	SideFront Side = iota
	// SideDouble renders both faces; lighting flips the normal for back faces.
	SideDouble
)

// material is the implementation of the Material interface.
type material struct {
	name      string
	color     common.Color
	specular  common.Color
	emissive  common.Color
	shininess float32
	opacity   float32
	side      Side
	texture   *Texture
}

// Material is a Blinn-Phong surface description.
//
// Materials are mutated from the main thread only (pick recoloring, async texture arrival);
// the renderer reads them on the same thread each frame, so no locking is performed.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Color retrieves the diffuse color.
	//
	// Returns:
	//   - common.Color: the diffuse color
	Color() common.Color

	// SetColor replaces the diffuse color.
	//
	// Parameters:
	//   - c: the new diffuse color
	SetColor(c common.Color)

	// Specular retrieves the specular color.
	//
	// Returns:
	//   - common.Color: the specular color
	Specular() common.Color

	// Emissive retrieves the emissive color added regardless of lighting.
	//
	// Returns:
	//   - common.Color: the emissive color
	Emissive() common.Color

	// Shininess retrieves the specular exponent.
	//
	// Returns:
	//   - float32: the specular exponent
	Shininess() float32

	// Opacity retrieves the surface opacity in [0, 1].
	//
	// Returns:
	//   - float32: the opacity
	Opacity() float32

	// Side retrieves which faces are rendered.
	//
	// Returns:
	//   - Side: the rendered side(s)
	Side() Side

	// Texture retrieves the diffuse texture, or nil if none is set.
	//
	// Returns:
	//   - *Texture: the diffuse texture, or nil
	Texture() *Texture

	// SetTexture replaces the diffuse texture. Passing nil removes it.
	//
	// Parameters:
	//   - tex: the new diffuse texture
	SetTexture(tex *Texture)

	// Clone returns an independent copy. The texture is shared since it is immutable.
	//
	// Returns:
	//   - Material: the copy
	Clone() Material
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Defaults match a plain white Phong surface.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		color:     common.Color{R: 1, G: 1, B: 1},
		specular:  common.ColorFromHex(0x111111),
		shininess: 30,
		opacity:   1,
		side:      SideFront,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Color() common.Color {
	return m.color
}

func (m *material) SetColor(c common.Color) {
	m.color = c
}

func (m *material) Specular() common.Color {
	return m.specular
}

func (m *material) Emissive() common.Color {
	return m.emissive
}

func (m *material) Shininess() float32 {
	return m.shininess
}

func (m *material) Opacity() float32 {
	return m.opacity
}

func (m *material) Side() Side {
	return m.side
}

func (m *material) Texture() *Texture {
	return m.texture
}

func (m *material) SetTexture(tex *Texture) {
	m.texture = tex
}

func (m *material) Clone() Material {
	cp := *m
	return &cp
}

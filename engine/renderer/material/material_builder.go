package material

import (
	"github.com/Carmen-Shannon/oxy-waddle/common"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithColor is an option builder that sets the diffuse color of the material.
//
// Parameters:
//   - c: the diffuse color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(c common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.color = c
	}
}

// WithSpecular sets the specular color.
func WithSpecular(c common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.specular = c
	}
}

// WithEmissive sets the emissive color.
func WithEmissive(c common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.emissive = c
	}
}

// WithShininess sets the specular exponent. Non-positive values are ignored.
func WithShininess(s float32) MaterialBuilderOption {
	return func(m *material) {
		if s > 0 {
			m.shininess = s
		}
	}
}

// WithOpacity sets the opacity, clamped to [0, 1].
func WithOpacity(o float32) MaterialBuilderOption {
	return func(m *material) {
		m.opacity = common.Clamp(o, 0, 1)
	}
}

// WithSide is an option builder that selects which faces are rendered.
//
// Parameters:
//   - side: SideFront or SideDouble
//
// Returns:
//   - MaterialBuilderOption: a function that applies the side option to a material
func WithSide(side Side) MaterialBuilderOption {
	return func(m *material) {
		m.side = side
	}
}

// WithTexture is an option builder that sets the diffuse texture.
//
// Parameters:
//   - tex: the decoded texture
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTexture(tex *Texture) MaterialBuilderOption {
	return func(m *material) {
		m.texture = tex
	}
}

// FromImported copies the colors and exponents of an MTL definition.
// The diffuse texture is not decoded here; pass it separately with WithTexture.
//
// Parameters:
//   - im: the imported material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the imported values to a material
func FromImported(im *common.ImportedMaterial) MaterialBuilderOption {
	return func(m *material) {
		if im == nil {
			return
		}
		m.name = im.Name
		m.color = im.Diffuse
		m.specular = im.Specular
		m.emissive = im.Emissive
		if im.Shininess > 0 {
			m.shininess = im.Shininess
		}
		m.opacity = common.Clamp(im.Opacity, 0, 1)
	}
}

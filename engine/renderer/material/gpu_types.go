package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialParamsSource is the canonical WGSL definition of the MaterialParams struct.
//
//go:embed assets/material_params.wgsl
var GPUMaterialParamsSource string

// GPUMaterialParams is the per-draw material block of the lit shader's ObjectUniforms.
// Matches the WGSL MaterialParams struct layout exactly (64 bytes, std140 aligned).
type GPUMaterialParams struct {
	Color            [4]float32 // offset 0: diffuse rgb + opacity
	SpecularShine    [4]float32 // offset 16: specular rgb + shininess
	Emissive         [4]float32 // offset 32: emissive rgb + unused
	TextureTransform [4]float32 // offset 48: repeat u, repeat v, has texture (0/1), double sided (0/1)
}

// Params packs a material into its GPU representation.
//
// Parameters:
//   - m: the material to pack
//
// Returns:
//   - GPUMaterialParams: the packed block
func Params(m Material) GPUMaterialParams {
	c, s, e := m.Color(), m.Specular(), m.Emissive()
	p := GPUMaterialParams{
		Color:            c.Vec4(m.Opacity()),
		SpecularShine:    s.Vec4(m.Shininess()),
		Emissive:         e.Vec4(0),
		TextureTransform: [4]float32{1, 1, 0, 0},
	}
	if tex := m.Texture(); tex != nil {
		p.TextureTransform[0] = tex.Repeat[0]
		p.TextureTransform[1] = tex.Repeat[1]
		p.TextureTransform[2] = 1
	}
	if m.Side() == SideDouble {
		p.TextureTransform[3] = 1
	}
	return p
}

// Size returns the size of the GPUMaterialParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUMaterialParams) Marshal() []byte {
	buf := make([]byte, 64)
	for i, v := range [4][4]float32{g.Color, g.SpecularShine, g.Emissive, g.TextureTransform} {
		for j, f := range v {
			binary.LittleEndian.PutUint32(buf[i*16+j*4:], math.Float32bits(f))
		}
	}
	return buf
}

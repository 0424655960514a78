package renderer

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/material"
)

// GPUSceneParams is the per-frame block shared by the lit and shadow shaders.
// Matches the WGSL SceneParams struct layout exactly (112 bytes).
type GPUSceneParams struct {
	LightViewProj [16]float32 // offset   0: shadow caster view-projection
	FogColor      [3]float32  // offset  64: linear RGB
	FogNear       float32     // offset  76: view depth where fog starts
	FogFar        float32     // offset  80: view depth of full fog
	FogEnabled    float32     // offset  84: 0 or 1
	ShadowBias    float32     // offset  88: added to the compared depth
	ShadowEnabled float32     // offset  92: 0 or 1
	ShadowTexel   float32     // offset  96: 1 / shadow map size
	_pad          [3]float32  // offset 100: padding to 112 bytes
}

// Size returns the size of the GPUSceneParams struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (112)
func (g *GPUSceneParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSceneParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUSceneParams) Marshal() []byte {
	buf := make([]byte, g.Size())
	putFloats(buf[0:], g.LightViewProj[:])
	putFloats(buf[64:], g.FogColor[:])
	putFloats(buf[76:], []float32{g.FogNear, g.FogFar, g.FogEnabled, g.ShadowBias, g.ShadowEnabled, g.ShadowTexel})
	return buf
}

// GPUObjectUniform is the per-draw block of the lit and shadow shaders.
// Matches the WGSL ObjectUniform struct layout exactly (208 bytes).
type GPUObjectUniform struct {
	Model         [16]float32                // offset   0: world matrix
	Normal        [16]float32                // offset  64: inverse-transpose of the world matrix
	Material      material.GPUMaterialParams // offset 128: 64-byte material block
	ReceiveShadow float32                    // offset 192: 0 or 1
	_pad          [3]float32                 // offset 196: padding to 208 bytes
}

// Size returns the size of the GPUObjectUniform struct in bytes.
func (g *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUObjectUniform struct into a byte buffer suitable for GPU upload.
func (g *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	putFloats(buf[0:], g.Model[:])
	putFloats(buf[64:], g.Normal[:])
	copy(buf[128:192], g.Material.Marshal())
	putFloats(buf[192:], []float32{g.ReceiveShadow})
	return buf
}

func putFloats(buf []byte, vals []float32) {
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}

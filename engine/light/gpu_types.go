package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-waddle/common"
)

// MaxGPULights is the number of non-ambient light slots in the frame's light uniform
// block. Uniform arrays have a fixed size, so lights past this count are dropped.
const MaxGPULights = 4

// GPULightSource is the canonical WGSL definition of the Light and LightBlock structs.
// LightBlock matches the buffer produced by MarshalLightBuffer.
//
//go:embed assets/light.wgsl
var GPULightSource string

// GPULight is the GPU-aligned representation of a single light source.
// Matches the WGSL Light struct layout exactly (64 bytes, std140 aligned).
type GPULight struct {
	Position     [3]float32 // offset  0: world-space position
	LightType    uint32     // offset 12: 1 = directional, 2 = point
	Color        [3]float32 // offset 16: linear RGB color
	Intensity    float32    // offset 28: scalar multiplier
	Direction    [3]float32 // offset 32: normalized direction light travels (directional)
	Distance     float32    // offset 44: point light cutoff distance, 0 = unlimited
	Decay        float32    // offset 48: point light falloff exponent
	CastsShadows uint32     // offset 52: 1 = samples the shadow map
	_pad         [2]uint32  // offset 56: padding to 64 bytes
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 64)
	putVec3(buf[0:], g.Position)
	binary.LittleEndian.PutUint32(buf[12:16], g.LightType)
	putVec3(buf[16:], g.Color)
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Intensity))
	putVec3(buf[32:], g.Direction)
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(g.Distance))
	binary.LittleEndian.PutUint32(buf[48:52], math.Float32bits(g.Decay))
	binary.LittleEndian.PutUint32(buf[52:56], g.CastsShadows)
	return buf
}

// GPULightHeader is the header of the light uniform block.
// Contains the summed ambient color and the active light count.
// Size: 16 bytes (vec3 + u32).
type GPULightHeader struct {
	AmbientColor [3]float32 // offset 0: summed ambient RGB * intensity
	LightCount   uint32     // offset 12: number of populated light slots
}

// Size returns the size of the GPULightHeader struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (h *GPULightHeader) Size() int {
	return int(unsafe.Sizeof(*h))
}

// Marshal serializes the GPULightHeader struct into a byte buffer suitable for
// GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func (h *GPULightHeader) Marshal() []byte {
	buf := make([]byte, 16)
	putVec3(buf[0:], h.AmbientColor)
	binary.LittleEndian.PutUint32(buf[12:16], h.LightCount)
	return buf
}

// ToGPULight converts a Light into its GPU-aligned representation.
//
// Parameters:
//   - l: the Light to convert
//
// Returns:
//   - GPULight: the GPU-aligned representation
func ToGPULight(l Light) GPULight {
	shadowVal := uint32(0)
	if l.CastsShadows() && l.Type() == LightTypeDirectional {
		shadowVal = 1
	}
	p, d, c := l.Position(), l.Direction(), l.Color()
	return GPULight{
		Position:     [3]float32{p.X, p.Y, p.Z},
		LightType:    uint32(l.Type()),
		Color:        [3]float32{c.R, c.G, c.B},
		Intensity:    l.Intensity(),
		Direction:    [3]float32{d.X, d.Y, d.Z},
		Distance:     l.Distance(),
		Decay:        l.Decay(),
		CastsShadows: shadowVal,
	}
}

// AmbientSum returns the sum of color * intensity over every enabled ambient light.
func AmbientSum(lights []Light) common.Color {
	var sum common.Color
	for _, l := range lights {
		if !l.Enabled() || l.Type() != LightTypeAmbient {
			continue
		}
		c := l.Color().Scale(l.Intensity())
		sum.R += c.R
		sum.G += c.G
		sum.B += c.B
	}
	return sum
}

// LightBufferSize is the size in bytes of the block produced by MarshalLightBuffer.
const LightBufferSize = 16 + MaxGPULights*64

// MarshalLightBuffer marshals the enabled lights into the fixed-size light uniform block:
//
//	[GPULightHeader (16 bytes)] [GPULight × MaxGPULights (64 bytes each)]
//
// Ambient lights are folded into the header. Directional and point lights fill the slots
// in order; unused slots are zeroed and lights beyond MaxGPULights are dropped.
//
// Parameters:
//   - lights: the scene lights
//
// Returns:
//   - []byte: LightBufferSize bytes ready for GPU upload
func MarshalLightBuffer(lights []Light) []byte {
	buf := make([]byte, LightBufferSize)
	offset := 16
	count := uint32(0)
	for _, l := range lights {
		if !l.Enabled() || l.Type() == LightTypeAmbient {
			continue
		}
		if count == MaxGPULights {
			break
		}
		gpu := ToGPULight(l)
		copy(buf[offset:offset+64], gpu.Marshal())
		offset += 64
		count++
	}

	amb := AmbientSum(lights)
	header := GPULightHeader{AmbientColor: [3]float32{amb.R, amb.G, amb.B}, LightCount: count}
	copy(buf[0:16], header.Marshal())
	return buf
}

func putVec3(buf []byte, v [3]float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v[2]))
}
